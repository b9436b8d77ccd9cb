package visa

// ChecklistItem is one entry of the fixed document registry. Every dossier
// is seeded with exactly this list, in this order.
type ChecklistItem struct {
	Code  string
	Label string
	Mode  string
}

var checklistRegistry = []ChecklistItem{
	{Code: "passeport", Label: "Passeport", Mode: ModeUpload},
	{Code: "photo_identite", Label: "Photo d'identité", Mode: ModeUpload},
	{Code: "attestation_travail", Label: "Attestation de travail", Mode: ModeUpload},
	{Code: "invitation_prise_en_charge", Label: "Invitation / prise en charge", Mode: ModeUpload},
	{Code: "ordre_mission", Label: "Ordre de mission", Mode: ModeUpload},
	{Code: "releve_bancaire", Label: "Relevé bancaire", Mode: ModeUpload},
	{Code: "reservation_hotel", Label: "Réservation d'hôtel", Mode: ModeUpload},
	{Code: "billet_avion", Label: "Billet d'avion", Mode: ModeUpload},
	{Code: "assurance_voyage", Label: "Assurance voyage", Mode: ModeUpload},
	{Code: "historique_cnss", Label: "Historique CNSS", Mode: ModePhysical},
	{Code: "cin_original", Label: "CIN originale", Mode: ModePhysical},
}

// Checklist returns a copy of the registry so callers cannot mutate it.
func Checklist() []ChecklistItem {
	items := make([]ChecklistItem, len(checklistRegistry))
	copy(items, checklistRegistry)
	return items
}

// PhysicalLabels lists the labels of the PHYSICAL registry entries, used in
// the dossier-creation email.
func PhysicalLabels() []string {
	var labels []string
	for _, item := range checklistRegistry {
		if item.Mode == ModePhysical {
			labels = append(labels, item.Label)
		}
	}
	return labels
}

var statusOrder = map[string]int{
	StatusCreated:          0,
	StatusDocumentsPending: 1,
	StatusSubmitted:        2,
	StatusApproved:         3,
	StatusRejected:         3,
}

// isAllowedStatusTransition keeps the dossier moving forward only. The two
// terminal states share a rank, so neither can replace the other.
func isAllowedStatusTransition(current, target string) bool {
	cur, ok := statusOrder[current]
	if !ok {
		return false
	}
	tgt, ok := statusOrder[target]
	if !ok {
		return false
	}
	if current == StatusApproved || current == StatusRejected {
		return false
	}
	return tgt > cur
}
