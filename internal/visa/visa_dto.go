package visa

type CreateDossierRequest struct {
	EmployeID  string `json:"employe_id" binding:"required,uuid"`
	Motif      string `json:"motif" binding:"required"`
	DateDepart string `json:"date_depart" binding:"required"`
	DateRetour string `json:"date_retour" binding:"required"`
}

type UpdateDossierStatusRequest struct {
	Statut       string  `json:"statut" binding:"required,oneof=CREATED DOCUMENTS_PENDING SUBMITTED APPROVED REJECTED"`
	NumeroVisa   *string `json:"numero_visa"`
	DateValidite *string `json:"date_validite"`
}

type UpdateDocumentRequest struct {
	Statut string `json:"statut" binding:"required,oneof=RECEIVED_PHYSICAL"`
}

type AttestationTravailRequest struct {
	EmployeID  string `json:"employe_id" binding:"required,uuid"`
	DocumentID string `json:"document_id" binding:"required,uuid"`
}

type InvitationPriseEnChargeRequest struct {
	EmployeID   string `json:"employe_id" binding:"required,uuid"`
	DocumentID  string `json:"document_id" binding:"required,uuid"`
	Organisme   string `json:"organisme" binding:"required"`
	Destination string `json:"destination" binding:"required"`
}

type OrdreMissionRequest struct {
	EmployeID    string `json:"employe_id" binding:"required,uuid"`
	DocumentID   string `json:"document_id" binding:"required,uuid"`
	ObjetMission string `json:"objet_mission" binding:"required"`
	Destination  string `json:"destination" binding:"required"`
	DateDebut    string `json:"date_debut" binding:"required"`
	DateFin      string `json:"date_fin" binding:"required"`
}

type TravelEmailRequest struct {
	DossierID string `json:"dossier_id" binding:"required,uuid"`
}

type DocumentResponse struct {
	ID               string  `json:"id"`
	DossierID        string  `json:"dossier_id"`
	Code             string  `json:"code"`
	Label            string  `json:"label"`
	Mode             string  `json:"mode"`
	Statut           string  `json:"statut"`
	URL              *string `json:"url,omitempty"`
	OriginalFilename *string `json:"original_filename,omitempty"`
	CreatedAt        string  `json:"created_at"`
}

type DossierResponse struct {
	ID            string             `json:"id"`
	EmployeID     string             `json:"employe_id"`
	EmployeNom    string             `json:"employe_nom,omitempty"`
	EmployePrenom string             `json:"employe_prenom,omitempty"`
	Motif         string             `json:"motif"`
	DateDepart    string             `json:"date_depart"`
	DateRetour    string             `json:"date_retour"`
	Statut        string             `json:"statut"`
	NumeroVisa    *string            `json:"numero_visa,omitempty"`
	DateValidite  *string            `json:"date_validite,omitempty"`
	Documents     []DocumentResponse `json:"documents,omitempty"`
	CreatedAt     string             `json:"created_at"`
}

type CreateDossierResponse struct {
	Dossier   DossierResponse `json:"dossier"`
	EmailSent bool            `json:"email_sent"`
}

type EmailSentResponse struct {
	EmailSent bool `json:"email_sent"`
}
