package demande

type CreateDemandeRequest struct {
	EmployeID        string   `json:"employe_id" binding:"required,uuid"`
	TypeDemande      string   `json:"type_demande" binding:"required,oneof=conge absence frais_deplacement autre"`
	Titre            string   `json:"titre"`
	TypeConge        *string  `json:"type_conge"`
	TypeCongeAutre   *string  `json:"type_conge_autre"`
	DateDepart       string   `json:"date_depart" binding:"required"`
	DateRetour       string   `json:"date_retour" binding:"required"`
	HeureDepart      *string  `json:"heure_depart"`
	HeureRetour      *string  `json:"heure_retour"`
	DemiJournee      bool     `json:"demi_journee"`
	FraisDeplacement *float64 `json:"frais_deplacement"`
}

type UpdateDemandeRequest struct {
	TypeDemande          string   `json:"type_demande" binding:"required,oneof=conge absence frais_deplacement autre"`
	Titre                string   `json:"titre"`
	TypeConge            *string  `json:"type_conge"`
	TypeCongeAutre       *string  `json:"type_conge_autre"`
	DateDepart           string   `json:"date_depart" binding:"required"`
	DateRetour           string   `json:"date_retour" binding:"required"`
	HeureDepart          *string  `json:"heure_depart"`
	HeureRetour          *string  `json:"heure_retour"`
	DemiJournee          bool     `json:"demi_journee"`
	FraisDeplacement     *float64 `json:"frais_deplacement"`
	ApprouveResponsable1 *bool    `json:"approuve_responsable1"`
	ApprouveResponsable2 *bool    `json:"approuve_responsable2"`
	CommentaireRefus     *string  `json:"commentaire_refus"`
}

type UpdateStatutRequest struct {
	Statut           string  `json:"statut" binding:"required,oneof=PENDING APPROVED REFUSED IN_PROGRESS"`
	CommentaireRefus *string `json:"commentaire_refus"`
}

type ListDemandesQuery struct {
	TypeDemande string `form:"type_demande" binding:"omitempty,oneof=conge absence frais_deplacement autre"`
	Statut      string `form:"statut" binding:"omitempty,oneof=PENDING APPROVED REFUSED IN_PROGRESS"`
	EmployeID   string `form:"employe_id" binding:"omitempty,uuid"`
	DateFrom    string `form:"date_from"`
	DateTo      string `form:"date_to"`
	Page        int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit       int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}

type DemandeResponse struct {
	ID                   string   `json:"id"`
	EmployeID            string   `json:"employe_id"`
	EmployeNom           string   `json:"employe_nom,omitempty"`
	EmployePrenom        string   `json:"employe_prenom,omitempty"`
	EmployeMatricule     string   `json:"employe_matricule,omitempty"`
	TypeDemande          string   `json:"type_demande"`
	Titre                string   `json:"titre,omitempty"`
	TypeConge            *string  `json:"type_conge,omitempty"`
	TypeCongeAutre       *string  `json:"type_conge_autre,omitempty"`
	DateDepart           string   `json:"date_depart"`
	DateRetour           string   `json:"date_retour"`
	HeureDepart          *string  `json:"heure_depart,omitempty"`
	HeureRetour          *string  `json:"heure_retour,omitempty"`
	DemiJournee          bool     `json:"demi_journee"`
	FraisDeplacement     *float64 `json:"frais_deplacement,omitempty"`
	Statut               string   `json:"statut"`
	ApprouveResponsable1 *bool    `json:"approuve_responsable1"`
	ApprouveResponsable2 *bool    `json:"approuve_responsable2"`
	CommentaireRefus     *string  `json:"commentaire_refus,omitempty"`
	CreatedAt            string   `json:"created_at"`
}
