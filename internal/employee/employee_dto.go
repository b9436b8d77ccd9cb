package employee

type CreateEmployeeRequest struct {
	Matricule               string   `json:"matricule" binding:"required"`
	Nom                     string   `json:"nom" binding:"required"`
	Prenom                  string   `json:"prenom" binding:"required"`
	CIN                     string   `json:"cin" binding:"required"`
	Passeport               *string  `json:"passeport"`
	DateEmissionPasseport   *string  `json:"date_emission_passeport"`
	DateExpirationPasseport *string  `json:"date_expiration_passeport"`
	DateNaissance           string   `json:"date_naissance" binding:"required"`
	Poste                   string   `json:"poste" binding:"required"`
	SiteDep                 string   `json:"site_dep" binding:"required"`
	TypeContrat             string   `json:"type_contrat" binding:"required"`
	DateDebut               string   `json:"date_debut" binding:"required"`
	DateFinContrat          *string  `json:"date_fin_contrat"`
	SalaireBrute            *float64 `json:"salaire_brute" binding:"required"`
	Photo                   string   `json:"photo"`
	DossierRH               *string  `json:"dossier_rh"`
	Email                   *string  `json:"email" binding:"omitempty,email"`
	EmailResponsable1       *string  `json:"email_responsable1" binding:"omitempty,email"`
	EmailResponsable2       *string  `json:"email_responsable2" binding:"omitempty,email"`
}

type UpdateEmployeeRequest struct {
	Matricule               string   `json:"matricule" binding:"required"`
	Nom                     string   `json:"nom" binding:"required"`
	Prenom                  string   `json:"prenom" binding:"required"`
	CIN                     string   `json:"cin" binding:"required"`
	Passeport               *string  `json:"passeport"`
	DateEmissionPasseport   *string  `json:"date_emission_passeport"`
	DateExpirationPasseport *string  `json:"date_expiration_passeport"`
	DateNaissance           string   `json:"date_naissance" binding:"required"`
	Poste                   string   `json:"poste" binding:"required"`
	SiteDep                 string   `json:"site_dep" binding:"required"`
	TypeContrat             string   `json:"type_contrat" binding:"required"`
	DateDebut               string   `json:"date_debut" binding:"required"`
	DateFinContrat          *string  `json:"date_fin_contrat"`
	SalaireBrute            *float64 `json:"salaire_brute" binding:"required"`
	Photo                   string   `json:"photo"`
	DossierRH               *string  `json:"dossier_rh"`
	Email                   *string  `json:"email" binding:"omitempty,email"`
	EmailResponsable1       *string  `json:"email_responsable1" binding:"omitempty,email"`
	EmailResponsable2       *string  `json:"email_responsable2" binding:"omitempty,email"`
	DateDepart              *string  `json:"date_depart"`
}

type ArchiveEmployeeRequest struct {
	EntretienDepart *string `json:"entretien_depart"`
}

type EmployeeResponse struct {
	ID                      string   `json:"id"`
	Matricule               string   `json:"matricule"`
	Nom                     string   `json:"nom"`
	Prenom                  string   `json:"prenom"`
	CIN                     string   `json:"cin"`
	Passeport               *string  `json:"passeport,omitempty"`
	DateEmissionPasseport   *string  `json:"date_emission_passeport,omitempty"`
	DateExpirationPasseport *string  `json:"date_expiration_passeport,omitempty"`
	DateNaissance           string   `json:"date_naissance"`
	Poste                   string   `json:"poste"`
	SiteDep                 string   `json:"site_dep"`
	TypeContrat             string   `json:"type_contrat"`
	DateDebut               string   `json:"date_debut"`
	DateFinContrat          *string  `json:"date_fin_contrat,omitempty"`
	SalaireBrute            float64  `json:"salaire_brute"`
	Photo                   string   `json:"photo"`
	DossierRH               *string  `json:"dossier_rh,omitempty"`
	Email                   *string  `json:"email,omitempty"`
	EmailResponsable1       *string  `json:"email_responsable1,omitempty"`
	EmailResponsable2       *string  `json:"email_responsable2,omitempty"`
	Statut                  string   `json:"statut"`
	DateDepart              *string  `json:"date_depart,omitempty"`
	EntretienDepart         *string  `json:"entretien_depart,omitempty"`
}
