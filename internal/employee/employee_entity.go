package employee

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatutActif   = "actif"
	StatutArchive = "archive"
)

// Employee mirrors the HR master record. Column names stay French to match
// the payroll exports and the existing reporting queries.
type Employee struct {
	ID                      uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Matricule               string     `gorm:"type:varchar(50);uniqueIndex:uq_employees_matricule;not null"`
	Nom                     string     `gorm:"type:varchar(100);not null"`
	Prenom                  string     `gorm:"type:varchar(100);not null"`
	CIN                     string     `gorm:"column:cin;type:varchar(50);uniqueIndex:uq_employees_cin;not null"`
	Passeport               *string    `gorm:"type:varchar(100)"`
	DateEmissionPasseport   *time.Time `gorm:"type:date"`
	DateExpirationPasseport *time.Time `gorm:"type:date"`
	DateNaissance           time.Time  `gorm:"type:date;not null"`
	Poste                   string     `gorm:"type:varchar(100);not null"`
	SiteDep                 string     `gorm:"type:varchar(100);not null"`
	TypeContrat             string     `gorm:"type:varchar(50);not null"`
	DateDebut               time.Time  `gorm:"type:date;not null"`
	DateFinContrat          *time.Time `gorm:"type:date;index"`
	SalaireBrute            float64    `gorm:"type:decimal(10,2);not null"`
	Photo                   string     `gorm:"type:varchar(255)"`
	DossierRH               *string    `gorm:"column:dossier_rh;type:varchar(255)"`
	Email                   *string    `gorm:"type:varchar(255)"`
	EmailResponsable1       *string    `gorm:"type:varchar(255)"`
	EmailResponsable2       *string    `gorm:"type:varchar(255)"`
	Statut                  string     `gorm:"type:varchar(20);not null;default:'actif';index"`
	DateDepart              *time.Time `gorm:"type:date"`
	EntretienDepart         *string    `gorm:"type:text"`
	LastContractAlert       *time.Time
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

func (Employee) TableName() string { return "employees" }

func (e Employee) FullName() string {
	return e.Prenom + " " + e.Nom
}
