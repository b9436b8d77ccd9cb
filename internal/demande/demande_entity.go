package demande

import (
	"time"

	"github.com/STS-Engineer/rh-app-backend/internal/employee"

	"github.com/google/uuid"
)

const (
	TypeConge            = "conge"
	TypeAbsence          = "absence"
	TypeFraisDeplacement = "frais_deplacement"
	TypeAutre            = "autre"
)

// Demande is one HR request (leave, absence, travel expense) raised for an
// employee. Approval state lives in the two nullable responsable flags;
// statut is derived from them, never set directly except for IN_PROGRESS.
type Demande struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeID            uuid.UUID `gorm:"column:employe_id;type:uuid;not null;index"`
	TypeDemande          string    `gorm:"type:varchar(30);not null"`
	Titre                string    `gorm:"type:varchar(255)"`
	TypeConge            *string   `gorm:"type:varchar(50)"`
	TypeCongeAutre       *string   `gorm:"type:varchar(100)"`
	DateDepart           time.Time `gorm:"type:date;not null;index"`
	DateRetour           time.Time `gorm:"type:date;not null"`
	HeureDepart          *string   `gorm:"type:varchar(10)"`
	HeureRetour          *string   `gorm:"type:varchar(10)"`
	DemiJournee          bool      `gorm:"not null;default:false"`
	FraisDeplacement     *float64  `gorm:"type:decimal(10,2)"`
	Statut               string    `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	ApprouveResponsable1 *bool
	ApprouveResponsable2 *bool
	CommentaireRefus     *string `gorm:"type:text"`
	CreatedAt            time.Time
	UpdatedAt            time.Time

	Employe *employee.Employee `gorm:"foreignKey:EmployeID"`
}

func (Demande) TableName() string { return "demande_rh" }
