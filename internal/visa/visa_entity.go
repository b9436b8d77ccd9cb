package visa

import (
	"time"

	"github.com/STS-Engineer/rh-app-backend/internal/employee"

	"github.com/google/uuid"
)

const (
	StatusCreated          = "CREATED"
	StatusDocumentsPending = "DOCUMENTS_PENDING"
	StatusSubmitted        = "SUBMITTED"
	StatusApproved         = "APPROVED"
	StatusRejected         = "REJECTED"
)

const (
	DocStatusMissing          = "MISSING"
	DocStatusUploaded         = "UPLOADED"
	DocStatusReceivedPhysical = "RECEIVED_PHYSICAL"
)

const (
	ModeUpload   = "UPLOAD"
	ModePhysical = "PHYSICAL"
)

// VisaDossier is one employee travel case. Its checklist rows are created
// in the same transaction and the set never changes afterwards; only the
// statut and the visa decision fields move once the dossier exists.
type VisaDossier struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeID    uuid.UUID  `gorm:"column:employe_id;type:uuid;not null;index"`
	Motif        string     `gorm:"type:varchar(255);not null"`
	DateDepart   time.Time  `gorm:"type:date;not null"`
	DateRetour   time.Time  `gorm:"type:date;not null"`
	Statut       string     `gorm:"type:varchar(30);not null;default:'DOCUMENTS_PENDING';index"`
	NumeroVisa   *string    `gorm:"type:varchar(100)"`
	DateValidite *time.Time `gorm:"type:date"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Employe   *employee.Employee `gorm:"foreignKey:EmployeID"`
	Documents []VisaDocument     `gorm:"foreignKey:DossierID"`
}

func (VisaDossier) TableName() string { return "visa_dossiers" }

// VisaDocument is one checklist row. UPLOAD rows move MISSING→UPLOADED and
// carry the stored file; PHYSICAL rows move MISSING→RECEIVED_PHYSICAL and
// never carry a file.
type VisaDocument struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DossierID        uuid.UUID `gorm:"column:dossier_id;type:uuid;not null;index"`
	Code             string    `gorm:"type:varchar(50);not null"`
	Label            string    `gorm:"type:varchar(255);not null"`
	Mode             string    `gorm:"type:varchar(10);not null"`
	Statut           string    `gorm:"type:varchar(20);not null;default:'MISSING'"`
	URL              *string   `gorm:"type:varchar(500)"`
	OriginalFilename *string   `gorm:"type:varchar(255)"`
	StorageKey       *string   `gorm:"type:varchar(255)"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (VisaDocument) TableName() string { return "visa_documents" }
