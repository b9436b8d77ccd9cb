package employee

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Employee) error
	FindAllByStatut(ctx context.Context, statut string) ([]Employee, error)
	Search(ctx context.Context, q, statut string) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	Update(ctx context.Context, e *Employee) error
	FindContractsEnding(ctx context.Context, endDate time.Time, alertedBefore time.Time) ([]Employee, error)
	StampContractAlert(ctx context.Context, id string, at time.Time) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindAllByStatut(ctx context.Context, statut string) ([]Employee, error) {
	var employees []Employee
	db := r.db.WithContext(ctx)
	if statut == StatutArchive {
		db = db.Where("statut = ?", StatutArchive).
			Order("date_depart DESC, nom, prenom")
	} else {
		db = db.Where("statut = ? OR statut IS NULL", StatutActif).
			Order("nom, prenom")
	}
	err := db.Find(&employees).Error
	return employees, err
}

func (r *repository) Search(ctx context.Context, q, statut string) ([]Employee, error) {
	var employees []Employee
	db := r.db.WithContext(ctx)
	if statut == StatutArchive {
		db = db.Where("statut = ?", StatutArchive)
	} else {
		db = db.Where("statut = ? OR statut IS NULL", StatutActif)
	}
	if q != "" {
		pattern := "%" + q + "%"
		db = db.Where("nom ILIKE ? OR prenom ILIKE ? OR poste ILIKE ?", pattern, pattern, pattern)
	}
	err := db.Order("nom, prenom").Find(&employees).Error
	return employees, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) FindContractsEnding(ctx context.Context, endDate time.Time, alertedBefore time.Time) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Where("statut = ?", StatutActif).
		Where("date_fin_contrat = ?", endDate.Format("2006-01-02")).
		Where("last_contract_alert IS NULL OR last_contract_alert < ?", alertedBefore).
		Find(&employees).Error
	return employees, err
}

func (r *repository) StampContractAlert(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ?", id).
		Update("last_contract_alert", at).Error
}
