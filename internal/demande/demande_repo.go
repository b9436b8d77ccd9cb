package demande

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

type ListFilter struct {
	TypeDemande string
	Statut      string
	EmployeID   string
	DateFrom    *time.Time
	DateTo      *time.Time
	Page        int
	Limit       int
}

//go:generate mockgen -source=demande_repo.go -destination=mock/demande_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, d *Demande) error
	FindAll(ctx context.Context, filter ListFilter) ([]Demande, int64, error)
	FindByID(ctx context.Context, id string) (*Demande, error)
	Update(ctx context.Context, d *Demande) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, d *Demande) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Demande, int64, error) {
	db := r.db.WithContext(ctx).Model(&Demande{})

	if filter.TypeDemande != "" {
		db = db.Where("type_demande = ?", filter.TypeDemande)
	}
	if filter.Statut != "" {
		db = db.Where("statut = ?", filter.Statut)
	}
	if filter.EmployeID != "" {
		db = db.Where("employe_id = ?", filter.EmployeID)
	}
	if filter.DateFrom != nil {
		db = db.Where("date_depart >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		db = db.Where("date_depart <= ?", *filter.DateTo)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var demandes []Demande
	err := db.
		Preload("Employe").
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&demandes).Error
	return demandes, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Demande, error) {
	var d Demande
	err := r.db.WithContext(ctx).
		Preload("Employe").
		First(&d, "id = ?", id).Error
	return &d, err
}

func (r *repository) Update(ctx context.Context, d *Demande) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Demande{}, "id = ?", id).Error
}
