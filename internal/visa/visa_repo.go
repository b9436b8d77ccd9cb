package visa

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=visa_repo.go -destination=mock/visa_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateDossier(ctx context.Context, d *VisaDossier) error
	CreateDocuments(ctx context.Context, docs []VisaDocument) error
	FindAllDossiers(ctx context.Context) ([]VisaDossier, error)
	FindDossierByID(ctx context.Context, id string) (*VisaDossier, error)
	UpdateDossier(ctx context.Context, d *VisaDossier) error
	FindDocumentByID(ctx context.Context, id string) (*VisaDocument, error)
	FindDocumentsByDossier(ctx context.Context, dossierID string) ([]VisaDocument, error)
	UpdateDocument(ctx context.Context, doc *VisaDocument) error
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

func (r *repository) CreateDossier(ctx context.Context, d *VisaDossier) error {
	return r.db.WithContext(ctx).Omit("Documents", "Employe").Create(d).Error
}

func (r *repository) CreateDocuments(ctx context.Context, docs []VisaDocument) error {
	return r.db.WithContext(ctx).Create(&docs).Error
}

func (r *repository) FindAllDossiers(ctx context.Context) ([]VisaDossier, error) {
	var dossiers []VisaDossier
	err := r.db.WithContext(ctx).
		Preload("Employe").
		Order("created_at DESC").
		Find(&dossiers).Error
	return dossiers, err
}

func (r *repository) FindDossierByID(ctx context.Context, id string) (*VisaDossier, error) {
	var d VisaDossier
	err := r.db.WithContext(ctx).
		Preload("Employe").
		Preload("Documents", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&d, "id = ?", id).Error
	return &d, err
}

func (r *repository) UpdateDossier(ctx context.Context, d *VisaDossier) error {
	return r.db.WithContext(ctx).Omit("Documents", "Employe").Save(d).Error
}

func (r *repository) FindDocumentByID(ctx context.Context, id string) (*VisaDocument, error) {
	var doc VisaDocument
	err := r.db.WithContext(ctx).First(&doc, "id = ?", id).Error
	return &doc, err
}

func (r *repository) FindDocumentsByDossier(ctx context.Context, dossierID string) ([]VisaDocument, error) {
	var docs []VisaDocument
	err := r.db.WithContext(ctx).
		Where("dossier_id = ?", dossierID).
		Order("created_at ASC").
		Find(&docs).Error
	return docs, err
}

func (r *repository) UpdateDocument(ctx context.Context, doc *VisaDocument) error {
	return r.db.WithContext(ctx).Save(doc).Error
}
