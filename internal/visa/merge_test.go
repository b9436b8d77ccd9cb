package visa_test

import (
	"context"
	"testing"
	"time"

	"github.com/STS-Engineer/rh-app-backend/internal/visa"
	visaerrors "github.com/STS-Engineer/rh-app-backend/internal/visa/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func storedDossier() *visa.VisaDossier {
	return &visa.VisaDossier{
		ID:         uuid.New(),
		EmployeID:  uuid.New(),
		Motif:      "Mission",
		DateDepart: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		DateRetour: time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		Statut:     visa.StatusDocumentsPending,
	}
}

func uploadedDocument(t *testing.T, deps *visaServiceDeps, dossierID uuid.UUID, name string, data []byte) visa.VisaDocument {
	t.Helper()
	key, url, err := deps.store.Save(name, data)
	assert.NoError(t, err)
	return visa.VisaDocument{
		ID:               uuid.New(),
		DossierID:        dossierID,
		Code:             "passeport",
		Mode:             visa.ModeUpload,
		Statut:           visa.DocStatusUploaded,
		URL:              &url,
		OriginalFilename: &name,
		StorageKey:       &key,
	}
}

func TestMergeDossierPDF(t *testing.T) {
	pdfPayload := []byte("%PDF-1.4\nsingle page body")

	t.Run("no uploaded pdf yields client error", func(t *testing.T) {
		deps := setupVisaServiceTest(t)
		d := storedDossier()
		deps.repo.findDossierByIDFn = func(ctx context.Context, id string) (*visa.VisaDossier, error) {
			return d, nil
		}
		deps.repo.findDocumentsByDossierFn = func(ctx context.Context, dossierID string) ([]visa.VisaDocument, error) {
			return []visa.VisaDocument{
				{ID: uuid.New(), DossierID: d.ID, Mode: visa.ModeUpload, Statut: visa.DocStatusMissing},
				{ID: uuid.New(), DossierID: d.ID, Mode: visa.ModePhysical, Statut: visa.DocStatusReceivedPhysical},
			}, nil
		}

		_, err := deps.service.MergeDossierPDF(context.Background(), d.ID.String())

		assert.ErrorIs(t, err, visaerrors.ErrNoMergeablePDF)
	})

	t.Run("single uploaded pdf is returned verbatim", func(t *testing.T) {
		deps := setupVisaServiceTest(t)
		d := storedDossier()
		doc := uploadedDocument(t, deps, d.ID, "passeport.pdf", pdfPayload)
		deps.repo.findDossierByIDFn = func(ctx context.Context, id string) (*visa.VisaDossier, error) {
			return d, nil
		}
		deps.repo.findDocumentsByDossierFn = func(ctx context.Context, dossierID string) ([]visa.VisaDocument, error) {
			return []visa.VisaDocument{doc}, nil
		}

		out, err := deps.service.MergeDossierPDF(context.Background(), d.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, pdfPayload, out)
	})

	t.Run("non-pdf artifacts are excluded", func(t *testing.T) {
		deps := setupVisaServiceTest(t)
		d := storedDossier()
		image := uploadedDocument(t, deps, d.ID, "photo.png", []byte{0x89, 'P', 'N', 'G', '\r', '\n'})
		pdf := uploadedDocument(t, deps, d.ID, "passeport.pdf", pdfPayload)
		deps.repo.findDossierByIDFn = func(ctx context.Context, id string) (*visa.VisaDossier, error) {
			return d, nil
		}
		deps.repo.findDocumentsByDossierFn = func(ctx context.Context, dossierID string) ([]visa.VisaDocument, error) {
			return []visa.VisaDocument{image, pdf}, nil
		}

		out, err := deps.service.MergeDossierPDF(context.Background(), d.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, pdfPayload, out)
	})

	t.Run("only non-pdf artifacts yields client error", func(t *testing.T) {
		deps := setupVisaServiceTest(t)
		d := storedDossier()
		image := uploadedDocument(t, deps, d.ID, "photo.png", []byte{0x89, 'P', 'N', 'G', '\r', '\n'})
		deps.repo.findDossierByIDFn = func(ctx context.Context, id string) (*visa.VisaDossier, error) {
			return d, nil
		}
		deps.repo.findDocumentsByDossierFn = func(ctx context.Context, dossierID string) ([]visa.VisaDocument, error) {
			return []visa.VisaDocument{image}, nil
		}

		_, err := deps.service.MergeDossierPDF(context.Background(), d.ID.String())

		assert.ErrorIs(t, err, visaerrors.ErrNoMergeablePDF)
	})

	t.Run("unknown dossier", func(t *testing.T) {
		deps := setupVisaServiceTest(t)

		_, err := deps.service.MergeDossierPDF(context.Background(), uuid.NewString())

		assert.ErrorIs(t, err, visaerrors.ErrDossierNotFound)
	})
}
