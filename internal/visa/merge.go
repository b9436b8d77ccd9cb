package visa

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"

	visaerrors "github.com/STS-Engineer/rh-app-backend/internal/visa/errors"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MergeDossierPDF concatenates every uploaded PDF of the dossier, in
// ascending checklist creation order, into one output document. Non-PDF
// artifacts are skipped, never converted.
func (s *service) MergeDossierPDF(ctx context.Context, dossierID string) ([]byte, error) {
	if _, err := uuid.Parse(dossierID); err != nil {
		return nil, visaerrors.ErrInvalidDossierID
	}

	if _, err := s.repo.FindDossierByID(ctx, dossierID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, visaerrors.ErrDossierNotFound
		}
		return nil, err
	}

	docs, err := s.repo.FindDocumentsByDossier(ctx, dossierID)
	if err != nil {
		return nil, err
	}

	var sources []io.ReadSeeker
	var open []*os.File
	defer func() {
		for _, f := range open {
			f.Close()
		}
	}()

	for _, doc := range docs {
		if doc.Statut != DocStatusUploaded || doc.StorageKey == nil {
			continue
		}
		path, err := s.store.Open(*doc.StorageKey)
		if err != nil {
			s.logger.Warn("merge skipping unreadable artifact",
				zap.String("document_id", doc.ID.String()),
				zap.String("storage_key", *doc.StorageKey),
				zap.Error(err),
			)
			continue
		}
		f, err := os.Open(path)
		if err != nil {
			s.logger.Warn("merge skipping unreadable artifact",
				zap.String("document_id", doc.ID.String()),
				zap.Error(err),
			)
			continue
		}

		header := make([]byte, 4)
		if _, err := io.ReadFull(f, header); err != nil || !isPDF(header) {
			f.Close()
			continue
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			f.Close()
			continue
		}

		open = append(open, f)
		sources = append(sources, f)
	}

	if len(sources) == 0 {
		return nil, visaerrors.ErrNoMergeablePDF
	}
	if len(sources) == 1 {
		data, err := io.ReadAll(sources[0])
		if err != nil {
			return nil, err
		}
		return data, nil
	}

	var out bytes.Buffer
	if err := api.MergeRaw(sources, &out, false, nil); err != nil {
		s.logger.Error("merge dossier pdf failed",
			zap.String("dossier_id", dossierID),
			zap.Int("sources", len(sources)),
			zap.Error(err),
		)
		return nil, err
	}
	s.logger.Info("merge dossier pdf success",
		zap.String("dossier_id", dossierID),
		zap.Int("sources", len(sources)),
	)

	return out.Bytes(), nil
}
