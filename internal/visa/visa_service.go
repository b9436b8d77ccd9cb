package visa

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/STS-Engineer/rh-app-backend/internal/employee"
	"github.com/STS-Engineer/rh-app-backend/internal/events"
	"github.com/STS-Engineer/rh-app-backend/internal/mailer"
	"github.com/STS-Engineer/rh-app-backend/internal/messaging/kafka"
	"github.com/STS-Engineer/rh-app-backend/internal/shared/contextutil"
	"github.com/STS-Engineer/rh-app-backend/internal/shared/storage"
	visaerrors "github.com/STS-Engineer/rh-app-backend/internal/visa/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmployeeReader is the slice of the employee repository the visa service
// needs for dossier emails and document generation.
type EmployeeReader interface {
	FindByID(ctx context.Context, id string) (*employee.Employee, error)
}

//go:generate mockgen -source=visa_service.go -destination=mock/visa_service_mock.go -package=mock
type Service interface {
	CreateDossier(ctx context.Context, req CreateDossierRequest) (CreateDossierResponse, error)
	GetAllDossiers(ctx context.Context) ([]DossierResponse, error)
	GetDossierByID(ctx context.Context, id string) (DossierResponse, error)
	UpdateDossierStatus(ctx context.Context, id string, req UpdateDossierStatusRequest) (DossierResponse, error)
	UploadDocument(ctx context.Context, documentID, originalFilename string, data []byte) (DocumentResponse, error)
	UpdateDocument(ctx context.Context, documentID string, req UpdateDocumentRequest) (DocumentResponse, error)
	GenerateAttestationTravail(ctx context.Context, req AttestationTravailRequest) (DocumentResponse, error)
	GenerateInvitationPriseEnCharge(ctx context.Context, req InvitationPriseEnChargeRequest) (DocumentResponse, error)
	GenerateOrdreMission(ctx context.Context, req OrdreMissionRequest) (DocumentResponse, error)
	MergeDossierPDF(ctx context.Context, dossierID string) ([]byte, error)
	SendAssuranceEmail(ctx context.Context, dossierID string) (bool, error)
	SendBilletEmail(ctx context.Context, dossierID string) (bool, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	employees  EmployeeReader
	store      storage.Store
	mail       mailer.Mailer
	outboxRepo kafka.OutboxRepository
	backoffice string
	logger     *zap.Logger
}

// NewService reads the fixed back-office recipient from BACKOFFICE_EMAIL.
func NewService(db *sql.DB, repo Repository, employees EmployeeReader, store storage.Store, mail mailer.Mailer, logger ...*zap.Logger) Service {
	l := zap.L().Named("visa.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("visa.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		employees:  employees,
		store:      store,
		mail:       mail,
		backoffice: os.Getenv("BACKOFFICE_EMAIL"),
		logger:     l,
	}
}

func NewServiceWithOutbox(db *sql.DB, repo Repository, employees EmployeeReader, store storage.Store, mail mailer.Mailer, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	svc := NewService(db, repo, employees, store, mail, logger...).(*service)
	svc.outboxRepo = outboxRepo
	return svc
}

func (s *service) CreateDossier(ctx context.Context, req CreateDossierRequest) (CreateDossierResponse, error) {
	s.logger.Debug("create dossier requested",
		zap.String("employe_id", req.EmployeID),
		zap.String("motif", req.Motif),
	)

	employeUUID, err := uuid.Parse(req.EmployeID)
	if err != nil {
		return CreateDossierResponse{}, visaerrors.ErrInvalidEmployeeID
	}
	depart, err := parseDate(req.DateDepart)
	if err != nil {
		return CreateDossierResponse{}, err
	}
	retour, err := parseDate(req.DateRetour)
	if err != nil {
		return CreateDossierResponse{}, err
	}
	if retour.Before(depart) {
		return CreateDossierResponse{}, visaerrors.ErrInvalidDateRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create dossier begin tx failed", zap.Error(err))
		return CreateDossierResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp, err := s.employees.FindByID(ctx, req.EmployeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CreateDossierResponse{}, visaerrors.ErrEmployeeNotFound
		}
		return CreateDossierResponse{}, err
	}

	dossier := &VisaDossier{
		ID:         uuid.New(),
		EmployeID:  employeUUID,
		Motif:      req.Motif,
		DateDepart: depart,
		DateRetour: retour,
		Statut:     StatusDocumentsPending,
	}
	if err := qtx.CreateDossier(ctx, dossier); err != nil {
		s.logger.Error("create dossier persist failed", zap.Error(err))
		return CreateDossierResponse{}, err
	}

	items := Checklist()
	docs := make([]VisaDocument, len(items))
	now := time.Now().UTC()
	for i, item := range items {
		docs[i] = VisaDocument{
			ID:        uuid.New(),
			DossierID: dossier.ID,
			Code:      item.Code,
			Label:     item.Label,
			Mode:      item.Mode,
			Statut:    DocStatusMissing,
			// Insertion order is the merge order later on.
			CreatedAt: now.Add(time.Duration(i) * time.Millisecond),
		}
	}
	if err := qtx.CreateDocuments(ctx, docs); err != nil {
		s.logger.Error("create dossier checklist persist failed", zap.Error(err))
		return CreateDossierResponse{}, err
	}

	if s.outboxRepo != nil {
		if err := s.enqueueCreatedEvent(ctx, tx, dossier); err != nil {
			s.logger.Error("create dossier outbox failed", zap.Error(err))
			return CreateDossierResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create dossier commit failed", zap.Error(err))
		return CreateDossierResponse{}, err
	}
	s.logger.Info("create dossier success",
		zap.String("dossier_id", dossier.ID.String()),
		zap.String("employe_id", req.EmployeID),
		zap.Int("documents", len(docs)),
	)

	// Email is best effort: the dossier is already committed, the caller
	// only learns whether the notification went out.
	emailSent := false
	if emp.Email != nil && *emp.Email != "" {
		msg := mailer.DocumentsRequired(emp.FullName(), dossier.Motif, PhysicalLabels())
		msg.To = []string{*emp.Email}
		if err := s.mail.Send(ctx, msg); err != nil {
			s.logger.Warn("create dossier email failed",
				zap.String("dossier_id", dossier.ID.String()),
				zap.Error(err),
			)
		} else {
			emailSent = true
		}
	} else {
		s.logger.Warn("create dossier employee has no email",
			zap.String("employe_id", req.EmployeID),
		)
	}

	dossier.Employe = emp
	dossier.Documents = docs
	return CreateDossierResponse{Dossier: mapDossierToResponse(*dossier), EmailSent: emailSent}, nil
}

func (s *service) enqueueCreatedEvent(ctx context.Context, tx *sql.Tx, d *VisaDossier) error {
	event := events.VisaDossierCreatedEvent{
		EventType:     "visa.dossier.created",
		DossierID:     d.ID.String(),
		EmployeeID:    d.EmployeID.String(),
		Motif:         d.Motif,
		DepartureDate: d.DateDepart.Format("2006-01-02"),
		ReturnDate:    d.DateRetour.Format("2006-01-02"),
		OccurredAt:    time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "visa_dossier",
		AggregateID:   d.ID.String(),
		EventType:     event.EventType,
		Topic:         events.VisaDossierTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) enqueueStatusChangedEvent(ctx context.Context, tx *sql.Tx, d *VisaDossier, from string) error {
	event := events.VisaDossierStatusChangedEvent{
		EventType:  "visa.dossier.status_changed",
		DossierID:  d.ID.String(),
		FromStatus: from,
		ToStatus:   d.Statut,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "visa_dossier",
		AggregateID:   d.ID.String(),
		EventType:     event.EventType,
		Topic:         events.VisaDossierTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) GetAllDossiers(ctx context.Context) ([]DossierResponse, error) {
	dossiers, err := s.repo.FindAllDossiers(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]DossierResponse, len(dossiers))
	for i, d := range dossiers {
		resp[i] = mapDossierToResponse(d)
	}
	return resp, nil
}

func (s *service) GetDossierByID(ctx context.Context, id string) (DossierResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DossierResponse{}, visaerrors.ErrInvalidDossierID
	}
	d, err := s.repo.FindDossierByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DossierResponse{}, visaerrors.ErrDossierNotFound
		}
		return DossierResponse{}, err
	}
	return mapDossierToResponse(*d), nil
}

func (s *service) UpdateDossierStatus(ctx context.Context, id string, req UpdateDossierStatusRequest) (DossierResponse, error) {
	s.logger.Debug("update dossier status requested",
		zap.String("dossier_id", id),
		zap.String("target_statut", req.Statut),
	)

	if _, err := uuid.Parse(id); err != nil {
		return DossierResponse{}, visaerrors.ErrInvalidDossierID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update dossier status begin tx failed", zap.Error(err))
		return DossierResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	d, err := qtx.FindDossierByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DossierResponse{}, visaerrors.ErrDossierNotFound
		}
		return DossierResponse{}, err
	}
	from := d.Statut
	if !isAllowedStatusTransition(from, req.Statut) {
		s.logger.Warn("update dossier status invalid",
			zap.String("dossier_id", id),
			zap.String("from_statut", from),
			zap.String("to_statut", req.Statut),
		)
		return DossierResponse{}, visaerrors.ErrInvalidStatusTransition
	}
	d.Statut = req.Statut

	if req.Statut == StatusApproved && (req.NumeroVisa != nil || req.DateValidite != nil) {
		if d.NumeroVisa != nil || d.DateValidite != nil {
			return DossierResponse{}, visaerrors.ErrVisaDecisionImmutable
		}
		d.NumeroVisa = req.NumeroVisa
		if req.DateValidite != nil {
			validite, err := parseDate(*req.DateValidite)
			if err != nil {
				return DossierResponse{}, err
			}
			d.DateValidite = &validite
		}
	}

	if err := qtx.UpdateDossier(ctx, d); err != nil {
		s.logger.Error("update dossier status persist failed",
			zap.String("dossier_id", id),
			zap.Error(err),
		)
		return DossierResponse{}, err
	}
	if s.outboxRepo != nil {
		if err := s.enqueueStatusChangedEvent(ctx, tx, d, from); err != nil {
			s.logger.Error("update dossier status outbox failed", zap.Error(err))
			return DossierResponse{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update dossier status commit failed",
			zap.String("dossier_id", id),
			zap.Error(err),
		)
		return DossierResponse{}, err
	}
	s.logger.Info("update dossier status success",
		zap.String("dossier_id", id),
		zap.String("statut", d.Statut),
	)

	return mapDossierToResponse(*d), nil
}

func (s *service) UploadDocument(ctx context.Context, documentID, originalFilename string, data []byte) (DocumentResponse, error) {
	s.logger.Debug("upload document requested",
		zap.String("document_id", documentID),
		zap.String("filename", originalFilename),
		zap.Int("size", len(data)),
	)

	if _, err := uuid.Parse(documentID); err != nil {
		return DocumentResponse{}, visaerrors.ErrInvalidDocumentID
	}
	if len(data) == 0 {
		return DocumentResponse{}, visaerrors.ErrFileRequired
	}
	if !isPDF(data) {
		return DocumentResponse{}, visaerrors.ErrPDFRequired
	}

	doc, err := s.repo.FindDocumentByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DocumentResponse{}, visaerrors.ErrDocumentNotFound
		}
		return DocumentResponse{}, err
	}
	if doc.Mode != ModeUpload {
		return DocumentResponse{}, visaerrors.ErrDocumentNotUploadable
	}

	return s.attachArtifact(ctx, doc, originalFilename, data)
}

// attachArtifact stores the file and overwrites the document row. Used by
// manual uploads and generated documents alike; each call is an independent
// last-write-wins overwrite.
func (s *service) attachArtifact(ctx context.Context, doc *VisaDocument, originalFilename string, data []byte) (DocumentResponse, error) {
	key, url, err := s.store.Save(originalFilename, data)
	if err != nil {
		s.logger.Error("store document artifact failed",
			zap.String("document_id", doc.ID.String()),
			zap.Error(err),
		)
		return DocumentResponse{}, err
	}

	doc.URL = &url
	doc.OriginalFilename = &originalFilename
	doc.StorageKey = &key
	doc.Statut = DocStatusUploaded

	if err := s.repo.UpdateDocument(ctx, doc); err != nil {
		s.logger.Error("update document row failed",
			zap.String("document_id", doc.ID.String()),
			zap.Error(err),
		)
		return DocumentResponse{}, err
	}
	s.logger.Info("document artifact attached",
		zap.String("document_id", doc.ID.String()),
		zap.String("code", doc.Code),
		zap.String("storage_key", key),
	)

	return mapDocumentToResponse(*doc), nil
}

func (s *service) UpdateDocument(ctx context.Context, documentID string, req UpdateDocumentRequest) (DocumentResponse, error) {
	if _, err := uuid.Parse(documentID); err != nil {
		return DocumentResponse{}, visaerrors.ErrInvalidDocumentID
	}

	doc, err := s.repo.FindDocumentByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DocumentResponse{}, visaerrors.ErrDocumentNotFound
		}
		return DocumentResponse{}, err
	}
	if doc.Mode != ModePhysical {
		return DocumentResponse{}, visaerrors.ErrDocumentNotPhysical
	}

	doc.Statut = DocStatusReceivedPhysical
	if err := s.repo.UpdateDocument(ctx, doc); err != nil {
		return DocumentResponse{}, err
	}
	s.logger.Info("document marked received",
		zap.String("document_id", documentID),
		zap.String("code", doc.Code),
	)
	return mapDocumentToResponse(*doc), nil
}

func (s *service) SendAssuranceEmail(ctx context.Context, dossierID string) (bool, error) {
	return s.sendTravelEmail(ctx, dossierID, mailer.AssuranceRequest)
}

func (s *service) SendBilletEmail(ctx context.Context, dossierID string) (bool, error) {
	return s.sendTravelEmail(ctx, dossierID, mailer.BilletRequest)
}

func (s *service) sendTravelEmail(ctx context.Context, dossierID string, build func(name, departure, ret string) mailer.Message) (bool, error) {
	if _, err := uuid.Parse(dossierID); err != nil {
		return false, visaerrors.ErrInvalidDossierID
	}
	// Dates are read fresh from the dossier so a status or date change
	// between request and send cannot leak stale values.
	d, err := s.repo.FindDossierByID(ctx, dossierID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, visaerrors.ErrDossierNotFound
		}
		return false, err
	}

	name := ""
	if d.Employe != nil {
		name = d.Employe.FullName()
	}
	msg := build(name, d.DateDepart.Format("2006-01-02"), d.DateRetour.Format("2006-01-02"))
	msg.To = []string{s.backoffice}

	if err := s.mail.Send(ctx, msg); err != nil {
		s.logger.Warn("travel email failed",
			zap.String("dossier_id", dossierID),
			zap.Error(err),
		)
		return false, nil
	}
	return true, nil
}

func isPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF"))
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, visaerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapDossierToResponse(d VisaDossier) DossierResponse {
	resp := DossierResponse{
		ID:         d.ID.String(),
		EmployeID:  d.EmployeID.String(),
		Motif:      d.Motif,
		DateDepart: d.DateDepart.Format("2006-01-02"),
		DateRetour: d.DateRetour.Format("2006-01-02"),
		Statut:     d.Statut,
		NumeroVisa: d.NumeroVisa,
		CreatedAt:  d.CreatedAt.Format(time.RFC3339),
	}
	if d.DateValidite != nil {
		v := d.DateValidite.Format("2006-01-02")
		resp.DateValidite = &v
	}
	if d.Employe != nil {
		resp.EmployeNom = d.Employe.Nom
		resp.EmployePrenom = d.Employe.Prenom
	}
	if len(d.Documents) > 0 {
		resp.Documents = make([]DocumentResponse, len(d.Documents))
		for i, doc := range d.Documents {
			resp.Documents[i] = mapDocumentToResponse(doc)
		}
	}
	return resp
}

func mapDocumentToResponse(doc VisaDocument) DocumentResponse {
	return DocumentResponse{
		ID:               doc.ID.String(),
		DossierID:        doc.DossierID.String(),
		Code:             doc.Code,
		Label:            doc.Label,
		Mode:             doc.Mode,
		Statut:           doc.Statut,
		URL:              doc.URL,
		OriginalFilename: doc.OriginalFilename,
		CreatedAt:        doc.CreatedAt.Format(time.RFC3339),
	}
}
