package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	employeeerrors "github.com/STS-Engineer/rh-app-backend/internal/employee/errors"
	"github.com/STS-Engineer/rh-app-backend/internal/events"
	"github.com/STS-Engineer/rh-app-backend/internal/messaging/kafka"
	"github.com/STS-Engineer/rh-app-backend/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, statut string) ([]EmployeeResponse, error)
	Search(ctx context.Context, q, statut string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Archive(ctx context.Context, id string, req ArchiveEmployeeRequest) (EmployeeResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	outboxRepo kafka.OutboxRepository
	logger     *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// NewServiceWithOutbox additionally records an employee-created event in
// the same transaction as the insert.
func NewServiceWithOutbox(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{db: db, repo: repo, outboxRepo: outboxRepo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("create employee requested", zap.String("matricule", req.Matricule))

	e, err := buildEmployee(req)
	if err != nil {
		s.logger.Warn("create employee validation failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, e); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outboxRepo != nil {
		if err := s.enqueueCreatedEvent(ctx, tx, e); err != nil {
			s.logger.Error("create employee outbox failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("create employee success",
		zap.String("employee_id", e.ID.String()),
		zap.String("matricule", e.Matricule),
	)
	return mapToResponse(*e), nil
}

func (s *service) enqueueCreatedEvent(ctx context.Context, tx *sql.Tx, e *Employee) error {
	event := events.EmployeeCreatedEvent{
		EventType:  "employee.created",
		EmployeeID: e.ID.String(),
		Matricule:  e.Matricule,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "employee",
		AggregateID:   e.ID.String(),
		EventType:     event.EventType,
		Topic:         events.EmployeeCreatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) GetAll(ctx context.Context, statut string) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAllByStatut(ctx, statut)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(employees), nil
}

func (s *service) Search(ctx context.Context, q, statut string) ([]EmployeeResponse, error) {
	employees, err := s.repo.Search(ctx, q, statut)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(employees), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	e, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := applyUpdate(e, req); err != nil {
		s.logger.Warn("update employee validation failed",
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return EmployeeResponse{}, err
	}

	if err := qtx.Update(ctx, e); err != nil {
		s.logger.Error("update employee persist failed",
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.logger.Info("update employee success", zap.String("employee_id", id))
	return mapToResponse(*e), nil
}

func (s *service) Archive(ctx context.Context, id string, req ArchiveEmployeeRequest) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	e, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if e.Statut == StatutArchive {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeArchived
	}

	now := time.Now().UTC()
	e.Statut = StatutArchive
	e.DateDepart = &now
	e.EntretienDepart = req.EntretienDepart

	if err := qtx.Update(ctx, e); err != nil {
		s.logger.Error("archive employee persist failed",
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.logger.Info("archive employee success", zap.String("employee_id", id))
	return mapToResponse(*e), nil
}

func buildEmployee(req CreateEmployeeRequest) (*Employee, error) {
	dateNaissance, err := parseDate(req.DateNaissance)
	if err != nil {
		return nil, err
	}
	dateDebut, err := parseDate(req.DateDebut)
	if err != nil {
		return nil, err
	}

	e := &Employee{
		ID:                uuid.New(),
		Matricule:         req.Matricule,
		Nom:               req.Nom,
		Prenom:            req.Prenom,
		CIN:               req.CIN,
		Passeport:         req.Passeport,
		DateNaissance:     dateNaissance,
		Poste:             req.Poste,
		SiteDep:           req.SiteDep,
		TypeContrat:       req.TypeContrat,
		DateDebut:         dateDebut,
		Photo:             req.Photo,
		DossierRH:         req.DossierRH,
		Email:             req.Email,
		EmailResponsable1: req.EmailResponsable1,
		EmailResponsable2: req.EmailResponsable2,
		Statut:            StatutActif,
	}
	if req.SalaireBrute != nil {
		e.SalaireBrute = *req.SalaireBrute
	}

	if e.Photo == "" {
		e.Photo = defaultAvatarURL(req.Prenom, req.Nom)
	}

	if e.DateEmissionPasseport, err = parseOptionalDate(req.DateEmissionPasseport); err != nil {
		return nil, err
	}
	if e.DateExpirationPasseport, err = parseOptionalDate(req.DateExpirationPasseport); err != nil {
		return nil, err
	}
	if e.DateFinContrat, err = parseOptionalDate(req.DateFinContrat); err != nil {
		return nil, err
	}

	return e, nil
}

func applyUpdate(e *Employee, req UpdateEmployeeRequest) error {
	dateNaissance, err := parseDate(req.DateNaissance)
	if err != nil {
		return err
	}
	dateDebut, err := parseDate(req.DateDebut)
	if err != nil {
		return err
	}

	e.Matricule = req.Matricule
	e.Nom = req.Nom
	e.Prenom = req.Prenom
	e.CIN = req.CIN
	e.Passeport = req.Passeport
	e.DateNaissance = dateNaissance
	e.Poste = req.Poste
	e.SiteDep = req.SiteDep
	e.TypeContrat = req.TypeContrat
	e.DateDebut = dateDebut
	e.DossierRH = req.DossierRH
	e.Email = req.Email
	e.EmailResponsable1 = req.EmailResponsable1
	e.EmailResponsable2 = req.EmailResponsable2
	if req.SalaireBrute != nil {
		e.SalaireBrute = *req.SalaireBrute
	}

	e.Photo = req.Photo
	if e.Photo == "" || !isValidURL(e.Photo) {
		e.Photo = defaultAvatarURL(req.Prenom, req.Nom)
	}

	if e.DateEmissionPasseport, err = parseOptionalDate(req.DateEmissionPasseport); err != nil {
		return err
	}
	if e.DateExpirationPasseport, err = parseOptionalDate(req.DateExpirationPasseport); err != nil {
		return err
	}
	if e.DateFinContrat, err = parseOptionalDate(req.DateFinContrat); err != nil {
		return err
	}
	if e.DateDepart, err = parseOptionalDate(req.DateDepart); err != nil {
		return err
	}

	return nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, employeeerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func parseOptionalDate(v *string) (*time.Time, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	t, err := parseDate(*v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func isValidURL(v string) bool {
	u, err := url.Parse(v)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func defaultAvatarURL(prenom, nom string) string {
	initials := ""
	if prenom != "" {
		initials += string([]rune(prenom)[0:1])
	}
	if nom != "" {
		initials += string([]rune(nom)[0:1])
	}
	return fmt.Sprintf(
		"https://ui-avatars.com/api/?name=%s&background=3498db&color=fff&size=150",
		url.QueryEscape(initials),
	)
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := formatDate(*t)
	return &v
}

func mapToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                      e.ID.String(),
		Matricule:               e.Matricule,
		Nom:                     e.Nom,
		Prenom:                  e.Prenom,
		CIN:                     e.CIN,
		Passeport:               e.Passeport,
		DateEmissionPasseport:   formatOptionalDate(e.DateEmissionPasseport),
		DateExpirationPasseport: formatOptionalDate(e.DateExpirationPasseport),
		DateNaissance:           formatDate(e.DateNaissance),
		Poste:                   e.Poste,
		SiteDep:                 e.SiteDep,
		TypeContrat:             e.TypeContrat,
		DateDebut:               formatDate(e.DateDebut),
		DateFinContrat:          formatOptionalDate(e.DateFinContrat),
		SalaireBrute:            e.SalaireBrute,
		Photo:                   e.Photo,
		DossierRH:               e.DossierRH,
		Email:                   e.Email,
		EmailResponsable1:       e.EmailResponsable1,
		EmailResponsable2:       e.EmailResponsable2,
		Statut:                  e.Statut,
		DateDepart:              formatOptionalDate(e.DateDepart),
		EntretienDepart:         e.EntretienDepart,
	}
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = mapToResponse(e)
	}
	return resp
}
