package demande

import (
	"context"
	"database/sql"
	"errors"
	"time"

	demandeerrors "github.com/STS-Engineer/rh-app-backend/internal/demande/errors"
	"github.com/STS-Engineer/rh-app-backend/internal/employee"
	"github.com/STS-Engineer/rh-app-backend/internal/shared/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmployeeReader is the slice of the employee repository the demande
// service needs. Derivation depends on whether the employee has a second
// responsable configured.
type EmployeeReader interface {
	FindByID(ctx context.Context, id string) (*employee.Employee, error)
}

//go:generate mockgen -source=demande_service.go -destination=mock/demande_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDemandeRequest) (DemandeResponse, error)
	GetAll(ctx context.Context, q ListDemandesQuery) ([]DemandeResponse, response.PaginationMeta, error)
	GetByID(ctx context.Context, id string) (DemandeResponse, error)
	Update(ctx context.Context, id string, req UpdateDemandeRequest) (DemandeResponse, error)
	UpdateStatut(ctx context.Context, id string, req UpdateStatutRequest) (DemandeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees EmployeeReader
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, employees EmployeeReader, logger ...*zap.Logger) Service {
	l := zap.L().Named("demande.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("demande.service")
	}
	return &service{db: db, repo: repo, employees: employees, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateDemandeRequest) (DemandeResponse, error) {
	s.logger.Debug("create demande requested",
		zap.String("employe_id", req.EmployeID),
		zap.String("type_demande", req.TypeDemande),
	)

	employeUUID, err := uuid.Parse(req.EmployeID)
	if err != nil {
		return DemandeResponse{}, demandeerrors.ErrInvalidEmployeeID
	}
	depart, retour, err := parseDateRange(req.DateDepart, req.DateRetour)
	if err != nil {
		return DemandeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create demande begin tx failed", zap.Error(err))
		return DemandeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp, err := s.employees.FindByID(ctx, req.EmployeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DemandeResponse{}, demandeerrors.ErrEmployeeNotFound
		}
		return DemandeResponse{}, err
	}

	d := &Demande{
		ID:               uuid.New(),
		EmployeID:        employeUUID,
		TypeDemande:      req.TypeDemande,
		Titre:            req.Titre,
		TypeConge:        req.TypeConge,
		TypeCongeAutre:   req.TypeCongeAutre,
		DateDepart:       depart,
		DateRetour:       retour,
		HeureDepart:      req.HeureDepart,
		HeureRetour:      req.HeureRetour,
		DemiJournee:      req.DemiJournee,
		FraisDeplacement: req.FraisDeplacement,
		Statut:           StatusPending,
	}

	if err := qtx.Create(ctx, d); err != nil {
		s.logger.Error("create demande persist failed", zap.Error(err))
		return DemandeResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create demande commit failed", zap.Error(err))
		return DemandeResponse{}, err
	}
	s.logger.Info("create demande success",
		zap.String("demande_id", d.ID.String()),
		zap.String("employe_id", req.EmployeID),
	)

	d.Employe = emp
	return mapToResponse(*d), nil
}

func (s *service) GetAll(ctx context.Context, q ListDemandesQuery) ([]DemandeResponse, response.PaginationMeta, error) {
	filter := ListFilter{
		TypeDemande: q.TypeDemande,
		Statut:      q.Statut,
		EmployeID:   q.EmployeID,
		Page:        q.Page,
		Limit:       q.Limit,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	if q.DateFrom != "" {
		t, err := parseDate(q.DateFrom)
		if err != nil {
			return nil, response.PaginationMeta{}, err
		}
		filter.DateFrom = &t
	}
	if q.DateTo != "" {
		t, err := parseDate(q.DateTo)
		if err != nil {
			return nil, response.PaginationMeta{}, err
		}
		filter.DateTo = &t
	}

	demandes, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, response.PaginationMeta{}, err
	}
	return mapToListResponse(demandes), response.NewPaginationMeta(total, filter.Page, filter.Limit), nil
}

func (s *service) GetByID(ctx context.Context, id string) (DemandeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DemandeResponse{}, demandeerrors.ErrInvalidDemandeID
	}
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DemandeResponse{}, demandeerrors.ErrDemandeNotFound
		}
		return DemandeResponse{}, err
	}
	return mapToResponse(*d), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDemandeRequest) (DemandeResponse, error) {
	s.logger.Debug("update demande requested", zap.String("demande_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return DemandeResponse{}, demandeerrors.ErrInvalidDemandeID
	}
	depart, retour, err := parseDateRange(req.DateDepart, req.DateRetour)
	if err != nil {
		return DemandeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update demande begin tx failed", zap.Error(err))
		return DemandeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	d, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DemandeResponse{}, demandeerrors.ErrDemandeNotFound
		}
		return DemandeResponse{}, err
	}

	hasResponsable2, err := s.hasSecondResponsable(ctx, d)
	if err != nil {
		return DemandeResponse{}, err
	}

	d.TypeDemande = req.TypeDemande
	d.Titre = req.Titre
	d.TypeConge = req.TypeConge
	d.TypeCongeAutre = req.TypeCongeAutre
	d.DateDepart = depart
	d.DateRetour = retour
	d.HeureDepart = req.HeureDepart
	d.HeureRetour = req.HeureRetour
	d.DemiJournee = req.DemiJournee
	d.FraisDeplacement = req.FraisDeplacement
	d.ApprouveResponsable1 = req.ApprouveResponsable1
	d.ApprouveResponsable2 = req.ApprouveResponsable2

	// IN_PROGRESS is operator-set and survives until an approval flag
	// changes; everything else is recomputed from the flags.
	derived := DeriveStatus(d.ApprouveResponsable1, d.ApprouveResponsable2, hasResponsable2)
	if !(d.Statut == StatusInProgress && derived == StatusPending) {
		d.Statut = derived
	}

	if d.Statut == StatusRefused {
		if req.CommentaireRefus == nil || *req.CommentaireRefus == "" {
			return DemandeResponse{}, demandeerrors.ErrRefusCommentRequired
		}
		d.CommentaireRefus = req.CommentaireRefus
	} else {
		d.CommentaireRefus = nil
	}

	if err := qtx.Update(ctx, d); err != nil {
		s.logger.Error("update demande persist failed",
			zap.String("demande_id", id),
			zap.Error(err),
		)
		return DemandeResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update demande commit failed",
			zap.String("demande_id", id),
			zap.Error(err),
		)
		return DemandeResponse{}, err
	}
	s.logger.Info("update demande success",
		zap.String("demande_id", id),
		zap.String("statut", d.Statut),
	)

	return mapToResponse(*d), nil
}

func (s *service) UpdateStatut(ctx context.Context, id string, req UpdateStatutRequest) (DemandeResponse, error) {
	s.logger.Debug("update demande statut requested",
		zap.String("demande_id", id),
		zap.String("target_statut", req.Statut),
	)

	if _, err := uuid.Parse(id); err != nil {
		return DemandeResponse{}, demandeerrors.ErrInvalidDemandeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update demande statut begin tx failed", zap.Error(err))
		return DemandeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	d, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DemandeResponse{}, demandeerrors.ErrDemandeNotFound
		}
		return DemandeResponse{}, err
	}

	switch req.Statut {
	case StatusRefused:
		if req.CommentaireRefus == nil || *req.CommentaireRefus == "" {
			return DemandeResponse{}, demandeerrors.ErrRefusCommentRequired
		}
		f := false
		d.ApprouveResponsable1 = &f
		d.CommentaireRefus = req.CommentaireRefus
	case StatusApproved:
		t := true
		d.ApprouveResponsable1 = &t
		hasResponsable2, err := s.hasSecondResponsable(ctx, d)
		if err != nil {
			return DemandeResponse{}, err
		}
		if hasResponsable2 {
			d.ApprouveResponsable2 = &t
		}
		d.CommentaireRefus = nil
	case StatusPending:
		d.ApprouveResponsable1 = nil
		d.ApprouveResponsable2 = nil
		d.CommentaireRefus = nil
	}
	d.Statut = req.Statut

	if err := qtx.Update(ctx, d); err != nil {
		s.logger.Error("update demande statut persist failed",
			zap.String("demande_id", id),
			zap.Error(err),
		)
		return DemandeResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update demande statut commit failed",
			zap.String("demande_id", id),
			zap.Error(err),
		)
		return DemandeResponse{}, err
	}
	s.logger.Info("update demande statut success",
		zap.String("demande_id", id),
		zap.String("statut", d.Statut),
	)

	return mapToResponse(*d), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return demandeerrors.ErrInvalidDemandeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if _, err := qtx.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return demandeerrors.ErrDemandeNotFound
		}
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("delete demande success", zap.String("demande_id", id))
	return nil
}

func (s *service) hasSecondResponsable(ctx context.Context, d *Demande) (bool, error) {
	if d.Employe != nil {
		return d.Employe.EmailResponsable2 != nil && *d.Employe.EmailResponsable2 != "", nil
	}
	emp, err := s.employees.FindByID(ctx, d.EmployeID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, demandeerrors.ErrEmployeeNotFound
		}
		return false, err
	}
	d.Employe = emp
	return emp.EmailResponsable2 != nil && *emp.EmailResponsable2 != "", nil
}

func parseDateRange(departStr, retourStr string) (time.Time, time.Time, error) {
	depart, err := parseDate(departStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	retour, err := parseDate(retourStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if depart.After(retour) {
		return time.Time{}, time.Time{}, demandeerrors.ErrInvalidDateRange
	}
	return depart, retour, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, demandeerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(d Demande) DemandeResponse {
	resp := DemandeResponse{
		ID:                   d.ID.String(),
		EmployeID:            d.EmployeID.String(),
		TypeDemande:          d.TypeDemande,
		Titre:                d.Titre,
		TypeConge:            d.TypeConge,
		TypeCongeAutre:       d.TypeCongeAutre,
		DateDepart:           d.DateDepart.Format("2006-01-02"),
		DateRetour:           d.DateRetour.Format("2006-01-02"),
		HeureDepart:          d.HeureDepart,
		HeureRetour:          d.HeureRetour,
		DemiJournee:          d.DemiJournee,
		FraisDeplacement:     d.FraisDeplacement,
		Statut:               d.Statut,
		ApprouveResponsable1: d.ApprouveResponsable1,
		ApprouveResponsable2: d.ApprouveResponsable2,
		CommentaireRefus:     d.CommentaireRefus,
		CreatedAt:            d.CreatedAt.Format(time.RFC3339),
	}
	if d.Employe != nil {
		resp.EmployeNom = d.Employe.Nom
		resp.EmployePrenom = d.Employe.Prenom
		resp.EmployeMatricule = d.Employe.Matricule
	}
	return resp
}

func mapToListResponse(demandes []Demande) []DemandeResponse {
	resp := make([]DemandeResponse, len(demandes))
	for i, d := range demandes {
		resp[i] = mapToResponse(d)
	}
	return resp
}
