package demandeerrors

import (
	"net/http"

	"github.com/STS-Engineer/rh-app-backend/internal/shared/apperror"
)

var (
	ErrInvalidDemandeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid demande id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"date_retour must be on or after date_depart",
		http.StatusBadRequest,
	)
	ErrInvalidTypeDemande = apperror.New(
		apperror.CodeInvalidInput,
		"type_demande must be one of conge, absence, frais_deplacement, autre",
		http.StatusBadRequest,
	)
	ErrDemandeNotFound = apperror.New(
		apperror.CodeNotFound,
		"demande not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrInvalidStatut = apperror.New(
		apperror.CodeInvalidInput,
		"statut must be one of PENDING, APPROVED, REFUSED, IN_PROGRESS",
		http.StatusBadRequest,
	)
	ErrRefusCommentRequired = apperror.New(
		apperror.CodeInvalidInput,
		"commentaire_refus is required when a demande is refused",
		http.StatusBadRequest,
	)
)
