package visaerrors

import (
	"net/http"

	"github.com/STS-Engineer/rh-app-backend/internal/shared/apperror"
)

var (
	ErrInvalidDossierID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid dossier id",
		http.StatusBadRequest,
	)
	ErrInvalidDocumentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid document id",
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
	ErrDossierNotFound = apperror.New(
		apperror.CodeNotFound,
		"dossier not found",
		http.StatusNotFound,
	)
	ErrDocumentNotFound = apperror.New(
		apperror.CodeNotFound,
		"document not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid dossier status transition",
		http.StatusBadRequest,
	)
	ErrDocumentNotUploadable = apperror.New(
		apperror.CodeInvalidState,
		"document is tracked as a physical item and cannot receive an upload",
		http.StatusBadRequest,
	)
	ErrDocumentNotPhysical = apperror.New(
		apperror.CodeInvalidState,
		"document expects a file upload and cannot be marked received physically",
		http.StatusBadRequest,
	)
	ErrPDFRequired = apperror.New(
		apperror.CodeInvalidInput,
		"pdfFile must be a PDF document",
		http.StatusBadRequest,
	)
	ErrFileRequired = apperror.New(
		apperror.CodeInvalidInput,
		"pdfFile is required",
		http.StatusBadRequest,
	)
	ErrNoMergeablePDF = apperror.New(
		apperror.CodeInvalidInput,
		"dossier has no uploaded PDF documents to merge",
		http.StatusBadRequest,
	)
	ErrVisaDecisionImmutable = apperror.New(
		apperror.CodeInvalidState,
		"numero_visa and date_validite are already set",
		http.StatusBadRequest,
	)
)
