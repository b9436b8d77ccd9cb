package employeeerrors

import (
	"net/http"

	"github.com/STS-Engineer/rh-app-backend/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
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
	ErrMatriculeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"matricule already exists",
		http.StatusBadRequest,
	)
	ErrCINAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"cin already exists",
		http.StatusBadRequest,
	)
	ErrEmployeeArchived = apperror.New(
		apperror.CodeInvalidState,
		"employee is already archived",
		http.StatusBadRequest,
	)
)
