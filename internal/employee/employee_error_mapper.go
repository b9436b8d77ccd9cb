package employee

import (
	"errors"
	"strings"

	employeeerrors "github.com/STS-Engineer/rh-app-backend/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_employees_matricule":
				return employeeerrors.ErrMatriculeAlreadyExists
			case "uq_employees_cin":
				return employeeerrors.ErrCINAlreadyExists
			}
		}
	}

	// Drivers sometimes surface the violation as plain text.
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "matricule") {
		return employeeerrors.ErrMatriculeAlreadyExists
	}
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "cin") {
		return employeeerrors.ErrCINAlreadyExists
	}

	return err
}
