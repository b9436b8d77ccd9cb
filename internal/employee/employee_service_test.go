package employee_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/STS-Engineer/rh-app-backend/internal/employee"
	employeeerrors "github.com/STS-Engineer/rh-app-backend/internal/employee/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeEmployeeRepository struct {
	withTxFn              func(tx *sql.Tx) employee.Repository
	createFn              func(ctx context.Context, e *employee.Employee) error
	findAllByStatutFn     func(ctx context.Context, statut string) ([]employee.Employee, error)
	searchFn              func(ctx context.Context, q, statut string) ([]employee.Employee, error)
	findByIDFn            func(ctx context.Context, id string) (*employee.Employee, error)
	updateFn              func(ctx context.Context, e *employee.Employee) error
	findContractsEndingFn func(ctx context.Context, endDate, alertedBefore time.Time) ([]employee.Employee, error)
	stampContractAlertFn  func(ctx context.Context, id string, at time.Time) error
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, e)
	}
	return nil
}

func (f *fakeEmployeeRepository) FindAllByStatut(ctx context.Context, statut string) ([]employee.Employee, error) {
	if f.findAllByStatutFn != nil {
		return f.findAllByStatutFn(ctx, statut)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) Search(ctx context.Context, q, statut string) ([]employee.Employee, error) {
	if f.searchFn != nil {
		return f.searchFn(ctx, q, statut)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, e)
	}
	return nil
}

func (f *fakeEmployeeRepository) FindContractsEnding(ctx context.Context, endDate, alertedBefore time.Time) ([]employee.Employee, error) {
	if f.findContractsEndingFn != nil {
		return f.findContractsEndingFn(ctx, endDate, alertedBefore)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) StampContractAlert(ctx context.Context, id string, at time.Time) error {
	if f.stampContractAlertFn != nil {
		return f.stampContractAlertFn(ctx, id, at)
	}
	return nil
}

type employeeServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service employee.Service
	repo    *fakeEmployeeRepository
}

func setupEmployeeServiceTest(t *testing.T) *employeeServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := &fakeEmployeeRepository{}
	svc := employee.NewService(db, repo)

	return &employeeServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo}
}

func salaire(v float64) *float64 { return &v }

func validCreateRequest() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		Matricule:     "EMP001",
		Nom:           "Dupont",
		Prenom:        "Jean",
		CIN:           "AB123456",
		DateNaissance: "1990-05-15",
		Poste:         "Développeur",
		SiteDep:       "Siège Central",
		TypeContrat:   "CDI",
		DateDebut:     "2020-01-15",
		SalaireBrute:  salaire(35000),
	}
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success sets actif status and default avatar", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		var created *employee.Employee
		deps.repo.createFn = func(_ context.Context, e *employee.Employee) error {
			created = e
			return nil
		}

		resp, err := deps.service.Create(ctx, validCreateRequest())
		assert.NoError(t, err)
		assert.Equal(t, employee.StatutActif, resp.Statut)
		assert.Contains(t, created.Photo, "ui-avatars.com")
		assert.Equal(t, "EMP001", created.Matricule)
	})

	t.Run("bad date rejected before any write", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)

		req := validCreateRequest()
		req.DateNaissance = "15/05/1990"

		wroteRow := false
		deps.repo.createFn = func(context.Context, *employee.Employee) error {
			wroteRow = true
			return nil
		}

		_, err := deps.service.Create(ctx, req)
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidDateFormat)
		assert.False(t, wroteRow)
	})

	t.Run("duplicate matricule surfaces field-naming conflict", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.createFn = func(context.Context, *employee.Employee) error {
			return errDuplicate{`duplicate key value violates unique constraint "uq_employees_matricule"`}
		}

		_, err := deps.service.Create(ctx, validCreateRequest())
		assert.ErrorIs(t, err, employeeerrors.ErrMatriculeAlreadyExists)
	})
}

type errDuplicate struct{ msg string }

func (e errDuplicate) Error() string { return e.msg }

func TestEmployeeService_Archive(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("stamps date_depart and statut", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.findByIDFn = func(_ context.Context, gotID string) (*employee.Employee, error) {
			assert.Equal(t, id.String(), gotID)
			return &employee.Employee{
				ID:            id,
				Matricule:     "EMP001",
				Nom:           "Dupont",
				Prenom:        "Jean",
				CIN:           "AB123456",
				DateNaissance: time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC),
				DateDebut:     time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC),
				Statut:        employee.StatutActif,
			}, nil
		}

		note := "entretien réalisé"
		resp, err := deps.service.Archive(ctx, id.String(), employee.ArchiveEmployeeRequest{EntretienDepart: &note})
		assert.NoError(t, err)
		assert.Equal(t, employee.StatutArchive, resp.Statut)
		assert.NotNil(t, resp.DateDepart)
		assert.Equal(t, &note, resp.EntretienDepart)
	})

	t.Run("already archived rejected", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.findByIDFn = func(context.Context, string) (*employee.Employee, error) {
			return &employee.Employee{ID: id, Statut: employee.StatutArchive}, nil
		}

		_, err := deps.service.Archive(ctx, id.String(), employee.ArchiveEmployeeRequest{})
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeArchived)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Archive(ctx, uuid.New().String(), employee.ArchiveEmployeeRequest{})
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_GetByID(t *testing.T) {
	deps := setupEmployeeServiceTest(t)

	_, err := deps.service.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
}
