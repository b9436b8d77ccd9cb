package employee_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/STS-Engineer/rh-app-backend/internal/employee"
	"github.com/STS-Engineer/rh-app-backend/internal/mailer"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type sweepMailer struct {
	sent []mailer.Message
	err  error
}

func (m *sweepMailer) Send(_ context.Context, msg mailer.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestContractAlertService_Sweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)

	t.Run("queries today plus one month and stamps each match", func(t *testing.T) {
		emp := employee.Employee{
			ID:        uuid.New(),
			Matricule: "EMP007",
			Nom:       "Martin",
			Prenom:    "Marie",
		}

		var gotEndDate, gotAlertedBefore time.Time
		stamped := map[string]time.Time{}

		repo := &fakeEmployeeRepository{
			findContractsEndingFn: func(_ context.Context, endDate, alertedBefore time.Time) ([]employee.Employee, error) {
				gotEndDate = endDate
				gotAlertedBefore = alertedBefore
				return []employee.Employee{emp}, nil
			},
			stampContractAlertFn: func(_ context.Context, id string, at time.Time) error {
				stamped[id] = at
				return nil
			},
		}
		mail := &sweepMailer{}
		svc := employee.NewContractAlertService(repo, mail).
			WithClock(fixedClock(now)).
			WithRecipient("rh@avocarbon.com")

		sent, err := svc.Sweep(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 1, sent)

		assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), gotEndDate)
		assert.Equal(t, now.Add(-7*24*time.Hour), gotAlertedBefore)

		assert.Len(t, mail.sent, 1)
		assert.Equal(t, []string{"rh@avocarbon.com"}, mail.sent[0].To)
		assert.Contains(t, mail.sent[0].Body, "EMP007")

		_, ok := stamped[emp.ID.String()]
		assert.True(t, ok)
	})

	t.Run("no matches means no email", func(t *testing.T) {
		mail := &sweepMailer{}
		svc := employee.NewContractAlertService(&fakeEmployeeRepository{}, mail).
			WithClock(fixedClock(now)).
			WithRecipient("rh@avocarbon.com")

		sent, err := svc.Sweep(ctx)
		assert.NoError(t, err)
		assert.Zero(t, sent)
		assert.Empty(t, mail.sent)
	})

	t.Run("failed email leaves the stamp untouched for retry", func(t *testing.T) {
		stampCalls := 0
		repo := &fakeEmployeeRepository{
			findContractsEndingFn: func(context.Context, time.Time, time.Time) ([]employee.Employee, error) {
				return []employee.Employee{{ID: uuid.New(), Matricule: "EMP001"}}, nil
			},
			stampContractAlertFn: func(context.Context, string, time.Time) error {
				stampCalls++
				return nil
			},
		}
		mail := &sweepMailer{err: errors.New("relay down")}
		svc := employee.NewContractAlertService(repo, mail).
			WithClock(fixedClock(now)).
			WithRecipient("rh@avocarbon.com")

		sent, err := svc.Sweep(ctx)
		assert.NoError(t, err)
		assert.Zero(t, sent)
		assert.Zero(t, stampCalls)
	})

	t.Run("second sweep same day is a no-op via the stamp filter", func(t *testing.T) {
		alerted := now
		repo := &fakeEmployeeRepository{
			findContractsEndingFn: func(_ context.Context, _, alertedBefore time.Time) ([]employee.Employee, error) {
				// The repository filter excludes freshly stamped rows.
				if alerted.After(alertedBefore) {
					return nil, nil
				}
				return []employee.Employee{{ID: uuid.New()}}, nil
			},
		}
		mail := &sweepMailer{}
		svc := employee.NewContractAlertService(repo, mail).
			WithClock(fixedClock(now.Add(2 * time.Hour))).
			WithRecipient("rh@avocarbon.com")

		sent, err := svc.Sweep(ctx)
		assert.NoError(t, err)
		assert.Zero(t, sent)
	})
}
