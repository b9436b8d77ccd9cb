package employee

import (
	"context"
	"os"
	"time"

	"github.com/STS-Engineer/rh-app-backend/internal/mailer"

	"go.uber.org/zap"
)

const contractAlertDedupWindow = 7 * 24 * time.Hour

// ContractAlertService runs the daily contract-end sweep: employees whose
// contract ends exactly one month from today get one alert email to the HR
// recipient. The per-employee stamp makes a same-day re-run a no-op, so
// concurrent sweeps need no global lock.
type ContractAlertService struct {
	repo   Repository
	mail   mailer.Mailer
	hrTo   string
	now    func() time.Time
	logger *zap.Logger
}

func NewContractAlertService(repo Repository, mail mailer.Mailer, logger ...*zap.Logger) *ContractAlertService {
	l := zap.L().Named("employee.contract_alert")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.contract_alert")
	}
	return &ContractAlertService{
		repo:   repo,
		mail:   mail,
		hrTo:   os.Getenv("HR_ALERT_EMAIL"),
		now:    time.Now,
		logger: l,
	}
}

// WithClock overrides the time source. Test hook.
func (s *ContractAlertService) WithClock(now func() time.Time) *ContractAlertService {
	s.now = now
	return s
}

// WithRecipient overrides the HR recipient read from the environment.
func (s *ContractAlertService) WithRecipient(to string) *ContractAlertService {
	s.hrTo = to
	return s
}

// Sweep alerts every matching employee once and stamps last_contract_alert.
// Returns the number of alerts sent. The stamp is written only after a
// successful send so a failed email is retried on the next sweep.
func (s *ContractAlertService) Sweep(ctx context.Context) (int, error) {
	today := s.now().UTC().Truncate(24 * time.Hour)
	target := today.AddDate(0, 1, 0)
	alertedBefore := s.now().UTC().Add(-contractAlertDedupWindow)

	matches, err := s.repo.FindContractsEnding(ctx, target, alertedBefore)
	if err != nil {
		s.logger.Error("contract alert query failed", zap.Error(err))
		return 0, err
	}

	sent := 0
	for _, e := range matches {
		msg := mailer.ContractEndAlert(e.FullName(), e.Matricule, target.Format("2006-01-02"))
		msg.To = []string{s.hrTo}

		if err := s.mail.Send(ctx, msg); err != nil {
			s.logger.Warn("contract alert email failed",
				zap.String("employee_id", e.ID.String()),
				zap.Error(err),
			)
			continue
		}

		if err := s.repo.StampContractAlert(ctx, e.ID.String(), s.now().UTC()); err != nil {
			s.logger.Error("contract alert stamp failed",
				zap.String("employee_id", e.ID.String()),
				zap.Error(err),
			)
			continue
		}

		sent++
		s.logger.Info("contract end alert sent",
			zap.String("employee_id", e.ID.String()),
			zap.String("matricule", e.Matricule),
		)
	}

	return sent, nil
}

// RunContractAlertWorker sweeps once immediately, then once per interval
// until ctx is cancelled.
func RunContractAlertWorker(ctx context.Context, svc *ContractAlertService, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	log := logger.Named("employee.contract_alert.worker")
	log.Info("contract alert worker started", zap.Duration("interval", interval))

	if _, err := svc.Sweep(ctx); err != nil {
		log.Error("initial sweep failed", zap.Error(err))
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("contract alert worker stopped")
			return
		case <-ticker.C:
			if _, err := svc.Sweep(ctx); err != nil {
				log.Error("sweep failed", zap.Error(err))
			}
		}
	}
}
