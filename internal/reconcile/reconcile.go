// Package reconcile settles withdrawals whose transfer outcome never arrived
// by asking the provider directly.
package reconcile

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/GlebRadaev/affiliate/internal/domain"
	"github.com/GlebRadaev/affiliate/internal/paystack"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const notFoundReason = "Transfer was not found at the payment provider."

type WithdrawalRepo interface {
	FindUnsettled(ctx context.Context, before time.Time, limit int) ([]domain.Withdrawal, error)
}

type TransferVerifier interface {
	VerifyTransfer(ctx context.Context, reference string) (*paystack.Transfer, error)
}

type OutcomeHandler interface {
	OnTransferOutcome(ctx context.Context, event domain.TransferEvent) (*domain.Withdrawal, error)
}

type Config struct {
	Interval time.Duration
	After    time.Duration
	Limit    int
	Workers  int
}

type Service struct {
	repo       WithdrawalRepo
	verifier   TransferVerifier
	outcomes   OutcomeHandler
	workerPool WorkerPoolI
	cfg        Config
	inFlight   sync.Map
	now        func() time.Time
}

func New(repo WithdrawalRepo, verifier TransferVerifier, outcomes OutcomeHandler, cfg Config) *Service {
	if cfg.Limit <= 0 {
		cfg.Limit = 100
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 5
	}
	return &Service{
		repo:       repo,
		verifier:   verifier,
		outcomes:   outcomes,
		workerPool: NewWorkerPool(cfg.Workers),
		cfg:        cfg,
		now:        time.Now,
	}
}

// Start runs the sweep loop until ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	zap.L().Info("withdrawal reconciler started",
		zap.Duration("interval", s.cfg.Interval), zap.Duration("after", s.cfg.After))
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()
	defer s.workerPool.Close()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("withdrawal reconciler stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep checks every unsettled withdrawal once and returns when all of them
// are done.
func (s *Service) sweep(ctx context.Context) {
	stale, err := s.repo.FindUnsettled(ctx, s.now().Add(-s.cfg.After), s.cfg.Limit)
	if err != nil {
		zap.L().Error("failed to fetch stale withdrawals", zap.Error(err))
		return
	}
	if len(stale) == 0 {
		return
	}
	zap.L().Info("reconciling withdrawals", zap.Int("count", len(stale)))

	var (
		g  errgroup.Group
		wg sync.WaitGroup
	)
	for _, w := range stale {
		if _, loaded := s.inFlight.LoadOrStore(w.Reference, struct{}{}); loaded {
			continue
		}

		wg.Add(1)
		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer wg.Done()
				defer s.inFlight.Delete(w.Reference)
				return s.reconcile(ctx, w)
			})
			if err != nil {
				wg.Done()
				s.inFlight.Delete(w.Reference)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("error scheduling reconciliation", zap.Error(err))
	}
	wg.Wait()
}

func (s *Service) reconcile(ctx context.Context, w domain.Withdrawal) error {
	event := domain.TransferEvent{Reference: w.Reference}

	transfer, err := s.verifier.VerifyTransfer(ctx, w.Reference)
	var apiErr *paystack.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound:
		event.Outcome, event.Reason = domain.TransferFailed, notFoundReason
	case err != nil:
		return err
	default:
		outcome, terminal := transfer.Outcome()
		if !terminal {
			zap.L().Info("transfer still pending",
				zap.String("reference", w.Reference), zap.String("status", transfer.Status))
			return nil
		}
		event.Outcome, event.Reason = outcome, transfer.FailureReason()
	}

	// a locally failed initiation is only revisited when the provider paid it
	if w.Status == domain.StatusFailed && event.Outcome != domain.TransferSuccess {
		return nil
	}

	updated, err := s.outcomes.OnTransferOutcome(ctx, event)
	if err != nil {
		return err
	}
	zap.L().Info("withdrawal reconciled",
		zap.String("reference", w.Reference), zap.String("outcome", string(event.Outcome)), zap.String("status", updated.Status))
	return nil
}
