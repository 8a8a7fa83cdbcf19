package balanceservice

import (
	"context"
	"errors"
	"time"

	"github.com/GlebRadaev/affiliate/internal/domain"
	"github.com/GlebRadaev/affiliate/internal/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	historyLimit = 50
	chartMonths  = 6
)

var ErrUserNotFound = errors.New("user not found")

type LedgerRepo interface {
	SumCommissions(ctx context.Context, userID int) (int64, int64, error)
	EarningsBySource(ctx context.Context, userID int) (map[int]int64, error)
	FindByUserID(ctx context.Context, userID, limit int) ([]domain.Transaction, error)
	MonthlyCommissions(ctx context.Context, userID int, since time.Time) ([]domain.MonthlyEarnings, error)
}

type WithdrawalRepo interface {
	SumByUser(ctx context.Context, userID int) (int64, int64, error)
	FindByUserID(ctx context.Context, userID int) ([]domain.Withdrawal, error)
}

type ReferralRepo interface {
	FindByReferrer(ctx context.Context, referrerID int) ([]domain.Referral, error)
}

type UserRepo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
}

type Service struct {
	ledgerRepo     LedgerRepo
	withdrawalRepo WithdrawalRepo
	referralRepo   ReferralRepo
	userRepo       UserRepo
	now            func() time.Time
}

func New(ledgerRepo LedgerRepo, withdrawalRepo WithdrawalRepo, referralRepo ReferralRepo, userRepo UserRepo) *Service {
	return &Service{
		ledgerRepo:     ledgerRepo,
		withdrawalRepo: withdrawalRepo,
		referralRepo:   referralRepo,
		userRepo:       userRepo,
		now:            time.Now,
	}
}

// ComputeBalance derives the balance from the ledger and withdrawals on every
// call. A negative result is reported as zero available and counted as an anomaly.
func (s *Service) ComputeBalance(ctx context.Context, userID int) (*domain.Balance, error) {
	tier1, tier2, err := s.ledgerRepo.SumCommissions(ctx, userID)
	if err != nil {
		zap.L().Error("failed to sum commissions", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	withdrawn, pendingOut, err := s.withdrawalRepo.SumByUser(ctx, userID)
	if err != nil {
		zap.L().Error("failed to sum withdrawals", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}

	balance := &domain.Balance{
		Earned:     tier1 + tier2,
		Tier1:      tier1,
		Tier2:      tier2,
		Withdrawn:  withdrawn,
		PendingOut: pendingOut,
	}
	balance.Available = balance.Earned - withdrawn - pendingOut
	if balance.Available < 0 {
		zap.L().Warn("negative balance, needs reconciliation",
			zap.Int("userID", userID), zap.Int64("earned", balance.Earned),
			zap.Int64("withdrawn", withdrawn), zap.Int64("pendingOut", pendingOut))
		metrics.BalanceAnomalies.Inc()
		balance.Available = 0
	}
	return balance, nil
}

// GetDashboard loads everything the affiliate dashboard shows in one call.
func (s *Service) GetDashboard(ctx context.Context, userID int) (*domain.Dashboard, error) {
	var (
		dashboard domain.Dashboard
		user      *domain.User
		referrals []domain.Referral
		earnings  map[int]int64
		monthly   []domain.MonthlyEarnings
	)
	firstMonth := monthStart(s.now()).AddDate(0, -(chartMonths - 1), 0)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		user, err = s.userRepo.FindByID(gctx, userID)
		return
	})
	g.Go(func() error {
		balance, err := s.ComputeBalance(gctx, userID)
		if err != nil {
			return err
		}
		dashboard.Balance = *balance
		return nil
	})
	g.Go(func() (err error) {
		referrals, err = s.referralRepo.FindByReferrer(gctx, userID)
		return
	})
	g.Go(func() (err error) {
		earnings, err = s.ledgerRepo.EarningsBySource(gctx, userID)
		return
	})
	g.Go(func() (err error) {
		dashboard.Transactions, err = s.ledgerRepo.FindByUserID(gctx, userID, historyLimit)
		return
	})
	g.Go(func() (err error) {
		dashboard.Withdrawals, err = s.withdrawalRepo.FindByUserID(gctx, userID)
		return
	})
	g.Go(func() (err error) {
		monthly, err = s.ledgerRepo.MonthlyCommissions(gctx, userID, firstMonth)
		return
	})
	if err := g.Wait(); err != nil {
		zap.L().Error("failed to load dashboard", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	dashboard.User = *user

	dashboard.Referrals = make([]domain.ReferralSummary, 0, len(referrals))
	for _, r := range referrals {
		if r.Status == domain.ReferralActive {
			dashboard.ActiveReferrals++
		}
		dashboard.Referrals = append(dashboard.Referrals, domain.ReferralSummary{
			Referral: r,
			Earnings: earnings[r.ReferredUserID],
		})
	}
	dashboard.TotalReferrals = len(referrals)
	dashboard.Monthly = fillMonths(firstMonth, monthly)
	return &dashboard, nil
}

func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// fillMonths returns one entry per month from first on, zero where the
// repository had no row.
func fillMonths(first time.Time, rows []domain.MonthlyEarnings) []domain.MonthlyEarnings {
	byMonth := make(map[time.Time]domain.MonthlyEarnings, len(rows))
	for _, r := range rows {
		byMonth[monthStart(r.Month)] = r
	}

	series := make([]domain.MonthlyEarnings, chartMonths)
	for i := range series {
		month := first.AddDate(0, i, 0)
		m := byMonth[month]
		series[i] = domain.MonthlyEarnings{Month: month, Tier1: m.Tier1, Tier2: m.Tier2}
	}
	return series
}

func (s *Service) GetWithdrawals(ctx context.Context, userID int) ([]domain.Withdrawal, error) {
	withdrawals, err := s.withdrawalRepo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to fetch withdrawals", zap.Error(err))
		return nil, err
	}
	return withdrawals, nil
}
