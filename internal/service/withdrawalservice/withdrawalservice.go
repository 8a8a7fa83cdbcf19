package withdrawalservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GlebRadaev/affiliate/internal/domain"
	"github.com/GlebRadaev/affiliate/internal/metrics"
	"github.com/GlebRadaev/affiliate/internal/notify"
	"github.com/GlebRadaev/affiliate/internal/pg"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrBelowMinimum          = errors.New("amount is below the minimum withdrawal")
	ErrIncompleteDestination = errors.New("complete bank details are required")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrUserNotFound          = errors.New("user not found")
	ErrPayoutFailed          = errors.New("failed to process withdrawal, please try again later")
	ErrWithdrawalNotFound    = errors.New("withdrawal not found")
	ErrUnknownOutcome        = errors.New("unknown transfer outcome")
)

const (
	referencePrefix = "wth-"
	failedReason    = "Transfer failed. Please try again."
	reversedReason  = "Transfer was reversed by the bank."
)

var notCompleted = []string{domain.StatusPending, domain.StatusProcessing, domain.StatusFailed}

type Repo interface {
	Create(ctx context.Context, w *domain.Withdrawal) (*domain.Withdrawal, error)
	FindByReference(ctx context.Context, reference string) (*domain.Withdrawal, error)
	SetTransferCode(ctx context.Context, reference, code string) error
	Transition(ctx context.Context, reference string, from []string, to string, reason *string, processedAt *time.Time) (*domain.Withdrawal, error)
}

type UserRepo interface {
	LockByID(ctx context.Context, id int) (*domain.User, error)
	UpdatePayoutDetails(ctx context.Context, id int, bank domain.BankDetails, recipientCode *string) error
}

type LedgerRepo interface {
	Append(ctx context.Context, t *domain.Transaction) (bool, error)
	SetStatus(ctx context.Context, reference, txType, status string) error
}

type BalanceCalculator interface {
	ComputeBalance(ctx context.Context, userID int) (*domain.Balance, error)
}

// Payout is the external transfer provider.
type Payout interface {
	CreateRecipient(ctx context.Context, bank domain.BankDetails) (string, error)
	InitiateTransfer(ctx context.Context, amount int64, recipientCode, reference, reason string) (string, error)
}

type Config struct {
	MinWithdrawal int64
	Timeout       time.Duration
}

type Service struct {
	repo      Repo
	users     UserRepo
	ledger    LedgerRepo
	balance   BalanceCalculator
	payout    Payout
	notifier  notify.Notifier
	txManager pg.TXManager
	cfg       Config
	now       func() time.Time
}

func New(repo Repo, users UserRepo, ledger LedgerRepo, balance BalanceCalculator, payout Payout,
	notifier notify.Notifier, txManager pg.TXManager, cfg Config) *Service {
	return &Service{
		repo:      repo,
		users:     users,
		ledger:    ledger,
		balance:   balance,
		payout:    payout,
		notifier:  notifier,
		txManager: txManager,
		cfg:       cfg,
		now:       time.Now,
	}
}

// RequestWithdrawal validates the request against the live balance, records the
// withdrawal as processing and starts the external transfer. If the provider
// rejects or times out, the record is kept as failed and returned together
// with ErrPayoutFailed.
func (s *Service) RequestWithdrawal(ctx context.Context, userID int, amount int64, bank domain.BankDetails) (*domain.Withdrawal, error) {
	if amount < s.cfg.MinWithdrawal {
		return nil, ErrBelowMinimum
	}
	if !bank.Complete() {
		return nil, ErrIncompleteDestination
	}

	var (
		user       *domain.User
		withdrawal *domain.Withdrawal
	)
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.users.LockByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}

		balance, err := s.balance.ComputeBalance(ctx, userID)
		if err != nil {
			return err
		}
		if amount > balance.Available {
			zap.L().Info("withdrawal exceeds balance",
				zap.Int("userID", userID), zap.Int64("amount", amount), zap.Int64("available", balance.Available))
			return ErrInsufficientBalance
		}

		withdrawal, err = s.repo.Create(ctx, &domain.Withdrawal{
			UserID:    userID,
			Amount:    amount,
			Status:    domain.StatusProcessing,
			Bank:      bank,
			Reference: referencePrefix + uuid.NewString(),
		})
		if err != nil {
			return err
		}

		ref := withdrawal.Reference
		_, err = s.ledger.Append(ctx, &domain.Transaction{
			UserID:           userID,
			Type:             domain.TransactionWithdrawal,
			Amount:           amount,
			Status:           domain.StatusProcessing,
			PaymentReference: &ref,
			Description:      fmt.Sprintf("Withdrawal to %s %s", bank.BankName, bank.AccountNumber),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	metrics.Withdrawals.WithLabelValues(domain.StatusProcessing).Inc()
	zap.L().Info("withdrawal created",
		zap.Int("userID", userID), zap.Int64("amount", amount), zap.String("reference", withdrawal.Reference))

	recipient, err := s.resolveRecipient(ctx, user, bank)
	if err != nil {
		return s.fail(ctx, withdrawal, fmt.Sprintf("recipient registration failed: %v", err))
	}

	tctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()
	transferCode, err := s.payout.InitiateTransfer(tctx, amount, recipient, withdrawal.Reference,
		"Affiliate withdrawal "+withdrawal.Reference)
	if err != nil {
		return s.fail(ctx, withdrawal, fmt.Sprintf("transfer initiation failed: %v", err))
	}

	if err := s.repo.SetTransferCode(ctx, withdrawal.Reference, transferCode); err != nil {
		zap.L().Error("transfer started but code not saved",
			zap.String("reference", withdrawal.Reference), zap.String("transferCode", transferCode), zap.Error(err))
	} else {
		withdrawal.TransferCode = &transferCode
	}

	s.dispatch(ctx, withdrawal.UserID, notify.WithdrawalProcessing(amount))
	return withdrawal, nil
}

// resolveRecipient reuses the cached recipient token unless the destination
// differs from the saved one.
func (s *Service) resolveRecipient(ctx context.Context, user *domain.User, bank domain.BankDetails) (string, error) {
	if user.RecipientCode != nil && bank.SameAccount(user.Bank) {
		return *user.RecipientCode, nil
	}

	rctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()
	code, err := s.payout.CreateRecipient(rctx, bank)
	if err != nil {
		return "", err
	}

	if err := s.users.UpdatePayoutDetails(ctx, user.ID, bank, &code); err != nil {
		zap.L().Warn("recipient token not cached", zap.Int("userID", user.ID), zap.Error(err))
	}
	return code, nil
}

func (s *Service) fail(ctx context.Context, w *domain.Withdrawal, reason string) (*domain.Withdrawal, error) {
	zap.L().Error("withdrawal payout failed",
		zap.Int("userID", w.UserID), zap.String("reference", w.Reference), zap.String("reason", reason))

	var failed *domain.Withdrawal
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		failed, err = s.repo.Transition(ctx, w.Reference, []string{domain.StatusProcessing}, domain.StatusFailed, &reason, nil)
		if err != nil || failed == nil {
			return err
		}
		return s.ledger.SetStatus(ctx, w.Reference, domain.TransactionWithdrawal, domain.StatusFailed)
	})
	if err != nil {
		return w, fmt.Errorf("%w: %v", ErrPayoutFailed, err)
	}
	if failed == nil {
		// an outcome callback got there first
		if current, err := s.repo.FindByReference(ctx, w.Reference); err == nil && current != nil {
			return current, ErrPayoutFailed
		}
		return w, ErrPayoutFailed
	}

	metrics.Withdrawals.WithLabelValues(domain.StatusFailed).Inc()
	s.dispatch(ctx, w.UserID, notify.WithdrawalFailed(w.Amount, failedReason))
	return failed, ErrPayoutFailed
}

// OnTransferOutcome applies an asynchronous provider outcome. A completed
// withdrawal only moves again on reversal. A failed one still accepts success,
// since a timed out initiation may have been paid by the provider.
func (s *Service) OnTransferOutcome(ctx context.Context, event domain.TransferEvent) (*domain.Withdrawal, error) {
	var (
		from        []string
		to          string
		reason      *string
		processedAt *time.Time
		text        func(w *domain.Withdrawal) string
	)
	switch event.Outcome {
	case domain.TransferSuccess:
		now := s.now()
		from, to, processedAt = notCompleted, domain.StatusCompleted, &now
		text = func(w *domain.Withdrawal) string { return notify.WithdrawalCompleted(w.Amount) }
	case domain.TransferFailed:
		r := event.Reason
		if r == "" {
			r = failedReason
		}
		from, to, reason = notCompleted, domain.StatusFailed, &r
		text = func(w *domain.Withdrawal) string { return notify.WithdrawalFailed(w.Amount, r) }
	case domain.TransferReversed:
		r := reversedReason
		from, to, reason = []string{domain.StatusPending, domain.StatusProcessing, domain.StatusCompleted}, domain.StatusFailed, &r
		text = func(w *domain.Withdrawal) string { return notify.WithdrawalFailed(w.Amount, r) }
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOutcome, event.Outcome)
	}

	var updated *domain.Withdrawal
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.repo.Transition(ctx, event.Reference, from, to, reason, processedAt)
		if err != nil || updated == nil {
			return err
		}
		return s.ledger.SetStatus(ctx, event.Reference, domain.TransactionWithdrawal, to)
	})
	if err != nil {
		zap.L().Error("failed to apply transfer outcome",
			zap.String("reference", event.Reference), zap.String("outcome", string(event.Outcome)), zap.Error(err))
		return nil, err
	}

	if updated == nil {
		existing, err := s.repo.FindByReference(ctx, event.Reference)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			zap.L().Warn("transfer outcome for unknown withdrawal", zap.String("reference", event.Reference))
			return nil, ErrWithdrawalNotFound
		}
		zap.L().Info("transfer outcome already applied",
			zap.String("reference", event.Reference), zap.String("status", existing.Status),
			zap.String("outcome", string(event.Outcome)))
		return existing, nil
	}

	metrics.Withdrawals.WithLabelValues(to).Inc()
	zap.L().Info("withdrawal updated",
		zap.String("reference", event.Reference), zap.String("status", to), zap.String("outcome", string(event.Outcome)))
	s.dispatch(ctx, updated.UserID, text(updated))
	return updated, nil
}

func (s *Service) dispatch(ctx context.Context, userID int, text string) {
	if err := s.notifier.Notify(ctx, userID, text); err != nil {
		zap.L().Warn("notification failed", zap.Int("userID", userID), zap.Error(err))
	}
}
