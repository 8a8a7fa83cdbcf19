package commissionservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/GlebRadaev/affiliate/internal/domain"
	"github.com/GlebRadaev/affiliate/internal/metrics"
	"github.com/GlebRadaev/affiliate/internal/notify"
	"github.com/GlebRadaev/affiliate/internal/pg"
	"github.com/GlebRadaev/affiliate/pkg/money"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrPayerNotFound      = errors.New("paying user not found")
	ErrInvalidPayment     = errors.New("payment event is missing a reference or a positive amount")
	ErrUnknownPaymentType = errors.New("unknown payment type")
)

const (
	signupDescription       = "Affiliate signup fee"
	subscriptionDescription = "Monthly subscription payment"
)

type UserRepo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Activate(ctx context.Context, id int, paymentRef string) (bool, error)
}

type ReferralRepo interface {
	FindReferrers(ctx context.Context, referredUserID int) ([]domain.Referral, error)
	ActivatePending(ctx context.Context, referredUserID int) (int64, error)
}

type LedgerRepo interface {
	Append(ctx context.Context, t *domain.Transaction) (bool, error)
}

// Rates are the commission shares of the subscriber's payment per tier.
type Rates struct {
	Tier1 decimal.Decimal
	Tier2 decimal.Decimal
}

func (r Rates) For(tier int) decimal.Decimal {
	if tier == domain.Tier1 {
		return r.Tier1
	}
	return r.Tier2
}

type Service struct {
	users     UserRepo
	referrals ReferralRepo
	ledger    LedgerRepo
	txManager pg.TXManager
	notifier  notify.Notifier
	rates     Rates
}

func New(users UserRepo, referrals ReferralRepo, ledger LedgerRepo, txManager pg.TXManager, notifier notify.Notifier, rates Rates) *Service {
	return &Service{
		users:     users,
		referrals: referrals,
		ledger:    ledger,
		txManager: txManager,
		notifier:  notifier,
		rates:     rates,
	}
}

type message struct {
	userID int
	text   string
}

// HandlePayment routes a confirmed payment to the signup or subscription flow.
func (s *Service) HandlePayment(ctx context.Context, event domain.PaymentEvent) error {
	switch event.Type {
	case domain.PaymentSignup:
		return s.HandleSignupPayment(ctx, event)
	case domain.PaymentSubscription:
		return s.HandleSubscriptionPayment(ctx, event)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPaymentType, event.Type)
	}
}

func (s *Service) resolvePayer(ctx context.Context, event domain.PaymentEvent) (*domain.User, error) {
	if event.Reference == "" || event.Amount <= 0 {
		return nil, ErrInvalidPayment
	}

	var (
		user *domain.User
		err  error
	)
	if event.UserID != 0 {
		user, err = s.users.FindByID(ctx, event.UserID)
	} else {
		user, err = s.users.FindByEmail(ctx, event.Email)
	}
	if err != nil {
		return nil, err
	}
	if user == nil {
		zap.L().Warn("payment for unknown user",
			zap.Int("userID", event.UserID), zap.String("email", event.Email), zap.String("reference", event.Reference))
		return nil, ErrPayerNotFound
	}
	return user, nil
}

// HandleSignupPayment activates the payer once. A replay for an already
// activated user is logged and ignored.
func (s *Service) HandleSignupPayment(ctx context.Context, event domain.PaymentEvent) error {
	user, err := s.resolvePayer(ctx, event)
	if err != nil {
		return err
	}

	var activated bool
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		ok, err := s.users.Activate(ctx, user.ID, event.Reference)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		activated = true

		ref := event.Reference
		inserted, err := s.ledger.Append(ctx, &domain.Transaction{
			UserID:           user.ID,
			Type:             domain.TransactionSubscription,
			Amount:           event.Amount,
			Status:           domain.StatusCompleted,
			PaymentReference: &ref,
			Description:      signupDescription,
		})
		if err != nil {
			return err
		}
		if !inserted {
			metrics.LedgerDuplicates.WithLabelValues(domain.TransactionSubscription).Inc()
		}

		edges, err := s.referrals.ActivatePending(ctx, user.ID)
		if err != nil {
			return err
		}
		zap.L().Info("referral edges activated", zap.Int("userID", user.ID), zap.Int64("edges", edges))
		return nil
	})
	if err != nil {
		zap.L().Error("failed to apply signup payment",
			zap.Int("userID", user.ID), zap.String("reference", event.Reference), zap.Error(err))
		return err
	}

	if !activated {
		zap.L().Info("signup payment already applied",
			zap.Int("userID", user.ID), zap.String("reference", event.Reference))
		metrics.LedgerDuplicates.WithLabelValues(domain.TransactionSubscription).Inc()
		return nil
	}

	zap.L().Info("user activated", zap.Int("userID", user.ID), zap.String("reference", event.Reference))
	s.dispatch(ctx, []message{{userID: user.ID, text: notify.AccountActivated()}})
	return nil
}

// HandleSubscriptionPayment records the payment and credits the tier-1 and
// tier-2 referrers. Every write is deduplicated on the payment reference, so
// a redelivered event leaves the ledger unchanged.
func (s *Service) HandleSubscriptionPayment(ctx context.Context, event domain.PaymentEvent) error {
	payer, err := s.resolvePayer(ctx, event)
	if err != nil {
		return err
	}

	var outbox []message
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		outbox = outbox[:0]
		ref := event.Reference
		inserted, err := s.ledger.Append(ctx, &domain.Transaction{
			UserID:           payer.ID,
			Type:             domain.TransactionSubscription,
			Amount:           event.Amount,
			Status:           domain.StatusCompleted,
			PaymentReference: &ref,
			Description:      subscriptionDescription,
		})
		if err != nil {
			return err
		}
		if inserted {
			outbox = append(outbox, message{userID: payer.ID, text: notify.PaymentConfirmed(event.Amount)})
		} else {
			metrics.LedgerDuplicates.WithLabelValues(domain.TransactionSubscription).Inc()
		}

		chain, err := s.resolveChain(ctx, payer)
		if err != nil {
			return err
		}
		for _, tier := range []int{domain.Tier1, domain.Tier2} {
			referrerID, ok := chain[tier]
			if !ok {
				continue
			}
			credited, err := s.credit(ctx, payer, referrerID, tier, event)
			if err != nil {
				return err
			}
			if credited != nil {
				outbox = append(outbox, message{
					userID: referrerID,
					text:   notify.CommissionEarned(tier, credited.Amount, payer.FullName()),
				})
			}
		}
		return nil
	})
	if err != nil {
		zap.L().Error("failed to apply subscription payment",
			zap.Int("userID", payer.ID), zap.String("reference", event.Reference), zap.Error(err))
		return err
	}

	s.dispatch(ctx, outbox)
	return nil
}

// resolveChain returns the referrer id per tier for the payer. Tier 1 is the
// payer's referredBy, kept only when the matching tier-1 edge exists; tier 2
// is the tier-1 referrer's own referredBy.
func (s *Service) resolveChain(ctx context.Context, payer *domain.User) (map[int]int, error) {
	chain := make(map[int]int, 2)
	if payer.ReferredBy == nil {
		return chain, nil
	}

	edges, err := s.referrals.FindReferrers(ctx, payer.ID)
	if err != nil {
		return nil, err
	}
	hasEdge := false
	for _, e := range edges {
		if e.Tier == domain.Tier1 && e.ReferrerID == *payer.ReferredBy {
			hasEdge = true
			break
		}
	}
	if !hasEdge {
		zap.L().Warn("referrer set without a tier-1 edge, skipping commissions",
			zap.Int("userID", payer.ID), zap.Int("referredBy", *payer.ReferredBy))
		return chain, nil
	}
	chain[domain.Tier1] = *payer.ReferredBy

	referrer, err := s.users.FindByID(ctx, *payer.ReferredBy)
	if err != nil {
		return nil, err
	}
	if referrer == nil {
		zap.L().Warn("tier-1 referrer no longer exists", zap.Int("referrerID", *payer.ReferredBy))
		return chain, nil
	}
	if referrer.ReferredBy != nil {
		chain[domain.Tier2] = *referrer.ReferredBy
	}
	return chain, nil
}

func (s *Service) credit(ctx context.Context, payer *domain.User, referrerID, tier int, event domain.PaymentEvent) (*domain.Transaction, error) {
	amount := money.Share(event.Amount, s.rates.For(tier))
	if amount <= 0 {
		zap.L().Warn("commission rounds to zero, skipping",
			zap.Int("tier", tier), zap.Int64("payment", event.Amount), zap.String("reference", event.Reference))
		return nil, nil
	}

	tierCopy, source, ref := tier, payer.ID, event.Reference
	entry := &domain.Transaction{
		UserID:           referrerID,
		Type:             domain.TransactionCommission,
		Amount:           amount,
		Status:           domain.StatusCompleted,
		Tier:             &tierCopy,
		SourceUserID:     &source,
		PaymentReference: &ref,
		Description:      fmt.Sprintf("Tier %d commission from %s", tier, payer.FullName()),
	}
	inserted, err := s.ledger.Append(ctx, entry)
	if err != nil {
		return nil, err
	}
	if !inserted {
		metrics.LedgerDuplicates.WithLabelValues(domain.TransactionCommission).Inc()
		return nil, nil
	}

	metrics.CommissionsCredited.WithLabelValues(metrics.TierLabel(tier)).Inc()
	metrics.CommissionKobo.WithLabelValues(metrics.TierLabel(tier)).Add(float64(amount))
	zap.L().Info("commission credited",
		zap.Int("referrerID", referrerID), zap.Int("tier", tier), zap.Int64("amount", amount),
		zap.Int("sourceUserID", payer.ID), zap.String("reference", event.Reference))
	return entry, nil
}

func (s *Service) dispatch(ctx context.Context, outbox []message) {
	for _, m := range outbox {
		if err := s.notifier.Notify(ctx, m.userID, m.text); err != nil {
			zap.L().Warn("notification failed", zap.Int("userID", m.userID), zap.Error(err))
		}
	}
}
