package paymentservice

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"strings"

	"github.com/GlebRadaev/affiliate/internal/domain"
	"github.com/GlebRadaev/affiliate/internal/paystack"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrAlreadyPaid          = errors.New("signup fee already paid")
	ErrNotActivated         = errors.New("account is not activated")
	ErrReferenceRequired    = errors.New("payment reference is required")
	ErrPaymentNotSuccessful = errors.New("payment verification failed")
	ErrInvalidAccountNumber = errors.New("account number must be 10 digits")
)

const referencePrefix = "PTX-"

var accountNumberFormat = regexp.MustCompile(`^\d{10}$`)

type UserRepo interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int) (*domain.User, error)
}

// Gateway is the payment provider.
type Gateway interface {
	InitializePayment(ctx context.Context, req paystack.InitializeRequest) (*domain.Checkout, error)
	VerifyPayment(ctx context.Context, reference string) (*paystack.Charge, error)
	ListBanks(ctx context.Context) ([]paystack.Bank, error)
	ResolveAccount(ctx context.Context, accountNumber, bankCode string) (*paystack.Account, error)
}

type PaymentHandler interface {
	HandlePayment(ctx context.Context, event domain.PaymentEvent) error
}

type Config struct {
	SignupFee         int64
	SubscriptionPrice int64
	AppURL            string
}

type Service struct {
	users    UserRepo
	gateway  Gateway
	payments PaymentHandler
	cfg      Config
}

func New(users UserRepo, gateway Gateway, payments PaymentHandler, cfg Config) *Service {
	return &Service{
		users:    users,
		gateway:  gateway,
		payments: payments,
		cfg:      cfg,
	}
}

func newReference() string {
	return referencePrefix + uuid.NewString()
}

// InitializeSignup starts the one-time activation payment for a registered
// user who has not paid yet.
func (s *Service) InitializeSignup(ctx context.Context, email string) (*domain.Checkout, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.HasPaidSignup {
		return nil, ErrAlreadyPaid
	}

	ref := newReference()
	return s.initialize(ctx, paystack.InitializeRequest{
		Email:       user.Email,
		Amount:      s.cfg.SignupFee,
		Reference:   ref,
		CallbackURL: s.cfg.AppURL + "/register/verify?reference=" + url.QueryEscape(ref),
		Metadata:    map[string]any{"type": domain.PaymentSignup, "userId": user.ID},
	})
}

func (s *Service) InitializeSubscription(ctx context.Context, userID int) (*domain.Checkout, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		zap.L().Error("can't find user", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrNotActivated
	}

	ref := newReference()
	return s.initialize(ctx, paystack.InitializeRequest{
		Email:       user.Email,
		Amount:      s.cfg.SubscriptionPrice,
		Reference:   ref,
		CallbackURL: s.cfg.AppURL + "/dashboard?payment=success&reference=" + url.QueryEscape(ref),
		Metadata:    map[string]any{"type": domain.PaymentSubscription, "userId": user.ID},
	})
}

func (s *Service) initialize(ctx context.Context, req paystack.InitializeRequest) (*domain.Checkout, error) {
	checkout, err := s.gateway.InitializePayment(ctx, req)
	if err != nil {
		zap.L().Error("can't initialize payment", zap.String("reference", req.Reference), zap.Error(err))
		return nil, err
	}
	zap.L().Info("payment initialized",
		zap.String("reference", checkout.Reference), zap.Any("type", req.Metadata["type"]), zap.Int64("amount", req.Amount))
	return checkout, nil
}

// Verify confirms a charge with the provider and applies it through the same
// idempotent path as the webhook.
func (s *Service) Verify(ctx context.Context, reference string) (*domain.PaymentEvent, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, ErrReferenceRequired
	}

	charge, err := s.gateway.VerifyPayment(ctx, reference)
	if err != nil {
		zap.L().Error("can't verify payment", zap.String("reference", reference), zap.Error(err))
		return nil, err
	}
	if charge.Status != "success" {
		zap.L().Info("payment not successful", zap.String("reference", reference), zap.String("status", charge.Status))
		return nil, ErrPaymentNotSuccessful
	}

	event, err := charge.PaymentEvent()
	if err != nil {
		zap.L().Warn("verified charge can't be applied", zap.String("reference", reference), zap.Error(err))
		return nil, err
	}
	if err := s.payments.HandlePayment(ctx, event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *Service) ListBanks(ctx context.Context) ([]paystack.Bank, error) {
	banks, err := s.gateway.ListBanks(ctx)
	if err != nil {
		zap.L().Error("can't list banks", zap.Error(err))
	}
	return banks, err
}

func (s *Service) ResolveAccount(ctx context.Context, accountNumber, bankCode string) (*paystack.Account, error) {
	if !accountNumberFormat.MatchString(accountNumber) || bankCode == "" {
		return nil, ErrInvalidAccountNumber
	}
	account, err := s.gateway.ResolveAccount(ctx, accountNumber, bankCode)
	if err != nil {
		zap.L().Info("can't resolve account", zap.String("bankCode", bankCode), zap.Error(err))
	}
	return account, err
}
