package authservice

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/GlebRadaev/affiliate/internal/domain"
	"github.com/GlebRadaev/affiliate/internal/pg"
	"github.com/GlebRadaev/affiliate/pkg/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidInput       = errors.New("email, password, first name and last name are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotActivated       = errors.New("account is not activated, complete the signup payment first")
	ErrUserNotFound       = errors.New("user not found")
	ErrIncompleteBank     = errors.New("bank name, bank code, account number and account name are required")
)

const (
	codeLength    = 8
	codeAttempts  = 5
	tokenLifetime = 24 * time.Hour
)

type UserRepo interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int) (*domain.User, error)
	FindByReferralCode(ctx context.Context, code string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePayoutDetails(ctx context.Context, id int, bank domain.BankDetails, recipientCode *string) error
	SetTelegramID(ctx context.Context, id int, telegramID *int64) error
}

type ReferralRepo interface {
	CreateEdges(ctx context.Context, edges []domain.Referral) error
}

type RegisterInput struct {
	Email        string
	Password     string
	FirstName    string
	LastName     string
	ReferralCode string
}

type SettingsInput struct {
	Bank       *domain.BankDetails
	TelegramID *int64
}

type Service struct {
	userRepo     UserRepo
	referralRepo ReferralRepo
	txManager    pg.TXManager
	hashService  auth.HashServiceInterface
	jwtService   auth.JWTServiceInterface
}

func New(userRepo UserRepo, referralRepo ReferralRepo, txManager pg.TXManager,
	hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface) *Service {
	return &Service{
		userRepo:     userRepo,
		referralRepo: referralRepo,
		txManager:    txManager,
		hashService:  hashService,
		jwtService:   jwtService,
	}
}

func newReferralCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:codeLength]
}

// Register creates an inactive user and its pending referral edges. An
// unknown referral code is ignored.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || in.Password == "" || in.FirstName == "" || in.LastName == "" {
		return nil, ErrInvalidInput
	}

	existingUser, err := s.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	if existingUser != nil {
		zap.L().Info("user already exists", zap.String("email", in.Email))
		return nil, domain.ErrEmailTaken
	}

	hashedPassword, err := s.hashService.HashPassword(in.Password)
	if err != nil {
		zap.L().Error("can't hash password", zap.Error(err))
		return nil, err
	}

	var referrer *domain.User
	if code := strings.ToUpper(strings.TrimSpace(in.ReferralCode)); code != "" {
		referrer, err = s.userRepo.FindByReferralCode(ctx, code)
		if err != nil {
			zap.L().Error("can't find referrer", zap.Error(err))
			return nil, err
		}
		if referrer == nil {
			zap.L().Info("unknown referral code ignored", zap.String("code", code))
		}
	}

	user := &domain.User{
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: hashedPassword,
	}
	if referrer != nil {
		user.ReferredBy = &referrer.ID
	}

	// each attempt is its own transaction: a unique violation aborts it
	for attempt := 1; ; attempt++ {
		user.ReferralCode = newReferralCode()
		err = s.txManager.Begin(ctx, func(ctx context.Context) error {
			if _, err := s.userRepo.Create(ctx, user); err != nil {
				return err
			}
			if referrer == nil {
				return nil
			}
			return s.referralRepo.CreateEdges(ctx, referralEdges(user.ID, referrer))
		})
		if !errors.Is(err, domain.ErrReferralCodeTaken) || attempt == codeAttempts {
			break
		}
		zap.L().Info("referral code collision, retrying", zap.Int("attempt", attempt))
	}
	if err != nil {
		zap.L().Error("can't create user", zap.String("email", in.Email), zap.Error(err))
		return nil, err
	}

	zap.L().Info("user successfully registered", zap.Int("userID", user.ID), zap.String("email", in.Email))
	return user, nil
}

func referralEdges(userID int, referrer *domain.User) []domain.Referral {
	edges := []domain.Referral{{
		ReferrerID:     referrer.ID,
		ReferredUserID: userID,
		Tier:           domain.Tier1,
		Status:         domain.ReferralPending,
	}}
	if referrer.ReferredBy != nil {
		edges = append(edges, domain.Referral{
			ReferrerID:     *referrer.ReferredBy,
			ReferredUserID: userID,
			Tier:           domain.Tier2,
			Status:         domain.ReferralPending,
		})
	}
	return edges
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	if user == nil || !s.hashService.ComparePassword(user.PasswordHash, password) {
		zap.L().Info("invalid credentials", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrNotActivated
	}
	zap.L().Info("user successfully authenticated", zap.Int("userID", user.ID))
	return user, nil
}

func (s *Service) GenerateToken(userID int) (string, error) {
	token, err := s.jwtService.GenerateJWT(userID, time.Now().Add(tokenLifetime))
	if err != nil {
		zap.L().Error("can't generate token", zap.Error(err))
		return "", err
	}
	return token, nil
}

// UpdateSettings saves payout details and the linked Telegram chat. Moving to
// a different account drops the cached transfer recipient.
func (s *Service) UpdateSettings(ctx context.Context, userID int, in SettingsInput) (*domain.User, error) {
	if in.Bank != nil && !in.Bank.Complete() {
		return nil, ErrIncompleteBank
	}

	var user *domain.User
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.userRepo.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}

		if in.Bank != nil {
			recipientCode := user.RecipientCode
			if !in.Bank.SameAccount(user.Bank) {
				recipientCode = nil
			}
			if err := s.userRepo.UpdatePayoutDetails(ctx, userID, *in.Bank, recipientCode); err != nil {
				return err
			}
			bank := *in.Bank
			user.Bank, user.RecipientCode = &bank, recipientCode
		}
		if in.TelegramID != nil {
			if err := s.userRepo.SetTelegramID(ctx, userID, in.TelegramID); err != nil {
				return err
			}
			user.TelegramID = in.TelegramID
		}
		return nil
	})
	if err != nil {
		zap.L().Error("can't update settings", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	return user, nil
}
