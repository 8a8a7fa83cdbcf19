package userrepo

import (
	"context"
	"errors"

	"github.com/GlebRadaev/affiliate/internal/domain"
	"github.com/GlebRadaev/affiliate/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const userColumns = `id, email, first_name, last_name, password_hash, referral_code, referred_by,
	has_paid_signup, is_active, signup_payment_ref, telegram_id, recipient_code,
	bank_name, bank_code, account_number, account_name, created_at`

const (
	queryFindByEmail        = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	queryFindByID           = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	queryFindByReferralCode = `SELECT ` + userColumns + ` FROM users WHERE referral_code = $1`
	queryLockByID           = `SELECT ` + userColumns + ` FROM users WHERE id = $1 FOR UPDATE`

	queryCreate = `
		INSERT INTO users (email, first_name, last_name, password_hash, referral_code, referred_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	queryActivate = `
		UPDATE users
		SET has_paid_signup = TRUE, is_active = TRUE, signup_payment_ref = $2
		WHERE id = $1 AND has_paid_signup = FALSE
	`
	queryUpdatePayoutDetails = `
		UPDATE users
		SET bank_name = $2, bank_code = $3, account_number = $4, account_name = $5, recipient_code = $6
		WHERE id = $1
	`
	querySetTelegramID = `UPDATE users SET telegram_id = $2 WHERE id = $1`
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		user                                          domain.User
		bankName, bankCode, accountNumber, accountName *string
	)
	err := row.Scan(
		&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.PasswordHash, &user.ReferralCode, &user.ReferredBy,
		&user.HasPaidSignup, &user.IsActive, &user.SignupPaymentRef, &user.TelegramID, &user.RecipientCode,
		&bankName, &bankCode, &accountNumber, &accountName, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if bankCode != nil && accountNumber != nil {
		user.Bank = &domain.BankDetails{
			BankName:      deref(bankName),
			BankCode:      *bankCode,
			AccountNumber: *accountNumber,
			AccountName:   deref(accountName),
		}
	}
	return &user, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (repo *Repository) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	user, err := scanUser(repo.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find user", zap.Any("key", arg), zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (repo *Repository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return repo.findOne(ctx, queryFindByEmail, email)
}

func (repo *Repository) FindByID(ctx context.Context, id int) (*domain.User, error) {
	return repo.findOne(ctx, queryFindByID, id)
}

func (repo *Repository) FindByReferralCode(ctx context.Context, code string) (*domain.User, error) {
	return repo.findOne(ctx, queryFindByReferralCode, code)
}

// LockByID loads the user row with FOR UPDATE. Must run inside a transaction.
func (repo *Repository) LockByID(ctx context.Context, id int) (*domain.User, error) {
	return repo.findOne(ctx, queryLockByID, id)
}

func (repo *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	err := repo.db.QueryRow(ctx, queryCreate,
		user.Email, user.FirstName, user.LastName, user.PasswordHash, user.ReferralCode, user.ReferredBy,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		switch {
		case pg.IsUniqueViolation(err, "users_email_key"):
			return nil, domain.ErrEmailTaken
		case pg.IsUniqueViolation(err, "users_referral_code_key"):
			return nil, domain.ErrReferralCodeTaken
		}
		zap.L().Error("can't save user", zap.Error(err))
		return nil, err
	}
	return user, nil
}

// Activate flips the signup-paid and active flags once. It reports false when
// the user had already paid, so a replayed signup payment is a no-op.
func (repo *Repository) Activate(ctx context.Context, id int, paymentRef string) (bool, error) {
	tag, err := repo.db.Exec(ctx, queryActivate, id, paymentRef)
	if err != nil {
		zap.L().Error("can't activate user", zap.Int("userID", id), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// UpdatePayoutDetails saves the payout destination together with the recipient
// token registered for it; a nil token clears the cached one.
func (repo *Repository) UpdatePayoutDetails(ctx context.Context, id int, bank domain.BankDetails, recipientCode *string) error {
	_, err := repo.db.Exec(ctx, queryUpdatePayoutDetails,
		id, bank.BankName, bank.BankCode, bank.AccountNumber, bank.AccountName, recipientCode,
	)
	if err != nil {
		zap.L().Error("can't update payout details", zap.Int("userID", id), zap.Error(err))
	}
	return err
}

func (repo *Repository) SetTelegramID(ctx context.Context, id int, telegramID *int64) error {
	_, err := repo.db.Exec(ctx, querySetTelegramID, id, telegramID)
	if err != nil {
		zap.L().Error("can't link telegram chat", zap.Int("userID", id), zap.Error(err))
	}
	return err
}
