package userrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/GlebRadaev/affiliate/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	t.Cleanup(mockDB.Close)

	return repo, mockDB
}

var userFields = []string{
	"id", "email", "first_name", "last_name", "password_hash", "referral_code", "referred_by",
	"has_paid_signup", "is_active", "signup_payment_ref", "telegram_id", "recipient_code",
	"bank_name", "bank_code", "account_number", "account_name", "created_at",
}

func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestRepository_FindByEmail(t *testing.T) {
	repo, mock := NewMock(t)
	createdAt := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name      string
		email     string
		mockSetup func()
		expectErr bool
		result    *domain.User
	}{
		{
			name:  "User with bank details",
			email: "ada@example.com",
			mockSetup: func() {
				rows := pgxmock.NewRows(userFields).AddRow(
					2, "ada@example.com", "Ada", "Obi", "hash", "ABCD1234", intPtr(1),
					true, true, strPtr("PTX-1"), (*int64)(nil), strPtr("RCP_1"),
					strPtr("GTBank"), strPtr("058"), strPtr("0123456789"), strPtr("Ada Obi"), createdAt,
				)
				mock.ExpectQuery(regexp.QuoteMeta(queryFindByEmail)).
					WithArgs("ada@example.com").
					WillReturnRows(rows)
			},
			result: &domain.User{
				ID: 2, Email: "ada@example.com", FirstName: "Ada", LastName: "Obi", PasswordHash: "hash",
				ReferralCode: "ABCD1234", ReferredBy: intPtr(1), HasPaidSignup: true, IsActive: true,
				SignupPaymentRef: strPtr("PTX-1"), RecipientCode: strPtr("RCP_1"),
				Bank: &domain.BankDetails{
					BankName: "GTBank", BankCode: "058", AccountNumber: "0123456789", AccountName: "Ada Obi",
				},
				CreatedAt: createdAt,
			},
		},
		{
			name:  "User without bank details",
			email: "new@example.com",
			mockSetup: func() {
				rows := pgxmock.NewRows(userFields).AddRow(
					3, "new@example.com", "New", "User", "hash", "ZZZZ0000", (*int)(nil),
					false, false, (*string)(nil), (*int64)(nil), (*string)(nil),
					(*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil), createdAt,
				)
				mock.ExpectQuery(regexp.QuoteMeta(queryFindByEmail)).
					WithArgs("new@example.com").
					WillReturnRows(rows)
			},
			result: &domain.User{
				ID: 3, Email: "new@example.com", FirstName: "New", LastName: "User", PasswordHash: "hash",
				ReferralCode: "ZZZZ0000", CreatedAt: createdAt,
			},
		},
		{
			name:  "User not found",
			email: "missing@example.com",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryFindByEmail)).
					WithArgs("missing@example.com").
					WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name:  "Database error",
			email: "ada@example.com",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryFindByEmail)).
					WithArgs("ada@example.com").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByEmail(context.Background(), tt.email)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_LockByID(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(queryLockByID)).
		WithArgs(7).
		WillReturnError(pgx.ErrNoRows)

	user, err := repo.LockByID(context.Background(), 7)

	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	createdAt := time.Now()

	tests := []struct {
		name      string
		user      *domain.User
		mockSetup func()
		expectErr error
		result    *domain.User
	}{
		{
			name: "Create user successfully",
			user: &domain.User{
				Email: "ada@example.com", FirstName: "Ada", LastName: "Obi",
				PasswordHash: "hash", ReferralCode: "ABCD1234", ReferredBy: intPtr(1),
			},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryCreate)).
					WithArgs("ada@example.com", "Ada", "Obi", "hash", "ABCD1234", intPtr(1)).
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(5, createdAt))
			},
			result: &domain.User{
				ID: 5, Email: "ada@example.com", FirstName: "Ada", LastName: "Obi",
				PasswordHash: "hash", ReferralCode: "ABCD1234", ReferredBy: intPtr(1), CreatedAt: createdAt,
			},
		},
		{
			name: "Email taken",
			user: &domain.User{Email: "ada@example.com", ReferralCode: "ABCD1234"},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryCreate)).
					WithArgs(anyArgs(6)...).
					WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
			},
			expectErr: domain.ErrEmailTaken,
		},
		{
			name: "Referral code collision",
			user: &domain.User{Email: "ada@example.com", ReferralCode: "ABCD1234"},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryCreate)).
					WithArgs(anyArgs(6)...).
					WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_referral_code_key"})
			},
			expectErr: domain.ErrReferralCodeTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.Create(context.Background(), tt.user)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Activate(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		activated bool
	}{
		{
			name: "First signup payment",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(queryActivate)).
					WithArgs(4, "PTX-1").
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			activated: true,
		},
		{
			name: "Already paid",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(queryActivate)).
					WithArgs(4, "PTX-1").
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			activated: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(queryActivate)).
					WithArgs(4, "PTX-1").
					WillReturnError(errors.New("db down"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			activated, err := repo.Activate(context.Background(), 4, "PTX-1")
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.activated, activated)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_UpdatePayoutDetails(t *testing.T) {
	repo, mock := NewMock(t)
	bank := domain.BankDetails{BankName: "GTBank", BankCode: "058", AccountNumber: "0123456789", AccountName: "Ada Obi"}

	mock.ExpectExec(regexp.QuoteMeta(queryUpdatePayoutDetails)).
		WithArgs(4, "GTBank", "058", "0123456789", "Ada Obi", (*string)(nil)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, repo.UpdatePayoutDetails(context.Background(), 4, bank, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SetTelegramID(t *testing.T) {
	repo, mock := NewMock(t)
	chat := int64(99)

	mock.ExpectExec(regexp.QuoteMeta(querySetTelegramID)).
		WithArgs(4, &chat).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, repo.SetTelegramID(context.Background(), 4, &chat))
	assert.NoError(t, mock.ExpectationsWereMet())
}
