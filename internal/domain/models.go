package domain

import (
	"errors"
	"time"
)

const (
	TransactionSubscription = "subscription"
	TransactionCommission   = "commission"
	TransactionWithdrawal   = "withdrawal"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusRejected   = "rejected"
	StatusFailed     = "failed"
)

const (
	ReferralPending  = "pending"
	ReferralActive   = "active"
	ReferralInactive = "inactive"
	ReferralExpired  = "expired"
)

const (
	Tier1 = 1
	Tier2 = 2
)

var (
	ErrEmailTaken        = errors.New("an account with this email already exists")
	ErrReferralCodeTaken = errors.New("referral code already taken")
)

type User struct {
	ID               int          `db:"id"`
	Email            string       `db:"email"`
	FirstName        string       `db:"first_name"`
	LastName         string       `db:"last_name"`
	PasswordHash     string       `db:"password_hash"`
	ReferralCode     string       `db:"referral_code"`
	ReferredBy       *int         `db:"referred_by"`
	HasPaidSignup    bool         `db:"has_paid_signup"`
	IsActive         bool         `db:"is_active"`
	SignupPaymentRef *string      `db:"signup_payment_ref"`
	TelegramID       *int64       `db:"telegram_id"`
	RecipientCode    *string      `db:"recipient_code"`
	Bank             *BankDetails `db:"-"`
	CreatedAt        time.Time    `db:"created_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// BankDetails is a payout destination.
type BankDetails struct {
	BankName      string `db:"bank_name"`
	BankCode      string `db:"bank_code"`
	AccountNumber string `db:"account_number"`
	AccountName   string `db:"account_name"`
}

func (b BankDetails) Complete() bool {
	return b.BankName != "" && b.BankCode != "" && b.AccountNumber != "" && b.AccountName != ""
}

// SameAccount reports whether other points at the same bank account.
func (b BankDetails) SameAccount(other *BankDetails) bool {
	return other != nil && b.BankCode == other.BankCode && b.AccountNumber == other.AccountNumber
}

// Referral is one attribution edge: ReferrerID earns tier commissions on
// ReferredUserID's payments.
type Referral struct {
	ID             int       `db:"id"`
	ReferrerID     int       `db:"referrer_id"`
	ReferredUserID int       `db:"referred_user_id"`
	Tier           int       `db:"tier"`
	Status         string    `db:"status"`
	CreatedAt      time.Time `db:"created_at"`
	ReferredName   string    `db:"-"`
	ReferredEmail  string    `db:"-"`
}

// Transaction is an immutable ledger entry. Amount is in kobo.
type Transaction struct {
	ID               int       `db:"id"`
	UserID           int       `db:"user_id"`
	Type             string    `db:"type"`
	Amount           int64     `db:"amount"`
	Status           string    `db:"status"`
	Tier             *int      `db:"tier"`
	SourceUserID     *int      `db:"source_user_id"`
	PaymentReference *string   `db:"payment_reference"`
	Description      string    `db:"description"`
	CreatedAt        time.Time `db:"created_at"`
}

type Withdrawal struct {
	ID           int         `db:"id"`
	UserID       int         `db:"user_id"`
	Amount       int64       `db:"amount"`
	Status       string      `db:"status"`
	Bank         BankDetails `db:"-"`
	Reference    string      `db:"reference"`
	TransferCode *string     `db:"transfer_code"`
	Reason       *string     `db:"reason"`
	ProcessedAt  *time.Time  `db:"processed_at"`
	CreatedAt    time.Time   `db:"created_at"`
}

// Balance is derived from the ledger on every read. All values in kobo.
type Balance struct {
	Earned     int64
	Tier1      int64
	Tier2      int64
	Withdrawn  int64
	PendingOut int64
	Available  int64
}

type ReferralSummary struct {
	Referral
	Earnings int64
}

// MonthlyEarnings is completed commission per tier for the calendar month
// starting at Month, in kobo.
type MonthlyEarnings struct {
	Month time.Time
	Tier1 int64
	Tier2 int64
}

type Dashboard struct {
	User            User
	Balance         Balance
	ActiveReferrals int
	TotalReferrals  int
	Monthly         []MonthlyEarnings
	Referrals       []ReferralSummary
	Transactions    []Transaction
	Withdrawals     []Withdrawal
}

type PaymentType string

const (
	PaymentSignup       PaymentType = "signup"
	PaymentSubscription PaymentType = "subscription"
)

// PaymentEvent is a confirmed payment normalized from the provider.
// UserID is zero when only Email identifies the payer.
type PaymentEvent struct {
	Type      PaymentType
	UserID    int
	Email     string
	Amount    int64
	Reference string
}

type TransferOutcome string

const (
	TransferSuccess  TransferOutcome = "success"
	TransferFailed   TransferOutcome = "failed"
	TransferReversed TransferOutcome = "reversed"
)

type TransferEvent struct {
	Reference string
	Outcome   TransferOutcome
	Reason    string
}

type Checkout struct {
	AuthorizationURL string
	Reference        string
}
