package dto

import (
	"time"

	"github.com/GlebRadaev/affiliate/internal/domain"
	"github.com/GlebRadaev/affiliate/pkg/money"
	"github.com/shopspring/decimal"
)

// Amounts are naira with up to two decimal places.
type BalanceResponseDTO struct {
	TotalEarnings      decimal.Decimal `json:"totalEarnings" swaggertype:"string" example:"30000"`
	Tier1Earnings      decimal.Decimal `json:"tier1Earnings" swaggertype:"string" example:"25000"`
	Tier2Earnings      decimal.Decimal `json:"tier2Earnings" swaggertype:"string" example:"5000"`
	TotalWithdrawn     decimal.Decimal `json:"totalWithdrawn" swaggertype:"string" example:"20000"`
	PendingWithdrawals decimal.Decimal `json:"pendingWithdrawals" swaggertype:"string" example:"0"`
	AvailableBalance   decimal.Decimal `json:"availableBalance" swaggertype:"string" example:"10000"`
}

type BankDetailsDTO struct {
	BankName      string `json:"bankName" example:"GTBank"`
	BankCode      string `json:"bankCode" example:"058"`
	AccountNumber string `json:"accountNumber" example:"0123456789"`
	AccountName   string `json:"accountName" example:"Ada Obi"`
}

type ProfileDTO struct {
	Name           string          `json:"name" example:"Ada Obi"`
	Email          string          `json:"email" example:"ada@example.com"`
	ReferralCode   string          `json:"referralCode" example:"0B4D11EF"`
	BankDetails    *BankDetailsDTO `json:"bankDetails,omitempty"`
	TelegramLinked bool            `json:"telegramLinked"`
}

type MonthlyEarningsDTO struct {
	Month string          `json:"month" example:"2024-06"`
	Tier1 decimal.Decimal `json:"tier1" swaggertype:"string" example:"25000"`
	Tier2 decimal.Decimal `json:"tier2" swaggertype:"string" example:"5000"`
}

type ReferralDTO struct {
	Name      string          `json:"name" example:"Tolu Ade"`
	Email     string          `json:"email" example:"tolu@example.com"`
	Tier      int             `json:"tier" example:"1"`
	Status    string          `json:"status" example:"active"`
	Earnings  decimal.Decimal `json:"earnings" swaggertype:"string" example:"25000"`
	CreatedAt time.Time       `json:"createdAt"`
}

type TransactionDTO struct {
	Type        string          `json:"type" example:"commission"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"25000"`
	Status      string          `json:"status" example:"completed"`
	Tier        *int            `json:"tier,omitempty" example:"1"`
	Reference   *string         `json:"reference,omitempty" example:"PTX-5d0c..."`
	Description string          `json:"description" example:"Tier 1 commission from Tolu Ade"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type DashboardResponseDTO struct {
	User ProfileDTO `json:"user"`
	BalanceResponseDTO
	ActiveReferrals    int                  `json:"activeReferrals" example:"1"`
	TotalReferrals     int                  `json:"totalReferrals" example:"2"`
	ChartData          []MonthlyEarningsDTO `json:"chartData"`
	ReferralList       []ReferralDTO        `json:"referralList"`
	TransactionHistory []TransactionDTO     `json:"transactionHistory"`
	WithdrawalHistory  []WithdrawalDTO      `json:"withdrawalHistory"`
}

func NewBalanceResponse(b domain.Balance) BalanceResponseDTO {
	return BalanceResponseDTO{
		TotalEarnings:      money.ToNaira(b.Earned),
		Tier1Earnings:      money.ToNaira(b.Tier1),
		Tier2Earnings:      money.ToNaira(b.Tier2),
		TotalWithdrawn:     money.ToNaira(b.Withdrawn),
		PendingWithdrawals: money.ToNaira(b.PendingOut),
		AvailableBalance:   money.ToNaira(b.Available),
	}
}

func NewProfile(u domain.User) ProfileDTO {
	p := ProfileDTO{
		Name:           u.FullName(),
		Email:          u.Email,
		ReferralCode:   u.ReferralCode,
		TelegramLinked: u.TelegramID != nil,
	}
	if u.Bank != nil {
		p.BankDetails = &BankDetailsDTO{
			BankName:      u.Bank.BankName,
			BankCode:      u.Bank.BankCode,
			AccountNumber: u.Bank.AccountNumber,
			AccountName:   u.Bank.AccountName,
		}
	}
	return p
}

func NewDashboardResponse(d *domain.Dashboard) DashboardResponseDTO {
	resp := DashboardResponseDTO{
		User:               NewProfile(d.User),
		BalanceResponseDTO: NewBalanceResponse(d.Balance),
		ActiveReferrals:    d.ActiveReferrals,
		TotalReferrals:     d.TotalReferrals,
		ChartData:          make([]MonthlyEarningsDTO, len(d.Monthly)),
		ReferralList:       make([]ReferralDTO, len(d.Referrals)),
		TransactionHistory: make([]TransactionDTO, len(d.Transactions)),
		WithdrawalHistory:  NewWithdrawalList(d.Withdrawals),
	}
	for i, m := range d.Monthly {
		resp.ChartData[i] = MonthlyEarningsDTO{
			Month: m.Month.Format("2006-01"),
			Tier1: money.ToNaira(m.Tier1),
			Tier2: money.ToNaira(m.Tier2),
		}
	}
	for i, r := range d.Referrals {
		resp.ReferralList[i] = ReferralDTO{
			Name:      r.ReferredName,
			Email:     r.ReferredEmail,
			Tier:      r.Tier,
			Status:    r.Status,
			Earnings:  money.ToNaira(r.Earnings),
			CreatedAt: r.CreatedAt,
		}
	}
	for i, t := range d.Transactions {
		resp.TransactionHistory[i] = TransactionDTO{
			Type:        t.Type,
			Amount:      money.ToNaira(t.Amount),
			Status:      t.Status,
			Tier:        t.Tier,
			Reference:   t.PaymentReference,
			Description: t.Description,
			CreatedAt:   t.CreatedAt,
		}
	}
	return resp
}
