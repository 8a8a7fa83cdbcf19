package dto

import (
	"time"

	"github.com/GlebRadaev/affiliate/internal/domain"
	"github.com/GlebRadaev/affiliate/pkg/money"
	"github.com/shopspring/decimal"
)

type WithdrawRequestDTO struct {
	Amount        decimal.Decimal `json:"amount" swaggertype:"string" example:"20000"`
	BankName      string          `json:"bankName" example:"GTBank"`
	BankCode      string          `json:"bankCode" example:"058"`
	AccountNumber string          `json:"accountNumber" example:"0123456789"`
	AccountName   string          `json:"accountName" example:"Ada Obi"`
}

type WithdrawalDTO struct {
	Reference     string          `json:"reference" example:"wth-2b9f..."`
	Amount        decimal.Decimal `json:"amount" swaggertype:"string" example:"20000"`
	Status        string          `json:"status" example:"processing"`
	BankName      string          `json:"bankName" example:"GTBank"`
	AccountNumber string          `json:"accountNumber" example:"0123456789"`
	AccountName   string          `json:"accountName" example:"Ada Obi"`
	Reason        *string         `json:"reason,omitempty"`
	ProcessedAt   *time.Time      `json:"processedAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// WithdrawalErrorDTO is returned when the transfer could not be started; the
// withdrawal is included so the client can show its failed state.
type WithdrawalErrorDTO struct {
	Error      string        `json:"error"`
	Withdrawal WithdrawalDTO `json:"withdrawal"`
}

func NewWithdrawalDTO(w domain.Withdrawal) WithdrawalDTO {
	return WithdrawalDTO{
		Reference:     w.Reference,
		Amount:        money.ToNaira(w.Amount),
		Status:        w.Status,
		BankName:      w.Bank.BankName,
		AccountNumber: w.Bank.AccountNumber,
		AccountName:   w.Bank.AccountName,
		Reason:        w.Reason,
		ProcessedAt:   w.ProcessedAt,
		CreatedAt:     w.CreatedAt,
	}
}

func NewWithdrawalList(ws []domain.Withdrawal) []WithdrawalDTO {
	out := make([]WithdrawalDTO, len(ws))
	for i, w := range ws {
		out[i] = NewWithdrawalDTO(w)
	}
	return out
}
