package dto

type SettingsRequestDTO struct {
	BankName      string `json:"bankName,omitempty" example:"GTBank"`
	BankCode      string `json:"bankCode,omitempty" example:"058"`
	AccountNumber string `json:"accountNumber,omitempty" example:"0123456789"`
	AccountName   string `json:"accountName,omitempty" example:"Ada Obi"`
	TelegramID    *int64 `json:"telegramId,omitempty" example:"123456789"`
}

type SettingsResponseDTO struct {
	BankName      string `json:"bankName,omitempty"`
	BankCode      string `json:"bankCode,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	AccountName   string `json:"accountName,omitempty"`
	TelegramID    *int64 `json:"telegramId,omitempty"`
}
