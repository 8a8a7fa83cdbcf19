package dto

type SignupPaymentRequestDTO struct {
	Email string `json:"email" example:"ada@example.com"`
}

type CheckoutResponseDTO struct {
	AuthorizationURL string `json:"authorizationUrl" example:"https://checkout.paystack.com/0peioxfhpn"`
	Reference        string `json:"reference" example:"PTX-5d0c..."`
}

type VerifyResponseDTO struct {
	Verified bool   `json:"verified"`
	Message  string `json:"message"`
}

type WebhookResponseDTO struct {
	Received bool `json:"received"`
}

type BankDTO struct {
	Name string `json:"name" example:"Guaranty Trust Bank"`
	Code string `json:"code" example:"058"`
	Slug string `json:"slug" example:"guaranty-trust-bank"`
}

type BanksResponseDTO struct {
	Banks []BankDTO `json:"banks"`
}

type AccountResponseDTO struct {
	AccountName   string `json:"accountName" example:"ADA OBI"`
	AccountNumber string `json:"accountNumber" example:"0123456789"`
}
