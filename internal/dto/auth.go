package dto

type RegisterRequestDTO struct {
	Email        string `json:"email" example:"ada@example.com"`
	Password     string `json:"password" example:"s3cret-pass"`
	FirstName    string `json:"firstName" example:"Ada"`
	LastName     string `json:"lastName" example:"Obi"`
	ReferralCode string `json:"referralCode,omitempty" example:"7F3A9C21"`
}

type RegisterResponseDTO struct {
	Message      string `json:"message"`
	ReferralCode string `json:"referralCode" example:"0B4D11EF"`
}

type LoginRequestDTO struct {
	Email    string `json:"email" example:"ada@example.com"`
	Password string `json:"password" example:"s3cret-pass"`
}

type LoginResponseDTO struct {
	Message string `json:"message"`
}
