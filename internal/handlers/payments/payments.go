package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GlebRadaev/affiliate/internal/domain"
	"github.com/GlebRadaev/affiliate/internal/dto"
	"github.com/GlebRadaev/affiliate/internal/paystack"
	"github.com/GlebRadaev/affiliate/internal/service/commissionservice"
	"github.com/GlebRadaev/affiliate/internal/service/paymentservice"
	"github.com/GlebRadaev/affiliate/pkg/auth"
	"github.com/GlebRadaev/affiliate/pkg/utils"
)

type Service interface {
	InitializeSignup(ctx context.Context, email string) (*domain.Checkout, error)
	InitializeSubscription(ctx context.Context, userID int) (*domain.Checkout, error)
	Verify(ctx context.Context, reference string) (*domain.PaymentEvent, error)
	ListBanks(ctx context.Context) ([]paystack.Bank, error)
	ResolveAccount(ctx context.Context, accountNumber, bankCode string) (*paystack.Account, error)
}

type PaymentsHandler struct {
	paymentService Service
}

func New(paymentService Service) *PaymentsHandler {
	return &PaymentsHandler{
		paymentService: paymentService,
	}
}

// InitializeSignup godoc
//
//	@Summary		Start the signup fee payment
//	@Description	Create a hosted checkout for the one-time signup fee of a registered, not yet activated account.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.SignupPaymentRequestDTO	true	"Account email"
//	@Success		200		{object}	dto.CheckoutResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		404		{object}	utils.Response	"User not found"
//	@Failure		409		{object}	utils.Response	"Signup fee already paid"
//	@Failure		502		{object}	utils.Response	"Payment provider error"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/payments/signup [post]
func (h *PaymentsHandler) InitializeSignup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupPaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	checkout, err := h.paymentService.InitializeSignup(r.Context(), req.Email)
	if err != nil {
		respondCheckoutError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.CheckoutResponseDTO{
		AuthorizationURL: checkout.AuthorizationURL,
		Reference:        checkout.Reference,
	})
}

// InitializeSubscription godoc
//
//	@Summary		Start a subscription payment
//	@Description	Create a hosted checkout for the subscription price. Each successful subscription pays tier commissions to the referrers.
//	@Tags			Payments
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.CheckoutResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Account not activated"
//	@Failure		502	{object}	utils.Response	"Payment provider error"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/payments/subscription [post]
func (h *PaymentsHandler) InitializeSubscription(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	checkout, err := h.paymentService.InitializeSubscription(r.Context(), userID)
	if err != nil {
		if errors.Is(err, paymentservice.ErrUserNotFound) {
			utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		respondCheckoutError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.CheckoutResponseDTO{
		AuthorizationURL: checkout.AuthorizationURL,
		Reference:        checkout.Reference,
	})
}

func respondCheckoutError(w http.ResponseWriter, err error) {
	var apiErr *paystack.APIError
	switch {
	case errors.Is(err, paymentservice.ErrUserNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, paymentservice.ErrAlreadyPaid):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, paymentservice.ErrNotActivated):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.As(err, &apiErr):
		utils.RespondWithError(w, http.StatusBadGateway, "Payment provider error")
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// Verify godoc
//
//	@Summary		Verify a payment
//	@Description	Confirm a checkout with the provider after the redirect and apply it. Safe to call more than once and alongside the webhook.
//	@Tags			Payments
//	@Produce		json
//	@Param			reference	query		string	true	"Payment reference"
//	@Success		200			{object}	dto.VerifyResponseDTO
//	@Failure		400			{object}	dto.VerifyResponseDTO	"Payment not successful"
//	@Failure		404			{object}	dto.VerifyResponseDTO	"Payer not found"
//	@Failure		502			{object}	dto.VerifyResponseDTO	"Payment provider error"
//	@Failure		500			{object}	dto.VerifyResponseDTO	"Internal server error"
//	@Router			/api/payments/verify [get]
func (h *PaymentsHandler) Verify(w http.ResponseWriter, r *http.Request) {
	event, err := h.paymentService.Verify(r.Context(), r.URL.Query().Get("reference"))
	if err != nil {
		var apiErr *paystack.APIError
		switch {
		case errors.Is(err, paymentservice.ErrReferenceRequired),
			errors.Is(err, paymentservice.ErrPaymentNotSuccessful),
			errors.Is(err, paystack.ErrMalformedEvent),
			errors.Is(err, paystack.ErrUnsupportedEvent):
			respondVerify(w, http.StatusBadRequest, false, err.Error())
		case errors.Is(err, commissionservice.ErrPayerNotFound):
			respondVerify(w, http.StatusNotFound, false, err.Error())
		case errors.As(err, &apiErr):
			respondVerify(w, http.StatusBadGateway, false, "Payment provider error")
		default:
			respondVerify(w, http.StatusInternalServerError, false, "Internal server error")
		}
		return
	}

	message := "Subscription payment verified"
	if event.Type == domain.PaymentSignup {
		message = "Signup payment verified, your account is active"
	}
	respondVerify(w, http.StatusOK, true, message)
}

func respondVerify(w http.ResponseWriter, status int, verified bool, message string) {
	utils.RespondWithJSON(w, status, dto.VerifyResponseDTO{Verified: verified, Message: message})
}

// ListBanks godoc
//
//	@Summary		List payout banks
//	@Description	Active Nigerian banks that can receive withdrawals, sorted by name
//	@Tags			Payments
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.BanksResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		502	{object}	utils.Response	"Payment provider error"
//	@Router			/api/banks [get]
func (h *PaymentsHandler) ListBanks(w http.ResponseWriter, r *http.Request) {
	banks, err := h.paymentService.ListBanks(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, "Payment provider error")
		return
	}
	resp := dto.BanksResponseDTO{Banks: make([]dto.BankDTO, len(banks))}
	for i, b := range banks {
		resp.Banks[i] = dto.BankDTO{Name: b.Name, Code: b.Code, Slug: b.Slug}
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ResolveAccount godoc
//
//	@Summary		Resolve a bank account
//	@Description	Look up the account holder name for a 10-digit account number at the given bank
//	@Tags			Payments
//	@Security		BearerAuth
//	@Produce		json
//	@Param			account_number	query		string	true	"Account number"
//	@Param			bank_code		query		string	true	"Bank code"
//	@Success		200				{object}	dto.AccountResponseDTO
//	@Failure		400				{object}	utils.Response	"Invalid account number"
//	@Failure		401				{object}	utils.Response	"User not authorized"
//	@Failure		422				{object}	utils.Response	"Account could not be resolved"
//	@Failure		502				{object}	utils.Response	"Payment provider error"
//	@Router			/api/banks/resolve [get]
func (h *PaymentsHandler) ResolveAccount(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	account, err := h.paymentService.ResolveAccount(r.Context(), q.Get("account_number"), q.Get("bank_code"))
	if err != nil {
		var apiErr *paystack.APIError
		switch {
		case errors.Is(err, paymentservice.ErrInvalidAccountNumber):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError:
			utils.RespondWithError(w, http.StatusUnprocessableEntity, "Account could not be resolved")
		default:
			utils.RespondWithError(w, http.StatusBadGateway, "Payment provider error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.AccountResponseDTO{
		AccountName:   account.AccountName,
		AccountNumber: account.AccountNumber,
	})
}
