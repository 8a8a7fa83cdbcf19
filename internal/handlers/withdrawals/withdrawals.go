package withdrawals

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GlebRadaev/affiliate/internal/domain"
	"github.com/GlebRadaev/affiliate/internal/dto"
	"github.com/GlebRadaev/affiliate/internal/service/withdrawalservice"
	"github.com/GlebRadaev/affiliate/pkg/auth"
	"github.com/GlebRadaev/affiliate/pkg/money"
	"github.com/GlebRadaev/affiliate/pkg/utils"
)

type Service interface {
	RequestWithdrawal(ctx context.Context, userID int, amount int64, bank domain.BankDetails) (*domain.Withdrawal, error)
}

type WithdrawalsHandler struct {
	withdrawalService Service
}

func New(withdrawalService Service) *WithdrawalsHandler {
	return &WithdrawalsHandler{
		withdrawalService: withdrawalService,
	}
}

// Withdraw godoc
//
//	@Summary		Request a withdrawal
//	@Description	Start a bank transfer of available commission earnings. The withdrawal stays processing until the provider reports the outcome.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.WithdrawRequestDTO	true	"Withdrawal request payload"
//	@Success		200		{object}	dto.WithdrawalDTO		"Withdrawal accepted"
//	@Failure		400		{object}	utils.Response			"Invalid amount or bank details"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		402		{object}	utils.Response			"Insufficient balance"
//	@Failure		502		{object}	dto.WithdrawalErrorDTO	"Transfer could not be started"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/user/withdrawals [post]
func (h *WithdrawalsHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.WithdrawRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	amount, err := money.ToKobo(req.Amount)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	withdrawal, err := h.withdrawalService.RequestWithdrawal(r.Context(), userID, amount, domain.BankDetails{
		BankName:      req.BankName,
		BankCode:      req.BankCode,
		AccountNumber: req.AccountNumber,
		AccountName:   req.AccountName,
	})
	if err != nil {
		switch {
		case errors.Is(err, withdrawalservice.ErrBelowMinimum),
			errors.Is(err, withdrawalservice.ErrIncompleteDestination):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, withdrawalservice.ErrInsufficientBalance):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		case errors.Is(err, withdrawalservice.ErrUserNotFound):
			utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		case errors.Is(err, withdrawalservice.ErrPayoutFailed) && withdrawal != nil:
			utils.RespondWithJSON(w, http.StatusBadGateway, dto.WithdrawalErrorDTO{
				Error:      withdrawalservice.ErrPayoutFailed.Error(),
				Withdrawal: dto.NewWithdrawalDTO(*withdrawal),
			})
		case errors.Is(err, withdrawalservice.ErrPayoutFailed):
			utils.RespondWithError(w, http.StatusBadGateway, withdrawalservice.ErrPayoutFailed.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewWithdrawalDTO(*withdrawal))
}
