package webhook

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/GlebRadaev/affiliate/internal/dto"
	"github.com/GlebRadaev/affiliate/internal/paystack"
	"github.com/GlebRadaev/affiliate/pkg/utils"
	"go.uber.org/zap"
)

const maxBodySize = 1 << 20

type Service interface {
	Handle(ctx context.Context, event paystack.Event) error
}

type WebhookHandler struct {
	webhookService Service
	secret         string
}

func New(webhookService Service, secret string) *WebhookHandler {
	return &WebhookHandler{
		webhookService: webhookService,
		secret:         secret,
	}
}

// Paystack godoc
//
//	@Summary		Payment provider webhook
//	@Description	Signed charge and transfer notifications. Redelivered events are acknowledged without being applied twice.
//	@Tags			Webhooks
//	@Accept			json
//	@Produce		json
//	@Param			X-Paystack-Signature	header		string	true	"HMAC-SHA512 of the body"
//	@Success		200						{object}	dto.WebhookResponseDTO
//	@Failure		400						{object}	utils.Response	"Malformed event"
//	@Failure		401						{object}	utils.Response	"Invalid signature"
//	@Failure		500						{object}	utils.Response	"Event could not be applied"
//	@Router			/api/webhooks/paystack [post]
func (h *WebhookHandler) Paystack(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !paystack.VerifySignature(h.secret, body, r.Header.Get(paystack.SignatureHeader)) {
		zap.L().Warn("webhook with invalid signature", zap.String("remote", r.RemoteAddr))
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid signature")
		return
	}

	event, err := paystack.ParseEvent(body)
	if err != nil {
		switch {
		case errors.Is(err, paystack.ErrUnsupportedEvent):
			zap.L().Debug("webhook event ignored", zap.Error(err))
			utils.RespondWithJSON(w, http.StatusOK, dto.WebhookResponseDTO{Received: true})
		default:
			zap.L().Warn("malformed webhook", zap.Error(err))
			utils.RespondWithError(w, http.StatusBadRequest, "Malformed event")
		}
		return
	}

	if err := h.webhookService.Handle(r.Context(), event); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Event could not be applied")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.WebhookResponseDTO{Received: true})
}
