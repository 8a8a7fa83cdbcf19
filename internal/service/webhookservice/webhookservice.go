package webhookservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/GlebRadaev/affiliate/internal/domain"
	"github.com/GlebRadaev/affiliate/internal/metrics"
	"github.com/GlebRadaev/affiliate/internal/paystack"
	"github.com/GlebRadaev/affiliate/internal/service/commissionservice"
	"github.com/GlebRadaev/affiliate/internal/service/withdrawalservice"
	"go.uber.org/zap"
)

const (
	resultApplied   = "applied"
	resultDuplicate = "duplicate"
	resultIgnored   = "ignored"
	resultError     = "error"
)

// EventCache remembers events that were fully applied.
type EventCache interface {
	Seen(ctx context.Context, key string) (bool, error)
	Remember(ctx context.Context, key string) error
}

type PaymentHandler interface {
	HandlePayment(ctx context.Context, event domain.PaymentEvent) error
}

type TransferHandler interface {
	OnTransferOutcome(ctx context.Context, event domain.TransferEvent) (*domain.Withdrawal, error)
}

type Service struct {
	cache     EventCache
	payments  PaymentHandler
	transfers TransferHandler
}

func New(cache EventCache, payments PaymentHandler, transfers TransferHandler) *Service {
	return &Service{
		cache:     cache,
		payments:  payments,
		transfers: transfers,
	}
}

func cacheKey(event paystack.Event) string {
	return fmt.Sprintf("webhook:%s:%s", event.Name, event.Reference)
}

// Handle applies a decoded webhook. Events for unknown payers or withdrawals
// are acknowledged; only failures the provider should retry are returned.
func (s *Service) Handle(ctx context.Context, event paystack.Event) error {
	key := cacheKey(event)
	seen, err := s.cache.Seen(ctx, key)
	if err != nil {
		zap.L().Warn("event cache unavailable", zap.String("key", key), zap.Error(err))
	}
	if seen {
		zap.L().Info("webhook already processed", zap.String("key", key))
		metrics.WebhookEvents.WithLabelValues(event.Name, resultDuplicate).Inc()
		return nil
	}

	result, err := s.apply(ctx, event)
	if err != nil {
		zap.L().Error("webhook processing failed",
			zap.String("event", event.Name), zap.String("reference", event.Reference), zap.Error(err))
		metrics.WebhookEvents.WithLabelValues(event.Name, resultError).Inc()
		return err
	}
	metrics.WebhookEvents.WithLabelValues(event.Name, result).Inc()

	if err := s.cache.Remember(ctx, key); err != nil {
		zap.L().Warn("can't remember webhook", zap.String("key", key), zap.Error(err))
	}
	return nil
}

func (s *Service) apply(ctx context.Context, event paystack.Event) (string, error) {
	switch {
	case event.Payment != nil:
		err := s.payments.HandlePayment(ctx, *event.Payment)
		if errors.Is(err, commissionservice.ErrPayerNotFound) {
			return resultIgnored, nil
		}
		if err != nil {
			return "", err
		}
	case event.Transfer != nil:
		_, err := s.transfers.OnTransferOutcome(ctx, *event.Transfer)
		if errors.Is(err, withdrawalservice.ErrWithdrawalNotFound) {
			return resultIgnored, nil
		}
		if err != nil {
			return "", err
		}
	default:
		return resultIgnored, nil
	}
	return resultApplied, nil
}
