// Package notify delivers short user-facing messages about ledger and
// withdrawal events. Delivery is best effort: callers log failures and move on.
package notify

import (
	"context"
	"fmt"
	"html"

	"github.com/GlebRadaev/affiliate/internal/domain"
	"github.com/GlebRadaev/affiliate/pkg/money"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Notifier interface {
	Notify(ctx context.Context, userID int, text string) error
}

// Sender is the part of *tgbotapi.BotAPI used here.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type UserLookup interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
}

type Telegram struct {
	bot   Sender
	users UserLookup
}

func NewTelegram(bot Sender, users UserLookup) *Telegram {
	return &Telegram{bot: bot, users: users}
}

// Notify sends text to the user's linked chat. Users without a chat are skipped.
func (t *Telegram) Notify(ctx context.Context, userID int, text string) error {
	user, err := t.users.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("lookup user %d: %w", userID, err)
	}
	if user == nil || user.TelegramID == nil {
		zap.L().Debug("no telegram chat linked, skipping notification", zap.Int("userID", userID))
		return nil
	}

	msg := tgbotapi.NewMessage(*user.TelegramID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

type Noop struct{}

func (Noop) Notify(context.Context, int, string) error { return nil }

func naira(kobo int64) string {
	return "₦" + money.ToNaira(kobo).StringFixed(2)
}

func AccountActivated() string {
	return "<b>Your affiliate account is active.</b> Share your referral code to start earning."
}

func PaymentConfirmed(amount int64) string {
	return fmt.Sprintf("Payment of <b>%s</b> confirmed. Thank you!", naira(amount))
}

func CommissionEarned(tier int, amount int64, from string) string {
	return fmt.Sprintf("You earned <b>%s</b> tier %d commission from %s.", naira(amount), tier, html.EscapeString(from))
}

func WithdrawalProcessing(amount int64) string {
	return fmt.Sprintf("Your withdrawal of <b>%s</b> is being processed.", naira(amount))
}

func WithdrawalCompleted(amount int64) string {
	return fmt.Sprintf("Your withdrawal of <b>%s</b> has been paid out.", naira(amount))
}

func WithdrawalFailed(amount int64, reason string) string {
	return fmt.Sprintf("Your withdrawal of <b>%s</b> failed: %s", naira(amount), html.EscapeString(reason))
}
