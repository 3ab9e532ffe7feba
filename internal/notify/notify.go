package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"foodbot/models"
	"foodbot/pkg/logger"
)

// Sender is the outbound half of the chat transport. *tgbotapi.BotAPI
// satisfies it; tests substitute a fake.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram routes order lifecycle events to the customer and the single
// admin chat. Sends are best-effort with one retry: a failure is logged and
// never propagated, since the triggering state change is already durable.
type Telegram struct {
	sender  Sender
	adminID int64
	log     *logger.Logger
}

// NewTelegram builds the dispatcher.
func NewTelegram(sender Sender, adminID int64, log *logger.Logger) *Telegram {
	return &Telegram{sender: sender, adminID: adminID, log: log.WithComponent("notify")}
}

// OrderCreated sends the itemized receipt to the customer and the summary
// with the accept/reject keyboard to the admin.
func (t *Telegram) OrderCreated(ctx context.Context, o *models.Order) {
	t.send(o.UserID, RenderReceipt(o), nil)

	kb := AcceptRejectKeyboard(o.ID)
	t.send(t.adminID, RenderAdminSummary(o), &kb)
}

// StatusChanged sends the fixed accepted/rejected phrase to the customer.
func (t *Telegram) StatusChanged(ctx context.Context, o *models.Order) {
	t.send(o.UserID, RenderStatusPhrase(o), nil)
}

func (t *Telegram) send(chatID int64, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	if kb != nil {
		msg.ReplyMarkup = *kb
	}
	_, err := t.sender.Send(msg)
	if err == nil {
		return
	}
	// Retry once. A chat may be blocked or invalid; the order stays recorded.
	if _, err = t.sender.Send(msg); err != nil {
		t.log.Error("notification send failed", "chat_id", chatID, "error", err)
	}
}

// AcceptRejectKeyboard builds the admin action pair for an order.
func AcceptRejectKeyboard(orderID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Принять", fmt.Sprintf("accept_order_%d", orderID)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отклонить", fmt.Sprintf("reject_order_%d", orderID)),
		),
	)
}
