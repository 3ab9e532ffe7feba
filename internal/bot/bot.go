package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"foodbot/internal/catalog"
	"foodbot/internal/config"
	"foodbot/internal/images"
	"foodbot/internal/orders"
	"foodbot/pkg/logger"
)

const (
	msgChooseAction       = "Выберите действие:"
	msgShopInvite         = "Заходи в наш интернет магазин по кнопке ниже"
	msgAdminOnly          = "У вас нет прав администратора"
	msgAdminPanel         = "Админ-панель:"
	msgPickCategory       = "Выберите категорию для добавления:"
	msgPickRemoveCategory = "Выберите категорию:"
	msgIngredientsPanel   = "Управление ингредиентами:"
	msgPickIngredient     = "Выберите ингредиент для удаления:"
	msgItemDataPrompt     = "📝 Отправьте данные о товаре в формате:\n\nНазвание\nЦена\nОписание\n\nПосле этого отправьте фото товара"
	msgIngredientPrompt   = "📝 Отправьте данные ингредиента в формате:\n\nНазвание\nЦена\n\nНапример:\nСыр\n40"
	msgPhotoPrompt        = "Теперь отправьте фото товара"
	msgBadFormat          = "Неверный формат. Попробуйте снова."
	msgGenericError       = "Произошла ошибка. Попробуйте снова."
	msgProductAdded       = "Товар успешно добавлен!"
	msgProductAddError    = "Произошла ошибка при добавлении товара."
)

// API is the slice of the telegram client the gateway needs.
// *tgbotapi.BotAPI satisfies it; tests substitute a fake.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

// Bot is the chat gateway: it routes commands, admin keyboard actions and
// session-driven free-text/photo messages to the catalog and order services.
type Bot struct {
	api       API
	catalog   *catalog.Service
	orders    *orders.Service
	sessions  *SessionStore
	images    *images.Store
	adminID   int64
	webAppURL string
	log       *logger.Logger
}

// New builds the chat gateway.
func New(api API, cfg config.TelegramConfig, cat *catalog.Service, ord *orders.Service, sessions *SessionStore, imgs *images.Store, log *logger.Logger) *Bot {
	return &Bot{
		api:       api,
		catalog:   cat,
		orders:    ord,
		sessions:  sessions,
		images:    imgs,
		adminID:   cfg.AdminID,
		webAppURL: cfg.WebAppURL,
		log:       log.WithComponent("bot"),
	}
}

// Sessions exposes the session store for the periodic sweeper.
func (b *Bot) Sessions() *SessionStore {
	return b.sessions
}

// Run consumes updates until the context is cancelled or the channel closes.
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) isAdmin(chatID int64) bool {
	return chatID == b.adminID
}

func (b *Bot) send(chatID int64, text string) {
	b.sendWithMarkup(chatID, text, nil)
}

func (b *Bot) sendWithMarkup(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send failed", "chat_id", chatID, "error", err)
	}
}
