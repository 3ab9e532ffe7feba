package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"foodbot/models"
)

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if message.IsCommand() {
		b.handleCommand(chatID, message.Command())
		return
	}

	if len(message.Photo) > 0 {
		b.handlePhoto(ctx, message)
		return
	}

	if b.isAdmin(chatID) && b.handleAdminShortcut(chatID, message.Text) {
		return
	}

	b.handleSessionText(ctx, chatID, message.Text)
}

func (b *Bot) handleCommand(chatID int64, command string) {
	switch command {
	case "start":
		b.handleStart(chatID)
	case "menu":
		b.send(chatID, menuText(b.catalog.Menu()))
	case "admin":
		if !b.isAdmin(chatID) {
			b.send(chatID, msgAdminOnly)
			return
		}
		b.sendWithMarkup(chatID, msgAdminPanel, adminPanelKeyboard())
	}
}

func (b *Bot) handleStart(chatID int64) {
	if b.isAdmin(chatID) {
		b.sendWithMarkup(chatID, msgChooseAction, adminReplyKeyboard())
	}
	if b.webAppURL != "" {
		kb := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonURL("Сделать заказ", b.webAppURL),
			),
		)
		b.sendWithMarkup(chatID, msgShopInvite, kb)
		return
	}
	if !b.isAdmin(chatID) {
		b.send(chatID, menuText(b.catalog.Menu()))
	}
}

// handleAdminShortcut serves the reply-keyboard buttons shown to the admin
// on /start. Returns false when the text is not a shortcut.
func (b *Bot) handleAdminShortcut(chatID int64, text string) bool {
	switch text {
	case "⚙️ Админ-панель":
		b.sendWithMarkup(chatID, msgAdminPanel, adminPanelKeyboard())
	case "📊 Статистика":
		b.send(chatID, statsText(b.catalog.Stats()))
	case "➕ Добавить товар":
		b.sessions.Put(chatID, &Session{State: StateAwaitingCategory})
		b.sendWithMarkup(chatID, msgPickCategory, categoryPickKeyboard())
	case "❌ Удалить товар":
		b.sendWithMarkup(chatID, msgPickRemoveCategory, removeCategoryKeyboard(b.catalog.Menu()))
	default:
		return false
	}
	return true
}

// handleSessionText feeds free text into the active edit flow. Text that
// arrives in a state expecting something else is ignored.
func (b *Bot) handleSessionText(ctx context.Context, chatID int64, text string) {
	if text == "" || !b.isAdmin(chatID) {
		return
	}
	sess := b.sessions.Get(chatID)
	if sess == nil {
		return
	}

	switch sess.State {
	case StateAwaitingItemData:
		draft, err := ParseItemData(text)
		if err != nil {
			// Malformed input re-prompts without a transition.
			b.send(chatID, msgBadFormat)
			return
		}
		sess.Draft = draft
		sess.State = StateAwaitingPhoto
		b.sessions.Put(chatID, sess)
		b.send(chatID, msgPhotoPrompt)

	case StateAwaitingIngredientData:
		name, price, err := ParseIngredientData(text)
		if err != nil {
			b.send(chatID, msgBadFormat)
			return
		}
		if _, err := b.catalog.AddIngredient(ctx, name, price); err != nil {
			b.log.Error("add ingredient", "error", err)
			b.send(chatID, msgGenericError)
			return
		}
		b.sessions.Clear(chatID)
		kb := tgbotapi.NewInlineKeyboardMarkup(backRow("admin_ingredients"))
		b.sendWithMarkup(chatID, fmt.Sprintf("✅ Ингредиент %q успешно добавлен!", name), kb)
	}
}

// handlePhoto commits the product draft once the photo arrives.
func (b *Bot) handlePhoto(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	if !b.isAdmin(chatID) {
		return
	}
	sess := b.sessions.Get(chatID)
	if sess == nil || sess.State != StateAwaitingPhoto {
		return
	}

	// The last photo size is the largest.
	photo := message.Photo[len(message.Photo)-1]
	fileURL, err := b.api.GetFileDirectURL(photo.FileID)
	if err != nil {
		b.log.Error("resolve photo file", "error", err)
		b.send(chatID, msgProductAddError)
		return
	}
	publicURL, err := b.images.Download(ctx, fileURL, photo.FileID)
	if err != nil {
		b.log.Error("download photo", "error", err)
		b.send(chatID, msgProductAddError)
		return
	}

	_, err = b.catalog.AddProduct(ctx, sess.Category, sess.Draft.Name, sess.Draft.Price, sess.Draft.Description, publicURL, photo.FileID)
	if err != nil {
		b.log.Error("add product", "error", err)
		b.send(chatID, msgProductAddError)
		return
	}
	b.sessions.Clear(chatID)
	b.send(chatID, msgProductAdded)
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	// Acknowledge the press regardless of the outcome.
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		b.log.Error("answer callback", "error", err)
	}
	if query.Message == nil {
		return
	}
	chatID := query.Message.Chat.ID
	if !b.isAdmin(chatID) {
		return
	}

	action, ok := ParseAction(query.Data)
	if !ok {
		b.log.Warn("unknown callback action", "data", query.Data)
		return
	}

	switch action.Kind {
	case ActionAdminPanel:
		b.sendWithMarkup(chatID, msgAdminPanel, adminPanelKeyboard())

	case ActionAdminAdd:
		b.sessions.Put(chatID, &Session{State: StateAwaitingCategory})
		b.sendWithMarkup(chatID, msgPickCategory, categoryPickKeyboard())

	case ActionAdminRemove:
		b.sendWithMarkup(chatID, msgPickRemoveCategory, removeCategoryKeyboard(b.catalog.Menu()))

	case ActionAdminMenu:
		kb := tgbotapi.NewInlineKeyboardMarkup(backRow("admin_back"))
		b.sendWithMarkup(chatID, adminMenuText(b.catalog.Menu()), kb)

	case ActionAdminStats:
		kb := tgbotapi.NewInlineKeyboardMarkup(backRow("admin_back"))
		b.sendWithMarkup(chatID, statsText(b.catalog.Stats()), kb)

	case ActionAdminIngredients:
		b.sendWithMarkup(chatID, msgIngredientsPanel, ingredientsMenuKeyboard())

	case ActionAddProduct:
		b.sessions.Put(chatID, &Session{State: StateAwaitingItemData, Category: action.Category})
		b.send(chatID, msgItemDataPrompt)

	case ActionListCategory:
		items := b.catalog.Menu().Items(action.Category)
		text := fmt.Sprintf("Выберите товар для удаления из категории %s:", action.Category)
		b.sendWithMarkup(chatID, text, removeItemKeyboard(action.Category, items))

	case ActionRemoveProduct:
		if err := b.catalog.RemoveProductByName(ctx, action.Category, action.Name); err != nil {
			b.log.Error("remove product", "error", err)
			b.send(chatID, msgGenericError)
			return
		}
		kb := tgbotapi.NewInlineKeyboardMarkup(backRow("admin_remove"))
		text := fmt.Sprintf("✅ Товар %s успешно удален из категории %s", action.Name, action.Category)
		b.sendWithMarkup(chatID, text, kb)

	case ActionAddIngredient:
		b.sessions.Put(chatID, &Session{State: StateAwaitingIngredientData})
		b.send(chatID, msgIngredientPrompt)

	case ActionListIngredients:
		kb := tgbotapi.NewInlineKeyboardMarkup(backRow("admin_ingredients"))
		b.sendWithMarkup(chatID, ingredientsListText(b.catalog.Ingredients()), kb)

	case ActionRemoveIngredient:
		b.sendWithMarkup(chatID, msgPickIngredient, deleteIngredientKeyboard(b.catalog.Ingredients()))

	case ActionDeleteIngredient:
		if err := b.catalog.RemoveIngredient(ctx, action.IngredientID); err != nil {
			b.log.Error("remove ingredient", "error", err)
			b.send(chatID, msgGenericError)
			return
		}
		kb := tgbotapi.NewInlineKeyboardMarkup(backRow("admin_ingredients"))
		b.sendWithMarkup(chatID, "✅ Ингредиент успешно удален!", kb)

	case ActionAcceptOrder:
		b.resolveOrder(ctx, query, action.OrderID, models.OrderStatusAccepted)

	case ActionRejectOrder:
		b.resolveOrder(ctx, query, action.OrderID, models.OrderStatusRejected)
	}
}

// resolveOrder applies the admin's accept/reject decision and clears the
// action keyboard from the admin message. The transition only fires while
// the order is still new; a second press is a no-op.
func (b *Bot) resolveOrder(ctx context.Context, query *tgbotapi.CallbackQuery, orderID int64, status models.OrderStatus) {
	chatID := query.Message.Chat.ID
	_, changed, err := b.orders.SetStatus(ctx, orderID, status)
	if err != nil {
		b.log.Error("set order status", "order_id", orderID, "error", err)
		b.send(chatID, msgGenericError)
		return
	}
	if !changed {
		return
	}
	empty := tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, query.Message.MessageID, empty)
	if _, err := b.api.Request(edit); err != nil {
		b.log.Error("clear order keyboard", "order_id", orderID, "error", err)
	}
}
