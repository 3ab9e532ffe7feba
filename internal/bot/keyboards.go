package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"foodbot/internal/catalog"
	"foodbot/internal/notify"
	"foodbot/models"
)

var categoryEmojis = map[models.Category]string{
	models.CategorySnacks:   "🍟",
	models.CategoryMainMenu: "🍔",
	models.CategoryDrinks:   "🥤",
	models.CategorySauces:   "🥫",
}

func backRow(target string) []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("◀️ Назад", target),
	)
}

func adminPanelKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("➕ Добавить товар", "admin_add")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("❌ Удалить товар", "admin_remove")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📋 Просмотр меню", "admin_menu")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🧂 Управление ингредиентами", "admin_ingredients")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📊 Статистика", "admin_stats")),
	)
}

func categoryPickKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(models.Categories)+1)
	for _, c := range models.Categories {
		label := fmt.Sprintf("%s %s", categoryEmojis[c], models.CategoryTitles[c])
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "add_product_"+string(c)),
		))
	}
	rows = append(rows, backRow("admin_back"))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// removeCategoryKeyboard lists only categories that still have products.
func removeCategoryKeyboard(menu *models.Menu) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, c := range models.Categories {
		if len(menu.Items(c)) == 0 {
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📑 "+strings.ToUpper(string(c)), "list_"+string(c)),
		))
	}
	rows = append(rows, backRow("admin_back"))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func removeItemKeyboard(category models.Category, items []models.Product) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(items)+1)
	for _, p := range items {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(p.Name, fmt.Sprintf("remove_%s_%s", category, p.Name)),
		))
	}
	rows = append(rows, backRow("admin_remove"))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func ingredientsMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("➕ Добавить ингредиент", "add_ingredient")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("❌ Удалить ингредиент", "remove_ingredient")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📋 Список ингредиентов", "list_ingredients")),
		backRow("admin_back"),
	)
}

func deleteIngredientKeyboard(ingredients []models.Ingredient) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(ingredients)+1)
	for _, ing := range ingredients {
		label := fmt.Sprintf("%s (%s₽)", ing.Name, notify.FormatPrice(ing.Price))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "delete_ingredient_"+ing.ID),
		))
	}
	rows = append(rows, backRow("admin_ingredients"))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func adminReplyKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton("⚙️ Админ-панель")),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton("📊 Статистика")),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton("➕ Добавить товар")),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton("❌ Удалить товар")),
	)
	kb.ResizeKeyboard = true
	return kb
}

// menuText renders the public /menu listing.
func menuText(menu *models.Menu) string {
	var b strings.Builder
	b.WriteString("Текущее меню:\n\n")
	b.WriteString("🔸 Особенности:\n")
	b.WriteString("- Для Гамбургера, Шаурмы на тарелке и Сендвича доступна опция \"Убрать лук\"\n\n")
	for _, c := range models.Categories {
		items := menu.Items(c)
		if len(items) == 0 {
			continue
		}
		b.WriteString(models.CategoryTitles[c] + ":\n")
		for _, p := range items {
			fmt.Fprintf(&b, "- %s: %s₽\n", p.Name, notify.FormatPrice(p.Price))
			if p.Description != "" {
				fmt.Fprintf(&b, "  %s\n", p.Description)
			}
			if len(p.Removable) > 0 {
				b.WriteString("  ⚡️ Можно без лука\n")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// adminMenuText renders the admin catalog view.
func adminMenuText(menu *models.Menu) string {
	var b strings.Builder
	b.WriteString("📋 Текущее меню:\n\n")
	for _, c := range models.Categories {
		items := menu.Items(c)
		if len(items) == 0 {
			continue
		}
		b.WriteString(strings.ToUpper(string(c)) + ":\n")
		for _, p := range items {
			fmt.Fprintf(&b, "- %s: %s₽\n", p.Name, notify.FormatPrice(p.Price))
			if p.Description != "" {
				fmt.Fprintf(&b, "  %s\n", p.Description)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func statsText(st catalog.Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Статистика:\n\nВсего товаров: %d\n\nПо категориям:\n", st.Total)
	lines := make([]string, 0, len(models.Categories))
	for _, c := range models.Categories {
		lines = append(lines, fmt.Sprintf("%s: %d", models.CategoryTitles[c], st.ByCategory[c]))
	}
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}

func ingredientsListText(ingredients []models.Ingredient) string {
	if len(ingredients) == 0 {
		return "Список ингредиентов пуст"
	}
	var b strings.Builder
	b.WriteString("📋 Список доступных ингредиентов:\n\n")
	for _, ing := range ingredients {
		fmt.Fprintf(&b, "- %s: %s₽\n", ing.Name, notify.FormatPrice(ing.Price))
	}
	return b.String()
}
