package notify

import (
	"fmt"
	"strconv"
	"strings"

	"foodbot/models"
)

// FormatPrice renders a price without trailing zeros (200, not 200.00).
func FormatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// renderItems builds the itemized block shared by customer and admin
// messages: one paragraph per line item with its additions and removals.
func renderItems(items []models.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}
		text := fmt.Sprintf("%s - %s₽ x %d", item.Name, FormatPrice(item.FinalPrice), qty)
		if len(item.Added) > 0 {
			names := make([]string, 0, len(item.Added))
			for _, a := range item.Added {
				names = append(names, a.Name)
			}
			text += "\nДополнительно: " + strings.Join(names, ", ")
		}
		if len(item.Removed) > 0 {
			names := make([]string, 0, len(item.Removed))
			for _, rc := range item.Removed {
				names = append(names, rc.Name)
			}
			text += "\nУбрано: " + strings.Join(names, ", ")
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n\n")
}

// RenderReceipt builds the customer-facing order confirmation.
func RenderReceipt(o *models.Order) string {
	deliveryInfo := "Самовывоз"
	if o.DeliveryType == models.DeliveryTypeDelivery {
		deliveryInfo = "Доставка по адресу: " + o.Address
	}
	return fmt.Sprintf(`🎉 Заказ #%d принят!

📋 Ваш заказ:
%s

💰 Итого: %s₽
%s

📞 Телефон: %s`,
		o.ID, renderItems(o.Items), FormatPrice(o.TotalPrice), deliveryInfo, o.Phone)
}

// RenderAdminSummary builds the admin-facing new-order notification.
func RenderAdminSummary(o *models.Order) string {
	deliveryType := "Самовывоз"
	if o.DeliveryType == models.DeliveryTypeDelivery {
		deliveryType = "Доставка"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🔔 Новый заказ #%d!\n\n", o.ID)
	fmt.Fprintf(&b, "👤 Клиент: %d\n", o.UserID)
	fmt.Fprintf(&b, "📞 Телефон: %s\n", o.Phone)
	fmt.Fprintf(&b, "🚚 Тип доставки: %s\n", deliveryType)
	if o.Address != "" {
		fmt.Fprintf(&b, "📍 Адрес: %s\n", o.Address)
	}
	fmt.Fprintf(&b, "\n📋 Заказ:\n%s\n\n", renderItems(o.Items))
	fmt.Fprintf(&b, "💰 Итого: %s₽", FormatPrice(o.TotalPrice))
	return b.String()
}

// RenderStatusPhrase builds the fixed accepted/rejected customer message.
func RenderStatusPhrase(o *models.Order) string {
	if o.Status == models.OrderStatusAccepted {
		return fmt.Sprintf("✅ Ваш заказ #%d принят и готовится!", o.ID)
	}
	return fmt.Sprintf("❌ К сожалению, ваш заказ #%d отклонен.", o.ID)
}
