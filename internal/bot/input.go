package bot

import (
	"strings"

	"foodbot/internal/catalog"
	"foodbot/models"
)

// ParseItemData decodes the "name\nprice\ndescription" product message.
// Wrong line count or a non-numeric price is a ValidationError; the caller
// re-prompts without leaving the current state.
func ParseItemData(text string) (ProductDraft, error) {
	lines := splitLines(text)
	if len(lines) != 3 {
		return ProductDraft{}, models.Validationf("expected three lines: name, price, description")
	}
	price, err := catalog.ParsePrice(lines[1])
	if err != nil {
		return ProductDraft{}, err
	}
	return ProductDraft{Name: lines[0], Price: price, Description: lines[2]}, nil
}

// ParseIngredientData decodes the "name\nprice" ingredient message.
func ParseIngredientData(text string) (string, float64, error) {
	lines := splitLines(text)
	if len(lines) != 2 {
		return "", 0, models.Validationf("expected two lines: name, price")
	}
	price, err := catalog.ParsePrice(lines[1])
	if err != nil {
		return "", 0, err
	}
	return lines[0], price, nil
}

func splitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
