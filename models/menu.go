package models

// Category is one of the four fixed menu partitions.
type Category string

const (
	CategorySnacks   Category = "snacks"
	CategoryMainMenu Category = "mainMenu"
	CategoryDrinks   Category = "drinks"
	CategorySauces   Category = "sauces"
)

// Categories lists all valid categories in menu order.
var Categories = []Category{CategorySnacks, CategoryMainMenu, CategoryDrinks, CategorySauces}

// CategoryTitles maps categories to the display names used in bot messages.
var CategoryTitles = map[Category]string{
	CategorySnacks:   "Снеки",
	CategoryMainMenu: "Основное меню",
	CategoryDrinks:   "Напитки",
	CategorySauces:   "Соусы",
}

// ParseCategory validates a raw category string.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	switch c {
	case CategorySnacks, CategoryMainMenu, CategoryDrinks, CategorySauces:
		return c, true
	}
	return "", false
}

// Ingredient is a priced add-on a customer may attach to a line item.
type Ingredient struct {
	ID    string  `db:"id" json:"id"`
	Name  string  `db:"name" json:"name"`
	Price float64 `db:"price" json:"price"`
}

// RemovableComponent is a default ingredient a customer may exclude.
// Removal is a preparation instruction only and never affects price.
type RemovableComponent struct {
	ID   string `db:"component_id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Product is a single menu item within a category.
type Product struct {
	ID          int64                `db:"id" json:"id"`
	Category    Category             `db:"category" json:"category"`
	Name        string               `db:"name" json:"name"`
	Price       float64              `db:"price" json:"price"`
	Description string               `db:"description" json:"description"`
	PhotoURL    string               `db:"photo_url" json:"photoUrl"`
	PhotoID     string               `db:"photo_id" json:"photoId,omitempty"`
	Additions   []Ingredient         `json:"ingredients"`
	Removable   []RemovableComponent `json:"removableIngredients"`
	CreatedAt   string               `db:"created_at" json:"-"`
}

// Menu is the full categorized catalog as served to the web front-end.
// All four category keys are always present.
type Menu struct {
	Snacks   []Product `json:"snacks"`
	MainMenu []Product `json:"mainMenu"`
	Drinks   []Product `json:"drinks"`
	Sauces   []Product `json:"sauces"`
}

// NewMenu returns a menu with empty (non-nil) category slices.
func NewMenu() *Menu {
	return &Menu{
		Snacks:   []Product{},
		MainMenu: []Product{},
		Drinks:   []Product{},
		Sauces:   []Product{},
	}
}

// Items returns the products of a category.
func (m *Menu) Items(c Category) []Product {
	switch c {
	case CategorySnacks:
		return m.Snacks
	case CategoryMainMenu:
		return m.MainMenu
	case CategoryDrinks:
		return m.Drinks
	case CategorySauces:
		return m.Sauces
	}
	return nil
}

// Append adds a product to its category slice.
func (m *Menu) Append(p Product) {
	switch p.Category {
	case CategorySnacks:
		m.Snacks = append(m.Snacks, p)
	case CategoryMainMenu:
		m.MainMenu = append(m.MainMenu, p)
	case CategoryDrinks:
		m.Drinks = append(m.Drinks, p)
	case CategorySauces:
		m.Sauces = append(m.Sauces, p)
	}
}

// Total returns the number of products across all categories.
func (m *Menu) Total() int {
	return len(m.Snacks) + len(m.MainMenu) + len(m.Drinks) + len(m.Sauces)
}
