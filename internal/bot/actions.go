package bot

import (
	"strconv"
	"strings"

	"foodbot/models"
)

// ActionKind discriminates the callback actions of the inline keyboards.
type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionAdminPanel
	ActionAdminAdd
	ActionAdminRemove
	ActionAdminMenu
	ActionAdminStats
	ActionAdminIngredients
	ActionAddProduct        // Category
	ActionListCategory      // Category
	ActionRemoveProduct     // Category, Name
	ActionAddIngredient
	ActionListIngredients
	ActionRemoveIngredient
	ActionDeleteIngredient // IngredientID
	ActionAcceptOrder      // OrderID
	ActionRejectOrder      // OrderID
)

// Action is a parsed callback identifier: a kind plus its payload. The flat
// string namespace of the keyboards is parsed once here and matched on Kind
// by the dispatcher, instead of prefix checks scattered per handler.
type Action struct {
	Kind         ActionKind
	Category     models.Category
	Name         string
	IngredientID string
	OrderID      int64
}

// ParseAction decodes a callback data string. The bool result reports
// whether the string named a known action.
func ParseAction(data string) (Action, bool) {
	switch data {
	case "admin_back":
		return Action{Kind: ActionAdminPanel}, true
	case "admin_add":
		return Action{Kind: ActionAdminAdd}, true
	case "admin_remove":
		return Action{Kind: ActionAdminRemove}, true
	case "admin_menu":
		return Action{Kind: ActionAdminMenu}, true
	case "admin_stats":
		return Action{Kind: ActionAdminStats}, true
	case "admin_ingredients":
		return Action{Kind: ActionAdminIngredients}, true
	case "add_ingredient":
		return Action{Kind: ActionAddIngredient}, true
	case "list_ingredients":
		return Action{Kind: ActionListIngredients}, true
	case "remove_ingredient":
		return Action{Kind: ActionRemoveIngredient}, true
	}

	if rest, ok := strings.CutPrefix(data, "add_product_"); ok {
		if c, ok := models.ParseCategory(rest); ok {
			return Action{Kind: ActionAddProduct, Category: c}, true
		}
		return Action{}, false
	}
	if rest, ok := strings.CutPrefix(data, "delete_ingredient_"); ok && rest != "" {
		return Action{Kind: ActionDeleteIngredient, IngredientID: rest}, true
	}
	if rest, ok := strings.CutPrefix(data, "accept_order_"); ok {
		if id, err := strconv.ParseInt(rest, 10, 64); err == nil {
			return Action{Kind: ActionAcceptOrder, OrderID: id}, true
		}
		return Action{}, false
	}
	if rest, ok := strings.CutPrefix(data, "reject_order_"); ok {
		if id, err := strconv.ParseInt(rest, 10, 64); err == nil {
			return Action{Kind: ActionRejectOrder, OrderID: id}, true
		}
		return Action{}, false
	}
	if rest, ok := strings.CutPrefix(data, "list_"); ok {
		if c, ok := models.ParseCategory(rest); ok {
			return Action{Kind: ActionListCategory, Category: c}, true
		}
		return Action{}, false
	}
	if rest, ok := strings.CutPrefix(data, "remove_"); ok {
		// remove_<category>_<name>; the name may itself contain underscores.
		cat, name, found := strings.Cut(rest, "_")
		if !found || name == "" {
			return Action{}, false
		}
		if c, ok := models.ParseCategory(cat); ok {
			return Action{Kind: ActionRemoveProduct, Category: c, Name: name}, true
		}
		return Action{}, false
	}
	return Action{}, false
}
