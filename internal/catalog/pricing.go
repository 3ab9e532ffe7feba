package catalog

import "foodbot/models"

// LineTotal computes the final price of an order line:
// (base price + sum of chosen addition prices) * quantity.
// Removed components are preparation instructions and never enter the price.
// A non-positive quantity is treated as one unit.
func LineTotal(basePrice float64, additions []models.Ingredient, quantity int) float64 {
	if quantity <= 0 {
		quantity = 1
	}
	unit := basePrice
	for _, a := range additions {
		unit += a.Price
	}
	return unit * float64(quantity)
}
