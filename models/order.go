package models

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusNew      OrderStatus = "new"
	OrderStatusAccepted OrderStatus = "accepted"
	OrderStatusRejected OrderStatus = "rejected"
)

// DeliveryType is how the customer wants to receive the order.
type DeliveryType string

const (
	DeliveryTypeDelivery DeliveryType = "delivery"
	DeliveryTypePickup   DeliveryType = "pickup"
)

// OrderItem is a single line of an order. Added holds the chosen priced
// additions; Removed holds excluded default components (preparation note,
// no price effect). FinalPrice is the line total for Quantity units.
type OrderItem struct {
	ID         int64                `db:"id" json:"-"`
	ProductID  int64                `db:"product_id" json:"id"`
	Name       string               `db:"name" json:"name"`
	Quantity   int                  `db:"quantity" json:"quantity"`
	FinalPrice float64              `db:"final_price" json:"finalPrice"`
	Added      []Ingredient         `json:"addedIngredients,omitempty"`
	Removed    []RemovableComponent `json:"removedIngredients,omitempty"`
}

// Order is an entry of the order ledger. Orders are append-only; the only
// mutation ever applied is the one-way status transition new -> accepted|rejected.
type Order struct {
	ID           int64        `db:"id" json:"id"`
	UserID       int64        `db:"user_id" json:"userId"`
	Items        []OrderItem  `json:"products"`
	TotalPrice   float64      `db:"total_price" json:"totalPrice"`
	DeliveryType DeliveryType `db:"delivery_type" json:"deliveryType"`
	Address      string       `db:"address" json:"address,omitempty"`
	Phone        string       `db:"phone" json:"phone"`
	Status       OrderStatus  `db:"status" json:"status"`
	CreatedAt    string       `db:"created_at" json:"createdAt"`
}
