package repository

import (
	"context"

	"foodbot/models"
)

// MenuRepositoryI defines durable operations on the product/ingredient catalog.
type MenuRepositoryI interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	InsertProduct(ctx context.Context, p *models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, category models.Category, id int64) error
	DeleteProductByName(ctx context.Context, category models.Category, name string) error
	ListIngredients(ctx context.Context) ([]models.Ingredient, error)
	InsertIngredient(ctx context.Context, ing *models.Ingredient) error
	DeleteIngredient(ctx context.Context, id string) error
}

// OrderRepositoryI defines durable operations on the order ledger.
type OrderRepositoryI interface {
	Create(ctx context.Context, o *models.Order) (*models.Order, error)
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	UpdateStatusIfNew(ctx context.Context, id int64, status models.OrderStatus) (bool, error)
	Count(ctx context.Context) (int, error)
}
