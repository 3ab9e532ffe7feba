package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"foodbot/models"
)

// MenuRepository stores products and ingredients in SQLite. Product writes
// touch several tables, so they run inside a transaction: either the whole
// product (row + additions + removables) is durable or nothing is.
type MenuRepository struct {
	db *sql.DB
}

// NewMenuRepository creates a new MenuRepository.
func NewMenuRepository(db *sql.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

// ListProducts returns all products with their additions and removable
// components, ordered by creation.
func (r *MenuRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT id, category, name, price, description, photo_url, photo_id, created_at FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	index := map[int64]int{}
	for rows.Next() {
		var p models.Product
		var category string
		if err := rows.Scan(&p.ID, &category, &p.Name, &p.Price, &p.Description, &p.PhotoURL, &p.PhotoID, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Category = models.Category(category)
		p.Additions = []models.Ingredient{}
		p.Removable = []models.RemovableComponent{}
		index[p.ID] = len(products)
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	addRows, err := r.db.QueryContext(ctx, `SELECT product_id, ingredient_id, name, price FROM product_additions ORDER BY product_id, ingredient_id`)
	if err != nil {
		return nil, err
	}
	defer addRows.Close()
	for addRows.Next() {
		var productID int64
		var ing models.Ingredient
		if err := addRows.Scan(&productID, &ing.ID, &ing.Name, &ing.Price); err != nil {
			return nil, err
		}
		if i, ok := index[productID]; ok {
			products[i].Additions = append(products[i].Additions, ing)
		}
	}
	if err := addRows.Err(); err != nil {
		return nil, err
	}

	remRows, err := r.db.QueryContext(ctx, `SELECT product_id, component_id, name FROM product_removables ORDER BY product_id, component_id`)
	if err != nil {
		return nil, err
	}
	defer remRows.Close()
	for remRows.Next() {
		var productID int64
		var rc models.RemovableComponent
		if err := remRows.Scan(&productID, &rc.ID, &rc.Name); err != nil {
			return nil, err
		}
		if i, ok := index[productID]; ok {
			products[i].Removable = append(products[i].Removable, rc)
		}
	}
	return products, remRows.Err()
}

// InsertProduct persists a product with its additions and removable
// components in a single transaction and returns it with the assigned id.
func (r *MenuRepository) InsertProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	if p == nil {
		return nil, errors.New("product is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO products (category, name, price, description, photo_url, photo_id) VALUES (?,?,?,?,?,?)`,
		string(p.Category), p.Name, p.Price, p.Description, p.PhotoURL, p.PhotoID)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	for _, ing := range p.Additions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO product_additions (product_id, ingredient_id, name, price) VALUES (?,?,?,?)`,
			id, ing.ID, ing.Name, ing.Price); err != nil {
			_ = tx.Rollback()
			return nil, err
		}
	}
	for _, rc := range p.Removable {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO product_removables (product_id, component_id, name) VALUES (?,?,?)`,
			id, rc.ID, rc.Name); err != nil {
			_ = tx.Rollback()
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	out := *p
	out.ID = id
	return &out, nil
}

// DeleteProduct removes a product by category and id. Deleting an absent
// product is a no-op.
func (r *MenuRepository) DeleteProduct(ctx context.Context, category models.Category, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE category = ? AND id = ?`, string(category), id)
	return err
}

// DeleteProductByName removes all products with the given name from a
// category. The chat removal flow addresses items by name.
func (r *MenuRepository) DeleteProductByName(ctx context.Context, category models.Category, name string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE category = ? AND name = ?`, string(category), name)
	return err
}

// ListIngredients returns the global ingredient catalog ordered by name.
func (r *MenuRepository) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, price FROM ingredients ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ingredients := []models.Ingredient{}
	for rows.Next() {
		var ing models.Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.Price); err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, rows.Err()
}

// InsertIngredient persists a new ingredient.
func (r *MenuRepository) InsertIngredient(ctx context.Context, ing *models.Ingredient) error {
	if ing == nil {
		return errors.New("ingredient is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `INSERT INTO ingredients (id, name, price) VALUES (?,?,?)`,
		ing.ID, ing.Name, ing.Price)
	return err
}

// DeleteIngredient removes an ingredient by id. Deleting an absent
// ingredient is a no-op.
func (r *MenuRepository) DeleteIngredient(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `DELETE FROM ingredients WHERE id = ?`, id)
	return err
}
