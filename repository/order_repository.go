package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"foodbot/models"
)

// OrderRepository stores the order ledger in SQLite. Orders are append-only;
// the only update ever issued is the guarded status transition from 'new'.
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create appends an order with its items in a single transaction. Status
// defaults to 'new' if empty. Returns the order as persisted, with the
// assigned id and creation time.
func (r *OrderRepository) Create(ctx context.Context, o *models.Order) (*models.Order, error) {
	if o == nil {
		return nil, errors.New("order is nil")
	}
	if o.Status == "" {
		o.Status = models.OrderStatusNew
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO orders (user_id, total_price, delivery_type, address, phone, status) VALUES (?,?,?,?,?,?)`,
		o.UserID, o.TotalPrice, string(o.DeliveryType), o.Address, o.Phone, string(o.Status))
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	for i := range o.Items {
		item := &o.Items[i]
		added, err := json.Marshal(item.Added)
		if err != nil {
			_ = tx.Rollback()
			return nil, err
		}
		removed, err := json.Marshal(item.Removed)
		if err != nil {
			_ = tx.Rollback()
			return nil, err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, product_id, name, quantity, final_price, added, removed) VALUES (?,?,?,?,?,?,?)`,
			id, item.ProductID, item.Name, item.Quantity, item.FinalPrice, string(added), string(removed)); err != nil {
			_ = tx.Rollback()
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	o2, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o2 == nil {
		return nil, fmt.Errorf("created order not found: id=%d", id)
	}
	return o2, nil
}

// GetByID fetches an order with its items. Returns (nil, nil) when absent.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var o models.Order
	var deliveryType, status string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, total_price, delivery_type, address, phone, status, created_at FROM orders WHERE id = ?`, id).
		Scan(&o.ID, &o.UserID, &o.TotalPrice, &deliveryType, &o.Address, &o.Phone, &status, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	o.DeliveryType = models.DeliveryType(deliveryType)
	o.Status = models.OrderStatus(status)

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, product_id, name, quantity, final_price, added, removed FROM order_items WHERE order_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	o.Items = []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		var added, removed string
		if err := rows.Scan(&item.ID, &item.ProductID, &item.Name, &item.Quantity, &item.FinalPrice, &added, &removed); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(added), &item.Added); err != nil {
			return nil, fmt.Errorf("order %d item %d: decode added: %w", id, item.ID, err)
		}
		if err := json.Unmarshal([]byte(removed), &item.Removed); err != nil {
			return nil, fmt.Errorf("order %d item %d: decode removed: %w", id, item.ID, err)
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateStatusIfNew applies the one-way status transition. It only succeeds
// while the order is still 'new'; the returned bool reports whether a row
// changed. A repeated or late transition is a no-op.
func (r *OrderRepository) UpdateStatusIfNew(ctx context.Context, id int64, status models.OrderStatus) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = ? WHERE id = ? AND status = ?`,
		string(status), id, string(models.OrderStatusNew))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Count returns the ledger length.
func (r *OrderRepository) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n)
	return n, err
}
