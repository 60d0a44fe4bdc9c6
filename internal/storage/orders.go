package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// OrderRecord mirrors one row of the orders table. PriceMinor is the amount
// the user actually paid, in minor currency units, snapshotted at sale time;
// it is never re-read from the catalog.
type OrderRecord struct {
	ID         int64     `db:"id"`
	UserID     int64     `db:"user_id"`
	ProductID  int64     `db:"product_id"`
	PriceMinor int64     `db:"price_minor"`
	CreatedAt  time.Time `db:"created_at"`
}

// NewOrder carries the fields required to record a completed purchase.
type NewOrder struct {
	UserID     int64
	ProductID  int64
	PriceMinor int64
}

func (o NewOrder) validate() error {
	if o.UserID <= 0 {
		return fmt.Errorf("storage: order user reference is required")
	}
	if o.ProductID <= 0 {
		return fmt.Errorf("storage: order product id is required")
	}
	if o.PriceMinor <= 0 {
		return fmt.Errorf("storage: order price must be > 0")
	}
	return nil
}

// Orders provides append-only access to the orders table.
type Orders struct {
	db *sqlx.DB
}

// NewOrders wraps the database handle.
func NewOrders(db *sqlx.DB) *Orders {
	return &Orders{db: db}
}

// Create appends a completed purchase. The user reference is validated by the
// foreign key constraint; orders are never updated or deleted.
func (r *Orders) Create(ctx context.Context, no NewOrder) (OrderRecord, error) {
	if r.db == nil {
		return OrderRecord{}, fmt.Errorf("storage: nil database handle")
	}
	if err := no.validate(); err != nil {
		return OrderRecord{}, err
	}

	var order OrderRecord
	err := r.db.GetContext(ctx, &order, `
INSERT INTO orders (user_id, product_id, price_minor)
VALUES ($1, $2, $3)
RETURNING id, user_id, product_id, price_minor, created_at
`, no.UserID, no.ProductID, no.PriceMinor)
	if err != nil {
		return OrderRecord{}, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

// CountByUser reports how many orders a user has recorded.
func (r *Orders) CountByUser(ctx context.Context, userID int64) (int64, error) {
	if r.db == nil {
		return 0, fmt.Errorf("storage: nil database handle")
	}
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT count(*) FROM orders WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return count, nil
}
