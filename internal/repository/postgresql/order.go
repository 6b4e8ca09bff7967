package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"florist-marketplace/internal/db"
	"florist-marketplace/internal/repository"
	"florist-marketplace/internal/storage"
)

type OrderRepo struct {
	db db.DB
}

func NewOrderRepo(db db.DB) storage.OrderRepository {
	return &OrderRepo{db: db}
}

func (r *OrderRepo) CreateTx(ctx context.Context, tx db.Tx, order *repository.Order) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO orders (
            id, florist_id, customer_id, delivery_type, status, total_amount, delivery_fee,
            delivery_date, delivery_slot, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    `, order.ID, order.FloristID, order.CustomerID, order.DeliveryType, order.Status,
		order.TotalAmount, order.DeliveryFee, order.DeliveryDate, order.DeliverySlot,
		order.CreatedAt, order.UpdatedAt)
	return err
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*repository.Order, error) {
	var order repository.Order
	err := r.db.Get(ctx, &order, "SELECT * FROM orders WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &order, nil
}

// GetByIDTx locks the order row for the rest of the transaction so two
// concurrent status updates cannot both validate against a stale status.
func (r *OrderRepo) GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.Order, error) {
	var order repository.Order
	err := tx.Get(ctx, &order, "SELECT * FROM orders WHERE id = $1 FOR UPDATE", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepo) UpdateStatusTx(ctx context.Context, tx db.Tx, order *repository.Order) error {
	tag, err := tx.Exec(ctx, `
        UPDATE orders
        SET
            status = $1,
            updated_at = $2
        WHERE id = $3
    `, order.Status, order.UpdatedAt, order.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *OrderRepo) GetByFloristID(ctx context.Context, floristID string, limit int, activeOnly bool) ([]*repository.Order, error) {
	query := "SELECT * FROM orders WHERE florist_id = $1"
	args := []interface{}{floristID}

	if activeOnly {
		query += " AND status NOT IN ('delivered', 'picked_up', 'cancelled')"
	}

	query += " ORDER BY created_at DESC"

	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	var orders []*repository.Order
	err := r.db.Select(ctx, &orders, query, args...)
	return orders, err
}
