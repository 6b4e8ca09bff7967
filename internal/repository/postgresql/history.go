package postgresql

import (
	"context"

	"florist-marketplace/internal/db"
	"florist-marketplace/internal/repository"
	"florist-marketplace/internal/storage"
)

type HistoryRepo struct {
	db db.DB
}

func NewHistoryRepo(db db.DB) storage.HistoryRepository {
	return &HistoryRepo{db: db}
}

// CreateTx appends a status event. History rows are never updated or
// deleted.
func (r *HistoryRepo) CreateTx(ctx context.Context, tx db.Tx, event *repository.StatusEvent) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO order_status_history (
            order_id, status, notes, changed_at
        ) VALUES ($1, $2, $3, $4)
    `, event.OrderID, event.Status, event.Notes, event.ChangedAt)
	return err
}

func (r *HistoryRepo) GetByOrderID(ctx context.Context, orderID string) ([]*repository.StatusEvent, error) {
	var events []*repository.StatusEvent
	err := r.db.Select(ctx, &events, `
        SELECT * FROM order_status_history
        WHERE order_id = $1
        ORDER BY changed_at ASC, id ASC
    `, orderID)
	return events, err
}
