package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"florist-marketplace/internal/db"
	"florist-marketplace/internal/repository"
	"florist-marketplace/internal/storage"
)

type FloristRepo struct {
	db db.DB
}

func NewFloristRepo(db db.DB) storage.FloristRepository {
	return &FloristRepo{db: db}
}

func (r *FloristRepo) Create(ctx context.Context, florist *repository.Florist) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO florists (
            id, name, lat, lng, active, business_hours, delivery_settings, delivery_slots, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `, florist.ID, florist.Name, florist.Lat, florist.Lng, florist.Active,
		florist.BusinessHours, florist.DeliverySettings, florist.DeliverySlots,
		florist.CreatedAt, florist.UpdatedAt)
	return err
}

func (r *FloristRepo) GetByID(ctx context.Context, id string) (*repository.Florist, error) {
	var florist repository.Florist
	err := r.db.Get(ctx, &florist, "SELECT * FROM florists WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &florist, nil
}

func (r *FloristRepo) ListActive(ctx context.Context) ([]*repository.Florist, error) {
	var florists []*repository.Florist
	err := r.db.Select(ctx, &florists, "SELECT * FROM florists WHERE active ORDER BY name")
	return florists, err
}

func (r *FloristRepo) UpdateProfile(ctx context.Context, florist *repository.Florist) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE florists
        SET
            name = $1,
            lat = $2,
            lng = $3,
            active = $4,
            business_hours = $5,
            delivery_settings = $6,
            delivery_slots = $7,
            updated_at = $8
        WHERE id = $9
    `, florist.Name, florist.Lat, florist.Lng, florist.Active,
		florist.BusinessHours, florist.DeliverySettings, florist.DeliverySlots,
		florist.UpdatedAt, florist.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}
