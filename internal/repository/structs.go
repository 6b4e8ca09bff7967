package repository

import (
	"encoding/json"
	"errors"
	"time"
)

var ErrObjectNotFound = errors.New("not found")

// Florist is the persisted florist profile. BusinessHours, DeliverySettings
// and DeliverySlots are JSONB documents decoded by the storage layer.
type Florist struct {
	ID               string          `db:"id"`
	Name             string          `db:"name"`
	Lat              float64         `db:"lat"`
	Lng              float64         `db:"lng"`
	Active           bool            `db:"active"`
	BusinessHours    json.RawMessage `db:"business_hours"`
	DeliverySettings json.RawMessage `db:"delivery_settings"`
	DeliverySlots    json.RawMessage `db:"delivery_slots"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}

type Order struct {
	ID           string    `db:"id"`
	FloristID    string    `db:"florist_id"`
	CustomerID   string    `db:"customer_id"`
	DeliveryType string    `db:"delivery_type"`
	Status       string    `db:"status"`
	TotalAmount  float64   `db:"total_amount"`
	DeliveryFee  float64   `db:"delivery_fee"`
	DeliveryDate time.Time `db:"delivery_date"`
	DeliverySlot string    `db:"delivery_slot"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// StatusEvent is one append-only entry in an order's status history.
type StatusEvent struct {
	ID        int64     `db:"id"`
	OrderID   string    `db:"order_id"`
	Status    string    `db:"status"`
	Notes     *string   `db:"notes"`
	ChangedAt time.Time `db:"changed_at"`
}
