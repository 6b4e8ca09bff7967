package storage

import (
	"time"

	"florist-marketplace/internal/availability"
	"florist-marketplace/internal/status"
)

// Florist is the service-level florist profile with its JSONB configuration
// documents decoded.
type Florist struct {
	ID          string                         `json:"id"`
	Name        string                         `json:"name"`
	Coordinates availability.Coordinates       `json:"coordinates"`
	Active      bool                           `json:"active"`
	Hours       availability.BusinessHours     `json:"business_hours"`
	Settings    availability.DeliverySettings  `json:"delivery_settings"`
	Slots       []availability.DeliverySlot    `json:"delivery_slots,omitempty"`
	CreatedAt   time.Time                      `json:"created_at"`
	UpdatedAt   time.Time                      `json:"updated_at"`
}

type Order struct {
	ID           string              `json:"id"`
	FloristID    string              `json:"florist_id"`
	CustomerID   string              `json:"customer_id"`
	DeliveryType status.DeliveryType `json:"delivery_type"`
	Status       status.Status       `json:"status"`
	TotalAmount  float64             `json:"total_amount"`
	DeliveryFee  float64             `json:"delivery_fee"`
	DeliveryDate time.Time           `json:"delivery_date"`
	DeliverySlot string              `json:"delivery_slot,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// StatusEvent is one entry of an order's append-only status history.
type StatusEvent struct {
	Status    status.Status `json:"status"`
	Notes     string        `json:"notes,omitempty"`
	ChangedAt time.Time     `json:"changed_at"`
}

// CreateOrderRequest carries everything needed to place an order.
type CreateOrderRequest struct {
	FloristID    string              `json:"florist_id"`
	CustomerID   string              `json:"customer_id"`
	DeliveryType status.DeliveryType `json:"delivery_type"`
	TotalAmount  float64             `json:"total_amount"`
	DeliveryDate time.Time           `json:"delivery_date"`
	DeliverySlot string              `json:"delivery_slot,omitempty"`
}

// FloristMatch is one search result: an eligible florist, how far away it
// is, and whether it can fulfill the requested date/time.
type FloristMatch struct {
	Florist      Florist             `json:"florist"`
	DistanceKm   float64             `json:"distance_km"`
	Availability availability.Result `json:"availability"`
}
