package repository

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskStatusCreated    TaskStatus = "CREATED"
	TaskStatusProcessing TaskStatus = "PROCESSING"
	TaskStatusFailed     TaskStatus = "FAILED"
	TaskStatusDone       TaskStatus = "DONE"
)

// OutboxTask is a pending notification, written in the same transaction as
// the state change it announces and published asynchronously.
type OutboxTask struct {
	ID          uuid.UUID       `db:"id"`
	Status      TaskStatus      `db:"status"`
	Payload     json.RawMessage `db:"payload"`
	Topic       string          `db:"topic"`
	Attempts    int             `db:"attempts"`
	LastError   *string         `db:"last_error"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
	CompletedAt *time.Time      `db:"completed_at"`
}

// OrderEventPayload is the message body for order lifecycle notifications.
type OrderEventPayload struct {
	EventID      uuid.UUID `json:"event_id"`
	OrderID      string    `json:"order_id"`
	FloristID    string    `json:"florist_id"`
	CustomerID   string    `json:"customer_id"`
	DeliveryType string    `json:"delivery_type"`
	OldStatus    string    `json:"old_status,omitempty"`
	NewStatus    string    `json:"new_status"`
	Notes        string    `json:"notes,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
