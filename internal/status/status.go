package status

import "fmt"

// Status is the lifecycle state of a marketplace order.
type Status string

const (
	Pending          Status = "pending"
	Confirmed        Status = "confirmed"
	Preparing        Status = "preparing"
	ReadyForDelivery Status = "ready_for_delivery"
	ReadyForPickup   Status = "ready_for_pickup"
	OutForDelivery   Status = "out_for_delivery"
	Delivered        Status = "delivered"
	PickedUp         Status = "picked_up"
	Cancelled        Status = "cancelled"
)

// DeliveryType selects the fulfillment branch of the order lifecycle.
type DeliveryType string

const (
	Delivery DeliveryType = "delivery"
	Pickup   DeliveryType = "pickup"
)

// baseTransitions is the forward path of the lifecycle. Cancellation is not
// listed here: it is layered on in NextStatuses so the
// cancellable-from-anywhere rule stays in one place. The preparing step
// branches on delivery type and is resolved in NextStatuses as well.
var baseTransitions = map[Status][]Status{
	Pending:          {Confirmed},
	Confirmed:        {Preparing},
	ReadyForDelivery: {OutForDelivery},
	ReadyForPickup:   {PickedUp},
	OutForDelivery:   {Delivered},
}

var all = []Status{
	Pending, Confirmed, Preparing,
	ReadyForDelivery, ReadyForPickup, OutForDelivery,
	Delivered, PickedUp, Cancelled,
}

// Validation is the outcome of a transition check. An illegal transition is
// an expected result, not an error, so it is returned as data.
type Validation struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// IsTerminal reports whether s has no outgoing transitions.
func IsTerminal(s Status) bool {
	return s == Delivered || s == PickedUp || s == Cancelled
}

// NextStatuses returns the statuses an order may legally move to from
// current. Terminal statuses have none. Every non-terminal status may move
// to cancelled regardless of delivery type.
func NextStatuses(current Status, deliveryType DeliveryType) []Status {
	if IsTerminal(current) {
		return nil
	}

	var next []Status
	if current == Preparing {
		if deliveryType == Pickup {
			next = append(next, ReadyForPickup)
		} else {
			next = append(next, ReadyForDelivery)
		}
	} else {
		next = append(next, baseTransitions[current]...)
	}

	return append(next, Cancelled)
}

// ValidateTransition checks whether an order may move from current to
// proposed under the given delivery type.
func ValidateTransition(current, proposed Status, deliveryType DeliveryType) Validation {
	for _, s := range NextStatuses(current, deliveryType) {
		if s == proposed {
			return Validation{Valid: true}
		}
	}
	return Validation{
		Reason: fmt.Sprintf("Cannot transition from %s to %s", current, proposed),
	}
}

// All returns every known status in lifecycle order.
func All() []Status {
	out := make([]Status, len(all))
	copy(out, all)
	return out
}

// Parse converts a raw string into a Status, rejecting unknown values.
func Parse(s string) (Status, error) {
	for _, known := range all {
		if Status(s) == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// ParseDeliveryType converts a raw string into a DeliveryType.
func ParseDeliveryType(s string) (DeliveryType, error) {
	switch DeliveryType(s) {
	case Delivery:
		return Delivery, nil
	case Pickup:
		return Pickup, nil
	}
	return "", fmt.Errorf("unknown delivery type %q", s)
}
