package storage

import (
	"fmt"

	"florist-marketplace/internal/availability"
	"florist-marketplace/internal/status"
)

// Fulfiller applies the per-method order rules: delivery orders must meet
// the florist's minimum and pay the delivery fee, pickup orders have
// neither.
type Fulfiller interface {
	ValidateAmount(settings availability.DeliverySettings, total float64) error
	Fee(settings availability.DeliverySettings) float64
	Type() status.DeliveryType
}

type DeliveryFulfiller struct{}

func (DeliveryFulfiller) ValidateAmount(settings availability.DeliverySettings, total float64) error {
	if total < settings.MinimumOrder {
		return fmt.Errorf("order total %.2f is below the delivery minimum of %.2f", total, settings.MinimumOrder)
	}
	return nil
}

func (DeliveryFulfiller) Fee(settings availability.DeliverySettings) float64 {
	return settings.FeePerOrder
}

func (DeliveryFulfiller) Type() status.DeliveryType {
	return status.Delivery
}

type PickupFulfiller struct{}

func (PickupFulfiller) ValidateAmount(availability.DeliverySettings, float64) error {
	return nil
}

func (PickupFulfiller) Fee(availability.DeliverySettings) float64 {
	return 0
}

func (PickupFulfiller) Type() status.DeliveryType {
	return status.Pickup
}

// GetFulfiller resolves the rules for a delivery type.
func GetFulfiller(deliveryType status.DeliveryType) (Fulfiller, error) {
	switch deliveryType {
	case status.Delivery:
		return DeliveryFulfiller{}, nil
	case status.Pickup:
		return PickupFulfiller{}, nil
	}
	return nil, fmt.Errorf("unknown delivery type %q", deliveryType)
}
