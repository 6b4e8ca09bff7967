package geo

import (
	"context"
	"log"

	"florist-marketplace/internal/availability"
)

// defaultCircuity is the factor applied to straight-line distance to
// approximate a road route.
const defaultCircuity = 1.3

// EstimateProvider is a placeholder driving-distance provider: great-circle
// distance scaled by a circuity factor. A real routing provider implements
// storage.DistanceProvider behind the same method.
type EstimateProvider struct {
	Circuity float64
}

func NewEstimateProvider() *EstimateProvider {
	log.Println("Initialized estimated driving-distance provider (no external routing)")
	return &EstimateProvider{Circuity: defaultCircuity}
}

func (p *EstimateProvider) DrivingDistanceKm(ctx context.Context, origin, destination availability.Coordinates) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return availability.HaversineKm(origin, destination) * p.Circuity, nil
}
