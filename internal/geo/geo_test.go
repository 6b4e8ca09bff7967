package geo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"florist-marketplace/internal/availability"
)

func TestEstimateProvider(t *testing.T) {
	provider := NewEstimateProvider()

	amsterdam := availability.Coordinates{Lat: 52.3676, Lng: 4.9041}
	utrecht := availability.Coordinates{Lat: 52.0907, Lng: 5.1214}

	straight := availability.HaversineKm(amsterdam, utrecht)
	driving, err := provider.DrivingDistanceKm(context.Background(), amsterdam, utrecht)
	require.NoError(t, err)
	assert.InDelta(t, straight*defaultCircuity, driving, 1e-9)
	assert.Greater(t, driving, straight)
}

func TestEstimateProvider_CancelledContext(t *testing.T) {
	provider := NewEstimateProvider()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := provider.DrivingDistanceKm(ctx, availability.Coordinates{}, availability.Coordinates{})
	assert.ErrorIs(t, err, context.Canceled)
}
