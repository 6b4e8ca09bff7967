package storage

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"florist-marketplace/internal/availability"
	"florist-marketplace/internal/db"
	mock_db "florist-marketplace/internal/db/mocks"
	"florist-marketplace/internal/repository"
	"florist-marketplace/internal/status"
	mock_storage "florist-marketplace/internal/storage/mocks"
)

type storageFixture struct {
	storage     *MarketplaceStorage
	db          *mock_db.MockDB
	tx          *mock_db.MockTx
	floristRepo *mock_storage.MockFloristRepository
	orderRepo   *mock_storage.MockOrderRepository
	historyRepo *mock_storage.MockHistoryRepository
	outboxRepo  *mock_storage.MockOutboxTaskRepository
	distance    *mock_storage.MockDistanceProvider
}

// 2025-06-02 is a Monday.
var fixedNow = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *storageFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &storageFixture{
		db:          mock_db.NewMockDB(ctrl),
		tx:          mock_db.NewMockTx(ctrl),
		floristRepo: mock_storage.NewMockFloristRepository(ctrl),
		orderRepo:   mock_storage.NewMockOrderRepository(ctrl),
		historyRepo: mock_storage.NewMockHistoryRepository(ctrl),
		outboxRepo:  mock_storage.NewMockOutboxTaskRepository(ctrl),
		distance:    mock_storage.NewMockDistanceProvider(ctrl),
	}
	f.storage = NewMarketplaceStorage(f.db, f.floristRepo, f.orderRepo, f.historyRepo, f.outboxRepo, f.distance)
	f.storage.timeNow = func() time.Time { return fixedNow }
	return f
}

func floristRecord(t *testing.T, id string, settings availability.DeliverySettings) *repository.Florist {
	t.Helper()

	hours, err := json.Marshal(availability.BusinessHours{
		"monday":  {Open: "09:00", Close: "17:00"},
		"tuesday": {Open: "09:00", Close: "17:00"},
		"sunday":  {Closed: true},
	})
	require.NoError(t, err)

	settingsJSON, err := json.Marshal(settings)
	require.NoError(t, err)

	slots, err := json.Marshal([]availability.DeliverySlot{
		{Name: "morning", Start: "09:00", End: "12:00", Enabled: true, MaxOrders: 5},
	})
	require.NoError(t, err)

	return &repository.Florist{
		ID:               id,
		Name:             "Rose & Thorn",
		Lat:              52.3676,
		Lng:              4.9041,
		Active:           true,
		BusinessHours:    hours,
		DeliverySettings: settingsJSON,
		DeliverySlots:    slots,
	}
}

func defaultSettings() availability.DeliverySettings {
	return availability.DeliverySettings{
		RadiusKm:      15,
		FeePerOrder:   7.5,
		MinimumOrder:  25,
		SameDayCutoff: "14:00",
		DistanceType:  availability.DistanceRadius,
	}
}

func TestCheckAvailability(t *testing.T) {
	ctx := context.Background()

	t.Run("available", func(t *testing.T) {
		f := newFixture(t)
		f.floristRepo.EXPECT().GetByID(ctx, "florist-1").Return(floristRecord(t, "florist-1", defaultSettings()), nil)

		res, err := f.storage.CheckAvailability(ctx, "florist-1", fixedNow, fixedNow, "15:00")
		require.NoError(t, err)
		assert.True(t, res.Available)
	})

	t.Run("closed day reported as data", func(t *testing.T) {
		f := newFixture(t)
		f.floristRepo.EXPECT().GetByID(ctx, "florist-1").Return(floristRecord(t, "florist-1", defaultSettings()), nil)

		sunday := fixedNow.AddDate(0, 0, 6)
		res, err := f.storage.CheckAvailability(ctx, "florist-1", fixedNow, sunday, "")
		require.NoError(t, err)
		assert.False(t, res.Available)
		assert.Equal(t, "Closed on Sunday", res.Reason)
	})

	t.Run("florist not found", func(t *testing.T) {
		f := newFixture(t)
		f.floristRepo.EXPECT().GetByID(ctx, "missing").Return(nil, repository.ErrObjectNotFound)

		_, err := f.storage.CheckAvailability(ctx, "missing", fixedNow, fixedNow, "")
		assert.Error(t, err)
	})

	t.Run("malformed settings rejected", func(t *testing.T) {
		f := newFixture(t)
		rec := floristRecord(t, "florist-1", defaultSettings())
		rec.DeliverySettings = []byte(`{"radius_km": -5, "distance_type": "radius"}`)
		f.floristRepo.EXPECT().GetByID(ctx, "florist-1").Return(rec, nil)

		_, err := f.storage.CheckAvailability(ctx, "florist-1", fixedNow, fixedNow, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "radius")
	})
}

func TestSearchFlorists(t *testing.T) {
	ctx := context.Background()
	origin := availability.Coordinates{Lat: 52.3702, Lng: 4.8952}

	t.Run("filters by straight-line radius and sorts by distance", func(t *testing.T) {
		f := newFixture(t)

		near := floristRecord(t, "near", defaultSettings())
		far := floristRecord(t, "far", defaultSettings())
		far.Lat, far.Lng = 51.9244, 4.4777 // Rotterdam, well outside 15km

		f.floristRepo.EXPECT().ListActive(ctx).Return([]*repository.Florist{far, near}, nil)

		matches, err := f.storage.SearchFlorists(ctx, origin, fixedNow, fixedNow, "")
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "near", matches[0].Florist.ID)
		assert.True(t, matches[0].Availability.Available)
		assert.Less(t, matches[0].DistanceKm, 15.0)
	})

	t.Run("driving distance comes from the provider", func(t *testing.T) {
		f := newFixture(t)

		settings := defaultSettings()
		settings.DistanceType = availability.DistanceDriving
		rec := floristRecord(t, "driving", settings)

		f.floristRepo.EXPECT().ListActive(ctx).Return([]*repository.Florist{rec}, nil)
		f.distance.EXPECT().
			DrivingDistanceKm(ctx, origin, availability.Coordinates{Lat: rec.Lat, Lng: rec.Lng}).
			Return(12.4, nil)

		matches, err := f.storage.SearchFlorists(ctx, origin, fixedNow, fixedNow, "")
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, 12.4, matches[0].DistanceKm)
	})

	t.Run("provider failure skips the florist", func(t *testing.T) {
		f := newFixture(t)

		settings := defaultSettings()
		settings.DistanceType = availability.DistanceDriving
		rec := floristRecord(t, "driving", settings)

		f.floristRepo.EXPECT().ListActive(ctx).Return([]*repository.Florist{rec}, nil)
		f.distance.EXPECT().
			DrivingDistanceKm(ctx, gomock.Any(), gomock.Any()).
			Return(0.0, errors.New("provider down"))

		matches, err := f.storage.SearchFlorists(ctx, origin, fixedNow, fixedNow, "")
		require.NoError(t, err)
		assert.Empty(t, matches)
	})
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()

	req := CreateOrderRequest{
		FloristID:    "florist-1",
		CustomerID:   "customer-1",
		DeliveryType: status.Delivery,
		TotalAmount:  40,
		DeliveryDate: fixedNow.AddDate(0, 0, 1),
		DeliverySlot: "morning",
	}

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		f.floristRepo.EXPECT().GetByID(ctx, "florist-1").Return(floristRecord(t, "florist-1", defaultSettings()), nil)

		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.orderRepo.EXPECT().CreateTx(ctx, f.tx, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ db.Tx, o *repository.Order) error {
				assert.Equal(t, string(status.Pending), o.Status)
				assert.Equal(t, 7.5, o.DeliveryFee)
				assert.NotEmpty(t, o.ID)
				return nil
			})
		f.historyRepo.EXPECT().CreateTx(ctx, f.tx, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ db.Tx, e *repository.StatusEvent) error {
				assert.Equal(t, string(status.Pending), e.Status)
				return nil
			})
		f.outboxRepo.EXPECT().CreateTx(ctx, f.tx, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ db.Tx, task *repository.OutboxTask) error {
				assert.Equal(t, OrderEventsTopic, task.Topic)

				var payload repository.OrderEventPayload
				require.NoError(t, json.Unmarshal(task.Payload, &payload))
				assert.Equal(t, string(status.Pending), payload.NewStatus)
				assert.Empty(t, payload.OldStatus)
				return nil
			})
		f.tx.EXPECT().Commit(ctx).Return(nil)
		f.tx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()

		order, err := f.storage.CreateOrder(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, status.Pending, order.Status)
		assert.Equal(t, status.Delivery, order.DeliveryType)
	})

	t.Run("below delivery minimum", func(t *testing.T) {
		f := newFixture(t)
		f.floristRepo.EXPECT().GetByID(ctx, "florist-1").Return(floristRecord(t, "florist-1", defaultSettings()), nil)

		small := req
		small.TotalAmount = 10
		_, err := f.storage.CreateOrder(ctx, small)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "below the delivery minimum")
	})

	t.Run("pickup skips minimum and fee", func(t *testing.T) {
		f := newFixture(t)
		f.floristRepo.EXPECT().GetByID(ctx, "florist-1").Return(floristRecord(t, "florist-1", defaultSettings()), nil)

		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.orderRepo.EXPECT().CreateTx(ctx, f.tx, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ db.Tx, o *repository.Order) error {
				assert.Zero(t, o.DeliveryFee)
				return nil
			})
		f.historyRepo.EXPECT().CreateTx(ctx, f.tx, gomock.Any()).Return(nil)
		f.outboxRepo.EXPECT().CreateTx(ctx, f.tx, gomock.Any()).Return(nil)
		f.tx.EXPECT().Commit(ctx).Return(nil)
		f.tx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()

		pickup := req
		pickup.DeliveryType = status.Pickup
		pickup.TotalAmount = 10
		_, err := f.storage.CreateOrder(ctx, pickup)
		require.NoError(t, err)
	})

	t.Run("unknown slot", func(t *testing.T) {
		f := newFixture(t)
		f.floristRepo.EXPECT().GetByID(ctx, "florist-1").Return(floristRecord(t, "florist-1", defaultSettings()), nil)

		bad := req
		bad.DeliverySlot = "midnight"
		_, err := f.storage.CreateOrder(ctx, bad)
		assert.ErrorIs(t, err, ErrUnknownSlot)
	})

	t.Run("unavailable date aborts before any write", func(t *testing.T) {
		f := newFixture(t)
		f.floristRepo.EXPECT().GetByID(ctx, "florist-1").Return(floristRecord(t, "florist-1", defaultSettings()), nil)

		closed := req
		closed.DeliveryDate = fixedNow.AddDate(0, 0, 6) // Sunday
		_, err := f.storage.CreateOrder(ctx, closed)
		assert.ErrorIs(t, err, ErrNotAvailable)
	})

	t.Run("inactive florist", func(t *testing.T) {
		f := newFixture(t)
		rec := floristRecord(t, "florist-1", defaultSettings())
		rec.Active = false
		f.floristRepo.EXPECT().GetByID(ctx, "florist-1").Return(rec, nil)

		_, err := f.storage.CreateOrder(ctx, req)
		assert.ErrorIs(t, err, ErrFloristInactive)
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	ctx := context.Background()

	storedOrder := func() *repository.Order {
		return &repository.Order{
			ID:           "order-1",
			FloristID:    "florist-1",
			CustomerID:   "customer-1",
			DeliveryType: string(status.Delivery),
			Status:       string(status.Pending),
			TotalAmount:  40,
			CreatedAt:    fixedNow,
			UpdatedAt:    fixedNow,
		}
	}

	t.Run("valid transition commits row, history and notification together", func(t *testing.T) {
		f := newFixture(t)

		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.orderRepo.EXPECT().GetByIDTx(ctx, f.tx, "order-1").Return(storedOrder(), nil)
		f.orderRepo.EXPECT().UpdateStatusTx(ctx, f.tx, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ db.Tx, o *repository.Order) error {
				assert.Equal(t, string(status.Confirmed), o.Status)
				assert.Equal(t, fixedNow.UTC(), o.UpdatedAt)
				return nil
			})
		f.historyRepo.EXPECT().CreateTx(ctx, f.tx, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ db.Tx, e *repository.StatusEvent) error {
				assert.Equal(t, "order-1", e.OrderID)
				assert.Equal(t, string(status.Confirmed), e.Status)
				require.NotNil(t, e.Notes)
				assert.Equal(t, "paid by card", *e.Notes)
				return nil
			})
		f.outboxRepo.EXPECT().CreateTx(ctx, f.tx, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ db.Tx, task *repository.OutboxTask) error {
				var payload repository.OrderEventPayload
				require.NoError(t, json.Unmarshal(task.Payload, &payload))
				assert.Equal(t, string(status.Pending), payload.OldStatus)
				assert.Equal(t, string(status.Confirmed), payload.NewStatus)
				assert.Equal(t, "paid by card", payload.Notes)
				return nil
			})
		f.tx.EXPECT().Commit(ctx).Return(nil)
		f.tx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()

		order, err := f.storage.UpdateOrderStatus(ctx, "order-1", status.Confirmed, "paid by card")
		require.NoError(t, err)
		assert.Equal(t, status.Confirmed, order.Status)
	})

	t.Run("invalid transition aborts with no writes", func(t *testing.T) {
		f := newFixture(t)

		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.orderRepo.EXPECT().GetByIDTx(ctx, f.tx, "order-1").Return(storedOrder(), nil)
		f.tx.EXPECT().Rollback(gomock.Any()).Return(nil)

		_, err := f.storage.UpdateOrderStatus(ctx, "order-1", status.Delivered, "")
		require.ErrorIs(t, err, ErrInvalidTransition)
		assert.Contains(t, err.Error(), "Cannot transition from pending to delivered")
	})

	t.Run("cancellation allowed mid-flight", func(t *testing.T) {
		f := newFixture(t)

		rec := storedOrder()
		rec.Status = string(status.OutForDelivery)

		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.orderRepo.EXPECT().GetByIDTx(ctx, f.tx, "order-1").Return(rec, nil)
		f.orderRepo.EXPECT().UpdateStatusTx(ctx, f.tx, gomock.Any()).Return(nil)
		f.historyRepo.EXPECT().CreateTx(ctx, f.tx, gomock.Any()).Return(nil)
		f.outboxRepo.EXPECT().CreateTx(ctx, f.tx, gomock.Any()).Return(nil)
		f.tx.EXPECT().Commit(ctx).Return(nil)
		f.tx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()

		order, err := f.storage.UpdateOrderStatus(ctx, "order-1", status.Cancelled, "customer cancelled")
		require.NoError(t, err)
		assert.Equal(t, status.Cancelled, order.Status)
	})

	t.Run("order not found", func(t *testing.T) {
		f := newFixture(t)

		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.orderRepo.EXPECT().GetByIDTx(ctx, f.tx, "missing").Return(nil, repository.ErrObjectNotFound)
		f.tx.EXPECT().Rollback(gomock.Any()).Return(nil)

		_, err := f.storage.UpdateOrderStatus(ctx, "missing", status.Confirmed, "")
		assert.EqualError(t, err, "order not found")
	})
}

func TestAvailableTransitions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.orderRepo.EXPECT().GetByID(ctx, "order-1").Return(&repository.Order{
		ID:           "order-1",
		FloristID:    "florist-1",
		CustomerID:   "customer-1",
		DeliveryType: string(status.Pickup),
		Status:       string(status.Preparing),
	}, nil)

	next, err := f.storage.AvailableTransitions(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, []status.Status{status.ReadyForPickup, status.Cancelled}, next)
}

func TestGetOrderHistory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	notes := "left at the door"
	f.historyRepo.EXPECT().GetByOrderID(ctx, "order-1").Return([]*repository.StatusEvent{
		{OrderID: "order-1", Status: "pending", ChangedAt: fixedNow},
		{OrderID: "order-1", Status: "confirmed", Notes: &notes, ChangedAt: fixedNow.Add(time.Hour)},
	}, nil)

	events, err := f.storage.GetOrderHistory(ctx, "order-1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, status.Pending, events[0].Status)
	assert.Equal(t, "left at the door", events[1].Notes)
}

func TestUpdateFloristProfile(t *testing.T) {
	ctx := context.Background()

	profile := func() *Florist {
		return &Florist{
			ID:          "florist-1",
			Name:        "Rose & Thorn",
			Coordinates: availability.Coordinates{Lat: 52.3676, Lng: 4.9041},
			Active:      true,
			Hours: availability.BusinessHours{
				"monday": {Open: "09:00", Close: "17:00"},
			},
			Settings: defaultSettings(),
		}
	}

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		f.floristRepo.EXPECT().UpdateProfile(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, rec *repository.Florist) error {
				assert.Equal(t, "florist-1", rec.ID)
				assert.Equal(t, fixedNow.UTC(), rec.UpdatedAt)
				return nil
			})

		updated, err := f.storage.UpdateFloristProfile(ctx, profile())
		require.NoError(t, err)
		assert.Equal(t, fixedNow.UTC(), updated.UpdatedAt)
	})

	t.Run("malformed hours rejected before write", func(t *testing.T) {
		f := newFixture(t)

		bad := profile()
		bad.Hours["monday"] = availability.DayHours{Open: "17:00", Close: "09:00"}
		_, err := f.storage.UpdateFloristProfile(ctx, bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not after open")
	})
}
