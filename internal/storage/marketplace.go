//go:generate mockgen -source ./marketplace.go -destination=./mocks/storage.go -package=mock_storage
//go:generate mockgen -source ./outbox.go -destination=./mocks/outbox.go -package=mock_storage
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"florist-marketplace/internal/availability"
	"florist-marketplace/internal/db"
	"florist-marketplace/internal/repository"
	"florist-marketplace/internal/status"
)

const OrderEventsTopic = "order-events"

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrFloristInactive   = errors.New("florist is not active")
	ErrNotAvailable      = errors.New("fulfillment not available")
	ErrUnknownSlot       = errors.New("unknown delivery slot")
)

type FloristRepository interface {
	Create(ctx context.Context, florist *repository.Florist) error
	GetByID(ctx context.Context, id string) (*repository.Florist, error)
	ListActive(ctx context.Context) ([]*repository.Florist, error)
	UpdateProfile(ctx context.Context, florist *repository.Florist) error
}

type OrderRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, order *repository.Order) error
	GetByID(ctx context.Context, id string) (*repository.Order, error)
	GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.Order, error)
	UpdateStatusTx(ctx context.Context, tx db.Tx, order *repository.Order) error
	GetByFloristID(ctx context.Context, floristID string, limit int, activeOnly bool) ([]*repository.Order, error)
}

type HistoryRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, event *repository.StatusEvent) error
	GetByOrderID(ctx context.Context, orderID string) ([]*repository.StatusEvent, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, username, password string) error
	ValidateUser(ctx context.Context, username, password string) (bool, error)
}

// DistanceProvider supplies road-network distances for florists configured
// with "driving" eligibility. Straight-line distances are computed locally.
type DistanceProvider interface {
	DrivingDistanceKm(ctx context.Context, origin, destination availability.Coordinates) (float64, error)
}

// MarketplaceStorage composes the repositories into the marketplace
// operations: availability checks, florist search, order placement and
// status transitions.
type MarketplaceStorage struct {
	db          db.DB
	floristRepo FloristRepository
	orderRepo   OrderRepository
	historyRepo HistoryRepository
	outboxRepo  OutboxTaskRepository
	distance    DistanceProvider

	timeNow func() time.Time
}

func NewMarketplaceStorage(
	db db.DB,
	floristRepo FloristRepository,
	orderRepo OrderRepository,
	historyRepo HistoryRepository,
	outboxRepo OutboxTaskRepository,
	distance DistanceProvider,
) *MarketplaceStorage {
	return &MarketplaceStorage{
		db:          db,
		floristRepo: floristRepo,
		orderRepo:   orderRepo,
		historyRepo: historyRepo,
		outboxRepo:  outboxRepo,
		distance:    distance,
		timeNow:     time.Now,
	}
}

func (s *MarketplaceStorage) GetFlorist(ctx context.Context, id string) (*Florist, error) {
	rec, err := s.floristRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, fmt.Errorf("florist not found")
		}
		return nil, fmt.Errorf("failed to get florist: %w", err)
	}
	return decodeFlorist(rec)
}

// CheckAvailability evaluates whether the florist can fulfill requestedDate
// at requestedTime. now is injected by the caller and must be in the
// florist's local time.
func (s *MarketplaceStorage) CheckAvailability(ctx context.Context, floristID string, now, requestedDate time.Time, requestedTime string) (availability.Result, error) {
	florist, err := s.GetFlorist(ctx, floristID)
	if err != nil {
		return availability.Result{}, err
	}
	if !florist.Active {
		return availability.Result{}, ErrFloristInactive
	}
	return availability.Evaluate(florist.Hours, florist.Settings, now, requestedDate, requestedTime), nil
}

// SearchFlorists returns every active florist whose delivery area covers
// origin, with its distance and availability for the requested date/time,
// nearest first. Florists with malformed configuration are skipped.
func (s *MarketplaceStorage) SearchFlorists(ctx context.Context, origin availability.Coordinates, now, requestedDate time.Time, requestedTime string) ([]FloristMatch, error) {
	recs, err := s.floristRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list florists: %w", err)
	}

	matches := make([]FloristMatch, 0, len(recs))
	for _, rec := range recs {
		florist, err := decodeFlorist(rec)
		if err != nil {
			log.Printf("Skipping florist %s: %v", rec.ID, err)
			continue
		}

		var distanceKm float64
		if florist.Settings.DistanceType == availability.DistanceDriving {
			distanceKm, err = s.distance.DrivingDistanceKm(ctx, origin, florist.Coordinates)
			if err != nil {
				log.Printf("Skipping florist %s: driving distance lookup failed: %v", rec.ID, err)
				continue
			}
		} else {
			distanceKm = availability.HaversineKm(origin, florist.Coordinates)
		}

		if !availability.WithinRadius(florist.Settings, distanceKm) {
			continue
		}

		matches = append(matches, FloristMatch{
			Florist:      *florist,
			DistanceKm:   distanceKm,
			Availability: availability.Evaluate(florist.Hours, florist.Settings, now, requestedDate, requestedTime),
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].DistanceKm < matches[j].DistanceKm
	})
	return matches, nil
}

// CreateOrder places a new order in status pending, appending the initial
// status event and the creation notification in the same transaction.
func (s *MarketplaceStorage) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	florist, err := s.GetFlorist(ctx, req.FloristID)
	if err != nil {
		return nil, err
	}
	if !florist.Active {
		return nil, ErrFloristInactive
	}

	fulfiller, err := GetFulfiller(req.DeliveryType)
	if err != nil {
		return nil, err
	}
	if err := fulfiller.ValidateAmount(florist.Settings, req.TotalAmount); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotAvailable, err)
	}

	requestedTime := ""
	if req.DeliverySlot != "" {
		slot, ok := availability.SlotByName(florist.Slots, req.DeliverySlot)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSlot, req.DeliverySlot)
		}
		requestedTime = slot.Start
	}

	now := s.timeNow()
	if res := availability.Evaluate(florist.Hours, florist.Settings, now, req.DeliveryDate, requestedTime); !res.Available {
		return nil, fmt.Errorf("%w: %s", ErrNotAvailable, res.Reason)
	}

	created := now.UTC()
	order := &repository.Order{
		ID:           uuid.New().String(),
		FloristID:    req.FloristID,
		CustomerID:   req.CustomerID,
		DeliveryType: string(req.DeliveryType),
		Status:       string(status.Pending),
		TotalAmount:  req.TotalAmount,
		DeliveryFee:  fulfiller.Fee(florist.Settings),
		DeliveryDate: req.DeliveryDate,
		DeliverySlot: req.DeliverySlot,
		CreatedAt:    created,
		UpdatedAt:    created,
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if err := s.orderRepo.CreateTx(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	event := &repository.StatusEvent{
		OrderID:   order.ID,
		Status:    order.Status,
		ChangedAt: created,
	}
	if err := s.historyRepo.CreateTx(ctx, tx, event); err != nil {
		return nil, fmt.Errorf("failed to append status event: %w", err)
	}

	if err := s.enqueueOrderEvent(ctx, tx, order, "", ""); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return toOrder(order)
}

func (s *MarketplaceStorage) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	rec, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return toOrder(rec)
}

// UpdateOrderStatus validates and applies one status transition. The order
// row is locked for the whole transaction, the proposed status is validated
// against the freshly read one, and the row update, history append and
// outbox notification commit atomically. An illegal transition aborts with
// ErrInvalidTransition carrying the machine's reason.
func (s *MarketplaceStorage) UpdateOrderStatus(ctx context.Context, orderID string, proposed status.Status, notes string) (*Order, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	rec, err := s.orderRepo.GetByIDTx(ctx, tx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	current, err := status.Parse(rec.Status)
	if err != nil {
		return nil, fmt.Errorf("stored order %s is corrupt: %w", orderID, err)
	}
	deliveryType, err := status.ParseDeliveryType(rec.DeliveryType)
	if err != nil {
		return nil, fmt.Errorf("stored order %s is corrupt: %w", orderID, err)
	}

	if v := status.ValidateTransition(current, proposed, deliveryType); !v.Valid {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTransition, v.Reason)
	}

	now := s.timeNow().UTC()
	rec.Status = string(proposed)
	rec.UpdatedAt = now
	if err := s.orderRepo.UpdateStatusTx(ctx, tx, rec); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	event := &repository.StatusEvent{
		OrderID:   orderID,
		Status:    string(proposed),
		ChangedAt: now,
	}
	if notes != "" {
		event.Notes = &notes
	}
	if err := s.historyRepo.CreateTx(ctx, tx, event); err != nil {
		return nil, fmt.Errorf("failed to append status event: %w", err)
	}

	if err := s.enqueueOrderEvent(ctx, tx, rec, string(current), notes); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return toOrder(rec)
}

// AvailableTransitions returns the statuses the order may legally move to
// next. Empty for terminal orders.
func (s *MarketplaceStorage) AvailableTransitions(ctx context.Context, orderID string) ([]status.Status, error) {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return status.NextStatuses(order.Status, order.DeliveryType), nil
}

func (s *MarketplaceStorage) GetOrderHistory(ctx context.Context, orderID string) ([]StatusEvent, error) {
	recs, err := s.historyRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order history: %w", err)
	}

	events := make([]StatusEvent, len(recs))
	for i, rec := range recs {
		events[i] = StatusEvent{
			Status:    status.Status(rec.Status),
			ChangedAt: rec.ChangedAt,
		}
		if rec.Notes != nil {
			events[i].Notes = *rec.Notes
		}
	}
	return events, nil
}

func (s *MarketplaceStorage) GetFloristOrders(ctx context.Context, floristID string, limit int, activeOnly bool) ([]Order, error) {
	recs, err := s.orderRepo.GetByFloristID(ctx, floristID, limit, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to get florist orders: %w", err)
	}

	orders := make([]Order, len(recs))
	for i, rec := range recs {
		order, err := toOrder(rec)
		if err != nil {
			return nil, err
		}
		orders[i] = *order
	}
	return orders, nil
}

// UpdateFloristProfile validates and persists a florist's configuration.
// Malformed hours, settings or slots are rejected before anything is
// written.
func (s *MarketplaceStorage) UpdateFloristProfile(ctx context.Context, florist *Florist) (*Florist, error) {
	if err := florist.Hours.Validate(); err != nil {
		return nil, err
	}
	if err := florist.Settings.Validate(); err != nil {
		return nil, err
	}
	if err := availability.ValidateSlots(florist.Slots); err != nil {
		return nil, err
	}

	rec, err := encodeFlorist(florist)
	if err != nil {
		return nil, err
	}
	rec.UpdatedAt = s.timeNow().UTC()

	if err := s.floristRepo.UpdateProfile(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, fmt.Errorf("florist not found")
		}
		return nil, fmt.Errorf("failed to update florist: %w", err)
	}

	florist.UpdatedAt = rec.UpdatedAt
	return florist, nil
}

func (s *MarketplaceStorage) enqueueOrderEvent(ctx context.Context, tx db.Tx, order *repository.Order, oldStatus, notes string) error {
	payload, err := json.Marshal(repository.OrderEventPayload{
		EventID:      uuid.New(),
		OrderID:      order.ID,
		FloristID:    order.FloristID,
		CustomerID:   order.CustomerID,
		DeliveryType: order.DeliveryType,
		OldStatus:    oldStatus,
		NewStatus:    order.Status,
		Notes:        notes,
		OccurredAt:   order.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	task := &repository.OutboxTask{
		Topic:   OrderEventsTopic,
		Payload: payload,
	}
	if err := s.outboxRepo.CreateTx(ctx, tx, task); err != nil {
		return fmt.Errorf("failed to enqueue order event: %w", err)
	}
	return nil
}

func decodeFlorist(rec *repository.Florist) (*Florist, error) {
	florist := &Florist{
		ID:          rec.ID,
		Name:        rec.Name,
		Coordinates: availability.Coordinates{Lat: rec.Lat, Lng: rec.Lng},
		Active:      rec.Active,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}

	if err := json.Unmarshal(rec.BusinessHours, &florist.Hours); err != nil {
		return nil, fmt.Errorf("florist %s: malformed business hours: %w", rec.ID, err)
	}
	if err := json.Unmarshal(rec.DeliverySettings, &florist.Settings); err != nil {
		return nil, fmt.Errorf("florist %s: malformed delivery settings: %w", rec.ID, err)
	}
	if len(rec.DeliverySlots) > 0 {
		if err := json.Unmarshal(rec.DeliverySlots, &florist.Slots); err != nil {
			return nil, fmt.Errorf("florist %s: malformed delivery slots: %w", rec.ID, err)
		}
	}

	if err := florist.Hours.Validate(); err != nil {
		return nil, fmt.Errorf("florist %s: %w", rec.ID, err)
	}
	if err := florist.Settings.Validate(); err != nil {
		return nil, fmt.Errorf("florist %s: %w", rec.ID, err)
	}
	return florist, nil
}

func encodeFlorist(florist *Florist) (*repository.Florist, error) {
	hours, err := json.Marshal(florist.Hours)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal business hours: %w", err)
	}
	settings, err := json.Marshal(florist.Settings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal delivery settings: %w", err)
	}
	slots, err := json.Marshal(florist.Slots)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal delivery slots: %w", err)
	}

	return &repository.Florist{
		ID:               florist.ID,
		Name:             florist.Name,
		Lat:              florist.Coordinates.Lat,
		Lng:              florist.Coordinates.Lng,
		Active:           florist.Active,
		BusinessHours:    hours,
		DeliverySettings: settings,
		DeliverySlots:    slots,
		CreatedAt:        florist.CreatedAt,
		UpdatedAt:        florist.UpdatedAt,
	}, nil
}

func toOrder(rec *repository.Order) (*Order, error) {
	st, err := status.Parse(rec.Status)
	if err != nil {
		return nil, fmt.Errorf("stored order %s is corrupt: %w", rec.ID, err)
	}
	dt, err := status.ParseDeliveryType(rec.DeliveryType)
	if err != nil {
		return nil, fmt.Errorf("stored order %s is corrupt: %w", rec.ID, err)
	}

	return &Order{
		ID:           rec.ID,
		FloristID:    rec.FloristID,
		CustomerID:   rec.CustomerID,
		DeliveryType: dt,
		Status:       st,
		TotalAmount:  rec.TotalAmount,
		DeliveryFee:  rec.DeliveryFee,
		DeliveryDate: rec.DeliveryDate,
		DeliverySlot: rec.DeliverySlot,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}, nil
}
