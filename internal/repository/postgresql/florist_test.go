package postgresql_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	mock_database "florist-marketplace/internal/db/mocks"
	"florist-marketplace/internal/repository"
	"florist-marketplace/internal/repository/postgresql"
)

func testFlorist(now time.Time) *repository.Florist {
	return &repository.Florist{
		ID:               "florist-123",
		Name:             "Tulip Corner",
		Lat:              52.3676,
		Lng:              4.9041,
		Active:           true,
		BusinessHours:    json.RawMessage(`{"monday":{"open":"09:00","close":"18:00"}}`),
		DeliverySettings: json.RawMessage(`{"radius_km":10,"fee_per_order":7.5,"minimum_order":25,"distance_type":"radius"}`),
		DeliverySlots:    json.RawMessage(`[]`),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func TestFloristRepo_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewFloristRepo(mockDB)

		florist := testFlorist(now)

		mockDB.EXPECT().Exec(
			gomock.Any(),
			gomock.Any(),
			gomock.Eq(florist.ID),
			gomock.Eq(florist.Name),
			gomock.Eq(florist.Lat),
			gomock.Eq(florist.Lng),
			gomock.Eq(florist.Active),
			gomock.Eq(florist.BusinessHours),
			gomock.Eq(florist.DeliverySettings),
			gomock.Eq(florist.DeliverySlots),
			gomock.Eq(florist.CreatedAt),
			gomock.Eq(florist.UpdatedAt),
		).Return(pgconn.CommandTag("INSERT 0 1"), nil)

		err := repo.Create(ctx, florist)
		assert.NoError(t, err)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewFloristRepo(mockDB)

		expectedErr := errors.New("database error")
		mockDB.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, expectedErr)

		err := repo.Create(ctx, testFlorist(now))
		assert.Equal(t, expectedErr, err)
	})
}

func TestFloristRepo_GetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	t.Run("florist found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewFloristRepo(mockDB)

		expected := testFlorist(now)

		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(expected.ID)).
			DoAndReturn(func(_ context.Context, dest *repository.Florist, _ string, _ string) error {
				*dest = *expected
				return nil
			})

		florist, err := repo.GetByID(ctx, expected.ID)
		assert.NoError(t, err)
		assert.Equal(t, expected, florist)
	})

	t.Run("florist not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewFloristRepo(mockDB)

		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgx.ErrNoRows)

		florist, err := repo.GetByID(ctx, "non-existent-id")
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
		assert.Nil(t, florist)
	})
}

func TestFloristRepo_ListActive(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	t.Run("returns active florists", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewFloristRepo(mockDB)

		expected := []*repository.Florist{testFlorist(now)}

		mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, dest *[]*repository.Florist, query string, _ ...interface{}) error {
				assert.Contains(t, query, "WHERE active")
				*dest = expected
				return nil
			})

		florists, err := repo.ListActive(ctx)
		assert.NoError(t, err)
		assert.Equal(t, expected, florists)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewFloristRepo(mockDB)

		expectedErr := errors.New("database error")
		mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(expectedErr)

		florists, err := repo.ListActive(ctx)
		assert.Equal(t, expectedErr, err)
		assert.Nil(t, florists)
	})
}

func TestFloristRepo_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewFloristRepo(mockDB)

		florist := testFlorist(now)

		mockDB.EXPECT().Exec(
			gomock.Any(),
			gomock.Any(),
			gomock.Eq(florist.Name),
			gomock.Eq(florist.Lat),
			gomock.Eq(florist.Lng),
			gomock.Eq(florist.Active),
			gomock.Eq(florist.BusinessHours),
			gomock.Eq(florist.DeliverySettings),
			gomock.Eq(florist.DeliverySlots),
			gomock.Eq(florist.UpdatedAt),
			gomock.Eq(florist.ID),
		).Return(pgconn.CommandTag("UPDATE 1"), nil)

		err := repo.UpdateProfile(ctx, florist)
		assert.NoError(t, err)
	})

	t.Run("no rows affected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewFloristRepo(mockDB)

		mockDB.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgconn.CommandTag("UPDATE 0"), nil)

		err := repo.UpdateProfile(ctx, testFlorist(now))
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
	})
}
