package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"florist-marketplace/internal/repository"
	mock_storage "florist-marketplace/internal/storage/mocks"
)

func TestFloristCache_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("miss falls through and populates the cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mock_storage.NewMockFloristRepository(ctrl)
		cache := NewFloristCache(repo)

		florist := &repository.Florist{ID: "florist-1", Name: "Rose & Thorn", Active: true}
		repo.EXPECT().GetByID(ctx, "florist-1").Return(florist, nil).Times(1)

		got, err := cache.GetByID(ctx, "florist-1")
		require.NoError(t, err)
		assert.Equal(t, "Rose & Thorn", got.Name)

		// Second read must be served from memory.
		got, err = cache.GetByID(ctx, "florist-1")
		require.NoError(t, err)
		assert.Equal(t, "Rose & Thorn", got.Name)
	})

	t.Run("returned profile is a copy", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mock_storage.NewMockFloristRepository(ctrl)
		cache := NewFloristCache(repo)

		repo.EXPECT().GetByID(ctx, "florist-1").
			Return(&repository.Florist{ID: "florist-1", Name: "Rose & Thorn", Active: true}, nil)

		first, err := cache.GetByID(ctx, "florist-1")
		require.NoError(t, err)
		first.Name = "mutated"

		second, err := cache.GetByID(ctx, "florist-1")
		require.NoError(t, err)
		assert.Equal(t, "Rose & Thorn", second.Name)
	})

	t.Run("not found propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mock_storage.NewMockFloristRepository(ctrl)
		cache := NewFloristCache(repo)

		repo.EXPECT().GetByID(ctx, "missing").Return(nil, repository.ErrObjectNotFound)

		_, err := cache.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
	})
}

func TestFloristCache_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_storage.NewMockFloristRepository(ctrl)
	cache := NewFloristCache(repo)

	active := &repository.Florist{ID: "florist-1", Name: "Rose & Thorn", Active: true}
	repo.EXPECT().GetByID(ctx, "florist-1").Return(active, nil)
	_, err := cache.GetByID(ctx, "florist-1")
	require.NoError(t, err)

	t.Run("deactivation evicts", func(t *testing.T) {
		inactive := &repository.Florist{ID: "florist-1", Name: "Rose & Thorn", Active: false}
		repo.EXPECT().UpdateProfile(ctx, inactive).Return(nil)
		require.NoError(t, cache.UpdateProfile(ctx, inactive))

		// Next read goes back to the repository.
		repo.EXPECT().GetByID(ctx, "florist-1").Return(inactive, nil)
		_, err := cache.GetByID(ctx, "florist-1")
		require.NoError(t, err)
	})

	t.Run("repository error leaves cache untouched", func(t *testing.T) {
		repo.EXPECT().UpdateProfile(ctx, gomock.Any()).Return(assert.AnError)
		err := cache.UpdateProfile(ctx, &repository.Florist{ID: "florist-2", Active: true})
		assert.Error(t, err)
	})
}

func TestFloristCache_LoadInitialData(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_storage.NewMockFloristRepository(ctrl)
	cache := NewFloristCache(repo)

	repo.EXPECT().ListActive(ctx).Return([]*repository.Florist{
		{ID: "a", Active: true},
		{ID: "b", Active: true},
	}, nil)

	require.NoError(t, cache.LoadInitialData(ctx))

	// Warm entries are served without repository hits.
	got, err := cache.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID)
}
