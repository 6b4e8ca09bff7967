package cache

import (
	"context"
	"log"
	"sync"

	"florist-marketplace/internal/metrics"
	"florist-marketplace/internal/repository"
	"florist-marketplace/internal/storage"
)

// FloristCache keeps active florist profiles in memory in front of the
// Postgres repository. Profiles change rarely and are read on every
// availability check and search, so a write-through map pays off.
type FloristCache struct {
	mu    sync.RWMutex
	cache map[string]*repository.Florist
	repo  storage.FloristRepository
}

var _ storage.FloristRepository = (*FloristCache)(nil)

func NewFloristCache(repo storage.FloristRepository) *FloristCache {
	return &FloristCache{
		cache: make(map[string]*repository.Florist),
		repo:  repo,
	}
}

// LoadInitialData warms the cache with every active florist.
func (c *FloristCache) LoadInitialData(ctx context.Context) error {
	log.Println("Loading initial data into florist cache...")
	florists, err := c.repo.ListActive(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, florist := range florists {
		floristCopy := *florist
		c.cache[florist.ID] = &floristCopy
	}
	metrics.FloristCacheItems.Set(float64(len(c.cache)))
	log.Printf("Successfully loaded %d active florists into cache.", len(c.cache))
	return nil
}

func (c *FloristCache) Create(ctx context.Context, florist *repository.Florist) error {
	if err := c.repo.Create(ctx, florist); err != nil {
		return err
	}
	c.set(florist)
	return nil
}

func (c *FloristCache) GetByID(ctx context.Context, id string) (*repository.Florist, error) {
	c.mu.RLock()
	florist, found := c.cache[id]
	if found {
		floristCopy := *florist
		c.mu.RUnlock()
		return &floristCopy, nil
	}
	c.mu.RUnlock()

	florist, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.set(florist)
	return florist, nil
}

// ListActive always hits the repository: search results must not miss a
// florist that activated after the cache was warmed.
func (c *FloristCache) ListActive(ctx context.Context) ([]*repository.Florist, error) {
	florists, err := c.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	for _, florist := range florists {
		c.set(florist)
	}
	return florists, nil
}

func (c *FloristCache) UpdateProfile(ctx context.Context, florist *repository.Florist) error {
	if err := c.repo.UpdateProfile(ctx, florist); err != nil {
		return err
	}
	c.set(florist)
	return nil
}

func (c *FloristCache) set(florist *repository.Florist) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if florist.Active {
		floristCopy := *florist
		c.cache[florist.ID] = &floristCopy
	} else {
		delete(c.cache, florist.ID)
	}
	metrics.FloristCacheItems.Set(float64(len(c.cache)))
}

func (c *FloristCache) Delete(floristID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.cache, floristID)
	metrics.FloristCacheItems.Set(float64(len(c.cache)))
}
