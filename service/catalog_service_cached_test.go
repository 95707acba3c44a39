package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mugix-storefront/models"
)

// memCache is a CacheStore over a map. down makes every call fail.
type memCache struct {
	mu   sync.Mutex
	data map[string]string
	down bool
}

func newMemCache() *memCache { return &memCache{data: map[string]string{}} }

func (c *memCache) Get(ctx context.Context, key string) *redis.StringCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.down {
		return redis.NewStringResult("", errors.New("connection refused"))
	}
	v, ok := c.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (c *memCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.down {
		return redis.NewStatusResult("", errors.New("connection refused"))
	}
	switch v := value.(type) {
	case []byte:
		c.data[key] = string(v)
	default:
		c.data[key] = fmt.Sprint(v)
	}
	return redis.NewStatusResult("OK", nil)
}

func (c *memCache) Incr(ctx context.Context, key string) *redis.IntCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.down {
		return redis.NewIntResult(0, errors.New("connection refused"))
	}
	var n int64
	fmt.Sscan(c.data[key], &n)
	n++
	c.data[key] = fmt.Sprint(n)
	return redis.NewIntResult(n, nil)
}

// countingCatalog counts reads reaching the wrapped service
type countingCatalog struct {
	CatalogServiceInterface
	listCalls int
	getCalls  int
}

func (c *countingCatalog) ListProducts(ctx context.Context, f models.ProductFilters) ([]models.Product, error) {
	c.listCalls++
	return c.CatalogServiceInterface.ListProducts(ctx, f)
}

func (c *countingCatalog) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	c.getCalls++
	return c.CatalogServiceInterface.GetProduct(ctx, id)
}

func newCachedFixture(cache *memCache) (CatalogServiceInterface, *countingCatalog) {
	svc, repo, _ := newTestCatalog()
	repo.items["p1"] = &models.Product{ID: "p1", Name: "Mug", Images: []string{}}
	inner := &countingCatalog{CatalogServiceInterface: svc}
	return NewCachedCatalogService(inner, cache, time.Minute, zap.NewNop()), inner
}

func TestCachedCatalog_ServesRepeatReadsFromCache(t *testing.T) {
	cached, inner := newCachedFixture(newMemCache())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		p, err := cached.GetProduct(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "Mug", p.Name)
	}
	assert.Equal(t, 1, inner.getCalls)
}

func TestCachedCatalog_FiltersHaveSeparateEntries(t *testing.T) {
	cached, inner := newCachedFixture(newMemCache())
	ctx := context.Background()

	_, err := cached.ListProducts(ctx, models.ProductFilters{})
	require.NoError(t, err)
	_, err = cached.ListProducts(ctx, models.ProductFilters{Search: "mug"})
	require.NoError(t, err)
	_, err = cached.ListProducts(ctx, models.ProductFilters{Search: "mug"})
	require.NoError(t, err)

	assert.Equal(t, 2, inner.listCalls)
}

func TestCachedCatalog_WriteInvalidates(t *testing.T) {
	cached, inner := newCachedFixture(newMemCache())
	ctx := context.Background()

	_, err := cached.GetProduct(ctx, "p1")
	require.NoError(t, err)

	_, err = cached.UpdateProduct(ctx, "p1", models.ProductInput{Name: "Mug Noir"})
	require.NoError(t, err)

	p, err := cached.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Mug Noir", p.Name)
	assert.Equal(t, 2, inner.getCalls)
}

func TestCachedCatalog_FailedWriteKeepsCache(t *testing.T) {
	cache := newMemCache()
	cached, _ := newCachedFixture(cache)

	_, err := cached.UpdateProduct(context.Background(), "missing", models.ProductInput{Name: "x"})
	require.Error(t, err)

	_, ok := cache.data[cacheGenerationKey]
	assert.False(t, ok)
}

func TestCachedCatalog_RedisDownFallsThrough(t *testing.T) {
	cache := newMemCache()
	cache.down = true
	cached, inner := newCachedFixture(cache)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		p, err := cached.GetProduct(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "Mug", p.Name)
	}
	assert.Equal(t, 2, inner.getCalls)

	_, err := cached.CreateCategory(ctx, models.CategoryInput{Name: "Mugs"})
	assert.NoError(t, err)
}
