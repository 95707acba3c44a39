package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"mugix-storefront/models"
)

const (
	cachePrefix        = "mugix:catalog"
	cacheGenerationKey = cachePrefix + ":gen"
)

// CacheStore is the part of the redis client the cache uses
type CacheStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// cachedCatalogService caches catalog reads in redis. Every key embeds a
// generation number that any write bumps, so one INCR invalidates all
// cached lists and products at once. Redis errors fall through to next.
type cachedCatalogService struct {
	next   CatalogServiceInterface
	store  CacheStore
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedCatalogService wraps next with a redis read cache
func NewCachedCatalogService(next CatalogServiceInterface, store CacheStore, ttl time.Duration, logger *zap.Logger) CatalogServiceInterface {
	return &cachedCatalogService{
		next:   next,
		store:  store,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *cachedCatalogService) key(ctx context.Context, kind, arg string) string {
	gen, err := s.store.Get(ctx, cacheGenerationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		s.logger.Warn("cache generation unavailable", zap.Error(err))
	}
	return fmt.Sprintf("%s:%d:%s:%016x", cachePrefix, gen, kind, xxhash.Sum64String(arg))
}

func (s *cachedCatalogService) load(ctx context.Context, key string, dst any) bool {
	data, err := s.store.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		s.logger.Warn("cache entry unreadable", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *cachedCatalogService) save(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.store.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *cachedCatalogService) invalidate(ctx context.Context) {
	if err := s.store.Incr(ctx, cacheGenerationKey).Err(); err != nil {
		s.logger.Warn("cache invalidation failed", zap.Error(err))
	}
}

func (s *cachedCatalogService) ListProducts(ctx context.Context, filters models.ProductFilters) ([]models.Product, error) {
	key := s.key(ctx, "products", filters.CategoryID+"\x00"+filters.Search)

	var products []models.Product
	if s.load(ctx, key, &products) {
		return products, nil
	}

	products, err := s.next.ListProducts(ctx, filters)
	if err != nil {
		return nil, err
	}
	s.save(ctx, key, products)
	return products, nil
}

func (s *cachedCatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	key := s.key(ctx, "product", id)

	var product models.Product
	if s.load(ctx, key, &product) {
		return &product, nil
	}

	p, err := s.next.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	s.save(ctx, key, p)
	return p, nil
}

func (s *cachedCatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	key := s.key(ctx, "categories", "")

	var categories []models.Category
	if s.load(ctx, key, &categories) {
		return categories, nil
	}

	categories, err := s.next.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	s.save(ctx, key, categories)
	return categories, nil
}

func (s *cachedCatalogService) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	p, err := s.next.CreateProduct(ctx, in)
	if err == nil {
		s.invalidate(ctx)
	}
	return p, err
}

func (s *cachedCatalogService) UpdateProduct(ctx context.Context, id string, in models.ProductInput) (*models.Product, error) {
	p, err := s.next.UpdateProduct(ctx, id, in)
	if err == nil {
		s.invalidate(ctx)
	}
	return p, err
}

func (s *cachedCatalogService) SetProductImages(ctx context.Context, id string, images []string) (*models.Product, error) {
	p, err := s.next.SetProductImages(ctx, id, images)
	if err == nil {
		s.invalidate(ctx)
	}
	return p, err
}

func (s *cachedCatalogService) DeleteProduct(ctx context.Context, id string) error {
	err := s.next.DeleteProduct(ctx, id)
	if err == nil {
		s.invalidate(ctx)
	}
	return err
}

func (s *cachedCatalogService) CreateCategory(ctx context.Context, in models.CategoryInput) (*models.Category, error) {
	c, err := s.next.CreateCategory(ctx, in)
	if err == nil {
		s.invalidate(ctx)
	}
	return c, err
}

// Category edits change the category embedded in product responses too,
// hence the full invalidation.
func (s *cachedCatalogService) UpdateCategory(ctx context.Context, id string, in models.CategoryInput) (*models.Category, error) {
	c, err := s.next.UpdateCategory(ctx, id, in)
	if err == nil {
		s.invalidate(ctx)
	}
	return c, err
}

func (s *cachedCatalogService) DeleteCategory(ctx context.Context, id string) error {
	err := s.next.DeleteCategory(ctx, id)
	if err == nil {
		s.invalidate(ctx)
	}
	return err
}
