// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"finance_backend/internal/feature/ledger/domain/entity"
	"finance_backend/internal/feature/ledger/usecase"
)

// CachingEntryRepository decorates an EntryRepository with Redis caching of
// the per-user balance aggregates. Reads and writes of individual entries
// pass straight through; any write invalidates the owning user's cached
// sums so the balance never goes stale.
type CachingEntryRepository struct {
	inner     usecase.EntryRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Compile-time check that the decorator still satisfies EntryRepository.
var _ usecase.EntryRepository = (*CachingEntryRepository)(nil)

// NewCachingEntryRepository decorates an EntryRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "balance".
func NewCachingEntryRepository(rdb *redis.Client, ttl time.Duration, inner usecase.EntryRepository, namespace string) *CachingEntryRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "balance"
	}
	return &CachingEntryRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Save writes through to the underlying repository and invalidates the
// owning user's cached sums.
func (c *CachingEntryRepository) Save(ctx context.Context, entry *entity.Entry) error {
	if err := c.inner.Save(ctx, entry); err != nil {
		return err
	}
	c.invalidate(ctx, entry.UserID)
	return nil
}

// FindByID passes through to the underlying repository.
func (c *CachingEntryRepository) FindByID(ctx context.Context, id uint) (*entity.Entry, error) {
	return c.inner.FindByID(ctx, id)
}

// Delete writes through to the underlying repository and invalidates the
// owning user's cached sums.
func (c *CachingEntryRepository) Delete(ctx context.Context, entry *entity.Entry) error {
	if err := c.inner.Delete(ctx, entry); err != nil {
		return err
	}
	c.invalidate(ctx, entry.UserID)
	return nil
}

// FindByExample passes through to the underlying repository.
func (c *CachingEntryRepository) FindByExample(ctx context.Context, filter *entity.Entry) ([]entity.Entry, error) {
	return c.inner.FindByExample(ctx, filter)
}

// SumByUserAndType serves the aggregate from cache when possible, falling
// back to the database and storing the result best effort.
func (c *CachingEntryRepository) SumByUserAndType(ctx context.Context, userID uint, entryType entity.EntryType) (decimal.NullDecimal, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.SumByUserAndType(ctx, userID, entryType)
	}

	key := c.cacheKey(userID, entryType)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out decimal.NullDecimal
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.SumByUserAndType(ctx, userID, entryType)
	if err != nil {
		return decimal.NullDecimal{}, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// cacheKey generates the cache key for one user's sum of one entry type.
func (c *CachingEntryRepository) cacheKey(userID uint, entryType entity.EntryType) string {
	return fmt.Sprintf("%s:user:%d:%s", c.namespace, userID, entryType)
}

// invalidate drops both cached sums of a user, best effort.
func (c *CachingEntryRepository) invalidate(ctx context.Context, userID uint) {
	if c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx,
		c.cacheKey(userID, entity.EntryTypeIncome),
		c.cacheKey(userID, entity.EntryTypeExpense),
	).Err()
}
