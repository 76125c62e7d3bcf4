package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	ledgeradapters "finance_backend/internal/feature/ledger/adapters"
	"finance_backend/internal/feature/ledger/usecase"
	"finance_backend/internal/platform/cache"
)

// NewEntryRepository creates the EntryRepository, wrapping the PostgreSQL
// implementation with the Redis balance cache when Redis is available.
func NewEntryRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) usecase.EntryRepository {
	repo := ledgeradapters.NewEntryPostgres(db)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingEntryRepository(rdb, ttl, repo, "balance")
}
