// Package adapters provides repository implementations for the ledger feature.
package adapters

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finance_backend/internal/feature/ledger/domain/entity"
	"finance_backend/internal/feature/ledger/usecase"
)

// entryPostgres is the PostgreSQL implementation of the EntryRepository
// interface. It uses GORM for database operations.
type entryPostgres struct {
	db *gorm.DB
}

// Compile-time check that entryPostgres implements EntryRepository.
var _ usecase.EntryRepository = (*entryPostgres)(nil)

// NewEntryPostgres creates a new entryPostgres instance on the given gorm.DB connection.
func NewEntryPostgres(db *gorm.DB) *entryPostgres {
	return &entryPostgres{db: db}
}

// Save inserts the entry when it has no ID yet, otherwise updates the
// stored row. GORM fills in the assigned ID on insert.
func (r *entryPostgres) Save(ctx context.Context, entry *entity.Entry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// FindByID retrieves an entry by its ID.
// It returns usecase.ErrEntryNotFound if the entry does not exist.
func (r *entryPostgres) FindByID(ctx context.Context, id uint) (*entity.Entry, error) {
	var entry entity.Entry
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// Delete removes the entry from the database.
// It returns usecase.ErrEntryNotFound when no stored row has the entry's ID.
func (r *entryPostgres) Delete(ctx context.Context, entry *entity.Entry) error {
	result := r.db.WithContext(ctx).Delete(&entity.Entry{}, entry.ID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrEntryNotFound
	}
	return nil
}

// FindByExample composes one predicate per populated filter field instead
// of relying on reflection matching: Description constrains by substring,
// case-insensitively; every other non-zero field constrains by equality.
// Zero-valued fields leave the result unconstrained.
func (r *entryPostgres) FindByExample(ctx context.Context, filter *entity.Entry) ([]entity.Entry, error) {
	q := r.db.WithContext(ctx).Model(&entity.Entry{})

	if filter.ID != 0 {
		q = q.Where("id = ?", filter.ID)
	}
	if desc := strings.TrimSpace(filter.Description); desc != "" {
		q = q.Where("LOWER(description) LIKE ?", "%"+strings.ToLower(desc)+"%")
	}
	if filter.Month != 0 {
		q = q.Where("month = ?", filter.Month)
	}
	if filter.Year != 0 {
		q = q.Where("year = ?", filter.Year)
	}
	if !filter.Value.IsZero() {
		q = q.Where("value = ?", filter.Value)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.UserID != 0 {
		q = q.Where("user_id = ?", filter.UserID)
	}

	var entries []entity.Entry
	if err := q.Order("id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// SumByUserAndType aggregates the value of the user's entries of one type.
// The returned sum is invalid when the user has no entries of that type;
// translating that to zero is the caller's decision.
func (r *entryPostgres) SumByUserAndType(ctx context.Context, userID uint, entryType entity.EntryType) (decimal.NullDecimal, error) {
	var sum decimal.NullDecimal
	row := r.db.WithContext(ctx).
		Model(&entity.Entry{}).
		Select("SUM(value)").
		Where("user_id = ? AND type = ?", userID, entryType).
		Row()
	if err := row.Scan(&sum); err != nil {
		return decimal.NullDecimal{}, err
	}
	return sum, nil
}
