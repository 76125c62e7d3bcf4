package usecase

import (
	"context"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"finance_backend/internal/feature/ledger/domain/entity"
)

// EntryRepository abstracts the persistence layer for ledger entries.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type EntryRepository interface {
	// Save inserts the entry, or updates it when it already carries an ID.
	// The store assigns the ID on insert.
	Save(ctx context.Context, entry *entity.Entry) error

	// FindByID retrieves an entry by its ID.
	// It returns ErrEntryNotFound if the entry does not exist.
	FindByID(ctx context.Context, id uint) (*entity.Entry, error)

	// Delete removes the entry from the store.
	// It returns ErrEntryNotFound if no stored entry has the entry's ID.
	Delete(ctx context.Context, entry *entity.Entry) error

	// FindByExample retrieves all entries matching the populated fields of
	// the filter: substring, case-insensitive on Description; exact match on
	// every other non-zero field.
	FindByExample(ctx context.Context, filter *entity.Entry) ([]entity.Entry, error)

	// SumByUserAndType returns the sum of Value over the user's entries of
	// the given type. The sum is invalid (not zero) when no entries match.
	SumByUserAndType(ctx context.Context, userID uint, entryType entity.EntryType) (decimal.NullDecimal, error)
}

// entryUsecase implements the ledger business logic.
type entryUsecase struct {
	entries EntryRepository
}

// NewEntryUsecase creates a new entryUsecase instance with its repository
// passed explicitly.
func NewEntryUsecase(entries EntryRepository) *entryUsecase {
	return &entryUsecase{entries: entries}
}

// Validate checks the entry's business fields in a fixed order and returns
// the violation of the first failing rule only: description, month, year,
// owning user, value, type.
func (u *entryUsecase) Validate(entry *entity.Entry) error {
	if strings.TrimSpace(entry.Description) == "" {
		return ErrInvalidDescription
	}
	if entry.Month < 1 || entry.Month > 12 {
		return ErrInvalidMonth
	}
	if len(strconv.Itoa(entry.Year)) != 4 {
		return ErrInvalidYear
	}
	if entry.UserID == 0 {
		return ErrMissingUser
	}
	if !entry.Value.IsPositive() {
		return ErrInvalidValue
	}
	if !entry.Type.Valid() {
		return ErrMissingType
	}
	return nil
}

// Save validates the entry, forces its status to PENDING and persists it.
// The status on the input is overwritten: a caller-supplied SETTLED or
// CANCELED never survives creation.
func (u *entryUsecase) Save(ctx context.Context, entry *entity.Entry) (*entity.Entry, error) {
	if err := u.Validate(entry); err != nil {
		return nil, err
	}
	entry.Status = entity.EntryStatusPending
	if err := u.entries.Save(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Update revalidates the entry and persists it. The entry must already
// carry a store-assigned ID; a missing ID is a caller contract violation
// and the store is never reached.
func (u *entryUsecase) Update(ctx context.Context, entry *entity.Entry) (*entity.Entry, error) {
	if err := u.Validate(entry); err != nil {
		return nil, err
	}
	if entry.ID == 0 {
		return nil, ErrEntryIDRequired
	}
	if err := u.entries.Save(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete removes the entry from the store. The entry must carry an ID.
func (u *entryUsecase) Delete(ctx context.Context, entry *entity.Entry) error {
	if entry.ID == 0 {
		return ErrEntryIDRequired
	}
	return u.entries.Delete(ctx, entry)
}

// UpdateStatus sets the entry's status and runs a full Update, so a status
// change never persists an otherwise invalid record. No transition table
// is enforced: any status may be set from any other.
func (u *entryUsecase) UpdateStatus(ctx context.Context, entry *entity.Entry, status entity.EntryStatus) (*entity.Entry, error) {
	entry.Status = status
	return u.Update(ctx, entry)
}

// Search returns the entries matching the populated fields of the filter.
func (u *entryUsecase) Search(ctx context.Context, filter *entity.Entry) ([]entity.Entry, error) {
	return u.entries.FindByExample(ctx, filter)
}

// GetByID retrieves an entry by ID. It returns ErrEntryNotFound on absence.
func (u *entryUsecase) GetByID(ctx context.Context, id uint) (*entity.Entry, error) {
	return u.entries.FindByID(ctx, id)
}

// Balance computes the user's net balance: the sum of INCOME values minus
// the sum of EXPENSE values, via two independent aggregate queries. A type
// with no entries contributes zero. Entries of every status count, so the
// result may include PENDING and CANCELED movements, and may be negative.
func (u *entryUsecase) Balance(ctx context.Context, userID uint) (decimal.Decimal, error) {
	income, err := u.entries.SumByUserAndType(ctx, userID, entity.EntryTypeIncome)
	if err != nil {
		return decimal.Zero, err
	}
	expense, err := u.entries.SumByUserAndType(ctx, userID, entity.EntryTypeExpense)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	if income.Valid {
		total = income.Decimal
	}
	if expense.Valid {
		total = total.Sub(expense.Decimal)
	}
	return total, nil
}
