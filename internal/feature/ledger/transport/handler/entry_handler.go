// Package handler provides the HTTP handlers for the ledger feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"finance_backend/internal/api"
	"finance_backend/internal/feature/ledger/domain/entity"
	"finance_backend/internal/feature/ledger/usecase"
	jwtmw "finance_backend/internal/platform/jwt"
	"finance_backend/internal/shared/apperr"
)

// EntryUsecase defines the ledger operations consumed by the HTTP layer.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type EntryUsecase interface {
	Save(ctx context.Context, entry *entity.Entry) (*entity.Entry, error)
	Update(ctx context.Context, entry *entity.Entry) (*entity.Entry, error)
	Delete(ctx context.Context, entry *entity.Entry) error
	UpdateStatus(ctx context.Context, entry *entity.Entry, status entity.EntryStatus) (*entity.Entry, error)
	Search(ctx context.Context, filter *entity.Entry) ([]entity.Entry, error)
	GetByID(ctx context.Context, id uint) (*entity.Entry, error)
	Balance(ctx context.Context, userID uint) (decimal.Decimal, error)
}

// EntryHandler handles the HTTP requests for ledger entries. Every route
// runs behind the auth middleware, and every operation is scoped to the
// authenticated user taken from the request context.
type EntryHandler struct {
	entries EntryUsecase
}

// NewEntryHandler creates a new EntryHandler instance.
func NewEntryHandler(entries EntryUsecase) *EntryHandler {
	return &EntryHandler{entries: entries}
}

// Create handles POST /entries. The entry is created PENDING regardless of
// any status in the payload, and owned by the authenticated user.
func (h *EntryHandler) Create(c *gin.Context) {
	var req api.EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	entry := &entity.Entry{
		Description: req.Description,
		Month:       req.Month,
		Year:        req.Year,
		Value:       req.Value,
		Type:        entity.EntryType(req.Type),
		UserID:      c.GetUint(jwtmw.ContextUserID),
	}

	saved, err := h.entries.Save(c.Request.Context(), entry)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toEntryResponse(saved))
}

// Update handles PUT /entries/:id with full revalidation of the payload.
func (h *EntryHandler) Update(c *gin.Context) {
	entry, ok := h.ownedEntry(c)
	if !ok {
		return
	}

	var req api.EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	entry.Description = req.Description
	entry.Month = req.Month
	entry.Year = req.Year
	entry.Value = req.Value
	entry.Type = entity.EntryType(req.Type)

	updated, err := h.entries.Update(c.Request.Context(), entry)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEntryResponse(updated))
}

// UpdateStatus handles PATCH /entries/:id/status. The stored entry is
// reloaded and fully revalidated, so a status change can never persist an
// otherwise invalid record.
func (h *EntryHandler) UpdateStatus(c *gin.Context) {
	entry, ok := h.ownedEntry(c)
	if !ok {
		return
	}

	var req api.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	status := entity.EntryStatus(req.Status)
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid status"})
		return
	}

	updated, err := h.entries.UpdateStatus(c.Request.Context(), entry, status)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEntryResponse(updated))
}

// Delete handles DELETE /entries/:id.
func (h *EntryHandler) Delete(c *gin.Context) {
	entry, ok := h.ownedEntry(c)
	if !ok {
		return
	}
	if err := h.entries.Delete(c.Request.Context(), entry); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get handles GET /entries/:id.
func (h *EntryHandler) Get(c *gin.Context) {
	entry, ok := h.ownedEntry(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toEntryResponse(entry))
}

// List handles GET /entries. Query parameters populate a filter entry for
// a search by example; absent parameters leave the result unconstrained.
// The owning user is always the authenticated one.
//
// Endpoint example:
// GET /entries?description=gro&month=3&year=2026&type=EXPENSE&status=PENDING
func (h *EntryHandler) List(c *gin.Context) {
	month, _ := strconv.Atoi(c.Query("month"))
	year, _ := strconv.Atoi(c.Query("year"))

	filter := &entity.Entry{
		Description: c.Query("description"),
		Month:       month,
		Year:        year,
		Type:        entity.EntryType(c.Query("type")),
		Status:      entity.EntryStatus(c.Query("status")),
		UserID:      c.GetUint(jwtmw.ContextUserID),
	}

	entries, err := h.entries.Search(c.Request.Context(), filter)
	if err != nil {
		h.writeError(c, err)
		return
	}

	out := make([]api.EntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, toEntryResponse(&entries[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Balance handles GET /balance for the authenticated user.
func (h *EntryHandler) Balance(c *gin.Context) {
	balance, err := h.entries.Balance(c.Request.Context(), c.GetUint(jwtmw.ContextUserID))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.BalanceResponse{Balance: balance})
}

// ownedEntry loads the entry addressed by the :id path parameter and
// checks it belongs to the authenticated user. A foreign entry is
// reported as not found rather than forbidden, so entry IDs cannot be
// probed across users.
func (h *EntryHandler) ownedEntry(c *gin.Context) (*entity.Entry, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid entry id"})
		return nil, false
	}

	entry, lookupErr := h.entries.GetByID(c.Request.Context(), uint(id))
	if lookupErr != nil {
		h.writeError(c, lookupErr)
		return nil, false
	}
	if entry.UserID != c.GetUint(jwtmw.ContextUserID) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "entry not found"})
		return nil, false
	}
	return entry, true
}

// writeError maps usecase errors onto HTTP responses: business rules are
// client errors carrying the rule message, everything else is generic.
func (h *EntryHandler) writeError(c *gin.Context, err error) {
	switch {
	case apperr.IsBusinessRule(err):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrEntryNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "entry not found"})
	default:
		slog.Error("ledger operation failed", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
	}
}

// toEntryResponse converts an entry to its public representation.
func toEntryResponse(e *entity.Entry) api.EntryResponse {
	return api.EntryResponse{
		ID:          e.ID,
		Description: e.Description,
		Month:       e.Month,
		Year:        e.Year,
		Value:       e.Value,
		Type:        string(e.Type),
		Status:      string(e.Status),
		UserID:      e.UserID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
