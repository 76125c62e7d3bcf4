package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"finance_backend/internal/api"
	"finance_backend/internal/feature/ledger/domain/entity"
	"finance_backend/internal/feature/ledger/usecase"
	jwtmw "finance_backend/internal/platform/jwt"
)

// mockEntryUsecase is a mock implementation of the EntryUsecase interface.
type mockEntryUsecase struct {
	SaveFunc         func(ctx context.Context, entry *entity.Entry) (*entity.Entry, error)
	UpdateFunc       func(ctx context.Context, entry *entity.Entry) (*entity.Entry, error)
	DeleteFunc       func(ctx context.Context, entry *entity.Entry) error
	UpdateStatusFunc func(ctx context.Context, entry *entity.Entry, status entity.EntryStatus) (*entity.Entry, error)
	SearchFunc       func(ctx context.Context, filter *entity.Entry) ([]entity.Entry, error)
	GetByIDFunc      func(ctx context.Context, id uint) (*entity.Entry, error)
	BalanceFunc      func(ctx context.Context, userID uint) (decimal.Decimal, error)
}

func (m *mockEntryUsecase) Save(ctx context.Context, entry *entity.Entry) (*entity.Entry, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, entry)
	}
	return entry, nil
}

func (m *mockEntryUsecase) Update(ctx context.Context, entry *entity.Entry) (*entity.Entry, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, entry)
	}
	return entry, nil
}

func (m *mockEntryUsecase) Delete(ctx context.Context, entry *entity.Entry) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, entry)
	}
	return nil
}

func (m *mockEntryUsecase) UpdateStatus(ctx context.Context, entry *entity.Entry, status entity.EntryStatus) (*entity.Entry, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, entry, status)
	}
	entry.Status = status
	return entry, nil
}

func (m *mockEntryUsecase) Search(ctx context.Context, filter *entity.Entry) ([]entity.Entry, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockEntryUsecase) GetByID(ctx context.Context, id uint) (*entity.Entry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, usecase.ErrEntryNotFound
}

func (m *mockEntryUsecase) Balance(ctx context.Context, userID uint) (decimal.Decimal, error) {
	if m.BalanceFunc != nil {
		return m.BalanceFunc(ctx, userID)
	}
	return decimal.Zero, nil
}

// newLedgerRouter wires the handler behind a middleware that injects the
// given user ID, standing in for the JWT middleware.
func newLedgerRouter(h *EntryHandler, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, userID)
		c.Next()
	})
	router.POST("/entries", h.Create)
	router.GET("/entries", h.List)
	router.GET("/entries/:id", h.Get)
	router.PUT("/entries/:id", h.Update)
	router.PATCH("/entries/:id/status", h.UpdateStatus)
	router.DELETE("/entries/:id", h.Delete)
	router.GET("/balance", h.Balance)
	return router
}

func storedEntry() *entity.Entry {
	return &entity.Entry{
		ID:          10,
		Description: "salary",
		Month:       3,
		Year:        2026,
		Value:       decimal.RequireFromString("3500.00"),
		Type:        entity.EntryTypeIncome,
		Status:      entity.EntryStatusPending,
		UserID:      1,
	}
}

func TestEntryHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           gin.H
		mockSaveFunc   func(ctx context.Context, entry *entity.Entry) (*entity.Entry, error)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "success",
			body: gin.H{"description": "salary", "month": 3, "year": 2026, "value": "3500.00", "type": "INCOME"},
			mockSaveFunc: func(ctx context.Context, entry *entity.Entry) (*entity.Entry, error) {
				entry.ID = 10
				entry.Status = entity.EntryStatusPending
				return entry, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "business rule violation surfaces the rule message",
			body:           gin.H{"description": "", "month": 3, "year": 2026, "value": "3500.00", "type": "INCOME"},
			mockSaveFunc: func(ctx context.Context, entry *entity.Entry) (*entity.Entry, error) {
				return nil, usecase.ErrInvalidDescription
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  usecase.ErrInvalidDescription.Error(),
		},
		{
			name: "unexpected failure is generic",
			body: gin.H{"description": "salary", "month": 3, "year": 2026, "value": "3500.00", "type": "INCOME"},
			mockSaveFunc: func(ctx context.Context, entry *entity.Entry) (*entity.Entry, error) {
				return nil, errors.New("db down")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockEntryUsecase{SaveFunc: tt.mockSaveFunc}
			router := newLedgerRouter(NewEntryHandler(mockUC), 1)

			body, _ := json.Marshal(tt.body)
			req, _ := http.NewRequest(http.MethodPost, "/entries", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				var resp api.ErrorResponse
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedError, resp.Error)
			}
		})
	}
}

func TestEntryHandler_Create_OwnerComesFromContext(t *testing.T) {
	var captured *entity.Entry
	mockUC := &mockEntryUsecase{
		SaveFunc: func(ctx context.Context, entry *entity.Entry) (*entity.Entry, error) {
			captured = entry
			return entry, nil
		},
	}
	router := newLedgerRouter(NewEntryHandler(mockUC), 7)

	body, _ := json.Marshal(gin.H{"description": "rent", "month": 1, "year": 2026, "value": "900.00", "type": "EXPENSE"})
	req, _ := http.NewRequest(http.MethodPost, "/entries", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	if assert.NotNil(t, captured) {
		assert.Equal(t, uint(7), captured.UserID)
	}
}

func TestEntryHandler_Get(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		userID         uint
		mockGetFunc    func(ctx context.Context, id uint) (*entity.Entry, error)
		expectedStatus int
	}{
		{
			name:   "success",
			path:   "/entries/10",
			userID: 1,
			mockGetFunc: func(ctx context.Context, id uint) (*entity.Entry, error) {
				return storedEntry(), nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "foreign entry is reported as not found",
			path:   "/entries/10",
			userID: 2,
			mockGetFunc: func(ctx context.Context, id uint) (*entity.Entry, error) {
				return storedEntry(), nil
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "unknown entry",
			path:   "/entries/99",
			userID: 1,
			mockGetFunc: func(ctx context.Context, id uint) (*entity.Entry, error) {
				return nil, usecase.ErrEntryNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "non-numeric id",
			path:           "/entries/abc",
			userID:         1,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "zero id",
			path:           "/entries/0",
			userID:         1,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockEntryUsecase{GetByIDFunc: tt.mockGetFunc}
			router := newLedgerRouter(NewEntryHandler(mockUC), tt.userID)

			req, _ := http.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestEntryHandler_Update(t *testing.T) {
	mockUC := &mockEntryUsecase{
		GetByIDFunc: func(ctx context.Context, id uint) (*entity.Entry, error) {
			return storedEntry(), nil
		},
		UpdateFunc: func(ctx context.Context, entry *entity.Entry) (*entity.Entry, error) {
			return entry, nil
		},
	}
	router := newLedgerRouter(NewEntryHandler(mockUC), 1)

	body, _ := json.Marshal(gin.H{"description": "salary adjusted", "month": 4, "year": 2026, "value": "3700.00", "type": "INCOME"})
	req, _ := http.NewRequest(http.MethodPut, "/entries/10", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp api.EntryResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "salary adjusted", resp.Description)
	assert.Equal(t, 4, resp.Month)
	assert.True(t, resp.Value.Equal(decimal.RequireFromString("3700.00")))
}

func TestEntryHandler_Update_RuleViolation(t *testing.T) {
	mockUC := &mockEntryUsecase{
		GetByIDFunc: func(ctx context.Context, id uint) (*entity.Entry, error) {
			return storedEntry(), nil
		},
		UpdateFunc: func(ctx context.Context, entry *entity.Entry) (*entity.Entry, error) {
			return nil, usecase.ErrInvalidMonth
		},
	}
	router := newLedgerRouter(NewEntryHandler(mockUC), 1)

	body, _ := json.Marshal(gin.H{"description": "salary", "month": 13, "year": 2026, "value": "3500.00", "type": "INCOME"})
	req, _ := http.NewRequest(http.MethodPut, "/entries/10", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp api.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, usecase.ErrInvalidMonth.Error(), resp.Error)
}

func TestEntryHandler_UpdateStatus(t *testing.T) {
	tests := []struct {
		name           string
		body           gin.H
		expectedStatus int
	}{
		{"settle", gin.H{"status": "SETTLED"}, http.StatusOK},
		{"cancel", gin.H{"status": "CANCELED"}, http.StatusOK},
		{"back to pending", gin.H{"status": "PENDING"}, http.StatusOK},
		{"unknown status", gin.H{"status": "DONE"}, http.StatusBadRequest},
		{"missing status", gin.H{}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockEntryUsecase{
				GetByIDFunc: func(ctx context.Context, id uint) (*entity.Entry, error) {
					return storedEntry(), nil
				},
			}
			router := newLedgerRouter(NewEntryHandler(mockUC), 1)

			body, _ := json.Marshal(tt.body)
			req, _ := http.NewRequest(http.MethodPatch, "/entries/10/status", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestEntryHandler_Delete(t *testing.T) {
	deleted := false
	mockUC := &mockEntryUsecase{
		GetByIDFunc: func(ctx context.Context, id uint) (*entity.Entry, error) {
			return storedEntry(), nil
		},
		DeleteFunc: func(ctx context.Context, entry *entity.Entry) error {
			deleted = true
			return nil
		},
	}
	router := newLedgerRouter(NewEntryHandler(mockUC), 1)

	req, _ := http.NewRequest(http.MethodDelete, "/entries/10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, deleted)
}

func TestEntryHandler_Delete_ForeignEntryNeverReachesUsecase(t *testing.T) {
	deleted := false
	mockUC := &mockEntryUsecase{
		GetByIDFunc: func(ctx context.Context, id uint) (*entity.Entry, error) {
			return storedEntry(), nil // owned by user 1
		},
		DeleteFunc: func(ctx context.Context, entry *entity.Entry) error {
			deleted = true
			return nil
		},
	}
	router := newLedgerRouter(NewEntryHandler(mockUC), 2)

	req, _ := http.NewRequest(http.MethodDelete, "/entries/10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, deleted)
}

func TestEntryHandler_List(t *testing.T) {
	var captured *entity.Entry
	mockUC := &mockEntryUsecase{
		SearchFunc: func(ctx context.Context, filter *entity.Entry) ([]entity.Entry, error) {
			captured = filter
			return []entity.Entry{*storedEntry()}, nil
		},
	}
	router := newLedgerRouter(NewEntryHandler(mockUC), 1)

	req, _ := http.NewRequest(http.MethodGet, "/entries?description=sal&month=3&year=2026&type=INCOME", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	if assert.NotNil(t, captured) {
		assert.Equal(t, "sal", captured.Description)
		assert.Equal(t, 3, captured.Month)
		assert.Equal(t, 2026, captured.Year)
		assert.Equal(t, entity.EntryTypeIncome, captured.Type)
		assert.Equal(t, uint(1), captured.UserID)
	}

	var resp []api.EntryResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
}

func TestEntryHandler_List_EmptyResultIsEmptyArray(t *testing.T) {
	mockUC := &mockEntryUsecase{
		SearchFunc: func(ctx context.Context, filter *entity.Entry) ([]entity.Entry, error) {
			return nil, nil
		},
	}
	router := newLedgerRouter(NewEntryHandler(mockUC), 1)

	req, _ := http.NewRequest(http.MethodGet, "/entries", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestEntryHandler_Balance(t *testing.T) {
	tests := []struct {
		name    string
		balance string
	}{
		{"positive", "70.00"},
		{"negative", "-50.00"},
		{"zero", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockEntryUsecase{
				BalanceFunc: func(ctx context.Context, userID uint) (decimal.Decimal, error) {
					return decimal.RequireFromString(tt.balance), nil
				},
			}
			router := newLedgerRouter(NewEntryHandler(mockUC), 1)

			req, _ := http.NewRequest(http.MethodGet, "/balance", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)

			var resp api.BalanceResponse
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.True(t, resp.Balance.Equal(decimal.RequireFromString(tt.balance)))
		})
	}
}
