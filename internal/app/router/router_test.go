package router

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	authhandler "finance_backend/internal/feature/auth/transport/handler"
	ledgerhandler "finance_backend/internal/feature/ledger/transport/handler"
	jwtmw "finance_backend/internal/platform/jwt"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestRouter() *gin.Engine {
	// Handlers with nil usecases: the routes under test never reach them.
	return NewRouter(authhandler.NewAuthHandler(nil), ledgerhandler.NewEntryHandler(nil),
		jwtmw.NewGenerator("router-test-secret", time.Minute))
}

// TestNewRouter_HealthIsPublic verifies the health probe needs no token.
func TestNewRouter_HealthIsPublic(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}

// TestNewRouter_LedgerRoutesRequireAuth verifies every ledger route rejects
// unauthenticated requests before any handler logic runs.
func TestNewRouter_LedgerRoutesRequireAuth(t *testing.T) {
	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/me"},
		{http.MethodPost, "/entries"},
		{http.MethodGet, "/entries"},
		{http.MethodGet, "/entries/1"},
		{http.MethodPut, "/entries/1"},
		{http.MethodPatch, "/entries/1/status"},
		{http.MethodDelete, "/entries/1"},
		{http.MethodGet, "/balance"},
	}

	router := newTestRouter()

	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(r.method, r.path, nil)
			router.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
			}
		})
	}
}

// TestThrottleByIP verifies requests over the per-IP limit get a 429.
func TestThrottleByIP(t *testing.T) {
	router := newTestRouter()

	var lastCode int
	for i := 0; i < loginAttemptsPerMinute+1; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		router.ServeHTTP(w, req)
		lastCode = w.Code
	}

	if lastCode != http.StatusTooManyRequests {
		t.Errorf("expected status %d after exceeding the limit, got %d", http.StatusTooManyRequests, lastCode)
	}
}
