// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"finance_backend/internal/api"
	"finance_backend/internal/feature/auth/domain/entity"
	"finance_backend/internal/feature/auth/usecase"
	jwtmw "finance_backend/internal/platform/jwt"
)

// AuthUsecase defines the authentication operations consumed by the HTTP layer.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	// Signup registers a new user and returns it with its assigned ID.
	Signup(ctx context.Context, name, email, password string) (*entity.User, error)
	// Login authenticates a user and issues a token pair on success.
	Login(ctx context.Context, email, password, userAgent, ipAddress string) (*usecase.TokenPair, error)
	// Refresh rotates a refresh session and issues a fresh token pair.
	Refresh(ctx context.Context, refreshToken string) (*usecase.TokenPair, error)
	// Logout revokes the refresh session for the given token.
	Logout(ctx context.Context, refreshToken string) error
	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, id uint) (*entity.User, error)
}

// AuthHandler handles the HTTP requests for authentication operations.
// It depends on the AuthUsecase interface and speaks JSON.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup handles the user registration endpoint.
// - Binds the request JSON and returns 400 on validation failure
// - Returns 409 with a generic body when the user cannot be created
// - Returns 201 with the created user on success
func (h *AuthHandler) Signup(c *gin.Context) {
	var req api.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	user, err := h.auth.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		// Do not expose the actual error, to prevent user enumeration.
		slog.Warn("signup failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "signup failed"})
		return
	}
	slog.Info("user signup successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.UserResponse{ID: user.ID, Name: user.Name, Email: user.Email})
}

// Login handles the user login endpoint.
// - Binds the request JSON and returns 400 on validation failure
// - Returns the same 401 for unknown email and wrong password
// - Returns 200 with an access/refresh token pair on success
func (h *AuthHandler) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	pair, err := h.auth.Login(c.Request.Context(), req.Email, req.Password,
		c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		// ErrUserNotFound and ErrInvalidPassword stay distinguishable in the
		// log only; the response never reveals which one occurred.
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid email or password"})
		return
	}
	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	})
}

// Refresh handles the token refresh endpoint. The presented refresh token
// is single use: a fresh pair is issued and the old session revoked.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req api.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	pair, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		slog.Warn("token refresh failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid refresh token"})
		return
	}
	c.JSON(http.StatusOK, api.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	})
}

// Logout handles the logout endpoint by revoking the refresh session.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req api.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	if err := h.auth.Logout(c.Request.Context(), req.RefreshToken); err != nil &&
		!errors.Is(err, usecase.ErrSessionNotFound) {
		slog.Error("logout failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}

// Me handles GET /me for the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.auth.GetUser(c.Request.Context(), c.GetUint(jwtmw.ContextUserID))
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
			return
		}
		slog.Error("user lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(http.StatusOK, api.UserResponse{ID: user.ID, Name: user.Name, Email: user.Email})
}
