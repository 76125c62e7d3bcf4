package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"finance_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength is the minimum accepted password length.
	minPasswordLength = 8

	// maxActiveSessions caps the number of concurrent refresh sessions per user.
	// When the cap is reached, the oldest session is evicted.
	maxActiveSessions = 5
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user to the storage.
	// It returns ErrEmailAlreadyRegistered if the email is already taken.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves a user matching the specified email address.
	// It returns ErrUserNotFound if the user does not exist.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves a user matching the specified ID.
	// It returns ErrUserNotFound if the user does not exist.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// ExistsByEmail reports whether a user with the given email is already stored.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// JWTGenerator defines the interface for access token generation.
type JWTGenerator interface {
	// GenerateToken creates a signed JWT token for the given user.
	GenerateToken(userID uint, email string) (string, error)
}

// TokenPair carries the credentials issued on login or refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // Access token lifetime in seconds
}

// authUsecase implements the authentication business logic.
type authUsecase struct {
	users        UserRepository
	sessions     SessionRepository
	jwtGenerator JWTGenerator
	accessTTL    time.Duration
	refreshTTL   time.Duration
}

// NewAuthUsecase creates a new authUsecase instance with its collaborators
// passed explicitly. There is no ambient registry: wiring happens in main.
func NewAuthUsecase(users UserRepository, sessions SessionRepository, jwtGenerator JWTGenerator,
	accessTTL, refreshTTL time.Duration) *authUsecase {
	return &authUsecase{
		users:        users,
		sessions:     sessions,
		jwtGenerator: jwtGenerator,
		accessTTL:    accessTTL,
		refreshTTL:   refreshTTL,
	}
}

// validatePassword checks that the password meets the security requirements.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// ValidateEmail checks that no user is registered with the given email.
// It returns ErrEmailAlreadyRegistered when the store reports existence,
// and has no side effect. The unique index on the users table remains the
// authoritative guard against concurrent registrations.
func (u *authUsecase) ValidateEmail(ctx context.Context, email string) error {
	exists, err := u.users.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return ErrEmailAlreadyRegistered
	}
	return nil
}

// Signup registers a new user with a hashed password and returns the
// persisted user carrying its store-assigned ID.
func (u *authUsecase) Signup(ctx context.Context, name, email, password string) (*entity.User, error) {
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if err := u.ValidateEmail(ctx, email); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{Name: name, Email: email, Password: string(hashed)}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and issues an access/refresh token pair.
// It returns ErrUserNotFound when no user has the email and
// ErrInvalidPassword on credential mismatch; transport must present both
// identically. A bcrypt comparison runs even when the user does not exist
// to keep the two failures indistinguishable by timing.
func (u *authUsecase) Login(ctx context.Context, email, password, userAgent, ipAddress string) (*TokenPair, error) {
	user, err := u.users.FindByEmail(ctx, email)

	// Dummy hash so bcrypt.CompareHashAndPassword always runs.
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = user.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if err != nil {
		return nil, ErrUserNotFound
	}
	if compareErr != nil {
		return nil, ErrInvalidPassword
	}

	return u.issueTokens(ctx, user, userAgent, ipAddress)
}

// Refresh rotates a refresh session and issues a fresh token pair.
// A revoked token presented again means it leaked or was replayed; every
// session of that user is revoked in response, forcing a fresh login.
func (u *authUsecase) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	session, err := u.sessions.FindByID(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if session.IsRevoked() {
		if err := u.sessions.RevokeAllByUserID(ctx, session.UserID); err != nil {
			return nil, err
		}
		return nil, ErrSessionRevoked
	}
	if session.IsExpired() {
		return nil, ErrSessionExpired
	}

	user, err := u.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	// Rotation: the presented token is single use.
	if err := u.sessions.Revoke(ctx, session.ID); err != nil {
		return nil, err
	}

	return u.issueTokens(ctx, user, session.UserAgent, session.IPAddress)
}

// Logout revokes the refresh session identified by the given token.
func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	return u.sessions.Revoke(ctx, refreshToken)
}

// GetUser retrieves a user by ID. It returns ErrUserNotFound on absence.
func (u *authUsecase) GetUser(ctx context.Context, id uint) (*entity.User, error) {
	return u.users.FindByID(ctx, id)
}

// issueTokens generates an access token and creates a refresh session,
// evicting the oldest session when the per-user cap is exceeded.
func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User, userAgent, ipAddress string) (*TokenPair, error) {
	accessToken, err := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	refreshToken, err := newSessionID()
	if err != nil {
		return nil, err
	}

	count, err := u.sessions.CountByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if count >= maxActiveSessions {
		if err := u.sessions.DeleteOldestByUserID(ctx, user.ID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	session := &entity.Session{
		ID:        refreshToken,
		UserID:    user.ID,
		UserAgent: userAgent,
		IPAddress: ipAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.refreshTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.accessTTL.Seconds()),
	}, nil
}

// newSessionID returns a cryptographically random 64-character hex string.
func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}
