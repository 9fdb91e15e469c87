package service

import (
	"time"

	"github.com/spec-kit/triage-service/internal/auth"
	"github.com/spec-kit/triage-service/internal/config"
	apperrors "github.com/spec-kit/triage-service/pkg/errorutil"
)

// AuthService authenticates the single configured admin account for
// the dashboard endpoints. The plaintext password from config is
// hashed once at construction and only the hash is retained.
type AuthService struct {
	tokens     *auth.TokenManager
	adminEmail string
	adminHash  string
}

// NewAuthService builds the service from auth configuration.
func NewAuthService(cfg config.AuthConfig) (*AuthService, error) {
	hash, err := auth.HashPassword(cfg.AdminPassword, cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	return &AuthService{
		tokens:     auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		adminEmail: cfg.AdminEmail,
		adminHash:  hash,
	}, nil
}

// Login verifies the admin credentials and issues an access token.
func (s *AuthService) Login(email, password string) (string, time.Time, error) {
	if email != s.adminEmail {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(s.adminHash, password); err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	return s.tokens.GenerateToken(email)
}

// TokenManager exposes the manager for middleware construction.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}
