package auth

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/park-seva/helpcenter-service/internal/config"
)

// ErrInvalidCredentials rejects a failed operator login.
var ErrInvalidCredentials = errors.New("invalid credentials")

// OperatorAuthenticator validates the single configured operator account and
// issues bearer tokens for the console.
type OperatorAuthenticator struct {
	username     string
	passwordHash []byte
	tokens       *TokenManager
}

// NewOperatorAuthenticator hashes the configured password once at startup.
func NewOperatorAuthenticator(cfg config.AuthConfig) (*OperatorAuthenticator, error) {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.OperatorPassword), cost)
	if err != nil {
		return nil, err
	}
	return &OperatorAuthenticator{
		username:     cfg.OperatorUsername,
		passwordHash: hash,
		tokens:       NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
	}, nil
}

// Login verifies the credentials and returns a signed token.
func (a *OperatorAuthenticator) Login(username, password string) (string, time.Time, error) {
	if username != a.username {
		return "", time.Time{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}
	return a.tokens.GenerateToken(username)
}

// TokenManager exposes the underlying manager for middleware wiring.
func (a *OperatorAuthenticator) TokenManager() *TokenManager {
	return a.tokens
}
