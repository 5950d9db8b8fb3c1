package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"

	"github.com/aesirglt/AdaTech/internal/config"
	"github.com/aesirglt/AdaTech/internal/platform/logger"
)

// Authenticator checks the shared API credential and issues access tokens.
type Authenticator struct {
	login        string
	passwordHash string
	verifier     PasswordVerifier
	tokens       JWTService
	logger       *slog.Logger
}

// NewAuthenticator creates an Authenticator for the credential in cfg.
// If logger is nil, a default logger will be used.
func NewAuthenticator(
	cfg config.AuthConfig,
	verifier PasswordVerifier,
	tokens JWTService,
	logger *slog.Logger,
) (*Authenticator, error) {
	if cfg.Login == "" || cfg.PasswordHash == "" {
		return nil, fmt.Errorf("login and password hash must be configured")
	}
	if verifier == nil {
		return nil, fmt.Errorf("password verifier cannot be nil")
	}
	if tokens == nil {
		return nil, fmt.Errorf("jwt service cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Authenticator{
		login:        cfg.Login,
		passwordHash: cfg.PasswordHash,
		verifier:     verifier,
		tokens:       tokens,
		logger:       logger.With(slog.String("component", "authenticator")),
	}, nil
}

// Login returns a token for the configured credential, or ErrInvalidCredentials.
// The password hash is always checked so a wrong login and a wrong password
// take the same time.
func (a *Authenticator) Login(ctx context.Context, login, password string) (Token, error) {
	log := logger.FromContextOrDefault(ctx, a.logger)

	loginMatches := subtle.ConstantTimeCompare([]byte(login), []byte(a.login)) == 1
	passwordErr := a.verifier.Compare(a.passwordHash, password)

	if !loginMatches || passwordErr != nil {
		log.Warn("login rejected", slog.Bool("login_matches", loginMatches))
		return Token{}, ErrInvalidCredentials
	}

	token, err := a.tokens.GenerateToken(ctx, a.login)
	if err != nil {
		return Token{}, err
	}

	log.Info("login succeeded", slog.Time("expires_at", token.ExpiresAt))
	return token, nil
}
