package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aesirglt/AdaTech/internal/api/shared"
	"github.com/aesirglt/AdaTech/internal/platform/logger"
	"github.com/aesirglt/AdaTech/internal/service/auth"
)

// Authenticator issues tokens for a login/password pair.
type Authenticator interface {
	Login(ctx context.Context, login, password string) (auth.Token, error)
}

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	authenticator Authenticator
	logger        *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(authenticator Authenticator, logger *slog.Logger) *AuthHandler {
	if authenticator == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("authenticator cannot be nil for AuthHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		authenticator: authenticator,
		logger:        logger.With(slog.String("component", "auth_handler")),
	}
}

// Login handles the POST /auth/login endpoint.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleDecodeError(w, r, err)
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Validation error", err,
			shared.WithFieldErrors(shared.ValidationFields(err)))
		return
	}

	token, err := h.authenticator.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		log.Debug("login failed")
		HandleAPIError(w, r, err, shared.WithElevatedLogLevel())
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newLoginResponse(token.Value, token.ExpiresAt))
}
