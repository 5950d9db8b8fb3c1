package middleware

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aesirglt/AdaTech/internal/api/shared"
	"github.com/aesirglt/AdaTech/internal/platform/logger"
	"github.com/aesirglt/AdaTech/internal/service/auth"
)

type stubJWTService struct {
	claims *auth.Claims
	err    error
}

func (s stubJWTService) GenerateToken(context.Context, string) (auth.Token, error) {
	return auth.Token{}, nil
}

func (s stubJWTService) ValidateToken(context.Context, string) (*auth.Claims, error) {
	return s.claims, s.err
}

func subjectEcho(w http.ResponseWriter, r *http.Request) {
	subject, _ := GetSubject(r)
	_, _ = io.WriteString(w, subject)
}

func TestAuthenticate(t *testing.T) {
	valid := stubJWTService{claims: &auth.Claims{Subject: "letscode", ExpiresAt: time.Now().Add(time.Hour)}}

	tests := []struct {
		name       string
		service    auth.JWTService
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid token", valid, "Bearer abc", http.StatusOK, "letscode"},
		{"lowercase scheme", valid, "bearer abc", http.StatusOK, "letscode"},
		{"missing header", valid, "", http.StatusUnauthorized, "Authorization header required"},
		{"wrong scheme", valid, "Basic abc", http.StatusUnauthorized, "Invalid authorization format"},
		{"expired", stubJWTService{err: auth.ErrExpiredToken}, "Bearer abc", http.StatusUnauthorized, "Token expired"},
		{"invalid", stubJWTService{err: auth.ErrInvalidToken}, "Bearer abc", http.StatusUnauthorized, "Invalid token"},
		{"unexpected", stubJWTService{err: io.ErrUnexpectedEOF}, "Bearer abc", http.StatusInternalServerError, "Authentication error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthMiddleware(tt.service).Authenticate(http.HandlerFunc(subjectEcho))
			req := httptest.NewRequest(http.MethodGet, "/cards", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestNewAuthMiddlewareRequiresService(t *testing.T) {
	assert.Panics(t, func() { NewAuthMiddleware(nil) })
}

func TestTraceMiddleware(t *testing.T) {
	var logs bytes.Buffer
	base := logger.New(&logs, "debug")

	var seenTrace string
	handler := TraceMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTrace = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cards", nil))

	require.NotEmpty(t, seenTrace)
	assert.Equal(t, seenTrace, rec.Header().Get(shared.TraceIDHeader))
	assert.Contains(t, logs.String(), `"trace_id":"`+seenTrace+`"`)
	assert.Contains(t, logs.String(), "inside handler")
}

func TestCardAudit(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		body      string
		wantLog   bool
		wantTitle string
	}{
		{"put logs title", http.MethodPut, `{"title":"CardTest","content":"c","list":"l"}`, true, "CardTest"},
		{"patch without title", http.MethodPatch, `{"list":"done"}`, true, ""},
		{"delete logs removal", http.MethodDelete, "", true, removalTitle},
		{"get is not audited", http.MethodGet, "", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			log := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

			var handlerBody string
			router := chi.NewRouter()
			router.Route("/cards/{id}", func(r chi.Router) {
				r.Use(CardAudit("id"))
				r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
					raw, _ := io.ReadAll(r.Body)
					handlerBody = string(raw)
				})
			})

			req := httptest.NewRequest(tt.method, "/cards/42", strings.NewReader(tt.body))
			req = req.WithContext(logger.WithLogger(req.Context(), log))
			router.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.body, handlerBody, "handler must still see the body")
			if !tt.wantLog {
				assert.NotContains(t, logs.String(), "card action")
				return
			}
			assert.Contains(t, logs.String(), "card action")
			assert.Contains(t, logs.String(), `"card_id":"42"`)
			assert.Contains(t, logs.String(), `"title":"`+tt.wantTitle+`"`)
			assert.Contains(t, logs.String(), `"method":"`+tt.method+`"`)
		})
	}
}

func TestCardAudit_KeepsOversizedBodyIntact(t *testing.T) {
	body := `{"title":"` + strings.Repeat("x", shared.MaxBodyBytes) + `"}`

	var handlerBody []byte
	router := chi.NewRouter()
	router.With(CardAudit("id")).Put("/cards/{id}", func(w http.ResponseWriter, r *http.Request) {
		handlerBody, _ = io.ReadAll(r.Body)
	})

	req := httptest.NewRequest(http.MethodPut, "/cards/42", strings.NewReader(body))
	router.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, len(body), len(handlerBody))
	assert.Equal(t, body, string(handlerBody))
}
