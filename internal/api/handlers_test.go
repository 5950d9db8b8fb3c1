package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/aesirglt/AdaTech/internal/api/middleware"
	"github.com/aesirglt/AdaTech/internal/api/shared"
	"github.com/aesirglt/AdaTech/internal/config"
	"github.com/aesirglt/AdaTech/internal/domain"
	"github.com/aesirglt/AdaTech/internal/platform/memory"
	"github.com/aesirglt/AdaTech/internal/service"
	"github.com/aesirglt/AdaTech/internal/service/auth"
)

const (
	testLogin    = "letscode"
	testPassword = "lets@123"
)

// testServer wires the handlers the same way the server binary does, over an
// in-memory card table.
type testServer struct {
	t      *testing.T
	router http.Handler
	table  *memory.Table[domain.Card]
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	hash, err := auth.HashPassword(testPassword, bcrypt.MinCost)
	require.NoError(t, err)

	authCfg := config.AuthConfig{
		Login:                testLogin,
		PasswordHash:         hash,
		JWTSecret:            "test-secret-that-is-at-least-32-bytes-long",
		TokenLifetimeMinutes: 60,
	}

	jwtService, err := auth.NewJWTService(authCfg)
	require.NoError(t, err)

	authenticator, err := auth.NewAuthenticator(authCfg, auth.NewBcryptVerifier(), jwtService, logger)
	require.NoError(t, err)

	table := memory.NewCardTable()
	cardService, err := service.NewCardServiceForTable(table, logger)
	require.NoError(t, err)

	authHandler := NewAuthHandler(authenticator, logger)
	cardHandler := NewCardHandler(cardService, logger)
	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	r := chi.NewRouter()
	r.Use(middleware.TraceMiddleware(logger))
	r.Post("/auth/login", authHandler.Login)
	r.Route("/cards", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Post("/", cardHandler.CreateCard)
		r.Get("/", cardHandler.ListCards)
		r.Route("/{"+CardIDParam+"}", func(r chi.Router) {
			r.Use(middleware.CardAudit(CardIDParam))
			r.Get("/", cardHandler.GetCard)
			r.Put("/", cardHandler.UpdateCard)
			r.Patch("/", cardHandler.PatchCard)
			r.Delete("/", cardHandler.DeleteCard)
		})
	})

	return &testServer{t: t, router: r, table: table}
}

func (s *testServer) do(method, path, token, body string) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func (s *testServer) login() string {
	s.t.Helper()

	rr := s.do(http.MethodPost, "/auth/login", "",
		`{"login":"`+testLogin+`","password":"`+testPassword+`"}`)
	require.Equal(s.t, http.StatusOK, rr.Code, rr.Body.String())

	var resp LoginResponse
	require.NoError(s.t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(s.t, resp.Token)
	return resp.Token
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{
			name:       "valid credentials",
			body:       `{"login":"letscode","password":"lets@123"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong password",
			body:       `{"login":"letscode","password":"nope"}`,
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid login or password",
		},
		{
			name:       "wrong login",
			body:       `{"login":"someone","password":"lets@123"}`,
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid login or password",
		},
		{
			name:       "missing password",
			body:       `{"login":"letscode"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Validation error",
		},
		{
			name:       "malformed body",
			body:       `{"login":`,
			wantStatus: http.StatusBadRequest,
			wantError:  msgInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := s.do(http.MethodPost, "/auth/login", "", tt.body)
			assert.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())

			if tt.wantError == "" {
				resp := decode[LoginResponse](t, rr)
				assert.NotEmpty(t, resp.Token)
				assert.NotEmpty(t, resp.ExpiresAt)
				return
			}
			errResp := decode[shared.ErrorResponse](t, rr)
			assert.Equal(t, tt.wantError, errResp.Error)
		})
	}
}

func TestCards_RequireToken(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/cards", "/cards/" + uuid.NewString()} {
		rr := s.do(http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)

		rr = s.do(http.MethodGet, path, "not-a-jwt", "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
	}
}

func TestCards_Lifecycle(t *testing.T) {
	s := newTestServer(t)
	token := s.login()

	rr := s.do(http.MethodPost, "/cards", token,
		`{"title":"CardTest","content":"Content test","list":"list test"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decode[CardResponse](t, rr)
	require.NotEqual(t, uuid.Nil.String(), created.ID)
	assert.Equal(t, "CardTest", created.Title)
	assert.Equal(t, "Content test", created.Content)
	assert.Equal(t, "list test", created.List)

	rr = s.do(http.MethodGet, "/cards", token, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []CardResponse{created}, decode[[]CardResponse](t, rr))

	rr = s.do(http.MethodGet, "/cards/"+created.ID, token, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, created, decode[CardResponse](t, rr))

	rr = s.do(http.MethodPut, "/cards/"+created.ID, token,
		`{"title":"Renamed","content":"New content","list":"done"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	replaced := decode[CardResponse](t, rr)
	assert.Equal(t, CardResponse{ID: created.ID, Title: "Renamed", Content: "New content", List: "done"}, replaced)

	rr = s.do(http.MethodPatch, "/cards/"+created.ID, token, `{"list":"doing"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	patched := decode[CardResponse](t, rr)
	assert.Equal(t, "Renamed", patched.Title)
	assert.Equal(t, "doing", patched.List)

	rr = s.do(http.MethodDelete, "/cards/"+created.ID, token, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true}`, rr.Body.String())

	rr = s.do(http.MethodGet, "/cards", token, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
	assert.Equal(t, 0, s.table.Len())
}

func TestCreateCard_Rejections(t *testing.T) {
	s := newTestServer(t)
	token := s.login()

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
		wantFields map[string][]string
	}{
		{
			name:       "null body",
			body:       `null`,
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "Card cannot be null",
		},
		{
			name:       "missing fields",
			body:       `{"title":"CardTest"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "card failed validation",
			wantFields: map[string][]string{
				"Content": {"Content cant be null."},
				"List":    {"List cant be null."},
			},
		},
		{
			name:       "empty and missing fields together",
			body:       `{"title":"","content":"c"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "card failed validation",
			wantFields: map[string][]string{
				"Title": {"Title cant be empty."},
				"List":  {"List cant be null."},
			},
		},
		{
			name:       "empty fields",
			body:       `{"title":"","content":"Content test","list":""}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "card failed validation",
			wantFields: map[string][]string{
				"Title": {"Title cant be empty."},
				"List":  {"List cant be empty."},
			},
		},
		{
			name:       "malformed json",
			body:       `{"title":`,
			wantStatus: http.StatusBadRequest,
			wantError:  msgInvalidRequest,
		},
		{
			name:       "oversized body",
			body:       `{"title":"` + strings.Repeat("x", shared.MaxBodyBytes) + `","content":"c","list":"l"}`,
			wantStatus: http.StatusRequestEntityTooLarge,
			wantError:  msgBodyTooLarge,
		},
		{
			name:       "empty body",
			body:       "",
			wantStatus: http.StatusBadRequest,
			wantError:  msgInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := s.do(http.MethodPost, "/cards", token, tt.body)
			require.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())

			errResp := decode[shared.ErrorResponse](t, rr)
			assert.Equal(t, tt.wantError, errResp.Error)
			assert.Equal(t, tt.wantFields, errResp.Errors)
		})
	}

	assert.Equal(t, 0, s.table.Len(), "rejected requests must not write")
}

func TestCardByID_Errors(t *testing.T) {
	s := newTestServer(t)
	token := s.login()
	missing := "/cards/" + uuid.NewString()
	body := `{"title":"a","content":"b","list":"c"}`

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"get unknown", http.MethodGet, missing, "", http.StatusNotFound},
		{"put unknown", http.MethodPut, missing, body, http.StatusNotFound},
		{"patch unknown", http.MethodPatch, missing, `{"title":"x"}`, http.StatusNotFound},
		{"delete unknown", http.MethodDelete, missing, "", http.StatusNotFound},
		{"get bad id", http.MethodGet, "/cards/not-a-uuid", "", http.StatusBadRequest},
		{"put bad id", http.MethodPut, "/cards/not-a-uuid", body, http.StatusBadRequest},
		{"delete bad id", http.MethodDelete, "/cards/not-a-uuid", "", http.StatusBadRequest},
		{"put unknown partial", http.MethodPut, missing, `{"title":"x"}`, http.StatusNotFound},
		{"put unknown null body", http.MethodPut, missing, "null", http.StatusNotFound},
		{"patch unknown null body", http.MethodPatch, missing, "null", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := s.do(tt.method, tt.path, token, tt.body)
			assert.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
		})
	}
}

func TestUpdateCard_InvalidLeavesCardUntouched(t *testing.T) {
	s := newTestServer(t)
	token := s.login()

	rr := s.do(http.MethodPost, "/cards", token,
		`{"title":"CardTest","content":"Content test","list":"list test"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	created := decode[CardResponse](t, rr)

	rr = s.do(http.MethodPut, "/cards/"+created.ID, token, `{"title":"","content":"x","list":"y"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	errResp := decode[shared.ErrorResponse](t, rr)
	assert.Equal(t, map[string][]string{"Title": {"Title cant be empty."}}, errResp.Errors)

	rr = s.do(http.MethodPut, "/cards/"+created.ID, token, `{"title":"","content":"x"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	errResp = decode[shared.ErrorResponse](t, rr)
	assert.Equal(t, map[string][]string{
		"Title": {"Title cant be empty."},
		"List":  {"List cant be null."},
	}, errResp.Errors)

	rr = s.do(http.MethodPatch, "/cards/"+created.ID, token, `{"content":""}`)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = s.do(http.MethodPatch, "/cards/"+created.ID, token, "null")
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, "Card cannot be null", decode[shared.ErrorResponse](t, rr).Error)

	rr = s.do(http.MethodGet, "/cards/"+created.ID, token, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, created, decode[CardResponse](t, rr))
}
