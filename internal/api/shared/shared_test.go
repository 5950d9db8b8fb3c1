package shared

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aesirglt/AdaTech/internal/platform/logger"
)

func TestTraceID(t *testing.T) {
	ctx := SetTraceID(context.Background())

	traceID := GetTraceID(ctx)
	assert.Len(t, traceID, TraceIDLength*2)
	assert.NotEqual(t, traceID, GetTraceID(SetTraceID(context.Background())))
	assert.Empty(t, GetTraceID(context.Background()))
	assert.Len(t, generateFallbackTraceID(), TraceIDLength*2)
}

func TestSubject(t *testing.T) {
	_, ok := GetSubject(context.Background())
	assert.False(t, ok)

	subject, ok := GetSubject(WithSubject(context.Background(), "letscode"))
	assert.True(t, ok)
	assert.Equal(t, "letscode", subject)
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Title string `json:"title"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"title":"x"}`, false},
		{"malformed", `{"title":`, true},
		{"empty", ``, true},
		{"trailing value", `{"title":"x"}{"title":"y"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload
			err := DecodeJSON(req, &p)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "x", p.Title)
		})
	}

	t.Run("oversized body", func(t *testing.T) {
		body := `{"title":"` + strings.Repeat("x", MaxBodyBytes) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		var p payload
		assert.ErrorIs(t, DecodeJSON(req, &p), ErrBodyTooLarge)
	})

	t.Run("empty body sentinel", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		var p payload
		assert.ErrorIs(t, DecodeJSON(req, &p), ErrEmptyBody)
	})
}

func TestValidateRequestAndFields(t *testing.T) {
	type login struct {
		Login string `validate:"required"`
	}

	err := ValidateRequest(login{})
	require.Error(t, err)

	fields := ValidationFields(err)
	require.Contains(t, fields, "Login")
	assert.Contains(t, fields["Login"][0], "required")

	assert.NoError(t, ValidateRequest(login{Login: "x"}))
	assert.Nil(t, ValidationFields(errors.New("plain")))
}

func TestRespondWithErrorAndLog(t *testing.T) {
	var logs bytes.Buffer
	ctx := logger.WithLogger(SetTraceID(context.Background()), logger.New(&logs, "debug"))
	req := httptest.NewRequest(http.MethodPut, "/cards/1", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	RespondWithErrorAndLog(rec, req, http.StatusUnprocessableEntity, "card failed validation",
		errors.New("password=hunter2"),
		WithFieldErrors(map[string][]string{"Title": {"Title cant be empty."}}))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "card failed validation", body.Error)
	assert.Equal(t, []string{"Title cant be empty."}, body.Errors["Title"])
	assert.Equal(t, GetTraceID(ctx), body.TraceID)

	assert.Contains(t, logs.String(), "API error response")
	assert.NotContains(t, logs.String(), "hunter2")
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRespondWithError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	RespondWithError(rec, req, http.StatusUnauthorized, "Invalid token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid token"}`, rec.Body.String())
}
