package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aesirglt/AdaTech/internal/domain"
	"github.com/aesirglt/AdaTech/internal/fp/option"
)

// CardIDParam is the chi route parameter holding a card id.
const CardIDParam = "id"

// getPathUUID extracts and parses a UUID from the URL path parameters.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, fmt.Errorf("%w: %s is required", errInvalidID, paramName)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s: %v", errInvalidID, paramName, err)
	}

	return id, nil
}

// draftFromRequest turns a decoded body into the draft handed to the service.
// A JSON null body yields None.
func draftFromRequest(req *CardRequest) option.Option[domain.CardDraft] {
	return option.Map(option.FromPtr(req), CardRequest.Draft)
}
