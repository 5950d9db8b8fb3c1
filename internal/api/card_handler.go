package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/aesirglt/AdaTech/internal/api/shared"
	"github.com/aesirglt/AdaTech/internal/failure"
	"github.com/aesirglt/AdaTech/internal/fp/result"
	"github.com/aesirglt/AdaTech/internal/platform/logger"
	"github.com/aesirglt/AdaTech/internal/redact"
	"github.com/aesirglt/AdaTech/internal/service"
)

// CardHandler handles card-related HTTP requests
type CardHandler struct {
	cardService service.CardService
	logger      *slog.Logger
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(cardService service.CardService, logger *slog.Logger) *CardHandler {
	if cardService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cardService cannot be nil for CardHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CardHandler{
		cardService: cardService,
		logger:      logger.With(slog.String("component", "card_handler")),
	}
}

// CreateCard handles POST /cards requests.
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	req, ok := h.decodeCard(w, r, log)
	if !ok {
		return
	}

	respond(w, r, http.StatusCreated, h.cardService.CreateDraft(r.Context(), draftFromRequest(req)), cardToResponse)
}

// ListCards handles GET /cards requests.
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, h.cardService.GetAll(r.Context()), cardsToResponse)
}

// GetCard handles GET /cards/{id} requests.
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	respond(w, r, http.StatusOK, h.cardService.Get(r.Context(), id), cardToResponse)
}

// UpdateCard handles PUT /cards/{id} requests. The body replaces every field.
func (h *CardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeCard(w, r, log)
	if !ok {
		return
	}

	respond(w, r, http.StatusOK, h.cardService.Replace(r.Context(), id, draftFromRequest(req)), cardToResponse)
}

// PatchCard handles PATCH /cards/{id} requests. Only supplied fields change.
func (h *CardHandler) PatchCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeCard(w, r, log)
	if !ok {
		return
	}
	respond(w, r, http.StatusOK, h.cardService.Patch(r.Context(), id, draftFromRequest(req)), cardToResponse)
}

// DeleteCard handles DELETE /cards/{id} requests.
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	respond(w, r, http.StatusOK, h.cardService.Remove(r.Context(), id), func(done result.Done) result.Done {
		return done
	})
}

// decodeCard reads the card body. A JSON null body decodes to a nil request.
// It writes a 400 response and returns false on malformed input.
func (h *CardHandler) decodeCard(w http.ResponseWriter, r *http.Request, log *slog.Logger) (*CardRequest, bool) {
	var req *CardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("invalid card request body", slog.String("error", redact.Error(err)))
		HandleDecodeError(w, r, err)
		return nil, false
	}
	return req, true
}

// pathID parses the card id route parameter, writing a 400 response on failure.
func (h *CardHandler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := getPathUUID(r, CardIDParam)
	if err != nil {
		HandleAPIError(w, r, err)
		return uuid.Nil, false
	}
	return id, true
}

// respond writes a successful Result with status after rendering it, or the
// mapped error response for a failure.
func respond[T, B any](w http.ResponseWriter, r *http.Request, status int, res result.Result[T], render func(T) B) {
	res.
		OnSuccess(func(value T) {
			shared.RespondWithJSON(w, r, status, render(value))
		}).
		OnFailure(func(f *failure.Failure) {
			HandleFailure(w, r, f)
		})
}
