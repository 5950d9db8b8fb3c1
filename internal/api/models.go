package api

import (
	"time"

	"github.com/aesirglt/AdaTech/internal/domain"
)

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Login    string `json:"login"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse defines the successful response for the login endpoint.
type LoginResponse struct {
	// Token is the JWT used for API authorization
	Token string `json:"token"`

	// ExpiresAt is the RFC 3339 timestamp when the token expires
	ExpiresAt string `json:"expires_at"`
}

// CardRequest is the body of POST, PUT and PATCH /cards. A field left out
// of the JSON (or sent as null) stays nil.
type CardRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	List    *string `json:"list"`
}

// Draft converts the request into the domain draft.
func (r CardRequest) Draft() domain.CardDraft {
	return domain.CardDraft{
		Title:   r.Title,
		Content: r.Content,
		List:    r.List,
	}
}

// CardResponse represents the response data for a card.
type CardResponse struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	List    string `json:"list"`
}

func cardToResponse(card domain.Card) CardResponse {
	return CardResponse{
		ID:      card.ID.String(),
		Title:   card.Title,
		Content: card.Content,
		List:    card.List,
	}
}

func cardsToResponse(cards []domain.Card) []CardResponse {
	out := make([]CardResponse, 0, len(cards))
	for _, card := range cards {
		out = append(out, cardToResponse(card))
	}
	return out
}

func newLoginResponse(token string, expiresAt time.Time) LoginResponse {
	return LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	}
}
