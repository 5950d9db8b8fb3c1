package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aesirglt/AdaTech/internal/api/shared"
	"github.com/aesirglt/AdaTech/internal/platform/logger"
)

// removalTitle is logged in place of a title for DELETE requests.
const removalTitle = "removal"

// CardAudit logs every card modification (PUT, PATCH and DELETE) before the
// handler runs, with the card id from the route parameter idParam and the
// title from the request body when one is sent. The body is restored so the
// handler can still decode it.
func CardAudit(idParam string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPut, http.MethodPatch, http.MethodDelete:
			default:
				next.ServeHTTP(w, r)
				return
			}

			title := removalTitle
			if r.Method != http.MethodDelete {
				title = peekTitle(r)
			}

			attrs := []any{
				slog.String("card_id", chi.URLParam(r, idParam)),
				slog.String("title", title),
				slog.String("method", r.Method),
				slog.Time("at", time.Now()),
			}
			if subject, ok := shared.GetSubject(r.Context()); ok {
				attrs = append(attrs, slog.String("subject", subject))
			}
			logger.FromContext(r.Context()).Debug("card action", attrs...)

			next.ServeHTTP(w, r)
		})
	}
}

// peekTitle reads up to MaxBodyBytes of a JSON body for its title and puts
// the read bytes back in front of the unread remainder, so the handler sees
// the body unchanged. It returns "" when the body has no readable title.
func peekTitle(r *http.Request) string {
	if r.Body == nil {
		return ""
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, shared.MaxBodyBytes))
	r.Body = replayBody{
		Reader: io.MultiReader(bytes.NewReader(raw), r.Body),
		Closer: r.Body,
	}
	if err != nil {
		return ""
	}

	var body struct {
		Title *string `json:"title"`
	}
	if json.Unmarshal(raw, &body) != nil || body.Title == nil {
		return ""
	}
	return *body.Title
}

// replayBody serves the peeked bytes followed by the rest of the original
// body and closes the original body.
type replayBody struct {
	io.Reader
	io.Closer
}
