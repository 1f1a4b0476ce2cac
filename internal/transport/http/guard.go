package http

import (
	"context"
	"log/slog"
	"net/http"

	"loyalty/internal/domain"
	obsmw "loyalty/internal/observability/middleware"

	"github.com/go-chi/chi/v5"
)

type linkCtxKey struct{}

// withValidLink is the gate every guarded action sits behind: it pulls
// the token from the path, runs it through the validator, and refuses
// to call the wrapped handler unless the link is live. The validated
// record rides along in the request context.
func (h *Handler) withValidLink(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res, err := h.links.Validate(r.Context(), chi.URLParam(r, "token"))
		if err != nil {
			slog.Error("link validation failed",
				"error", err,
				"request_id", obsmw.RequestIDFromContext(r.Context()),
				"trace_id", obsmw.TraceIDFromContext(r.Context()),
			)
			writeError(w, http.StatusInternalServerError, "could not validate token")
			return
		}
		if !res.Valid {
			writeJSON(w, http.StatusBadRequest, envelope{
				OK:        false,
				Message:   res.Reason.Error(),
				ExpiresAt: res.ExpiresAt,
			})
			return
		}

		ctx := context.WithValue(r.Context(), linkCtxKey{}, res.Link)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func linkFromContext(ctx context.Context) *domain.UniqueLink {
	link, _ := ctx.Value(linkCtxKey{}).(*domain.UniqueLink)
	return link
}
