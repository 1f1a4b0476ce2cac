package http

import (
	"context"
	"errors"
	"net/http"

	"loyalty/internal/domain"
)

type actorCtxKey struct{}

const (
	accessCookieName  = "access_token"
	refreshCookieName = "refresh_token"
)

// withActor resolves the access-token cookie into a domain.Actor once;
// downstream handlers read the actor from context instead of
// re-deriving roles.
func (h *Handler) withActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(accessCookieName)
		if err != nil || c.Value == "" {
			writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		actor, err := h.tokens.VerifyAccess(r.Context(), c.Value)
		if err != nil {
			if errors.Is(err, domain.ErrAccountSuspended) {
				writeError(w, http.StatusForbidden, domain.ErrAccountSuspended.Error())
				return
			}
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), actorCtxKey{}, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return h.withActor(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFromContext(r.Context())
		if !ok || !actor.IsAdmin() {
			writeError(w, http.StatusForbidden, domain.ErrForbidden.Error())
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func (h *Handler) requireBusiness(next http.Handler) http.Handler {
	return h.withActor(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFromContext(r.Context())
		if !ok || actor.Kind != domain.ActorBusiness {
			writeError(w, http.StatusForbidden, "business account required")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func actorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorCtxKey{}).(domain.Actor)
	return actor, ok
}
