package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/anirudh/expense-tracker/backend/internal/auth"
	"github.com/anirudh/expense-tracker/backend/internal/web"
)

// SessionResolver maps a session token to a user id. Satisfied by
// *auth.SessionStore; declared here so tests can fake it.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (int64, error)
}

// RequireAuth validates the session cookie and injects the resolved user
// id into the request context. Unauthenticated requests are rejected with
// 401 before the downstream handler runs; a session store failure is a
// 500, not a stale session.
func RequireAuth(sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.SessionCookie)
			if err != nil {
				web.Error(w, http.StatusUnauthorized, web.KindUnauthorized, "not authenticated")
				return
			}

			userID, err := sessions.Resolve(r.Context(), cookie.Value)
			if err != nil {
				log.Printf("resolve session: %v", err)
				web.Error(w, http.StatusInternalServerError, web.KindInternal, "Error resolving session")
				return
			}
			if userID == 0 {
				web.Error(w, http.StatusUnauthorized, web.KindUnauthorized, "session expired")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
		})
	}
}
