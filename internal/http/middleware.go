package http

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const sessionKey contextKey = "session_id"

// SessionCookie identifies the browser session whose cart and preferences
// live under session-scoped storage keys.
const SessionCookie = "storefront_session"

// SessionMiddleware assigns a uuid session id on first visit and carries it
// through the request context. The session id is the cart's identity; there
// is no account system in front of it.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := ""
		if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
			sessionID = c.Value
		}
		if sessionID == "" {
			sessionID = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    sessionID,
				Path:     "/",
				Expires:  time.Now().Add(365 * 24 * time.Hour),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFromContext(ctx context.Context) string {
	if sid, ok := ctx.Value(sessionKey).(string); ok {
		return sid
	}
	return ""
}
