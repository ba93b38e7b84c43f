package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	sessiondomain "recipe-api-go/internal/domain/session"
	"recipe-api-go/pkg/logger"
)

// CookieName is the session cookie the endpoint contract fixes.
const CookieName = "sessionid"

type contextKey int

const userIDKey contextKey = iota

type SessionAuth struct {
	sessions *sessiondomain.Service
	log      logger.Logger
}

func NewSessionAuth(sessions *sessiondomain.Service, log logger.Logger) *SessionAuth {
	return &SessionAuth{sessions: sessions, log: log}
}

// Middleware authenticates the sessionid cookie. A missing cookie, an
// empty value, an unknown token and an expired session all get the same
// 401 body.
func (a *SessionAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CookieName)
		if err != nil || strings.TrimSpace(cookie.Value) == "" {
			notAuthed(w)
			return
		}

		userID, err := a.sessions.Validate(r.Context(), cookie.Value)
		if err != nil {
			switch {
			case errors.Is(err, sessiondomain.ErrSessionNotFound):
				notAuthed(w)
			case errors.Is(err, sessiondomain.ErrStoreUnavailable):
				a.log.InternalError("auth: session store unavailable", err)
				writeError(w, http.StatusServiceUnavailable, "service unavailable")
			default:
				a.log.InternalError("auth: session lookup failed", err)
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	if !ok || userID == 0 {
		return 0, false
	}
	return userID, true
}

func notAuthed(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "not authed")
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
