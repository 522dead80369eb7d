package httphandler

import (
	"context"
	"net/http"
	"strings"

	"github.com/stocksavvy/procure/internal/core/domain"
	"github.com/stocksavvy/procure/internal/core/port"
)

func AllowJSON(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}

		if r.Header.Get("Content-Type") != "application/json" {
			http.Error(w, "invalid media type", http.StatusUnsupportedMediaType)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}

type ctxKey int

const sessionKey ctxKey = iota

// RequireSession rejects requests without a live bearer token and
// puts the resolved session into the request context.
func RequireSession(sessions port.Sessions, next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(
			r.Header.Get("Authorization"), "Bearer ",
		)
		if !ok || token == "" {
			http.Error(w, "authorization required", http.StatusUnauthorized)
			return
		}

		sess, ok := sessions.Get(token)
		if !ok {
			http.Error(w, "session expired", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
	return http.HandlerFunc(hf)
}

func sessionFromCtx(r *http.Request) domain.Session {
	sess, _ := r.Context().Value(sessionKey).(domain.Session)
	return sess
}
