package httphandler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stocksavvy/procure/internal/adapter/httphandler"
	"github.com/stocksavvy/procure/internal/adapter/session"
	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAllowJSON(t *testing.T) {
	t.Run("EmptyBodyPasses", func(t *testing.T) {
		h := httphandler.AllowJSON(okHandler())

		r := httptest.NewRequest(http.MethodGet, "/v1/inventory", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("NonJSONBodyRejected", func(t *testing.T) {
		h := httphandler.AllowJSON(okHandler())

		r := httptest.NewRequest(
			http.MethodPost, "/v1/cart/items", strings.NewReader("data"),
		)
		r.Header.Set("Content-Type", "text/plain")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	})

	t.Run("JSONBodyPasses", func(t *testing.T) {
		h := httphandler.AllowJSON(okHandler())

		r := httptest.NewRequest(
			http.MethodPost, "/v1/cart/items", strings.NewReader(`{}`),
		)
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireSession(t *testing.T) {
	sessions := session.NewManager()
	sess := sessions.Create(7)

	h := httphandler.RequireSession(sessions, okHandler())

	t.Run("NoToken", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/v1/cart", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("UnknownToken", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/v1/cart", nil)
		r.Header.Set("Authorization", "Bearer noSuchToken")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("LiveToken", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/v1/cart", nil)
		r.Header.Set("Authorization", "Bearer "+sess.Token)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
