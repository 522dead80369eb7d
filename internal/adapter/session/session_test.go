package session_test

import (
	"testing"

	"github.com/stocksavvy/procure/internal/adapter/session"
	"github.com/stocksavvy/procure/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager(t *testing.T) {
	t.Run("CreateAndGet", func(t *testing.T) {
		m := session.NewManager()

		s := m.Create(domain.CompanyID(7))
		require.NotEmpty(t, s.Token)
		assert.Equal(t, domain.CompanyID(7), s.CompanyID)

		got, ok := m.Get(s.Token)
		require.True(t, ok)
		assert.Equal(t, s, got)
	})

	t.Run("TokensAreUnique", func(t *testing.T) {
		m := session.NewManager()

		a := m.Create(1)
		b := m.Create(1)
		assert.NotEqual(t, a.Token, b.Token)
	})

	t.Run("UnknownToken", func(t *testing.T) {
		m := session.NewManager()

		_, ok := m.Get("noSuchToken")
		assert.False(t, ok)
	})

	t.Run("Delete", func(t *testing.T) {
		m := session.NewManager()

		s := m.Create(1)
		m.Delete(s.Token)

		_, ok := m.Get(s.Token)
		assert.False(t, ok)
	})
}
