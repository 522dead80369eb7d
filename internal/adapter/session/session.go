// Package session keeps opaque in-memory session tokens. The core
// treats sessions as a boolean presence check plus a company scope;
// credential validation lives with the stored users, not here.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"sync"

	"github.com/stocksavvy/procure/internal/core/domain"
	"github.com/stocksavvy/procure/internal/core/port"
)

var _ port.Sessions = (*Manager)(nil)

type Manager struct {
	mu     sync.RWMutex
	active map[string]domain.Session
}

func NewManager() *Manager {
	return &Manager{active: make(map[string]domain.Session)}
}

func (m *Manager) Create(companyID domain.CompanyID) domain.Session {
	s := domain.Session{Token: newToken(), CompanyID: companyID}

	m.mu.Lock()
	m.active[s.Token] = s
	m.mu.Unlock()
	return s
}

func (m *Manager) Get(token string) (domain.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.active[token]
	return s, ok
}

func (m *Manager) Delete(token string) {
	m.mu.Lock()
	delete(m.active, token)
	m.mu.Unlock()
}

func newToken() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
