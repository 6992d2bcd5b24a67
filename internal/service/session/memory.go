package session

import (
	"context"
	"sync"

	"github.com/kapu/ai-creative-studio-go/internal/domain"
	"github.com/kapu/ai-creative-studio-go/pkg/errors"
)

// MemoryStore is a process-local Store. States are copied on the way in and
// out so callers never share slices with the store.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]*domain.SessionState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]*domain.SessionState)}
}

func (m *MemoryStore) Load(_ context.Context, id string) (*domain.SessionState, error) {
	if id == "" {
		return nil, errors.NewSessionError("session id is required", id, errors.ErrEmptyInput)
	}

	m.mu.RLock()
	state, ok := m.states[id]
	m.mu.RUnlock()
	if !ok {
		return domain.NewSessionState(id), nil
	}
	return state.Clone(), nil
}

func (m *MemoryStore) Save(_ context.Context, state *domain.SessionState) error {
	if state == nil || state.ID == "" {
		return errors.NewSessionError("session id is required", "", errors.ErrEmptyInput)
	}

	m.mu.Lock()
	m.states[state.ID] = state.Clone()
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Reset(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.states, id)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
