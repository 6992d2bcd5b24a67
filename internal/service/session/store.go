package session

import (
	"context"

	"github.com/google/uuid"
	"github.com/kapu/ai-creative-studio-go/internal/domain"
)

// Store keeps SessionState keyed by session id.
type Store interface {
	// Load returns the stored state, or a fresh state for an unknown id.
	Load(ctx context.Context, id string) (*domain.SessionState, error)
	Save(ctx context.Context, state *domain.SessionState) error
	Reset(ctx context.Context, id string) error
	Close() error
}

func NewID() string {
	return uuid.NewString()
}
