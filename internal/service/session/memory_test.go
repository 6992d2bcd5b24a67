package session

import (
	"context"
	"testing"

	"github.com/kapu/ai-creative-studio-go/internal/domain"
)

func TestMemoryStoreUnknownIDReturnsFreshState(t *testing.T) {
	store := NewMemoryStore()

	state, err := store.Load(context.Background(), "s1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if state.ID != "s1" || state.HasPrompt() || len(state.History) != 0 {
		t.Fatalf("expected fresh state, got %+v", state)
	}
}

func TestMemoryStoreRoundTripIsIsolated(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	state := domain.NewSessionState("s1")
	state.OptimizedPrompt = "一只橘猫"
	state.EnglishPrompt = "an orange cat"
	state.AppendHistory(domain.HistoryEntry{Action: domain.ActionOptimize}, 0)
	if err := store.Save(ctx, state); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	state.OptimizedPrompt = "mutated after save"
	state.History[0].Input = "mutated"

	loaded, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if loaded.OptimizedPrompt != "一只橘猫" || loaded.History[0].Input != "" {
		t.Fatalf("expected stored copy to be isolated, got %+v", loaded)
	}

	loaded.EnglishPrompt = "mutated after load"
	again, _ := store.Load(ctx, "s1")
	if again.EnglishPrompt != "an orange cat" {
		t.Fatalf("expected loaded copy to be isolated")
	}
}

func TestMemoryStoreKeysBySession(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	a := domain.NewSessionState("a")
	a.OptimizedPrompt, a.EnglishPrompt = "A", "A"
	_ = store.Save(ctx, a)

	b, _ := store.Load(ctx, "b")
	if b.HasPrompt() {
		t.Fatalf("expected sessions not to share state")
	}
}

func TestMemoryStoreReset(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	state := domain.NewSessionState("s1")
	state.OptimizedPrompt, state.EnglishPrompt = "x", "x"
	_ = store.Save(ctx, state)

	if err := store.Reset(ctx, "s1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	loaded, _ := store.Load(ctx, "s1")
	if loaded.HasPrompt() {
		t.Fatalf("expected reset to clear prompts")
	}
}

func TestMemoryStoreRejectsEmptyID(t *testing.T) {
	store := NewMemoryStore()
	if _, err := store.Load(context.Background(), ""); err == nil {
		t.Fatalf("expected empty id to fail")
	}
	if err := store.Save(context.Background(), &domain.SessionState{}); err == nil {
		t.Fatalf("expected empty id to fail on save")
	}
}

func TestSessionKeyPrefix(t *testing.T) {
	if got := sessionKey("abc"); got != "studio:session:abc" {
		t.Fatalf("unexpected key %s", got)
	}
	if NewID() == NewID() {
		t.Fatalf("expected unique ids")
	}
}
