package session

import (
	"context"
	stderrors "errors"
	"net"
	"os"
	"testing"
	"time"

	"github.com/kapu/ai-creative-studio-go/internal/domain"
	"github.com/kapu/ai-creative-studio-go/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// liveRedisStore connects to REDIS_ADDR; tests using it are skipped when unset.
func liveRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *redis.Client) {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		t.Skipf("redis at %s unreachable: %v", addr, err)
	}
	store := NewRedisStoreWithClient(client, ttl, zap.NewNop())
	t.Cleanup(func() { _ = store.Close() })
	return store, client
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, client := liveRedisStore(t, time.Minute)
	ctx := context.Background()
	id := NewID()
	t.Cleanup(func() { _ = client.Del(context.Background(), sessionKey(id)).Err() })

	fresh, err := store.Load(ctx, id)
	if err != nil || fresh.HasPrompt() || len(fresh.History) != 0 {
		t.Fatalf("expected fresh state for missing key, got %+v (%v)", fresh, err)
	}

	state := domain.NewSessionState(id)
	state.OptimizedPrompt = "a fluffy cat"
	state.EnglishPrompt = "a fluffy cat in a garden"
	state.History = append(state.History, domain.HistoryEntry{Action: domain.ActionOptimize, Input: "cat", Output: "a fluffy cat"})
	if err := store.Save(ctx, state); err != nil {
		t.Fatalf("expected save to succeed, got %v", err)
	}

	loaded, err := store.Load(ctx, id)
	if err != nil {
		t.Fatalf("expected load to succeed, got %v", err)
	}
	if loaded.OptimizedPrompt != "a fluffy cat" || loaded.EnglishPrompt != "a fluffy cat in a garden" || len(loaded.History) != 1 {
		t.Fatalf("unexpected loaded state: %+v", loaded)
	}
	if ttl := client.TTL(ctx, sessionKey(id)).Val(); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("expected key ttl within a minute, got %v", ttl)
	}

	if err := store.Reset(ctx, id); err != nil {
		t.Fatalf("expected reset to succeed, got %v", err)
	}
	reset, err := store.Load(ctx, id)
	if err != nil || reset.HasPrompt() {
		t.Fatalf("expected empty state after reset, got %+v (%v)", reset, err)
	}
}

func TestRedisStoreCorruptedValue(t *testing.T) {
	store, client := liveRedisStore(t, 0)
	ctx := context.Background()
	id := NewID()
	t.Cleanup(func() { _ = client.Del(context.Background(), sessionKey(id)).Err() })

	if err := client.Set(ctx, sessionKey(id), "{not json", 0).Err(); err != nil {
		t.Fatalf("failed to seed key: %v", err)
	}
	if _, err := store.Load(ctx, id); !isSessionError(err) {
		t.Fatalf("expected SessionError for corrupted data, got %v", err)
	}
}

func TestRedisStoreRejectsEmptyID(t *testing.T) {
	store := NewRedisStoreWithClient(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), 0, zap.NewNop())
	defer store.Close()

	if _, err := store.Load(context.Background(), ""); !stderrors.Is(err, errors.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput on load, got %v", err)
	}
	if err := store.Save(context.Background(), domain.NewSessionState("")); !stderrors.Is(err, errors.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput on save, got %v", err)
	}
}

func TestNewRedisStoreUnreachable(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to reserve port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	_ = listener.Close()

	store, err := NewRedisStore(RedisConfig{Host: "127.0.0.1", Port: port}, zap.NewNop())
	if store != nil || !isSessionError(err) {
		t.Fatalf("expected SessionError for unreachable redis, got %v", err)
	}
}

func isSessionError(err error) bool {
	var serr *errors.SessionError
	return stderrors.As(err, &serr)
}
