package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kapu/ai-creative-studio-go/internal/constants"
	"github.com/kapu/ai-creative-studio-go/internal/domain"
	"github.com/kapu/ai-creative-studio-go/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	// TTL expires idle sessions; zero keeps them until Reset.
	TTL time.Duration
}

// RedisStore shares session state between studio processes.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisStore(cfg RedisConfig, logger *zap.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), constants.SessionConfig.RedisTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.NewSessionError("failed to connect to Redis", "", err)
	}

	logger.Info("Redis session store connected",
		zap.String("addr", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		zap.Int("db", cfg.DB),
		zap.Duration("ttl", cfg.TTL),
	)

	return NewRedisStoreWithClient(client, cfg.TTL, logger), nil
}

func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func sessionKey(id string) string {
	return constants.SessionConfig.KeyPrefix + id
}

func (r *RedisStore) Load(ctx context.Context, id string) (*domain.SessionState, error) {
	if id == "" {
		return nil, errors.NewSessionError("session id is required", id, errors.ErrEmptyInput)
	}

	value, err := r.client.Get(ctx, sessionKey(id)).Result()
	if err == redis.Nil {
		return domain.NewSessionState(id), nil
	}
	if err != nil {
		r.logger.Error("Session load failed", zap.String("session_id", id), zap.Error(err))
		return nil, errors.NewSessionError("session load failed", id, err)
	}

	var state domain.SessionState
	if err := json.Unmarshal([]byte(value), &state); err != nil {
		r.logger.Error("Session unmarshal failed", zap.String("session_id", id), zap.Error(err))
		return nil, errors.NewSessionError("session data corrupted", id, err)
	}
	if state.History == nil {
		state.History = []domain.HistoryEntry{}
	}
	return &state, nil
}

func (r *RedisStore) Save(ctx context.Context, state *domain.SessionState) error {
	if state == nil || state.ID == "" {
		return errors.NewSessionError("session id is required", "", errors.ErrEmptyInput)
	}

	jsonData, err := json.Marshal(state)
	if err != nil {
		return errors.NewSessionError("session marshal failed", state.ID, err)
	}

	if err := r.client.Set(ctx, sessionKey(state.ID), jsonData, r.ttl).Err(); err != nil {
		r.logger.Error("Session save failed", zap.String("session_id", state.ID), zap.Error(err))
		return errors.NewSessionError("session save failed", state.ID, err)
	}
	return nil
}

func (r *RedisStore) Reset(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		r.logger.Error("Session reset failed", zap.String("session_id", id), zap.Error(err))
		return errors.NewSessionError("session reset failed", id, err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
