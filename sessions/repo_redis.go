package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/jrsteele09/go-catalog-admin/internal/errors"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "catalog-admin:session:"

// RedisRepo stores sessions as JSON values that expire with the session.
type RedisRepo struct {
	client *redis.Client
	now    func() time.Time
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient connects and pings so a bad address fails at startup.
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

func NewRedisRepo(client *redis.Client) *RedisRepo {
	return &RedisRepo{client: client, now: time.Now}
}

func redisKey(sessionID string) string {
	return redisKeyPrefix + sessionID
}

func (r *RedisRepo) Upsert(ctx context.Context, session *Session) error {
	if session == nil || session.ID == "" {
		return fmt.Errorf("sessionID is required")
	}

	ttl := session.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return r.Delete(ctx, session.ID)
	}

	data, err := json.Marshal(session)
	if err != nil {
		return errors.Wrapf(err, "encoding session %s", session.ID)
	}
	if err := r.client.Set(ctx, redisKey(session.ID), data, ttl).Err(); err != nil {
		return errors.Wrapf(err, "storing session %s", session.ID)
	}
	return nil
}

func (r *RedisRepo) Get(ctx context.Context, sessionID string) (*Session, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("sessionID is required")
	}

	data, err := r.client.Get(ctx, redisKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errors.ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "loading session %s", sessionID)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, errors.Wrapf(err, "decoding session %s", sessionID)
	}
	return &session, nil
}

func (r *RedisRepo) Delete(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is required")
	}
	return r.client.Del(ctx, redisKey(sessionID)).Err()
}
