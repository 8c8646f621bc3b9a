package auth

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionStore keeps the claims of browser sessions.
type SessionStore interface {
	Save(ctx context.Context, id string, claims Claims, ttl time.Duration) error
	Load(ctx context.Context, id string) (Claims, error)
	Delete(ctx context.Context, id string) error
}

// RedisSessions stores sessions as JSON values with an expiry.
type RedisSessions struct {
	client *redis.Client
	prefix string
}

func NewRedisSessions(client *redis.Client) *RedisSessions {
	return &RedisSessions{client: client, prefix: "session:"}
}

func (s *RedisSessions) Save(ctx context.Context, id string, claims Claims, ttl time.Duration) error {
	data, err := json.Marshal(claims)
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}

	return s.client.Set(ctx, s.prefix+id, data, ttl).Err()
}

func (s *RedisSessions) Load(ctx context.Context, id string) (Claims, error) {
	data, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return Claims{}, ErrSessionNotFound
	}
	if err != nil {
		return Claims{}, errors.Wrap(err, "loading session")
	}

	var claims Claims
	if err := json.Unmarshal(data, &claims); err != nil {
		return Claims{}, errors.Wrap(err, "decoding session")
	}

	return claims, nil
}

func (s *RedisSessions) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.prefix+id).Err()
}
