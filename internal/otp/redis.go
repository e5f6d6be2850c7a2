package otp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore backs OTP sessions with Redis so a restart or a second
// instance does not drop live codes. Keys expire with the session TTL.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func sessionKey(phone string) string {
	return fmt.Sprintf("otp:%s", phone)
}

func (s *RedisStore) Get(ctx context.Context, phone string) (*Session, error) {
	raw, err := s.client.Get(ctx, sessionKey(phone)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("otp: redis get: %w", err)
	}

	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("otp: decode session: %w", err)
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, nil
	}
	return &session, nil
}

func (s *RedisStore) Set(ctx context.Context, session *Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("otp: encode session: %w", err)
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, sessionKey(session.Phone), raw, ttl).Err(); err != nil {
		return fmt.Errorf("otp: redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, phone string) error {
	if err := s.client.Del(ctx, sessionKey(phone)).Err(); err != nil {
		return fmt.Errorf("otp: redis del: %w", err)
	}
	return nil
}
