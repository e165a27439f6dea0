package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/klwxsrx/go-storefront/pkg/session"
)

const (
	tokenKeySuffix    = "token"
	identityKeySuffix = "identity"
)

// store shares one session between processes that use the same namespace.
// A zero ttl keeps keys until they are deleted.
type store struct {
	client    redis.UniversalClient
	namespace string
	ttl       time.Duration
}

func NewStore(client redis.UniversalClient, namespace string, ttl time.Duration) session.Store {
	return &store{
		client:    client,
		namespace: namespace,
		ttl:       ttl,
	}
}

func (s *store) Token(ctx context.Context) (session.Token, error) {
	token, err := s.client.Get(ctx, s.key(tokenKeySuffix)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get session token: %w", err)
	}

	return session.Token(token), nil
}

func (s *store) SetToken(ctx context.Context, token session.Token) error {
	err := s.client.Set(ctx, s.key(tokenKeySuffix), string(token), s.ttl).Err()
	if err != nil {
		return fmt.Errorf("set session token: %w", err)
	}
	return nil
}

func (s *store) DeleteToken(ctx context.Context) error {
	err := s.client.Del(ctx, s.key(tokenKeySuffix)).Err()
	if err != nil {
		return fmt.Errorf("delete session token: %w", err)
	}
	return nil
}

func (s *store) Identity(ctx context.Context) (*session.Identity, error) {
	data, err := s.client.Get(ctx, s.key(identityKeySuffix)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session identity: %w", err)
	}

	var identity session.Identity
	err = json.Unmarshal(data, &identity)
	if err != nil {
		return nil, fmt.Errorf("decode session identity: %w", err)
	}

	return &identity, nil
}

func (s *store) SetIdentity(ctx context.Context, identity session.Identity) error {
	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode session identity: %w", err)
	}

	err = s.client.Set(ctx, s.key(identityKeySuffix), data, s.ttl).Err()
	if err != nil {
		return fmt.Errorf("set session identity: %w", err)
	}
	return nil
}

func (s *store) DeleteIdentity(ctx context.Context) error {
	err := s.client.Del(ctx, s.key(identityKeySuffix)).Err()
	if err != nil {
		return fmt.Errorf("delete session identity: %w", err)
	}
	return nil
}

func (s *store) key(suffix string) string {
	return fmt.Sprintf("storefront:session:%s:%s", s.namespace, suffix)
}
