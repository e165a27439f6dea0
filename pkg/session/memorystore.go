package session

import (
	"context"
	"slices"
	"sync"
)

type memoryStore struct {
	mu       sync.RWMutex
	token    Token
	identity *Identity
}

func NewMemoryStore() Store {
	return &memoryStore{}
}

func (s *memoryStore) Token(context.Context) (Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

func (s *memoryStore) SetToken(_ context.Context, token Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *memoryStore) DeleteToken(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

func (s *memoryStore) Identity(context.Context) (*Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil, nil
	}

	identity := *s.identity
	identity.Roles = slices.Clone(identity.Roles)
	return &identity, nil
}

func (s *memoryStore) SetIdentity(_ context.Context, identity Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	identity.Roles = slices.Clone(identity.Roles)
	s.identity = &identity
	return nil
}

func (s *memoryStore) DeleteIdentity(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = nil
	return nil
}
