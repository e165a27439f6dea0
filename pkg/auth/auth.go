package auth

import (
	"context"
	"errors"
	"slices"
)

var ErrUnauthenticated = errors.New("not authenticated")

type (
	Provider[T Principal] interface {
		Authenticate(context.Context, Token) (Authentication[T], error)
	}

	Token interface {
		Type() TokenType
	}

	Authentication[T Principal] interface {
		IsAuthenticated() bool
		Principal() *T
	}

	Principal interface {
		ID() string
		Roles() []string
	}

	Auth[T Principal] struct {
		AuthPrincipal *T
	}

	TokenType string

	BearerToken string
)

const TokenTypeBearer TokenType = "bearer"

func (a Auth[T]) IsAuthenticated() bool {
	return a.AuthPrincipal != nil
}

func (a Auth[T]) Principal() *T {
	return a.AuthPrincipal
}

func (t BearerToken) Type() TokenType {
	return TokenTypeBearer
}

func HasRole(p Principal, role string) bool {
	return slices.Contains(p.Roles(), role)
}
