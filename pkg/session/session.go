//go:generate ${TOOLS_BIN}/mockgen -source ${GOFILE} -destination mock/${GOFILE} -package mock -mock_names "Store=Store,Refresher=Refresher"
package session

import (
	"context"
	"errors"
	"slices"
)

var (
	ErrNoSession     = errors.New("no active session")
	ErrRefreshFailed = errors.New("session refresh failed")
	ErrSessionEnded  = errors.New("session ended")
	ErrLoggedOut     = errors.New("logged out")
)

type (
	// Token is an opaque bearer credential.
	Token string

	Identity struct {
		ID       string   `json:"id"`
		Username string   `json:"username"`
		Email    string   `json:"email,omitempty"`
		Roles    []string `json:"roles,omitempty"`
	}

	// Store persists the single active token and the cached identity.
	// An absent token is reported as "" with a nil error, an absent identity as nil.
	Store interface {
		Token(ctx context.Context) (Token, error)
		SetToken(ctx context.Context, token Token) error
		DeleteToken(ctx context.Context) error
		Identity(ctx context.Context) (*Identity, error)
		SetIdentity(ctx context.Context, identity Identity) error
		DeleteIdentity(ctx context.Context) error
	}

	// Refresher exchanges the out-of-band refresh credential for a new token.
	Refresher interface {
		Refresh(ctx context.Context) (Token, error)
	}

	RefresherFunc func(ctx context.Context) (Token, error)
)

func (f RefresherFunc) Refresh(ctx context.Context) (Token, error) {
	return f(ctx)
}

func (i Identity) HasRole(role string) bool {
	return slices.Contains(i.Roles, role)
}
