package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

var ErrUserNotFound = errors.New("user not found")

type (
	UserID struct{ uuid.UUID }

	Profile struct {
		FullName string
		Email    string
		Address  string
	}

	User struct {
		ID           UserID
		Username     string
		PasswordHash []byte
		Roles        []string
		Profile      Profile
	}

	UserRepo interface {
		FindByID(ctx context.Context, id UserID) (*User, error)
		FindByUsername(ctx context.Context, username string) (*User, error)
		List(ctx context.Context) ([]User, error)
		Store(ctx context.Context, user *User) error
	}
)
