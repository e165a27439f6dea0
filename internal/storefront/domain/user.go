package domain

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

const RoleAdmin = "admin"

var ErrInvalidProfile = errors.New("invalid profile")

type (
	User struct {
		ID       string
		Username string
		Email    string
		Roles    []string
	}

	Profile struct {
		FullName string
		Email    string
		Address  string
	}

	// ProfileUpdate changes only the fields that are set.
	ProfileUpdate struct {
		FullName *string
		Email    *string
		Address  *string
	}
)

func (u ProfileUpdate) IsEmpty() bool {
	return u.FullName == nil && u.Email == nil && u.Address == nil
}

func (u ProfileUpdate) ApplyTo(p Profile) (Profile, error) {
	if u.FullName != nil {
		name := strings.TrimSpace(*u.FullName)
		if name == "" {
			return p, fmt.Errorf("%w: full name must be not empty", ErrInvalidProfile)
		}
		p.FullName = name
	}
	if u.Email != nil {
		addr, err := mail.ParseAddress(strings.TrimSpace(*u.Email))
		if err != nil {
			return p, fmt.Errorf("%w: email: %w", ErrInvalidProfile, err)
		}
		p.Email = addr.Address
	}
	if u.Address != nil {
		p.Address = strings.TrimSpace(*u.Address)
	}
	return p, nil
}
