package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/klwxsrx/go-storefront/internal/devbackend/app/encoding"
)

type encoder struct {
	cost int
}

// NewEncoder hashes with bcrypt; zero cost means bcrypt.DefaultCost.
func NewEncoder(cost int) encoding.PasswordEncoder {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return encoder{cost: cost}
}

func (e encoder) HashPassword(password string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), e.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

func (e encoder) CompareHash(passwordHash []byte, password string) bool {
	return bcrypt.CompareHashAndPassword(passwordHash, []byte(password)) == nil
}
