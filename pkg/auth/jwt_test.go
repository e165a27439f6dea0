package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klwxsrx/go-storefront/pkg/auth"
)

func TestJWTCodec(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	codec := auth.NewJWTCodec([]byte("secret"), "storefront", time.Minute, auth.WithJWTClock(clock))

	token, expiresAt, err := codec.Issue("42", "alice", []string{"customer"})
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Minute), expiresAt)

	claims, err := codec.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, []string{"customer"}, claims.Roles)

	t.Run("expired", func(t *testing.T) {
		later := auth.NewJWTCodec([]byte("secret"), "storefront", time.Minute,
			auth.WithJWTClock(func() time.Time { return now.Add(2 * time.Minute) }))

		_, err := later.Parse(token)
		assert.ErrorIs(t, err, auth.ErrUnauthenticated)
	})

	t.Run("foreign secret", func(t *testing.T) {
		foreign := auth.NewJWTCodec([]byte("other"), "storefront", time.Minute, auth.WithJWTClock(clock))

		_, err := foreign.Parse(token)
		assert.ErrorIs(t, err, auth.ErrUnauthenticated)
	})

	t.Run("foreign issuer", func(t *testing.T) {
		foreign := auth.NewJWTCodec([]byte("secret"), "backoffice", time.Minute, auth.WithJWTClock(clock))

		_, err := foreign.Parse(token)
		assert.ErrorIs(t, err, auth.ErrUnauthenticated)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := codec.Parse("not-a-token")
		assert.ErrorIs(t, err, auth.ErrUnauthenticated)
	})
}
