package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHS256SignAndVerify(t *testing.T) {
	t.Parallel()

	signer := NewHS256([]byte("secret"), "guestlist")

	t.Run("round trip", func(t *testing.T) {
		token, err := signer.Sign("admin", time.Minute)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := signer.Verify(token)
		require.NoError(t, err)
		require.Equal(t, "admin", claims.Subject)
		require.Equal(t, "admin", claims.Username)
		require.Equal(t, "guestlist", claims.Issuer)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := signer.Sign("admin", -time.Minute)
		require.NoError(t, err)

		_, err = signer.Verify(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewHS256([]byte("different"), "guestlist")
		token, err := other.Sign("admin", time.Minute)
		require.NoError(t, err)

		_, err = signer.Verify(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewHS256([]byte("secret"), "someone-else")
		token, err := other.Sign("admin", time.Minute)
		require.NoError(t, err)

		_, err = signer.Verify(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage input", func(t *testing.T) {
		_, err := signer.Verify("not-a-token")
		require.ErrorIs(t, err, ErrInvalidToken)

		_, err = signer.Verify("")
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}
