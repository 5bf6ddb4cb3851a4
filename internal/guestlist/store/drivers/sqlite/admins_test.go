package sqlite

import (
	"context"
	"testing"

	"github.com/verdant-events/guestlist/internal/guestlist/domain"
	"github.com/verdant-events/guestlist/internal/guestlist/store"
	"github.com/stretchr/testify/require"
)

func TestAdminsRepo(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	t.Run("empty on a fresh database", func(t *testing.T) {
		empty, err := st.Admins().IsEmpty(ctx)
		require.NoError(t, err)
		require.True(t, empty)
	})

	t.Run("create and fetch", func(t *testing.T) {
		created, err := st.Admins().CreateAdmin(ctx, domain.Admin{
			Username:     "admin",
			PasswordHash: "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		})
		require.NoError(t, err)
		require.NotZero(t, created.ID)
		require.False(t, created.CreatedAt.IsZero())

		got, err := st.Admins().GetAdminByUsername(ctx, "admin")
		require.NoError(t, err)
		require.Equal(t, created.ID, got.ID)
		require.Equal(t, created.PasswordHash, got.PasswordHash)

		empty, err := st.Admins().IsEmpty(ctx)
		require.NoError(t, err)
		require.False(t, empty)
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		_, err := st.Admins().CreateAdmin(ctx, domain.Admin{
			Username:     "admin",
			PasswordHash: "other",
		})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := st.Admins().GetAdminByUsername(ctx, "nobody")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}
