package service

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rogue-Bear-Innovations/bookmarker/internal/db"
)

func TestUsersGetSelf(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "me@example.com")

	assert.Same(t, u, f.users.GetSelf(u))
}

func TestUsersUpdateSelf(t *testing.T) {
	ctx := context.Background()

	t.Run("names", func(t *testing.T) {
		f := newFixture(t)
		u := f.user(t, "me@example.com")

		got, err := f.users.UpdateSelf(ctx, u.ID, UserPatch{
			FirstName: strPtr("Robin"),
			LastName:  strPtr("Paspuel"),
		})
		require.NoError(t, err)

		assert.Equal(t, "me@example.com", got.Email)
		require.NotNil(t, got.FirstName)
		assert.Equal(t, "Robin", *got.FirstName)
		require.NotNil(t, got.LastName)
		assert.Equal(t, "Paspuel", *got.LastName)
		assert.Empty(t, got.Hash)

		stored := db.User{}
		require.NoError(t, f.db.First(&stored, u.ID).Error)
		assert.Equal(t, "hash", stored.Hash)
	})

	t.Run("empty patch", func(t *testing.T) {
		f := newFixture(t)
		u := f.user(t, "me@example.com")

		got, err := f.users.UpdateSelf(ctx, u.ID, UserPatch{})
		require.NoError(t, err)

		assert.Equal(t, u.ID, got.ID)
		assert.Equal(t, u.Email, got.Email)
		assert.Nil(t, got.FirstName)
		assert.Empty(t, got.Hash)
	})

	t.Run("email taken", func(t *testing.T) {
		f := newFixture(t)
		u := f.user(t, "me@example.com")
		f.user(t, "other@example.com")

		_, err := f.users.UpdateSelf(ctx, u.ID, UserPatch{Email: strPtr("other@example.com")})
		assert.Equal(t, ErrCredentialsTaken, err)
	})

	t.Run("same email is not a conflict", func(t *testing.T) {
		f := newFixture(t)
		u := f.user(t, "me@example.com")

		got, err := f.users.UpdateSelf(ctx, u.ID, UserPatch{Email: strPtr("me@example.com")})
		require.NoError(t, err)
		assert.Equal(t, "me@example.com", got.Email)
	})

	t.Run("empty email", func(t *testing.T) {
		f := newFixture(t)
		u := f.user(t, "me@example.com")

		_, err := f.users.UpdateSelf(ctx, u.ID, UserPatch{Email: strPtr("")})
		assert.True(t, errors.Is(err, ErrValidation))
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.users.UpdateSelf(ctx, 404, UserPatch{})
		assert.Equal(t, ErrUnauthenticated, err)
	})
}
