package service

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rogue-Bear-Innovations/bookmarker/internal/db"
)

func TestAuthSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("successful signup", func(t *testing.T) {
		f := newFixture(t)

		token, err := f.auth.Signup(ctx, "test@gmail.com", "1234")
		require.NoError(t, err)

		userID, err := f.tokens.Parse(token)
		require.NoError(t, err)

		stored := db.User{}
		require.NoError(t, f.db.First(&stored, userID).Error)
		assert.Equal(t, "test@gmail.com", stored.Email)
		assert.NotEqual(t, "1234", stored.Hash)
		assert.NoError(t, f.auth.bcryptCheck(stored.Hash, "1234"))
	})

	t.Run("email already registered", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.auth.Signup(ctx, "test@gmail.com", "1234")
		require.NoError(t, err)

		_, err = f.auth.Signup(ctx, "test@gmail.com", "other")
		assert.Equal(t, ErrCredentialsTaken, err)

		var count int64
		require.NoError(t, f.db.Model(&db.User{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("missing password", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.auth.Signup(ctx, "test@gmail.com", "")
		assert.True(t, errors.Is(err, ErrValidation))
	})
}

func TestAuthSignin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.auth.Signup(ctx, "test@gmail.com", "1234")
	require.NoError(t, err)

	token, err := f.auth.Signin(ctx, "test@gmail.com", "1234")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = f.auth.Signin(ctx, "test@gmail.com", "wrong")
	assert.Equal(t, ErrCredentialsIncorrect, err)

	_, err = f.auth.Signin(ctx, "nobody@gmail.com", "1234")
	assert.Equal(t, ErrCredentialsIncorrect, err)
}

func TestAuthAuthenticate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.user(t, "me@example.com")

	token, err := f.tokens.Issue(u.ID)
	require.NoError(t, err)

	got, err := f.auth.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, u.Email, got.Email)

	_, err = f.auth.Authenticate(ctx, "")
	assert.True(t, errors.Is(err, ErrUnauthenticated))

	_, err = f.auth.Authenticate(ctx, "garbage")
	assert.True(t, errors.Is(err, ErrUnauthenticated))

	ghost, err := f.tokens.Issue(u.ID + 100)
	require.NoError(t, err)
	_, err = f.auth.Authenticate(ctx, ghost)
	assert.True(t, errors.Is(err, ErrUnauthenticated))
}
