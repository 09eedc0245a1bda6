package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/bookmarker/internal/auth"
	"github.com/Rogue-Bear-Innovations/bookmarker/internal/db"
	"github.com/Rogue-Bear-Innovations/bookmarker/internal/db/dbtest"
)

type fixture struct {
	db        *gorm.DB
	tokens    *auth.Tokens
	auth      *Auth
	users     *Users
	bookmarks *Bookmarks
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gdb := dbtest.New(t)
	l := zap.NewNop().Sugar()
	tokens := auth.NewTokens([]byte("test-secret"), time.Minute)

	return &fixture{
		db:        gdb,
		tokens:    tokens,
		auth:      NewAuth(gdb, tokens, bcrypt.MinCost, l),
		users:     NewUsers(gdb, l),
		bookmarks: NewBookmarks(gdb, l),
	}
}

func (f *fixture) user(t *testing.T, email string) *db.User {
	t.Helper()

	u := db.User{Email: email, Hash: "hash"}
	require.NoError(t, f.db.Create(&u).Error)
	return &u
}

func (f *fixture) bookmark(t *testing.T, owner *db.User, title string) *db.Bookmark {
	t.Helper()

	b, err := f.bookmarks.Create(context.Background(), owner.ID, BookmarkCreate{
		Title: title,
		Link:  "http://example.com/" + title,
	})
	require.NoError(t, err)
	return b
}

func strPtr(s string) *string {
	return &s
}
