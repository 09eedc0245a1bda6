package db_test

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rogue-Bear-Innovations/bookmarker/internal/db"
	"github.com/Rogue-Bear-Innovations/bookmarker/internal/db/dbtest"
)

func TestSchema(t *testing.T) {
	gdb := dbtest.New(t)
	m := gdb.Migrator()

	for _, col := range []string{"id", "email", "hash", "first_name", "last_name", "created_at", "updated_at"} {
		assert.True(t, m.HasColumn(&db.User{}, col), "users.%s", col)
	}
	for _, col := range []string{"id", "title", "description", "link", "user_id", "created_at", "updated_at"} {
		assert.True(t, m.HasColumn(&db.Bookmark{}, col), "bookmarks.%s", col)
	}
	assert.True(t, m.HasIndex(&db.Bookmark{}, "UserID"))
}

func TestMigrationsMatchModels(t *testing.T) {
	b, err := fs.ReadFile(db.Migrations(), "migrations/00001_create_users_bookmarks.sql")
	require.NoError(t, err)
	sql := string(b)

	for _, fragment := range []string{
		"CREATE TABLE users",
		"email      TEXT        NOT NULL UNIQUE",
		"CREATE TABLE bookmarks",
		"user_id     BIGINT      NOT NULL REFERENCES users (id)",
		"-- +goose Down",
	} {
		assert.True(t, strings.Contains(sql, fragment), fragment)
	}
}
