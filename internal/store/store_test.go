package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ykarpenko/bookshelf-cli/internal/model"
)

func newTokenStore(t *testing.T) *TokenStore {
	t.Helper()
	return NewTokenStore(setupDB(t), nil)
}

func TestTokenStore_SaveAndGetToken(t *testing.T) {
	s := newTokenStore(t)
	ctx := context.Background()

	tok, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok, "no token stored yet")

	require.NoError(t, s.SaveToken(ctx, "abc.def.ghi"))

	tok, err = s.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)
}

func TestTokenStore_SaveToken_Overwrites(t *testing.T) {
	s := newTokenStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveToken(ctx, "first"))
	require.NoError(t, s.SaveToken(ctx, "second"))

	tok, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", tok)
}

func TestTokenStore_SaveAndGetIdentity(t *testing.T) {
	s := newTokenStore(t)
	ctx := context.Background()

	u := &model.User{
		ID:    "3f1e9c74-5b12-4a31-9c55-0d6f3a2b8e91",
		Email: "reader@example.com",
		Name:  "Reader",
		Role:  model.RoleUser,
	}
	s.SaveIdentity(ctx, u)

	got, err := s.Identity(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u, got)
}

func TestTokenStore_Identity_Missing_ReturnsNil(t *testing.T) {
	s := newTokenStore(t)

	got, err := s.Identity(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTokenStore_Identity_Corrupt_TreatedAsCacheMiss(t *testing.T) {
	db := setupDB(t)
	s := NewTokenStore(db, nil)
	ctx := context.Background()

	require.NoError(t, NewSQLiteRepository(db).Set(ctx, keyIdentity, []byte("{not json")))

	got, err := s.Identity(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTokenStore_SaveAndGetUserID(t *testing.T) {
	s := newTokenStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveUserID(ctx, "3f1e9c74-5b12-4a31-9c55-0d6f3a2b8e91"))

	id, err := s.UserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "3f1e9c74-5b12-4a31-9c55-0d6f3a2b8e91", id)
}

func TestTokenStore_ClearSession_RemovesExactlyThreeKeys(t *testing.T) {
	db := setupDB(t)
	s := NewTokenStore(db, nil)
	ctx := context.Background()

	require.NoError(t, s.SaveToken(ctx, "tok"))
	s.SaveIdentity(ctx, &model.User{ID: "id", Email: "e", Name: "n", Role: "USER"})
	require.NoError(t, s.SaveUserID(ctx, "id"))

	// unrelated application data living in the same keyspace
	repo := NewSQLiteRepository(db)
	require.NoError(t, repo.Set(ctx, "reading_progress:id", []byte(`{"book-1":42}`)))

	require.NoError(t, s.ClearSession(ctx))

	tok, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	user, err := s.Identity(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)

	id, err := s.UserID(ctx)
	require.NoError(t, err)
	assert.Empty(t, id)

	progress, err := repo.Get(ctx, "reading_progress:id")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"book-1":42}`), progress, "logout must not erase unrelated state")
}
