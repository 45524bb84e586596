// Package store owns durable persistence of the session credential and the
// serialized identity record. It stores exactly three reserved keys and never
// interprets the token it holds.
package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/ykarpenko/bookshelf-cli/internal/dbx"
	"github.com/ykarpenko/bookshelf-cli/internal/logging"
	"github.com/ykarpenko/bookshelf-cli/internal/model"
)

// Reserved keys. Other collaborators persisting into session_state (e.g. the
// reading-progress tracker) must not collide with these: ClearSession removes
// these three keys and nothing else.
const (
	keyToken    = "auth_token"
	keyIdentity = "user_data"
	keyUserID   = "user_id"
)

// TokenStore persists the raw credential token, the serialized user record,
// and the bare user-id slot other collaborators key their data by.
type TokenStore struct {
	db  *sql.DB
	log logging.Logger
}

func NewTokenStore(db *sql.DB, log logging.Logger) *TokenStore {
	if log == nil {
		log = logging.NewDiscardLogger()
	}
	return &TokenStore{db: db, log: log}
}

func (s *TokenStore) getRepo() Repository {
	return NewSQLiteRepository(s.db)
}

// SaveToken stores the raw token string verbatim, overwriting any previous
// value. The token is not validated or decoded here.
func (s *TokenStore) SaveToken(ctx context.Context, token string) error {
	return s.getRepo().Set(ctx, keyToken, []byte(token))
}

// Token returns the stored token string, or "" when none is present.
func (s *TokenStore) Token(ctx context.Context) (string, error) {
	v, err := s.getRepo().Get(ctx, keyToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// SaveIdentity serializes and stores the user record. Failures are logged and
// swallowed, leaving the previously stored record intact.
func (s *TokenStore) SaveIdentity(ctx context.Context, user *model.User) {
	data, err := json.Marshal(user)
	if err != nil {
		s.log.Error(ctx, "failed to serialize user record", "error", err)
		return
	}
	if err := s.getRepo().Set(ctx, keyIdentity, data); err != nil {
		s.log.Error(ctx, "failed to store user record", "error", err)
	}
}

// Identity returns the stored user record. A missing or unparseable value is
// treated as a cache miss and reported as (nil, nil).
func (s *TokenStore) Identity(ctx context.Context) (*model.User, error) {
	data, err := s.getRepo().Get(ctx, keyIdentity)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		s.log.Warn(ctx, "stored user record is corrupt, treating as missing", "error", err)
		return nil, nil
	}
	return &user, nil
}

// SaveUserID stores the bare user identifier other collaborators (e.g. the
// reading-progress tracker) use as "current user id".
func (s *TokenStore) SaveUserID(ctx context.Context, id string) error {
	return s.getRepo().Set(ctx, keyUserID, []byte(id))
}

// UserID returns the bare user identifier, or "" when none is present.
func (s *TokenStore) UserID(ctx context.Context) (string, error) {
	v, err := s.getRepo().Get(ctx, keyUserID)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// ClearSession removes the token, the user record, and the bare user-id slot
// in one transaction. Unrelated keys in the same keyspace are untouched.
func (s *TokenStore) ClearSession(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		for _, key := range []string{keyToken, keyIdentity, keyUserID} {
			if err := repo.Delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
}
