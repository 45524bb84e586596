// Package identity derives the canonical local user record from a bearer
// token and repairs non-conformant identifiers left behind by older releases.
//
// Tokens are decoded without signature verification: the client has no access
// to the signing key and only needs the claim payload. Validity here means
// "parseable and not past its expiry claim", nothing more.
package identity

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ykarpenko/bookshelf-cli/internal/logging"
	"github.com/ykarpenko/bookshelf-cli/internal/model"
)

// ErrInvalidToken is returned when a token cannot be parsed into claims.
var ErrInvalidToken = errors.New("invalid token format")

// canonicalIDPattern matches the 8-4-4-4-12 UUID form with a version nibble
// of 1-5 and an RFC 4122 variant nibble. Identifiers that do not match are
// never persisted as-is.
var canonicalIDPattern = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// IsCanonicalID reports whether s is a canonical UUID.
func IsCanonicalID(s string) bool {
	return canonicalIDPattern.MatchString(s)
}

// Store is the slice of the token store the resolver needs: the bare user-id
// slot it keeps in sync with the record it produces, and the stored record
// the migration updates in place.
type Store interface {
	SaveUserID(ctx context.Context, id string) error
	UserID(ctx context.Context) (string, error)
	Identity(ctx context.Context) (*model.User, error)
	SaveIdentity(ctx context.Context, user *model.User)
}

// Resolver turns bearer tokens into well-formed user records.
type Resolver struct {
	store Store
	log   logging.Logger

	// newID is a test seam for UUID generation.
	newID func() string
}

func NewResolver(store Store, log logging.Logger) *Resolver {
	if log == nil {
		log = logging.NewDiscardLogger()
	}
	return &Resolver{store: store, log: log, newID: uuid.NewString}
}

// parseClaims decodes the token payload without verifying the signature.
func parseClaims(token string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// Decode produces a user record from the token's claims.
//
// The identifier claim is discarded and replaced with a freshly generated
// UUID when missing or not canonical: upstream tokens may legitimately carry
// non-UUID subjects (raw emails, numeric ids), but the local identity space
// stays UUID-keyed so it composes with the progress tracker's key space.
// The final identifier is also written to the store's bare user-id slot so
// every collaborator keyed by "current user id" observes the same value.
func (r *Resolver) Decode(ctx context.Context, token string) (*model.User, error) {
	claims, err := parseClaims(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id := claims.candidateID()
	if !IsCanonicalID(id) {
		id = r.newID()
		r.log.Debug(ctx, "token identifier not canonical, generated replacement",
			"raw_id", claims.candidateID(), "user_id", id)
	}

	user := &model.User{
		ID:    id,
		Email: claims.email(),
		Name:  claims.displayName(),
		Role:  claims.role(),
	}

	if err := r.store.SaveUserID(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to persist user id: %w", err)
	}

	return user, nil
}

// ValidAt reports whether the token decodes and its expiry claim is strictly
// after now. A token without an expiry claim is never valid.
func (r *Resolver) ValidAt(token string, now time.Time) bool {
	claims, err := parseClaims(token)
	if err != nil {
		return false
	}
	exp := claims.ExpiresAt
	if exp == nil {
		return false
	}
	return now.Before(exp.Time)
}

// MigrateLegacyID upgrades a non-canonical identifier found in the bare
// user-id slot, rewriting the stored user record to match. It runs once at
// startup, is idempotent, and never fails: a broken migration must not brick
// an existing session, so every internal error is logged and swallowed.
//
// Progress records filed under the old identifier are not re-keyed; that
// orphaning is accepted.
func (r *Resolver) MigrateLegacyID(ctx context.Context) {
	current, err := r.store.UserID(ctx)
	if err != nil {
		r.log.Warn(ctx, "id migration: cannot read user id slot", "error", err)
		return
	}
	if current == "" || IsCanonicalID(current) {
		return
	}

	id := r.newID()
	if err := r.store.SaveUserID(ctx, id); err != nil {
		r.log.Warn(ctx, "id migration: cannot overwrite user id slot", "error", err)
		return
	}

	user, err := r.store.Identity(ctx)
	if err != nil {
		r.log.Warn(ctx, "id migration: cannot read user record", "error", err)
		return
	}
	if user != nil {
		user.ID = id
		r.store.SaveIdentity(ctx, user)
	}

	r.log.Info(ctx, "migrated legacy user id to canonical format", "user_id", id)
}
