package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ykarpenko/bookshelf-cli/internal/model"
)

// ---- fake store ----

type fakeStore struct {
	userID string
	user   *model.User

	saveUserIDErr error
	userIDErr     error
	identityErr   error

	saveUserIDCalls int
}

func (f *fakeStore) SaveUserID(_ context.Context, id string) error {
	f.saveUserIDCalls++
	if f.saveUserIDErr != nil {
		return f.saveUserIDErr
	}
	f.userID = id
	return nil
}

func (f *fakeStore) UserID(_ context.Context) (string, error) {
	return f.userID, f.userIDErr
}

func (f *fakeStore) Identity(_ context.Context) (*model.User, error) {
	return f.user, f.identityErr
}

func (f *fakeStore) SaveIdentity(_ context.Context, user *model.User) {
	f.user = user
}

// ---- helpers ----

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func newResolver(store *fakeStore) *Resolver {
	return NewResolver(store, nil)
}

const canonicalID = "3f1e9c74-5b12-4a31-9c55-0d6f3a2b8e91"

// ---- Decode ----

func TestDecode_FullClaimSet(t *testing.T) {
	store := &fakeStore{}
	r := newResolver(store)

	token := signToken(t, jwt.MapClaims{
		"id":   canonicalID,
		"sub":  "reader@example.com",
		"role": "ROLE_ADMIN",
		"name": "Reader One",
	})

	user, err := r.Decode(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, canonicalID, user.ID)
	assert.Equal(t, "reader@example.com", user.Email)
	assert.Equal(t, "ADMIN", user.Role, "ROLE_ prefix must be stripped")
	assert.Equal(t, "Reader One", user.Name)
}

func TestDecode_IDFallsBackToUserIDClaim(t *testing.T) {
	store := &fakeStore{}
	r := newResolver(store)

	token := signToken(t, jwt.MapClaims{
		"userId": canonicalID,
		"sub":    "reader@example.com",
	})

	user, err := r.Decode(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, canonicalID, user.ID)
}

func TestDecode_NonCanonicalID_IsReplaced(t *testing.T) {
	store := &fakeStore{}
	r := newResolver(store)

	// upstream tokens may carry a raw email in the id claim
	token := signToken(t, jwt.MapClaims{
		"id":  "reader@example.com",
		"sub": "reader@example.com",
	})

	user, err := r.Decode(context.Background(), token)
	require.NoError(t, err)

	assert.NotEqual(t, "reader@example.com", user.ID)
	assert.True(t, IsCanonicalID(user.ID))
}

func TestDecode_MissingID_GeneratesCanonicalUUID(t *testing.T) {
	store := &fakeStore{}
	r := newResolver(store)

	token := signToken(t, jwt.MapClaims{"sub": "reader@example.com"})

	user, err := r.Decode(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, IsCanonicalID(user.ID))
}

func TestDecode_EmailFallsBackToEmailClaim(t *testing.T) {
	store := &fakeStore{}
	r := newResolver(store)

	token := signToken(t, jwt.MapClaims{"email": "other@example.com"})

	user, err := r.Decode(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "other@example.com", user.Email)
}

func TestDecode_RoleDefaultsToUser(t *testing.T) {
	store := &fakeStore{}
	r := newResolver(store)

	token := signToken(t, jwt.MapClaims{"sub": "reader@example.com"})

	user, err := r.Decode(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "USER", user.Role)
}

func TestDecode_NamePrecedence(t *testing.T) {
	tests := []struct {
		name   string
		claims jwt.MapClaims
		want   string
	}{
		{"name wins over username", jwt.MapClaims{"name": "A", "username": "B"}, "A"},
		{"username wins over email", jwt.MapClaims{"username": "B", "email": "c@x.com"}, "B"},
		{"fullName probed after username", jwt.MapClaims{"fullName": "Full Name"}, "Full Name"},
		{"firstName probed after fullName", jwt.MapClaims{"firstName": "First"}, "First"},
		{"preferred_username probed last", jwt.MapClaims{"preferred_username": "pref"}, "pref"},
		{"email local part when no name claim", jwt.MapClaims{"email": "c@x.com"}, "c"},
		{"sub local part when no name claim", jwt.MapClaims{"sub": "sub@x.com"}, "sub"},
		{"literal User when nothing available", jwt.MapClaims{}, "User"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newResolver(&fakeStore{})
			user, err := r.Decode(context.Background(), signToken(t, tc.claims))
			require.NoError(t, err)
			assert.Equal(t, tc.want, user.Name)
		})
	}
}

func TestDecode_PersistsBareUserID(t *testing.T) {
	store := &fakeStore{}
	r := newResolver(store)

	token := signToken(t, jwt.MapClaims{"id": canonicalID, "sub": "reader@example.com"})

	user, err := r.Decode(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, store.userID, "bare id slot must carry the same value as the record")
}

func TestDecode_Garbage_ReturnsErrInvalidToken(t *testing.T) {
	r := newResolver(&fakeStore{})

	_, err := r.Decode(context.Background(), "not-a-token")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecode_StoreFailure_Surfaces(t *testing.T) {
	store := &fakeStore{saveUserIDErr: errors.New("disk full")}
	r := newResolver(store)

	_, err := r.Decode(context.Background(), signToken(t, jwt.MapClaims{"id": canonicalID}))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidToken)
}

// ---- ValidAt ----

func TestValidAt(t *testing.T) {
	r := newResolver(&fakeStore{})
	now := time.Now()

	future := signToken(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()})
	past := signToken(t, jwt.MapClaims{"exp": now.Add(-time.Hour).Unix()})
	noExp := signToken(t, jwt.MapClaims{"sub": "reader@example.com"})

	assert.True(t, r.ValidAt(future, now))
	assert.False(t, r.ValidAt(past, now))
	assert.False(t, r.ValidAt(noExp, now), "token without expiry is never valid")
	assert.False(t, r.ValidAt("garbage", now))
	assert.False(t, r.ValidAt("", now))
}

func TestValidAt_ExpiryBoundaryIsExclusive(t *testing.T) {
	r := newResolver(&fakeStore{})
	now := time.Unix(1_900_000_000, 0)

	token := signToken(t, jwt.MapClaims{"exp": now.Unix()})
	assert.False(t, r.ValidAt(token, now), "validity requires now strictly before exp")
}

// ---- MigrateLegacyID ----

func TestMigrateLegacyID_ReplacesNonCanonicalID(t *testing.T) {
	store := &fakeStore{
		userID: "legacy-id-42",
		user:   &model.User{ID: "legacy-id-42", Email: "reader@example.com", Name: "Reader", Role: "USER"},
	}
	r := newResolver(store)

	r.MigrateLegacyID(context.Background())

	assert.True(t, IsCanonicalID(store.userID))
	require.NotNil(t, store.user)
	assert.Equal(t, store.userID, store.user.ID, "stored record must be re-keyed to the new id")
}

func TestMigrateLegacyID_Idempotent(t *testing.T) {
	store := &fakeStore{userID: "legacy-id-42"}
	r := newResolver(store)
	ctx := context.Background()

	r.MigrateLegacyID(ctx)
	first := store.userID

	r.MigrateLegacyID(ctx)
	assert.Equal(t, first, store.userID, "second run must not rewrite the id again")
}

func TestMigrateLegacyID_NoopWhenSlotAbsent(t *testing.T) {
	store := &fakeStore{}
	r := newResolver(store)

	r.MigrateLegacyID(context.Background())

	assert.Empty(t, store.userID)
	assert.Zero(t, store.saveUserIDCalls)
}

func TestMigrateLegacyID_NoopWhenAlreadyCanonical(t *testing.T) {
	store := &fakeStore{userID: canonicalID}
	r := newResolver(store)

	r.MigrateLegacyID(context.Background())

	assert.Equal(t, canonicalID, store.userID)
	assert.Zero(t, store.saveUserIDCalls)
}

func TestMigrateLegacyID_SwallowsStoreErrors(t *testing.T) {
	store := &fakeStore{userID: "legacy-id-42", saveUserIDErr: errors.New("disk full")}
	r := newResolver(store)

	// must not panic or surface anything
	r.MigrateLegacyID(context.Background())

	assert.Equal(t, "legacy-id-42", store.userID, "failed migration leaves prior state unchanged")
}

// ---- IsCanonicalID ----

func TestIsCanonicalID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{canonicalID, true},
		{"3F1E9C74-5B12-4A31-9C55-0D6F3A2B8E91", true}, // case-insensitive
		{"", false},
		{"reader@example.com", false},
		{"12345", false},
		{"3f1e9c74-5b12-0a31-9c55-0d6f3a2b8e91", false}, // version nibble 0
		{"3f1e9c74-5b12-4a31-7c55-0d6f3a2b8e91", false}, // variant nibble 7
		{"3f1e9c74-5b12-4a31-9c55-0d6f3a2b8e9", false},  // short last group
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, IsCanonicalID(tc.id), tc.id)
	}
}
