// Package progress persists per-user reading positions. Records live in the
// same keyspace as the session state but under their own key prefix, filed by
// the bare user id, so they survive session teardown: logging out must never
// erase how far a user got in a book.
//
// Whether records filed under an identifier replaced by the legacy-id
// migration should be re-keyed is deliberately left alone; orphaned positions
// are accepted.
package progress

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ykarpenko/bookshelf-cli/internal/logging"
	"github.com/ykarpenko/bookshelf-cli/internal/store"
)

const keyPrefix = "reading_progress:"

// Tracker records the furthest page reached per book, per user.
type Tracker struct {
	repo store.Repository
	log  logging.Logger
}

func NewTracker(repo store.Repository, log logging.Logger) *Tracker {
	if log == nil {
		log = logging.NewDiscardLogger()
	}
	return &Tracker{repo: repo, log: log}
}

func progressKey(userID string) string {
	return keyPrefix + userID
}

// load reads the user's progress map. A corrupt record is treated as empty.
func (t *Tracker) load(ctx context.Context, userID string) (map[string]int, error) {
	data, err := t.repo.Get(ctx, progressKey(userID))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return map[string]int{}, nil
	}

	positions := map[string]int{}
	if err := json.Unmarshal(data, &positions); err != nil {
		t.log.Warn(ctx, "reading progress record is corrupt, starting over", "user_id", userID, "error", err)
		return map[string]int{}, nil
	}
	return positions, nil
}

// Save records that userID reached page in bookID.
func (t *Tracker) Save(ctx context.Context, userID, bookID string, page int) error {
	if userID == "" {
		return fmt.Errorf("no user id to file progress under")
	}

	positions, err := t.load(ctx, userID)
	if err != nil {
		return err
	}
	positions[bookID] = page

	data, err := json.Marshal(positions)
	if err != nil {
		return fmt.Errorf("failed to serialize reading progress: %w", err)
	}
	return t.repo.Set(ctx, progressKey(userID), data)
}

// Position returns the recorded page for bookID and whether one exists.
func (t *Tracker) Position(ctx context.Context, userID, bookID string) (int, bool, error) {
	positions, err := t.load(ctx, userID)
	if err != nil {
		return 0, false, err
	}
	page, ok := positions[bookID]
	return page, ok, nil
}

// All returns every recorded position for userID, keyed by book id.
func (t *Tracker) All(ctx context.Context, userID string) (map[string]int, error) {
	return t.load(ctx, userID)
}
