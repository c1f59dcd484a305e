// Package score keeps the bounded high-score list and the stores that
// persist it.
package score

import (
	"cmp"
	"errors"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/tomz197/rockfall/internal/config"
)

// ErrCorrupt is returned by stores whose persisted data cannot be decoded.
var ErrCorrupt = errors.New("score: corrupt high-score data")

// Store loads and saves a high-score list, highest first.
type Store interface {
	Load() ([]int, error)
	Save(scores []int) error
}

// UpdateHighScores returns existing plus newScore, sorted descending and
// truncated to limit. existing is not modified.
func UpdateHighScores(existing []int, newScore, limit int) []int {
	scores := make([]int, 0, len(existing)+1)
	scores = append(scores, existing...)
	scores = append(scores, newScore)
	slices.SortStableFunc(scores, func(a, b int) int { return cmp.Compare(b, a) })
	if limit >= 0 && len(scores) > limit {
		scores = scores[:limit]
	}
	return scores
}

// Board is the high-score list shared by every game using the same store.
// It is safe for concurrent use.
type Board struct {
	mu    sync.Mutex
	store Store
	limit int
}

// NewBoard creates a board over store. A non-positive limit uses
// config.HighScoreLimit.
func NewBoard(store Store, limit int) *Board {
	if limit <= 0 {
		limit = config.HighScoreLimit
	}
	return &Board{store: store, limit: limit}
}

// Load returns the persisted scores. Missing or unreadable data yields an
// empty list.
func (b *Board) Load() []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	scores, _ := b.load()
	return scores
}

// load returns the persisted scores, or an empty list and the error when
// they cannot be read.
func (b *Board) load() ([]int, error) {
	scores, err := b.store.Load()
	if err != nil {
		log.Warn("loading high scores failed, starting empty", "err", err)
		return []int{}, err
	}
	if scores == nil {
		return []int{}, nil
	}
	return scores, nil
}

// Best returns the top score, or 0 when there is none.
func (b *Board) Best() int {
	scores := b.Load()
	if len(scores) == 0 {
		return 0
	}
	return scores[0]
}

// Record merges newScore into the persisted list, saves it and returns
// the result. A failed save is logged; the merged list is still returned.
// Corrupt data is overwritten, but when the store could not be read at all
// (e.g. the database is busy) nothing is saved and the list is for display
// only.
func (b *Board) Record(newScore int) []int {
	b.mu.Lock()
	defer b.mu.Unlock()

	existing, err := b.load()
	scores := UpdateHighScores(existing, newScore, b.limit)
	if err != nil && !errors.Is(err, ErrCorrupt) {
		log.Warn("high score not saved, store unreadable", "score", newScore)
		return scores
	}
	if err := b.store.Save(scores); err != nil {
		log.Warn("saving high scores failed", "err", err)
	}
	return scores
}

// MemoryStore keeps scores in process memory.
type MemoryStore struct {
	mu     sync.Mutex
	scores []int
}

// NewMemoryStore creates a store pre-filled with scores.
func NewMemoryStore(scores ...int) *MemoryStore {
	return &MemoryStore{scores: slices.Clone(scores)}
}

// Load implements Store.
func (m *MemoryStore) Load() ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.scores), nil
}

// Save implements Store.
func (m *MemoryStore) Save(scores []int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores = slices.Clone(scores)
	return nil
}
