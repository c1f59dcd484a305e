package score

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/quasilyte/gdata/v2"
)

func TestUpdateHighScores(t *testing.T) {
	tests := []struct {
		name     string
		existing []int
		newScore int
		want     []int
	}{
		{"empty", nil, 100, []int{100}},
		{"too low", []int{100, 90, 80, 70, 60}, 50, []int{100, 90, 80, 70, 60}},
		{"inserted", []int{100, 90, 80, 70, 60}, 95, []int{100, 95, 90, 80, 70}},
		{"tie", []int{100, 50}, 50, []int{100, 50, 50}},
		{"unsorted input", []int{10, 30, 20}, 25, []int{30, 25, 20, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UpdateHighScores(tt.existing, tt.newScore, 5)
			if !slices.Equal(got, tt.want) {
				t.Errorf("UpdateHighScores(%v, %d, 5) = %v, want %v", tt.existing, tt.newScore, got, tt.want)
			}
		})
	}
}

func TestUpdateHighScoresExtremeValues(t *testing.T) {
	got := UpdateHighScores([]int{math.MinInt, 0}, math.MaxInt, 5)
	if want := []int{math.MaxInt, 0, math.MinInt}; !slices.Equal(got, want) {
		t.Errorf("UpdateHighScores = %v, want %v", got, want)
	}
}

func TestUpdateHighScoresDoesNotModifyInput(t *testing.T) {
	existing := []int{100, 90, 80, 70, 60}
	UpdateHighScores(existing, 95, 5)
	if !slices.Equal(existing, []int{100, 90, 80, 70, 60}) {
		t.Errorf("input modified: %v", existing)
	}
}

type failingStore struct {
	saved []int
}

func (f *failingStore) Load() ([]int, error)    { return nil, ErrCorrupt }
func (f *failingStore) Save(scores []int) error { f.saved = scores; return nil }

func TestBoardLoadFailureIsEmpty(t *testing.T) {
	store := &failingStore{}
	b := NewBoard(store, 0)

	if got := b.Load(); len(got) != 0 || got == nil {
		t.Errorf("Load() = %#v, want empty non-nil list", got)
	}
	if got := b.Record(42); !slices.Equal(got, []int{42}) {
		t.Errorf("Record(42) = %v", got)
	}
	if !slices.Equal(store.saved, []int{42}) {
		t.Errorf("saved %v", store.saved)
	}
}

// busyStore fails to read, like a locked database, and records saves.
type busyStore struct {
	saves int
}

func (b *busyStore) Load() ([]int, error) {
	return nil, errors.New("database is locked (5) (SQLITE_BUSY)")
}
func (b *busyStore) Save(scores []int) error { b.saves++; return nil }

func TestBoardRecordKeepsUnreadableStore(t *testing.T) {
	store := &busyStore{}
	b := NewBoard(store, 5)

	if got := b.Record(3); !slices.Equal(got, []int{3}) {
		t.Errorf("Record(3) = %v, want [3]", got)
	}
	if store.saves != 0 {
		t.Errorf("Save called %d times on an unreadable store, want 0", store.saves)
	}
}

func TestBoardRecord(t *testing.T) {
	store := NewMemoryStore(100, 90, 80, 70, 60)
	b := NewBoard(store, 5)

	if got := b.Best(); got != 100 {
		t.Errorf("Best() = %d, want 100", got)
	}
	b.Record(95)
	if got := b.Load(); !slices.Equal(got, []int{100, 95, 90, 80, 70}) {
		t.Errorf("after Record: %v", got)
	}
	if got, _ := store.Load(); !slices.Equal(got, []int{100, 95, 90, 80, 70}) {
		t.Errorf("store not updated: %v", got)
	}
}

func TestBoardConcurrentRecord(t *testing.T) {
	b := NewBoard(NewMemoryStore(), 5)
	done := make(chan struct{})
	for i := range 20 {
		go func() {
			b.Record(i)
			done <- struct{}{}
		}()
	}
	for range 20 {
		<-done
	}
	if got := b.Load(); !slices.Equal(got, []int{19, 18, 17, 16, 15}) {
		t.Errorf("concurrent records lost updates: %v", got)
	}
}

func openTestGdata(t *testing.T) *gdata.Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", "")
	m, err := gdata.Open(gdata.Config{
		AppName: fmt.Sprintf("rockfall_test_%d", time.Now().UnixNano()),
	})
	if err != nil {
		t.Skipf("cannot create gdata manager: %v", err)
	}
	return m
}

func TestGdataStoreRoundTrip(t *testing.T) {
	store := NewGdataStore(openTestGdata(t))

	scores, err := store.Load()
	if err != nil || len(scores) != 0 {
		t.Fatalf("fresh Load() = %v, %v", scores, err)
	}

	if err := store.Save([]int{30, 20, 10}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	scores, err = store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !slices.Equal(scores, []int{30, 20, 10}) {
		t.Errorf("Load() = %v", scores)
	}
}

func TestGdataStoreCorrupt(t *testing.T) {
	m := openTestGdata(t)
	if err := m.SaveObjectProp(scoresObject, scoresProperty, []byte("{not json")); err != nil {
		t.Fatalf("SaveObjectProp: %v", err)
	}

	_, err := NewGdataStore(m).Load()
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("Load() error = %v, want ErrCorrupt", err)
	}

	if got := NewBoard(NewGdataStore(m), 5).Load(); len(got) != 0 {
		t.Errorf("board over corrupt data = %v, want empty", got)
	}
}

func TestGdataStoreNilManager(t *testing.T) {
	store := NewGdataStore(nil)
	if err := store.Save([]int{1}); err != nil {
		t.Errorf("Save: %v", err)
	}
	if scores, err := store.Load(); err != nil || scores != nil {
		t.Errorf("Load() = %v, %v", scores, err)
	}
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")
	store, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer store.Close()

	b := NewBoard(store, 3)
	b.Record(10)
	b.Record(30)
	b.Record(20)
	b.Record(5)

	if got := b.Load(); !slices.Equal(got, []int{30, 20, 10}) {
		t.Errorf("Load() = %v, want [30 20 10]", got)
	}

	// A second connection sees the same list.
	other, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer other.Close()
	got, err := other.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !slices.Equal(got, []int{30, 20, 10}) {
		t.Errorf("reopened Load() = %v", got)
	}
}

func TestSQLitePragmasOnEveryConnection(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	for i := range 2 {
		// Both are held open, so the pool has to hand out distinct connections
		c, err := store.conn.Conn(ctx)
		if err != nil {
			t.Fatalf("Conn: %v", err)
		}
		defer c.Close()

		var timeout int
		if err := c.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&timeout); err != nil {
			t.Fatalf("busy_timeout: %v", err)
		}
		if timeout != 5000 {
			t.Errorf("connection %d busy_timeout = %d, want 5000", i, timeout)
		}

		var mode string
		if err := c.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode); err != nil {
			t.Fatalf("journal_mode: %v", err)
		}
		if mode != "wal" {
			t.Errorf("connection %d journal_mode = %q, want wal", i, mode)
		}
	}
}
