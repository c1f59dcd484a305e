package score

import (
	"encoding/json"
	"fmt"

	"github.com/quasilyte/gdata/v2"
)

// Storage keys inside the gdata app directory.
const (
	scoresObject   = "scores"
	scoresProperty = "high_scores"
)

// GdataStore persists scores as a JSON array in the per-user data
// directory managed by gdata. A nil manager degrades to no persistence.
type GdataStore struct {
	manager *gdata.Manager
}

// NewGdataStore wraps an opened manager. m may be nil.
func NewGdataStore(m *gdata.Manager) *GdataStore {
	return &GdataStore{manager: m}
}

// OpenGdataStore opens the data directory for appName.
func OpenGdataStore(appName string) (*GdataStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open gdata %q: %w", appName, err)
	}
	return NewGdataStore(m), nil
}

// Load implements Store. A missing entry is an empty list.
func (s *GdataStore) Load() ([]int, error) {
	if s.manager == nil || !s.manager.ObjectPropExists(scoresObject, scoresProperty) {
		return nil, nil
	}

	data, err := s.manager.LoadObjectProp(scoresObject, scoresProperty)
	if err != nil {
		return nil, fmt.Errorf("load high scores: %w", err)
	}

	var scores []int
	if err := json.Unmarshal(data, &scores); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return scores, nil
}

// Save implements Store.
func (s *GdataStore) Save(scores []int) error {
	if s.manager == nil {
		return nil
	}

	if scores == nil {
		scores = []int{}
	}
	data, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("marshal high scores: %w", err)
	}
	if err := s.manager.SaveObjectProp(scoresObject, scoresProperty, data); err != nil {
		return fmt.Errorf("save high scores: %w", err)
	}
	return nil
}
