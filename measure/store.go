package measure

import (
	"fmt"
)

// Store is the read-only lookup from measure identifier to configuration.
// It is built once and shared by every validator; no validator mutates it.
type Store struct {
	byID    map[string]*Config
	ordered []*Config
}

// NewStore builds a store from configuration records. The declared order
// is preserved for All(); measure identifiers must be unique.
func NewStore(configs ...Config) (*Store, error) {
	s := &Store{
		byID:    make(map[string]*Config, len(configs)),
		ordered: make([]*Config, 0, len(configs)),
	}
	for i := range configs {
		cfg := configs[i]
		if cfg.MeasureID == "" {
			return nil, fmt.Errorf("measure config at index %d has no measureId", i)
		}
		if _, dup := s.byID[cfg.MeasureID]; dup {
			return nil, fmt.Errorf("duplicate measure config %q", cfg.MeasureID)
		}
		s.byID[cfg.MeasureID] = &cfg
		s.ordered = append(s.ordered, &cfg)
	}
	return s, nil
}

// Lookup returns the configuration for a measure identifier.
func (s *Store) Lookup(measureID string) (*Config, bool) {
	cfg, ok := s.byID[measureID]
	return cfg, ok
}

// All returns every configuration in declared order.
// The returned slice must not be modified.
func (s *Store) All() []*Config {
	return s.ordered
}

// Len returns the number of configurations in the store.
func (s *Store) Len() int {
	return len(s.ordered)
}
