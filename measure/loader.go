package measure

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"

	"github.com/goqpp/validator/pkg/logger"
)

// LoadStore reads a measures data file and builds an immutable Store.
// Both YAML and JSON files are accepted. The file is read exactly once at
// process start; the resulting store is shared read-only afterwards.
func LoadStore(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open measures data: %w", err)
	}
	defer f.Close()

	store, err := ReadStore(f)
	if err != nil {
		return nil, fmt.Errorf("measures data %s: %w", path, err)
	}
	return store, nil
}

// ReadStore parses measures data from a reader and builds a Store.
func ReadStore(r io.Reader) (*Store, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var configs []Config
	if err := yaml.Unmarshal(raw, &configs); err != nil {
		return nil, fmt.Errorf("parse measures data: %w", err)
	}

	store, err := NewStore(configs...)
	if err != nil {
		return nil, err
	}

	// Production measure identifiers are GUIDs. A malformed one is almost
	// always a data entry mistake in the measures file, but custom test
	// fixtures legitimately use symbolic identifiers, so only log it.
	for _, cfg := range store.All() {
		if uuid.Validate(cfg.MeasureID) != nil {
			logger.Warn("measure %s (%s) has a non-GUID measureId", cfg.MeasureID, cfg.ElectronicMeasureID)
		}
	}

	logger.Debug("loaded %d measure configurations", store.Len())
	return store, nil
}
