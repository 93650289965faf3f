package pipeline

import (
	"fmt"
	"os"
	"sync"
	"time"

	"supplypulse/internal/dataset"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// Dataset is the immutable working set produced by one pipeline run. No
// later stage mutates it; view filtering and aggregation always derive fresh
// slices from it, so concurrent read-only consumers need no locking.
type Dataset struct {
	Shipments     []Shipment
	Columns       ColumnSet
	WeightCeiling *float64
	LoadedAt      time.Time
}

// Store memoizes the one-time dataset load. The cache key is the source
// identity (path, size, mtime), so an edited or replaced file invalidates
// the cache on the next access. Concurrent first loads collapse into a
// single pipeline run.
type Store struct {
	path string

	mu    sync.RWMutex
	group singleflight.Group
	key   string
	data  *Dataset
}

// NewStore creates a store bound to one dataset file.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Dataset returns the cleaned, enriched working set, loading it on first use
// and whenever the source file changes.
func (s *Store) Dataset() (*Dataset, error) {
	key, err := s.sourceKey()
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	if s.data != nil && s.key == key {
		d := s.data
		s.mu.RUnlock()
		return d, nil
	}
	s.mu.RUnlock()

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		d, err := Build(s.path)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.key = key
		s.data = d
		s.mu.Unlock()
		return d, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Dataset), nil
}

func (s *Store) sourceKey() (string, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return "", fmt.Errorf("failed to stat dataset %s: %w", s.path, err)
	}
	return fmt.Sprintf("%s|%d|%d", s.path, info.Size(), info.ModTime().UnixNano()), nil
}

// Build runs the full pipeline once: read, validate, normalize, clean,
// enrich. Schema validation failure is the only fatal outcome; an input that
// cleans down to zero records is a valid, empty dataset.
func Build(path string) (*Dataset, error) {
	table, err := dataset.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return BuildFromTable(table)
}

// BuildFromTable runs the pipeline on an already-loaded table.
func BuildFromTable(table *dataset.Table) (*Dataset, error) {
	if err := table.Validate(dataset.ShipmentSchema()); err != nil {
		return nil, err
	}

	raw := table.Len()
	records, cols := Normalize(table)
	records, ceiling := Clean(records, cols)
	records = Enrich(records)

	ev := log.Info().
		Int("raw", raw).
		Int("retained", len(records)).
		Int("dropped", raw-len(records))
	if ceiling != nil {
		ev = ev.Float64("weightCeiling", *ceiling)
	}
	ev.Msg("Dataset pipeline complete")

	return &Dataset{
		Shipments:     records,
		Columns:       cols,
		WeightCeiling: ceiling,
		LoadedAt:      time.Now(),
	}, nil
}
