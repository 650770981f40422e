package loader

import (
	"context"
	"fmt"
	"os"
	"time"

	"StockDash/internal/domain/models"
	"StockDash/internal/domain/repository"
	"StockDash/internal/service/cache"
)

// Store is a read-through memoized loader. The cache key is the file
// fingerprint (path, size, mtime), so a content change invalidates the
// memo and triggers a fresh parse on the next request.
type Store struct {
	path    string
	ttl     time.Duration
	cache   *cache.TTLCache
	metrics repository.Metrics
}

var _ repository.TableSource = (*Store)(nil)

func NewStore(path string, ttl time.Duration, c *cache.TTLCache, m repository.Metrics) *Store {
	return &Store{path: path, ttl: ttl, cache: c, metrics: m}
}

// Load returns the memoized table, parsing the file when the
// fingerprint is not cached. On failure it returns an empty table and
// the DataLoadError.
func (s *Store) Load(ctx context.Context) (models.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key, err := s.fingerprint()
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordError("load")
		}
		return nil, &DataLoadError{File: s.path, Err: err}
	}

	if v, ok := s.cache.Get(key); ok {
		if s.metrics != nil {
			s.metrics.RecordCacheLookup(true)
		}
		return v.(models.Table), nil
	}
	if s.metrics != nil {
		s.metrics.RecordCacheLookup(false)
	}

	start := time.Now()
	table, err := LoadFile(s.path)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordError("load")
		}
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecordRowsLoaded(s.path, len(table))
		s.metrics.RecordLatency("load", time.Since(start).Seconds())
	}

	s.cache.Set(key, table, s.ttl)
	return table, nil
}

func (s *Store) fingerprint() (string, error) {
	fi, err := os.Stat(s.path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("table|%s|%d|%d", s.path, fi.Size(), fi.ModTime().UnixNano()), nil
}
