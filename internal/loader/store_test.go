package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"StockDash/internal/service/cache"
)

type stubMetrics struct {
	hits, misses, errors int
}

func (s *stubMetrics) RecordRowsLoaded(string, int)  {}
func (s *stubMetrics) RecordError(string)            { s.errors++ }
func (s *stubMetrics) RecordLatency(string, float64) {}

func (s *stubMetrics) RecordCacheLookup(hit bool) {
	if hit {
		s.hits++
	} else {
		s.misses++
	}
}

func TestStoreMemoizesByFingerprint(t *testing.T) {
	path := writeCSV(t,
		`2024-01-15,TCS,3800,1%,IT,Software,100,1,1,1,1,1,x`,
	)
	m := &stubMetrics{}
	store := NewStore(path, 0, cache.NewTTLCache(), m)

	ctx := context.Background()
	first, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	second, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("unexpected row counts %d/%d", len(first), len(second))
	}
	if m.misses != 1 || m.hits != 1 {
		t.Fatalf("expected 1 miss + 1 hit, got %d/%d", m.misses, m.hits)
	}
}

func TestStoreReloadsOnContentChange(t *testing.T) {
	path := writeCSV(t,
		`2024-01-15,TCS,3800,1%,IT,Software,100,1,1,1,1,1,x`,
	)
	store := NewStore(path, 0, cache.NewTTLCache(), nil)

	ctx := context.Background()
	first, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected 1 row, got %d", len(first))
	}

	content := csvHeader + "\n" +
		"2024-01-15,TCS,3800,1%,IT,Software,100,1,1,1,1,1,x\n" +
		"2024-01-16,INFY,1500,2%,IT,Software,200,1,1,1,1,1,y"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	// Fingerprint includes mtime; nudge it in case the writes land in
	// the same timestamp granule.
	future := time.Now().Add(time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}

	second, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if len(second) != 2 {
		t.Fatalf("expected reload with 2 rows, got %d", len(second))
	}
}

func TestStoreLoadErrorOnMissingFile(t *testing.T) {
	m := &stubMetrics{}
	store := NewStore(filepath.Join(t.TempDir(), "absent.csv"), 0, cache.NewTTLCache(), m)

	table, err := store.Load(context.Background())
	if !IsLoadError(err) {
		t.Fatalf("expected DataLoadError, got %v", err)
	}
	if len(table) != 0 {
		t.Fatalf("expected empty table")
	}
	if m.errors != 1 {
		t.Fatalf("expected 1 error recorded, got %d", m.errors)
	}
}
