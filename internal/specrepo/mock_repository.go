package specrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockRepository implements Repository against JSON files on disk, one
// per name/version pair, rooted at Dir. It exists so the CLI and tests
// can run without a PostgreSQL instance (PEGSPEC_STORE_TYPE=mock).
type MockRepository struct {
	Dir string

	mu sync.Mutex
}

// NewMockRepository returns a MockRepository rooted at dir, creating it
// if necessary.
func NewMockRepository(dir string) (*MockRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create mock data path %q: %w", dir, err)
	}
	return &MockRepository{Dir: dir}, nil
}

func (m *MockRepository) Save(_ context.Context, name, source string) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, err := m.versions(name)
	if err != nil {
		return nil, err
	}
	next := 1
	if len(existing) > 0 {
		next = existing[len(existing)-1].Version + 1
	}

	rec := &Record{
		SpecID:    uuid.New().String(),
		Name:      name,
		Source:    source,
		Version:   next,
		CreatedAt: time.Now().UTC(),
	}
	if err := m.write(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (m *MockRepository) Load(_ context.Context, name string, version int) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, err := os.ReadFile(m.path(name, version))
	if err != nil {
		return nil, fmt.Errorf("specification not found: %s version %d", name, version)
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("corrupt mock record for %q version %d: %w", name, version, err)
	}
	return &rec, nil
}

func (m *MockRepository) LoadLatest(_ context.Context, name string) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	versions, err := m.versions(name)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, fmt.Errorf("specification not found: %s", name)
	}
	return versions[len(versions)-1], nil
}

func (m *MockRepository) ListVersions(_ context.Context, name string) ([]*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.versions(name)
}

func (m *MockRepository) versions(name string) ([]*Record, error) {
	pattern := filepath.Join(m.Dir, name+".v*.json")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list mock records for %q: %w", name, err)
	}
	recs := make([]*Record, 0, len(matches))
	for _, path := range matches {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %q: %w", path, err)
		}
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("corrupt mock record %q: %w", path, err)
		}
		recs = append(recs, &rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Version < recs[j].Version })
	return recs, nil
}

func (m *MockRepository) write(rec *Record) error {
	raw, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal mock record: %w", err)
	}
	if err := os.WriteFile(m.path(rec.Name, rec.Version), raw, 0o644); err != nil {
		return fmt.Errorf("failed to write mock record: %w", err)
	}
	return nil
}

func (m *MockRepository) path(name string, version int) string {
	return filepath.Join(m.Dir, fmt.Sprintf("%s.v%d.json", name, version))
}
