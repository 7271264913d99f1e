// internal/server/store.go
package server

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mwiater/ragbench/internal/fixture"
)

// ErrUnknownDataset is returned when a dataset name is not loaded.
var ErrUnknownDataset = errors.New("unknown dataset")

// Dataset is one loaded fixture. Datasets are immutable once published.
type Dataset struct {
	Name     string
	Path     string
	Doc      *fixture.Document
	Raw      []byte
	Warnings []string
	LoadedAt time.Time
}

type snapshot struct {
	order  []string
	byName map[string]*Dataset
}

// Store holds the loaded datasets. Readers never block; reloads publish a new
// snapshot.
type Store struct {
	mu      sync.Mutex
	current atomic.Pointer[snapshot]
}

// NewStore loads every fixture in paths. The first path is the default dataset.
func NewStore(paths ...string) (*Store, error) {
	if len(paths) == 0 {
		return nil, errors.New("at least one fixture is required")
	}
	snap := &snapshot{byName: make(map[string]*Dataset, len(paths))}
	for _, p := range paths {
		ds, err := loadDataset(p)
		if err != nil {
			return nil, err
		}
		if prev, ok := snap.byName[ds.Name]; ok {
			return nil, fmt.Errorf("dataset %q is loaded from both %s and %s", ds.Name, prev.Path, ds.Path)
		}
		snap.byName[ds.Name] = ds
		snap.order = append(snap.order, ds.Name)
	}
	s := &Store{}
	s.current.Store(snap)
	return s, nil
}

func loadDataset(path string) (*Dataset, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	doc, err := fixture.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load fixture %s: %w", path, err)
	}
	warnings, _ := fixture.Check(doc)
	return &Dataset{
		Name:     fixture.Name(abs),
		Path:     abs,
		Doc:      doc,
		Raw:      data,
		Warnings: warnings,
		LoadedAt: time.Now(),
	}, nil
}

// Names lists the datasets in load order.
func (s *Store) Names() []string {
	snap := s.current.Load()
	out := make([]string, len(snap.order))
	copy(out, snap.order)
	return out
}

// Default is the name of the first dataset.
func (s *Store) Default() string {
	return s.current.Load().order[0]
}

// Get returns a dataset by name.
func (s *Store) Get(name string) (*Dataset, error) {
	ds, ok := s.current.Load().byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDataset, name)
	}
	return ds, nil
}

// List returns every dataset in load order.
func (s *Store) List() []*Dataset {
	snap := s.current.Load()
	out := make([]*Dataset, 0, len(snap.order))
	for _, name := range snap.order {
		out = append(out, snap.byName[name])
	}
	return out
}

// Reload re-reads the named dataset from disk. On failure the previous
// document stays published.
func (s *Store) Reload(name string) (*Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.current.Load()
	prev, ok := old.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDataset, name)
	}
	ds, err := loadDataset(prev.Path)
	if err != nil {
		return nil, err
	}

	next := &snapshot{order: old.order, byName: make(map[string]*Dataset, len(old.byName))}
	for k, v := range old.byName {
		next.byName[k] = v
	}
	next.byName[name] = ds
	s.current.Store(next)
	return ds, nil
}

// byPath maps an absolute file path to its dataset name.
func (s *Store) byPath(path string) (string, bool) {
	clean := filepath.Clean(path)
	for _, ds := range s.List() {
		if ds.Path == clean {
			return ds.Name, true
		}
	}
	return "", false
}
