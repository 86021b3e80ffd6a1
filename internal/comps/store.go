package comps

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"
)

// DefaultStoreCapacity is the number of comp sets a Store keeps before evicting
// the least recently used one.
const DefaultStoreCapacity = 64

// Store provides thread-safe storage for named comp sets, backed by JSONL files.
// Sets are held in an LRU cache so a long-running server stays bounded; an
// evicted set is simply reloaded from disk on next use.
type Store struct {
	mu   sync.Mutex
	sets *lru.Cache[string, []ComparableSale] // Keyed by set name (usually a subject slug)
}

// NewStore creates a new empty Store with DefaultStoreCapacity.
func NewStore() *Store {
	return NewStoreSize(DefaultStoreCapacity)
}

// NewStoreSize creates a new empty Store holding at most size sets.
func NewStoreSize(size int) *Store {
	if size <= 0 {
		size = DefaultStoreCapacity
	}
	sets, _ := lru.New[string, []ComparableSale](size) // only fails for size <= 0
	return &Store{sets: sets}
}

// Append merges sales into the named set. Records are deduplicated by ID
// (the newer copy wins) and kept ordered by DaysAgo, then ID.
func (s *Store) Append(name string, sales []ComparableSale) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, _ := s.sets.Peek(name)
	set := make([]ComparableSale, len(prev), len(prev)+len(sales))
	copy(set, prev)

	index := make(map[string]int, len(set))
	for i, c := range set {
		index[c.ID] = i
	}

	for _, c := range sales {
		if i, ok := index[c.ID]; ok {
			set[i] = c
			continue
		}
		index[c.ID] = len(set)
		set = append(set, c)
	}

	sort.SliceStable(set, func(i, j int) bool {
		if set[i].DaysAgo != set[j].DaysAgo {
			return set[i].DaysAgo < set[j].DaysAgo
		}
		return set[i].ID < set[j].ID
	})

	s.sets.Add(name, set)
}

// Get returns a copy of the named set.
func (s *Store) Get(name string) []ComparableSale {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.sets.Get(name)
	if !ok {
		return nil
	}
	out := make([]ComparableSale, len(set))
	copy(out, set)
	return out
}

// Count returns the number of sales in the named set.
func (s *Store) Count(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, _ := s.sets.Peek(name)
	return len(set)
}

// Names returns the loaded set names in sorted order.
func (s *Store) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := s.sets.Keys()
	sort.Strings(names)
	return names
}

// Load reads the named set from dir/<name>.jsonl. A missing file is not an error.
func (s *Store) Load(dir, name string) error {
	path := filepath.Join(dir, name+".jsonl")
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open comps file: %w", err)
	}
	defer file.Close()

	var sales []ComparableSale
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var c ComparableSale
		if err := json.Unmarshal(line, &c); err != nil {
			log.Warn().Err(err).Str("set", name).Msg("Skipping invalid JSON line in comps file")
			continue
		}
		sales = append(sales, c)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading comps file: %w", err)
	}

	log.Info().Str("set", name).Int("count", len(sales)).Msg("Loaded comps from disk")
	s.Append(name, sales)
	return nil
}

// Save writes the named set to dir/<name>.jsonl via a temp file and rename.
func (s *Store) Save(dir, name string) error {
	s.mu.Lock()
	set, ok := s.sets.Peek(name)
	s.mu.Unlock()

	if !ok || len(set) == 0 {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create comps directory: %w", err)
	}

	path := filepath.Join(dir, name+".jsonl")
	tmpPath := path + ".tmp"

	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create temp comps file: %w", err)
	}

	writer := bufio.NewWriter(file)
	encoder := json.NewEncoder(writer)
	for _, c := range set {
		if err := encoder.Encode(c); err != nil {
			file.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("failed to encode comp %s: %w", c.ID, err)
		}
	}

	if err := writer.Flush(); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to flush writer: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename comps file: %w", err)
	}

	log.Info().Str("set", name).Int("count", len(set)).Msg("Comps saved to disk")
	return nil
}

// Dataset is the on-disk shape of a single-file comp set.
type Dataset struct {
	Subject *Subject         `json:"subject,omitempty"`
	Comps   []ComparableSale `json:"comps"`
}

// ReadFile loads a comp set from path. Three layouts are accepted: a Dataset
// object, a bare JSON array of sales, or JSONL with one sale per line.
func ReadFile(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read comps file: %w", err)
	}
	return Decode(data)
}

// Decode parses any of the layouts accepted by ReadFile.
func Decode(data []byte) (Dataset, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Dataset{}, nil
	}

	switch trimmed[0] {
	case '[':
		var sales []ComparableSale
		if err := json.Unmarshal(trimmed, &sales); err != nil {
			return Dataset{}, fmt.Errorf("decode comps array: %w", err)
		}
		return Dataset{Comps: sales}, nil
	case '{':
		var ds Dataset
		if err := json.Unmarshal(trimmed, &ds); err == nil && ds.Comps != nil {
			return ds, nil
		}
	}

	var sales []ComparableSale
	for i, line := range strings.Split(string(trimmed), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var c ComparableSale
		if err := json.Unmarshal([]byte(line), &c); err != nil {
			return Dataset{}, fmt.Errorf("decode comps line %d: %w", i+1, err)
		}
		sales = append(sales, c)
	}
	return Dataset{Comps: sales}, nil
}
