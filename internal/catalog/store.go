package catalog

import (
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/clintwin/clintwin-backend/internal/platform/logger"
)

// Store holds the loaded medicine catalog. The catalog is read once at startup
// and never mutated, so sessions can snapshot it without copying records.
type Store struct {
	log       *logger.Logger
	medicines []*Medicine
	byID      map[string]*Medicine
	byName    map[string]*Medicine
}

type medicinesFile struct {
	Medicines []*Medicine `json:"medicines"`
}

// Load reads the medicine database from path. A missing or malformed file
// degrades to an empty catalog rather than failing startup.
func Load(path string, log *logger.Logger) *Store {
	slog := log.With("service", "CatalogStore")

	s := &Store{
		log:    slog,
		byID:   map[string]*Medicine{},
		byName: map[string]*Medicine{},
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("Medicine database not readable, starting with empty catalog", "path", path, "error", err)
		return s
	}
	var file medicinesFile
	if err := json.Unmarshal(raw, &file); err != nil {
		slog.Error("Medicine database is not valid JSON, starting with empty catalog", "path", path, "error", err)
		return s
	}

	s.medicines = file.Medicines
	for _, m := range s.medicines {
		s.byID[m.ID] = m
		s.byName[strings.ToLower(m.Name)] = m
	}
	slog.Info("Medicine catalog loaded", "count", len(s.medicines))
	return s
}

// NewFromRecords builds a store directly from records; used by tests.
func NewFromRecords(medicines []*Medicine, log *logger.Logger) *Store {
	s := &Store{
		log:       log.With("service", "CatalogStore"),
		medicines: medicines,
		byID:      map[string]*Medicine{},
		byName:    map[string]*Medicine{},
	}
	for _, m := range medicines {
		s.byID[m.ID] = m
		s.byName[strings.ToLower(m.Name)] = m
	}
	return s
}

// List returns the full candidate list in catalog order. Callers must treat
// the returned slice as read-only.
func (s *Store) List() []*Medicine { return s.medicines }

func (s *Store) Len() int { return len(s.medicines) }

func (s *Store) ByID(id string) (*Medicine, bool) {
	m, ok := s.byID[id]
	return m, ok
}

func (s *Store) ByName(name string) (*Medicine, bool) {
	m, ok := s.byName[strings.ToLower(name)]
	return m, ok
}

// ByNameFuzzy falls back to bidirectional substring matching, which absorbs
// partial names and OCR noise.
func (s *Store) ByNameFuzzy(name string) (*Medicine, bool) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if m, ok := s.byName[lower]; ok {
		return m, true
	}
	for key, m := range s.byName {
		if strings.Contains(key, lower) || strings.Contains(lower, key) {
			return m, true
		}
	}
	return nil, false
}

func (s *Store) ByBarcode(code string) (*Medicine, bool) {
	if strings.TrimSpace(code) == "" {
		return nil, false
	}
	for _, m := range s.medicines {
		if m.Barcode == code {
			return m, true
		}
	}
	return nil, false
}

// Categories returns the sorted set of distinct categories.
func (s *Store) Categories() []string {
	seen := map[string]bool{}
	out := []string{}
	for _, m := range s.medicines {
		if m.Category != "" && !seen[m.Category] {
			seen[m.Category] = true
			out = append(out, m.Category)
		}
	}
	sort.Strings(out)
	return out
}
