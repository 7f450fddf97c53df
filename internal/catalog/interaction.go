package catalog

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/clintwin/clintwin-backend/internal/platform/logger"
)

// Interaction is one known drug-drug or drug-group interaction. Either side
// may name a specific drug, a group, or both.
type Interaction struct {
	ID              string   `json:"id"`
	DrugA           string   `json:"drug_a"`
	DrugAGroup      string   `json:"drug_a_group,omitempty"`
	DrugB           string   `json:"drug_b"`
	DrugBGroup      string   `json:"drug_b_group,omitempty"`
	Severity        string   `json:"severity"`
	Description     string   `json:"description"`
	ClinicalEffects []string `json:"clinical_effects,omitempty"`
	Symptoms        []string `json:"symptoms,omitempty"`
	Recommendation  string   `json:"recommendation,omitempty"`
	Monitoring      string   `json:"monitoring,omitempty"`
	EvidenceLevel   string   `json:"evidence_level,omitempty"`
	Alternatives    []string `json:"alternatives,omitempty"`
}

// Interaction severities, most severe first.
const (
	SeverityContraindicated = "contraindicated"
	SeverityMajor           = "major"
	SeverityModerate        = "moderate"
	SeverityMinor           = "minor"
)

// InteractionStore indexes interactions by every drug name and group they
// mention, lowercased, for constant-time term lookup.
type InteractionStore struct {
	log          *logger.Logger
	interactions []*Interaction
	byTerm       map[string][]*Interaction
}

type interactionsFile struct {
	Interactions []*Interaction `json:"interactions"`
}

func LoadInteractions(path string, log *logger.Logger) *InteractionStore {
	slog := log.With("service", "InteractionStore")

	raw, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("Interaction database not readable, starting empty", "path", path, "error", err)
		return NewInteractionsFromRecords(nil, log)
	}
	var file interactionsFile
	if err := json.Unmarshal(raw, &file); err != nil {
		slog.Error("Interaction database is not valid JSON, starting empty", "path", path, "error", err)
		return NewInteractionsFromRecords(nil, log)
	}
	s := NewInteractionsFromRecords(file.Interactions, log)
	slog.Info("Interaction database loaded", "count", len(file.Interactions))
	return s
}

func NewInteractionsFromRecords(interactions []*Interaction, log *logger.Logger) *InteractionStore {
	s := &InteractionStore{
		log:          log.With("service", "InteractionStore"),
		interactions: interactions,
		byTerm:       map[string][]*Interaction{},
	}
	for _, in := range interactions {
		for _, term := range []string{in.DrugA, in.DrugAGroup, in.DrugB, in.DrugBGroup} {
			term = strings.ToLower(strings.TrimSpace(term))
			if term == "" {
				continue
			}
			s.byTerm[term] = append(s.byTerm[term], in)
		}
	}
	return s
}

func (s *InteractionStore) All() []*Interaction { return s.interactions }

// ByTerm returns every interaction mentioning the drug or group name.
func (s *InteractionStore) ByTerm(term string) []*Interaction {
	return s.byTerm[strings.ToLower(term)]
}

// Groups collects the terms a medicine can interact under: its declared
// interaction groups plus its drug class and category, all lowercased.
func (m *Medicine) Groups() map[string]bool {
	groups := map[string]bool{}
	for _, g := range m.InteractionGroups {
		groups[strings.ToLower(g)] = true
	}
	if m.DrugClass != "" {
		groups[strings.ToLower(m.DrugClass)] = true
	}
	if m.Category != "" {
		groups[strings.ToLower(m.Category)] = true
	}
	return groups
}
