package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/clintwin/clintwin-backend/internal/catalog"
	"github.com/clintwin/clintwin-backend/internal/platform/logger"
)

// Risk levels, derived from the worst severity among found interactions.
const (
	RiskSafe     = "safe"
	RiskLow      = "low"
	RiskModerate = "moderate"
	RiskHigh     = "high"
	RiskCritical = "critical"
)

// InteractionWarning is one user-facing warning built from an interaction.
type InteractionWarning struct {
	Severity        string   `json:"severity"`
	Title           string   `json:"title"`
	DrugsInvolved   []string `json:"drugs_involved"`
	Message         string   `json:"message"`
	ClinicalEffects []string `json:"clinical_effects,omitempty"`
	SymptomsToWatch []string `json:"symptoms_to_watch,omitempty"`
	Recommendation  string   `json:"recommendation,omitempty"`
	Monitoring      string   `json:"monitoring,omitempty"`
	EvidenceLevel   string   `json:"evidence_level"`
}

// FoundInteraction is one matched interaction in a check result.
type FoundInteraction struct {
	ID             string   `json:"id"`
	DrugsInvolved  []string `json:"drugs_involved"`
	Severity       string   `json:"severity"`
	Description    string   `json:"description"`
	Recommendation string   `json:"recommendation,omitempty"`
}

// SafeAlternative suggests a replacement for one side of a risky pair.
type SafeAlternative struct {
	ForMedicine string                 `json:"for_medicine"`
	Alternative map[string]interface{} `json:"alternative"`
	Reason      string                 `json:"reason"`
}

// CheckResult is the full outcome of an interaction check.
type CheckResult struct {
	Success            bool                 `json:"success"`
	MedicinesChecked   []string             `json:"medicines_checked"`
	InteractionsFound  []FoundInteraction   `json:"interactions_found"`
	Warnings           []InteractionWarning `json:"warnings"`
	HasContraindicated bool                 `json:"has_contraindicated"`
	HasMajor           bool                 `json:"has_major"`
	RiskLevel          string               `json:"risk_level"`
	Summary            string               `json:"summary"`
	SafeAlternatives   []SafeAlternative    `json:"safe_alternatives"`
}

// SingleDrugReport lists everything one medicine is known to interact with.
type SingleDrugReport struct {
	Success                bool                          `json:"success"`
	Medicine               string                        `json:"medicine"`
	DrugGroups             []string                      `json:"drug_groups"`
	TotalInteractions      int                           `json:"total_interactions"`
	InteractionsBySeverity map[string][]SingleDrugEntry  `json:"interactions_by_severity"`
	CautionWith            []string                      `json:"caution_with"`
}

type SingleDrugEntry struct {
	InteractsWith  string `json:"interacts_with"`
	Severity       string `json:"severity"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation,omitempty"`
}

// InteractionService checks medicine combinations against the interaction
// database. Matching works at three levels: drug to drug, drug to group, and
// group to group.
type InteractionService struct {
	log          *logger.Logger
	catalog      *catalog.Store
	interactions *catalog.InteractionStore
}

func NewInteractionService(cat *catalog.Store, interactions *catalog.InteractionStore, log *logger.Logger) *InteractionService {
	return &InteractionService{
		log:          log.With("service", "InteractionService"),
		catalog:      cat,
		interactions: interactions,
	}
}

func searchTerms(m *catalog.Medicine, includeGroups bool) map[string]bool {
	terms := map[string]bool{strings.ToLower(m.Name): true}
	if includeGroups {
		for g := range m.Groups() {
			terms[g] = true
		}
	}
	return terms
}

// findPair returns interactions between two medicines, deduplicated by
// interaction id and checked from both directions.
func (s *InteractionService) findPair(a, b *catalog.Medicine, includeGroups bool) []*catalog.Interaction {
	termsA := searchTerms(a, includeGroups)
	termsB := searchTerms(b, includeGroups)

	found := []*catalog.Interaction{}
	seen := map[string]bool{}

	match := func(from, against map[string]bool) {
		for term := range from {
			for _, in := range s.interactions.ByTerm(term) {
				if seen[in.ID] {
					continue
				}
				if against[strings.ToLower(in.DrugB)] || against[strings.ToLower(in.DrugBGroup)] {
					found = append(found, in)
					seen[in.ID] = true
				}
			}
		}
	}
	match(termsA, termsB)
	match(termsB, termsA)
	return found
}

func riskLevel(interactions []*catalog.Interaction) string {
	if len(interactions) == 0 {
		return RiskSafe
	}
	severities := map[string]bool{}
	for _, in := range interactions {
		severities[in.Severity] = true
	}
	switch {
	case severities[catalog.SeverityContraindicated]:
		return RiskCritical
	case severities[catalog.SeverityMajor]:
		return RiskHigh
	case severities[catalog.SeverityModerate]:
		return RiskModerate
	default:
		return RiskLow
	}
}

var severityOrder = map[string]int{
	catalog.SeverityContraindicated: 0,
	catalog.SeverityMajor:           1,
	catalog.SeverityModerate:        2,
	catalog.SeverityMinor:           3,
	"unknown":                       4,
}

func severityRank(severity string) int {
	if r, ok := severityOrder[severity]; ok {
		return r
	}
	return 5
}

func warningTitle(severity string) string {
	switch severity {
	case catalog.SeverityContraindicated:
		return "CONTRAINDICATED - DO NOT COMBINE"
	case catalog.SeverityMajor:
		return "Major Interaction Warning"
	case catalog.SeverityModerate:
		return "Moderate Interaction"
	default:
		return "Minor Interaction"
	}
}

func buildWarnings(interactions []*catalog.Interaction) []InteractionWarning {
	ordered := append([]*catalog.Interaction{}, interactions...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return severityRank(ordered[i].Severity) < severityRank(ordered[j].Severity)
	})

	warnings := make([]InteractionWarning, 0, len(ordered))
	for _, in := range ordered {
		evidence := in.EvidenceLevel
		if evidence == "" {
			evidence = "moderate"
		}
		warnings = append(warnings, InteractionWarning{
			Severity:        in.Severity,
			Title:           warningTitle(in.Severity),
			DrugsInvolved:   []string{in.DrugA, in.DrugB},
			Message:         in.Description,
			ClinicalEffects: in.ClinicalEffects,
			SymptomsToWatch: in.Symptoms,
			Recommendation:  in.Recommendation,
			Monitoring:      in.Monitoring,
			EvidenceLevel:   evidence,
		})
	}
	return warnings
}

func summaryFor(risk string, names []string) string {
	joined := strings.Join(names, ", ")
	switch risk {
	case RiskSafe:
		return fmt.Sprintf("No known interactions found between %s. These medications appear safe to take together, but always consult your pharmacist or doctor.", joined)
	case RiskCritical:
		return "CRITICAL: These medicines should NOT be taken together. A contraindicated combination was found. Please consult your doctor immediately for an alternative medication."
	case RiskHigh:
		return "HIGH RISK: Major interaction(s) found between these medicines. Taking them together could cause serious harm. Consult your doctor before continuing."
	case RiskModerate:
		return "MODERATE RISK: Interaction(s) found that may require dose adjustment or monitoring. Discuss with your doctor or pharmacist."
	default:
		return "LOW RISK: Minor interaction(s) found. Generally safe but be aware of potential effects listed below."
	}
}

// findAlternatives suggests up to three replacements for a medicine that do
// not interact badly with the other medicine. The interaction's own
// alternative list wins when its entries exist in the catalog.
func (s *InteractionService) findAlternatives(med, other *catalog.Medicine, in *catalog.Interaction) []*catalog.Medicine {
	alternatives := []*catalog.Medicine{}

	for _, name := range in.Alternatives {
		if alt, ok := s.catalog.ByName(name); ok {
			alternatives = append(alternatives, alt)
		}
	}
	if len(alternatives) > 0 {
		if len(alternatives) > 3 {
			alternatives = alternatives[:3]
		}
		return alternatives
	}

	targetUse := strings.ToLower(med.MainUse)
	for _, candidate := range s.catalog.List() {
		if candidate.ID == med.ID {
			continue
		}
		sameCategory := candidate.Category == med.Category
		similarUse := targetUse != "" && strings.Contains(strings.ToLower(candidate.MainUse), targetUse)
		if !sameCategory && !similarUse {
			continue
		}
		risky := false
		for _, alt := range s.findPair(candidate, other, true) {
			if alt.Severity == catalog.SeverityContraindicated || alt.Severity == catalog.SeverityMajor {
				risky = true
				break
			}
		}
		if !risky {
			alternatives = append(alternatives, candidate)
			if len(alternatives) >= 3 {
				break
			}
		}
	}
	return alternatives
}

// CheckByIDs checks all pairs among the given medicines. IDs that also look
// like names are resolved by name as a fallback.
func (s *InteractionService) CheckByIDs(medicineIDs []string, includeGroups bool) *CheckResult {
	medicines := []*catalog.Medicine{}
	for _, id := range medicineIDs {
		if m, ok := s.catalog.ByID(id); ok {
			medicines = append(medicines, m)
		} else if m, ok := s.catalog.ByName(id); ok {
			medicines = append(medicines, m)
		} else {
			s.log.Warn("Medicine not found for interaction check", "id", id)
		}
	}

	names := make([]string, 0, len(medicines))
	for _, m := range medicines {
		names = append(names, m.Name)
	}

	if len(medicines) < 2 {
		return &CheckResult{
			Success:           true,
			MedicinesChecked:  names,
			InteractionsFound: []FoundInteraction{},
			Warnings:          []InteractionWarning{},
			RiskLevel:         RiskSafe,
			Summary:           "Need at least 2 medicines to check for interactions.",
			SafeAlternatives:  []SafeAlternative{},
		}
	}

	type pairHit struct {
		interaction *catalog.Interaction
		a, b        *catalog.Medicine
	}
	hits := []pairHit{}
	all := []*catalog.Interaction{}
	for i, a := range medicines {
		for _, b := range medicines[i+1:] {
			for _, in := range s.findPair(a, b, includeGroups) {
				hits = append(hits, pairHit{interaction: in, a: a, b: b})
				all = append(all, in)
			}
		}
	}

	risk := riskLevel(all)

	found := make([]FoundInteraction, 0, len(hits))
	for _, h := range hits {
		found = append(found, FoundInteraction{
			ID:             h.interaction.ID,
			DrugsInvolved:  []string{h.a.Name, h.b.Name},
			Severity:       h.interaction.Severity,
			Description:    h.interaction.Description,
			Recommendation: h.interaction.Recommendation,
		})
	}

	alternatives := []SafeAlternative{}
	for _, h := range hits {
		if h.interaction.Severity != catalog.SeverityContraindicated && h.interaction.Severity != catalog.SeverityMajor {
			continue
		}
		for _, alt := range s.findAlternatives(h.a, h.b, h.interaction) {
			alternatives = append(alternatives, SafeAlternative{
				ForMedicine: h.a.Name,
				Alternative: map[string]interface{}{
					"name":         alt.Name,
					"generic_name": alt.GenericName,
					"category":     alt.Category,
				},
				Reason: fmt.Sprintf("Safer alternative that doesn't interact with %s", h.b.Name),
			})
		}
	}

	return &CheckResult{
		Success:            true,
		MedicinesChecked:   names,
		InteractionsFound:  found,
		Warnings:           buildWarnings(all),
		HasContraindicated: risk == RiskCritical,
		HasMajor:           risk == RiskCritical || risk == RiskHigh,
		RiskLevel:          risk,
		Summary:            summaryFor(risk, names),
		SafeAlternatives:   alternatives,
	}
}

// CheckByNames resolves names (with a bidirectional partial fallback) and
// delegates to CheckByIDs.
func (s *InteractionService) CheckByNames(medicineNames []string, includeGroups bool) *CheckResult {
	ids := []string{}
	for _, name := range medicineNames {
		if m, ok := s.catalog.ByNameFuzzy(name); ok {
			ids = append(ids, m.ID)
		}
	}
	return s.CheckByIDs(ids, includeGroups)
}

// PickerItem is the slim record the interaction checker UI uses for
// selection lists and autocomplete.
type PickerItem struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	GenericName          string `json:"generic_name,omitempty"`
	Category             string `json:"category,omitempty"`
	RequiresPrescription bool   `json:"requires_prescription"`
}

// PickerList returns every catalog medicine in picker form.
func (s *InteractionService) PickerList() []PickerItem {
	items := make([]PickerItem, 0, s.catalog.Len())
	for _, m := range s.catalog.List() {
		items = append(items, PickerItem{
			ID:                   m.ID,
			Name:                 m.Name,
			GenericName:          m.GenericName,
			Category:             m.Category,
			RequiresPrescription: m.RequiresPrescription,
		})
	}
	return items
}

// PickerSearch matches the query against name, generic name, and category.
func (s *InteractionService) PickerSearch(query string, limit int) []PickerItem {
	q := strings.ToLower(strings.TrimSpace(query))
	items := []PickerItem{}
	for _, m := range s.catalog.List() {
		if !strings.Contains(strings.ToLower(m.Name), q) &&
			!strings.Contains(strings.ToLower(m.GenericName), q) &&
			!strings.Contains(strings.ToLower(m.Category), q) {
			continue
		}
		items = append(items, PickerItem{
			ID:          m.ID,
			Name:        m.Name,
			GenericName: m.GenericName,
			Category:    m.Category,
		})
		if len(items) >= limit {
			break
		}
	}
	return items
}

// CheckSingle reports every known interaction for one medicine, grouped by
// severity.
func (s *InteractionService) CheckSingle(medicineID string) (*SingleDrugReport, error) {
	m, ok := s.catalog.ByID(medicineID)
	if !ok {
		m, ok = s.catalog.ByName(medicineID)
	}
	if !ok {
		return nil, fmt.Errorf("medicine not found: %s", medicineID)
	}

	groups := m.Groups()
	terms := searchTerms(m, true)

	all := []*catalog.Interaction{}
	seen := map[string]bool{}
	for term := range terms {
		for _, in := range s.interactions.ByTerm(term) {
			if !seen[in.ID] {
				all = append(all, in)
				seen[in.ID] = true
			}
		}
	}

	bySeverity := map[string][]SingleDrugEntry{
		catalog.SeverityContraindicated: {},
		catalog.SeverityMajor:           {},
		catalog.SeverityModerate:        {},
		catalog.SeverityMinor:           {},
	}
	for _, in := range all {
		severity := in.Severity
		if _, ok := bySeverity[severity]; !ok {
			severity = catalog.SeverityMinor
		}
		interactsWith := in.DrugA
		if terms[strings.ToLower(in.DrugA)] {
			interactsWith = in.DrugB
		}
		bySeverity[severity] = append(bySeverity[severity], SingleDrugEntry{
			InteractsWith:  interactsWith,
			Severity:       severity,
			Description:    in.Description,
			Recommendation: in.Recommendation,
		})
	}

	groupList := make([]string, 0, len(groups))
	for g := range groups {
		groupList = append(groupList, g)
	}
	sort.Strings(groupList)

	caution := []string{}
	for _, entry := range append(bySeverity[catalog.SeverityContraindicated], bySeverity[catalog.SeverityMajor]...) {
		caution = append(caution, entry.InteractsWith)
	}

	return &SingleDrugReport{
		Success:                true,
		Medicine:               m.Name,
		DrugGroups:             groupList,
		TotalInteractions:      len(all),
		InteractionsBySeverity: bySeverity,
		CautionWith:            caution,
	}, nil
}
