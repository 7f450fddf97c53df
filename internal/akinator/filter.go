package akinator

import (
	"strings"

	"github.com/clintwin/clintwin-backend/internal/catalog"
)

func normalizeAnswer(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "_")
}

// FilterCandidates narrows the candidate set by the user's answer to a
// question about one attribute.
//
// An unsure answer keeps the set unchanged. Matching is deliberately loose:
// the normalized answer and the normalized record value match on equality or
// on a substring relation in either direction, so "Syrup/Liquid" still matches
// a record whose form is "syrup". When the answer eliminates everything, a
// slice of the original set is kept instead of failing the session.
func FilterCandidates(candidates []*catalog.Medicine, attribute, answer string) []*catalog.Medicine {
	lowered := strings.ToLower(answer)
	if strings.Contains(lowered, "not sure") || strings.Contains(lowered, "other") {
		return candidates
	}

	normalized := normalizeAnswer(answer)

	filtered := []*catalog.Medicine{}
	for _, m := range candidates {
		v := m.Attribute(attribute)
		if v.Kind == catalog.KindAbsent {
			continue
		}
		value := strings.ReplaceAll(v.Norm(), " ", "_")
		if value == normalized ||
			strings.Contains(value, normalized) ||
			strings.Contains(normalized, value) {
			filtered = append(filtered, m)
		}
	}

	if len(filtered) == 0 {
		keep := len(candidates) / 2
		if keep < 3 {
			keep = 3
		}
		if keep > len(candidates) {
			keep = len(candidates)
		}
		return candidates[:keep]
	}
	return filtered
}
