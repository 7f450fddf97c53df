package akinator

import (
	"math"

	"github.com/clintwin/clintwin-backend/internal/catalog"
)

// Selection is the outcome of scoring one attribute against the candidate set.
type Selection struct {
	Attribute    *AttributeDescriptor
	Distribution map[string]int
}

// valueDistribution counts normalized attribute values across the candidates.
// Records where the attribute is absent are excluded from the count entirely,
// so the distribution may cover fewer records than the candidate set.
func valueDistribution(candidates []*catalog.Medicine, attribute string) map[string]int {
	dist := map[string]int{}
	for _, m := range candidates {
		v := m.Attribute(attribute)
		if v.Kind == catalog.KindAbsent {
			continue
		}
		dist[v.Norm()]++
	}
	return dist
}

// informationGain measures how much asking about this distribution would
// shrink uncertainty over n candidates. A perfectly even two-way split over
// all candidates yields gain log2(n) - log2(n/2) = 1.
func informationGain(dist map[string]int, n int) float64 {
	if n <= 1 || len(dist) < 2 {
		return 0
	}
	entropyBefore := math.Log2(float64(n))
	entropyAfter := 0.0
	for _, count := range dist {
		if count > 1 {
			entropyAfter += (float64(count) / float64(n)) * math.Log2(float64(count))
		}
	}
	gain := entropyBefore - entropyAfter

	// A two-way split is only useful when both sides carry weight; a 15/1
	// split barely narrows anything. Reward balance.
	if len(dist) == 2 {
		min, max := math.Inf(1), 0.0
		for _, count := range dist {
			f := float64(count)
			if f < min {
				min = f
			}
			if f > max {
				max = f
			}
		}
		gain *= 1 + 0.5*(min/max)
	}
	return gain
}

// SelectAttribute scores every eligible attribute and returns the best one,
// or nil when no attribute can split the remaining candidates.
//
// Conditional attributes are held back for the first two questions. This is a
// known simplification: the condition itself is never evaluated against the
// recorded answers, only the question count gates eligibility.
func SelectAttribute(attrs *AttributeSet, candidates []*catalog.Medicine, asked map[string]bool) *Selection {
	if len(candidates) <= 1 {
		return nil
	}

	var best *Selection
	bestScore := math.Inf(-1)
	n := len(candidates)

	for _, d := range attrs.All() {
		if asked[d.Name] || forbiddenAttributes[d.Name] {
			continue
		}
		if len(d.ConditionalOn) > 0 && len(asked) < 2 {
			continue
		}
		dist := valueDistribution(candidates, d.Name)
		if len(dist) < 2 {
			continue
		}
		score := informationGain(dist, n) + 1.0/float64(d.priority()+1)
		if score > bestScore {
			bestScore = score
			best = &Selection{Attribute: d, Distribution: dist}
		}
	}
	return best
}
