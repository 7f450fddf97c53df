package akinator

import "math"

// Confidence estimates how sure the engine is about its top candidate, purely
// from how far the candidate set has narrowed. It is recomputed from scratch
// each turn, so it can move down as well as up when the fallback in
// FilterCandidates grows the set back.
//
// The scale is deliberately conservative: only one or two survivors earn high
// confidence, everything else is capped at 0.80.
func Confidence(remaining, total int) float64 {
	switch remaining {
	case 0:
		return 0.0
	case 1:
		return 0.95
	case 2:
		return 0.85
	}

	if total < 2 {
		total = 2
	}
	logConfidence := 1 - math.Log(float64(remaining))/math.Log(float64(total))
	confidence := 0.1 + logConfidence*0.7
	if confidence > 0.80 {
		confidence = 0.80
	}
	return round2(confidence)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
