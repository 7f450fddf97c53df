package akinator

import "testing"

func TestConfidence(t *testing.T) {
	cases := []struct {
		name      string
		remaining int
		total     int
		want      float64
	}{
		{name: "no_candidates", remaining: 0, total: 16, want: 0.0},
		{name: "single_candidate", remaining: 1, total: 16, want: 0.95},
		{name: "two_candidates", remaining: 2, total: 16, want: 0.85},
		{name: "quarter_remaining", remaining: 4, total: 16, want: 0.45},
		{name: "nothing_eliminated", remaining: 16, total: 16, want: 0.1},
		{name: "three_of_sixteen", remaining: 3, total: 16, want: 0.52},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Confidence(tc.remaining, tc.total); got != tc.want {
				t.Fatalf("Confidence(%d, %d) = %v, want %v", tc.remaining, tc.total, got, tc.want)
			}
		})
	}
}

func TestConfidenceNeverExceedsCapWithManyCandidates(t *testing.T) {
	for remaining := 3; remaining <= 100; remaining++ {
		got := Confidence(remaining, 1000)
		if got > 0.80 {
			t.Fatalf("Confidence(%d, 1000) = %v, exceeds 0.80 cap", remaining, got)
		}
		if got < 0 {
			t.Fatalf("Confidence(%d, 1000) = %v, negative", remaining, got)
		}
	}
}
