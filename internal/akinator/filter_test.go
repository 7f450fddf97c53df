package akinator

import (
	"testing"

	"github.com/clintwin/clintwin-backend/internal/catalog"
)

func forms(meds []*catalog.Medicine) []string {
	out := make([]string, len(meds))
	for i, m := range meds {
		out[i] = m.ID
	}
	return out
}

func TestFilterCandidates(t *testing.T) {
	meds := []*catalog.Medicine{
		{ID: "1", Name: "a", DosageForm: "tablet"},
		{ID: "2", Name: "b", DosageForm: "syrup"},
		{ID: "3", Name: "c", DosageForm: "capsule"},
		{ID: "4", Name: "d", DosageForm: "tablet"},
	}

	cases := []struct {
		name      string
		attribute string
		answer    string
		wantIDs   []string
	}{
		{name: "exact_match", attribute: "dosage_form", answer: "Tablet", wantIDs: []string{"1", "4"}},
		{name: "compound_option_matches_substring", attribute: "dosage_form", answer: "Syrup/Liquid", wantIDs: []string{"2"}},
		{name: "not_sure_keeps_everything", attribute: "dosage_form", answer: "Not sure", wantIDs: []string{"1", "2", "3", "4"}},
		{name: "other_keeps_everything", attribute: "dosage_form", answer: "Not sure / Other", wantIDs: []string{"1", "2", "3", "4"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterCandidates(meds, tc.attribute, tc.answer)
			gotIDs := forms(got)
			if len(gotIDs) != len(tc.wantIDs) {
				t.Fatalf("got %v, want %v", gotIDs, tc.wantIDs)
			}
			for i := range gotIDs {
				if gotIDs[i] != tc.wantIDs[i] {
					t.Fatalf("got %v, want %v", gotIDs, tc.wantIDs)
				}
			}
		})
	}
}

func TestFilterCandidatesEmptyFallback(t *testing.T) {
	// An answer that eliminates everything keeps a prefix of the original
	// set instead of ending the game with nothing.
	meds := []*catalog.Medicine{
		{ID: "1", Name: "a", DosageForm: "tablet"},
		{ID: "2", Name: "b", DosageForm: "tablet"},
		{ID: "3", Name: "c", DosageForm: "tablet"},
		{ID: "4", Name: "d", DosageForm: "tablet"},
		{ID: "5", Name: "e", DosageForm: "tablet"},
		{ID: "6", Name: "f", DosageForm: "tablet"},
		{ID: "7", Name: "g", DosageForm: "tablet"},
		{ID: "8", Name: "h", DosageForm: "tablet"},
	}

	got := FilterCandidates(meds, "dosage_form", "Injection")
	if len(got) != 4 {
		t.Fatalf("fallback kept %d candidates, want 4 (half of 8)", len(got))
	}
	for i, m := range got {
		if m.ID != meds[i].ID {
			t.Fatalf("fallback must preserve original order, got %v", forms(got))
		}
	}

	small := meds[:4]
	got = FilterCandidates(small, "dosage_form", "Injection")
	if len(got) != 3 {
		t.Fatalf("fallback kept %d of 4 candidates, want floor of 3", len(got))
	}

	tiny := meds[:2]
	got = FilterCandidates(tiny, "dosage_form", "Injection")
	if len(got) != 2 {
		t.Fatalf("fallback kept %d of 2 candidates, want all 2", len(got))
	}
}

func TestFilterCandidatesSkipsAbsentValues(t *testing.T) {
	meds := []*catalog.Medicine{
		{ID: "1", Name: "a", Visual: &catalog.VisualAttributes{TabletColor: "white"}},
		{ID: "2", Name: "b"},
	}
	got := FilterCandidates(meds, "tablet_color", "White")
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("got %v, want only record 1", forms(got))
	}
}

func TestFilterCandidatesNormalizesSpaces(t *testing.T) {
	meds := []*catalog.Medicine{
		{ID: "1", Name: "a", Visual: &catalog.VisualAttributes{TabletShape: "oblong_long"}},
		{ID: "2", Name: "b", Visual: &catalog.VisualAttributes{TabletShape: "round"}},
	}
	got := FilterCandidates(meds, "tablet_shape", "Oblong Long")
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("got %v, want only record 1", forms(got))
	}
}
