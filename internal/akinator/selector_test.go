package akinator

import (
	"math"
	"testing"

	"github.com/clintwin/clintwin-backend/internal/catalog"
)

func tablet(id, boxColor, shape string) *catalog.Medicine {
	return &catalog.Medicine{
		ID:         id,
		Name:       "med-" + id,
		DosageForm: "tablet",
		Visual: &catalog.VisualAttributes{
			BoxPrimaryColor: boxColor,
			TabletShape:     shape,
		},
	}
}

func TestInformationGainPrefersBalancedSplits(t *testing.T) {
	balanced := informationGain(map[string]int{"red": 8, "blue": 8}, 16)
	if math.Abs(balanced-1.5) > 1e-9 {
		t.Fatalf("balanced 8/8 split gain = %v, want 1.5", balanced)
	}

	lopsided := informationGain(map[string]int{"red": 15, "blue": 1}, 16)
	if lopsided >= balanced {
		t.Fatalf("15/1 split gain %v should be below 8/8 split gain %v", lopsided, balanced)
	}
	if lopsided < 0 {
		t.Fatalf("gain must be non-negative, got %v", lopsided)
	}
}

func TestInformationGainDegenerate(t *testing.T) {
	if g := informationGain(map[string]int{"red": 5}, 5); g != 0 {
		t.Fatalf("single-value distribution gain = %v, want 0", g)
	}
	if g := informationGain(map[string]int{}, 1); g != 0 {
		t.Fatalf("single candidate gain = %v, want 0", g)
	}
}

func TestValueDistributionSkipsAbsent(t *testing.T) {
	meds := []*catalog.Medicine{
		tablet("1", "Red", "round"),
		tablet("2", "red", "oval"),
		{ID: "3", Name: "no-visual", DosageForm: "syrup"},
	}
	dist := valueDistribution(meds, "box_primary_color")
	if len(dist) != 1 || dist["red"] != 2 {
		t.Fatalf("distribution = %v, want {red: 2}", dist)
	}
}

func TestSelectAttributeSkipsForbiddenAndAsked(t *testing.T) {
	// Names split perfectly but are forbidden; box color is already asked.
	meds := []*catalog.Medicine{
		tablet("1", "red", "round"),
		tablet("2", "blue", "oval"),
		tablet("3", "red", "oval"),
		tablet("4", "blue", "round"),
	}
	asked := map[string]bool{"box_primary_color": true, "dosage_form": true}

	sel := SelectAttribute(DefaultAttributes(), meds, asked)
	if sel == nil {
		t.Fatal("expected a selection")
	}
	if sel.Attribute.Name != "tablet_shape" {
		t.Fatalf("selected %q, want tablet_shape", sel.Attribute.Name)
	}
}

func TestSelectAttributeNeverPicksForbidden(t *testing.T) {
	// Exhaustive: mark everything asked except the forbidden set and one
	// useless attribute; nothing selectable must remain.
	meds := []*catalog.Medicine{
		tablet("1", "red", "round"),
		tablet("2", "blue", "oval"),
	}
	attrs := DefaultAttributes()
	asked := map[string]bool{}
	for _, d := range attrs.All() {
		asked[d.Name] = true
	}

	if sel := SelectAttribute(attrs, meds, asked); sel != nil {
		t.Fatalf("selected %q with all attributes asked", sel.Attribute.Name)
	}
}

func TestSelectAttributeHoldsBackConditionalEarly(t *testing.T) {
	// strip_color is the only attribute that splits this set, but it is
	// conditional and must not appear in the first two questions.
	meds := []*catalog.Medicine{
		{ID: "1", Name: "a", DosageForm: "tablet", Visual: &catalog.VisualAttributes{StripColor: "silver"}},
		{ID: "2", Name: "b", DosageForm: "tablet", Visual: &catalog.VisualAttributes{StripColor: "gold"}},
	}
	attrs := DefaultAttributes()

	if sel := SelectAttribute(attrs, meds, map[string]bool{}); sel != nil {
		t.Fatalf("selected %q before two questions were asked", sel.Attribute.Name)
	}

	asked := map[string]bool{"dosage_form": true, "category": true}
	sel := SelectAttribute(attrs, meds, asked)
	if sel == nil || sel.Attribute.Name != "strip_color" {
		t.Fatalf("selection after two questions = %+v, want strip_color", sel)
	}
}

func TestSelectAttributeNilWhenNothingSplits(t *testing.T) {
	meds := []*catalog.Medicine{
		tablet("1", "red", "round"),
		tablet("2", "red", "round"),
	}
	if sel := SelectAttribute(DefaultAttributes(), meds, map[string]bool{}); sel != nil {
		t.Fatalf("selected %q over identical records", sel.Attribute.Name)
	}
}

func TestSelectAttributeSingleCandidate(t *testing.T) {
	meds := []*catalog.Medicine{tablet("1", "red", "round")}
	if sel := SelectAttribute(DefaultAttributes(), meds, map[string]bool{}); sel != nil {
		t.Fatal("single candidate should not yield a question")
	}
}

func TestSelectAttributePriorityBreaksTies(t *testing.T) {
	// box_primary_color and tablet_color split identically; box color has
	// priority 2 against tablet color's 4, so its score bonus wins.
	meds := []*catalog.Medicine{
		{ID: "1", Name: "a", Visual: &catalog.VisualAttributes{BoxPrimaryColor: "red", TabletColor: "white"}},
		{ID: "2", Name: "b", Visual: &catalog.VisualAttributes{BoxPrimaryColor: "blue", TabletColor: "pink"}},
	}
	sel := SelectAttribute(DefaultAttributes(), meds, map[string]bool{})
	if sel == nil || sel.Attribute.Name != "box_primary_color" {
		t.Fatalf("selection = %+v, want box_primary_color", sel)
	}
}
