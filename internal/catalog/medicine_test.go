package catalog

import "testing"

func TestAttributeResolution(t *testing.T) {
	m := &Medicine{
		Name:                 "Panadol Extra",
		GenericName:          "Paracetamol",
		DosageForm:           "Tablet",
		Category:             "pain_relief",
		RequiresPrescription: false,
		Visual: &VisualAttributes{
			BoxPrimaryColor: "Red",
			TabletShape:     "oval",
			HasLogo:         true,
			IsScored:        false,
		},
	}

	cases := []struct {
		attr string
		want Value
	}{
		{"name", Value{Kind: KindText, Text: "Panadol Extra"}},
		{"brand_name", Value{Kind: KindText, Text: "Panadol Extra"}},
		{"generic_name", Value{Kind: KindText, Text: "Paracetamol"}},
		{"dosage_form", Value{Kind: KindText, Text: "Tablet"}},
		{"requires_prescription", Value{Kind: KindBool, Bool: false}},
		{"box_primary_color", Value{Kind: KindText, Text: "Red"}},
		{"tablet_shape", Value{Kind: KindText, Text: "oval"}},
		{"has_logo", Value{Kind: KindBool, Bool: true}},
		{"tablet_color", Value{Kind: KindAbsent}},
		{"no_such_attribute", Value{Kind: KindAbsent}},
	}
	for _, tc := range cases {
		if got := m.Attribute(tc.attr); got != tc.want {
			t.Errorf("Attribute(%q) = %+v, want %+v", tc.attr, got, tc.want)
		}
	}
}

func TestAttributeWithoutVisual(t *testing.T) {
	m := &Medicine{Name: "Plain", DosageForm: "Syrup"}
	if got := m.Attribute("box_primary_color"); got.Kind != KindAbsent {
		t.Fatalf("visual attribute on record without visuals = %+v", got)
	}
	if got := m.Attribute("dosage_form"); got.Kind != KindText || got.Text != "Syrup" {
		t.Fatalf("dosage_form = %+v", got)
	}
}

func TestValueNorm(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Value{Kind: KindText, Text: "Dark Blue"}, "dark blue"},
		{Value{Kind: KindBool, Bool: true}, "true"},
		{Value{Kind: KindBool, Bool: false}, "false"},
		{Value{Kind: KindAbsent}, ""},
	}
	for _, tc := range cases {
		if got := tc.v.Norm(); got != tc.want {
			t.Errorf("Norm(%+v) = %q, want %q", tc.v, got, tc.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	m := &Medicine{Name: "Panadol", NameArabic: "بانادول"}
	if got := m.DisplayName("ar"); got != "بانادول" {
		t.Errorf("ar = %q", got)
	}
	if got := m.DisplayName("en"); got != "Panadol" {
		t.Errorf("en = %q", got)
	}
	plain := &Medicine{Name: "Brufen"}
	if got := plain.DisplayName("ar"); got != "Brufen" {
		t.Errorf("missing arabic name = %q", got)
	}
}
