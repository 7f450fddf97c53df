package catalog

import "strings"

// VisualAttributes are the characteristics a user can recall from memory.
type VisualAttributes struct {
	BoxPrimaryColor   string `json:"box_primary_color"`
	BoxSecondaryColor string `json:"box_secondary_color,omitempty"`
	HasStripeDesign   bool   `json:"has_stripe_design"`
	HasLogo           bool   `json:"has_logo"`
	LogoDescription   string `json:"logo_description,omitempty"`
	ProminentWord     string `json:"prominent_word"`
	HasArabicText     bool   `json:"has_arabic_text"`
	HasEnglishText    bool   `json:"has_english_text"`
	TextColor         string `json:"text_color,omitempty"`
	TabletShape       string `json:"tablet_shape,omitempty"`
	TabletColor       string `json:"tablet_color,omitempty"`
	HasImprint        bool   `json:"has_imprint"`
	ImprintText       string `json:"imprint_text,omitempty"`
	IsScored          bool   `json:"is_scored"`
	IsCoated          bool   `json:"is_coated"`
	StripColor        string `json:"strip_color,omitempty"`
	PillsPerStrip     int    `json:"pills_per_strip,omitempty"`
	LiquidColor       string `json:"liquid_color,omitempty"`
	BottleShape       string `json:"bottle_shape,omitempty"`
}

// Medicine is one catalog record. Records are immutable once loaded; sessions
// hold references into the loaded slice rather than copies.
type Medicine struct {
	ID                   string            `json:"id"`
	Name                 string            `json:"name"`
	NameArabic           string            `json:"name_arabic,omitempty"`
	GenericName          string            `json:"generic_name"`
	Manufacturer         string            `json:"manufacturer"`
	DosageForm           string            `json:"dosage_form"`
	DrugClass            string            `json:"drug_class"`
	Category             string            `json:"category"`
	Strength             string            `json:"strength"`
	AvailableStrengths   []string          `json:"available_strengths,omitempty"`
	MainUse              string            `json:"main_use"`
	Indications          []string          `json:"indications,omitempty"`
	Contraindications    []string          `json:"contraindications,omitempty"`
	SideEffects          []string          `json:"side_effects,omitempty"`
	Warnings             []string          `json:"warnings,omitempty"`
	AdultDosage          string            `json:"adult_dosage,omitempty"`
	ChildDosage          string            `json:"child_dosage,omitempty"`
	RequiresPrescription bool              `json:"requires_prescription"`
	Schedule             string            `json:"schedule,omitempty"`
	Barcode              string            `json:"barcode,omitempty"`
	NDC                  string            `json:"ndc,omitempty"`
	Visual               *VisualAttributes `json:"visual,omitempty"`
	ProductImage         string            `json:"product_image,omitempty"`
	InteractionGroups    []string          `json:"interaction_groups,omitempty"`
}

// DisplayName picks the Arabic name when requested and available.
func (m *Medicine) DisplayName(lang string) string {
	if lang == "ar" && m.NameArabic != "" {
		return m.NameArabic
	}
	return m.Name
}

// ValueKind discriminates the typed attribute values resolved off a record.
type ValueKind int

const (
	KindAbsent ValueKind = iota
	KindText
	KindBool
)

// Value is a typed attribute value. Lookups never use reflection; the resolver
// is an explicit switch over the known attribute names, first at the top level
// and then inside the visual sub-record.
type Value struct {
	Kind ValueKind
	Text string
	Bool bool
}

func textValue(s string) Value {
	if strings.TrimSpace(s) == "" {
		return Value{Kind: KindAbsent}
	}
	return Value{Kind: KindText, Text: s}
}

func boolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Norm renders the value in the normalized form used for counting and
// filtering: lowercase text, "true"/"false" for booleans.
func (v Value) Norm() string {
	switch v.Kind {
	case KindText:
		return strings.ToLower(v.Text)
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	}
	return ""
}

// Attribute resolves a named attribute against the record, checking the
// top-level fields first and the visual sub-record second.
func (m *Medicine) Attribute(name string) Value {
	switch name {
	case "name":
		return textValue(m.Name)
	case "generic_name":
		return textValue(m.GenericName)
	case "brand_name":
		return textValue(m.Name)
	case "manufacturer":
		return textValue(m.Manufacturer)
	case "dosage_form":
		return textValue(m.DosageForm)
	case "drug_class":
		return textValue(m.DrugClass)
	case "category":
		return textValue(m.Category)
	case "strength":
		return textValue(m.Strength)
	case "requires_prescription":
		return boolValue(m.RequiresPrescription)
	case "barcode":
		return textValue(m.Barcode)
	}
	if m.Visual == nil {
		return Value{Kind: KindAbsent}
	}
	switch name {
	case "box_primary_color":
		return textValue(m.Visual.BoxPrimaryColor)
	case "box_secondary_color":
		return textValue(m.Visual.BoxSecondaryColor)
	case "has_stripe_design":
		return boolValue(m.Visual.HasStripeDesign)
	case "has_logo":
		return boolValue(m.Visual.HasLogo)
	case "prominent_word":
		return textValue(m.Visual.ProminentWord)
	case "text_color":
		return textValue(m.Visual.TextColor)
	case "tablet_shape":
		return textValue(m.Visual.TabletShape)
	case "tablet_color":
		return textValue(m.Visual.TabletColor)
	case "has_imprint":
		return boolValue(m.Visual.HasImprint)
	case "imprint_text":
		return textValue(m.Visual.ImprintText)
	case "is_scored":
		return boolValue(m.Visual.IsScored)
	case "is_coated":
		return boolValue(m.Visual.IsCoated)
	case "strip_color":
		return textValue(m.Visual.StripColor)
	case "liquid_color":
		return textValue(m.Visual.LiquidColor)
	case "bottle_shape":
		return textValue(m.Visual.BottleShape)
	}
	return Value{Kind: KindAbsent}
}
