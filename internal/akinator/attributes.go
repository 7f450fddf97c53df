package akinator

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/clintwin/clintwin-backend/internal/platform/logger"
)

// AttributeDescriptor configures one askable attribute: how to phrase it,
// which options to offer, and when it is eligible.
type AttributeDescriptor struct {
	Name              string              `yaml:"name"`
	QuestionTemplates []string            `yaml:"question_templates"`
	Options           []string            `yaml:"options,omitempty"`
	OptionsFromData   bool                `yaml:"options_from_data,omitempty"`
	FieldType         string              `yaml:"field_type"`
	Priority          int                 `yaml:"priority,omitempty"`
	ConditionalOn     map[string][]string `yaml:"conditional_on,omitempty"`
}

const defaultPriority = 10

func (d *AttributeDescriptor) priority() int {
	if d.Priority <= 0 {
		return defaultPriority
	}
	return d.Priority
}

// forbiddenAttributes would reveal the identity directly, which defeats the
// purpose of the game. They are never selectable.
var forbiddenAttributes = map[string]bool{
	"name":           true,
	"generic_name":   true,
	"brand_name":     true,
	"prominent_word": true,
}

// AttributeSet is the static attribute catalog, loaded once at startup.
type AttributeSet struct {
	ordered []*AttributeDescriptor
	byName  map[string]*AttributeDescriptor
}

func newAttributeSet(descriptors []*AttributeDescriptor) *AttributeSet {
	set := &AttributeSet{byName: map[string]*AttributeDescriptor{}}
	for _, d := range descriptors {
		if d.Name == "" {
			continue
		}
		set.ordered = append(set.ordered, d)
		set.byName[d.Name] = d
	}
	return set
}

func (s *AttributeSet) All() []*AttributeDescriptor { return s.ordered }

func (s *AttributeSet) Get(name string) (*AttributeDescriptor, bool) {
	d, ok := s.byName[name]
	return d, ok
}

type attributesFile struct {
	Attributes []*AttributeDescriptor `yaml:"attributes"`
}

// LoadAttributes reads descriptor overrides from a YAML file, falling back to
// the built-in set when the path is empty or unreadable.
func LoadAttributes(path string, log *logger.Logger) *AttributeSet {
	if path == "" {
		return DefaultAttributes()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Warn("Attribute config not readable, using built-in attributes", "path", path, "error", err)
		return DefaultAttributes()
	}
	var file attributesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		log.Error("Attribute config is not valid YAML, using built-in attributes", "path", path, "error", err)
		return DefaultAttributes()
	}
	if len(file.Attributes) == 0 {
		log.Warn("Attribute config is empty, using built-in attributes", "path", path)
		return DefaultAttributes()
	}
	log.Info("Attribute config loaded", "path", path, "count", len(file.Attributes))
	return newAttributeSet(file.Attributes)
}

// DefaultAttributes is the built-in attribute catalog.
func DefaultAttributes() *AttributeSet {
	return newAttributeSet([]*AttributeDescriptor{
		{
			Name: "dosage_form",
			QuestionTemplates: []string{
				"What form is the medicine? (tablet, syrup, capsule, etc.)",
				"How do you take this medicine - swallow a pill, drink liquid, or apply it?",
				"Is it a pill you swallow, a liquid, a cream, or an injection?",
				"What type of medicine is it - tablet, capsule, syrup, gel, or something else?",
			},
			Options:   []string{"Tablet", "Capsule", "Syrup/Liquid", "Gel/Cream", "Injection", "Not sure"},
			FieldType: "enum",
			Priority:  1,
		},
		{
			Name: "box_primary_color",
			QuestionTemplates: []string{
				"What is the main color of the medicine box/packaging?",
				"What color is the box? (red, blue, green, white, etc.)",
				"Can you recall the main color of the packaging?",
				"What's the dominant color you see on the medicine package?",
			},
			OptionsFromData: true,
			FieldType:       "enum",
			Priority:        2,
		},
		{
			Name: "category",
			QuestionTemplates: []string{
				"What is this medicine generally used for?",
				"What type of condition does this medicine treat?",
				"Is this for pain, infection, heart, stomach, or something else?",
				"What category best describes this medicine?",
			},
			Options:   []string{"Pain Relief", "Antibiotic/Infection", "Heart/Blood Pressure", "Stomach/Digestive", "Respiratory/Breathing", "Other/Not sure"},
			FieldType: "enum",
			Priority:  2,
		},
		{
			Name: "tablet_shape",
			QuestionTemplates: []string{
				"What shape is the pill/tablet?",
				"Is the pill round, oval, oblong, or another shape?",
				"Can you describe the shape of the tablet?",
				"What does the pill look like - round like a coin, oval, or long/oblong?",
			},
			Options:   []string{"Round", "Oval", "Oblong (long rectangle)", "Capsule-shaped", "Heart-shaped", "Other/Not sure"},
			FieldType: "enum",
			Priority:  3,
		},
		{
			Name: "tablet_color",
			QuestionTemplates: []string{
				"What color is the pill/tablet itself?",
				"Can you recall the color of the actual pill?",
				"What color are the tablets - white, pink, yellow, etc.?",
				"Looking at the pill itself (not the box), what color is it?",
			},
			OptionsFromData: true,
			FieldType:       "enum",
			Priority:        4,
		},
		{
			Name: "liquid_color",
			QuestionTemplates: []string{
				"What color is the liquid/syrup?",
				"Can you describe the color of the syrup or suspension?",
				"What color is the medicine when you pour it?",
				"Is the liquid clear, colored, or milky?",
			},
			OptionsFromData: true,
			FieldType:       "enum",
			ConditionalOn:   map[string][]string{"dosage_form": {"syrup", "suspension"}},
		},
		{
			Name: "has_logo",
			QuestionTemplates: []string{
				"Does the box have a visible brand/company logo?",
				"Can you see a manufacturer logo on the packaging?",
				"Is there a recognizable company logo on the box?",
				"Does the packaging show a pharmaceutical company logo?",
			},
			Options:   []string{"Yes, there's a logo", "No logo visible", "Not sure"},
			FieldType: "boolean",
		},
		{
			Name: "is_scored",
			QuestionTemplates: []string{
				"Does the tablet have a line for splitting it?",
				"Is there a score line on the pill?",
				"Can the tablet be easily broken in half?",
				"Does the pill have a dividing line?",
			},
			Options:       []string{"Yes, it has a score line", "No score line", "Not sure"},
			FieldType:     "boolean",
			ConditionalOn: map[string][]string{"dosage_form": {"tablet"}},
		},
		{
			Name: "requires_prescription",
			QuestionTemplates: []string{
				"Does this medicine require a prescription?",
				"Can you buy this medicine over the counter, or do you need a doctor's prescription?",
				"Is this an OTC (over-the-counter) medicine or prescription-only?",
				"Did you need a prescription to get this medicine?",
			},
			Options:   []string{"Yes, prescription required", "No, over-the-counter (OTC)", "Not sure"},
			FieldType: "boolean",
			Priority:  5,
		},
		{
			Name: "strip_color",
			QuestionTemplates: []string{
				"What color is the blister strip/packaging that holds the pills?",
				"What color is the foil strip the tablets come in?",
				"Looking at the strip holding the pills, what color is it?",
				"What color is the blister pack?",
			},
			OptionsFromData: true,
			FieldType:       "enum",
			Priority:        6,
			ConditionalOn:   map[string][]string{"dosage_form": {"tablet", "capsule"}},
		},
		{
			Name: "manufacturer",
			QuestionTemplates: []string{
				"Do you recognize the pharmaceutical company that makes this?",
				"What company/manufacturer is shown on the box?",
				"Can you see a company name like Pfizer, GSK, Novartis, etc.?",
				"Which pharmaceutical company makes this medicine?",
			},
			Options:   []string{"Pfizer", "GSK (GlaxoSmithKline)", "Novartis", "Sanofi", "Abbott", "AstraZeneca", "Other/Not sure"},
			FieldType: "enum",
			Priority:  7,
		},
	})
}
