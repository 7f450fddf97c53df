package akinator

import (
	"context"
	"errors"
	"testing"

	"github.com/clintwin/clintwin-backend/internal/platform/logger"
)

type stubPhraser struct {
	text string
	err  error
	got  *PhraseRequest
}

func (s *stubPhraser) Phrase(_ context.Context, req PhraseRequest) (string, error) {
	s.got = &req
	return s.text, s.err
}

func selectionFor(t *testing.T, attrs *AttributeSet, name string, dist map[string]int) *Selection {
	t.Helper()
	d, ok := attrs.Get(name)
	if !ok {
		t.Fatalf("unknown attribute %q", name)
	}
	return &Selection{Attribute: d, Distribution: dist}
}

func TestComposeUsesFixedOptionsVerbatim(t *testing.T) {
	attrs := DefaultAttributes()
	c := NewComposer(attrs, nil, logger.NewNop())

	sel := selectionFor(t, attrs, "dosage_form", map[string]int{"tablet": 3, "syrup": 2})
	q := c.Compose(context.Background(), sel, nil, 5)

	want := []string{"Tablet", "Capsule", "Syrup/Liquid", "Gel/Cream", "Injection", "Not sure"}
	if len(q.Options) != len(want) {
		t.Fatalf("options = %v, want %v", q.Options, want)
	}
	for i := range want {
		if q.Options[i] != want[i] {
			t.Fatalf("options = %v, want %v", q.Options, want)
		}
	}
	if q.ID == "" || q.Text == "" {
		t.Fatal("question must carry an id and text")
	}
	if q.FieldTarget != "dosage_form" {
		t.Fatalf("field_target = %q", q.FieldTarget)
	}
	if q.ConfidenceBefore != 0 || q.ConfidenceAfterExpected != 0 {
		t.Fatal("confidence fields must start at zero")
	}
}

func TestComposeBuildsOptionsFromDistribution(t *testing.T) {
	attrs := DefaultAttributes()
	c := NewComposer(attrs, nil, logger.NewNop())

	dist := map[string]int{
		"red": 6, "blue": 5, "green": 4, "white": 3, "yellow": 2, "pink": 1,
	}
	sel := selectionFor(t, attrs, "box_primary_color", dist)
	q := c.Compose(context.Background(), sel, nil, 21)

	want := []string{"Red", "Blue", "Green", "White", "Yellow", "Not sure / Other"}
	if len(q.Options) != len(want) {
		t.Fatalf("options = %v, want %v", q.Options, want)
	}
	for i := range want {
		if q.Options[i] != want[i] {
			t.Fatalf("options = %v, want %v", q.Options, want)
		}
	}
}

func TestComposeFormatsDataValues(t *testing.T) {
	attrs := DefaultAttributes()
	c := NewComposer(attrs, nil, logger.NewNop())

	sel := selectionFor(t, attrs, "box_primary_color", map[string]int{"dark_blue": 2, "off_white": 1})
	q := c.Compose(context.Background(), sel, nil, 3)

	if q.Options[0] != "Dark Blue" || q.Options[1] != "Off White" {
		t.Fatalf("options = %v, want title-cased with spaces", q.Options)
	}
	if q.Options[len(q.Options)-1] != "Not sure / Other" {
		t.Fatalf("missing escape option, got %v", q.Options)
	}
}

func TestComposePhraserReplacesTextOnly(t *testing.T) {
	attrs := DefaultAttributes()
	ph := &stubPhraser{text: "Which color stands out on the box?"}
	c := NewComposer(attrs, ph, logger.NewNop())

	sel := selectionFor(t, attrs, "dosage_form", map[string]int{"tablet": 2, "syrup": 1})
	q := c.Compose(context.Background(), sel, nil, 3)

	if q.Text != ph.text {
		t.Fatalf("text = %q, want phrased text", q.Text)
	}
	if q.Options[0] != "Tablet" {
		t.Fatalf("phrasing must not touch options, got %v", q.Options)
	}
	if ph.got == nil || ph.got.Attribute != "dosage_form" {
		t.Fatalf("phraser request = %+v", ph.got)
	}
}

func TestComposePhraserFailureKeepsTemplate(t *testing.T) {
	attrs := DefaultAttributes()
	ph := &stubPhraser{err: errors.New("upstream timeout")}
	c := NewComposer(attrs, ph, logger.NewNop())

	sel := selectionFor(t, attrs, "dosage_form", map[string]int{"tablet": 2, "syrup": 1})
	q := c.Compose(context.Background(), sel, nil, 3)

	d, _ := attrs.Get("dosage_form")
	found := false
	for _, tmpl := range d.QuestionTemplates {
		if q.Text == tmpl {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("text %q is not one of the templates", q.Text)
	}
}

func TestComposeRecentAnswersWindow(t *testing.T) {
	attrs := DefaultAttributes()
	ph := &stubPhraser{text: "ok"}
	c := NewComposer(attrs, ph, logger.NewNop())

	history := []AnswerRecord{
		{Attribute: "a1"}, {Attribute: "a2"}, {Attribute: "a3"}, {Attribute: "a4"}, {Attribute: "a5"},
	}
	sel := selectionFor(t, attrs, "dosage_form", map[string]int{"tablet": 2, "syrup": 1})
	c.Compose(context.Background(), sel, history, 3)

	if len(ph.got.RecentAnswers) != 3 {
		t.Fatalf("recent answers = %d, want last 3", len(ph.got.RecentAnswers))
	}
	if ph.got.RecentAnswers[0].Attribute != "a3" {
		t.Fatalf("window starts at %q, want a3", ph.got.RecentAnswers[0].Attribute)
	}
}
