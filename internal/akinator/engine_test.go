package akinator

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/clintwin/clintwin-backend/internal/catalog"
	"github.com/clintwin/clintwin-backend/internal/platform/logger"
)

func testConfig() Config {
	return Config{MinQuestions: 3, MaxQuestions: 8, ConfidenceThreshold: 0.92}
}

func newTestEngine(cfg Config, meds []*catalog.Medicine) *Engine {
	log := logger.NewNop()
	cat := catalog.NewFromRecords(meds, log)
	attrs := DefaultAttributes()
	composer := NewComposer(attrs, nil, log)
	return NewEngine(cfg, cat, attrs, composer, NewMemoryStore(log), log)
}

// distinctCatalog gives every record a unique box color, so one answer about
// the box isolates a single candidate.
func distinctCatalog() []*catalog.Medicine {
	colors := []string{"red", "blue", "green", "white", "yellow", "orange", "purple", "black"}
	meds := make([]*catalog.Medicine, 0, len(colors))
	for i, color := range colors {
		form := "tablet"
		category := "Pain Relief"
		if i%2 == 1 {
			form = "syrup"
			category = "Respiratory"
		}
		meds = append(meds, &catalog.Medicine{
			ID:                   fmt.Sprintf("med-%d", i+1),
			Name:                 fmt.Sprintf("Medicine %d", i+1),
			DosageForm:           form,
			Category:             category,
			Manufacturer:         "Acme Pharma",
			RequiresPrescription: i >= 4,
			Visual:               &catalog.VisualAttributes{BoxPrimaryColor: color, HasLogo: true},
		})
	}
	return meds
}

func TestStartSession(t *testing.T) {
	e := newTestEngine(testConfig(), distinctCatalog())

	res := e.Start(context.Background())
	if res.SessionID == "" {
		t.Fatal("missing session id")
	}
	if res.Error != "" {
		t.Fatalf("unexpected error %q", res.Error)
	}
	if res.Question == nil {
		t.Fatal("missing first question")
	}
	if res.RemainingCandidates != 8 {
		t.Fatalf("remaining = %d, want 8", res.RemainingCandidates)
	}
	if forbiddenAttributes[res.Question.FieldTarget] {
		t.Fatalf("first question targets forbidden attribute %q", res.Question.FieldTarget)
	}

	snap, err := e.Snapshot(res.SessionID)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.QuestionsAsked != 0 || snap.RemainingCandidates != 8 {
		t.Fatalf("snapshot = %+v", snap)
	}
	if snap.CurrentQuestion == nil || snap.CurrentQuestion.ID != res.Question.ID {
		t.Fatal("snapshot must carry the pending question")
	}
}

func TestStartSessionEmptyCatalog(t *testing.T) {
	e := newTestEngine(testConfig(), nil)

	res := e.Start(context.Background())
	if res.SessionID == "" {
		t.Fatal("session should be created even without questions")
	}
	if res.Question != nil || res.Error == "" {
		t.Fatalf("expected error result, got %+v", res)
	}

	// The session exists but has no pending question.
	if _, err := e.SubmitAnswer(context.Background(), res.SessionID, "Red"); !errors.Is(err, ErrNoCurrentQuestion) {
		t.Fatalf("err = %v, want ErrNoCurrentQuestion", err)
	}
}

func TestSubmitAnswerUnknownSession(t *testing.T) {
	e := newTestEngine(testConfig(), distinctCatalog())
	if _, err := e.SubmitAnswer(context.Background(), "nope", "Red"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestUniqueAnswerEndsGameEarly(t *testing.T) {
	// A unique box color leaves one candidate. With no further question to
	// ask, the engine commits even below the minimum question count.
	e := newTestEngine(testConfig(), distinctCatalog())

	res := e.Start(context.Background())
	if res.Question.FieldTarget != "box_primary_color" {
		t.Fatalf("first question = %q, want box_primary_color", res.Question.FieldTarget)
	}

	turn, err := e.SubmitAnswer(context.Background(), res.SessionID, "Green")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if turn.Result == nil {
		t.Fatalf("expected result, got question %+v", turn.Question)
	}
	r := turn.Result
	if !r.Success {
		t.Fatalf("result = %+v, want success", r)
	}
	if r.TopMatch == nil || r.TopMatch.Medicine.ID != "med-3" {
		t.Fatalf("top match = %+v, want med-3", r.TopMatch)
	}
	if r.Confidence != 0.95 {
		t.Fatalf("confidence = %v, want 0.95", r.Confidence)
	}
	if r.QuestionsAsked != 1 {
		t.Fatalf("questions asked = %d, want 1", r.QuestionsAsked)
	}
	if len(r.AnswersGiven) != 1 || r.AnswersGiven[0].Answer != "Green" {
		t.Fatalf("answers = %+v", r.AnswersGiven)
	}
}

func TestNotSureKeepsCandidatesButCountsQuestion(t *testing.T) {
	e := newTestEngine(testConfig(), distinctCatalog())
	res := e.Start(context.Background())

	turn, err := e.SubmitAnswer(context.Background(), res.SessionID, "Not sure / Other")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if turn.Question == nil {
		t.Fatalf("expected a follow-up question, got %+v", turn.Result)
	}
	q := turn.Question
	if q.RemainingCandidates != 8 {
		t.Fatalf("remaining = %d, want 8 after unsure answer", q.RemainingCandidates)
	}
	if q.QuestionsAsked != 1 {
		t.Fatalf("questions asked = %d, want 1", q.QuestionsAsked)
	}
	if q.Question.FieldTarget == res.Question.FieldTarget {
		t.Fatal("same attribute asked twice")
	}
	if q.Question.ConfidenceBefore != q.Confidence {
		t.Fatalf("confidence_before = %v, turn confidence = %v", q.Question.ConfidenceBefore, q.Confidence)
	}
	wantAfter := q.Confidence + 0.2
	if wantAfter > 0.95 {
		wantAfter = 0.95
	}
	if q.Question.ConfidenceAfterExpected != wantAfter {
		t.Fatalf("confidence_after_expected = %v, want %v", q.Question.ConfidenceAfterExpected, wantAfter)
	}
}

func TestMaxQuestionsForcesResult(t *testing.T) {
	cfg := Config{MinQuestions: 1, MaxQuestions: 2, ConfidenceThreshold: 0.99}
	e := newTestEngine(cfg, distinctCatalog())
	res := e.Start(context.Background())

	turn, err := e.SubmitAnswer(context.Background(), res.SessionID, "Not sure / Other")
	if err != nil {
		t.Fatalf("first answer: %v", err)
	}
	if turn.Question == nil {
		t.Fatal("game should continue after one question")
	}

	turn, err = e.SubmitAnswer(context.Background(), res.SessionID, "Not sure / Other")
	if err != nil {
		t.Fatalf("second answer: %v", err)
	}
	if turn.Result == nil {
		t.Fatal("hard question cap must force a result")
	}
	if turn.Result.QuestionsAsked != 2 {
		t.Fatalf("questions asked = %d, want 2", turn.Result.QuestionsAsked)
	}
}

func TestAnswerAfterResult(t *testing.T) {
	e := newTestEngine(testConfig(), distinctCatalog())
	res := e.Start(context.Background())

	if _, err := e.SubmitAnswer(context.Background(), res.SessionID, "Green"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := e.SubmitAnswer(context.Background(), res.SessionID, "Red"); !errors.Is(err, ErrNoCurrentQuestion) {
		t.Fatalf("err = %v, want ErrNoCurrentQuestion", err)
	}
}

func TestResultRanking(t *testing.T) {
	// Force a result with several survivors and check per-rank confidence.
	cfg := Config{MinQuestions: 1, MaxQuestions: 1, ConfidenceThreshold: 0.99}
	e := newTestEngine(cfg, distinctCatalog())
	res := e.Start(context.Background())

	turn, err := e.SubmitAnswer(context.Background(), res.SessionID, "Not sure / Other")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	r := turn.Result
	if r == nil || !r.Success {
		t.Fatalf("expected successful result, got %+v", turn)
	}
	if r.TopMatch.Rank != 1 {
		t.Fatalf("top rank = %d", r.TopMatch.Rank)
	}
	if len(r.Alternatives) != 4 {
		t.Fatalf("alternatives = %d, want 4 (top five of eight)", len(r.Alternatives))
	}
	prev := r.TopMatch.Confidence
	for _, alt := range r.Alternatives {
		if alt.Confidence > prev {
			t.Fatalf("rank %d confidence %v exceeds previous %v", alt.Rank, alt.Confidence, prev)
		}
		prev = alt.Confidence
	}
	if r.TopMatch.Confidence != r.Confidence {
		t.Fatalf("rank 1 confidence %v should equal session confidence %v", r.TopMatch.Confidence, r.Confidence)
	}
}

func TestEndSession(t *testing.T) {
	e := newTestEngine(testConfig(), distinctCatalog())
	res := e.Start(context.Background())

	if err := e.End(res.SessionID); err != nil {
		t.Fatalf("end: %v", err)
	}
	if err := e.End(res.SessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("second end err = %v, want ErrSessionNotFound", err)
	}
	if _, err := e.Snapshot(res.SessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("snapshot err = %v, want ErrSessionNotFound", err)
	}
}

func TestFullGameFindsTarget(t *testing.T) {
	// Play a whole game answering truthfully for one target medicine. The
	// target can never be filtered out because its own value always matches.
	meds := distinctCatalog()
	target := meds[5]
	e := newTestEngine(testConfig(), meds)

	res := e.Start(context.Background())
	question := res.Question
	askedBefore := map[string]bool{}

	var final *Result
	for turns := 0; turns < 20; turns++ {
		if forbiddenAttributes[question.FieldTarget] {
			t.Fatalf("forbidden attribute %q asked", question.FieldTarget)
		}
		if askedBefore[question.FieldTarget] {
			t.Fatalf("attribute %q asked twice", question.FieldTarget)
		}
		askedBefore[question.FieldTarget] = true

		answer := "Not sure"
		if v := target.Attribute(question.FieldTarget); v.Kind != catalog.KindAbsent {
			answer = v.Norm()
		}

		turn, err := e.SubmitAnswer(context.Background(), res.SessionID, answer)
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		if turn.Result != nil {
			final = turn.Result
			break
		}
		question = turn.Question.Question
	}

	if final == nil {
		t.Fatal("game never reached a result")
	}
	if !final.Success {
		t.Fatalf("result = %+v, want success", final)
	}
	if final.QuestionsAsked > testConfig().MaxQuestions {
		t.Fatalf("asked %d questions, cap is %d", final.QuestionsAsked, testConfig().MaxQuestions)
	}
	found := final.TopMatch.Medicine.ID == target.ID
	for _, alt := range final.Alternatives {
		if alt.Medicine.ID == target.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("target %s missing from result %+v", target.ID, final)
	}
}

func TestComposeAdHoc(t *testing.T) {
	e := newTestEngine(testConfig(), distinctCatalog())

	q, dist, err := e.ComposeAdHoc(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("ad hoc: %v", err)
	}
	if q == nil || len(dist) < 2 {
		t.Fatalf("q = %+v dist = %v", q, dist)
	}

	// Restricting to two identical-form records leaves the box color as the
	// only split.
	q, _, err = e.ComposeAdHoc(context.Background(), []string{"med-1", "med-3"}, []string{"box_primary_color"})
	if err == nil {
		// med-1 and med-3 are both tablets in the same category, so with box
		// color excluded only prescription status can still split them.
		if q.FieldTarget == "box_primary_color" {
			t.Fatal("excluded attribute was selected")
		}
	}
}
