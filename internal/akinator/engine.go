package akinator

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/clintwin/clintwin-backend/internal/catalog"
	"github.com/clintwin/clintwin-backend/internal/platform/envutil"
	"github.com/clintwin/clintwin-backend/internal/platform/logger"
)

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrNoCurrentQuestion = errors.New("no current question")
)

// Config controls when the engine stops asking and commits to a guess.
type Config struct {
	MinQuestions        int
	MaxQuestions        int
	ConfidenceThreshold float64
}

func ConfigFromEnv() Config {
	return Config{
		MinQuestions:        envutil.Int("AKINATOR_MIN_QUESTIONS", 3),
		MaxQuestions:        envutil.Int("AKINATOR_MAX_QUESTIONS", 8),
		ConfidenceThreshold: envutil.Float("AKINATOR_CONFIDENCE_THRESHOLD", 0.92),
	}
}

// StartResult is the response to starting a new session.
type StartResult struct {
	SessionID           string    `json:"session_id"`
	Question            *Question `json:"question,omitempty"`
	RemainingCandidates int       `json:"remaining_candidates"`
	Confidence          float64   `json:"confidence"`
	QuestionsAsked      int       `json:"questions_asked"`
	Error               string    `json:"error,omitempty"`
}

// QuestionTurn is an answer response that continues the game.
type QuestionTurn struct {
	Type                string    `json:"type"`
	Question            *Question `json:"question"`
	RemainingCandidates int       `json:"remaining_candidates"`
	Confidence          float64   `json:"confidence"`
	QuestionsAsked      int       `json:"questions_asked"`
}

// RankedMatch is one guessed medicine with its per-rank confidence.
type RankedMatch struct {
	Medicine   *catalog.Medicine `json:"medicine"`
	Confidence float64           `json:"confidence"`
	Rank       int               `json:"rank"`
}

// Result is the terminal response of a session.
type Result struct {
	Type           string         `json:"type"`
	Success        bool           `json:"success"`
	Message        string         `json:"message,omitempty"`
	TopMatch       *RankedMatch   `json:"top_match,omitempty"`
	Alternatives   []RankedMatch  `json:"alternatives,omitempty"`
	Confidence     float64        `json:"confidence"`
	QuestionsAsked int            `json:"questions_asked"`
	AnswersGiven   []AnswerRecord `json:"answers_given,omitempty"`
}

// Turn is either the next question or the final result, never both.
type Turn struct {
	Question *QuestionTurn
	Result   *Result
}

// Engine runs identification sessions over the loaded catalog.
type Engine struct {
	cfg      Config
	catalog  *catalog.Store
	attrs    *AttributeSet
	composer *Composer
	store    SessionStore
	log      *logger.Logger
}

func NewEngine(cfg Config, cat *catalog.Store, attrs *AttributeSet, composer *Composer, store SessionStore, log *logger.Logger) *Engine {
	return &Engine{
		cfg:      cfg,
		catalog:  cat,
		attrs:    attrs,
		composer: composer,
		store:    store,
		log:      log.With("service", "AkinatorEngine"),
	}
}

// Start creates a session over the full catalog and composes the first
// question. A catalog with nothing to ask about still yields a session, with
// an error message instead of a question.
func (e *Engine) Start(ctx context.Context) *StartResult {
	candidates := e.catalog.List()
	s := newSession(uuid.NewString(), candidates)
	e.store.Put(s)

	sel := SelectAttribute(e.attrs, candidates, s.asked)
	if sel == nil {
		e.log.Warn("No selectable attribute at session start", "session_id", s.ID, "candidates", len(candidates))
		return &StartResult{
			SessionID:           s.ID,
			RemainingCandidates: len(candidates),
			Error:               "Unable to generate question",
		}
	}

	q := e.composer.Compose(ctx, sel, nil, len(candidates))

	s.mu.Lock()
	s.currentAttribute = sel.Attribute.Name
	s.currentQuestion = q
	s.mu.Unlock()

	e.log.Info("Session started", "session_id", s.ID, "candidates", len(candidates), "first_attribute", sel.Attribute.Name)
	return &StartResult{
		SessionID:           s.ID,
		Question:            q,
		RemainingCandidates: len(candidates),
	}
}

// SubmitAnswer applies one answer: filter, rescore confidence, then either
// stop with a result or compose the next question. The session lock is held
// for the whole turn.
func (e *Engine) SubmitAnswer(ctx context.Context, sessionID, answer string) (*Turn, error) {
	s, ok := e.store.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentAttribute == "" {
		return nil, ErrNoCurrentQuestion
	}

	attribute := s.currentAttribute
	questionText := ""
	if s.currentQuestion != nil {
		questionText = s.currentQuestion.Text
	}
	s.answers = append(s.answers, AnswerRecord{Attribute: attribute, Answer: answer, Question: questionText})
	s.asked[attribute] = true
	s.questionsAsked++
	s.lastActive = time.Now()

	s.candidates = FilterCandidates(s.candidates, attribute, answer)
	s.confidence = Confidence(len(s.candidates), e.catalog.Len())

	if e.shouldStop(s.questionsAsked, s.confidence, len(s.candidates)) {
		return &Turn{Result: e.result(s)}, nil
	}

	sel := SelectAttribute(e.attrs, s.candidates, s.asked)
	if sel == nil {
		return &Turn{Result: e.result(s)}, nil
	}

	q := e.composer.Compose(ctx, sel, s.answers, len(s.candidates))
	q.ConfidenceBefore = s.confidence
	q.ConfidenceAfterExpected = s.confidence + 0.2
	if q.ConfidenceAfterExpected > 0.95 {
		q.ConfidenceAfterExpected = 0.95
	}

	s.currentAttribute = sel.Attribute.Name
	s.currentQuestion = q

	return &Turn{Question: &QuestionTurn{
		Type:                "question",
		Question:            q,
		RemainingCandidates: len(s.candidates),
		Confidence:          s.confidence,
		QuestionsAsked:      s.questionsAsked,
	}}, nil
}

// shouldStop applies the stop policy: a minimum number of questions before
// any guess, then either high confidence or a single survivor, with a hard
// cap either way.
func (e *Engine) shouldStop(asked int, confidence float64, remaining int) bool {
	if asked >= e.cfg.MaxQuestions {
		return true
	}
	if asked < e.cfg.MinQuestions {
		return false
	}
	return confidence >= e.cfg.ConfidenceThreshold || remaining == 1
}

// result builds the terminal payload from session state. Caller holds s.mu.
func (e *Engine) result(s *Session) *Result {
	s.currentAttribute = ""
	s.currentQuestion = nil

	if len(s.candidates) == 0 {
		return &Result{
			Type:           "result",
			Success:        false,
			Message:        "No matching medicine found. Please try again with different answers.",
			Confidence:     0.0,
			QuestionsAsked: s.questionsAsked,
		}
	}

	top := s.candidates
	if len(top) > 5 {
		top = top[:5]
	}
	matches := make([]RankedMatch, 0, len(top))
	for i, m := range top {
		matches = append(matches, RankedMatch{
			Medicine:   m,
			Confidence: round2(s.confidence * (1 - float64(i)*0.1)),
			Rank:       i + 1,
		})
	}

	res := &Result{
		Type:           "result",
		Success:        true,
		TopMatch:       &matches[0],
		Confidence:     s.confidence,
		QuestionsAsked: s.questionsAsked,
		AnswersGiven:   s.answers,
	}
	if len(matches) > 1 {
		res.Alternatives = matches[1:]
	}
	return res
}

// Snapshot returns the current state of a session.
func (e *Engine) Snapshot(sessionID string) (*Snapshot, error) {
	s, ok := e.store.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(), nil
}

// End removes a session.
func (e *Engine) End(sessionID string) error {
	if !e.store.Delete(sessionID) {
		return ErrSessionNotFound
	}
	return nil
}

// ComposeAdHoc generates a single question outside any session, over either
// the whole catalog or a subset of medicine IDs.
func (e *Engine) ComposeAdHoc(ctx context.Context, medicineIDs, askedAttributes []string) (*Question, map[string]int, error) {
	candidates := e.catalog.List()
	if len(medicineIDs) > 0 {
		subset := []*catalog.Medicine{}
		for _, id := range medicineIDs {
			if m, ok := e.catalog.ByID(id); ok {
				subset = append(subset, m)
			}
		}
		candidates = subset
	}

	asked := map[string]bool{}
	for _, a := range askedAttributes {
		asked[a] = true
	}

	sel := SelectAttribute(e.attrs, candidates, asked)
	if sel == nil {
		return nil, nil, errors.New("no suitable question available")
	}
	q := e.composer.Compose(ctx, sel, nil, len(candidates))
	return q, sel.Distribution, nil
}
