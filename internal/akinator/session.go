package akinator

import (
	"sync"
	"time"

	"github.com/clintwin/clintwin-backend/internal/catalog"
)

// AnswerRecord is one answered question in a session's history.
type AnswerRecord struct {
	Attribute string `json:"attribute"`
	Answer    string `json:"answer"`
	Question  string `json:"question"`
}

// Session is the mutable state of one identification game. All access after
// creation goes through the engine, which holds mu for the whole turn so
// concurrent answers to the same session serialize.
type Session struct {
	ID string

	mu               sync.Mutex
	candidates       []*catalog.Medicine
	asked            map[string]bool
	answers          []AnswerRecord
	questionsAsked   int
	confidence       float64
	currentAttribute string
	currentQuestion  *Question

	createdAt  time.Time
	lastActive time.Time
}

func newSession(id string, candidates []*catalog.Medicine) *Session {
	now := time.Now()
	return &Session{
		ID:         id,
		candidates: candidates,
		asked:      map[string]bool{},
		createdAt:  now,
		lastActive: now,
	}
}

// Snapshot is a read-only view of session state for the status endpoint.
type Snapshot struct {
	SessionID           string    `json:"session_id"`
	QuestionsAsked      int       `json:"questions_asked"`
	Confidence          float64   `json:"confidence"`
	RemainingCandidates int       `json:"remaining_candidates"`
	AskedAttributes     []string  `json:"asked_attributes"`
	CurrentQuestion     *Question `json:"current_question"`
}

func (s *Session) snapshot() *Snapshot {
	asked := make([]string, 0, len(s.asked))
	for _, rec := range s.answers {
		asked = append(asked, rec.Attribute)
	}
	return &Snapshot{
		SessionID:           s.ID,
		QuestionsAsked:      s.questionsAsked,
		Confidence:          s.confidence,
		RemainingCandidates: len(s.candidates),
		AskedAttributes:     asked,
		CurrentQuestion:     s.currentQuestion,
	}
}
