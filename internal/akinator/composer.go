package akinator

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/clintwin/clintwin-backend/internal/platform/logger"
)

// Question is one multiple-choice question presented to the user.
type Question struct {
	ID                      string   `json:"question_id"`
	Text                    string   `json:"question_text"`
	Options                 []string `json:"options"`
	FieldTarget             string   `json:"field_target"`
	ConfidenceBefore        float64  `json:"confidence_before"`
	ConfidenceAfterExpected float64  `json:"confidence_after_expected"`
}

// PhraseRequest carries the context a phrasing strategy may use to reword a
// question. The options are fixed by the caller; a strategy can only change
// the question text.
type PhraseRequest struct {
	Attribute           string
	TemplateText        string
	Options             []string
	PossibleValues      []string
	RecentAnswers       []AnswerRecord
	RemainingCandidates int
}

// Phraser rewords a question. Implementations must return the final question
// text or an error, in which case the caller keeps the template text.
type Phraser interface {
	Phrase(ctx context.Context, req PhraseRequest) (string, error)
}

// Composer turns a selected attribute into a Question. It always has the
// template strategy available; an optional Phraser produces more natural
// wording but can never change the options and never blocks question
// generation on failure.
type Composer struct {
	attrs   *AttributeSet
	phraser Phraser
	log     *logger.Logger
}

func NewComposer(attrs *AttributeSet, phraser Phraser, log *logger.Logger) *Composer {
	return &Composer{
		attrs:   attrs,
		phraser: phraser,
		log:     log.With("service", "QuestionComposer"),
	}
}

// templateText picks one of the attribute's question templates at random.
func (c *Composer) templateText(attribute string) string {
	d, ok := c.attrs.Get(attribute)
	if !ok || len(d.QuestionTemplates) == 0 {
		return fmt.Sprintf("What is the %s?", strings.ReplaceAll(attribute, "_", " "))
	}
	return d.QuestionTemplates[rand.Intn(len(d.QuestionTemplates))]
}

// options builds the answer choices: the descriptor's fixed options when
// defined, otherwise the five most common values in the distribution plus an
// escape hatch.
func (c *Composer) options(attribute string, dist map[string]int) []string {
	if d, ok := c.attrs.Get(attribute); ok && len(d.Options) > 0 {
		return d.Options
	}

	type valueCount struct {
		value string
		count int
	}
	counts := make([]valueCount, 0, len(dist))
	for v, n := range dist {
		counts = append(counts, valueCount{v, n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].value < counts[j].value
	})

	options := []string{}
	for _, vc := range counts {
		if len(options) >= 5 {
			break
		}
		options = append(options, titleCase(strings.ReplaceAll(vc.value, "_", " ")))
	}
	if len(options) < 6 {
		options = append(options, "Not sure / Other")
	}
	return options
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Compose builds the question for an attribute selection. Confidence fields
// start at zero; the engine overwrites them on answer turns.
func (c *Composer) Compose(ctx context.Context, sel *Selection, history []AnswerRecord, remaining int) *Question {
	attribute := sel.Attribute.Name
	template := c.templateText(attribute)
	options := c.options(attribute, sel.Distribution)

	text := template
	if c.phraser != nil {
		values := make([]string, 0, len(sel.Distribution))
		for v := range sel.Distribution {
			values = append(values, v)
		}
		sort.Strings(values)

		recent := history
		if len(recent) > 3 {
			recent = recent[len(recent)-3:]
		}

		phrased, err := c.phraser.Phrase(ctx, PhraseRequest{
			Attribute:           attribute,
			TemplateText:        template,
			Options:             options,
			PossibleValues:      values,
			RecentAnswers:       recent,
			RemainingCandidates: remaining,
		})
		if err != nil {
			c.log.Warn("Phrasing failed, keeping template text", "attribute", attribute, "error", err)
		} else if strings.TrimSpace(phrased) != "" {
			text = phrased
		}
	}

	return &Question{
		ID:          uuid.NewString(),
		Text:        text,
		Options:     options,
		FieldTarget: attribute,
	}
}
