package survey

import (
	"fmt"
	"sort"
)

// AnswerOption is one predefined answer of a question.
type AnswerOption struct {
	ID       string
	Text     string
	Role     Role
	Position *int
	Weight   *int
}

// Question is immutable after NewQuestion.
type Question struct {
	ID       string
	Heading  string
	Position int
	Type     QuestionType

	options     []AnswerOption
	optionsByID map[string]*AnswerOption
}

// NewQuestion validates the answer options and builds the lookup index.
// Answer ids must be unique, and every option of a multi-part open-ended
// question needs a position.
func NewQuestion(id string, heading string, position int, qType QuestionType, options []AnswerOption) (*Question, error) {
	q := &Question{
		ID:          id,
		Heading:     heading,
		Position:    position,
		Type:        qType,
		options:     make([]AnswerOption, len(options)),
		optionsByID: make(map[string]*AnswerOption, len(options)),
	}
	copy(q.options, options)

	for i := range q.options {
		o := &q.options[i]
		if _, exists := q.optionsByID[o.ID]; exists {
			return nil, &MalformedQuestionError{QuestionID: id, Reason: fmt.Sprintf("duplicate answer id %s", o.ID)}
		}
		if qType.IsMultiPart() && o.Position == nil {
			return nil, &MalformedQuestionError{QuestionID: id, Reason: fmt.Sprintf("answer %s of %s question has no position", o.ID, qType)}
		}
		q.optionsByID[o.ID] = o
	}
	return q, nil
}

// Answerable is false for presentation items, which collect no input.
func (q *Question) Answerable() bool {
	return q.Type.Family != FAMILY_PRESENTATION
}

// Options returns the answer options in definition order.
func (q *Question) Options() []AnswerOption {
	out := make([]AnswerOption, len(q.options))
	copy(out, q.options)
	return out
}

// Option looks up an answer option by id.
func (q *Question) Option(id string) (AnswerOption, bool) {
	o, ok := q.optionsByID[id]
	if !ok {
		return AnswerOption{}, false
	}
	return *o, true
}

// positionedOptions returns the options sorted by position. Options
// without a position keep their relative order after the positioned ones.
func (q *Question) positionedOptions() []AnswerOption {
	out := q.Options()
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].Position, out[j].Position
		if pi == nil || pj == nil {
			return pi != nil && pj == nil
		}
		return *pi < *pj
	})
	return out
}

// Page groups questions under one heading.
type Page struct {
	ID        string
	Heading   string
	questions []*Question
}

func NewPage(id string, heading string, questions []*Question) *Page {
	qs := make([]*Question, len(questions))
	copy(qs, questions)
	return &Page{ID: id, Heading: heading, questions: qs}
}

// Questions returns the answerable questions ordered by position.
func (p *Page) Questions() []*Question {
	out := make([]*Question, 0, len(p.questions))
	for _, q := range p.questions {
		if q.Answerable() {
			out = append(out, q)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position < out[j].Position
	})
	return out
}

// Len counts the answerable questions.
func (p *Page) Len() int {
	return len(p.Questions())
}

// QuestionByHeading searches all questions of the page, presentation items included.
func (p *Page) QuestionByHeading(heading string) (*Question, error) {
	matches := p.questionsByHeading(heading)
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return matches[0], nil
	default:
		return nil, &AmbiguousHeadingError{Heading: heading, Count: len(matches)}
	}
}

func (p *Page) questionsByHeading(heading string) []*Question {
	matches := []*Question{}
	for _, q := range p.questions {
		if q.Heading == heading {
			matches = append(matches, q)
		}
	}
	return matches
}

// Survey is the decoded survey definition.
type Survey struct {
	ID    string
	Title string
	Pages []*Page
}

// QuestionsByHeading returns one slot per requested heading, in the
// caller's order, nil where no question has that heading.
func (s *Survey) QuestionsByHeading(headings ...string) ([]*Question, error) {
	out := make([]*Question, len(headings))
	for i, h := range headings {
		matches := []*Question{}
		for _, p := range s.Pages {
			matches = append(matches, p.questionsByHeading(h)...)
		}
		if len(matches) > 1 {
			return nil, &AmbiguousHeadingError{Heading: h, Count: len(matches)}
		}
		if len(matches) == 1 {
			out[i] = matches[0]
		}
	}
	return out, nil
}

// Question looks up a question by id across all pages.
func (s *Survey) Question(id string) *Question {
	for _, p := range s.Pages {
		for _, q := range p.questions {
			if q.ID == id {
				return q
			}
		}
	}
	return nil
}
