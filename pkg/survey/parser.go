package survey

import (
	"fmt"
	"log/slog"
)

type QuestionTypeHandler interface {
	ParseResponse(question *Question, raw []RawAnswer) ([]Entry, error)
}

var questionTypeHandlers = map[Family]QuestionTypeHandler{
	FAMILY_PRESENTATION:    &PresentationHandler{},
	FAMILY_OPEN_ENDED:      &OpenEndedHandler{},
	FAMILY_SINGLE_CHOICE:   &ChoiceHandler{},
	FAMILY_MULTIPLE_CHOICE: &ChoiceHandler{},
	FAMILY_MATRIX:          &MatrixHandler{},
}

// ParseAnswer resolves raw answer rows against the question definition.
func ParseAnswer(question *Question, raw []RawAnswer) (*Answer, error) {
	handler, ok := questionTypeHandlers[question.Type.Family]
	if !ok {
		return nil, &UnsupportedQuestionTypeError{QuestionID: question.ID, Type: question.Type}
	}
	entries, err := handler.ParseResponse(question, raw)
	if err != nil {
		return nil, err
	}
	return &Answer{Question: question, Entries: entries}, nil
}

// PresentationHandler implements the QuestionTypeHandler interface for
// presentation items, which never carry an answer.
type PresentationHandler struct{}

func (h *PresentationHandler) ParseResponse(question *Question, raw []RawAnswer) ([]Entry, error) {
	if len(raw) > 0 {
		slog.Debug("ignoring answers to presentation item", slog.String("questionID", question.ID), slog.Int("count", len(raw)))
	}
	return []Entry{}, nil
}

// OpenEndedHandler implements the QuestionTypeHandler interface for open ended questions
type OpenEndedHandler struct{}

func (h *OpenEndedHandler) ParseResponse(question *Question, raw []RawAnswer) ([]Entry, error) {
	switch {
	case question.Type.IsMultiPart():
		return parseSubAnswers(question, raw)
	case question.Type.IsSingleText():
		return parseSingleText(question, raw)
	default:
		return nil, &UnsupportedQuestionTypeError{QuestionID: question.ID, Type: question.Type}
	}
}

func parseSubAnswers(question *Question, raw []RawAnswer) ([]Entry, error) {
	byRow := make(map[string]string, len(raw))
	for _, r := range raw {
		if _, ok := question.Option(r.Row); !ok {
			return nil, &MalformedResponseError{QuestionID: question.ID, Reason: fmt.Sprintf("unknown row %s", r.Row)}
		}
		if _, dup := byRow[r.Row]; dup {
			return nil, &MalformedResponseError{QuestionID: question.ID, Reason: fmt.Sprintf("more than one answer for row %s", r.Row)}
		}
		byRow[r.Row] = r.Text
	}

	entries := []Entry{}
	for _, o := range question.positionedOptions() {
		if text, ok := byRow[o.ID]; ok {
			entries = append(entries, SubAnswerEntry(o.Text, &text))
		} else {
			entries = append(entries, SubAnswerEntry(o.Text, nil))
		}
	}
	return entries, nil
}

func parseSingleText(question *Question, raw []RawAnswer) ([]Entry, error) {
	if len(raw) != 1 {
		return nil, &MalformedResponseError{QuestionID: question.ID, Reason: fmt.Sprintf("expected one answer, got %d", len(raw))}
	}
	if raw[0].Row != FREE_TEXT_ROW {
		return nil, &MalformedResponseError{QuestionID: question.ID, Reason: fmt.Sprintf("expected row %s, got %s", FREE_TEXT_ROW, raw[0].Row)}
	}
	return []Entry{TextEntry(raw[0].Text)}, nil
}

// ChoiceHandler implements the QuestionTypeHandler interface for single and multiple choice questions
type ChoiceHandler struct{}

func (h *ChoiceHandler) ParseResponse(question *Question, raw []RawAnswer) ([]Entry, error) {
	entries := []Entry{}
	others := []Entry{}
	for _, r := range raw {
		option, ok := question.Option(r.Row)
		if !ok {
			return nil, &MalformedResponseError{QuestionID: question.ID, Reason: fmt.Sprintf("unknown row %s", r.Row)}
		}
		switch option.Role {
		case ROLE_ROW:
			entries = append(entries, TextEntry(option.Text))
		case ROLE_OTHER:
			others = append(others, OtherEntry(option.Text, r.Text))
		default:
			return nil, &MalformedResponseError{QuestionID: question.ID, Reason: fmt.Sprintf("answer %s has unexpected role %q", option.ID, option.Role)}
		}
	}
	return append(entries, others...), nil
}

// MatrixHandler implements the QuestionTypeHandler interface for matrix
// questions. Column weights are not interpreted.
type MatrixHandler struct{}

func (h *MatrixHandler) ParseResponse(question *Question, raw []RawAnswer) ([]Entry, error) {
	entries := []Entry{}
	for _, r := range raw {
		row, ok := question.Option(r.Row)
		if !ok {
			return nil, &MalformedResponseError{QuestionID: question.ID, Reason: fmt.Sprintf("unknown row %s", r.Row)}
		}
		if r.Col == "" {
			// e.g. the free-text comment row of a matrix
			entries = append(entries, MatrixCellEntry(row.Text, r.Text))
			continue
		}
		col, ok := question.Option(r.Col)
		if !ok {
			return nil, &MalformedResponseError{QuestionID: question.ID, Reason: fmt.Sprintf("unknown column %s", r.Col)}
		}
		entries = append(entries, MatrixCellEntry(row.Text, col.Text))
	}
	return entries, nil
}
