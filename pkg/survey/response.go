package survey

// RawAnswer is one answer row as sent by the provider. Row references an
// answer option id, or FREE_TEXT_ROW for a top-level free-text answer.
type RawAnswer struct {
	Row       string
	Col       string
	ColChoice string
	Text      string
}

// Response holds one respondent's raw answers keyed by question id.
type Response struct {
	RespondentID string
	answers      map[string][]RawAnswer
}

func NewResponse(respondentID string, answers map[string][]RawAnswer) *Response {
	a := make(map[string][]RawAnswer, len(answers))
	for k, v := range answers {
		rows := make([]RawAnswer, len(v))
		copy(rows, v)
		a[k] = rows
	}
	return &Response{RespondentID: respondentID, answers: a}
}

// RawAnswers returns the raw rows for a question id.
func (r *Response) RawAnswers(questionID string) []RawAnswer {
	return r.answers[questionID]
}

// ResponseForQuestion normalizes the respondent's answer to q. A question
// the respondent left untouched yields an Answer without entries.
func (r *Response) ResponseForQuestion(q *Question) (*Answer, error) {
	raw, ok := r.answers[q.ID]
	if !ok || len(raw) == 0 {
		return &Answer{Question: q}, nil
	}
	return ParseAnswer(q, raw)
}
