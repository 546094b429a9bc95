package survey

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Wire representation of get_survey_details / get_responses payloads.
type surveyJSON struct {
	SurveyID *string     `json:"survey_id"`
	Title    *titleJSON  `json:"title"`
	Pages    *[]pageJSON `json:"pages"`
}

type titleJSON struct {
	Text    string `json:"text"`
	Enabled bool   `json:"enabled"`
}

type pageJSON struct {
	PageID    string         `json:"page_id"`
	Heading   *string        `json:"heading"`
	Questions []questionJSON `json:"questions"`
}

type questionJSON struct {
	QuestionID *string      `json:"question_id"`
	Heading    string       `json:"heading"`
	Position   int          `json:"position"`
	Type       *typeJSON    `json:"type"`
	Answers    []optionJSON `json:"answers"`
}

type typeJSON struct {
	Family  string `json:"family"`
	Subtype string `json:"subtype"`
}

type optionJSON struct {
	AnswerID *string `json:"answer_id"`
	Text     string  `json:"text"`
	Type     string  `json:"type"`
	Position *int    `json:"position"`
	Weight   *int    `json:"weight"`
}

type responseJSON struct {
	RespondentID *string `json:"respondent_id"`
	Questions    []struct {
		QuestionID *string `json:"question_id"`
		Answers    []struct {
			Row       string `json:"row"`
			Col       string `json:"col"`
			ColChoice string `json:"col_choice"`
			Text      string `json:"text"`
		} `json:"answers"`
	} `json:"questions"`
}

// DecodeSurvey builds a Survey from the data member of a survey details response.
func DecodeSurvey(data []byte) (*Survey, error) {
	var raw surveyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding survey details: %w", err)
	}
	if raw.SurveyID == nil {
		return nil, errors.New("survey details: missing survey_id")
	}
	if raw.Pages == nil {
		return nil, errors.New("survey details: missing pages")
	}

	s := &Survey{ID: *raw.SurveyID}
	if raw.Title != nil {
		s.Title = raw.Title.Text
	}

	for pi, p := range *raw.Pages {
		if p.Heading == nil {
			return nil, fmt.Errorf("survey details: page %d has no heading", pi)
		}
		questions := make([]*Question, 0, len(p.Questions))
		for qi, rq := range p.Questions {
			q, err := decodeQuestion(rq)
			if err != nil {
				return nil, fmt.Errorf("survey details: page %d question %d: %w", pi, qi, err)
			}
			questions = append(questions, q)
		}
		s.Pages = append(s.Pages, NewPage(p.PageID, *p.Heading, questions))
	}
	return s, nil
}

func decodeQuestion(rq questionJSON) (*Question, error) {
	if rq.QuestionID == nil {
		return nil, errors.New("missing question_id")
	}
	if rq.Type == nil || rq.Type.Family == "" {
		return nil, &MalformedQuestionError{QuestionID: *rq.QuestionID, Reason: "missing type"}
	}

	options := make([]AnswerOption, 0, len(rq.Answers))
	for _, ro := range rq.Answers {
		if ro.AnswerID == nil {
			return nil, &MalformedQuestionError{QuestionID: *rq.QuestionID, Reason: "answer without answer_id"}
		}
		options = append(options, AnswerOption{
			ID:       *ro.AnswerID,
			Text:     ro.Text,
			Role:     Role(ro.Type),
			Position: ro.Position,
			Weight:   ro.Weight,
		})
	}

	return NewQuestion(
		*rq.QuestionID,
		rq.Heading,
		rq.Position,
		QuestionType{Family: Family(rq.Type.Family), Subtype: Subtype(rq.Type.Subtype)},
		options,
	)
}

// DecodeResponses builds the responses of a get_responses call keyed by respondent id.
func DecodeResponses(data []byte) (map[string]*Response, error) {
	var raw []responseJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding responses: %w", err)
	}

	out := make(map[string]*Response, len(raw))
	for i, r := range raw {
		if r.RespondentID == nil {
			return nil, fmt.Errorf("responses: entry %d has no respondent_id", i)
		}
		answers := map[string][]RawAnswer{}
		for _, q := range r.Questions {
			if q.QuestionID == nil {
				return nil, fmt.Errorf("responses: respondent %s has a question without question_id", *r.RespondentID)
			}
			for _, a := range q.Answers {
				answers[*q.QuestionID] = append(answers[*q.QuestionID], RawAnswer{
					Row:       a.Row,
					Col:       a.Col,
					ColChoice: a.ColChoice,
					Text:      a.Text,
				})
			}
		}
		out[*r.RespondentID] = NewResponse(*r.RespondentID, answers)
	}
	return out, nil
}
