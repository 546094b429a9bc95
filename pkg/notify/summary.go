package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/helpdesk-tools/survey-report/pkg/reportbuilder"
	"github.com/helpdesk-tools/survey-report/pkg/survey"
	"github.com/helpdesk-tools/survey-report/pkg/surveyapi"
)

const NO_SURVEYS = "No surveys"

type Entry struct {
	RespondentID string    `json:"respondent_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Status       string    `json:"status"`
	DateModified time.Time `json:"date_modified"`
}

// Date is the modification date as shown to people.
func (e Entry) Date() string {
	return surveyapi.FormatLocal(e.DateModified)
}

func (e Entry) Line() string {
	return fmt.Sprintf("* %s (%s) submitted a %s survey on %s", e.Name, e.Email, e.Status, e.Date())
}

// Summary lists the responses submitted since the last poll.
type Summary struct {
	SurveyTitle string
	Since       time.Time
	Entries     []Entry
}

func (s *Summary) Header() string {
	return fmt.Sprintf("Technical Surveys completed since %s:", surveyapi.FormatLocal(s.Since))
}

// Text is the plain-text form of the summary.
func (s *Summary) Text() string {
	lines := []string{s.Header()}
	if len(s.Entries) == 0 {
		lines = append(lines, NO_SURVEYS)
	}
	for _, e := range s.Entries {
		lines = append(lines, e.Line())
	}
	return strings.Join(lines, "\n") + "\n"
}

// BuildSummary pairs every respondent with their response, in respondent
// order. Respondents without a response are left out.
func BuildSummary(
	details *survey.Survey,
	since time.Time,
	respondents surveyapi.RespondentList,
	responses map[string]*survey.Response,
	opts reportbuilder.Options,
) (*Summary, error) {
	summary := &Summary{
		SurveyTitle: details.Title,
		Since:       since,
		Entries:     []Entry{},
	}
	for _, r := range respondents {
		resp, ok := responses[r.RespondentID]
		if !ok {
			continue
		}
		name, email, err := reportbuilder.Identity(details, resp, opts)
		if err != nil {
			return nil, fmt.Errorf("respondent %s: %w", r.RespondentID, err)
		}
		summary.Entries = append(summary.Entries, Entry{
			RespondentID: r.RespondentID,
			Name:         name,
			Email:        email,
			Status:       r.Status,
			DateModified: r.DateModified.Time,
		})
	}
	return summary, nil
}
