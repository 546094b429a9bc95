package reportbuilder

import (
	"fmt"
	"log/slog"
	"regexp"

	"github.com/helpdesk-tools/survey-report/pkg/report"
	"github.com/helpdesk-tools/survey-report/pkg/survey"
)

const (
	DEFAULT_NAME_HEADING  = "Name:"
	DEFAULT_EMAIL_HEADING = "MIT email address:"

	BASIC_INFORMATION_SECTION = "Basic Information"

	FILENAME_PREFIX = "tech_diagnostic_"
	FILENAME_SUFFIX = ".pdf"
)

var fileNameCleaner = regexp.MustCompile(`[^\w@.\-]+`)

// Meta identifies the response a report is generated for.
type Meta struct {
	SurveyID     string `json:"survey_id"`
	RespondentID string `json:"respondent_id"`
	Date         string `json:"date"`
	Status       string `json:"status"`
}

type Options struct {
	NameHeading    string                          `json:"name_heading" yaml:"name_heading"`
	EmailHeading   string                          `json:"email_heading" yaml:"email_heading"`
	SectionConfigs map[string]report.SectionConfig `json:"section_configs" yaml:"section_configs"`
	ScoringTable   *report.ScoringTable            `json:"scoring_table" yaml:"scoring_table"`

	Logger *slog.Logger `json:"-" yaml:"-"`
}

// DefaultOptions is the layout used for the technical diagnostic.
func DefaultOptions() Options {
	return Options{
		NameHeading:  DEFAULT_NAME_HEADING,
		EmailHeading: DEFAULT_EMAIL_HEADING,
		SectionConfigs: map[string]report.SectionConfig{
			BASIC_INFORMATION_SECTION: {
				SkipFooter:          true,
				SkipQuestionNumbers: true,
				InlineHeadings: []string{
					"Name:",
					"MIT email address:",
					"Phone Number (cell phone preferred):",
				},
			},
		},
	}
}

// Identity returns the respondent's name and email, read from the
// answers to the name and email questions. Missing questions give "".
func Identity(details *survey.Survey, resp *survey.Response, opts Options) (name string, email string, err error) {
	questions, err := details.QuestionsByHeading(opts.nameHeading(), opts.emailHeading())
	if err != nil {
		return "", "", err
	}
	values := make([]string, len(questions))
	for i, q := range questions {
		if q == nil {
			continue
		}
		a, err := resp.ResponseForQuestion(q)
		if err != nil {
			return "", "", err
		}
		values[i] = a.Text()
	}
	return values[0], values[1], nil
}

// Build renders every non-empty survey page as a section of the report.
func Build(details *survey.Survey, resp *survey.Response, meta Meta, opts Options) (*report.Document, error) {
	name, email, err := Identity(details, resp, opts)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	doc := report.NewDocument(report.Options{
		Title:          fmt.Sprintf("Technical Diagnostic for %s (%s)", name, email),
		HeaderLines:    []string{name, email, fmt.Sprintf("%s %s", meta.Status, meta.Date)},
		SectionConfigs: opts.SectionConfigs,
		ScoringTable:   opts.ScoringTable,
		Logger:         logger,
	})

	for _, page := range details.Pages {
		if page.Len() == 0 {
			continue
		}
		doc.AddSection(page.Heading)
		for _, q := range page.Questions() {
			a, err := resp.ResponseForQuestion(q)
			if err != nil {
				logger.Error("cannot parse answer",
					slog.String("surveyID", meta.SurveyID),
					slog.String("respondentID", resp.RespondentID),
					slog.String("questionID", q.ID),
					slog.String("error", err.Error()),
				)
				return nil, err
			}
			if err := doc.AddQuestionResponse(a); err != nil {
				return nil, err
			}
		}
	}
	return doc, nil
}

// FileName is the download name of the report for the given email.
func FileName(email string) string {
	return FILENAME_PREFIX + fileNameCleaner.ReplaceAllString(email, "") + FILENAME_SUFFIX
}

func (o Options) nameHeading() string {
	if o.NameHeading == "" {
		return DEFAULT_NAME_HEADING
	}
	return o.NameHeading
}

func (o Options) emailHeading() string {
	if o.EmailHeading == "" {
		return DEFAULT_EMAIL_HEADING
	}
	return o.EmailHeading
}
