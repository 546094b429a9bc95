package reportbuilder

import (
	"bytes"
	"errors"
	"testing"

	"github.com/helpdesk-tools/survey-report/pkg/report"
	"github.com/helpdesk-tools/survey-report/pkg/survey"
)

func testSurvey(t *testing.T) *survey.Survey {
	t.Helper()
	mk := func(id string, heading string, pos int, qType string, opts ...survey.AnswerOption) *survey.Question {
		q, err := survey.NewQuestion(id, heading, pos, survey.ParseQuestionType(qType), opts)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return q
	}
	return &survey.Survey{
		ID: "s1",
		Pages: []*survey.Page{
			survey.NewPage("p0", "Welcome", []*survey.Question{mk("q0", "Hello", 1, "presentation/descriptive_text")}),
			survey.NewPage("p1", "Basic Information", []*survey.Question{
				mk("q1", "Name:", 1, "open_ended/single"),
				mk("q2", "MIT email address:", 2, "open_ended/single"),
			}),
			survey.NewPage("p2", "Computers", []*survey.Question{
				mk("q3", "Likes Linux?", 1, "single_choice/vertical",
					survey.AnswerOption{ID: "a1", Text: "Yes", Role: survey.ROLE_ROW},
					survey.AnswerOption{ID: "a2", Text: "No", Role: survey.ROLE_ROW},
				),
			}),
		},
	}
}

func testResponse() *survey.Response {
	return survey.NewResponse("r1", map[string][]survey.RawAnswer{
		"q1": {{Row: "0", Text: "Ada Lovelace"}},
		"q2": {{Row: "0", Text: "ada@mit.edu"}},
		"q3": {{Row: "a1"}},
	})
}

func TestBuild(t *testing.T) {
	doc, err := Build(testSurvey(t), testResponse(), Meta{SurveyID: "s1", RespondentID: "r1", Date: "2012-04-02", Status: "completed"}, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "Technical Diagnostic for Ada Lovelace (ada@mit.edu)" {
		t.Errorf("unexpected title: %s", doc.Title)
	}
	expected := []string{"Ada Lovelace", "ada@mit.edu", "completed 2012-04-02"}
	for i, l := range expected {
		if doc.HeaderLines[i] != l {
			t.Errorf("header line %d: got %q, want %q", i, doc.HeaderLines[i], l)
		}
	}

	pages, err := doc.Layout()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("presentation-only page should be skipped, got %d pages", len(pages))
	}
	if pages[0].Section != "Basic Information" || pages[1].Section != "Computers" {
		t.Errorf("unexpected sections: %s, %s", pages[0].Section, pages[1].Section)
	}

	hasText := func(p report.Page, text string) bool {
		for _, txt := range p.Texts() {
			if txt == text {
				return true
			}
		}
		return false
	}
	if hasText(pages[0], `"Basic Information" score: `) {
		t.Error("basic information skips the footer")
	}
	if !hasText(pages[1], `"Computers" score: `) {
		t.Error("computers footer missing")
	}
	if !hasText(pages[1], "1. Likes Linux?") {
		t.Error("numbered heading missing")
	}

	var buf bytes.Buffer
	if err := doc.WritePDF(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBuildMalformedAnswer(t *testing.T) {
	resp := survey.NewResponse("r1", map[string][]survey.RawAnswer{
		"q3": {{Row: "zzz"}},
	})
	_, err := Build(testSurvey(t), resp, Meta{}, DefaultOptions())
	var malformed *survey.MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Errorf("expected MalformedResponseError, got %v", err)
	}
}

func TestIdentityMissingQuestions(t *testing.T) {
	opts := Options{NameHeading: "Full name", EmailHeading: "E-mail"}
	name, email, err := Identity(testSurvey(t), testResponse(), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "" || email != "" {
		t.Errorf("expected empty identity, got %q %q", name, email)
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		email    string
		expected string
	}{
		{email: "ada@mit.edu", expected: "tech_diagnostic_ada@mit.edu.pdf"},
		{email: "a b/c;d@x-y.org", expected: "tech_diagnostic_abcd@x-y.org.pdf"},
		{email: "", expected: "tech_diagnostic_.pdf"},
		{email: "under_score@x.org", expected: "tech_diagnostic_under_score@x.org.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := FileName(tt.email); got != tt.expected {
				t.Errorf("FileName(%q) = %q, want %q", tt.email, got, tt.expected)
			}
		})
	}
}
