package reportservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/helpdesk-tools/survey-report/pkg/reportbuilder"
	"github.com/helpdesk-tools/survey-report/pkg/survey"
	"github.com/helpdesk-tools/survey-report/pkg/surveyapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTitle = "Student Application and Technical Survey"

type fakeAPI struct {
	surveys     surveyapi.SurveyList
	details     *survey.Survey
	respondents surveyapi.RespondentList
	responses   map[string]*survey.Response

	respondentFilters []surveyapi.RespondentListFilter
	responseRequests  [][]string
}

func (f *fakeAPI) GetSurveyList(ctx context.Context, filter surveyapi.SurveyListFilter) (surveyapi.SurveyList, error) {
	return f.surveys, nil
}

func (f *fakeAPI) GetSurveyDetails(ctx context.Context, surveyID string) (*survey.Survey, error) {
	return f.details, nil
}

func (f *fakeAPI) GetSurveyRespondents(ctx context.Context, surveyID string, filter surveyapi.RespondentListFilter) (surveyapi.RespondentList, error) {
	f.respondentFilters = append(f.respondentFilters, filter)
	return f.respondents, nil
}

func (f *fakeAPI) GetSurveyResponses(ctx context.Context, surveyID string, respondentIDs ...string) (map[string]*survey.Response, error) {
	f.responseRequests = append(f.responseRequests, respondentIDs)
	out := map[string]*survey.Response{}
	for _, id := range respondentIDs {
		if r, ok := f.responses[id]; ok {
			out[id] = r
		}
	}
	return out, nil
}

func testDetails(t *testing.T) *survey.Survey {
	t.Helper()
	mk := func(id string, heading string, pos int) *survey.Question {
		q, err := survey.NewQuestion(id, heading, pos, survey.ParseQuestionType("open_ended/single"), nil)
		require.NoError(t, err)
		return q
	}
	return &survey.Survey{
		ID: "s1",
		Pages: []*survey.Page{
			survey.NewPage("p1", "Basic Information", []*survey.Question{
				mk("q1", "Name:", 1),
				mk("q2", "MIT email address:", 2),
			}),
		},
	}
}

func newFakeAPI(t *testing.T) *fakeAPI {
	modified := time.Date(2013, 2, 3, 10, 0, 0, 0, time.Local)
	return &fakeAPI{
		surveys: surveyapi.SurveyList{
			{SurveyID: "s1", Title: testTitle},
			{SurveyID: "s9", Title: testTitle + " (copy)"},
		},
		details: testDetails(t),
		respondents: surveyapi.RespondentList{
			{RespondentID: "r1", Status: "completed", DateModified: surveyapi.Timestamp{Time: modified}},
			{RespondentID: "r2", Status: "partial", DateModified: surveyapi.Timestamp{Time: modified}},
		},
		responses: map[string]*survey.Response{
			"r1": survey.NewResponse("r1", map[string][]survey.RawAnswer{
				"q1": {{Row: "0", Text: "Ada Lovelace"}},
				"q2": {{Row: "0", Text: "ada@mit.edu"}},
			}),
		},
	}
}

func TestListRecent(t *testing.T) {
	api := newFakeAPI(t)
	since := time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC)

	listings, err := New(api, testTitle, reportbuilder.DefaultOptions()).ListRecent(context.Background(), since)
	require.NoError(t, err)
	require.Len(t, listings, 1, "only exact title matches are listed")

	rows := listings[0].Rows
	require.Len(t, rows, 1, "respondent without response is skipped")
	assert.Equal(t, "Ada Lovelace", rows[0].Name)
	assert.Equal(t, "ada@mit.edu", rows[0].Email)
	assert.Equal(t, "2013-02-03 10:00:00", rows[0].Date)
	assert.Equal(t, "completed", rows[0].Status)

	require.Len(t, api.respondentFilters, 1)
	assert.True(t, api.respondentFilters[0].StartDate.Equal(since))
	assert.Equal(t, []string{"r1", "r2"}, api.responseRequests[0])
}

func TestListRecentNoRespondents(t *testing.T) {
	api := newFakeAPI(t)
	api.respondents = nil

	listings, err := New(api, testTitle, reportbuilder.DefaultOptions()).ListRecent(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, listings[0].Rows)
	assert.Empty(t, api.responseRequests, "no responses are requested for an empty respondent list")
}

func TestListRecentSurveyNotFound(t *testing.T) {
	api := newFakeAPI(t)
	_, err := New(api, "Other", reportbuilder.DefaultOptions()).ListRecent(context.Background(), time.Now())
	assert.True(t, errors.Is(err, ErrSurveyNotFound))
}

func TestBuildReport(t *testing.T) {
	api := newFakeAPI(t)
	svc := New(api, testTitle, reportbuilder.DefaultOptions())

	doc, fileName, err := svc.BuildReport(context.Background(), reportbuilder.Meta{SurveyID: "s1", RespondentID: "r1", Date: "2013-02-03 10:00:00", Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "tech_diagnostic_ada@mit.edu.pdf", fileName)
	assert.Equal(t, "Technical Diagnostic for Ada Lovelace (ada@mit.edu)", doc.Title)

	_, _, err = svc.BuildReport(context.Background(), reportbuilder.Meta{SurveyID: "s1", RespondentID: "r2"})
	assert.True(t, errors.Is(err, ErrResponseNotFound))
}

func TestSummarize(t *testing.T) {
	api := newFakeAPI(t)
	since := time.Date(2013, 2, 1, 0, 0, 0, 0, time.Local)

	summary, err := New(api, testTitle, reportbuilder.DefaultOptions()).Summarize(context.Background(), since)
	require.NoError(t, err)
	assert.Equal(t, testTitle, summary.SurveyTitle)
	require.Len(t, summary.Entries, 1)
	assert.Equal(t, "* Ada Lovelace (ada@mit.edu) submitted a completed survey on 2013-02-03 10:00:00", summary.Entries[0].Line())
	assert.True(t, api.respondentFilters[0].StartModifiedDate.Equal(since))
}

func TestSummarizeAmbiguousTitle(t *testing.T) {
	api := newFakeAPI(t)
	api.surveys = append(api.surveys, surveyapi.SurveyInfo{SurveyID: "s2", Title: testTitle})

	_, err := New(api, testTitle, reportbuilder.DefaultOptions()).Summarize(context.Background(), time.Now())
	assert.True(t, errors.Is(err, ErrMultipleSurveys))
}
