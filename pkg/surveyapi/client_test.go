package surveyapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/h2non/gock.v1"
)

const testAPIBase = "http://survey.test"

func newTestClient() (*Client, *[]time.Duration) {
	c := NewClient(ClientConfig{APIBase: testAPIBase, APIKey: "key123"}, "tok")
	sleeps := []time.Duration{}
	c.sleep = func(d time.Duration) { sleeps = append(sleeps, d) }
	return c, &sleeps
}

func surveysPage(n int, offset int) map[string]interface{} {
	surveys := []map[string]interface{}{}
	for i := 0; i < n; i++ {
		surveys = append(surveys, map[string]interface{}{
			"survey_id": fmt.Sprintf("s%d", offset+i),
			"title":     "Tech Survey",
		})
	}
	return map[string]interface{}{
		"status": 0,
		"data":   map[string]interface{}{"surveys": surveys},
	}
}

func TestGetSurveyListPagination(t *testing.T) {
	defer gock.Off()

	gock.New(testAPIBase).
		Post("/v2/surveys/get_survey_list").
		MatchParam("api_key", "key123").
		MatchHeader("Authorization", "^bearer tok$").
		MatchHeader("Content-Type", "application/json").
		Reply(200).
		JSON(surveysPage(25, 0))
	gock.New(testAPIBase).
		Post("/v2/surveys/get_survey_list").
		Reply(200).
		JSON(surveysPage(25, 25))
	gock.New(testAPIBase).
		Post("/v2/surveys/get_survey_list").
		Reply(200).
		JSON(surveysPage(0, 50))

	c, sleeps := newTestClient()
	list, err := c.GetSurveyList(context.Background(), SurveyListFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 50)
	assert.Equal(t, "s0", list[0].SurveyID)
	assert.Equal(t, "s49", list[49].SurveyID)
	assert.True(t, gock.IsDone(), "expected exactly three requests")
	assert.Len(t, *sleeps, 3)
	for _, d := range *sleeps {
		assert.Equal(t, DEFAULT_THROTTLE, d)
	}
}

func TestGetSurveyListRequestsTitles(t *testing.T) {
	defer gock.Off()

	var body map[string]interface{}
	gock.New(testAPIBase).
		Post("/v2/surveys/get_survey_list").
		AddMatcher(func(req *http.Request, _ *gock.Request) (bool, error) {
			return true, json.NewDecoder(req.Body).Decode(&body)
		}).
		Reply(200).
		JSON(surveysPage(1, 0))

	c, _ := newTestClient()
	_, err := c.GetSurveyList(context.Background(), SurveyListFilter{
		Title:      "Tech Survey",
		ListFilter: ListFilter{Page: 1, Fields: []string{"title", "num_responses"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Tech Survey", body["title"])
	assert.Equal(t, []interface{}{"title", "date_created", "num_responses"}, body["fields"])
}

func TestGetSurveyListMaxPages(t *testing.T) {
	defer gock.Off()

	gock.New(testAPIBase).
		Post("/v2/surveys/get_survey_list").
		Times(2).
		Reply(200).
		JSON(surveysPage(3, 0))

	c, _ := newTestClient()
	list, err := c.GetSurveyList(context.Background(), SurveyListFilter{ListFilter: ListFilter{MaxPages: 2}})
	require.NoError(t, err)
	assert.Len(t, list, 6)
	assert.True(t, gock.IsDone())
}

func TestGetSurveyListSinglePage(t *testing.T) {
	defer gock.Off()

	gock.New(testAPIBase).
		Post("/v2/surveys/get_survey_list").
		Reply(200).
		JSON(surveysPage(25, 50))

	c, _ := newTestClient()
	list, err := c.GetSurveyList(context.Background(), SurveyListFilter{ListFilter: ListFilter{Page: 3}})
	require.NoError(t, err)
	assert.Len(t, list, 25)
	assert.True(t, gock.IsDone())
}

func TestStatusError(t *testing.T) {
	defer gock.Off()

	gock.New(testAPIBase).
		Post("/v2/surveys/get_survey_details").
		Reply(200).
		JSON(map[string]interface{}{"status": 1, "errmsg": "token expired"})

	c, _ := newTestClient()
	_, err := c.GetSurveyDetails(context.Background(), "123")
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 1, statusErr.Status)
	assert.Equal(t, "Not Authenticated", statusErr.Reason)
	assert.True(t, errors.Is(err, ErrAPI))
}

func TestStatusReason(t *testing.T) {
	tests := []struct {
		status   int
		expected string
	}{
		{0, "Success"},
		{1, "Not Authenticated"},
		{2, "Invalid User Credentials"},
		{3, "Invalid Request"},
		{4, "Unknown User"},
		{5, "System Error"},
		{42, "Unknown status 42"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := StatusReason(tt.status); got != tt.expected {
				t.Errorf("StatusReason(%d) = %q, want %q", tt.status, got, tt.expected)
			}
		})
	}
}

func TestTransportError(t *testing.T) {
	defer gock.Off()

	gock.New(testAPIBase).
		Post("/v2/surveys/get_survey_details").
		ReplyError(errors.New("connection refused"))

	c, sleeps := newTestClient()
	_, err := c.GetSurveyDetails(context.Background(), "123")

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr), "got %v", err)
	assert.True(t, errors.Is(err, ErrAPI))
	assert.Empty(t, *sleeps)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "<html>oops</html>"},
		{name: "missing status", body: `{"data": {}}`},
		{name: "bad survey", body: `{"status": 0, "data": {"pages": []}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer gock.Off()
			gock.New(testAPIBase).
				Post("/v2/surveys/get_survey_details").
				Reply(200).
				BodyString(tt.body)

			c, _ := newTestClient()
			_, err := c.GetSurveyDetails(context.Background(), "123")

			var decodeErr *DecodeError
			require.True(t, errors.As(err, &decodeErr), "got %v", err)
			assert.True(t, errors.Is(err, ErrAPI))
		})
	}
}

func TestHTTPErrorWithoutEnvelope(t *testing.T) {
	defer gock.Off()

	gock.New(testAPIBase).
		Post("/v2/surveys/get_survey_details").
		Reply(502).
		BodyString("Bad Gateway")

	c, _ := newTestClient()
	_, err := c.GetSurveyDetails(context.Background(), "123")

	var transportErr *TransportError
	assert.True(t, errors.As(err, &transportErr), "got %v", err)
}

func TestGetSurveyResponses(t *testing.T) {
	t.Run("no respondent ids", func(t *testing.T) {
		defer gock.Off()
		c, sleeps := newTestClient()
		_, err := c.GetSurveyResponses(context.Background(), "123")
		assert.Error(t, err)
		assert.Empty(t, *sleeps)
		assert.False(t, gock.HasUnmatchedRequest())
	})

	t.Run("decodes responses", func(t *testing.T) {
		defer gock.Off()
		gock.New(testAPIBase).
			Post("/v2/surveys/get_responses").
			Reply(200).
			JSON(map[string]interface{}{
				"status": 0,
				"data": []map[string]interface{}{
					{
						"respondent_id": "r1",
						"questions": []map[string]interface{}{
							{"question_id": "q1", "answers": []map[string]string{{"row": "0", "text": "Ada"}}},
						},
					},
				},
			})

		c, _ := newTestClient()
		responses, err := c.GetSurveyResponses(context.Background(), "123", "r1")
		require.NoError(t, err)
		require.Contains(t, responses, "r1")
		assert.Len(t, responses["r1"].RawAnswers("q1"), 1)
	})
}

func TestGetSurveyRespondents(t *testing.T) {
	defer gock.Off()

	gock.New(testAPIBase).
		Post("/v2/surveys/get_respondent_list").
		Reply(200).
		JSON(map[string]interface{}{
			"status": 0,
			"data": map[string]interface{}{
				"respondents": []map[string]interface{}{
					{"respondent_id": "r1", "status": "completed", "date_modified": "2012-04-02 18:30:00"},
					{"respondent_id": "r2", "status": "partial", "date_modified": "2012-04-03 09:00:00"},
				},
			},
		})
	gock.New(testAPIBase).
		Post("/v2/surveys/get_respondent_list").
		Reply(200).
		JSON(map[string]interface{}{"status": 0, "data": map[string]interface{}{"respondents": []interface{}{}}})

	c, _ := newTestClient()
	list, err := c.GetSurveyRespondents(context.Background(), "123", RespondentListFilter{
		ListFilter: ListFilter{StartModifiedDate: time.Date(2012, 4, 1, 0, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2"}, list.IDs())

	r, ok := list.ByID("r2")
	require.True(t, ok)
	assert.Equal(t, "partial", r.Status)
	assert.True(t, r.DateModified.Equal(time.Date(2012, 4, 3, 9, 0, 0, 0, time.UTC)))

	_, ok = list.ByID("r3")
	assert.False(t, ok)
}

func TestGetUserDetails(t *testing.T) {
	defer gock.Off()

	gock.New(testAPIBase).
		Post("/v2/user/get_user_details").
		Reply(200).
		JSON(map[string]interface{}{
			"status": 0,
			"data": map[string]interface{}{
				"user_details": map[string]interface{}{"username": "helpdesk", "is_paid_user": true},
			},
		})

	c, _ := newTestClient()
	u, err := c.GetUserDetails(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "helpdesk", u.Username)
	assert.True(t, u.IsPaidUser)
	assert.False(t, u.IsEnterpriseUser)
}
