package surveyapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	httpclient "github.com/helpdesk-tools/survey-report/pkg/http-client"
	"github.com/helpdesk-tools/survey-report/pkg/survey"
)

const (
	GROUP_SURVEYS = "surveys"
	GROUP_USER    = "user"

	METHOD_GET_SURVEY_LIST     = "get_survey_list"
	METHOD_GET_SURVEY_DETAILS  = "get_survey_details"
	METHOD_GET_RESPONDENT_LIST = "get_respondent_list"
	METHOD_GET_RESPONSES       = "get_responses"
	METHOD_GET_USER_DETAILS    = "get_user_details"
)

// Client talks to the survey provider. Every call is a single request;
// failures are returned, never retried.
type Client struct {
	transport httpclient.ClientConfig
	throttle  time.Duration
	logger    *slog.Logger
	sleep     func(time.Duration)
}

func NewClient(conf ClientConfig, token string) *Client {
	timeout := conf.Timeout
	if timeout <= 0 {
		timeout = DEFAULT_TIMEOUT
	}
	throttle := conf.Throttle
	if throttle <= 0 {
		throttle = DEFAULT_THROTTLE
	}
	logger := conf.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		transport: httpclient.ClientConfig{
			RootURL:     strings.TrimRight(conf.APIBase, "/") + API_VERSION_PATH,
			APIKey:      conf.APIKey,
			BearerToken: token,
			HTTPClient:  &http.Client{Timeout: timeout},
		},
		throttle: throttle,
		logger:   logger,
		sleep:    time.Sleep,
	}
}

// call posts params to /<group>/<method> and returns the envelope's data
// member. The throttle delay follows every transport response.
func (c *Client) call(ctx context.Context, group string, method string, params map[string]interface{}) (json.RawMessage, error) {
	resp, err := c.transport.RunHTTPcall(ctx, "/"+group+"/"+method, params)
	if err != nil {
		return nil, &TransportError{Method: method, Err: err}
	}
	c.sleep(c.throttle)

	var env envelope
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		if resp.StatusCode >= http.StatusMultipleChoices {
			return nil, &TransportError{Method: method, Err: fmt.Errorf("unexpected HTTP status %d", resp.StatusCode)}
		}
		return nil, &DecodeError{Method: method, Err: err}
	}
	if env.Status == nil {
		return nil, &DecodeError{Method: method, Err: errors.New("missing status")}
	}
	if *env.Status != STATUS_SUCCESS {
		c.logger.Warn("survey api call rejected",
			slog.String("method", method),
			slog.Int("status", *env.Status),
			slog.String("errmsg", env.ErrMsg),
		)
		return nil, &StatusError{
			Method:  method,
			Status:  *env.Status,
			Reason:  StatusReason(*env.Status),
			Message: env.ErrMsg,
		}
	}
	return env.Data, nil
}

func (c *Client) GetSurveyDetails(ctx context.Context, surveyID string) (*survey.Survey, error) {
	data, err := c.call(ctx, GROUP_SURVEYS, METHOD_GET_SURVEY_DETAILS, map[string]interface{}{
		"survey_id": surveyID,
	})
	if err != nil {
		return nil, err
	}
	s, err := survey.DecodeSurvey(data)
	if err != nil {
		return nil, &DecodeError{Method: METHOD_GET_SURVEY_DETAILS, Err: err}
	}
	return s, nil
}

// GetSurveyResponses fetches the responses of the given respondents keyed by respondent id.
func (c *Client) GetSurveyResponses(ctx context.Context, surveyID string, respondentIDs ...string) (map[string]*survey.Response, error) {
	if len(respondentIDs) == 0 {
		return nil, errors.New("get survey responses: at least one respondent id is required")
	}
	data, err := c.call(ctx, GROUP_SURVEYS, METHOD_GET_RESPONSES, map[string]interface{}{
		"survey_id":      surveyID,
		"respondent_ids": respondentIDs,
	})
	if err != nil {
		return nil, err
	}
	responses, err := survey.DecodeResponses(data)
	if err != nil {
		return nil, &DecodeError{Method: METHOD_GET_RESPONSES, Err: err}
	}
	return responses, nil
}

func (c *Client) GetUserDetails(ctx context.Context) (*UserDetails, error) {
	data, err := c.call(ctx, GROUP_USER, METHOD_GET_USER_DETAILS, map[string]interface{}{})
	if err != nil {
		return nil, err
	}
	var res struct {
		UserDetails *UserDetails `json:"user_details"`
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, &DecodeError{Method: METHOD_GET_USER_DETAILS, Err: err}
	}
	if res.UserDetails == nil {
		return nil, &DecodeError{Method: METHOD_GET_USER_DETAILS, Err: errors.New("missing user_details")}
	}
	return res.UserDetails, nil
}

func (c *Client) GetSurveyList(ctx context.Context, filter SurveyListFilter) (SurveyList, error) {
	params := filter.params()

	list := SurveyList{}
	err := c.paginate(ctx, METHOD_GET_SURVEY_LIST, params, filter.ListFilter, func(data json.RawMessage) (int, error) {
		var page struct {
			Surveys []SurveyInfo `json:"surveys"`
		}
		if err := json.Unmarshal(data, &page); err != nil {
			return 0, err
		}
		list = append(list, page.Surveys...)
		return len(page.Surveys), nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) GetSurveyRespondents(ctx context.Context, surveyID string, filter RespondentListFilter) (RespondentList, error) {
	params := filter.params()
	params["survey_id"] = surveyID

	list := RespondentList{}
	err := c.paginate(ctx, METHOD_GET_RESPONDENT_LIST, params, filter.ListFilter, func(data json.RawMessage) (int, error) {
		var page struct {
			Respondents []RespondentInfo `json:"respondents"`
		}
		if err := json.Unmarshal(data, &page); err != nil {
			return 0, err
		}
		list = append(list, page.Respondents...)
		return len(page.Respondents), nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// paginate walks the pages of a list method. collect decodes one page's
// data, appends the items and reports how many it found.
func (c *Client) paginate(
	ctx context.Context,
	method string,
	params map[string]interface{},
	filter ListFilter,
	collect func(json.RawMessage) (int, error),
) error {
	if filter.Page > 0 {
		params["page"] = filter.Page
		data, err := c.call(ctx, GROUP_SURVEYS, method, params)
		if err != nil {
			return err
		}
		if _, err := collect(data); err != nil {
			return &DecodeError{Method: method, Err: err}
		}
		return nil
	}

	maxPages := filter.maxPages()
	for page := 1; maxPages < 0 || page <= maxPages; page++ {
		params["page"] = page
		data, err := c.call(ctx, GROUP_SURVEYS, method, params)
		if err != nil {
			return err
		}
		n, err := collect(data)
		if err != nil {
			return &DecodeError{Method: method, Err: err}
		}
		c.logger.Debug("fetched page", slog.String("method", method), slog.Int("page", page), slog.Int("items", n))
		if n == 0 {
			return nil
		}
	}
	c.logger.Warn("page limit reached", slog.String("method", method), slog.Int("maxPages", maxPages))
	return nil
}
