package surveyapi

import (
	"encoding/json"
	"log/slog"
	"slices"
	"time"
)

const (
	DEFAULT_THROTTLE  = 350 * time.Millisecond
	DEFAULT_MAX_PAGES = 10
	DEFAULT_TIMEOUT   = 30 * time.Second

	API_VERSION_PATH = "/v2"
)

type ClientConfig struct {
	APIBase  string        `json:"api_base" yaml:"api_base"`
	APIKey   string        `json:"api_key" yaml:"api_key"`
	Timeout  time.Duration `json:"timeout" yaml:"timeout"`
	Throttle time.Duration `json:"throttle" yaml:"throttle"`

	Logger *slog.Logger `json:"-" yaml:"-"`
}

type envelope struct {
	Status *int            `json:"status"`
	Data   json.RawMessage `json:"data"`
	ErrMsg string          `json:"errmsg"`
}

type SurveyInfo struct {
	SurveyID      string    `json:"survey_id"`
	Title         string    `json:"title"`
	DateCreated   Timestamp `json:"date_created"`
	DateModified  Timestamp `json:"date_modified"`
	NumResponses  int       `json:"num_responses"`
	QuestionCount int       `json:"question_count"`
	AnalysisURL   string    `json:"analysis_url"`
	PreviewURL    string    `json:"preview_url"`
}

type RespondentInfo struct {
	RespondentID   string    `json:"respondent_id"`
	DateStart      Timestamp `json:"date_start"`
	DateModified   Timestamp `json:"date_modified"`
	CollectorID    string    `json:"collector_id"`
	CollectionMode string    `json:"collection_mode"`
	CustomID       string    `json:"custom_id"`
	Email          string    `json:"email"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	IPAddress      string    `json:"ip_address"`
	Status         string    `json:"status"`
	AnalysisURL    string    `json:"analysis_url"`
}

type UserDetails struct {
	Username         string `json:"username"`
	IsPaidUser       bool   `json:"is_paid_user"`
	IsEnterpriseUser bool   `json:"is_enterprise_user"`
}

// ListFilter holds the filters shared by the list endpoints. Zero values
// are not sent. A non-zero Page fetches exactly that page; otherwise pages
// are walked from 1 until an empty page or MaxPages (0 means
// DEFAULT_MAX_PAGES, negative means no limit).
type ListFilter struct {
	StartDate         time.Time
	EndDate           time.Time
	StartModifiedDate time.Time
	EndModifiedDate   time.Time
	Fields            []string
	OrderAsc          *bool
	Page              int
	PageSize          int
	MaxPages          int
}

// SURVEY_LIST_FIELDS are always requested from get_survey_list; without
// them the provider only returns survey ids.
var SURVEY_LIST_FIELDS = []string{"title", "date_created"}

type SurveyListFilter struct {
	ListFilter
	Title string
}

func (f SurveyListFilter) params() map[string]interface{} {
	fields := append([]string{}, SURVEY_LIST_FIELDS...)
	for _, field := range f.Fields {
		if !slices.Contains(fields, field) {
			fields = append(fields, field)
		}
	}
	f.ListFilter.Fields = fields

	p := f.ListFilter.params()
	if f.Title != "" {
		p["title"] = f.Title
	}
	return p
}

type RespondentListFilter struct {
	ListFilter
}

func (f ListFilter) params() map[string]interface{} {
	p := map[string]interface{}{}
	addDate := func(key string, t time.Time) {
		if !t.IsZero() {
			p[key] = FormatTimestamp(t)
		}
	}
	addDate("start_date", f.StartDate)
	addDate("end_date", f.EndDate)
	addDate("start_modified_date", f.StartModifiedDate)
	addDate("end_modified_date", f.EndModifiedDate)
	if len(f.Fields) > 0 {
		p["fields"] = f.Fields
	}
	if f.OrderAsc != nil {
		p["order_asc"] = *f.OrderAsc
	}
	if f.PageSize > 0 {
		p["page_size"] = f.PageSize
	}
	return p
}

func (f ListFilter) maxPages() int {
	if f.MaxPages == 0 {
		return DEFAULT_MAX_PAGES
	}
	return f.MaxPages
}

// SurveyList keeps the order in which surveys were returned.
type SurveyList []SurveyInfo

// ByTitle returns the surveys whose title matches exactly.
func (l SurveyList) ByTitle(title string) SurveyList {
	out := SurveyList{}
	for _, s := range l {
		if s.Title == title {
			out = append(out, s)
		}
	}
	return out
}

// RespondentList keeps the order in which respondents were returned.
type RespondentList []RespondentInfo

func (l RespondentList) ByID(id string) (RespondentInfo, bool) {
	for _, r := range l {
		if r.RespondentID == id {
			return r, true
		}
	}
	return RespondentInfo{}, false
}

func (l RespondentList) IDs() []string {
	ids := make([]string, 0, len(l))
	for _, r := range l {
		ids = append(ids, r.RespondentID)
	}
	return ids
}
