package reportservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/helpdesk-tools/survey-report/pkg/notify"
	"github.com/helpdesk-tools/survey-report/pkg/report"
	"github.com/helpdesk-tools/survey-report/pkg/reportbuilder"
	"github.com/helpdesk-tools/survey-report/pkg/survey"
	"github.com/helpdesk-tools/survey-report/pkg/surveyapi"
)

// SurveyAPI is the part of the survey provider client used here.
type SurveyAPI interface {
	GetSurveyList(ctx context.Context, filter surveyapi.SurveyListFilter) (surveyapi.SurveyList, error)
	GetSurveyDetails(ctx context.Context, surveyID string) (*survey.Survey, error)
	GetSurveyRespondents(ctx context.Context, surveyID string, filter surveyapi.RespondentListFilter) (surveyapi.RespondentList, error)
	GetSurveyResponses(ctx context.Context, surveyID string, respondentIDs ...string) (map[string]*survey.Response, error)
}

var (
	ErrSurveyNotFound   = errors.New("no survey found with this title")
	ErrMultipleSurveys  = errors.New("multiple surveys found with this title")
	ErrResponseNotFound = errors.New("no response found for this respondent")
)

var respondentFields = []string{"date_modified", "status"}

type Service struct {
	api         SurveyAPI
	surveyTitle string
	opts        reportbuilder.Options
	logger      *slog.Logger
}

func New(api SurveyAPI, surveyTitle string, opts reportbuilder.Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{api: api, surveyTitle: surveyTitle, opts: opts, logger: logger}
}

// ListingRow is one respondent of a survey listing.
type ListingRow struct {
	RespondentID string    `json:"respondent_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	DateModified time.Time `json:"date_modified"`
	Date         string    `json:"date"`
	Status       string    `json:"status"`
}

type SurveyListing struct {
	SurveyID string       `json:"survey_id"`
	Title    string       `json:"title"`
	Rows     []ListingRow `json:"rows"`
}

// ListRecent lists, for every survey with the configured title, the
// respondents who started since the given time.
func (s *Service) ListRecent(ctx context.Context, since time.Time) ([]SurveyListing, error) {
	surveys, err := s.api.GetSurveyList(ctx, surveyapi.SurveyListFilter{Title: s.surveyTitle})
	if err != nil {
		return nil, err
	}
	surveys = surveys.ByTitle(s.surveyTitle)
	if len(surveys) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrSurveyNotFound, s.surveyTitle)
	}

	listings := []SurveyListing{}
	for _, info := range surveys {
		listing, err := s.listSurvey(ctx, info, since)
		if err != nil {
			return nil, err
		}
		listings = append(listings, *listing)
	}
	return listings, nil
}

func (s *Service) listSurvey(ctx context.Context, info surveyapi.SurveyInfo, since time.Time) (*SurveyListing, error) {
	listing := &SurveyListing{SurveyID: info.SurveyID, Title: info.Title, Rows: []ListingRow{}}

	details, err := s.api.GetSurveyDetails(ctx, info.SurveyID)
	if err != nil {
		return nil, err
	}
	respondents, err := s.api.GetSurveyRespondents(ctx, info.SurveyID, surveyapi.RespondentListFilter{
		ListFilter: surveyapi.ListFilter{StartDate: since, Fields: respondentFields},
	})
	if err != nil {
		return nil, err
	}
	if len(respondents) == 0 {
		return listing, nil
	}
	responses, err := s.api.GetSurveyResponses(ctx, info.SurveyID, respondents.IDs()...)
	if err != nil {
		return nil, err
	}

	for _, r := range respondents {
		resp, ok := responses[r.RespondentID]
		if !ok {
			s.logger.Warn("respondent without response", slog.String("surveyID", info.SurveyID), slog.String("respondentID", r.RespondentID))
			continue
		}
		name, email, err := reportbuilder.Identity(details, resp, s.opts)
		if err != nil {
			return nil, err
		}
		listing.Rows = append(listing.Rows, ListingRow{
			RespondentID: r.RespondentID,
			Name:         name,
			Email:        email,
			DateModified: r.DateModified.Time,
			Date:         r.DateModified.String(),
			Status:       r.Status,
		})
	}
	return listing, nil
}

// BuildReport fetches one respondent's response and lays it out.
func (s *Service) BuildReport(ctx context.Context, meta reportbuilder.Meta) (*report.Document, string, error) {
	details, err := s.api.GetSurveyDetails(ctx, meta.SurveyID)
	if err != nil {
		return nil, "", err
	}
	responses, err := s.api.GetSurveyResponses(ctx, meta.SurveyID, meta.RespondentID)
	if err != nil {
		return nil, "", err
	}
	resp, ok := responses[meta.RespondentID]
	if !ok || len(responses) != 1 {
		return nil, "", fmt.Errorf("%w: %s (%d responses returned)", ErrResponseNotFound, meta.RespondentID, len(responses))
	}

	doc, err := reportbuilder.Build(details, resp, meta, s.opts)
	if err != nil {
		return nil, "", err
	}
	_, email, err := reportbuilder.Identity(details, resp, s.opts)
	if err != nil {
		return nil, "", err
	}
	return doc, reportbuilder.FileName(email), nil
}

// Summarize collects the respondents modified since the given time. The
// configured title must match exactly one survey.
func (s *Service) Summarize(ctx context.Context, since time.Time) (*notify.Summary, error) {
	surveys, err := s.api.GetSurveyList(ctx, surveyapi.SurveyListFilter{Title: s.surveyTitle})
	if err != nil {
		return nil, err
	}
	surveys = surveys.ByTitle(s.surveyTitle)
	switch len(surveys) {
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrSurveyNotFound, s.surveyTitle)
	case 1:
	default:
		return nil, fmt.Errorf("%w: %q", ErrMultipleSurveys, s.surveyTitle)
	}
	surveyID := surveys[0].SurveyID

	details, err := s.api.GetSurveyDetails(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if details.Title == "" {
		details.Title = surveys[0].Title
	}
	respondents, err := s.api.GetSurveyRespondents(ctx, surveyID, surveyapi.RespondentListFilter{
		ListFilter: surveyapi.ListFilter{StartModifiedDate: since, Fields: respondentFields},
	})
	if err != nil {
		return nil, err
	}

	responses := map[string]*survey.Response{}
	if len(respondents) > 0 {
		responses, err = s.api.GetSurveyResponses(ctx, surveyID, respondents.IDs()...)
		if err != nil {
			return nil, err
		}
	}
	return notify.BuildSummary(details, since, respondents, responses, s.opts)
}
