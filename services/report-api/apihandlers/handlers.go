package apihandlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/helpdesk-tools/survey-report/pkg/oauth"
	"github.com/helpdesk-tools/survey-report/pkg/reportbuilder"
	"github.com/helpdesk-tools/survey-report/pkg/reportservice"
	"github.com/helpdesk-tools/survey-report/pkg/surveyapi"
	"github.com/helpdesk-tools/survey-report/pkg/tokenstore"
)

func HealthCheckHandle(c *gin.Context) {
	serviceInfos := make(map[string]interface{})
	infos, err := os.ReadFile("serviceInfos.json")
	if err != nil {
		slog.Debug("Error reading serviceInfos.json", slog.String("error", err.Error()))
	} else {
		err = json.Unmarshal(infos, &serviceInfos)
		if err != nil {
			slog.Debug("Error unmarshalling serviceInfos.json", slog.String("error", err.Error()))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"serviceInfos": serviceInfos,
	})
}

// SurveyClient is what the handlers need from the survey provider.
type SurveyClient interface {
	reportservice.SurveyAPI
	GetUserDetails(ctx context.Context) (*surveyapi.UserDetails, error)
}

type TokenStore interface {
	Read() (string, error)
	Write(token string) error
	Exists() bool
}

type HttpEndpoints struct {
	tokenStore     TokenStore
	newClient      func(token string) SurveyClient
	oauthClient    *oauth.Client
	surveyTitle    string
	reportOptions  reportbuilder.Options
	defaultNumDays int
}

func NewHTTPHandler(
	tokenStore TokenStore,
	newClient func(token string) SurveyClient,
	oauthClient *oauth.Client,
	surveyTitle string,
	reportOptions reportbuilder.Options,
	defaultNumDays int,
) *HttpEndpoints {
	return &HttpEndpoints{
		tokenStore:     tokenStore,
		newClient:      newClient,
		oauthClient:    oauthClient,
		surveyTitle:    surveyTitle,
		reportOptions:  reportOptions,
		defaultNumDays: defaultNumDays,
	}
}

// surveyClient builds a provider client with the stored access token.
func (h *HttpEndpoints) surveyClient(c *gin.Context) (SurveyClient, bool) {
	token, err := h.tokenStore.Read()
	if err != nil {
		slog.Error("cannot read access token", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no access token available, run the oauth setup first"})
		return nil, false
	}
	return h.newClient(token), true
}

func (h *HttpEndpoints) reportService(c *gin.Context) (*reportservice.Service, bool) {
	client, ok := h.surveyClient(c)
	if !ok {
		return nil, false
	}
	return reportservice.New(client, h.surveyTitle, h.reportOptions), true
}

// respondWithError maps service errors to status codes.
func respondWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, reportservice.ErrSurveyNotFound), errors.Is(err, reportservice.ErrResponseNotFound):
		status = http.StatusNotFound
	case errors.Is(err, surveyapi.ErrAPI):
		status = http.StatusBadGateway
	}
	slog.Error("request failed", slog.String("path", c.Request.URL.Path), slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": err.Error()})
}

var _ TokenStore = (*tokenstore.FileStore)(nil)
