package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v2"

	"github.com/helpdesk-tools/survey-report/pkg/apihelpers"
	"github.com/helpdesk-tools/survey-report/pkg/oauth"
	"github.com/helpdesk-tools/survey-report/pkg/reportbuilder"
	"github.com/helpdesk-tools/survey-report/pkg/surveyapi"
	"github.com/helpdesk-tools/survey-report/pkg/utils"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_SURVEY_API_KEY      = "SURVEY_API_KEY"
	ENV_OAUTH_CLIENT_SECRET = "OAUTH_CLIENT_SECRET"
	ENV_STATE_SIGN_KEY      = "STATE_SIGN_KEY"
)

const DEFAULT_NUM_DAYS = 30

type config struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`

		// Proxies allowed to set X-Forwarded-For; none when empty
		TrustedProxies []string `json:"trusted_proxies" yaml:"trusted_proxies"`

		// Mutual TLS configs
		MTLS struct {
			Use              bool                        `json:"use" yaml:"use"`
			CertificatePaths apihelpers.CertificatePaths `json:"certificate_paths" yaml:"certificate_paths"`
		} `json:"mtls" yaml:"mtls"`
	} `json:"gin_config" yaml:"gin_config"`

	// Clients outside these networks need one of the API keys
	AllowedNetworks []string `json:"allowed_networks" yaml:"allowed_networks"`
	APIKeys         []string `json:"api_keys" yaml:"api_keys"`

	SurveyAPI      surveyapi.ClientConfig `json:"survey_api" yaml:"survey_api"`
	SurveyTitle    string                 `json:"survey_title" yaml:"survey_title"`
	DefaultNumDays int                    `json:"default_num_days" yaml:"default_num_days"`
	TokenFile      string                 `json:"token_file" yaml:"token_file"`

	OAuth oauth.Config `json:"oauth" yaml:"oauth"`

	Report reportbuilder.Options `json:"report" yaml:"report"`
}

var conf config

func init() {
	conf.Report = reportbuilder.DefaultOptions()

	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	// Init logger:
	conf.Logging.Init()

	// Override secrets from environment variables
	secretsOverride()

	if conf.DefaultNumDays <= 0 {
		conf.DefaultNumDays = DEFAULT_NUM_DAYS
	}
	if conf.OAuth.APIKey == "" {
		conf.OAuth.APIKey = conf.SurveyAPI.APIKey
	}
	if conf.TokenFile == "" {
		slog.Error("token file not configured")
		panic("token file not configured")
	}

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
}

func secretsOverride() {
	if apiKey := os.Getenv(ENV_SURVEY_API_KEY); apiKey != "" {
		conf.SurveyAPI.APIKey = apiKey
	}

	if secret := os.Getenv(ENV_OAUTH_CLIENT_SECRET); secret != "" {
		conf.OAuth.ClientSecret = secret
	}

	if signKey := os.Getenv(ENV_STATE_SIGN_KEY); signKey != "" {
		conf.OAuth.StateSignKey = signKey
	}
}
