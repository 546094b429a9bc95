package main

import (
	"os"

	"gopkg.in/yaml.v2"

	"github.com/helpdesk-tools/survey-report/pkg/reportbuilder"
	"github.com/helpdesk-tools/survey-report/pkg/surveyapi"
	"github.com/helpdesk-tools/survey-report/pkg/utils"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	ENV_SURVEY_API_KEY = "SURVEY_API_KEY"
)

type config struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	SurveyAPI surveyapi.ClientConfig `json:"survey_api" yaml:"survey_api"`
	TokenFile string                 `json:"token_file" yaml:"token_file"`

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

	if apiKey := os.Getenv(ENV_SURVEY_API_KEY); apiKey != "" {
		conf.SurveyAPI.APIKey = apiKey
	}
}
