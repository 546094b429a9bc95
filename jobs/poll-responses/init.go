package main

import (
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/helpdesk-tools/survey-report/pkg/db"
	"github.com/helpdesk-tools/survey-report/pkg/notify"
	"github.com/helpdesk-tools/survey-report/pkg/pollstate"
	"github.com/helpdesk-tools/survey-report/pkg/reportbuilder"
	"github.com/helpdesk-tools/survey-report/pkg/surveyapi"
	"github.com/helpdesk-tools/survey-report/pkg/utils"

	pollstateDB "github.com/helpdesk-tools/survey-report/pkg/db/poll-state"
	sc "github.com/helpdesk-tools/survey-report/pkg/smtp-client"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_SURVEY_API_KEY         = "SURVEY_API_KEY"
	ENV_POLL_STATE_DB_USERNAME = "POLL_STATE_DB_USERNAME"
	ENV_POLL_STATE_DB_PASSWORD = "POLL_STATE_DB_PASSWORD"
	ENV_SMTP_PASSWORD          = "SMTP_PASSWORD"
)

const (
	STATE_STORE_FILE  = "file"
	STATE_STORE_MONGO = "mongo"
)

type config struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	SurveyAPI   surveyapi.ClientConfig `json:"survey_api" yaml:"survey_api"`
	SurveyTitle string                 `json:"survey_title" yaml:"survey_title"`
	TokenFile   string                 `json:"token_file" yaml:"token_file"`

	// e.g. "7d" or "36h"
	LookBack string `json:"look_back" yaml:"look_back"`

	StateStore struct {
		Type string          `json:"type" yaml:"type"`
		File string          `json:"file" yaml:"file"`
		DB   db.DBConfigYaml `json:"db" yaml:"db"`
	} `json:"state_store" yaml:"state_store"`

	Notification struct {
		Recipients []string `json:"recipients" yaml:"recipients"`
		// Path of the SMTP server list; without it the summary is printed to stdout
		SmtpServerConfigFile string           `json:"smtp_server_config_file" yaml:"smtp_server_config_file"`
		SkipEmpty            bool             `json:"skip_empty" yaml:"skip_empty"`
		Templates            notify.Templates `json:"templates" yaml:"templates"`
	} `json:"notification" yaml:"notification"`

	Report reportbuilder.Options `json:"report" yaml:"report"`
}

var conf config

var (
	lookBack       time.Duration
	stateStore     pollstate.Store
	pollStateDBSvc *pollstateDB.PollStateDBService
	mailer         *sc.SmtpClients
)

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

	if conf.LookBack != "" {
		lookBack, err = utils.ParseDurationString(conf.LookBack)
		if err != nil {
			slog.Error("invalid look back", slog.String("error", err.Error()))
			panic(err)
		}
	}

	initStateStore()
	initMailer()
}

func secretsOverride() {
	if apiKey := os.Getenv(ENV_SURVEY_API_KEY); apiKey != "" {
		conf.SurveyAPI.APIKey = apiKey
	}

	if dbUsername := os.Getenv(ENV_POLL_STATE_DB_USERNAME); dbUsername != "" {
		conf.StateStore.DB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_POLL_STATE_DB_PASSWORD); dbPassword != "" {
		conf.StateStore.DB.Password = dbPassword
	}
}

func initStateStore() {
	switch conf.StateStore.Type {
	case STATE_STORE_MONGO:
		var err error
		pollStateDBSvc, err = pollstateDB.NewPollStateDBService(db.DBConfigFromYamlObj(conf.StateStore.DB))
		if err != nil {
			slog.Error("Error connecting to Poll State DB", slog.String("error", err.Error()))
			panic(err)
		}
		stateStore = pollStateDBSvc.ForSurvey(conf.SurveyTitle)
	case STATE_STORE_FILE, "":
		if conf.StateStore.File == "" {
			slog.Error("state file not configured")
			panic("state file not configured")
		}
		stateStore = pollstate.NewFileStore(conf.StateStore.File)
	default:
		slog.Error("unknown state store type", slog.String("type", conf.StateStore.Type))
		panic("unknown state store type")
	}
}

func initMailer() {
	if conf.Notification.SmtpServerConfigFile == "" {
		slog.Info("no SMTP servers configured, summary goes to stdout")
		return
	}

	servers := sc.SmtpServerList{}
	if err := servers.ReadFromFile(conf.Notification.SmtpServerConfigFile); err != nil {
		panic(err)
	}
	if password := os.Getenv(ENV_SMTP_PASSWORD); password != "" {
		servers.SetPassword(password)
	}

	smtpClients, err := sc.NewSmtpClients(servers)
	if err != nil {
		slog.Error("Error creating SMTP clients", slog.String("error", err.Error()))
		panic(err)
	}
	mailer = smtpClients
}
