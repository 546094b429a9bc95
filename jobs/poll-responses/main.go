package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/helpdesk-tools/survey-report/pkg/reportservice"
	"github.com/helpdesk-tools/survey-report/pkg/surveyapi"
	"github.com/helpdesk-tools/survey-report/pkg/tokenstore"
)

func main() {
	logger := slog.Default().With(slog.String("runID", uuid.NewString()))
	slog.SetDefault(logger)

	slog.Info("Starting poll responses job")
	start := time.Now()

	if err := run(context.Background(), logger); err != nil {
		slog.Error("Poll responses job failed", slog.String("error", err.Error()))
		cleanUp()
		os.Exit(1)
	}
	cleanUp()

	slog.Info("Poll responses job completed", slog.Duration("duration", time.Since(start)))
}

func run(ctx context.Context, logger *slog.Logger) error {
	token, err := tokenstore.NewFileStore(conf.TokenFile).Read()
	if err != nil {
		return err
	}

	apiConf := conf.SurveyAPI
	apiConf.Logger = logger
	reportOptions := conf.Report
	reportOptions.Logger = logger

	opts := reportservice.PollOptions{
		LookBack:   lookBack,
		Recipients: conf.Notification.Recipients,
		Templates:  conf.Notification.Templates,
		SkipEmpty:  conf.Notification.SkipEmpty,
	}
	// without SMTP servers cron mails the job output instead
	var summaryMailer reportservice.Mailer
	if mailer != nil {
		summaryMailer = mailer
	} else {
		opts.Output = os.Stdout
	}

	svc := reportservice.New(surveyapi.NewClient(apiConf, token), conf.SurveyTitle, reportOptions)
	summary, err := svc.Poll(ctx, stateStore, summaryMailer, opts, time.Now())
	if err != nil {
		return err
	}

	slog.Info("responses polled", slog.Int("entries", len(summary.Entries)), slog.Time("since", summary.Since))
	return nil
}

func cleanUp() {
	if mailer != nil {
		mailer.Close()
	}
	if pollStateDBSvc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := pollStateDBSvc.Close(ctx); err != nil {
			slog.Error("Error closing Poll State DB", slog.String("error", err.Error()))
		}
	}
}
