package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/helpdesk-tools/survey-report/pkg/reportbuilder"
	"github.com/helpdesk-tools/survey-report/pkg/reportservice"
	"github.com/helpdesk-tools/survey-report/pkg/surveyapi"
	"github.com/helpdesk-tools/survey-report/pkg/tokenstore"
)

func main() {
	meta := reportbuilder.Meta{}
	flag.StringVar(&meta.SurveyID, "survey-id", "", "survey id (required)")
	flag.StringVar(&meta.RespondentID, "respondent-id", "", "respondent id (required)")
	flag.StringVar(&meta.Date, "date", "", "date shown in the header")
	flag.StringVar(&meta.Status, "status", "", "response status shown in the header")
	outDir := flag.String("out-dir", ".", "directory the PDF is written to")
	outFile := flag.String("out", "", "output file name, defaults to the name derived from the email")
	flag.Parse()

	if meta.SurveyID == "" || meta.RespondentID == "" {
		fmt.Fprintln(os.Stderr, "-survey-id and -respondent-id are required")
		flag.Usage()
		os.Exit(2)
	}

	start := time.Now()
	path, err := generate(context.Background(), meta, *outDir, *outFile)
	if err != nil {
		slog.Error("Generating PDF failed", slog.String("surveyID", meta.SurveyID), slog.String("respondentID", meta.RespondentID), slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("PDF generated", slog.String("file", path), slog.Duration("duration", time.Since(start)))
}

func generate(ctx context.Context, meta reportbuilder.Meta, outDir string, outFile string) (string, error) {
	token, err := tokenstore.NewFileStore(conf.TokenFile).Read()
	if err != nil {
		return "", err
	}

	svc := reportservice.New(surveyapi.NewClient(conf.SurveyAPI, token), "", conf.Report)
	doc, fileName, err := svc.BuildReport(ctx, meta)
	if err != nil {
		return "", err
	}
	if outFile != "" {
		fileName = outFile
	}

	path := filepath.Join(outDir, fileName)
	if err := doc.SavePDF(path); err != nil {
		return "", err
	}
	return path, nil
}
