package reportservice

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/helpdesk-tools/survey-report/pkg/notify"
	"github.com/helpdesk-tools/survey-report/pkg/pollstate"
)

// Mailer sends the summary mail.
type Mailer interface {
	SendMail(to []string, subject string, htmlContent string) error
}

type PollOptions struct {
	LookBack   time.Duration
	Recipients []string
	Templates  notify.Templates
	// SkipEmpty suppresses the mail when nothing was submitted.
	SkipEmpty bool
	// Output receives the plain-text summary when set.
	Output io.Writer
}

// Poll summarizes the responses modified since the last poll, sends the
// summary and then advances the stored poll time to now. The poll time is
// only advanced when everything before it succeeded.
func (s *Service) Poll(ctx context.Context, store pollstate.Store, mailer Mailer, opts PollOptions, now time.Time) (*notify.Summary, error) {
	since, err := pollstate.Since(ctx, store, now, opts.LookBack)
	if err != nil {
		return nil, fmt.Errorf("reading poll state: %w", err)
	}
	s.logger.Info("polling responses", slog.String("surveyTitle", s.surveyTitle), slog.Time("since", since))

	summary, err := s.Summarize(ctx, since)
	if err != nil {
		return nil, err
	}

	if opts.Output != nil {
		if _, err := io.WriteString(opts.Output, summary.Text()); err != nil {
			return nil, err
		}
	}

	if mailer != nil && len(opts.Recipients) > 0 && !(opts.SkipEmpty && len(summary.Entries) == 0) {
		subject, html, err := notify.Render(summary, opts.Templates)
		if err != nil {
			return nil, err
		}
		if err := mailer.SendMail(opts.Recipients, subject, html); err != nil {
			return nil, fmt.Errorf("sending summary: %w", err)
		}
		s.logger.Info("summary sent", slog.Int("entries", len(summary.Entries)), slog.Int("recipients", len(opts.Recipients)))
	}

	if err := store.SetLastPoll(ctx, now); err != nil {
		return nil, fmt.Errorf("saving poll state: %w", err)
	}
	return summary, nil
}
