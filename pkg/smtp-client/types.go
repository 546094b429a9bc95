package smtp_client

import (
	"github.com/jordan-wright/email"
)

func composeMail(from string, sender string, replyTo []string, to []string, subject string, htmlContent string) *email.Email {
	e := email.NewEmail()
	e.From = from
	e.Sender = sender
	e.ReplyTo = replyTo
	e.To = to
	e.Subject = subject
	e.HTML = []byte(htmlContent)
	return e
}
