package smtp_client

import (
	"errors"
	"log/slog"

	"github.com/jordan-wright/email"
	"github.com/knadh/smtppool"
)

func toPoolEmail(e *email.Email) smtppool.Email {
	return smtppool.Email{
		ReplyTo: e.ReplyTo,
		From:    e.From,
		To:      e.To,
		Bcc:     e.Bcc,
		Cc:      e.Cc,
		Subject: e.Subject,
		Text:    e.Text,
		HTML:    e.HTML,
		Sender:  e.Sender,
		Headers: e.Headers,
	}
}

// SendMail sends through the configured servers in turn. A server that
// fails is reconnected for the next attempt.
func (sc *SmtpClients) SendMail(
	to []string,
	subject string,
	htmlContent string,
) error {
	if len(sc.connectionPool) < 1 {
		return errors.New("no servers defined")
	}
	if len(to) < 1 {
		return errors.New("no recipients")
	}

	index := int(sc.counter % uint64(len(sc.connectionPool)))
	sc.counter += 1
	selectedServer := sc.connectionPool[index]

	e := composeMail(sc.servers.From, sc.servers.Sender, sc.servers.ReplyTo, to, subject, htmlContent)
	err := selectedServer.Send(toPoolEmail(e))
	if err != nil {
		slog.Error("error when trying to send email", slog.String("error", err.Error()))

		pool, errReconnect := connectToPool(sc.servers.Servers[index])
		if errReconnect != nil {
			slog.Error("cannot reconnect pool", slog.String("error", errReconnect.Error()), slog.String("server", sc.servers.Servers[index].Host))
		} else {
			slog.Info("reconnected to pool", slog.String("server", sc.servers.Servers[index].Host))
			selectedServer.Close()
			sc.connectionPool[index] = pool
		}
	}
	return err
}
