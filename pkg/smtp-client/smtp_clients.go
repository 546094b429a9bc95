package smtp_client

import (
	"crypto/tls"
	"errors"
	"log/slog"
	"net/smtp"
	"strconv"
	"time"

	"github.com/knadh/smtppool"
)

const DEFAULT_SEND_TIMEOUT = 10

type SmtpClients struct {
	servers        SmtpServerList
	connectionPool []*smtppool.Pool
	counter        uint64
}

func NewSmtpClients(config SmtpServerList) (*SmtpClients, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	pools := initConnectionPool(config)
	if len(pools) < 1 {
		return nil, errors.New("no smtp server connection in the pool")
	}
	return &SmtpClients{
		servers:        config,
		counter:        0,
		connectionPool: pools,
	}, nil
}

func (sc *SmtpClients) Close() {
	for _, p := range sc.connectionPool {
		p.Close()
	}
}

func initConnectionPool(serverList SmtpServerList) []*smtppool.Pool {
	connectionPools := []*smtppool.Pool{}
	for _, server := range serverList.Servers {
		pool, err := connectToPool(server)
		if err != nil {
			slog.Error("error setting up connection pool", slog.String("error", err.Error()), slog.String("server", server.Address()))
			continue
		}
		connectionPools = append(connectionPools, pool)
	}
	return connectionPools
}

func sendTimeout(server SmtpServer) time.Duration {
	if server.SendTimeout <= 0 {
		return DEFAULT_SEND_TIMEOUT * time.Second
	}
	return time.Duration(server.SendTimeout) * time.Second
}

func connectToPool(server SmtpServer) (*smtppool.Pool, error) {
	var auth smtp.Auth
	if server.AuthData.Username != "" || server.AuthData.Password != "" {
		auth = smtp.PlainAuth(
			"",
			server.AuthData.Username,
			server.AuthData.Password,
			server.Host,
		)
	}

	port, err := strconv.Atoi(server.Port)
	if err != nil {
		return nil, err
	}

	maxConns := server.Connections
	if maxConns < 1 {
		maxConns = 1
	}

	return smtppool.New(smtppool.Opt{
		Host:            server.Host,
		Port:            port,
		MaxConns:        maxConns,
		IdleTimeout:     sendTimeout(server),
		PoolWaitTimeout: sendTimeout(server),
		TLSConfig: &tls.Config{
			InsecureSkipVerify: server.InsecureSkipVerify,
			ServerName:         server.Host,
		},
		Auth: auth,
	})
}
