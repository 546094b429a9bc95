package smtp_client

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v2"
)

type SmtpServerList struct {
	Servers []SmtpServer `yaml:"servers"`
	From    string       `yaml:"from"`
	Sender  string       `yaml:"sender"`
	ReplyTo []string     `yaml:"replyTo"`
}

type SmtpServer struct {
	Host               string `yaml:"host"`
	Port               string `yaml:"port"`
	Connections        int    `yaml:"connections"`
	InsecureSkipVerify bool   `yaml:"insecureSkipVerify"`
	AuthData           struct {
		Username string `yaml:"user"`
		Password string `yaml:"password"`
	} `yaml:"auth"`
	SendTimeout int `yaml:"sendTimeout"`
}

// Address URI to smtp server
func (s *SmtpServer) Address() string {
	return s.Host + ":" + s.Port
}

func (sl *SmtpServerList) ReadFromFile(fname string) (err error) {
	yamlFile, err := os.ReadFile(fname)
	if err != nil {
		slog.Error("could not read server config file", slog.String("file", fname), slog.String("error", err.Error()))
		return err
	}
	err = yaml.UnmarshalStrict(yamlFile, &sl)
	return
}

// SetPassword overrides the password of every server, for secrets passed
// through the environment.
func (sl *SmtpServerList) SetPassword(password string) {
	for i := range sl.Servers {
		sl.Servers[i].AuthData.Password = password
	}
}

func (sl *SmtpServerList) Validate() error {
	if len(sl.Servers) == 0 {
		return errors.New("no smtp servers defined")
	}
	if sl.From == "" {
		return errors.New("from address missing")
	}
	for _, s := range sl.Servers {
		if s.Host == "" || s.Port == "" {
			return fmt.Errorf("smtp server %q: host and port are required", s.Address())
		}
	}
	return nil
}
