package smtp_client

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestComposeMail(t *testing.T) {
	e := composeMail("helpdesk@mit.edu", "", []string{"noreply@mit.edu"}, []string{"staff@mit.edu"}, "New surveys", "<p>hi</p>")
	raw, err := e.Bytes()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, expected := range []string{
		"helpdesk@mit.edu",
		"staff@mit.edu",
		"noreply@mit.edu",
		"Subject: New surveys",
		"Content-Type: text/html",
	} {
		if !bytes.Contains(raw, []byte(expected)) {
			t.Errorf("missing %q in:\n%s", expected, raw)
		}
	}
}

func TestServerListValidate(t *testing.T) {
	tests := []struct {
		name    string
		list    SmtpServerList
		wantErr bool
	}{
		{name: "no servers", list: SmtpServerList{From: "a@b.c"}, wantErr: true},
		{name: "no from", list: SmtpServerList{Servers: []SmtpServer{{Host: "h", Port: "25"}}}, wantErr: true},
		{name: "no port", list: SmtpServerList{From: "a@b.c", Servers: []SmtpServer{{Host: "h"}}}, wantErr: true},
		{name: "valid", list: SmtpServerList{From: "a@b.c", Servers: []SmtpServer{{Host: "h", Port: "25"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.list.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestReadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "servers.yaml")
	content := `servers:
  - host: smtp.mit.edu
    port: "587"
    connections: 2
    auth:
      user: helpdesk
      password: from-file
from: helpdesk@mit.edu
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	sl := SmtpServerList{}
	if err := sl.ReadFromFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sl.Servers) != 1 || sl.Servers[0].Address() != "smtp.mit.edu:587" {
		t.Errorf("unexpected servers: %+v", sl.Servers)
	}

	sl.SetPassword("from-env")
	if sl.Servers[0].AuthData.Password != "from-env" {
		t.Error("password not overridden")
	}
}
