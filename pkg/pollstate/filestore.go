package pollstate

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/helpdesk-tools/survey-report/pkg/surveyapi"
)

const DATE_KEY = "date"

// FileStore keeps the state as key=value lines. The date uses the survey
// API's timestamp layout in Location, local time unless set.
type FileStore struct {
	Path     string
	Location *time.Location
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path, Location: time.Local}
}

func (s *FileStore) location() *time.Location {
	if s.Location == nil {
		return time.Local
	}
	return s.Location
}

func (s *FileStore) read() (map[string]string, error) {
	content, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading state file: %w", err)
	}

	values := map[string]string{}
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("state file %s line %d: missing '='", s.Path, lineNo)
		}
		values[k] = v
	}
	return values, scanner.Err()
}

func (s *FileStore) LastPoll(ctx context.Context) (time.Time, bool, error) {
	values, err := s.read()
	if err != nil {
		return time.Time{}, false, err
	}
	raw, ok := values[DATE_KEY]
	if !ok {
		return time.Time{}, false, nil
	}
	t, err := time.ParseInLocation(surveyapi.TIMESTAMP_LAYOUT, strings.TrimSpace(raw), s.location())
	if err != nil {
		return time.Time{}, false, fmt.Errorf("state file %s: invalid date %q: %w", s.Path, raw, err)
	}
	return t, true, nil
}

// SetLastPoll rewrites the file, keeping any other keys.
func (s *FileStore) SetLastPoll(ctx context.Context, t time.Time) error {
	values, err := s.read()
	if err != nil {
		return err
	}
	values[DATE_KEY] = t.In(s.location()).Format(surveyapi.TIMESTAMP_LAYOUT)

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	for _, k := range keys {
		fmt.Fprintf(&buf, "%s=%s\n", k, values[k])
	}
	return os.WriteFile(s.Path, buf.Bytes(), 0644)
}
