package surveyapi

import (
	"encoding/json"
	"strings"
	"time"
)

// TIMESTAMP_LAYOUT is the provider's date format; values are in UTC.
const TIMESTAMP_LAYOUT = "2006-01-02 15:04:05"

// ParseTimestamp reads a provider timestamp and returns it in local time.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.ParseInLocation(TIMESTAMP_LAYOUT, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t.Local(), nil
}

// FormatTimestamp renders t in the provider's format (UTC).
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TIMESTAMP_LAYOUT)
}

// FormatLocal renders t in the provider's layout using local time, the
// way dates are shown to people.
func FormatLocal(t time.Time) string {
	return t.Local().Format(TIMESTAMP_LAYOUT)
}

// Timestamp decodes provider date strings; an empty string is the zero time.
type Timestamp struct {
	time.Time
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		ts.Time = time.Time{}
		return nil
	}
	t, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	ts.Time = t
	return nil
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(FormatTimestamp(ts.Time))
}

func (ts Timestamp) String() string {
	if ts.IsZero() {
		return ""
	}
	return FormatLocal(ts.Time)
}
