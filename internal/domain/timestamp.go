package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// offsetLayout is the registration format of the demo dataset: a space
// separates the seconds from the UTC offset ("2021-05-31T02:20:58 -09:00").
const offsetLayout = "2006-01-02T15:04:05 -07:00"

// Timestamp is a registration time. Values that match neither RFC 3339 nor
// the demo dataset's layout are kept verbatim and reported as unknown.
type Timestamp struct {
	t     time.Time
	raw   string
	known bool
}

// NewTimestamp wraps a known time
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t: t, known: true}
}

// ParseTimestamp never fails: an unrecognized value yields an unknown Timestamp
func ParseTimestamp(s string) Timestamp {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339Nano, offsetLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{t: t, known: true}
		}
	}
	return Timestamp{raw: s}
}

// Known reports whether the timestamp holds a parsed time
func (ts Timestamp) Known() bool {
	return ts.known
}

// IsZero reports whether the timestamp was never set, neither parsed nor raw
func (ts Timestamp) IsZero() bool {
	return !ts.known && ts.raw == ""
}

// Time returns the parsed time, or the zero time if unknown
func (ts Timestamp) Time() time.Time {
	return ts.t
}

// String returns the canonical RFC 3339 form, or the raw text if unknown
func (ts Timestamp) String() string {
	if ts.Known() {
		return ts.t.Format(time.RFC3339)
	}
	return ts.raw
}

// Display formats the date for humans
func (ts Timestamp) Display() string {
	if !ts.Known() {
		return "Unknown"
	}
	return ts.t.Format("January 2, 2006")
}

// Equal compares the instant, or the raw text when both are unknown
func (ts Timestamp) Equal(other Timestamp) bool {
	if ts.Known() != other.Known() {
		return false
	}
	if ts.Known() {
		return ts.t.Equal(other.t)
	}
	return ts.raw == other.raw
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.String())
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*ts = ParseTimestamp(s)
	return nil
}
