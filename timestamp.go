package tradehub

import (
	"fmt"
	"strings"
	"time"
)

// timestampLayout is the single boundary format: UTC, second precision.
const timestampLayout = "2006-01-02T15:04:05Z"

// Timestamp is a UTC instant with no sub-second component. It is the only
// time representation that crosses a persistence or API boundary.
type Timestamp struct {
	t time.Time
}

// Now returns the current instant, truncated to the second.
func Now() Timestamp {
	return NewTimestamp(time.Now())
}

// NewTimestamp converts a time.Time to a Timestamp, normalizing to UTC and
// dropping sub-second precision.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t: t.UTC().Truncate(time.Second)}
}

// ParseTimestamp parses the boundary format, and tolerates the ISO-8601
// variants older files may carry: a zone-less "2006-01-02T15:04:05" and a
// space-separated "2006-01-02 15:04:05", both read as UTC.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range []string{timestampLayout, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return NewTimestamp(t), nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid timestamp %q", s)
}

func (ts Timestamp) String() string {
	return ts.t.Format(timestampLayout)
}

func (ts Timestamp) IsZero() bool             { return ts.t.IsZero() }
func (ts Timestamp) Time() time.Time          { return ts.t }
func (ts Timestamp) Equal(o Timestamp) bool   { return ts.t.Equal(o.t) }
func (ts Timestamp) Before(o Timestamp) bool  { return ts.t.Before(o.t) }
func (ts Timestamp) After(o Timestamp) bool   { return ts.t.After(o.t) }
func (ts Timestamp) Sub(o Timestamp) time.Duration { return ts.t.Sub(o.t) }

// MarshalJSON encodes the timestamp as a JSON string in the boundary format.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + ts.String() + `"`), nil
}

// UnmarshalJSON accepts any format ParseTimestamp accepts.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}
