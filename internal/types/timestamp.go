package types

import (
	"fmt"
	"time"
)

// WireTimeLayout is the timestamp format used on the wire,
// e.g. "2022-02-03T15:00:00+0000". It differs from RFC3339 only in
// the colon-less zone offset.
const WireTimeLayout = "2006-01-02T15:04:05-0700"

// timeLayouts are the accepted input formats, tried in order
var timeLayouts = []string{
	WireTimeLayout,
	time.RFC3339,
	time.RFC3339Nano,
}

// Timestamp wraps time.Time to (un)marshal the wire format
type Timestamp struct {
	time.Time
}

// NewTimestamp creates a Timestamp from a time.Time
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseTimestamp parses a wire-format or RFC3339 timestamp string
func ParseTimestamp(s string) (Timestamp, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid timestamp: %q", s)
}

// String returns the wire representation
func (ts Timestamp) String() string {
	return ts.Format(WireTimeLayout)
}

// MarshalJSON implements json.Marshaler using the wire layout
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + ts.Format(WireTimeLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler, accepting the wire layout
// as well as RFC3339 variants
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid timestamp: %s", s)
	}
	parsed, err := ParseTimestamp(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}
