package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Time represents an exchange timestamp that can be unmarshalled from a
// quoted or bare epoch value in seconds or milliseconds.
type Time time.Time

// UnmarshalJSON deserializes json, and timestamp information.
func (t *Time) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	switch s {
	case "null", "0", "":
		*t = Time(time.Time{})
		return nil
	}

	if i := strings.IndexByte(s, '.'); i != -1 {
		// Fractional milliseconds are truncated
		s = s[:i]
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("cannot unmarshal %s into Time: %w", string(data), err)
	}

	switch len(s) {
	case 10:
		*t = Time(time.Unix(v, 0))
	case 13:
		*t = Time(time.UnixMilli(v))
	default:
		return fmt.Errorf("cannot unmarshal %s into Time: unhandled precision", string(data))
	}
	return nil
}

// Time represents a time instance.
func (t Time) Time() time.Time { return time.Time(t) }

// IsZero returns true if the timestamp was unset by the exchange
func (t Time) IsZero() bool { return t.Time().IsZero() }

// UnixMilliString returns the timestamp as a base 10 millisecond string, the
// format exchanges expect for signed request timestamps
func (t Time) UnixMilliString() string {
	return strconv.FormatInt(t.Time().UnixMilli(), 10)
}

// String returns a string representation of the time.
func (t Time) String() string {
	return t.Time().String()
}

// MarshalJSON serializes the time to json.
func (t Time) MarshalJSON() ([]byte, error) {
	return t.Time().MarshalJSON()
}
