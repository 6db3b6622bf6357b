package application

import (
	"fmt"
	"strings"
	"time"
)

// localDateTimeLayout is the wire format for booking timestamps.
const localDateTimeLayout = "2006-01-02T15:04:05"

// LocalDateTime marshals to/from a second-precision local date-time without a
// zone designator, matching the gateway's payload contract.
type LocalDateTime time.Time

// UnmarshalJSON parses a quoted yyyy-MM-ddTHH:mm:ss value.
func (t *LocalDateTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*t = LocalDateTime(time.Time{})
		return nil
	}
	parsed, err := time.Parse(localDateTimeLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date-time %q: expected %s", s, localDateTimeLayout)
	}
	*t = LocalDateTime(parsed)
	return nil
}

// MarshalJSON renders the timestamp in the wire layout.
func (t LocalDateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).Format(localDateTimeLayout) + `"`), nil
}

// Time returns the underlying time value.
func (t LocalDateTime) Time() time.Time {
	return time.Time(t)
}
