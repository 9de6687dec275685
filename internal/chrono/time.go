package chrono

import (
	"time"
)

// TimeAPI is the interface that anything depending on the system clock should use.
type TimeAPI interface {
	// Now returns the current time in UTC.
	Now() time.Time
}

// StandardTime is the standard implementation of TimeAPI using the standard library.
type StandardTime struct{}

// NewStandardTime is the constructor of StandardTime.
func NewStandardTime() StandardTime {
	return StandardTime{}
}

func (StandardTime) Now() time.Time {
	return time.Now().UTC()
}

// FixedTime always returns the same instant, it exists for tests and for
// pinning a run to a single timestamp.
type FixedTime struct {
	At time.Time
}

func (f FixedTime) Now() time.Time {
	return f.At.UTC()
}

// the fractional part is always printed to the microsecond
const isoLayout = "2006-01-02T15:04:05.000000-07:00"

// ISO formats t in UTC as an ISO-8601 timestamp with a +00:00 offset.
func ISO(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// ParseISO reads a timestamp written by ISO.
func ParseISO(value string) (time.Time, error) {
	return time.Parse(isoLayout, value)
}
