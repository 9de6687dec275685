package report

import (
	"regexp"
	"strconv"
	"strings"

	"branchscan/internal/location"
)

// Bucket classifies when a location closes.
type Bucket string

const (
	BeforeMidnight Bucket = "Before midnight"
	AfterMidnight  Bucket = "After midnight"
	AllDay         Bucket = "24h"
)

// Buckets lists every bucket in chart order.
var Buckets = []Bucket{BeforeMidnight, AfterMidnight, AllDay}

var (
	clockRegex     = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	clockFindRegex = regexp.MustCompile(`\d{1,2}:\d{2}`)
)

// ParseClock parses "H:MM" or "HH:MM" into fractional hours.
func ParseClock(value string) (float64, bool) {
	match := clockRegex.FindStringSubmatch(strings.TrimSpace(value))
	if match == nil {
		return 0, false
	}
	hour, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	minute, err := strconv.Atoi(match[2])
	if err != nil {
		return 0, false
	}
	return float64(hour) + float64(minute)/60, true
}

// Hours is an opening window as parsed from a listing.
type Hours struct {
	Open          float64
	Close         float64
	Is24h         bool
	AfterMidnight bool
}

func newHours(opens, closes float64) Hours {
	is24h := opens == 0 && closes == 0
	after := closes < opens || (closes == 0 && opens > 0)
	return Hours{
		Open:          opens,
		Close:         closes,
		Is24h:         is24h,
		AfterMidnight: after || is24h,
	}
}

// ParseHoursRange reads free text like "08:00 - 02:00" or "24 saat". The
// first two clock times found are taken as the opening and closing time.
func ParseHoursRange(text string) (Hours, bool) {
	if text == "" {
		return Hours{}, false
	}
	if strings.Contains(text, "24") && strings.Contains(text, "saat") {
		return Hours{Open: 0, Close: 24, Is24h: true, AfterMidnight: true}, true
	}

	times := clockFindRegex.FindAllString(text, 2)
	if len(times) < 2 {
		return Hours{}, false
	}
	opens, ok := ParseClock(times[0])
	if !ok {
		return Hours{}, false
	}
	closes, ok := ParseClock(times[1])
	if !ok {
		return Hours{}, false
	}
	return newHours(opens, closes), true
}

// Bucket returns the closing window of h.
func (h Hours) Bucket() Bucket {
	if h.Is24h {
		return AllDay
	}
	if h.AfterMidnight {
		return AfterMidnight
	}
	return BeforeMidnight
}

// ClassifyRange buckets a free text hours field.
func ClassifyRange(text string) (Bucket, bool) {
	hours, ok := ParseHoursRange(text)
	if !ok {
		return "", false
	}
	return hours.Bucket(), true
}

// ClassifyKFC buckets a KFC record by its openingHour and closingHour fields.
func ClassifyKFC(r location.Record) (Bucket, bool) {
	opens, ok := ParseClock(r["openingHour"])
	if !ok {
		return "", false
	}
	closes, ok := ParseClock(r["closingHour"])
	if !ok {
		return "", false
	}
	return newHours(opens, closes).Bucket(), true
}
