package report

import (
	"testing"

	"branchscan/internal/location"

	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		value    string
		expected float64
		ok       bool
	}{
		{value: "10:00", expected: 10, ok: true},
		{value: " 7:30 ", expected: 7.5, ok: true},
		{value: "00:00", expected: 0, ok: true},
		{value: "23:45", expected: 23.75, ok: true},
		{value: "", ok: false},
		{value: "10", ok: false},
		{value: "10:0", ok: false},
		{value: "100:00", ok: false},
		{value: "10:00 - 11:00", ok: false},
	}

	for _, test := range cases {
		hours, ok := ParseClock(test.value)
		require.Equal(t, test.ok, ok, test.value)
		require.InDelta(t, test.expected, hours, 0.0001, test.value)
	}
}

func TestParseHoursRange(t *testing.T) {
	cases := []struct {
		text     string
		expected Hours
		ok       bool
	}{
		{
			text:     "08:00 - 02:00",
			expected: Hours{Open: 8, Close: 2, AfterMidnight: true},
			ok:       true,
		},
		{
			text:     "09:00 - 23:00",
			expected: Hours{Open: 9, Close: 23},
			ok:       true,
		},
		{
			text:     "24 saat",
			expected: Hours{Open: 0, Close: 24, Is24h: true, AfterMidnight: true},
			ok:       true,
		},
		{
			text:     "00:00 - 00:00",
			expected: Hours{Is24h: true, AfterMidnight: true},
			ok:       true,
		},
		{
			text:     "10:00-00:00, bazar günü 11:00-23:00",
			expected: Hours{Open: 10, Close: 0, AfterMidnight: true},
			ok:       true,
		},
		{text: "yoxdur", ok: false},
		{text: "10:00", ok: false},
		{text: "", ok: false},
	}

	for _, test := range cases {
		hours, ok := ParseHoursRange(test.text)
		require.Equal(t, test.ok, ok, test.text)
		require.Equal(t, test.expected, hours, test.text)
	}
}

func TestBucket(t *testing.T) {
	cases := []struct {
		text     string
		expected Bucket
	}{
		{text: "09:00 - 23:00", expected: BeforeMidnight},
		{text: "08:00 - 02:00", expected: AfterMidnight},
		{text: "10:00 - 00:00", expected: AfterMidnight},
		{text: "00:00 - 00:00", expected: AllDay},
		{text: "24 saat", expected: AllDay},
	}
	for _, test := range cases {
		bucket, ok := ClassifyRange(test.text)
		require.True(t, ok, test.text)
		require.Equal(t, test.expected, bucket, test.text)
	}

	_, ok := ClassifyRange("bağlıdır")
	require.False(t, ok)
}

func TestClassifyKFC(t *testing.T) {
	bucket, ok := ClassifyKFC(location.Record{"openingHour": "10:00", "closingHour": "02:00"})
	require.True(t, ok)
	require.Equal(t, AfterMidnight, bucket)

	bucket, ok = ClassifyKFC(location.Record{"openingHour": "00:00", "closingHour": "00:00"})
	require.True(t, ok)
	require.Equal(t, AllDay, bucket)

	_, ok = ClassifyKFC(location.Record{"openingHour": "10:00"})
	require.False(t, ok)
}

func FuzzParseHoursRange(f *testing.F) {
	f.Add("08:00 - 02:00")
	f.Add("24 saat")
	f.Add("00:00-00:00")
	f.Add("9:5 - 99:99")

	f.Fuzz(func(t *testing.T, text string) {
		hours, ok := ParseHoursRange(text)
		if !ok {
			return
		}
		if hours.Is24h && !hours.AfterMidnight {
			t.Fatalf("%q: a 24h window must count as after midnight", text)
		}
		if hours.Open < 0 || hours.Close < 0 {
			t.Fatalf("%q: negative hours %v", text, hours)
		}
	})
}
