package chrono

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestISO(t *testing.T) {
	baku, err := time.LoadLocation("Asia/Baku")
	if err != nil {
		t.Skip("tzdata unavailable", err)
	}

	cases := []struct {
		at       time.Time
		expected string
	}{
		{
			at:       time.Date(2024, time.March, 5, 10, 30, 0, 0, time.UTC),
			expected: "2024-03-05T10:30:00.000000+00:00",
		},
		{
			at:       time.Date(2024, time.March, 5, 14, 30, 0, 123456000, baku),
			expected: "2024-03-05T10:30:00.123456+00:00",
		},
	}

	for _, test := range cases {
		require.Equal(t, test.expected, ISO(test.at))
	}
}

func TestFixedTime(t *testing.T) {
	at := time.Date(2023, time.December, 31, 23, 59, 59, 0, time.UTC)
	clock := FixedTime{At: at}
	require.Equal(t, at, clock.Now())
	require.Equal(t, time.UTC, NewStandardTime().Now().Location())
}

func TestParseISO(t *testing.T) {
	at := time.Date(2024, time.March, 5, 10, 30, 0, 123456000, time.UTC)
	parsed, err := ParseISO(ISO(at))
	if err != nil {
		t.Fatal(err)
	}
	require.True(t, at.Equal(parsed))

	_, err = ParseISO("2024-03-05")
	require.Error(t, err)
}
