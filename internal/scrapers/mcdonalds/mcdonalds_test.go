package mcdonalds

import (
	"os"
	"testing"

	"branchscan/internal/location"
	"branchscan/internal/telemetry"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func readFixture(t testing.TB, name string) string {
	content, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatal(err)
	}
	return string(content)
}

func TestParseStructured(t *testing.T) {
	rows, err := ParseStructured(readFixture(t, "restaurants.html"))
	if err != nil {
		t.Fatal(err)
	}

	expected := []location.Record{
		{
			"name":       "McDonald's 28 Mall",
			"address":    "Azadlıq prospekti 15a, Bakı",
			"phone":      "+994 12 404 00 28",
			"hours":      "08:00 - 02:00",
			"drive_thru": "yoxdur",
			"mcdelivery": "10:00 - 01:00",
		},
		{
			"name":       "McDonald's Gənclik & Park",
			"address":    "Fətəli xan Xoyski 111",
			"hours":      "24 saat",
			"drive_thru": "24 saat",
		},
		{
			"address": "Sumqayıt, Sülh küçəsi 3",
			"phone":   "+994 18 642 00 00",
		},
	}
	diff := cmp.Diff(expected, rows)
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestParseFallback(t *testing.T) {
	payload := readFixture(t, "restaurants_escaped.html")

	structured, err := ParseStructured(payload)
	if err != nil {
		t.Fatal(err)
	}
	require.Empty(t, structured)

	rows := ParseFallback(payload)
	expected := []location.Record{
		{
			"name":       "McDonald's Nərimanov",
			"address":    "Təbriz küçəsi 44, Bakı",
			"phone":      "+994 12 565 00 01",
			"hours":      "07:00 - 03:00",
			"drive_thru": "24 saat",
			"mcdelivery": "10:00 - 02:00",
		},
		{
			"name":       "McDonald's Xırdalan",
			"address":    "Xırdalan, H.Əliyev prospekti 2",
			"phone":      "+994 12 565 00 02",
			"hours":      "09:00 - 23:00",
			"drive_thru": "yoxdur",
			"mcdelivery": "yoxdur",
		},
	}
	diff := cmp.Diff(expected, rows)
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestPublicationBlocks(t *testing.T) {
	require.Nil(t, publicationBlocks("<html><body>nothing here</body></html>"))

	blocks := publicationBlocks(`<div class="publication"><h2><b>A</b></h2></div><p>tail</p>`)
	require.Equal(t, []string{"<h2><b>A</b></h2>"}, blocks)

	// a block without any closing tag runs to the end of the payload
	blocks = publicationBlocks(`<div class="publication"><b>Ünvan:</b> X`)
	require.Equal(t, []string{"<b>Ünvan:</b> X"}, blocks)
}

func TestParse(t *testing.T) {
	rec := telemetry.NewRecorder()
	parser := NewParser(rec)

	rows := parser.Parse(readFixture(t, "restaurants.html"))
	require.Len(t, rows, 3)

	rows = parser.Parse(readFixture(t, "restaurants_escaped.html"))
	require.Len(t, rows, 2)
	require.Equal(t, "McDonald's Nərimanov", rows[0]["name"])

	rows = parser.Parse("<html><body><p>Səhifə tapılmadı</p></body></html>")
	require.Empty(t, rows)
	require.Empty(t, rec.Reports("warning"))
}
