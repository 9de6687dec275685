package location

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	table := NewFixedTable(
		[]string{"name", "address", "phone"},
		[]Record{
			{"name": "McDonald's 28 May", "address": "Bakı, 28 May küç., 1", "ignored": "x"},
			{"name": "Gənclik", "phone": "+994 12 000"},
		},
	)

	var buf bytes.Buffer
	err := WriteCSV(&buf, table)
	if err != nil {
		t.Fatal(err)
	}

	expected := strings.Join([]string{
		"name,address,phone",
		`McDonald's 28 May,"Bakı, 28 May küç., 1",`,
		"Gənclik,,+994 12 000",
		"",
	}, "\n")
	require.Equal(t, expected, buf.String())
}

func TestCSVFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "out.csv")
	table := NewFixedTable(
		[]string{"name", "hours", "source_url", "scraped_at"},
		[]Record{
			{"name": "A", "hours": "08:00 - 23:00", "source_url": "in.html", "scraped_at": "t"},
			{"name": "B, \"quoted\"", "hours": "", "source_url": "in.html", "scraped_at": "t"},
		},
	)

	err := WriteCSVFile(path, table)
	if err != nil {
		t.Fatal(err)
	}

	read, err := ReadCSVFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(table, read); diff != "" {
		t.Fatal(diff)
	}

	// a second write overwrites wholesale
	err = WriteCSVFile(path, NewFixedTable([]string{"name"}, nil))
	if err != nil {
		t.Fatal(err)
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "name\n", string(contents))
}

func TestReadCSVShortRows(t *testing.T) {
	table, err := ReadCSV(strings.NewReader("name,phone\nA\n"))
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, []Record{{"name": "A", "phone": ""}}, table.Records)

	empty, err := ReadCSV(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, 0, empty.Len())
}
