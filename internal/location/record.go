package location

import (
	"errors"
	"sort"
	"strings"
	"time"

	"branchscan/internal/assert"
	"branchscan/internal/chrono"
)

const (
	FieldSourceURL = "source_url"
	FieldScrapedAt = "scraped_at"
)

// ErrNoRecords is returned when a pipeline ends up with nothing worth writing.
var ErrNoRecords = errors.New("no usable location records")

// Record is one scraped listing. An empty value means the field is absent
// and is written as an empty cell.
type Record map[string]string

// Get returns the value of the first field in keys that has a non-empty value.
func (r Record) Get(keys ...string) string {
	for _, k := range keys {
		if v := r[k]; v != "" {
			return v
		}
	}
	return ""
}

var identityMarkers = []string{"name", "title", "address"}

// Identified reports whether the record carries a name or an address. Nested
// keys are judged by their last path segment, so "address.az" and "nameAz"
// count while "city.id" does not.
func (r Record) Identified() bool {
	for key, value := range r {
		if value == "" || key == FieldSourceURL || key == FieldScrapedAt {
			continue
		}
		leaf := strings.ToLower(key[strings.LastIndex(key, ".")+1:])
		for _, marker := range identityMarkers {
			if strings.Contains(leaf, marker) {
				return true
			}
		}
	}
	return false
}

// Identified drops every record without a name or address.
func Identified(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Identified() {
			out = append(out, r)
		}
	}
	return out
}

// Stamp sets the provenance fields of every record, all records of a run
// share a single timestamp.
func Stamp(records []Record, sourceURL string, at time.Time) {
	scrapedAt := chrono.ISO(at)
	for _, r := range records {
		r[FieldSourceURL] = sourceURL
		r[FieldScrapedAt] = scrapedAt
	}
}

// Table is a set of records along with the order their fields are written in.
type Table struct {
	Fields  []string
	Records []Record
}

// NewFixedTable creates a table with a predetermined schema, fields of a
// record that are not in the schema are not written.
func NewFixedTable(fields []string, records []Record) Table {
	assert.NotEmpty(fields)
	return Table{Fields: fields, Records: records}
}

// NewUnionTable creates a table whose schema is the sorted union of every
// field found in records.
func NewUnionTable(records []Record) Table {
	set := map[string]struct{}{}
	for _, r := range records {
		for k := range r {
			set[k] = struct{}{}
		}
	}
	fields := make([]string, 0, len(set))
	for k := range set {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return Table{Fields: fields, Records: records}
}

// Column returns the values of a single field, in record order.
func (t Table) Column(field string) []string {
	out := make([]string, len(t.Records))
	for i, r := range t.Records {
		out[i] = r[field]
	}
	return out
}

func (t Table) Len() int {
	return len(t.Records)
}
