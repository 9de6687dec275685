package mcdonalds

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"branchscan/internal/assert"
	"branchscan/internal/location"
	"branchscan/internal/telemetry"
	"branchscan/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	report_parser_structured = "parser.structured"
)

// Fields is the column order of the McDonald's table.
var Fields = []string{
	"name",
	"address",
	"phone",
	"hours",
	"drive_thru",
	"mcdelivery",
	location.FieldSourceURL,
	location.FieldScrapedAt,
}

type label struct {
	field string
	text  string
	// matched against the raw markup in the fallback pass
	pattern *regexp.Regexp
}

func newLabel(field, text, pattern string) label {
	return label{
		field:   field,
		text:    text,
		pattern: regexp.MustCompile(pattern + `\s*</b>\s*([^<]+)`),
	}
}

// labels are tried in order, a description fills the first one it contains
var labels = []label{
	newLabel("address", "Ünvan:", regexp.QuoteMeta("Ünvan:")),
	newLabel("phone", "Telefon nömrəsi:", regexp.QuoteMeta("Telefon nömrəsi:")),
	newLabel("hours", "İş saatları:", regexp.QuoteMeta("İş saatları:")),
	newLabel("drive_thru", "Drive thru:", regexp.QuoteMeta("Drive thru:")),
	newLabel("mcdelivery", "McDelivery:", `McDelivery®?:`),
}

type Parser struct {
	tel telemetry.API
}

func NewParser(tel telemetry.API) Parser {
	assert.NotNil(tel)
	return Parser{tel: telemetry.NewScopedAPI("mcdonalds_parser", tel)}
}

// Parse extracts locations from a saved McDonald's Azerbaijan page. The
// publication blocks are read as a document first, when that yields nothing
// the raw markup is searched instead.
func (p Parser) Parse(payload string) []location.Record {
	rows, err := ParseStructured(payload)
	if err != nil {
		p.tel.ReportWarning(report_parser_structured, err)
	}
	if len(rows) > 0 {
		p.tel.ReportDebug("structured pass", len(rows))
		return rows
	}

	p.tel.ReportDebug("structured pass found nothing, searching raw markup")
	rows = ParseFallback(payload)
	p.tel.ReportDebug("fallback pass", len(rows))
	return rows
}

// ParseStructured reads every div.publication of the page. Blocks with no
// field at all are skipped.
func ParseStructured(payload string) ([]location.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	var rows []location.Record
	doc.Find("div.publication").Each(func(_ int, block *goquery.Selection) {
		row := location.Record{}

		h2 := block.Find("h2").First()
		if h2.Length() > 0 {
			row["name"] = htmlutil.NormalizeSpace(htmlutil.JoinedText(h2))
		}

		block.Find("div.mcd-publication__text-description").Each(func(_ int, desc *goquery.Selection) {
			text := htmlutil.NormalizeSpace(htmlutil.JoinedText(desc))
			text = strings.ReplaceAll(text, "McDelivery®", "McDelivery")
			for _, l := range labels {
				_, value, found := strings.Cut(text, l.text)
				if found {
					row[l.field] = strings.TrimSpace(value)
					break
				}
			}
		})

		if hasAnyValue(row) {
			rows = append(rows, row)
		}
	})

	return rows, nil
}

func hasAnyValue(row location.Record) bool {
	for _, v := range row {
		if v != "" {
			return true
		}
	}
	return false
}

const publicationOpen = `<div class="publication">`

// a publication ends at the closing tags of its two wrapper divs, the
// indentation is that of the saved page
var publicationEnds = []string{
	"</div>\n                        </div>",
	"</div>\n                    </div>",
	"</div>",
}

var nameRegex = regexp.MustCompile(`(?s)<h2>\s*<b>(.*?)</b>\s*</h2>`)

// ParseFallback unescapes the payload and cuts it into publication blocks by
// plain text search. It handles pages where the listing markup was saved
// escaped and does not parse as elements.
func ParseFallback(payload string) []location.Record {
	var rows []location.Record
	for _, block := range publicationBlocks(payload) {
		row := location.Record{
			"name": firstCapture(nameRegex, block),
		}
		for _, l := range labels {
			row[l.field] = firstCapture(l.pattern, block)
		}
		rows = append(rows, row)
	}
	return rows
}

func publicationBlocks(payload string) []string {
	parts := strings.Split(html.UnescapeString(payload), publicationOpen)
	if len(parts) <= 1 {
		return nil
	}

	blocks := make([]string, 0, len(parts)-1)
	for _, chunk := range parts[1:] {
		for _, end := range publicationEnds {
			if idx := strings.Index(chunk, end); idx >= 0 {
				chunk = chunk[:idx]
				break
			}
		}
		blocks = append(blocks, chunk)
	}
	return blocks
}

func firstCapture(pattern *regexp.Regexp, block string) string {
	match := pattern.FindStringSubmatch(block)
	if match == nil {
		return ""
	}
	return htmlutil.CleanFragment(match[1])
}
