package kfc

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var nextDataRegex = regexp.MustCompile(`(?s)__NEXT_DATA__"\s+type="application/json">\s*(\{.*?\})\s*</script>`)

// ExtractNextData returns the decoded __NEXT_DATA__ payload of a Next.js page.
// The script tag is looked up with goquery first, markup too broken for
// that to work falls back to a regex over the raw page.
func ExtractNextData(page string) (any, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err == nil {
		script := doc.Find(`script#__NEXT_DATA__[type="application/json"]`).First()
		if script.Length() > 0 {
			value, err := decodeJSON([]byte(script.Text()))
			if err == nil {
				return value, true
			}
		}
	}

	groups := nextDataRegex.FindStringSubmatch(page)
	if len(groups) < 2 {
		return nil, false
	}
	value, err := decodeJSON([]byte(groups[1]))
	if err != nil {
		return nil, false
	}
	return value, true
}

var buildIdRegexes = []*regexp.Regexp{
	regexp.MustCompile(`/_next/static/([^/]+)/_buildManifest\.js`),
	regexp.MustCompile(`/_next/static/([^/]+)/_ssgManifest\.js`),
	regexp.MustCompile(`/_next/static/([^/]+)/`),
}

// ExtractBuildID finds the Next.js build id referenced by a page's static
// asset paths.
func ExtractBuildID(page string) (string, bool) {
	for _, re := range buildIdRegexes {
		groups := re.FindStringSubmatch(page)
		if len(groups) >= 2 {
			return groups[1], true
		}
	}
	return "", false
}

// decodeJSON decodes a single JSON document, numbers are kept as
// json.Number so that they are written back out exactly as they came in.
func decodeJSON(data []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var value any
	err := decoder.Decode(&value)
	if err != nil {
		return nil, err
	}
	var trailing any
	err = decoder.Decode(&trailing)
	if !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return value, nil
}
