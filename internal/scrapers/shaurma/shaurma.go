package shaurma

import (
	"regexp"
	"strings"

	"branchscan/internal/location"
	"branchscan/lib/htmlutil"
)

// Fields is the column order of the Shaurma N1 table.
var Fields = []string{
	"name",
	"address",
	"phone",
	"dine_in",
	location.FieldSourceURL,
	location.FieldScrapedAt,
}

const cardMarker = "address_card"

var (
	nameRegex = regexp.MustCompile(`(?s)<h2[^>]*>\s*<b>(.*?)</b>\s*</h2>`)
	// saved pages carry the label double encoded as "Ãœnvan:"
	addressRegex = regexp.MustCompile(`(?s)(?:Ünvan|Ãœnvan):.*?<span>(.*?)</span>`)
	phoneRegex   = regexp.MustCompile(`tel:([^"\s]+)`)
	dineInRegex  = regexp.MustCompile(`(?s)Dine-in:.*?<span>(.*?)</span>`)
)

// Parse extracts the address cards of a saved Shaurma N1 page. Cards without
// a name or an address are dropped.
func Parse(payload string) []location.Record {
	var rows []location.Record
	for _, card := range cards(payload) {
		row := location.Record{
			"name":    capture(nameRegex, card),
			"address": capture(addressRegex, card),
			"phone":   capture(phoneRegex, card),
			"dine_in": capture(dineInRegex, card),
		}
		if row["name"] == "" && row["address"] == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// cards splits the payload on the card class, a card ends at its first
// closing div. Chunks that never close are not cards.
func cards(payload string) []string {
	parts := strings.Split(payload, cardMarker)
	if len(parts) <= 1 {
		return nil
	}

	out := make([]string, 0, len(parts)-1)
	for _, chunk := range parts[1:] {
		end := strings.Index(chunk, "</div>")
		if end < 0 {
			continue
		}
		out = append(out, chunk[:end])
	}
	return out
}

func capture(pattern *regexp.Regexp, card string) string {
	match := pattern.FindStringSubmatch(card)
	if match == nil {
		return ""
	}
	return htmlutil.CleanFragment(match[1])
}
