package htmlutil

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	nethtml "golang.org/x/net/html"
)

func collectTexts(node *nethtml.Node, out *[]string) {
	if node == nil {
		return
	}
	if node.Type == nethtml.TextNode {
		text := strings.TrimSpace(node.Data)
		if text != "" {
			*out = append(*out, text)
		}
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectTexts(child, out)
	}
}

// JoinedText trims every text node under the selection, drops the empty
// ones and joins the rest with a single space. Adjacent inline elements
// like "<b>Label:</b>value" therefore come out as "Label: value".
func JoinedText(sel *goquery.Selection) string {
	var texts []string
	for _, n := range sel.Nodes {
		collectTexts(n, &texts)
	}
	return strings.Join(texts, " ")
}

// \p{Z} also catches no-break spaces left behind by &nbsp;
var whitespace = regexp.MustCompile(`[\s\p{Z}]+`)

// NormalizeSpace collapses every whitespace run into a single space and
// trims both ends.
func NormalizeSpace(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// CleanFragment unescapes html entities in a raw markup capture and then
// normalizes its whitespace.
func CleanFragment(s string) string {
	return NormalizeSpace(html.UnescapeString(s))
}
