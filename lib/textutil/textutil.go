package textutil

import (
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeName lowercases a name and strips all whitespace so that
// "Bakı  şəhəri" and "bakışəhəri" compare equal.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.TrimSpace(name)
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

// Canonicalizer folds near-duplicate spellings of a label into the first
// spelling it has seen.
type Canonicalizer struct {
	// Threshold is the minimum Jaro-Winkler similarity between two
	// normalized names for them to be considered the same.
	Threshold float64

	seen       []string
	normalized []string
}

func NewCanonicalizer(threshold float64) *Canonicalizer {
	return &Canonicalizer{Threshold: threshold}
}

// Canonical returns the first-seen label most similar to name, or registers
// name as a new label if nothing seen so far is similar enough.
func (c *Canonicalizer) Canonical(name string) string {
	norm := NormalizeName(name)

	best := -1
	var bestSimilarity float64
	for i, candidate := range c.normalized {
		if candidate == norm {
			return c.seen[i]
		}
		similarity := matchr.JaroWinkler(norm, candidate, false)
		if similarity > bestSimilarity {
			bestSimilarity = similarity
			best = i
		}
	}

	if best >= 0 && bestSimilarity >= c.Threshold {
		return c.seen[best]
	}

	c.seen = append(c.seen, name)
	c.normalized = append(c.normalized, norm)
	return name
}
