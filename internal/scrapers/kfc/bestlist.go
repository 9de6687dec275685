package kfc

import (
	"sort"
)

var keysOfInterest = map[string]struct{}{
	"name":          {},
	"title":         {},
	"address":       {},
	"phone":         {},
	"city":          {},
	"region":        {},
	"district":      {},
	"latitude":      {},
	"longitude":     {},
	"lat":           {},
	"lng":           {},
	"location":      {},
	"workingHours":  {},
	"openingHours":  {},
	"opening_hours": {},
}

func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// walkLists calls yield on every non-empty list in value, parents before
// their children. Object keys are visited in sorted order.
func walkLists(value any, yield func([]any)) {
	switch v := value.(type) {
	case map[string]any:
		for _, k := range sortedKeys(v) {
			walkLists(v[k], yield)
		}
	case []any:
		if len(v) > 0 {
			yield(v)
		}
		for _, item := range v {
			walkLists(item, yield)
		}
	}
}

// scoreList rates how much a list looks like a list of branches: one point
// per branch-like key on each object item plus the number of object items,
// capped at 50.
func scoreList(items []any) int {
	keyHits := 0
	length := 0
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		length++
		for key := range obj {
			if _, interesting := keysOfInterest[key]; interesting {
				keyHits++
			}
		}
	}
	if length == 0 {
		return 0
	}
	return keyHits + min(length, 50)
}

// FindBestList returns the highest scoring list anywhere inside value, ties
// go to the list found first.
func FindBestList(value any) ([]any, bool) {
	var best []any
	bestScore := 0
	walkLists(value, func(candidate []any) {
		score := scoreList(candidate)
		if score > bestScore {
			bestScore = score
			best = candidate
		}
	})
	return best, best != nil
}
