package kfc

import (
	"errors"

	"branchscan/internal/location"
)

// ErrNoBranchData is returned when no list of branches could be found.
var ErrNoBranchData = errors.New("kfc: no branch data found")

// Extraction is a list of branch objects and where it was found.
type Extraction struct {
	SourceURL string
	Items     []any
}

// Records flattens the extracted branch objects.
func (e Extraction) Records() []location.Record {
	return toRecords(e.Items)
}

// ParsePayload extracts branches from a saved response. Content that decodes
// as JSON is searched directly, anything else is treated as a Next.js page.
func ParsePayload(content []byte) ([]any, error) {
	value, err := decodeJSON(content)
	if err != nil {
		value, ok := ExtractNextData(string(content))
		if !ok {
			return nil, ErrNoBranchData
		}
		return bestList(value)
	}
	return bestList(value)
}

func bestList(value any) ([]any, error) {
	list, ok := FindBestList(value)
	if !ok {
		return nil, ErrNoBranchData
	}
	return list, nil
}
