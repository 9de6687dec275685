package kfc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"branchscan/internal/location"
)

// Flatten turns a nested JSON object into a flat record, nested keys are
// joined with dots and lists are kept as JSON text.
func Flatten(value any) location.Record {
	out := location.Record{}
	flatten(value, "", out)
	return out
}

func flatten(value any, prefix string, out location.Record) {
	switch v := value.(type) {
	case map[string]any:
		for key, child := range v {
			next := key
			if prefix != "" {
				next = prefix + "." + key
			}
			flatten(child, next, out)
		}
	case []any:
		out[prefix] = encodeList(v)
	default:
		out[prefix] = scalarText(v)
	}
}

// encodeList writes lists with ", " and ": " separators. Object keys come
// out sorted since the decoded maps keep no order.
func encodeList(list []any) string {
	var buf strings.Builder
	err := writeJSON(&buf, list)
	if err != nil {
		return ""
	}
	return buf.String()
}

func writeJSON(buf *strings.Builder, value any) error {
	switch v := value.(type) {
	case []any:
		buf.WriteByte('[')
		for i, item := range v {
			if i > 0 {
				buf.WriteString(", ")
			}
			err := writeJSON(buf, item)
			if err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case map[string]any:
		buf.WriteByte('{')
		for i, key := range slices.Sorted(maps.Keys(v)) {
			if i > 0 {
				buf.WriteString(", ")
			}
			err := writeScalar(buf, key)
			if err != nil {
				return err
			}
			buf.WriteString(": ")
			err = writeJSON(buf, v[key])
			if err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return writeScalar(buf, v)
	}
	return nil
}

func writeScalar(buf *strings.Builder, value any) error {
	var out bytes.Buffer
	encoder := json.NewEncoder(&out)
	encoder.SetEscapeHTML(false)
	err := encoder.Encode(value)
	if err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(out.Bytes(), []byte("\n")))
	return nil
}

func scalarText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "True"
		}
		return "False"
	default:
		return fmt.Sprint(v)
	}
}

// toRecords flattens every object item of a list, other items are skipped.
func toRecords(items []any) []location.Record {
	var records []location.Record
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		records = append(records, Flatten(obj))
	}
	return records
}
