package limits

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// UnsupportedValueError reports a policy document value that cannot be
// rendered to canonical JSON text. Only primitives, lists, string-keyed
// maps, and timestamps are serializable.
type UnsupportedValueError struct {
	Value any
}

func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("value of type %T is not JSON serializable", e.Value)
}

// serializeDocument renders a policy document to canonical JSON text:
// compact separators, sorted object keys, timestamps as ISO-8601
// strings, no HTML escaping. The returned text is what the size limit
// is measured against.
func serializeDocument(doc any) (string, error) {
	normalized, err := normalizeValue(doc)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return "", fmt.Errorf("encoding policy document: %w", err)
	}
	// Encode appends a trailing newline that is not part of the document.
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// normalizeValue converts YAML-decoded values into a tree encoding/json
// renders deterministically. Timestamps become ISO-8601 strings; any
// other non-primitive, non-container value is rejected.
func normalizeValue(v any) (any, error) {
	switch val := v.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return val, nil
	case time.Time:
		return val.Format(time.RFC3339), nil
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			n, err := normalizeValue(item)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			n, err := normalizeValue(item)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	default:
		return nil, &UnsupportedValueError{Value: v}
	}
}
