// Package jsonutil reads the relaxed JSON dialect used by workspace
// configuration files. Comments and trailing commas are tolerated, and a
// leading UTF-8 byte-order mark is stripped before parsing.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// StripBOM removes a leading UTF-8 byte-order mark if present.
func StripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, utf8BOM)
}

// Normalize converts relaxed JSON to strict JSON. Removed characters are
// replaced with whitespace, so byte offsets still line up with the
// original source.
func Normalize(data []byte) []byte {
	return jsonc.ToJSON(StripBOM(data))
}

// Parse decodes relaxed JSON into a generic value.
func Parse(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(Normalize(data), &v); err != nil {
		return nil, err
	}
	return v, nil
}

// ParseObject decodes relaxed JSON and requires the top-level value to
// be an object.
func ParseObject(data []byte) (map[string]any, error) {
	v, err := Parse(data)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("top-level value must be a JSON object, got %s", typeName(v))
	}
	return obj, nil
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	default:
		return "object"
	}
}
