package manifest

import (
	"encoding/json"
	"sort"
)

// CanonicalJSON produces a compact JSON encoding with object keys sorted at
// every level. Array order is preserved.
func CanonicalJSON(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return appendCanonical(nil, raw)
}

func appendCanonical(buf []byte, v any) ([]byte, error) {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		buf = append(buf, '{')
		for i, k := range keys {
			if i > 0 {
				buf = append(buf, ',')
			}
			key, _ := json.Marshal(k)
			buf = append(buf, key...)
			buf = append(buf, ':')
			var err error
			if buf, err = appendCanonical(buf, val[k]); err != nil {
				return nil, err
			}
		}
		return append(buf, '}'), nil

	case []any:
		buf = append(buf, '[')
		for i, item := range val {
			if i > 0 {
				buf = append(buf, ',')
			}
			var err error
			if buf, err = appendCanonical(buf, item); err != nil {
				return nil, err
			}
		}
		return append(buf, ']'), nil

	default:
		scalar, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return append(buf, scalar...), nil
	}
}
