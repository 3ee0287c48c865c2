package caption

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Extract normalizes a remote captioning reply into a plain caption string.
// The reply may be a sequence (first element wins), a bare scalar, or text
// that itself serializes a key-value mapping, in which case the first value
// of the mapping replaces the raw serialization. Extract never panics.
func Extract(raw json.RawMessage) (caption string) {
	defer func() {
		if recover() != nil {
			caption = PlaceholderExtractFailed
		}
	}()

	text, ok := firstElement(raw)
	if !ok || text == "" {
		return PlaceholderNone
	}

	if strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}") {
		if value, ok := firstMappingValue(text); ok {
			return value
		}
		// parse failure keeps the original text
	}

	return text
}

func firstElement(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}

	var seq []json.RawMessage
	if err := json.Unmarshal(raw, &seq); err == nil {
		if len(seq) == 0 {
			return "", false
		}
		return stringify(seq[0])
	}

	return stringify(raw)
}

// stringify renders a JSON value as caption text. Empty strings and nulls
// count as missing.
func stringify(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, s != ""
	}

	return string(raw), true
}

// firstMappingValue parses text as a keyed mapping and returns its first
// value in document order. Single-quoted mappings (Python repr style) are
// tolerated via quote substitution.
func firstMappingValue(text string) (string, bool) {
	if value, ok := decodeFirstValue(text); ok {
		return value, true
	}
	return decodeFirstValue(strings.ReplaceAll(text, "'", `"`))
}

func decodeFirstValue(text string) (string, bool) {
	dec := json.NewDecoder(strings.NewReader(text))

	tok, err := dec.Token()
	if err != nil {
		return "", false
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return "", false
	}

	// first key
	if _, err := dec.Token(); err != nil {
		return "", false
	}

	var value any
	if err := dec.Decode(&value); err != nil {
		return "", false
	}

	switch v := value.(type) {
	case string:
		return v, true
	case nil:
		return "", false
	default:
		return fmt.Sprint(v), true
	}
}
