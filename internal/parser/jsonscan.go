package parser

import (
	"encoding/json"
	"strings"
)

// FirstJSONObject extracts the first syntactically valid top-level JSON object
// from free-form model output, tolerating surrounding prose. A greedy
// brace-to-brace regex would swallow trailing JSON-like text from the model's
// explanation, so each '{' candidate is decoded incrementally and the first
// complete object wins.
func FirstJSONObject(text string) (json.RawMessage, bool) {
	for i := 0; i < len(text); i++ {
		if text[i] != '{' {
			continue
		}
		dec := json.NewDecoder(strings.NewReader(text[i:]))
		var raw json.RawMessage
		if err := dec.Decode(&raw); err == nil {
			return raw, true
		}
	}
	return nil, false
}

// decodeFirstObject extracts and unmarshals the first JSON object into dst.
func decodeFirstObject(text string, dst any) bool {
	raw, ok := FirstJSONObject(text)
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}
