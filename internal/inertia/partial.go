package inertia

import (
	"encoding/json"
	"strings"
)

// partialKeys parses an X-Inertia-Partial-Data value into a deduplicated
// key set. Whitespace around commas is trimmed; empty segments dropped.
func partialKeys(raw string) map[string]struct{} {
	keys := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		k := strings.TrimSpace(part)
		if k != "" {
			keys[k] = struct{}{}
		}
	}
	return keys
}

// filterPartial applies the partial-reload headers to props. The filter
// only fires when the client-expected component matches the rendered one;
// otherwise the client is mid full-navigation and gets everything. Only
// top-level keys are pruned. Keys the client over-requests are silently
// dropped, and an empty whitelist legitimately yields the empty object.
func filterPartial(props map[string]json.RawMessage, r Request, component string) map[string]json.RawMessage {
	expected, ok := r.Header(HeaderPartialComponent)
	if !ok || expected != component {
		return props
	}
	raw, ok := r.Header(HeaderPartialData)
	if !ok {
		return props
	}
	keys := partialKeys(raw)
	filtered := make(map[string]json.RawMessage, len(keys))
	for k := range keys {
		if v, present := props[k]; present {
			filtered[k] = v
		}
	}
	return filtered
}
