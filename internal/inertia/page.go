package inertia

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Page is the canonical Inertia page object, the protocol's unit of page
// state. Exactly these four keys appear on the wire.
type Page struct {
	Component string                     `json:"component"`
	Props     map[string]json.RawMessage `json:"props"`
	URL       string                     `json:"url"`
	Version   string                     `json:"version"`
}

// propsObject serializes props and requires the result to be a JSON
// object. Normalising to a map keyed by string gives deterministic key
// order on re-encoding, so equivalent renders produce byte-identical
// bodies.
func propsObject(props any) (map[string]json.RawMessage, error) {
	if props == nil {
		return map[string]json.RawMessage{}, nil
	}
	raw, err := json.Marshal(props)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrSerialization
	}
	obj := make(map[string]json.RawMessage)
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return obj, nil
}

// buildPage assembles the page object for one render call.
//
// Order matters: handler props first, then shared defaults, then the
// partial filter, and only then the CSRF default. Injecting the token
// after filtering keeps it present on partial reloads that did not ask
// for it, while a csrf key written by middleware or the handler before
// render time still wins as the token source.
func buildPage(r Request, component string, props any, shared *SharedProps, version, csrfToken string, hasCSRF bool) (*Page, error) {
	obj, err := propsObject(props)
	if err != nil {
		return nil, err
	}
	if shared != nil {
		if err := shared.mergeInto(obj); err != nil {
			return nil, err
		}
	}
	if IsInertia(r) {
		obj = filterPartial(obj, r, component)
	}
	if hasCSRF {
		if _, exists := obj[SharedKeyCSRF]; !exists {
			raw, err := json.Marshal(csrfToken)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
			}
			obj[SharedKeyCSRF] = raw
		}
	}
	return &Page{
		Component: component,
		Props:     obj,
		URL:       r.Path(),
		Version:   version,
	}, nil
}
