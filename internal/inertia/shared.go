package inertia

import (
	"encoding/json"
	"fmt"
)

// SharedKeyCSRF is the recognised shared-props key for the CSRF token.
// The renderer injects the current token under this key only when no
// middleware or handler has written it first.
const SharedKeyCSRF = "csrf"

// SharedProps collects key/value pairs contributed by middleware during a
// request, merged into the handler's props at render time. Handler props
// win on key collision: shared props are defaults, handler props are
// intentional.
//
// A SharedProps is owned by a single request's handler chain and needs no
// locking; contributions happen-before the render call that consumes them.
type SharedProps struct {
	values map[string]any
}

// NewSharedProps returns an empty registry.
func NewSharedProps() *SharedProps {
	return &SharedProps{values: make(map[string]any)}
}

// Set inserts or overwrites the value for key. Last writer wins.
func (p *SharedProps) Set(key string, value any) {
	p.values[key] = value
}

// CSRF sets the token under the recognised csrf key.
func (p *SharedProps) CSRF(token string) {
	p.Set(SharedKeyCSRF, token)
}

// Has reports whether key has been contributed.
func (p *SharedProps) Has(key string) bool {
	_, ok := p.values[key]
	return ok
}

// Len returns the number of contributed entries.
func (p *SharedProps) Len() int {
	return len(p.values)
}

func (p *SharedProps) clone() *SharedProps {
	c := NewSharedProps()
	for k, v := range p.values {
		c.values[k] = v
	}
	return c
}

// csrfToken returns the contributed csrf value when it is a string.
func (p *SharedProps) csrfToken() (string, bool) {
	v, ok := p.values[SharedKeyCSRF]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// mergeInto copies every entry into target, skipping keys target already
// holds. Values are serialized individually so one bad shared value fails
// the render the same way bad handler props do.
func (p *SharedProps) mergeInto(target map[string]json.RawMessage) error {
	for k, v := range p.values {
		if _, exists := target[k]; exists {
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("%w: shared prop %q: %v", ErrSerialization, k, err)
		}
		target[k] = raw
	}
	return nil
}
