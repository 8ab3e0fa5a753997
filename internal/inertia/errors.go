package inertia

import "errors"

// Sentinel errors for render operations. These never cross the HTTP
// boundary; the renderer converts them to plaintext 500 responses.
var (
	ErrSerialization   = errors.New("inertia: props do not serialize to a JSON object")
	ErrTemplateInvalid = errors.New("inertia: template is missing a required placeholder")
	ErrNoRenderer      = errors.New("inertia: no renderer installed on this request")
)

// IsSerializationError checks if err is a props serialization failure.
func IsSerializationError(err error) bool {
	return errors.Is(err, ErrSerialization)
}
