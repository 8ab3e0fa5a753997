package inertia

import (
	"net/http"
	"strings"
)

// Request is the read-only projection of an incoming request the engine
// consumes: the URL path, the method, and case-insensitive header lookup.
// Both the live view returned by View and the owned SavedContext satisfy
// it, so a handler that has already consumed the request body can still
// render through a snapshot.
type Request interface {
	// Path returns the URL path including the query string.
	Path() string
	// Method returns the HTTP method.
	Method() string
	// Header returns the first value of the named header, or false when
	// the header is absent or carries bytes disallowed by HTTP grammar.
	Header(name string) (string, bool)
}

// View wraps a live *http.Request without copying it.
func View(r *http.Request) Request {
	return httpView{r: r}
}

type httpView struct {
	r *http.Request
}

func (v httpView) Path() string {
	if v.r.URL.RawQuery != "" {
		return v.r.URL.Path + "?" + v.r.URL.RawQuery
	}
	return v.r.URL.Path
}

func (v httpView) Method() string {
	return v.r.Method
}

func (v httpView) Header(name string) (string, bool) {
	values := v.r.Header.Values(name)
	if len(values) == 0 || !validHeaderValue(values[0]) {
		return "", false
	}
	return values[0], true
}

// IsInertia reports whether the request is an Inertia XHR, which requires
// the X-Inertia header to equal exactly "true".
func IsInertia(r Request) bool {
	v, ok := r.Header(HeaderInertia)
	return ok && v == "true"
}

// AcceptsJSON reports whether the client advertises application/json in
// its Accept header. Only the raw-JSON fallback consults it.
func AcceptsJSON(r Request) bool {
	v, ok := r.Header(HeaderAccept)
	return ok && strings.Contains(v, "application/json")
}

// mutatingMethods is the closed set of methods that turn an Inertia
// redirect into a 303. HEAD and OPTIONS never reach a render call in
// practice and are treated as safe if they do.
var mutatingMethods = map[string]bool{
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

func isMutating(method string) bool {
	return mutatingMethods[method]
}

// validHeaderValue rejects values containing control bytes. A hostile
// client must degrade to "header absent", never to an error response.
func validHeaderValue(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 0x20 && c != '\t') || c == 0x7f {
			return false
		}
	}
	return true
}

// savedHeaders is the set of headers a SavedContext captures.
var savedHeaders = []string{
	HeaderInertia,
	HeaderVersion,
	HeaderPartialData,
	HeaderPartialComponent,
	HeaderAccept,
}

// SavedContext is an owned snapshot of the protocol-relevant request
// state: the five recognised headers, the path, the method, and the
// shared props accumulated so far. It stays valid after the live request
// has been moved into a body parser, and is immutable once captured.
type SavedContext struct {
	path    string
	method  string
	headers map[string]string
	shared  *SharedProps
}

// SaveContext captures r into owned storage. The shared registry may be
// nil; when present it is deep-copied so later middleware writes do not
// show through.
func SaveContext(r Request, shared *SharedProps) *SavedContext {
	s := &SavedContext{
		path:    r.Path(),
		method:  r.Method(),
		headers: make(map[string]string, len(savedHeaders)),
	}
	for _, name := range savedHeaders {
		if v, ok := r.Header(name); ok {
			s.headers[http.CanonicalHeaderKey(name)] = v
		}
	}
	if shared != nil {
		s.shared = shared.clone()
	}
	return s
}

func (s *SavedContext) Path() string {
	return s.path
}

func (s *SavedContext) Method() string {
	return s.method
}

func (s *SavedContext) Header(name string) (string, bool) {
	v, ok := s.headers[http.CanonicalHeaderKey(name)]
	return v, ok
}

// Shared returns the shared-props snapshot captured with the context,
// or nil when none was.
func (s *SavedContext) Shared() *SharedProps {
	return s.shared
}
