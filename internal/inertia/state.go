package inertia

// VersionProvider reports the current asset version. Implementations must
// be safe for concurrent reads and must never block on I/O; the version
// changes at deploy or boot, not per request.
type VersionProvider interface {
	Version() string
}

// CSRFProvider returns the token for the in-flight request, or false when
// none is available. Implementations must never panic and never block.
type CSRFProvider interface {
	Token(r Request) (string, bool)
}

// StaticVersion is a fixed asset version, useful in tests and for
// deployments that stamp the version at build time.
type StaticVersion string

func (v StaticVersion) Version() string {
	return string(v)
}

// VersionFunc adapts a function to the VersionProvider interface.
type VersionFunc func() string

func (f VersionFunc) Version() string {
	return f()
}

// StaticCSRF is a fixed token provider. The empty string means absent.
type StaticCSRF string

func (t StaticCSRF) Token(Request) (string, bool) {
	return string(t), t != ""
}

// CSRFFunc adapts a function to the CSRFProvider interface.
type CSRFFunc func(r Request) (string, bool)

func (f CSRFFunc) Token(r Request) (string, bool) {
	return f(r)
}
