package inertia

// Protocol headers exchanged with the client-side Inertia adapter.
const (
	HeaderInertia          = "X-Inertia"                   // marks an Inertia XHR, client and server
	HeaderVersion          = "X-Inertia-Version"           // asset version the client holds
	HeaderLocation         = "X-Inertia-Location"          // full-navigation target on 409
	HeaderPartialData      = "X-Inertia-Partial-Data"      // comma-separated prop whitelist
	HeaderPartialComponent = "X-Inertia-Partial-Component" // component the client expects

	HeaderAccept      = "Accept"
	HeaderVary        = "Vary"
	HeaderContentType = "Content-Type"
)

const (
	contentTypeJSON = "application/json; charset=utf-8"
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeText = "text/plain; charset=utf-8"
)
