// Package inertia implements the server side of the Inertia.js wire
// protocol: the transformation of a page-rendering intent (component name
// plus serializable props) into the HTTP response the client adapter
// expects, negotiated entirely through request headers.
//
// The same logical render produces one of five responses: a full HTML
// document on initial load, a JSON page object on an Inertia XHR, a 409
// asset-version conflict, a raw-JSON fallback, or a 302/303 redirect.
// The Renderer is the single entry point; a gin middleware exposes the
// per-request shared-props contribution point to upstream middleware.
//
// The engine holds no per-request mutable state of its own, performs no
// I/O, and converts every internal failure into an HTTP response locally.
package inertia
