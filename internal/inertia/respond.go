package inertia

import (
	"encoding/json"
	"net/http"
)

// The five concrete response shapes of the protocol. Each writer owns its
// status line, headers, and body; nothing here inspects the request.

func writeJSONPage(w http.ResponseWriter, page *Page) error {
	body, err := json.Marshal(page)
	if err != nil {
		return err
	}
	h := w.Header()
	h.Set(HeaderContentType, contentTypeJSON)
	h.Set(HeaderInertia, "true")
	h.Add(HeaderVary, HeaderInertia)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
	return nil
}

// writeRawJSON serves the props without the page wrapper and without the
// Inertia headers. The missing Vary is deliberate: this path is invisible
// to caches.
func writeRawJSON(w http.ResponseWriter, body []byte) {
	w.Header().Set(HeaderContentType, contentTypeJSON)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func writeHTML(w http.ResponseWriter, body []byte) {
	h := w.Header()
	h.Set(HeaderContentType, contentTypeHTML)
	h.Add(HeaderVary, HeaderInertia)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// writeConflict tells the client its assets are stale. X-Inertia-Location
// carries the URL to re-navigate to with a full page load; the body stays
// empty.
func writeConflict(w http.ResponseWriter, currentURL string) {
	w.Header().Set(HeaderLocation, currentURL)
	w.WriteHeader(http.StatusConflict)
}

// writeRedirect picks the status from the request: a mutating Inertia
// request gets 303 so the browser re-issues as GET instead of
// resubmitting the form; everything else gets 302.
func writeRedirect(w http.ResponseWriter, r Request, location string) {
	status := http.StatusFound
	inertiaRequest := IsInertia(r)
	if inertiaRequest && isMutating(r.Method()) {
		status = http.StatusSeeOther
	}
	h := w.Header()
	h.Set("Location", location)
	if inertiaRequest {
		h.Set(HeaderInertia, "true")
	}
	w.WriteHeader(status)
}

// writePlainError emits the engine's only failure surface: a plaintext
// 500 that carries no props, no shared state, and no CSRF token.
func writePlainError(w http.ResponseWriter, message string) {
	w.Header().Set(HeaderContentType, contentTypeText)
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(message))
}
