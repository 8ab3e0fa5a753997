package inertia

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Config assembles a Renderer. Version is required; everything else has a
// usable zero value.
type Config struct {
	// Version provides the current asset version.
	Version VersionProvider
	// CSRF provides the per-request token injected under the csrf shared
	// key. Nil disables injection.
	CSRF CSRFProvider
	// Template configures the HTML shell for initial loads.
	Template TemplateConfig
	// JSONFallback enables the raw-JSON response for non-Inertia requests
	// that accept application/json. Off by default; it is a Ferro
	// extension, not part of the Inertia protocol.
	JSONFallback bool
	// Logger receives render failure diagnostics. Nil means silent.
	Logger *zap.Logger
}

// Renderer is the single entry point of the response engine. It is
// immutable after construction and safe for concurrent use; every render
// call owns its page object and response bytes exclusively.
type Renderer struct {
	version  VersionProvider
	csrf     CSRFProvider
	tmpl     *Template
	fallback bool
	log      *zap.Logger
}

// New builds a Renderer. Template validation happens here, once, so a
// custom template missing a placeholder fails at boot instead of on the
// first initial load.
func New(cfg Config) (*Renderer, error) {
	if cfg.Version == nil {
		cfg.Version = StaticVersion("")
	}
	tmpl, err := NewTemplate(cfg.Template)
	if err != nil {
		return nil, err
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Renderer{
		version:  cfg.Version,
		csrf:     cfg.CSRF,
		tmpl:     tmpl,
		fallback: cfg.JSONFallback,
		log:      cfg.Logger,
	}, nil
}

// RenderOptions carries the per-call knobs of RenderWith. Component and
// Props are required; the rest defaults to the renderer's configuration.
type RenderOptions struct {
	Component string
	Props     any
	// Shared is the shared-props registry snapshot to merge. When nil an
	// empty registry is assumed; CSRF injection still applies.
	Shared *SharedProps
	// VersionOverride replaces the ambient version for this render only.
	VersionOverride string
	// Template overrides the renderer's HTML stage for this render only.
	// It is validated per call; an invalid one yields a plaintext 500.
	Template *TemplateConfig
	// JSONFallback enables the raw-JSON path for this render even when
	// the renderer-wide switch is off.
	JSONFallback bool
}

// Render converts (component, props) into the protocol-correct response
// for r. All failures are handled locally and surface as plaintext 500s;
// Render never panics and never reports an error to the handler.
func (rd *Renderer) Render(w http.ResponseWriter, r Request, component string, props any) {
	rd.RenderWith(w, r, RenderOptions{Component: component, Props: props})
}

// RenderWithShared renders with an explicit shared-props registry.
func (rd *Renderer) RenderWithShared(w http.ResponseWriter, r Request, component string, props any, shared *SharedProps) {
	rd.RenderWith(w, r, RenderOptions{Component: component, Props: props, Shared: shared})
}

// RenderSaved renders through a captured context, using the shared-props
// snapshot taken when the context was saved.
func (rd *Renderer) RenderSaved(w http.ResponseWriter, s *SavedContext, component string, props any) {
	rd.RenderWith(w, s, RenderOptions{Component: component, Props: props, Shared: s.Shared()})
}

// RenderWith is the full-control render entry point.
func (rd *Renderer) RenderWith(w http.ResponseWriter, r Request, opts RenderOptions) {
	// The engine must never let a panic escape into the host framework's
	// recovery middleware; that path cannot reproduce the protocol
	// headers this response needs.
	defer func() {
		if rec := recover(); rec != nil {
			rd.log.Error("render panic", zap.Any("panic", rec))
			writePlainError(w, "failed to render page")
		}
	}()

	version := rd.version.Version()
	if opts.VersionOverride != "" {
		version = opts.VersionOverride
	}

	inertiaRequest := IsInertia(r)
	if inertiaRequest && staleVersion(r, version) {
		writeConflict(w, r.Path())
		return
	}

	// Raw-JSON fallback short-circuits before any shared-props or CSRF
	// handling: the body is the handler's props, verbatim.
	if !inertiaRequest && (rd.fallback || opts.JSONFallback) && AcceptsJSON(r) {
		body, err := json.Marshal(opts.Props)
		if err != nil {
			rd.fail(w, "failed to serialize props", err)
			return
		}
		writeRawJSON(w, body)
		return
	}

	token, hasToken := rd.resolveCSRF(r, opts.Shared)
	page, err := buildPage(r, opts.Component, opts.Props, opts.Shared, version, token, hasToken)
	if err != nil {
		rd.fail(w, "failed to serialize props", err)
		return
	}

	if inertiaRequest {
		if err := writeJSONPage(w, page); err != nil {
			rd.fail(w, "failed to serialize props", err)
		}
		return
	}

	tmpl := rd.tmpl
	if opts.Template != nil {
		override, err := NewTemplate(*opts.Template)
		if err != nil {
			rd.fail(w, "failed to render template", err)
			return
		}
		tmpl = override
	}
	pageJSON, err := json.Marshal(page)
	if err != nil {
		rd.fail(w, "failed to serialize props", err)
		return
	}
	writeHTML(w, tmpl.Render(pageJSON, token))
}

// Redirect answers a handler's navigation intent with the status the
// protocol requires for r's method, and an empty body.
func (rd *Renderer) Redirect(w http.ResponseWriter, r Request, location string) {
	writeRedirect(w, r, location)
}

// CheckVersion reports whether the client's declared asset version is
// current. A missing version header is current: that is the client's
// first navigation, not a conflict.
func (rd *Renderer) CheckVersion(r Request) bool {
	return !staleVersion(r, rd.version.Version())
}

// resolveCSRF picks the token for this render: a csrf string contributed
// to the shared registry wins over the ambient provider.
func (rd *Renderer) resolveCSRF(r Request, shared *SharedProps) (string, bool) {
	if shared != nil {
		if tok, ok := shared.csrfToken(); ok {
			return tok, true
		}
	}
	if rd.csrf != nil {
		return rd.csrf.Token(r)
	}
	return "", false
}

func (rd *Renderer) fail(w http.ResponseWriter, message string, err error) {
	rd.log.Error("inertia render failed", zap.Error(err))
	writePlainError(w, message)
}

// staleVersion is true only for an Inertia request whose declared version
// is present and differs from the current one.
func staleVersion(r Request, current string) bool {
	declared, ok := r.Header(HeaderVersion)
	return ok && declared != current
}
