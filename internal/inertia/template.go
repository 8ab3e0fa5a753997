package inertia

import (
	"strings"
)

// Placeholders recognised in user-supplied templates. Substitution is a
// literal string replacement; nothing else in the template is touched.
const (
	PlaceholderPage = "{page}"
	PlaceholderCSRF = "{csrf}"
)

// Template defaults.
const (
	DefaultRootID        = "app"
	DefaultDevServerBase = "http://localhost:5173"
	DefaultEntryPoint    = "/assets/main.js"
)

// TemplateConfig selects how the HTML shell for initial loads is built.
// Zero-value fields fall back to the defaults above.
type TemplateConfig struct {
	// RootID is the id of the element carrying the data-page attribute.
	RootID string
	// Custom, when non-empty, replaces the built-in skeleton. It must
	// contain both the {page} and the {csrf} placeholder; {page} receives
	// the attribute-escaped page JSON and {csrf} the escaped token.
	Custom string
	// Development selects the dev-server script tags over the production
	// asset references.
	Development bool
	// DevServerBase is the URL prefix of the asset dev server.
	DevServerBase string
	// EntryPoint is the path of the client entry module.
	EntryPoint string
}

// Template is a validated, render-ready HTML stage.
type Template struct {
	cfg TemplateConfig
}

// NewTemplate validates cfg and fills defaults. A custom template missing
// either placeholder fails here, at construction, not per render.
func NewTemplate(cfg TemplateConfig) (*Template, error) {
	if cfg.RootID == "" {
		cfg.RootID = DefaultRootID
	}
	if cfg.DevServerBase == "" {
		cfg.DevServerBase = DefaultDevServerBase
	}
	if cfg.EntryPoint == "" {
		cfg.EntryPoint = DefaultEntryPoint
	}
	if cfg.Custom != "" {
		if !strings.Contains(cfg.Custom, PlaceholderPage) || !strings.Contains(cfg.Custom, PlaceholderCSRF) {
			return nil, ErrTemplateInvalid
		}
	}
	return &Template{cfg: cfg}, nil
}

// attrEscaper escapes exactly the five characters that can break out of
// an HTML attribute context. No other characters are touched; the JSON
// must survive verbatim otherwise.
var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

// EscapeAttr HTML-attribute-escapes s.
func EscapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// Render produces the full HTML document embedding the page JSON and the
// CSRF token. The output is UTF-8.
func (t *Template) Render(pageJSON []byte, csrfToken string) []byte {
	page := EscapeAttr(string(pageJSON))
	token := EscapeAttr(csrfToken)

	if t.cfg.Custom != "" {
		out := strings.ReplaceAll(t.cfg.Custom, PlaceholderPage, page)
		out = strings.ReplaceAll(out, PlaceholderCSRF, token)
		return []byte(out)
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	b.WriteString(`<meta charset="utf-8">` + "\n")
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")
	b.WriteString(`<meta name="csrf-token" content="` + token + `">` + "\n")
	if t.cfg.Development {
		t.writeDevAssets(&b)
	} else {
		t.writeProdAssets(&b)
	}
	b.WriteString("</head>\n<body>\n")
	b.WriteString(`<div id="` + EscapeAttr(t.cfg.RootID) + `" data-page="` + page + `"></div>` + "\n")
	b.WriteString("</body>\n</html>\n")
	return []byte(b.String())
}

// writeDevAssets emits the Vite client, the React refresh preamble, and
// the entry module, all served from the dev server.
func (t *Template) writeDevAssets(b *strings.Builder) {
	base := strings.TrimSuffix(t.cfg.DevServerBase, "/")
	entry := base + "/" + strings.TrimPrefix(t.cfg.EntryPoint, "/")

	b.WriteString(`<script type="module">` + "\n")
	b.WriteString(`import RefreshRuntime from "` + base + `/@react-refresh"` + "\n")
	b.WriteString("RefreshRuntime.injectIntoGlobalHook(window)\n")
	b.WriteString("window.$RefreshReg$ = () => {}\n")
	b.WriteString("window.$RefreshSig$ = () => (type) => type\n")
	b.WriteString("window.__vite_plugin_react_preamble_installed__ = true\n")
	b.WriteString("</script>\n")
	b.WriteString(`<script type="module" src="` + base + `/@vite/client"></script>` + "\n")
	b.WriteString(`<script type="module" src="` + entry + `"></script>` + "\n")
}

// writeProdAssets emits one module script and one stylesheet rooted at
// the built asset directory.
func (t *Template) writeProdAssets(b *strings.Builder) {
	entry := t.cfg.EntryPoint
	stylesheet := strings.TrimSuffix(entry, ".js") + ".css"

	b.WriteString(`<script type="module" src="` + entry + `"></script>` + "\n")
	b.WriteString(`<link rel="stylesheet" href="` + stylesheet + `">` + "\n")
}
