package inertia

import (
	"github.com/gin-gonic/gin"
)

// Gin context keys. Unexported; handlers go through the helpers below.
const (
	rendererKey = "ferro.inertia.renderer"
	sharedKey   = "ferro.inertia.shared"
)

// Middleware installs the renderer and a fresh shared-props registry on
// every request. Middleware running after it can contribute shared props
// through Shared; handlers render through Render and Redirect.
func (rd *Renderer) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(rendererKey, rd)
		c.Set(sharedKey, NewSharedProps())
		c.Next()
	}
}

// Shared returns the request's shared-props registry, creating one when
// the middleware did not run. The registry is confined to this request.
func Shared(c *gin.Context) *SharedProps {
	if v, ok := c.Get(sharedKey); ok {
		if sp, ok := v.(*SharedProps); ok {
			return sp
		}
	}
	sp := NewSharedProps()
	c.Set(sharedKey, sp)
	return sp
}

// Render renders component with props using the renderer installed by the
// middleware and the request's accumulated shared props.
func Render(c *gin.Context, component string, props any) {
	rd, ok := rendererFrom(c)
	if !ok {
		writePlainError(c.Writer, "failed to render page")
		return
	}
	rd.RenderWith(c.Writer, View(c.Request), RenderOptions{
		Component: component,
		Props:     props,
		Shared:    Shared(c),
	})
}

// RenderWith renders with explicit options. The request's shared props
// are used unless the options carry their own registry.
func RenderWith(c *gin.Context, opts RenderOptions) {
	rd, ok := rendererFrom(c)
	if !ok {
		writePlainError(c.Writer, "failed to render page")
		return
	}
	if opts.Shared == nil {
		opts.Shared = Shared(c)
	}
	rd.RenderWith(c.Writer, View(c.Request), opts)
}

// Redirect issues a protocol-aware redirect to location.
func Redirect(c *gin.Context, location string) {
	writeRedirect(c.Writer, View(c.Request), location)
}

// Save captures the request's protocol-relevant state and shared props
// into an owned snapshot, valid after the body has been consumed.
func Save(c *gin.Context) *SavedContext {
	return SaveContext(View(c.Request), Shared(c))
}

// RendererFrom returns the renderer installed by the middleware, for
// handlers that need direct access, such as deferred renders against a
// saved context.
func RendererFrom(c *gin.Context) (*Renderer, bool) {
	return rendererFrom(c)
}

func rendererFrom(c *gin.Context) (*Renderer, bool) {
	v, ok := c.Get(rendererKey)
	if !ok {
		return nil, false
	}
	rd, ok := v.(*Renderer)
	return rd, ok
}
