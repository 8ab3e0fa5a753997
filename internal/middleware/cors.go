package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ferrohq/ferro/internal/inertia"
)

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// DefaultCORSConfig returns a configuration that admits the protocol
// headers the client adapter sends and needs to read back.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{
			"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD",
		},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", "X-Requested-With", "X-Request-ID",
			inertia.HeaderInertia, inertia.HeaderVersion,
			inertia.HeaderPartialData, inertia.HeaderPartialComponent,
			"X-CSRF-Token",
		},
		ExposeHeaders: []string{
			"Content-Length", "X-Request-ID", inertia.HeaderLocation,
		},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

// resolveAllowedOrigin returns the origin to reflect, or "" if origin is not allowed
func resolveAllowedOrigin(origin string, allowOrigins []string) string {
	for _, o := range allowOrigins {
		if o == "*" || o == origin {
			return origin
		}
	}
	if len(allowOrigins) > 0 && allowOrigins[0] == "*" {
		return "*"
	}
	return ""
}

// applyPreflightHeaders sets the CORS preflight response headers
func applyPreflightHeaders(c *gin.Context, cfg CORSConfig) {
	c.Header("Access-Control-Allow-Methods", strings.Join(cfg.AllowMethods, ", "))
	c.Header("Access-Control-Allow-Headers", strings.Join(cfg.AllowHeaders, ", "))
	c.Header("Access-Control-Max-Age", strconv.Itoa(int(cfg.MaxAge.Seconds())))
	c.AbortWithStatus(204)
}

// CORS returns a CORS middleware with the given configuration
func CORS(config CORSConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		allowOrigin := resolveAllowedOrigin(origin, config.AllowOrigins)

		if allowOrigin != "" {
			c.Header("Access-Control-Allow-Origin", allowOrigin)
		}
		if config.AllowCredentials {
			c.Header("Access-Control-Allow-Credentials", "true")
		}

		if c.Request.Method == "OPTIONS" {
			applyPreflightHeaders(c, config)
			return
		}

		if len(config.ExposeHeaders) > 0 {
			c.Header("Access-Control-Expose-Headers", strings.Join(config.ExposeHeaders, ", "))
		}

		c.Next()
	}
}
