package security

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ferrohq/ferro/internal/config"
	"github.com/ferrohq/ferro/internal/inertia"
	apperrors "github.com/ferrohq/ferro/pkg/errors"
)

var (
	ErrInvalidToken = apperrors.ErrCSRFInvalid.WithMessage("invalid csrf token")
	ErrExpiredToken = apperrors.ErrCSRFInvalid.WithMessage("csrf token has expired")
)

// HeaderCSRFToken is the request header the client adapter echoes the
// token back in on mutating requests.
const HeaderCSRFToken = "X-CSRF-Token"

// CSRFProvider issues and verifies stateless CSRF tokens: signed JWTs
// carrying a random id, delivered in a cookie and embedded in every
// rendered page. No server-side token store is needed.
type CSRFProvider struct {
	secret     []byte
	ttl        time.Duration
	cookieName string
	issuer     string
	secure     bool
}

// NewCSRFProvider creates a CSRFProvider from configuration.
func NewCSRFProvider(cfg *config.CSRFConfig) *CSRFProvider {
	return &CSRFProvider{
		secret:     []byte(cfg.Secret),
		ttl:        cfg.TokenTTL,
		cookieName: cfg.CookieName,
		issuer:     cfg.Issuer,
		secure:     cfg.CookieSecure,
	}
}

// Issue generates a fresh token.
func (p *CSRFProvider) Issue() (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.New().String(),
		Issuer:    p.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// Verify checks the token's signature and expiry.
func (p *CSRFProvider) Verify(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return p.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrExpiredToken
		}
		return ErrInvalidToken
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}

// Middleware ensures every request carries a valid token cookie and
// contributes the token to the request's shared props, so it reaches
// both the page props and the csrf-token meta tag. Writing it through
// the shared registry means the render engine's own injection stays a
// fallback and never overrides this value.
func (p *CSRFProvider) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(p.cookieName)
		if err != nil || p.Verify(token) != nil {
			token, err = p.Issue()
			if err != nil {
				// A broken signer must not take pages down; render
				// proceeds without a token.
				c.Next()
				return
			}
			c.SetCookie(p.cookieName, token, int(p.ttl.Seconds()), "/", "", p.secure, false)
		}
		inertia.Shared(c).CSRF(token)
		c.Next()
	}
}

// RequireToken rejects mutating requests whose X-CSRF-Token header does
// not verify. Safe methods pass through untouched.
func (p *CSRFProvider) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}
		header := c.GetHeader(HeaderCSRFToken)
		err := error(ErrInvalidToken)
		if header != "" {
			err = p.Verify(header)
		}
		if err != nil {
			c.String(apperrors.GetStatus(err), "csrf token invalid")
			c.Abort()
			return
		}
		c.Next()
	}
}
