package middleware

import (
	"github.com/labstack/echo/v4"
)

var apiHeaders = [][2]string{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"X-XSS-Protection", "0"},
	{"Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'"},
	{"Referrer-Policy", "no-referrer"},
	{"Cache-Control", "no-store"},
}

const hsts = "max-age=31536000; includeSubDomains"

// SecurityHeaders marks gateway responses as uncacheable, unframeable JSON.
// Strict-Transport-Security is only sent when the request arrived over https,
// directly or behind a proxy, so a plain-http localhost gateway is not pinned.
func SecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			for _, kv := range apiHeaders {
				h.Set(kv[0], kv[1])
			}
			if c.Scheme() == "https" {
				h.Set("Strict-Transport-Security", hsts)
			}
			return next(c)
		}
	}
}
