package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/apiclient"
)

const RequestIDHeader = apiclient.RequestIDHeader

// RequestID tags every request with a correlation id. An incoming
// X-Request-ID is kept, otherwise a new one is generated. The id is stored
// under "request_id" on the echo context and on the request context, so
// backend calls made while serving the request carry the same id.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			rid := req.Header.Get(RequestIDHeader)
			if rid == "" {
				rid = uuid.NewString()
			}
			c.Set("request_id", rid)
			c.Response().Header().Set(RequestIDHeader, rid)
			c.SetRequest(req.WithContext(apiclient.WithRequestID(req.Context(), rid)))
			return next(c)
		}
	}
}
