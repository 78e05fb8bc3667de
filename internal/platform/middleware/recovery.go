package middleware

import (
	"fmt"
	"net/http"
	"runtime"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// PanicError carries a recovered panic value and the stack it was raised on.
type PanicError struct {
	Value interface{}
	Stack []byte
}

func (p *PanicError) Error() string { return fmt.Sprintf("panic: %v", p.Value) }

// recovered turns a recover() value into the 500 handed back to echo.
func recovered(r interface{}) *echo.HTTPError {
	stack := make([]byte, 4096)
	stack = stack[:runtime.Stack(stack, false)]
	return &echo.HTTPError{
		Code:     http.StatusInternalServerError,
		Message:  "Internal server error",
		Internal: &PanicError{Value: r, Stack: stack},
	}
}

// Recovery answers 500 for a panicking handler and logs the panic against
// the request id and matched route.
func Recovery(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				he := recovered(r)
				p := he.Internal.(*PanicError)
				rid, _ := c.Get("request_id").(string)
				logger.Error().
					Str("request_id", rid).
					Str("method", c.Request().Method).
					Str("route", c.Path()).
					Str("panic", fmt.Sprint(p.Value)).
					Bytes("stack", p.Stack).
					Msg("handler panicked")
				err = he
			}()
			return next(c)
		}
	}
}
