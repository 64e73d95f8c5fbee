package middleware

import (
	"context"

	"brewAdvisor/business/recommend"
	"brewAdvisor/pkg/utils"

	"github.com/labstack/echo/v4"
)

// TraceMiddleware assigns each request an ID, propagates it through the
// request context, and echoes it back in the X-Request-ID header.
func TraceMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			traceID := c.Request().Header.Get("X-Request-ID")
			if traceID == "" {
				traceID = utils.NewRequestID()
			}

			ctx := context.WithValue(c.Request().Context(), recommend.TraceIDKey, traceID)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set("X-Request-ID", traceID)

			return next(c)
		}
	}
}
