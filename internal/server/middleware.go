// internal/server/middleware.go
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mwiater/ragbench/internal/logging"
	"github.com/mwiater/ragbench/internal/table"
)

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogStatus:   true,
		LogLatency:  true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logging.LogRequest(v.Method, v.URI, v.Status, v.Latency, v.RemoteIP, v.Error)
			return nil
		},
	})
}

// errorHandler renders every error as {"error": "..."} with a status derived
// from the error chain.
func errorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		switch {
		case errors.As(err, &he):
			_ = c.JSON(he.Code, map[string]string{"error": fmt.Sprintf("%v", he.Message)})
		case errors.Is(err, ErrUnknownDataset):
			_ = c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		case errors.Is(err, table.ErrUnknownColumn):
			_ = c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			logging.LogEvent("unhandled error: %v", err)
			_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
	}
}
