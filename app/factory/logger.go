package factory

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

func NewModuleLogger(module string) logrus.FieldLogger {
	return logrus.WithField("module", module)
}

// LoggerWithContext attaches the request id of the current HTTP exchange,
// taken from the inbound header or, failing that, the generated response header.
func LoggerWithContext(logger logrus.FieldLogger, ctx echo.Context) logrus.FieldLogger {
	requestID := strings.TrimSpace(ctx.Request().Header.Get(echo.HeaderXRequestID))
	if requestID == "" {
		requestID = strings.TrimSpace(ctx.Response().Header().Get(echo.HeaderXRequestID))
	}
	if requestID == "" {
		return logger
	}
	return logger.WithField("request_id", requestID)
}
