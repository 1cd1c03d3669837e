package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (a *App) HealthCheck(c echo.Context) error {
	sqlDB, err := a.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request().Context())
	}
	if err != nil {
		a.l.Warn("database ping failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable")
	}

	return c.NoContent(http.StatusOK)
}
