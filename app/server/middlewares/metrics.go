package middlewares

import (
	"strconv"
	"time"

	"post-board/app/server/metrics"

	"github.com/labstack/echo/v4"
)

// Metrics 记录请求数量与耗时，route 使用路由模板而不是实际路径。错误写出响应后仍然向外返回
func Metrics(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// 先写出错误响应，才能拿到真实的状态码
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method

			m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Response().Status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

			return err
		}
	}
}
