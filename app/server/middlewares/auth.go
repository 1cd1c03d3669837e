package middlewares

import (
	"post-board/app/server/auth"
	"post-board/app/server/models"
	"post-board/app/server/permission"

	"github.com/labstack/echo/v4"
)

// Authenticate 校验 Authorization 头，并把身份放进请求的 context
func Authenticate(v *auth.Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := v.Verify(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return err
			}

			// 设置 context
			req := c.Request()
			c.SetRequest(req.WithContext(auth.WithUser(req.Context(), user)))

			// 继续处理
			return next(c)
		}
	}
}

// RequirePermission 必须放在 Authenticate 之后
func RequirePermission(e *permission.Evaluator, required models.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rctx := c.Request().Context()
			user, _ := auth.UserFromContext(rctx)

			if err := e.Authorize(rctx, user, required); err != nil {
				return err
			}

			return next(c)
		}
	}
}
