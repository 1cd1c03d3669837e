package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"post-board/app/server/apperr"
	"post-board/app/server/types"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorHandler 是 echo 的统一错误出口，内部错误只写日志，不返回细节
func (a *App) ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	res := types.ErrorMessage{}

	var (
		appErr  *apperr.Error
		httpErr *echo.HTTPError
	)
	switch {
	case errors.As(err, &appErr):
		res.StatusCode = apperr.StatusCode(appErr.Kind)
		res.Message = appErr.Message
		res.Fields = appErr.Fields
	case errors.As(err, &httpErr):
		res.StatusCode = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			res.Message = msg
		} else {
			res.Message = fmt.Sprint(httpErr.Message)
		}
	default:
		// 未分类的错误按 KindInternal 处理
		res.StatusCode = apperr.StatusCode(apperr.KindOf(err))
	}

	if res.StatusCode >= http.StatusInternalServerError {
		a.l.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("uri", c.Request().RequestURI),
			zap.Error(err),
		)
		res.Message = http.StatusText(res.StatusCode)
		if res.StatusCode == http.StatusInternalServerError {
			res.Message = apperr.ErrInternal.Message
		}
		res.Fields = nil
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(res.StatusCode)
	} else {
		writeErr = c.JSON(res.StatusCode, &res)
	}
	if writeErr != nil {
		a.l.Error("failed to write error response", zap.Error(writeErr))
	}
}
