package handlers

import (
	"errors"
	"net/http"

	"post-board/app/server/apperr"
	"post-board/app/server/auth"
	"post-board/app/server/models"
	"post-board/app/server/types"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (a *App) AuthProfile(c echo.Context) error {
	jwtUser, err := caller(c)
	if err != nil {
		return err
	}

	user, err := a.users.FindOne(c.Request().Context(), jwtUser.ID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.Unauthenticated(auth.MessageInvalidToken)
		}
		return err
	}

	return c.JSON(http.StatusOK, types.NewUserInfo(user))
}

func (a *App) AuthChangePassword(c echo.Context) error {
	jwtUser, err := caller(c)
	if err != nil {
		return err
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req types.ChangePasswordRequest
	if err = a.bind(c, &req); err != nil {
		return err
	}

	user, err := a.users.FindOne(rctx, jwtUser.ID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.Unauthenticated(auth.MessageInvalidToken)
		}
		return err
	}

	// 校验旧密码
	if match, err := user.CheckPassword(req.OldPassword); err != nil {
		return apperr.Internal(err)
	} else if !match {
		return apperr.ValidationFields(map[string]string{"oldPassword": "does not match"})
	}

	if err = a.users.UpdatePassword(rctx, user.ID, req.NewPassword); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (a *App) AuthResetPassword(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req types.ResetPasswordRequest
	if err := a.bind(c, &req); err != nil {
		return err
	}

	if err := a.users.UpdatePassword(rctx, req.ID, req.Password); err != nil {
		return err
	}

	if jwtUser, err := caller(c); err == nil {
		a.l.Info("password reset", zap.Uint("target", req.ID), zap.Uint("by", jwtUser.ID))
	}

	return c.NoContent(http.StatusNoContent)
}

func (a *App) AuthUpdatePermission(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req types.UpdatePermissionRequest
	if err := a.bind(c, &req); err != nil {
		return err
	}

	perms := make([]models.Permission, 0, len(req.Permissions))
	for _, p := range req.Permissions {
		perms = append(perms, models.Permission(p))
	}

	set, err := a.perm.SetPermissions(rctx, req.ID, models.Grant{
		Permissions: models.NewPermissionSet(perms...),
		Mode:        models.GrantMode(req.Type),
	})
	if err != nil {
		return err
	}

	a.l.Info("permissions updated", zap.Uint("target", req.ID), zap.Strings("permissions", set.Strings()))

	return c.JSON(http.StatusOK, &types.MessageResponse{Message: "permissions updated"})
}
