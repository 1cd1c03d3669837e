package handlers

import (
	"errors"
	"net/http"
	"time"

	"post-board/app/server/apperr"
	"post-board/app/server/jwt"
	"post-board/app/server/models"
	"post-board/app/server/types"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const messageBadCredentials = "invalid username or password"

func (a *App) AuthRegister(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req types.RegisterRequest
	if err := a.bind(c, &req); err != nil {
		return err
	}

	// 用户名已被使用
	if taken, err := a.users.UsernameTaken(rctx, req.Username); err != nil {
		return err
	} else if taken {
		return apperr.Conflict("username already exists")
	}

	user := models.User{
		Username:    req.Username,
		Name:        req.Name,
		Permissions: models.NewPermissionSet(),
	}
	if user.Name == "" {
		user.Name = req.Username
	}

	// 处理密码
	if err := user.SetPassword(req.Password); err != nil {
		return apperr.Internal(err)
	}

	// 创建用户，并发注册同一用户名时由唯一索引兜底
	if err := a.users.Create(rctx, &user); err != nil {
		return err
	}

	a.l.Info("user registered", zap.Uint("id", user.ID), zap.String("username", user.Username))

	return c.JSON(http.StatusCreated, types.NewUserInfo(&user))
}

func (a *App) AuthLogin(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req types.LoginRequest
	if err := a.bind(c, &req); err != nil {
		return err
	}

	user, err := a.users.FindByUsername(rctx, req.Username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.Unauthenticated(messageBadCredentials)
		}
		return err
	}

	// 提取密码 hash 并进行校验
	if match, err := user.CheckPassword(req.Password); err != nil {
		return apperr.Internal(err)
	} else if !match {
		// 密码不一致
		return apperr.Unauthenticated(messageBadCredentials)
	}

	// 签出 JWT
	expires := time.Now().Add(a.ttl)
	token, err := a.jwt.SignToken(&jwt.User{
		ID:      user.ID,
		Expires: expires.Unix(),
	})
	if err != nil {
		return apperr.Internal(err)
	}

	// 返回
	return c.JSON(http.StatusOK, &types.LoginToken{
		Token:     token,
		ExpiresAt: time.Unix(expires.Unix(), 0).UTC(),
	})
}
