package commands

import (
	"context"
	"fmt"
	"strings"

	"post-board/app/server/apperr"
	"post-board/app/server/models"
	"post-board/app/server/types"

	"go.uber.org/zap"
)

// CreateUser 创建用户，密码从输入读取
func (a *App) CreateUser(ctx context.Context, username string, name string, perms []string) (*models.User, error) {
	password, err := a.promptNewPassword()
	if err != nil {
		return nil, err
	}

	// 校验
	req := types.UserCreateRequest{
		Username:    username,
		Password:    password,
		Name:        name,
		Permissions: perms,
	}
	if err := a.valid.Validate(&req); err != nil {
		return nil, err
	}

	// 检查用户名
	if taken, err := a.users.UsernameTaken(ctx, req.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, apperr.Conflict("username already exists")
	}

	// 创建
	granted := make([]models.Permission, 0, len(req.Permissions))
	for _, p := range req.Permissions {
		granted = append(granted, models.Permission(p))
	}
	user := models.User{
		Username:    req.Username,
		Name:        req.Name,
		Permissions: models.NewPermissionSet(granted...),
	}
	if user.Name == "" {
		user.Name = req.Username
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, apperr.Internal(err)
	}
	if err := a.users.Create(ctx, &user); err != nil {
		return nil, err
	}

	a.l.Info("user created", zap.Uint("id", user.ID), zap.String("username", user.Username), zap.Strings("permissions", user.Permissions.Strings()))
	_, _ = fmt.Fprintf(a.out, "created user %d (%s) with permissions [%s]\n", user.ID, user.Username, strings.Join(user.Permissions.Strings(), ", "))

	return &user, nil
}

// ResetPassword 不需要旧密码
func (a *App) ResetPassword(ctx context.Context, id uint) error {
	password, err := a.promptNewPassword()
	if err != nil {
		return err
	}

	req := types.ResetPasswordRequest{
		ID:       id,
		Password: password,
	}
	if err := a.valid.Validate(&req); err != nil {
		return err
	}

	if err := a.users.UpdatePassword(ctx, req.ID, req.Password); err != nil {
		return err
	}

	a.l.Info("password reset", zap.Uint("id", req.ID))
	_, _ = fmt.Fprintf(a.out, "password of user %d reset\n", req.ID)

	return nil
}

// Grant 按模式修改权限，replace 且不带权限时清空
func (a *App) Grant(ctx context.Context, id uint, perms []string, mode string) (models.PermissionSet, error) {
	grant := models.Grant{Mode: models.GrantMode(mode)}
	for _, p := range perms {
		grant.Permissions = append(grant.Permissions, models.Permission(p))
	}

	updated, err := a.perm.SetPermissions(ctx, id, grant)
	if err != nil {
		return nil, err
	}

	a.l.Info("permissions updated", zap.Uint("id", id), zap.String("mode", mode), zap.Strings("permissions", updated.Strings()))
	_, _ = fmt.Fprintf(a.out, "user %d permissions: [%s]\n", id, strings.Join(updated.Strings(), ", "))

	return updated, nil
}
