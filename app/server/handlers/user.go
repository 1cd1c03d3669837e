package handlers

import (
	"net/http"

	"post-board/app/server/apperr"
	"post-board/app/server/models"
	"post-board/app/server/permission"
	"post-board/app/server/repository"
	"post-board/app/server/types"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (a *App) userMapFields(req *types.UserInfoInput) map[string]any {
	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	return fields
}

func (a *App) UserCreate(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req types.UserCreateRequest
	if err := a.bind(c, &req); err != nil {
		return err
	}

	perms := make([]models.Permission, 0, len(req.Permissions))
	for _, p := range req.Permissions {
		perms = append(perms, models.Permission(p))
	}

	// 创建用户
	user := models.User{
		Username:    req.Username,
		Name:        req.Name,
		Permissions: models.NewPermissionSet(perms...),
	}
	if err := user.SetPassword(req.Password); err != nil {
		return apperr.Internal(err)
	}

	if err := a.users.Create(rctx, &user); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, types.NewUserInfo(&user))
}

func (a *App) UserList(c echo.Context) error {
	pageParam, err := queryUint(c, "page")
	if err != nil {
		return err
	}
	limitParam, err := queryUint(c, "limit")
	if err != nil {
		return err
	}

	rctx := c.Request().Context()

	showAll, page, limit := a.parsePagination(pageParam, limitParam)

	var (
		users []models.User
		total int64
	)
	if showAll {
		all, err := a.users.FindAll(rctx)
		if err != nil {
			return err
		}
		users, total = all, int64(len(all))
		page, limit = 1, len(all)
	} else {
		res, err := a.users.FindPage(rctx, repository.PageQuery{Page: page, PageSize: limit})
		if err != nil {
			return err
		}
		users, total = res.List, res.Total
	}

	resUsers := make([]types.UserInfoWithID, 0, len(users))
	for i := range users {
		resUsers = append(resUsers, *types.NewUserInfo(&users[i]))
	}

	return c.JSON(http.StatusOK, &types.PageResponse[types.UserInfoWithID]{
		List:     resUsers,
		Total:    total,
		Page:     page,
		PageSize: limit,
		PageMax:  a.calcMaxPage(total, showAll, limit),
	})
}

// UserInfoGet 只允许查看自己，管理员可以查看任何人
func (a *App) UserInfoGet(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	jwtUser, err := caller(c)
	if err != nil {
		return err
	}

	rctx := c.Request().Context()

	if jwtUser.ID != id {
		if err = a.perm.Authorize(rctx, jwtUser, models.PermissionAdmin); err != nil {
			return err
		}
	}

	// 从数据库中获得指定的用户
	user, err := a.users.FindOne(rctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, types.NewUserInfo(user))
}

func (a *App) UserInfoUpdate(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	// 绑定请求体
	var req types.UserInfoInput
	if err = a.bind(c, &req); err != nil {
		return err
	}

	user, err := a.users.Update(c.Request().Context(), id, a.userMapFields(&req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, types.NewUserInfo(user))
}

func (a *App) UserDelete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	jwtUser, err := caller(c)
	if err != nil {
		return err
	}
	if jwtUser.ID == id {
		// 不能删除自己，避免没有管理员
		return apperr.Forbidden(permission.MessageForbidden)
	}

	// 删除用户
	user, err := a.users.Remove(c.Request().Context(), id)
	if err != nil {
		return err
	}

	a.l.Info("user deleted", zap.Uint("id", id), zap.Uint("by", jwtUser.ID))

	return c.JSON(http.StatusOK, types.NewUserInfo(user))
}

func (a *App) UserDeleteMany(c echo.Context) error {
	// 绑定请求体
	var req types.DeleteManyRequest
	if err := a.bind(c, &req); err != nil {
		return err
	}

	jwtUser, err := caller(c)
	if err != nil {
		return err
	}
	for _, id := range req.IDs {
		if id == jwtUser.ID {
			return apperr.ValidationFields(map[string]string{"ids": "must not contain the caller"})
		}
	}

	result, err := a.users.DeleteMany(c.Request().Context(), req.IDs)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &types.DeleteManyResponse{
		Deleted: result.Deleted,
		Missing: result.Missing,
	})
}
