package router

import (
	"net/http"

	"post-board/app/server/handlers"
	"post-board/app/server/models"

	"github.com/labstack/echo/v4"
)

// Route 描述一个接口以及它需要经过的关卡
type Route struct {
	Method     string
	Path       string
	Public     bool              // 跳过认证，不附加身份
	Permission models.Permission // 为空时不检查权限
	Cached     bool              // 缓存 GET 的 200 响应
	Throttled  bool              // 按 IP 限流
	Handler    func(*handlers.App, echo.Context) error
}

var Routes = []Route{
	// auth
	{Method: http.MethodPost, Path: "/auth/register", Public: true, Throttled: true, Handler: (*handlers.App).AuthRegister},
	{Method: http.MethodPost, Path: "/auth/login", Public: true, Throttled: true, Handler: (*handlers.App).AuthLogin},
	{Method: http.MethodGet, Path: "/auth/profile", Handler: (*handlers.App).AuthProfile},
	{Method: http.MethodPatch, Path: "/auth/change-password", Handler: (*handlers.App).AuthChangePassword},
	{Method: http.MethodPatch, Path: "/auth/reset-password", Permission: models.PermissionAdmin, Handler: (*handlers.App).AuthResetPassword},
	{Method: http.MethodPatch, Path: "/auth/update-permission", Permission: models.PermissionAdmin, Handler: (*handlers.App).AuthUpdatePermission},

	// posts
	{Method: http.MethodPost, Path: "/posts", Handler: (*handlers.App).PostCreate},
	{Method: http.MethodGet, Path: "/posts/list", Public: true, Cached: true, Handler: (*handlers.App).PostList},
	{Method: http.MethodPost, Path: "/posts/page", Handler: (*handlers.App).PostPage},
	{Method: http.MethodGet, Path: "/posts/filter", Cached: true, Handler: (*handlers.App).PostFilter},
	{Method: http.MethodGet, Path: "/posts/:id", Cached: true, Handler: (*handlers.App).PostGet},
	{Method: http.MethodPatch, Path: "/posts/:id", Handler: (*handlers.App).PostUpdate},
	{Method: http.MethodDelete, Path: "/posts/:id", Handler: (*handlers.App).PostDelete},
	{Method: http.MethodDelete, Path: "/posts", Permission: models.PermissionAdmin, Handler: (*handlers.App).PostDeleteMany},

	// users
	{Method: http.MethodPost, Path: "/users", Permission: models.PermissionAdmin, Handler: (*handlers.App).UserCreate},
	{Method: http.MethodGet, Path: "/users", Permission: models.PermissionAdmin, Handler: (*handlers.App).UserList},
	{Method: http.MethodGet, Path: "/users/:id", Handler: (*handlers.App).UserInfoGet},
	{Method: http.MethodPatch, Path: "/users/:id", Permission: models.PermissionAdmin, Handler: (*handlers.App).UserInfoUpdate},
	{Method: http.MethodDelete, Path: "/users/:id", Permission: models.PermissionAdmin, Handler: (*handlers.App).UserDelete},
	{Method: http.MethodDelete, Path: "/users", Permission: models.PermissionAdmin, Handler: (*handlers.App).UserDeleteMany},
}
