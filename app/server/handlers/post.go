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

func (a *App) postMapFields(req *types.PostUpdateRequest) map[string]any {
	fields := map[string]any{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Content != nil {
		fields["content"] = *req.Content
	}
	if req.Published != nil {
		fields["published"] = *req.Published
	}
	return fields
}

// postAccess 作者本人可以操作，否则需要 perms 中的任一权限
func (a *App) postAccess(c echo.Context, post *models.Post, perms ...models.Permission) error {
	jwtUser, err := caller(c)
	if err != nil {
		return err
	}
	if post.AuthorID == jwtUser.ID {
		return nil
	}

	ok, err := a.perm.HasAny(c.Request().Context(), jwtUser, perms...)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Forbidden(permission.MessageForbidden)
	}
	return nil
}

func (a *App) PostCreate(c echo.Context) error {
	jwtUser, err := caller(c)
	if err != nil {
		return err
	}

	// 绑定请求体
	var req types.PostCreateRequest
	if err = a.bind(c, &req); err != nil {
		return err
	}

	post := models.Post{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
		AuthorID:  jwtUser.ID,
	}
	if err = a.posts.Create(c.Request().Context(), &post); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, types.NewPostInfo(&post))
}

func (a *App) PostList(c echo.Context) error {
	posts, err := a.posts.FindAll(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, types.NewPostList(posts))
}

func (a *App) PostPage(c echo.Context) error {
	// 绑定请求体
	var req types.PostPageRequest
	if err := a.bind(c, &req); err != nil {
		return err
	}

	var filter repository.PostFilter
	if req.Filter != nil {
		filter = repository.PostFilter{
			Keyword:   req.Filter.Keyword,
			AuthorID:  req.Filter.AuthorID,
			Published: req.Filter.Published,
		}
	}

	page, err := a.posts.FindFilteredPage(c.Request().Context(), repository.PageQuery{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		Desc:     req.Order == "desc",
	}, filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &types.PageResponse[types.PostInfo]{
		List:     types.NewPostList(page.List),
		Total:    page.Total,
		Page:     req.Page,
		PageSize: req.PageSize,
		PageMax:  a.calcMaxPage(page.Total, false, req.PageSize),
	})
}

func (a *App) PostFilter(c echo.Context) error {
	posts, err := a.posts.Search(c.Request().Context(), c.QueryParam("searchStr"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, types.NewPostList(posts))
}

func (a *App) PostGet(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	post, err := a.posts.FindOne(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, types.NewPostInfo(post))
}

func (a *App) PostUpdate(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req types.PostUpdateRequest
	if err = a.bind(c, &req); err != nil {
		return err
	}

	post, err := a.posts.FindOne(rctx, id)
	if err != nil {
		return err
	}
	if err = a.postAccess(c, post, models.PermissionEditor, models.PermissionAdmin); err != nil {
		return err
	}

	updated, err := a.posts.Update(rctx, id, a.postMapFields(&req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, types.NewPostInfo(updated))
}

func (a *App) PostDelete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	rctx := c.Request().Context()

	post, err := a.posts.FindOne(rctx, id)
	if err != nil {
		return err
	}
	if err = a.postAccess(c, post, models.PermissionAdmin); err != nil {
		return err
	}

	removed, err := a.posts.Remove(rctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, types.NewPostInfo(removed))
}

func (a *App) PostDeleteMany(c echo.Context) error {
	// 绑定请求体
	var req types.DeleteManyRequest
	if err := a.bind(c, &req); err != nil {
		return err
	}

	result, err := a.posts.DeleteMany(c.Request().Context(), req.IDs)
	if err != nil {
		return err
	}

	if len(result.Missing) > 0 {
		a.l.Debug("batch delete skipped missing posts", zap.Uints("missing", result.Missing))
	}

	return c.JSON(http.StatusOK, &types.DeleteManyResponse{
		Deleted: result.Deleted,
		Missing: result.Missing,
	})
}
