// Package permission 在每次请求时根据数据库中的最新权限集合做出允许或拒绝的决定。
package permission

import (
	"context"
	"errors"

	"post-board/app/server/apperr"
	"post-board/app/server/auth"
	"post-board/app/server/jwt"
	"post-board/app/server/models"
)

const MessageForbidden = "forbidden resource"

type UserStore interface {
	FindOne(ctx context.Context, id uint) (*models.User, error)
	Update(ctx context.Context, id uint, fields map[string]any) (*models.User, error)
}

type Evaluator struct {
	users UserStore
}

func NewEvaluator(users UserStore) *Evaluator {
	return &Evaluator{users: users}
}

// Permissions 读取调用者当前的权限集合，令牌中不携带权限，所以撤销后的下一次请求就会生效
func (e *Evaluator) Permissions(ctx context.Context, identity *jwt.User) (models.PermissionSet, error) {
	if identity == nil {
		return nil, apperr.Unauthenticated(auth.MessageMissingToken)
	}

	user, err := e.users.FindOne(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			// 令牌有效但用户已经被删除
			return nil, apperr.Unauthenticated(auth.MessageInvalidToken)
		}
		return nil, err
	}

	return user.Permissions, nil
}

// Authorize 在 required 为空时直接放行
func (e *Evaluator) Authorize(ctx context.Context, identity *jwt.User, required models.Permission) error {
	if required == "" {
		return nil
	}

	perms, err := e.Permissions(ctx, identity)
	if err != nil {
		return err
	}

	if !perms.Has(required) {
		return apperr.Forbidden(MessageForbidden)
	}

	return nil
}

// HasAny 用于资源级别的判断（例如帖子作者之外的编辑）
func (e *Evaluator) HasAny(ctx context.Context, identity *jwt.User, perms ...models.Permission) (bool, error) {
	current, err := e.Permissions(ctx, identity)
	if err != nil {
		return false, err
	}

	for _, p := range perms {
		if current.Has(p) {
			return true, nil
		}
	}
	return false, nil
}

// SetPermissions 按 replace 或 add 模式修改目标用户的权限集合
func (e *Evaluator) SetPermissions(ctx context.Context, targetID uint, grant models.Grant) (models.PermissionSet, error) {
	if !grant.Mode.Valid() {
		return nil, apperr.ValidationFields(map[string]string{"type": "must be one of replace add"})
	}
	for _, p := range grant.Permissions {
		if _, ok := models.ParsePermission(string(p)); !ok {
			return nil, apperr.ValidationFields(map[string]string{"permissions": "unknown permission " + string(p)})
		}
	}

	user, err := e.users.FindOne(ctx, targetID)
	if err != nil {
		return nil, err
	}

	next, err := user.Permissions.Apply(grant)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}

	updated, err := e.users.Update(ctx, targetID, map[string]any{"permissions": next})
	if err != nil {
		return nil, err
	}

	return updated.Permissions, nil
}
