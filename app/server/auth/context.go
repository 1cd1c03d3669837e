package auth

import (
	"context"

	"post-board/app/server/jwt"
)

type contextKey struct{}

func WithUser(ctx context.Context, user *jwt.User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// UserFromContext 在公开路由上返回 nil, false
func UserFromContext(ctx context.Context) (*jwt.User, bool) {
	user, ok := ctx.Value(contextKey{}).(*jwt.User)
	return user, ok && user != nil
}
