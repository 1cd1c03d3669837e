package handlers

import (
	"time"

	"post-board/app/server/jwt"
	"post-board/app/server/permission"
	"post-board/app/server/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	l     *zap.Logger           // 日志
	db    *gorm.DB              // 数据库，仅用于健康检查
	users *repository.Users     // 用户仓库
	posts *repository.Posts     // 帖子仓库
	perm  *permission.Evaluator // 权限判断
	jwt   *jwt.JWT              // JWT ，用于无状态验证
	ttl   time.Duration         // 会话有效期
}

func NewApp(l *zap.Logger, db *gorm.DB, perm *permission.Evaluator, j *jwt.JWT, tokenTTL time.Duration) *App {
	return &App{
		l:     l,
		db:    db,
		users: repository.NewUsers(db),
		posts: repository.NewPosts(db),
		perm:  perm,
		jwt:   j,
		ttl:   tokenTTL,
	}
}
