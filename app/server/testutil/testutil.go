// Package testutil 提供测试共用的数据库与密码哈希设置。
package testutil

import (
	"testing"

	"post-board/app/server/inits"
	"post-board/app/server/models"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// DB 返回一个已迁移的独立内存 SQLite 数据库
func DB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := inits.OpenDB("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

// FastHash 在测试期间调低 argon2id 参数
func FastHash(t *testing.T) {
	t.Helper()

	old := models.HashParams
	models.HashParams = &argon2id.Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}
	t.Cleanup(func() { models.HashParams = old })
}

// CreateUser 直接写入数据库，返回带 ID 的用户
func CreateUser(t *testing.T, db *gorm.DB, username string, password string, perms ...models.Permission) *models.User {
	t.Helper()

	user := &models.User{
		Username:    username,
		Name:        username,
		Permissions: models.NewPermissionSet(perms...),
	}
	require.NoError(t, user.SetPassword(password))
	require.NoError(t, db.Create(user).Error)

	return user
}
