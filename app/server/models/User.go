package models

import (
	"fmt"
	"time"

	"github.com/alexedwards/argon2id"
)

// HashParams 为 argon2id 的参数，测试中可以调低以加快速度
var HashParams = argon2id.DefaultParams

type User struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`

	// 基础信息
	Username    string        `gorm:"column:username;uniqueIndex;not null"` // 用户名，全局唯一
	Name        string        `gorm:"column:name"`                          // 显示名称
	Permissions PermissionSet `gorm:"column:permissions;type:text"`         // 权限集合，每次请求都从数据库读取

	// 登录与授权认证相关
	Password string `gorm:"column:password;not null"` // 密码，使用 argon2id 储存
}

func (u *User) SetPassword(plain string) error {
	hash, err := argon2id.CreateHash(plain, HashParams)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.Password = hash
	return nil
}

func (u *User) CheckPassword(plain string) (bool, error) {
	match, _, err := argon2id.CheckHash(plain, u.Password)
	if err != nil {
		return false, fmt.Errorf("check password: %w", err)
	}
	return match, nil
}
