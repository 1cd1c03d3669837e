package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type JWT struct {
	key []byte
}

// User 是会话声明中携带的身份，权限不写入 token ，每次请求都从数据库重新读取
type User struct {
	ID       uint
	Expires  int64  // Unix second
	IssuedAt int64  // Unix second
	TokenID  string // jti
}

type claims struct {
	jwt.RegisteredClaims
	UserID uint `json:"id"`
}

func New(key string) (*JWT, error) {
	if len(key) == 0 {
		return nil, errors.New("key is empty")
	}

	return &JWT{key: []byte(key)}, nil
}

func (j *JWT) ParseUser(tokenString string) (*User, error) {
	// 检查是否有效
	if len(tokenString) == 0 {
		return nil, errors.New("token string is empty")
	}

	// 映射字段
	c := &claims{}
	token, err := jwt.ParseWithClaims(tokenString, c, func(token *jwt.Token) (interface{}, error) {
		return j.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("parse jwt failed: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if c.UserID == 0 {
		return nil, errors.New("token carries no user id")
	}

	// 匹配内容
	user := &User{
		ID:      c.UserID,
		Expires: c.ExpiresAt.Unix(),
		TokenID: c.ID,
	}
	if c.IssuedAt != nil {
		user.IssuedAt = c.IssuedAt.Unix()
	}

	return user, nil
}

func (j *JWT) SignToken(user *User) (string, error) {
	if user.TokenID == "" {
		user.TokenID = uuid.NewString()
	}
	if user.IssuedAt == 0 {
		user.IssuedAt = time.Now().Unix()
	}

	// 创建声明
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        user.TokenID,
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(time.Unix(user.IssuedAt, 0)),
			ExpiresAt: jwt.NewNumericDate(time.Unix(user.Expires, 0)),
		},
		UserID: user.ID,
	}

	// 创建令牌
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)

	// 签名并返回
	return token.SignedString(j.key)
}
