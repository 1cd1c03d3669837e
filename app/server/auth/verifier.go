// Package auth 校验 Authorization 头中的会话声明，并通过 context 传递调用者身份。
package auth

import (
	"strings"

	"post-board/app/server/apperr"
	"post-board/app/server/jwt"
)

const (
	MessageMissingToken = "missing token"
	MessageInvalidToken = "invalid token"
)

type Verifier struct {
	jwt *jwt.JWT
}

func NewVerifier(j *jwt.JWT) *Verifier {
	return &Verifier{jwt: j}
}

// Verify 接受完整的 Authorization 头，格式必须为 "Bearer <token>"
func (v *Verifier) Verify(authHeader string) (*jwt.User, error) {
	// 提取 token
	splits := strings.Split(authHeader, " ")
	if len(splits) != 2 || splits[0] != "Bearer" || splits[1] == "" {
		return nil, apperr.Unauthenticated(MessageMissingToken)
	}

	// 验证 token
	user, err := v.jwt.ParseUser(splits[1])
	if err != nil {
		return nil, &apperr.Error{
			Kind:    apperr.KindUnauthenticated,
			Message: MessageInvalidToken,
			Err:     err,
		}
	}

	return user, nil
}
