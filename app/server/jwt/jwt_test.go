package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsEmptyKey(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}

func TestSignAndParse(t *testing.T) {
	j, err := New("super-secret")
	require.NoError(t, err)

	expires := time.Now().Add(time.Hour).Unix()
	token, err := j.SignToken(&User{ID: 42, Expires: expires})
	require.NoError(t, err)

	user, err := j.ParseUser(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), user.ID)
	assert.Equal(t, expires, user.Expires)
	assert.NotEmpty(t, user.TokenID)
	assert.NotZero(t, user.IssuedAt)
}

func TestParseUserFailures(t *testing.T) {
	j, err := New("right-secret")
	require.NoError(t, err)
	other, err := New("wrong-secret")
	require.NoError(t, err)

	expired, err := j.SignToken(&User{ID: 1, Expires: time.Now().Add(-time.Minute).Unix()})
	require.NoError(t, err)

	foreign, err := other.SignToken(&User{ID: 1, Expires: time.Now().Add(time.Hour).Unix()})
	require.NoError(t, err)

	// 没有 exp 的 token 也不接受
	noExp, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{"id": 1}).SignedString([]byte("right-secret"))
	require.NoError(t, err)

	// 没有 id 的 token 不能当作用户 0
	noID, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("right-secret"))
	require.NoError(t, err)

	// 其他签名算法
	hs512, err := gojwt.NewWithClaims(gojwt.SigningMethodHS512, gojwt.MapClaims{
		"id":  1,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("right-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"malformed", "not.a.jwt"},
		{"expired", expired},
		{"wrong secret", foreign},
		{"missing exp", noExp},
		{"missing id", noID},
		{"unexpected algorithm", hs512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := j.ParseUser(tt.token)
			assert.Error(t, err)
		})
	}
}
