package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"post-board/app/server/apperr"
	"post-board/app/server/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVerifier(t *testing.T) (*Verifier, *jwt.JWT) {
	t.Helper()

	j, err := jwt.New("test-secret")
	require.NoError(t, err)
	return NewVerifier(j), j
}

func TestVerifyAcceptsBearerToken(t *testing.T) {
	v, j := newVerifier(t)

	token, err := j.SignToken(&jwt.User{ID: 7, Expires: time.Now().Add(time.Hour).Unix()})
	require.NoError(t, err)

	user, err := v.Verify("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)
}

func TestVerifyRejectsMalformedHeader(t *testing.T) {
	v, _ := newVerifier(t)

	for _, header := range []string{"", "Bearer", "Bearer ", "Basic dXNlcjpwYXNz", "bearer abc", "Bearer a b", "token"} {
		t.Run(header, func(t *testing.T) {
			_, err := v.Verify(header)

			var appErr *apperr.Error
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, apperr.KindUnauthenticated, appErr.Kind)
			assert.Equal(t, MessageMissingToken, appErr.Message)
		})
	}
}

func TestVerifyRejectsInvalidToken(t *testing.T) {
	v, j := newVerifier(t)

	expired, err := j.SignToken(&jwt.User{ID: 7, Expires: time.Now().Add(-time.Second).Unix()})
	require.NoError(t, err)

	for _, token := range []string{"garbage", expired} {
		_, err := v.Verify("Bearer " + token)

		var appErr *apperr.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperr.KindUnauthenticated, appErr.Kind)
		assert.Equal(t, MessageInvalidToken, appErr.Message)
	}
}

func TestUserContext(t *testing.T) {
	_, ok := UserFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithUser(context.Background(), &jwt.User{ID: 3})
	user, ok := UserFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, uint(3), user.ID)
}
