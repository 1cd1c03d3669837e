package repository

import (
	"context"
	"testing"

	"post-board/app/server/apperr"
	"post-board/app/server/models"
	"post-board/app/server/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsers(t *testing.T) {
	ctx := context.Background()
	testutil.FastHash(t)
	users := NewUsers(testutil.DB(t))

	user := &models.User{Username: "alice", Name: "Alice"}
	require.NoError(t, user.SetPassword("old"))
	require.NoError(t, users.Create(ctx, user))

	taken, err := users.UsernameTaken(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = users.UsernameTaken(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, taken)

	// 用户名唯一
	dup := &models.User{Username: "alice", Password: "x"}
	assert.ErrorIs(t, users.Create(ctx, dup), apperr.ErrConflict)

	require.NoError(t, users.UpdatePassword(ctx, user.ID, "new"))

	found, err := users.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	ok, err := found.CheckPassword("new")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.ErrorIs(t, users.UpdatePassword(ctx, 404, "x"), apperr.ErrNotFound)

	// 用户是硬删除，删除后用户名可以再次使用
	_, err = users.Remove(ctx, user.ID)
	require.NoError(t, err)
	taken, err = users.UsernameTaken(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, taken)
}
