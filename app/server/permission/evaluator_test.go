package permission

import (
	"context"
	"testing"

	"post-board/app/server/apperr"
	"post-board/app/server/jwt"
	"post-board/app/server/models"
	"post-board/app/server/repository"
	"post-board/app/server/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*Evaluator, *repository.Users) {
	t.Helper()
	testutil.FastHash(t)

	users := repository.NewUsers(testutil.DB(t))
	return NewEvaluator(users), users
}

func createUser(t *testing.T, users *repository.Users, username string, perms ...models.Permission) *models.User {
	t.Helper()

	user := &models.User{Username: username, Permissions: models.NewPermissionSet(perms...)}
	require.NoError(t, user.SetPassword("password"))
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestAuthorize(t *testing.T) {
	ctx := context.Background()
	e, users := setup(t)

	admin := createUser(t, users, "admin", models.PermissionAdmin)
	plain := createUser(t, users, "plain")

	// 没有要求权限
	assert.NoError(t, e.Authorize(ctx, &jwt.User{ID: plain.ID}, ""))

	assert.NoError(t, e.Authorize(ctx, &jwt.User{ID: admin.ID}, models.PermissionAdmin))

	err := e.Authorize(ctx, &jwt.User{ID: plain.ID}, models.PermissionAdmin)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	// 用户已被删除
	err = e.Authorize(ctx, &jwt.User{ID: 999}, models.PermissionAdmin)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	err = e.Authorize(ctx, nil, models.PermissionAdmin)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestAuthorizeSeesRevocationImmediately(t *testing.T) {
	ctx := context.Background()
	e, users := setup(t)

	user := createUser(t, users, "editor", models.PermissionAdmin)
	identity := &jwt.User{ID: user.ID}

	require.NoError(t, e.Authorize(ctx, identity, models.PermissionAdmin))

	_, err := e.SetPermissions(ctx, user.ID, models.Grant{Mode: models.GrantReplace})
	require.NoError(t, err)

	assert.ErrorIs(t, e.Authorize(ctx, identity, models.PermissionAdmin), apperr.ErrForbidden)
}

func TestSetPermissionsReplaceThenAdd(t *testing.T) {
	ctx := context.Background()
	e, users := setup(t)

	user := createUser(t, users, "target", models.PermissionAuthor)

	set, err := e.SetPermissions(ctx, user.ID, models.Grant{
		Permissions: models.PermissionSet{models.PermissionAdmin},
		Mode:        models.GrantReplace,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PermissionSet{models.PermissionAdmin}, set)

	set, err = e.SetPermissions(ctx, user.ID, models.Grant{
		Permissions: models.PermissionSet{models.PermissionEditor},
		Mode:        models.GrantAdd,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PermissionSet{models.PermissionAdmin, models.PermissionEditor}, set)

	// 从数据库重新读取
	stored, err := users.FindOne(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PermissionSet{models.PermissionAdmin, models.PermissionEditor}, stored.Permissions)
}

func TestSetPermissionsErrors(t *testing.T) {
	ctx := context.Background()
	e, users := setup(t)

	user := createUser(t, users, "target")

	_, err := e.SetPermissions(ctx, 999, models.Grant{Mode: models.GrantAdd})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = e.SetPermissions(ctx, user.ID, models.Grant{Mode: "merge"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = e.SetPermissions(ctx, user.ID, models.Grant{
		Permissions: models.PermissionSet{"ROOT"},
		Mode:        models.GrantAdd,
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestHasAny(t *testing.T) {
	ctx := context.Background()
	e, users := setup(t)

	editor := createUser(t, users, "editor", models.PermissionEditor)

	ok, err := e.HasAny(ctx, &jwt.User{ID: editor.ID}, models.PermissionEditor, models.PermissionAdmin)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.HasAny(ctx, &jwt.User{ID: editor.ID}, models.PermissionAdmin)
	require.NoError(t, err)
	assert.False(t, ok)
}
