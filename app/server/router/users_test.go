package router

import (
	"net/http"
	"testing"

	"post-board/app/server/models"
	"post-board/app/server/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCRUD(t *testing.T) {
	s := newServer(t)
	adminToken := s.token(t, s.admin)

	rec := s.do(t, http.MethodPost, "/users", adminToken, map[string]any{
		"username": "erin", "password": "erin-pass", "name": "Erin", "permissions": []string{"EDITOR"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	erin := decode[types.UserInfoWithID](t, rec)
	assert.Equal(t, models.PermissionSet{models.PermissionEditor}, erin.Permissions)

	rec = s.do(t, http.MethodPost, "/users", adminToken, map[string]any{"username": "erin", "password": "erin-pass"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPatch, "/users/"+itoa(erin.ID), adminToken, map[string]any{"name": "Erin E."})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[types.UserInfoWithID](t, rec)
	assert.Equal(t, "Erin E.", updated.Name)
	assert.Equal(t, "erin", updated.Username)

	rec = s.do(t, http.MethodGet, "/users/"+itoa(erin.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Erin E.", decode[types.UserInfoWithID](t, rec).Name)

	rec = s.do(t, http.MethodDelete, "/users/"+itoa(erin.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, erin.ID, decode[types.UserInfoWithID](t, rec).ID)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/users/"+itoa(erin.ID), adminToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/users/"+itoa(erin.ID), adminToken, nil).Code)
}

func TestUserGetSelfOnly(t *testing.T) {
	s := newServer(t)
	token := s.token(t, s.alice)

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/users/"+itoa(s.alice.ID), token, nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/users/"+itoa(s.bob.ID), token, nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/users/abc", token, nil).Code)
}

func TestUserList(t *testing.T) {
	s := newServer(t)
	adminToken := s.token(t, s.admin)

	rec := s.do(t, http.MethodGet, "/users?page=1&limit=2", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	page := decode[types.PageResponse[types.UserInfoWithID]](t, rec)
	assert.Len(t, page.List, 2)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, int64(2), page.PageMax)

	// page=0&limit=0 返回全部
	rec = s.do(t, http.MethodGet, "/users?page=0&limit=0", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page = decode[types.PageResponse[types.UserInfoWithID]](t, rec)
	assert.Len(t, page.List, 3)
	assert.Equal(t, int64(1), page.PageMax)

	for _, p := range []string{"9", "9223372036854775807", "9223372036854775808", "18446744073709551615"} {
		rec = s.do(t, http.MethodGet, "/users?limit=10&page="+p, adminToken, nil)
		require.Equal(t, http.StatusOK, rec.Code, p)
		page = decode[types.PageResponse[types.UserInfoWithID]](t, rec)
		assert.Empty(t, page.List, p)
		assert.Equal(t, int64(3), page.Total)
	}

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/users?page=-1", adminToken, nil).Code)
}

func TestUserDeleteMany(t *testing.T) {
	s := newServer(t)
	adminToken := s.token(t, s.admin)

	rec := s.do(t, http.MethodDelete, "/users", adminToken, map[string]any{"ids": []uint{s.alice.ID, s.bob.ID, 999}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decode[types.DeleteManyResponse](t, rec)
	assert.ElementsMatch(t, []uint{s.alice.ID, s.bob.ID}, res.Deleted)
	assert.Equal(t, []uint{999}, res.Missing)

	// 不能删除自己
	rec = s.do(t, http.MethodDelete, "/users", adminToken, map[string]any{"ids": []uint{s.admin.ID}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodDelete, "/users/"+itoa(s.admin.ID), adminToken, nil).Code)
}
