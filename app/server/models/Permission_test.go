package models

import (
	"testing"

	"github.com/alexedwards/argon2id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var argon2Fast = argon2id.Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func TestNewPermissionSetDedupesAndSorts(t *testing.T) {
	set := NewPermissionSet(PermissionEditor, PermissionAdmin, PermissionEditor)

	assert.Equal(t, PermissionSet{PermissionAdmin, PermissionEditor}, set)
	assert.True(t, set.Has(PermissionAdmin))
	assert.False(t, set.Has(PermissionAuthor))
}

func TestPermissionSetApply(t *testing.T) {
	start := NewPermissionSet(PermissionAuthor)

	replaced, err := start.Apply(Grant{Permissions: PermissionSet{PermissionAdmin}, Mode: GrantReplace})
	require.NoError(t, err)
	assert.Equal(t, PermissionSet{PermissionAdmin}, replaced)

	added, err := replaced.Apply(Grant{Permissions: PermissionSet{PermissionEditor, PermissionAdmin}, Mode: GrantAdd})
	require.NoError(t, err)
	assert.Equal(t, PermissionSet{PermissionAdmin, PermissionEditor}, added)

	// 原集合不受影响
	assert.Equal(t, PermissionSet{PermissionAuthor}, start)

	_, err = start.Apply(Grant{Mode: "merge"})
	assert.Error(t, err)
}

func TestPermissionSetSQLRoundTrip(t *testing.T) {
	set := NewPermissionSet(PermissionEditor, PermissionAdmin)

	v, err := set.Value()
	require.NoError(t, err)
	assert.Equal(t, `{"ADMIN","EDITOR"}`, v)

	var scanned PermissionSet
	require.NoError(t, scanned.Scan([]byte("{EDITOR,ADMIN}")))
	assert.Equal(t, set, scanned)

	empty, err := PermissionSet(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", empty)
}

func TestParsePermission(t *testing.T) {
	p, ok := ParsePermission("ADMIN")
	assert.True(t, ok)
	assert.Equal(t, PermissionAdmin, p)

	_, ok = ParsePermission("admin")
	assert.False(t, ok)
}

func TestUserPassword(t *testing.T) {
	defaultParams := HashParams
	HashParams = &argon2Fast
	t.Cleanup(func() { HashParams = defaultParams })

	var u User
	require.NoError(t, u.SetPassword("s3cret"))
	assert.NotEqual(t, "s3cret", u.Password)

	ok, err := u.CheckPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = u.CheckPassword("wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}
