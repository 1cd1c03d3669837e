package models

import (
	"database/sql/driver"
	"fmt"
	"slices"

	"github.com/lib/pq"
)

type Permission string

const (
	PermissionAdmin  Permission = "ADMIN"  // 管理员：管理用户、权限，删除任意帖子
	PermissionEditor Permission = "EDITOR" // 编辑：可以修改任意帖子
	PermissionAuthor Permission = "AUTHOR" // 作者：预留的发帖能力标记
)

var AllPermissions = []Permission{PermissionAdmin, PermissionEditor, PermissionAuthor}

func ParsePermission(s string) (Permission, bool) {
	p := Permission(s)
	return p, slices.Contains(AllPermissions, p)
}

// PermissionSet 是去重并排序后的权限集合，以 Postgres 数组字面量（{A,B}）存入 text 列
type PermissionSet []Permission

func NewPermissionSet(perms ...Permission) PermissionSet {
	set := make(PermissionSet, 0, len(perms))
	for _, p := range perms {
		if !slices.Contains(set, p) {
			set = append(set, p)
		}
	}
	slices.Sort(set)
	return set
}

func (s PermissionSet) Has(p Permission) bool {
	return slices.Contains(s, p)
}

func (s PermissionSet) Union(other PermissionSet) PermissionSet {
	merged := make([]Permission, 0, len(s)+len(other))
	merged = append(merged, s...)
	merged = append(merged, other...)
	return NewPermissionSet(merged...)
}

func (s PermissionSet) Strings() []string {
	strs := make([]string, 0, len(s))
	for _, p := range s {
		strs = append(strs, string(p))
	}
	return strs
}

func (s PermissionSet) Value() (driver.Value, error) {
	return pq.StringArray(s.Strings()).Value()
}

func (s *PermissionSet) Scan(src any) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return fmt.Errorf("scan permission set: %w", err)
	}

	perms := make([]Permission, 0, len(arr))
	for _, str := range arr {
		perms = append(perms, Permission(str))
	}
	*s = NewPermissionSet(perms...)
	return nil
}

type GrantMode string

const (
	GrantReplace GrantMode = "replace" // 覆盖现有权限
	GrantAdd     GrantMode = "add"     // 合并到现有权限
)

func (m GrantMode) Valid() bool {
	return m == GrantReplace || m == GrantAdd
}

type Grant struct {
	Permissions PermissionSet
	Mode        GrantMode
}

// Apply 返回应用授权之后的新集合，不修改原集合
func (s PermissionSet) Apply(g Grant) (PermissionSet, error) {
	switch g.Mode {
	case GrantReplace:
		return NewPermissionSet(g.Permissions...), nil
	case GrantAdd:
		return s.Union(g.Permissions), nil
	default:
		return nil, fmt.Errorf("unknown grant mode %q", g.Mode)
	}
}
