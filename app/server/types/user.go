package types

import (
	"time"

	"post-board/app/server/models"
)

type UserInfoWithID struct {
	ID          uint                 `json:"id"`
	Username    string               `json:"username"`
	Name        string               `json:"name"`
	Permissions models.PermissionSet `json:"permissions"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

func NewUserInfo(user *models.User) *UserInfoWithID {
	perms := user.Permissions
	if perms == nil {
		perms = models.PermissionSet{}
	}
	return &UserInfoWithID{
		ID:          user.ID,
		Username:    user.Username,
		Name:        user.Name,
		Permissions: perms,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

type UserCreateRequest struct {
	Username    string   `json:"username" validate:"required,min=3,max=32,alphanum"`
	Password    string   `json:"password" validate:"required,min=6,max=72"`
	Name        string   `json:"name" validate:"max=64"`
	Permissions []string `json:"permissions" validate:"omitempty,dive,oneof=ADMIN EDITOR AUTHOR"`
}

type UserInfoInput struct {
	Name *string `json:"name" validate:"omitempty,max=64"`
}
