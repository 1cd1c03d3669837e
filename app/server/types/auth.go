package types

import "time"

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32,alphanum"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name" validate:"max=64"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=72"`
}

type ResetPasswordRequest struct {
	ID       uint   `json:"id" validate:"required,gt=0"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type UpdatePermissionRequest struct {
	ID          uint     `json:"id" validate:"required,gt=0"`
	Permissions []string `json:"permissions" validate:"required,dive,oneof=ADMIN EDITOR AUTHOR"`
	Type        string   `json:"type" validate:"required,oneof=replace add"`
}
