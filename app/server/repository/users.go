package repository

import (
	"context"
	"errors"

	"post-board/app/server/apperr"
	"post-board/app/server/models"

	"gorm.io/gorm"
)

var userSortable = map[string]string{
	"id":        "id",
	"createdAt": "created_at",
	"username":  "username",
}

type Users struct {
	*Store[models.User]
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{
		Store: NewStore[models.User](db, "user", userSortable),
	}
}

func (u *Users) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		return nil, u.translate(err)
	}
	return &user, nil
}

func (u *Users) UsernameTaken(ctx context.Context, username string) (bool, error) {
	_, err := u.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, apperr.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (u *Users) UpdatePassword(ctx context.Context, id uint, plain string) error {
	var user models.User
	if err := user.SetPassword(plain); err != nil {
		return apperr.Internal(err)
	}

	_, err := u.Update(ctx, id, map[string]any{"password": user.Password})
	return err
}
