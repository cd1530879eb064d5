package dto

import (
	"time"

	"github.com/google/uuid"

	model "schoolku_backend/internals/features/users/user/model"
)

/* =========================================================
   Auth
========================================================= */

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type ChangePasswordDTO struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

/* =========================================================
   Users
========================================================= */

type UserCreateDTO struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type UserUpdateDTO struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type UserResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	Roles     []string  `json:"roles,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func ToUserResponse(m model.UserModel, roles []string) UserResponse {
	return UserResponse{
		UserID:    m.UserID,
		Name:      m.UserName,
		Email:     m.UserEmail,
		IsActive:  m.UserIsActive,
		Roles:     roles,
		CreatedAt: m.UserCreatedAt,
	}
}
