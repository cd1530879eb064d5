package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	dto "schoolku_backend/internals/features/users/user/dto"
	model "schoolku_backend/internals/features/users/user/model"
	service "schoolku_backend/internals/features/users/user/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type AuthHandler struct {
	DB     *gorm.DB
	Tokens *service.TokenService
}

func NewAuthHandler(db *gorm.DB, tokens *service.TokenService) *AuthHandler {
	return &AuthHandler{DB: db, Tokens: tokens}
}

// ====== LOGIN
// POST /api/login
// Email + password against the bcrypt hash; issues the JWT pair. The
// access token carries the user's role names.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body dto.LoginDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var user model.UserModel
	if err := h.DB.WithContext(c.Context()).
		First(&user, "user_email = ?", body.Email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Login failed")
	}
	if !user.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Account is deactivated")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte(body.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	roles, err := h.Tokens.RoleNames(user.UserID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Login failed")
	}
	access, refresh, err := h.Tokens.IssuePair(user.UserID, roles)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Login failed")
	}

	return helper.JsonOK(c, "Login success", dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         dto.ToUserResponse(user, roles),
	})
}

// ====== REFRESH
// POST /api/login/refresh
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var body dto.RefreshDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	userID, err := h.Tokens.VerifyRefresh(body.RefreshToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}

	var user model.UserModel
	if err := h.DB.WithContext(c.Context()).
		First(&user, "user_id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}
	if !user.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Account is deactivated")
	}

	roles, err := h.Tokens.RoleNames(user.UserID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Refresh failed")
	}
	access, refresh, err := h.Tokens.IssuePair(user.UserID, roles)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Refresh failed")
	}

	return helper.JsonOK(c, "Token refreshed", dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         dto.ToUserResponse(user, roles),
	})
}

// ====== ME
// GET /api/u/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromContext(c)
	if err != nil {
		return err
	}
	var user model.UserModel
	if err := h.DB.WithContext(c.Context()).
		First(&user, "user_id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	roles, err := h.Tokens.RoleNames(user.UserID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load roles")
	}
	return helper.JsonOK(c, "OK", dto.ToUserResponse(user, roles))
}

// ====== CHANGE PASSWORD
// POST /api/u/me/change-password
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	var body dto.ChangePasswordDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var user model.UserModel
	if err := h.DB.WithContext(c.Context()).
		First(&user, "user_id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte(body.OldPassword)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Old password does not match")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}
	if err := h.DB.WithContext(c.Context()).Model(&user).
		Update("user_password", string(hash)).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to change password")
	}
	return helper.JsonUpdated(c, "Password changed", fiber.Map{"user_id": user.UserID})
}
