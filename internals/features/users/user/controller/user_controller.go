package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	dto "schoolku_backend/internals/features/users/user/dto"
	model "schoolku_backend/internals/features/users/user/model"
	helper "schoolku_backend/internals/helpers"
)

type UserHandler struct {
	DB *gorm.DB
}

// ====== CREATE
// POST /api/a/users
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var body dto.UserCreateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := model.UserModel{
		UserName:     body.Name,
		UserEmail:    body.Email,
		UserPassword: string(hash),
		UserIsActive: true,
	}
	if err := h.DB.WithContext(c.Context()).Create(&user).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Email already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}
	return helper.JsonCreated(c, "User created", dto.ToUserResponse(user, nil))
}

// ====== LIST
// GET /api/a/users?search=...&active=true
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := h.DB.WithContext(c.Context()).Model(&model.UserModel{})
	if s := c.Query("search"); s != "" {
		like := "%" + s + "%"
		q = q.Where("user_name ILIKE ? OR user_email ILIKE ?", like, like)
	}
	if s := c.Query("active"); s != "" {
		q = q.Where("user_is_active = ?", s == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count users")
	}

	var users []model.UserModel
	if err := q.Order("user_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list users")
	}

	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.ToUserResponse(u, nil))
	}
	return helper.JsonList(c, "OK", out, helper.BuildPagination(total, p, len(out)))
}

// ====== UPDATE
// PATCH /api/a/users/:id
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var body dto.UserUpdateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var user model.UserModel
	if err := h.DB.WithContext(c.Context()).
		First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load user")
	}

	if body.Name != nil {
		user.UserName = *body.Name
	}
	if body.Email != nil {
		user.UserEmail = *body.Email
	}
	if body.IsActive != nil {
		user.UserIsActive = *body.IsActive
	}

	if err := h.DB.WithContext(c.Context()).Save(&user).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Email already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update user")
	}
	return helper.JsonUpdated(c, "User updated", dto.ToUserResponse(user, nil))
}

// ====== DELETE
// DELETE /api/a/users/:id (soft)
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}
	res := h.DB.WithContext(c.Context()).
		Delete(&model.UserModel{}, "user_id = ?", userID)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete user")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	return helper.JsonDeleted(c, "User deleted", fiber.Map{"user_id": userID})
}
