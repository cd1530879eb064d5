package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	auditsvc "schoolku_backend/internals/features/audit/service"
	dto "schoolku_backend/internals/features/users/rbac/dto"
	model "schoolku_backend/internals/features/users/rbac/model"
	service "schoolku_backend/internals/features/users/rbac/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

// RbacHandler mutates roles, capability grants and user role
// assignments. Every mutation invalidates the capability cache and is
// audit-logged.
type RbacHandler struct {
	DB    *gorm.DB
	Cache *service.CapabilityCache
	Audit *auditsvc.Logger
}

func NewRbacHandler(db *gorm.DB, cache *service.CapabilityCache) *RbacHandler {
	return &RbacHandler{DB: db, Cache: cache, Audit: auditsvc.NewLogger(db)}
}

// ====== ROLES
// POST /api/a/roles
func (h *RbacHandler) CreateRole(c *fiber.Ctx) error {
	var body dto.RoleCreateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	role := model.RoleModel{RoleName: body.Name, RoleDescription: body.Description}
	if err := h.DB.WithContext(c.Context()).Create(&role).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Role name already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create role")
	}

	h.auditChange(c, "create", "roles", role.RoleID, nil, role)
	h.Cache.Invalidate()
	return helper.JsonCreated(c, "Role created", role)
}

// GET /api/a/roles
func (h *RbacHandler) ListRoles(c *fiber.Ctx) error {
	var roles []model.RoleModel
	if err := h.DB.WithContext(c.Context()).
		Preload("Permissions").
		Order("role_name ASC").
		Find(&roles).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list roles")
	}
	return helper.JsonOK(c, "OK", roles)
}

// PATCH /api/a/roles/:id
func (h *RbacHandler) UpdateRole(c *fiber.Ctx) error {
	roleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid role id")
	}

	var body dto.RoleUpdateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var role model.RoleModel
	if err := h.DB.WithContext(c.Context()).
		First(&role, "role_id = ?", roleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Role not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load role")
	}
	old := role

	if body.Name != nil {
		role.RoleName = *body.Name
	}
	if body.Description != nil {
		role.RoleDescription = body.Description
	}

	if err := h.DB.WithContext(c.Context()).Save(&role).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Role name already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update role")
	}

	h.auditChange(c, "update", "roles", role.RoleID, old, role)
	h.Cache.Invalidate()
	return helper.JsonUpdated(c, "Role updated", role)
}

// DELETE /api/a/roles/:id (soft)
func (h *RbacHandler) DeleteRole(c *fiber.Ctx) error {
	roleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid role id")
	}
	res := h.DB.WithContext(c.Context()).
		Delete(&model.RoleModel{}, "role_id = ?", roleID)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete role")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Role not found")
	}

	h.auditChange(c, "delete", "roles", roleID, nil, nil)
	h.Cache.Invalidate()
	return helper.JsonDeleted(c, "Role deleted", fiber.Map{"role_id": roleID})
}

// ====== CAPABILITY GRANTS
// PUT /api/a/roles/:id/capabilities
// Replaces the role's capability set. Unknown capability names are
// rejected up front; permission rows are created on first grant.
func (h *RbacHandler) GrantCapabilities(c *fiber.Ctx) error {
	roleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid role id")
	}

	var body dto.GrantCapabilitiesDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	for _, name := range body.Capabilities {
		if !constants.IsCapability(name) {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Unknown capability: "+name)
		}
	}

	err = h.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var role model.RoleModel
		if err := tx.First(&role, "role_id = ?", roleID).Error; err != nil {
			return err
		}

		permIDs := make([]uuid.UUID, 0, len(body.Capabilities))
		for _, name := range body.Capabilities {
			var perm model.PermissionModel
			if err := tx.Where("permission_name = ?", name).
				FirstOrCreate(&perm, model.PermissionModel{PermissionName: name}).Error; err != nil {
				return err
			}
			permIDs = append(permIDs, perm.PermissionID)
		}

		if err := tx.Where("role_permission_role_id = ?", roleID).
			Delete(&model.RolePermissionModel{}).Error; err != nil {
			return err
		}
		for _, pid := range permIDs {
			if err := tx.Create(&model.RolePermissionModel{
				RolePermissionRoleID:       roleID,
				RolePermissionPermissionID: pid,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Role not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to grant capabilities")
	}

	h.auditChange(c, "grant", "role_permissions", roleID, nil, body.Capabilities)
	h.Cache.Invalidate()
	return helper.JsonUpdated(c, "Capabilities granted", fiber.Map{
		"role_id":      roleID,
		"capabilities": body.Capabilities,
	})
}

// GET /api/a/capabilities
// The registry of capability names the gate understands.
func (h *RbacHandler) ListCapabilities(c *fiber.Ctx) error {
	return helper.JsonOK(c, "OK", constants.AllCapabilities)
}

// ====== USER ROLE ASSIGNMENT
// PUT /api/a/users/:id/roles
// Replaces the user's role set.
func (h *RbacHandler) AssignRoles(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var body dto.AssignRolesDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	err = h.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.RoleModel{}).
			Where("role_id IN ?", body.RoleIDs).Count(&n).Error; err != nil {
			return err
		}
		if int(n) != len(body.RoleIDs) {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Where("user_role_user_id = ?", userID).
			Delete(&model.UserRoleModel{}).Error; err != nil {
			return err
		}
		for _, rid := range body.RoleIDs {
			if err := tx.Create(&model.UserRoleModel{
				UserRoleUserID: userID,
				UserRoleRoleID: rid,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Unknown role in role_ids")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to assign roles")
	}

	h.auditChange(c, "assign", "user_roles", userID, nil, body.RoleIDs)
	return helper.JsonUpdated(c, "Roles assigned", fiber.Map{
		"user_id":  userID,
		"role_ids": body.RoleIDs,
	})
}

// auditChange records an RBAC mutation. Audit failures only log; the
// mutation itself already committed.
func (h *RbacHandler) auditChange(c *fiber.Ctx, action, entity string, entityID uuid.UUID, oldVal, newVal interface{}) {
	var actor *uuid.UUID
	if id, err := helperAuth.GetUserIDFromContext(c); err == nil {
		actor = &id
	}
	_ = h.Audit.Log(auditsvc.Entry{
		ActionType: action,
		EntityName: entity,
		EntityID:   &entityID,
		Old:        oldVal,
		New:        newVal,
		Module:     "rbac",
		Category:   "access_control",
		ActorID:    actor,
	})
}
