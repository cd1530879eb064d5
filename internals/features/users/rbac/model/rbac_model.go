package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// ROLES & PERMISSIONS
// =========================================================

type RoleModel struct {
	RoleID          uuid.UUID `gorm:"column:role_id;type:uuid;primaryKey" json:"role_id"`
	RoleName        string    `gorm:"column:role_name;type:varchar(50);not null;uniqueIndex:uniq_role_name" json:"role_name"`
	RoleDescription *string   `gorm:"column:role_description;type:varchar(255)" json:"role_description,omitempty"`

	RoleCreatedAt time.Time      `gorm:"column:role_created_at;not null" json:"role_created_at"`
	RoleUpdatedAt time.Time      `gorm:"column:role_updated_at;not null" json:"role_updated_at"`
	RoleDeletedAt gorm.DeletedAt `gorm:"column:role_deleted_at;index" json:"-"`

	Permissions []PermissionModel `gorm:"many2many:role_permissions;foreignKey:RoleID;joinForeignKey:RolePermissionRoleID;References:PermissionID;joinReferences:RolePermissionPermissionID" json:"permissions,omitempty"`
}

func (RoleModel) TableName() string { return "roles" }

func (m *RoleModel) BeforeCreate(tx *gorm.DB) error {
	if m.RoleID == uuid.Nil {
		m.RoleID = uuid.New()
	}
	now := time.Now()
	if m.RoleCreatedAt.IsZero() {
		m.RoleCreatedAt = now
	}
	m.RoleUpdatedAt = now
	return nil
}

// PermissionModel names one capability string (see internals/constants).
type PermissionModel struct {
	PermissionID   uuid.UUID `gorm:"column:permission_id;type:uuid;primaryKey" json:"permission_id"`
	PermissionName string    `gorm:"column:permission_name;type:varchar(100);not null;uniqueIndex:uniq_permission_name" json:"permission_name"`

	PermissionCreatedAt time.Time `gorm:"column:permission_created_at;not null" json:"permission_created_at"`
}

func (PermissionModel) TableName() string { return "permissions" }

func (m *PermissionModel) BeforeCreate(tx *gorm.DB) error {
	if m.PermissionID == uuid.Nil {
		m.PermissionID = uuid.New()
	}
	if m.PermissionCreatedAt.IsZero() {
		m.PermissionCreatedAt = time.Now()
	}
	return nil
}

type RolePermissionModel struct {
	RolePermissionRoleID       uuid.UUID `gorm:"column:role_permission_role_id;type:uuid;primaryKey" json:"role_permission_role_id"`
	RolePermissionPermissionID uuid.UUID `gorm:"column:role_permission_permission_id;type:uuid;primaryKey" json:"role_permission_permission_id"`
}

func (RolePermissionModel) TableName() string { return "role_permissions" }

type UserRoleModel struct {
	UserRoleUserID uuid.UUID `gorm:"column:user_role_user_id;type:uuid;primaryKey" json:"user_role_user_id"`
	UserRoleRoleID uuid.UUID `gorm:"column:user_role_role_id;type:uuid;primaryKey" json:"user_role_role_id"`
}

func (UserRoleModel) TableName() string { return "user_roles" }
