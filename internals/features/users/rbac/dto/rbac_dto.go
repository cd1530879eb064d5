package dto

import (
	"github.com/google/uuid"
)

type RoleCreateDTO struct {
	Name        string  `json:"name" validate:"required,max=50"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=255"`
}

type RoleUpdateDTO struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=50"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=255"`
}

// GrantCapabilitiesDTO replaces the role's capability set.
type GrantCapabilitiesDTO struct {
	Capabilities []string `json:"capabilities" validate:"required,dive,min=1,max=100"`
}

// AssignRolesDTO replaces the user's role set.
type AssignRolesDTO struct {
	RoleIDs []uuid.UUID `json:"role_ids" validate:"required"`
}
