package dto

import (
	"time"

	"github.com/google/uuid"
)

type StudentCreateDTO struct {
	UserID        *uuid.UUID `json:"user_id,omitempty"`
	Number        string     `json:"number" validate:"required,max=30"`
	FullName      string     `json:"full_name" validate:"required,max=150"`
	Gender        *string    `json:"gender,omitempty" validate:"omitempty,oneof=male female"`
	BirthDate     *time.Time `json:"birth_date,omitempty"`
	GuardianName  *string    `json:"guardian_name,omitempty" validate:"omitempty,max=150"`
	GuardianPhone *string    `json:"guardian_phone,omitempty" validate:"omitempty,max=30"`
}

type StudentUpdateDTO struct {
	UserID        *uuid.UUID `json:"user_id,omitempty"`
	FullName      *string    `json:"full_name,omitempty" validate:"omitempty,max=150"`
	Gender        *string    `json:"gender,omitempty" validate:"omitempty,oneof=male female"`
	BirthDate     *time.Time `json:"birth_date,omitempty"`
	GuardianName  *string    `json:"guardian_name,omitempty" validate:"omitempty,max=150"`
	GuardianPhone *string    `json:"guardian_phone,omitempty" validate:"omitempty,max=30"`
}
