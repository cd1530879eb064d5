package dto

import (
	"time"

	"github.com/google/uuid"
)

type AcademicYearCreateDTO struct {
	Name      string    `json:"name" validate:"required,max=30"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required,gtfield=StartDate"`
	IsActive  bool      `json:"is_active"`
}

type AcademicYearUpdateDTO struct {
	Name      *string    `json:"name,omitempty" validate:"omitempty,max=30"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	IsActive  *bool      `json:"is_active,omitempty"`
}

type GradeCreateDTO struct {
	Name  string `json:"name" validate:"required,max=50"`
	Level int    `json:"level" validate:"required,min=1,max=20"`
}

type ClassSectionCreateDTO struct {
	GradeID  uuid.UUID `json:"grade_id" validate:"required"`
	Name     string    `json:"name" validate:"required,max=50"`
	Capacity int       `json:"capacity" validate:"min=0,max=200"`
}

type SubjectCreateDTO struct {
	Name string `json:"name" validate:"required,max=100"`
	Code string `json:"code" validate:"required,max=20"`
}
