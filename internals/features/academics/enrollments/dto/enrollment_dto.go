package dto

import (
	"time"

	"github.com/google/uuid"
)

type EnrollmentCreateDTO struct {
	StudentID      uuid.UUID  `json:"student_id" validate:"required"`
	AcademicYearID uuid.UUID  `json:"academic_year_id" validate:"required"`
	SectionID      uuid.UUID  `json:"section_id" validate:"required"`
	JoinedAt       *time.Time `json:"joined_at,omitempty"`
}

// EnrollmentStatusDTO moves an enrollment through its lifecycle:
// active -> transferred (with a new section) or left.
type EnrollmentStatusDTO struct {
	Status    string     `json:"status" validate:"required,oneof=active transferred left"`
	SectionID *uuid.UUID `json:"section_id,omitempty"`
	LeftAt    *time.Time `json:"left_at,omitempty"`
}
