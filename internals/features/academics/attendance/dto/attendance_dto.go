package dto

import (
	"github.com/google/uuid"
)

type AttendanceEntryDTO struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Status    string    `json:"status" validate:"required,oneof=present absent late excused"`
	Note      *string   `json:"note,omitempty" validate:"omitempty,max=255"`
}

// BulkMarkAttendanceDTO records one section's register for one day.
type BulkMarkAttendanceDTO struct {
	SectionID uuid.UUID            `json:"section_id" validate:"required"`
	Date      string               `json:"date" validate:"required,datetime=2006-01-02"`
	Entries   []AttendanceEntryDTO `json:"entries" validate:"required,min=1,max=200,dive"`
}

// AttendanceSummaryResponse counts one student's statuses over a range.
type AttendanceSummaryResponse struct {
	StudentID uuid.UUID `json:"student_id"`
	Present   int64     `json:"present"`
	Absent    int64     `json:"absent"`
	Late      int64     `json:"late"`
	Excused   int64     `json:"excused"`
}
