package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
	AttendanceStatusLate    AttendanceStatus = "late"
	AttendanceStatusExcused AttendanceStatus = "excused"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusLate, AttendanceStatusExcused:
		return true
	}
	return false
}

// AttendanceRecordModel: one row per (student, section, date).
type AttendanceRecordModel struct {
	AttendanceID        uuid.UUID        `gorm:"column:attendance_id;type:uuid;primaryKey" json:"attendance_id"`
	AttendanceStudentID uuid.UUID        `gorm:"column:attendance_student_id;type:uuid;not null;index;uniqueIndex:uniq_attendance_student_date,priority:1" json:"attendance_student_id"`
	AttendanceSectionID uuid.UUID        `gorm:"column:attendance_section_id;type:uuid;not null;index;uniqueIndex:uniq_attendance_student_date,priority:2" json:"attendance_section_id"`
	AttendanceDate      time.Time        `gorm:"column:attendance_date;type:date;not null;index;uniqueIndex:uniq_attendance_student_date,priority:3" json:"attendance_date"`
	AttendanceStatus    AttendanceStatus `gorm:"column:attendance_status;type:varchar(10);not null" json:"attendance_status"`
	AttendanceNote      *string          `gorm:"column:attendance_note;type:varchar(255)" json:"attendance_note,omitempty"`
	AttendanceMarkedBy  uuid.UUID        `gorm:"column:attendance_marked_by;type:uuid;not null" json:"attendance_marked_by"`

	AttendanceCreatedAt time.Time `gorm:"column:attendance_created_at;not null" json:"attendance_created_at"`
	AttendanceUpdatedAt time.Time `gorm:"column:attendance_updated_at;not null" json:"attendance_updated_at"`
}

func (AttendanceRecordModel) TableName() string { return "attendance_records" }

func (m *AttendanceRecordModel) BeforeCreate(tx *gorm.DB) error {
	if m.AttendanceID == uuid.Nil {
		m.AttendanceID = uuid.New()
	}
	now := time.Now()
	if m.AttendanceCreatedAt.IsZero() {
		m.AttendanceCreatedAt = now
	}
	m.AttendanceUpdatedAt = now
	return nil
}

func (m *AttendanceRecordModel) BeforeUpdate(tx *gorm.DB) error {
	m.AttendanceUpdatedAt = time.Now()
	return nil
}
