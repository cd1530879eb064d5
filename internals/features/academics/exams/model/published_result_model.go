package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PublishScope string

const (
	PublishScopeExam    PublishScope = "exam"
	PublishScopeGrade   PublishScope = "grade"
	PublishScopeSection PublishScope = "section"
	PublishScopeSubject PublishScope = "subject"
)

// PublishedResultModel marks results of (exam, section[, subject]) as
// visible. A NULL subject means the whole section is published.
// The unique index serializes concurrent duplicate publishes; the
// migration sets it NULLS NOT DISTINCT so section-wide rows conflict too.
type PublishedResultModel struct {
	PublishedResultID        uuid.UUID  `gorm:"column:published_result_id;type:uuid;primaryKey" json:"published_result_id"`
	PublishedResultExamID    uuid.UUID  `gorm:"column:published_result_exam_id;type:uuid;not null;index;uniqueIndex:uniq_published_target,priority:1" json:"published_result_exam_id"`
	PublishedResultSectionID uuid.UUID  `gorm:"column:published_result_section_id;type:uuid;not null;index;uniqueIndex:uniq_published_target,priority:2" json:"published_result_section_id"`
	PublishedResultSubjectID *uuid.UUID `gorm:"column:published_result_subject_id;type:uuid;uniqueIndex:uniq_published_target,priority:3" json:"published_result_subject_id,omitempty"`

	PublishedResultScope            PublishScope `gorm:"column:published_result_scope;type:varchar(10);not null" json:"published_result_scope"`
	PublishedResultPublishedBy      uuid.UUID    `gorm:"column:published_result_published_by;type:uuid;not null" json:"published_result_published_by"`
	PublishedResultPublishedAt      time.Time    `gorm:"column:published_result_published_at;not null" json:"published_result_published_at"`
	PublishedResultNotificationSent bool         `gorm:"column:published_result_notification_sent;not null;default:false" json:"published_result_notification_sent"`

	PublishedResultCreatedAt time.Time `gorm:"column:published_result_created_at;not null" json:"published_result_created_at"`
}

func (PublishedResultModel) TableName() string { return "published_results" }

func (m *PublishedResultModel) BeforeCreate(tx *gorm.DB) error {
	if m.PublishedResultID == uuid.Nil {
		m.PublishedResultID = uuid.New()
	}
	now := time.Now()
	if m.PublishedResultCreatedAt.IsZero() {
		m.PublishedResultCreatedAt = now
	}
	if m.PublishedResultPublishedAt.IsZero() {
		m.PublishedResultPublishedAt = now
	}
	return nil
}
