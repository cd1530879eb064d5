package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AuditLogModel struct {
	AuditLogID         uuid.UUID      `gorm:"column:audit_log_id;type:uuid;primaryKey" json:"audit_log_id"`
	AuditLogActionType string         `gorm:"column:audit_log_action_type;type:varchar(50);not null;index" json:"audit_log_action_type"`
	AuditLogEntityName string         `gorm:"column:audit_log_entity_name;type:varchar(100);not null;index" json:"audit_log_entity_name"`
	AuditLogEntityID   *uuid.UUID     `gorm:"column:audit_log_entity_id;type:uuid;index" json:"audit_log_entity_id,omitempty"`
	AuditLogOldValue   datatypes.JSON `gorm:"column:audit_log_old_value" json:"audit_log_old_value,omitempty"`
	AuditLogNewValue   datatypes.JSON `gorm:"column:audit_log_new_value" json:"audit_log_new_value,omitempty"`
	AuditLogModule     *string        `gorm:"column:audit_log_module;type:varchar(50)" json:"audit_log_module,omitempty"`
	AuditLogCategory   *string        `gorm:"column:audit_log_category;type:varchar(50)" json:"audit_log_category,omitempty"`
	AuditLogNotes      *string        `gorm:"column:audit_log_notes;type:varchar(500)" json:"audit_log_notes,omitempty"`
	AuditLogActorID    *uuid.UUID     `gorm:"column:audit_log_actor_id;type:uuid;index" json:"audit_log_actor_id,omitempty"`

	AuditLogCreatedAt time.Time `gorm:"column:audit_log_created_at;not null;index" json:"audit_log_created_at"`
}

func (AuditLogModel) TableName() string { return "audit_logs" }

func (m *AuditLogModel) BeforeCreate(tx *gorm.DB) error {
	if m.AuditLogID == uuid.Nil {
		m.AuditLogID = uuid.New()
	}
	if m.AuditLogCreatedAt.IsZero() {
		m.AuditLogCreatedAt = time.Now()
	}
	return nil
}
