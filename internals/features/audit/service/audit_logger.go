package service

import (
	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	model "schoolku_backend/internals/features/audit/model"
)

// Entry is one audit-log write. Old/New are marshalled to JSON columns.
type Entry struct {
	ActionType string
	EntityName string
	EntityID   *uuid.UUID
	Old        interface{}
	New        interface{}
	Module     string
	Category   string
	Notes      string
	ActorID    *uuid.UUID
}

type Logger struct {
	DB *gorm.DB
}

func NewLogger(db *gorm.DB) *Logger {
	return &Logger{DB: db}
}

// Log writes the entry on the logger's own connection.
func (l *Logger) Log(e Entry) error {
	return l.LogTx(l.DB, e)
}

// LogTx writes the entry on the given handle. Callers that must keep the
// audit row atomic with a business write pass their transaction here.
func (l *Logger) LogTx(tx *gorm.DB, e Entry) error {
	m := model.AuditLogModel{
		AuditLogActionType: e.ActionType,
		AuditLogEntityName: e.EntityName,
		AuditLogEntityID:   e.EntityID,
		AuditLogActorID:    e.ActorID,
	}
	if e.Module != "" {
		m.AuditLogModule = &e.Module
	}
	if e.Category != "" {
		m.AuditLogCategory = &e.Category
	}
	if e.Notes != "" {
		m.AuditLogNotes = &e.Notes
	}
	if e.Old != nil {
		if b, err := sonic.Marshal(e.Old); err == nil {
			m.AuditLogOldValue = datatypes.JSON(b)
		}
	}
	if e.New != nil {
		if b, err := sonic.Marshal(e.New); err == nil {
			m.AuditLogNewValue = datatypes.JSON(b)
		}
	}
	return tx.Create(&m).Error
}
