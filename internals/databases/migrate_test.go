package database

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// The whole schema must migrate on sqlite, since that is what every
// service test runs on. Column defaults must stay portable: a
// postgres-only expression like now() breaks the generated DDL here.
func TestMigrateAll_SQLite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, MigrateAll(db))

	for _, table := range []string{
		"users", "roles", "permissions", "role_permissions", "user_roles",
		"academic_years", "grades", "class_sections", "subjects",
		"students", "enrollments", "attendance_records",
		"exams", "exam_results", "published_results",
		"fee_structures", "student_bills", "payments", "payment_receipts",
		"audit_logs",
	} {
		require.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
}
