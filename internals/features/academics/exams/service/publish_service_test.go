package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	model "schoolku_backend/internals/features/academics/exams/model"
	structmodel "schoolku_backend/internals/features/academics/structure/model"
	auditmodel "schoolku_backend/internals/features/audit/model"
	auditsvc "schoolku_backend/internals/features/audit/service"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&structmodel.GradeModel{},
		&structmodel.ClassSectionModel{},
		&model.ExamModel{},
		&model.ExamResultModel{},
		&model.PublishedResultModel{},
		&auditmodel.AuditLogModel{},
	))
	return db
}

func newService(db *gorm.DB) *PublishService {
	return NewPublishService(db, auditsvc.NewLogger(db))
}

func seedSection(t *testing.T, db *gorm.DB, gradeID uuid.UUID, name string) structmodel.ClassSectionModel {
	t.Helper()
	s := structmodel.ClassSectionModel{ClassSectionGradeID: gradeID, ClassSectionName: name}
	require.NoError(t, db.Create(&s).Error)
	return s
}

func seedGrade(t *testing.T, db *gorm.DB, name string, level int) structmodel.GradeModel {
	t.Helper()
	g := structmodel.GradeModel{GradeName: name, GradeLevel: level}
	require.NoError(t, db.Create(&g).Error)
	return g
}

func seedResult(t *testing.T, db *gorm.DB, examID, sectionID uuid.UUID) {
	t.Helper()
	require.NoError(t, db.Create(&model.ExamResultModel{
		ExamResultStudentID: uuid.New(),
		ExamResultSubjectID: uuid.New(),
		ExamResultExamID:    examID,
		ExamResultSectionID: sectionID,
		ExamResultScore:     75,
	}).Error)
}

func countPublished(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&model.PublishedResultModel{}).Count(&n).Error)
	return n
}

func TestPublish_SectionExactlyOnce(t *testing.T) {
	db := setupDB(t)
	svc := newService(db)
	ctx := context.Background()

	grade := seedGrade(t, db, "Grade 1", 1)
	section := seedSection(t, db, grade.GradeID, "A")
	examID := uuid.New()
	seedResult(t, db, examID, section.ClassSectionID)
	by := uuid.New()

	created, err := svc.Publish(ctx, examID, SectionWide{SectionID: section.ClassSectionID}, by, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	created, err = svc.Publish(ctx, examID, SectionWide{SectionID: section.ClassSectionID}, by, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	var rows []model.PublishedResultModel
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, examID, rows[0].PublishedResultExamID)
	assert.Equal(t, section.ClassSectionID, rows[0].PublishedResultSectionID)
	assert.Nil(t, rows[0].PublishedResultSubjectID)
	assert.Equal(t, model.PublishScopeSection, rows[0].PublishedResultScope)
}

func TestPublish_GradeScopeExcludesEmptySections(t *testing.T) {
	db := setupDB(t)
	svc := newService(db)
	ctx := context.Background()

	grade := seedGrade(t, db, "Grade 1", 1)
	withResults := seedSection(t, db, grade.GradeID, "A")
	empty := seedSection(t, db, grade.GradeID, "B")
	examID := uuid.New()
	seedResult(t, db, examID, withResults.ClassSectionID)

	created, err := svc.Publish(ctx, examID, GradeWide{GradeID: grade.GradeID}, uuid.New(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	var n int64
	require.NoError(t, db.Model(&model.PublishedResultModel{}).
		Where("published_result_section_id = ?", empty.ClassSectionID).Count(&n).Error)
	assert.Equal(t, int64(0), n)
}

func TestPublish_ExamScopeCoversAllSectionsWithResults(t *testing.T) {
	db := setupDB(t)
	svc := newService(db)
	ctx := context.Background()

	g1 := seedGrade(t, db, "Grade 1", 1)
	g2 := seedGrade(t, db, "Grade 2", 2)
	s1 := seedSection(t, db, g1.GradeID, "A")
	s2 := seedSection(t, db, g2.GradeID, "A")
	seedSection(t, db, g2.GradeID, "B") // no results

	examID := uuid.New()
	seedResult(t, db, examID, s1.ClassSectionID)
	seedResult(t, db, examID, s2.ClassSectionID)

	created, err := svc.Publish(ctx, examID, ExamWide{}, uuid.New(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, created)
	assert.Equal(t, int64(2), countPublished(t, db))
}

func TestPublish_SubjectScope(t *testing.T) {
	db := setupDB(t)
	svc := newService(db)
	ctx := context.Background()

	grade := seedGrade(t, db, "Grade 1", 1)
	section := seedSection(t, db, grade.GradeID, "A")
	examID := uuid.New()
	subjectID := uuid.New()
	require.NoError(t, db.Create(&model.ExamResultModel{
		ExamResultStudentID: uuid.New(),
		ExamResultSubjectID: subjectID,
		ExamResultExamID:    examID,
		ExamResultSectionID: section.ClassSectionID,
		ExamResultScore:     88,
	}).Error)

	created, err := svc.Publish(ctx, examID,
		SubjectInSection{SectionID: section.ClassSectionID, SubjectID: subjectID}, uuid.New(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	// a second publish of the same pair is a no-op
	created, err = svc.Publish(ctx, examID,
		SubjectInSection{SectionID: section.ClassSectionID, SubjectID: subjectID}, uuid.New(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
}

func TestPublish_WritesAuditRows(t *testing.T) {
	db := setupDB(t)
	svc := newService(db)
	ctx := context.Background()

	grade := seedGrade(t, db, "Grade 1", 1)
	section := seedSection(t, db, grade.GradeID, "A")
	examID := uuid.New()
	seedResult(t, db, examID, section.ClassSectionID)

	_, err := svc.Publish(ctx, examID, SectionWide{SectionID: section.ClassSectionID}, uuid.New(), nil)
	require.NoError(t, err)

	var logs []auditmodel.AuditLogModel
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "publish", logs[0].AuditLogActionType)
	assert.Equal(t, "published_results", logs[0].AuditLogEntityName)
}

func TestPublish_RollsBackWhenAuditFails(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	grade := seedGrade(t, db, "Grade 1", 1)
	section := seedSection(t, db, grade.GradeID, "A")
	examID := uuid.New()
	seedResult(t, db, examID, section.ClassSectionID)

	// dropping the audit table makes the in-transaction log write fail
	require.NoError(t, db.Migrator().DropTable(&auditmodel.AuditLogModel{}))

	svc := newService(db)
	_, err := svc.Publish(ctx, examID, SectionWide{SectionID: section.ClassSectionID}, uuid.New(), nil)
	require.Error(t, err)

	assert.Equal(t, int64(0), countPublished(t, db))
}

func TestPreviewCount(t *testing.T) {
	db := setupDB(t)
	svc := newService(db)
	ctx := context.Background()

	grade := seedGrade(t, db, "Grade 1", 1)
	section := seedSection(t, db, grade.GradeID, "A")
	examID := uuid.New()
	seedResult(t, db, examID, section.ClassSectionID)
	seedResult(t, db, examID, section.ClassSectionID)

	n, err := svc.PreviewCount(ctx, examID, SectionWide{SectionID: section.ClassSectionID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// preview writes nothing
	assert.Equal(t, int64(0), countPublished(t, db))
}

func TestTargetFromParams(t *testing.T) {
	gid, sid, subid := uuid.New(), uuid.New(), uuid.New()

	tgt, err := TargetFromParams("exam", nil, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, ExamWide{}, tgt)

	tgt, err = TargetFromParams("grade", &gid, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, GradeWide{GradeID: gid}, tgt)

	_, err = TargetFromParams("grade", nil, nil, nil)
	assert.Error(t, err)

	tgt, err = TargetFromParams("section", nil, &sid, nil)
	require.NoError(t, err)
	assert.Equal(t, SectionWide{SectionID: sid}, tgt)

	tgt, err = TargetFromParams("subject", nil, &sid, &subid)
	require.NoError(t, err)
	assert.Equal(t, SubjectInSection{SectionID: sid, SubjectID: subid}, tgt)

	_, err = TargetFromParams("bogus", nil, nil, nil)
	assert.ErrorIs(t, err, ErrUnknownScope)
}
