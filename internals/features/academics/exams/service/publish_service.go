package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "schoolku_backend/internals/features/academics/exams/model"
	structmodel "schoolku_backend/internals/features/academics/structure/model"
	auditsvc "schoolku_backend/internals/features/audit/service"
)

// PublishTarget is the scope a publish call resolves. Each variant
// carries only the fields its scope needs.
type PublishTarget interface {
	scope() model.PublishScope
}

// ExamWide publishes every section that has at least one result for the
// exam.
type ExamWide struct{}

// GradeWide publishes every section of the grade that has at least one
// result for the exam.
type GradeWide struct {
	GradeID uuid.UUID
}

// SectionWide publishes one whole section (subject wildcard).
type SectionWide struct {
	SectionID uuid.UUID
}

// SubjectInSection publishes a single (section, subject) pair.
type SubjectInSection struct {
	SectionID uuid.UUID
	SubjectID uuid.UUID
}

func (ExamWide) scope() model.PublishScope         { return model.PublishScopeExam }
func (GradeWide) scope() model.PublishScope        { return model.PublishScopeGrade }
func (SectionWide) scope() model.PublishScope      { return model.PublishScopeSection }
func (SubjectInSection) scope() model.PublishScope { return model.PublishScopeSubject }

// publishPair is one resolved (section, subject) publication unit.
// Subject nil means the whole section.
type publishPair struct {
	SectionID uuid.UUID
	SubjectID *uuid.UUID
}

// PublishService marks exam results as visible, exactly once per
// (exam, section, subject) combination.
type PublishService struct {
	DB    *gorm.DB
	Audit *auditsvc.Logger
}

func NewPublishService(db *gorm.DB, audit *auditsvc.Logger) *PublishService {
	return &PublishService{DB: db, Audit: audit}
}

// Publish resolves the target set and inserts the missing
// published-result rows in one transaction. Already-published targets
// contribute zero. Every insert is audit-logged inside the same
// transaction, so a logging failure rolls the whole publish back.
func (s *PublishService) Publish(ctx context.Context, examID uuid.UUID, target PublishTarget, publishedBy uuid.UUID, publishedAt *time.Time) (int, error) {
	created := 0

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pairs, err := s.resolve(tx, examID, target)
		if err != nil {
			return err
		}

		at := time.Now()
		if publishedAt != nil {
			at = *publishedAt
		}

		for _, p := range pairs {
			n, err := s.upsertPublication(tx, examID, p, target.scope(), publishedBy, at)
			if err != nil {
				return err
			}
			created += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

// PreviewCount counts the exam-result rows the same target resolution
// covers, without writing anything.
func (s *PublishService) PreviewCount(ctx context.Context, examID uuid.UUID, target PublishTarget) (int64, error) {
	tx := s.DB.WithContext(ctx)

	pairs, err := s.resolve(tx, examID, target)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, p := range pairs {
		q := tx.Model(&model.ExamResultModel{}).
			Where("exam_result_exam_id = ? AND exam_result_section_id = ?", examID, p.SectionID)
		if p.SubjectID != nil {
			q = q.Where("exam_result_subject_id = ?", *p.SubjectID)
		}
		var n int64
		if err := q.Count(&n).Error; err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// resolve maps a target onto its (section, subject) publication pairs.
func (s *PublishService) resolve(tx *gorm.DB, examID uuid.UUID, target PublishTarget) ([]publishPair, error) {
	switch t := target.(type) {
	case ExamWide:
		sectionIDs, err := s.sectionsWithResults(tx, examID, nil)
		if err != nil {
			return nil, err
		}
		pairs := make([]publishPair, 0, len(sectionIDs))
		for _, id := range sectionIDs {
			pairs = append(pairs, publishPair{SectionID: id})
		}
		return pairs, nil

	case GradeWide:
		sectionIDs, err := s.sectionsWithResults(tx, examID, &t.GradeID)
		if err != nil {
			return nil, err
		}
		pairs := make([]publishPair, 0, len(sectionIDs))
		for _, id := range sectionIDs {
			pairs = append(pairs, publishPair{SectionID: id})
		}
		return pairs, nil

	case SectionWide:
		return []publishPair{{SectionID: t.SectionID}}, nil

	case SubjectInSection:
		subjectID := t.SubjectID
		return []publishPair{{SectionID: t.SectionID, SubjectID: &subjectID}}, nil

	default:
		return nil, fmt.Errorf("unknown publish target %T", target)
	}
}

// sectionsWithResults returns the distinct sections holding at least one
// result for the exam, optionally restricted to one grade.
func (s *PublishService) sectionsWithResults(tx *gorm.DB, examID uuid.UUID, gradeID *uuid.UUID) ([]uuid.UUID, error) {
	q := tx.Model(&model.ExamResultModel{}).
		Distinct("exam_result_section_id").
		Where("exam_result_exam_id = ?", examID)
	if gradeID != nil {
		q = q.Joins("JOIN class_sections ON class_sections.class_section_id = exam_results.exam_result_section_id").
			Where("class_sections.class_section_grade_id = ?", *gradeID)
	}

	var ids []uuid.UUID
	if err := q.Order("exam_result_section_id ASC").Pluck("exam_result_section_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// upsertPublication inserts the published-result row for one pair unless
// one already exists; returns 1 when a row was created, 0 when skipped.
func (s *PublishService) upsertPublication(tx *gorm.DB, examID uuid.UUID, p publishPair, scope model.PublishScope, publishedBy uuid.UUID, at time.Time) (int, error) {
	q := tx.Model(&model.PublishedResultModel{}).
		Where("published_result_exam_id = ? AND published_result_section_id = ?", examID, p.SectionID)
	if p.SubjectID == nil {
		q = q.Where("published_result_subject_id IS NULL")
	} else {
		q = q.Where("published_result_subject_id = ?", *p.SubjectID)
	}

	var existing int64
	if err := q.Count(&existing).Error; err != nil {
		return 0, err
	}
	if existing > 0 {
		return 0, nil // already published: no-op, not an error
	}

	row := model.PublishedResultModel{
		PublishedResultExamID:      examID,
		PublishedResultSectionID:   p.SectionID,
		PublishedResultSubjectID:   p.SubjectID,
		PublishedResultScope:       scope,
		PublishedResultPublishedBy: publishedBy,
		PublishedResultPublishedAt: at,
	}
	if err := tx.Create(&row).Error; err != nil {
		return 0, err
	}

	notes := fmt.Sprintf("scope=%s exam=%s section=%s", scope, examID, p.SectionID)
	if p.SubjectID != nil {
		notes += fmt.Sprintf(" subject=%s", *p.SubjectID)
	}
	if err := s.Audit.LogTx(tx, auditsvc.Entry{
		ActionType: "publish",
		EntityName: "published_results",
		EntityID:   &row.PublishedResultID,
		New:        row,
		Module:     "exams",
		Category:   "result_publication",
		Notes:      notes,
		ActorID:    &publishedBy,
	}); err != nil {
		return 0, err
	}

	return 1, nil
}

// GradeExists is a small read used by controllers to validate a grade
// target before publishing.
func (s *PublishService) GradeExists(ctx context.Context, gradeID uuid.UUID) (bool, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&structmodel.GradeModel{}).
		Where("grade_id = ?", gradeID).Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

var ErrUnknownScope = errors.New("unknown publish scope")

// TargetFromParams builds the sum-type target from the transport-level
// scope string plus optional ids. Controllers own request validation;
// this is the single translation point.
func TargetFromParams(scope string, gradeID, sectionID, subjectID *uuid.UUID) (PublishTarget, error) {
	switch model.PublishScope(scope) {
	case model.PublishScopeExam:
		return ExamWide{}, nil
	case model.PublishScopeGrade:
		if gradeID == nil {
			return nil, errors.New("grade scope requires grade_id")
		}
		return GradeWide{GradeID: *gradeID}, nil
	case model.PublishScopeSection:
		if sectionID == nil {
			return nil, errors.New("section scope requires section_id")
		}
		return SectionWide{SectionID: *sectionID}, nil
	case model.PublishScopeSubject:
		if sectionID == nil || subjectID == nil {
			return nil, errors.New("subject scope requires section_id and subject_id")
		}
		return SubjectInSection{SectionID: *sectionID, SubjectID: *subjectID}, nil
	default:
		return nil, ErrUnknownScope
	}
}
