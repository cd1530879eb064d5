package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dto "schoolku_backend/internals/features/academics/attendance/dto"
	model "schoolku_backend/internals/features/academics/attendance/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type AttendanceHandler struct {
	DB *gorm.DB
}

// ====== BULK MARK
// POST /api/a/attendance/bulk
// Upserts one section's register for one date. Re-marking a student on
// the same day overwrites the earlier status.
func (h *AttendanceHandler) BulkMark(c *fiber.Ctx) error {
	var body dto.BulkMarkAttendanceDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	date, err := time.Parse("2006-01-02", body.Date)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
	}

	userID, err := helperAuth.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	rows := make([]model.AttendanceRecordModel, 0, len(body.Entries))
	for _, e := range body.Entries {
		rows = append(rows, model.AttendanceRecordModel{
			AttendanceStudentID: e.StudentID,
			AttendanceSectionID: body.SectionID,
			AttendanceDate:      date,
			AttendanceStatus:    model.AttendanceStatus(e.Status),
			AttendanceNote:      e.Note,
			AttendanceMarkedBy:  userID,
		})
	}

	err = h.DB.WithContext(c.Context()).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "attendance_student_id"},
				{Name: "attendance_section_id"},
				{Name: "attendance_date"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"attendance_status",
				"attendance_note",
				"attendance_marked_by",
				"attendance_updated_at",
			}),
		}).
		Create(&rows).Error
	if err != nil {
		if helper.IsForeignKeyViolation(err) {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Unknown student or section")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save attendance")
	}
	return helper.JsonOK(c, "Attendance saved", fiber.Map{"saved": len(rows)})
}

// ====== REGISTER
// GET /api/a/attendance?section_id=...&date=YYYY-MM-DD
func (h *AttendanceHandler) ListBySectionDate(c *fiber.Ctx) error {
	sectionID, err := uuid.Parse(c.Query("section_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "section_id is required")
	}
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "date is required, expected YYYY-MM-DD")
	}

	var records []model.AttendanceRecordModel
	if err := h.DB.WithContext(c.Context()).
		Where("attendance_section_id = ? AND attendance_date = ?", sectionID, date).
		Order("attendance_student_id ASC").
		Find(&records).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list attendance")
	}
	return helper.JsonOK(c, "OK", records)
}

// ====== SUMMARY
// GET /api/a/attendance/summary?student_id=...&from=YYYY-MM-DD&to=YYYY-MM-DD
// Per-status counts for one student over a date range.
func (h *AttendanceHandler) Summary(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Query("student_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student_id is required")
	}

	q := h.DB.WithContext(c.Context()).Model(&model.AttendanceRecordModel{}).
		Where("attendance_student_id = ?", studentID)
	if s := c.Query("from"); s != "" {
		from, err := time.Parse("2006-01-02", s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid from date")
		}
		q = q.Where("attendance_date >= ?", from)
	}
	if s := c.Query("to"); s != "" {
		to, err := time.Parse("2006-01-02", s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid to date")
		}
		q = q.Where("attendance_date <= ?", to)
	}

	type statusCount struct {
		Status string
		N      int64
	}
	var counts []statusCount
	if err := q.Select("attendance_status AS status, COUNT(*) AS n").
		Group("attendance_status").
		Scan(&counts).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build summary")
	}

	out := dto.AttendanceSummaryResponse{StudentID: studentID}
	for _, sc := range counts {
		switch model.AttendanceStatus(sc.Status) {
		case model.AttendanceStatusPresent:
			out.Present = sc.N
		case model.AttendanceStatusAbsent:
			out.Absent = sc.N
		case model.AttendanceStatusLate:
			out.Late = sc.N
		case model.AttendanceStatusExcused:
			out.Excused = sc.N
		}
	}
	return helper.JsonOK(c, "OK", out)
}
