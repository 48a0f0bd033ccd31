package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/adiletkanalbekov5-byte/techschool/database"
	"github.com/adiletkanalbekov5-byte/techschool/middlewares"
	"github.com/adiletkanalbekov5-byte/techschool/models"
)

type EnrollmentHandler struct{}

func NewEnrollmentHandler() *EnrollmentHandler { return &EnrollmentHandler{} }

type enrollPayload struct {
	CourseID uint `json:"course_id"`
}

func enrollmentQuery() *gorm.DB {
	return database.DB.Preload("Student").Preload("Course")
}

// GET /api/enrollments — นักเรียนเห็นเฉพาะของตัวเอง; แอดมินเห็นทั้งหมด
func (h *EnrollmentHandler) List(c echo.Context) error {
	page, size := pageParams(c)
	actor := middlewares.ResolveActor(c)

	tx := database.DB.Model(&models.Enrollment{})
	if !actor.IsStaff {
		tx = tx.Where("student_id = ?", actor.UserID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_COUNT_FAILED"})
	}
	var items []models.Enrollment
	if err := tx.Preload("Student").Preload("Course").
		Order("id asc").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, listEnvelope(items, page, size, total))
}

// POST /api/enrollments — idempotent: คู่ (student, course) เดิมคืน record เดิม
// student มาจาก token เสมอ client ตั้งเองไม่ได้
func (h *EnrollmentHandler) Create(c echo.Context) error {
	var p enrollPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if p.CourseID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	uid := authedUserID(c)

	var crs models.Course
	if err := database.DB.First(&crs, p.CourseID).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}

	var existing models.Enrollment
	err := enrollmentQuery().Where("student_id = ? AND course_id = ?", uid, p.CourseID).First(&existing).Error
	if err == nil {
		return c.JSON(http.StatusOK, existing)
	}
	if err != gorm.ErrRecordNotFound {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	enr := models.Enrollment{
		StudentID:   uid,
		CourseID:    p.CourseID,
		Active:      true,
		PurchasedAt: time.Now(),
	}
	if err := database.DB.Create(&enr).Error; err != nil {
		// แพ้ race กับ request ซ้ำ — unique constraint ตัดสินให้ อ่านแถวที่ชนะกลับมา
		if err2 := enrollmentQuery().Where("student_id = ? AND course_id = ?", uid, p.CourseID).First(&existing).Error; err2 == nil {
			return c.JSON(http.StatusOK, existing)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if err := enrollmentQuery().First(&enr, enr.ID).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusCreated, enr)
}

// GET /api/enrollments/:id
func (h *EnrollmentHandler) Get(c echo.Context) error {
	var enr models.Enrollment
	if err := enrollmentQuery().First(&enr, "enrollments.id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, enr)
}

// PUT/PATCH /api/enrollments/:id — แก้ได้เฉพาะ active
func (h *EnrollmentHandler) Update(c echo.Context) error {
	var enr models.Enrollment
	if err := database.DB.First(&enr, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	var p struct {
		Active *bool `json:"active"`
	}
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if p.Active != nil {
		enr.Active = *p.Active
	}
	if err := database.DB.Save(&enr).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if err := enrollmentQuery().First(&enr, enr.ID).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, enr)
}

// DELETE /api/enrollments/:id
func (h *EnrollmentHandler) Delete(c echo.Context) error {
	res := database.DB.Delete(&models.Enrollment{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}
