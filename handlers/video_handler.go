package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/adiletkanalbekov5-byte/techschool/database"
	"github.com/adiletkanalbekov5-byte/techschool/middlewares"
	"github.com/adiletkanalbekov5-byte/techschool/models"
)

type VideoHandler struct{}

func NewVideoHandler() *VideoHandler { return &VideoHandler{} }

type videoPayload struct {
	CourseID  uint   `json:"course_id"`
	Title     string `json:"title"`
	VideoFile string `json:"video_file"`
	// teacher_id จาก client ถูกเมินเสมอ — บังคับเป็นโปรไฟล์ของผู้เรียก
	TeacherID uint `json:"teacher_id"`
}

// GET /api/videos?course_id= (อ่านได้โดยไม่ล็อกอิน)
func (h *VideoHandler) List(c echo.Context) error {
	page, size := pageParams(c)

	tx := database.DB.Model(&models.VideoLesson{})
	if cid := atoiOr(c.QueryParam("course_id"), 0); cid > 0 {
		tx = tx.Where("course_id = ?", cid)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_COUNT_FAILED"})
	}
	var items []models.VideoLesson
	if err := tx.Preload("Teacher").Preload("Teacher.User").
		Order("id asc").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, listEnvelope(items, page, size, total))
}

// GET /api/videos/:id
func (h *VideoHandler) Get(c echo.Context) error {
	var v models.VideoLesson
	if err := database.DB.Preload("Teacher").Preload("Teacher.User").
		First(&v, "video_lessons.id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, v)
}

// POST /api/videos — ต้องมี TeacherProfile เท่านั้น
func (h *VideoHandler) Create(c echo.Context) error {
	actor := middlewares.ResolveActor(c)
	if !actor.IsTeacher() {
		return echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "NO_TEACHER_PROFILE"})
	}

	var p videoPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.Title = strings.TrimSpace(p.Title)
	p.VideoFile = strings.TrimSpace(p.VideoFile)
	if p.Title == "" || p.VideoFile == "" || p.CourseID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	var crs models.Course
	if err := database.DB.First(&crs, p.CourseID).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}

	teacherID := actor.TeacherProfileID
	v := models.VideoLesson{
		CourseID:  p.CourseID,
		Title:     p.Title,
		VideoFile: p.VideoFile,
		TeacherID: &teacherID,
	}
	if err := database.DB.Create(&v).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	database.DB.Preload("Teacher").Preload("Teacher.User").First(&v, v.ID)
	return c.JSON(http.StatusCreated, v)
}

// PUT/PATCH /api/videos/:id
func (h *VideoHandler) Update(c echo.Context) error {
	var v models.VideoLesson
	if err := database.DB.First(&v, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	var p videoPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if t := strings.TrimSpace(p.Title); t != "" {
		v.Title = t
	}
	if f := strings.TrimSpace(p.VideoFile); f != "" {
		v.VideoFile = f
	}
	if p.CourseID != 0 {
		var crs models.Course
		if err := database.DB.First(&crs, p.CourseID).Error; err != nil {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		v.CourseID = p.CourseID
	}
	if err := database.DB.Save(&v).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	database.DB.Preload("Teacher").Preload("Teacher.User").First(&v, v.ID)
	return c.JSON(http.StatusOK, v)
}

// DELETE /api/videos/:id
func (h *VideoHandler) Delete(c echo.Context) error {
	res := database.DB.Delete(&models.VideoLesson{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}
