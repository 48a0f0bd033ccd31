package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/adiletkanalbekov5-byte/techschool/database"
	"github.com/adiletkanalbekov5-byte/techschool/models"
)

type LessonHandler struct{}

func NewLessonHandler() *LessonHandler { return &LessonHandler{} }

type lessonPayload struct {
	CourseID uint   `json:"course_id"`
	Title    string `json:"title"`
	Order    *uint  `json:"order"`
	VideoURL string `json:"video_url"`
	Content  string `json:"content"`
}

func (p *lessonPayload) normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.VideoURL = strings.TrimSpace(p.VideoURL)
}

// GET /api/lessons?course_id=
func (h *LessonHandler) List(c echo.Context) error {
	page, size := pageParams(c)

	tx := database.DB.Model(&models.Lesson{})
	if cid := atoiOr(c.QueryParam("course_id"), 0); cid > 0 {
		tx = tx.Where("course_id = ?", cid)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_COUNT_FAILED"})
	}
	var items []models.Lesson
	if err := tx.Order("\"order\" asc, id asc").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, listEnvelope(items, page, size, total))
}

// GET /api/lessons/:id
func (h *LessonHandler) Get(c echo.Context) error {
	var l models.Lesson
	if err := database.DB.First(&l, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, l)
}

// POST /api/lessons
func (h *LessonHandler) Create(c echo.Context) error {
	var p lessonPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if p.Title == "" || p.CourseID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	var crs models.Course
	if err := database.DB.First(&crs, p.CourseID).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}

	l := models.Lesson{
		CourseID: p.CourseID,
		Title:    p.Title,
		VideoURL: p.VideoURL,
		Content:  p.Content,
	}
	if p.Order != nil {
		l.Order = *p.Order
	}
	if err := database.DB.Create(&l).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusCreated, l)
}

// PUT/PATCH /api/lessons/:id
func (h *LessonHandler) Update(c echo.Context) error {
	var l models.Lesson
	if err := database.DB.First(&l, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	var p lessonPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if p.Title != "" {
		l.Title = p.Title
	}
	if p.CourseID != 0 {
		var crs models.Course
		if err := database.DB.First(&crs, p.CourseID).Error; err != nil {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		l.CourseID = p.CourseID
	}
	if p.Order != nil {
		l.Order = *p.Order
	}
	if p.VideoURL != "" {
		l.VideoURL = p.VideoURL
	}
	if p.Content != "" {
		l.Content = p.Content
	}
	if err := database.DB.Save(&l).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, l)
}

// DELETE /api/lessons/:id
func (h *LessonHandler) Delete(c echo.Context) error {
	res := database.DB.Delete(&models.Lesson{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}
