package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/adiletkanalbekov5-byte/techschool/database"
	"github.com/adiletkanalbekov5-byte/techschool/models"
)

type ApplicationHandler struct{}

func NewApplicationHandler() *ApplicationHandler { return &ApplicationHandler{} }

type applicationPayload struct {
	FullName string `json:"full_name"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Course   string `json:"course"`
	Message  string `json:"message"`
}

func (p *applicationPayload) normalize() {
	p.FullName = strings.Join(strings.Fields(p.FullName), " ")
	p.Email = strings.TrimSpace(strings.ToLower(p.Email))
	p.Phone = strings.TrimSpace(p.Phone)
	p.Course = strings.TrimSpace(p.Course)
	p.Message = strings.TrimSpace(p.Message)
}

// POST /api/applications — สาธารณะ; ถ้าแนบ token มาด้วยจะผูกบัญชีให้
func (h *ApplicationHandler) Create(c echo.Context) error {
	var p applicationPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if p.FullName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	if err := validate.Struct(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "VALIDATION", "fields": map[string]string{"email": "invalid email"}})
	}

	app := models.Application{
		FullName: p.FullName,
		Email:    p.Email,
		Phone:    p.Phone,
		Course:   p.Course,
		Message:  p.Message,
	}
	if uid := authedUserID(c); uid != 0 {
		app.UserID = &uid
	}
	if err := database.DB.Create(&app).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusCreated, app)
}

// GET /api/admin/applications — ใหม่สุดก่อน
func (h *ApplicationHandler) List(c echo.Context) error {
	page, size := pageParams(c)

	var total int64
	if err := database.DB.Model(&models.Application{}).Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_COUNT_FAILED"})
	}
	var items []models.Application
	if err := database.DB.Order("created_at desc, id desc").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, listEnvelope(items, page, size, total))
}

// GET /api/admin/applications/:id
func (h *ApplicationHandler) Get(c echo.Context) error {
	var app models.Application
	if err := database.DB.First(&app, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, app)
}

// PUT/PATCH /api/admin/applications/:id — immutable สำหรับคนทั่วไป แอดมินแก้ได้
func (h *ApplicationHandler) Update(c echo.Context) error {
	var app models.Application
	if err := database.DB.First(&app, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	var p applicationPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if p.FullName != "" {
		app.FullName = p.FullName
	}
	if p.Email != "" {
		if err := validate.Var(p.Email, "email"); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "VALIDATION", "fields": map[string]string{"email": "invalid email"}})
		}
		app.Email = p.Email
	}
	if p.Phone != "" {
		app.Phone = p.Phone
	}
	if p.Course != "" {
		app.Course = p.Course
	}
	if p.Message != "" {
		app.Message = p.Message
	}
	if err := database.DB.Save(&app).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, app)
}

// DELETE /api/admin/applications/:id
func (h *ApplicationHandler) Delete(c echo.Context) error {
	res := database.DB.Delete(&models.Application{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}
