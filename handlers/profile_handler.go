package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/adiletkanalbekov5-byte/techschool/database"
	"github.com/adiletkanalbekov5-byte/techschool/models"
)

// โปรไฟล์ครู/ผอ. ปกติเกิดจาก hook ตอนสร้างบัญชี (ดู account.go)
// endpoint พวกนี้มีไว้แก้ contact fields และงานแอดมินตรง ๆ

type TeacherProfileHandler struct{}

func NewTeacherProfileHandler() *TeacherProfileHandler { return &TeacherProfileHandler{} }

type teacherProfilePayload struct {
	UserID uint   `json:"user_id"`
	Bio    string `json:"bio"`
	Phone  string `json:"phone"`
}

// GET /api/teachers
func (h *TeacherProfileHandler) List(c echo.Context) error {
	page, size := pageParams(c)

	var total int64
	if err := database.DB.Model(&models.TeacherProfile{}).Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_COUNT_FAILED"})
	}
	var items []models.TeacherProfile
	if err := database.DB.Preload("User").Order("id asc").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, listEnvelope(items, page, size, total))
}

// GET /api/teachers/:id
func (h *TeacherProfileHandler) Get(c echo.Context) error {
	var tp models.TeacherProfile
	if err := database.DB.Preload("User").First(&tp, "teacher_profiles.id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, tp)
}

// POST /api/teachers — สำหรับเคสที่สร้างนอก hook (เช่น ผูกบัญชีเก่า)
func (h *TeacherProfileHandler) Create(c echo.Context) error {
	var p teacherProfilePayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if p.UserID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	var u models.User
	if err := database.DB.First(&u, p.UserID).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	var dup models.TeacherProfile
	if err := database.DB.Where("user_id = ?", p.UserID).First(&dup).Error; err == nil {
		return echo.NewHTTPError(http.StatusConflict, map[string]any{"error": "DUPLICATE"})
	}

	tp := models.TeacherProfile{UserID: p.UserID, Bio: strings.TrimSpace(p.Bio), Phone: strings.TrimSpace(p.Phone)}
	if err := database.DB.Create(&tp).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	database.DB.Preload("User").First(&tp, tp.ID)
	return c.JSON(http.StatusCreated, tp)
}

// PUT/PATCH /api/teachers/:id — แก้ได้เฉพาะ contact fields
func (h *TeacherProfileHandler) Update(c echo.Context) error {
	var tp models.TeacherProfile
	if err := database.DB.First(&tp, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	var p teacherProfilePayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if p.Bio != "" {
		tp.Bio = strings.TrimSpace(p.Bio)
	}
	if p.Phone != "" {
		tp.Phone = strings.TrimSpace(p.Phone)
	}
	if err := database.DB.Save(&tp).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	database.DB.Preload("User").First(&tp, tp.ID)
	return c.JSON(http.StatusOK, tp)
}

// DELETE /api/teachers/:id
func (h *TeacherProfileHandler) Delete(c echo.Context) error {
	res := database.DB.Delete(&models.TeacherProfile{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}

type DirectorProfileHandler struct{}

func NewDirectorProfileHandler() *DirectorProfileHandler { return &DirectorProfileHandler{} }

type directorProfilePayload struct {
	UserID uint   `json:"user_id"`
	Phone  string `json:"phone"`
}

// GET /api/directors
func (h *DirectorProfileHandler) List(c echo.Context) error {
	page, size := pageParams(c)

	var total int64
	if err := database.DB.Model(&models.DirectorProfile{}).Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_COUNT_FAILED"})
	}
	var items []models.DirectorProfile
	if err := database.DB.Preload("User").Order("id asc").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, listEnvelope(items, page, size, total))
}

// GET /api/directors/:id
func (h *DirectorProfileHandler) Get(c echo.Context) error {
	var dp models.DirectorProfile
	if err := database.DB.Preload("User").First(&dp, "director_profiles.id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, dp)
}

// POST /api/directors
func (h *DirectorProfileHandler) Create(c echo.Context) error {
	var p directorProfilePayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if p.UserID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	var u models.User
	if err := database.DB.First(&u, p.UserID).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	var dup models.DirectorProfile
	if err := database.DB.Where("user_id = ?", p.UserID).First(&dup).Error; err == nil {
		return echo.NewHTTPError(http.StatusConflict, map[string]any{"error": "DUPLICATE"})
	}

	dp := models.DirectorProfile{UserID: p.UserID, Phone: strings.TrimSpace(p.Phone)}
	if err := database.DB.Create(&dp).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	database.DB.Preload("User").First(&dp, dp.ID)
	return c.JSON(http.StatusCreated, dp)
}

// PUT/PATCH /api/directors/:id
func (h *DirectorProfileHandler) Update(c echo.Context) error {
	var dp models.DirectorProfile
	if err := database.DB.First(&dp, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	var p directorProfilePayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if p.Phone != "" {
		dp.Phone = strings.TrimSpace(p.Phone)
	}
	if err := database.DB.Save(&dp).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	database.DB.Preload("User").First(&dp, dp.ID)
	return c.JSON(http.StatusOK, dp)
}

// DELETE /api/directors/:id
func (h *DirectorProfileHandler) Delete(c echo.Context) error {
	res := database.DB.Delete(&models.DirectorProfile{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}
