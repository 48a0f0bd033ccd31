package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/adiletkanalbekov5-byte/techschool/database"
	"github.com/adiletkanalbekov5-byte/techschool/models"
)

// CRUD บัญชีผู้ใช้ดิบ ๆ สำหรับแอดมิน
// ตั้งใจไม่มี guard กันลบตัวเอง/ลบแอดมินคนสุดท้าย — เป็นหน้าที่ของผู้ใช้เครื่องมือ
type AdminUserHandler struct{}

func NewAdminUserHandler() *AdminUserHandler { return &AdminUserHandler{} }

type adminUserPayload struct {
	Username string `json:"username"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password"`
	IsStaff  *bool  `json:"is_staff"`
	IsActive *bool  `json:"is_active"`
}

// GET /api/admin/users
func (h *AdminUserHandler) List(c echo.Context) error {
	page, size := pageParams(c)

	tx := database.DB.Model(&models.User{})
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		like := "%" + q + "%"
		tx = tx.Where("username LIKE ? OR email LIKE ?", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_COUNT_FAILED"})
	}
	var items []models.User
	if err := tx.Order("id asc").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, listEnvelope(items, page, size, total))
}

// GET /api/admin/users/:id
func (h *AdminUserHandler) Get(c echo.Context) error {
	var u models.User
	if err := database.DB.First(&u, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, u)
}

// POST /api/admin/users — ผ่าน hook เดียวกับ register: ได้โปรไฟล์ตาม is_staff
func (h *AdminUserHandler) Create(c echo.Context) error {
	var p adminUserPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.Username = strings.TrimSpace(p.Username)
	p.Email = strings.TrimSpace(strings.ToLower(p.Email))
	if p.Username == "" || p.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	if err := validate.Struct(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "VALIDATION", "fields": map[string]string{"email": "invalid email"}})
	}

	var dup models.User
	if err := database.DB.Where("username = ?", p.Username).First(&dup).Error; err == nil {
		return echo.NewHTTPError(http.StatusConflict, map[string]any{"error": "DUPLICATE"})
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	u := models.User{
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if p.IsStaff != nil {
		u.IsStaff = *p.IsStaff
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	if err := CreateAccount(database.DB, &u); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusCreated, u)
}

// PUT/PATCH /api/admin/users/:id
// แก้ is_staff ที่นี่ไม่แตะโปรไฟล์เดิม — กติกาโปรไฟล์ประเมินครั้งเดียวตอนสร้าง
func (h *AdminUserHandler) Update(c echo.Context) error {
	var u models.User
	if err := database.DB.First(&u, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	var p adminUserPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if name := strings.TrimSpace(p.Username); name != "" && name != u.Username {
		var dup models.User
		if err := database.DB.Where("username = ? AND id <> ?", name, u.ID).First(&dup).Error; err == nil {
			return echo.NewHTTPError(http.StatusConflict, map[string]any{"error": "DUPLICATE"})
		}
		u.Username = name
	}
	if email := strings.TrimSpace(strings.ToLower(p.Email)); email != "" {
		if err := validate.Var(email, "email"); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "VALIDATION", "fields": map[string]string{"email": "invalid email"}})
		}
		u.Email = email
	}
	if p.Password != "" {
		hash, _ := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
		u.PasswordHash = string(hash)
	}
	if p.IsStaff != nil {
		u.IsStaff = *p.IsStaff
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	if err := database.DB.Save(&u).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, u)
}

// DELETE /api/admin/users/:id — โปรไฟล์/enrollment หายตาม cascade
func (h *AdminUserHandler) Delete(c echo.Context) error {
	res := database.DB.Delete(&models.User{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}
