package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/adiletkanalbekov5-byte/techschool/database"
	"github.com/adiletkanalbekov5-byte/techschool/models"
)

type CertificateHandler struct{}

func NewCertificateHandler() *CertificateHandler { return &CertificateHandler{} }

// เลขใบรับรอง: 12 ตัวอักษรใหญ่จาก uuid (ตัด dash)
func newCertNumber() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

func certificateQuery() *gorm.DB {
	return database.DB.
		Preload("Enrollment").
		Preload("Enrollment.Student").
		Preload("Enrollment.Course")
}

// GET /api/certificates
func (h *CertificateHandler) List(c echo.Context) error {
	page, size := pageParams(c)

	var total int64
	if err := database.DB.Model(&models.Certificate{}).Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_COUNT_FAILED"})
	}
	var items []models.Certificate
	if err := certificateQuery().Order("id asc").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, listEnvelope(items, page, size, total))
}

// GET /api/certificates/:id
func (h *CertificateHandler) Get(c echo.Context) error {
	var cert models.Certificate
	if err := certificateQuery().First(&cert, "certificates.id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, cert)
}

// GET /api/certificates/by-number?q=CODE
// ไม่ส่ง q = ความผิดฝั่ง caller (400) ไม่ใช่ not found
func (h *CertificateHandler) ByNumber(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_QUERY"})
	}
	var cert models.Certificate
	if err := certificateQuery().Where("cert_number = ?", q).First(&cert).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, cert)
}

// POST /api/certificates — ออกใบรับรองให้ enrollment (ไม่ออกอัตโนมัติตอนลงเรียน)
func (h *CertificateHandler) Issue(c echo.Context) error {
	var p struct {
		EnrollmentID uint `json:"enrollment_id"`
	}
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if p.EnrollmentID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	var enr models.Enrollment
	if err := database.DB.First(&enr, p.EnrollmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	var dup models.Certificate
	if err := database.DB.Where("enrollment_id = ?", enr.ID).First(&dup).Error; err == nil {
		return echo.NewHTTPError(http.StatusConflict, map[string]any{"error": "DUPLICATE"})
	}

	// เลขซ้ำเป็นไปได้ (ยากมาก) — retry สั้น ๆ แล้วค่อยยอมแพ้
	var cert models.Certificate
	for attempt := 0; attempt < 3; attempt++ {
		cert = models.Certificate{EnrollmentID: enr.ID, CertNumber: newCertNumber(), IssuedAt: time.Now()}
		err := database.DB.Create(&cert).Error
		if err == nil {
			break
		}
		var n int64
		database.DB.Model(&models.Certificate{}).Where("cert_number = ?", cert.CertNumber).Count(&n)
		if n > 0 && attempt < 2 {
			continue
		}
		if database.DB.Where("enrollment_id = ?", enr.ID).First(&dup).Error == nil {
			// แพ้ race กับการออกซ้ำพร้อมกัน
			return echo.NewHTTPError(http.StatusConflict, map[string]any{"error": "DUPLICATE"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "CERT_NUMBER_EXHAUSTED"})
	}

	if err := certificateQuery().First(&cert, cert.ID).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusCreated, cert)
}
