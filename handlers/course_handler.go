package handlers

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/adiletkanalbekov5-byte/techschool/database"
	"github.com/adiletkanalbekov5-byte/techschool/models"
)

type CourseHandler struct{}

func NewCourseHandler() *CourseHandler { return &CourseHandler{} }

var (
	crsReSlug = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	crsLevels = map[string]bool{"BEG": true, "MID": true, "PRO": true}
)

type coursePayload struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Level       string   `json:"level"`
	Price       *float64 `json:"price"`
	Cover       string   `json:"cover"`
}

func (p *coursePayload) normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.Slug = strings.ToLower(strings.TrimSpace(p.Slug))
	p.Description = strings.TrimSpace(p.Description)
	p.Level = strings.ToUpper(strings.TrimSpace(p.Level))
	if p.Level == "" {
		p.Level = "BEG"
	}
	p.Cover = strings.TrimSpace(p.Cover)
}

func validateCourse(p *coursePayload) map[string]string {
	errs := map[string]string{}
	if p.Title == "" || len(p.Title) > 200 {
		errs["title"] = "title is required (<=200)"
	}
	if !crsReSlug.MatchString(p.Slug) {
		errs["slug"] = "slug must be lowercase alphanumeric with dashes"
	}
	if !crsLevels[p.Level] {
		errs["level"] = "level must be BEG, MID or PRO"
	}
	if p.Price != nil && *p.Price < 0 {
		errs["price"] = "price must not be negative"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// courseListItem: list ส่งจำนวนบทเรียน ไม่ส่งเนื้อหา (detail เท่านั้นที่ nested)
type courseListItem struct {
	models.Course
	Lessons      []models.Lesson `json:"-"`
	LessonsCount int64           `json:"lessons_count"`
}

// GET /api/courses
func (h *CourseHandler) List(c echo.Context) error {
	page, size := pageParams(c)

	tx := database.DB.Model(&models.Course{})
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_COUNT_FAILED"})
	}

	var courses []models.Course
	if err := tx.Order("id asc").Limit(size).Offset((page - 1) * size).Find(&courses).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	// นับบทเรียนทั้งหน้าในคำสั่งเดียว
	counts := map[uint]int64{}
	if len(courses) > 0 {
		ids := make([]uint, 0, len(courses))
		for _, crs := range courses {
			ids = append(ids, crs.ID)
		}
		var rows []struct {
			CourseID uint
			N        int64
		}
		if err := database.DB.Model(&models.Lesson{}).
			Select("course_id, count(*) as n").
			Where("course_id IN ?", ids).
			Group("course_id").
			Scan(&rows).Error; err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_COUNT_FAILED"})
		}
		for _, r := range rows {
			counts[r.CourseID] = r.N
		}
	}

	items := make([]courseListItem, 0, len(courses))
	for _, crs := range courses {
		items = append(items, courseListItem{Course: crs, LessonsCount: counts[crs.ID]})
	}
	return c.JSON(http.StatusOK, listEnvelope(items, page, size, total))
}

// GET /api/courses/:slug — รวมบทเรียนเรียงตาม order
func (h *CourseHandler) GetBySlug(c echo.Context) error {
	var crs models.Course
	err := database.DB.
		Preload("Lessons", func(db *gorm.DB) *gorm.DB { return db.Order("\"order\" asc, id asc") }).
		Where("slug = ?", c.Param("slug")).
		First(&crs).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if crs.Lessons == nil {
		crs.Lessons = []models.Lesson{}
	}
	return c.JSON(http.StatusOK, crs)
}

// POST /api/courses
func (h *CourseHandler) Create(c echo.Context) error {
	var p coursePayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateCourse(&p); errs != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "VALIDATION", "fields": errs})
	}

	var dup models.Course
	if err := database.DB.Where("slug = ?", p.Slug).First(&dup).Error; err == nil {
		return echo.NewHTTPError(http.StatusConflict, map[string]any{"error": "DUPLICATE"})
	}

	crs := models.Course{
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		Level:       p.Level,
		Cover:       p.Cover,
	}
	if p.Price != nil {
		crs.Price = *p.Price
	}
	if err := database.DB.Create(&crs).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusCreated, crs)
}

// PUT/PATCH /api/courses/:slug
func (h *CourseHandler) Update(c echo.Context) error {
	var crs models.Course
	if err := database.DB.Where("slug = ?", c.Param("slug")).First(&crs).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	var p coursePayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	// PATCH: ฟิลด์ที่ไม่ส่งมาให้คงค่าเดิม
	if p.Title == "" {
		p.Title = crs.Title
	}
	if p.Slug == "" {
		p.Slug = crs.Slug
	}
	if p.Description == "" {
		p.Description = crs.Description
	}
	if p.Level == "" {
		p.Level = crs.Level
	}
	if p.Cover == "" {
		p.Cover = crs.Cover
	}
	p.normalize()
	if errs := validateCourse(&p); errs != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "VALIDATION", "fields": errs})
	}

	if p.Slug != crs.Slug {
		var dup models.Course
		if err := database.DB.Where("slug = ? AND id <> ?", p.Slug, crs.ID).First(&dup).Error; err == nil {
			return echo.NewHTTPError(http.StatusConflict, map[string]any{"error": "DUPLICATE"})
		}
	}

	crs.Title = p.Title
	crs.Slug = p.Slug
	crs.Description = p.Description
	crs.Level = p.Level
	if p.Price != nil {
		crs.Price = *p.Price
	}
	crs.Cover = p.Cover
	if err := database.DB.Save(&crs).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, crs)
}

// DELETE /api/courses/:slug
func (h *CourseHandler) Delete(c echo.Context) error {
	res := database.DB.Where("slug = ?", c.Param("slug")).Delete(&models.Course{})
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}
