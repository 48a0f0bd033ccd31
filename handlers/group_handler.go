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

type GroupHandler struct{}

func NewGroupHandler() *GroupHandler { return &GroupHandler{} }

type groupPayload struct {
	Name       string `json:"name"`
	TeacherID  uint   `json:"teacher_id"`
	StudentIDs []uint `json:"student_ids"`
}

type groupResponse struct {
	models.StudentGroup
	StudentIDs []uint `json:"student_ids_read"`
}

func groupToResponse(g models.StudentGroup) groupResponse {
	ids := make([]uint, 0, len(g.Students))
	for _, s := range g.Students {
		ids = append(ids, s.ID)
	}
	return groupResponse{StudentGroup: g, StudentIDs: ids}
}

// กลุ่มที่ actor มองเห็น: แอดมินทั้งหมด, ครูเฉพาะของตัวเอง, คนอื่นไม่เห็นเลย
// คืน (query, visible) — visible=false คือเซ็ตว่าง
func groupScope(a middlewares.Actor) (*gorm.DB, bool) {
	tx := database.DB.Model(&models.StudentGroup{})
	if a.IsStaff {
		return tx, true
	}
	if a.IsTeacher() {
		return tx.Where("teacher_id = ?", a.TeacherProfileID), true
	}
	return tx, false
}

// GET /api/groups
func (h *GroupHandler) List(c echo.Context) error {
	page, size := pageParams(c)
	actor := middlewares.ResolveActor(c)

	tx, visible := groupScope(actor)
	if !visible {
		return c.JSON(http.StatusOK, listEnvelope([]groupResponse{}, page, size, 0))
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_COUNT_FAILED"})
	}
	var groups []models.StudentGroup
	if err := tx.Preload("Teacher").Preload("Teacher.User").Preload("Students").
		Order("id asc").Limit(size).Offset((page - 1) * size).Find(&groups).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	items := make([]groupResponse, 0, len(groups))
	for _, g := range groups {
		items = append(items, groupToResponse(g))
	}
	return c.JSON(http.StatusOK, listEnvelope(items, page, size, total))
}

// GET /api/groups/:id — นอก scope ตอบ 404 ไม่ใช่ 403 (ไม่ leak ว่ามีอยู่)
func (h *GroupHandler) Get(c echo.Context) error {
	actor := middlewares.ResolveActor(c)
	tx, visible := groupScope(actor)
	if !visible {
		return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}

	var g models.StudentGroup
	if err := tx.Preload("Teacher").Preload("Teacher.User").Preload("Students").
		First(&g, "student_groups.id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, groupToResponse(g))
}

// POST /api/groups — ไม่ส่ง teacher_id มา = กลุ่มของครูผู้เรียกเอง
func (h *GroupHandler) Create(c echo.Context) error {
	actor := middlewares.ResolveActor(c)
	if !actor.IsStaff && !actor.IsTeacher() {
		return echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}

	var p groupPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	teacherID := p.TeacherID
	if teacherID == 0 {
		teacherID = actor.TeacherProfileID
	}
	if teacherID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	// ครูสร้างแทนครูคนอื่นไม่ได้
	if !actor.IsStaff && teacherID != actor.TeacherProfileID {
		return echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}
	var tp models.TeacherProfile
	if err := database.DB.First(&tp, teacherID).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}

	g := models.StudentGroup{Name: p.Name, TeacherID: teacherID}
	if err := database.DB.Create(&g).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if len(p.StudentIDs) > 0 {
		if err := h.replaceStudents(&g, p.StudentIDs); err != nil {
			return err
		}
	}
	database.DB.Preload("Teacher").Preload("Teacher.User").Preload("Students").First(&g, g.ID)
	return c.JSON(http.StatusCreated, groupToResponse(g))
}

// PUT/PATCH /api/groups/:id — student_ids แทนที่สมาชิกทั้งชุด
func (h *GroupHandler) Update(c echo.Context) error {
	actor := middlewares.ResolveActor(c)
	tx, visible := groupScope(actor)
	if !visible {
		return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}

	var g models.StudentGroup
	if err := tx.First(&g, "student_groups.id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	var p groupPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if name := strings.TrimSpace(p.Name); name != "" {
		g.Name = name
	}
	if p.TeacherID != 0 && p.TeacherID != g.TeacherID {
		// ย้ายกลุ่มให้ครูคนอื่นทำได้เฉพาะแอดมิน
		if !actor.IsStaff {
			return echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
		}
		var tp models.TeacherProfile
		if err := database.DB.First(&tp, p.TeacherID).Error; err != nil {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		g.TeacherID = p.TeacherID
	}
	if err := database.DB.Save(&g).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if p.StudentIDs != nil {
		if err := h.replaceStudents(&g, p.StudentIDs); err != nil {
			return err
		}
	}
	database.DB.Preload("Teacher").Preload("Teacher.User").Preload("Students").First(&g, g.ID)
	return c.JSON(http.StatusOK, groupToResponse(g))
}

// DELETE /api/groups/:id
func (h *GroupHandler) Delete(c echo.Context) error {
	actor := middlewares.ResolveActor(c)
	tx, visible := groupScope(actor)
	if !visible {
		return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}

	var g models.StudentGroup
	if err := tx.First(&g, "student_groups.id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if err := database.DB.Select("Students").Delete(&g).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *GroupHandler) replaceStudents(g *models.StudentGroup, ids []uint) error {
	var students []models.User
	if len(ids) > 0 {
		if err := database.DB.Find(&students, ids).Error; err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
		}
		if len(students) != len(ids) {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
	}
	if err := database.DB.Model(g).Association("Students").Replace(students); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return nil
}
