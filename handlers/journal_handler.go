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

// เข้าถึง /journal ได้เฉพาะแอดมินกับครู (policy คุมที่ route แล้ว)
// ครูเห็น/แก้ได้เฉพาะ entry ของกลุ่มตัวเอง — กลุ่มครูคนอื่นเหมือนไม่มีอยู่
type JournalHandler struct{}

func NewJournalHandler() *JournalHandler { return &JournalHandler{} }

type journalPayload struct {
	StudentID uint   `json:"student_id"`
	GroupID   uint   `json:"group_id"`
	Grade     string `json:"grade"`
	Comment   string `json:"comment"`
}

func journalScope(a middlewares.Actor) *gorm.DB {
	tx := database.DB.Model(&models.JournalEntry{})
	if a.IsStaff {
		return tx
	}
	return tx.Joins("JOIN student_groups ON student_groups.id = journal_entries.group_id").
		Where("student_groups.teacher_id = ?", a.TeacherProfileID)
}

// ครูเขียนลงกลุ่มที่ไม่ใช่ของตัวเองไม่ได้
func (h *JournalHandler) ownGroup(a middlewares.Actor, groupID uint) (*models.StudentGroup, error) {
	var g models.StudentGroup
	if err := database.DB.First(&g, groupID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if !a.IsStaff && g.TeacherID != a.TeacherProfileID {
		return nil, echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	return &g, nil
}

// GET /api/journal?group_id=&student_id=
func (h *JournalHandler) List(c echo.Context) error {
	page, size := pageParams(c)
	actor := middlewares.ResolveActor(c)

	tx := journalScope(actor)
	if gid := atoiOr(c.QueryParam("group_id"), 0); gid > 0 {
		tx = tx.Where("journal_entries.group_id = ?", gid)
	}
	if sid := atoiOr(c.QueryParam("student_id"), 0); sid > 0 {
		tx = tx.Where("journal_entries.student_id = ?", sid)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_COUNT_FAILED"})
	}
	var items []models.JournalEntry
	if err := tx.Preload("Student").Preload("Group").Preload("Group.Teacher").
		Order("journal_entries.id asc").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, listEnvelope(items, page, size, total))
}

// GET /api/journal/:id
func (h *JournalHandler) Get(c echo.Context) error {
	actor := middlewares.ResolveActor(c)
	var entry models.JournalEntry
	err := journalScope(actor).Preload("Student").Preload("Group").Preload("Group.Teacher").
		First(&entry, "journal_entries.id = ?", c.Param("id")).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, entry)
}

// POST /api/journal — นักเรียนคนเดียวลงหลายรายการต่อวันได้
func (h *JournalHandler) Create(c echo.Context) error {
	actor := middlewares.ResolveActor(c)

	var p journalPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if p.StudentID == 0 || p.GroupID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	if _, err := h.ownGroup(actor, p.GroupID); err != nil {
		return err
	}
	var stu models.User
	if err := database.DB.First(&stu, p.StudentID).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}

	entry := models.JournalEntry{
		StudentID: p.StudentID,
		GroupID:   p.GroupID,
		Date:      time.Now(),
		Grade:     p.Grade,
		Comment:   p.Comment,
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	database.DB.Preload("Student").Preload("Group").Preload("Group.Teacher").First(&entry, entry.ID)
	return c.JSON(http.StatusCreated, entry)
}

// PUT/PATCH /api/journal/:id
func (h *JournalHandler) Update(c echo.Context) error {
	actor := middlewares.ResolveActor(c)
	var entry models.JournalEntry
	if err := journalScope(actor).First(&entry, "journal_entries.id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	var p journalPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if p.GroupID != 0 && p.GroupID != entry.GroupID {
		if _, err := h.ownGroup(actor, p.GroupID); err != nil {
			return err
		}
		entry.GroupID = p.GroupID
	}
	if p.StudentID != 0 {
		var stu models.User
		if err := database.DB.First(&stu, p.StudentID).Error; err != nil {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		entry.StudentID = p.StudentID
	}
	if p.Grade != "" {
		entry.Grade = p.Grade
	}
	if p.Comment != "" {
		entry.Comment = p.Comment
	}
	if err := database.DB.Save(&entry).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	database.DB.Preload("Student").Preload("Group").Preload("Group.Teacher").First(&entry, entry.ID)
	return c.JSON(http.StatusOK, entry)
}

// DELETE /api/journal/:id
func (h *JournalHandler) Delete(c echo.Context) error {
	actor := middlewares.ResolveActor(c)
	var entry models.JournalEntry
	if err := journalScope(actor).First(&entry, "journal_entries.id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if err := database.DB.Delete(&models.JournalEntry{}, entry.ID).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.NoContent(http.StatusNoContent)
}
