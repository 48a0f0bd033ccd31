package middlewares

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/adiletkanalbekov5-byte/techschool/database"
	"github.com/adiletkanalbekov5-byte/techschool/models"
)

// Actor คือผู้เรียกหลัง auth — อ่านจาก DB สดทุก request
// (JWT เก็บ role ไว้แค่เป็น snapshot แสดงผล ไม่ใช้ตัดสินสิทธิ์)
type Actor struct {
	UserID           uint
	IsStaff          bool
	TeacherProfileID uint // 0 = ไม่มีโปรไฟล์ครู
	HasDirector      bool
}

func (a Actor) IsTeacher() bool { return a.TeacherProfileID != 0 }

// ResolveActor โหลด actor จาก user_id ใน context (แนบโดย RequireAuth/OptionalAuth)
// คืน zero Actor ถ้าไม่ได้ล็อกอิน
func ResolveActor(c echo.Context) Actor {
	if v, ok := c.Get("actor").(Actor); ok {
		return v
	}
	uid, _ := c.Get("user_id").(uint)
	if uid == 0 {
		return Actor{}
	}
	a := Actor{UserID: uid}
	var u models.User
	if err := database.DB.First(&u, uid).Error; err == nil {
		a.IsStaff = u.IsStaff
	}
	var tp models.TeacherProfile
	if err := database.DB.Select("id").Where("user_id = ?", uid).First(&tp).Error; err == nil {
		a.TeacherProfileID = tp.ID
	}
	var n int64
	database.DB.Model(&models.DirectorProfile{}).Where("user_id = ?", uid).Count(&n)
	a.HasDirector = n > 0
	c.Set("actor", a)
	return a
}

// RoleOf สรุป role หนึ่งค่าไว้ใส่ JWT ตอน login
func RoleOf(db *gorm.DB, u *models.User) string {
	if u.IsStaff {
		return "admin"
	}
	var n int64
	db.Model(&models.DirectorProfile{}).Where("user_id = ?", u.ID).Count(&n)
	if n > 0 {
		return "director"
	}
	db.Model(&models.TeacherProfile{}).Where("user_id = ?", u.ID).Count(&n)
	if n > 0 {
		return "teacher"
	}
	return "student"
}

// Allow คือ policy กลาง (actor, resource, action) -> อนุญาต/ไม่
// กติกานอกเหนือจากนี้คือ default permissive สำหรับผู้ที่ล็อกอินแล้ว
func Allow(a Actor, resource, action string) bool {
	switch resource {
	case "journal":
		return a.IsStaff || a.IsTeacher()
	case "videos":
		if action == "create" {
			return a.IsTeacher()
		}
		return true
	case "applications", "users":
		return a.IsStaff
	}
	return true
}

// RequirePermission วาง policy ไว้หน้า handler แทนการเช็คกระจายรายจุด
func RequirePermission(resource, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !Allow(ResolveActor(c), resource, action) {
				return echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
			}
			return next(c)
		}
	}
}
