package handlers

import (
	"gorm.io/gorm"

	"github.com/adiletkanalbekov5-byte/techschool/models"
)

// CreateAccount สร้าง user พร้อมโปรไฟล์บทบาทหนึ่งอันในทรานแซกชันเดียว:
// is_staff -> DirectorProfile, ไม่ใช่ -> TeacherProfile
// กติกานี้ประเมินครั้งเดียวตอนสร้างเท่านั้น — แก้ is_staff ทีหลังไม่มีผลกับโปรไฟล์
func CreateAccount(db *gorm.DB, u *models.User) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		if u.IsStaff {
			return tx.Create(&models.DirectorProfile{UserID: u.ID}).Error
		}
		return tx.Create(&models.TeacherProfile{UserID: u.ID}).Error
	})
}
