package models

import "time"

// Profile คือ role tag แบบหยาบ แยกจากตารางโปรไฟล์ครู/ผอ.
// เก็บไว้ตามข้อมูลเดิม — การเช็คสิทธิ์ไม่อ่านค่านี้ (ดู middlewares/policy.go)
type Profile struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	UserID uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	Role   string `json:"role" gorm:"size:20;not null"` // "admin" | "teacher" | "director"
}

type TeacherProfile struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	User      User      `json:"user" gorm:"constraint:OnDelete:CASCADE"`
	Bio       string    `json:"bio" gorm:"type:text"`
	Phone     string    `json:"phone" gorm:"size:20"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type DirectorProfile struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	User      User      `json:"user" gorm:"constraint:OnDelete:CASCADE"`
	Phone     string    `json:"phone" gorm:"size:20"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
