package models

import "time"

// ใบสมัคร/คำขอติดต่อจากหน้าเว็บ — สร้างได้โดยไม่ล็อกอิน
type Application struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    *uint     `json:"user_id"` // ผูกบัญชีถ้าผู้ส่งล็อกอินอยู่
	FullName  string    `json:"full_name" gorm:"size:200;not null"`
	Email     string    `json:"email" gorm:"size:120;not null"`
	Phone     string    `json:"phone" gorm:"size:50"`
	Course    string    `json:"course" gorm:"size:200"` // ชื่อคอร์สแบบ free text
	Message   string    `json:"message" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}
