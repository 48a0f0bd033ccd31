package models

import "time"

type Enrollment struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	StudentID   uint      `json:"student_id" gorm:"not null;uniqueIndex:uniq_student_course"`
	Student     User      `json:"student" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	CourseID    uint      `json:"course_id" gorm:"not null;uniqueIndex:uniq_student_course"`
	Course      Course    `json:"course" gorm:"constraint:OnDelete:CASCADE"`
	Active      bool      `json:"active" gorm:"not null;default:true"`
	PurchasedAt time.Time `json:"purchased_at"`
}

type Certificate struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	EnrollmentID uint       `json:"enrollment_id" gorm:"uniqueIndex;not null"` // หนึ่ง enrollment ต่อหนึ่งใบ
	Enrollment   Enrollment `json:"enrollment" gorm:"constraint:OnDelete:CASCADE"`
	CertNumber   string     `json:"cert_number" gorm:"uniqueIndex;size:100;not null"`
	IssuedAt     time.Time  `json:"issued_at"`
}
