package models

import "time"

type StudentGroup struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"size:100;not null"`
	TeacherID uint           `json:"teacher_id" gorm:"not null;index"`
	Teacher   TeacherProfile `json:"teacher" gorm:"constraint:OnDelete:CASCADE"`
	Students  []User         `json:"-" gorm:"many2many:group_students;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// นักเรียนคนเดียวมีได้หลายรายการต่อกลุ่มต่อวัน — ไม่มี unique
type JournalEntry struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	StudentID uint         `json:"student_id" gorm:"not null;index"`
	Student   User         `json:"student" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	GroupID   uint         `json:"group_id" gorm:"not null;index"`
	Group     StudentGroup `json:"group" gorm:"constraint:OnDelete:CASCADE"`
	Date      time.Time    `json:"date"`
	Grade     string       `json:"grade" gorm:"size:5"`
	Comment   string       `json:"comment" gorm:"type:text"`
}
