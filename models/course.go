package models

import "time"

type Course struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:200;not null"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;size:200;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Level       string    `json:"level" gorm:"size:3;not null;default:'BEG'"` // BEG | MID | PRO
	Price       float64   `json:"price" gorm:"type:numeric(10,2);not null;default:0"`
	Cover       string    `json:"cover" gorm:"size:255"` // เก็บเฉพาะ path/URL — ตัวไฟล์อยู่ storage ภายนอก
	CreatedAt   time.Time `json:"created_at"`
	Lessons     []Lesson  `json:"lessons" gorm:"constraint:OnDelete:CASCADE"`
}

type Lesson struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	CourseID uint   `json:"course_id" gorm:"not null;index"`
	Title    string `json:"title" gorm:"size:200;not null"`
	Order    uint   `json:"order" gorm:"not null;default:0"` // ไม่บังคับ unique
	VideoURL string `json:"video_url" gorm:"size:255"`
	Content  string `json:"content" gorm:"type:text"`
}
