package models

import "time"

type VideoLesson struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	CourseID  uint            `json:"course_id" gorm:"not null;index"`
	Title     string          `json:"title" gorm:"size:200;not null"`
	VideoFile string          `json:"video_file" gorm:"size:255;not null"` // path/URL เท่านั้น
	TeacherID *uint           `json:"teacher_id"`
	Teacher   *TeacherProfile `json:"teacher,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	CreatedAt time.Time       `json:"created_at"`
}
