package models

import "time"

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:60;not null"`
	Email        string    `json:"email" gorm:"size:120"`
	PasswordHash string    `json:"-" gorm:"not null"` // เก็บ bcrypt hash
	IsStaff      bool      `json:"is_staff" gorm:"not null;default:false"`
	IsActive     bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
