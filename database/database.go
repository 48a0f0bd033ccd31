package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/adiletkanalbekov5-byte/techschool/config"
	"github.com/adiletkanalbekov5-byte/techschool/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	DB = db

	if err := MigrateAll(DB); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}
}

// MigrateAll แยกออกมาให้ test (sqlite in-memory) ใช้ชุดตารางเดียวกับของจริง
func MigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.TeacherProfile{},
		&models.DirectorProfile{},
		&models.Course{},
		&models.Lesson{},
		&models.Enrollment{},
		&models.Certificate{},
		&models.StudentGroup{},
		&models.JournalEntry{},
		&models.VideoLesson{},
		&models.Application{},
	)
}
