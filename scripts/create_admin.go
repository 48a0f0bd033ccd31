// scripts/create_admin.go
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/adiletkanalbekov5-byte/techschool/config"
	"github.com/adiletkanalbekov5-byte/techschool/database"
	"github.com/adiletkanalbekov5-byte/techschool/handlers"
	"github.com/adiletkanalbekov5-byte/techschool/models"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	database.Connect(cfg)

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin1234"
	}

	var existing models.User
	if err := database.DB.Where("username = ?", username).First(&existing).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("failed to query users: %v", err)
		}
	} else {
		fmt.Println("admin user already exists:", username)
		os.Exit(0)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	// ผ่าน hook เดียวกับ API — is_staff=true เลยได้ DirectorProfile มาด้วย
	u := models.User{
		Username:     username,
		PasswordHash: string(hashed),
		IsStaff:      true,
		IsActive:     true,
	}
	if err := handlers.CreateAccount(database.DB, &u); err != nil {
		log.Fatalf("failed to insert admin: %v", err)
	}

	fmt.Println("admin user created:", username)
	fmt.Println("password:", password, "(plain, remember to change later!)")
}
