package main

import (
	"log"
	"os"

	"excel-analytics-be/internal/model"
	"excel-analytics-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Seeds the initial admin account. Idempotent: does nothing when the
// email already exists.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("Error: ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	var count int64
	if err := db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		log.Fatalf("Error: Failed to check existing admin: %v", err)
	}
	if count > 0 {
		log.Println("Info: Admin account already exists, nothing to do")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error: Failed to hash password: %v", err)
	}

	admin := model.User{
		Id:           uuid.New(),
		FullName:     "Administrator",
		Email:        email,
		PasswordHash: string(hashed),
		Role:         "admin",
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("Error: Failed to create admin account: %v", err)
	}

	log.Println("✅ Success: Admin account seeded")
}
