// Seed a demo school with a principal account.
//
// Intended for first deployments and local development; the principal can
// then create teachers and students through the admin API.
//
// Usage: go run scripts/seed_school.go -school demo-school -email principal@example.com -password secret123
package main

import (
	"flag"
	"log"

	"smartedu_backend/internal/config"
	"smartedu_backend/internal/model"
	"smartedu_backend/pkg/database"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	schoolID := flag.String("school", "", "school identifier")
	name := flag.String("name", "Principal", "principal display name")
	email := flag.String("email", "", "principal email")
	password := flag.String("password", "", "principal password")
	flag.Parse()

	if *schoolID == "" || *email == "" || *password == "" {
		log.Fatal("school, email and password are required")
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	var count int64
	if err := db.Model(&model.User{}).
		Where("school_id = ? AND email = ?", *schoolID, *email).
		Count(&count).Error; err != nil {
		log.Fatalf("Lookup failed: %v", err)
	}
	if count > 0 {
		log.Println("Account already exists, nothing to do")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Hashing password failed: %v", err)
	}

	principal := &model.User{
		SchoolID: *schoolID,
		Name:     *name,
		Email:    *email,
		Password: string(hashed),
		Role:     model.Principal,
	}
	if err := db.Create(principal).Error; err != nil {
		log.Fatalf("Creating principal failed: %v", err)
	}

	log.Printf("Principal %s created for school %s", *email, *schoolID)
}
