// Package main provides admin management utilities for Inkwell.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// AdminSetup provides a utility to promote users to admin by email
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/admin/main.go promote <email>   - Promote user to admin")
		fmt.Println("  go run ./cmd/admin/main.go demote <email>    - Demote user from admin")
		fmt.Println("  go run ./cmd/admin/main.go list-admins       - List all admins")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	command := os.Args[1]

	switch command {
	case "promote":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin/main.go promote <email>")
			os.Exit(1)
		}
		setRole(db, os.Args[2], models.RoleAdmin)

	case "demote":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin/main.go demote <email>")
			os.Exit(1)
		}
		setRole(db, os.Args[2], models.RoleUser)

	case "list-admins":
		listAdmins(db)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

func setRole(db *gorm.DB, email string, role models.UserRole) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Printf("User with email %s not found\n", email)
		} else {
			log.Fatalf("Database error: %v", err)
		}
		os.Exit(1)
	}

	if user.Role == role {
		fmt.Printf("User %s (%s) already has role %s\n", user.Name, user.Email, role)
		return
	}

	user.Role = role
	if err := db.Save(&user).Error; err != nil {
		log.Fatalf("Failed to update user role: %v", err)
	}

	fmt.Printf("Successfully set %s (%s) to role %s\n", user.Name, user.Email, role)
}

func listAdmins(db *gorm.DB) {
	var admins []models.User
	if err := db.Where("role = ?", models.RoleAdmin).Find(&admins).Error; err != nil {
		log.Fatalf("Failed to fetch admins: %v", err)
	}

	if len(admins) == 0 {
		fmt.Println("No admins found in the system")
		return
	}

	fmt.Println("Current Admins:")
	for _, admin := range admins {
		fmt.Printf("ID: %s | Name: %s | Email: %s\n", admin.ID, admin.Name, admin.Email)
	}
}
