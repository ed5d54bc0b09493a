package db

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"go_vpnadmin/internal/auth"
	"go_vpnadmin/internal/model"
)

// EnsureAdminUser creates the seed admin account if it does not exist yet.
// An empty password means no seeding is wanted (an account already managed
// out of band).
func EnsureAdminUser(db *gorm.DB, username, password string) error {
	if password == "" {
		return nil
	}

	var user model.User
	err := db.Where("username = ?", username).First(&user).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	user = model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         "admin",
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Printf("✓ Seeded admin user %q", username)
	return nil
}
