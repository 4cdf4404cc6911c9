package seeders

import (
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/lingo-leap/lingo_api/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminSeeder handles seeding admin users
type AdminSeeder struct {
	db *gorm.DB
}

// NewAdminSeeder creates a new admin seeder
func NewAdminSeeder(db *gorm.DB) *AdminSeeder {
	return &AdminSeeder{db: db}
}

// SeedAdmin creates a default admin user
func (s *AdminSeeder) SeedAdmin() error {
	var existingAdmin model.User
	if err := s.db.Where("role = ?", model.RoleAdmin).First(&existingAdmin).Error; err == nil {
		log.Println("Admin user already exists, skipping admin seeding")
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "Admin123"
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := model.User{
		ID:        uuid.New().String(),
		Email:     "admin@lingoleap.dev",
		Username:  "admin",
		Password:  string(hashedPassword),
		Role:      model.RoleAdmin,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.db.Create(&admin).Error; err != nil {
		log.Printf("Error creating admin user: %v", err)
		return err
	}

	progress := model.UserProgress{
		ID:        uuid.New().String(),
		UserID:    admin.ID,
		XP:        0,
		Level:     1,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.db.Create(&progress).Error; err != nil {
		log.Printf("Error creating admin progress: %v", err)
		return err
	}

	log.Printf("Created admin user: %s", admin.Email)
	return nil
}
