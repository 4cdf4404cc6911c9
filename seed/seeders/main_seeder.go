package seeders

import (
	"log"

	"gorm.io/gorm"
)

// MainSeeder coordinates all seeding operations
type MainSeeder struct {
	db *gorm.DB
}

// NewMainSeeder creates a new main seeder
func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{db: db}
}

// SeedAll runs all seeders in the correct order
func (s *MainSeeder) SeedAll() error {
	log.Println("Starting database seeding...")

	lessonSeeder := NewLessonSeeder(s.db)
	if err := lessonSeeder.SeedLessons(); err != nil {
		log.Printf("Lesson seeding failed: %v", err)
		return err
	}

	questSeeder := NewQuestSeeder(s.db)
	if err := questSeeder.SeedQuests(); err != nil {
		log.Printf("Quest seeding failed: %v", err)
		return err
	}

	quizSeeder := NewQuizSeeder(s.db)
	if err := quizSeeder.SeedQuizzes(); err != nil {
		log.Printf("Quiz seeding failed: %v", err)
		return err
	}

	adminSeeder := NewAdminSeeder(s.db)
	if err := adminSeeder.SeedAdmin(); err != nil {
		log.Printf("Admin seeding failed: %v", err)
		return err
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

// SeedLessonsOnly seeds only lessons
func (s *MainSeeder) SeedLessonsOnly() error {
	return NewLessonSeeder(s.db).SeedLessons()
}

// SeedQuestsOnly seeds only quests
func (s *MainSeeder) SeedQuestsOnly() error {
	return NewQuestSeeder(s.db).SeedQuests()
}

// SeedQuizzesOnly seeds only daily quizzes
func (s *MainSeeder) SeedQuizzesOnly() error {
	return NewQuizSeeder(s.db).SeedQuizzes()
}

// SeedAdminOnly seeds only the default admin user
func (s *MainSeeder) SeedAdminOnly() error {
	return NewAdminSeeder(s.db).SeedAdmin()
}
