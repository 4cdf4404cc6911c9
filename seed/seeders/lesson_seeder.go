// seeders/lesson_seeder.go
package seeders

import (
	"encoding/json"
	"log"
	"time"

	"github.com/lingo-leap/lingo_api/model"
	"gorm.io/gorm"
)

// LessonSeeder handles seeding sample lessons
type LessonSeeder struct {
	db *gorm.DB
}

// NewLessonSeeder creates a new lesson seeder
func NewLessonSeeder(db *gorm.DB) *LessonSeeder {
	return &LessonSeeder{db: db}
}

// SeedLessons seeds the database with starter lessons
func (s *LessonSeeder) SeedLessons() error {
	lessons := s.getStarterLessons()

	for _, lesson := range lessons {
		var existingLesson model.Lesson
		if err := s.db.Where("id = ?", lesson.ID).First(&existingLesson).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&lesson).Error; err != nil {
					log.Printf("Error creating lesson %s: %v", lesson.Title, err)
					return err
				}
				log.Printf("Created lesson: %s", lesson.Title)
			} else {
				log.Printf("Error checking lesson %s: %v", lesson.Title, err)
				return err
			}
		} else {
			log.Printf("Lesson %s already exists, skipping", lesson.Title)
		}
	}

	log.Println("Lesson seeding completed successfully")
	return nil
}

// getStarterLessons returns the introductory lesson set
func (s *LessonSeeder) getStarterLessons() []model.Lesson {
	now := time.Now()

	lessons := []model.Lesson{
		{
			ID:         "lesson_greetings_1",
			Title:      "Greetings and Introductions",
			Unit:       "basics",
			Order:      1,
			Difficulty: "beginner",
			Story:      "Every conversation starts somewhere. In this lesson you will meet Ana and Tom as they introduce themselves for the first time...",
			Questions: mustQuestions([]model.Question{
				{
					ID:      "q_gr1_1",
					Prompt:  "How do you say 'hello'?",
					Options: []string{"Hola", "Adiós", "Gracias", "Por favor"},
					Answer:  0,
					Points:  10,
				},
				{
					ID:      "q_gr1_2",
					Prompt:  "Which phrase introduces yourself?",
					Options: []string{"¿Cómo estás?", "Me llamo Ana", "Hasta luego", "Buenas noches"},
					Answer:  1,
					Points:  10,
				},
			}),
			XPReward:  10,
			MinScore:  60,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:         "lesson_greetings_2",
			Title:      "Saying Goodbye",
			Unit:       "basics",
			Order:      2,
			Difficulty: "beginner",
			Story:      "Ana and Tom part ways after their first meeting. There is more than one way to say goodbye...",
			Questions: mustQuestions([]model.Question{
				{
					ID:      "q_gr2_1",
					Prompt:  "Which word means 'goodbye'?",
					Options: []string{"Hola", "Adiós", "Sí", "No"},
					Answer:  1,
					Points:  10,
				},
				{
					ID:      "q_gr2_2",
					Prompt:  "What does 'hasta luego' mean?",
					Options: []string{"Good morning", "Thank you", "See you later", "Excuse me"},
					Answer:  2,
					Points:  10,
				},
			}),
			XPReward:  10,
			MinScore:  60,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:         "lesson_numbers_1",
			Title:      "Numbers 1-10",
			Unit:       "numbers",
			Order:      1,
			Difficulty: "beginner",
			Story:      "At the market, Ana needs to count her change. Numbers come up everywhere...",
			Questions: mustQuestions([]model.Question{
				{
					ID:      "q_nu1_1",
					Prompt:  "What is 'three'?",
					Options: []string{"Uno", "Dos", "Tres", "Cuatro"},
					Answer:  2,
					Points:  10,
				},
			}),
			XPReward:  10,
			MinScore:  60,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:         "lesson_past_tense_1",
			Title:      "Talking About Yesterday",
			Unit:       "grammar",
			Order:      1,
			Difficulty: "intermediate",
			Story:      "Tom tells Ana what he did over the weekend. The past tense changes everything...",
			Questions: mustQuestions([]model.Question{
				{
					ID:      "q_pt1_1",
					Prompt:  "Which sentence is in the past tense?",
					Options: []string{"Yo como", "Yo comí", "Yo comeré", "Yo comiendo"},
					Answer:  1,
					Points:  15,
				},
				{
					ID:      "q_pt1_2",
					Prompt:  "What is the past form of 'ir' for 'yo'?",
					Options: []string{"Voy", "Iba", "Fui", "Iré"},
					Answer:  2,
					Points:  15,
				},
			}),
			XPReward:  15,
			MinScore:  60,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	return lessons
}

func mustQuestions(questions []model.Question) json.RawMessage {
	data, err := json.Marshal(questions)
	if err != nil {
		log.Fatalf("Failed to marshal seed questions: %v", err)
	}
	return data
}
