// seeders/quiz_seeder.go
package seeders

import (
	"encoding/json"
	"log"
	"time"

	"github.com/lingo-leap/lingo_api/model"
	"gorm.io/gorm"
)

// QuizSeeder handles seeding daily quizzes
type QuizSeeder struct {
	db *gorm.DB
}

// NewQuizSeeder creates a new quiz seeder
func NewQuizSeeder(db *gorm.DB) *QuizSeeder {
	return &QuizSeeder{db: db}
}

// SeedQuizzes seeds today's quizzes across all difficulty tiers
func (s *QuizSeeder) SeedQuizzes() error {
	quizzes := s.getTodayQuizzes()

	for _, quiz := range quizzes {
		var existingQuiz model.DailyQuiz
		err := s.db.Where("quiz_date = ? AND difficulty = ?", quiz.QuizDate, quiz.Difficulty).First(&existingQuiz).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&quiz).Error; err != nil {
					log.Printf("Error creating quiz %s/%s: %v", quiz.QuizDate, quiz.Difficulty, err)
					return err
				}
				log.Printf("Created quiz: %s/%s", quiz.QuizDate, quiz.Difficulty)
			} else {
				return err
			}
		} else {
			log.Printf("Quiz %s/%s already exists, skipping", quiz.QuizDate, quiz.Difficulty)
		}
	}

	log.Println("Quiz seeding completed successfully")
	return nil
}

func (s *QuizSeeder) getTodayQuizzes() []model.DailyQuiz {
	now := time.Now()
	today := now.Format("2006-01-02")

	return []model.DailyQuiz{
		{
			ID:         "quiz_" + today + "_beginner",
			QuizDate:   today,
			Difficulty: "beginner",
			Questions: mustQuizQuestions([]model.QuizQuestion{
				{
					ID:            "dq_b1",
					Prompt:        "What does 'gracias' mean?",
					Options:       []string{"Please", "Thank you", "Sorry", "Hello"},
					CorrectOption: 1,
				},
				{
					ID:            "dq_b2",
					Prompt:        "Which word means 'water'?",
					Options:       []string{"Pan", "Leche", "Agua", "Vino"},
					CorrectOption: 2,
				},
				{
					ID:            "dq_b3",
					Prompt:        "How do you say 'yes'?",
					Options:       []string{"No", "Sí", "Tal vez", "Nunca"},
					CorrectOption: 1,
				},
			}),
			RewardXP:  20,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:         "quiz_" + today + "_intermediate",
			QuizDate:   today,
			Difficulty: "intermediate",
			Questions: mustQuizQuestions([]model.QuizQuestion{
				{
					ID:            "dq_i1",
					Prompt:        "Choose the correct past tense: 'Yo ___ al cine ayer.'",
					Options:       []string{"voy", "fui", "iré", "vaya"},
					CorrectOption: 1,
				},
				{
					ID:            "dq_i2",
					Prompt:        "What does 'sin embargo' mean?",
					Options:       []string{"Therefore", "However", "Because", "Although"},
					CorrectOption: 1,
				},
				{
					ID:            "dq_i3",
					Prompt:        "Which is the subjunctive form of 'hablar' for 'él'?",
					Options:       []string{"habla", "hablará", "hable", "hablando"},
					CorrectOption: 2,
				},
			}),
			RewardXP:  25,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

func mustQuizQuestions(questions []model.QuizQuestion) json.RawMessage {
	data, err := json.Marshal(questions)
	if err != nil {
		log.Fatalf("Failed to marshal seed quiz questions: %v", err)
	}
	return data
}
