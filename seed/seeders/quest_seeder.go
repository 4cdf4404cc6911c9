// seeders/quest_seeder.go
package seeders

import (
	"log"
	"time"

	"github.com/lingo-leap/lingo_api/model"
	"gorm.io/gorm"
)

// QuestSeeder handles seeding quest definitions
type QuestSeeder struct {
	db *gorm.DB
}

// NewQuestSeeder creates a new quest seeder
func NewQuestSeeder(db *gorm.DB) *QuestSeeder {
	return &QuestSeeder{db: db}
}

// SeedQuests seeds the standing quest catalogue
func (s *QuestSeeder) SeedQuests() error {
	quests := s.getDefaultQuests()

	for _, quest := range quests {
		var existingQuest model.Quest
		if err := s.db.Where("id = ?", quest.ID).First(&existingQuest).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&quest).Error; err != nil {
					log.Printf("Error creating quest %s: %v", quest.Title, err)
					return err
				}
				log.Printf("Created quest: %s", quest.Title)
			} else {
				log.Printf("Error checking quest %s: %v", quest.Title, err)
				return err
			}
		} else {
			log.Printf("Quest %s already exists, skipping", quest.Title)
		}
	}

	log.Println("Quest seeding completed successfully")
	return nil
}

func (s *QuestSeeder) getDefaultQuests() []model.Quest {
	now := time.Now()

	return []model.Quest{
		{
			ID:          "quest_first_steps",
			Title:       "First Steps",
			Description: "Complete your first lesson",
			Type:        "daily",
			Criteria:    "lesson_completion",
			TargetCount: 1,
			RewardXP:    20,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "quest_daily_three",
			Title:       "Daily Dedication",
			Description: "Complete 3 lessons",
			Type:        "daily",
			Criteria:    "lesson_completion",
			TargetCount: 3,
			RewardXP:    50,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "quest_week_streak",
			Title:       "Week Warrior",
			Description: "Keep a 7-day streak going",
			Type:        "monthly",
			Criteria:    "streak",
			TargetCount: 7,
			RewardXP:    100,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "quest_quiz_ace",
			Title:       "Quiz Ace",
			Description: "Score 80 or higher on 5 daily quizzes",
			Type:        "monthly",
			Criteria:    "quiz_score",
			TargetCount: 5,
			RewardXP:    150,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "quest_marathon",
			Title:       "Lesson Marathon",
			Description: "Complete 30 lessons in total",
			Type:        "monthly",
			Criteria:    "lesson_completion",
			TargetCount: 30,
			RewardXP:    300,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}
