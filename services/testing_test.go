package services

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lingo-leap/lingo_api/model"
	"github.com/lingo-leap/lingo_api/services/repositories"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// Shared-cache sqlite cannot take concurrent writers; one pooled
	// connection serializes them and keeps the in-memory DB alive.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access test database pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.User{},
		&model.UserProgress{},
		&model.XPEvent{},
		&model.Lesson{},
		&model.LessonProgress{},
		&model.MediaAsset{},
		&model.Quest{},
		&model.UserQuest{},
		&model.DailyQuiz{},
		&model.DailyQuizProgress{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newQuestService(db *gorm.DB) *QuestService {
	return &QuestService{
		sqlSvc:      &PostgresService{db: db},
		questRepo:   repositories.NewQuestRepository(db),
		userRepo:    repositories.NewUserRepository(db),
		contentRepo: repositories.NewContentRepository(db),
	}
}

func newProgressionService(db *gorm.DB) *ProgressionService {
	return &ProgressionService{
		sqlSvc:       &PostgresService{db: db},
		questSvc:     newQuestService(db),
		userRepo:     repositories.NewUserRepository(db),
		contentRepo:  repositories.NewContentRepository(db),
		repeatGrants: true,
	}
}

func newQuizService(db *gorm.DB) *QuizService {
	return &QuizService{
		sqlSvc:   &PostgresService{db: db},
		redisSvc: &RedisService{},
		questSvc: newQuestService(db),
		quizRepo: repositories.NewQuizRepository(db),
		userRepo: repositories.NewUserRepository(db),
	}
}

func createTestUser(t *testing.T, db *gorm.DB, skillLevel string) *model.User {
	t.Helper()

	user := &model.User{
		ID:         uuid.New().String(),
		Email:      uuid.New().String() + "@test.dev",
		Username:   "u" + uuid.New().String()[:8],
		Password:   "hashed",
		Role:       model.RoleUser,
		SkillLevel: skillLevel,
		IsActive:   true,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	progress := &model.UserProgress{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		XP:        0,
		Level:     1,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.Create(progress).Error; err != nil {
		t.Fatalf("failed to create test user progress: %v", err)
	}

	return user
}

func createTestLesson(t *testing.T, db *gorm.DB) *model.Lesson {
	t.Helper()

	questions, _ := json.Marshal([]model.Question{
		{ID: "q1", Prompt: "pick one", Options: []string{"a", "b"}, Answer: 0, Points: 10},
	})

	lesson := &model.Lesson{
		ID:        uuid.New().String(),
		Title:     "Test Lesson",
		Unit:      "basics",
		Order:     1,
		Questions: questions,
		XPReward:  10,
		MinScore:  60,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.Create(lesson).Error; err != nil {
		t.Fatalf("failed to create test lesson: %v", err)
	}
	return lesson
}

func createTestQuest(t *testing.T, db *gorm.DB, criteria string, target, rewardXP int) *model.Quest {
	t.Helper()

	quest := &model.Quest{
		ID:          uuid.New().String(),
		Title:       "Test Quest",
		Type:        "daily",
		Criteria:    criteria,
		TargetCount: target,
		RewardXP:    rewardXP,
		IsActive:    true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := db.Create(quest).Error; err != nil {
		t.Fatalf("failed to create test quest: %v", err)
	}
	return quest
}

func createTestQuiz(t *testing.T, db *gorm.DB, quizDate, difficulty string, rewardXP int) *model.DailyQuiz {
	t.Helper()

	questions, _ := json.Marshal([]model.QuizQuestion{
		{ID: "q1", Prompt: "first", Options: []string{"a", "b", "c"}, CorrectOption: 0},
		{ID: "q2", Prompt: "second", Options: []string{"a", "b", "c"}, CorrectOption: 1},
		{ID: "q3", Prompt: "third", Options: []string{"a", "b", "c"}, CorrectOption: 2},
	})

	quiz := &model.DailyQuiz{
		ID:         uuid.New().String(),
		QuizDate:   quizDate,
		Difficulty: difficulty,
		Questions:  questions,
		RewardXP:   rewardXP,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := db.Create(quiz).Error; err != nil {
		t.Fatalf("failed to create test quiz: %v", err)
	}
	return quiz
}

func userXP(t *testing.T, db *gorm.DB, userID string) int {
	t.Helper()

	var progress model.UserProgress
	if err := db.Where("user_id = ?", userID).First(&progress).Error; err != nil {
		t.Fatalf("failed to load user progress: %v", err)
	}
	return progress.XP
}

func ledgerCount(t *testing.T, db *gorm.DB, userID string) int64 {
	t.Helper()

	var count int64
	if err := db.Model(&model.XPEvent{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count xp events: %v", err)
	}
	return count
}
