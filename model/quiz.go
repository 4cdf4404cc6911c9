package model

import (
	"encoding/json"
	"time"
)

// DailyQuiz is a fixed question set scoped to a calendar date and a skill
// tier. Exactly one quiz exists per (quiz_date, difficulty).
type DailyQuiz struct {
	ID         string          `json:"id" gorm:"primaryKey"`
	QuizDate   string          `json:"quiz_date" gorm:"not null;uniqueIndex:idx_quiz_date_difficulty"` // YYYY-MM-DD
	Difficulty string          `json:"difficulty" gorm:"not null;uniqueIndex:idx_quiz_date_difficulty"`
	Questions  json.RawMessage `json:"questions" gorm:"type:text"` // JSON array of QuizQuestion
	RewardXP   int             `json:"reward_xp" gorm:"default:20"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type QuizQuestion struct {
	ID            string   `json:"id"`
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"` // stripped from responses until completion
}

// DailyQuizProgress is the per (user, quiz) record. At most one completion
// per pair; never updated once completed.
type DailyQuizProgress struct {
	ID          string          `json:"id" gorm:"primaryKey"`
	UserID      string          `json:"user_id" gorm:"not null;uniqueIndex:idx_user_quiz"`
	QuizID      string          `json:"quiz_id" gorm:"not null;uniqueIndex:idx_user_quiz"`
	Completed   bool            `json:"completed" gorm:"not null;default:false"`
	Score       int             `json:"score" gorm:"not null;default:0"` // 0-100, server computed
	UserAnswers json.RawMessage `json:"user_answers" gorm:"type:text"`   // ordered option indices
	CompletedAt *time.Time      `json:"completed_at"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
