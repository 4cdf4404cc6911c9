// model/content.go
package model

import (
	"encoding/json"
	"time"
)

// Lesson represents individual learning content. Created only via admin
// action; immutable from the progression engine's perspective.
type Lesson struct {
	ID           string          `json:"id" gorm:"primaryKey"`
	Title        string          `json:"title" gorm:"not null"`
	Unit         string          `json:"unit"`
	Order        int             `json:"order" gorm:"not null"` // ordering key within unit
	Difficulty   string          `json:"difficulty" gorm:"default:beginner"`
	Story        string          `json:"story" gorm:"type:text"`
	AudioURL     string          `json:"audio_url"`
	ThumbnailURL string          `json:"thumbnail_url"`
	Questions    json.RawMessage `json:"questions" gorm:"type:text"` // JSON array of questions
	XPReward     int             `json:"xp_reward" gorm:"default:10"`
	MinScore     int             `json:"min_score" gorm:"default:60"`
	IsActive     bool            `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Question represents quiz questions within lessons
type Question struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Answer  int      `json:"answer"` // index into Options
	Points  int      `json:"points"`
}

// LessonProgress is the per (user, lesson) record. At most one row per
// pair; score is the best ever achieved and never regresses.
type LessonProgress struct {
	ID          string          `json:"id" gorm:"primaryKey"`
	UserID      string          `json:"user_id" gorm:"not null;uniqueIndex:idx_user_lesson"`
	LessonID    string          `json:"lesson_id" gorm:"not null;uniqueIndex:idx_user_lesson"`
	Completed   bool            `json:"completed" gorm:"not null"`
	Score       int             `json:"score" gorm:"not null"` // 0-100, max over all attempts
	UserAnswers json.RawMessage `json:"user_answers" gorm:"type:text"`
	CompletedAt time.Time       `json:"completed_at"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Lesson Lesson `json:"lesson" gorm:"foreignKey:LessonID"`
}

// MediaAsset tracks uploaded lesson media stored in MinIO.
type MediaAsset struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	LessonID    string    `json:"lesson_id" gorm:"index;not null"`
	Kind        string    `json:"kind"` // audio, thumbnail
	ObjectKey   string    `json:"object_key" gorm:"not null"`
	URL         string    `json:"url"`
	SizeBytes   int64     `json:"size_bytes"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}
