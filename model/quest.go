package model

import "time"

// Quest is a static target-count challenge definition with a fixed XP
// reward, claimable once per user after completion.
type Quest struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Type        string    `json:"type" gorm:"not null"`     // daily, monthly
	Criteria    string    `json:"criteria" gorm:"not null"` // lesson_completion, streak, quiz_score
	TargetCount int       `json:"target_count" gorm:"not null"`
	RewardXP    int       `json:"reward_xp" gorm:"not null"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserQuest is the per (user, quest) progress record.
// Invariants: claimed implies completed; completed implies
// progress >= quest.TargetCount; claimed flips true exactly once.
type UserQuest struct {
	ID        string     `json:"id" gorm:"primaryKey"`
	UserID    string     `json:"user_id" gorm:"not null;uniqueIndex:idx_user_quest"`
	QuestID   string     `json:"quest_id" gorm:"not null;uniqueIndex:idx_user_quest"`
	Progress  int        `json:"progress" gorm:"not null;default:0"`
	Completed bool       `json:"completed" gorm:"not null;default:false"`
	Claimed   bool       `json:"claimed" gorm:"not null;default:false"`
	ClaimedAt *time.Time `json:"claimed_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Quest Quest `json:"quest" gorm:"foreignKey:QuestID"`
}
