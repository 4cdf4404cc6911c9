package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	Email       string     `json:"email" gorm:"unique;not null"`
	Username    string     `json:"username" gorm:"unique;not null"`
	Password    string     `json:"-"`
	Role        string     `json:"role" gorm:"default:user"`
	SkillLevel  string     `json:"skill_level"` // beginner, intermediate, expert, master; set during onboarding
	IsActive    bool       `json:"is_active" gorm:"default:true"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}

// UserProgress holds the mutable progression state for a registered user.
// XP only moves up; the running total is maintained alongside the XPEvent
// ledger written in the same transaction as every grant.
type UserProgress struct {
	ID               string     `json:"id" gorm:"primaryKey"`
	UserID           string     `json:"user_id" gorm:"uniqueIndex;not null"`
	XP               int        `json:"xp" gorm:"default:0"`
	Level            int        `json:"level" gorm:"default:1"`
	Streak           int        `json:"streak" gorm:"default:0"`
	LastActivityDate *time.Time `json:"last_activity_date"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// XPEvent is an append-only ledger entry for every XP grant, so double
// grants stay auditable against the running total on UserProgress.
type XPEvent struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index;not null"`
	Amount    int       `json:"amount" gorm:"not null"`
	Source    string    `json:"source" gorm:"not null"` // lesson, quest, daily_quiz
	SourceID  string    `json:"source_id"`
	CreatedAt time.Time `json:"created_at"`
}
