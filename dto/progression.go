package dto

import "time"

type CompleteLessonRequest struct {
	LessonID string `json:"lesson_id" validate:"required"`
	Score    int    `json:"score" validate:"gte=0,lte=100"`
	Answers  []int  `json:"answers"`
}

func (r CompleteLessonRequest) Validate() error {
	return validate.Struct(r)
}

type LessonProgressResponse struct {
	LessonID    string    `json:"lesson_id"`
	Completed   bool      `json:"completed"`
	Score       int       `json:"score"`
	UserAnswers []int     `json:"user_answers,omitempty"`
	XPGained    int       `json:"xp_gained"`
	CompletedAt time.Time `json:"completed_at"`
}

type UserProgressResponse struct {
	UserID           string     `json:"user_id"`
	XP               int        `json:"xp"`
	Level            int        `json:"level"`
	XPToNextLevel    int        `json:"xp_to_next_level"`
	Streak           int        `json:"streak"`
	SkillLevel       string     `json:"skill_level"`
	CompletedLessons []string   `json:"completed_lessons"`
	LastActivity     *time.Time `json:"last_activity"`
}

type XPEventResponse struct {
	Amount   int       `json:"amount"`
	Source   string    `json:"source"`
	SourceID string    `json:"source_id,omitempty"`
	At       time.Time `json:"at"`
}

type XPLedgerResponse struct {
	UserID string            `json:"user_id"`
	Total  int               `json:"total"`
	Events []XPEventResponse `json:"events"`
}

type LeaderboardUserResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Level    int    `json:"level"`
	XP       int    `json:"xp"`
	Rank     int    `json:"rank"`
}

type LeaderboardResponse struct {
	Period      string                    `json:"period"`
	CurrentUser LeaderboardUserResponse   `json:"current_user"`
	TopUsers    []LeaderboardUserResponse `json:"top_users"`
}
