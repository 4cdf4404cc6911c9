package dto

import "time"

type QuizQuestionResponse struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	// CorrectOption is only populated once the requesting user has completed
	// the quiz; until then it is stripped to prevent answer leakage.
	CorrectOption *int `json:"correct_option,omitempty"`
}

type DailyQuizResponse struct {
	ID         string                 `json:"id"`
	QuizDate   string                 `json:"quiz_date"`
	Difficulty string                 `json:"difficulty"`
	Questions  []QuizQuestionResponse `json:"questions"`
	RewardXP   int                    `json:"reward_xp"`
	Completed  bool                   `json:"completed"`
	Score      *int                   `json:"score,omitempty"`
}

type SubmitQuizRequest struct {
	QuizID  string `json:"quiz_id" validate:"required"`
	Answers []int  `json:"answers" validate:"required"`
}

func (r SubmitQuizRequest) Validate() error {
	return validate.Struct(r)
}

type SubmitQuizResponse struct {
	QuizID      string    `json:"quiz_id"`
	Score       int       `json:"score"`
	Correct     int       `json:"correct"`
	Total       int       `json:"total"`
	XPGained    int       `json:"xp_gained"`
	CompletedAt time.Time `json:"completed_at"`
}

type CreateDailyQuizRequest struct {
	QuizDate   string                  `json:"quiz_date" validate:"required,datetime=2006-01-02"`
	Difficulty string                  `json:"difficulty" validate:"required,oneof=beginner intermediate expert master"`
	Questions  []CreateQuestionRequest `json:"questions" validate:"required,min=1,dive"`
	RewardXP   int                     `json:"reward_xp"`
}

func (r CreateDailyQuizRequest) Validate() error {
	return validate.Struct(r)
}
