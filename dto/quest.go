package dto

import "time"

type QuestResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Criteria    string `json:"criteria"`
	TargetCount int    `json:"target_count"`
	RewardXP    int    `json:"reward_xp"`
}

type UserQuestResponse struct {
	Quest     QuestResponse `json:"quest"`
	Progress  int           `json:"progress"`
	Completed bool          `json:"completed"`
	Claimed   bool          `json:"claimed"`
	ClaimedAt *time.Time    `json:"claimed_at,omitempty"`
}

type QuestCollectionResponse struct {
	Quests []UserQuestResponse `json:"quests"`
	Total  int                 `json:"total"`
}

type UpdateQuestProgressRequest struct {
	Progress int `json:"progress" validate:"required,gt=0"`
}

func (r UpdateQuestProgressRequest) Validate() error {
	return validate.Struct(r)
}

type CreateQuestRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Type        string `json:"type" validate:"required,oneof=daily monthly"`
	Criteria    string `json:"criteria" validate:"required,oneof=lesson_completion streak quiz_score"`
	TargetCount int    `json:"target_count" validate:"required,gt=0"`
	RewardXP    int    `json:"reward_xp" validate:"required,gt=0"`
}

func (r CreateQuestRequest) Validate() error {
	return validate.Struct(r)
}
