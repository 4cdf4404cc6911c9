package dto

type QuestionResponse struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Points  int      `json:"points"`
	// Answer is intentionally absent: correct indices never leave the server
	// for lessons the caller has not completed.
}

type LessonResponse struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	Unit         string             `json:"unit"`
	Order        int                `json:"order"`
	Difficulty   string             `json:"difficulty"`
	Story        string             `json:"story,omitempty"`
	AudioURL     string             `json:"audio_url,omitempty"`
	ThumbnailURL string             `json:"thumbnail_url,omitempty"`
	Questions    []QuestionResponse `json:"questions"`
	XPReward     int                `json:"xp_reward"`
	MinScore     int                `json:"min_score"`
}

type LessonCollectionResponse struct {
	Lessons []LessonResponse `json:"lessons"`
	Total   int              `json:"total"`
}

type CreateQuestionRequest struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt" validate:"required"`
	Options []string `json:"options" validate:"required,min=2"`
	Answer  int      `json:"answer" validate:"gte=0"`
	Points  int      `json:"points"`
}

type CreateLessonRequest struct {
	Title      string                  `json:"title" validate:"required"`
	Unit       string                  `json:"unit"`
	Order      int                     `json:"order"`
	Difficulty string                  `json:"difficulty" validate:"omitempty,oneof=beginner intermediate expert master"`
	Story      string                  `json:"story"`
	Questions  []CreateQuestionRequest `json:"questions" validate:"dive"`
	XPReward   int                     `json:"xp_reward"`
	MinScore   int                     `json:"min_score"`
}

func (r CreateLessonRequest) Validate() error {
	return validate.Struct(r)
}

type MediaUploadResponse struct {
	AssetID     string `json:"asset_id"`
	LessonID    string `json:"lesson_id"`
	Kind        string `json:"kind"`
	URL         string `json:"url"`
	SizeBytes   int64  `json:"size_bytes"`
	ContentType string `json:"content_type"`
}
