package services

import (
	"encoding/json"

	"github.com/alphabatem/common/context"
	"github.com/lingo-leap/lingo_api/dto"
	"github.com/lingo-leap/lingo_api/model"
	"github.com/lingo-leap/lingo_api/services/repositories"
	"github.com/lingo-leap/lingo_api/shared"
	"gorm.io/gorm"
)

type ContentService struct {
	context.DefaultService

	sqlSvc *PostgresService

	contentRepo *repositories.ContentRepository
}

const CONTENT_SVC = "content_svc"

func (svc ContentService) Id() string {
	return CONTENT_SVC
}

func (svc *ContentService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)

	svc.contentRepo = repositories.NewContentRepository(svc.sqlSvc.Db())

	return nil
}

// ==================== LESSONS ====================

func (svc *ContentService) GetLessons(unit, difficulty string) (*dto.LessonCollectionResponse, error) {
	lessons, err := svc.contentRepo.GetLessons(unit, difficulty)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.LessonResponse, 0, len(lessons))
	for i := range lessons {
		resp, err := svc.toLessonResponse(&lessons[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}

	return &dto.LessonCollectionResponse{
		Lessons: responses,
		Total:   len(responses),
	}, nil
}

func (svc *ContentService) GetLesson(lessonID string) (*dto.LessonResponse, error) {
	lesson, err := svc.contentRepo.GetLesson(lessonID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, shared.NewNotFoundError(err, "Lesson not found")
		}
		return nil, err
	}

	return svc.toLessonResponse(lesson)
}

// toLessonResponse strips answer indices out of the stored question set so
// correct answers never leave the server in lesson payloads.
func (svc *ContentService) toLessonResponse(lesson *model.Lesson) (*dto.LessonResponse, error) {
	var questions []model.Question
	if len(lesson.Questions) > 0 {
		if err := json.Unmarshal(lesson.Questions, &questions); err != nil {
			return nil, shared.NewInternalError(err, "Malformed lesson questions")
		}
	}

	questionResponses := make([]dto.QuestionResponse, len(questions))
	for i, q := range questions {
		questionResponses[i] = dto.QuestionResponse{
			ID:      q.ID,
			Prompt:  q.Prompt,
			Options: q.Options,
			Points:  q.Points,
		}
	}

	return &dto.LessonResponse{
		ID:           lesson.ID,
		Title:        lesson.Title,
		Unit:         lesson.Unit,
		Order:        lesson.Order,
		Difficulty:   lesson.Difficulty,
		Story:        lesson.Story,
		AudioURL:     lesson.AudioURL,
		ThumbnailURL: lesson.ThumbnailURL,
		Questions:    questionResponses,
		XPReward:     lesson.XPReward,
		MinScore:     lesson.MinScore,
	}, nil
}

// ==================== ADMINISTRATION ====================

func (svc *ContentService) CreateLesson(req *dto.CreateLessonRequest) (*dto.LessonResponse, error) {
	questions := make([]model.Question, len(req.Questions))
	for i, q := range req.Questions {
		if q.Answer >= len(q.Options) {
			return nil, shared.NewBadRequestError(nil, "Answer index out of range")
		}
		questions[i] = model.Question{
			ID:      q.ID,
			Prompt:  q.Prompt,
			Options: q.Options,
			Answer:  q.Answer,
			Points:  q.Points,
		}
	}

	questionsJSON, err := json.Marshal(questions)
	if err != nil {
		return nil, err
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = shared.SkillBeginner
	}

	xpReward := req.XPReward
	if xpReward <= 0 {
		xpReward = 10
	}

	minScore := req.MinScore
	if minScore <= 0 {
		minScore = 60
	}

	lesson := &model.Lesson{
		Title:      req.Title,
		Unit:       req.Unit,
		Order:      req.Order,
		Difficulty: difficulty,
		Story:      req.Story,
		Questions:  questionsJSON,
		XPReward:   xpReward,
		MinScore:   minScore,
		IsActive:   true,
	}

	created, err := svc.contentRepo.CreateLesson(lesson)
	if err != nil {
		return nil, err
	}

	return svc.toLessonResponse(created)
}
