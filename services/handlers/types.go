package handlers

import (
	"mime/multipart"

	"github.com/lingo-leap/lingo_api/dto"
	"github.com/lingo-leap/lingo_api/model"
)

type AuthServiceInterface interface {
	Register(req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
	Onboard(userID string, req *dto.OnboardRequest) error
	GetUser(userID string) (*model.User, error)
}

type JWTServiceInterface interface {
	ExtractTokenFromHeader(authHeader string) (string, error)
	VerifyJWTToken(token string) (string, error)
}

type ContentServiceInterface interface {
	GetLessons(unit, difficulty string) (*dto.LessonCollectionResponse, error)
	GetLesson(lessonID string) (*dto.LessonResponse, error)
	CreateLesson(req *dto.CreateLessonRequest) (*dto.LessonResponse, error)
}

type ProgressionServiceInterface interface {
	CompleteLesson(userID, lessonID string, score int, answers []int) (*dto.LessonProgressResponse, error)
	GetUserProgress(userID string) (*dto.UserProgressResponse, error)
	GetXPLedger(userID string, limit int) (*dto.XPLedgerResponse, error)
	GetAllTimeLeaderboard(limit int, currentUserID string) (*dto.LeaderboardResponse, error)
	GetWeeklyLeaderboard(limit int, currentUserID string) (*dto.LeaderboardResponse, error)
}

type QuestServiceInterface interface {
	GetActiveQuests(userID string) ([]dto.UserQuestResponse, error)
	GetQuest(questID string) (*dto.QuestResponse, error)
	CreateQuest(req *dto.CreateQuestRequest) (*dto.QuestResponse, error)
	UpdateProgress(userID, questID string, progress int) (*dto.UserQuestResponse, error)
	ClaimReward(userID, questID string) (*dto.UserQuestResponse, error)
}

type QuizServiceInterface interface {
	GetDailyQuiz(userID, quizDate, difficulty string) (*dto.DailyQuizResponse, error)
	SubmitQuiz(userID string, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error)
	CreateDailyQuiz(req *dto.CreateDailyQuizRequest) (*dto.DailyQuizResponse, error)
}

type MediaServiceInterface interface {
	UploadLessonAudio(lessonID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error)
	UploadThumbnail(lessonID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error)
	GetLessonMedia(lessonID string) ([]dto.MediaUploadResponse, error)
	DeleteMediaAsset(assetID string) error
}
