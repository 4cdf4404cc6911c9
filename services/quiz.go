package services

import (
	ctx "context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/lingo-leap/lingo_api/dto"
	"github.com/lingo-leap/lingo_api/model"
	"github.com/lingo-leap/lingo_api/services/repositories"
	"github.com/lingo-leap/lingo_api/shared"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	quizBonusXP       = 10
	quizBonusScore    = 80
	quizCacheDuration = 15 * time.Minute
)

type QuizService struct {
	context.DefaultService

	sqlSvc        *PostgresService
	redisSvc      *RedisService
	questSvc      *QuestService
	monitoringSvc *MonitoringService

	quizRepo *repositories.QuizRepository
	userRepo *repositories.UserRepository
}

const QUIZ_SVC = "quiz_svc"

func (svc QuizService) Id() string {
	return QUIZ_SVC
}

func (svc *QuizService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	svc.questSvc = svc.Service(QUEST_SVC).(*QuestService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)

	svc.quizRepo = repositories.NewQuizRepository(svc.sqlSvc.Db())
	svc.userRepo = repositories.NewUserRepository(svc.sqlSvc.Db())

	return nil
}

// ==================== QUIZ RETRIEVAL ====================

// GetDailyQuiz returns the quiz for (date, difficulty). Difficulty defaults
// to the caller's skill level, falling back to beginner for users who have
// not onboarded. Correct answers are stripped until the caller has completed
// the quiz.
func (svc *QuizService) GetDailyQuiz(userID, quizDate, difficulty string) (*dto.DailyQuizResponse, error) {
	if quizDate == "" {
		quizDate = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", quizDate); err != nil {
		return nil, shared.NewBadRequestError(err, "Invalid quiz date, expected YYYY-MM-DD")
	}

	if difficulty == "" {
		difficulty = svc.resolveDifficulty(userID)
	}
	if !shared.IsValidSkillLevel(difficulty) {
		return nil, shared.NewBadRequestError(nil, "Invalid difficulty")
	}

	quiz, err := svc.getQuizCached(quizDate, difficulty)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, shared.NewNotFoundError(err, "No quiz available for this date")
		}
		return nil, err
	}

	questions, err := svc.parseQuestions(quiz)
	if err != nil {
		return nil, err
	}

	completed := false
	var score *int
	if progress, err := svc.quizRepo.GetQuizProgress(userID, quiz.ID); err == nil && progress.Completed {
		completed = true
		score = &progress.Score
	}

	questionResponses := make([]dto.QuizQuestionResponse, len(questions))
	for i, q := range questions {
		questionResponses[i] = dto.QuizQuestionResponse{
			ID:      q.ID,
			Prompt:  q.Prompt,
			Options: q.Options,
		}
		if completed {
			correct := q.CorrectOption
			questionResponses[i].CorrectOption = &correct
		}
	}

	return &dto.DailyQuizResponse{
		ID:         quiz.ID,
		QuizDate:   quiz.QuizDate,
		Difficulty: quiz.Difficulty,
		Questions:  questionResponses,
		RewardXP:   quiz.RewardXP,
		Completed:  completed,
		Score:      score,
	}, nil
}

func (svc *QuizService) resolveDifficulty(userID string) string {
	user, err := svc.userRepo.GetUser(userID)
	if err != nil || user.SkillLevel == "" {
		return shared.SkillBeginner
	}
	return user.SkillLevel
}

// getQuizCached serves quiz definitions through redis; the definition is
// immutable for a given (date, difficulty) so a short TTL is safe.
func (svc *QuizService) getQuizCached(quizDate, difficulty string) (*model.DailyQuiz, error) {
	cacheKey := fmt.Sprintf("daily_quiz:%s:%s", quizDate, difficulty)
	rctx := ctx.Background()

	var cached model.DailyQuiz
	if err := svc.redisSvc.GetJSON(rctx, cacheKey, &cached); err == nil && cached.ID != "" {
		return &cached, nil
	}

	quiz, err := svc.quizRepo.GetQuizByDate(quizDate, difficulty)
	if err != nil {
		return nil, err
	}

	if err := svc.redisSvc.Set(rctx, cacheKey, quiz, quizCacheDuration); err != nil {
		log.WithError(err).Warn("Failed to cache daily quiz")
	}

	return quiz, nil
}

func (svc *QuizService) parseQuestions(quiz *model.DailyQuiz) ([]model.QuizQuestion, error) {
	var questions []model.QuizQuestion
	if err := json.Unmarshal(quiz.Questions, &questions); err != nil {
		return nil, shared.NewInternalError(err, "Malformed quiz questions")
	}
	return questions, nil
}

// ==================== SUBMISSION ====================

// SubmitQuiz scores an answer sheet server-side and records the completion.
// A user completes a given quiz at most once; the XP grant and the progress
// write share one transaction so a crash cannot pay without recording.
func (svc *QuizService) SubmitQuiz(userID string, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
	quiz, err := svc.quizRepo.GetQuiz(req.QuizID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, shared.NewNotFoundError(err, "Quiz not found")
		}
		return nil, err
	}

	// Resubmission is rejected outright, before the answer sheet is even
	// validated. The conditional write below still guards the race.
	if progress, err := svc.quizRepo.GetQuizProgress(userID, quiz.ID); err == nil && progress.Completed {
		if svc.monitoringSvc != nil {
			svc.monitoringSvc.RecordQuizSubmission("duplicate")
		}
		return nil, shared.NewAlreadyCompletedError(nil, "Quiz already completed")
	}

	questions, err := svc.parseQuestions(quiz)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		// A seeded row without questions would otherwise score 0/0.
		return nil, shared.NewInternalError(nil, "Quiz has no questions")
	}

	if len(req.Answers) != len(questions) {
		return nil, shared.NewBadRequestError(nil,
			fmt.Sprintf("Expected %d answers, got %d", len(questions), len(req.Answers)))
	}

	correct := 0
	for i, q := range questions {
		if req.Answers[i] == q.CorrectOption {
			correct++
		}
	}

	// Round half up: 2/3 correct scores 67.
	score := int(math.Round(float64(correct) / float64(len(questions)) * 100))

	xpGained := quiz.RewardXP
	if score >= quizBonusScore {
		xpGained += quizBonusXP
	}

	answersJSON, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, shared.NewBadRequestError(err, "Invalid answers payload")
	}

	now := time.Now()
	err = svc.sqlSvc.Db().Transaction(func(tx *gorm.DB) error {
		completed, txErr := svc.quizRepo.CompleteQuiz(tx, userID, quiz.ID, score, answersJSON)
		if txErr != nil {
			return txErr
		}
		if !completed {
			return shared.NewAlreadyCompletedError(nil, "Quiz already completed")
		}

		return svc.userRepo.GrantXP(tx, userID, xpGained, shared.XPSourceQuiz, quiz.ID)
	})
	if err != nil {
		if svc.monitoringSvc != nil {
			if appErr, ok := shared.GetAppError(err); ok && appErr.Code == "ALREADY_COMPLETED" {
				svc.monitoringSvc.RecordQuizSubmission("duplicate")
			}
		}
		return nil, err
	}

	if svc.monitoringSvc != nil {
		svc.monitoringSvc.RecordQuizSubmission("completed")
		svc.monitoringSvc.RecordXPGranted(shared.XPSourceQuiz, xpGained)
	}

	svc.questSvc.OnQuizCompleted(userID, score)

	log.WithFields(log.Fields{
		"user_id":   userID,
		"quiz_id":   quiz.ID,
		"score":     score,
		"xp_gained": xpGained,
	}).Info("Daily quiz completed")

	return &dto.SubmitQuizResponse{
		QuizID:      quiz.ID,
		Score:       score,
		Correct:     correct,
		Total:       len(questions),
		XPGained:    xpGained,
		CompletedAt: now,
	}, nil
}

// ==================== ADMINISTRATION ====================

func (svc *QuizService) CreateDailyQuiz(req *dto.CreateDailyQuizRequest) (*dto.DailyQuizResponse, error) {
	questions := make([]model.QuizQuestion, len(req.Questions))
	for i, q := range req.Questions {
		if q.Answer < 0 || q.Answer >= len(q.Options) {
			return nil, shared.NewBadRequestError(nil,
				fmt.Sprintf("Question %d: answer index out of range", i))
		}

		id := q.ID
		if id == "" {
			id = fmt.Sprintf("q%d", i+1)
		}
		questions[i] = model.QuizQuestion{
			ID:            id,
			Prompt:        q.Prompt,
			Options:       q.Options,
			CorrectOption: q.Answer,
		}
	}

	questionsJSON, err := json.Marshal(questions)
	if err != nil {
		return nil, err
	}

	rewardXP := req.RewardXP
	if rewardXP <= 0 {
		rewardXP = 20
	}

	quiz := &model.DailyQuiz{
		QuizDate:   req.QuizDate,
		Difficulty: req.Difficulty,
		Questions:  questionsJSON,
		RewardXP:   rewardXP,
	}

	created, err := svc.quizRepo.CreateQuiz(quiz)
	if err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, shared.NewInvalidStateError(err, "A quiz already exists for this date and difficulty")
		}
		return nil, err
	}

	// Drop any stale cache entry for the slot.
	cacheKey := fmt.Sprintf("daily_quiz:%s:%s", created.QuizDate, created.Difficulty)
	if err := svc.redisSvc.Delete(ctx.Background(), cacheKey); err != nil {
		log.WithError(err).Warn("Failed to invalidate quiz cache")
	}

	questionResponses := make([]dto.QuizQuestionResponse, len(questions))
	for i, q := range questions {
		questionResponses[i] = dto.QuizQuestionResponse{
			ID:      q.ID,
			Prompt:  q.Prompt,
			Options: q.Options,
		}
	}

	return &dto.DailyQuizResponse{
		ID:         created.ID,
		QuizDate:   created.QuizDate,
		Difficulty: created.Difficulty,
		Questions:  questionResponses,
		RewardXP:   created.RewardXP,
	}, nil
}
