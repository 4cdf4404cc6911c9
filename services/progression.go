// services/progression.go
package services

import (
	"encoding/json"
	"os"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	"github.com/lingo-leap/lingo_api/dto"
	"github.com/lingo-leap/lingo_api/model"
	"github.com/lingo-leap/lingo_api/services/repositories"
	"github.com/lingo-leap/lingo_api/shared"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	lessonBaseXP      = 10
	lessonBonusXP     = 5
	lessonBonusCutoff = 80 // score must exceed this for the bonus
)

type ProgressionService struct {
	context.DefaultService

	sqlSvc        *PostgresService
	questSvc      *QuestService
	monitoringSvc *MonitoringService

	userRepo    *repositories.UserRepository
	contentRepo *repositories.ContentRepository

	// The source behavior grants lesson XP on every completion call, making
	// repeat completion farmable. Kept by default; XP_REPEAT_GRANTS=false
	// restricts the grant to first completion.
	repeatGrants bool
}

const PROGRESSION_SVC = "progression_svc"

func (svc ProgressionService) Id() string {
	return PROGRESSION_SVC
}

func (svc *ProgressionService) Configure(ctx *context.Context) error {
	svc.repeatGrants = os.Getenv("XP_REPEAT_GRANTS") != "false"
	return svc.DefaultService.Configure(ctx)
}

func (svc *ProgressionService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.questSvc = svc.Service(QUEST_SVC).(*QuestService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)

	svc.userRepo = repositories.NewUserRepository(svc.sqlSvc.Db())
	svc.contentRepo = repositories.NewContentRepository(svc.sqlSvc.Db())

	return nil
}

// InitializeUserProgress creates the progression row after registration.
func (svc *ProgressionService) InitializeUserProgress(userID string) error {
	id, _ := uuid.NewV7()
	progress := &model.UserProgress{
		ID:     id.String(),
		UserID: userID,
		XP:     0,
		Level:  1,
		Streak: 0,
	}

	_, err := svc.userRepo.CreateUserProgress(progress)
	return err
}

// CompleteLesson records a completion attempt, keeps the best score, and
// grants XP. State write, XP bump and ledger append share one transaction.
func (svc *ProgressionService) CompleteLesson(userID, lessonID string, score int, answers []int) (*dto.LessonProgressResponse, error) {
	lesson, err := svc.contentRepo.GetLesson(lessonID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, shared.NewNotFoundError(err, "Lesson not found")
		}
		return nil, err
	}

	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, shared.NewBadRequestError(err, "Invalid answers payload")
	}

	var progress *model.LessonProgress
	var firstCompletion bool
	xpGained := svc.calculateLessonXP(score)

	err = svc.sqlSvc.Db().Transaction(func(tx *gorm.DB) error {
		var txErr error
		progress, firstCompletion, txErr = svc.contentRepo.UpsertLessonProgress(tx, userID, lessonID, score, answersJSON)
		if txErr != nil {
			return txErr
		}

		if !firstCompletion && !svc.repeatGrants {
			xpGained = 0
			return nil
		}

		return svc.userRepo.GrantXP(tx, userID, xpGained, shared.XPSourceLesson, lessonID)
	})
	if err != nil {
		return nil, err
	}

	if svc.monitoringSvc != nil {
		svc.monitoringSvc.RecordLessonCompletion()
		if xpGained > 0 {
			svc.monitoringSvc.RecordXPGranted(shared.XPSourceLesson, xpGained)
		}
	}

	if xpGained > 0 {
		svc.refreshLevel(userID)
	}

	if err := svc.updateStreak(userID); err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Failed to update streak")
	}

	// Quest counters ride on lesson completion and streak signals.
	svc.questSvc.OnLessonCompleted(userID)
	svc.questSvc.OnStreakChanged(userID)

	log.WithFields(log.Fields{
		"user_id":   userID,
		"lesson_id": lesson.ID,
		"score":     progress.Score,
		"xp_gained": xpGained,
	}).Info("Lesson completed")

	return &dto.LessonProgressResponse{
		LessonID:    lessonID,
		Completed:   progress.Completed,
		Score:       progress.Score,
		UserAnswers: answers,
		XPGained:    xpGained,
		CompletedAt: progress.CompletedAt,
	}, nil
}

func (svc *ProgressionService) calculateLessonXP(score int) int {
	xp := lessonBaseXP
	if score > lessonBonusCutoff {
		xp += lessonBonusXP
	}
	return xp
}

func (svc *ProgressionService) calculateLevel(totalXP int) int {
	level := 1
	requiredXP := 100 // Base XP for level 2

	for totalXP >= requiredXP {
		totalXP -= requiredXP
		level++
		requiredXP = int(float64(requiredXP) * 1.5) // Each level requires 1.5x more XP
	}

	return level
}

func (svc *ProgressionService) getTotalXPForLevel(targetLevel int) int {
	if targetLevel <= 1 {
		return 0
	}

	totalXP := 0
	requiredXP := 100

	for level := 2; level <= targetLevel; level++ {
		totalXP += requiredXP
		requiredXP = int(float64(requiredXP) * 1.5)
	}

	return totalXP
}

func (svc *ProgressionService) calculateXPToNextLevel(currentXP int) int {
	currentLevel := svc.calculateLevel(currentXP)
	return svc.getTotalXPForLevel(currentLevel+1) - currentXP
}

// refreshLevel recomputes the stored level from the XP total after a grant.
func (svc *ProgressionService) refreshLevel(userID string) {
	progress, err := svc.userRepo.GetUserProgress(userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Failed to load progress for level refresh")
		return
	}

	newLevel := svc.calculateLevel(progress.XP)
	if newLevel != progress.Level {
		oldLevel := progress.Level
		progress.Level = newLevel
		if err := svc.userRepo.UpdateUserProgress(progress); err != nil {
			log.WithError(err).WithField("user_id", userID).Error("Failed to persist level")
			return
		}
		if newLevel > oldLevel {
			log.Printf("User %s leveled up to %d", userID, newLevel)
		}
	}
}

func (svc *ProgressionService) updateStreak(userID string) error {
	progress, err := svc.userRepo.GetUserProgress(userID)
	if err != nil {
		return err
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if progress.LastActivityDate == nil {
		progress.Streak = 1
	} else {
		lastActivityDay := time.Date(
			progress.LastActivityDate.Year(),
			progress.LastActivityDate.Month(),
			progress.LastActivityDate.Day(),
			0, 0, 0, 0, progress.LastActivityDate.Location(),
		)

		daysDiff := int(today.Sub(lastActivityDay).Hours() / 24)

		switch daysDiff {
		case 0:
			// Same day, no change to streak
		case 1:
			progress.Streak++
		default:
			progress.Streak = 1
		}
	}

	progress.LastActivityDate = &now
	return svc.userRepo.UpdateUserProgress(progress)
}

// ==================== PROGRESS METHODS ====================

func (svc *ProgressionService) GetUserProgress(userID string) (*dto.UserProgressResponse, error) {
	progress, err := svc.userRepo.GetUserProgress(userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, shared.NewNotFoundError(err, "User progress not found")
		}
		return nil, err
	}

	user, err := svc.userRepo.GetUser(userID)
	if err != nil {
		return nil, err
	}

	completedLessons, err := svc.contentRepo.GetCompletedLessonIDs(userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Failed to list completed lessons")
		completedLessons = []string{}
	}

	return &dto.UserProgressResponse{
		UserID:           userID,
		XP:               progress.XP,
		Level:            progress.Level,
		XPToNextLevel:    svc.calculateXPToNextLevel(progress.XP),
		Streak:           progress.Streak,
		SkillLevel:       user.SkillLevel,
		CompletedLessons: completedLessons,
		LastActivity:     progress.LastActivityDate,
	}, nil
}

func (svc *ProgressionService) GetXPLedger(userID string, limit int) (*dto.XPLedgerResponse, error) {
	progress, err := svc.userRepo.GetUserProgress(userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, shared.NewNotFoundError(err, "User progress not found")
		}
		return nil, err
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}

	events, err := svc.userRepo.GetXPEvents(userID, limit)
	if err != nil {
		return nil, err
	}

	eventResponses := make([]dto.XPEventResponse, len(events))
	for i, e := range events {
		eventResponses[i] = dto.XPEventResponse{
			Amount:   e.Amount,
			Source:   e.Source,
			SourceID: e.SourceID,
			At:       e.CreatedAt,
		}
	}

	return &dto.XPLedgerResponse{
		UserID: userID,
		Total:  progress.XP,
		Events: eventResponses,
	}, nil
}

// ==================== LEADERBOARD METHODS ====================

func (svc *ProgressionService) GetAllTimeLeaderboard(limit int, currentUserID string) (*dto.LeaderboardResponse, error) {
	users, err := svc.userRepo.GetAllTimeLeaderboard(limit)
	if err != nil {
		return nil, err
	}

	return svc.buildLeaderboardResponse("all_time", users, currentUserID)
}

func (svc *ProgressionService) GetWeeklyLeaderboard(limit int, currentUserID string) (*dto.LeaderboardResponse, error) {
	users, err := svc.userRepo.GetWeeklyLeaderboard(limit)
	if err != nil {
		return nil, err
	}

	return svc.buildLeaderboardResponse("weekly", users, currentUserID)
}

func (svc *ProgressionService) buildLeaderboardResponse(period string, users []model.UserProgress, currentUserID string) (*dto.LeaderboardResponse, error) {
	topUsers := make([]dto.LeaderboardUserResponse, 0, len(users))
	var currentUser dto.LeaderboardUserResponse

	for i, user := range users {
		userDetails, err := svc.userRepo.GetUser(user.UserID)
		if err != nil {
			log.Printf("Failed to get user details for %s: %v", user.UserID, err)
			continue
		}

		leaderboardUser := dto.LeaderboardUserResponse{
			UserID:   user.UserID,
			Username: userDetails.Username,
			Level:    user.Level,
			XP:       user.XP,
			Rank:     i + 1,
		}

		topUsers = append(topUsers, leaderboardUser)

		if user.UserID == currentUserID {
			currentUser = leaderboardUser
		}
	}

	if currentUserID != "" && currentUser.UserID == "" {
		rank, err := svc.userRepo.GetUserRank(currentUserID)
		if err == nil {
			userProgress, err := svc.userRepo.GetUserProgress(currentUserID)
			if err == nil {
				userDetails, err := svc.userRepo.GetUser(currentUserID)
				if err == nil {
					currentUser = dto.LeaderboardUserResponse{
						UserID:   currentUserID,
						Username: userDetails.Username,
						Level:    userProgress.Level,
						XP:       userProgress.XP,
						Rank:     rank,
					}
				}
			}
		}
	}

	return &dto.LeaderboardResponse{
		Period:      period,
		CurrentUser: currentUser,
		TopUsers:    topUsers,
	}, nil
}
