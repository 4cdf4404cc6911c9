package services

import (
	"time"

	"github.com/alphabatem/common/context"
	"github.com/lingo-leap/lingo_api/dto"
	"github.com/lingo-leap/lingo_api/model"
	"github.com/lingo-leap/lingo_api/services/repositories"
	"github.com/lingo-leap/lingo_api/shared"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type QuestService struct {
	context.DefaultService

	sqlSvc        *PostgresService
	monitoringSvc *MonitoringService

	questRepo   *repositories.QuestRepository
	userRepo    *repositories.UserRepository
	contentRepo *repositories.ContentRepository
}

const QUEST_SVC = "quest_svc"

func (svc QuestService) Id() string {
	return QUEST_SVC
}

func (svc *QuestService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)

	svc.questRepo = repositories.NewQuestRepository(svc.sqlSvc.Db())
	svc.userRepo = repositories.NewUserRepository(svc.sqlSvc.Db())
	svc.contentRepo = repositories.NewContentRepository(svc.sqlSvc.Db())

	return nil
}

// ==================== QUEST LISTING ====================

// GetActiveQuests returns every active quest joined with the caller's
// per-quest progress. Quests the user never touched show zero progress.
func (svc *QuestService) GetActiveQuests(userID string) ([]dto.UserQuestResponse, error) {
	quests, err := svc.questRepo.GetActiveQuests()
	if err != nil {
		return nil, err
	}

	userQuests, err := svc.questRepo.GetUserQuests(userID)
	if err != nil {
		return nil, err
	}

	byQuestID := make(map[string]*model.UserQuest, len(userQuests))
	for i := range userQuests {
		byQuestID[userQuests[i].QuestID] = &userQuests[i]
	}

	responses := make([]dto.UserQuestResponse, 0, len(quests))
	for _, quest := range quests {
		resp := dto.UserQuestResponse{
			Quest: svc.toQuestResponse(&quest),
		}
		if uq, ok := byQuestID[quest.ID]; ok {
			resp.Progress = uq.Progress
			resp.Completed = uq.Completed
			resp.Claimed = uq.Claimed
			resp.ClaimedAt = uq.ClaimedAt
		}
		responses = append(responses, resp)
	}

	return responses, nil
}

func (svc *QuestService) GetQuest(questID string) (*dto.QuestResponse, error) {
	quest, err := svc.questRepo.GetQuest(questID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, shared.NewNotFoundError(err, "Quest not found")
		}
		return nil, err
	}

	resp := svc.toQuestResponse(quest)
	return &resp, nil
}

func (svc *QuestService) CreateQuest(req *dto.CreateQuestRequest) (*dto.QuestResponse, error) {
	quest := &model.Quest{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Criteria:    req.Criteria,
		TargetCount: req.TargetCount,
		RewardXP:    req.RewardXP,
		IsActive:    true,
	}

	created, err := svc.questRepo.CreateQuest(quest)
	if err != nil {
		return nil, err
	}

	resp := svc.toQuestResponse(created)
	return &resp, nil
}

func (svc *QuestService) toQuestResponse(quest *model.Quest) dto.QuestResponse {
	return dto.QuestResponse{
		ID:          quest.ID,
		Title:       quest.Title,
		Description: quest.Description,
		Type:        quest.Type,
		Criteria:    quest.Criteria,
		TargetCount: quest.TargetCount,
		RewardXP:    quest.RewardXP,
	}
}

// ==================== PROGRESS TRACKING ====================

// UpdateProgress moves a user's counter toward a quest target. The counter
// only moves forward; completion flips once the target is reached and never
// unflips.
func (svc *QuestService) UpdateProgress(userID, questID string, progress int) (*dto.UserQuestResponse, error) {
	quest, err := svc.questRepo.GetQuest(questID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, shared.NewNotFoundError(err, "Quest not found")
		}
		return nil, err
	}

	if !quest.IsActive {
		return nil, shared.NewInvalidStateError(nil, "Quest is not active")
	}

	userQuest, err := svc.questRepo.UpsertProgress(userID, quest, progress)
	if err != nil {
		return nil, err
	}

	if userQuest.Completed && !userQuest.Claimed {
		log.WithFields(log.Fields{
			"user_id":  userID,
			"quest_id": questID,
		}).Info("Quest target reached")
	}

	return &dto.UserQuestResponse{
		Quest:     svc.toQuestResponse(quest),
		Progress:  userQuest.Progress,
		Completed: userQuest.Completed,
		Claimed:   userQuest.Claimed,
		ClaimedAt: userQuest.ClaimedAt,
	}, nil
}

// ==================== CLAIMING ====================

// ClaimReward hands out a completed quest's XP exactly once. The claim flag
// flips via a conditional update so two racing claims cannot both pay out.
func (svc *QuestService) ClaimReward(userID, questID string) (*dto.UserQuestResponse, error) {
	quest, err := svc.questRepo.GetQuest(questID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, shared.NewNotFoundError(err, "Quest not found")
		}
		return nil, err
	}

	if !quest.IsActive {
		return nil, shared.NewInvalidStateError(nil, "Quest is not active")
	}

	userQuest, err := svc.questRepo.GetUserQuest(userID, questID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, shared.NewInvalidStateError(err, "No progress recorded for this quest")
		}
		return nil, err
	}

	if userQuest.Claimed {
		return nil, shared.NewAlreadyClaimedError(nil, "Quest reward already claimed")
	}

	if !userQuest.Completed {
		return nil, shared.NewNotCompletedError(nil, "Quest is not completed yet")
	}

	err = svc.sqlSvc.Db().Transaction(func(tx *gorm.DB) error {
		claimed, txErr := svc.questRepo.MarkClaimed(tx, userID, questID)
		if txErr != nil {
			return txErr
		}
		if !claimed {
			// Lost the race to a concurrent claim.
			return shared.NewAlreadyClaimedError(nil, "Quest reward already claimed")
		}

		return svc.userRepo.GrantXP(tx, userID, quest.RewardXP, shared.XPSourceQuest, questID)
	})
	if err != nil {
		return nil, err
	}

	if svc.monitoringSvc != nil {
		svc.monitoringSvc.RecordQuestClaim()
		svc.monitoringSvc.RecordXPGranted(shared.XPSourceQuest, quest.RewardXP)
	}

	now := time.Now()
	log.WithFields(log.Fields{
		"user_id":   userID,
		"quest_id":  questID,
		"reward_xp": quest.RewardXP,
	}).Info("Quest reward claimed")

	return &dto.UserQuestResponse{
		Quest:     svc.toQuestResponse(quest),
		Progress:  userQuest.Progress,
		Completed: true,
		Claimed:   true,
		ClaimedAt: &now,
	}, nil
}

// ==================== CRITERIA DISPATCH ====================

// OnLessonCompleted advances every active lesson_completion quest using the
// user's total completed-lesson count.
func (svc *QuestService) OnLessonCompleted(userID string) {
	count, err := svc.contentRepo.CountCompletedLessons(userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Failed to count completed lessons for quests")
		return
	}

	svc.advanceByCriteria(userID, shared.CriteriaLessonCompletion, int(count))
}

// OnStreakChanged advances streak quests to the user's current streak length.
func (svc *QuestService) OnStreakChanged(userID string) {
	progress, err := svc.userRepo.GetUserProgress(userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Failed to load progress for streak quests")
		return
	}

	svc.advanceByCriteria(userID, shared.CriteriaStreak, progress.Streak)
}

// OnQuizCompleted advances quiz_score quests by one per passed quiz.
func (svc *QuestService) OnQuizCompleted(userID string, score int) {
	if score < 80 {
		return
	}

	quests, err := svc.questRepo.GetActiveQuestsByCriteria(shared.CriteriaQuizScore)
	if err != nil {
		log.WithError(err).Error("Failed to load quiz quests")
		return
	}

	for i := range quests {
		userQuest, err := svc.questRepo.GetUserQuest(userID, quests[i].ID)
		current := 0
		if err == nil {
			current = userQuest.Progress
		}

		if _, err := svc.questRepo.UpsertProgress(userID, &quests[i], current+1); err != nil {
			log.WithError(err).WithField("quest_id", quests[i].ID).Error("Failed to advance quiz quest")
		}
	}
}

func (svc *QuestService) advanceByCriteria(userID, criteria string, progress int) {
	quests, err := svc.questRepo.GetActiveQuestsByCriteria(criteria)
	if err != nil {
		log.WithError(err).WithField("criteria", criteria).Error("Failed to load quests by criteria")
		return
	}

	for i := range quests {
		if _, err := svc.questRepo.UpsertProgress(userID, &quests[i], progress); err != nil {
			log.WithError(err).WithField("quest_id", quests[i].ID).Error("Failed to advance quest")
		}
	}
}
