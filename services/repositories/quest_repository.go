package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/lingo-leap/lingo_api/model"
	"gorm.io/gorm"
)

type QuestRepository struct {
	BaseRepository
}

func NewQuestRepository(db *gorm.DB) *QuestRepository {
	return &QuestRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *QuestRepository) CreateQuest(quest *model.Quest) (*model.Quest, error) {
	if quest.ID == "" {
		id, _ := uuid.NewV7()
		quest.ID = id.String()
	}
	quest.CreatedAt = time.Now()
	quest.UpdatedAt = time.Now()

	if err := ds.db.Create(quest).Error; err != nil {
		return nil, err
	}
	return quest, nil
}

func (ds *QuestRepository) GetQuest(questID string) (*model.Quest, error) {
	var quest model.Quest
	if err := ds.db.Where("id = ?", questID).First(&quest).Error; err != nil {
		return nil, err
	}
	return &quest, nil
}

func (ds *QuestRepository) GetActiveQuests() ([]model.Quest, error) {
	var quests []model.Quest
	err := ds.db.Where("is_active = ?", true).Order("created_at ASC").Find(&quests).Error
	if err != nil {
		return nil, err
	}
	return quests, nil
}

func (ds *QuestRepository) GetActiveQuestsByCriteria(criteria string) ([]model.Quest, error) {
	var quests []model.Quest
	err := ds.db.Where("is_active = ? AND criteria = ?", true, criteria).Find(&quests).Error
	if err != nil {
		return nil, err
	}
	return quests, nil
}

// ==================== USER QUESTS ====================

func (ds *QuestRepository) GetUserQuest(userID, questID string) (*model.UserQuest, error) {
	var userQuest model.UserQuest
	if err := ds.db.Where("user_id = ? AND quest_id = ?", userID, questID).First(&userQuest).Error; err != nil {
		return nil, err
	}
	return &userQuest, nil
}

func (ds *QuestRepository) GetUserQuests(userID string) ([]model.UserQuest, error) {
	var userQuests []model.UserQuest
	err := ds.db.Preload("Quest").Where("user_id = ?", userID).Find(&userQuests).Error
	if err != nil {
		return nil, err
	}
	return userQuests, nil
}

// UpsertProgress lazily creates the (user, quest) record and moves the
// counter forward. Progress never decreases; completed derives from the
// quest target and stays set once reached.
func (ds *QuestRepository) UpsertProgress(userID string, quest *model.Quest, newProgress int) (*model.UserQuest, error) {
	now := time.Now()

	var userQuest model.UserQuest
	err := ds.db.Where("user_id = ? AND quest_id = ?", userID, quest.ID).First(&userQuest).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}

		id, _ := uuid.NewV7()
		userQuest = model.UserQuest{
			ID:        id.String(),
			UserID:    userID,
			QuestID:   quest.ID,
			Progress:  newProgress,
			Completed: newProgress >= quest.TargetCount,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := ds.db.Create(&userQuest).Error; err != nil {
			return nil, err
		}
		return &userQuest, nil
	}

	if newProgress <= userQuest.Progress {
		return &userQuest, nil
	}

	userQuest.Progress = newProgress
	if newProgress >= quest.TargetCount {
		userQuest.Completed = true
	}
	userQuest.UpdatedAt = now

	if err := ds.db.Save(&userQuest).Error; err != nil {
		return nil, err
	}
	return &userQuest, nil
}

// MarkClaimed flips the claimed flag with a conditional update so two
// concurrent claims cannot both succeed: the WHERE clause only matches
// while claimed is still false, and the caller checks rows affected.
func (ds *QuestRepository) MarkClaimed(tx *gorm.DB, userID, questID string) (bool, error) {
	if tx == nil {
		tx = ds.db
	}

	now := time.Now()
	result := tx.Model(&model.UserQuest{}).
		Where("user_id = ? AND quest_id = ? AND claimed = ?", userID, questID, false).
		Updates(map[string]interface{}{
			"claimed":    true,
			"completed":  true,
			"claimed_at": &now,
			"updated_at": now,
		})

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
