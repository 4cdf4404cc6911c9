package repositories

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lingo-leap/lingo_api/model"
	"gorm.io/gorm"
)

type ContentRepository struct {
	BaseRepository
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// ==================== LESSONS ====================

func (ds *ContentRepository) CreateLesson(lesson *model.Lesson) (*model.Lesson, error) {
	if lesson.ID == "" {
		id, _ := uuid.NewV7()
		lesson.ID = id.String()
	}
	lesson.CreatedAt = time.Now()
	lesson.UpdatedAt = time.Now()

	if err := ds.db.Create(lesson).Error; err != nil {
		return nil, err
	}
	return lesson, nil
}

func (ds *ContentRepository) GetLesson(id string) (*model.Lesson, error) {
	var lesson model.Lesson
	if err := ds.db.Where("id = ? AND is_active = ?", id, true).First(&lesson).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (ds *ContentRepository) GetLessons(unit, difficulty string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	query := ds.db.Model(&model.Lesson{}).Where("is_active = ?", true)

	if unit != "" {
		query = query.Where("unit = ?", unit)
	}
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}

	if err := query.Order("\"order\" ASC").Find(&lessons).Error; err != nil {
		return nil, err
	}
	return lessons, nil
}

func (ds *ContentRepository) UpdateLessonMedia(lessonID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	return ds.db.Model(&model.Lesson{}).Where("id = ?", lessonID).Updates(updates).Error
}

// ==================== LESSON PROGRESS ====================

func (ds *ContentRepository) GetLessonProgress(userID, lessonID string) (*model.LessonProgress, error) {
	var progress model.LessonProgress
	if err := ds.db.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

func (ds *ContentRepository) GetCompletedLessonIDs(userID string) ([]string, error) {
	var ids []string
	err := ds.db.Model(&model.LessonProgress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Pluck("lesson_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (ds *ContentRepository) CountCompletedLessons(userID string) (int64, error) {
	var count int64
	err := ds.db.Model(&model.LessonProgress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&count).Error
	return count, err
}

// UpsertLessonProgress creates the per (user, lesson) row on first
// completion and never lets the best score regress afterwards. Runs in tx
// so the caller can pair it with the XP grant.
func (ds *ContentRepository) UpsertLessonProgress(tx *gorm.DB, userID, lessonID string, score int, answers json.RawMessage) (*model.LessonProgress, bool, error) {
	if tx == nil {
		tx = ds.db
	}

	now := time.Now()

	var progress model.LessonProgress
	err := tx.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, false, err
		}

		id, _ := uuid.NewV7()
		progress = model.LessonProgress{
			ID:          id.String(),
			UserID:      userID,
			LessonID:    lessonID,
			Completed:   true,
			Score:       score,
			UserAnswers: answers,
			CompletedAt: now,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.Create(&progress).Error; err != nil {
			return nil, false, err
		}
		return &progress, true, nil
	}

	if score > progress.Score {
		progress.Score = score
	}
	progress.Completed = true
	progress.UserAnswers = answers
	progress.CompletedAt = now
	progress.UpdatedAt = now

	if err := tx.Save(&progress).Error; err != nil {
		return nil, false, err
	}
	return &progress, false, nil
}

// ==================== MEDIA ASSETS ====================

func (ds *ContentRepository) CreateMediaAsset(asset *model.MediaAsset) error {
	if asset.ID == "" {
		id, _ := uuid.NewV7()
		asset.ID = id.String()
	}
	asset.CreatedAt = time.Now()
	return ds.db.Create(asset).Error
}

func (ds *ContentRepository) GetMediaAsset(assetID string) (*model.MediaAsset, error) {
	var asset model.MediaAsset
	if err := ds.db.Where("id = ?", assetID).First(&asset).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (ds *ContentRepository) GetLessonMediaAssets(lessonID string) ([]model.MediaAsset, error) {
	var assets []model.MediaAsset
	err := ds.db.Where("lesson_id = ?", lessonID).Order("created_at DESC").Find(&assets).Error
	if err != nil {
		return nil, err
	}
	return assets, nil
}

func (ds *ContentRepository) DeleteMediaAsset(assetID string) error {
	return ds.db.Where("id = ?", assetID).Delete(&model.MediaAsset{}).Error
}
