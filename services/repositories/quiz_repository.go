package repositories

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lingo-leap/lingo_api/model"
	"gorm.io/gorm"
)

type QuizRepository struct {
	BaseRepository
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *QuizRepository) CreateQuiz(quiz *model.DailyQuiz) (*model.DailyQuiz, error) {
	if quiz.ID == "" {
		id, _ := uuid.NewV7()
		quiz.ID = id.String()
	}
	quiz.CreatedAt = time.Now()
	quiz.UpdatedAt = time.Now()

	if err := ds.db.Create(quiz).Error; err != nil {
		return nil, err
	}
	return quiz, nil
}

func (ds *QuizRepository) GetQuiz(quizID string) (*model.DailyQuiz, error) {
	var quiz model.DailyQuiz
	if err := ds.db.Where("id = ?", quizID).First(&quiz).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (ds *QuizRepository) GetQuizByDate(quizDate, difficulty string) (*model.DailyQuiz, error) {
	var quiz model.DailyQuiz
	if err := ds.db.Where("quiz_date = ? AND difficulty = ?", quizDate, difficulty).First(&quiz).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

// ==================== QUIZ PROGRESS ====================

func (ds *QuizRepository) GetQuizProgress(userID, quizID string) (*model.DailyQuizProgress, error) {
	var progress model.DailyQuizProgress
	if err := ds.db.Where("user_id = ? AND quiz_id = ?", userID, quizID).First(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

// CompleteQuiz writes the completed progress row for (user, quiz).
// The write is conditioned on completed = false at write time: the unique
// (user_id, quiz_id) index rejects a second insert, and the update path
// only matches rows still incomplete. Returns false when another
// submission won the race.
func (ds *QuizRepository) CompleteQuiz(tx *gorm.DB, userID, quizID string, score int, answers json.RawMessage) (bool, error) {
	if tx == nil {
		tx = ds.db
	}

	now := time.Now()

	var existing model.DailyQuizProgress
	err := tx.Where("user_id = ? AND quiz_id = ?", userID, quizID).First(&existing).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return false, err
		}

		id, _ := uuid.NewV7()
		progress := model.DailyQuizProgress{
			ID:          id.String(),
			UserID:      userID,
			QuizID:      quizID,
			Completed:   true,
			Score:       score,
			UserAnswers: answers,
			CompletedAt: &now,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.Create(&progress).Error; err != nil {
			// Unique index hit: a concurrent submission inserted first.
			if err == gorm.ErrDuplicatedKey {
				return false, nil
			}
			return false, err
		}
		return true, nil
	}

	if existing.Completed {
		return false, nil
	}

	result := tx.Model(&model.DailyQuizProgress{}).
		Where("user_id = ? AND quiz_id = ? AND completed = ?", userID, quizID, false).
		Updates(map[string]interface{}{
			"completed":    true,
			"score":        score,
			"user_answers": answers,
			"completed_at": &now,
			"updated_at":   now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
