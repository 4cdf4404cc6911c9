package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lingo-leap/lingo_api/model"
	"gorm.io/gorm"
)

// UserRepository handles user and progression-state database operations
type UserRepository struct {
	BaseRepository
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *UserRepository) CreateUser(user *model.User) (*model.User, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	if err := ds.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (ds *UserRepository) GetUser(userID string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("id = ? AND deleted_at IS NULL", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (ds *UserRepository) GetUserByEmailOrUsername(emailOrUsername string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("email = ? OR username = ?", emailOrUsername, emailOrUsername).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (ds *UserRepository) IsUsernameAvailable(username string) (bool, error) {
	var count int64
	err := ds.db.Model(&model.User{}).Where("LOWER(username) = LOWER(?) AND deleted_at IS NULL", username).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func (ds *UserRepository) IsEmailAvailable(email string) (bool, error) {
	var count int64
	err := ds.db.Model(&model.User{}).Where("LOWER(email) = LOWER(?) AND deleted_at IS NULL", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func (ds *UserRepository) UpdateLastLogin(userID string) error {
	now := time.Now()
	return ds.db.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"last_login_at": &now,
		"updated_at":    now,
	}).Error
}

func (ds *UserRepository) UpdateSkillLevel(userID, skillLevel string) error {
	return ds.db.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"skill_level": skillLevel,
		"updated_at":  time.Now(),
	}).Error
}

// ==================== PROGRESSION STATE ====================

func (ds *UserRepository) CreateUserProgress(progress *model.UserProgress) (*model.UserProgress, error) {
	if progress.ID == "" {
		id, _ := uuid.NewV7()
		progress.ID = id.String()
	}
	progress.CreatedAt = time.Now()
	progress.UpdatedAt = time.Now()

	if err := ds.db.Create(progress).Error; err != nil {
		return nil, err
	}
	return progress, nil
}

func (ds *UserRepository) GetUserProgress(userID string) (*model.UserProgress, error) {
	var progress model.UserProgress
	if err := ds.db.Where("user_id = ?", userID).First(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

func (ds *UserRepository) UpdateUserProgress(progress *model.UserProgress) error {
	progress.UpdatedAt = time.Now()
	return ds.db.Save(progress).Error
}

// GrantXP atomically bumps the running XP total and appends the matching
// ledger event. Runs inside tx so callers can fold it into the same
// transaction that mutates quest/quiz/lesson state.
func (ds *UserRepository) GrantXP(tx *gorm.DB, userID string, amount int, source, sourceID string) error {
	if tx == nil {
		tx = ds.db
	}

	result := tx.Model(&model.UserProgress{}).Where("user_id = ?", userID).Updates(map[string]interface{}{
		"xp":         gorm.Expr("xp + ?", amount),
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Without this the ledger would record a grant the running total
		// never received.
		return fmt.Errorf("xp grant for user %s matched no progress row", userID)
	}

	id, _ := uuid.NewV7()
	event := &model.XPEvent{
		ID:        id.String(),
		UserID:    userID,
		Amount:    amount,
		Source:    source,
		SourceID:  sourceID,
		CreatedAt: time.Now(),
	}
	return tx.Create(event).Error
}

func (ds *UserRepository) GetXPEvents(userID string, limit int) ([]model.XPEvent, error) {
	var events []model.XPEvent
	err := ds.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// ==================== LEADERBOARD ====================

func (ds *UserRepository) GetAllTimeLeaderboard(limit int) ([]model.UserProgress, error) {
	var users []model.UserProgress
	err := ds.db.Order("xp DESC").Limit(limit).Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (ds *UserRepository) GetWeeklyLeaderboard(limit int) ([]model.UserProgress, error) {
	weekAgo := time.Now().Add(-7 * 24 * time.Hour)

	// Rank by XP earned this week from the ledger, then hydrate totals.
	var userIDs []string
	err := ds.db.Model(&model.XPEvent{}).
		Select("user_id").
		Where("created_at > ?", weekAgo).
		Group("user_id").
		Order("SUM(amount) DESC").
		Limit(limit).
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return nil, err
	}

	if len(userIDs) == 0 {
		return []model.UserProgress{}, nil
	}

	var users []model.UserProgress
	err = ds.db.Where("user_id IN ?", userIDs).Find(&users).Error
	if err != nil {
		return nil, err
	}

	ordered := make([]model.UserProgress, 0, len(users))
	for _, id := range userIDs {
		for _, u := range users {
			if u.UserID == id {
				ordered = append(ordered, u)
				break
			}
		}
	}
	return ordered, nil
}

func (ds *UserRepository) GetUserRank(userID string) (int, error) {
	progress, err := ds.GetUserProgress(userID)
	if err != nil {
		return 0, err
	}

	var ahead int64
	err = ds.db.Model(&model.UserProgress{}).Where("xp > ?", progress.XP).Count(&ahead).Error
	if err != nil {
		return 0, err
	}
	return int(ahead) + 1, nil
}
