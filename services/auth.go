package services

import (
	"time"

	"github.com/alphabatem/common/context"
	"github.com/lingo-leap/lingo_api/dto"
	"github.com/lingo-leap/lingo_api/model"
	"github.com/lingo-leap/lingo_api/services/repositories"
	"github.com/lingo-leap/lingo_api/shared"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	context.DefaultService

	sqlSvc         *PostgresService
	jwtSvc         *JWTService
	progressionSvc *ProgressionService

	userRepo *repositories.UserRepository
}

const AUTH_SVC = "auth_svc"

func (svc AuthService) Id() string {
	return AUTH_SVC
}

func (svc *AuthService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	svc.progressionSvc = svc.Service(PROGRESSION_SVC).(*ProgressionService)

	svc.userRepo = repositories.NewUserRepository(svc.sqlSvc.Db())

	return nil
}

// ==================== REGISTRATION ====================

func (svc *AuthService) Register(req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	available, err := svc.userRepo.IsUsernameAvailable(req.Username)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, shared.NewBadRequestError(nil, "Username is already taken")
	}

	available, err = svc.userRepo.IsEmailAvailable(req.Email)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, shared.NewBadRequestError(nil, "Email is already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to hash password")
	}

	user := &model.User{
		Email:    req.Email,
		Username: req.Username,
		Password: string(hashedPassword),
		Role:     model.RoleUser,
		IsActive: true,
	}

	created, err := svc.userRepo.CreateUser(user)
	if err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, shared.NewBadRequestError(err, "Username or email already registered")
		}
		return nil, err
	}

	if err := svc.progressionSvc.InitializeUserProgress(created.ID); err != nil {
		log.WithError(err).WithField("user_id", created.ID).Error("Failed to initialize user progress")
	}

	log.WithFields(log.Fields{
		"user_id":  created.ID,
		"username": created.Username,
	}).Info("User registered")

	return &dto.RegisterResponse{
		UserID:   created.ID,
		Username: created.Username,
		Email:    created.Email,
	}, nil
}

// ==================== LOGIN ====================

func (svc *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := svc.userRepo.GetUserByEmailOrUsername(req.EmailOrUsername)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, shared.NewUnauthorizedError(err, "Invalid credentials")
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, shared.NewUnauthorizedError(nil, "Account is deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, shared.NewUnauthorizedError(err, "Invalid credentials")
	}

	tokenPair, err := svc.jwtSvc.GenerateTokenPair(user.ID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to issue token")
	}

	if err := svc.userRepo.UpdateLastLogin(user.ID); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Warn("Failed to record last login")
	}

	return &dto.LoginResponse{
		UserID:      user.ID,
		Username:    user.Username,
		AccessToken: tokenPair.AccessToken,
		ExpiresIn:   tokenPair.ExpiresIn,
		LastLoginAt: time.Now(),
	}, nil
}

// ==================== ONBOARDING ====================

// Onboard records the self-reported skill level that seeds quiz difficulty
// selection.
func (svc *AuthService) Onboard(userID string, req *dto.OnboardRequest) error {
	if _, err := svc.userRepo.GetUser(userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return shared.NewNotFoundError(err, "User not found")
		}
		return err
	}

	return svc.userRepo.UpdateSkillLevel(userID, req.SkillLevel)
}

func (svc *AuthService) GetUser(userID string) (*model.User, error) {
	user, err := svc.userRepo.GetUser(userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, shared.NewNotFoundError(err, "User not found")
		}
		return nil, err
	}
	return user, nil
}
