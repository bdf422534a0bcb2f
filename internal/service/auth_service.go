package service

import (
	"cbt_portal_backend/internal/config"
	"cbt_portal_backend/internal/model"
	"cbt_portal_backend/internal/repository"
	"cbt_portal_backend/internal/util"
	"cbt_portal_backend/pkg/logger"
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      *model.User `json:"user"`
}

type RegisterRequest struct {
	Username     string `json:"username" binding:"required,min=3,max=50"`
	Password     string `json:"password" binding:"required,min=6,max=72"`
	FullName     string `json:"full_name" binding:"required,max=150"`
	Email        string `json:"email" binding:"omitempty,email"`
	MatricNumber string `json:"matric_number" binding:"omitempty,max=50"`
	ClassLevel   string `json:"class_level" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6,max=72"`
}

type AuthService struct {
	UserRepo  *repository.UserRepository
	Blacklist *TokenBlacklist
	Cfg       *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, blacklist *TokenBlacklist, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo:  userRepo,
		Blacklist: blacklist,
		Cfg:       cfg,
	}
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// checkUnique returns a conflict error when username, email or matric number
// already belong to a user other than excludeID.
func checkUnique(ctx context.Context, repo *repository.UserRepository, username string, email, matric *string, excludeID uint) error {
	if username != "" {
		taken, err := repo.UsernameTaken(ctx, username, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return util.ErrUsernameTaken
		}
	}
	if email != nil {
		taken, err := repo.EmailTaken(ctx, *email, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return util.ErrEmailRegistered
		}
	}
	if matric != nil {
		taken, err := repo.MatricTaken(ctx, *matric, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return util.ErrMatricTaken
		}
	}
	return nil
}

// Register creates an active student account.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*model.User, error) {
	classLevel := strings.ToUpper(strings.TrimSpace(req.ClassLevel))
	if !s.Cfg.School.HasClassLevel(classLevel) {
		return nil, util.ErrInvalidClassLevel
	}

	user := &model.User{
		Username:     strings.TrimSpace(req.Username),
		Role:         model.Student,
		FullName:     strings.TrimSpace(req.FullName),
		Email:        util.StringPtr(strings.ToLower(req.Email)),
		MatricNumber: util.StringPtr(strings.ToUpper(req.MatricNumber)),
		ClassLevel:   classLevel,
		IsActive:     true,
	}
	if err := checkUnique(ctx, s.UserRepo, user.Username, user.Email, user.MatricNumber, 0); err != nil {
		return nil, err
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user.Password = hashed

	if err := s.UserRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrUsernameTaken
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	user, err := s.UserRepo.FindByLogin(ctx, strings.TrimSpace(req.Username))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, util.ErrAccountDisabled
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.UserRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		logger.Log.Warn("Failed to record last login", zap.Uint("userID", user.ID), zap.Error(err))
	}
	user.LastLogin = &now

	return &LoginResponse{
		Token:     token,
		ExpiresAt: now.Add(s.Cfg.JWT.ExpireTime),
		User:      user,
	}, nil
}

func (s *AuthService) Me(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uint, req *ChangePasswordRequest) error {
	user, err := s.Me(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return util.ErrWrongPassword
	}
	hashed, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.UserRepo.UpdateFields(ctx, userID, map[string]interface{}{"password": hashed})
}

// Logout revokes the token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, claims *util.Claims) error {
	if s.Blacklist == nil || claims.ID == "" {
		return nil
	}
	return s.Blacklist.Revoke(ctx, claims.ID, claims.TTL())
}
