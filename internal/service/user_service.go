package service

import (
	"cbt_portal_backend/internal/config"
	"cbt_portal_backend/internal/model"
	"cbt_portal_backend/internal/repository"
	"cbt_portal_backend/internal/util"
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

type CreateUserRequest struct {
	Username     string `json:"username" binding:"required,min=3,max=50"`
	Password     string `json:"password" binding:"required,min=6,max=72"`
	Role         string `json:"role" binding:"required,oneof=student teacher admin"`
	FullName     string `json:"full_name" binding:"required,max=150"`
	Email        string `json:"email" binding:"omitempty,email"`
	MatricNumber string `json:"matric_number" binding:"omitempty,max=50"`
	ClassLevel   string `json:"class_level"`
	IsActive     *bool  `json:"is_active"`
}

// UpdateUserRequest changes only the fields that are present.
type UpdateUserRequest struct {
	Username     *string `json:"username" binding:"omitempty,min=3,max=50"`
	Role         *string `json:"role" binding:"omitempty,oneof=student teacher admin"`
	FullName     *string `json:"full_name" binding:"omitempty,max=150"`
	Email        *string `json:"email" binding:"omitempty,email"`
	MatricNumber *string `json:"matric_number" binding:"omitempty,max=50"`
	ClassLevel   *string `json:"class_level"`
	IsActive     *bool   `json:"is_active"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=6,max=72"`
}

type UserService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewUserService(userRepo *repository.UserRepository, cfg *config.Config) *UserService {
	return &UserService{UserRepo: userRepo, Cfg: cfg}
}

func (s *UserService) normalizeClassLevel(role model.UserRole, level string) (string, error) {
	level = strings.ToUpper(strings.TrimSpace(level))
	if role != model.Student {
		return "", nil
	}
	if !s.Cfg.School.HasClassLevel(level) {
		return "", util.ErrInvalidClassLevel
	}
	return level, nil
}

func (s *UserService) Create(ctx context.Context, req *CreateUserRequest) (*model.User, error) {
	role, err := model.ParseUserRole(req.Role)
	if err != nil {
		return nil, util.ErrInvalidRole
	}
	classLevel, err := s.normalizeClassLevel(role, req.ClassLevel)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:   strings.TrimSpace(req.Username),
		Role:       role,
		FullName:   strings.TrimSpace(req.FullName),
		Email:      util.StringPtr(strings.ToLower(req.Email)),
		ClassLevel: classLevel,
		IsActive:   req.IsActive == nil || *req.IsActive,
	}
	if role == model.Student {
		user.MatricNumber = util.StringPtr(strings.ToUpper(req.MatricNumber))
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
		return nil, err
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

func (s *UserService) List(ctx context.Context, filter repository.UserFilter) ([]model.User, int64, error) {
	return s.UserRepo.List(ctx, filter)
}

func (s *UserService) Update(ctx context.Context, id uint, req *UpdateUserRequest) (*model.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var username string
	if req.Username != nil {
		user.Username = strings.TrimSpace(*req.Username)
		username = user.Username
	}
	if req.Role != nil {
		role, err := model.ParseUserRole(*req.Role)
		if err != nil {
			return nil, util.ErrInvalidRole
		}
		user.Role = role
	}
	if req.FullName != nil {
		user.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Email != nil {
		user.Email = util.StringPtr(strings.ToLower(*req.Email))
	}
	if req.MatricNumber != nil {
		user.MatricNumber = util.StringPtr(strings.ToUpper(*req.MatricNumber))
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	level := user.ClassLevel
	if req.ClassLevel != nil {
		level = *req.ClassLevel
	}
	if user.ClassLevel, err = s.normalizeClassLevel(user.Role, level); err != nil {
		return nil, err
	}
	if user.Role != model.Student {
		user.MatricNumber = nil
	}

	if err := checkUnique(ctx, s.UserRepo, username, user.Email, user.MatricNumber, user.ID); err != nil {
		return nil, err
	}
	if err := s.UserRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ToggleActive flips is_active. Admins cannot disable themselves.
func (s *UserService) ToggleActive(ctx context.Context, actorID, id uint) (*model.User, error) {
	if actorID == id {
		return nil, util.BadRequestError("You cannot disable your own account")
	}
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	user.IsActive = !user.IsActive
	if err := s.UserRepo.UpdateFields(ctx, id, map[string]interface{}{"is_active": user.IsActive}); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ResetPassword(ctx context.Context, id uint, req *ResetPasswordRequest) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	hashed, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.UserRepo.UpdateFields(ctx, id, map[string]interface{}{"password": hashed})
}

func (s *UserService) Delete(ctx context.Context, actorID, id uint) error {
	if actorID == id {
		return util.BadRequestError("You cannot delete your own account")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	has, err := s.UserRepo.HasDependents(ctx, id)
	if err != nil {
		return err
	}
	if has {
		return util.ErrUserHasDependents
	}
	return s.UserRepo.Delete(ctx, id)
}
