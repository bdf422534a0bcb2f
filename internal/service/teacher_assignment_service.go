package service

import (
	"cbt_portal_backend/internal/model"
	"cbt_portal_backend/internal/repository"
	"cbt_portal_backend/internal/util"
	"context"
	"errors"

	"gorm.io/gorm"
)

type AssignmentRequest struct {
	TeacherID  uint   `json:"teacher_id" binding:"required"`
	SubjectID  uint   `json:"subject_id" binding:"required"`
	ClassLevel string `json:"class_level" binding:"required"`
	TermID     uint   `json:"term_id" binding:"required"`
	SessionID  uint   `json:"session_id" binding:"required"`
}

func (r AssignmentRequest) Scope() model.Scope {
	return model.Scope{SubjectID: r.SubjectID, ClassLevel: r.ClassLevel, TermID: r.TermID, SessionID: r.SessionID}
}

type TeacherAssignmentService struct {
	Repo     *repository.TeacherAssignmentRepository
	UserRepo *repository.UserRepository
	Academic *AcademicService
}

func NewTeacherAssignmentService(repo *repository.TeacherAssignmentRepository, userRepo *repository.UserRepository, academic *AcademicService) *TeacherAssignmentService {
	return &TeacherAssignmentService{Repo: repo, UserRepo: userRepo, Academic: academic}
}

func (s *TeacherAssignmentService) Create(ctx context.Context, req *AssignmentRequest) (*model.TeacherAssignment, error) {
	teacher, err := s.UserRepo.FindByID(ctx, req.TeacherID)
	if err != nil {
		return nil, notFound(err, util.ErrUserNotFound)
	}
	if teacher.Role != model.Teacher {
		return nil, util.ErrNotATeacher
	}
	scope, err := s.Academic.ValidateScope(ctx, req.Scope())
	if err != nil {
		return nil, err
	}

	covered, err := s.Repo.Covers(ctx, teacher.ID, scope)
	if err != nil {
		return nil, err
	}
	if covered {
		return nil, util.ErrAssignmentExists
	}

	a := &model.TeacherAssignment{
		TeacherID:  teacher.ID,
		SubjectID:  scope.SubjectID,
		ClassLevel: scope.ClassLevel,
		TermID:     scope.TermID,
		SessionID:  scope.SessionID,
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrAssignmentExists
		}
		return nil, err
	}
	return s.Repo.FindByID(ctx, a.ID)
}

func (s *TeacherAssignmentService) List(ctx context.Context, f repository.AssignmentFilter) ([]model.TeacherAssignment, error) {
	return s.Repo.List(ctx, f)
}

func (s *TeacherAssignmentService) Delete(ctx context.Context, id uint) error {
	err := s.Repo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrAssignmentNotFound
	}
	return err
}

// CanAuthor reports whether user may write questions in scope. Admins always can.
func (s *TeacherAssignmentService) CanAuthor(ctx context.Context, claims *util.Claims, scope model.Scope) (bool, error) {
	switch claims.Role {
	case model.Admin:
		return true, nil
	case model.Teacher:
		return s.Repo.Covers(ctx, claims.UserID, scope)
	default:
		return false, nil
	}
}
