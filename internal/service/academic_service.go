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

type SubjectRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Code     string `json:"code" binding:"omitempty,max=20"`
	IsActive *bool  `json:"is_active"`
}

type TermRequest struct {
	Name     string `json:"name" binding:"required,max=50"`
	IsActive *bool  `json:"is_active"`
}

type SessionRequest struct {
	Name      string `json:"name" binding:"required,max=20"`
	IsCurrent bool   `json:"is_current"`
}

// AcademicContext is what clients need to fill scope pickers.
type AcademicContext struct {
	School         string                  `json:"school"`
	CurrentSession *model.AcademicSession  `json:"current_session"`
	Sessions       []model.AcademicSession `json:"sessions"`
	Terms          []model.Term            `json:"terms"`
	Subjects       []model.Subject         `json:"subjects"`
	ClassLevels    []string                `json:"class_levels"`
}

type AcademicService struct {
	Repo *repository.AcademicRepository
	Cfg  *config.Config
}

func NewAcademicService(repo *repository.AcademicRepository, cfg *config.Config) *AcademicService {
	return &AcademicService{Repo: repo, Cfg: cfg}
}

func notFound(err error, appErr *util.AppError) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return appErr
	}
	return err
}

func (s *AcademicService) ClassLevels() []string {
	return s.Cfg.School.ClassLevels
}

func (s *AcademicService) Context(ctx context.Context) (*AcademicContext, error) {
	out := &AcademicContext{School: s.Cfg.School.Name, ClassLevels: s.Cfg.School.ClassLevels}

	current, err := s.Repo.CurrentSession(ctx)
	switch {
	case err == nil:
		out.CurrentSession = current
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}
	if out.Sessions, err = s.Repo.ListSessions(ctx); err != nil {
		return nil, err
	}
	if out.Terms, err = s.Repo.ListTerms(ctx, true); err != nil {
		return nil, err
	}
	if out.Subjects, err = s.Repo.ListSubjects(ctx, true); err != nil {
		return nil, err
	}
	return out, nil
}

// ValidateScope checks that every part of scope exists and returns it with
// the class level normalized.
func (s *AcademicService) ValidateScope(ctx context.Context, scope model.Scope) (model.Scope, error) {
	scope.ClassLevel = strings.ToUpper(strings.TrimSpace(scope.ClassLevel))
	if !s.Cfg.School.HasClassLevel(scope.ClassLevel) {
		return scope, util.ErrInvalidClassLevel
	}
	if _, err := s.Repo.FindSubject(ctx, scope.SubjectID); err != nil {
		return scope, notFound(err, util.ErrSubjectNotFound)
	}
	if _, err := s.Repo.FindTerm(ctx, scope.TermID); err != nil {
		return scope, notFound(err, util.ErrTermNotFound)
	}
	if _, err := s.Repo.FindSession(ctx, scope.SessionID); err != nil {
		return scope, notFound(err, util.ErrSessionNotFound)
	}
	return scope, nil
}

// Subjects

func (s *AcademicService) ListSubjects(ctx context.Context, activeOnly bool) ([]model.Subject, error) {
	return s.Repo.ListSubjects(ctx, activeOnly)
}

func (s *AcademicService) CreateSubject(ctx context.Context, req *SubjectRequest) (*model.Subject, error) {
	subject := &model.Subject{
		Name:     strings.TrimSpace(req.Name),
		Code:     strings.ToUpper(strings.TrimSpace(req.Code)),
		IsActive: true,
	}
	if err := s.Repo.Create(ctx, subject); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ConflictError("Subject already exists")
		}
		return nil, err
	}
	if req.IsActive != nil && !*req.IsActive {
		subject.IsActive = false
		if err := s.Repo.Save(ctx, subject); err != nil {
			return nil, err
		}
	}
	return subject, nil
}

func (s *AcademicService) UpdateSubject(ctx context.Context, id uint, req *SubjectRequest) (*model.Subject, error) {
	subject, err := s.Repo.FindSubject(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrSubjectNotFound)
	}
	subject.Name = strings.TrimSpace(req.Name)
	subject.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	if req.IsActive != nil {
		subject.IsActive = *req.IsActive
	}
	if err := s.Repo.Save(ctx, subject); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ConflictError("Subject already exists")
		}
		return nil, err
	}
	return subject, nil
}

func (s *AcademicService) DeleteSubject(ctx context.Context, id uint) error {
	if _, err := s.Repo.FindSubject(ctx, id); err != nil {
		return notFound(err, util.ErrSubjectNotFound)
	}
	return s.deleteIfUnreferenced(ctx, &model.Subject{}, "subject_id", id)
}

// Terms

func (s *AcademicService) ListTerms(ctx context.Context) ([]model.Term, error) {
	return s.Repo.ListTerms(ctx, false)
}

func (s *AcademicService) CreateTerm(ctx context.Context, req *TermRequest) (*model.Term, error) {
	term := &model.Term{Name: strings.TrimSpace(req.Name), IsActive: true}
	if err := s.Repo.Create(ctx, term); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ConflictError("Term already exists")
		}
		return nil, err
	}
	if req.IsActive != nil && !*req.IsActive {
		term.IsActive = false
		if err := s.Repo.Save(ctx, term); err != nil {
			return nil, err
		}
	}
	return term, nil
}

func (s *AcademicService) UpdateTerm(ctx context.Context, id uint, req *TermRequest) (*model.Term, error) {
	term, err := s.Repo.FindTerm(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrTermNotFound)
	}
	term.Name = strings.TrimSpace(req.Name)
	if req.IsActive != nil {
		term.IsActive = *req.IsActive
	}
	if err := s.Repo.Save(ctx, term); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ConflictError("Term already exists")
		}
		return nil, err
	}
	return term, nil
}

func (s *AcademicService) DeleteTerm(ctx context.Context, id uint) error {
	if _, err := s.Repo.FindTerm(ctx, id); err != nil {
		return notFound(err, util.ErrTermNotFound)
	}
	return s.deleteIfUnreferenced(ctx, &model.Term{}, "term_id", id)
}

// Sessions

func (s *AcademicService) ListSessions(ctx context.Context) ([]model.AcademicSession, error) {
	return s.Repo.ListSessions(ctx)
}

func (s *AcademicService) CreateSession(ctx context.Context, req *SessionRequest) (*model.AcademicSession, error) {
	session := &model.AcademicSession{Name: strings.TrimSpace(req.Name), IsCurrent: req.IsCurrent}
	if err := s.Repo.SaveSession(ctx, session); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ConflictError("Session already exists")
		}
		return nil, err
	}
	return session, nil
}

func (s *AcademicService) UpdateSession(ctx context.Context, id uint, req *SessionRequest) (*model.AcademicSession, error) {
	session, err := s.Repo.FindSession(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrSessionNotFound)
	}
	session.Name = strings.TrimSpace(req.Name)
	session.IsCurrent = req.IsCurrent
	if err := s.Repo.SaveSession(ctx, session); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ConflictError("Session already exists")
		}
		return nil, err
	}
	return session, nil
}

func (s *AcademicService) DeleteSession(ctx context.Context, id uint) error {
	if _, err := s.Repo.FindSession(ctx, id); err != nil {
		return notFound(err, util.ErrSessionNotFound)
	}
	return s.deleteIfUnreferenced(ctx, &model.AcademicSession{}, "session_id", id)
}

func (s *AcademicService) deleteIfUnreferenced(ctx context.Context, value interface{}, column string, id uint) error {
	used, err := s.Repo.Referenced(ctx, column, id)
	if err != nil {
		return err
	}
	if used {
		return util.ErrAcademicInUse
	}
	return s.Repo.Delete(ctx, value, id)
}
