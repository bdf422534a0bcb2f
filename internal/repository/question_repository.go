package repository

import (
	"cbt_portal_backend/internal/model"
	"context"
	"strings"

	"gorm.io/gorm"
)

// QuestionFilter narrows question listings. Zero values are ignored.
type QuestionFilter struct {
	SubjectID    uint               `form:"subject_id"`
	ClassLevel   string             `form:"class_level"`
	TermID       uint               `form:"term_id"`
	SessionID    uint               `form:"session_id"`
	QuestionType model.QuestionType `form:"question_type"`
	TestType     model.TestType     `form:"test_type"`
	TeacherID    uint               `form:"teacher_id"`
	Search       string             `form:"search"`
	Page
}

func (f QuestionFilter) apply(db *gorm.DB) *gorm.DB {
	if f.SubjectID != 0 {
		db = db.Where("subject_id = ?", f.SubjectID)
	}
	if f.ClassLevel != "" {
		db = db.Where("class_level = ?", f.ClassLevel)
	}
	if f.TermID != 0 {
		db = db.Where("term_id = ?", f.TermID)
	}
	if f.SessionID != 0 {
		db = db.Where("session_id = ?", f.SessionID)
	}
	if f.QuestionType != "" {
		db = db.Where("question_type = ?", f.QuestionType)
	}
	if f.TestType != "" {
		db = db.Where("test_type = ?", f.TestType)
	}
	if f.TeacherID != 0 {
		db = db.Where("teacher_id = ?", f.TeacherID)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		db = db.Where("question_text LIKE ?", likePattern(s))
	}
	return db
}

func scopeWhere(db *gorm.DB, s model.Scope) *gorm.DB {
	return db.Where("subject_id = ? AND class_level = ? AND term_id = ? AND session_id = ?",
		s.SubjectID, s.ClassLevel, s.TermID, s.SessionID)
}

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return r.DB.WithContext(ctx).Create(q).Error
}

func (r *QuestionRepository) FindByID(ctx context.Context, id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.WithContext(ctx).Preload("Subject").First(&q, id).Error
	return &q, err
}

// FindByIDs returns the questions with the given ids in no particular order.
func (r *QuestionRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Question, error) {
	var qs []model.Question
	if len(ids) == 0 {
		return qs, nil
	}
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) Update(ctx context.Context, q *model.Question) error {
	return r.DB.WithContext(ctx).
		Select("question_text", "option_a", "option_b", "option_c", "option_d",
			"correct_answer", "question_type", "test_type", "subject_id", "class_level", "term_id", "session_id", "updated_at").
		Updates(q).Error
}

func (r *QuestionRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&model.Question{}, id).Error
}

func (r *QuestionRepository) List(ctx context.Context, f QuestionFilter) ([]model.Question, int64, error) {
	var (
		list  []model.Question
		total int64
	)
	q := f.apply(r.DB.WithContext(ctx).Model(&model.Question{}))
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Scopes(f.paginate()).Preload("Subject").Order("id DESC").Find(&list).Error
	return list, total, err
}

// CountByScope is the question inventory for a scope.
func (r *QuestionRepository) CountByScope(ctx context.Context, s model.Scope) (int64, error) {
	var count int64
	err := scopeWhere(r.DB.WithContext(ctx).Model(&model.Question{}), s).Count(&count).Error
	return count, err
}

// IDsByScope returns the id of every question in scope.
func (r *QuestionRepository) IDsByScope(ctx context.Context, s model.Scope) ([]uint, error) {
	var ids []uint
	err := scopeWhere(r.DB.WithContext(ctx).Model(&model.Question{}), s).Order("id ASC").Pluck("id", &ids).Error
	return ids, err
}

// HasAnswers reports whether any submitted answer references the question.
func (r *QuestionRepository) HasAnswers(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.TestAnswer{}).Where("question_id = ?", id).Count(&count).Error
	return count > 0, err
}

// ScopeHasLiveTest reports whether a code for the scope is claimed and not yet submitted.
func (r *QuestionRepository) ScopeHasLiveTest(ctx context.Context, s model.Scope) (bool, error) {
	var count int64
	err := scopeWhere(r.DB.WithContext(ctx).Model(&model.TestCode{}), s).
		Where("status = ? AND is_used = ?", model.CodeStatusUsing, false).
		Count(&count).Error
	return count > 0, err
}
