package repository

import (
	"cbt_portal_backend/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrCodeAlreadyUsed is returned by Submit when the code was marked used by a
// concurrent submission.
var ErrCodeAlreadyUsed = errors.New("test code already used")

// ResultFilter narrows the admin result listing. Zero values are ignored.
type ResultFilter struct {
	StudentID  uint           `form:"student_id"`
	SubjectID  uint           `form:"subject_id"`
	ClassLevel string         `form:"class_level"`
	TermID     uint           `form:"term_id"`
	SessionID  uint           `form:"session_id"`
	TestType   model.TestType `form:"test_type"`
	BatchID    uint           `form:"batch_id"`
	Page
}

func (f ResultFilter) apply(db *gorm.DB) *gorm.DB {
	if f.StudentID != 0 {
		db = db.Where("test_results.student_id = ?", f.StudentID)
	}
	if f.SubjectID != 0 {
		db = db.Where("test_results.subject_id = ?", f.SubjectID)
	}
	if f.ClassLevel != "" {
		db = db.Where("test_results.class_level = ?", f.ClassLevel)
	}
	if f.TermID != 0 {
		db = db.Where("test_results.term_id = ?", f.TermID)
	}
	if f.SessionID != 0 {
		db = db.Where("test_results.session_id = ?", f.SessionID)
	}
	if f.TestType != "" || f.BatchID != 0 {
		sub := db.Session(&gorm.Session{NewDB: true}).Model(&model.TestCode{}).Select("id")
		if f.TestType != "" {
			sub = sub.Where("test_type = ?", f.TestType)
		}
		if f.BatchID != 0 {
			sub = sub.Where("batch_id = ?", f.BatchID)
		}
		db = db.Where("test_results.test_code_id IN (?)", sub)
	}
	return db
}

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

// ExistsForCode reports whether the student already has a result for the code.
func (r *ResultRepository) ExistsForCode(ctx context.Context, studentID, codeID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.TestResult{}).
		Where("student_id = ? AND test_code_id = ?", studentID, codeID).
		Count(&count).Error
	return count > 0, err
}

// ExistsForScope reports whether the student already has a result for the scope.
func (r *ResultRepository) ExistsForScope(ctx context.Context, studentID uint, s model.Scope) (bool, error) {
	var count int64
	err := scopeWhere(r.DB.WithContext(ctx).Model(&model.TestResult{}), s).
		Where("student_id = ?", studentID).
		Count(&count).Error
	return count > 0, err
}

// Submit marks the code used by result.StudentID and stores the result with
// its answers, all in one transaction.
func (r *ResultRepository) Submit(ctx context.Context, result *model.TestResult) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.TestCode{}).
			Where("id = ? AND is_used = ?", result.TestCodeID, false).
			Updates(map[string]interface{}{
				"is_used": true,
				"status":  model.CodeStatusUsed,
				"used_by": result.StudentID,
				"used_at": result.SubmittedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCodeAlreadyUsed
		}

		answers := result.Answers
		result.Answers = nil
		if err := tx.Create(result).Error; err != nil {
			return err
		}
		for i := range answers {
			answers[i].ResultID = result.ID
		}
		if len(answers) > 0 {
			if err := tx.CreateInBatches(answers, 200).Error; err != nil {
				return err
			}
		}
		result.Answers = answers
		return nil
	})
}

func (r *ResultRepository) FindByID(ctx context.Context, id uint) (*model.TestResult, error) {
	var res model.TestResult
	err := r.DB.WithContext(ctx).
		Preload("Answers").Preload("TestCode").Preload("TestCode.Subject").Preload("Student").
		First(&res, id).Error
	return &res, err
}

func (r *ResultRepository) List(ctx context.Context, f ResultFilter) ([]model.TestResult, int64, error) {
	var (
		list  []model.TestResult
		total int64
	)
	q := f.apply(r.DB.WithContext(ctx).Model(&model.TestResult{}))
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Scopes(f.paginate()).
		Preload("TestCode").Preload("TestCode.Subject").Preload("Student").
		Order("test_results.submitted_at DESC").
		Find(&list).Error
	return list, total, err
}
