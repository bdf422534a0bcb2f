package repository

import (
	"cbt_portal_backend/internal/model"
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
)

// TestCodeFilter narrows the admin code listing. Zero values are ignored.
type TestCodeFilter struct {
	SubjectID   uint                 `form:"subject_id"`
	ClassLevel  string               `form:"class_level"`
	TermID      uint                 `form:"term_id"`
	SessionID   uint                 `form:"session_id"`
	TestType    model.TestType       `form:"test_type"`
	Status      model.TestCodeStatus `form:"status"`
	BatchID     uint                 `form:"batch_id"`
	IsActivated *bool                `form:"is_activated"`
	IsActive    *bool                `form:"is_active"`
	Search      string               `form:"search"`
	Page
}

func (f TestCodeFilter) apply(db *gorm.DB) *gorm.DB {
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
	if f.TestType != "" {
		db = db.Where("test_type = ?", f.TestType)
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	if f.BatchID != 0 {
		db = db.Where("batch_id = ?", f.BatchID)
	}
	if f.IsActivated != nil {
		db = db.Where("is_activated = ?", *f.IsActivated)
	}
	if f.IsActive != nil {
		db = db.Where("is_active = ?", *f.IsActive)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		p := likePattern(s)
		db = db.Where("code LIKE ? OR title LIKE ?", strings.ToUpper(p), p)
	}
	return db
}

type TestCodeRepository struct {
	DB *gorm.DB
}

func NewTestCodeRepository(db *gorm.DB) *TestCodeRepository {
	return &TestCodeRepository{DB: db}
}

// Create inserts a single code, keeping explicit false flags that gorm would
// otherwise replace with column defaults.
func (r *TestCodeRepository) Create(ctx context.Context, c *model.TestCode) error {
	isActive := c.IsActive
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		if !isActive {
			return tx.Model(c).Update("is_active", false).Error
		}
		return nil
	})
}

func (r *TestCodeRepository) FindByID(ctx context.Context, id uint) (*model.TestCode, error) {
	var c model.TestCode
	err := r.DB.WithContext(ctx).Preload("Subject").First(&c, id).Error
	return &c, err
}

func (r *TestCodeRepository) FindByCode(ctx context.Context, code string) (*model.TestCode, error) {
	var c model.TestCode
	err := r.DB.WithContext(ctx).Preload("Subject").Where("code = ?", code).First(&c).Error
	return &c, err
}

// ExistingCodes returns which of codes are already stored.
func (r *TestCodeRepository) ExistingCodes(ctx context.Context, codes []string) (map[string]bool, error) {
	found := make(map[string]bool)
	if len(codes) == 0 {
		return found, nil
	}
	var existing []string
	if err := r.DB.WithContext(ctx).Model(&model.TestCode{}).Where("code IN ?", codes).Pluck("code", &existing).Error; err != nil {
		return nil, err
	}
	for _, c := range existing {
		found[c] = true
	}
	return found, nil
}

func (r *TestCodeRepository) List(ctx context.Context, f TestCodeFilter) ([]model.TestCode, int64, error) {
	var (
		list  []model.TestCode
		total int64
	)
	q := f.apply(r.DB.WithContext(ctx).Model(&model.TestCode{}))
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Scopes(f.paginate()).Preload("Subject").Order("id DESC").Find(&list).Error
	return list, total, err
}

// Claim moves an unused code to "using" for studentID. A code already claimed
// by the same student is left as is. It reports false when another student
// holds the code or it has been used meanwhile.
func (r *TestCodeRepository) Claim(ctx context.Context, id, studentID uint, at time.Time) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&model.TestCode{}).
		Where("id = ? AND is_used = ? AND (status = ? OR (status = ? AND claimed_by = ?))",
			id, false, model.CodeStatusActive, model.CodeStatusUsing, studentID).
		Updates(map[string]interface{}{
			"status":     model.CodeStatusUsing,
			"claimed_by": studentID,
			"claimed_at": gorm.Expr("COALESCE(claimed_at, ?)", at),
		})
	return res.RowsAffected == 1, res.Error
}

// Release returns a code claimed by studentID to "active".
func (r *TestCodeRepository) Release(ctx context.Context, id, studentID uint) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&model.TestCode{}).
		Where("id = ? AND is_used = ? AND status = ? AND claimed_by = ?", id, false, model.CodeStatusUsing, studentID).
		Updates(map[string]interface{}{
			"status":     model.CodeStatusActive,
			"claimed_by": nil,
			"claimed_at": nil,
		})
	return res.RowsAffected == 1, res.Error
}

// SetFlag updates is_active or is_activated on an unused code.
func (r *TestCodeRepository) SetFlag(ctx context.Context, id uint, column string, value bool) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&model.TestCode{}).
		Where("id = ? AND is_used = ?", id, false).
		Update(column, value)
	return res.RowsAffected == 1, res.Error
}

// DeleteUnused deletes a code that has not been used. It reports false when
// the code is used or missing.
func (r *TestCodeRepository) DeleteUnused(ctx context.Context, id uint) (bool, error) {
	res := r.DB.WithContext(ctx).Where("id = ? AND is_used = ?", id, false).Delete(&model.TestCode{})
	return res.RowsAffected == 1, res.Error
}
