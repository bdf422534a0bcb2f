package repository

import (
	"cbt_portal_backend/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrBatchHasUsedCodes is returned by Delete when a member code has been used.
var ErrBatchHasUsedCodes = errors.New("batch has used codes")

type BatchFilter struct {
	SubjectID  uint           `form:"subject_id"`
	ClassLevel string         `form:"class_level"`
	TermID     uint           `form:"term_id"`
	SessionID  uint           `form:"session_id"`
	TestType   model.TestType `form:"test_type"`
	Page
}

type BatchRepository struct {
	DB *gorm.DB
}

func NewBatchRepository(db *gorm.DB) *BatchRepository {
	return &BatchRepository{DB: db}
}

// CreateWithCodes inserts the batch and its codes in one transaction.
func (r *BatchRepository) CreateWithCodes(ctx context.Context, batch *model.TestCodeBatch, codes []model.TestCode) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Codes").Create(batch).Error; err != nil {
			return err
		}
		for i := range codes {
			codes[i].BatchID = &batch.ID
		}
		if err := tx.CreateInBatches(codes, 100).Error; err != nil {
			return err
		}
		batch.Codes = codes
		return nil
	})
}

func (r *BatchRepository) FindByID(ctx context.Context, id uint, withCodes bool) (*model.TestCodeBatch, error) {
	var b model.TestCodeBatch
	q := r.DB.WithContext(ctx).Preload("Subject")
	if withCodes {
		q = q.Preload("Codes", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") })
	}
	err := q.First(&b, id).Error
	return &b, err
}

func (r *BatchRepository) List(ctx context.Context, f BatchFilter) ([]model.TestCodeBatch, int64, error) {
	var (
		list  []model.TestCodeBatch
		total int64
	)
	q := r.DB.WithContext(ctx).Model(&model.TestCodeBatch{})
	if f.SubjectID != 0 {
		q = q.Where("subject_id = ?", f.SubjectID)
	}
	if f.ClassLevel != "" {
		q = q.Where("class_level = ?", f.ClassLevel)
	}
	if f.TermID != 0 {
		q = q.Where("term_id = ?", f.TermID)
	}
	if f.SessionID != 0 {
		q = q.Where("session_id = ?", f.SessionID)
	}
	if f.TestType != "" {
		q = q.Where("test_type = ?", f.TestType)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Scopes(f.paginate()).Preload("Subject").Order("id DESC").Find(&list).Error
	return list, total, err
}

// CodeStats counts used and in-use codes per batch.
type CodeStats struct {
	BatchID uint
	Used    int64
	InUse   int64
}

func (r *BatchRepository) CodeStats(ctx context.Context, batchIDs []uint) (map[uint]CodeStats, error) {
	out := make(map[uint]CodeStats, len(batchIDs))
	if len(batchIDs) == 0 {
		return out, nil
	}
	var rows []CodeStats
	err := r.DB.WithContext(ctx).Model(&model.TestCode{}).
		Select("batch_id, SUM(CASE WHEN is_used THEN 1 ELSE 0 END) AS used, SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS in_use", model.CodeStatusUsing).
		Where("batch_id IN ?", batchIDs).
		Group("batch_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.BatchID] = row
	}
	return out, nil
}

// SetFlag sets is_active or is_activated on the batch and all its unused codes.
func (r *BatchRepository) SetFlag(ctx context.Context, id uint, column string, value bool) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.TestCodeBatch{}).Where("id = ?", id).Update(column, value)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&model.TestCode{}).
			Where("batch_id = ? AND is_used = ?", id, false).
			Update(column, value).Error
	})
}

// Delete removes the batch and its codes unless one of them has been used.
func (r *BatchRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var batch model.TestCodeBatch
		if err := tx.First(&batch, id).Error; err != nil {
			return err
		}
		var used int64
		if err := tx.Model(&model.TestCode{}).Where("batch_id = ? AND is_used = ?", id, true).Count(&used).Error; err != nil {
			return err
		}
		if used > 0 {
			return ErrBatchHasUsedCodes
		}
		if err := tx.Where("batch_id = ?", id).Delete(&model.TestCode{}).Error; err != nil {
			return err
		}
		return tx.Delete(&batch).Error
	})
}
