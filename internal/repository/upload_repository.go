package repository

import (
	"cbt_portal_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

type UploadRepository struct {
	DB *gorm.DB
}

func NewUploadRepository(db *gorm.DB) *UploadRepository {
	return &UploadRepository{DB: db}
}

func (r *UploadRepository) Create(ctx context.Context, u *model.QuestionUpload) error {
	return r.DB.WithContext(ctx).Create(u).Error
}

// ListByTeacher returns a teacher's uploads, newest first. teacherID 0 lists all.
func (r *UploadRepository) ListByTeacher(ctx context.Context, teacherID uint, page Page) ([]model.QuestionUpload, int64, error) {
	var (
		list  []model.QuestionUpload
		total int64
	)
	q := r.DB.WithContext(ctx).Model(&model.QuestionUpload{})
	if teacherID != 0 {
		q = q.Where("teacher_id = ?", teacherID)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Scopes(page.paginate()).Order("id DESC").Find(&list).Error
	return list, total, err
}
