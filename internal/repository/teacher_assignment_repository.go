package repository

import (
	"cbt_portal_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

type AssignmentFilter struct {
	TeacherID  uint   `form:"teacher_id"`
	SubjectID  uint   `form:"subject_id"`
	ClassLevel string `form:"class_level"`
	TermID     uint   `form:"term_id"`
	SessionID  uint   `form:"session_id"`
}

type TeacherAssignmentRepository struct {
	DB *gorm.DB
}

func NewTeacherAssignmentRepository(db *gorm.DB) *TeacherAssignmentRepository {
	return &TeacherAssignmentRepository{DB: db}
}

func (r *TeacherAssignmentRepository) Create(ctx context.Context, a *model.TeacherAssignment) error {
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *TeacherAssignmentRepository) FindByID(ctx context.Context, id uint) (*model.TeacherAssignment, error) {
	var a model.TeacherAssignment
	err := r.DB.WithContext(ctx).
		Preload("Teacher").Preload("Subject").Preload("Term").Preload("Session").
		First(&a, id).Error
	return &a, err
}

func (r *TeacherAssignmentRepository) List(ctx context.Context, f AssignmentFilter) ([]model.TeacherAssignment, error) {
	q := r.DB.WithContext(ctx).
		Preload("Teacher").Preload("Subject").Preload("Term").Preload("Session")
	if f.TeacherID != 0 {
		q = q.Where("teacher_id = ?", f.TeacherID)
	}
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
	var list []model.TeacherAssignment
	err := q.Order("id DESC").Find(&list).Error
	return list, err
}

// Covers reports whether the teacher is assigned to scope.
func (r *TeacherAssignmentRepository) Covers(ctx context.Context, teacherID uint, scope model.Scope) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.TeacherAssignment{}).
		Where("teacher_id = ? AND subject_id = ? AND class_level = ? AND term_id = ? AND session_id = ?",
			teacherID, scope.SubjectID, scope.ClassLevel, scope.TermID, scope.SessionID).
		Count(&count).Error
	return count > 0, err
}

func (r *TeacherAssignmentRepository) Delete(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&model.TeacherAssignment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
