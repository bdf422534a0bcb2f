package repository

import (
	"cbt_portal_backend/internal/model"
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
)

// UserFilter narrows the admin user listing. Zero values are ignored.
type UserFilter struct {
	Role       model.UserRole `form:"role"`
	ClassLevel string         `form:"class_level"`
	IsActive   *bool          `form:"is_active"`
	Search     string         `form:"search"`
	Page
}

func (f UserFilter) apply(db *gorm.DB) *gorm.DB {
	if f.Role != "" {
		db = db.Where("role = ?", f.Role)
	}
	if f.ClassLevel != "" {
		db = db.Where("class_level = ?", f.ClassLevel)
	}
	if f.IsActive != nil {
		db = db.Where("is_active = ?", *f.IsActive)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		p := likePattern(s)
		db = db.Where("username LIKE ? OR full_name LIKE ? OR email LIKE ? OR matric_number LIKE ?", p, p, p, p)
	}
	return db
}

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	isActive := user.IsActive
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		// gorm skips zero values that have a column default
		if !isActive {
			return tx.Model(user).Update("is_active", false).Error
		}
		return nil
	})
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).First(&user, id).Error
	return &user, err
}

// FindByLogin looks a user up by username or email.
func (r *UserRepository) FindByLogin(ctx context.Context, login string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).
		Where("username = ? OR email = ?", login, login).
		First(&user).Error
	return &user, err
}

func (r *UserRepository) UsernameTaken(ctx context.Context, username string, excludeID uint) (bool, error) {
	return r.taken(ctx, "username", username, excludeID)
}

func (r *UserRepository) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	return r.taken(ctx, "email", email, excludeID)
}

func (r *UserRepository) MatricTaken(ctx context.Context, matric string, excludeID uint) (bool, error) {
	return r.taken(ctx, "matric_number", matric, excludeID)
}

func (r *UserRepository) taken(ctx context.Context, column, value string, excludeID uint) (bool, error) {
	var count int64
	q := r.DB.WithContext(ctx).Model(&model.User{}).Where(column+" = ?", value)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	return r.DB.WithContext(ctx).Save(user).Error
}

func (r *UserRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(fields).Error
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	return r.UpdateFields(ctx, id, map[string]interface{}{"last_login": at})
}

func (r *UserRepository) List(ctx context.Context, filter UserFilter) ([]model.User, int64, error) {
	var (
		users []model.User
		total int64
	)
	q := filter.apply(r.DB.WithContext(ctx).Model(&model.User{}))
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Scopes(filter.paginate()).Order("id DESC").Find(&users).Error
	return users, total, err
}

// HasDependents reports whether questions, results or assignments point at the user.
func (r *UserRepository) HasDependents(ctx context.Context, id uint) (bool, error) {
	db := r.DB.WithContext(ctx)
	checks := []struct {
		model  interface{}
		column string
	}{
		{&model.Question{}, "teacher_id"},
		{&model.TestResult{}, "student_id"},
		{&model.TeacherAssignment{}, "teacher_id"},
		{&model.QuestionUpload{}, "teacher_id"},
	}
	for _, c := range checks {
		var count int64
		if err := db.Model(c.model).Where(c.column+" = ?", id).Count(&count).Error; err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&model.User{}, id).Error
}
