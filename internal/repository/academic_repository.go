package repository

import (
	"cbt_portal_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

// AcademicRepository stores subjects, terms and academic sessions.
type AcademicRepository struct {
	DB *gorm.DB
}

func NewAcademicRepository(db *gorm.DB) *AcademicRepository {
	return &AcademicRepository{DB: db}
}

func (r *AcademicRepository) ListSubjects(ctx context.Context, activeOnly bool) ([]model.Subject, error) {
	var subjects []model.Subject
	q := r.DB.WithContext(ctx).Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&subjects).Error
	return subjects, err
}

func (r *AcademicRepository) FindSubject(ctx context.Context, id uint) (*model.Subject, error) {
	var s model.Subject
	err := r.DB.WithContext(ctx).First(&s, id).Error
	return &s, err
}

func (r *AcademicRepository) ListTerms(ctx context.Context, activeOnly bool) ([]model.Term, error) {
	var terms []model.Term
	q := r.DB.WithContext(ctx).Order("id ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&terms).Error
	return terms, err
}

func (r *AcademicRepository) FindTerm(ctx context.Context, id uint) (*model.Term, error) {
	var t model.Term
	err := r.DB.WithContext(ctx).First(&t, id).Error
	return &t, err
}

func (r *AcademicRepository) ListSessions(ctx context.Context) ([]model.AcademicSession, error) {
	var sessions []model.AcademicSession
	err := r.DB.WithContext(ctx).Order("name DESC").Find(&sessions).Error
	return sessions, err
}

func (r *AcademicRepository) FindSession(ctx context.Context, id uint) (*model.AcademicSession, error) {
	var s model.AcademicSession
	err := r.DB.WithContext(ctx).First(&s, id).Error
	return &s, err
}

func (r *AcademicRepository) CurrentSession(ctx context.Context) (*model.AcademicSession, error) {
	var s model.AcademicSession
	err := r.DB.WithContext(ctx).Where("is_current = ?", true).First(&s).Error
	return &s, err
}

// Create inserts a subject, term or session.
func (r *AcademicRepository) Create(ctx context.Context, value interface{}) error {
	return r.DB.WithContext(ctx).Create(value).Error
}

// Save updates every column of a subject, term or session.
func (r *AcademicRepository) Save(ctx context.Context, value interface{}) error {
	return r.DB.WithContext(ctx).Save(value).Error
}

// SaveSession saves s and, when it is current, clears the flag on every other session.
func (r *AcademicRepository) SaveSession(ctx context.Context, s *model.AcademicSession) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if s.IsCurrent {
			q := tx.Model(&model.AcademicSession{}).Where("is_current = ?", true)
			if s.ID != 0 {
				q = q.Where("id <> ?", s.ID)
			}
			if err := q.Update("is_current", false).Error; err != nil {
				return err
			}
		}
		if s.ID == 0 {
			return tx.Create(s).Error
		}
		return tx.Save(s).Error
	})
}

// Referenced reports whether questions or test codes point at the row
// identified by column (subject_id, term_id or session_id) and id.
func (r *AcademicRepository) Referenced(ctx context.Context, column string, id uint) (bool, error) {
	db := r.DB.WithContext(ctx)
	for _, m := range []interface{}{&model.Question{}, &model.TestCode{}, &model.TeacherAssignment{}} {
		var count int64
		if err := db.Model(m).Where(column+" = ?", id).Count(&count).Error; err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}

// Delete removes a subject, term or session by primary key.
func (r *AcademicRepository) Delete(ctx context.Context, value interface{}, id uint) error {
	return r.DB.WithContext(ctx).Delete(value, id).Error
}
