// Package testutil builds throwaway databases, Redis servers and fixtures for
// package tests.
package testutil

import (
	"cbt_portal_backend/internal/config"
	"cbt_portal_backend/internal/model"
	"cbt_portal_backend/pkg/database"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const Password = "password123"

// NewDB returns a migrated in-memory sqlite database private to t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.InitDB(&config.DatabaseConfig{Driver: "sqlite", DSN: "file::memory:"}, true)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// NewRedis starts a miniredis server and returns a client bound to it.
func NewRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, mr
}

// Config returns a config with the defaults the services expect.
func Config() *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{Port: "8080", Mode: "test"},
		Database: config.DatabaseConfig{Driver: "sqlite", DSN: "file::memory:"},
		JWT:      config.JWTConfig{Secret: "test-secret-test-secret-test-secret", ExpireTime: time.Hour},
		Storage:  config.StorageConfig{Type: "none"},
		Test: config.TestConfig{
			CodeLength:              8,
			CodeMaxRetries:          10,
			MaxBatchCodes:           100,
			SubmissionGracePercent:  10,
			ShuffleOptions:          true,
			ShuffleExtraTTLMinutes:  30,
			DefaultScorePerQuestion: 1,
		},
		Upload: config.UploadConfig{MaxCSVSizeMB: 5},
		School: config.SchoolConfig{
			Name:        "Test School",
			ClassLevels: []string{"JSS1", "JSS2", "JSS3", "SS1", "SS2", "SS3"},
		},
	}
}

// Fixture is a school with one subject, term and session, one user per role
// and a second student.
type Fixture struct {
	Admin    *model.User
	Teacher  *model.User
	Student  *model.User
	Student2 *model.User
	Subject  *model.Subject
	Term     *model.Term
	Session  *model.AcademicSession
	Scope    model.Scope
}

func Seed(t *testing.T, db *gorm.DB) *Fixture {
	t.Helper()
	f := &Fixture{
		Admin:    CreateUser(t, db, "admin", model.Admin),
		Teacher:  CreateUser(t, db, "teacher", model.Teacher),
		Student:  CreateUser(t, db, "student", model.Student),
		Student2: CreateUser(t, db, "student2", model.Student),
		Subject:  &model.Subject{Name: "Mathematics", Code: "MTH", IsActive: true},
		Session:  &model.AcademicSession{Name: "2025/2026", IsCurrent: true},
	}
	require.NoError(t, db.Create(f.Subject).Error)
	require.NoError(t, db.Create(f.Session).Error)

	var term model.Term
	require.NoError(t, db.Where("name = ?", "First Term").First(&term).Error)
	f.Term = &term

	f.Scope = model.Scope{SubjectID: f.Subject.ID, ClassLevel: "JSS1", TermID: f.Term.ID, SessionID: f.Session.ID}
	require.NoError(t, db.Create(&model.TeacherAssignment{
		TeacherID:  f.Teacher.ID,
		SubjectID:  f.Scope.SubjectID,
		ClassLevel: f.Scope.ClassLevel,
		TermID:     f.Scope.TermID,
		SessionID:  f.Scope.SessionID,
	}).Error)
	return f
}

func CreateUser(t *testing.T, db *gorm.DB, username string, role model.UserRole) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)
	email := username + "@school.test"
	u := &model.User{
		Username: username,
		Password: string(hash),
		Role:     role,
		FullName: username,
		Email:    &email,
		IsActive: true,
	}
	if role == model.Student {
		u.ClassLevel = "JSS1"
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// AddQuestions inserts n multiple-choice questions in scope whose correct
// answer cycles through A..D.
func AddQuestions(t *testing.T, db *gorm.DB, scope model.Scope, teacherID uint, n int) []model.Question {
	t.Helper()
	labels := []string{"A", "B", "C", "D"}
	qs := make([]model.Question, 0, n)
	for i := 0; i < n; i++ {
		c := fmt.Sprintf("option C %d", i)
		d := fmt.Sprintf("option D %d", i)
		q := model.Question{
			SubjectID:     scope.SubjectID,
			ClassLevel:    scope.ClassLevel,
			TermID:        scope.TermID,
			SessionID:     scope.SessionID,
			QuestionText:  fmt.Sprintf("Question %d", i+1),
			OptionA:       fmt.Sprintf("option A %d", i),
			OptionB:       fmt.Sprintf("option B %d", i),
			OptionC:       &c,
			OptionD:       &d,
			CorrectAnswer: labels[i%len(labels)],
			QuestionType:  model.MultipleChoice,
			TestType:      model.TestTypeCA,
			TeacherID:     teacherID,
		}
		require.NoError(t, db.Create(&q).Error)
		qs = append(qs, q)
	}
	return qs
}

// AddCode inserts an activated, unused test code for scope.
func AddCode(t *testing.T, db *gorm.DB, code string, scope model.Scope, createdBy uint, totalQuestions, durationMinutes int) *model.TestCode {
	t.Helper()
	tc := &model.TestCode{
		Code: code,
		TestSettings: model.TestSettings{
			Title:            "Mathematics CA",
			SubjectID:        scope.SubjectID,
			ClassLevel:       scope.ClassLevel,
			TermID:           scope.TermID,
			SessionID:        scope.SessionID,
			TestType:         model.TestTypeCA,
			DurationMinutes:  durationMinutes,
			TotalQuestions:   totalQuestions,
			ScorePerQuestion: 1,
		},
		IsActive:    true,
		IsActivated: true,
		Status:      model.CodeStatusActive,
		CreatedBy:   createdBy,
	}
	require.NoError(t, db.Create(tc).Error)
	return tc
}
