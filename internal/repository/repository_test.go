package repository

import (
	"cbt_portal_backend/internal/model"
	"cbt_portal_backend/internal/testutil"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepository_ListFilter(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.Seed(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	inactive := &model.User{Username: "sleepy", Password: "x", Role: model.Student, FullName: "Sleepy Student", IsActive: false}
	require.NoError(t, repo.Create(ctx, inactive))

	no := false
	testCases := []struct {
		name   string
		filter UserFilter
		want   int64
	}{
		{"all", UserFilter{}, 5},
		{"students", UserFilter{Role: model.Student}, 3},
		{"inactive", UserFilter{IsActive: &no}, 1},
		{"search", UserFilter{Search: "teach"}, 1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, total, err := repo.List(ctx, tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.want, total)
		})
	}

	has, err := repo.HasDependents(ctx, f.Teacher.ID)
	require.NoError(t, err)
	assert.True(t, has, "teacher has an assignment")

	has, err = repo.HasDependents(ctx, f.Student.ID)
	require.NoError(t, err)
	assert.False(t, has)

	taken, err := repo.UsernameTaken(ctx, "teacher", 0)
	require.NoError(t, err)
	assert.True(t, taken)
	taken, err = repo.UsernameTaken(ctx, "teacher", f.Teacher.ID)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestTestCodeRepository_ClaimAndRelease(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.Seed(t, db)
	repo := NewTestCodeRepository(db)
	ctx := context.Background()
	code := testutil.AddCode(t, db, "CLAIM001", f.Scope, f.Admin.ID, 5, 30)

	ok, err := repo.Claim(ctx, code.ID, f.Student.ID, time.Now())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Claim(ctx, code.ID, f.Student.ID, time.Now())
	require.NoError(t, err)
	assert.True(t, ok, "same student reclaims")

	ok, err = repo.Claim(ctx, code.ID, f.Student2.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, ok, "another student cannot claim")

	ok, err = repo.Release(ctx, code.ID, f.Student2.ID)
	require.NoError(t, err)
	assert.False(t, ok, "only the claimer releases")

	ok, err = repo.Release(ctx, code.ID, f.Student.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	reloaded, err := repo.FindByCode(ctx, "CLAIM001")
	require.NoError(t, err)
	assert.Equal(t, model.CodeStatusActive, reloaded.Status)
	assert.Nil(t, reloaded.ClaimedBy)
}

func TestResultRepository_Submit(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.Seed(t, db)
	qs := testutil.AddQuestions(t, db, f.Scope, f.Teacher.ID, 2)
	code := testutil.AddCode(t, db, "SUBMIT01", f.Scope, f.Admin.ID, 2, 30)
	repo := NewResultRepository(db)
	ctx := context.Background()

	newResult := func(studentID, codeID uint) *model.TestResult {
		return &model.TestResult{
			TestCodeID:       codeID,
			StudentID:        studentID,
			SubjectID:        f.Scope.SubjectID,
			ClassLevel:       f.Scope.ClassLevel,
			TermID:           f.Scope.TermID,
			SessionID:        f.Scope.SessionID,
			Score:            1,
			TotalQuestions:   2,
			CorrectAnswers:   1,
			ScorePerQuestion: 1,
			TimeTaken:        60,
			SubmittedAt:      time.Now(),
			Answers: []model.TestAnswer{
				{QuestionID: qs[0].ID, SelectedAnswer: "A", IsCorrect: true},
				{QuestionID: qs[1].ID, SelectedAnswer: "A", IsCorrect: false},
			},
		}
	}

	result := newResult(f.Student.ID, code.ID)
	require.NoError(t, repo.Submit(ctx, result))
	assert.NotZero(t, result.ID)
	assert.Len(t, result.Answers, 2)

	var stored model.TestCode
	require.NoError(t, db.First(&stored, code.ID).Error)
	assert.True(t, stored.IsUsed)
	assert.Equal(t, model.CodeStatusUsed, stored.Status)
	require.NotNil(t, stored.UsedBy)
	assert.Equal(t, f.Student.ID, *stored.UsedBy)

	err := repo.Submit(ctx, newResult(f.Student2.ID, code.ID))
	assert.ErrorIs(t, err, ErrCodeAlreadyUsed)

	other := testutil.AddCode(t, db, "SUBMIT02", f.Scope, f.Admin.ID, 2, 30)
	err = repo.Submit(ctx, newResult(f.Student.ID, other.ID))
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey), "same scope twice violates the unique index: %v", err)

	require.NoError(t, db.First(&stored, other.ID).Error)
	assert.False(t, stored.IsUsed, "rolled back")

	var answers int64
	db.Model(&model.TestAnswer{}).Count(&answers)
	assert.Equal(t, int64(2), answers)

	exists, err := repo.ExistsForScope(ctx, f.Student.ID, f.Scope)
	require.NoError(t, err)
	assert.True(t, exists)

	list, total, err := repo.List(ctx, ResultFilter{TestType: model.TestTypeCA})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].TestCode)
	assert.Equal(t, "SUBMIT01", list[0].TestCode.Code)
}

func TestBatchRepository_DeleteBlockedByUsedCode(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.Seed(t, db)
	repo := NewBatchRepository(db)
	ctx := context.Background()

	settings := model.TestSettings{
		Title: "Batch", SubjectID: f.Scope.SubjectID, ClassLevel: f.Scope.ClassLevel,
		TermID: f.Scope.TermID, SessionID: f.Scope.SessionID, TestType: model.TestTypeCA,
		DurationMinutes: 30, TotalQuestions: 5, ScorePerQuestion: 1,
	}
	batch := &model.TestCodeBatch{TestSettings: settings, CodeCount: 2, IsActive: true, CreatedBy: f.Admin.ID}
	codes := []model.TestCode{
		{Code: "BATCH001", TestSettings: settings, IsActive: true, Status: model.CodeStatusActive, CreatedBy: f.Admin.ID},
		{Code: "BATCH002", TestSettings: settings, IsActive: true, Status: model.CodeStatusActive, CreatedBy: f.Admin.ID},
	}
	require.NoError(t, repo.CreateWithCodes(ctx, batch, codes))

	require.NoError(t, repo.SetFlag(ctx, batch.ID, "is_activated", true))
	loaded, err := repo.FindByID(ctx, batch.ID, true)
	require.NoError(t, err)
	require.Len(t, loaded.Codes, 2)
	for _, c := range loaded.Codes {
		assert.True(t, c.IsActivated)
	}

	require.NoError(t, db.Model(&model.TestCode{}).Where("code = ?", "BATCH001").Update("is_used", true).Error)
	assert.ErrorIs(t, repo.Delete(ctx, batch.ID), ErrBatchHasUsedCodes)

	require.NoError(t, repo.SetFlag(ctx, batch.ID, "is_activated", false))
	var used model.TestCode
	require.NoError(t, db.Where("code = ?", "BATCH001").First(&used).Error)
	assert.True(t, used.IsActivated, "used codes are never touched")

	stats, err := repo.CodeStats(ctx, []uint{batch.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats[batch.ID].Used)
}

func TestReportRepository(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.Seed(t, db)
	testutil.AddQuestions(t, db, f.Scope, f.Teacher.ID, 3)
	testutil.AddCode(t, db, "REPORT01", f.Scope, f.Admin.ID, 3, 30)
	ctx := context.Background()

	repo, err := NewReportRepository(db)
	require.NoError(t, err)

	byType, err := repo.QuestionsByType(ctx)
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, int64(3), byType[0].Count)

	codes, err := repo.CodeCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, CodeCounts{Total: 1, Active: 1, Activated: 1}, codes)

	students, err := repo.UserCounts(ctx, model.Student)
	require.NoError(t, err)
	assert.Equal(t, UserCounts{Total: 2, Active: 2}, students)

	top, err := repo.MostActiveSubject(ctx)
	require.NoError(t, err)
	require.NotNil(t, top)
	assert.Equal(t, "Mathematics", top.Name)

	avg, err := repo.AverageScoreRatio(ctx)
	require.NoError(t, err)
	assert.Zero(t, avg)

	perAssignment, err := repo.AssignmentQuestionCounts(ctx, f.Teacher.ID)
	require.NoError(t, err)
	require.Len(t, perAssignment, 1)
	assert.Equal(t, int64(3), perAssignment[0].QuestionCount)
	assert.Equal(t, "First Term", perAssignment[0].TermName)

	_, err = repo.Count(ctx, "users; DROP TABLE users")
	assert.Error(t, err)
}
