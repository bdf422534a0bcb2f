package service

import (
	"cbt_portal_backend/internal/repository"
	"cbt_portal_backend/internal/testutil"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_EmptySchool(t *testing.T) {
	h := newHarness(t)
	stats, err := h.Dashboard.AdminStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Questions.Total)
	assert.Zero(t, stats.CompletionRate)
	assert.Zero(t, stats.AverageScore)
	assert.Nil(t, stats.MostActiveSubject)
	assert.EqualValues(t, 1, stats.Teachers.Total)
	assert.EqualValues(t, 2, stats.Students.Total)
}

func TestDashboard_AdminStats(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	f := h.Fixture
	questions := testutil.AddQuestions(t, h.DB, f.Scope, f.Teacher.ID, 4)

	first := testutil.AddCode(t, h.DB, "DASH0001", f.Scope, f.Admin.ID, 4, 30)
	second := testutil.AddCode(t, h.DB, "DASH0002", f.Scope, f.Admin.ID, 4, 30)
	testutil.AddCode(t, h.DB, "DASH0003", f.Scope, f.Admin.ID, 4, 30)
	testutil.AddCode(t, h.DB, "DASH0004", f.Scope, f.Admin.ID, 4, 30)

	all := map[string]string{}
	for _, q := range questions {
		all[idKey(q.ID)] = q.CorrectAnswer
	}
	half := map[string]string{
		idKey(questions[0].ID): questions[0].CorrectAnswer,
		idKey(questions[1].ID): questions[1].CorrectAnswer,
	}
	_, err := h.Taking.Submit(ctx, f.Student.ID, &SubmitRequest{TestCode: first.Code, Answers: all, TimeTaken: 100})
	require.NoError(t, err)
	_, err = h.Taking.Submit(ctx, f.Student2.ID, &SubmitRequest{TestCode: second.Code, Answers: half, TimeTaken: 100})
	require.NoError(t, err)

	stats, err := h.Dashboard.AdminStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, stats.Questions.Total)
	assert.EqualValues(t, 4, stats.TestCodes.Total)
	assert.EqualValues(t, 4, stats.TestCodes.Activated)
	assert.EqualValues(t, 2, stats.TestCodes.Used)
	assert.EqualValues(t, 2, stats.CompletedTests)
	assert.Equal(t, 50.0, stats.CompletionRate)
	assert.Equal(t, 75.0, stats.AverageScore)
	require.NotNil(t, stats.MostActiveSubject)
	assert.Equal(t, "Mathematics", stats.MostActiveSubject.Name)

	results, total, err := h.Dashboard.Results(ctx, repository.ResultFilter{SubjectID: f.Scope.SubjectID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, r := range results {
		assert.Equal(t, "Mathematics", r.Subject)
		assert.True(t, r.GradedWithoutShuffle)
	}
}

func TestDashboard_TeacherStats(t *testing.T) {
	h := newHarness(t)
	f := h.Fixture
	testutil.AddQuestions(t, h.DB, f.Scope, f.Teacher.ID, 3)

	stats, err := h.Dashboard.TeacherStats(context.Background(), f.Teacher.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.QuestionCount)
	require.Len(t, stats.Assignments, 1)
	assert.EqualValues(t, 3, stats.Assignments[0].QuestionCount)
	assert.Equal(t, "First Term", stats.Assignments[0].TermName)
}
