package service

import (
	"cbt_portal_backend/internal/model"
	"cbt_portal_backend/internal/testutil"
	"cbt_portal_backend/internal/util"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestTaking_EndToEnd(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	f := h.Fixture
	testutil.AddQuestions(t, h.DB, f.Scope, f.Teacher.ID, 5)

	batch, err := h.Codes.CreateBatch(ctx, f.Admin.ID, &BatchRequest{TestSettingsRequest: h.settings(5, 30), CodeCount: 1})
	require.NoError(t, err)
	require.NoError(t, h.Codes.SetBatchActivated(ctx, batch.ID, true))

	var code model.TestCode
	require.NoError(t, h.DB.Where("batch_id = ?", batch.ID).First(&code).Error)

	info, err := h.Taking.ValidateCode(ctx, f.Student.ID, " "+strings.ToLower(code.Code)+" ")
	require.NoError(t, err)
	assert.Equal(t, code.ID, info.TestID)
	assert.Equal(t, "Mathematics", info.Subject)
	assert.Equal(t, "First Term", info.Term)
	assert.Equal(t, "2025/2026", info.Session)
	assert.Equal(t, 5, info.QuestionCount)

	paper, err := h.Taking.TakeTest(ctx, f.Student.ID, code.Code)
	require.NoError(t, err)
	require.Len(t, paper.Questions, 5)
	for _, q := range paper.Questions {
		require.NotNil(t, q.OptionC)
		require.NotNil(t, q.OptionD)
		var stored model.Question
		require.NoError(t, h.DB.First(&stored, q.ID).Error)
		assert.ElementsMatch(t,
			[]string{stored.OptionA, stored.OptionB, *stored.OptionC, *stored.OptionD},
			[]string{q.OptionA, q.OptionB, *q.OptionC, *q.OptionD})
	}

	answers := h.correctAnswers(t, &code, f.Student, paper)
	resp, err := h.Taking.Submit(ctx, f.Student.ID, &SubmitRequest{TestCode: code.Code, Answers: answers, TimeTaken: 600})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.CorrectAnswers)
	assert.Equal(t, 5.0, resp.Score)
	assert.Equal(t, 5.0, resp.MaxPossibleScore)
	assert.Equal(t, 100.0, resp.Percentage)
	assert.Equal(t, "5/5", resp.ScoreDisplay)
	assert.True(t, resp.Passed)
	assert.Len(t, resp.Breakdown, 5)

	_, err = h.Taking.Submit(ctx, f.Student.ID, &SubmitRequest{TestCode: code.Code, Answers: answers, TimeTaken: 600})
	assert.Equal(t, util.ErrTestCodeUsed, err)

	var stored model.TestCode
	require.NoError(t, h.DB.First(&stored, code.ID).Error)
	assert.True(t, stored.IsUsed)
	assert.Equal(t, model.CodeStatusUsed, stored.Status)
	require.NotNil(t, stored.UsedBy)
	assert.Equal(t, f.Student.ID, *stored.UsedBy)

	_, err = h.Shuffle.Load(ctx, code.ID, f.Student.ID)
	assert.ErrorIs(t, err, ErrMappingNotFound)

	var answerRows int64
	require.NoError(t, h.DB.Model(&model.TestAnswer{}).Where("result_id = ?", resp.ResultID).Count(&answerRows).Error)
	assert.EqualValues(t, 5, answerRows)

	results, total, err := h.Taking.Results(ctx, f.Student.ID, repositoryPage())
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Mathematics", results[0].Subject)
	assert.Equal(t, 100.0, results[0].Percentage)
}

func TestTestTaking_ValidateOrder(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	f := h.Fixture
	testutil.AddQuestions(t, h.DB, f.Scope, f.Teacher.ID, 3)

	_, err := h.Taking.ValidateCode(ctx, f.Student.ID, "NOPE1234")
	assert.Equal(t, util.ErrTestCodeNotFound, err)

	inactive := testutil.AddCode(t, h.DB, "INACTIVE", f.Scope, f.Admin.ID, 3, 10)
	require.NoError(t, h.DB.Model(inactive).Update("is_active", false).Error)
	_, err = h.Taking.ValidateCode(ctx, f.Student.ID, "INACTIVE")
	assert.Equal(t, util.ErrTestCodeInactive, err)

	pending := testutil.AddCode(t, h.DB, "PENDING1", f.Scope, f.Admin.ID, 3, 10)
	require.NoError(t, h.DB.Model(pending).Update("is_activated", false).Error)
	_, err = h.Taking.ValidateCode(ctx, f.Student.ID, "PENDING1")
	assert.Equal(t, util.ErrTestCodeNotActive, err)

	expired := testutil.AddCode(t, h.DB, "EXPIRED1", f.Scope, f.Admin.ID, 3, 10)
	require.NoError(t, h.DB.Model(expired).Update("expires_at", time.Now().Add(-time.Hour)).Error)
	_, err = h.Taking.ValidateCode(ctx, f.Student.ID, "EXPIRED1")
	assert.Equal(t, util.ErrTestCodeExpired, err)

	testutil.AddCode(t, h.DB, "TOOMANY1", f.Scope, f.Admin.ID, 4, 10)
	_, err = h.Taking.ValidateCode(ctx, f.Student.ID, "TOOMANY1")
	assert.Equal(t, util.ErrInsufficientBank, err)
}

func TestTestTaking_ClaimAndCancel(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	f := h.Fixture
	testutil.AddQuestions(t, h.DB, f.Scope, f.Teacher.ID, 4)
	testutil.AddCode(t, h.DB, "CLAIM001", f.Scope, f.Admin.ID, 4, 20)

	_, err := h.Taking.TakeTest(ctx, f.Student.ID, "CLAIM001")
	require.NoError(t, err)

	_, err = h.Taking.ValidateCode(ctx, f.Student2.ID, "CLAIM001")
	assert.Equal(t, util.ErrTestCodeInUse, err)
	_, err = h.Taking.TakeTest(ctx, f.Student2.ID, "CLAIM001")
	assert.Equal(t, util.ErrTestCodeInUse, err)
	_, err = h.Taking.Submit(ctx, f.Student2.ID, &SubmitRequest{TestCode: "CLAIM001", TimeTaken: 10})
	assert.Equal(t, util.ErrTestCodeInUse, err)

	assert.Equal(t, util.ErrNotClaimed, h.Taking.CancelTest(ctx, f.Student2.ID, "CLAIM001"))
	require.NoError(t, h.Taking.CancelTest(ctx, f.Student.ID, "CLAIM001"))

	var code model.TestCode
	require.NoError(t, h.DB.Where("code = ?", "CLAIM001").First(&code).Error)
	assert.Equal(t, model.CodeStatusActive, code.Status)
	assert.Nil(t, code.ClaimedBy)
	_, err = h.Shuffle.Load(ctx, code.ID, f.Student.ID)
	assert.ErrorIs(t, err, ErrMappingNotFound)

	_, err = h.Taking.TakeTest(ctx, f.Student2.ID, "CLAIM001")
	assert.NoError(t, err)
}

func TestTestTaking_ReloadAndTimeLimit(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	f := h.Fixture
	testutil.AddQuestions(t, h.DB, f.Scope, f.Teacher.ID, 10)
	code := testutil.AddCode(t, h.DB, "RELOAD01", f.Scope, f.Admin.ID, 5, 30)

	first, err := h.Taking.TakeTest(ctx, f.Student.ID, code.Code)
	require.NoError(t, err)
	second, err := h.Taking.TakeTest(ctx, f.Student.ID, code.Code)
	require.NoError(t, err)
	assert.Equal(t, first.Questions, second.Questions)
	assert.Equal(t, first.StartedAt.Unix(), second.StartedAt.Unix())

	_, err = h.Taking.Submit(ctx, f.Student.ID, &SubmitRequest{TestCode: code.Code, TimeTaken: 30 * 60 * 12 / 10})
	assert.Equal(t, util.ErrTimeLimitExceeded, err)

	var stored model.TestCode
	require.NoError(t, h.DB.First(&stored, code.ID).Error)
	assert.False(t, stored.IsUsed)

	resp, err := h.Taking.Submit(ctx, f.Student.ID, &SubmitRequest{TestCode: code.Code, TimeTaken: 30 * 60 * 11 / 10})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.TotalQuestions)
}

func TestTestTaking_OnlyDeliveredQuestionsCount(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	f := h.Fixture
	questions := testutil.AddQuestions(t, h.DB, f.Scope, f.Teacher.ID, 6)
	code := testutil.AddCode(t, h.DB, "SUBSET01", f.Scope, f.Admin.ID, 3, 30)

	paper, err := h.Taking.TakeTest(ctx, f.Student.ID, code.Code)
	require.NoError(t, err)
	answers := h.correctAnswers(t, code, f.Student, paper)

	delivered := map[uint]bool{}
	for _, q := range paper.Questions {
		delivered[q.ID] = true
	}
	for _, q := range questions {
		if !delivered[q.ID] {
			answers[idKey(q.ID)] = q.CorrectAnswer
		}
	}
	answers["not-an-id"] = "A"

	resp, err := h.Taking.Submit(ctx, f.Student.ID, &SubmitRequest{TestCode: code.Code, Answers: answers, TimeTaken: 60})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.CorrectAnswers)
	assert.Len(t, resp.Breakdown, 3)
	for _, b := range resp.Breakdown {
		assert.True(t, delivered[b.QuestionID])
	}
}

func TestTestTaking_UnknownLabelIsIncorrect(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	f := h.Fixture
	testutil.AddQuestions(t, h.DB, f.Scope, f.Teacher.ID, 2)
	code := testutil.AddCode(t, h.DB, "UNKNOWN1", f.Scope, f.Admin.ID, 2, 30)

	paper, err := h.Taking.TakeTest(ctx, f.Student.ID, code.Code)
	require.NoError(t, err)
	answers := map[string]string{}
	for _, q := range paper.Questions {
		answers[idKey(q.ID)] = " e "
	}

	resp, err := h.Taking.Submit(ctx, f.Student.ID, &SubmitRequest{TestCode: code.Code, Answers: answers, TimeTaken: 60})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.CorrectAnswers)
	assert.Equal(t, 0.0, resp.Percentage)
	assert.False(t, resp.Passed)
	for _, b := range resp.Breakdown {
		assert.Equal(t, "E", b.SelectedAnswer)
		assert.False(t, b.IsCorrect)
	}
}

func TestTestTaking_FallbackWithoutMapping(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	f := h.Fixture
	questions := testutil.AddQuestions(t, h.DB, f.Scope, f.Teacher.ID, 4)
	code := testutil.AddCode(t, h.DB, "FALLBACK", f.Scope, f.Admin.ID, 4, 30)

	_, err := h.Taking.TakeTest(ctx, f.Student.ID, code.Code)
	require.NoError(t, err)
	require.NoError(t, h.Shuffle.Delete(ctx, code.ID, f.Student.ID))

	answers := map[string]string{
		idKey(questions[0].ID): questions[0].CorrectAnswer,
		idKey(questions[1].ID): questions[1].CorrectAnswer,
		idKey(questions[2].ID): "D",
	}
	resp, err := h.Taking.Submit(ctx, f.Student.ID, &SubmitRequest{TestCode: code.Code, Answers: answers, TimeTaken: 60})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.CorrectAnswers)
	assert.Equal(t, 50.0, resp.Percentage)

	var result model.TestResult
	require.NoError(t, h.DB.First(&result, resp.ResultID).Error)
	assert.True(t, result.GradedWithoutShuffle)
}

func TestTestTaking_ScopeRetakeBlocked(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	f := h.Fixture
	testutil.AddQuestions(t, h.DB, f.Scope, f.Teacher.ID, 2)
	first := testutil.AddCode(t, h.DB, "FIRST001", f.Scope, f.Admin.ID, 2, 30)
	testutil.AddCode(t, h.DB, "SECOND01", f.Scope, f.Admin.ID, 2, 30)

	_, err := h.Taking.Submit(ctx, f.Student.ID, &SubmitRequest{TestCode: first.Code, TimeTaken: 60})
	require.NoError(t, err)

	_, err = h.Taking.ValidateCode(ctx, f.Student.ID, "SECOND01")
	assert.Equal(t, util.ErrTestAlreadyTaken, err)
	_, err = h.Taking.Submit(ctx, f.Student.ID, &SubmitRequest{TestCode: "SECOND01", TimeTaken: 60})
	assert.Equal(t, util.ErrTestAlreadyTaken, err)

	_, err = h.Taking.ValidateCode(ctx, f.Student2.ID, "SECOND01")
	assert.NoError(t, err)
}

func TestTestTaking_TrueFalseKeepsOrder(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	f := h.Fixture
	_, err := h.Questions.Create(ctx, h.claims(f.Teacher), &QuestionRequest{
		QuestionContent: QuestionContent{QuestionText: "The sky is blue", OptionA: "True", OptionB: "False", CorrectAnswer: "a"},
		SubjectID:       f.Scope.SubjectID,
		ClassLevel:      f.Scope.ClassLevel,
		TermID:          f.Scope.TermID,
		SessionID:       f.Scope.SessionID,
	})
	require.NoError(t, err)
	code := testutil.AddCode(t, h.DB, "TRUEFALS", f.Scope, f.Admin.ID, 1, 5)

	paper, err := h.Taking.TakeTest(ctx, f.Student.ID, code.Code)
	require.NoError(t, err)
	require.Len(t, paper.Questions, 1)
	q := paper.Questions[0]
	assert.Equal(t, "True", q.OptionA)
	assert.Equal(t, "False", q.OptionB)
	assert.Nil(t, q.OptionC)
	assert.Nil(t, q.OptionD)
}
