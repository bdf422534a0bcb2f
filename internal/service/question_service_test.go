package service

import (
	"cbt_portal_backend/internal/model"
	"cbt_portal_backend/internal/repository"
	"cbt_portal_backend/internal/testutil"
	"cbt_portal_backend/internal/util"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionContent_Validate(t *testing.T) {
	testCases := []struct {
		name     string
		content  QuestionContent
		wantType model.QuestionType
		wantErr  bool
	}{
		{
			name:     "multiple choice",
			content:  QuestionContent{QuestionText: "2+2", OptionA: "3", OptionB: "4", OptionC: "5", OptionD: "6", CorrectAnswer: " b "},
			wantType: model.MultipleChoice,
		},
		{
			name:     "true false inferred",
			content:  QuestionContent{QuestionText: "Water is wet", OptionA: "True", OptionB: "False", CorrectAnswer: "A"},
			wantType: model.TrueFalse,
		},
		{
			name:    "true false with option C",
			content: QuestionContent{QuestionText: "q", OptionA: "T", OptionB: "F", OptionC: "maybe", CorrectAnswer: "A", QuestionType: model.TrueFalse},
			wantErr: true,
		},
		{
			name:    "true false answer C",
			content: QuestionContent{QuestionText: "q", OptionA: "T", OptionB: "F", CorrectAnswer: "C"},
			wantErr: true,
		},
		{
			name:    "multiple choice missing D",
			content: QuestionContent{QuestionText: "q", OptionA: "1", OptionB: "2", OptionC: "3", CorrectAnswer: "A"},
			wantErr: true,
		},
		{
			name:    "answer out of range",
			content: QuestionContent{QuestionText: "q", OptionA: "1", OptionB: "2", OptionC: "3", OptionD: "4", CorrectAnswer: "E"},
			wantErr: true,
		},
		{
			name:    "empty text",
			content: QuestionContent{QuestionText: "  ", OptionA: "1", OptionB: "2", CorrectAnswer: "A"},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.content.Validate()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantType, tc.content.QuestionType)
		})
	}
}

func (h *harness) questionRequest(text string) *QuestionRequest {
	s := h.Fixture.Scope
	return &QuestionRequest{
		QuestionContent: QuestionContent{QuestionText: text, OptionA: "1", OptionB: "2", OptionC: "3", OptionD: "4", CorrectAnswer: "C"},
		SubjectID:       s.SubjectID,
		ClassLevel:      strings.ToLower(s.ClassLevel),
		TermID:          s.TermID,
		SessionID:       s.SessionID,
	}
}

func TestQuestionService_Permissions(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	f := h.Fixture
	teacher := h.claims(f.Teacher)
	other := h.claims(testutil.CreateUser(t, h.DB, "teacher2", model.Teacher))

	q, err := h.Questions.Create(ctx, teacher, h.questionRequest("What is 1+2?"))
	require.NoError(t, err)
	assert.Equal(t, "JSS1", q.ClassLevel)
	assert.Equal(t, model.TestTypeCA, q.TestType)

	_, err = h.Questions.Create(ctx, other, h.questionRequest("Unassigned"))
	assert.Equal(t, util.ErrNotAssigned, err)

	_, err = h.Questions.Update(ctx, other, q.ID, h.questionRequest("Hijack"))
	assert.Equal(t, util.ErrPermissionDenied, err)

	updated, err := h.Questions.Update(ctx, h.claims(f.Admin), q.ID, h.questionRequest("What is 1+2? (edited)"))
	require.NoError(t, err)
	assert.Equal(t, "What is 1+2? (edited)", updated.QuestionText)

	list, total, err := h.Questions.List(ctx, other, repository.QuestionFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)

	_, total, err = h.Questions.List(ctx, h.claims(f.Admin), repository.QuestionFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestQuestionService_AnsweredQuestionIsLocked(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	f := h.Fixture
	teacher := h.claims(f.Teacher)

	q, err := h.Questions.Create(ctx, teacher, h.questionRequest("Locked"))
	require.NoError(t, err)
	code := testutil.AddCode(t, h.DB, "LOCKED01", f.Scope, f.Admin.ID, 1, 10)
	_, err = h.Taking.Submit(ctx, f.Student.ID, &SubmitRequest{
		TestCode:  code.Code,
		Answers:   map[string]string{idKey(q.ID): "C"},
		TimeTaken: 20,
	})
	require.NoError(t, err)

	_, err = h.Questions.Update(ctx, teacher, q.ID, h.questionRequest("Changed"))
	assert.Equal(t, util.ErrQuestionInUse, err)
	assert.Equal(t, util.ErrQuestionInUse, h.Questions.Delete(ctx, teacher, q.ID))

	free, err := h.Questions.Create(ctx, teacher, h.questionRequest("Free"))
	require.NoError(t, err)
	require.NoError(t, h.Questions.Delete(ctx, teacher, free.ID))
	_, err = h.Questions.Get(ctx, teacher, free.ID)
	assert.Equal(t, util.ErrQuestionNotFound, err)
}

func TestQuestionService_TypeLockedDuringLiveTest(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	f := h.Fixture
	teacher := h.claims(f.Teacher)

	q, err := h.Questions.Create(ctx, teacher, h.questionRequest("Live"))
	require.NoError(t, err)
	code := testutil.AddCode(t, h.DB, "LIVE0001", f.Scope, f.Admin.ID, 1, 10)
	_, err = h.Taking.TakeTest(ctx, f.Student.ID, code.Code)
	require.NoError(t, err)

	toTrueFalse := h.questionRequest("Live")
	toTrueFalse.OptionA, toTrueFalse.OptionB = "True", "False"
	toTrueFalse.OptionC, toTrueFalse.OptionD = "", ""
	toTrueFalse.CorrectAnswer = "A"

	testCases := []struct {
		name    string
		req     *QuestionRequest
		wantErr error
	}{
		{"type change", toTrueFalse, util.ErrQuestionInLiveTest},
		{"text edit", h.questionRequest("Live (edited)"), nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.Questions.Update(ctx, teacher, q.ID, tc.req)
			assert.Equal(t, tc.wantErr, err)
		})
	}

	require.NoError(t, h.Taking.CancelTest(ctx, f.Student.ID, code.Code))
	updated, err := h.Questions.Update(ctx, teacher, q.ID, toTrueFalse)
	require.NoError(t, err)
	assert.Equal(t, model.TrueFalse, updated.QuestionType)
}

func uploadCSV(rows int, badRow int) []byte {
	var b strings.Builder
	b.WriteString("\ufeffQuestion_Text,Option_A,Option_B,Option_C,Option_D,Correct_Answer\n")
	for i := 1; i <= rows; i++ {
		switch {
		case i == badRow:
			fmt.Fprintf(&b, "Question %d,a,b,c,d,E\n", i)
		case i%2 == 0:
			fmt.Fprintf(&b, "Statement %d,True,False,,,b\n", i)
		default:
			fmt.Fprintf(&b, "\"Question %d, with comma\",a,b,c,d,a\n", i)
		}
	}
	return []byte(b.String())
}

func TestQuestionUpload_PartialSuccess(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	f := h.Fixture
	s := f.Scope
	req := &UploadRequest{SubjectID: s.SubjectID, ClassLevel: s.ClassLevel, TermID: s.TermID, SessionID: s.SessionID, TestType: "examination"}

	summary, err := h.Uploads.Upload(ctx, h.claims(f.Teacher), req, "questions.csv", uploadCSV(10, 5))
	require.NoError(t, err)
	assert.Equal(t, 10, summary.TotalRows)
	assert.Equal(t, 9, summary.CreatedCount)
	assert.Equal(t, 1, summary.SkippedCount)
	require.Len(t, summary.Errors, 1)
	assert.True(t, strings.HasPrefix(summary.Errors[0], "Row 5:"), summary.Errors[0])
	assert.NotZero(t, summary.UploadID)

	var tf int64
	require.NoError(t, h.DB.Model(&model.Question{}).Where("question_type = ?", model.TrueFalse).Count(&tf).Error)
	assert.EqualValues(t, 5, tf)
	var exams int64
	require.NoError(t, h.DB.Model(&model.Question{}).Where("test_type = ?", model.TestTypeExamination).Count(&exams).Error)
	assert.EqualValues(t, 9, exams)

	uploads, total, err := h.Uploads.History(ctx, h.claims(f.Teacher), repositoryPage())
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "questions.csv", uploads[0].FileName)
}

func TestQuestionUpload_Rejections(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	f := h.Fixture
	s := f.Scope
	req := &UploadRequest{SubjectID: s.SubjectID, ClassLevel: s.ClassLevel, TermID: s.TermID, SessionID: s.SessionID}

	_, err := h.Uploads.Upload(ctx, h.claims(f.Teacher), req, "q.csv", []byte("text,a,b\nq,1,2\n"))
	assert.Equal(t, util.ErrInvalidCSVHeader, err)

	_, err = h.Uploads.Upload(ctx, h.claims(f.Teacher), req, "q.csv", nil)
	assert.Equal(t, util.ErrEmptyCSV, err)

	other := h.claims(testutil.CreateUser(t, h.DB, "teacher3", model.Teacher))
	_, err = h.Uploads.Upload(ctx, other, req, "q.csv", uploadCSV(1, 0))
	assert.Equal(t, util.ErrNotAssigned, err)

	assert.Equal(t, "question_text,option_a,option_b,option_c,option_d,correct_answer\n", string(h.Uploads.Template()))
}
