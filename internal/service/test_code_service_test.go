package service

import (
	"bytes"
	"cbt_portal_backend/internal/model"
	"cbt_portal_backend/internal/testutil"
	"cbt_portal_backend/internal/util"
	"context"
	"encoding/csv"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedGenerator struct{ code string }

func (g fixedGenerator) Generate(int) (string, error) { return g.code, nil }

func TestRandomCodeGenerator(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9]{8}$`)
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		c, err := RandomCodeGenerator{}.Generate(8)
		require.NoError(t, err)
		assert.Regexp(t, pattern, c)
		seen[c] = true
	}
	assert.Greater(t, len(seen), 190)
}

func TestCreateBatch(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	f := h.Fixture
	testutil.AddQuestions(t, h.DB, f.Scope, f.Teacher.ID, 10)

	batch, err := h.Codes.CreateBatch(ctx, f.Admin.ID, &BatchRequest{TestSettingsRequest: h.settings(10, 40), CodeCount: 25})
	require.NoError(t, err)

	var codes []model.TestCode
	require.NoError(t, h.DB.Where("batch_id = ?", batch.ID).Find(&codes).Error)
	require.Len(t, codes, 25)
	distinct := map[string]bool{}
	for _, c := range codes {
		distinct[c.Code] = true
		assert.True(t, c.IsActive)
		assert.False(t, c.IsActivated)
		assert.Equal(t, 10, c.TotalQuestions)
		assert.Equal(t, 1.0, c.ScorePerQuestion)
	}
	assert.Len(t, distinct, 25)

	_, err = h.Taking.ValidateCode(ctx, f.Student.ID, codes[0].Code)
	assert.Equal(t, util.ErrTestCodeNotActive, err)

	require.NoError(t, h.Codes.SetBatchActivated(ctx, batch.ID, true))
	_, err = h.Taking.ValidateCode(ctx, f.Student.ID, codes[0].Code)
	assert.NoError(t, err)

	view, err := h.Codes.GetBatch(ctx, batch.ID)
	require.NoError(t, err)
	assert.Len(t, view.Codes, 25)
	assert.Zero(t, view.UsedCount)

	name, data, err := h.Codes.ExportBatch(ctx, batch.ID)
	require.NoError(t, err)
	assert.Contains(t, name, ".csv")
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 26)
	assert.Equal(t, "code", rows[0][0])
}

func TestCreateBatch_Rejections(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	f := h.Fixture
	testutil.AddQuestions(t, h.DB, f.Scope, f.Teacher.ID, 3)

	_, err := h.Codes.CreateBatch(ctx, f.Admin.ID, &BatchRequest{TestSettingsRequest: h.settings(5, 30), CodeCount: 2})
	assert.Equal(t, util.ErrInsufficientBank, err)

	_, err = h.Codes.CreateBatch(ctx, f.Admin.ID, &BatchRequest{TestSettingsRequest: h.settings(3, 30), CodeCount: 101})
	assert.Equal(t, util.ErrCodeCountOutOfRange, err)

	h.Codes.Generator = fixedGenerator{code: "SAMECODE"}
	_, err = h.Codes.CreateBatch(ctx, f.Admin.ID, &BatchRequest{TestSettingsRequest: h.settings(3, 30), CodeCount: 2})
	assert.ErrorIs(t, err, util.ErrCodeGeneration)

	var count int64
	require.NoError(t, h.DB.Model(&model.TestCodeBatch{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestBatchToggleSkipsUsedCodes(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	f := h.Fixture
	testutil.AddQuestions(t, h.DB, f.Scope, f.Teacher.ID, 2)

	batch, err := h.Codes.CreateBatch(ctx, f.Admin.ID, &BatchRequest{TestSettingsRequest: h.settings(2, 30), CodeCount: 2})
	require.NoError(t, err)
	require.NoError(t, h.Codes.SetBatchActivated(ctx, batch.ID, true))

	var codes []model.TestCode
	require.NoError(t, h.DB.Where("batch_id = ?", batch.ID).Order("id").Find(&codes).Error)
	_, err = h.Taking.Submit(ctx, f.Student.ID, &SubmitRequest{TestCode: codes[0].Code, TimeTaken: 30})
	require.NoError(t, err)

	require.NoError(t, h.Codes.SetBatchActive(ctx, batch.ID, false))
	var used, unused model.TestCode
	require.NoError(t, h.DB.First(&used, codes[0].ID).Error)
	require.NoError(t, h.DB.First(&unused, codes[1].ID).Error)
	assert.True(t, used.IsActive)
	assert.False(t, unused.IsActive)

	assert.Equal(t, util.ErrBatchHasUsedCodes, h.Codes.DeleteBatch(ctx, batch.ID))
}

func TestSingleCodeLifecycle(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	f := h.Fixture
	testutil.AddQuestions(t, h.DB, f.Scope, f.Teacher.ID, 2)

	req := h.settings(2, 15)
	code, err := h.Codes.CreateCode(ctx, f.Admin.ID, &req)
	require.NoError(t, err)
	assert.False(t, code.IsActivated)
	assert.Nil(t, code.BatchID)

	toggled, err := h.Codes.ToggleActivation(ctx, code.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsActivated)

	toggled, err = h.Codes.ToggleActive(ctx, code.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	require.NoError(t, h.Codes.DeleteCode(ctx, code.ID))
	_, err = h.Codes.GetCode(ctx, code.ID)
	assert.Equal(t, util.ErrTestCodeNotFound, err)
}
