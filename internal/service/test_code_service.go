package service

import (
	"bytes"
	"cbt_portal_backend/internal/config"
	"cbt_portal_backend/internal/model"
	"cbt_portal_backend/internal/repository"
	"cbt_portal_backend/internal/util"
	"cbt_portal_backend/pkg/logger"
	"cbt_portal_backend/pkg/monitoring"
	"cbt_portal_backend/pkg/tracing"
	"context"
	"encoding/csv"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TestSettingsRequest struct {
	Title            string         `json:"title" binding:"required,max=255"`
	SubjectID        uint           `json:"subject_id" binding:"required"`
	ClassLevel       string         `json:"class_level" binding:"required"`
	TermID           uint           `json:"term_id" binding:"required"`
	SessionID        uint           `json:"session_id" binding:"required"`
	TestType         model.TestType `json:"test_type"`
	DurationMinutes  int            `json:"duration_minutes" binding:"required,min=1,max=600"`
	TotalQuestions   int            `json:"total_questions" binding:"required,min=1,max=500"`
	ScorePerQuestion float64        `json:"score_per_question" binding:"omitempty,gt=0"`
	PassScore        float64        `json:"pass_score" binding:"omitempty,gte=0"`
	ExpiresAt        *time.Time     `json:"expires_at"`
}

func (r TestSettingsRequest) Scope() model.Scope {
	return model.Scope{SubjectID: r.SubjectID, ClassLevel: r.ClassLevel, TermID: r.TermID, SessionID: r.SessionID}
}

type BatchRequest struct {
	TestSettingsRequest
	CodeCount int `json:"code_count" binding:"required,min=1,max=100"`
}

// BatchView is a batch with the usage of its codes.
type BatchView struct {
	model.TestCodeBatch
	UsedCount  int64 `json:"used_count"`
	InUseCount int64 `json:"in_use_count"`
}

type IssuedCode struct {
	ID   uint   `json:"id"`
	Code string `json:"code"`
}

// BatchCreated is returned to the admin right after a batch is issued.
type BatchCreated struct {
	BatchID uint         `json:"batch_id"`
	Codes   []IssuedCode `json:"codes"`
}

func NewBatchCreated(batch *model.TestCodeBatch) *BatchCreated {
	out := &BatchCreated{BatchID: batch.ID, Codes: make([]IssuedCode, 0, len(batch.Codes))}
	for _, c := range batch.Codes {
		out.Codes = append(out.Codes, IssuedCode{ID: c.ID, Code: c.Code})
	}
	return out
}

type TestCodeService struct {
	CodeRepo     *repository.TestCodeRepository
	BatchRepo    *repository.BatchRepository
	QuestionRepo *repository.QuestionRepository
	Academic     *AcademicService
	Generator    CodeGenerator
	Cfg          *config.Config
}

func NewTestCodeService(codeRepo *repository.TestCodeRepository, batchRepo *repository.BatchRepository, questionRepo *repository.QuestionRepository, academic *AcademicService, cfg *config.Config) *TestCodeService {
	return &TestCodeService{
		CodeRepo:     codeRepo,
		BatchRepo:    batchRepo,
		QuestionRepo: questionRepo,
		Academic:     academic,
		Generator:    RandomCodeGenerator{},
		Cfg:          cfg,
	}
}

// settings validates req and checks that the question bank can fill the test.
func (s *TestCodeService) settings(ctx context.Context, req *TestSettingsRequest) (model.TestSettings, error) {
	scope, err := s.Academic.ValidateScope(ctx, req.Scope())
	if err != nil {
		return model.TestSettings{}, err
	}
	testType, err := normalizeTestType(req.TestType)
	if err != nil {
		return model.TestSettings{}, err
	}
	if req.ExpiresAt != nil && req.ExpiresAt.Before(time.Now()) {
		return model.TestSettings{}, util.UnprocessableError("expires_at must be in the future")
	}

	available, err := s.QuestionRepo.CountByScope(ctx, scope)
	if err != nil {
		return model.TestSettings{}, err
	}
	if available < int64(req.TotalQuestions) {
		return model.TestSettings{}, util.ErrInsufficientBank
	}

	spq := req.ScorePerQuestion
	if spq <= 0 {
		spq = s.Cfg.Test.DefaultScorePerQuestion
	}
	return model.TestSettings{
		Title:            strings.TrimSpace(req.Title),
		SubjectID:        scope.SubjectID,
		ClassLevel:       scope.ClassLevel,
		TermID:           scope.TermID,
		SessionID:        scope.SessionID,
		TestType:         testType,
		DurationMinutes:  req.DurationMinutes,
		TotalQuestions:   req.TotalQuestions,
		ScorePerQuestion: spq,
		PassScore:        req.PassScore,
		ExpiresAt:        req.ExpiresAt,
	}, nil
}

// generateCodes returns n distinct codes that are not yet stored. Each code
// gets up to test.code_max_retries attempts.
func (s *TestCodeService) generateCodes(ctx context.Context, n int) ([]string, error) {
	retries := s.Cfg.Test.CodeMaxRetries
	if retries < 1 {
		retries = 1
	}
	budget := n * retries

	codes := make([]string, 0, n)
	seen := make(map[string]bool, n)
	for len(codes) < n {
		candidates := make([]string, 0, n-len(codes))
		for len(candidates) < n-len(codes) {
			if budget == 0 {
				return nil, util.ErrCodeGeneration
			}
			budget--
			c, err := s.Generator.Generate(s.Cfg.Test.CodeLength)
			if err != nil {
				return nil, err
			}
			if seen[c] {
				continue
			}
			seen[c] = true
			candidates = append(candidates, c)
		}

		existing, err := s.CodeRepo.ExistingCodes(ctx, candidates)
		if err != nil {
			return nil, err
		}
		for _, c := range candidates {
			if !existing[c] {
				codes = append(codes, c)
			}
		}
	}
	return codes, nil
}

func (s *TestCodeService) CreateBatch(ctx context.Context, adminID uint, req *BatchRequest) (batch *model.TestCodeBatch, err error) {
	ctx, span := tracing.Tracer.Start(ctx, "TestCodeService.CreateBatch")
	span.SetAttributes(attribute.Int("code_count", req.CodeCount))
	defer func() { tracing.EndSpan(span, err) }()

	if req.CodeCount < 1 || req.CodeCount > s.Cfg.Test.MaxBatchCodes {
		return nil, util.ErrCodeCountOutOfRange
	}
	settings, err := s.settings(ctx, &req.TestSettingsRequest)
	if err != nil {
		return nil, err
	}

	values, err := s.generateCodes(ctx, req.CodeCount)
	if err != nil {
		return nil, err
	}

	batch = &model.TestCodeBatch{
		TestSettings: settings,
		CodeCount:    req.CodeCount,
		IsActive:     true,
		CreatedBy:    adminID,
	}
	codes := make([]model.TestCode, len(values))
	for i, v := range values {
		codes[i] = model.TestCode{
			Code:         v,
			TestSettings: settings,
			IsActive:     true,
			Status:       model.CodeStatusActive,
			CreatedBy:    adminID,
		}
	}

	if err := s.BatchRepo.CreateWithCodes(ctx, batch, codes); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ConflictError("Generated code collided with an existing code, please retry")
		}
		return nil, err
	}

	monitoring.CodesIssued.Add(float64(len(codes)))
	logger.Log.Info("Test code batch created",
		zap.Uint("batchID", batch.ID),
		zap.Int("codes", len(codes)),
		zap.Uint("adminID", adminID))
	return batch, nil
}

func (s *TestCodeService) ListBatches(ctx context.Context, f repository.BatchFilter) ([]BatchView, int64, error) {
	batches, total, err := s.BatchRepo.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	ids := make([]uint, len(batches))
	for i, b := range batches {
		ids[i] = b.ID
	}
	stats, err := s.BatchRepo.CodeStats(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	views := make([]BatchView, len(batches))
	for i, b := range batches {
		st := stats[b.ID]
		views[i] = BatchView{TestCodeBatch: b, UsedCount: st.Used, InUseCount: st.InUse}
	}
	return views, total, nil
}

func (s *TestCodeService) GetBatch(ctx context.Context, id uint) (*BatchView, error) {
	b, err := s.BatchRepo.FindByID(ctx, id, true)
	if err != nil {
		return nil, notFound(err, util.ErrBatchNotFound)
	}
	view := &BatchView{TestCodeBatch: *b}
	for _, c := range b.Codes {
		if c.IsUsed {
			view.UsedCount++
		} else if c.Status == model.CodeStatusUsing {
			view.InUseCount++
		}
	}
	return view, nil
}

// SetBatchActivated flips is_activated on the batch and its unused codes.
func (s *TestCodeService) SetBatchActivated(ctx context.Context, id uint, activated bool) error {
	return notFound(s.BatchRepo.SetFlag(ctx, id, "is_activated", activated), util.ErrBatchNotFound)
}

// SetBatchActive enables or disables the batch and its unused codes.
func (s *TestCodeService) SetBatchActive(ctx context.Context, id uint, active bool) error {
	return notFound(s.BatchRepo.SetFlag(ctx, id, "is_active", active), util.ErrBatchNotFound)
}

func (s *TestCodeService) DeleteBatch(ctx context.Context, id uint) error {
	err := s.BatchRepo.Delete(ctx, id)
	switch {
	case errors.Is(err, repository.ErrBatchHasUsedCodes):
		return util.ErrBatchHasUsedCodes
	case errors.Is(err, gorm.ErrRecordNotFound):
		return util.ErrBatchNotFound
	}
	return err
}

// ExportBatch renders the batch's codes as CSV for printing.
func (s *TestCodeService) ExportBatch(ctx context.Context, id uint) (string, []byte, error) {
	b, err := s.BatchRepo.FindByID(ctx, id, true)
	if err != nil {
		return "", nil, notFound(err, util.ErrBatchNotFound)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"code", "title", "subject", "class_level", "test_type", "duration_minutes", "total_questions", "status", "activated", "used"})
	subject := ""
	if b.Subject != nil {
		subject = b.Subject.Name
	}
	for _, c := range b.Codes {
		_ = w.Write([]string{
			c.Code,
			c.Title,
			subject,
			c.ClassLevel,
			string(c.TestType),
			strconv.Itoa(c.DurationMinutes),
			strconv.Itoa(c.TotalQuestions),
			string(c.Status),
			strconv.FormatBool(c.IsActivated),
			strconv.FormatBool(c.IsUsed),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", nil, err
	}
	return "batch-" + strconv.FormatUint(uint64(b.ID), 10) + "-codes.csv", buf.Bytes(), nil
}

// CreateCode issues one code outside any batch. It starts unactivated.
func (s *TestCodeService) CreateCode(ctx context.Context, adminID uint, req *TestSettingsRequest) (*model.TestCode, error) {
	settings, err := s.settings(ctx, req)
	if err != nil {
		return nil, err
	}
	values, err := s.generateCodes(ctx, 1)
	if err != nil {
		return nil, err
	}
	code := &model.TestCode{
		Code:         values[0],
		TestSettings: settings,
		IsActive:     true,
		Status:       model.CodeStatusActive,
		CreatedBy:    adminID,
	}
	if err := s.CodeRepo.Create(ctx, code); err != nil {
		return nil, err
	}
	monitoring.CodesIssued.Inc()
	return code, nil
}

func (s *TestCodeService) ListCodes(ctx context.Context, f repository.TestCodeFilter) ([]model.TestCode, int64, error) {
	return s.CodeRepo.List(ctx, f)
}

func (s *TestCodeService) GetCode(ctx context.Context, id uint) (*model.TestCode, error) {
	c, err := s.CodeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrTestCodeNotFound)
	}
	return c, nil
}

// toggle flips column on an unused code and returns the new code state.
func (s *TestCodeService) toggle(ctx context.Context, id uint, column string) (*model.TestCode, error) {
	c, err := s.GetCode(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.IsUsed {
		return nil, util.ErrTestCodeUsed
	}

	value := !c.IsActive
	if column == "is_activated" {
		value = !c.IsActivated
	}
	ok, err := s.CodeRepo.SetFlag(ctx, id, column, value)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, util.ErrTestCodeUsed
	}
	return s.GetCode(ctx, id)
}

func (s *TestCodeService) ToggleActivation(ctx context.Context, id uint) (*model.TestCode, error) {
	return s.toggle(ctx, id, "is_activated")
}

func (s *TestCodeService) ToggleActive(ctx context.Context, id uint) (*model.TestCode, error) {
	return s.toggle(ctx, id, "is_active")
}

func (s *TestCodeService) DeleteCode(ctx context.Context, id uint) error {
	c, err := s.GetCode(ctx, id)
	if err != nil {
		return err
	}
	if c.IsUsed {
		return util.ErrTestCodeUsed
	}
	ok, err := s.CodeRepo.DeleteUnused(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return util.ErrTestCodeUsed
	}
	return nil
}
