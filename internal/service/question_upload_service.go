package service

import (
	"bytes"
	"cbt_portal_backend/internal/model"
	"cbt_portal_backend/internal/repository"
	"cbt_portal_backend/internal/util"
	"cbt_portal_backend/pkg/logger"
	"cbt_portal_backend/pkg/monitoring"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// CSVHeader is the required first line of a bulk upload.
var CSVHeader = []string{"question_text", "option_a", "option_b", "option_c", "option_d", "correct_answer"}

type UploadRequest struct {
	SubjectID  uint           `form:"subject_id" binding:"required"`
	ClassLevel string         `form:"class_level" binding:"required"`
	TermID     uint           `form:"term_id" binding:"required"`
	SessionID  uint           `form:"session_id" binding:"required"`
	TestType   model.TestType `form:"test_type"`
}

func (r UploadRequest) Scope() model.Scope {
	return model.Scope{SubjectID: r.SubjectID, ClassLevel: r.ClassLevel, TermID: r.TermID, SessionID: r.SessionID}
}

type UploadSummary struct {
	UploadID     uint     `json:"upload_id"`
	CreatedCount int      `json:"created_count"`
	SkippedCount int      `json:"skipped_count"`
	TotalRows    int      `json:"total_rows"`
	Errors       []string `json:"errors"`
	FileURL      string   `json:"file_url,omitempty"`
}

type QuestionUploadService struct {
	Questions  *QuestionService
	UploadRepo *repository.UploadRepository
	Storage    *StorageService
}

func NewQuestionUploadService(questions *QuestionService, uploadRepo *repository.UploadRepository, storage *StorageService) *QuestionUploadService {
	return &QuestionUploadService{Questions: questions, UploadRepo: uploadRepo, Storage: storage}
}

// Template returns a CSV containing only the header line.
func (s *QuestionUploadService) Template() []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(CSVHeader)
	w.Flush()
	return buf.Bytes()
}

func checkHeader(record []string) error {
	if len(record) != len(CSVHeader) {
		return util.ErrInvalidCSVHeader
	}
	for i, col := range record {
		col = strings.TrimPrefix(col, "\ufeff")
		if !strings.EqualFold(strings.TrimSpace(col), CSVHeader[i]) {
			return util.ErrInvalidCSVHeader
		}
	}
	return nil
}

// Upload imports every valid row of data into scope. Invalid rows are skipped
// and reported as "Row N: reason", N counting data rows from 1.
func (s *QuestionUploadService) Upload(ctx context.Context, claims *util.Claims, req *UploadRequest, fileName string, data []byte) (*UploadSummary, error) {
	scope, err := s.Questions.Academic.ValidateScope(ctx, req.Scope())
	if err != nil {
		return nil, err
	}
	if err := s.Questions.authorize(ctx, claims, scope); err != nil {
		return nil, err
	}
	testType, err := normalizeTestType(req.TestType)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, util.ErrEmptyCSV
	}
	if err != nil {
		return nil, util.ErrInvalidCSVHeader
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	summary := &UploadSummary{Errors: []string{}}
	for row := 1; ; row++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		summary.TotalRows++

		var perr *csv.ParseError
		if errors.As(err, &perr) {
			summary.skip(row, "malformed CSV: "+perr.Err.Error())
			continue
		}
		if err != nil {
			return nil, err
		}
		if len(record) != len(CSVHeader) {
			summary.skip(row, fmt.Sprintf("expected %d columns, got %d", len(CSVHeader), len(record)))
			continue
		}

		content := QuestionContent{
			QuestionText:  record[0],
			OptionA:       record[1],
			OptionB:       record[2],
			OptionC:       record[3],
			OptionD:       record[4],
			CorrectAnswer: record[5],
		}
		if err := content.Validate(); err != nil {
			summary.skip(row, err.Error())
			continue
		}

		q := &model.Question{
			SubjectID:  scope.SubjectID,
			ClassLevel: scope.ClassLevel,
			TermID:     scope.TermID,
			SessionID:  scope.SessionID,
			TestType:   testType,
			TeacherID:  claims.UserID,
		}
		content.apply(q)
		if err := s.Questions.Repo.Create(ctx, q); err != nil {
			logger.Log.Error("Failed to save uploaded question", zap.Int("row", row), zap.Error(err))
			summary.skip(row, "failed to save question")
			continue
		}
		summary.CreatedCount++
	}

	monitoring.CSVRows.WithLabelValues("created").Add(float64(summary.CreatedCount))
	monitoring.CSVRows.WithLabelValues("skipped").Add(float64(summary.SkippedCount))

	summary.FileURL = s.archive(ctx, claims.UserID, data)
	if err := s.record(ctx, claims.UserID, scope, fileName, summary); err != nil {
		logger.Log.Warn("Failed to record question upload", zap.Error(err))
	}
	return summary, nil
}

func (sum *UploadSummary) skip(row int, reason string) {
	sum.SkippedCount++
	sum.Errors = append(sum.Errors, fmt.Sprintf("Row %d: %s", row, reason))
}

func (s *QuestionUploadService) archive(ctx context.Context, teacherID uint, data []byte) string {
	if s.Storage == nil {
		return ""
	}
	key := fmt.Sprintf("question-uploads/%d/%s.csv", teacherID, uuid.NewString())
	url, err := s.Storage.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), util.MimeCSV)
	if err != nil {
		logger.Log.Warn("Failed to archive uploaded CSV", zap.String("key", key), zap.Error(err))
		return ""
	}
	return url
}

func (s *QuestionUploadService) record(ctx context.Context, teacherID uint, scope model.Scope, fileName string, sum *UploadSummary) error {
	errs, err := json.Marshal(sum.Errors)
	if err != nil {
		return err
	}
	u := &model.QuestionUpload{
		TeacherID:    teacherID,
		SubjectID:    scope.SubjectID,
		ClassLevel:   scope.ClassLevel,
		TermID:       scope.TermID,
		SessionID:    scope.SessionID,
		FileName:     fileName,
		FileURL:      sum.FileURL,
		CreatedCount: sum.CreatedCount,
		SkippedCount: sum.SkippedCount,
		TotalRows:    sum.TotalRows,
		Errors:       datatypes.JSON(errs),
	}
	if err := s.UploadRepo.Create(ctx, u); err != nil {
		return err
	}
	sum.UploadID = u.ID
	return nil
}

// History lists uploads: a teacher's own, or everyone's for admins.
func (s *QuestionUploadService) History(ctx context.Context, claims *util.Claims, page repository.Page) ([]model.QuestionUpload, int64, error) {
	teacherID := claims.UserID
	if claims.Role == model.Admin {
		teacherID = 0
	}
	return s.UploadRepo.ListByTeacher(ctx, teacherID, page)
}
