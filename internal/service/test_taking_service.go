package service

import (
	"cbt_portal_backend/internal/config"
	"cbt_portal_backend/internal/model"
	"cbt_portal_backend/internal/repository"
	"cbt_portal_backend/internal/util"
	"cbt_portal_backend/pkg/logger"
	"cbt_portal_backend/pkg/monitoring"
	"cbt_portal_backend/pkg/tracing"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TestInfo describes a valid code to the student before the test starts.
type TestInfo struct {
	TestID          uint           `json:"test_id"`
	Code            string         `json:"test_code"`
	Title           string         `json:"title"`
	Subject         string         `json:"subject"`
	ClassLevel      string         `json:"class_level"`
	Term            string         `json:"term"`
	Session         string         `json:"session"`
	DurationMinutes int            `json:"duration_minutes"`
	QuestionCount   int            `json:"question_count"`
	TestType        model.TestType `json:"test_type"`
	ExpiresAt       *time.Time     `json:"expires_at,omitempty"`
}

// PaperQuestion is a question as shown to a student. It never carries the answer.
// Options are in displayed order; true/false questions leave C and D nil.
type PaperQuestion struct {
	ID           uint               `json:"id"`
	QuestionText string             `json:"question_text"`
	OptionA      string             `json:"option_a"`
	OptionB      string             `json:"option_b"`
	OptionC      *string            `json:"option_c"`
	OptionD      *string            `json:"option_d"`
	QuestionType model.QuestionType `json:"question_type"`
}

type TestPaper struct {
	TestInfo
	StartedAt time.Time       `json:"started_at"`
	Questions []PaperQuestion `json:"questions"`
}

type SubmitRequest struct {
	TestCode  string            `json:"test_code" binding:"required"`
	Answers   map[string]string `json:"answers"`
	TimeTaken int               `json:"time_taken" binding:"gte=0"`
}

type AnswerBreakdown struct {
	QuestionID     uint   `json:"question_id"`
	SelectedAnswer string `json:"selected_answer"`
	IsCorrect      bool   `json:"is_correct"`
}

type SubmitResponse struct {
	ResultID         uint              `json:"result_id"`
	Score            float64           `json:"score"`
	MaxPossibleScore float64           `json:"max_possible_score"`
	TotalQuestions   int               `json:"total_questions"`
	CorrectAnswers   int               `json:"correct_answers"`
	Percentage       float64           `json:"percentage"`
	ScoreDisplay     string            `json:"score_display"`
	Passed           bool              `json:"passed"`
	TimeTaken        int               `json:"time_taken"`
	Breakdown        []AnswerBreakdown `json:"breakdown"`
}

// StudentResult is one line of a student's result history.
type StudentResult struct {
	ResultID         uint           `json:"result_id"`
	TestCode         string         `json:"test_code"`
	Title            string         `json:"title"`
	Subject          string         `json:"subject"`
	ClassLevel       string         `json:"class_level"`
	TestType         model.TestType `json:"test_type"`
	Score            float64        `json:"score"`
	MaxPossibleScore float64        `json:"max_possible_score"`
	Percentage       float64        `json:"percentage"`
	Passed           bool           `json:"passed"`
	TimeTaken        int            `json:"time_taken"`
	SubmittedAt      time.Time      `json:"submitted_at"`
}

type TestTakingService struct {
	CodeRepo     *repository.TestCodeRepository
	QuestionRepo *repository.QuestionRepository
	ResultRepo   *repository.ResultRepository
	AcademicRepo *repository.AcademicRepository
	Shuffle      ShuffleStore
	Cfg          *config.Config
	Now          func() time.Time
}

func NewTestTakingService(
	codeRepo *repository.TestCodeRepository,
	questionRepo *repository.QuestionRepository,
	resultRepo *repository.ResultRepository,
	academicRepo *repository.AcademicRepository,
	shuffle ShuffleStore,
	cfg *config.Config,
) *TestTakingService {
	return &TestTakingService{
		CodeRepo:     codeRepo,
		QuestionRepo: questionRepo,
		ResultRepo:   resultRepo,
		AcademicRepo: academicRepo,
		Shuffle:      shuffle,
		Cfg:          cfg,
		Now:          time.Now,
	}
}

// passed uses pass_score when set, otherwise a 50% mark.
func passed(score, percentage, passScore float64) bool {
	if passScore > 0 {
		return score >= passScore
	}
	return percentage >= 50
}

func percentage(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return util.Round2(float64(correct) / float64(total) * 100)
}

// mappingTTL covers the whole submission window plus a safety margin.
func (s *TestTakingService) mappingTTL(code *model.TestCode) time.Duration {
	window := time.Duration(float64(code.DurationMinutes) * float64(time.Minute) * s.Cfg.Test.SubmissionGrace())
	return window + time.Duration(s.Cfg.Test.ShuffleExtraTTLMinutes)*time.Minute
}

func (s *TestTakingService) findCode(ctx context.Context, raw string) (*model.TestCode, error) {
	code, err := s.CodeRepo.FindByCode(ctx, util.NormalizeCode(raw))
	if err != nil {
		return nil, notFound(err, util.ErrTestCodeNotFound)
	}
	return code, nil
}

// checkCode runs the pre-test checks in order and returns the code.
func (s *TestTakingService) checkCode(ctx context.Context, studentID uint, raw string) (*model.TestCode, error) {
	code, err := s.findCode(ctx, raw)
	if err != nil {
		return nil, err
	}
	switch {
	case !code.IsActive:
		return nil, util.ErrTestCodeInactive
	case !code.IsActivated:
		return nil, util.ErrTestCodeNotActive
	case code.IsUsed || code.Status == model.CodeStatusUsed:
		return nil, util.ErrTestCodeUsed
	case code.ClaimedByOther(studentID):
		return nil, util.ErrTestCodeInUse
	case code.Expired(s.Now()):
		return nil, util.ErrTestCodeExpired
	}

	if err := s.checkNotTaken(ctx, studentID, code); err != nil {
		return nil, err
	}

	available, err := s.QuestionRepo.CountByScope(ctx, code.Scope())
	if err != nil {
		return nil, err
	}
	if available < int64(code.TotalQuestions) {
		return nil, util.ErrInsufficientBank
	}
	return code, nil
}

func (s *TestTakingService) checkNotTaken(ctx context.Context, studentID uint, code *model.TestCode) error {
	taken, err := s.ResultRepo.ExistsForCode(ctx, studentID, code.ID)
	if err != nil {
		return err
	}
	if taken {
		return util.ErrTestAlreadyTaken
	}
	taken, err = s.ResultRepo.ExistsForScope(ctx, studentID, code.Scope())
	if err != nil {
		return err
	}
	if taken {
		return util.ErrTestAlreadyTaken
	}
	return nil
}

func (s *TestTakingService) info(ctx context.Context, code *model.TestCode) TestInfo {
	info := TestInfo{
		TestID:          code.ID,
		Code:            code.Code,
		Title:           code.Title,
		ClassLevel:      code.ClassLevel,
		DurationMinutes: code.DurationMinutes,
		QuestionCount:   code.TotalQuestions,
		TestType:        code.TestType,
		ExpiresAt:       code.ExpiresAt,
	}
	if code.Subject != nil {
		info.Subject = code.Subject.Name
	}
	if term, err := s.AcademicRepo.FindTerm(ctx, code.TermID); err == nil {
		info.Term = term.Name
	}
	if session, err := s.AcademicRepo.FindSession(ctx, code.SessionID); err == nil {
		info.Session = session.Name
	}
	return info
}

// ValidateCode checks a code before the student starts the test.
func (s *TestTakingService) ValidateCode(ctx context.Context, studentID uint, raw string) (*TestInfo, error) {
	code, err := s.checkCode(ctx, studentID, raw)
	if err != nil {
		return nil, err
	}
	info := s.info(ctx, code)
	return &info, nil
}

// TakeTest claims the code for the student and returns the question paper.
// A student who reloads gets the same paper back while the mapping lives.
func (s *TestTakingService) TakeTest(ctx context.Context, studentID uint, raw string) (*TestPaper, error) {
	code, err := s.checkCode(ctx, studentID, raw)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	claimed, err := s.CodeRepo.Claim(ctx, code.ID, studentID, now)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, util.ErrTestCodeInUse
	}
	startedAt := now
	if code.ClaimedBy != nil && *code.ClaimedBy == studentID && code.ClaimedAt != nil {
		startedAt = *code.ClaimedAt
	}

	mapping, err := s.Shuffle.Load(ctx, code.ID, studentID)
	if err != nil && !errors.Is(err, ErrMappingNotFound) {
		logger.Log.Warn("Failed to load shuffle mapping, issuing a new paper",
			zap.Uint("codeID", code.ID), zap.Uint("studentID", studentID), zap.Error(err))
	}
	if mapping == nil {
		if mapping, err = s.newMapping(ctx, code, now); err != nil {
			return nil, err
		}
		if err := s.Shuffle.Save(ctx, code.ID, studentID, mapping, s.mappingTTL(code)); err != nil {
			// without a stored mapping grading falls back to stored labels,
			// so the paper must show options in stored order
			logger.Log.Error("Failed to save shuffle mapping, delivering unshuffled options",
				zap.Uint("codeID", code.ID), zap.Uint("studentID", studentID), zap.Error(err))
			unshuffle(mapping)
		}
	}

	questions, err := s.QuestionRepo.FindByIDs(ctx, mapping.QuestionIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*model.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	paper := &TestPaper{TestInfo: s.info(ctx, code), StartedAt: startedAt}
	for _, id := range mapping.QuestionIDs {
		q, ok := byID[id]
		if !ok {
			continue
		}
		paper.Questions = append(paper.Questions, renderQuestion(q, mapping.Options[id]))
	}
	return paper, nil
}

// newMapping draws the questions uniformly without replacement and shuffles
// the options of multiple choice questions.
func (s *TestTakingService) newMapping(ctx context.Context, code *model.TestCode, now time.Time) (*ShuffleMapping, error) {
	ids, err := s.QuestionRepo.IDsByScope(ctx, code.Scope())
	if err != nil {
		return nil, err
	}
	if len(ids) < code.TotalQuestions {
		return nil, util.ErrInsufficientBank
	}
	rand.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	ids = ids[:code.TotalQuestions]

	questions, err := s.QuestionRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	types := make(map[uint]model.QuestionType, len(questions))
	for _, q := range questions {
		types[q.ID] = q.QuestionType
	}

	m := &ShuffleMapping{
		QuestionIDs: ids,
		Options:     make(map[uint]map[string]string, len(ids)),
		IssuedAt:    now,
	}
	for _, id := range ids {
		q := model.Question{QuestionType: types[id]}
		labels := q.OptionLabels()
		stored := append([]string(nil), labels...)
		if q.QuestionType == model.MultipleChoice && s.Cfg.Test.ShuffleOptions {
			rand.Shuffle(len(stored), func(i, j int) { stored[i], stored[j] = stored[j], stored[i] })
		}
		opts := make(map[string]string, len(labels))
		for i, displayed := range labels {
			opts[displayed] = stored[i]
		}
		m.Options[id] = opts
	}
	return m, nil
}

func unshuffle(m *ShuffleMapping) {
	for id, opts := range m.Options {
		identity := make(map[string]string, len(opts))
		for displayed := range opts {
			identity[displayed] = displayed
		}
		m.Options[id] = identity
	}
}

func renderQuestion(q *model.Question, opts map[string]string) PaperQuestion {
	texts := q.Options()
	pq := PaperQuestion{
		ID:           q.ID,
		QuestionText: q.QuestionText,
		QuestionType: q.QuestionType,
	}
	for _, displayed := range q.OptionLabels() {
		stored, ok := opts[displayed]
		if !ok {
			stored = displayed
		}
		text := texts[stored]
		switch displayed {
		case "A":
			pq.OptionA = text
		case "B":
			pq.OptionB = text
		case "C":
			pq.OptionC = &text
		case "D":
			pq.OptionD = &text
		}
	}
	return pq
}

// CancelTest releases a code claimed by the student so it can be taken later.
func (s *TestTakingService) CancelTest(ctx context.Context, studentID uint, raw string) error {
	code, err := s.findCode(ctx, raw)
	if err != nil {
		return err
	}
	if code.IsUsed {
		return util.ErrTestCodeUsed
	}
	released, err := s.CodeRepo.Release(ctx, code.ID, studentID)
	if err != nil {
		return err
	}
	if !released {
		return util.ErrNotClaimed
	}
	if err := s.Shuffle.Delete(ctx, code.ID, studentID); err != nil {
		logger.Log.Warn("Failed to delete shuffle mapping", zap.Uint("codeID", code.ID), zap.Error(err))
	}
	return nil
}

// checkSubmission runs the submission checks in order.
func (s *TestTakingService) checkSubmission(ctx context.Context, studentID uint, req *SubmitRequest) (*model.TestCode, error) {
	code, err := s.findCode(ctx, req.TestCode)
	if err != nil {
		return nil, err
	}
	switch {
	case !code.IsActive:
		return nil, util.ErrTestCodeInactive
	case !code.IsActivated:
		return nil, util.ErrTestCodeNotActive
	case code.Expired(s.Now()):
		return nil, util.ErrTestCodeExpired
	case code.IsUsed || code.Status == model.CodeStatusUsed:
		return nil, util.ErrTestCodeUsed
	case code.ClaimedByOther(studentID):
		return nil, util.ErrTestCodeInUse
	}
	if err := s.checkNotTaken(ctx, studentID, code); err != nil {
		return nil, err
	}

	limit := float64(code.DurationMinutes*60) * s.Cfg.Test.SubmissionGrace()
	if float64(req.TimeTaken) > limit {
		return nil, util.ErrTimeLimitExceeded
	}
	return code, nil
}

// Submit grades the answers and stores the result, marking the code used.
func (s *TestTakingService) Submit(ctx context.Context, studentID uint, req *SubmitRequest) (resp *SubmitResponse, err error) {
	ctx, span := tracing.Tracer.Start(ctx, "TestTakingService.Submit")
	span.SetAttributes(attribute.Int("student_id", int(studentID)))
	defer func() {
		tracing.EndSpan(span, err)
		monitoring.SubmissionCounter.WithLabelValues(submissionOutcome(err)).Inc()
	}()

	code, err := s.checkSubmission(ctx, studentID, req)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("test_code_id", int(code.ID)))

	mapping, err := s.Shuffle.Load(ctx, code.ID, studentID)
	if err != nil {
		if !errors.Is(err, ErrMappingNotFound) {
			logger.Log.Error("Failed to load shuffle mapping", zap.Uint("codeID", code.ID), zap.Error(err))
		}
		logger.Log.Warn("Grading without shuffle mapping",
			zap.Uint("codeID", code.ID), zap.Uint("studentID", studentID))
		monitoring.ShuffleFallbacks.Inc()
		mapping = nil
	}

	answers := normalizeAnswers(req.Answers)
	result, breakdown, err := s.grade(ctx, code, studentID, mapping, answers)
	if err != nil {
		return nil, err
	}
	result.TimeTaken = req.TimeTaken

	if err := s.ResultRepo.Submit(ctx, result); err != nil {
		switch {
		case errors.Is(err, repository.ErrCodeAlreadyUsed):
			return nil, util.ErrTestCodeUsed
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, util.ErrTestAlreadyTaken
		}
		return nil, err
	}

	if mapping != nil {
		if err := s.Shuffle.Delete(ctx, code.ID, studentID); err != nil {
			logger.Log.Warn("Failed to delete shuffle mapping", zap.Uint("codeID", code.ID), zap.Error(err))
		}
	}

	pct := percentage(result.CorrectAnswers, result.TotalQuestions)
	monitoring.ScorePercentage.Observe(pct)
	logger.Log.Info("Test submitted",
		zap.Uint("resultID", result.ID),
		zap.Uint("codeID", code.ID),
		zap.Uint("studentID", studentID),
		zap.Bool("gradedWithoutShuffle", result.GradedWithoutShuffle))

	maxScore := result.MaxScore()
	return &SubmitResponse{
		ResultID:         result.ID,
		Score:            result.Score,
		MaxPossibleScore: maxScore,
		TotalQuestions:   result.TotalQuestions,
		CorrectAnswers:   result.CorrectAnswers,
		Percentage:       pct,
		ScoreDisplay:     fmt.Sprintf("%s/%s", formatScore(result.Score), formatScore(maxScore)),
		Passed:           passed(result.Score, pct, code.PassScore),
		TimeTaken:        result.TimeTaken,
		Breakdown:        breakdown,
	}, nil
}

func submissionOutcome(err error) string {
	var appErr *util.AppError
	switch {
	case err == nil:
		return "accepted"
	case errors.As(err, &appErr) && appErr.Status == 409:
		return "conflict"
	case errors.As(err, &appErr):
		return "rejected"
	default:
		return "error"
	}
}

func formatScore(f float64) string {
	return strconv.FormatFloat(util.Round2(f), 'f', -1, 64)
}

// normalizeAnswers keys answers by question id with trimmed, upper-cased
// labels. Keys that are not ids are dropped.
func normalizeAnswers(raw map[string]string) map[uint]string {
	out := make(map[uint]string, len(raw))
	for k, v := range raw {
		id, err := strconv.ParseUint(strings.TrimSpace(k), 10, 64)
		if err != nil || id == 0 {
			continue
		}
		out[uint(id)] = strings.ToUpper(strings.TrimSpace(v))
	}
	return out
}

// grade scores answers. With a mapping only delivered questions count and
// displayed labels are translated to stored labels. Without one, answers are
// compared to the stored key directly for questions in the code's scope,
// capped at total_questions.
func (s *TestTakingService) grade(ctx context.Context, code *model.TestCode, studentID uint, mapping *ShuffleMapping, answers map[uint]string) (*model.TestResult, []AnswerBreakdown, error) {
	var ids []uint
	if mapping != nil {
		ids = mapping.QuestionIDs
	} else {
		for id := range answers {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	}

	questions, err := s.QuestionRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	byID := make(map[uint]*model.Question, len(questions))
	for i := range questions {
		if questions[i].Scope() == code.Scope() {
			byID[questions[i].ID] = &questions[i]
		}
	}

	result := &model.TestResult{
		TestCodeID:           code.ID,
		StudentID:            studentID,
		SubjectID:            code.SubjectID,
		ClassLevel:           code.ClassLevel,
		TermID:               code.TermID,
		SessionID:            code.SessionID,
		TotalQuestions:       code.TotalQuestions,
		ScorePerQuestion:     code.ScorePerQuestion,
		GradedWithoutShuffle: mapping == nil,
		SubmittedAt:          s.Now(),
	}
	breakdown := make([]AnswerBreakdown, 0, len(answers))

	for _, id := range ids {
		q, ok := byID[id]
		if !ok {
			continue
		}
		selected, answered := answers[id]
		if !answered || selected == "" {
			continue
		}
		if len(breakdown) >= code.TotalQuestions {
			break
		}

		var stored string
		if mapping != nil {
			stored, _ = mapping.StoredLabel(id, selected)
		} else {
			stored = selected
		}
		if _, valid := q.Options()[stored]; !valid {
			stored = ""
		}
		correct := stored != "" && stored == q.CorrectAnswer
		if correct {
			result.CorrectAnswers++
		}
		result.Answers = append(result.Answers, model.TestAnswer{
			QuestionID:     id,
			SelectedAnswer: stored,
			IsCorrect:      correct,
		})
		breakdown = append(breakdown, AnswerBreakdown{QuestionID: id, SelectedAnswer: selected, IsCorrect: correct})
	}

	result.Score = float64(result.CorrectAnswers) * result.ScorePerQuestion
	return result, breakdown, nil
}

// Results lists the student's own results, newest first.
func (s *TestTakingService) Results(ctx context.Context, studentID uint, page repository.Page) ([]StudentResult, int64, error) {
	results, total, err := s.ResultRepo.List(ctx, repository.ResultFilter{StudentID: studentID, Page: page})
	if err != nil {
		return nil, 0, err
	}
	out := make([]StudentResult, 0, len(results))
	for _, r := range results {
		pct := percentage(r.CorrectAnswers, r.TotalQuestions)
		line := StudentResult{
			ResultID:         r.ID,
			ClassLevel:       r.ClassLevel,
			Score:            r.Score,
			MaxPossibleScore: r.MaxScore(),
			Percentage:       pct,
			TimeTaken:        r.TimeTaken,
			SubmittedAt:      r.SubmittedAt,
		}
		passScore := 0.0
		if r.TestCode != nil {
			line.TestCode = r.TestCode.Code
			line.Title = r.TestCode.Title
			line.TestType = r.TestCode.TestType
			passScore = r.TestCode.PassScore
			if r.TestCode.Subject != nil {
				line.Subject = r.TestCode.Subject.Name
			}
		}
		line.Passed = passed(r.Score, pct, passScore)
		out = append(out, line)
	}
	return out, total, nil
}
