package service

import (
	"cbt_portal_backend/internal/model"
	"cbt_portal_backend/internal/repository"
	"cbt_portal_backend/internal/util"
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// QuestionContent is the part of a question shared by the JSON API and CSV rows.
type QuestionContent struct {
	QuestionText  string             `json:"question_text" binding:"required"`
	OptionA       string             `json:"option_a" binding:"required"`
	OptionB       string             `json:"option_b" binding:"required"`
	OptionC       string             `json:"option_c"`
	OptionD       string             `json:"option_d"`
	CorrectAnswer string             `json:"correct_answer" binding:"required"`
	QuestionType  model.QuestionType `json:"question_type"`
}

type QuestionRequest struct {
	QuestionContent
	SubjectID  uint           `json:"subject_id" binding:"required"`
	ClassLevel string         `json:"class_level" binding:"required"`
	TermID     uint           `json:"term_id" binding:"required"`
	SessionID  uint           `json:"session_id" binding:"required"`
	TestType   model.TestType `json:"test_type"`
}

func (r QuestionRequest) Scope() model.Scope {
	return model.Scope{SubjectID: r.SubjectID, ClassLevel: r.ClassLevel, TermID: r.TermID, SessionID: r.SessionID}
}

// normalize trims every field, upper-cases the answer and infers the type
// when it is missing: no C and no D means true/false.
func (c *QuestionContent) normalize() {
	c.QuestionText = strings.TrimSpace(c.QuestionText)
	c.OptionA = strings.TrimSpace(c.OptionA)
	c.OptionB = strings.TrimSpace(c.OptionB)
	c.OptionC = strings.TrimSpace(c.OptionC)
	c.OptionD = strings.TrimSpace(c.OptionD)
	c.CorrectAnswer = strings.ToUpper(strings.TrimSpace(c.CorrectAnswer))
	if c.QuestionType == "" {
		if c.OptionC == "" && c.OptionD == "" {
			c.QuestionType = model.TrueFalse
		} else {
			c.QuestionType = model.MultipleChoice
		}
	}
}

// Validate normalizes c and checks the option rules of its question type.
func (c *QuestionContent) Validate() error {
	c.normalize()
	switch {
	case c.QuestionText == "":
		return errors.New("question text is required")
	case c.OptionA == "" || c.OptionB == "":
		return errors.New("options A and B are required")
	}

	switch c.QuestionType {
	case model.TrueFalse:
		if c.OptionC != "" || c.OptionD != "" {
			return errors.New("true/false questions must not have options C or D")
		}
		if c.CorrectAnswer != "A" && c.CorrectAnswer != "B" {
			return fmt.Errorf("correct answer for a true/false question must be A or B, got %q", c.CorrectAnswer)
		}
	case model.MultipleChoice:
		if c.OptionC == "" || c.OptionD == "" {
			return errors.New("multiple choice questions require options A, B, C and D")
		}
		switch c.CorrectAnswer {
		case "A", "B", "C", "D":
		default:
			return fmt.Errorf("correct answer must be one of A, B, C or D, got %q", c.CorrectAnswer)
		}
	default:
		return fmt.Errorf("unknown question type %q", c.QuestionType)
	}
	return nil
}

func (c *QuestionContent) apply(q *model.Question) {
	q.QuestionText = c.QuestionText
	q.OptionA = c.OptionA
	q.OptionB = c.OptionB
	q.OptionC = util.StringPtr(c.OptionC)
	q.OptionD = util.StringPtr(c.OptionD)
	q.CorrectAnswer = c.CorrectAnswer
	q.QuestionType = c.QuestionType
}

func normalizeTestType(t model.TestType) (model.TestType, error) {
	switch strings.ToLower(strings.TrimSpace(string(t))) {
	case "", "ca":
		return model.TestTypeCA, nil
	case "examination", "exam":
		return model.TestTypeExamination, nil
	}
	return "", util.UnprocessableError("test_type must be CA or Examination")
}

type QuestionService struct {
	Repo        *repository.QuestionRepository
	Assignments *TeacherAssignmentService
	Academic    *AcademicService
}

func NewQuestionService(repo *repository.QuestionRepository, assignments *TeacherAssignmentService, academic *AcademicService) *QuestionService {
	return &QuestionService{Repo: repo, Assignments: assignments, Academic: academic}
}

func (s *QuestionService) authorize(ctx context.Context, claims *util.Claims, scope model.Scope) error {
	ok, err := s.Assignments.CanAuthor(ctx, claims, scope)
	if err != nil {
		return err
	}
	if !ok {
		return util.ErrNotAssigned
	}
	return nil
}

func (s *QuestionService) Create(ctx context.Context, claims *util.Claims, req *QuestionRequest) (*model.Question, error) {
	scope, err := s.Academic.ValidateScope(ctx, req.Scope())
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, claims, scope); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, util.UnprocessableError(err.Error())
	}
	testType, err := normalizeTestType(req.TestType)
	if err != nil {
		return nil, err
	}

	q := &model.Question{
		SubjectID:  scope.SubjectID,
		ClassLevel: scope.ClassLevel,
		TermID:     scope.TermID,
		SessionID:  scope.SessionID,
		TestType:   testType,
		TeacherID:  claims.UserID,
	}
	req.apply(q)
	if err := s.Repo.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// load returns the question if claims may modify it.
func (s *QuestionService) load(ctx context.Context, claims *util.Claims, id uint) (*model.Question, error) {
	q, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrQuestionNotFound)
	}
	if claims.Role != model.Admin && q.TeacherID != claims.UserID {
		return nil, util.ErrPermissionDenied
	}
	return q, nil
}

func (s *QuestionService) Get(ctx context.Context, claims *util.Claims, id uint) (*model.Question, error) {
	return s.load(ctx, claims, id)
}

// List shows teachers their own questions; admins may filter by any teacher.
func (s *QuestionService) List(ctx context.Context, claims *util.Claims, f repository.QuestionFilter) ([]model.Question, int64, error) {
	if claims.Role != model.Admin {
		f.TeacherID = claims.UserID
	}
	return s.Repo.List(ctx, f)
}

func (s *QuestionService) Update(ctx context.Context, claims *util.Claims, id uint, req *QuestionRequest) (*model.Question, error) {
	q, err := s.load(ctx, claims, id)
	if err != nil {
		return nil, err
	}
	answered, err := s.Repo.HasAnswers(ctx, id)
	if err != nil {
		return nil, err
	}
	if answered {
		return nil, util.ErrQuestionInUse
	}

	scope, err := s.Academic.ValidateScope(ctx, req.Scope())
	if err != nil {
		return nil, err
	}
	if scope != q.Scope() {
		if err := s.authorize(ctx, claims, scope); err != nil {
			return nil, err
		}
	}
	if err := req.Validate(); err != nil {
		return nil, util.UnprocessableError(err.Error())
	}
	testType, err := normalizeTestType(req.TestType)
	if err != nil {
		return nil, err
	}
	// live papers hold option mappings built from the current type and scope
	if req.QuestionType != q.QuestionType || scope != q.Scope() {
		live, err := s.Repo.ScopeHasLiveTest(ctx, q.Scope())
		if err != nil {
			return nil, err
		}
		if live {
			return nil, util.ErrQuestionInLiveTest
		}
	}

	q.SubjectID, q.ClassLevel, q.TermID, q.SessionID = scope.SubjectID, scope.ClassLevel, scope.TermID, scope.SessionID
	q.TestType = testType
	req.apply(q)
	if err := s.Repo.Update(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Delete(ctx context.Context, claims *util.Claims, id uint) error {
	if _, err := s.load(ctx, claims, id); err != nil {
		return err
	}
	answered, err := s.Repo.HasAnswers(ctx, id)
	if err != nil {
		return err
	}
	if answered {
		return util.ErrQuestionInUse
	}
	err = s.Repo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrQuestionNotFound
	}
	return err
}
