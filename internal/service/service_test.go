package service

import (
	"cbt_portal_backend/internal/config"
	"cbt_portal_backend/internal/model"
	"cbt_portal_backend/internal/repository"
	"cbt_portal_backend/internal/testutil"
	"cbt_portal_backend/internal/util"
	"context"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// harness wires every service against sqlite and miniredis.
type harness struct {
	DB      *gorm.DB
	Redis   *miniredis.Miniredis
	Cfg     *config.Config
	Fixture *testutil.Fixture

	Academic    *AcademicService
	Assignments *TeacherAssignmentService
	Questions   *QuestionService
	Uploads     *QuestionUploadService
	Codes       *TestCodeService
	Taking      *TestTakingService
	Dashboard   *DashboardService
	Auth        *AuthService
	Users       *UserService
	Shuffle     *RedisShuffleStore
	Blacklist   *TokenBlacklist
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := testutil.NewDB(t)
	rdb, mr := testutil.NewRedis(t)
	cfg := testutil.Config()

	userRepo := repository.NewUserRepository(db)
	academicRepo := repository.NewAcademicRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	codeRepo := repository.NewTestCodeRepository(db)
	batchRepo := repository.NewBatchRepository(db)
	resultRepo := repository.NewResultRepository(db)
	reports, err := repository.NewReportRepository(db)
	require.NoError(t, err)

	h := &harness{DB: db, Redis: mr, Cfg: cfg, Fixture: testutil.Seed(t, db)}
	h.Shuffle = NewRedisShuffleStore(rdb)
	h.Blacklist = NewTokenBlacklist(rdb)
	h.Academic = NewAcademicService(academicRepo, cfg)
	h.Assignments = NewTeacherAssignmentService(repository.NewTeacherAssignmentRepository(db), userRepo, h.Academic)
	h.Questions = NewQuestionService(questionRepo, h.Assignments, h.Academic)
	h.Uploads = NewQuestionUploadService(h.Questions, repository.NewUploadRepository(db), NewStorageService(cfg))
	h.Codes = NewTestCodeService(codeRepo, batchRepo, questionRepo, h.Academic, cfg)
	h.Taking = NewTestTakingService(codeRepo, questionRepo, resultRepo, academicRepo, h.Shuffle, cfg)
	h.Dashboard = NewDashboardService(reports, resultRepo)
	h.Auth = NewAuthService(userRepo, h.Blacklist, cfg)
	h.Users = NewUserService(userRepo, cfg)
	return h
}

func (h *harness) claims(u *model.User) *util.Claims {
	return &util.Claims{UserID: u.ID, Role: u.Role, Username: u.Username}
}

func (h *harness) settings(total, duration int) TestSettingsRequest {
	s := h.Fixture.Scope
	return TestSettingsRequest{
		Title:           "Mathematics CA",
		SubjectID:       s.SubjectID,
		ClassLevel:      s.ClassLevel,
		TermID:          s.TermID,
		SessionID:       s.SessionID,
		DurationMinutes: duration,
		TotalQuestions:  total,
	}
}

// correctAnswers answers every delivered question with the displayed label
// that maps to the stored correct answer.
func (h *harness) correctAnswers(t *testing.T, code *model.TestCode, student *model.User, paper *TestPaper) map[string]string {
	t.Helper()
	ctx := context.Background()
	mapping, err := h.Shuffle.Load(ctx, code.ID, student.ID)
	require.NoError(t, err)

	answers := make(map[string]string, len(paper.Questions))
	for _, pq := range paper.Questions {
		var q model.Question
		require.NoError(t, h.DB.First(&q, pq.ID).Error)
		for displayed, stored := range mapping.Options[pq.ID] {
			if stored == q.CorrectAnswer {
				answers[idKey(pq.ID)] = displayed
			}
		}
	}
	return answers
}

func idKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func repositoryPage() repository.Page {
	return repository.Page{Page: 1, Limit: 20}
}
