package app

import (
	"bytes"
	"cbt_portal_backend/internal/model"
	"cbt_portal_backend/internal/service"
	"cbt_portal_backend/internal/testutil"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

type testServer struct {
	app     *App
	rdb     *redis.Client
	fixture *testutil.Fixture
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	rdb, _ := testutil.NewRedis(t)
	cfg := testutil.Config()
	cfg.RateLimit.MaxRequests = 1000
	cfg.RateLimit.WindowMinutes = 1

	app, err := New(cfg, db, rdb)
	require.NoError(t, err)
	return &testServer{app: app, rdb: rdb, fixture: testutil.Seed(t, db)}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.app.Router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func (s *testServer) login(t *testing.T, username string) string {
	t.Helper()
	code, env := s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": username,
		"password": testutil.Password,
	})
	require.Equal(t, http.StatusOK, code, env.Message)
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestRouter_Envelopes(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodGet, "/api/system/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)

	code, env = s.do(t, http.MethodGet, "/api/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Success)

	code, env = s.do(t, http.MethodDelete, "/api/auth/login", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, code)
	assert.False(t, env.Success)

	code, env = s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, env.Errors, "username")
}

func TestRouter_RoleGroups(t *testing.T) {
	s := newTestServer(t)
	student := s.login(t, "student")
	teacher := s.login(t, "teacher")
	admin := s.login(t, "admin")

	testCases := []struct {
		name   string
		path   string
		token  string
		status int
	}{
		{"no token", "/api/admin/users", "", http.StatusUnauthorized},
		{"student on admin", "/api/admin/users", student, http.StatusForbidden},
		{"teacher on admin", "/api/admin/dashboard-stats", teacher, http.StatusForbidden},
		{"admin on admin", "/api/admin/users", admin, http.StatusOK},
		{"teacher questions", "/api/teacher/questions", teacher, http.StatusOK},
		{"admin passes teacher group", "/api/teacher/questions", admin, http.StatusOK},
		{"student on teacher", "/api/teacher/questions", student, http.StatusForbidden},
		{"teacher on student", "/api/student/results", teacher, http.StatusForbidden},
		{"admin on student results", "/api/student/results", admin, http.StatusForbidden},
		{"admin on student take-test", "/api/student/take-test?code=QWERTY23", admin, http.StatusForbidden},
		{"student results", "/api/student/results", student, http.StatusOK},
		{"class levels", "/api/system/class-levels", student, http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code, _ := s.do(t, http.MethodGet, tc.path, tc.token, nil)
			assert.Equal(t, tc.status, code)
		})
	}
}

func TestRouter_LogoutRevokesToken(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "student")

	code, _ := s.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRouter_StudentTakesTest(t *testing.T) {
	s := newTestServer(t)
	f := s.fixture
	testutil.AddQuestions(t, s.app.DB, f.Scope, f.Teacher.ID, 8)
	tc := testutil.AddCode(t, s.app.DB, "QWERTY23", f.Scope, f.Admin.ID, 5, 30)
	token := s.login(t, "student")

	code, env := s.do(t, http.MethodPost, "/api/admin/test-code-batches", s.login(t, "admin"), gin.H{
		"title":            "Mathematics CA",
		"subject_id":       f.Scope.SubjectID,
		"class_level":      f.Scope.ClassLevel,
		"term_id":          f.Scope.TermID,
		"session_id":       f.Scope.SessionID,
		"duration_minutes": 30,
		"total_questions":  5,
		"code_count":       3,
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var batch struct {
		BatchID uint `json:"batch_id"`
		Codes   []struct {
			ID   uint   `json:"id"`
			Code string `json:"code"`
		} `json:"codes"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &batch))
	assert.NotZero(t, batch.BatchID)
	require.Len(t, batch.Codes, 3)
	for _, c := range batch.Codes {
		assert.NotZero(t, c.ID)
		assert.Len(t, c.Code, 8)
	}

	code, env = s.do(t, http.MethodPost, "/api/student/validate-test-code", token, gin.H{"test_code": "qwerty23"})
	require.Equal(t, http.StatusOK, code, env.Message)

	code, env = s.do(t, http.MethodGet, "/api/student/take-test?code=QWERTY23", token, nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	var paper struct {
		Questions []struct {
			ID           uint    `json:"id"`
			QuestionText string  `json:"question_text"`
			OptionA      string  `json:"option_a"`
			OptionB      string  `json:"option_b"`
			OptionC      *string `json:"option_c"`
			OptionD      *string `json:"option_d"`
			QuestionType string  `json:"question_type"`
		} `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &paper))
	require.Len(t, paper.Questions, 5)
	for _, q := range paper.Questions {
		assert.NotEmpty(t, q.QuestionText)
		assert.NotEmpty(t, q.OptionA)
		assert.NotEmpty(t, q.OptionB)
		assert.NotNil(t, q.OptionC)
		assert.NotNil(t, q.OptionD)
		assert.Equal(t, string(model.MultipleChoice), q.QuestionType)
	}
	assert.NotContains(t, string(env.Data), "correct_answer")

	mapping, err := service.NewRedisShuffleStore(s.rdb).Load(context.Background(), tc.ID, f.Student.ID)
	require.NoError(t, err)

	// answer the first question correctly, leave the rest blank
	first := paper.Questions[0]
	var stored model.Question
	require.NoError(t, s.app.DB.First(&stored, first.ID).Error)
	answers := map[string]string{}
	for displayed, original := range mapping.Options[first.ID] {
		if original == stored.CorrectAnswer {
			answers[strconv.FormatUint(uint64(first.ID), 10)] = displayed
		}
	}
	require.Len(t, answers, 1)

	code, env = s.do(t, http.MethodPost, "/api/student/submit-test", token, gin.H{
		"test_code":  "QWERTY23",
		"answers":    answers,
		"time_taken": 120,
	})
	require.Equal(t, http.StatusOK, code, env.Message)
	var result struct {
		CorrectAnswers int     `json:"correct_answers"`
		TotalQuestions int     `json:"total_questions"`
		Percentage     float64 `json:"percentage"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 1, result.CorrectAnswers)
	assert.Equal(t, 5, result.TotalQuestions)
	assert.InDelta(t, 20.0, result.Percentage, 0.01)

	code, _ = s.do(t, http.MethodPost, "/api/student/submit-test", token, gin.H{
		"test_code":  "QWERTY23",
		"answers":    answers,
		"time_taken": 120,
	})
	assert.Equal(t, http.StatusConflict, code)
}
