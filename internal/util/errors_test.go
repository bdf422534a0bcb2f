package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"app error", ErrTestCodeExpired, http.StatusGone, "This test code has expired"},
		{"wrapped app error", fmt.Errorf("submit: %w", ErrTestCodeUsed), http.StatusConflict, "This test code has already been used"},
		{"record not found", gorm.ErrRecordNotFound, http.StatusNotFound, "Resource not found"},
		{"duplicate key", gorm.ErrDuplicatedKey, http.StatusConflict, "Duplicate record"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "Failed to submit test"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleError(c, tc.err, "submit test")

			assert.Equal(t, tc.wantStatus, w.Code)
			var resp Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tc.wantMsg, resp.Message)
			assert.NotEmpty(t, resp.Timestamp)
		})
	}
}

func TestBindJSON_ValidationErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	type request struct {
		TestCode  string `json:"test_code" binding:"required"`
		CodeCount int    `json:"code_count" binding:"min=1,max=100"`
	}

	testCases := []struct {
		name       string
		body       string
		wantStatus int
		wantFields []string
	}{
		{"valid", `{"test_code":"ABC","code_count":3}`, http.StatusOK, nil},
		{"missing and out of range", `{"code_count":101}`, http.StatusUnprocessableEntity, []string{"test_code", "code_count"}},
		{"malformed", `{"test_code":`, http.StatusBadRequest, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/", func(c *gin.Context) {
				var req request
				if !BindJSON(c, &req) {
					return
				}
				Success(c, req)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
			var resp Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			for _, f := range tc.wantFields {
				assert.Contains(t, resp.Errors, f)
			}
		})
	}
}

func TestToSnake(t *testing.T) {
	assert.Equal(t, "code_count", toSnake("CodeCount"))
	assert.Equal(t, "subject_id", toSnake("SubjectID"))
	assert.Equal(t, "title", toSnake("Title"))
}
