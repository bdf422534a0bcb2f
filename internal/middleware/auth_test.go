package middleware

import (
	"cbt_portal_backend/internal/model"
	"cbt_portal_backend/internal/util"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

type fakeBlacklist map[string]bool

func (f fakeBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	return f[jti], nil
}

func tokenFor(t *testing.T, role model.UserRole) (string, *util.Claims) {
	t.Helper()
	token, err := util.GenerateJWT(&model.User{BaseModel: model.BaseModel{ID: 3}, Username: "u", Role: role}, testSecret, time.Hour)
	require.NoError(t, err)
	claims, err := util.ParseJWT(token, testSecret)
	require.NoError(t, err)
	return token, claims
}

func newRouter(blacklist TokenBlacklist, roles ...model.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(testSecret, blacklist), RoleMiddleware(roles...), func(c *gin.Context) {
		util.Success(c, util.GetUserFromContext(c).UserID)
	})
	return r
}

func do(r *gin.Engine, token string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRoleMiddleware(t *testing.T) {
	studentToken, _ := tokenFor(t, model.Student)
	teacherToken, _ := tokenFor(t, model.Teacher)
	adminToken, _ := tokenFor(t, model.Admin)

	testCases := []struct {
		name  string
		roles []model.UserRole
		token string
		want  int
	}{
		{"no token", []model.UserRole{model.Student}, "", http.StatusUnauthorized},
		{"garbage token", []model.UserRole{model.Student}, "not-a-jwt", http.StatusUnauthorized},
		{"student on student route", []model.UserRole{model.Student}, studentToken, http.StatusOK},
		{"student on teacher route", []model.UserRole{model.Teacher}, studentToken, http.StatusForbidden},
		{"teacher on admin route", []model.UserRole{model.Admin}, teacherToken, http.StatusForbidden},
		{"teacher on teacher route", []model.UserRole{model.Teacher}, teacherToken, http.StatusOK},
		{"admin on teacher route", []model.UserRole{model.Teacher}, adminToken, http.StatusForbidden},
		{"admin on teacher or admin route", []model.UserRole{model.Teacher, model.Admin}, adminToken, http.StatusOK},
		{"admin on student route", []model.UserRole{model.Student}, adminToken, http.StatusForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, do(newRouter(nil, tc.roles...), tc.token))
		})
	}
}

func TestAuthMiddleware_RejectsUnknownRole(t *testing.T) {
	token, _ := tokenFor(t, model.UserRole("superuser"))
	assert.Equal(t, http.StatusUnauthorized, do(newRouter(nil, model.Student), token))
}

func TestAuthMiddleware_RevokedToken(t *testing.T) {
	token, claims := tokenFor(t, model.Student)
	blacklist := fakeBlacklist{claims.ID: true}

	assert.Equal(t, http.StatusUnauthorized, do(newRouter(blacklist, model.Student), token))
	assert.Equal(t, http.StatusOK, do(newRouter(fakeBlacklist{}, model.Student), token))
}
