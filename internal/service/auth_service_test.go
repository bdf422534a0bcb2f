package service

import (
	"cbt_portal_backend/internal/model"
	"cbt_portal_backend/internal/util"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_LoginLogout(t *testing.T) {
	h := newHarness(t)
	h.Cfg.JWT.ExpireTime = time.Hour
	ctx := context.Background()

	_, err := h.Auth.Login(ctx, &LoginRequest{Username: "student", Password: "wrong"})
	assert.Equal(t, util.ErrInvalidCredentials, err)

	resp, err := h.Auth.Login(ctx, &LoginRequest{Username: "student@school.test", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, h.Fixture.Student.ID, resp.User.ID)
	require.NotNil(t, resp.User.LastLogin)

	claims, err := util.ParseJWT(resp.Token, h.Cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, model.Student, claims.Role)

	revoked, err := h.Blacklist.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, h.Auth.Logout(ctx, claims))
	revoked, err = h.Blacklist.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.True(t, h.Redis.TTL("cbt:revoked:"+claims.ID) > 0)
}

func TestAuth_DisabledAccount(t *testing.T) {
	h := newHarness(t)
	h.Cfg.JWT.ExpireTime = time.Hour
	ctx := context.Background()

	u, err := h.Users.ToggleActive(ctx, h.Fixture.Admin.ID, h.Fixture.Student.ID)
	require.NoError(t, err)
	assert.False(t, u.IsActive)

	_, err = h.Auth.Login(ctx, &LoginRequest{Username: "student", Password: "password123"})
	assert.Equal(t, util.ErrAccountDisabled, err)
}

func TestAuth_RegisterAndChangePassword(t *testing.T) {
	h := newHarness(t)
	h.Cfg.JWT.ExpireTime = time.Hour
	ctx := context.Background()

	user, err := h.Auth.Register(ctx, &RegisterRequest{
		Username:     "ada",
		Password:     "secret1",
		FullName:     "Ada Obi",
		Email:        "Ada@School.Test",
		MatricNumber: "mat/001",
		ClassLevel:   "ss1",
	})
	require.NoError(t, err)
	assert.Equal(t, model.Student, user.Role)
	assert.Equal(t, "SS1", user.ClassLevel)
	assert.Equal(t, "MAT/001", *user.MatricNumber)

	_, err = h.Auth.Register(ctx, &RegisterRequest{Username: "ada", Password: "secret1", FullName: "x", ClassLevel: "SS1"})
	assert.Equal(t, util.ErrUsernameTaken, err)
	_, err = h.Auth.Register(ctx, &RegisterRequest{Username: "bola", Password: "secret1", FullName: "x", ClassLevel: "Primary 1"})
	assert.Equal(t, util.ErrInvalidClassLevel, err)

	assert.Equal(t, util.ErrWrongPassword, h.Auth.ChangePassword(ctx, user.ID, &ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "secret2"}))
	require.NoError(t, h.Auth.ChangePassword(ctx, user.ID, &ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "secret2"}))
	_, err = h.Auth.Login(ctx, &LoginRequest{Username: "ada", Password: "secret2"})
	assert.NoError(t, err)
}

func TestUserService_DeleteBlockedByDependents(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	f := h.Fixture

	assert.Equal(t, util.ErrUserHasDependents, h.Users.Delete(ctx, f.Admin.ID, f.Teacher.ID))
	require.NoError(t, h.Users.Delete(ctx, f.Admin.ID, f.Student2.ID))
	_, err := h.Users.Get(ctx, f.Student2.ID)
	assert.Equal(t, util.ErrUserNotFound, err)
}
