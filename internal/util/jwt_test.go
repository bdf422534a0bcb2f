package util

import (
	"cbt_portal_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	user := &model.User{BaseModel: model.BaseModel{ID: 7}, Username: "ada", Role: model.Teacher}

	token, err := GenerateJWT(user, "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, model.Teacher, claims.Role)
	assert.Equal(t, "ada", claims.Username)
	assert.NotEmpty(t, claims.ID)
	assert.InDelta(t, time.Hour.Seconds(), claims.TTL().Seconds(), 5)

	_, err = ParseJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestParseJWT_Expired(t *testing.T) {
	user := &model.User{BaseModel: model.BaseModel{ID: 1}, Username: "x", Role: model.Student}
	token, err := GenerateJWT(user, "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "secret")
	assert.Error(t, err)
}
