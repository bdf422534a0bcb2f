package logger

import (
	"cbt_portal_backend/internal/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestSetLevel(t *testing.T) {
	testCases := []struct {
		name string
		mode string
		lvl  string
		want zapcore.Level
	}{
		{name: "release default", mode: "release", want: zapcore.InfoLevel},
		{name: "debug mode", mode: "debug", want: zapcore.DebugLevel},
		{name: "explicit level wins", mode: "debug", lvl: "warn", want: zapcore.WarnLevel},
		{name: "bad level ignored", mode: "release", lvl: "loud", want: zapcore.InfoLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Server.Mode = tc.mode
			cfg.Log.Level = tc.lvl
			SetLevel(cfg)
			assert.Equal(t, tc.want, Level())
		})
	}
}

func TestLogIsUsableBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() { Log.Info("noop") })
}
