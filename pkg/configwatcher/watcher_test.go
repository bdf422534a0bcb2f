package configwatcher

import (
	"cbt_portal_backend/internal/config"
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseConfig = "jwt:\n  secret: watch-secret\nstorage:\n  type: none\nlog:\n  level: info\n"

func TestWatchConfig_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(baseConfig), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var level atomic.Value
	done := make(chan error, 1)
	go func() {
		done <- WatchConfig(ctx, dir, func(cfg *config.Config) {
			level.Store(cfg.Log.Level)
		})
	}()

	// give the watcher time to register
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("jwt:\n  secret: watch-secret\nstorage:\n  type: none\nlog:\n  level: debug\n"), 0o644))

	assert.Eventually(t, func() bool {
		v, _ := level.Load().(string)
		return v == "debug"
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
