package service

import (
	"cbt_portal_backend/internal/config"
	"cbt_portal_backend/internal/util"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStorageService(t *testing.T) {
	testCases := []struct {
		name        string
		storageType string
		wantURL     string
	}{
		{name: "disabled", storageType: util.StorageNone, wantURL: ""},
		{name: "local", storageType: util.StorageLocal, wantURL: "/uploads/csv/q.csv"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			svc := NewStorageService(&config.Config{Storage: config.StorageConfig{Type: tc.storageType, LocalPath: dir}})

			url, err := svc.Upload(context.Background(), "csv/q.csv", strings.NewReader("a,b"), 3, util.MimeCSV)
			require.NoError(t, err)
			assert.Equal(t, tc.wantURL, url)

			_, statErr := os.Stat(filepath.Join(dir, "csv", "q.csv"))
			if tc.wantURL == "" {
				assert.Nil(t, svc.Provider)
				assert.True(t, os.IsNotExist(statErr))
			} else {
				assert.IsType(t, &LocalStorageProvider{}, svc.Provider)
				assert.NoError(t, statErr)
			}
		})
	}
}
