package database

import (
	"cbt_portal_backend/internal/config"
	"cbt_portal_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialector(t *testing.T) {
	testCases := []struct {
		driver  string
		name    string
		wantErr bool
	}{
		{driver: "mysql", name: "mysql"},
		{driver: "postgres", name: "postgres"},
		{driver: "sqlite", name: "sqlite"},
		{driver: "oracle", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.driver, func(t *testing.T) {
			d, err := Dialector(&config.DatabaseConfig{Driver: tc.driver, DSN: ":memory:"})
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.name, d.Name())
		})
	}
}

func TestInitDB_SQLiteMigratesAndSeedsTerms(t *testing.T) {
	db, err := InitDB(&config.DatabaseConfig{Driver: "sqlite", DSN: "file::memory:"}, true)
	require.NoError(t, err)

	var terms []model.Term
	require.NoError(t, db.Order("id").Find(&terms).Error)
	require.Len(t, terms, 3)
	assert.Equal(t, "First Term", terms[0].Name)

	// seeding is idempotent
	require.NoError(t, Migrate(db))
	var count int64
	db.Model(&model.Term{}).Count(&count)
	assert.EqualValues(t, 3, count)
}
