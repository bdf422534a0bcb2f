package database

import (
	"cbt_portal_backend/internal/config"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	testCases := []struct {
		name         string
		poolSize     int
		minIdle      int
		wantPoolSize int
	}{
		{name: "configured", poolSize: 12, minIdle: 3, wantPoolSize: 12},
		{name: "unset pool size", poolSize: 0, minIdle: 0, wantPoolSize: defaultRedisPoolSize},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rdb, err := InitRedis(&config.RedisConfig{
				Host:         mr.Host(),
				Port:         port,
				PoolSize:     tc.poolSize,
				MinIdleConns: tc.minIdle,
			})
			require.NoError(t, err)
			defer rdb.Close()
			assert.Equal(t, tc.wantPoolSize, rdb.Options().PoolSize)
			assert.Equal(t, tc.minIdle, rdb.Options().MinIdleConns)
		})
	}

	_, err = InitRedis(&config.RedisConfig{Host: "127.0.0.1", Port: 1})
	assert.Error(t, err)
}
