package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv(EnvKeyTPMSJWTSecret, "secret")
	t.Setenv(EnvKeyTPMSDBType, "")
	t.Setenv(EnvKeyTPMSKafkaBrokers, "")
	t.Setenv(EnvKeyTPMSRedisAddr, "")
	t.Setenv(EnvKeyTPMSGrpcHostPort, "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DBTypeFile, cfg.DBType)
	assert.Equal(t, "tpms.db", cfg.DBPath)
	assert.Equal(t, ":1080", cfg.HTTPHostPort)
	assert.Empty(t, cfg.GrpcHostPort)
	assert.Equal(t, 5.0, cfg.DefaultRate)
	assert.Equal(t, 10, cfg.DefaultBurst)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "tire-notifications", cfg.KafkaTopic)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, 0, cfg.RedisDB)
}

func TestLoadConfig_CustomEnv(t *testing.T) {
	t.Setenv(EnvKeyTPMSJWTSecret, "secret")
	t.Setenv(EnvKeyTPMSDBType, "Memory")
	t.Setenv(EnvKeyTPMSHttpHostPort, ":9090")
	t.Setenv(EnvKeyTPMSGrpcHostPort, ":9091")
	t.Setenv(EnvKeyTPMSDefaultRate, "0.5")
	t.Setenv(EnvKeyTPMSDefaultBurst, "3")
	t.Setenv(EnvKeyTPMSJWTTTL, "1h")
	t.Setenv(EnvKeyTPMSKafkaBrokers, "broker1:9092, broker2:9092,")
	t.Setenv(EnvKeyTPMSKafkaTopic, "custom")
	t.Setenv(EnvKeyTPMSRedisAddr, "localhost:6379")
	t.Setenv(EnvKeyTPMSRedisDB, "2")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DBTypeMemory, cfg.DBType)
	assert.Equal(t, ":9090", cfg.HTTPHostPort)
	assert.Equal(t, ":9091", cfg.GrpcHostPort)
	assert.Equal(t, 0.5, cfg.DefaultRate)
	assert.Equal(t, 3, cfg.DefaultBurst)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom", cfg.KafkaTopic)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
}

func TestLoadConfig_Errors(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"missing jwt secret", map[string]string{EnvKeyTPMSJWTSecret: ""}},
		{"bad rate", map[string]string{EnvKeyTPMSDefaultRate: "fast"}},
		{"negative burst", map[string]string{EnvKeyTPMSDefaultBurst: "-1"}},
		{"bad ttl", map[string]string{EnvKeyTPMSJWTTTL: "forever"}},
		{"unknown db type", map[string]string{EnvKeyTPMSDBType: "mysql"}},
		{"postgres without dsn", map[string]string{EnvKeyTPMSDBType: "postgres", EnvKeyTPMSPostgresDSN: ""}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(EnvKeyTPMSJWTSecret, "secret")
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitList(" a ,, b "))
	assert.Empty(t, SplitList(""))
}
