package common

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the process settings read from the environment (and .env).
type Config struct {
	DBType      string
	DBPath      string
	PostgresDSN string

	HTTPHostPort string
	GrpcHostPort string

	DefaultRate  float64
	DefaultBurst int

	JWTSecret string
	JWTTTL    time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// LoadConfig reads configuration from the environment, applying defaults
// where unset. It does not load .env itself; main does that first.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		DBType:        strings.ToLower(envOrDefault(EnvKeyTPMSDBType, DBTypeFile)),
		DBPath:        envOrDefault(EnvKeyTPMSDbPath, "tpms.db"),
		PostgresDSN:   strings.TrimSpace(os.Getenv(EnvKeyTPMSPostgresDSN)),
		HTTPHostPort:  envOrDefault(EnvKeyTPMSHttpHostPort, ":1080"),
		GrpcHostPort:  strings.TrimSpace(os.Getenv(EnvKeyTPMSGrpcHostPort)),
		JWTSecret:     os.Getenv(EnvKeyTPMSJWTSecret),
		KafkaBrokers:  SplitList(os.Getenv(EnvKeyTPMSKafkaBrokers)),
		KafkaTopic:    envOrDefault(EnvKeyTPMSKafkaTopic, "tire-notifications"),
		RedisAddr:     strings.TrimSpace(os.Getenv(EnvKeyTPMSRedisAddr)),
		RedisPassword: os.Getenv(EnvKeyTPMSRedisPassword),
	}

	var err error

	if cfg.DefaultRate, err = strconv.ParseFloat(envOrDefault(EnvKeyTPMSDefaultRate, "5"), 64); err != nil || cfg.DefaultRate < 0 {
		return nil, fmt.Errorf("invalid %s, should be a non-negative float64 value", EnvKeyTPMSDefaultRate)
	}

	if cfg.DefaultBurst, err = strconv.Atoi(envOrDefault(EnvKeyTPMSDefaultBurst, "10")); err != nil || cfg.DefaultBurst < 0 {
		return nil, fmt.Errorf("invalid %s, should be a non-negative int value", EnvKeyTPMSDefaultBurst)
	}

	if cfg.JWTTTL, err = time.ParseDuration(envOrDefault(EnvKeyTPMSJWTTTL, "24h")); err != nil || cfg.JWTTTL <= 0 {
		return nil, fmt.Errorf("invalid %s, should be a positive duration", EnvKeyTPMSJWTTTL)
	}

	if cfg.RedisDB, err = strconv.Atoi(envOrDefault(EnvKeyTPMSRedisDB, "0")); err != nil {
		return nil, fmt.Errorf("invalid %s, should be an int value", EnvKeyTPMSRedisDB)
	}

	switch cfg.DBType {
	case DBTypeFile, DBTypeMemory:
	case DBTypePostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("%s is required when %s=%s", EnvKeyTPMSPostgresDSN, EnvKeyTPMSDBType, DBTypePostgres)
		}
	default:
		return nil, fmt.Errorf("unknown %s: %s", EnvKeyTPMSDBType, cfg.DBType)
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New(EnvKeyTPMSJWTSecret + " is required")
	}

	return cfg, nil
}
