package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeErrorMessage(t *testing.T) {
	fallback := "처리에 실패했습니다"
	testErr := errors.New("internal database error")

	// nil err 이면 fallback
	cfg := &Config{Server: ServerConfig{Mode: "debug"}}
	assert.Equal(t, fallback, cfg.SafeErrorMessage(nil, fallback))

	// release 모드는 상세 내용을 숨긴다
	cfg.Server.Mode = "release"
	assert.Equal(t, fallback, cfg.SafeErrorMessage(testErr, fallback))

	cfg.Server.Mode = "debug"
	assert.Equal(t, "internal database error", cfg.SafeErrorMessage(testErr, fallback))

	// nil 설정은 개발 환경으로 간주
	var nilCfg *Config
	assert.Equal(t, "internal database error", nilCfg.SafeErrorMessage(testErr, fallback))
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 500, cfg.Ingest.ChunkSize)
	assert.True(t, cfg.Ingest.ReplaceExisting)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, 10, cfg.Server.LoginMaxAttempts)
	assert.Equal(t, 5*time.Minute, cfg.Server.LoginWindow())
	assert.Empty(t, cfg.LLM.Provider)
}

func TestLoadConfig_ExternalFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "database:\n  driver: postgres\n  port: \"5432\"\ningest:\n  chunk_size: 100\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("SALON_JWT_SECRET", "from-env")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, 100, cfg.Ingest.ChunkSize)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
}

func TestLLMConfig_Timeout(t *testing.T) {
	assert.Equal(t, 120*time.Second, LLMConfig{}.Timeout())
	assert.Equal(t, 30*time.Second, LLMConfig{TimeoutSeconds: 30}.Timeout())
}
