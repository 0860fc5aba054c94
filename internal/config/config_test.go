package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, DefaultMaxUploadSize, cfg.Upload.MaxSize)
	assert.Equal(t, "./static/uploads", cfg.Storage.BasePath)
	assert.Equal(t, []string{"mp3", "wav", "ogg"}, cfg.Upload.Allowed["audio"])
	assert.Equal(t, 3, cfg.Security.AutoHideThreshold)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL())
	assert.Equal(t, 15*time.Minute, cfg.LoginWindow())
	assert.Equal(t, 30*time.Minute, cfg.CleanupInterval())
	assert.False(t, cfg.IsProduction())
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Upload.Root = "/srv/mural/uploads"
	cfg.Upload.Allowed = map[string][]string{"imagem": {"png"}}
	cfg.RateLimit.PostsPerHour = 2
	cfg.ApplyDefaults()

	assert.Equal(t, "/srv/mural/uploads", cfg.Storage.BasePath)
	assert.Equal(t, []string{"png"}, cfg.Upload.Allowed["imagem"])
	assert.Equal(t, []string{"pdf"}, cfg.Upload.Allowed["pdf"])
	assert.Equal(t, 2, cfg.RateLimit.PostsPerHour)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite:mural.db")
	t.Setenv("SERVER_ENV", "production")
	t.Setenv("MAX_FILE_SIZE", "1024")
	t.Setenv("ALLOWED_IMAGE_FORMATS", "png, jpg ,")
	t.Setenv("CORS_ORIGINS", "https://mural.ifsp.edu.br,https://admin.ifsp.edu.br")
	t.Setenv("RATE_LIMIT_LOGIN_ATTEMPTS", "nope")
	t.Setenv("CLEANUP_INTERVAL_MINUTES", "5")

	cfg := FromEnv()

	assert.Equal(t, "sqlite:mural.db", cfg.Database.DSN)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, int64(1024), cfg.Upload.MaxSize)
	assert.Equal(t, []string{"png", "jpg"}, cfg.Upload.Allowed["imagem"])
	assert.Equal(t, []string{"mp4", "webm", "mov"}, cfg.Upload.Allowed["video"])
	assert.Len(t, cfg.CORS.Origins, 2)
	assert.Equal(t, 5, cfg.RateLimit.LoginAttempts, "некорректное число заменяется значением по умолчанию")
	assert.Equal(t, 5*time.Minute, cfg.CleanupInterval())
}
