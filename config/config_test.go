package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "")
	t.Setenv("MONGO_DB", "")
	t.Setenv("JWT_TTL", "nonsense")
	t.Setenv("FRONTEND_URL", "https://app.example.com/")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("REDIS_URI", "")
	t.Setenv("REDIS_URL", "redis://cache:6379/0")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "resumecraft", c.MongoDB)
	assert.Equal(t, 24*time.Hour, c.JWTTTL)
	assert.Equal(t, "https://app.example.com", c.FrontendURL)
	assert.Equal(t, "redis://cache:6379/0", c.RedisAddr)
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestResumeIndexes(t *testing.T) {
	idx := resumeIndexes()
	require.NotEmpty(t, idx)
	assert.Equal(t, "by_owner_updated", *idx[0].Options.Name)
}
