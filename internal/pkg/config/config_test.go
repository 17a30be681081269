package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Database: DatabaseConfig{Host: "localhost", User: "postgres", DBName: "forum_thread"},
		Redis:    RedisConfig{Addr: "localhost:6379"},
		JWT:      JWTConfig{Secret: "0123456789abcdef0123456789abcdef"},
		Cache:    CacheConfig{Driver: CacheDriverRedis, MemorySize: 10},
		Comment:  CommentConfig{MaxLength: 5000},
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		cfg := validConfig()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("short jwt secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWT.Secret = "short"
		assert.Error(t, cfg.Validate())
	})

	t.Run("incomplete database", func(t *testing.T) {
		cfg := validConfig()
		cfg.Database.DBName = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("memory cache does not need redis", func(t *testing.T) {
		cfg := validConfig()
		cfg.Cache.Driver = CacheDriverMemory
		cfg.Redis.Addr = ""
		assert.NoError(t, cfg.Validate())
	})

	t.Run("redis cache needs address", func(t *testing.T) {
		cfg := validConfig()
		cfg.Redis.Addr = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown cache driver", func(t *testing.T) {
		cfg := validConfig()
		cfg.Cache.Driver = "memcached"
		assert.Error(t, cfg.Validate())
	})

	t.Run("multi level needs local ttl", func(t *testing.T) {
		cfg := validConfig()
		cfg.Cache.Driver = CacheDriverMultiLevel
		assert.Error(t, cfg.Validate())

		cfg.Cache.LocalTTL = 5 * time.Second
		assert.NoError(t, cfg.Validate())
	})

	t.Run("comment max length below minimum", func(t *testing.T) {
		cfg := validConfig()
		cfg.Comment.MaxLength = 2
		assert.Error(t, cfg.Validate())
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
database:
  host: db.internal
  user: forum
  dbname: forum_thread
cache:
  driver: memory
  page_ttl: 90s
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.test.yaml"), yaml, 0o600))

	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")

	cfg, err := Load("test", dir)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, CacheDriverMemory, cfg.Cache.Driver)
	assert.Equal(t, 90*time.Second, cfg.Cache.PageTTL)
	assert.Equal(t, 500, cfg.Cache.MemorySize)
	assert.Equal(t, 10*time.Second, cfg.Cache.LocalTTL)
	assert.Equal(t, 5000, cfg.Comment.MaxLength)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "0123456789abcdef0123456789abcdef", cfg.JWT.Secret)
	assert.NoError(t, cfg.Validate())
}
