package database

import (
	"testing"

	"forum_thread/internal/pkg/config"

	"github.com/stretchr/testify/assert"
)

func TestConnectionStrings(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:     "db",
		User:     "forum",
		Password: "secret",
		DBName:   "forum_thread",
		Port:     "5432",
		SSLMode:  "disable",
		TimeZone: "UTC",
	}

	assert.Equal(t,
		"host=db user=forum password=secret dbname=forum_thread port=5432 sslmode=disable TimeZone=UTC",
		DSN(cfg))
	assert.Equal(t,
		"postgres://forum:secret@db:5432/forum_thread?sslmode=disable",
		MigrationURL(cfg))
}
