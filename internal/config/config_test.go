package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimalConfig = `
database:
  user: "skuldata"
  dbname: "skuldata"
jwt:
  secret: "test-secret"
`

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfigFile(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Mode)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "1h", cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, 4, cfg.Scheduler.Workers)
	assert.Equal(t, 64, cfg.Scheduler.QueueSize)
	assert.Equal(t, "30m", cfg.Scheduler.TaskTimeLimit)
	assert.Equal(t, "168h", cfg.Scheduler.ResultExpires)
	assert.Equal(t, 90, cfg.Scheduler.ReportRetentionDays)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfigFile(t, minimalConfig+`
server:
  port: "9090"
scheduler:
  workers: 2
  report_retention_days: 30
`))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 2, cfg.Scheduler.Workers)
	assert.Equal(t, 30, cfg.Scheduler.ReportRetentionDays)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	t.Setenv("SERVER_PORT", "7777")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("SCHEDULER_WORKERS", "8")

	cfg, err := LoadConfig(writeConfigFile(t, minimalConfig+`
server:
  port: "9090"
`))
	require.NoError(t, err)

	assert.Equal(t, "7777", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 8, cfg.Scheduler.Workers)
}

func TestLoadConfigRejectsMissingSecret(t *testing.T) {
	_, err := LoadConfig(writeConfigFile(t, `
database:
  user: "skuldata"
  dbname: "skuldata"
`))
	assert.Error(t, err)
}

func TestLoadConfigRejectsBadDurations(t *testing.T) {
	_, err := LoadConfig(writeConfigFile(t, `
database:
  user: "skuldata"
  dbname: "skuldata"
jwt:
  secret: "test-secret"
  access_token_expiration: "soon"
`))
	assert.Error(t, err)
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg, err := LoadConfig(writeConfigFile(t, `
database:
  user: "skuldata"
  password: "pw"
  dbname: "skuldata"
  host: "db.internal"
  port: "5433"
jwt:
  secret: "test-secret"
`))
	require.NoError(t, err)

	assert.Equal(t,
		"postgres://skuldata:pw@db.internal:5433/skuldata?sslmode=disable",
		cfg.GetPostgresConnectionString())
}
