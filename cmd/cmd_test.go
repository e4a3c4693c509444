package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/nijaru/video-api/config"
	"github.com/nijaru/video-api/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()

	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "videos.db"))

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		openapiOutput = ""
	})

	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	out := run(t, "version")
	assert.Contains(t, out, "video-api dev")
}

func TestOpenAPICommand(t *testing.T) {
	t.Run("stdout", func(t *testing.T) {
		out := run(t, "openapi")

		var doc map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &doc))
		assert.Equal(t, "3.0.2", doc["openapi"])
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "api.json")
		run(t, "openapi", "-o", path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "/api/videos/{video_id}")
	})
}

func TestMigrateCommands(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	dbPath := filepath.Join(t.TempDir(), "my data", "videos.db")

	migrate := func(sub string) string {
		t.Setenv("DB_PATH", dbPath)
		out := &bytes.Buffer{}
		rootCmd.SetOut(out)
		rootCmd.SetArgs([]string{"migrate", sub})
		require.NoError(t, rootCmd.Execute())
		return out.String()
	}
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	assert.Contains(t, migrate("up"), "Migrations applied")
	assert.Contains(t, migrate("version"), "version: 1")
	assert.Contains(t, migrate("down"), "Migrations rolled back")
	assert.Contains(t, migrate("version"), "version: 0")
}

func TestLoggerConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "warn"
	cfg.Log.Format = "json"
	cfg.Log.Dir = "/var/log/video-api"

	got := loggerConfig(cfg)
	assert.Equal(t, logger.Config{Level: "warn", Format: "json", Dir: "/var/log/video-api"}, got)

	cfg.Debug = true
	assert.Equal(t, "debug", loggerConfig(cfg).Level)
}
