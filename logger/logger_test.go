package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantLevel logrus.Level
		wantJSON  bool
	}{
		{
			name:      "defaults on bad level",
			cfg:       Config{Level: "loud", Format: "text"},
			wantLevel: logrus.InfoLevel,
		},
		{
			name:      "debug json",
			cfg:       Config{Level: "debug", Format: "json"},
			wantLevel: logrus.DebugLevel,
			wantJSON:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, log.GetLevel())

			_, isJSON := log.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.wantJSON, isJSON)
		})
	}
}

func TestNewWritesLogFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	log, err := New(Config{Level: "info", Format: "json", Dir: dir})
	require.NoError(t, err)

	log.WithField("operation", "test").Info("hello")

	data, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"operation":"test"`)
}
