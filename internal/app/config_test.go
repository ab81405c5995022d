package app

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "LOG_FORMAT", "LOG_LEVEL", "USERS_PATH", "COMPANIES_PATH", "OUTPUT_PATH", "COLLATION_LOCALE", "METRICS_TEXTFILE"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "users.json", cfg.UsersPath)
	require.Equal(t, "companies.json", cfg.CompaniesPath)
	require.Equal(t, "output.txt", cfg.OutputPath)
	require.Empty(t, cfg.MetricsTextfile)

	tag, err := cfg.Locale()
	require.NoError(t, err)
	require.Equal(t, language.English.String(), tag.String())
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	t.Setenv("COLLATION_LOCALE", "not a locale!")
	_, err := LoadConfig()
	require.ErrorContains(t, err, "collation locale")

	t.Setenv("COLLATION_LOCALE", "de")
	t.Setenv("LOG_LEVEL", "verbose")
	_, err = LoadConfig()
	require.ErrorContains(t, err, "log level")
}

func TestNewLoggerJSONRespectsLevel(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := NewLogger(&Config{AppEnv: "production", LogFormat: "json", LogLevel: "warn"}, buf)

	logger.Info("hidden")
	logger.Warn("shown", slog.String("run_id", "abc"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	require.Equal(t, "shown", record["msg"])
	require.Equal(t, "abc", record["run_id"])
	require.NotContains(t, record, slog.SourceKey)
}
