package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_GetResultsPath(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name: "default path",
			config: &Config{
				ProjectPath: ".",
				ResultsPath: ".",
			},
			expected: ".",
		},
		{
			name: "with results path flag",
			config: &Config{
				ProjectPath: "/project",
				ResultsPath: ".",
				Flags: Flags{
					ResultsPath: "artifacts",
				},
			},
			expected: "/project/artifacts",
		},
		{
			name: "absolute results path",
			config: &Config{
				ProjectPath: "/project",
				ResultsPath: ".",
				Flags: Flags{
					ResultsPath: "/absolute/path",
				},
			},
			expected: "/absolute/path",
		},
		{
			name: "configured results path",
			config: &Config{
				ProjectPath: "/project",
				ResultsPath: "out/tests",
			},
			expected: "/project/out/tests",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.GetResultsPath())
		})
	}
}

func TestConfig_OutputPaths(t *testing.T) {
	cfg := New()
	cfg.ProjectPath = "/project"

	assert.Equal(t, "/project/TestResults/TestResults.xml", cfg.GetReportPath())
	assert.Equal(t, "/project/TestResults/test-summary.json", cfg.GetSummaryPath())

	cfg.Flags.Output = "custom.xml"
	assert.Equal(t, "custom.xml", cfg.GetReportPath())

	cfg.OutputDir = "/abs/out"
	assert.Equal(t, "/abs/out/test-summary.json", cfg.GetSummaryPath())
}

func TestNew(t *testing.T) {
	cfg := New()

	assert.Equal(t, DefaultProjectPath, cfg.ProjectPath)
	assert.Equal(t, DefaultProcessors, cfg.Processors)
	assert.Equal(t, DefaultFormat, cfg.Format)
	assert.Equal(t, DefaultResultSuffixes, cfg.ResultSuffixes)
	assert.Len(t, cfg.PathsToIgnore, len(DefaultPathsToIgnore))

	cfg.PathsToIgnore[0] = "changed"
	assert.NotEqual(t, "changed", DefaultPathsToIgnore[0])
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	yamlContent := `results_path: artifacts
output_dir: reports
processors: 2
format: teamcity
database:
  host: db.internal
  name: history
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte(yamlContent), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DB_PASSWORD=secret\n"), 0644))
	t.Setenv("NTL_PROCESSORS", "8")
	for _, key := range []string{"NTL_RESULTS_PATH", "NTL_OUTPUT_DIR", "NTL_FORMAT", "DB_HOST", "DB_PORT", "DB_DATABASE", "DB_PASSWORD"} {
		t.Setenv(key, "")
	}

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.ProjectPath)
	assert.Equal(t, "artifacts", cfg.ResultsPath)
	assert.Equal(t, "reports", cfg.OutputDir)
	assert.Equal(t, FormatTeamCity, cfg.Format)
	assert.Equal(t, 8, cfg.Processors)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, DefaultDBPort, cfg.Database.Port)
	assert.Equal(t, "history", cfg.Database.Name)
	assert.Equal(t, DefaultResultSuffixes, cfg.ResultSuffixes)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("invalid yaml", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte("processors: [1"), 0644))
		_, err := Load(dir)
		assert.Error(t, err)
	})

	t.Run("invalid processors", func(t *testing.T) {
		t.Setenv("NTL_PROCESSORS", "many")
		_, err := Load(t.TempDir())
		assert.Error(t, err)
	})
}

func TestConfig_ApplyFlags(t *testing.T) {
	cfg := New()
	cfg.ApplyFlags(Flags{Processors: 6, Format: FormatTeamCity, RunID: "nightly"})

	assert.Equal(t, 6, cfg.Processors)
	assert.Equal(t, FormatTeamCity, cfg.Format)
	assert.Equal(t, "nightly", cfg.RunID)

	cfg.ApplyFlags(Flags{})
	assert.Equal(t, 6, cfg.Processors)
}

func TestConfig_Validate(t *testing.T) {
	cfg := New()
	assert.NoError(t, cfg.Validate())

	cfg.Format = "junit"
	assert.Error(t, cfg.Validate())

	cfg = New()
	cfg.Processors = 0
	assert.Error(t, cfg.Validate())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	db := DatabaseConfig{Host: "localhost", Port: "3307", User: "ci", Password: "pw", Name: "history"}

	assert.Equal(t, "ci:pw@tcp(localhost:3307)/history?parseTime=true", db.DSN(true))
	assert.Equal(t, "ci:pw@tcp(localhost:3307)/?parseTime=true", db.DSN(false))
}
