package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string `yaml:"-"`
	ResultsPath string `yaml:"results_path"`

	// Input settings
	ResultSuffixes []string `yaml:"result_suffixes"`
	PathsToIgnore  []string `yaml:"paths_to_ignore"`

	// Output settings
	OutputDir   string `yaml:"output_dir"`
	ReportFile  string `yaml:"report_file"`
	SummaryFile string `yaml:"summary_file"`
	Format      string `yaml:"format"`
	RunID       string `yaml:"run_id"`

	// Execution settings
	Processors int `yaml:"processors"`

	// History database
	Database DatabaseConfig `yaml:"database"`

	// Command flags
	Flags Flags `yaml:"-"`
}

// DatabaseConfig holds the MySQL connection used for run history
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// Flags holds command-line flags
type Flags struct {
	Processors   int
	ResultsPath  string
	NameFilter   string
	Output       string
	Format       string
	RunID        string
	FailFast     bool
	Publish      bool
	OpenFailures bool
	TestCases    bool
	Verbose      bool
	Depth        int
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath: DefaultProjectPath,
		ResultsPath: DefaultResultsPath,
		OutputDir:   DefaultOutputDir,
		ReportFile:  DefaultReportFile,
		SummaryFile: DefaultSummaryFile,
		Format:      DefaultFormat,
		Processors:  DefaultProcessors,
		Database: DatabaseConfig{
			Host: DefaultDBHost,
			Port: DefaultDBPort,
			User: DefaultDBUser,
			Name: DefaultDBName,
		},
		Flags: Flags{Processors: DefaultProcessors, Depth: DefaultTreeDepth},
	}
	// Copy default lists so callers can't modify the package defaults
	cfg.ResultSuffixes = append([]string(nil), DefaultResultSuffixes...)
	cfg.PathsToIgnore = append([]string(nil), DefaultPathsToIgnore...)
	return cfg
}

// Load creates a config for the project, layering the optional YAML file,
// the project's .env file and the environment over the defaults
func Load(projectPath string) (*Config, error) {
	cfg := New()
	if projectPath != "" {
		cfg.ProjectPath = projectPath
	}

	if err := cfg.loadFile(filepath.Join(cfg.ProjectPath, DefaultConfigFile)); err != nil {
		return nil, err
	}

	// .env file might not exist, that's okay - use environment variables
	_ = godotenv.Load(filepath.Join(cfg.ProjectPath, ".env"))

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, target *string) {
		if v := os.Getenv(key); v != "" {
			*target = v
		}
	}

	setString("NTL_RESULTS_PATH", &c.ResultsPath)
	setString("NTL_OUTPUT_DIR", &c.OutputDir)
	setString("NTL_REPORT_FILE", &c.ReportFile)
	setString("NTL_FORMAT", &c.Format)
	setString("NTL_RUN_ID", &c.RunID)
	setString("DB_HOST", &c.Database.Host)
	setString("DB_PORT", &c.Database.Port)
	setString("DB_USERNAME", &c.Database.User)
	setString("DB_PASSWORD", &c.Database.Password)
	setString("DB_DATABASE", &c.Database.Name)

	if v := os.Getenv("NTL_PROCESSORS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse NTL_PROCESSORS: %w", err)
		}
		c.Processors = n
	}
	return nil
}

// ApplyFlags stores the flags and lets the non-empty ones override the config
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags

	if flags.Processors > 0 {
		c.Processors = flags.Processors
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.RunID != "" {
		c.RunID = flags.RunID
	}
}

// Validate checks the settings commands rely on
func (c *Config) Validate() error {
	switch c.Format {
	case FormatNUnit, FormatTeamCity:
	default:
		return fmt.Errorf("unknown report format %q", c.Format)
	}
	if c.Processors <= 0 {
		return fmt.Errorf("processors must be positive, got %d", c.Processors)
	}
	return nil
}

// GetResultsPath returns the folder scanned for record files, using the flag if provided
func (c *Config) GetResultsPath() string {
	path := c.ResultsPath
	if c.Flags.ResultsPath != "" {
		path = c.Flags.ResultsPath
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.ProjectPath, path)
}

// GetReportPath returns the report file path, using the output flag if provided
func (c *Config) GetReportPath() string {
	if c.Flags.Output != "" {
		return c.Flags.Output
	}
	return c.outputPath(c.ReportFile)
}

// GetSummaryPath returns the absolute path of the summary JSON file, so every
// command reads and writes the same file regardless of cwd
func (c *Config) GetSummaryPath() string {
	return c.outputPath(c.SummaryFile)
}

func (c *Config) outputPath(name string) string {
	p := filepath.Join(c.OutputDir, name)
	if !filepath.IsAbs(c.OutputDir) {
		p = filepath.Join(c.ProjectPath, p)
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// DSN returns the MySQL data source name, with or without the history database selected
func (d DatabaseConfig) DSN(withDatabase bool) string {
	mc := mysql.NewConfig()
	mc.User = d.User
	mc.Passwd = d.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(d.Host, d.Port)
	mc.ParseTime = true
	if withDatabase {
		mc.DBName = d.Name
	}
	return mc.FormatDSN()
}
