package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"xlsxft/internal/domain"
)

// Environment variables that override defaults. They may also live in the
// project's .env file.
const (
	EnvExeDir       = "XLSXFT_EXE_DIR"
	EnvReferenceDir = "XLSXFT_REFERENCE_DIR"
	EnvTimeout      = "XLSXFT_TIMEOUT"
	EnvProcessors   = "XLSXFT_PROCESSORS"
	EnvMySQLDSN     = "XLSXFT_MYSQL_DSN"
	EnvLogLevel     = "XLSXFT_LOG_LEVEL"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath  string
	ExeDir       string
	ReferenceDir string
	ManifestFile string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Execution settings
	Processors int
	Timeout    time.Duration
	Comparator string

	// Storage settings
	Store    string
	MySQLDSN string

	LogLevel string

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	Processors       int
	NameFilter       string
	Suite            string
	From             string
	FailFast         bool
	OnlyFailed       bool
	KeepOutput       bool
	CheckDeterminism bool
	OpenFailures     bool
	ShowPaths        bool
	Timeout          time.Duration
	Compare          string
	Store            string
	LogLevel         string
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		ExeDir:         DefaultExeDir,
		ReferenceDir:   DefaultReferenceDir,
		ManifestFile:   DefaultManifestFile,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		Processors:     DefaultProcessors,
		Timeout:        DefaultTimeout,
		Comparator:     DefaultComparator,
		Store:          DefaultStore,
		LogLevel:       DefaultLogLevel,
		Flags:          Flags{Processors: DefaultProcessors},
	}
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load creates a config, overlays the environment and applies flags
func Load(flags Flags) (*Config, error) {
	cfg := New()
	if err := cfg.LoadEnv(); err != nil {
		return nil, err
	}
	cfg.ApplyFlags(flags)
	return cfg, nil
}

// LoadEnv overlays values from the project's .env file and the process
// environment. Process variables win over the file.
func (c *Config) LoadEnv() error {
	env := map[string]string{}
	envPath := filepath.Join(c.ProjectPath, DefaultEnvFile)
	if _, err := os.Stat(envPath); err == nil {
		fileEnv, err := godotenv.Read(envPath)
		if err != nil {
			return fmt.Errorf("read %s: %w", envPath, err)
		}
		env = fileEnv
	}
	for _, key := range []string{EnvExeDir, EnvReferenceDir, EnvTimeout, EnvProcessors, EnvMySQLDSN, EnvLogLevel} {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}
	return c.ApplyEnv(env)
}

// ApplyEnv applies recognised keys from env
func (c *Config) ApplyEnv(env map[string]string) error {
	if v := env[EnvExeDir]; v != "" {
		c.ExeDir = v
	}
	if v := env[EnvReferenceDir]; v != "" {
		c.ReferenceDir = v
	}
	if v := env[EnvTimeout]; v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvTimeout, v, err)
		}
		c.Timeout = d
	}
	if v := env[EnvProcessors]; v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvProcessors, v, err)
		}
		c.Processors = n
	}
	if v := env[EnvMySQLDSN]; v != "" {
		c.MySQLDSN = v
	}
	if v := env[EnvLogLevel]; v != "" {
		c.LogLevel = v
	}
	return nil
}

// ApplyFlags copies parsed flags onto the config. Zero-valued flags keep
// whatever the defaults or the environment set.
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	if flags.Processors > 0 {
		c.Processors = flags.Processors
	}
	if flags.Timeout > 0 {
		c.Timeout = flags.Timeout
	}
	if flags.Compare != "" {
		c.Comparator = flags.Compare
	}
	if flags.Store != "" {
		c.Store = flags.Store
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.ProjectPath, p)
}

// GetExeDir returns the directory the executables live and run in
func (c *Config) GetExeDir() string {
	return c.resolve(c.ExeDir)
}

// GetReferenceDir returns the directory holding reference files
func (c *Config) GetReferenceDir() string {
	return c.resolve(c.ReferenceDir)
}

// GetManifestPath returns the suite manifest path
func (c *Config) GetManifestPath() string {
	return c.resolve(c.ManifestFile)
}

// GetExePath returns the executable path for a case
func (c *Config) GetExePath(tc domain.TestCase) string {
	return filepath.Join(c.GetExeDir(), tc.Name)
}

// GetGotPath returns the path the executable writes its workbook to
func (c *Config) GetGotPath(tc domain.TestCase) string {
	return filepath.Join(c.GetExeDir(), tc.GotFile())
}

// GetReferencePath returns the reference workbook path for a case
func (c *Config) GetReferencePath(tc domain.TestCase) string {
	return filepath.Join(c.GetReferenceDir(), tc.ReferenceFile())
}

// GetOutputPath returns the full path to the output JSON file.
// Resolves to an absolute path so run and failures always read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
