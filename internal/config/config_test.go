package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"xlsxft/internal/domain"
)

func TestConfig_Paths(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		tc       domain.TestCase
		exe      string
		got      string
		expected string
	}{
		{
			name:     "default layout",
			config:   &Config{ProjectPath: ".", ExeDir: DefaultExeDir, ReferenceDir: DefaultReferenceDir},
			tc:       domain.NewTestCase("test_set_selection01"),
			exe:      "test/functional/src/test_set_selection01",
			got:      "test/functional/src/test_set_selection01.xlsx",
			expected: "test/functional/xlsx_files/set_selection01.xlsx",
		},
		{
			name:     "project relative",
			config:   &Config{ProjectPath: "/project", ExeDir: "bin", ReferenceDir: "ref"},
			tc:       domain.NewTestCase("test_set_selection02"),
			exe:      "/project/bin/test_set_selection02",
			got:      "/project/bin/test_set_selection02.xlsx",
			expected: "/project/ref/set_selection02.xlsx",
		},
		{
			name:     "absolute dirs and explicit reference",
			config:   &Config{ProjectPath: "/project", ExeDir: "/abs/bin", ReferenceDir: "/abs/ref"},
			tc:       domain.TestCase{Name: "test_x", Reference: "other.xlsx"},
			exe:      "/abs/bin/test_x",
			got:      "/abs/bin/test_x.xlsx",
			expected: "/abs/ref/other.xlsx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.config.GetExePath(tt.tc); got != filepath.FromSlash(tt.exe) {
				t.Errorf("exe: expected %s, got %s", tt.exe, got)
			}
			if got := tt.config.GetGotPath(tt.tc); got != filepath.FromSlash(tt.got) {
				t.Errorf("got: expected %s, got %s", tt.got, got)
			}
			if got := tt.config.GetReferencePath(tt.tc); got != filepath.FromSlash(tt.expected) {
				t.Errorf("reference: expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	cfg := New()

	t.Run("overrides", func(t *testing.T) {
		err := cfg.ApplyEnv(map[string]string{
			EnvExeDir:     "out/bin",
			EnvTimeout:    "5s",
			EnvProcessors: "3",
			EnvLogLevel:   "debug",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.ExeDir != "out/bin" {
			t.Errorf("expected ExeDir out/bin, got %s", cfg.ExeDir)
		}
		if cfg.Timeout != 5*time.Second {
			t.Errorf("expected timeout 5s, got %s", cfg.Timeout)
		}
		if cfg.Processors != 3 {
			t.Errorf("expected 3 processors, got %d", cfg.Processors)
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("expected log level debug, got %s", cfg.LogLevel)
		}
	})

	t.Run("invalid timeout", func(t *testing.T) {
		if err := cfg.ApplyEnv(map[string]string{EnvTimeout: "soon"}); err == nil {
			t.Error("expected error for invalid timeout")
		}
	})
}

func TestConfig_LoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	content := "XLSXFT_REFERENCE_DIR=refs\nXLSXFT_TIMEOUT=2m\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}

	cfg := New()
	cfg.ProjectPath = dir
	if err := cfg.LoadEnv(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ReferenceDir != "refs" {
		t.Errorf("expected ReferenceDir refs, got %s", cfg.ReferenceDir)
	}
	if cfg.Timeout != 2*time.Minute {
		t.Errorf("expected timeout 2m, got %s", cfg.Timeout)
	}
}

func TestConfig_ApplyFlags(t *testing.T) {
	cfg := New()
	cfg.ApplyFlags(Flags{Processors: 4, Compare: "bytes"})

	if cfg.Processors != 4 {
		t.Errorf("expected 4 processors, got %d", cfg.Processors)
	}
	if cfg.Comparator != "bytes" {
		t.Errorf("expected bytes comparator, got %s", cfg.Comparator)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("zero timeout flag should keep default, got %s", cfg.Timeout)
	}
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.ProjectPath != DefaultProjectPath {
		t.Errorf("expected ProjectPath %s, got %s", DefaultProjectPath, cfg.ProjectPath)
	}

	if cfg.Processors != DefaultProcessors {
		t.Errorf("expected Processors %d, got %d", DefaultProcessors, cfg.Processors)
	}

	if len(cfg.PathsToIgnore) != len(DefaultPathsToIgnore) {
		t.Errorf("expected %d paths to ignore, got %d", len(DefaultPathsToIgnore), len(cfg.PathsToIgnore))
	}
}
