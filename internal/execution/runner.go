package execution

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"xlsxft/internal/config"
	"xlsxft/internal/domain"
)

// Runner executes a single test executable
type Runner struct {
	config *config.Config
	log    logrus.FieldLogger
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config, log logrus.FieldLogger) *Runner {
	return &Runner{config: cfg, log: log}
}

// Run executes the case's executable to completion in its own directory and
// returns its combined output. Any failure is an *domain.ExecutionError.
func (r *Runner) Run(ctx context.Context, tc domain.TestCase) (string, error) {
	exe := r.config.GetExePath(tc)
	if err := checkExecutable(exe); err != nil {
		return "", &domain.ExecutionError{Name: tc.Name, Exe: exe, Err: err}
	}

	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	// A relative path would be resolved against cmd.Dir
	if abs, err := filepath.Abs(exe); err == nil {
		exe = abs
	}

	cmd := exec.CommandContext(ctx, exe)
	cmd.Env = os.Environ()
	// The executable writes its workbook into the working directory
	cmd.Dir = filepath.Dir(exe)
	// Children that inherit the output pipe must not hold the run open past the kill
	cmd.WaitDelay = 2 * time.Second

	start := time.Now()
	output, err := cmd.CombinedOutput()
	log := r.log.WithFields(logrus.Fields{"case": tc.Name, "exe": exe, "duration": time.Since(start)})
	if err == nil {
		log.Debug("executable finished")
		return string(output), nil
	}

	execErr := &domain.ExecutionError{Name: tc.Name, Exe: exe, Output: string(output), Err: err}
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		execErr.Err = fmt.Errorf("timed out after %s: %w", r.config.Timeout, ctx.Err())
	case errors.Is(ctx.Err(), context.Canceled):
		execErr.Err = ctx.Err()
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			execErr.ExitCode = exitErr.ExitCode()
		}
	}
	log.WithError(execErr.Err).Warn("executable failed")
	return string(output), execErr
}

func checkExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.ErrExecutableNotFound
		}
		return fmt.Errorf("%w: %v", domain.ErrExecutableNotFound, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: is a directory", domain.ErrExecutableNotFound)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm()&0o111 == 0 {
		return fmt.Errorf("%w: not executable", domain.ErrExecutableNotFound)
	}
	return nil
}
