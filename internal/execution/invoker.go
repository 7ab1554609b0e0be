package execution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"xlsxft/internal/compare"
	"xlsxft/internal/config"
	"xlsxft/internal/domain"
	"xlsxft/internal/inspect"
)

// Invoker runs one test case end to end: execute, check the artifact
// exists, compare it with the reference, clean up.
type Invoker struct {
	config     *config.Config
	runner     *Runner
	comparator compare.Comparator
	log        logrus.FieldLogger
}

// NewInvoker creates a new Invoker
func NewInvoker(cfg *config.Config, runner *Runner, comparator compare.Comparator, log logrus.FieldLogger) *Invoker {
	return &Invoker{config: cfg, runner: runner, comparator: comparator, log: log}
}

// Comparator returns the comparator in use
func (inv *Invoker) Comparator() compare.Comparator {
	return inv.comparator
}

// Run invokes a single case. The result is a pass only when the executable
// exited successfully and its workbook matches the reference.
func (inv *Invoker) Run(ctx context.Context, tc domain.TestCase) domain.TestResult {
	start := time.Now()
	result := domain.TestResult{
		Case:      tc,
		GotPath:   inv.config.GetGotPath(tc),
		Reference: inv.config.GetReferencePath(tc),
	}

	err := inv.invoke(ctx, &result)
	result.Success = err == nil
	result.Error = err
	result.Duration = time.Since(start)

	log := inv.log.WithFields(logrus.Fields{"case": tc.Name, "duration": result.Duration})
	if err != nil {
		log.WithError(err).Info("case failed")
	} else {
		log.Info("case passed")
	}
	return result
}

func (inv *Invoker) invoke(ctx context.Context, result *domain.TestResult) error {
	tc := result.Case
	got := result.GotPath

	// A workbook left over from an earlier run must not stand in for this one
	if err := os.Remove(got); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &domain.ExecutionError{Name: tc.Name, Exe: inv.config.GetExePath(tc), Err: fmt.Errorf("remove stale output: %w", err)}
	}

	output, err := inv.runner.Run(ctx, tc)
	result.Output = output
	if err != nil {
		return err
	}
	if !inv.config.Flags.KeepOutput {
		defer func() {
			if err := os.Remove(got); err != nil && !errors.Is(err, os.ErrNotExist) {
				inv.log.WithError(err).WithField("case", tc.Name).Warn("could not remove output")
			}
		}()
	}

	mismatch := &domain.ComparisonMismatch{Name: tc.Name, GotPath: got, Reference: result.Reference}
	if _, err := os.Stat(got); err != nil {
		mismatch.Err = domain.ErrOutputMissing
		return mismatch
	}
	if _, err := os.Stat(result.Reference); err != nil {
		mismatch.Err = domain.ErrReferenceMissing
		return mismatch
	}

	if inv.config.Flags.CheckDeterminism {
		if err := inv.checkDeterminism(ctx, result); err != nil {
			return err
		}
	}

	diff, err := inv.comparator.Compare(got, result.Reference, compare.OptionsFor(tc))
	if err != nil {
		mismatch.Err = err
		return mismatch
	}
	if diff == nil {
		return nil
	}

	mismatch.Part = diff.Part
	mismatch.Got = diff.Got
	mismatch.Expected = diff.Expected
	mismatch.Diff = diff.Diff
	if describesSelection(diff.Part) {
		result.Selection = selectionReport(got, result.Reference)
	}
	return mismatch
}

// checkDeterminism runs the executable a second time and requires a
// byte-identical workbook.
func (inv *Invoker) checkDeterminism(ctx context.Context, result *domain.TestResult) error {
	tc := result.Case
	first, err := os.ReadFile(result.GotPath)
	if err != nil {
		return &domain.ComparisonMismatch{Name: tc.Name, GotPath: result.GotPath, Reference: result.Reference, Err: err}
	}
	if err := os.Remove(result.GotPath); err != nil {
		return &domain.ExecutionError{Name: tc.Name, Exe: inv.config.GetExePath(tc), Err: fmt.Errorf("remove first output: %w", err)}
	}
	if _, err := inv.runner.Run(ctx, tc); err != nil {
		return err
	}
	second, err := os.ReadFile(result.GotPath)
	if err != nil {
		return &domain.ComparisonMismatch{Name: tc.Name, GotPath: result.GotPath, Reference: result.Reference, Err: domain.ErrOutputMissing}
	}
	if !bytes.Equal(first, second) {
		return &domain.ComparisonMismatch{Name: tc.Name, GotPath: result.GotPath, Reference: result.Reference, Err: domain.ErrNonDeterministic}
	}
	return nil
}

func describesSelection(part string) bool {
	return part == "xl/workbook.xml" || strings.HasPrefix(part, "xl/worksheets/")
}

func selectionReport(got, exp string) []string {
	var lines []string
	for _, l := range inspect.Summary(got) {
		lines = append(lines, "got: "+l)
	}
	for _, l := range inspect.Summary(exp) {
		lines = append(lines, "exp: "+l)
	}
	return lines
}
