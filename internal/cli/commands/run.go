package commands

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"xlsxft/internal/compare"
	"xlsxft/internal/config"
	"xlsxft/internal/discovery"
	"xlsxft/internal/domain"
	"xlsxft/internal/execution"
	"xlsxft/internal/parser"
	"xlsxft/internal/ui"
)

// ErrCasesFailed is returned by run when at least one case failed
var ErrCasesFailed = errors.New("test cases failed")

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	env       *Env
	resolver  *discovery.Resolver
	filter    *discovery.Filter
	parser    parser.Parser
	formatter *ui.Formatter
	progress  func(count int) execution.Progress
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	env *Env,
	resolver *discovery.Resolver,
	filter *discovery.Filter,
	parser parser.Parser,
	formatter *ui.Formatter,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		env:       env,
		resolver:  resolver,
		filter:    filter,
		parser:    parser,
		formatter: formatter,
		progress: func(count int) execution.Progress {
			return ui.NewProgressBar(count)
		},
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	cases, err := rc.resolver.Resolve(args)
	if err != nil {
		return err
	}

	st, err := rc.env.Storage()
	if err != nil {
		return err
	}

	if rc.config.Flags.OnlyFailed {
		last, err := st.Load()
		if err != nil {
			return fmt.Errorf("failed to load last run: %w", err)
		}
		cases = rc.filter.FilterByNames(cases, last.FailedNames())
	}

	if len(cases) == 0 {
		color.Yellow("No test cases to execute")
		return nil
	}

	comparator, err := compare.New(rc.config.Comparator)
	if err != nil {
		return err
	}

	log := rc.env.Logger()
	runner := execution.NewRunner(rc.config, log)
	invoker := execution.NewInvoker(rc.config, runner, comparator, log)
	pool := execution.NewWorkerPool(rc.config, invoker)
	pool.SetProgress(rc.progress(len(cases)))

	// Execute cases
	results, duration, err := pool.ExecuteWithOptions(cmd.Context(), cases, rc.config.Flags.FailFast)
	if err != nil {
		return err
	}

	// Parse failures
	var failures []domain.TestFailure
	for _, result := range results {
		if !result.Success {
			failures = append(failures, rc.parser.ParseFailure(result)...)
		}
	}

	// Save results
	if err := st.Save(results, failures, duration, rc.config.Processors); err != nil {
		return fmt.Errorf("failed to save test results: %w", err)
	}

	output, err := st.Load()
	if err != nil {
		return fmt.Errorf("failed to read test results: %w", err)
	}

	// Print stats
	rc.formatter.PrintMetaStats(output)

	if output.Meta.FailedCases == 0 {
		return nil
	}

	if rc.config.Flags.OpenFailures {
		if err := ui.NewErrorViewer(rc.config, st).View(output); err != nil {
			return err
		}
	}
	return fmt.Errorf("%d of %d: %w", output.Meta.FailedCases, output.Meta.TotalCases, ErrCasesFailed)
}
