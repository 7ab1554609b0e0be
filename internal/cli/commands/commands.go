package commands

import (
	"io"

	"github.com/spf13/cobra"

	"xlsxft/internal/cli"
	"xlsxft/internal/config"
	"xlsxft/internal/discovery"
	"xlsxft/internal/parser"
	"xlsxft/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Failures *FailuresCommand
	Diff     *DiffCommand
	Inspect  *InspectCommand

	env *Env
}

// NewCommands creates all commands with dependencies. User-facing output
// goes to out.
func NewCommands(cfg *config.Config, out io.Writer) *Commands {
	// Initialize dependencies
	env := NewEnv(cfg)
	scanner := discovery.NewScanner(cfg.PathsToIgnore)
	filter := discovery.NewFilter()
	declParser := discovery.NewParser()
	resolver := discovery.NewResolver(cfg, scanner, filter, declParser)
	resultParser := parser.NewResultParser()
	formatter := ui.NewFormatterTo(cfg, out)

	return &Commands{
		Run:      NewRunCommand(cfg, env, resolver, filter, resultParser, formatter),
		List:     NewListCommand(cfg, env, resolver, formatter),
		Failures: NewFailuresCommand(cfg, env),
		Diff:     NewDiffCommand(cfg, formatter),
		Inspect:  NewInspectCommand(formatter),
		env:      env,
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	// Flags are copied onto the config once cobra has parsed them
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return c.env.Prepare(flags)
	}
	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return c.env.Close()
	}
	rootCmd.PersistentFlags().StringVarP(&flags.Project, "project", "C", "", "Project directory that relative paths and .env are resolved against")
	rootCmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "", "Log level (debug, info, warning, error)")

	// Run command
	runCmd := &cobra.Command{
		Use:   "run [case...]",
		Short: "Run functional test cases",
		Long: "Invoke each test executable, then compare the workbook it wrote against the reference workbook.\n" +
			"With no arguments the cases come from --from, --suite, the manifest or the executable directory.",
		RunE: c.Run.Execute,
	}
	runCmd.Flags().IntVarP(&flags.Processors, "processors", "p", 0, "Number of cases to run at once (default 1)")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter cases by name pattern (supports wildcards, e.g. '*selection*')")
	runCmd.Flags().StringVar(&flags.Suite, "suite", "", "Run a named suite from the manifest or the built-in suites")
	runCmd.Flags().StringVar(&flags.From, "from", "", "Read case declarations (run_exe_test calls) from a file")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop on first failing case")
	runCmd.Flags().BoolVar(&flags.OnlyFailed, "failed", false, "Run only cases that failed in the last run")
	runCmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "Per-case execution timeout (default 60s)")
	runCmd.Flags().BoolVar(&flags.KeepOutput, "keep-output", false, "Keep the produced workbooks after comparison")
	runCmd.Flags().StringVar(&flags.Compare, "compare", "", "Comparison mode: structural or bytes (default structural)")
	runCmd.Flags().BoolVar(&flags.CheckDeterminism, "check-determinism", false, "Run each case twice and require identical output")
	runCmd.Flags().StringVar(&flags.Store, "store", "", "Result store: json or mysql (default json)")
	runCmd.Flags().BoolVar(&flags.OpenFailures, "open-failures", false, "Open the failures viewer when the run finishes with failures")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list [case...]",
		Short: "List resolved test cases",
		Long:  "Resolve test cases without running them. Cases that failed in the last run are marked [F].",
		RunE:  c.List.Execute,
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter cases by name pattern (supports wildcards, e.g. '*selection*')")
	listCmd.Flags().StringVar(&flags.Suite, "suite", "", "List a named suite from the manifest or the built-in suites")
	listCmd.Flags().StringVar(&flags.From, "from", "", "Read case declarations (run_exe_test calls) from a file")
	listCmd.Flags().BoolVarP(&flags.ShowPaths, "paths", "c", false, "Show executable, output and reference paths per case")
	listCmd.Flags().StringVar(&flags.Store, "store", "", "Result store to read failure marks from: json or mysql")
	rootCmd.AddCommand(listCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:   "failures",
		Short: "View failures interactively",
		Long:  "Display failures from the last run in an interactive viewer",
		Args:  cobra.NoArgs,
		RunE:  c.Failures.Execute,
	}
	failuresCmd.Flags().StringVar(&flags.Store, "store", "", "Result store to read: json or mysql")
	rootCmd.AddCommand(failuresCmd)

	// Diff command
	diffCmd := &cobra.Command{
		Use:   "diff <got.xlsx> <expected.xlsx>",
		Short: "Compare two workbooks",
		Long:  "Compare two workbooks the way run does and show the first difference",
		Args:  cobra.ExactArgs(2),
		RunE:  c.Diff.Execute,
	}
	diffCmd.Flags().StringVar(&flags.Compare, "compare", "", "Comparison mode: structural or bytes (default structural)")
	diffCmd.Flags().StringSliceVar(&c.Diff.ignoreFiles, "ignore-file", nil, "Package part to leave out (repeatable)")
	rootCmd.AddCommand(diffCmd)

	// Inspect command
	inspectCmd := &cobra.Command{
		Use:   "inspect <file.xlsx>...",
		Short: "Show sheet selections",
		Long:  "Print the active sheet, active cell and selected range of every sheet",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.Inspect.Execute,
	}
	rootCmd.AddCommand(inspectCmd)
}
