package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"xlsxft/internal/compare"
	"xlsxft/internal/config"
	"xlsxft/internal/domain"
	"xlsxft/internal/inspect"
)

// maxDiffLines bounds the diff printed per failure in the summary
const maxDiffLines = 40

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	out    io.Writer
}

// NewFormatter creates a new Formatter writing to stdout
func NewFormatter(cfg *config.Config) *Formatter {
	return NewFormatterTo(cfg, color.Output)
}

// NewFormatterTo creates a Formatter writing to w
func NewFormatterTo(cfg *config.Config, w io.Writer) *Formatter {
	return &Formatter{config: cfg, out: w}
}

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	white  = color.New(color.FgWhite)
	gray   = color.New(color.FgHiBlack)
)

// PrintMetaStats displays the statistics of a stored run followed by its failures
func (f *Formatter) PrintMetaStats(output *domain.TestResultsOutput) {
	meta := output.Meta
	w := f.out

	fmt.Fprintln(w)
	cyan.Fprintln(w, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(w, "║                    Test Execution Statistics                  ║")
	cyan.Fprintln(w, "╚═══════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(w)

	rows := []struct {
		label string
		value string
		c     *color.Color
	}{
		{"Total Cases", fmt.Sprint(meta.TotalCases), white},
		{"Passed Cases", fmt.Sprint(meta.PassedCases), green},
		{"Failed Cases", fmt.Sprint(meta.FailedCases), red},
		{"Execution Errors", fmt.Sprint(meta.ExecutionErrors), red},
		{"Comparison Mismatches", fmt.Sprint(meta.Mismatches), red},
		{"Comparator", meta.Comparator, white},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), white},
		{"Workers", fmt.Sprint(meta.Workers), white},
		{"Timestamp", meta.Timestamp, white},
	}

	fmt.Fprintln(w, "┌─────────────────────────────────┬─────────────────────────────┐")
	for i, row := range rows {
		fmt.Fprintf(w, "│ %-31s │ ", row.label)
		row.c.Fprintf(w, "%-27s", row.value)
		fmt.Fprintln(w, " │")
		if i < len(rows)-1 {
			fmt.Fprintln(w, "├─────────────────────────────────┼─────────────────────────────┤")
		}
	}
	fmt.Fprintln(w, "└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Fprintln(w)
	if meta.FailedCases == 0 {
		green.Fprintln(w, "✓ All cases passed!")
		return
	}
	red.Fprintf(w, "✗ %d of %d case(s) failed\n", meta.FailedCases, meta.TotalCases)
	fmt.Fprintln(w)
	f.PrintFailures(output.Details)
}

// PrintFailures prints every unresolved failure with its diff
func (f *Formatter) PrintFailures(failures []domain.TestFailure) {
	w := f.out
	for _, failure := range failures {
		if failure.Resolved {
			gray.Fprintf(w, "✓ %s (resolved)\n", failure.TestName)
			continue
		}
		red.Fprintf(w, "✗ %s", failure.TestName)
		gray.Fprintf(w, " [%s]", failure.Kind)
		if failure.Part != "" {
			yellow.Fprintf(w, " %s", failure.Part)
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "    %s\n", failure.Message)

		for _, line := range failure.Selection {
			cyan.Fprintf(w, "    %s\n", line)
		}
		if failure.Diff != "" {
			printIndented(w, failure.Diff, maxDiffLines)
		}
		if failure.Kind == domain.KindExecution && failure.Output != "" {
			printIndented(w, failure.Output, maxDiffLines)
		}
		fmt.Fprintln(w)
	}
}

// PrintCaseList prints the resolved cases as a tree. Cases in failed are
// marked [F]; with showPaths each case lists its executable, got and
// reference paths and whether they exist.
func (f *Formatter) PrintCaseList(cases []domain.TestCase, showPaths bool, failed map[string]struct{}) {
	w := f.out
	green.Fprintf(w, "Found %d test case(s):\n\n", len(cases))

	for i, tc := range cases {
		isLast := i == len(cases)-1
		branch, stem := "├── ", "│   "
		if isLast {
			branch, stem = "└── ", "    "
		}

		cyan.Fprintf(w, "%s%s", branch, tc.Name)
		if _, ok := failed[tc.Name]; ok {
			red.Fprint(w, " [F]")
		}
		fmt.Fprintln(w)

		if !showPaths {
			continue
		}
		paths := []struct{ label, path string }{
			{"exe", f.config.GetExePath(tc)},
			{"got", f.config.GetGotPath(tc)},
			{"ref", f.config.GetReferencePath(tc)},
		}
		for j, p := range paths {
			leaf := "├── "
			if j == len(paths)-1 {
				leaf = "└── "
			}
			fmt.Fprintf(w, "%s%s%s %s", stem, leaf, p.label, p.path)
			if _, err := os.Stat(p.path); err != nil {
				gray.Fprint(w, " (missing)")
			}
			fmt.Fprintln(w)
		}
	}
}

// PrintDifference reports the outcome of a direct file comparison
func (f *Formatter) PrintDifference(gotPath, expPath string, diff *compare.Difference) {
	w := f.out
	if diff == nil {
		green.Fprintf(w, "✓ %s matches %s\n", gotPath, expPath)
		return
	}
	part := diff.Part
	if part == "" {
		part = "package part list"
	}
	red.Fprintf(w, "✗ %s differs from %s in ", gotPath, expPath)
	yellow.Fprintln(w, part)
	if diff.Diff != "" {
		printIndented(w, diff.Diff, 0)
	}
}

// PrintSelections prints the sheet selections of a workbook
func (f *Formatter) PrintSelections(path string, sels []inspect.SheetSelection) {
	w := f.out
	cyan.Fprintln(w, path)
	for i, s := range sels {
		branch := "├── "
		if i == len(sels)-1 {
			branch = "└── "
		}
		fmt.Fprintf(w, "%s%s\n", branch, s.String())
	}
}

// printIndented prints text indented under a failure, keeping at most
// limit lines when limit > 0
func printIndented(w io.Writer, text string, limit int) {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		if limit > 0 && i == limit {
			gray.Fprintf(w, "      ... and %d more lines\n", len(lines)-limit)
			return
		}
		fmt.Fprintf(w, "      %s\n", line)
	}
}
