package parser

import (
	"errors"
	"strings"

	"xlsxft/internal/domain"
)

// maxOutputLines bounds the executable output kept per failure
const maxOutputLines = 50

var _ Parser = (*ResultParser)(nil)

// ResultParser classifies invocation results
type ResultParser struct{}

// NewResultParser creates a new ResultParser
func NewResultParser() *ResultParser {
	return &ResultParser{}
}

// Counts returns how many results passed, failed to execute, and mismatched
func (p *ResultParser) Counts(results []domain.TestResult) (passed, execErrors, mismatches int) {
	for _, r := range results {
		switch p.Kind(r) {
		case "":
			passed++
		case domain.KindComparison:
			mismatches++
		default:
			execErrors++
		}
	}
	return passed, execErrors, mismatches
}

// Kind returns the failure kind of a result, or "" for a pass
func (p *ResultParser) Kind(result domain.TestResult) string {
	if result.Success {
		return ""
	}
	var mismatch *domain.ComparisonMismatch
	if errors.As(result.Error, &mismatch) {
		return domain.KindComparison
	}
	return domain.KindExecution
}

// ParseFailure builds the failure record for a failed result. Passing
// results yield nothing.
func (p *ResultParser) ParseFailure(result domain.TestResult) []domain.TestFailure {
	if result.Success {
		return nil
	}

	failure := domain.TestFailure{
		TestName:  result.Case.Name,
		Kind:      p.Kind(result),
		GotPath:   result.GotPath,
		Reference: result.Reference,
		Output:    tail(result.Output, maxOutputLines),
		Selection: result.Selection,
	}
	if result.Error != nil {
		failure.Message = result.Error.Error()
	}

	var execErr *domain.ExecutionError
	var mismatch *domain.ComparisonMismatch
	switch {
	case errors.As(result.Error, &execErr):
		failure.Exe = execErr.Exe
		failure.ExitCode = execErr.ExitCode
	case errors.As(result.Error, &mismatch):
		failure.Part = mismatch.Part
		failure.Got = mismatch.Got
		failure.Expected = mismatch.Expected
		failure.Diff = mismatch.Diff
	}

	return []domain.TestFailure{failure}
}

// tail keeps the last n lines of s
func tail(s string, n int) string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}
