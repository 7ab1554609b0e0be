package domain

import "time"

// TestResult represents the result of invoking one test case
type TestResult struct {
	Case      TestCase      // Case that was invoked
	Success   bool          // Whether the executable ran and the output matched
	Output    string        // Combined stdout/stderr of the executable
	Error     error         // *ExecutionError or *ComparisonMismatch when Success is false
	Duration  time.Duration // Time taken to run and compare
	GotPath   string        // Path of the produced artifact
	Reference string        // Path of the reference artifact
	Selection []string      // Got/expected sheet selections, set on worksheet mismatches
}

// TestResultsMeta contains metadata about a test run
type TestResultsMeta struct {
	TotalCases      int     `json:"total_cases"`
	PassedCases     int     `json:"passed_cases"`
	FailedCases     int     `json:"failed_cases"`
	ExecutionErrors int     `json:"execution_errors"`
	Mismatches      int     `json:"mismatches"`
	Comparator      string  `json:"comparator"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Workers         int     `json:"workers"`
	Timestamp       string  `json:"timestamp"`
}

// TestResultsOutput is the complete output structure for test results
type TestResultsOutput struct {
	Meta    TestResultsMeta `json:"meta"`
	Details []TestFailure   `json:"details"`
}

// FailedNames returns the case names with at least one failure record.
func (o *TestResultsOutput) FailedNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, f := range o.Details {
		if seen[f.TestName] {
			continue
		}
		seen[f.TestName] = true
		names = append(names, f.TestName)
	}
	return names
}
