package domain

// Failure kinds
const (
	KindExecution  = "execution"
	KindComparison = "comparison"
)

// TestFailure represents a failed test case as stored after a run
type TestFailure struct {
	TestName  string   `json:"test_name"`
	Kind      string   `json:"kind"`
	Message   string   `json:"message"`
	Exe       string   `json:"exe,omitempty"`
	ExitCode  int      `json:"exit_code,omitempty"`
	Output    string   `json:"output,omitempty"`
	GotPath   string   `json:"got_path,omitempty"`
	Reference string   `json:"reference,omitempty"`
	Part      string   `json:"part,omitempty"`
	Got       []string `json:"got,omitempty"`
	Expected  []string `json:"expected,omitempty"`
	Diff      string   `json:"diff,omitempty"`
	Selection []string `json:"selection,omitempty"`
	Resolved  bool     `json:"resolved,omitempty"` // Track if test case is marked as resolved
}
