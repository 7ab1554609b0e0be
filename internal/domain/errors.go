package domain

import (
	"errors"
	"fmt"
)

var (
	ErrExecutableNotFound = errors.New("executable not found")
	ErrOutputMissing      = errors.New("output missing")
	ErrReferenceMissing   = errors.New("reference missing")
	ErrNonDeterministic   = errors.New("non-deterministic output")
)

// ExecutionError is returned when the test executable could not be run or
// exited with a non-zero status.
type ExecutionError struct {
	Name     string
	Exe      string
	ExitCode int
	Output   string
	Err      error
}

func (e *ExecutionError) Error() string {
	if e.ExitCode != 0 {
		return fmt.Sprintf("%s: %s exited with status %d", e.Name, e.Exe, e.ExitCode)
	}
	return fmt.Sprintf("%s: %s: %v", e.Name, e.Exe, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// ComparisonMismatch is returned when the produced artifact is missing or
// differs from the reference. Part names the first differing package part;
// Got and Expected hold its normalised element lists.
type ComparisonMismatch struct {
	Name      string
	GotPath   string
	Reference string
	Part      string
	Got       []string
	Expected  []string
	Diff      string
	Err       error
}

func (e *ComparisonMismatch) Error() string {
	switch {
	case e.Err != nil && e.Part != "":
		return fmt.Sprintf("%s: %s: %v", e.Name, e.Part, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Name, e.Err)
	case e.Part != "":
		return fmt.Sprintf("%s: %s differs from reference", e.Name, e.Part)
	}
	return fmt.Sprintf("%s: output differs from reference", e.Name)
}

func (e *ComparisonMismatch) Unwrap() error { return e.Err }
