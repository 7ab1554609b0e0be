// Package compare decides whether a produced workbook matches its reference.
package compare

import (
	"fmt"

	"xlsxft/internal/domain"
)

// Comparator names accepted by New
const (
	NameBytes      = "bytes"
	NameStructural = "structural"
)

// Options carries the per-case exclusions.
type Options struct {
	// IgnoreFiles are package part names left out of the comparison.
	IgnoreFiles []string
	// IgnoreElements maps a part name to regex patterns; matching elements
	// are dropped from both sides before comparing that part.
	IgnoreElements map[string][]string
}

// OptionsFor returns the comparison options declared on a case.
func OptionsFor(tc domain.TestCase) Options {
	return Options{IgnoreFiles: tc.IgnoreFiles, IgnoreElements: tc.IgnoreElements}
}

// Difference describes the first point at which got and expected diverge.
type Difference struct {
	Part     string
	Got      []string
	Expected []string
	Diff     string
}

// Comparator compares a got file to an expected file. A nil Difference
// with a nil error means the files match.
type Comparator interface {
	Name() string
	Compare(gotPath, expPath string, opts Options) (*Difference, error)
}

// New returns the comparator registered under name.
func New(name string) (Comparator, error) {
	switch name {
	case NameStructural, "":
		return NewStructural(), nil
	case NameBytes:
		return NewBytes(), nil
	}
	return nil, fmt.Errorf("unknown comparator %q (want %s or %s)", name, NameStructural, NameBytes)
}
