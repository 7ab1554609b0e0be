package domain

import "strings"

// TestCase is a single named functional test. The name doubles as the
// executable name and, by convention, as the base of the got and reference
// file names.
type TestCase struct {
	Name           string              `json:"name" yaml:"name"`
	Reference      string              `json:"reference,omitempty" yaml:"reference,omitempty"`
	IgnoreFiles    []string            `json:"ignore_files,omitempty" yaml:"ignore_files,omitempty"`
	IgnoreElements map[string][]string `json:"ignore_elements,omitempty" yaml:"ignore_elements,omitempty"`
}

// NewTestCase returns a case that follows the naming convention entirely.
func NewTestCase(name string) TestCase {
	return TestCase{Name: name}
}

// GotFile is the file name the executable is expected to write.
func (tc TestCase) GotFile() string {
	return tc.Name + ".xlsx"
}

// ReferenceFile returns the reference file name: the explicit one if set,
// otherwise the case name with "test_" removed.
func (tc TestCase) ReferenceFile() string {
	if tc.Reference != "" {
		return tc.Reference
	}
	return strings.ReplaceAll(tc.Name, "test_", "") + ".xlsx"
}

// Names returns the names of the given cases in order.
func Names(cases []TestCase) []string {
	names := make([]string, 0, len(cases))
	for _, tc := range cases {
		names = append(names, tc.Name)
	}
	return names
}
