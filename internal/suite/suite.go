// Package suite holds the statically declared functional test suites.
package suite

import (
	"fmt"
	"sort"

	"xlsxft/internal/domain"
)

// Suite is a named, fixed list of test cases.
type Suite struct {
	Name  string
	Cases []domain.TestCase
}

// SetSelection checks the worksheet selection written by the generator
// against workbooks saved by a spreadsheet application.
var SetSelection = Suite{
	Name: "set_selection",
	Cases: []domain.TestCase{
		domain.NewTestCase("test_set_selection01"),
		domain.NewTestCase("test_set_selection02"),
	},
}

var builtin = map[string]Suite{
	SetSelection.Name: SetSelection,
}

// Lookup returns the built-in suite with the given name.
func Lookup(name string) (Suite, error) {
	s, ok := builtin[name]
	if !ok {
		return Suite{}, fmt.Errorf("unknown suite %q (known: %v)", name, Names())
	}
	return s, nil
}

// Names lists the built-in suite names, sorted.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
