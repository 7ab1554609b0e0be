package discovery

import (
	"path/filepath"
	"strings"

	"xlsxft/internal/domain"
)

// Filter filters test cases by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters test cases by name pattern using wildcard matching
// Supports patterns like "test_set_selection0?" or "*selection*"
func (f *Filter) FilterByName(cases []domain.TestCase, pattern string) []domain.TestCase {
	if pattern == "" {
		return cases
	}

	var filtered []domain.TestCase
	for _, tc := range cases {
		if matchName(tc.Name, pattern) {
			filtered = append(filtered, tc)
		}
	}
	return filtered
}

// FilterByNames keeps the cases whose name is in names, in the order of cases
func (f *Filter) FilterByNames(cases []domain.TestCase, names []string) []domain.TestCase {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var filtered []domain.TestCase
	for _, tc := range cases {
		if want[tc.Name] {
			filtered = append(filtered, tc)
		}
	}
	return filtered
}

func matchName(name, pattern string) bool {
	// filepath.Match handles * and ? wildcards
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	if strings.Contains(pattern, "*") {
		// Every non-empty fragment between wildcards must appear in the name
		hasPart := false
		for _, part := range strings.Split(pattern, "*") {
			if part == "" {
				continue
			}
			hasPart = true
			if !strings.Contains(name, part) {
				return false
			}
		}
		return hasPart
	}

	// No wildcards: simple contains check
	if !strings.Contains(pattern, "?") {
		return strings.Contains(name, pattern)
	}
	return false
}
