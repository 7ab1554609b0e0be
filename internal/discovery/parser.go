package discovery

import (
	"fmt"
	"os"
	"regexp"

	"xlsxft/internal/domain"
)

// Parser extracts test case declarations from legacy functional test files
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// Matches:
// - self.run_exe_test('test_set_selection01')
// - self.run_exe_test("test_set_selection02", "set_selection02.xlsx")
var exeTestPattern = regexp.MustCompile(`run_exe_test\(\s*['"](\w+)['"]\s*(?:,\s*['"]([^'"]+)['"]\s*)?\)`)

// FindTestCases returns the cases declared in a file, in declaration order
// and without duplicates
func (p *Parser) FindTestCases(filePath string) ([]domain.TestCase, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filePath, err)
	}

	seen := make(map[string]bool)
	var cases []domain.TestCase
	for _, match := range exeTestPattern.FindAllStringSubmatch(string(content), -1) {
		name := match[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		cases = append(cases, domain.TestCase{Name: name, Reference: match[2]})
	}
	return cases, nil
}
