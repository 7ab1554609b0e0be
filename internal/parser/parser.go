package parser

import "xlsxft/internal/domain"

// Parser turns test results into stored failure records
type Parser interface {
	ParseFailure(result domain.TestResult) []domain.TestFailure
}
