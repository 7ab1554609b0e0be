package execution

import (
	"context"
	"time"

	"xlsxft/internal/domain"
)

// Executor executes test cases and returns results
type Executor interface {
	Execute(ctx context.Context, cases []domain.TestCase) ([]domain.TestResult, time.Duration, error)
}
