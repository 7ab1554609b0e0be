package execution

import (
	"context"
	"sync"
	"time"

	"xlsxft/internal/config"
	"xlsxft/internal/domain"
)

// Progress receives pass/fail counts as cases complete
type Progress interface {
	Update(passed, failed int)
	Finish()
}

var _ Executor = (*WorkerPool)(nil)

// WorkerPool runs test cases through the invoker. With one worker cases run
// strictly one after another; more workers are safe because every case
// owns its executable and output file.
type WorkerPool struct {
	config   *config.Config
	invoker  *Invoker
	progress Progress
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, invoker *Invoker) *WorkerPool {
	return &WorkerPool{
		config:  cfg,
		invoker: invoker,
	}
}

// SetProgress sets the progress reporter for the worker pool
func (wp *WorkerPool) SetProgress(progress Progress) {
	wp.progress = progress
}

// Execute runs all cases (no fail-fast).
func (wp *WorkerPool) Execute(ctx context.Context, cases []domain.TestCase) ([]domain.TestResult, time.Duration, error) {
	return wp.ExecuteWithOptions(ctx, cases, false)
}

// ExecuteWithOptions runs cases with optional fail-fast (stop on first
// failure). Results come back in the order of cases; with fail-fast, cases
// never started are absent.
func (wp *WorkerPool) ExecuteWithOptions(ctx context.Context, cases []domain.TestCase, failFast bool) ([]domain.TestResult, time.Duration, error) {
	if len(cases) == 0 {
		return nil, 0, nil
	}

	// queueCtx stops feeding cases after a fail-fast failure; cases already
	// running finish under ctx and their results are dropped.
	queueCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type job struct {
		index int
		tc    domain.TestCase
	}
	queue := make(chan job)
	go func() {
		defer close(queue)
		for i, tc := range cases {
			select {
			case <-queueCtx.Done():
				return
			case queue <- job{index: i, tc: tc}:
			}
		}
	}()

	slots := make([]*domain.TestResult, len(cases))
	var mu sync.Mutex
	var passed, failed int
	var seenFailure bool
	startTime := time.Now()

	workerCount := wp.config.Processors
	if workerCount <= 0 {
		workerCount = 1
	}

	var wg sync.WaitGroup
	for i := 1; i <= workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range queue {
				if queueCtx.Err() != nil {
					continue
				}
				result := wp.invoker.Run(ctx, j.tc)

				mu.Lock()
				if failFast && seenFailure {
					mu.Unlock()
					continue
				}
				slots[j.index] = &result
				if result.Success {
					passed++
				} else {
					failed++
					if failFast {
						seenFailure = true
						cancel()
					}
				}
				if wp.progress != nil {
					wp.progress.Update(passed, failed)
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if wp.progress != nil {
		wp.progress.Finish()
	}

	results := make([]domain.TestResult, 0, len(cases))
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}
	return results, time.Since(startTime), nil
}
