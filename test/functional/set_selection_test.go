//go:build functional

// Package functional runs the compiled test executables against the
// reference workbooks. The executables are built outside this module into
// test/functional/src; run with:
//
//	go test -tags functional ./test/functional/...
package functional

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"xlsxft/internal/compare"
	"xlsxft/internal/config"
	"xlsxft/internal/domain"
	"xlsxft/internal/execution"
	"xlsxft/internal/logging"
	"xlsxft/internal/suite"
)

// projectRoot is the module root relative to this package
const projectRoot = "../.."

func newInvoker(t *testing.T) *execution.Invoker {
	t.Helper()
	cfg := config.New()
	cfg.ProjectPath = projectRoot
	require.NoError(t, cfg.LoadEnv())

	comparator, err := compare.New(cfg.Comparator)
	require.NoError(t, err)

	log, err := logging.New(logging.Options{Level: cfg.LogLevel})
	require.NoError(t, err)
	return execution.NewInvoker(cfg, execution.NewRunner(cfg, log), comparator, log)
}

func TestSetSelection(t *testing.T) {
	inv := newInvoker(t)

	for _, tc := range suite.SetSelection.Cases {
		t.Run(tc.Name, func(t *testing.T) {
			result := inv.Run(context.Background(), tc)
			if result.Success {
				return
			}

			var execErr *domain.ExecutionError
			var mismatch *domain.ComparisonMismatch
			switch {
			case errors.As(result.Error, &execErr):
				t.Fatalf("execution failed: %v\n%s", execErr, execErr.Output)
			case errors.As(result.Error, &mismatch):
				t.Fatalf("%v\n%s\n%v", mismatch, mismatch.Diff, result.Selection)
			default:
				t.Fatalf("failed: %v", result.Error)
			}
		})
	}
}
