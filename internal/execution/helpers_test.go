package execution

import (
	"path/filepath"
	"testing"
	"time"

	"xlsxft/internal/compare"
	"xlsxft/internal/config"
	"xlsxft/internal/logging"
	"xlsxft/internal/testutil"
)

type fixture struct {
	cfg    *config.Config
	exeDir string
	refDir string
	tmpDir string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	testutil.SkipWithoutShell(t)

	root := t.TempDir()
	cfg := config.New()
	cfg.ProjectPath = root
	cfg.ExeDir = "bin"
	cfg.ReferenceDir = "ref"
	cfg.Timeout = 10 * time.Second

	return &fixture{
		cfg:    cfg,
		exeDir: filepath.Join(root, "bin"),
		refDir: filepath.Join(root, "ref"),
		tmpDir: t.TempDir(),
	}
}

// reference writes the reference workbook for a case with B3 selected.
func (f *fixture) reference(t *testing.T, file string) string {
	t.Helper()
	p := filepath.Join(f.refDir, file)
	testutil.WriteSelectionWorkbook(t, p, testutil.Selection{Sheet: "Sheet1", ActiveCell: "B3", SQRef: "B3"})
	return p
}

// workbook writes a scratch workbook outside the project with the given selection.
func (f *fixture) workbook(t *testing.T, name, cell, sqref string) string {
	t.Helper()
	p := filepath.Join(f.tmpDir, name)
	testutil.WriteSelectionWorkbook(t, p, testutil.Selection{Sheet: "Sheet1", ActiveCell: cell, SQRef: sqref})
	return p
}

func (f *fixture) invoker(t *testing.T) *Invoker {
	t.Helper()
	log := logging.Discard()
	return NewInvoker(f.cfg, NewRunner(f.cfg, log), compare.NewStructural(), log)
}
