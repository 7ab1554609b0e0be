package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xlsxft/internal/config"
	"xlsxft/internal/domain"
	"xlsxft/internal/testutil"
)

func newTestResolver(t *testing.T) (*Resolver, *config.Config) {
	t.Helper()
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	return NewResolver(cfg, NewScanner(cfg.PathsToIgnore), NewFilter(), NewParser()), cfg
}

func TestResolveFallsBackToBuiltInSuite(t *testing.T) {
	r, _ := newTestResolver(t)

	cases, err := r.Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"test_set_selection01", "test_set_selection02"}, domain.Names(cases))
}

func TestResolveScansExecutableDir(t *testing.T) {
	r, cfg := newTestResolver(t)
	testutil.WriteExecutable(t, cfg.GetExeDir(), "test_b", "exit 0")
	testutil.WriteExecutable(t, cfg.GetExeDir(), "test_a", "exit 0")

	cases, err := r.Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"test_a", "test_b"}, domain.Names(cases))
}

func TestResolveManifest(t *testing.T) {
	r, cfg := newTestResolver(t)
	manifest := `
suites:
  - name: first
    cases: [test_one]
  - name: set_selection
    cases:
      - name: test_set_selection01
        reference: custom.xlsx
`
	require.NoError(t, os.WriteFile(cfg.GetManifestPath(), []byte(manifest), 0o644))

	cases, err := r.Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"test_one", "test_set_selection01"}, domain.Names(cases))

	// A manifest suite shadows the built-in suite of the same name
	cfg.Flags.Suite = "set_selection"
	cases, err = r.Resolve(nil)
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, "custom.xlsx", cases[0].ReferenceFile())
}

func TestResolveSuite(t *testing.T) {
	r, cfg := newTestResolver(t)

	cfg.Flags.Suite = "set_selection"
	cases, err := r.Resolve(nil)
	require.NoError(t, err)
	assert.Len(t, cases, 2)

	cfg.Flags.Suite = "nope"
	_, err = r.Resolve(nil)
	assert.Error(t, err)
}

func TestResolveFromDeclarationFile(t *testing.T) {
	r, cfg := newTestResolver(t)
	decl := filepath.Join(cfg.ProjectPath, "test_decl.txt")
	require.NoError(t, os.WriteFile(decl, []byte("run_exe_test('test_x')\nrun_exe_test('test_y', 'y_ref.xlsx')\n"), 0o644))
	cfg.Flags.From = decl

	cases, err := r.Resolve(nil)
	require.NoError(t, err)
	require.Equal(t, []string{"test_x", "test_y"}, domain.Names(cases))
	assert.Equal(t, "y_ref.xlsx", cases[1].ReferenceFile())
}

func TestResolveExplicitNames(t *testing.T) {
	r, _ := newTestResolver(t)

	// Undeclared names are kept so a missing executable fails at run time
	cases, err := r.Resolve([]string{"test_set_selection02", "test_unknown"})
	require.NoError(t, err)
	assert.Equal(t, []string{"test_set_selection02", "test_unknown"}, domain.Names(cases))
}

func TestResolveAppliesNameFilter(t *testing.T) {
	r, cfg := newTestResolver(t)
	cfg.Flags.NameFilter = "*01"

	cases, err := r.Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"test_set_selection01"}, domain.Names(cases))
}
