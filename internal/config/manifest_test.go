package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const manifestYAML = `
suites:
  - name: set_selection
    cases:
      - test_set_selection01
      - name: test_set_selection02
        reference: custom02.xlsx
        ignore_files: [xl/calcChain.xml]
        ignore_elements:
          xl/workbook.xml: ["<fileVersion"]
  - name: other
    cases:
      - test_other01
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "xlsxft.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadManifest(t *testing.T) {
	m, err := LoadManifest(writeManifest(t, manifestYAML))
	require.NoError(t, err)
	require.Len(t, m.Suites, 2)

	cases, err := m.Cases("set_selection")
	require.NoError(t, err)
	require.Len(t, cases, 2)

	assert.Equal(t, "test_set_selection01", cases[0].Name)
	assert.Equal(t, "set_selection01.xlsx", cases[0].ReferenceFile())

	assert.Equal(t, "custom02.xlsx", cases[1].ReferenceFile())
	assert.Equal(t, []string{"xl/calcChain.xml"}, cases[1].IgnoreFiles)
	assert.Equal(t, []string{"<fileVersion"}, cases[1].IgnoreElements["xl/workbook.xml"])

	all, err := m.Cases("")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestManifest_UnknownSuite(t *testing.T) {
	m, err := LoadManifest(writeManifest(t, manifestYAML))
	require.NoError(t, err)

	_, err = m.Cases("missing")
	assert.True(t, errors.Is(err, ErrSuiteNotFound))
}

func TestLoadManifest_Errors(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)

	_, err = LoadManifest(writeManifest(t, "suites:\n  - name: s\n    cases:\n      - reference: x.xlsx\n"))
	assert.ErrorContains(t, err, "case without name")
}
