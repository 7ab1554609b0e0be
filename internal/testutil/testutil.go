// Package testutil holds fixtures shared by package tests: selection
// workbooks built with excelize and stand-in test executables.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// Selection describes the selection to put on a fixture sheet.
type Selection struct {
	Sheet      string
	ActiveCell string
	SQRef      string
}

// WriteSelectionWorkbook saves a workbook at path with one sheet per
// selection and the given cells selected. The first sheet stays active.
func WriteSelectionWorkbook(t *testing.T, path string, sels ...Selection) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sels {
		if i == 0 {
			if first := f.GetSheetName(0); first != s.Sheet {
				require.NoError(t, f.SetSheetName(first, s.Sheet))
			}
		} else {
			_, err := f.NewSheet(s.Sheet)
			require.NoError(t, err)
		}
		require.NoError(t, f.SetPanes(s.Sheet, &excelize.Panes{
			Selection: []excelize.Selection{{ActiveCell: s.ActiveCell, SQRef: s.SQRef}},
		}))
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, f.SaveAs(path))
}

// SkipWithoutShell skips tests that rely on /bin/sh stand-in executables.
func SkipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stand-in executables are shell scripts")
	}
}

// WriteExecutable writes a shell script named name into dir and marks it executable.
func WriteExecutable(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	SkipWithoutShell(t)
	p := filepath.Join(dir, name)
	script := "#!/bin/sh\n" + strings.Join(lines, "\n") + "\n"
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(p, []byte(script), 0o755))
	return p
}

// CopyingExecutable writes an executable that copies src to <name>.xlsx in
// its working directory, the way a compiled test program writes its workbook.
func CopyingExecutable(t *testing.T, dir, name, src string) string {
	t.Helper()
	return WriteExecutable(t, dir, name, "cp '"+src+"' '"+name+".xlsx'")
}
