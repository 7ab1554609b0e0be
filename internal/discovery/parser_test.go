package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParser_FindTestCases(t *testing.T) {
	parser := NewParser()

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test_set_selection.py")
	content := `import base_test_class

class TestCompareXLSXFiles(base_test_class.XLSXBaseTest):

    def test_set_selection01(self):
        self.run_exe_test('test_set_selection01')

    def test_set_selection02(self):
        self.run_exe_test("test_set_selection02", "set_selection02.xlsx")

    def test_duplicate(self):
        self.run_exe_test('test_set_selection01')

    def helper(self):
        self.run_other('test_not_a_case')
`
	if err := os.WriteFile(testFile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	t.Run("finds declared cases", func(t *testing.T) {
		cases, err := parser.FindTestCases(testFile)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cases) != 2 {
			t.Fatalf("expected 2 test cases, got %d: %v", len(cases), cases)
		}
		if cases[0].Name != "test_set_selection01" || cases[0].Reference != "" {
			t.Errorf("unexpected first case: %+v", cases[0])
		}
		if cases[1].Name != "test_set_selection02" || cases[1].Reference != "set_selection02.xlsx" {
			t.Errorf("unexpected second case: %+v", cases[1])
		}
	})

	t.Run("returns error for non-existent file", func(t *testing.T) {
		_, err := parser.FindTestCases("/non/existent/file.py")
		if err == nil {
			t.Error("expected error for non-existent file")
		}
	})
}
