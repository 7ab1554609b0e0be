package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ExecutablePrefix is the name prefix of functional test executables
const ExecutablePrefix = "test_"

// Scanner scans for test executables in a directory
type Scanner struct {
	skipDirs map[string]bool
}

// NewScanner creates a new Scanner with the given directories to skip
func NewScanner(skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap}
}

// Scan finds all test executables under root and returns their names,
// sorted. Executables in subdirectories are named by their slash-separated
// path relative to root.
func (s *Scanner) Scan(root string) ([]string, error) {
	var names []string

	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("executable path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("executable path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			name := d.Name()
			// Skip hidden directories (starting with .)
			if strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if s.skipDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || !isTestExecutable(d.Name()) {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		if fi.Mode().Perm()&0o111 == 0 {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(names)
	return names, nil
}

// isTestExecutable excludes sources and artifacts that share the prefix
// (test_x.c, test_x.o, test_x.xlsx).
func isTestExecutable(name string) bool {
	if !strings.HasPrefix(name, ExecutablePrefix) {
		return false
	}
	ext := filepath.Ext(name)
	return ext == "" || ext == ".exe"
}
