package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"xlsxft/internal/domain"
)

// ErrSuiteNotFound is returned when a manifest has no suite of the requested name.
var ErrSuiteNotFound = errors.New("suite not found")

// Manifest declares test suites. Example:
//
//	suites:
//	  - name: set_selection
//	    cases:
//	      - test_set_selection01
//	      - name: test_set_selection02
//	        ignore_elements:
//	          xl/workbook.xml: ["<fileVersion"]
type Manifest struct {
	Suites []SuiteSpec `yaml:"suites"`
}

// SuiteSpec is a named list of cases.
type SuiteSpec struct {
	Name  string     `yaml:"name"`
	Cases []CaseSpec `yaml:"cases"`
}

// CaseSpec is a case written either as a bare name or as a mapping.
type CaseSpec struct {
	domain.TestCase
}

// UnmarshalYAML accepts both forms.
func (cs *CaseSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		cs.Name = node.Value
		return nil
	}
	type plain domain.TestCase
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	if p.Name == "" {
		return fmt.Errorf("line %d: case without name", node.Line)
	}
	cs.TestCase = domain.TestCase(p)
	return nil
}

// LoadManifest reads and parses a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &m, nil
}

// Cases returns the cases of the named suite, or of all suites when name is empty.
func (m *Manifest) Cases(name string) ([]domain.TestCase, error) {
	var cases []domain.TestCase
	found := false
	for _, s := range m.Suites {
		if name != "" && s.Name != name {
			continue
		}
		found = true
		for _, cs := range s.Cases {
			cases = append(cases, cs.TestCase)
		}
	}
	if name != "" && !found {
		return nil, fmt.Errorf("%w: %s", ErrSuiteNotFound, name)
	}
	return cases, nil
}
