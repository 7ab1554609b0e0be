package discovery

import (
	"errors"
	"fmt"
	"os"

	"xlsxft/internal/config"
	"xlsxft/internal/domain"
	"xlsxft/internal/suite"
)

// Resolver decides which cases a command works on. Sources, first match wins:
// a declaration file (--from), a named suite (--suite, manifest before
// built-in), the whole manifest, the executables found in the executable
// directory, and finally the default built-in suite.
type Resolver struct {
	config  *config.Config
	scanner *Scanner
	filter  *Filter
	parser  *Parser
}

// NewResolver creates a new Resolver
func NewResolver(cfg *config.Config, scanner *Scanner, filter *Filter, parser *Parser) *Resolver {
	return &Resolver{config: cfg, scanner: scanner, filter: filter, parser: parser}
}

// Resolve returns the cases to run. Names given explicitly are always
// returned, even when no source declares them, so that a missing executable
// surfaces as an execution error rather than being skipped.
func (r *Resolver) Resolve(names []string) ([]domain.TestCase, error) {
	declared, err := r.declared()
	if err != nil {
		return nil, err
	}

	cases := declared
	if len(names) > 0 {
		byName := make(map[string]domain.TestCase, len(declared))
		for _, tc := range declared {
			byName[tc.Name] = tc
		}
		cases = make([]domain.TestCase, 0, len(names))
		for _, name := range names {
			if tc, ok := byName[name]; ok {
				cases = append(cases, tc)
			} else {
				cases = append(cases, domain.NewTestCase(name))
			}
		}
	}

	return r.filter.FilterByName(cases, r.config.Flags.NameFilter), nil
}

func (r *Resolver) declared() ([]domain.TestCase, error) {
	if from := r.config.Flags.From; from != "" {
		return r.parser.FindTestCases(from)
	}

	manifest, err := r.manifest()
	if err != nil {
		return nil, err
	}

	if name := r.config.Flags.Suite; name != "" {
		if manifest != nil {
			cases, err := manifest.Cases(name)
			if err == nil {
				return cases, nil
			}
			if !errors.Is(err, config.ErrSuiteNotFound) {
				return nil, err
			}
		}
		s, err := suite.Lookup(name)
		if err != nil {
			return nil, err
		}
		return s.Cases, nil
	}

	if manifest != nil {
		return manifest.Cases("")
	}

	if info, err := os.Stat(r.config.GetExeDir()); err == nil && info.IsDir() {
		names, err := r.scanner.Scan(r.config.GetExeDir())
		if err != nil {
			return nil, fmt.Errorf("scan executables: %w", err)
		}
		if len(names) > 0 {
			cases := make([]domain.TestCase, 0, len(names))
			for _, n := range names {
				cases = append(cases, domain.NewTestCase(n))
			}
			return cases, nil
		}
	}

	s, err := suite.Lookup(config.DefaultSuite)
	if err != nil {
		return nil, err
	}
	return s.Cases, nil
}

// manifest loads the manifest if the project has one
func (r *Resolver) manifest() (*config.Manifest, error) {
	path := r.config.GetManifestPath()
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return config.LoadManifest(path)
}
