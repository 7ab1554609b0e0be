package compare

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/google/go-cmp/cmp"
)

var binaryExtensions = map[string]bool{
	".png":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".wmf":  true,
	".emf":  true,
	".bin":  true,
}

var (
	elementSplit   = regexp.MustCompile(`>\s*<`)
	coreDate       = regexp.MustCompile(`\d\d\d\d-\d\d-\d\dT\d\d:\d\d:\d\dZ`)
	coreAuthor     = regexp.MustCompile(` ?John`)
	workbookView   = regexp.MustCompile(`<workbookView[^>]*>`)
	calcPr         = regexp.MustCompile(`<calcPr[^>]*>`)
	worksheetPart  = regexp.MustCompile(`^xl/worksheets/sheet\d+\.xml$`)
	pageSetupRID   = regexp.MustCompile(`(<pageSetup[^>]*) r:id="rId1"`)
	chartPart      = regexp.MustCompile(`^xl/charts/chart\d+\.xml$`)
	chartMargins   = regexp.MustCompile(`<c:pageMargins[^>]*>`)
	relsPart       = regexp.MustCompile(`\.rels$`)
	contentTypes   = "[Content_Types].xml"
	horizontalDpi  = `horizontalDpi="200" `
	verticalDpi    = `verticalDpi="200" `
)

// Structural compares two xlsx packages part by part. XML parts are
// normalised into element lists so that attributes an office application
// writes differently between saves (timestamps, window geometry, printer
// settings) do not count as differences.
type Structural struct{}

// NewStructural creates an xlsx package comparator
func NewStructural() *Structural {
	return &Structural{}
}

// Name implements Comparator.
func (s *Structural) Name() string { return NameStructural }

// Compare implements Comparator.
func (s *Structural) Compare(gotPath, expPath string, opts Options) (*Difference, error) {
	gotZip, err := zip.OpenReader(gotPath)
	if err != nil {
		return nil, fmt.Errorf("open got file: %w", err)
	}
	defer gotZip.Close()

	expZip, err := zip.OpenReader(expPath)
	if err != nil {
		return nil, fmt.Errorf("open reference file: %w", err)
	}
	defer expZip.Close()

	gotParts := partNames(&gotZip.Reader, opts.IgnoreFiles)
	expParts := partNames(&expZip.Reader, opts.IgnoreFiles)
	if !slices.Equal(gotParts, expParts) {
		return &Difference{
			Got:      gotParts,
			Expected: expParts,
			Diff:     cmp.Diff(expParts, gotParts),
		}, nil
	}

	for _, name := range expParts {
		got, err := readPart(&gotZip.Reader, name)
		if err != nil {
			return nil, fmt.Errorf("got file: %w", err)
		}
		exp, err := readPart(&expZip.Reader, name)
		if err != nil {
			return nil, fmt.Errorf("reference file: %w", err)
		}

		if binaryExtensions[path.Ext(name)] {
			if !bytes.Equal(got, exp) {
				return &Difference{
					Part:     name,
					Got:      []string{"got: " + name},
					Expected: []string{"exp: " + name},
					Diff:     "binary part differs",
				}, nil
			}
			continue
		}

		gotXML, expXML := normalizePart(name, string(got), string(exp))
		gotList := xmlToList(gotXML)
		expList := xmlToList(expXML)

		if patterns := opts.IgnoreElements[name]; len(patterns) > 0 {
			gotList, err = dropElements(gotList, patterns)
			if err != nil {
				return nil, err
			}
			expList, err = dropElements(expList, patterns)
			if err != nil {
				return nil, err
			}
		}

		if name == contentTypes || relsPart.MatchString(name) {
			gotList = sortRelElements(gotList)
			expList = sortRelElements(expList)
		}

		if !slices.Equal(gotList, expList) {
			return &Difference{
				Part:     name,
				Got:      gotList,
				Expected: expList,
				Diff:     cmp.Diff(expList, gotList),
			}, nil
		}
	}
	return nil, nil
}

func partNames(r *zip.Reader, ignore []string) []string {
	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		if slices.Contains(ignore, f.Name) {
			continue
		}
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}

func readPart(r *zip.Reader, name string) ([]byte, error) {
	f, err := r.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open part %s: %w", name, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read part %s: %w", name, err)
	}
	return data, nil
}

// normalizePart strips content that legitimately differs between the
// generated file and one saved by a spreadsheet application.
func normalizePart(name, got, exp string) (string, string) {
	switch {
	case name == "docProps/core.xml":
		exp = coreAuthor.ReplaceAllString(exp, "")
		exp = coreDate.ReplaceAllString(exp, "")
		got = coreDate.ReplaceAllString(got, "")
	case name == "xl/workbook.xml":
		exp = workbookView.ReplaceAllString(exp, "<workbookView/>")
		got = workbookView.ReplaceAllString(got, "<workbookView/>")
		exp = calcPr.ReplaceAllString(exp, "<calcPr/>")
		got = calcPr.ReplaceAllString(got, "<calcPr/>")
	case worksheetPart.MatchString(name):
		exp = strings.ReplaceAll(exp, horizontalDpi, "")
		exp = strings.ReplaceAll(exp, verticalDpi, "")
		exp = pageSetupRID.ReplaceAllString(exp, "$1")
	case chartPart.MatchString(name):
		exp = chartMargins.ReplaceAllString(exp, "<c:pageMargins/>")
		got = chartMargins.ReplaceAllString(got, "<c:pageMargins/>")
	}
	return got, exp
}

// xmlToList splits an XML document into one string per tag or text run.
func xmlToList(xml string) []string {
	xml = strings.TrimSpace(xml)
	if xml == "" {
		return nil
	}
	elements := elementSplit.Split(xml, -1)
	for i, el := range elements {
		el = strings.ReplaceAll(el, "\r", "")
		if !strings.HasPrefix(el, "<") {
			el = "<" + el
		}
		if !strings.HasSuffix(el, ">") {
			el = el + ">"
		}
		elements[i] = el
	}
	return elements
}

func dropElements(elements []string, patterns []string) ([]string, error) {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(`^(?:` + p + `)`)
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", p, err)
		}
		res = append(res, re)
	}
	kept := elements[:0:0]
outer:
	for _, el := range elements {
		for _, re := range res {
			if re.MatchString(el) {
				continue outer
			}
		}
		kept = append(kept, el)
	}
	return kept, nil
}

// sortRelElements sorts everything between the XML declaration/root open
// tag and the root close tag. Relationship and content type entries carry
// no meaningful order.
func sortRelElements(elements []string) []string {
	if len(elements) < 3 {
		return elements
	}
	sorted := slices.Clone(elements)
	sort.Strings(sorted[1 : len(sorted)-1])
	return sorted
}
