// Package inspect reads the "set selection" state of a workbook: which
// sheet is active and which cell range is selected on each sheet.
package inspect

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// DefaultActiveCell is what a spreadsheet application shows when a sheet
// carries no selection element.
const DefaultActiveCell = "A1"

// SheetSelection is the selection state of one worksheet.
type SheetSelection struct {
	Sheet       string
	Active      bool
	ActiveCell  string
	SQRef       string
	TopLeftCell string
}

// String renders the selection on one line, e.g. "Sheet1 (active): B3 [B3:C4]".
func (s SheetSelection) String() string {
	name := s.Sheet
	if s.Active {
		name += " (active)"
	}
	cell := s.ActiveCell
	if cell == "" {
		cell = DefaultActiveCell + " (default)"
	}
	if s.SQRef != "" && s.SQRef != s.ActiveCell {
		return fmt.Sprintf("%s: %s [%s]", name, cell, s.SQRef)
	}
	return fmt.Sprintf("%s: %s", name, cell)
}

// Selections opens the workbook at path and returns every sheet's selection in sheet order.
func Selections(path string) ([]SheetSelection, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	active := f.GetActiveSheetIndex()
	var out []SheetSelection
	for i, name := range f.GetSheetList() {
		panes, err := f.GetPanes(name)
		if err != nil {
			return nil, fmt.Errorf("read panes of %s: %w", name, err)
		}
		sel := SheetSelection{
			Sheet:       name,
			Active:      i == active,
			TopLeftCell: panes.TopLeftCell,
		}
		if s, ok := pick(panes); ok {
			sel.ActiveCell = s.ActiveCell
			sel.SQRef = s.SQRef
		}
		out = append(out, sel)
	}
	return out, nil
}

// Summary is Selections rendered as strings. Errors are reported inline so
// it can decorate a failure report without masking the original failure.
func Summary(path string) []string {
	sels, err := Selections(path)
	if err != nil {
		return []string{err.Error()}
	}
	lines := make([]string, 0, len(sels))
	for _, s := range sels {
		lines = append(lines, s.String())
	}
	return lines
}

// pick returns the selection of the active pane, or the only one.
func pick(panes excelize.Panes) (excelize.Selection, bool) {
	if len(panes.Selection) == 0 {
		return excelize.Selection{}, false
	}
	for _, s := range panes.Selection {
		if panes.ActivePane != "" && s.Pane == panes.ActivePane {
			return s, true
		}
	}
	return panes.Selection[len(panes.Selection)-1], true
}
