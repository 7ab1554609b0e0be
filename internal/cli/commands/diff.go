package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"xlsxft/internal/compare"
	"xlsxft/internal/config"
	"xlsxft/internal/ui"
)

// ErrFilesDiffer is returned by diff when the workbooks do not match
var ErrFilesDiffer = errors.New("workbooks differ")

// DiffCommand handles the diff command
type DiffCommand struct {
	config      *config.Config
	formatter   *ui.Formatter
	ignoreFiles []string
}

// NewDiffCommand creates a new DiffCommand
func NewDiffCommand(cfg *config.Config, formatter *ui.Formatter) *DiffCommand {
	return &DiffCommand{
		config:    cfg,
		formatter: formatter,
	}
}

// Execute runs the command
func (dc *DiffCommand) Execute(cmd *cobra.Command, args []string) error {
	comparator, err := compare.New(dc.config.Comparator)
	if err != nil {
		return err
	}

	gotPath, expPath := args[0], args[1]
	diff, err := comparator.Compare(gotPath, expPath, compare.Options{IgnoreFiles: dc.ignoreFiles})
	if err != nil {
		return fmt.Errorf("compare %s with %s: %w", gotPath, expPath, err)
	}

	dc.formatter.PrintDifference(gotPath, expPath, diff)
	if diff != nil {
		return ErrFilesDiffer
	}
	return nil
}
