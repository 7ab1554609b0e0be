package commands

import (
	"github.com/spf13/cobra"

	"xlsxft/internal/inspect"
	"xlsxft/internal/ui"
)

// InspectCommand handles the inspect command
type InspectCommand struct {
	formatter *ui.Formatter
}

// NewInspectCommand creates a new InspectCommand
func NewInspectCommand(formatter *ui.Formatter) *InspectCommand {
	return &InspectCommand{formatter: formatter}
}

// Execute runs the command
func (ic *InspectCommand) Execute(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		sels, err := inspect.Selections(path)
		if err != nil {
			return err
		}
		ic.formatter.PrintSelections(path, sels)
	}
	return nil
}
