package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"xlsxft/internal/config"
	"xlsxft/internal/ui"
)

// FailuresCommand handles the failures command
type FailuresCommand struct {
	config *config.Config
	env    *Env
}

// NewFailuresCommand creates a new FailuresCommand
func NewFailuresCommand(cfg *config.Config, env *Env) *FailuresCommand {
	return &FailuresCommand{
		config: cfg,
		env:    env,
	}
}

// Execute runs the command
func (fc *FailuresCommand) Execute(cmd *cobra.Command, args []string) error {
	st, err := fc.env.Storage()
	if err != nil {
		return err
	}

	results, err := st.Load()
	if err != nil {
		return fmt.Errorf("failed to load test results (run 'xlsxft run' first): %w", err)
	}

	return ui.NewErrorViewer(fc.config, st).View(results)
}
