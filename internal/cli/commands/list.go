package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"xlsxft/internal/config"
	"xlsxft/internal/discovery"
	"xlsxft/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	env       *Env
	resolver  *discovery.Resolver
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	env *Env,
	resolver *discovery.Resolver,
	formatter *ui.Formatter,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		env:       env,
		resolver:  resolver,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	cases, err := lc.resolver.Resolve(args)
	if err != nil {
		return err
	}

	if len(cases) == 0 {
		color.Yellow("No test cases found")
		return nil
	}

	lc.formatter.PrintCaseList(cases, lc.config.Flags.ShowPaths, lc.lastFailed())
	return nil
}

// lastFailed returns the names that failed in the last stored run. A
// missing or unreadable store just means nothing is marked.
func (lc *ListCommand) lastFailed() map[string]struct{} {
	failed := map[string]struct{}{}
	st, err := lc.env.Storage()
	if err != nil {
		lc.env.Logger().WithError(err).Debug("no result store")
		return failed
	}
	last, err := st.Load()
	if err != nil {
		lc.env.Logger().WithError(err).Debug("no previous run")
		return failed
	}
	for _, name := range last.FailedNames() {
		failed[name] = struct{}{}
	}
	return failed
}
