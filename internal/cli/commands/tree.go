package commands

import (
	"github.com/spf13/cobra"

	"ntl/internal/config"
	"ntl/internal/storage"
	"ntl/internal/ui"
)

// TreeCommand handles the tree command
type TreeCommand struct {
	config    *config.Config
	storage   storage.Storage
	formatter *ui.Formatter
}

// NewTreeCommand creates a new TreeCommand
func NewTreeCommand(cfg *config.Config, st storage.Storage, formatter *ui.Formatter) *TreeCommand {
	return &TreeCommand{
		config:    cfg,
		storage:   st,
		formatter: formatter,
	}
}

// Execute runs the command
func (tc *TreeCommand) Execute(cmd *cobra.Command, args []string) error {
	summary, err := tc.storage.Load()
	if err != nil {
		return err
	}

	tc.formatter.PrintTree(summary, tc.config.Flags.Depth)
	return nil
}
