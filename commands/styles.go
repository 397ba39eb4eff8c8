package commands

import (
	"github.com/spf13/cobra"

	"github.com/mmichie/inkspect/pkg/ui"
)

var listStylesCmd = &cobra.Command{
	Use:     "list-styles",
	Aliases: []string{"list-prompts"},
	Short:   "List the configured prompt styles",
	Args:    cobra.NoArgs,
	RunE:    runListStylesCommand,
}

// InitListStylesCommand wires up the list-styles command
func InitListStylesCommand(rootCmd *cobra.Command) {
	rootCmd.AddCommand(listStylesCmd)
}

func runListStylesCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ui.PrintStyles(cmd.OutOrStdout(), cfg.Styles, cfg.LLM.DefaultStyle)
	return nil
}
