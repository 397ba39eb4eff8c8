package commands

import (
	"github.com/spf13/cobra"

	"github.com/mmichie/inkspect/pkg/ui"
)

var listModelsCmd = &cobra.Command{
	Use:   "list-models",
	Short: "List the models offered by the selected provider",
	Long:  `List the model identifiers advertised by the provider, in the order the provider returns them. Use --provider to pick a provider other than the configured default.`,
	Args:  cobra.NoArgs,
	RunE:  runListModelsCommand,
}

// InitListModelsCommand wires up the list-models command
func InitListModelsCommand(rootCmd *cobra.Command) {
	rootCmd.AddCommand(listModelsCmd)
}

func runListModelsCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	b, err := selectBackend(cfg)
	if err != nil {
		return err
	}

	models, err := b.ListModels(cmd.Context())
	if err != nil {
		return err
	}
	ui.PrintLines(cmd.OutOrStdout(), models)
	return nil
}
