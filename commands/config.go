package commands

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mmichie/inkspect/pkg/config"
)

var forceInit bool

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage the inkspect configuration file",
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Long: heredoc.Doc(`
			Write the built-in defaults to the configuration file. An existing file
			is left alone unless --force is given. API keys can be filled in afterwards
			or supplied through CLAUDE_API_KEY and GEMINI_API_KEY.`),
		Args: cobra.NoArgs,
		RunE: runConfigInitCommand,
	}

	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long:  `Print the configuration after defaults, file and environment are merged. API keys are redacted unless --show-secrets is given.`,
		Args:  cobra.NoArgs,
		RunE:  runConfigShowCommand,
	}

	configPathCmd = &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE:  runConfigPathCommand,
	}
)

// InitConfigCommand wires up the config command and its subcommands
func InitConfigCommand(rootCmd *cobra.Command) {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd, configPathCmd)
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing configuration file")
}

func runConfigInitCommand(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	def := config.Default()
	if err := config.Write(&def, path, forceInit); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
	return nil
}

func runConfigShowCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !viper.GetBool(KeyShowSecrets) {
		if cfg, err = cfg.Sanitized(); err != nil {
			return err
		}
	}

	enc := toml.NewEncoder(cmd.OutOrStdout())
	if err := enc.Encode(cfg.ToMap()); err != nil {
		return errors.Wrap(err, "error encoding configuration")
	}
	return nil
}

func runConfigPathCommand(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
