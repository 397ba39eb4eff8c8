package root

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mmichie/inkspect/commands"
	"github.com/mmichie/inkspect/pkg/backend"
)

// Version is the inkspect release
const Version = "0.1.0"

var (
	cfgFile     string
	provider    string
	verbose     bool
	showSecrets bool
)

// RootCmd is the root command for inkspect
var RootCmd = &cobra.Command{
	Use:   "inkspect",
	Short: "inkspect refines text and prompts with an LLM",
	Long: heredoc.Doc(`
		inkspect wraps your text in a reusable prompt style, sends it to an LLM
		provider and writes the cleaned-up reply to stdout, a file, or back over
		the input file.`),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initLogging, initEnv)

	backend.UserAgent = "inkspect/" + Version

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/inkspect/config.toml)")
	RootCmd.PersistentFlags().StringVar(&provider, "provider", "",
		fmt.Sprintf("LLM provider to use (%s)", strings.Join(backend.DefaultRegistry().Names(), ", ")))
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVar(&showSecrets, "show-secrets", false, "include API keys in debug logs and config show")

	viper.BindPFlag(commands.KeyConfig, RootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag(commands.KeyProvider, RootCmd.PersistentFlags().Lookup("provider"))
	viper.BindPFlag(commands.KeyVerbose, RootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag(commands.KeyShowSecrets, RootCmd.PersistentFlags().Lookup("show-secrets"))

	// Initialize all commands
	commands.InitOptimizeCommand(RootCmd)
	commands.InitListModelsCommand(RootCmd)
	commands.InitListStylesCommand(RootCmd)
	commands.InitConfigCommand(RootCmd)

	RootCmd.AddCommand(versionCmd)
}

func initLogging() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

// initEnv loads .env from the working directory when present
func initEnv() {
	if err := godotenv.Load(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return
		}
		log.WithError(err).Warn("Failed to load .env")
		return
	}
	log.Debug("Loaded .env")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of inkspect",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "inkspect v%s\n", Version)
	},
}
