package commands

import (
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/mmichie/inkspect/pkg/backend"
	"github.com/mmichie/inkspect/pkg/config"
	"github.com/mmichie/inkspect/pkg/ui"
)

// Keys the root command binds its persistent flags to
const (
	KeyConfig      = "config"
	KeyProvider    = "provider"
	KeyShowSecrets = "show_secrets"
	KeyVerbose     = "verbose"
)

// registry is the set of providers selectable with --provider
var registry = backend.DefaultRegistry()

func configPath() (string, error) {
	if path := viper.GetString(KeyConfig); path != "" {
		return path, nil
	}
	return config.DefaultPath()
}

func loadConfig() (*config.Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(viper.New(), path)
	if err != nil {
		return nil, err
	}

	if log.IsLevelEnabled(log.DebugLevel) {
		shown := cfg
		if !viper.GetBool(KeyShowSecrets) {
			if shown, err = cfg.Sanitized(); err != nil {
				return nil, err
			}
		}
		log.WithField("config", shown).Debug("Effective configuration")
	}
	return cfg, nil
}

func selectBackend(cfg *config.Config) (backend.Backend, error) {
	b, name, err := registry.FromConfig(cfg, viper.GetString(KeyProvider))
	if err != nil {
		return nil, err
	}
	log.WithField("provider", name).Debug("Selected backend")
	return b, nil
}

// readPipedInput returns stdin contents when data is piped in
func readPipedInput() (*string, error) {
	if !ui.StdinPiped() {
		return nil, nil
	}
	text, err := ui.ReadPiped(os.Stdin)
	if err != nil {
		return nil, errors.Wrap(err, "error reading from stdin")
	}
	return &text, nil
}
