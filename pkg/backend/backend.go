// Package backend defines the contract every LLM provider integration satisfies
package backend

import (
	"context"

	"github.com/mmichie/inkspect/pkg/config"
	inkerrors "github.com/mmichie/inkspect/pkg/errors"
)

//go:generate mockgen -destination=./mocks/mock_backend.go -package=mocks github.com/mmichie/inkspect/pkg/backend Backend

// UserAgent is sent with every provider request
var UserAgent = "inkspect/0.1.0"

// Backend represents an LLM provider
type Backend interface {
	// Request sends the composed prompt and returns the provider's raw reply
	Request(ctx context.Context, prompt string) (string, error)

	// ListModels returns the provider's model identifiers in provider order
	ListModels(ctx context.Context) ([]string, error)
}

// Factory builds a Backend from its provider configuration
type Factory func(cfg config.ProviderConfig) (Backend, error)

func requireAPIKey(provider string, cfg config.ProviderConfig) error {
	if cfg.APIKey == "" {
		return inkerrors.Configurationf("no API key configured for provider %s (set providers.%s.api_key)", provider, provider)
	}
	return nil
}
