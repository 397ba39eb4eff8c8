package backend

import (
	"context"
	"errors"
	"strings"

	"github.com/mmichie/inkspect/pkg/config"
	inkerrors "github.com/mmichie/inkspect/pkg/errors"
)

const (
	defaultClaudeURL     = "https://api.anthropic.com"
	claudeAPIVersion     = "2023-06-01"
	claudeMaxTokens      = 300
	claudeCompletionPath = "/v1/complete"
)

// claudeModels is the static list returned by ListModels
var claudeModels = []string{"claude-2", "claude-3"}

// Compile-time check
var _ Backend = (*Claude)(nil)

// Claude talks to the Anthropic completion endpoint
type Claude struct {
	apiKey  string
	model   string
	baseURL string
	http    exchange
}

type claudeRequest struct {
	Prompt            string `json:"prompt"`
	Model             string `json:"model"`
	MaxTokensToSample int    `json:"max_tokens_to_sample"`
}

type claudeResponse struct {
	Completion *string `json:"completion"`
}

// NewClaude creates a Claude backend
func NewClaude(cfg config.ProviderConfig) (Backend, error) {
	if err := requireAPIKey(config.ProviderClaude, cfg); err != nil {
		return nil, err
	}

	model := cfg.Model
	if model == "" {
		model = config.DefaultClaudeModel
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultClaudeURL
	}

	return &Claude{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    newExchange(config.ProviderClaude),
	}, nil
}

// Request sends the prompt to /v1/complete and returns the completion text
func (c *Claude) Request(ctx context.Context, prompt string) (string, error) {
	details := requestDetails{
		Method: "POST",
		URL:    c.baseURL + claudeCompletionPath,
		Body: claudeRequest{
			Prompt:            prompt,
			Model:             c.model,
			MaxTokensToSample: claudeMaxTokens,
		},
		Headers: map[string]string{
			"x-api-key":         c.apiKey,
			"anthropic-version": claudeAPIVersion,
		},
	}

	var resp claudeResponse
	if err := c.http.do(ctx, "request", details, &resp); err != nil {
		return "", err
	}
	if resp.Completion == nil {
		return "", inkerrors.Backend(config.ProviderClaude, "request",
			errors.Join(inkerrors.ErrMalformedResponse, errors.New("missing completion field")))
	}
	return *resp.Completion, nil
}

// ListModels returns the known Claude models without a network call
func (c *Claude) ListModels(ctx context.Context) ([]string, error) {
	return append([]string(nil), claudeModels...), nil
}
