package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/mmichie/inkspect/pkg/config"
	inkerrors "github.com/mmichie/inkspect/pkg/errors"
)

// Compile-time check
var _ Backend = (*GenAI)(nil)

// GenAI is a Gemini backend built on the official Go SDK
type GenAI struct {
	apiKey   string
	model    string
	endpoint string
}

// NewGenAI creates an SDK-backed Gemini backend
func NewGenAI(cfg config.ProviderConfig) (Backend, error) {
	if err := requireAPIKey(config.ProviderGenAI, cfg); err != nil {
		return nil, err
	}

	model := cfg.Model
	if model == "" {
		model = config.DefaultGenAIModel
	}

	return &GenAI{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: cfg.BaseURL,
	}, nil
}

func (g *GenAI) newClient(ctx context.Context) (*genai.Client, error) {
	opts := []option.ClientOption{
		option.WithAPIKey(g.apiKey),
		option.WithUserAgent(UserAgent),
	}
	if g.endpoint != "" {
		opts = append(opts, option.WithEndpoint(g.endpoint))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return client, nil
}

func safetySettings() []*genai.SafetySetting {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}
	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, c := range categories {
		settings = append(settings, &genai.SafetySetting{Category: c, Threshold: genai.HarmBlockNone})
	}
	return settings
}

// Request generates content for prompt and returns the first candidate's first text part
func (g *GenAI) Request(ctx context.Context, prompt string) (string, error) {
	client, err := g.newClient(ctx)
	if err != nil {
		return "", inkerrors.Backend(config.ProviderGenAI, "request", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	model.SafetySettings = safetySettings()

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", inkerrors.Backend(config.ProviderGenAI, "request", fmt.Errorf("error generating content: %w", err))
	}

	text, ok := firstText(resp)
	if !ok {
		return "", inkerrors.Backend(config.ProviderGenAI, "request",
			errors.Join(inkerrors.ErrMalformedResponse, errors.New("no candidate text in response")))
	}
	return text, nil
}

func firstText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", false
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", false
	}
	text, ok := content.Parts[0].(genai.Text)
	return string(text), ok
}

// ListModels walks the SDK model iterator, preserving server order
func (g *GenAI) ListModels(ctx context.Context) ([]string, error) {
	client, err := g.newClient(ctx)
	if err != nil {
		return nil, inkerrors.Backend(config.ProviderGenAI, "list_models", err)
	}
	defer client.Close()

	var models []string
	iter := client.ListModels(ctx)
	for {
		info, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, inkerrors.WrapBackend(err, config.ProviderGenAI, "list_models")
		}
		models = append(models, info.Name)
	}
	return models, nil
}

