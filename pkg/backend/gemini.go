package backend

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/mmichie/inkspect/pkg/config"
	inkerrors "github.com/mmichie/inkspect/pkg/errors"
)

const (
	defaultGeminiURL = "https://generativelanguage.googleapis.com"
	blockNone        = "BLOCK_NONE"
)

// harmCategories are relaxed to BLOCK_NONE on every request
var harmCategories = []string{
	"HARM_CATEGORY_HARASSMENT",
	"HARM_CATEGORY_HATE_SPEECH",
	"HARM_CATEGORY_SEXUALLY_EXPLICIT",
	"HARM_CATEGORY_DANGEROUS_CONTENT",
}

// Compile-time check
var _ Backend = (*Gemini)(nil)

// Gemini talks to the Generative Language REST API
type Gemini struct {
	apiKey  string
	model   string
	baseURL string
	http    exchange
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiSafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type geminiRequest struct {
	Contents       []geminiContent       `json:"contents"`
	SafetySettings []geminiSafetySetting `json:"safety_settings"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text *string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type geminiModelsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// NewGemini creates a Gemini REST backend
func NewGemini(cfg config.ProviderConfig) (Backend, error) {
	if err := requireAPIKey(config.ProviderGemini, cfg); err != nil {
		return nil, err
	}

	model := cfg.Model
	if model == "" {
		model = config.DefaultGeminiModel
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGeminiURL
	}

	return &Gemini{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    newExchange(config.ProviderGemini),
	}, nil
}

func newGeminiRequest(prompt string) geminiRequest {
	settings := make([]geminiSafetySetting, 0, len(harmCategories))
	for _, category := range harmCategories {
		settings = append(settings, geminiSafetySetting{Category: category, Threshold: blockNone})
	}
	return geminiRequest{
		Contents:       []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		SafetySettings: settings,
	}
}

// Request posts the prompt to <model>:generateContent and returns the first candidate's text
func (g *Gemini) Request(ctx context.Context, prompt string) (string, error) {
	details := requestDetails{
		Method: "POST",
		URL:    fmt.Sprintf("%s/v1beta/%s:generateContent?key=%s", g.baseURL, g.model, url.QueryEscape(g.apiKey)),
		Body:   newGeminiRequest(prompt),
	}

	var resp geminiResponse
	if err := g.http.do(ctx, "request", details, &resp); err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 ||
		resp.Candidates[0].Content.Parts[0].Text == nil {
		return "", inkerrors.Backend(config.ProviderGemini, "request",
			errors.Join(inkerrors.ErrMalformedResponse, errors.New("no candidate text in response")))
	}
	return *resp.Candidates[0].Content.Parts[0].Text, nil
}

// ListModels fetches the advertised model names, preserving server order
func (g *Gemini) ListModels(ctx context.Context) ([]string, error) {
	details := requestDetails{
		Method: "GET",
		URL:    fmt.Sprintf("%s/v1/models?key=%s", g.baseURL, url.QueryEscape(g.apiKey)),
	}

	var resp geminiModelsResponse
	if err := g.http.do(ctx, "list_models", details, &resp); err != nil {
		return nil, err
	}

	models := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		models = append(models, m.Name)
	}
	return models, nil
}
