package backend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmichie/inkspect/pkg/config"
	inkerrors "github.com/mmichie/inkspect/pkg/errors"
)

type staticBackend struct {
	reply string
}

func (s staticBackend) Request(ctx context.Context, prompt string) (string, error) {
	return s.reply, nil
}

func (s staticBackend) ListModels(ctx context.Context) ([]string, error) {
	return []string{"static"}, nil
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register("static", func(cfg config.ProviderConfig) (Backend, error) {
		return staticBackend{reply: cfg.Model}, nil
	})

	t.Run("Create registered backend", func(t *testing.T) {
		b, err := r.Create("static", config.ProviderConfig{Model: "echo"})
		require.NoError(t, err)

		reply, err := b.Request(context.Background(), "ignored")
		require.NoError(t, err)
		assert.Equal(t, "echo", reply)
	})

	t.Run("Unknown provider", func(t *testing.T) {
		_, err := r.Create("openai", config.ProviderConfig{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, inkerrors.ErrConfiguration))
		assert.Equal(t, "unsupported provider: openai", err.Error())
	})
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{"claude", "gemini", "genai"}, r.Names())

	cfg := config.Default()
	cfg.Providers[config.ProviderClaude] = config.ProviderConfig{APIKey: "k", Model: "claude-2"}

	t.Run("Falls back to configured provider", func(t *testing.T) {
		b, name, err := r.FromConfig(&cfg, "")
		require.NoError(t, err)
		assert.Equal(t, "claude", name)
		assert.IsType(t, &Claude{}, b)
	})

	t.Run("Explicit provider without key", func(t *testing.T) {
		_, name, err := r.FromConfig(&cfg, "gemini")
		require.Error(t, err)
		assert.Equal(t, "gemini", name)
		assert.True(t, errors.Is(err, inkerrors.ErrConfiguration))
	})

	t.Run("Unsupported provider", func(t *testing.T) {
		_, _, err := r.FromConfig(&cfg, "grok")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported provider: grok")
	})
}

func TestGenAIConstruction(t *testing.T) {
	_, err := NewGenAI(config.ProviderConfig{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, inkerrors.ErrConfiguration))

	b, err := NewGenAI(config.ProviderConfig{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, config.DefaultGenAIModel, b.(*GenAI).model)
	assert.Len(t, safetySettings(), 4)
}
