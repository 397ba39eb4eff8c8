package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inkerrors "github.com/mmichie/inkspect/pkg/errors"
)

var testRoot = newTestRoot()

func newTestRoot() *cobra.Command {
	root := &cobra.Command{Use: "inkspect", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().String("config", "", "")
	root.PersistentFlags().String("provider", "", "")
	root.PersistentFlags().Bool("show-secrets", false, "")

	InitOptimizeCommand(root)
	InitListModelsCommand(root)
	InitListStylesCommand(root)
	InitConfigCommand(root)
	return root
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("CLAUDE_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	color.NoColor = true

	viper.Reset()
	t.Cleanup(viper.Reset)
	flags := testRoot.PersistentFlags()
	viper.BindPFlag(KeyConfig, flags.Lookup("config"))
	viper.BindPFlag(KeyProvider, flags.Lookup("provider"))
	viper.BindPFlag(KeyShowSecrets, flags.Lookup("show-secrets"))

	resetFlags(testRoot)
	var stdout, stderr bytes.Buffer
	testRoot.SetOut(&stdout)
	testRoot.SetErr(&stderr)
	testRoot.SetArgs(args)

	err := testRoot.Execute()
	return stdout.String(), stderr.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func claudeServer(t *testing.T, completion string, prompts *[]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Prompt string `json:"prompt"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		*prompts = append(*prompts, req.Prompt)
		json.NewEncoder(w).Encode(map[string]string{"completion": completion})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func claudeConfig(baseURL string) string {
	return fmt.Sprintf(`
[llm]
provider = "claude"
default_prompt = "tidy"
system_prompt = "Be concise."

[providers.claude]
api_key = "sk-test-secret"
base_url = %q

[[prompts]]
name = "tidy"
prompt = "Tidy this text"
description = "Light cleanup"

[[prompts]]
name = "expand"
prompt = "Expand this text"
`, baseURL)
}

func TestOptimizeToFile(t *testing.T) {
	var prompts []string
	srv := claudeServer(t, "Of course.\nTidied text", &prompts)
	cfg := writeConfig(t, claudeConfig(srv.URL))
	out := filepath.Join(t.TempDir(), "out.md")

	stdout, _, err := execute(t, "--config", cfg, "optimize", "-i", "messy text", "-o", out)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	require.Len(t, prompts, 1)
	assert.Equal(t, "Be concise.\n\nTidy this text\n\nmessy text", prompts[0])

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Tidied text", string(data))
}

func TestOptimizeToStdoutWithStyleAndNoSystemPrompt(t *testing.T) {
	var prompts []string
	srv := claudeServer(t, "Expanded", &prompts)
	cfg := writeConfig(t, claudeConfig(srv.URL))

	stdout, _, err := execute(t, "--config", cfg, "optimize", "-i", "short", "--style", "expand", "--no-system-prompt")
	require.NoError(t, err)
	assert.Equal(t, "Expanded\n", stdout)
	assert.Equal(t, []string{"Expand this text\n\nshort"}, prompts)
}

func TestOptimizeInPlace(t *testing.T) {
	var prompts []string
	srv := claudeServer(t, "rewritten", &prompts)
	cfg := writeConfig(t, claudeConfig(srv.URL))
	in := filepath.Join(t.TempDir(), "in.md")
	require.NoError(t, os.WriteFile(in, []byte("original"), 0o644))

	_, stderr, err := execute(t, "--config", cfg, "optimize", "-f", in, "--in-place")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Updated "+in)

	data, err := os.ReadFile(in)
	require.NoError(t, err)
	assert.Equal(t, "rewritten", string(data))
}

func TestOptimizeEmptyInput(t *testing.T) {
	var prompts []string
	srv := claudeServer(t, "unused", &prompts)
	cfg := writeConfig(t, claudeConfig(srv.URL))

	stdout, stderr, err := execute(t, "--config", cfg, "optimize", "-i", "   ")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Input is empty. Exiting.")
	assert.Empty(t, prompts)
}

func TestOptimizeValidation(t *testing.T) {
	var prompts []string
	srv := claudeServer(t, "unused", &prompts)
	cfg := writeConfig(t, claudeConfig(srv.URL))

	_, _, err := execute(t, "--config", cfg, "optimize", "-i", "text", "--in-place")
	require.Error(t, err)
	assert.True(t, errors.Is(err, inkerrors.ErrValidation))
	assert.Equal(t, inkerrors.ExitValidation, inkerrors.ExitCode(err))

	_, _, err = execute(t, "--config", cfg, "optimize", "-i", "text", "-f", "x.md")
	require.Error(t, err)
	assert.True(t, errors.Is(err, inkerrors.ErrValidation))

	_, _, err = execute(t, "--config", cfg, "optimize", "-i", "text", "--style", "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, inkerrors.ErrConfiguration))
	assert.Contains(t, err.Error(), "missing")

	assert.Empty(t, prompts)
}

func TestProviderSelection(t *testing.T) {
	cfg := writeConfig(t, claudeConfig("http://127.0.0.1:1"))

	_, _, err := execute(t, "--config", cfg, "list-models", "--provider", "openai")
	require.Error(t, err)
	assert.True(t, errors.Is(err, inkerrors.ErrConfiguration))
	assert.Equal(t, "unsupported provider: openai", err.Error())

	_, _, err = execute(t, "--config", cfg, "list-models", "--provider", "gemini")
	require.Error(t, err)
	assert.True(t, errors.Is(err, inkerrors.ErrConfiguration))
	assert.Contains(t, err.Error(), "providers.gemini.api_key")
}

func TestListModels(t *testing.T) {
	cfg := writeConfig(t, claudeConfig("http://127.0.0.1:1"))

	stdout, _, err := execute(t, "--config", cfg, "list-models")
	require.NoError(t, err)
	assert.Equal(t, "claude-2\nclaude-3\n", stdout)
}

func TestListStyles(t *testing.T) {
	cfg := writeConfig(t, claudeConfig("http://127.0.0.1:1"))

	for _, name := range []string{"list-styles", "list-prompts"} {
		stdout, _, err := execute(t, "--config", cfg, name)
		require.NoError(t, err)
		assert.Contains(t, stdout, "Available Prompts")
		assert.Contains(t, stdout, "tidy (default)")
		assert.Contains(t, stdout, "Light cleanup")
		assert.Less(t, strings.Index(stdout, "expand"), strings.Index(stdout, "tidy"))
	}
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	stdout, _, err := execute(t, "--config", path, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, path+"\n", stdout)

	stdout, _, err = execute(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, path)
	_, err = os.Stat(path)
	require.NoError(t, err)

	_, _, err = execute(t, "--config", path, "config", "init")
	require.Error(t, err)
	assert.True(t, errors.Is(err, inkerrors.ErrValidation))

	_, _, err = execute(t, "--config", path, "config", "init", "--force")
	require.NoError(t, err)

	stdout, _, err = execute(t, "--config", path, "list-styles")
	require.NoError(t, err)
	for _, name := range []string{"code-spec", "code-gen", "code-debug"} {
		assert.Contains(t, stdout, name)
	}
}

func TestConfigShowRedactsKeys(t *testing.T) {
	cfg := writeConfig(t, claudeConfig("http://127.0.0.1:1"))

	stdout, _, err := execute(t, "--config", cfg, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "[REDACTED]")
	assert.NotContains(t, stdout, "sk-test-secret")
	assert.Contains(t, stdout, "Tidy this text")

	stdout, _, err = execute(t, "--config", cfg, "config", "show", "--show-secrets")
	require.NoError(t, err)
	assert.Contains(t, stdout, "sk-test-secret")
}
