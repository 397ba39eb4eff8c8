// Package config provides the resolved configuration consumed by the inkspect pipeline
package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	inkerrors "github.com/mmichie/inkspect/pkg/errors"
)

// Provider names known to the default configuration
const (
	ProviderClaude = "claude"
	ProviderGemini = "gemini"
	ProviderGenAI  = "genai"

	EnvClaudeAPIKey = "CLAUDE_API_KEY"
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvEditor       = "EDITOR"

	DefaultProvider     = ProviderClaude
	DefaultStyle        = "code-spec"
	DefaultClaudeModel  = "claude-2"
	DefaultGeminiModel  = "models/gemini-1.5-flash-latest"
	DefaultGenAIModel   = "gemini-1.5-flash"
	DefaultEditor       = "vim"
	DefaultSystemPrompt = "You are an expert providing a direct and comprehensive answer. Your response should be direct, containing only the answer itself without any introductory remarks, conversational filler, or concluding statements. Do not add a summary or any closing comments. Get straight to the point."

	redacted = "[REDACTED]"
)

// DefaultPreambles are the conversational openers stripped from the first reply line
var DefaultPreambles = []string{
	"Of course.",
	"Certainly.",
	"Here is a refined and comprehensive explanation",
	"Here's a refined and comprehensive explanation",
	"Here is a refined version",
	"Here's a refined version",
}

// StyleTemplate is a named instruction fragment prepended to the user input
type StyleTemplate struct {
	Name        string `mapstructure:"name"`
	Body        string `mapstructure:"prompt"`
	Description string `mapstructure:"description"`
}

// ProviderConfig holds the credentials and model for one backend
type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// LLMConfig selects the defaults used when a flag is not given
type LLMConfig struct {
	Provider     string `mapstructure:"provider"`
	DefaultStyle string `mapstructure:"default_prompt"`
	SystemPrompt string `mapstructure:"system_prompt"`
}

// Config is the fully resolved configuration
type Config struct {
	LLM       LLMConfig                 `mapstructure:"llm"`
	Providers map[string]ProviderConfig `mapstructure:"providers"`
	Styles    []StyleTemplate           `mapstructure:"prompts"`
	Preambles []string                  `mapstructure:"preambles"`
	Editor    string                    `mapstructure:"editor"`
}

// DefaultStyles returns the built-in style templates
func DefaultStyles() []StyleTemplate {
	return []StyleTemplate{
		{
			Name:        "code-spec",
			Body:        "You are a senior software architect. Your task is to create a detailed specification for an AI coding agent. Do not write any code. Your output must be a Markdown document that guides the agent. The specification must enforce a strict Test-Driven Development (TDD) methodology. The document must include: 1. High-Level Goal, 2. Key Features, 3. Proposed Architecture & File Structure, 4. Data Structures & Types, 5. Step-by-Step TDD Implementation Plan (for each feature, specify the failing test to write first, then the implementation), 6. Error Handling, and 7. Testing Strategy (emphasizing unit tests for every feature). Your sole output is this specification document. Do not, under any circumstances, write the implementation code for the project. Your response must not contain any code.",
			Description: "Generate a specification for an AI coding agent",
		},
		{
			Name:        "code-gen",
			Body:        "You are an expert AI programmer. Your task is to generate a complete, production-quality, single-file application based on the user's request. The code must be well-commented, robust, and follow best practices. Include a section on how to build and run the application. Your output should be a single Markdown file containing the code and instructions.",
			Description: "Generate a complete, production-quality, single-file application",
		},
		{
			Name:        "code-debug",
			Body:        "You are an expert in debugging software. Your task is to craft a clean and effective prompt for a coding AI agent to help a developer solve a bug. Based on the user's bug description, generate a prompt for the AI agent that instructs it to perform the following tasks: 1. **Diagnose Potential Causes:** Systematically list the most likely reasons for the described bug. 2. **Propose Fixes:** For each potential cause, suggest a concrete fix, code change, or command to verify the issue. 3. **Explain the Problem:** Provide a clear and concise explanation of the likely root cause of the bug. The final output should be only the generated prompt, ready to be copied and given to the coding AI agent.",
			Description: "Craft a prompt for a coding AI agent to debug a generic bug",
		},
	}
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		LLM: LLMConfig{
			Provider:     DefaultProvider,
			DefaultStyle: DefaultStyle,
			SystemPrompt: DefaultSystemPrompt,
		},
		Providers: map[string]ProviderConfig{
			ProviderClaude: {Model: DefaultClaudeModel},
			ProviderGemini: {Model: DefaultGeminiModel},
			ProviderGenAI:  {Model: DefaultGenAIModel},
		},
		Styles:    DefaultStyles(),
		Preambles: append([]string(nil), DefaultPreambles...),
	}
}

// DefaultPath returns the config file location used when --config is not given
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "error locating user config directory")
	}
	return filepath.Join(dir, "inkspect", "config.toml"), nil
}

// SetDefaults registers the built-in values and environment bindings on v
func SetDefaults(v *viper.Viper) {
	def := Default()

	v.SetDefault("llm.provider", def.LLM.Provider)
	v.SetDefault("llm.default_prompt", def.LLM.DefaultStyle)
	v.SetDefault("llm.system_prompt", def.LLM.SystemPrompt)
	for name, p := range def.Providers {
		v.SetDefault("providers."+name+".model", p.Model)
		v.SetDefault("providers."+name+".api_key", "")
		v.SetDefault("providers."+name+".base_url", "")
	}
	v.SetDefault("prompts", stylesToMaps(def.Styles))
	v.SetDefault("preambles", def.Preambles)
	v.SetDefault("editor", "")

	// Bind environment variables
	v.BindEnv("providers.claude.api_key", EnvClaudeAPIKey)
	v.BindEnv("providers.gemini.api_key", EnvGeminiAPIKey)
	v.BindEnv("providers.genai.api_key", EnvGeminiAPIKey)

	v.SetEnvPrefix("inkspect")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads the config file (if any) into v and decodes the result.
// A missing file is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) && !isNotFound(err) {
			return nil, inkerrors.Configurationf("error reading config file %s: %v", path, err)
		}
		log.WithField("path", path).Debug("No config file found, using defaults")
	} else {
		log.WithField("path", v.ConfigFileUsed()).Debug("Loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, inkerrors.Configurationf("error decoding config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func isNotFound(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf)
}

// Validate checks the invariants the pipeline relies on
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Styles))
	for i, s := range c.Styles {
		if strings.TrimSpace(s.Name) == "" {
			return inkerrors.Configurationf("style #%d has an empty name", i+1)
		}
		if seen[s.Name] {
			return inkerrors.Configurationf("duplicate style name %q in configuration", s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

// Provider returns the configuration for the named provider
func (c *Config) Provider(name string) (ProviderConfig, bool) {
	p, ok := c.Providers[name]
	return p, ok
}

// ResolveEditor picks the editor command: flag, then config, then $EDITOR, then vim
func (c *Config) ResolveEditor(flag string) string {
	if flag != "" {
		return flag
	}
	if c.Editor != "" {
		return c.Editor
	}
	if env := os.Getenv(EnvEditor); env != "" {
		return env
	}
	return DefaultEditor
}

// Sanitized returns a deep copy with every API key redacted
func (c *Config) Sanitized() (*Config, error) {
	out := &Config{}
	if err := copier.CopyWithOption(out, c, copier.Option{DeepCopy: true}); err != nil {
		return nil, errors.Wrap(err, "error copying config")
	}
	for name, p := range out.Providers {
		if p.APIKey != "" {
			p.APIKey = redacted
		}
		out.Providers[name] = p
	}
	return out, nil
}

// Write stores c as TOML at path. Existing files are kept unless force is set.
func Write(c *Config, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return inkerrors.Validationf("config file %s already exists (use --force to overwrite)", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return inkerrors.IO(filepath.Dir(path), err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	for key, value := range c.ToMap() {
		v.Set(key, value)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return inkerrors.IO(path, err)
	}
	return nil
}

// ToMap flattens c into the key layout used by the config file
func (c *Config) ToMap() map[string]interface{} {
	providers := make(map[string]interface{}, len(c.Providers))
	for name, p := range c.Providers {
		providers[name] = map[string]interface{}{
			"api_key":  p.APIKey,
			"model":    p.Model,
			"base_url": p.BaseURL,
		}
	}

	return map[string]interface{}{
		"llm": map[string]interface{}{
			"provider":       c.LLM.Provider,
			"default_prompt": c.LLM.DefaultStyle,
			"system_prompt":  c.LLM.SystemPrompt,
		},
		"providers": providers,
		"prompts":   stylesToMaps(c.Styles),
		"preambles": c.Preambles,
		"editor":    c.Editor,
	}
}

func stylesToMaps(styles []StyleTemplate) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(styles))
	for _, s := range styles {
		m := map[string]interface{}{
			"name":   s.Name,
			"prompt": s.Body,
		}
		if s.Description != "" {
			m["description"] = s.Description
		}
		out = append(out, m)
	}
	return out
}
