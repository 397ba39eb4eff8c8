// Package prompt builds the single string sent to a backend
package prompt

import (
	"strings"

	"github.com/mmichie/inkspect/pkg/config"
	inkerrors "github.com/mmichie/inkspect/pkg/errors"
)

// separator sits between the prompt segments
const separator = "\n\n"

// Selection picks the style text for one invocation
type Selection struct {
	// AdHoc is used verbatim when non-nil
	AdHoc *string

	// Name selects a configured style; empty means the configured default
	Name string
}

// Composer resolves styles and joins prompt segments
type Composer struct {
	styles       map[string]config.StyleTemplate
	defaultStyle string
	system       string
}

// NewComposer indexes the configured style templates by name
func NewComposer(cfg *config.Config) *Composer {
	styles := make(map[string]config.StyleTemplate, len(cfg.Styles))
	for _, s := range cfg.Styles {
		styles[s.Name] = s
	}
	return &Composer{
		styles:       styles,
		defaultStyle: cfg.LLM.DefaultStyle,
		system:       cfg.LLM.SystemPrompt,
	}
}

// ResolveStyle returns the style text for sel
func (c *Composer) ResolveStyle(sel Selection) (string, error) {
	if sel.AdHoc != nil {
		return *sel.AdHoc, nil
	}

	name := sel.Name
	if name == "" {
		name = c.defaultStyle
	}
	style, ok := c.styles[name]
	if !ok {
		return "", inkerrors.Configurationf("prompt style '%s' not found in configuration", name)
	}
	return style.Body, nil
}

// Compose joins the system instruction (unless suppressed), the style text and the input
func (c *Composer) Compose(style, input string, suppressSystem bool) string {
	if !suppressSystem && c.system != "" {
		return Join(c.system, style, input)
	}
	return Join(style, input)
}

// Join concatenates segments separated by a blank line
func Join(segments ...string) string {
	return strings.Join(segments, separator)
}
