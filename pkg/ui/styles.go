package ui

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/mmichie/inkspect/pkg/config"
)

// PrintStyles writes the style templates sorted by name, marking the default
func PrintStyles(w io.Writer, styles []config.StyleTemplate, defaultStyle string) {
	sorted := append([]config.StyleTemplate(nil), styles...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	heading := color.New(color.Bold, color.Underline).SprintFunc()
	name := color.New(color.Bold, color.FgCyan).SprintFunc()

	fmt.Fprintln(w, heading("Available Prompts"))

	table := uitable.New()
	table.MaxColWidth = 72
	table.Wrap = true
	for _, s := range sorted {
		label := s.Name
		if s.Name == defaultStyle {
			label += " (default)"
		}
		table.AddRow(name(label), s.Description)
	}
	fmt.Fprintln(w, table)
}

// PrintLines writes each item on its own line
func PrintLines(w io.Writer, items []string) {
	for _, item := range items {
		fmt.Fprintln(w, item)
	}
}

// Notice writes a highlighted status line
func Notice(w io.Writer, format string, args ...interface{}) {
	color.New(color.FgMagenta).Fprintf(w, format+"\n", args...)
}
