package commands

import (
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mmichie/inkspect/pkg/input"
	"github.com/mmichie/inkspect/pkg/output"
	"github.com/mmichie/inkspect/pkg/pipeline"
	"github.com/mmichie/inkspect/pkg/prompt"
	"github.com/mmichie/inkspect/pkg/reply"
	"github.com/mmichie/inkspect/pkg/ui"
)

var (
	inputText, inputFile, editorCmd string
	styleName, adHocStyle           string
	outputPath                      string
	inPlace, noSystemPrompt, render bool
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Rewrite text with a prompt style",
	Long: heredoc.Doc(`
		Send text to the configured LLM wrapped in a prompt style and print the result.

		Text is taken from --input, from --file, from piped stdin, or typed into
		$EDITOR when none of these are given. Empty input exits without contacting
		the provider.`),
	Example: heredoc.Doc(`
		# Refine a one-liner with the default style
		inkspect optimize -i "write a function that parses dates"

		# Rewrite a file in place with a named style
		inkspect optimize -f notes.md --style code-debug --in-place

		# Ad-hoc instruction, result rendered as markdown
		git diff | inkspect optimize --prompt "Summarize this change" --render`),
	Args: cobra.NoArgs,
	RunE: runOptimizeCommand,
}

// InitOptimizeCommand wires up the optimize command
func InitOptimizeCommand(rootCmd *cobra.Command) {
	rootCmd.AddCommand(optimizeCmd)
	optimizeCmd.Flags().StringVarP(&inputText, "input", "i", "", "Input text")
	optimizeCmd.Flags().StringVarP(&inputFile, "file", "f", "", "Read input from a file")
	optimizeCmd.Flags().StringVarP(&editorCmd, "editor", "e", "", "Editor command for interactive input (default $EDITOR or vim)")
	optimizeCmd.Flags().StringVarP(&styleName, "style", "s", "", "Named prompt style from the configuration")
	optimizeCmd.Flags().StringVar(&adHocStyle, "prompt", "", "Ad-hoc style text used instead of a named style")
	optimizeCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the result to a file")
	optimizeCmd.Flags().BoolVar(&inPlace, "in-place", false, "Overwrite the input file with the result")
	optimizeCmd.Flags().BoolVar(&noSystemPrompt, "no-system-prompt", false, "Do not send the configured system prompt")
	optimizeCmd.Flags().BoolVar(&render, "render", false, "Render the result as markdown on stdout")
}

func runOptimizeCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var text *string
	switch {
	case cmd.Flags().Changed("input"):
		text = &inputText
	case inputFile == "":
		if text, err = readPipedInput(); err != nil {
			return err
		}
	}

	src, err := input.Select(input.Options{
		Text:   text,
		File:   inputFile,
		Editor: cfg.ResolveEditor(editorCmd),
	})
	if err != nil {
		return err
	}

	b, err := selectBackend(cfg)
	if err != nil {
		return err
	}

	fs := afero.NewOsFs()
	router := output.NewRouter(fs, cmd.OutOrStdout())
	if render {
		md, err := ui.NewMarkdownRenderer(ui.Width(os.Stdout))
		if err != nil {
			return err
		}
		router.Render = md.Render
	}

	var sel prompt.Selection
	if cmd.Flags().Changed("prompt") {
		sel.AdHoc = &adHocStyle
	} else {
		sel.Name = styleName
	}

	p := pipeline.New(
		b,
		input.NewResolver(fs, input.NewExecEditor()),
		prompt.NewComposer(cfg),
		reply.NewCleaner(cfg.Preambles),
		router,
		pipeline.WithProgress(ui.NewSpinner(os.Stderr)),
	)

	res, err := p.Run(cmd.Context(), pipeline.Request{
		Source:         src,
		Output:         output.Options{Path: outputPath, InPlace: inPlace},
		Style:          sel,
		SuppressSystem: noSystemPrompt,
	})
	if err != nil {
		return err
	}

	switch res.Destination.(type) {
	case nil:
		if res.Skipped {
			ui.Notice(cmd.ErrOrStderr(), "Input is empty. Exiting.")
		}
	case output.InPlace:
		ui.Notice(cmd.ErrOrStderr(), "Updated %s", res.Path)
	}
	return nil
}
