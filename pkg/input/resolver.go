package input

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	inkerrors "github.com/mmichie/inkspect/pkg/errors"
)

// Input is the resolved raw text
type Input struct {
	Text string

	// Origin is the file the text was read from; empty for literal and editor input
	Origin string
}

// Empty reports whether the text is empty or whitespace only
func (in Input) Empty() bool {
	return strings.TrimSpace(in.Text) == ""
}

// Resolver reads input from the selected source
type Resolver struct {
	fs     afero.Fs
	editor Editor
}

// NewResolver creates a resolver over fs using editor for interactive input
func NewResolver(fs afero.Fs, editor Editor) *Resolver {
	return &Resolver{fs: fs, editor: editor}
}

// Resolve returns the raw text for src
func (r *Resolver) Resolve(ctx context.Context, src Source) (Input, error) {
	switch s := src.(type) {
	case Literal:
		return Input{Text: s.Text}, nil
	case File:
		return r.readFile(s.Path)
	case Interactive:
		return r.fromEditor(ctx, s.Editor)
	default:
		return Input{}, fmt.Errorf("unknown input source %T", src)
	}
}

func (r *Resolver) readFile(path string) (Input, error) {
	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return Input{}, inkerrors.IO(path, err)
	}
	return Input{Text: string(data), Origin: path}, nil
}

// fromEditor opens the editor on a scratch file that is removed on every exit path
func (r *Resolver) fromEditor(ctx context.Context, editor string) (Input, error) {
	tmp, err := afero.TempFile(r.fs, "", "inkspect-*.md")
	if err != nil {
		return Input{}, inkerrors.IO("temporary file", err)
	}
	name := tmp.Name()
	defer func() {
		if rmErr := r.fs.Remove(name); rmErr != nil {
			log.WithError(rmErr).WithField("path", name).Debug("Failed to remove temporary file")
		}
	}()
	if err := tmp.Close(); err != nil {
		return Input{}, inkerrors.IO(name, err)
	}

	log.WithFields(log.Fields{"editor": editor, "path": name}).Debug("Opening editor")
	if err := r.editor.Edit(ctx, editor, name); err != nil {
		return Input{}, inkerrors.IO(name, err)
	}

	data, err := afero.ReadFile(r.fs, name)
	if err != nil {
		return Input{}, inkerrors.IO(name, err)
	}
	return Input{Text: string(data)}, nil
}
