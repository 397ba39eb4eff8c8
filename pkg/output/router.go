// Package output routes the cleaned reply to its destination
package output

import (
	"fmt"
	"io"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	inkerrors "github.com/mmichie/inkspect/pkg/errors"
	"github.com/mmichie/inkspect/pkg/input"
)

// Destination is one of Path, InPlace or Stdout
type Destination interface {
	isDestination()
}

// Path writes to an explicit file
type Path struct {
	Path string
}

// InPlace overwrites the file the input was read from
type InPlace struct {
	Path string
}

// Stdout prints the reply followed by a newline
type Stdout struct{}

func (Path) isDestination()    {}
func (InPlace) isDestination() {}
func (Stdout) isDestination()  {}

// Options are the raw output selections made by the caller
type Options struct {
	// Path is the explicit output file, empty when not supplied
	Path string

	// InPlace requests overwriting the input file
	InPlace bool
}

// Select picks the destination. An explicit path wins over in-place.
func Select(opts Options, src input.Source) (Destination, error) {
	if opts.Path != "" {
		return Path{Path: opts.Path}, nil
	}
	if opts.InPlace {
		origin, ok := input.OriginPath(src)
		if !ok {
			return nil, inkerrors.Validationf("--in-place requires --file")
		}
		return InPlace{Path: origin}, nil
	}
	return Stdout{}, nil
}

// Router writes replies through a filesystem and a stdout writer
type Router struct {
	fs     afero.Fs
	stdout io.Writer

	// Render transforms text bound for stdout; files always get the raw text
	Render func(string) string
}

// NewRouter creates a router
func NewRouter(fs afero.Fs, stdout io.Writer) *Router {
	return &Router{fs: fs, stdout: stdout}
}

// Write delivers text to dest and returns the absolute path written, if any
func (r *Router) Write(dest Destination, text string) (string, error) {
	switch d := dest.(type) {
	case Path:
		return r.writeFile(d.Path, text)
	case InPlace:
		return r.writeFile(d.Path, text)
	case Stdout:
		if r.Render != nil {
			text = r.Render(text)
		}
		if _, err := fmt.Fprintln(r.stdout, text); err != nil {
			return "", inkerrors.IO("stdout", err)
		}
		return "", nil
	default:
		return "", fmt.Errorf("unknown destination %T", dest)
	}
}

func (r *Router) writeFile(path, text string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", inkerrors.IO(path, err)
	}
	if err := afero.WriteFile(r.fs, abs, []byte(text), 0o644); err != nil {
		return "", inkerrors.IO(abs, err)
	}
	log.WithField("path", abs).Debug("Wrote reply")
	return abs, nil
}
