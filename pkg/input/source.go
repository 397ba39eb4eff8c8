// Package input decides where the raw user text comes from and reads it
package input

import (
	inkerrors "github.com/mmichie/inkspect/pkg/errors"
)

// Source is one of Literal, File or Interactive
type Source interface {
	isSource()
}

// Literal is text given directly on the command line or through a pipe
type Literal struct {
	Text string
}

// File is a path whose full contents become the input
type File struct {
	Path string
}

// Interactive opens Editor on a scratch file and reads it back
type Interactive struct {
	Editor string
}

func (Literal) isSource()     {}
func (File) isSource()        {}
func (Interactive) isSource() {}

// Options are the raw selections made by the caller
type Options struct {
	// Text is the literal input, nil when not supplied
	Text *string

	// File is the input file path, empty when not supplied
	File string

	// Editor is the resolved editor command used for interactive input
	Editor string
}

// Select validates the options and returns the single active source
func Select(opts Options) (Source, error) {
	if opts.Text != nil && opts.File != "" {
		return nil, inkerrors.Validationf("--input and --file are mutually exclusive")
	}

	switch {
	case opts.Text != nil:
		return Literal{Text: *opts.Text}, nil
	case opts.File != "":
		return File{Path: opts.File}, nil
	default:
		return Interactive{Editor: opts.Editor}, nil
	}
}

// OriginPath returns the file a source reads from, if any
func OriginPath(src Source) (string, bool) {
	if f, ok := src.(File); ok {
		return f.Path, true
	}
	return "", false
}
