package input

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -destination=./mocks/mock_editor.go -package=mocks github.com/mmichie/inkspect/pkg/input Editor

// Editor runs an editor command against a file and blocks until it exits
type Editor interface {
	Edit(ctx context.Context, command, path string) error
}

// ExecEditor runs the editor as a foreground subprocess attached to the terminal
type ExecEditor struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecEditor returns an ExecEditor wired to the process's standard streams
func NewExecEditor() *ExecEditor {
	return &ExecEditor{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Edit splits command on whitespace, appends path and waits for the process.
// No timeout is applied. Only a failure to start the editor is an error; a
// non-zero exit status is logged and the file is read back as is.
func (e *ExecEditor) Edit(ctx context.Context, command, path string) error {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return errors.New("empty editor command")
	}

	args := append(fields[1:], path)
	cmd := exec.Command(fields[0], args...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		log.WithField("editor", command).Warnf("Editor exited with status %d", exitErr.ExitCode())
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "error running editor %q", command)
	}
	return nil
}
