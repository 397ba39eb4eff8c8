package main

import (
	"fmt"
	"os"

	"github.com/mmichie/inkspect/commands/root"
	inkerrors "github.com/mmichie/inkspect/pkg/errors"
)

func main() {
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(inkerrors.ExitCode(err))
	}
}
