// Package main is the entry point for the ulink-setup CLI.
package main

import (
	"fmt"
	"os"

	"github.com/FlywheelStudio/ulink-ai-setup/cmd/ulink-setup/commands"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/errors"
)

func main() {
	err := commands.Execute()
	code := errors.CodeOf(err)
	if code == errors.ExitSuccess {
		return
	}
	if code != errors.ExitInterrupted {
		commands.PrintError(os.Stderr, err)
	} else {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
