package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"nssk/internal/services"
)

func main() {
	os.Exit(execute(newRootCommand(), os.Stderr))
}

// execute runs cmd and returns the process exit code. Panics are reported
// like any other unexpected failure.
func execute(cmd *cobra.Command, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(stderr, formatError(fmt.Errorf("unexpected failure: %v", r)))
			code = 1
		}
	}()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(stderr, formatError(err))
		}
		return 1
	}
	return 0
}

func formatError(err error) string {
	switch category := services.Category(err); category {
	case "", "unexpected":
		return fmt.Sprintf("error: %v", err)
	default:
		return fmt.Sprintf("error (%s): %v", category, err)
	}
}
