// Package main provides the CLI entry point for trimux.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	errs "github.com/trimux/trimux/internal/errors"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) && !errs.IsCancelled(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
