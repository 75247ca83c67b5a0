package main

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"imgcorpus/cmd"
	"imgcorpus/internal"
)

//go:embed VERSION
var embeddedVersion string

func main() {
	if v := strings.TrimSpace(embeddedVersion); v != "" && cmd.Version == "dev" {
		cmd.Version = v
		cmd.ApplyVersion()
	}

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var genErr *internal.GenerateError
		if errors.As(err, &genErr) && genErr.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "Suggestion: %s\n", genErr.Suggestion)
		}
		os.Exit(1)
	}
}
