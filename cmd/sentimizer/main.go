// Package main provides the sentimizer command-line interface.
package main

import (
	"fmt"
	"os"

	"sentimizer/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
