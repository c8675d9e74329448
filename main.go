// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// version is overridden at build time via -ldflags.
var version = "0.1.0-dev"

var rootCmd = &cobra.Command{
	Use:          "quickly-rank",
	Short:        "Rank a list by answering one pairwise question at a time",
	Long:         `quickly-rank orders a list of items by asking which of two you prefer, for every pair.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.Version = version
	registerCommands()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

var registerOnce sync.Once

func registerCommands() {
	registerOnce.Do(func() {
		rootCmd.AddCommand(serveCmd)
		rootCmd.AddCommand(judgeCmd)
		rootCmd.AddCommand(sampleCmd)
	})
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
