// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/quickly-rank/csvio"
	"github.com/danielhkuo/quickly-rank/deck"
)

var sampleCmd = &cobra.Command{
	Use:   "sample [file]",
	Short: "Write the built-in sample deck as CSV",
	Long:  `Write the built-in sample deck as CSV, to stdout or the given file, as a starting point for your own.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return csvio.WriteItems(cmd.OutOrStdout(), deck.Sample())
		}

		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", args[0], err)
		}
		if err := csvio.WriteItems(f, deck.Sample()); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d items to %s\n", len(deck.Sample()), args[0])
		return nil
	},
}
