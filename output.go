// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/danielhkuo/quickly-rank/ranking"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	rankColor   = color.New(color.FgYellow, color.Bold)
	warnColor   = color.New(color.FgYellow)
	okColor     = color.New(color.FgGreen, color.Bold)
)

// printResults writes the top n ranks, or all of them when n <= 0.
func printResults(w io.Writer, ranked []ranking.Ranked, n int) {
	shown := ranked
	if n > 0 {
		shown = ranking.Top(ranked, n)
	}

	fmt.Fprintf(w, "\n%s\n", headerColor.Sprint("Your ranking"))
	for _, r := range shown {
		wins := "wins"
		if r.Score == 1 {
			wins = "win"
		}
		fmt.Fprintf(w, "%s  %s (%d %s)\n", rankColor.Sprintf("%5s", humanize.Ordinal(r.Rank)), r.Item.Title, r.Score, wins)
	}
	if rest := len(ranked) - len(shown); rest > 0 {
		fmt.Fprintf(w, "  ... and %s more\n", humanize.Comma(int64(rest)))
	}
}
