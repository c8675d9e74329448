// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/quickly-rank/csvio"
	"github.com/danielhkuo/quickly-rank/deck"
	"github.com/danielhkuo/quickly-rank/ranking"
	"github.com/danielhkuo/quickly-rank/tui"
)

var errStopped = errors.New("ranking stopped before the last pair")

var judgeCmd = &cobra.Command{
	Use:   "judge [deck]",
	Short: "Rank a deck in the terminal",
	Long: `Rank a deck in the terminal and save the result as CSV.

The deck may be CSV (id,title,description,imageUrl), YAML or TOML. Without
a deck the built-in sample is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runJudge,
}

func init() {
	judgeCmd.Flags().String("ui", "auto", "terminal UI mode (auto|on|off)")
	judgeCmd.Flags().StringP("out", "o", "", "export path (default ranked_<deck>)")
	judgeCmd.Flags().Uint64("seed", 0, "shuffle seed for a repeatable order (0 is random)")
	judgeCmd.Flags().Int("top", tui.TopN, "ranks to print when finished (0 prints all)")
}

func runJudge(cmd *cobra.Command, args []string) error {
	uiFlag, _ := cmd.Flags().GetString("ui")
	outPath, _ := cmd.Flags().GetString("out")
	seed, _ := cmd.Flags().GetUint64("seed")
	top, _ := cmd.Flags().GetInt("top")

	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	source, items, warnings, err := loadDeck(cmd.Context(), args)
	for _, w := range warnings {
		warnColor.Fprintf(errOut, "warning: %s\n", w)
	}
	if err != nil {
		return err
	}

	rng := ranking.NewRand()
	if seed != 0 {
		rng = ranking.NewSeededRand(seed)
	}
	session := ranking.NewSession(ranking.WithRand(rng))
	if err := session.Start(items); err != nil {
		return err
	}
	presenter := ranking.NewPresenter(rng)

	var ranked []ranking.Ranked
	if shouldUseTUI(mode) {
		ranked, err = tui.Run(source, session, presenter, tea.WithOutput(os.Stdout))
		if errors.Is(err, tui.ErrAborted) {
			err = errStopped
		}
	} else {
		ranked, err = runPlain(cmd.InOrStdin(), out, session, presenter)
	}
	if errors.Is(err, errStopped) {
		fmt.Fprintf(errOut, "Stopped after %s; nothing saved.\n", session.Progress())
		return nil
	}
	if err != nil {
		return err
	}

	printResults(out, ranked, top)

	if outPath == "" {
		outPath = csvio.ExportFilename(source)
	}
	if err := writeExport(outPath, ranked); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nSaved ranking to %s\n", okColor.Sprint(outPath))
	return nil
}

// loadDeck reads the deck named by args, or the sample when there is none.
func loadDeck(ctx context.Context, args []string) (string, []ranking.Item, []string, error) {
	if len(args) == 0 {
		return deck.SampleName, deck.Sample(), nil, nil
	}

	res, err := deck.Load(ctx, args[0])
	if err != nil {
		return "", nil, nil, err
	}
	if err := res.InsufficientError(); err != nil {
		return "", nil, res.Warnings, err
	}
	return args[0], res.Items, res.Warnings, nil
}

func writeExport(path string, ranked []ranking.Ranked) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export: %w", err)
	}
	if err := csvio.Export(f, ranked); err != nil {
		f.Close()
		return fmt.Errorf("failed to write export: %w", err)
	}
	return f.Close()
}
