// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/danielhkuo/quickly-rank/ranking"
)

// runPlain judges session with numbered prompts on in and out. It is the
// fallback when no terminal UI is available, and it reads piped answers.
func runPlain(in io.Reader, out io.Writer, session *ranking.Session, presenter *ranking.Presenter) ([]ranking.Ranked, error) {
	scanner := bufio.NewScanner(in)
	for {
		pair, ok := session.Current()
		if !ok {
			return session.Result()
		}
		slots := presenter.Orient(pair)

		fmt.Fprintf(out, "\n%s\n", headerColor.Sprint(session.Progress()))
		fmt.Fprintf(out, "  1) %s\n", describe(slots.First))
		fmt.Fprintf(out, "  2) %s\n", describe(slots.Second))

		choice, err := prompt(scanner, out)
		if err != nil {
			return nil, err
		}

		chosen := slots.First
		if choice == 2 {
			chosen = slots.Second
		}
		if err := session.Judge(chosen.ID); err != nil {
			return nil, err
		}
	}
}

// prompt asks until it reads 1 or 2. Quitting or running out of input
// returns errStopped.
func prompt(scanner *bufio.Scanner, out io.Writer) (int, error) {
	for {
		fmt.Fprint(out, "Choose 1 or 2 (q to quit): ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, fmt.Errorf("failed to read answer: %w", err)
			}
			fmt.Fprintln(out)
			return 0, errStopped
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "1", "l", "left":
			return 1, nil
		case "2", "r", "right":
			return 2, nil
		case "q", "quit":
			return 0, errStopped
		default:
			fmt.Fprintln(out, warnColor.Sprint("Please answer 1 or 2."))
		}
	}
}

func describe(item ranking.Item) string {
	if item.Description == "" {
		return item.Title
	}
	return item.Title + " - " + item.Description
}
