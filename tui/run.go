// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/danielhkuo/quickly-rank/ranking"
)

// Run judges session interactively and returns the final ranking, or
// ErrAborted when the user quits first.
func Run(name string, session *ranking.Session, presenter *ranking.Presenter, opts ...tea.ProgramOption) ([]ranking.Ranked, error) {
	model := New(name, session, presenter)
	program := tea.NewProgram(model, opts...)

	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("terminal ui: %w", err)
	}

	m, ok := final.(*Model)
	if !ok || !m.Done() {
		return nil, ErrAborted
	}
	return m.Result(), nil
}
