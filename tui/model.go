// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/danielhkuo/quickly-rank/ranking"
)

// ErrAborted is returned by Run when the user quits before the last pair.
var ErrAborted = errors.New("ranking aborted")

// TopN is how many ranks the results screen lists.
const TopN = 10

const (
	minCardWidth = 20
	barWidth     = 30
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	rankStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	cardStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	firstColor  = lipgloss.Color("4")
	secondColor = lipgloss.Color("5")
)

// Model judges one started session in the terminal.
type Model struct {
	name      string
	session   *ranking.Session
	presenter *ranking.Presenter

	slots   ranking.Slots
	hasPair bool
	result  []ranking.Ranked

	prog    progress.Model
	width   int
	notice  string
	aborted bool
}

// New returns a model for session, which must already be started. name is
// shown in the header, usually the deck file.
func New(name string, session *ranking.Session, presenter *ranking.Presenter) *Model {
	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	m := &Model{
		name:      name,
		session:   session,
		presenter: presenter,
		prog:      prog,
		width:     80,
	}
	m.refresh()
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = max(msg.Width-4, minCardWidth)
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		if !m.Done() {
			m.aborted = true
		}
		return m, tea.Quit
	case "enter":
		if m.Done() {
			return m, tea.Quit
		}
	case "left", "h", "1":
		return m, m.choose(m.slots.First)
	case "right", "l", "2":
		return m, m.choose(m.slots.Second)
	}
	return m, nil
}

// choose judges item. A rejected choice leaves the pair on screen.
func (m *Model) choose(item ranking.Item) tea.Cmd {
	if !m.hasPair {
		return nil
	}
	if err := m.session.Judge(item.ID); err != nil {
		m.notice = err.Error()
		return nil
	}
	m.notice = ""
	m.refresh()
	return m.prog.SetPercent(m.percent())
}

// refresh reads the pair on screen, or the result once complete.
func (m *Model) refresh() {
	pair, ok := m.session.Current()
	m.hasPair = ok
	if ok {
		m.slots = m.presenter.Orient(pair)
		return
	}
	m.slots = ranking.Slots{}
	if ranked, err := m.session.Result(); err == nil {
		m.result = ranked
	}
}

func (m *Model) percent() float64 {
	p := m.session.Progress()
	if p.Total == 0 {
		return 0
	}
	return float64(p.Recorded) / float64(p.Total)
}

// Done reports whether every pair has been judged.
func (m *Model) Done() bool {
	return m.result != nil
}

// Result is the final ranking, nil until Done.
func (m *Model) Result() []ranking.Ranked {
	return m.result
}

// Aborted reports whether the user quit early.
func (m *Model) Aborted() bool {
	return m.aborted
}

func (m *Model) View() string {
	if m.Done() {
		return m.resultsView()
	}
	if m.aborted {
		return ""
	}

	p := m.session.Progress()
	var b strings.Builder

	b.WriteString(titleStyle.Render("Which do you prefer?"))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%s · %s", m.name, p)))
	b.WriteString("\n\n")

	cardWidth := max((m.width-6)/2, minCardWidth)
	first := m.card("1", m.slots.First, cardWidth, firstColor)
	second := m.card("2", m.slots.Second, cardWidth, secondColor)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, first, "  ", second))
	b.WriteString("\n\n")

	b.WriteString(m.prog.View())
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(errStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("%s/%s choose left  %s/%s choose right  %s quit",
		keyStyle.Render("←"), keyStyle.Render("1"),
		keyStyle.Render("→"), keyStyle.Render("2"),
		keyStyle.Render("q"))))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) card(key string, item ranking.Item, width int, color lipgloss.Color) string {
	inner := width - 6
	var b strings.Builder
	b.WriteString(keyStyle.Render("[" + key + "] "))
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(truncate(item.Title, inner-4)))
	if item.Description != "" {
		b.WriteString("\n\n")
		b.WriteString(truncate(item.Description, inner))
	}
	return cardStyle.BorderForeground(color).Width(width - 2).Render(b.String())
}

func (m *Model) resultsView() string {
	var b strings.Builder

	p := m.session.Progress()
	b.WriteString(titleStyle.Render("Your ranking"))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%s items, %s comparisons",
		humanize.Comma(int64(len(m.result))), humanize.Comma(int64(p.Total)))))
	b.WriteString("\n\n")

	top := ranking.Top(m.result, TopN)
	maxScore := 0
	for _, r := range top {
		maxScore = max(maxScore, r.Score)
	}

	nameWidth := max(m.width-barWidth-16, minCardWidth)
	for _, r := range top {
		b.WriteString(rankStyle.Render(fmt.Sprintf("%5s", humanize.Ordinal(r.Rank))))
		b.WriteString("  ")
		b.WriteString(padRight(truncate(r.Item.Title, nameWidth), nameWidth))
		b.WriteString("  ")
		b.WriteString(barStyle.Render(bar(r.Score, maxScore, barWidth)))
		b.WriteString(fmt.Sprintf(" %d\n", r.Score))
	}
	if len(m.result) > len(top) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("\n… and %d more in the export\n", len(m.result)-len(top))))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("press enter or q to finish"))
	b.WriteString("\n")
	return b.String()
}

func bar(score, maxScore, width int) string {
	if maxScore <= 0 || score <= 0 {
		return ""
	}
	n := max(score*width/maxScore, 1)
	return strings.Repeat("█", n)
}

func padRight(value string, width int) string {
	if gap := width - runewidth.StringWidth(value); gap > 0 {
		return value + strings.Repeat(" ", gap)
	}
	return value
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
