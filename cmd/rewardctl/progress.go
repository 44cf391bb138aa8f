package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type progressTickMsg struct{}
type progressDoneMsg struct{}

var (
	progressLabelStyle = lipgloss.NewStyle().Bold(true)
)

// progressModel is a minimal bubbletea program showing a bar and spinner
// while a batch scores in the background. It never drives scoring itself —
// it only renders ticks sent from the worker goroutine via
// Evaluator.OnItemComplete.
type progressModel struct {
	total    int
	done     int
	bar      progress.Model
	spin     spinner.Model
	finished bool
}

func newProgressModel(total int) progressModel {
	bar := progress.New(progress.WithDefaultGradient())
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return progressModel{total: total, bar: bar, spin: sp}
}

func (m progressModel) Init() tea.Cmd {
	return m.spin.Tick
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressTickMsg:
		m.done++
		if m.done >= m.total {
			m.finished = true
			return m, tea.Quit
		}
		return m, nil
	case progressDoneMsg:
		m.finished = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.bar.Width = msg.Width - 4
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.finished {
		return ""
	}
	ratio := 0.0
	if m.total > 0 {
		ratio = float64(m.done) / float64(m.total)
	}
	return fmt.Sprintf("%s %s scoring %d/%d\n", m.spin.View(), progressLabelStyle.Render("rewardctl"), m.done, m.total) +
		m.bar.ViewAs(ratio) + "\n"
}
