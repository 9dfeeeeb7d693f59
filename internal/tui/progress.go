package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hay-kot/fmtdir/internal/styles"
)

const maxBarWidth = 60

type (
	// progressMsg advances the bar by increment, a fraction of the whole batch.
	progressMsg struct {
		increment float64
		message   string
	}
	statusMsg   string
	finishedMsg struct{}
)

var cancelKey = key.NewBinding(
	key.WithKeys("ctrl+c", "esc"),
	key.WithHelp("esc", "cancel"),
)

// progressModel renders a cancellable progress notification for a batch.
type progressModel struct {
	title     string
	total     int
	percent   float64
	message   string
	status    string
	bar       progress.Model
	cancel    context.CancelFunc
	cancelled bool
	finished  bool
}

func newProgressModel(title string, total int, cancel context.CancelFunc) progressModel {
	return progressModel{
		title:   title,
		total:   total,
		message: fmt.Sprintf("0/%d", total),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(maxBarWidth)),
		cancel:  cancel,
	}
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, cancelKey) && !m.cancelled {
			m.cancelled = true
			m.cancel()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.bar.Width = min(msg.Width-4, maxBarWidth)
		return m, nil

	case progressMsg:
		m.percent = min(m.percent+msg.increment, 1)
		m.message = msg.message
		return m, m.bar.SetPercent(m.percent)

	case statusMsg:
		m.status = string(msg)
		return m, nil

	case finishedMsg:
		m.finished = true
		return m, tea.Quit

	case progress.FrameMsg:
		updated, cmd := m.bar.Update(msg)
		if bar, ok := updated.(progress.Model); ok {
			m.bar = bar
		}
		return m, cmd
	}

	return m, nil
}

func (m progressModel) View() string {
	if m.finished {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(m.title))
	if m.status != "" {
		b.WriteString("  " + styles.HelpStyle.Render(m.status))
	}
	b.WriteString("\n\n")
	b.WriteString(m.bar.View())
	b.WriteString("\n")
	b.WriteString(styles.FileStyle.Render(m.message))
	b.WriteString("\n\n")
	if m.cancelled {
		b.WriteString(styles.WarnStyle.Render("cancelling, waiting for in-flight files..."))
	} else {
		b.WriteString(styles.HelpStyle.Render(cancelKey.Help().Key + " " + cancelKey.Help().Desc))
	}
	b.WriteString("\n")
	return b.String()
}
