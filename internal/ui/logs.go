package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/farefinder/internal/logtail"
)

// logBatchMsg carries a fresh read of the log file.
type logBatchMsg struct {
	entries []logtail.Entry
	err     error
}

// logTickMsg triggers a periodic reread while the log view is open. gen
// ties the tick to one visit so stale tickers stop.
type logTickMsg struct {
	gen int
}

func fetchLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return logBatchMsg{}
		}
		entries, err := logtail.ReadEntries(path, LogReadLimit)
		return logBatchMsg{entries: entries, err: err}
	}
}

func logTickCmd(gen int) tea.Cmd {
	return tea.Tick(LogRefreshInterval, func(time.Time) tea.Msg {
		return logTickMsg{gen: gen}
	})
}

// enterLogs switches to the log view and starts the refresh ticker.
func (m *Model) enterLogs() tea.Cmd {
	m.prevView = m.view
	m.view = ViewLogs
	m.logGen++
	m.updateLogViewport()
	return tea.Batch(fetchLogsCmd(m.logPath), logTickCmd(m.logGen))
}

// handleLogsKey processes keyboard input for the log view.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.view = m.prevView
		m.logGen++
		if m.view == ViewSearch {
			return m, m.form.setFocus(m.form.focus)
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, fetchLogsCmd(m.logPath)
	case key.Matches(msg, m.keys.Down):
		m.logViewport.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.logViewport.ScrollUp(1)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.logViewport.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.logViewport.HalfPageUp()
	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
	}
	return m, nil
}

// updateLogViewport rerenders the log lines, staying pinned to the bottom
// when the view was already there.
func (m *Model) updateLogViewport() {
	if !m.ready {
		return
	}
	follow := m.logViewport.AtBottom() || m.logViewport.TotalLineCount() == 0
	m.logViewport.SetContent(m.renderLogContent())
	if follow {
		m.logViewport.GotoBottom()
	}
}

func (m Model) renderLogContent() string {
	bgColor := m.theme.FocusBg
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	switch {
	case m.logPath == "":
		return bg.Render("File logging is disabled.", styles.MutedText)
	case m.logErr != nil:
		return bg.Render(fmt.Sprintf("Error reading log: %v", m.logErr), styles.DangerText)
	case len(m.logEntries) == 0:
		return bg.Render("No log entries yet.", styles.MutedText)
	}

	width := m.logViewport.Width
	lines := make([]string, 0, len(m.logEntries))
	for _, e := range m.logEntries {
		if e.Time.IsZero() && e.Level == "" {
			lines = append(lines, bg.Render(truncate(e.Raw, width), styles.FaintText))
			continue
		}
		ts := e.Time.Local().Format("15:04:05")
		level := padRight(e.Level, 5)
		rest := e.Message + e.FieldText()
		lines = append(lines,
			bg.Render(ts, styles.FaintText)+bg.Space()+
				bg.Render(level, styles.LevelStyle(e.Level))+bg.Space()+
				bg.Render(truncate(rest, max(width-16, 10)), styles.Text))
	}
	return strings.Join(lines, "\n")
}

// renderLogs renders the log view.
func (m Model) renderLogs() string {
	title := "Log"
	if m.logPath != "" {
		title = "Log · " + truncateMiddle(m.logPath, 48)
	}
	return m.renderTitledBox(title, m.logViewport.View(), m.width, m.contentHeight(), true)
}
