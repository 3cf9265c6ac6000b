package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bosswatch/bosswatch/internal/poller"
	"github.com/bosswatch/bosswatch/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Engine == nil {
		return nil
	}
	return tea.Batch(
		waitForNoticeCmd(m.Engine.Notices()),
		waitForStatusCmd(m.Engine.StatusUpdates()),
	)
}

func waitForNoticeCmd(ch <-chan poller.Notice) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return NoticeMsg{Notice: n}
	}
}

func waitForStatusCmd(ch <-chan poller.Status) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Status: <-ch}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		return m.handleKey(typed)

	case NoticeMsg:
		m.appendNotice(typed.Notice)
		m.Status = StatusBar{Text: "notified: " + typed.Notice.Body}
		return m, waitForNoticeCmd(m.Engine.Notices())

	case StatusMsg:
		m.LiveStatus = typed.Status
		return m, waitForStatusCmd(m.Engine.StatusUpdates())

	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil

	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.Quitting = true
		return m, tea.Quit
	case "?":
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case "/":
		m.Palette.Active = true
		m.Palette.Input.SetValue("")
		m.Palette.Input.Focus()
		return m, nil
	case "tab":
		if m.FocusedPane == PaneBosses {
			m.FocusedPane = PaneThresholds
		} else {
			m.FocusedPane = PaneBosses
		}
		return m, nil
	case "j", "down":
		m.moveCursor(1)
		return m, nil
	case "k", "up":
		m.moveCursor(-1)
		return m, nil
	case " ":
		return m.toggleAtCursor()
	case "s":
		return m.toggleMonitoring()
	}
	return m, nil
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input.Blur()
		return m, nil
	case "enter":
		raw := m.Palette.Input.Value()
		m.Palette.Active = false
		m.Palette.Input.Blur()
		return m.executePalette(raw)
	}
	var cmd tea.Cmd
	m.Palette.Input, cmd = m.Palette.Input.Update(msg)
	return m, cmd
}

func (m *Model) moveCursor(delta int) {
	if m.FocusedPane == PaneBosses {
		m.BossCursor = clamp(m.BossCursor+delta, 0, len(m.Events)-1)
	} else {
		m.MinuteCursor = clamp(m.MinuteCursor+delta, 0, len(m.Thresholds)-1)
	}
}

func (m Model) toggleAtCursor() (tea.Model, tea.Cmd) {
	if m.FocusedPane == PaneBosses {
		if len(m.Events) == 0 {
			return m, nil
		}
		ev := m.Events[m.BossCursor]
		enabled := !m.Store.EventEnabled(ev.ID)
		m.Store.SetEvent(ev.ID, enabled)
		m.Status = StatusBar{Text: fmt.Sprintf("%s %s", toggleWord(enabled), ev.Name)}
	} else {
		if len(m.Thresholds) == 0 {
			return m, nil
		}
		minutes := m.Thresholds[m.MinuteCursor]
		enabled := !m.Store.ThresholdEnabled(minutes)
		m.Store.SetThreshold(minutes, enabled)
		m.Status = StatusBar{Text: fmt.Sprintf("%s %d-minute warning", toggleWord(enabled), minutes)}
	}
	return m, m.persistCmd()
}

func (m Model) toggleMonitoring() (tea.Model, tea.Cmd) {
	switch m.Engine.State() {
	case poller.StateActive:
		m.Engine.Pause()
		m.Status = StatusBar{Text: "notifications paused"}
	case poller.StatePaused:
		m.Engine.Resume()
		m.Status = StatusBar{Text: "notifications active"}
	default:
		m.Status = StatusBar{Text: "engine is " + stateLabel(m.Engine.State()), IsError: true}
	}
	return m, nil
}

// persistCmd saves the activation set off the update path.
func (m Model) persistCmd() tea.Cmd {
	if m.Save == nil {
		return nil
	}
	snapshot := m.Store.Snapshot()
	save := m.Save
	return func() tea.Msg {
		if err := save(snapshot); err != nil {
			return AppErrorMsg{Err: fmt.Errorf("save activation: %w", err)}
		}
		return nil
	}
}

func (m Model) View() string {
	if m.Quitting {
		return "bye\n"
	}

	boss := make([]views.ChecklistItem, 0, len(m.Events))
	for i, ev := range m.Events {
		boss = append(boss, views.ChecklistItem{
			Label:   ev.Name,
			Checked: m.Store.EventEnabled(ev.ID),
			Cursor:  i == m.BossCursor,
			Focused: m.FocusedPane == PaneBosses,
		})
	}
	minutes := make([]views.ChecklistItem, 0, len(m.Thresholds))
	for i, t := range m.Thresholds {
		minutes = append(minutes, views.ChecklistItem{
			Label:   fmt.Sprintf("%d minutes before", t),
			Checked: m.Store.ThresholdEnabled(t),
			Cursor:  i == m.MinuteCursor,
			Focused: m.FocusedPane == PaneThresholds,
		})
	}

	right := views.RenderChecklist("Warnings", minutes)
	if m.Palette.Active {
		right += "\n\ncommand: " + m.Palette.Input.View()
	}

	status := m.Status.Text
	if status == "" {
		status = formatLiveStatus(m.LiveStatus)
	}

	notification := formatLiveStatus(m.LiveStatus)
	if len(m.NoticeLog) > 0 {
		recent := make([]string, 0, len(m.NoticeLog))
		for i := len(m.NoticeLog) - 1; i >= 0; i-- {
			recent = append(recent, formatNotice(m.NoticeLog[i]))
		}
		notification += "\nrecent: " + strings.Join(recent, " | ")
	}

	out := views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("bosswatch | monitoring: %s | ledger: %d", stateLabel(m.Engine.State()), m.Engine.Ledger().Size()),
		LeftPane:     views.RenderChecklist("Bosses", boss),
		RightPane:    right,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: notification,
		Footer:       "keys: tab pane | j/k move | space toggle | s start/pause | / cmd | ? help | q quit",
	})
	if m.HelpVisible {
		out += "\n" + m.renderHelpView()
	}
	return out
}

func toggleWord(enabled bool) string {
	if enabled {
		return "tracking"
	}
	return "ignoring"
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
