package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bosswatch/bosswatch/internal/commands"
	"github.com/bosswatch/bosswatch/internal/poller"
)

func (m Model) executePalette(raw string) (tea.Model, tea.Cmd) {
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	switch cmd.Type {
	case commands.TypeStart:
		if m.Engine.State() == poller.StatePaused {
			m.Engine.Resume()
		}
		m.Status = StatusBar{Text: "notifications active"}
		return m, nil
	case commands.TypeStop:
		m.Engine.Pause()
		m.Status = StatusBar{Text: "notifications paused"}
		return m, nil
	case commands.TypeReset:
		m.Engine.Ledger().Clear()
		m.Status = StatusBar{Text: "notification history cleared"}
		return m, nil
	case commands.TypeEnable, commands.TypeDisable:
		return m.executeToggle(cmd)
	}
	return m, nil
}

func (m Model) executeToggle(cmd commands.Command) (tea.Model, tea.Cmd) {
	enabled := cmd.Type == commands.TypeEnable
	if cmd.Toggle.Minutes > 0 {
		if !containsInt(m.Thresholds, cmd.Toggle.Minutes) {
			m.Status = StatusBar{
				Text:    fmt.Sprintf("no %d-minute option (have %s)", cmd.Toggle.Minutes, joinInts(m.Thresholds)),
				IsError: true,
			}
			return m, nil
		}
		m.Store.SetThreshold(cmd.Toggle.Minutes, enabled)
		m.Status = StatusBar{Text: fmt.Sprintf("%s %d-minute warning", toggleWord(enabled), cmd.Toggle.Minutes)}
		return m, m.persistCmd()
	}

	ev, ok := m.eventByID(cmd.Toggle.EventID)
	if !ok {
		m.Status = StatusBar{Text: fmt.Sprintf("unknown boss %q", cmd.Toggle.EventID), IsError: true}
		return m, nil
	}
	m.Store.SetEvent(ev.ID, enabled)
	m.Status = StatusBar{Text: fmt.Sprintf("%s %s", toggleWord(enabled), ev.Name)}
	return m, m.persistCmd()
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func joinInts(values []int) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, fmt.Sprint(v))
	}
	return strings.Join(parts, ", ")
}
