package update

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/bosswatch/bosswatch/internal/activation"
	"github.com/bosswatch/bosswatch/internal/model"
	"github.com/bosswatch/bosswatch/internal/poller"
)

type Pane string

const (
	PaneBosses     Pane = "bosses"
	PaneThresholds Pane = "thresholds"
)

type StatusBar struct {
	Text    string
	IsError bool
}

// Saver persists the activation set; called after every toggle.
type Saver func(activation.Set) error

type PaletteState struct {
	Active bool
	Input  textinput.Model
}

type Model struct {
	Engine     *poller.Engine
	Store      *activation.Store
	Events     []model.Event
	Thresholds []int
	Save       Saver

	FocusedPane  Pane
	BossCursor   int
	MinuteCursor int
	NoticeLog    []poller.Notice
	LiveStatus   poller.Status
	Status       StatusBar
	Palette      PaletteState
	HelpVisible  bool
	Quitting     bool
	LastError    error

	helpModel help.Model
}

type NoticeMsg struct {
	Notice poller.Notice
}

type StatusMsg struct {
	Status poller.Status
}

type AppErrorMsg struct {
	Err error
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

func NewModel(engine *poller.Engine, store *activation.Store, events []model.Event, thresholds []int, save Saver) Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "start | stop | reset | enable 15 | disable kundun"
	input.CharLimit = 64

	return Model{
		Engine:      engine,
		Store:       store,
		Events:      events,
		Thresholds:  thresholds,
		Save:        save,
		FocusedPane: PaneBosses,
		Palette:     PaletteState{Input: input},
		helpModel:   help.New(),
	}
}

// DesktopNotifier mirrors poller.Notifier for the desktop sink.
type DesktopNotifier interface {
	Emit(title, body string) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Emit(string, string) error { return nil }

// ExecDesktopNotifier shells out to the platform notifier. Delivery is best
// effort; the poller logs and drops failures.
type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Emit(title, body string) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", title, body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(body), escapeAppleScript(title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

func (m Model) eventByID(id string) (model.Event, bool) {
	for _, ev := range m.Events {
		if ev.ID == id {
			return ev, true
		}
	}
	return model.Event{}, false
}

func (m *Model) appendNotice(n poller.Notice) {
	m.NoticeLog = append(m.NoticeLog, n)
	if len(m.NoticeLog) > 10 {
		m.NoticeLog = m.NoticeLog[len(m.NoticeLog)-10:]
	}
}

func formatNotice(n poller.Notice) string {
	return fmt.Sprintf("%s %s (T-%dm)", n.Occurrence.Format("Mon 15:04"), n.EventName, n.Threshold)
}

func stateLabel(s poller.State) string {
	switch s {
	case poller.StateActive:
		return "active"
	case poller.StatePaused:
		return "paused"
	case poller.StateStopped:
		return "stopped"
	default:
		return "idle"
	}
}

func formatLiveStatus(s poller.Status) string {
	if s.Message == "" {
		return "waiting for first poll..."
	}
	return s.Message
}
