package update

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/bosswatch/bosswatch/internal/views"
)

const helpMarkdown = `# bosswatch

Track weekly boss spawns and get a desktop warning before each one.

- **left pane**: bosses being tracked
- **right pane**: how many minutes before a spawn to warn
- a warning fires once per spawn per threshold; windows missed while
  paused are skipped, not replayed
`

type helpKeyMap struct {
	bindings []key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.bindings }
func (k helpKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.bindings} }

func (m Model) renderHelpView() string {
	bindings := []key.Binding{
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		key.NewBinding(key.WithKeys("j", "k"), key.WithHelp("j/k", "move")),
		key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start/pause")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "command")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Markdown: helpMarkdown,
		HelpView: m.helpModel.View(helpKeyMap{bindings: bindings}),
	})
}
