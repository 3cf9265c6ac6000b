package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header       string
	LeftPane     string
	RightPane    string
	StatusLine   string
	StatusError  bool
	Notification string
	Footer       string
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	titleStyle    = lipgloss.NewStyle().Bold(true)
	checkedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	inactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func RenderApp(data AppData) string {
	left := panelStyle.Width(44).Render(data.LeftPane)
	right := panelStyle.Width(44).Render(data.RightPane)
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	status := statusStyle.Render(data.StatusLine)
	if data.StatusError {
		status = errorStyle.Render(data.StatusLine)
	}

	lines := []string{
		headerStyle.Render(data.Header),
		row,
		status,
	}
	if data.Notification != "" {
		lines = append(lines, panelStyle.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

type ChecklistItem struct {
	Label   string
	Checked bool
	Cursor  bool
	Focused bool
}

// RenderChecklist draws one checkbox pane; the cursor marker only shows on
// the focused pane.
func RenderChecklist(title string, items []ChecklistItem) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	for _, item := range items {
		marker := "  "
		if item.Cursor && item.Focused {
			marker = cursorStyle.Render("> ")
		}
		box := "[ ]"
		label := item.Label
		if item.Checked {
			box = checkedStyle.Render("[x]")
		} else {
			label = inactiveStyle.Render(label)
		}
		b.WriteString(marker + box + " " + label + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

type HelpPanelData struct {
	Markdown string
	HelpView string
}

func RenderHelpPanel(data HelpPanelData) string {
	sections := []string{RenderMarkdown(data.Markdown)}
	if data.HelpView != "" {
		sections = append(sections, data.HelpView)
	}
	return panelStyle.Render(strings.Join(sections, "\n"))
}
