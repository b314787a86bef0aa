// Package view renders unified diffs in the terminal, either as colorized
// text or inside a scrollable full-screen viewer.
package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	addStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	removeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Padding(0, 1)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Padding(0, 1)
)

// Colorize styles each diff line by its role: headers cyan, additions green,
// removals red. Context lines pass through untouched.
func Colorize(diff string) string {
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "@@"), strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
			b.WriteString(headerStyle.Render(line))
		case strings.HasPrefix(line, "+"):
			b.WriteString(addStyle.Render(line))
		case strings.HasPrefix(line, "-"):
			b.WriteString(removeStyle.Render(line))
		default:
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

type model struct {
	title    string
	content  string
	viewport viewport.Model
	ready    bool
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		headerHeight := lipgloss.Height(m.headerView())
		footerHeight := lipgloss.Height(m.footerView())
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if !m.ready {
		return "loading..."
	}
	return m.headerView() + "\n" + m.viewport.View() + "\n" + m.footerView()
}

func (m model) headerView() string {
	return titleStyle.Render(m.title)
}

func (m model) footerView() string {
	return helpStyle.Render(fmt.Sprintf("%3.f%%  ↑/↓ scroll, q to quit", m.viewport.ScrollPercent()*100))
}

// Show opens diff in a scrollable full-screen viewer titled with path.
func Show(path, diff string) error {
	m := model{
		title:   path,
		content: Colorize(diff),
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("diff viewer failed: %w", err)
	}
	return nil
}
