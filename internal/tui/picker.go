// Package tui provides terminal user interface components for homeplay
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/homeplay/homeplay/internal/config"
)

// Kind says what a picker entry represents
type Kind int

const (
	// KindInstalled is a sandbox already on disk
	KindInstalled Kind = iota

	// KindSuggested is a named configuration not yet provisioned
	KindSuggested
)

// Choice holds the result of the picker
type Choice struct {
	// Cancelled is true when the user quit without choosing
	Cancelled bool

	Kind Kind

	// Name is the sandbox or configuration name
	Name string
}

// pickerItem implements list.Item for sandbox and config display
type pickerItem struct {
	kind Kind
	name string
	repo string
}

func (i pickerItem) Title() string {
	return i.name
}

func (i pickerItem) Description() string {
	switch i.kind {
	case KindInstalled:
		if i.repo != "" {
			return fmt.Sprintf("installed | %s", truncatePath(i.repo, 50))
		}
		return "installed"
	default:
		return fmt.Sprintf("available | %s", truncatePath(i.repo, 50))
	}
}

func (i pickerItem) FilterValue() string {
	return i.name
}

func truncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	return "..." + path[len(path)-maxLen+3:]
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

// Model is the bubbletea model for the sandbox picker
type Model struct {
	list     list.Model
	result   Choice
	quitting bool
}

// NewPicker creates a picker over installed sandboxes and suggested
// configurations. Suggested entries shadowed by an installed sandbox of
// the same name are dropped.
func NewPicker(installed []*config.Sandbox, suggested []config.NamedConfig) Model {
	taken := make(map[string]bool, len(installed))

	var items []list.Item
	for _, sb := range installed {
		taken[sb.Name] = true
		item := pickerItem{kind: KindInstalled, name: sb.Name}
		if sb.Metadata != nil {
			item.repo = sb.Metadata.RepoURL
		}
		items = append(items, item)
	}
	for _, nc := range suggested {
		if nc.Name == "" || taken[nc.Name] {
			continue
		}
		items = append(items, pickerItem{kind: KindSuggested, name: nc.Name, repo: nc.Repo})
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 80, 20)
	l.Title = "homeplay - Select Configuration"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return Model{list: l}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		// Don't handle keys if filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(pickerItem); ok {
				m.result = Choice{Kind: item.kind, Name: item.name}
				m.quitting = true
				return m, tea.Quit
			}

		case "q", "esc":
			m.result = Choice{Cancelled: true}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("[enter] Check out  [/] Filter  [q] Quit")

	return m.list.View() + "\n" + help
}

// Result returns the picker result
func (m Model) Result() Choice {
	return m.result
}

// RunPicker runs the interactive configuration picker
func RunPicker(installed []*config.Sandbox, suggested []config.NamedConfig) (Choice, error) {
	if len(installed) == 0 && len(suggested) == 0 {
		return Choice{Cancelled: true}, nil
	}

	m := NewPicker(installed, suggested)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return Choice{}, err
	}

	return finalModel.(Model).Result(), nil
}
