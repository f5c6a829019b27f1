package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateBrowse modelState = iota
	stateFilter
	stateDetail
)

// browserModel lists a module's sections and shows one at a time.
type browserModel struct {
	rep      *report
	filter   textinput.Model
	visible  []int
	selected int
	state    modelState
}

func newBrowserModel(rep *report) *browserModel {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "kind or name"
	ti.Width = 30

	m := &browserModel{rep: rep, filter: ti, state: stateBrowse}
	m.applyFilter()
	return m
}

func (m *browserModel) Init() tea.Cmd {
	return nil
}

// applyFilter keeps rows whose kind or custom name contains the filter text.
func (m *browserModel) applyFilter() {
	needle := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.visible = m.visible[:0]
	for i, row := range m.rep.Rows {
		if needle == "" || strings.Contains(strings.ToLower(row.label()), needle) {
			m.visible = append(m.visible, i)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = max(len(m.visible)-1, 0)
	}
}

func (m *browserModel) current() (sectionRow, bool) {
	if len(m.visible) == 0 {
		return sectionRow{}, false
	}
	return m.rep.Rows[m.visible[m.selected]], true
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.state == stateFilter {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "enter":
			m.filter.Blur()
			m.state = stateBrowse
			return m, nil
		case "esc":
			m.filter.Reset()
			m.filter.Blur()
			m.applyFilter()
			m.state = stateBrowse
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.applyFilter()
		return m, cmd
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.state == stateBrowse && m.selected > 0 {
			m.selected--
		}

	case "down", "j":
		if m.state == stateBrowse && m.selected < len(m.visible)-1 {
			m.selected++
		}

	case "enter":
		switch m.state {
		case stateBrowse:
			if len(m.visible) > 0 {
				m.state = stateDetail
			}
		case stateDetail:
			m.state = stateBrowse
		}

	case "/":
		if m.state == stateBrowse {
			m.state = stateFilter
			return m, m.filter.Focus()
		}

	case "esc":
		m.state = stateBrowse
	}

	return m, nil
}

func (m *browserModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Module Sections"))
	fmt.Fprintf(&b, " %s (%d bytes)\n\n", m.rep.Source, m.rep.Size)

	if m.state == stateDetail {
		row, _ := m.current()
		m.writeDetail(&b, row)
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter back • q quit"))
		return b.String()
	}

	if m.state == stateFilter || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
	}

	if len(m.visible) == 0 {
		b.WriteString(errorStyle.Render("No matching sections"))
		b.WriteString("\n")
	}
	for i, idx := range m.visible {
		row := m.rep.Rows[idx]
		line := fmt.Sprintf("%3d  %-10s %8d  %s", row.Index, row.Kind, len(row.Data), row.Name)
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.state == stateFilter {
		b.WriteString(helpStyle.Render("enter apply • esc clear"))
	} else {
		b.WriteString(helpStyle.Render("↑/↓ select • enter open • / filter • q quit"))
	}
	return b.String()
}

func (m *browserModel) writeDetail(b *strings.Builder, row sectionRow) {
	fmt.Fprintf(b, "Section %d: %s", row.Index, funcStyle.Render(row.label()))
	fmt.Fprintf(b, " %s\n\n", typeStyle.Render(fmt.Sprintf("%d bytes", len(row.Data))))
	b.WriteString(indent(preview(row.Data)))

	if row.Kind != "custom" || row.Name != m.rep.Section {
		return
	}
	if m.rep.SigErr != nil {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render("signatures: " + m.rep.SigErr.Error()))
		return
	}
	if len(m.rep.Signatures) > 0 {
		b.WriteString("\n\nSignatures:\n")
		for _, sig := range m.rep.Signatures {
			b.WriteString("  ")
			b.WriteString(funcStyle.Render(sig.String()))
			b.WriteString("\n")
		}
	}
}

// runInteractive opens the browser. When the module was piped in, keys are
// read from the controlling terminal instead of stdin.
func runInteractive(rep *report, piped bool) error {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if piped {
		opts = append(opts, tea.WithInputTTY())
	}
	p := tea.NewProgram(newBrowserModel(rep), opts...)
	_, err := p.Run()
	return err
}
