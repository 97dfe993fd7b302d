package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// ReplaysKeyMap defines the key bindings for the replay browser.
type ReplaysKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplaysKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ReplaysKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Select, k.Delete, k.Quit},
	}
}

// DefaultReplaysKeyMap returns default key bindings.
func DefaultReplaysKeyMap() ReplaysKeyMap {
	return ReplaysKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "verify"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplaysModel is the Bubble Tea model for browsing recorded sessions.
type ReplaysModel struct {
	replays  []storage.ReplaySummary
	remove   func(id string) error
	table    table.Model
	help     help.Model
	keys     ReplaysKeyMap
	width    int
	height   int
	selected string
	status   string
	quitting bool
}

// NewReplaysModel creates a browser over replays. remove deletes a replay
// from the journal; deleting is disabled when it is nil.
func NewReplaysModel(replays []storage.ReplaySummary, remove func(id string) error, width, height int) ReplaysModel {
	h := help.New()
	h.Width = width

	m := ReplaysModel{
		replays: replays,
		remove:  remove,
		keys:    DefaultReplaysKeyMap(),
		help:    h,
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// ReplayRow formats a replay summary as table cells.
func ReplayRow(r storage.ReplaySummary) []string {
	return []string{
		shortID(r.ID),
		r.CreatedAt.Local().Format("Jan 02 15:04"),
		fmt.Sprintf("%d", r.Seed),
		fmt.Sprintf("%d", r.Ticks),
		fmt.Sprintf("%d", r.FinalStage+1),
		r.Outcome,
	}
}

// ReplayColumns are the titles of ReplayRow cells.
var ReplayColumns = []string{"ID", "Date", "Seed", "Ticks", "Stage", "Outcome"}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// createTable creates a new table with appropriate columns.
func (m *ReplaysModel) createTable() table.Model {
	widths := []int{10, 14, 20, 8, 6, 10}
	columns := make([]table.Column, len(ReplayColumns))
	for i, title := range ReplayColumns {
		columns[i] = table.Column{Title: title, Width: widths[i]}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows updates the table with the current replays.
func (m *ReplaysModel) updateTableRows() {
	rows := make([]table.Row, len(m.replays))
	for i, r := range m.replays {
		rows[i] = ReplayRow(r)
	}
	m.table.SetRows(rows)
}

// Init initializes the browser.
func (m ReplaysModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m ReplaysModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if len(m.replays) > 0 {
				m.selected = m.replays[m.table.Cursor()].ID
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			m.deleteSelected()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// deleteSelected removes the replay under the cursor.
func (m *ReplaysModel) deleteSelected() {
	if m.remove == nil || len(m.replays) == 0 {
		return
	}
	idx := m.table.Cursor()
	id := m.replays[idx].ID
	if err := m.remove(id); err != nil {
		m.status = fmt.Sprintf("delete failed: %v", err)
		return
	}
	m.replays = append(m.replays[:idx:idx], m.replays[idx+1:]...)
	m.updateTableRows()
	if idx >= len(m.replays) && idx > 0 {
		m.table.SetCursor(idx - 1)
	}
	m.status = fmt.Sprintf("deleted %s", shortID(id))
}

// View renders the browser.
func (m ReplaysModel) View() string {
	if m.quitting || m.selected != "" {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("RECORDED SESSIONS", m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	if m.status != "" {
		b.WriteString(mutedStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ReplaysModel) renderTableContent() string {
	if len(m.replays) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No sessions recorded yet.\nPlay with --record to keep one!")
	}

	return m.table.View()
}

// Selected returns the ID of the replay picked with enter, or "".
func (m ReplaysModel) Selected() string {
	return m.selected
}

// Replays returns the replays still listed.
func (m ReplaysModel) Replays() []storage.ReplaySummary {
	return m.replays
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunReplays runs the replay browser and returns the picked replay ID,
// or "" when the user quit.
func RunReplays(replays []storage.ReplaySummary, remove func(id string) error, width, height int) (string, error) {
	model := NewReplaysModel(replays, remove, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	m, ok := finalModel.(ReplaysModel)
	if !ok {
		return "", nil
	}

	return m.Selected(), nil
}
