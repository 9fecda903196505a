package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/swapgrid/internal/games/swap/levels"
)

// Picker layout constants
const (
	minWidthForPreview = 80 // Minimum width to show the layout preview
	previewWidth       = 24
)

// PickerKeyMap defines the key bindings for the board picker.
type PickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PickerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k PickerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Select, k.Quit}}
}

// DefaultPickerKeyMap returns default key bindings.
func DefaultPickerKeyMap() PickerKeyMap {
	return PickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// PickerModel is the Bubble Tea model for choosing a board.
type PickerModel struct {
	entries     []levels.Entry
	table       table.Model
	help        help.Model
	keys        PickerKeyMap
	width       int
	height      int
	quitting    bool
	selected    *levels.Entry
	showPreview bool
}

// NewPickerModel creates a picker over the given catalog entries.
func NewPickerModel(entries []levels.Entry, width, height int) PickerModel {
	m := PickerModel{
		entries:     entries,
		keys:        DefaultPickerKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showPreview: width >= minWidthForPreview,
	}
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

func (m *PickerModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 12},
		{Title: "Name", Width: 16},
		{Title: "Size", Width: 7},
		{Title: "Tiles", Width: 6},
		{Title: "From", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
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

func (m *PickerModel) updateTableRows() {
	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		rows[i] = table.Row{
			e.Level.ID,
			e.Level.Name,
			fmt.Sprintf("%dx%d", e.Level.Width, e.Level.Height),
			fmt.Sprintf("%d", e.Level.TileCount()),
			e.Source,
		}
	}
	m.table.SetRows(rows)
}

// Init initializes the picker.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if i := m.table.Cursor(); i >= 0 && i < len(m.entries) {
				selected := m.entries[i]
				m.selected = &selected
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showPreview = m.width >= minWidthForPreview
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.updateTableRows()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the picker.
func (m PickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("S W A P G R I D", m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.entries) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(boxStyle.Render(emptyStyle.Render("No boards found.\nImport one with `swapgrid boards import`.")))
	} else if m.showPreview {
		preview := boxStyle.Width(previewWidth).Render(m.preview())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxStyle.Render(m.table.View()), "  ", preview))
	} else {
		b.WriteString(boxStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// preview renders the layout rows of the highlighted board.
func (m PickerModel) preview() string {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.entries) {
		return ""
	}
	lvl := m.entries[i].Level

	var b strings.Builder
	b.WriteString(lvl.Name)
	b.WriteString("\n\n")
	if len(lvl.Layout) == 0 {
		fmt.Fprintf(&b, "%dx%d open board", lvl.Width, lvl.Height)
		return b.String()
	}
	for _, row := range lvl.Layout {
		b.WriteString(row)
		b.WriteString("\n")
	}
	if n := len(lvl.Structures); n > 0 {
		fmt.Fprintf(&b, "\n%d structure kinds", n)
	}
	return b.String()
}

// Selected returns the chosen entry, or nil.
func (m PickerModel) Selected() *levels.Entry {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m PickerModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}
