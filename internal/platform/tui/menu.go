package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snek/internal/games/snek/levels"
	"github.com/vovakirdan/tui-snek/internal/games/snek/levels/formats"
)

// Level menu layout constants
const (
	minWidthForPreview = 100 // Minimum width to show the layout preview
	previewMaxRows     = 24  // Rows of the preview before it is cut off
)

// MenuKeyMap defines the key bindings for the level menu.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Select, k.Quit},
	}
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
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

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	levels      []levels.Level
	table       table.Model
	help        help.Model
	keys        MenuKeyMap
	width       int
	height      int
	quitting    bool
	selected    *levels.Level // Set when the user picks a level
	showPreview bool
}

// NewMenuModel creates a new level menu.
func NewMenuModel(lv []levels.Level, width, height int) MenuModel {
	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := MenuModel{
		levels:      lv,
		keys:        DefaultMenuKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showPreview: width >= minWidthForPreview,
	}
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *MenuModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 14},
		{Title: "Name", Width: 20},
		{Title: "Size", Width: 7},
		{Title: "Source", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("22")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows fills the table with the level catalog.
func (m *MenuModel) updateTableRows() {
	rows := make([]table.Row, len(m.levels))
	for i, lvl := range m.levels {
		source := "file"
		if lvl.Builtin() {
			source = "built-in"
		}
		rows[i] = table.Row{
			lvl.ID,
			lvl.Name,
			fmt.Sprintf("%dx%d", lvl.Data.Width, lvl.Data.Height),
			source,
		}
	}
	m.table.SetRows(rows)
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if lvl, ok := m.current(); ok {
				m.selected = &lvl
				return m, tea.Quit // Exit menu to start the game
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		cursor := m.table.Cursor()
		m.width = msg.Width
		m.height = msg.Height
		m.showPreview = m.width >= minWidthForPreview
		m.table = m.createTable()
		m.updateTableRows()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass navigation to the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// current returns the level under the cursor.
func (m MenuModel) current() (levels.Level, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.levels) {
		return levels.Level{}, false
	}
	return m.levels[i], true
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting || m.selected != nil {
		return ""
	}

	var b strings.Builder

	// Title
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("10"))

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  S N E K  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a level", m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	content := m.renderTableContent()
	if m.showPreview {
		preview := m.renderPreview()
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tableStyle.Render(content), "  ", preview))
	} else {
		b.WriteString(centerText(tableStyle.Render(content), m.width))
	}

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m MenuModel) renderTableContent() string {
	if len(m.levels) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No levels found.")
	}
	return m.table.View()
}

// renderPreview draws the selected level's layout in level-file glyphs.
func (m MenuModel) renderPreview() string {
	lvl, ok := m.current()
	if !ok {
		return ""
	}

	rows := formats.FormatLayout(lvl.Data)
	if len(rows) > previewMaxRows {
		rows = append(rows[:previewMaxRows:previewMaxRows], "…")
	}

	var body strings.Builder
	body.WriteString(lvl.Name)
	if desc := lvl.Metadata["description"]; desc != "" {
		body.WriteString("\n")
		body.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(desc))
	}
	body.WriteString("\n\n")
	body.WriteString(strings.Join(rows, "\n"))

	previewStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	return previewStyle.Render(body.String())
}

// Selected returns the selected level, or nil if none selected.
func (m MenuModel) Selected() *levels.Level {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width.
// The width of styled text is measured without its escape sequences.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	pad := strings.Repeat(" ", padding)
	return pad + strings.ReplaceAll(text, "\n", "\n"+pad)
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	LevelID string
	Width   int
	Height  int
	Quit    bool
}

// RunMenu runs the level picker and returns the selection result.
func RunMenu(lv []levels.Level, width, height int) (MenuResult, error) {
	model := NewMenuModel(lv, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Width: width, Height: height}, fmt.Errorf("tui: %w", err)
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Width: width, Height: height, Quit: true}, nil
	}

	result := MenuResult{Width: m.width, Height: m.height}
	if m.IsQuitting() || m.Selected() == nil {
		result.Quit = true
		return result, nil
	}
	result.LevelID = m.Selected().ID
	return result, nil
}
