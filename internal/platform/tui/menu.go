package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tiles/internal/config"
	"github.com/vovakirdan/tui-tiles/internal/storage"
)

// MenuItem is a selectable difficulty preset.
type MenuItem struct {
	Preset      config.DifficultyPreset
	Description string
	Best        int // Best recorded run at this difficulty
}

var presetDescriptions = map[config.DifficultyPreset]string{
	config.DifficultyEasy:   "slow start, gentle speed-up",
	config.DifficultyNormal: "the classic pace",
	config.DifficultyHard:   "fast start, steep speed-up",
	config.DifficultyFixed:  "steady speed, never speeds up",
}

// menuStyles holds the menu's lipgloss styles, bound to one renderer.
type menuStyles struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	item     lipgloss.Style
	selected lipgloss.Style
	detail   lipgloss.Style
	help     lipgloss.Style
}

func newMenuStyles(r *lipgloss.Renderer) menuStyles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return menuStyles{
		title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		subtitle: r.NewStyle().Foreground(lipgloss.Color("245")),
		item:     r.NewStyle(),
		selected: r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
		detail:   r.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		help:     r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// MenuModel is the Bubble Tea model for the difficulty picker.
// It never quits the program itself; the owner reads Selected, WantsScoreboard
// and IsQuitting after every update.
type MenuModel struct {
	gameID         string
	items          []MenuItem
	cursor         int
	width          int
	height         int
	keys           MenuKeyMap
	help           help.Model
	styles         menuStyles
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates a new menu model. The cursor starts on the normal
// preset. A nil store shows no best scores.
func NewMenuModel(store *storage.Store, gameID string, width, height int, r *lipgloss.Renderer) MenuModel {
	items := make([]MenuItem, 0, len(config.Presets))
	cursor := 0
	for i, p := range config.Presets {
		item := MenuItem{Preset: p, Description: presetDescriptions[p]}
		if store != nil {
			if top, err := store.TopScores(gameID, string(p), 1); err == nil && len(top) > 0 {
				item.Best = top[0].Score
			}
		}
		if p == config.DifficultyNormal {
			cursor = i
		}
		items = append(items, item)
	}

	h := help.New()
	h.Width = width

	return MenuModel{
		gameID: gameID,
		items:  items,
		cursor: cursor,
		width:  width,
		height: height,
		keys:   DefaultMenuKeyMap(),
		help:   h,
		styles: newMenuStyles(r),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			if len(m.items) > 0 {
				selected := m.items[m.cursor]
				m.selected = &selected
			}
		case key.Matches(msg, m.keys.Scoreboard):
			m.openScoreboard = true
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.styles.title.Render("P I A N O   T I L E S"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.styles.subtitle.Render("Tap the dark tile of every row before it crosses the line"), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		label := fmt.Sprintf(" %-8s best %-6d ", item.Preset, item.Best)
		style := m.styles.item
		if i == m.cursor {
			style = m.styles.selected
		}
		b.WriteString(centerText(style.Render(label), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if len(m.items) > 0 {
		b.WriteString(centerText(m.styles.detail.Render(m.items[m.cursor].Description), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.styles.help.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// centerText centers text within given width, measuring styled text by its
// printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
