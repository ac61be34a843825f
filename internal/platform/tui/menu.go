package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/php-runner/internal/core"
	"github.com/vovakirdan/php-runner/internal/registry"
	"github.com/vovakirdan/php-runner/internal/storage"
)

const menuBanner = "P H P   R U N N E R"

var (
	menuBannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).Padding(0, 3)
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuListStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).Padding(1, 3)
)

// menuKeys only feed the help footer; MapKeyToMenuAction does the mapping.
type menuKeys struct {
	Move, Play, Scores, Quit key.Binding
}

func (k menuKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Play, k.Scores, k.Quit}
}

func (k menuKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultMenuKeys = menuKeys{
	Move:   key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("up/down", "choose")),
	Play:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
	Scores: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "leaderboard")),
	Quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
}

// MenuItem is one playable game with its recorded totals.
type MenuItem struct {
	GameID    string
	Title     string
	HighScore int
	Runs      int
}

// MenuModel picks a game or opens the leaderboard. It ends its program
// as soon as a choice is made.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	help      help.Model

	selected       *MenuItem
	openScoreboard bool
	quitting       bool
}

// NewMenuModel lists every registered game. With a store, each item
// carries the game's best score and run count.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, len(games))
	for i, g := range games {
		items[i] = MenuItem{GameID: g.ID, Title: g.Title}
		if store == nil {
			continue
		}
		if st, err := store.Stats(g.ID); err == nil {
			items[i].HighScore = st.HighScore
			items[i].Runs = st.GamesCount
		}
	}

	h := help.New()
	h.Width = cfg.ScreenW
	return MenuModel{
		items:     items,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		help:      h,
	}
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionUp:
			m.cursor = max(m.cursor-1, 0)
		case MenuActionDown:
			m.cursor = min(m.cursor+1, max(len(m.items)-1, 0))
		case MenuActionSelect:
			if len(m.items) == 0 {
				return m, nil
			}
			item := m.items[m.cursor]
			m.selected = &item
			return m, tea.Quit
		case MenuActionScoreboard:
			m.openScoreboard = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	w := m.config.ScreenW

	blocks := []string{
		"",
		centerText(menuBannerStyle.Render(menuBanner), w),
		"",
		centerText(menuDimStyle.Render("Jump over the obstacles. Each one cleared is a point."), w),
		"",
		centerText(menuListStyle.Render(m.list()), w),
		"",
		centerText(menuDimStyle.Render("In game: space/up/w or click to jump, r to restart, b for the menu"), w),
		"",
		centerText(m.help.View(defaultMenuKeys), w),
	}
	return strings.Join(blocks, "\n")
}

func (m MenuModel) list() string {
	if len(m.items) == 0 {
		return menuDimStyle.Render("No games registered")
	}
	lines := make([]string, len(m.items))
	for i, item := range m.items {
		label := "  " + item.Title
		if i == m.cursor {
			label = menuCursorStyle.Render("> " + item.Title)
		}
		if item.Runs > 0 {
			label += menuDimStyle.Render(fmt.Sprintf("   best %d, %d runs", item.HighScore, item.Runs))
		}
		lines[i] = label
	}
	return strings.Join(lines, "\n")
}

// Selected returns the chosen item, or nil.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting reports whether the player quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard reports whether the leaderboard was requested.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the runtime config, updated by resizes.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers every line of a possibly styled block.
func centerText(text string, width int) string {
	if lipgloss.Width(text) >= width {
		return text
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}

// MenuResult is what the player chose in a standalone menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the menu in its own program.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	res := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		res.WantsScoreboard = true
	case m.Selected() != nil:
		res.GameID = m.Selected().GameID
	default:
		res.Quit = true
	}
	return res, nil
}
