package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/php-runner/internal/registry"
	"github.com/vovakirdan/php-runner/internal/storage"
)

const (
	boardLimit      = 50 // Runs loaded per view
	statsPanelWidth = 24
	widePanelMin    = 90 // Terminal width needed for the side panel
	dateFormat      = "Jan 02 15:04"
)

// boardView selects which runs the leaderboard lists.
type boardView int

const (
	viewTop boardView = iota
	viewRecent
)

func (v boardView) String() string {
	if v == viewRecent {
		return "Recent runs"
	}
	return "Top runs"
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	boardActiveTab  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).Padding(0, 1)
	boardFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(9)
	boardValueStyle = lipgloss.NewStyle().Bold(true)
)

// boardKeys are the leaderboard key bindings.
type boardKeys struct {
	Up, Down   key.Binding
	Prev, Next key.Binding
	View       key.Binding
	Help       key.Binding
	Back, Quit key.Binding
}

func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.View, k.Back, k.Help}
}

func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Prev, k.Next},
		{k.View, k.Help, k.Back, k.Quit},
	}
}

func newBoardKeys() boardKeys {
	return boardKeys{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		Prev: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("left/h", "prev game")),
		Next: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("right/l", "next game")),
		View: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "top/recent")),
		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel lists recorded runs per game, either best first or
// newest first, next to the game's aggregate stats. Runs of the viewing
// player are marked.
type ScoreboardModel struct {
	store  *storage.Store
	player string
	games  []registry.GameInfo
	game   int
	view   boardView

	entries []storage.ScoreEntry
	stats   *storage.GameStats
	err     error

	table table.Model
	help  help.Model
	keys  boardKeys

	width, height int
	back, quit    bool
}

// NewScoreboardModel creates a leaderboard showing the first registered
// game. The store may be nil.
func NewScoreboardModel(store *storage.Store, player string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		player: player,
		games:  registry.List(),
		help:   help.New(),
		keys:   newBoardKeys(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.newTable()
	m.reload()
	return m
}

// wide reports whether the stats panel fits beside the table.
func (m ScoreboardModel) wide() bool {
	return m.width >= widePanelMin
}

func (m ScoreboardModel) newTable() table.Model {
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Player", Width: 10},
		{Title: "Score", Width: 7},
		{Title: "Time", Width: 8},
		{Title: "When", Width: len(dateFormat)},
	}
	avail := m.width - 6
	if m.wide() {
		avail -= statsPanelWidth + 4
	}
	for _, c := range cols {
		avail -= c.Width + 2
	}
	cols[1].Width += max(0, min(avail, 14))

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	return table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
		table.WithStyles(styles),
	)
}

// reload fetches the current view and stats of the selected game.
func (m *ScoreboardModel) reload() {
	m.entries, m.stats, m.err = nil, nil, nil
	if m.store != nil && len(m.games) > 0 {
		id := m.games[m.game].ID
		if m.view == viewRecent {
			m.entries, m.err = m.store.RecentRuns(id, boardLimit)
		} else {
			m.entries, m.err = m.store.TopScores(id, boardLimit)
		}
		if m.err == nil {
			m.stats, m.err = m.store.Stats(id)
		}
	}
	m.fillRows()
}

func (m *ScoreboardModel) fillRows() {
	rows := make([]table.Row, 0, len(m.entries))
	for i, e := range m.entries {
		name := e.Player
		if m.player != "" && e.Player == m.player {
			name += " *"
		}
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			name,
			strconv.Itoa(e.Score),
			fmt.Sprintf("%.1fs", e.Duration.Seconds()),
			e.CreatedAt.Local().Format(dateFormat),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.fillRows()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quit = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.View):
			m.view = 1 - m.view
			m.reload()
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.switchGame(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.switchGame(-1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) switchGame(delta int) {
	n := len(m.games)
	if n < 2 {
		return
	}
	m.game = (m.game + delta + n) % n
	m.reload()
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.back || m.quit {
		return ""
	}

	title := "LEADERBOARD"
	if len(m.games) > 0 {
		title += " - " + m.games[m.game].Title
		if len(m.games) > 1 {
			title = "< " + title + " >"
		}
	}

	sections := []string{
		centerText(boardTitleStyle.Render(title), m.width),
		centerText(m.tabs(), m.width),
		"",
	}
	if m.wide() {
		body := lipgloss.JoinHorizontal(lipgloss.Top,
			boardFrameStyle.Render(m.listing()), "  ", boardFrameStyle.Render(m.statsPanel()))
		sections = append(sections, centerText(body, m.width))
	} else {
		sections = append(sections,
			centerText(boardDimStyle.Render(m.statsSummary()), m.width),
			centerText(boardFrameStyle.Render(m.listing()), m.width))
	}
	sections = append(sections, "", boardDimStyle.Render(m.help.View(m.keys)))
	return strings.Join(sections, "\n")
}

func (m ScoreboardModel) tabs() string {
	out := make([]string, 0, 2)
	for _, v := range []boardView{viewTop, viewRecent} {
		if v == m.view {
			out = append(out, boardActiveTab.Render(v.String()))
		} else {
			out = append(out, boardTabStyle.Render(v.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}

// listing is the table, or a note when there is nothing to show.
func (m ScoreboardModel) listing() string {
	note := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 3)
	switch {
	case m.store == nil:
		return note.Render("Scores are not being recorded.")
	case m.err != nil:
		return note.Render(fmt.Sprintf("Could not load scores:\n%v", m.err))
	case len(m.entries) == 0:
		return note.Render("No runs yet.\nClear an obstacle to get on the board!")
	}
	return m.table.View()
}

func (m ScoreboardModel) statsPanel() string {
	row := func(label, value string) string {
		return boardLabelStyle.Render(label) + boardValueStyle.Render(value)
	}
	if m.stats == nil || m.stats.GamesCount == 0 {
		return lipgloss.NewStyle().Width(statsPanelWidth).Render(boardDimStyle.Render("No stats yet"))
	}
	s := m.stats
	lines := []string{
		boardTitleStyle.Render("Stats"),
		"",
		row("Runs", strconv.Itoa(s.GamesCount)),
		row("Best", strconv.Itoa(s.HighScore)),
		row("Average", fmt.Sprintf("%.1f", s.AvgScore)),
		row("Longest", fmt.Sprintf("%.1fs", s.LongestRun.Seconds())),
	}
	if !s.LastPlayed.IsZero() {
		lines = append(lines, row("Last", s.LastPlayed.Local().Format(dateFormat)))
	}
	return lipgloss.NewStyle().Width(statsPanelWidth).Render(strings.Join(lines, "\n"))
}

// statsSummary is the one-line stats shown on narrow terminals.
func (m ScoreboardModel) statsSummary() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return "no runs yet"
	}
	return fmt.Sprintf("%d runs | best %d | avg %.1f | longest %.1fs",
		m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore, m.stats.LongestRun.Seconds())
}

// IsGoingBack reports whether the player asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting reports whether the player asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quit
}

// RunScoreboard shows the leaderboard in its own program.
// Returns true when the player went back rather than quitting.
func RunScoreboard(store *storage.Store, player string, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, player, width, height), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
