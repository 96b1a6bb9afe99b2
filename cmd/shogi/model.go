package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/icco/goshogi"
	"golang.org/x/exp/rand"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginLeft(2)

	menuItemStyle = lipgloss.NewStyle().
			MarginLeft(2)

	selectedMenuItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("170")).
				Bold(true).
				MarginLeft(2)

	boardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			MarginLeft(2)

	cellStyle = lipgloss.NewStyle().
			Width(5).
			Align(lipgloss.Center)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true).
			MarginLeft(2)

	// Seat colours, cycled for rules with more seats than entries.
	seatColors = []string{"255", "209", "114", "75"}
)

type keyMap struct {
	Up, Down, Left, Right key.Binding
	Select                key.Binding
	Yes, No               key.Binding
	Command, Undo         key.Binding
	Back, Quit            key.Binding
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k")),
	Down:    key.NewBinding(key.WithKeys("down", "j")),
	Left:    key.NewBinding(key.WithKeys("left", "h")),
	Right:   key.NewBinding(key.WithKeys("right", "l")),
	Select:  key.NewBinding(key.WithKeys("enter", " ")),
	Yes:     key.NewBinding(key.WithKeys("y")),
	No:      key.NewBinding(key.WithKeys("n")),
	Command: key.NewBinding(key.WithKeys(":", "m")),
	Undo:    key.NewBinding(key.WithKeys("u")),
	Back:    key.NewBinding(key.WithKeys("q", "esc")),
	Quit:    key.NewBinding(key.WithKeys("ctrl+c")),
}

type screen int

const (
	screenMenu screen = iota
	screenGame
)

type inputMode int

const (
	inputModeNormal inputMode = iota
	inputModeCommand
	inputModePromote
)

type model struct {
	rules  goshogi.RuleBook
	ids    []int
	screen screen

	menuCursor int

	// players are seated in turn order, or shuffled when shuffle is set.
	players []string
	shuffle *rand.Rand

	game *goshogi.Game

	// Board cursor in engine coordinates.
	cursorX  int
	cursorY  int
	selected *goshogi.XY
	// pending is a move waiting for the promotion answer.
	pending *goshogi.Command

	inputMode inputMode
	input     textinput.Model

	width  int
	height int
	error  string
}

func initialModel(rules goshogi.RuleBook) model {
	ti := textinput.New()
	ti.Placeholder = "77-76, kaku*55, pass, resign, rollback"
	ti.Prompt = "> "
	ti.CharLimit = 64

	return model{
		rules:  rules,
		ids:    rules.IDs(),
		screen: screenMenu,
		input:  ti,
	}
}

// newGame starts a fresh game of rule id and switches to the board.
func (m *model) newGame(id int) error {
	g, err := goshogi.NewGame(m.rules, id)
	if err != nil {
		return err
	}
	for i, name := range m.players {
		g.Teban().SetUser(goshogi.Direction(i), name)
	}
	if m.shuffle != nil {
		g.Teban().Shuffle(m.shuffle)
	}
	if err := g.Start(); err != nil {
		return err
	}
	m.game = g
	m.screen = screenGame
	m.cursorX = (g.Ban().Width() + 1) / 2
	m.cursorY = g.Ban().Height()
	m.selected = nil
	m.pending = nil
	m.inputMode = inputModeNormal
	m.error = ""
	return nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}
		switch m.screen {
		case screenMenu:
			return m.updateMenu(msg)
		case screenGame:
			switch m.inputMode {
			case inputModeCommand:
				return m.updateCommandInput(msg)
			case inputModePromote:
				return m.updatePromote(msg)
			}
			return m.updateGame(msg)
		}
	}

	return m, nil
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.menuCursor > 0 {
			m.menuCursor--
		}

	case key.Matches(msg, keys.Down):
		if m.menuCursor < len(m.ids)-1 {
			m.menuCursor++
		}

	case key.Matches(msg, keys.Select):
		if len(m.ids) == 0 {
			return m, nil
		}
		if err := m.newGame(m.ids[m.menuCursor]); err != nil {
			m.error = err.Error()
		}
	}

	return m, nil
}

func (m model) updateCommandInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.inputMode = inputModeNormal
		m.input.Blur()
		m.input.Reset()
		return m, nil
	case tea.KeyEnter:
		text := strings.TrimSpace(m.input.Value())
		m.inputMode = inputModeNormal
		m.input.Blur()
		m.input.Reset()
		if text == "" {
			return m, nil
		}
		c, err := goshogi.ParseCommand(text)
		if err != nil {
			m.error = err.Error()
			return m, nil
		}
		m.run(c)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) updatePromote(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Yes):
		m.pending.Nari = true
	case key.Matches(msg, keys.No):
	case key.Matches(msg, keys.Back):
		m.pending = nil
		m.inputMode = inputModeNormal
		return m, nil
	default:
		return m, nil
	}

	c := *m.pending
	m.pending = nil
	m.inputMode = inputModeNormal
	m.run(c)
	return m, nil
}

func (m model) updateGame(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ban := m.game.Ban()

	// Files count down from the left edge, ranks count down from the top.
	switch {
	case key.Matches(msg, keys.Back):
		m.screen = screenMenu
		m.error = ""
	case key.Matches(msg, keys.Up):
		if m.cursorY > 1 {
			m.cursorY--
		}
	case key.Matches(msg, keys.Down):
		if m.cursorY < ban.Height() {
			m.cursorY++
		}
	case key.Matches(msg, keys.Left):
		if m.cursorX < ban.Width() {
			m.cursorX++
		}
	case key.Matches(msg, keys.Right):
		if m.cursorX > 1 {
			m.cursorX--
		}
	case key.Matches(msg, keys.Select):
		m.pick()
	case key.Matches(msg, keys.Command):
		m.inputMode = inputModeCommand
		m.error = ""
		return m, m.input.Focus()
	case key.Matches(msg, keys.Undo):
		m.run(goshogi.Command{Type: goshogi.CommandRollback, Count: 1})
	}

	return m, nil
}

// pick selects the piece under the cursor, or moves the selected piece to
// the cursor. Moves with an optional promotion wait for a y/n answer.
func (m *model) pick() {
	at := goshogi.NewXY(m.cursorX, m.cursorY)
	if m.selected == nil {
		if m.game.Ban().Get(at) == nil {
			m.error = "no piece at " + at.Format()
			return
		}
		m.selected = &at
		m.error = ""
		return
	}

	from := *m.selected
	m.selected = nil
	if from.Equals(at) {
		return
	}
	c := goshogi.Command{Type: goshogi.CommandMove, From: &from, To: &at}
	if m.game.ShouldAskPromotion(at, from) {
		m.pending = &c
		m.inputMode = inputModePromote
		return
	}
	m.run(c)
}

func (m *model) run(c goshogi.Command) {
	if err := m.game.RunCommand(c); err != nil {
		m.error = err.Error()
		return
	}
	m.error = ""
}

func (m model) View() string {
	switch m.screen {
	case screenMenu:
		return m.viewMenu()
	case screenGame:
		return m.viewGame()
	default:
		return "Unknown screen"
	}
}

func (m model) viewMenu() string {
	title := titleStyle.Render("goshogi")

	var menu strings.Builder
	for i, id := range m.ids {
		name := fmt.Sprintf("%d", id)
		if r, err := m.rules.Rule(id); err == nil {
			name = r.Name
		}
		if m.menuCursor == i {
			menu.WriteString(selectedMenuItemStyle.Render("> "+name) + "\n")
		} else {
			menu.WriteString(menuItemStyle.Render("  "+name) + "\n")
		}
	}

	help := menuItemStyle.Render("↑/↓ to choose a rule, enter to play, q to quit")
	content := lipgloss.JoinVertical(lipgloss.Left, title, "", menu.String(), help)

	if m.error != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, content, "", errorStyle.Render("Error: "+m.error))
	}
	return content
}

func (m model) viewGame() string {
	g := m.game
	title := titleStyle.Render(g.Rule().Name)

	var status string
	if g.IsEnded() {
		status = menuItemStyle.Render(g.Message())
	} else {
		status = menuItemStyle.Render(fmt.Sprintf("Turn %d | %s to move", g.Teban().Turn()+1, m.seatLabel(g.Teban().Get())))
	}

	content := []string{title, "", status, "", m.renderBoard(), m.renderPools()}

	var recent []string
	entries := g.Kifu().Entries()
	if len(entries) > 5 {
		entries = entries[len(entries)-5:]
	}
	for _, e := range entries {
		recent = append(recent, e.Text())
	}
	if len(recent) > 0 {
		content = append(content, menuItemStyle.Render("Recent: "+strings.Join(recent, " ")))
	}

	content = append(content, "")
	switch m.inputMode {
	case inputModeCommand:
		content = append(content, menuItemStyle.Render(m.input.View()))
	case inputModePromote:
		content = append(content, selectedMenuItemStyle.Render("成りますか? y/n | esc: cancel"))
	case inputModeNormal:
		content = append(content, menuItemStyle.Render("hjkl: cursor | enter: pick/move | : command | u: undo | q: menu"))
	}

	if m.error != "" {
		content = append(content, "", errorStyle.Render("Error: "+m.error))
	}
	return lipgloss.JoinVertical(lipgloss.Left, content...)
}

func (m model) renderBoard() string {
	ban := m.game.Ban()

	var header strings.Builder
	for x := ban.Width(); x >= 1; x-- {
		header.WriteString(cellStyle.Render(fmt.Sprintf("%d", x)))
	}
	rows := []string{header.String()}

	for y := 1; y <= ban.Height(); y++ {
		var row strings.Builder
		for x := ban.Width(); x >= 1; x-- {
			row.WriteString(m.renderCell(goshogi.NewXY(x, y)))
		}
		row.WriteString(fmt.Sprintf(" %d", y))
		rows = append(rows, row.String())
	}

	return boardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m model) renderCell(at goshogi.XY) string {
	style := cellStyle.Foreground(lipgloss.Color("240"))
	if k := m.game.Ban().Get(at); k != nil {
		style = style.Foreground(lipgloss.Color(seatColors[int(k.Direction)%len(seatColors)]))
	}

	switch {
	case at.X == m.cursorX && at.Y == m.cursorY:
		style = style.Background(lipgloss.Color("220")).Foreground(lipgloss.Color("16"))
	case m.selected != nil && m.selected.Equals(at):
		style = style.Background(lipgloss.Color("63"))
	}

	return style.Render(strings.TrimSpace(m.game.Cell(at)))
}

func (m model) renderPools() string {
	g := m.game
	var lines []string
	for _, d := range g.Teban().Directions() {
		var hand []string
		for _, s := range g.Mochigoma().Species(d) {
			hand = append(hand, fmt.Sprintf("%s%d", g.Rule().ShortName(s), g.Mochigoma().Count(s, d)))
		}
		if len(hand) == 0 {
			hand = []string{"なし"}
		}
		lines = append(lines, menuItemStyle.Render(fmt.Sprintf("%s: %s", m.seatLabel(d), strings.Join(hand, " "))))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// seatLabel is the seat mark and name, followed by the player when one is
// seated there.
func (m model) seatLabel(d goshogi.Direction) string {
	t := m.game.Teban()
	label := t.Mark(d) + t.Name(d)
	if user := t.User(d); user != "" {
		label += " (" + user + ")"
	}
	return label
}
