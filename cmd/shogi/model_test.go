package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/icco/goshogi"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func TestMenu(t *testing.T) {
	m := initialModel(goshogi.BuiltinRules())
	require.Equal(t, screenMenu, m.screen)
	require.Contains(t, m.View(), "本将棋")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, 0, m.menuCursor)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, screenGame, m.screen)
	require.Equal(t, goshogi.RuleMinimal, m.game.RuleID())
	require.True(t, m.game.IsPlaying())
	require.Equal(t, 1, m.cursorX)
	require.Equal(t, 2, m.cursorY)

	m = press(t, m, runes("q"))
	require.Equal(t, screenMenu, m.screen)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
}

func TestPickAndUndo(t *testing.T) {
	m := initialModel(goshogi.BuiltinRules())
	require.NoError(t, m.newGame(goshogi.RuleMinimal))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.selected)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyEnter})
	require.Empty(t, m.error)
	require.Nil(t, m.selected)
	require.Equal(t, 1, m.game.Kifu().Len())
	require.Equal(t, 1, m.game.Mochigoma().Count("fu", 0))
	require.Contains(t, m.View(), "歩1")

	m = press(t, m, runes("u"))
	require.Empty(t, m.error)
	require.Equal(t, 0, m.game.Kifu().Len())
	require.Equal(t, 0, m.game.Mochigoma().Count("fu", 0))

	// Picking the same cell again drops the selection.
	require.NoError(t, m.newGame(goshogi.RuleMinimal))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, m.selected)
	require.Equal(t, 0, m.game.Kifu().Len())
}

func TestCommandInput(t *testing.T) {
	m := initialModel(goshogi.BuiltinRules())
	require.NoError(t, m.newGame(goshogi.RuleHirate))

	m = press(t, m, runes(":"), runes("77-76"), tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, inputModeNormal, m.inputMode)
	require.Empty(t, m.error)
	require.Equal(t, "▲76歩", m.game.Kifu().Last().Text())

	m = press(t, m, runes(":"), runes("bogus"), tea.KeyMsg{Type: tea.KeyEnter})
	require.NotEmpty(t, m.error)

	// Moving out of turn is rejected by the engine.
	m = press(t, m, runes(":"), runes("76-75"), tea.KeyMsg{Type: tea.KeyEnter})
	require.NotEmpty(t, m.error)
	require.Equal(t, 1, m.game.Kifu().Len())

	m = press(t, m, runes(":"), runes("zzz"), tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, inputModeNormal, m.inputMode)
	require.Empty(t, m.input.Value())

	m = press(t, m, runes(":"), runes("resign"), tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.game.IsEnded())
	require.Contains(t, m.View(), m.game.Message())
}

func repeat(msg tea.Msg, n int) []tea.Msg {
	out := make([]tea.Msg, n)
	for i := range out {
		out[i] = msg
	}
	return out
}

func TestPromotionPrompt(t *testing.T) {
	tests := map[string]struct {
		answer tea.KeyMsg
		want   string
	}{
		"promote":   {answer: runes("y"), want: "▲22角成"},
		"decline":   {answer: runes("n"), want: "▲22角不成"},
		"cancelled": {answer: tea.KeyMsg{Type: tea.KeyEsc}, want: "△34歩"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			m := initialModel(goshogi.BuiltinRules())
			require.NoError(t, m.newGame(goshogi.RuleHirate))
			m = press(t, m, runes(":"), runes("77-76"), tea.KeyMsg{Type: tea.KeyEnter})
			m = press(t, m, runes(":"), runes("33-34"), tea.KeyMsg{Type: tea.KeyEnter})
			require.Equal(t, 2, m.game.Kifu().Len())

			// From 59 to 88, then on to 22.
			m = press(t, m, repeat(tea.KeyMsg{Type: tea.KeyLeft}, 3)...)
			m = press(t, m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyEnter})
			require.Equal(t, goshogi.NewXY(8, 8), *m.selected)
			m = press(t, m, repeat(tea.KeyMsg{Type: tea.KeyRight}, 6)...)
			m = press(t, m, repeat(tea.KeyMsg{Type: tea.KeyUp}, 6)...)
			m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
			require.Equal(t, inputModePromote, m.inputMode)
			require.Contains(t, m.View(), "y/n")

			m = press(t, m, tc.answer)
			require.Equal(t, inputModeNormal, m.inputMode)
			require.Nil(t, m.pending)
			require.Empty(t, m.error)
			require.Equal(t, tc.want, m.game.Kifu().Last().Text())
		})
	}
}

func TestNoPromptOutsideZone(t *testing.T) {
	m := initialModel(goshogi.BuiltinRules())
	require.NoError(t, m.newGame(goshogi.RuleHirate))

	// 79 to 78.
	m = press(t, m, repeat(tea.KeyMsg{Type: tea.KeyLeft}, 2)...)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, inputModeNormal, m.inputMode)
	require.Equal(t, "▲78銀", m.game.Kifu().Last().Text())
}

func TestPlayers(t *testing.T) {
	m := initialModel(goshogi.BuiltinRules())
	m.players = []string{"alice", "bob"}
	require.NoError(t, m.newGame(goshogi.RuleHirate))
	require.Equal(t, "alice", m.game.Teban().User(0))
	require.Equal(t, "bob", m.game.Teban().User(1))
	require.Contains(t, m.View(), "▲先手 (alice) to move")

	m.players = []string{"a", "b", "c", "d"}
	m.shuffle = rand.New(rand.NewSource(7))
	require.NoError(t, m.newGame(goshogi.RuleYonin))
	var seated []string
	for _, d := range m.game.Teban().Directions() {
		seated = append(seated, m.game.Teban().User(d))
	}
	require.ElementsMatch(t, m.players, seated)
	require.True(t, m.game.IsPlaying())
}
