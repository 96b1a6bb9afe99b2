package goshogi

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func testClock() time.Time { return testTime }

func xy(x, y int) XY { return NewXY(x, y) }

func seat(d Direction) *Direction { return &d }

// testRule is a two seat 9x9 shogi rule with the given pieces. Strategies not
// listed fall back to plain behaviour with no judge, no promotion and no nifu.
func testRule(id int, ban []Placement, hands []HandPlacement, strategy map[Role]StrategyConfig) *Rule {
	s := map[Role]StrategyConfig{
		RolePromotion: {Name: "None"},
		RoleNifu:      {Name: "None"},
		RoleJudge:     {Name: "None"},
	}
	for role, cfg := range strategy {
		s[role] = cfg
	}
	return &Rule{
		ID:       id,
		Name:     "test",
		Size:     [2]int{9, 9},
		Players:  twoSeats(),
		Pieces:   shogiPieces(),
		Nari:     shogiNari(),
		Init:     InitialPosition{Ban: ban, Mochigoma: hands},
		Strategy: s,
	}
}

func startRule(t *testing.T, r *Rule) *Game {
	t.Helper()
	g, err := NewGame(RuleBook{r.ID: r}, r.ID, WithClock(testClock))
	require.NoError(t, err)
	require.NoError(t, g.Start())
	return g
}

func startBuiltin(t *testing.T, id int) *Game {
	t.Helper()
	g, err := NewGame(BuiltinRules(), id, WithClock(testClock))
	require.NoError(t, err)
	require.NoError(t, g.Start())
	return g
}

func snapshotJSON(t *testing.T, g *Game) string {
	t.Helper()
	data, err := json.Marshal(g)
	require.NoError(t, err)
	return string(data)
}

func mustCommand(t *testing.T, text string) Command {
	t.Helper()
	c, err := ParseCommand(text)
	require.NoError(t, err)
	return c
}

func species(g *Game, at XY) Species {
	if k := g.Ban().Get(at); k != nil {
		return k.Species
	}
	return ""
}

func owner(g *Game, at XY) Direction {
	if k := g.Ban().Get(at); k != nil {
		return k.Direction
	}
	return NoDirection
}
