package goshogi

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStrategyRegistry(t *testing.T) {
	require.ErrorIs(t, RegisterStrategy(RoleJudge, "Checkmate", func(StrategyConfig) (any, error) { return noJudge{}, nil }), ErrDuplicateStrategy)
	require.ErrorIs(t, RegisterStrategy(RoleJudge, "", func(StrategyConfig) (any, error) { return noJudge{}, nil }), ErrUnknownStrategy)
	require.ErrorIs(t, RegisterStrategy(RoleJudge, "Nil", nil), ErrUnknownStrategy)

	require.Subset(t, RegisteredStrategies(RoleJudge), []string{"Capture", "Checkmate", "None"})
	require.Equal(t, []string{"MultiStep", "Normal", "Passable"}, RegisteredStrategies(RoleTebanRotation))
}

func TestStrategyDefaults(t *testing.T) {
	r := testRule(200, nil, nil, nil)
	delete(r.Strategy, RoleJudge)
	set, err := NewStrategySet(r)
	require.NoError(t, err)
	require.Equal(t, "Checkmate", set.Name(RoleJudge))
	require.Equal(t, "Normal", set.Name(RoleDestination))
	require.Equal(t, "None", set.Name(RolePromotion))
}

// firstMoveWins ends the game in favour of whoever moves first.
type firstMoveWins struct{}

func (firstMoveWins) Execute(g *Game, to XY, _ bool) error {
	k := g.Ban().Get(to)
	for _, d := range g.Teban().Directions() {
		if d != k.Direction {
			return g.RegisterEnd(d, d, EndCapture, "終局", "first move wins")
		}
	}
	return nil
}

func registerOnce(t *testing.T, role Role, name string, f StrategyFactory) {
	t.Helper()
	if err := RegisterStrategy(role, name, f); err != nil {
		require.ErrorIs(t, err, ErrDuplicateStrategy)
	}
}

func TestCustomStrategy(t *testing.T) {
	registerOnce(t, RoleJudge, "FirstMoveWins", func(StrategyConfig) (any, error) { return firstMoveWins{}, nil })
	registerOnce(t, RoleJudge, "WrongShape", func(StrategyConfig) (any, error) { return struct{}{}, nil })

	r := testRule(201, []Placement{{X: 5, Y: 7, Direction: 0, Species: "fu"}}, nil, map[Role]StrategyConfig{
		RoleJudge: {Name: "FirstMoveWins"},
	})
	g := startRule(t, r)
	require.Equal(t, "FirstMoveWins", g.Strategy().Name(RoleJudge))
	require.NoError(t, g.Move(xy(5, 7), xy(5, 6), false, nil))
	require.True(t, g.IsEnded())
	loser, _ := g.Loser()
	require.Equal(t, Direction(1), loser)

	r = testRule(202, nil, nil, map[Role]StrategyConfig{RoleJudge: {Name: "WrongShape"}})
	_, err := NewGame(RuleBook{r.ID: r}, r.ID)
	require.ErrorIs(t, err, ErrUnknownStrategy)

	r = testRule(203, nil, nil, map[Role]StrategyConfig{RoleJudge: {Name: "Missing"}})
	_, err = NewGame(RuleBook{r.ID: r}, r.ID)
	require.ErrorIs(t, err, ErrUnknownStrategy)

	r = testRule(204, nil, nil, map[Role]StrategyConfig{RoleMoveControl: {Name: "Freeze"}})
	_, err = NewGame(RuleBook{r.ID: r}, r.ID)
	require.Error(t, err)
}

func TestCheckmate(t *testing.T) {
	r := testRule(210, []Placement{
		{X: 5, Y: 1, Direction: 1, Species: "ou"},
		{X: 5, Y: 3, Direction: 0, Species: "fu"},
		{X: 5, Y: 9, Direction: 0, Species: "ou"},
	}, []HandPlacement{{Direction: 0, Species: "kin", Count: 1}}, map[Role]StrategyConfig{
		RoleJudge: {Name: "Checkmate"},
	})
	g := startRule(t, r)

	require.NoError(t, g.Put(xy(5, 2), "kin", 0, 0))
	require.True(t, g.IsEnded())
	require.True(t, g.InCheck(1))
	require.Equal(t, 2, g.Kifu().Len())

	e, ok := g.Kifu().Last().(*TerminalEntry)
	require.True(t, ok)
	require.Equal(t, EndCheckmate, e.Cause)
	require.Equal(t, Direction(1), e.Loser)
	require.Equal(t, "△詰み", e.Notation)
	require.Equal(t, ResultWin, g.Teban().Result(0))
	require.Equal(t, ResultLose, g.Teban().Result(1))
}

func TestDropPawnMate(t *testing.T) {
	r := testRule(211, []Placement{
		{X: 1, Y: 1, Direction: 1, Species: "ou"},
		{X: 2, Y: 1, Direction: 1, Species: "kyo"},
		{X: 2, Y: 2, Direction: 1, Species: "fu"},
		{X: 1, Y: 3, Direction: 0, Species: "kin"},
		{X: 9, Y: 9, Direction: 0, Species: "ou"},
	}, []HandPlacement{
		{Direction: 0, Species: "fu", Count: 1},
		{Direction: 0, Species: "kin", Count: 1},
	}, map[Role]StrategyConfig{
		RoleJudge: {Name: "Checkmate", Species: []Species{"fu"}},
		RoleNifu:  {Name: "Normal"},
	})
	g := startRule(t, r)
	before := snapshotJSON(t, g)

	require.ErrorIs(t, g.Put(xy(1, 2), "fu", 0, 0), ErrIllegalMove)
	require.Equal(t, before, snapshotJSON(t, g))

	require.NoError(t, g.Put(xy(1, 2), "kin", 0, 0))
	require.True(t, g.IsEnded())
}

func TestSelfCheck(t *testing.T) {
	r := testRule(212, []Placement{
		{X: 5, Y: 9, Direction: 0, Species: "ou"},
		{X: 5, Y: 8, Direction: 0, Species: "kin"},
		{X: 5, Y: 1, Direction: 1, Species: "hi"},
		{X: 1, Y: 1, Direction: 1, Species: "ou"},
	}, nil, map[Role]StrategyConfig{RoleJudge: {Name: "Checkmate"}})
	g := startRule(t, r)

	require.ErrorIs(t, g.Move(xy(5, 8), xy(4, 8), false, nil), ErrIllegalMove)
	require.Equal(t, Species("kin"), species(g, xy(5, 8)))
	require.False(t, g.InCheck(0))

	require.NoError(t, g.Move(xy(5, 8), xy(5, 7), false, nil))
	require.True(t, g.IsPlaying())
	require.Equal(t, Direction(1), g.Teban().Get())
}

func TestCaptureJudge(t *testing.T) {
	r := &Rule{
		ID:      220,
		Name:    "capture",
		Size:    [2]int{3, 4},
		Players: twoSeats(),
		Pieces:  dobutsuPieces(),
		Nari:    map[Species]Species{"hiyoko": "niwatori"},
		Init: InitialPosition{Ban: []Placement{
			{X: 2, Y: 4, Direction: 0, Species: "lion"},
			{X: 2, Y: 3, Direction: 0, Species: "kirin"},
			{X: 2, Y: 2, Direction: 1, Species: "lion"},
			{X: 1, Y: 1, Direction: 1, Species: "zou"},
		}},
		Strategy: map[Role]StrategyConfig{
			RolePromotion: {Name: "Normal", Zone: 1},
			RoleNifu:      {Name: "None"},
			RoleJudge:     {Name: "Capture"},
		},
	}
	g := startRule(t, r)

	require.NoError(t, g.Move(xy(2, 3), xy(2, 2), false, nil))
	require.True(t, g.IsEnded())
	require.Equal(t, 1, g.Mochigoma().Count("lion", 0))
	loser, ok := g.Loser()
	require.True(t, ok)
	require.Equal(t, Direction(1), loser)
	e := g.Kifu().Last().(*TerminalEntry)
	require.Equal(t, EndCapture, e.Cause)
}

func TestDobutsuPromotion(t *testing.T) {
	g := startBuiltin(t, RuleDobutsu)
	require.NoError(t, g.Move(xy(2, 3), xy(2, 2), false, nil))
	require.Equal(t, 1, g.Mochigoma().Count("hiyoko", 0))
	require.NoError(t, g.Move(xy(2, 1), xy(2, 2), false, nil))
	require.Equal(t, 1, g.Mochigoma().Count("hiyoko", 1))

	// seat 0 drops its chick right below the enemy camp, then walks it in
	require.NoError(t, g.Put(xy(1, 2), "hiyoko", 0, 0))
	require.NoError(t, g.Put(xy(3, 3), "hiyoko", 1, 0))
	require.NoError(t, g.Move(xy(1, 2), xy(1, 1), false, nil))
	require.Equal(t, Species("niwatori"), species(g, xy(1, 1)))
	require.Equal(t, 1, g.Mochigoma().Count("zou", 0))
}

func TestPromotion(t *testing.T) {
	tests := []struct {
		name      string
		mode      string
		piece     Species
		from, to  XY
		intent    bool
		ask       bool
		want      Species
		notation  string
		wantError error
	}{
		{"intent in zone", "Normal", "fu", xy(5, 4), xy(5, 3), true, true, "to", "▲53歩成", nil},
		{"declined", "Normal", "fu", xy(5, 4), xy(5, 3), false, true, "fu", "▲53歩不成", nil},
		{"no move left", "Normal", "fu", xy(5, 2), xy(5, 1), false, false, "to", "▲51歩成", nil},
		{"knight dead end", "Normal", "kei", xy(5, 4), xy(4, 2), false, false, "narikei", "▲42桂成", nil},
		{"leaving the zone", "Normal", "gin", xy(5, 3), xy(4, 4), true, true, "narigin", "▲44銀成", nil},
		{"outside zone", "Normal", "fu", xy(5, 7), xy(5, 6), true, false, "", "", ErrIllegalMove},
		{"no promoted form", "Normal", "kin", xy(5, 4), xy(5, 3), true, false, "", "", ErrIllegalMove},
		{"forced", "Forced", "fu", xy(5, 4), xy(5, 3), false, false, "to", "▲53歩成", nil},
		{"disabled", "None", "fu", xy(5, 4), xy(5, 3), true, false, "", "", ErrIllegalMove},
	}
	for i, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := testRule(230+i, []Placement{{X: tc.from.X, Y: tc.from.Y, Direction: 0, Species: tc.piece}}, nil,
				map[Role]StrategyConfig{RolePromotion: {Name: tc.mode}})
			g := startRule(t, r)
			require.Equal(t, tc.ask, g.ShouldAskPromotion(tc.to, tc.from))

			err := g.Move(tc.from, tc.to, tc.intent, nil)
			if tc.wantError != nil {
				require.ErrorIs(t, err, tc.wantError)
				require.Equal(t, tc.piece, species(g, tc.from))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, species(g, tc.to))
			require.Equal(t, tc.notation, g.Kifu().Last().Text())
			require.Equal(t, tc.want != tc.piece, g.Kifu().LastMove().Promote)
		})
	}
}

func TestDropWithoutExit(t *testing.T) {
	r := testRule(240, nil, []HandPlacement{{Direction: 0, Species: "kei", Count: 1}},
		map[Role]StrategyConfig{RolePromotion: {Name: "Normal"}})
	g := startRule(t, r)
	require.ErrorIs(t, g.Put(xy(5, 2), "kei", 0, 0), ErrIllegalMove)
	require.Equal(t, 1, g.Mochigoma().Count("kei", 0))
	require.NoError(t, g.Put(xy(5, 3), "kei", 0, 0))
}

func TestCaptureDemotes(t *testing.T) {
	r := testRule(241, []Placement{
		{X: 5, Y: 9, Direction: 0, Species: "hi"},
		{X: 5, Y: 5, Direction: 1, Species: "to"},
	}, nil, nil)
	g := startRule(t, r)
	require.NoError(t, g.Move(xy(5, 9), xy(5, 5), false, nil))
	require.Equal(t, 1, g.Mochigoma().Count("fu", 0))
	require.Zero(t, g.Mochigoma().Count("to", 0))
}

func TestNifu(t *testing.T) {
	ban := []Placement{
		{X: 5, Y: 7, Direction: 0, Species: "fu"},
		{X: 3, Y: 3, Direction: 0, Species: "to"},
		{X: 4, Y: 3, Direction: 1, Species: "fu"},
	}
	hands := []HandPlacement{{Direction: 0, Species: "fu", Count: 1}}
	tests := []struct {
		name string
		to   XY
		err  error
	}{
		{"same file", xy(5, 5), ErrIllegalDoublePawn},
		{"free file", xy(6, 5), nil},
		{"promoted pawn does not count", xy(3, 5), nil},
		{"opponent pawn does not count", xy(4, 5), nil},
	}
	for i, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := startRule(t, testRule(250+i, ban, hands, map[Role]StrategyConfig{RoleNifu: {Name: "Normal"}}))
			err := g.Put(tc.to, "fu", 0, 0)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				require.Equal(t, 1, g.Mochigoma().Count("fu", 0))
				require.False(t, g.Ban().Exists(tc.to))
				return
			}
			require.NoError(t, err)
			require.Zero(t, g.Mochigoma().Count("fu", 0))
		})
	}
}

func TestYoninNifuFollowsFacing(t *testing.T) {
	r := testRule(260, []Placement{{X: 2, Y: 5, Direction: 1, Species: "fu"}},
		[]HandPlacement{{Direction: 1, Species: "fu", Count: 2}}, map[Role]StrategyConfig{RoleNifu: {Name: "Normal"}})
	r.Players[1].Facing = FacingRight
	r.Komaochi = true
	g := startRule(t, r)
	require.ErrorIs(t, g.Put(xy(6, 5), "fu", 1, 0), ErrIllegalDoublePawn)
	require.NoError(t, g.Put(xy(2, 6), "fu", 1, 0))
}

func TestDestinationStrategies(t *testing.T) {
	t.Run("territory", func(t *testing.T) {
		g := startRule(t, testRule(270, nil, []HandPlacement{{Direction: 0, Species: "fu", Count: 1}},
			map[Role]StrategyConfig{RoleDestination: {Name: "Territory"}}))
		require.ErrorIs(t, g.Put(xy(5, 3), "fu", 0, 0), ErrIllegalMove)
		require.NoError(t, g.Put(xy(5, 7), "fu", 0, 0))
	})

	t.Run("free", func(t *testing.T) {
		g := startRule(t, testRule(271, []Placement{
			{X: 5, Y: 9, Direction: 0, Species: "hi"},
			{X: 5, Y: 7, Direction: 0, Species: "fu"},
		}, nil, map[Role]StrategyConfig{RoleDestination: {Name: "Free"}}))
		require.NoError(t, g.Move(xy(5, 9), xy(5, 7), false, nil))
		require.Equal(t, 1, g.Mochigoma().Count("fu", 0))
	})
}

func TestFreeze(t *testing.T) {
	g := startRule(t, testRule(272, []Placement{
		{X: 5, Y: 4, Direction: 1, Species: "kin"},
		{X: 5, Y: 5, Direction: 0, Species: "gin"},
		{X: 1, Y: 7, Direction: 0, Species: "fu"},
	}, nil, map[Role]StrategyConfig{RoleMoveControl: {Name: "Freeze", Species: []Species{"kin"}}}))

	require.ErrorIs(t, g.Move(xy(5, 5), xy(4, 4), false, nil), ErrIllegalMove)
	require.Equal(t, Species("gin"), species(g, xy(5, 5)))
	require.NoError(t, g.Move(xy(1, 7), xy(1, 6), false, nil))
}

func TestProtectedCapture(t *testing.T) {
	g := startRule(t, testRule(273, []Placement{
		{X: 5, Y: 9, Direction: 0, Species: "hi"},
		{X: 5, Y: 5, Direction: 1, Species: "kin"},
	}, nil, map[Role]StrategyConfig{RoleCaptureControl: {Name: "Protected", Species: []Species{"kin"}}}))

	err := g.Move(xy(5, 9), xy(5, 5), false, nil)
	require.ErrorIs(t, err, ErrCaptureBlocked)
	require.ErrorIs(t, err, ErrIllegalMove)
	require.Equal(t, Direction(1), owner(g, xy(5, 5)))
	require.NoError(t, g.Move(xy(5, 9), xy(5, 6), false, nil))
}

func TestCaptureAndPoolStrategies(t *testing.T) {
	ban := []Placement{
		{X: 5, Y: 9, Direction: 0, Species: "hi"},
		{X: 5, Y: 5, Direction: 1, Species: "fu"},
	}
	hands := []HandPlacement{{Direction: 0, Species: "kin", Count: 1}}

	t.Run("discard", func(t *testing.T) {
		g := startRule(t, testRule(280, ban, nil, map[Role]StrategyConfig{RoleCapture: {Name: "Discard"}}))
		require.NoError(t, g.Move(xy(5, 9), xy(5, 5), false, nil))
		require.Empty(t, g.Mochigoma().Hand(0))
	})

	t.Run("disabled pool", func(t *testing.T) {
		g := startRule(t, testRule(281, ban, hands, map[Role]StrategyConfig{RoleMochigomaIO: {Name: "Disabled"}}))
		require.ErrorIs(t, g.Put(xy(1, 1), "kin", 0, 0), ErrPieceNotAvailable)
		require.NoError(t, g.Move(xy(5, 9), xy(5, 5), false, nil))
		require.Equal(t, map[Species]int{"kin": 1}, g.Mochigoma().Hand(0))
	})
}

func TestPierce(t *testing.T) {
	r := testRule(290, []Placement{
		{X: 5, Y: 9, Direction: 0, Species: "tatsu"},
		{X: 5, Y: 7, Direction: 1, Species: "fu"},
		{X: 5, Y: 5, Direction: 1, Species: "kin"},
		{X: 5, Y: 3, Direction: 0, Species: "fu"},
	}, nil, nil)
	r.Pieces["tatsu"] = PieceRule{Name: "竜巻", Moves: []Movement{{DX: 0, DY: -1, Type: MovePierce}}}
	g := startRule(t, r)
	before := snapshotJSON(t, g)

	require.ErrorIs(t, g.Move(xy(5, 9), xy(5, 3), false, nil), ErrIllegalMove)
	require.ErrorIs(t, g.Move(xy(5, 9), xy(5, 2), false, nil), ErrIllegalMove)

	require.NoError(t, g.Move(xy(5, 9), xy(5, 5), false, nil))
	require.False(t, g.Ban().Exists(xy(5, 7)))
	require.Equal(t, map[Species]int{"fu": 1, "kin": 1}, g.Mochigoma().Hand(0))
	require.Len(t, g.Kifu().LastMove().Cells, 3)

	require.NoError(t, g.Rollback(1))
	require.Equal(t, before, snapshotJSON(t, g))
}

func TestOthello(t *testing.T) {
	r := testRule(291, []Placement{
		{X: 1, Y: 3, Direction: 0, Species: "kin"},
		{X: 2, Y: 3, Direction: 1, Species: "fu"},
		{X: 3, Y: 4, Direction: 0, Species: "kin"},
		{X: 1, Y: 6, Direction: 0, Species: "kin"},
		{X: 2, Y: 6, Direction: 1, Species: "fu"},
		{X: 4, Y: 6, Direction: 1, Species: "fu"},
	}, []HandPlacement{{Direction: 0, Species: "kin", Count: 1}},
		map[Role]StrategyConfig{RoleMoveEffect: {Name: "Othello"}})
	g := startRule(t, r)

	require.NoError(t, g.Move(xy(3, 4), xy(3, 3), false, nil))
	require.Equal(t, Direction(0), owner(g, xy(2, 3)))
	cells := g.Kifu().LastMove().Cells
	require.Len(t, cells, 3)
	require.Equal(t, xy(2, 3), cells[2].XY)
	require.Equal(t, Direction(1), cells[2].Before.Direction)

	require.NoError(t, g.Rollback(1))
	require.Equal(t, Direction(1), owner(g, xy(2, 3)))

	// a drop flips too, but only enclosed lines
	require.NoError(t, g.Put(xy(3, 6), "kin", 0, 0))
	require.Equal(t, Direction(0), owner(g, xy(2, 6)))
	require.Equal(t, Direction(1), owner(g, xy(4, 6)))
}

func TestBuiltinOthello(t *testing.T) {
	g := startBuiltin(t, RuleOthello)
	require.NoError(t, g.Move(xy(3, 6), xy(3, 5), false, nil))
	require.NoError(t, g.Move(xy(3, 3), xy(3, 4), false, nil))
	require.Equal(t, 1, g.Mochigoma().Count("fu", 1))
	// no line from 34 ends on another piece of seat 1
	require.Equal(t, Direction(1), owner(g, xy(3, 4)))
	require.Equal(t, Direction(0), owner(g, xy(2, 4)))
	require.Equal(t, Direction(0), owner(g, xy(4, 4)))
}

func TestLionMultiStep(t *testing.T) {
	g := startBuiltin(t, RuleLion)
	initial := snapshotJSON(t, g)

	require.NoError(t, g.Move(xy(2, 5), xy(2, 4), false, nil))
	at, moving := g.Moving()
	require.True(t, moving)
	require.Equal(t, xy(2, 4), at)
	require.Equal(t, Direction(0), g.Teban().Get())
	require.True(t, g.Kifu().LastMoving())
	require.True(t, g.Ban().Get(xy(2, 4)).Has(StatusMoving))

	require.ErrorIs(t, g.Move(xy(4, 5), xy(4, 4), false, nil), ErrMoveInProgress)
	for _, c := range g.LegalMoves() {
		if c.Type == CommandMove {
			require.Equal(t, xy(2, 4), *c.From)
		}
	}

	clone, err := g.Clone()
	require.NoError(t, err)
	at, moving = clone.Moving()
	require.True(t, moving)
	require.Equal(t, xy(2, 4), at)

	require.NoError(t, g.Move(xy(2, 4), xy(2, 3), false, nil))
	_, moving = g.Moving()
	require.False(t, moving)
	require.Equal(t, Direction(1), g.Teban().Get())
	require.Equal(t, 1, g.Teban().Turn())
	require.Equal(t, KomaStatus(0), g.Ban().Get(xy(2, 3)).Status)

	require.NoError(t, g.RunCommand(Command{Type: CommandRollback, Count: 1}))
	require.Equal(t, initial, snapshotJSON(t, g))

	t.Run("pass ends the move", func(t *testing.T) {
		require.NoError(t, clone.Pass(nil))
		_, moving := clone.Moving()
		require.False(t, moving)
		require.Equal(t, Direction(1), clone.Teban().Get())
		require.False(t, clone.Kifu().LastMoving())
		require.Equal(t, KomaStatus(0), clone.Ban().Get(xy(2, 4)).Status)
	})

	t.Run("jump", func(t *testing.T) {
		g := startBuiltin(t, RuleLion)
		require.NoError(t, g.Move(xy(2, 5), xy(2, 3), false, nil))
		_, moving := g.Moving()
		require.False(t, moving)
		require.Equal(t, Direction(1), g.Teban().Get())
	})

	t.Run("drops are disabled", func(t *testing.T) {
		g := startBuiltin(t, RuleLion)
		require.ErrorIs(t, g.Put(xy(1, 3), "fu", 0, 0), ErrPieceNotAvailable)
	})
}

func TestJudgeAfterMultiStep(t *testing.T) {
	for _, judge := range []string{"Checkmate", "Capture", "None"} {
		t.Run(judge, func(t *testing.T) {
			start := func(t *testing.T) *Game {
				r := lionRule()
				r.Strategy[RoleJudge] = StrategyConfig{Name: judge}
				g := startRule(t, r)
				require.NoError(t, g.Move(xy(2, 5), xy(2, 4), false, nil))
				require.Equal(t, StatusPlaying, g.Status())
				require.Equal(t, Direction(0), g.Teban().Get())
				return g
			}

			for name, to := range map[string]XY{"sideways": xy(1, 4), "giving check": xy(2, 3)} {
				t.Run(name, func(t *testing.T) {
					g := start(t)
					require.NoError(t, g.Move(xy(2, 4), to, false, nil))
					require.Equal(t, StatusPlaying, g.Status(), g.Message())
					require.Equal(t, Direction(1), g.Teban().Get())
					require.Equal(t, ResultPending, g.Teban().Result(1))
					require.NotEmpty(t, g.LegalMoves())
				})
			}

			t.Run("pass", func(t *testing.T) {
				g := start(t)
				require.NoError(t, g.Pass(nil))
				require.Equal(t, StatusPlaying, g.Status())
				require.Equal(t, Direction(1), g.Teban().Get())
			})
		})
	}
}

func TestCheckmatePassReply(t *testing.T) {
	tests := map[string]struct {
		rotation string
		status   GameStatus
	}{
		"pass is a reply": {rotation: "Passable", status: StatusPlaying},
		"no reply":        {rotation: "Normal", status: StatusEnded},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			g := startRule(t, testRule(293, []Placement{{X: 5, Y: 9, Direction: 0, Species: "ou"}}, nil,
				map[Role]StrategyConfig{
					RoleJudge:         {Name: "Checkmate"},
					RoleTebanRotation: {Name: tc.rotation},
				}))
			require.NoError(t, g.Move(xy(5, 9), xy(5, 8), false, nil))
			require.Equal(t, tc.status, g.Status(), g.Message())
		})
	}
}

func TestNoPassLeg(t *testing.T) {
	r := testRule(292, []Placement{{X: 5, Y: 5, Direction: 0, Species: "shishi"}}, nil,
		map[Role]StrategyConfig{RoleTebanRotation: {Name: "MultiStep"}})
	r.Pieces["shishi"] = PieceRule{Name: "獅子", Moves: []Movement{{DX: 0, DY: -1, Range: 1, Type: MovePartial, NoPass: true}}}
	g := startRule(t, r)

	require.NoError(t, g.Move(xy(5, 5), xy(5, 4), false, nil))
	require.ErrorIs(t, g.Pass(nil), ErrMustContinueMove)
	for _, c := range g.LegalMoves() {
		require.NotEqual(t, CommandPass, c.Type, fmt.Sprint(c))
	}
	require.NoError(t, g.Move(xy(5, 4), xy(5, 3), false, nil))
	require.Equal(t, Direction(1), g.Teban().Get())
}

func TestRegisterEndTwice(t *testing.T) {
	g := startBuiltin(t, RuleHirate)
	require.NoError(t, g.RegisterEnd(0, 0, EndResign, "投了", "first"))
	err := g.RegisterEnd(1, 1, EndResign, "投了", "second")
	require.True(t, errors.Is(err, ErrGameAlreadyOver))
}
