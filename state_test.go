package goshogi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestMochigoma(t *testing.T) {
	m := NewMochigoma(2)
	require.NoError(t, m.Add("fu", 0, 2))
	require.NoError(t, m.Add("kin", 0, 1))
	require.ErrorIs(t, m.Add("gin", 1, -1), ErrPieceNotAvailable)
	require.Equal(t, []Species{"fu", "kin"}, m.Species(0))

	snap := m.Snapshot()
	require.NoError(t, m.Add("fu", 0, -2))
	require.NoError(t, m.Add("gin", 1, 1))
	require.Equal(t, map[Species]int{"kin": 1}, m.Hand(0))
	require.Equal(t, []PoolDiff{
		{Direction: 0, Species: "fu", Before: 2, After: 0},
		{Direction: 1, Species: "gin", Before: 0, After: 1},
	}, m.Difference(snap))

	m.Restore(snap)
	require.Equal(t, 2, m.Count("fu", 0))
	require.Zero(t, m.Count("gin", 1))
	require.Empty(t, m.Difference(snap))

	m.Set("fu", 0, 0)
	require.Equal(t, []Species{"kin"}, m.Species(0))
}

func TestTeban(t *testing.T) {
	r := yoninRule()
	tb := NewTeban(r)
	require.Equal(t, 4, tb.Count())
	require.Equal(t, Direction(0), tb.Get())
	require.ErrorIs(t, tb.EnsureDirection(1), ErrNotYourTurn)
	require.False(t, tb.Valid(4))
	require.Equal(t, "南", tb.Name(0))
	require.Equal(t, "▶", tb.Mark(1))
	require.Equal(t, "seat 9", tb.Name(9))

	tb.SetResult(1, ResultLose)
	tb.SetResult(2, ResultLose)
	tb.Rotate()
	require.Equal(t, Direction(3), tb.Get())
	require.Equal(t, 1, tb.Turn())
	tb.Rotate()
	require.Equal(t, Direction(0), tb.Get())

	users := []string{"a", "b", "c", "d"}
	for i, u := range users {
		tb.SetUser(Direction(i), u)
	}
	tb.Shuffle(rand.New(rand.NewSource(7)))
	var got []string
	for _, d := range tb.Directions() {
		got = append(got, tb.User(d))
	}
	require.ElementsMatch(t, users, got)
	require.Equal(t, ResultLose, tb.Result(1))
	require.Equal(t, "lose", tb.Result(2).String())
}

func TestKomaStatus(t *testing.T) {
	partial := []Movement{{DX: 0, DY: -1, Range: 1, Type: MovePartial, NoPass: true}}
	k := &Koma{Species: "shishi"}

	k.ChangeStatus(partial, &Koma{Species: "fu"})
	require.True(t, k.Has(StatusMoving|StatusNoPass|StatusCaptured))

	k.ChangeStatus(partial, nil)
	require.Equal(t, KomaStatus(0), k.Status)

	k.ChangeStatus([]Movement{{DX: 0, DY: -2, Type: MoveJump}}, nil)
	require.False(t, k.Has(StatusMoving))

	c := k.Clone()
	c.Species = "fu"
	require.Equal(t, Species("shishi"), k.Species)
	require.Nil(t, (*Koma)(nil).Clone())
	require.Equal(t, "__", (*Koma)(nil).String())
}

func TestXY(t *testing.T) {
	p := NewXY(3, 4)
	require.Equal(t, "34", p.Format())
	require.Equal(t, "11.4", NewXY(11, 4).Format())
	require.True(t, p.IsAdjacent(NewXY(4, 5)))
	require.False(t, p.IsAdjacent(p))
	require.False(t, p.IsAdjacent(NewXY(5, 4)))
	require.Equal(t, NewXY(2, 6), p.Add(-1, 2))

	data, err := json.Marshal(p)
	require.NoError(t, err)
	require.Equal(t, "[3,4]", string(data))
	var q XY
	require.NoError(t, json.Unmarshal(data, &q))
	require.True(t, p.Equals(q))
	require.Error(t, json.Unmarshal([]byte(`{"x":1}`), &q))
}

func TestFacing(t *testing.T) {
	for _, f := range []Facing{FacingUp, FacingDown, FacingLeft, FacingRight} {
		dx, dy := f.Orient(1, -2)
		ux, uy := f.Unorient(dx, dy)
		require.Equal(t, [2]int{1, -2}, [2]int{ux, uy}, string(f))
	}
	dx, dy := FacingRight.Orient(0, -1)
	require.Equal(t, [2]int{1, 0}, [2]int{dx, dy})
}

func TestRulePromotionTable(t *testing.T) {
	r := hirateRule()
	require.Equal(t, Species("ryu"), r.Promoted("hi", PromoteBack))
	require.Equal(t, Species("hi"), r.Promoted("ryu", PromoteFront))
	require.Equal(t, Species("hi"), r.Promoted("ryu", PromoteFlip))
	require.Equal(t, Species("kin"), r.Promoted("kin", PromoteBack))
	require.True(t, r.CanPromote("kei"))
	require.False(t, r.CanPromote("narikei"))
	require.True(t, r.IsPromoted("uma"))
	require.False(t, r.IsPromoted("kaku"))
	require.Equal(t, "成銀", r.ShortName("narigin"))
	require.Equal(t, "x", r.ShortName("x"))
}

func TestRuleValidate(t *testing.T) {
	for id := range BuiltinRules() {
		r, err := BuiltinRules().Rule(id)
		require.NoError(t, err)
		require.NoError(t, r.Validate(), "rule %d", id)
	}

	tests := []struct {
		name   string
		mutate func(r *Rule)
	}{
		{"no size", func(r *Rule) { r.Size = [2]int{0, 9} }},
		{"no players", func(r *Rule) { r.Players = nil }},
		{"off board", func(r *Rule) { r.Init.Ban[0].X = 10 }},
		{"unknown species", func(r *Rule) { r.Init.Ban[0].Species = "dragon" }},
		{"bad owner", func(r *Rule) { r.Init.Ban[0].Direction = 2 }},
		{"negative hand", func(r *Rule) { r.Init.Mochigoma = []HandPlacement{{Species: "fu", Count: -1}} }},
		{"unknown strategy", func(r *Rule) { r.Strategy[RoleNifu] = StrategyConfig{Name: "Sometimes"} }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := hirateRule()
			tc.mutate(r)
			require.Error(t, r.Validate())
		})
	}
}
