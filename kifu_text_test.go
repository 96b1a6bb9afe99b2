package goshogi

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func replayFile(t *testing.T, path string) (*KifuRecord, *Game) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rec, err := ParseKifu(f)
	require.NoError(t, err)
	g, err := rec.Replay(BuiltinRules(), WithClock(testClock))
	require.NoError(t, err)
	return rec, g
}

func TestParse(t *testing.T) {
	files, err := filepath.Glob("test_games/*.kifu")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, path := range files {
		t.Run(filepath.Base(path), func(t *testing.T) {
			_, g := replayFile(t, path)

			// exporting and replaying reproduces the game exactly
			text := g.KifuText()
			rec, err := ParseKifu(strings.NewReader(text))
			require.NoError(t, err)
			again, err := rec.Replay(BuiltinRules(), WithClock(testClock))
			require.NoError(t, err)
			require.Equal(t, snapshotJSON(t, g), snapshotJSON(t, again))
			require.Equal(t, text, again.KifuText())
		})
	}
}

func TestReplayHirate(t *testing.T) {
	rec, g := replayFile(t, "test_games/hirate_resign.kifu")
	require.Len(t, rec.Turns, 7)
	require.Len(t, rec.Tags, 3)
	v, err := rec.GetTag("Event")
	require.NoError(t, err)
	require.Equal(t, "test opening", v)
	_, err = rec.GetTag("Missing")
	require.Error(t, err)
	require.Equal(t, "▲76歩", rec.Turns[0].Comment)
	require.Nil(t, rec.Turns[2].Seat)

	require.True(t, g.IsEnded())
	loser, _ := g.Loser()
	require.Equal(t, Direction(0), loser)

	out := g.KifuRecord()
	result, err := out.GetTag(TagResult)
	require.NoError(t, err)
	require.Equal(t, g.Message(), result)
	date, err := out.GetTag(TagDate)
	require.NoError(t, err)
	require.Equal(t, "2024-01-02T03:04:05Z", date)

	lines := strings.Split(strings.TrimSpace(g.KifuText()), "\n")
	require.Equal(t, "3. @0 88-22+ { ▲22角成 }", lines[len(lines)-5])
	require.Equal(t, "7. @0 resign { ▲投了 }", lines[len(lines)-1])
}

func TestReplayCaptureEnd(t *testing.T) {
	_, g := replayFile(t, "test_games/dobutsu_capture.kifu")
	require.True(t, g.IsEnded())
	loser, _ := g.Loser()
	require.Equal(t, Direction(1), loser)
	require.Equal(t, Species("niwatori"), species(g, xy(1, 1)))
	require.Equal(t, 1, g.Mochigoma().Count("lion", 0))
	// the capture ending is derived, not written out
	require.NotContains(t, g.KifuText(), "玉取り")
}

func TestReplayInsertsPasses(t *testing.T) {
	_, g := replayFile(t, "test_games/passable.kifu")
	require.Equal(t, 3, g.Kifu().Len())
	e := g.Kifu().Get(1).(*MoveEntry)
	require.True(t, e.Pass)
	require.Equal(t, Direction(1), e.Direction)

	_, g = replayFile(t, "test_games/lion_pass.kifu")
	at, moving := g.Moving()
	require.True(t, moving)
	require.Equal(t, xy(4, 3), at)
	require.Equal(t, Direction(1), g.Teban().Get())
	require.Equal(t, 4, g.Kifu().Len())
}

func TestParseKifuErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"malformed tag", "[Rule 1]\n"},
		{"tag with trailing text", "[Rule \"1\"] 1. 77-76\n"},
		{"missing number", "77-76\n"},
		{"two commands", "1. 77-76 33-34\n"},
		{"unknown command", "1. castle\n"},
		{"unterminated comment", "1. 77-76 { oops\n"},
		{"bad seat", "1. @ 77-76\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseKifu(strings.NewReader(tc.text))
			require.Error(t, err)
		})
	}
}

func TestReplayErrors(t *testing.T) {
	rec, err := ParseKifu(strings.NewReader("1. 77-76\n"))
	require.NoError(t, err)
	_, err = rec.Replay(BuiltinRules())
	require.Error(t, err)

	rec, err = ParseKifu(strings.NewReader("[Rule \"1\"]\n1. 77-76\n2. 77-76\n"))
	require.NoError(t, err)
	g, err := rec.Replay(BuiltinRules(), WithClock(testClock))
	require.ErrorIs(t, err, ErrPositionEmpty)
	require.Contains(t, err.Error(), "turn 2")
	require.Equal(t, 1, g.Kifu().Len())

	rec, err = ParseKifu(strings.NewReader("[Rule \"1\"]\n1. @1 33-34\n"))
	require.NoError(t, err)
	_, err = rec.Replay(BuiltinRules(), WithClock(testClock))
	require.ErrorIs(t, err, ErrPassNotAllowed)
}
