package goshogi

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Kifu text tags.
const (
	TagRule     = "Rule"
	TagRuleName = "RuleName"
	TagDate     = "Date"
	TagResult   = "Result"
)

// KifuRecord is a parsed kifu text: header tags and numbered command lines.
type KifuRecord struct {
	Tags  []*Tag
	Turns []*Turn
}

// GetTag does a linear search for the key specified and returns the value.
// It returns an error if the key does not exist.
func (r *KifuRecord) GetTag(key string) (string, error) {
	for _, t := range r.Tags {
		if t != nil && t.Key == key {
			return t.Value, nil
		}
	}
	return "", fmt.Errorf("no such tag '%s'", key)
}

// RuleID reads the Rule tag.
func (r *KifuRecord) RuleID() (int, error) {
	v, err := r.GetTag(TagRule)
	if err != nil {
		return 0, err
	}
	id, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: rule tag %q", ErrUnknownRule, v)
	}
	return id, nil
}

// Text renders the record.
func (r *KifuRecord) Text() string {
	var b strings.Builder
	for _, t := range r.Tags {
		b.WriteString(t.Text() + "\n")
	}
	if len(r.Tags) > 0 {
		b.WriteString("\n")
	}
	for _, t := range r.Turns {
		b.WriteString(t.Text() + "\n")
	}
	return b.String()
}

// ParseKifu parses a kifu text.
func ParseKifu(rd io.Reader) (*KifuRecord, error) {
	ret := &KifuRecord{}
	s := NewScanner(rd)
	for line := 1; ; line++ {
		tokens, ok := s.ScanLine()
		if !ok {
			break
		}
		if len(tokens) == 0 {
			continue
		}

		if tokens[0].Type == TAG {
			ta := parseTag(tokens[0].Literal)
			if ta == nil || len(tokens) > 1 {
				return nil, fmt.Errorf("line %d: malformed tag %q", line, tokens[0].Literal)
			}
			ret.Tags = append(ret.Tags, ta)
			continue
		}

		tu, err := parseTurn(tokens)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if tu != nil {
			ret.Turns = append(ret.Turns, tu)
		}
	}
	return ret, nil
}

func parseTurn(tokens []TokenInstance) (*Turn, error) {
	turn := &Turn{}
	var rest []TokenInstance
	var comments []string
	for _, t := range tokens {
		switch t.Type {
		case ILLEGAL:
			return nil, fmt.Errorf("unexpected %q", t.Literal)
		case COMMENT:
			comments = append(comments, strings.TrimSpace(strings.Trim(t.Literal, "{}")))
		default:
			rest = append(rest, t)
		}
	}
	turn.Comment = strings.Join(comments, " ")

	// comment-only lines carry nothing to replay
	if len(rest) == 0 {
		return nil, nil
	}
	if rest[0].Type != NUMBER {
		return nil, fmt.Errorf("line must start with a move number, got %q", rest[0].Literal)
	}
	num, err := strconv.Atoi(strings.TrimSuffix(rest[0].Literal, "."))
	if err != nil {
		return nil, err
	}
	turn.Number = num
	rest = rest[1:]

	if len(rest) > 0 && rest[0].Type == SEAT {
		d, err := strconv.Atoi(strings.TrimPrefix(rest[0].Literal, "@"))
		if err != nil {
			return nil, err
		}
		seat := Direction(d)
		turn.Seat = &seat
		rest = rest[1:]
	}

	if len(rest) != 1 || rest[0].Type != WORD {
		return nil, fmt.Errorf("line doesn't have exactly one command: %+v", rest)
	}
	cmd, err := ParseCommand(rest[0].Literal)
	if err != nil {
		return nil, err
	}
	turn.Command = cmd
	return turn, nil
}

// Replay plays the record on a new game. A line attributed to a seat that is
// not on turn is preceded by a pass.
func (r *KifuRecord) Replay(rules RuleSource, opts ...Option) (*Game, error) {
	id, err := r.RuleID()
	if err != nil {
		return nil, err
	}
	g, err := NewGame(rules, id, opts...)
	if err != nil {
		return nil, err
	}
	if err := g.Start(); err != nil {
		return nil, err
	}

	for _, t := range r.Turns {
		c := t.Command
		c.Direction = t.Seat
		switch c.Type {
		case CommandMove, CommandPut, CommandPass:
			if t.Seat != nil && g.IsPlaying() && *t.Seat != g.teban.Get() {
				if err := g.Pass(nil); err != nil {
					return g, fmt.Errorf("turn %d: seat %d is not on turn: %w", t.Number, *t.Seat, err)
				}
			}
		}
		if err := g.RunCommand(c); err != nil {
			return g, fmt.Errorf("turn %d (%s): %w", t.Number, FormatCommand(t.Command), err)
		}
	}
	return g, nil
}

// KifuRecord exports the game history.
func (g *Game) KifuRecord() *KifuRecord {
	rec := &KifuRecord{Tags: []*Tag{
		{Key: TagRule, Value: strconv.Itoa(g.ruleID)},
		{Key: TagRuleName, Value: g.rule.Name},
	}}
	if g.started != nil {
		rec.Tags = append(rec.Tags, &Tag{Key: TagDate, Value: g.started.UTC().Format(time.RFC3339)})
	}
	if g.status == StatusEnded {
		rec.Tags = append(rec.Tags, &Tag{Key: TagResult, Value: g.message})
	}

	n := 0
	add := func(seat Direction, c Command, comment string) {
		n++
		s := seat
		rec.Turns = append(rec.Turns, &Turn{Number: n, Seat: &s, Command: c, Comment: comment})
	}
	for _, e := range g.kifu.Entries() {
		switch e := e.(type) {
		case *MoveEntry:
			switch {
			case e.Pass:
				add(e.Direction, Command{Type: CommandPass}, e.Notation)
			case e.Drop:
				add(e.Direction, Command{Type: CommandPut, Put: e.Species, To: e.To}, e.Notation)
			default:
				add(e.Direction, Command{Type: CommandMove, From: e.From, To: e.To, Nari: e.Promote}, e.Notation)
			}
		case *TerminalEntry:
			switch e.Cause {
			case EndResign:
				add(e.Loser, Command{Type: CommandResign}, e.Notation)
			case EndDraw:
				add(e.Direction, Command{Type: CommandDraw}, e.Notation)
			}
		}
	}
	return rec
}

// KifuText exports the game history as kifu text.
func (g *Game) KifuText() string {
	return g.KifuRecord().Text()
}
