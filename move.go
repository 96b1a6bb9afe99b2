package goshogi

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

// Kifu line commands:
//
//	77-76     move from 77 to 76
//	88-22+    move and promote
//	fu*55     drop a pawn on 55
//	10.3-9.3  coordinates with a dot on boards wider or taller than 9
//	pass, resign, draw
const coordPattern = `(\d+\.\d+|\d\d)`

// (from)-(to)(promotion)
var moveRegex = regexp.MustCompile(`^` + coordPattern + `-` + coordPattern + `(\+)?$`)

// (species)*(to)
var putRegex = regexp.MustCompile(`^([a-z][a-z0-9_]*)\*` + coordPattern + `$`)

var coordRegex = regexp.MustCompile(`^` + coordPattern + `$`)

// IsValidMoveCharacter checks if a character may appear in a typed command.
func IsValidMoveCharacter(char string) bool {
	if len(char) != 1 {
		return false
	}
	if char >= "a" && char <= "z" {
		return true
	}
	if char >= "0" && char <= "9" {
		return true
	}
	return strings.Contains("-+*._", char)
}

// ParseXY reads a coordinate in notation form.
func ParseXY(s string) (XY, error) {
	s = width.Fold.String(strings.TrimSpace(s))
	if !coordRegex.MatchString(s) {
		return XY{}, fmt.Errorf("%w: bad coordinate %q", ErrIllegalPosition, s)
	}
	if x, y, ok := strings.Cut(s, "."); ok {
		xi, err := strconv.Atoi(x)
		if err != nil {
			return XY{}, err
		}
		yi, err := strconv.Atoi(y)
		if err != nil {
			return XY{}, err
		}
		return NewXY(xi, yi), nil
	}
	return NewXY(int(s[0]-'0'), int(s[1]-'0')), nil
}

// ParseCommand reads one command in kifu line form. Full-width characters
// are folded first.
func ParseCommand(text string) (Command, error) {
	// Strip annotation marks
	text = strings.Trim(width.Fold.String(strings.TrimSpace(text)), "\"'?!")
	if text == "" {
		return Command{}, fmt.Errorf("%w: empty", ErrUnknownCommand)
	}

	switch strings.ToLower(text) {
	case string(CommandPass):
		return Command{Type: CommandPass}, nil
	case string(CommandResign):
		return Command{Type: CommandResign}, nil
	case string(CommandDraw):
		return Command{Type: CommandDraw}, nil
	}

	if parts := moveRegex.FindStringSubmatch(text); parts != nil {
		from, err := ParseXY(parts[1])
		if err != nil {
			return Command{}, err
		}
		to, err := ParseXY(parts[2])
		if err != nil {
			return Command{}, err
		}
		return Command{Type: CommandMove, From: &from, To: &to, Nari: parts[3] == "+"}, nil
	}

	if parts := putRegex.FindStringSubmatch(text); parts != nil {
		to, err := ParseXY(parts[2])
		if err != nil {
			return Command{}, err
		}
		return Command{Type: CommandPut, Put: Species(parts[1]), To: &to}, nil
	}

	return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, text)
}

// FormatCommand renders a command in kifu line form. Commands that have no
// line form return an empty string.
func FormatCommand(c Command) string {
	switch c.Type {
	case CommandMove:
		if c.From == nil || c.To == nil {
			return ""
		}
		s := c.From.Format() + "-" + c.To.Format()
		if c.Nari {
			s += "+"
		}
		return s
	case CommandPut:
		if c.To == nil {
			return ""
		}
		return string(c.Put) + "*" + c.To.Format()
	case CommandPass, CommandResign, CommandDraw:
		return string(c.Type)
	}
	return ""
}
