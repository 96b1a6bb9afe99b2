package goshogi

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

// Token is a lexical token of the kifu text format.
type Token int

// Represent the kinds of tokens we can have
const (
	ILLEGAL Token = iota
	EOF
	WS
	NEWLINE

	TAG
	COMMENT
	NUMBER
	SEAT
	WORD
)

func (t Token) String() string {
	return [...]string{"ILLEGAL", "EOF", "WS", "NEWLINE", "TAG", "COMMENT", "NUMBER", "SEAT", "WORD"}[t]
}

// TokenInstance is a token type and the literal characters it was parsed from.
type TokenInstance struct {
	Type    Token
	Literal string
}

// Returns true if ch is a space, a tab or a carriage return.
func isWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '　'
}

// Returns true if ch is a numeric digit
func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

// Returns true if ch ends a word.
func isWordEnd(ch rune) bool {
	return ch == eof || ch == '\n' || ch == '{' || ch == '[' || isWhitespace(ch)
}

var eof = rune(0)

// Scanner represents a lexical scanner.
type Scanner struct {
	r *bufio.Reader
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{r: bufio.NewReader(r)}
}

// read reads the next rune from the bufferred reader.
// Returns the rune(0) if an error occurs (or io.EOF is returned).
func (s *Scanner) read() rune {
	ch, _, err := s.r.ReadRune()
	if err != nil {
		return eof
	}
	return ch
}

// unread places the previously read rune back on the reader.
func (s *Scanner) unread() { _ = s.r.UnreadRune() }

// scanWhitespace consumes the current rune and all contiguous whitespace.
func (s *Scanner) scanWhitespace() (tok Token, lit string) {
	var buf bytes.Buffer
	buf.WriteRune(s.read())

	for {
		if ch := s.read(); ch == eof {
			break
		} else if !isWhitespace(ch) {
			s.unread()
			break
		} else {
			buf.WriteRune(ch)
		}
	}

	return WS, buf.String()
}

// scanDelimited consumes everything up to and including end. A line break
// or EOF before end makes the token ILLEGAL.
func (s *Scanner) scanDelimited(end rune, tok Token) (Token, string) {
	var buf bytes.Buffer
	buf.WriteRune(s.read())

	for {
		ch := s.read()
		switch ch {
		case eof:
			return ILLEGAL, buf.String()
		case '\n':
			s.unread()
			return ILLEGAL, buf.String()
		}
		buf.WriteRune(ch)
		if ch == end {
			return tok, buf.String()
		}
	}
}

// scanSeat consumes an @ followed by digits.
func (s *Scanner) scanSeat() (Token, string) {
	var buf bytes.Buffer
	buf.WriteRune(s.read())

	for {
		if ch := s.read(); ch == eof {
			break
		} else if !isDigit(ch) {
			s.unread()
			break
		} else {
			buf.WriteRune(ch)
		}
	}
	if buf.Len() == 1 {
		return ILLEGAL, buf.String()
	}
	return SEAT, buf.String()
}

// scanWord consumes a run of non-space runes. Digits followed by a single
// period are a move number.
func (s *Scanner) scanWord() (Token, string) {
	var buf bytes.Buffer
	for {
		ch := s.read()
		if isWordEnd(ch) {
			if ch != eof {
				s.unread()
			}
			break
		}
		buf.WriteRune(ch)
	}

	lit := buf.String()
	if n := strings.TrimSuffix(lit, "."); n != lit && n != "" && strings.IndexFunc(n, func(r rune) bool { return !isDigit(r) }) < 0 {
		return NUMBER, lit
	}
	return WORD, lit
}

// Scan returns the next token and literal value.
func (s *Scanner) Scan() (tok Token, lit string) {
	ch := s.read()

	if isWhitespace(ch) {
		s.unread()
		return s.scanWhitespace()
	}

	switch ch {
	case eof:
		return EOF, ""
	case '\n':
		return NEWLINE, string(ch)
	case '[':
		s.unread()
		return s.scanDelimited(']', TAG)
	case '{':
		s.unread()
		return s.scanDelimited('}', COMMENT)
	case '@':
		s.unread()
		return s.scanSeat()
	}

	s.unread()
	return s.scanWord()
}

// ScanLine returns the tokens of the next line without whitespace and the
// line break. ok is false once the input is exhausted.
func (s *Scanner) ScanLine() (tokens []TokenInstance, ok bool) {
	for {
		tok, lit := s.Scan()
		switch tok {
		case EOF:
			return tokens, len(tokens) > 0
		case NEWLINE:
			return tokens, true
		case WS:
			continue
		}
		tokens = append(tokens, TokenInstance{Type: tok, Literal: lit})
	}
}
