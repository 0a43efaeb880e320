package ly

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports a fatal problem in LilyPond source.
type ParseError struct {
	Line   int
	Column int
	Msg    string
}

func (e *ParseError) Error() string {
	if e == nil {
		return "lilypond parse error <nil>"
	}
	return fmt.Sprintf("lilypond parse error at line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

// scanner is a byte-level cursor over LilyPond source with position
// tracking. The parser drives it directly; there is no separate
// token stream.
type scanner struct {
	src  string
	pos  int
	line int
	col  int
}

func newScanner(src string) *scanner {
	return &scanner{src: src, line: 1, col: 1}
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) advance() byte {
	c := s.src[s.pos]
	s.pos++
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return c
}

// skipSpace consumes whitespace and % line comments.
func (s *scanner) skipSpace() {
	for !s.eof() {
		switch c := s.peek(); {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			s.advance()
		case c == '%':
			for !s.eof() && s.peek() != '\n' {
				s.advance()
			}
		default:
			return
		}
	}
}

func (s *scanner) errorf(format string, args ...any) error {
	return &ParseError{Line: s.line, Column: s.col, Msg: fmt.Sprintf(format, args...)}
}

func (s *scanner) expect(c byte) error {
	s.skipSpace()
	if s.eof() || s.peek() != c {
		return s.errorf("expected %q, found %q", string(c), s.remainder())
	}
	s.advance()
	return nil
}

func (s *scanner) remainder() string {
	if s.eof() {
		return "end of input"
	}
	rest := s.src[s.pos:]
	if len(rest) > 12 {
		rest = rest[:12]
	}
	return rest
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// readName reads an identifier: letters, with interior dashes as
// LilyPond allows in variable names.
func (s *scanner) readName() (string, error) {
	s.skipSpace()
	if s.eof() || !isLetter(s.peek()) {
		return "", s.errorf("expected name, found %q", s.remainder())
	}
	start := s.pos
	for !s.eof() && (isLetter(s.peek()) || s.peek() == '-' || s.peek() == '_') {
		s.advance()
	}
	return s.src[start:s.pos], nil
}

// readString reads a double-quoted string, including the quotes,
// handling backslash escapes.
func (s *scanner) readString() (string, error) {
	if err := s.expect('"'); err != nil {
		return "", err
	}
	var sb strings.Builder
	for {
		if s.eof() {
			return "", s.errorf("unterminated string")
		}
		c := s.advance()
		switch c {
		case '"':
			return sb.String(), nil
		case '\\':
			if s.eof() {
				return "", s.errorf("unterminated string escape")
			}
			sb.WriteByte(s.advance())
		default:
			sb.WriteByte(c)
		}
	}
}

// readNumber reads a decimal number with an optional sign.
func (s *scanner) readNumber() (float64, error) {
	s.skipSpace()
	start := s.pos
	if s.peek() == '-' {
		s.advance()
	}
	digits := 0
	for !s.eof() && isDigit(s.peek()) {
		s.advance()
		digits++
	}
	if !s.eof() && s.peek() == '.' {
		s.advance()
		for !s.eof() && isDigit(s.peek()) {
			s.advance()
			digits++
		}
	}
	if digits == 0 {
		return 0, s.errorf("expected number, found %q", s.remainder())
	}
	n, err := strconv.ParseFloat(s.src[start:s.pos], 64)
	if err != nil {
		return 0, s.errorf("bad number %q", s.src[start:s.pos])
	}
	return n, nil
}
