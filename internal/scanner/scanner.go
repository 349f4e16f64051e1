// Package scanner turns Lox source text into a token stream.
package scanner

import (
	"strconv"

	"github.com/loxlang/glox/internal/diag"
	"github.com/loxlang/glox/internal/token"
)

// Scanner converts a source string into a token.Token stream, reporting
// lexical errors to a Reporter as it goes rather than stopping at the
// first one — an unknown character or unterminated string does not
// prevent the rest of the file from being scanned.
type Scanner struct {
	source string
	start  int
	cur    int
	line   int

	reporter *diag.Reporter
	tokens   []token.Token
}

// New returns a Scanner over source that reports lexical errors to r.
func New(source string, r *diag.Reporter) *Scanner {
	return &Scanner{source: source, line: 1, reporter: r}
}

// Scan consumes the whole source and returns its tokens, always ending in
// exactly one EOF token.
func (s *Scanner) Scan() []token.Token {
	for !s.atEnd() {
		s.start = s.cur
		s.scanToken()
	}
	s.tokens = append(s.tokens, token.Token{Kind: token.EOF, Line: s.line})
	return s.tokens
}

func (s *Scanner) scanToken() {
	c := s.advance()
	switch c {
	case '(':
		s.add(token.LeftParen)
	case ')':
		s.add(token.RightParen)
	case '{':
		s.add(token.LeftBrace)
	case '}':
		s.add(token.RightBrace)
	case ',':
		s.add(token.Comma)
	case '.':
		s.add(token.Dot)
	case '-':
		s.add(token.Minus)
	case '+':
		s.add(token.Plus)
	case ';':
		s.add(token.Semicolon)
	case '*':
		s.add(token.Star)
	case '!':
		s.add(s.choose('=', token.BangEqual, token.Bang))
	case '=':
		s.add(s.choose('=', token.EqualEqual, token.Equal))
	case '<':
		s.add(s.choose('=', token.LessEqual, token.Less))
	case '>':
		s.add(s.choose('=', token.GreaterEqual, token.Greater))
	case '/':
		if s.match('/') {
			for s.peek() != '\n' && !s.atEnd() {
				s.advance()
			}
		} else {
			s.add(token.Slash)
		}
	case ' ', '\r', '\t':
		// ignore
	case '\n':
		s.line++
	case '"':
		s.string()
	default:
		switch {
		case isDigit(c):
			s.number()
		case isAlpha(c):
			s.identifier()
		default:
			s.err(s.line, "Unexpected character.")
		}
	}
}

func (s *Scanner) string() {
	startLine := s.line
	for s.peek() != '"' && !s.atEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}
	if s.atEnd() {
		s.err(startLine, "Unterminated string.")
		return
	}
	s.advance() // closing quote
	value := s.source[s.start+1 : s.cur-1]
	s.addLiteral(token.String, value)
}

func (s *Scanner) number() {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance() // consume the '.'
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	n, _ := strconv.ParseFloat(s.source[s.start:s.cur], 64)
	s.addLiteral(token.Number, n)
}

func (s *Scanner) identifier() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	text := s.source[s.start:s.cur]
	if kind, ok := token.Keywords[text]; ok {
		s.add(kind)
		return
	}
	s.add(token.Identifier)
}

func (s *Scanner) add(kind token.Kind) {
	s.addLiteral(kind, nil)
}

func (s *Scanner) addLiteral(kind token.Kind, literal any) {
	s.tokens = append(s.tokens, token.Token{
		Kind:    kind,
		Lexeme:  s.source[s.start:s.cur],
		Literal: literal,
		Line:    s.line,
	})
}

func (s *Scanner) err(line int, msg string) {
	s.reporter.Report(&diag.Error{Stage: diag.StageLex, Line: line, Msg: msg})
}

func (s *Scanner) atEnd() bool {
	return s.cur >= len(s.source)
}

func (s *Scanner) advance() byte {
	c := s.source[s.cur]
	s.cur++
	return c
}

func (s *Scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.source[s.cur]
}

func (s *Scanner) peekNext() byte {
	if s.cur+1 >= len(s.source) {
		return 0
	}
	return s.source[s.cur+1]
}

func (s *Scanner) match(expected byte) bool {
	if s.atEnd() || s.source[s.cur] != expected {
		return false
	}
	s.cur++
	return true
}

func (s *Scanner) choose(next byte, ifMatch, otherwise token.Kind) token.Kind {
	if s.match(next) {
		return ifMatch
	}
	return otherwise
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
