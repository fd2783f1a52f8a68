// Package lexer turns Mython source text into a token stream.
//
// Tokenization is eager: the whole input is scanned when the Lexer is
// constructed, and the resulting stream is walked with CurrentToken and
// NextToken. Indentation is tracked as a flat count of two-space units and
// surfaces as runs of Indent and Dedent tokens.
package lexer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MegaSamuel/mython/token"
)

// DentSpaces is the number of spaces in one indentation unit.
const DentSpaces = 2

// ErrLexing is the kind shared by every error this package reports.
// Hosts match it with errors.Is to tell lexing failures from runtime ones.
var ErrLexing = errors.New("lexing error")

type UnterminatedStringError struct {
	Line int
}

func (e UnterminatedStringError) Error() string {
	return fmt.Sprintf("unterminated string at line %d", e.Line)
}

func (e UnterminatedStringError) Unwrap() error { return ErrLexing }

type NewlineInStringError struct {
	Line int
}

func (e NewlineInStringError) Error() string {
	return fmt.Sprintf("line break inside string at line %d", e.Line)
}

func (e NewlineInStringError) Unwrap() error { return ErrLexing }

type BadEscapeError struct {
	Line int
	Char byte
}

func (e BadEscapeError) Error() string {
	return fmt.Sprintf("unknown escape \\%c at line %d", e.Char, e.Line)
}

func (e BadEscapeError) Unwrap() error { return ErrLexing }

type BadNumberError struct {
	Line    int
	Literal string
}

func (e BadNumberError) Error() string {
	return fmt.Sprintf("bad number literal %q at line %d", e.Literal, e.Line)
}

func (e BadNumberError) Unwrap() error { return ErrLexing }

type UnexpectedCharacterError struct {
	Line int
	Char byte
}

func (e UnexpectedCharacterError) Error() string {
	return fmt.Sprintf("unexpected character %#x at line %d", e.Char, e.Line)
}

func (e UnexpectedCharacterError) Unwrap() error { return ErrLexing }

// UnexpectedTokenError is reported by the Expect helpers.
type UnexpectedTokenError struct {
	Got  token.Token
	Want string
}

func (e UnexpectedTokenError) Error() string {
	return fmt.Sprintf("expected %s, got %s", e.Want, e.Got)
}

func (e UnexpectedTokenError) Unwrap() error { return ErrLexing }

var keywords = map[string]token.Kind{
	"class":  token.CLASS,
	"return": token.RETURN,
	"if":     token.IF,
	"else":   token.ELSE,
	"def":    token.DEF,
	"print":  token.PRINT,
	"and":    token.AND,
	"or":     token.OR,
	"not":    token.NOT,
	"None":   token.NONE,
	"True":   token.TRUE,
	"False":  token.FALSE,
}

type Lexer struct {
	source string
	tokens []token.Token
	pos    int // cursor into tokens

	// scan state, used only during New
	current int // scan position in source
	line    int // current line, for error reporting
	dent    int // indentation level in units
}

// New reads the whole stream and tokenizes it. The returned Lexer is
// positioned on the first token; the stream always ends with exactly one
// Eof token.
func New(input io.Reader) (*Lexer, error) {
	source, err := io.ReadAll(input)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	lexer := &Lexer{source: string(source), line: 1}
	if err := lexer.scan(); err != nil {
		return nil, err
	}

	return lexer, nil
}

// CurrentToken returns the token under the cursor without advancing.
func (l *Lexer) CurrentToken() token.Token {
	return l.tokens[l.pos]
}

// NextToken advances the cursor and returns the token it lands on.
// Advancing past the end is a no-op that keeps returning Eof.
func (l *Lexer) NextToken() token.Token {
	if l.pos+1 < len(l.tokens) {
		l.pos++
	}
	return l.tokens[l.pos]
}

// Tokens returns the materialized token stream.
func (l *Lexer) Tokens() []token.Token {
	return l.tokens
}

// Expect returns the current token when it is of the given kind, and an
// UnexpectedTokenError otherwise.
func (l *Lexer) Expect(kind token.Kind) (token.Token, error) {
	tok := l.CurrentToken()
	if tok.Kind != kind {
		return token.Token{}, UnexpectedTokenError{Got: tok, Want: kind.String()}
	}
	return tok, nil
}

// ExpectValue checks that the current token equals want, payload included.
func (l *Lexer) ExpectValue(want token.Token) error {
	got := l.CurrentToken()
	if got != want {
		return UnexpectedTokenError{Got: got, Want: want.String()}
	}
	return nil
}

// ExpectNext advances and then behaves like Expect.
func (l *Lexer) ExpectNext(kind token.Kind) (token.Token, error) {
	l.NextToken()
	return l.Expect(kind)
}

// ExpectNextValue advances and then behaves like ExpectValue.
func (l *Lexer) ExpectNextValue(want token.Token) error {
	l.NextToken()
	return l.ExpectValue(want)
}

func (l *Lexer) emit(tok token.Token) {
	l.tokens = append(l.tokens, tok)
}

func (l *Lexer) last() (token.Token, bool) {
	if len(l.tokens) == 0 {
		return token.Token{}, false
	}
	return l.tokens[len(l.tokens)-1], true
}

func (l *Lexer) scan() error {
	// Leading spaces on the very first line are plain whitespace: the
	// indentation level only changes after a Newline.
	l.skipSpaces()

	for l.current < len(l.source) {
		ch := l.source[l.current]

		var err error
		switch {
		case ch == '\'' || ch == '"':
			err = l.scanString()
		case isAlpha(ch):
			l.scanWord()
		case isDigit(ch):
			err = l.scanNumber()
		case ch == '\n':
			l.scanNewline()
		case ch == '#':
			l.skipComment()
		case isPunct(ch):
			l.scanOperator()
		default:
			err = UnexpectedCharacterError{Line: l.line, Char: ch}
		}
		if err != nil {
			return err
		}

		l.skipSpaces()
	}

	if tok, ok := l.last(); ok && tok.Kind != token.NEWLINE {
		l.emit(token.Of(token.NEWLINE))
	}
	for l.dent > 0 {
		l.emit(token.Of(token.DEDENT))
		l.dent--
	}
	l.emit(token.Of(token.EOF))

	return nil
}

func (l *Lexer) skipSpaces() {
	for l.current < len(l.source) && l.source[l.current] == ' ' {
		l.current++
	}
}

func (l *Lexer) skipComment() {
	// Consume up to, but not including, the line terminator.
	for l.current < len(l.source) && l.source[l.current] != '\n' {
		l.current++
	}
}

func (l *Lexer) scanNewline() {
	l.current++
	l.line++
	if tok, ok := l.last(); ok && tok.Kind != token.NEWLINE {
		l.emit(token.Of(token.NEWLINE))
	}
	l.scanDent()
}

// scanDent measures the indentation of the line the cursor now stands on
// and emits one Indent or Dedent per unit of change.
func (l *Lexer) scanDent() {
	spaces := 0
	for l.current < len(l.source) && l.source[l.current] == ' ' {
		spaces++
		l.current++
	}
	if l.current >= len(l.source) || l.source[l.current] == '\n' {
		// Blank line, or nothing after the spaces: the next non-blank
		// line decides the level.
		return
	}

	units := spaces / DentSpaces
	for units > l.dent {
		l.emit(token.Of(token.INDENT))
		l.dent++
	}
	for units < l.dent {
		l.emit(token.Of(token.DEDENT))
		l.dent--
	}
}

func (l *Lexer) scanString() error {
	quote := l.source[l.current]
	l.current++

	var value strings.Builder
	for l.current < len(l.source) {
		ch := l.source[l.current]
		l.current++
		switch ch {
		case quote:
			l.emit(token.Str(value.String()))
			return nil
		case '\\':
			if l.current >= len(l.source) {
				return UnterminatedStringError{Line: l.line}
			}
			esc := l.source[l.current]
			l.current++
			switch esc {
			case 'n':
				value.WriteByte('\n')
			case 't':
				value.WriteByte('\t')
			case 'r':
				value.WriteByte('\r')
			case '"':
				value.WriteByte('"')
			case '\'':
				value.WriteByte('\'')
			case '\\':
				value.WriteByte('\\')
			default:
				return BadEscapeError{Line: l.line, Char: esc}
			}
		case '\n', '\r':
			return NewlineInStringError{Line: l.line}
		default:
			value.WriteByte(ch)
		}
	}

	return UnterminatedStringError{Line: l.line}
}

func (l *Lexer) scanWord() {
	start := l.current
	for l.current < len(l.source) && isAlnum(l.source[l.current]) {
		l.current++
	}

	word := l.source[start:l.current]
	if kind, ok := keywords[word]; ok {
		l.emit(token.Of(kind))
	} else {
		l.emit(token.Id(word))
	}
}

func (l *Lexer) scanNumber() error {
	start := l.current
	for l.current < len(l.source) && isDigit(l.source[l.current]) {
		l.current++
	}

	literal := l.source[start:l.current]
	value, err := strconv.Atoi(literal)
	if err != nil {
		return BadNumberError{Line: l.line, Literal: literal}
	}
	l.emit(token.Number(value))

	return nil
}

func (l *Lexer) scanOperator() {
	ch := l.source[l.current]
	l.current++

	if l.current < len(l.source) && l.source[l.current] == '=' {
		switch ch {
		case '=':
			l.current++
			l.emit(token.Of(token.EQ))
			return
		case '!':
			l.current++
			l.emit(token.Of(token.NOTEQ))
			return
		case '<':
			l.current++
			l.emit(token.Of(token.LESSOREQ))
			return
		case '>':
			l.current++
			l.emit(token.Of(token.GREATEROREQ))
			return
		}
	}

	l.emit(token.Char(ch))
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isAlnum(ch byte) bool {
	return isAlpha(ch) || isDigit(ch)
}

func isPunct(ch byte) bool {
	return ch > ' ' && ch < 0x7f && !isAlnum(ch)
}
