// Package lexer scans a source.Input into an ordered token.Token
// stream, always terminated by a single T_EOF (spec §4.2).
package lexer

import (
	"fmt"
	"time"

	"github.com/epsilon-lang/epsilon/internal/config"
	"github.com/epsilon-lang/epsilon/internal/diag"
	"github.com/epsilon-lang/epsilon/internal/invariant"
	"github.com/epsilon-lang/epsilon/internal/source"
	"github.com/epsilon-lang/epsilon/internal/token"
)

// Lexer scans one source.Input in a single pass; it is not
// restartable and produces a finite token sequence.
type Lexer struct {
	src    source.Input
	sink   *diag.Sink
	cfg    config.Config
	pos    int
	line   int
	col    int
	events []config.Event
}

// New creates a Lexer over src, reporting lexical diagnostics to sink.
func New(src source.Input, sink *diag.Sink, cfg config.Config) *Lexer {
	invariant.NotNil(sink, "sink")
	return &Lexer{src: src, sink: sink, cfg: cfg, line: 1, col: 1}
}

// DebugEvents returns recorded trace events when cfg.Debug > DebugOff.
func (l *Lexer) DebugEvents() []config.Event { return l.events }

func (l *Lexer) trace(name, context string) {
	if l.cfg.Debug > config.DebugOff {
		l.events = append(l.events, config.Event{Timestamp: time.Now(), Stage: "lexer", Name: name, Context: context})
	}
}

// Tokenize scans the entire input and returns the token sequence,
// always ending with exactly one T_EOF token.
func (l *Lexer) Tokenize() []token.Token {
	var toks []token.Token
	for {
		tok := l.next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	invariant.Postcondition(len(toks) >= 1 && toks[len(toks)-1].Kind == token.EOF, "token stream must end with a single EOF")
	return toks
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.src.Raw) {
		return 0
	}
	return l.src.Raw[l.pos]
}

func (l *Lexer) peekAt(off int) byte {
	if l.pos+off >= len(l.src.Raw) {
		return 0
	}
	return l.src.Raw[l.pos+off]
}

func (l *Lexer) advance() byte {
	ch := l.src.Raw[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

func (l *Lexer) atEnd() bool { return l.pos >= len(l.src.Raw) }

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\r', '\n', '\f', '\v':
		return true
	}
	return false
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isAlpha(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isAlphaNum(ch byte) bool { return isAlpha(ch) || isDigit(ch) }

func (l *Lexer) skipWhitespaceAndComments() {
	for !l.atEnd() {
		ch := l.peek()
		if isSpace(ch) {
			l.advance()
			continue
		}
		if ch == '-' && l.peekAt(1) == '-' {
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
			continue
		}
		break
	}
}

func (l *Lexer) next() token.Token {
	l.trace("enter_next", fmt.Sprintf("pos=%d", l.pos))
	l.skipWhitespaceAndComments()

	startLine, startCol, startByte := l.line, l.col, l.pos

	if l.atEnd() {
		return l.emit(token.EOF, "", startLine, startCol, startByte)
	}

	ch := l.peek()

	switch {
	case isDigit(ch):
		return l.number(startLine, startCol, startByte)
	case ch == '"':
		return l.string(startLine, startCol, startByte)
	case isAlpha(ch):
		return l.identifier(startLine, startCol, startByte)
	}

	l.advance()
	switch ch {
	case '(':
		return l.emit(token.LParen, "(", startLine, startCol, startByte)
	case ')':
		return l.emit(token.RParen, ")", startLine, startCol, startByte)
	case '{':
		return l.emit(token.LBrace, "{", startLine, startCol, startByte)
	case '}':
		return l.emit(token.RBrace, "}", startLine, startCol, startByte)
	case ',':
		return l.emit(token.Comma, ",", startLine, startCol, startByte)
	case '.':
		return l.emit(token.Dot, ".", startLine, startCol, startByte)
	case '+':
		return l.emit(token.Plus, "+", startLine, startCol, startByte)
	case '*':
		return l.emit(token.Star, "*", startLine, startCol, startByte)
	case ':':
		return l.emit(token.Colon, ":", startLine, startCol, startByte)
	case ';':
		return l.emit(token.Semicolon, ";", startLine, startCol, startByte)
	case '/':
		return l.emit(token.Slash, "/", startLine, startCol, startByte)
	case '=':
		return l.emit(token.Equal, "=", startLine, startCol, startByte)
	case '-':
		if l.peek() == '>' {
			l.advance()
			return l.emit(token.ArrowRight, "->", startLine, startCol, startByte)
		}
		return l.emit(token.Minus, "-", startLine, startCol, startByte)
	case '!':
		if l.peek() == '=' {
			l.advance()
			return l.emit(token.BangEqual, "!=", startLine, startCol, startByte)
		}
		return l.emit(token.Bang, "!", startLine, startCol, startByte)
	case '<':
		if l.peek() == '=' {
			l.advance()
			return l.emit(token.LessEqual, "<=", startLine, startCol, startByte)
		}
		if l.peek() == '-' {
			l.advance()
			return l.emit(token.ArrowLeft, "<-", startLine, startCol, startByte)
		}
		return l.emit(token.Less, "<", startLine, startCol, startByte)
	case '>':
		if l.peek() == '=' {
			l.advance()
			return l.emit(token.GreaterEqual, ">=", startLine, startCol, startByte)
		}
		return l.emit(token.Greater, ">", startLine, startCol, startByte)
	}

	lexeme := string(ch)
	l.sink.Raise(l.span(startLine, startCol, startByte, l.pos), diag.Lexical, fmt.Sprintf("illegal token `%s`", lexeme), "")
	return l.emit(token.ErrorToken, lexeme, startLine, startCol, startByte)
}

func (l *Lexer) number(startLine, startCol, startByte int) token.Token {
	l.trace("enter_number", "")
	for !l.atEnd() && isDigit(l.peek()) {
		l.advance()
	}
	for !l.atEnd() && l.peek() == '.' {
		if !isDigit(l.peekAt(1)) {
			l.sink.Raise(l.span(startLine, startCol, startByte, l.pos+1), diag.Lexical, "expected digit after decimal point", "")
			break
		}
		l.advance() // consume '.'
		for !l.atEnd() && isDigit(l.peek()) {
			l.advance()
		}
		break
	}
	return l.emit(token.Number, string(l.src.Raw[startByte:l.pos]), startLine, startCol, startByte)
}

func (l *Lexer) string(startLine, startCol, startByte int) token.Token {
	l.trace("enter_string", "")
	l.advance() // opening quote
	for {
		if l.atEnd() {
			l.sink.Raise(l.span(startLine, startCol, startByte, l.pos), diag.Lexical, "unterminated string", "")
			break
		}
		ch := l.peek()
		if ch == '"' {
			l.advance()
			break
		}
		if ch == '\n' {
			// Closing on newline is accepted by design (spec §4.2).
			break
		}
		l.advance()
	}
	return l.emit(token.String, string(l.src.Raw[startByte:l.pos]), startLine, startCol, startByte)
}

func (l *Lexer) identifier(startLine, startCol, startByte int) token.Token {
	l.trace("enter_identifier", "")
	for !l.atEnd() && isAlphaNum(l.peek()) {
		l.advance()
	}
	text := string(l.src.Raw[startByte:l.pos])
	kind, ok := token.Keywords[text]
	if !ok {
		kind = token.Identifier
	}
	return l.emit(kind, text, startLine, startCol, startByte)
}

func (l *Lexer) span(line, col, start, end int) token.Span {
	return token.Span{Line: line, Col: col, ByteStart: start, ByteEnd: end, File: l.src.Name}
}

func (l *Lexer) emit(kind token.Kind, lexeme string, line, col, start int) token.Token {
	return token.Token{Kind: kind, Lexeme: lexeme, Span: l.span(line, col, start, l.pos)}
}
