package lexer_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epsilon-lang/epsilon/internal/config"
	"github.com/epsilon-lang/epsilon/internal/diag"
	"github.com/epsilon-lang/epsilon/internal/lexer"
	"github.com/epsilon-lang/epsilon/internal/source"
	"github.com/epsilon-lang/epsilon/internal/token"
)

func scan(t *testing.T, src string) ([]token.Token, *diag.Sink, *bytes.Buffer) {
	t.Helper()
	input := source.New("test.eps", []byte(src))
	buf := &bytes.Buffer{}
	sink := diag.NewSink(buf, input, false)
	lx := lexer.New(input, sink, config.Config{})
	return lx.Tokenize(), sink, buf
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tk := range toks {
		out[i] = tk.Kind
	}
	return out
}

func TestAlwaysEndsInEOF(t *testing.T) {
	t.Parallel()
	toks, _, _ := scan(t, "")
	require.Len(t, toks, 1)
	assert.Equal(t, token.EOF, toks[0].Kind)
}

func TestPunctuationAndOperators(t *testing.T) {
	t.Parallel()
	toks, sink, _ := scan(t, "(){},.+*:;/ = != <= >= -> <- ! < >")
	assert.False(t, sink.WasError())
	assert.Equal(t, []token.Kind{
		token.LParen, token.RParen, token.LBrace, token.RBrace, token.Comma,
		token.Dot, token.Plus, token.Star, token.Colon, token.Semicolon,
		token.Slash, token.Equal, token.BangEqual, token.LessEqual,
		token.GreaterEqual, token.ArrowRight, token.ArrowLeft, token.Bang,
		token.Less, token.Greater, token.EOF,
	}, kinds(toks))
}

func TestMinusDisambiguation(t *testing.T) {
	t.Parallel()
	toks, _, _ := scan(t, "x - 1 -> y")
	assert.Equal(t, []token.Kind{
		token.Identifier, token.Minus, token.Number, token.ArrowRight, token.Identifier, token.EOF,
	}, kinds(toks))
}

func TestLineComment(t *testing.T) {
	t.Parallel()
	toks, sink, _ := scan(t, "1 -- trailing comment\n2")
	assert.False(t, sink.WasError())
	assert.Equal(t, []token.Kind{token.Number, token.Number, token.EOF}, kinds(toks))
	assert.Equal(t, "1", toks[0].Lexeme)
	assert.Equal(t, "2", toks[1].Lexeme)
}

func TestNumberLiterals(t *testing.T) {
	t.Parallel()
	toks, sink, _ := scan(t, "42 3.14 0")
	assert.False(t, sink.WasError())
	require.Len(t, toks, 4)
	assert.Equal(t, "42", toks[0].Lexeme)
	assert.Equal(t, "3.14", toks[1].Lexeme)
	assert.Equal(t, "0", toks[2].Lexeme)
}

func TestNumberMissingDigitAfterDot(t *testing.T) {
	t.Parallel()
	toks, sink, out := scan(t, "3.")
	assert.True(t, sink.WasError())
	assert.Contains(t, out.String(), "expected digit after decimal point")
	assert.Equal(t, token.Number, toks[0].Kind)
}

func TestStringLiteral(t *testing.T) {
	t.Parallel()
	toks, sink, _ := scan(t, `"hello world"`)
	assert.False(t, sink.WasError())
	assert.Equal(t, token.String, toks[0].Kind)
	assert.Equal(t, `"hello world"`, toks[0].Lexeme)
}

func TestUnterminatedString(t *testing.T) {
	t.Parallel()
	_, sink, out := scan(t, `"unterminated`)
	assert.True(t, sink.WasError())
	assert.Contains(t, out.String(), "unterminated string")
}

func TestStringClosedByNewlineIsAccepted(t *testing.T) {
	t.Parallel()
	toks, sink, _ := scan(t, "\"no closing quote\nnext")
	assert.False(t, sink.WasError())
	assert.Equal(t, token.String, toks[0].Kind)
	assert.Equal(t, token.Identifier, toks[1].Kind)
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	t.Parallel()
	toks, _, _ := scan(t, "let const func return if else output true false void real bool and or not str myVar")
	want := []token.Kind{
		token.Let, token.Const, token.Func, token.Return, token.If, token.Else,
		token.Output, token.True, token.False, token.Void, token.Real, token.Bool,
		token.And, token.Or, token.Not, token.Str, token.Identifier, token.EOF,
	}
	assert.Equal(t, want, kinds(toks))
}

func TestStringIsNotAKeyword(t *testing.T) {
	t.Parallel()
	toks, sink, _ := scan(t, "string")
	assert.False(t, sink.WasError())
	assert.Equal(t, token.Identifier, toks[0].Kind)
}

func TestIllegalByteReportsLexicalError(t *testing.T) {
	t.Parallel()
	toks, sink, out := scan(t, "1 @ 2")
	assert.True(t, sink.WasError())
	assert.Contains(t, out.String(), "Lexical error")
	assert.Equal(t, []token.Kind{token.Number, token.ErrorToken, token.Number, token.EOF}, kinds(toks))
}

func TestSpansTrackLineAndColumn(t *testing.T) {
	t.Parallel()
	toks, _, _ := scan(t, "let\nx")
	require.Len(t, toks, 3)
	assert.Equal(t, 1, toks[0].Span.Line)
	assert.Equal(t, 1, toks[0].Span.Col)
	assert.Equal(t, 2, toks[1].Span.Line)
	assert.Equal(t, 1, toks[1].Span.Col)
}

func TestDebugEventsRecordedWhenEnabled(t *testing.T) {
	t.Parallel()
	input := source.New("test.eps", []byte("1"))
	buf := &bytes.Buffer{}
	sink := diag.NewSink(buf, input, false)
	lx := lexer.New(input, sink, config.Config{Debug: config.DebugPaths})
	lx.Tokenize()
	assert.NotEmpty(t, lx.DebugEvents())
}
