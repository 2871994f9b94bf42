// Package parser implements Epsilon's recursive-descent parser (spec
// §4.4): one-token lookahead plus a small bounded lookahead used only
// to disambiguate a call from a bare identifier, and an assignment
// from an expression statement.
package parser

import (
	"fmt"
	"time"

	"github.com/epsilon-lang/epsilon/internal/ast"
	"github.com/epsilon-lang/epsilon/internal/config"
	"github.com/epsilon-lang/epsilon/internal/diag"
	"github.com/epsilon-lang/epsilon/internal/invariant"
	"github.com/epsilon-lang/epsilon/internal/suggest"
	"github.com/epsilon-lang/epsilon/internal/token"
	"github.com/epsilon-lang/epsilon/internal/value"
)

// syncDecl lists identifiers spec §4.4's panic-mode recovery treats as
// the start of a fresh statement.
var syncDecl = map[token.Kind]bool{
	token.Output: true,
	token.If:     true,
	token.Let:    true,
	token.Const:  true,
	token.Func:   true,
}

// declaredTypeKeywords feeds the "did you mean" suggestion when
// typeName sees something other than real/bool/void (spec §9: string
// is deliberately not a declarable type).
var declaredTypeKeywords = []string{"real", "bool", "void"}

type parser struct {
	toks   []token.Token
	pos    int
	sink   *diag.Sink
	cfg    config.Config
	events []config.Event
}

func (p *parser) trace(name, context string) {
	if p.cfg.Debug > config.DebugOff {
		p.events = append(p.events, config.Event{Timestamp: time.Now(), Stage: "parser", Name: name, Context: context})
	}
}

// Parse parses the full token stream produced by the lexer (always
// ending in T_EOF) into a top-level Group of statements. Parsing never
// panics on malformed input: syntax errors are reported to sink and
// parsing resumes at the next synchronization point, so a single pass
// can surface every syntax error in the file (spec §7).
func Parse(toks []token.Token, sink *diag.Sink, cfg config.Config) (*ast.Group, []config.Event) {
	invariant.NotNil(sink, "sink")
	invariant.Precondition(len(toks) >= 1 && toks[len(toks)-1].Kind == token.EOF, "token stream must end in EOF")

	p := &parser{toks: toks, sink: sink, cfg: cfg}

	var stmts []ast.Stmt
	for !p.atEnd() {
		p.trace("enter_statement", p.current().Kind.String())
		stmts = append(stmts, p.statement())
	}

	var sp token.Span
	if len(toks) > 0 {
		sp = token.Merge(toks[0].Span, toks[len(toks)-1].Span)
	}
	return &ast.Group{Stmts: stmts, Sp: sp}, p.events
}

// --- token stream helpers ---

func (p *parser) current() token.Token { return p.toks[p.pos] }

func (p *parser) atEnd() bool { return p.current().Kind == token.EOF }

func (p *parser) checkKind(k token.Kind) bool { return p.current().Kind == k }

func (p *parser) advance() token.Token {
	tok := p.current()
	if !p.atEnd() {
		p.pos++
	}
	return tok
}

// peekAt looks ahead n tokens from the current position (n=0 is
// current), clamped to the final EOF token.
func (p *parser) peekAt(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[idx]
}

func (p *parser) matchKind(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.checkKind(k) {
			return true
		}
	}
	return false
}

// expect consumes a token of kind k, or emits a "expected `<X>`
// instead of `<Y>`" syntax diagnostic, runs synchronize, and returns
// the offending token (which synchronize may have skipped past)
// (spec §4.4).
func (p *parser) expect(k token.Kind, context string) token.Token {
	if p.checkKind(k) {
		return p.advance()
	}
	got := p.current()
	p.sink.Raise(got.Span, diag.Syntax,
		fmt.Sprintf("expected `%s` instead of `%s`", k, got.Kind), "")
	p.synchronize()
	return got
}

// synchronize implements panic-mode recovery: advance until the
// previous token is `;` or the next token starts a fresh statement,
// or EOF is reached (spec §4.4).
func (p *parser) synchronize() {
	for !p.atEnd() {
		if p.pos > 0 && p.toks[p.pos-1].Kind == token.Semicolon {
			return
		}
		if syncDecl[p.current().Kind] {
			return
		}
		p.advance()
	}
}

// --- statements ---

func (p *parser) statement() ast.Stmt {
	switch {
	case p.checkKind(token.LBrace):
		return p.group()
	case p.checkKind(token.Output):
		return p.outputStmt()
	case p.checkKind(token.If):
		return p.ifStmt()
	case p.checkKind(token.Func):
		return p.funcStmt()
	case p.checkKind(token.Return):
		return p.returnStmt()
	case p.checkKind(token.Const):
		return p.varDecl(token.Const)
	case p.checkKind(token.Let):
		return p.varDecl(token.Let)
	case p.checkKind(token.Identifier) && p.peekAt(1).Kind == token.ArrowLeft:
		return p.assignStmt()
	default:
		return p.exprStmt()
	}
}

func (p *parser) group() *ast.Group {
	open := p.expect(token.LBrace, "block")
	var stmts []ast.Stmt
	for !p.checkKind(token.RBrace) && !p.atEnd() {
		stmts = append(stmts, p.statement())
	}
	closeTok := p.expect(token.RBrace, "block")
	return &ast.Group{Stmts: stmts, Sp: token.Merge(open.Span, closeTok.Span)}
}

func (p *parser) outputStmt() *ast.Output {
	kw := p.advance() // 'output'
	expr := p.expression()
	semi := p.expect(token.Semicolon, "output statement")
	return &ast.Output{Expr: expr, Sp: token.Merge(kw.Span, semi.Span)}
}

func (p *parser) ifStmt() *ast.If {
	kw := p.advance() // 'if'
	cond := p.expression()
	body := p.statement()
	var elseBranch ast.Stmt
	sp := token.Merge(kw.Span, body.Span())
	if p.checkKind(token.Else) {
		p.advance()
		elseBranch = p.statement()
		sp = token.Merge(sp, elseBranch.Span())
	}
	return &ast.If{Cond: cond, Body: body, Else: elseBranch, Sp: sp}
}

func (p *parser) typeName() value.Kind {
	tok := p.current()
	switch tok.Kind {
	case token.Real:
		p.advance()
		return value.Real
	case token.Bool:
		p.advance()
		return value.Bool
	case token.Void:
		p.advance()
		return value.Void
	default:
		p.sink.Raise(tok.Span, diag.Syntax,
			fmt.Sprintf("expected `real`, `bool`, or `void` instead of `%s`", tok.Kind),
			suggest.Closest(tok.Lexeme, declaredTypeKeywords))
		return value.Void
	}
}

func (p *parser) funcStmt() *ast.Func {
	kw := p.advance() // 'func'
	name := p.expect(token.Identifier, "function declaration")
	p.expect(token.LParen, "function parameters")

	var params []ast.Param
	if !p.checkKind(token.RParen) {
		for {
			pname := p.expect(token.Identifier, "parameter")
			p.expect(token.Colon, "parameter")
			p.typeName() // declared type parsed, discarded (spec §9)
			params = append(params, ast.Param{Name: pname})
			if !p.checkKind(token.Comma) {
				break
			}
			p.advance()
		}
	}
	p.expect(token.RParen, "function parameters")
	p.expect(token.ArrowRight, "function declaration")
	retType := p.typeName()
	body := p.statement()

	return &ast.Func{Name: name, Params: params, Body: body, RetType: retType, Sp: token.Merge(kw.Span, name.Span)}
}

func (p *parser) returnStmt() *ast.Return {
	kw := p.advance() // 'return'
	var expr ast.Expr
	sp := kw.Span
	if !p.checkKind(token.Semicolon) {
		expr = p.expression()
		sp = token.Merge(sp, expr.Span())
	}
	semi := p.expect(token.Semicolon, "return statement")
	return &ast.Return{Expr: expr, Sp: token.Merge(sp, semi.Span)}
}

func (p *parser) varDecl(kind token.Kind) ast.Stmt {
	kw := p.advance() // 'const' or 'let'
	name := p.expect(token.Identifier, "variable declaration")
	p.expect(token.Colon, "variable declaration")
	declaredType := p.typeName()
	p.expect(token.ArrowLeft, "variable declaration")
	expr := p.expression()
	semi := p.expect(token.Semicolon, "variable declaration")

	decl := ast.VarDecl{Name: name, DeclaredType: declaredType, Expr: expr, Sp: token.Merge(kw.Span, semi.Span)}
	if kind == token.Const {
		return &ast.Const{VarDecl: decl}
	}
	return &ast.Define{VarDecl: decl}
}

func (p *parser) assignStmt() *ast.Assign {
	name := p.advance() // IDENTIFIER
	p.advance()         // ARROW_LEFT
	expr := p.expression()
	semi := p.expect(token.Semicolon, "assignment")
	return &ast.Assign{VarDecl: ast.VarDecl{Name: name, Expr: expr, Sp: token.Merge(name.Span, semi.Span)}}
}

func (p *parser) exprStmt() *ast.ExprStmt {
	startTok := p.current()
	expr := p.expression()
	semi := p.expect(token.Semicolon, "expression statement")
	return &ast.ExprStmt{X: expr, Sp: token.Merge(startTok.Span, semi.Span)}
}

// --- expressions ---

func (p *parser) expression() ast.Expr { return p.ternary() }

func (p *parser) ternary() ast.Expr {
	left := p.equality()
	if p.checkKind(token.If) {
		p.advance()
		cond := p.equality()
		p.expect(token.Else, "ternary expression")
		right := p.ternary() // right-associative through else
		return &ast.TernaryExpr{Cond: cond, Left: left, Right: right, Sp: spanOf(left, right)}
	}
	return left
}

func (p *parser) equality() ast.Expr {
	left := p.comparison()
	for p.matchKind(token.BangEqual, token.Equal) {
		op := p.advance()
		right := p.comparison()
		left = &ast.BinaryExpr{Left: left, Op: op.Kind, Right: right, Sp: spanOf(left, right)}
	}
	return left
}

func (p *parser) comparison() ast.Expr {
	left := p.term()
	for p.matchKind(token.Equal, token.Less, token.Greater, token.LessEqual, token.GreaterEqual) {
		op := p.advance()
		right := p.term()
		left = &ast.BinaryExpr{Left: left, Op: op.Kind, Right: right, Sp: spanOf(left, right)}
	}
	return left
}

func (p *parser) term() ast.Expr {
	left := p.factor()
	for p.matchKind(token.Plus, token.Minus) {
		op := p.advance()
		right := p.factor()
		left = &ast.BinaryExpr{Left: left, Op: op.Kind, Right: right, Sp: spanOf(left, right)}
	}
	return left
}

func (p *parser) factor() ast.Expr {
	left := p.unary()
	for p.matchKind(token.Star, token.Slash) {
		op := p.advance()
		right := p.unary()
		left = &ast.BinaryExpr{Left: left, Op: op.Kind, Right: right, Sp: spanOf(left, right)}
	}
	return left
}

func (p *parser) unary() ast.Expr {
	if p.matchKind(token.Minus, token.Str) {
		op := p.advance()
		right := p.primary()
		return &ast.UnaryExpr{Op: op.Kind, Right: right, Sp: token.Merge(op.Span, right.Span())}
	}
	return p.primary()
}

func (p *parser) primary() ast.Expr {
	tok := p.current()
	switch tok.Kind {
	case token.Number:
		p.advance()
		return &ast.LiteralExpr{Value: parseNumberLiteral(tok.Lexeme), Sp: tok.Span}
	case token.String:
		p.advance()
		return &ast.LiteralExpr{Value: value.Strv(unquote(tok.Lexeme)), Sp: tok.Span}
	case token.Void:
		p.advance()
		return &ast.LiteralExpr{Value: value.VoidV, Sp: tok.Span}
	case token.True:
		p.advance()
		return &ast.LiteralExpr{Value: value.Boolv(true), Sp: tok.Span}
	case token.False:
		p.advance()
		return &ast.LiteralExpr{Value: value.Boolv(false), Sp: tok.Span}
	case token.Identifier:
		p.advance()
		if p.checkKind(token.LParen) {
			return p.call(tok)
		}
		return &ast.IdentExpr{Name: tok, Sp: tok.Span}
	case token.LParen:
		p.advance()
		inner := p.expression()
		closeTok := p.expect(token.RParen, "parenthesized expression")
		return &ast.ParenExpr{Inner: inner, Sp: token.Merge(tok.Span, closeTok.Span)}
	default:
		p.sink.Raise(tok.Span, diag.Syntax, fmt.Sprintf("unexpected token `%s`", tok.Kind), "")
		p.advance()
		return &ast.LiteralExpr{Value: value.VoidV, Sp: tok.Span}
	}
}

func (p *parser) call(callee token.Token) *ast.CallExpr {
	p.advance() // '('
	var args []ast.Expr
	if !p.checkKind(token.RParen) {
		args = append(args, p.expression())
		for p.checkKind(token.Comma) {
			p.advance()
			args = append(args, p.expression())
		}
	}
	closeTok := p.expect(token.RParen, "call arguments")
	return &ast.CallExpr{Callee: callee, Args: args, Sp: token.Merge(callee.Span, closeTok.Span)}
}

func spanOf(left, right ast.Expr) token.Span {
	return token.Merge(left.Span(), right.Span())
}
