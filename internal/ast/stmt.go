package ast

import (
	"github.com/epsilon-lang/epsilon/internal/token"
	"github.com/epsilon-lang/epsilon/internal/value"
)

// ExprStmt discards the value of an expression evaluated for effect.
type ExprStmt struct {
	X  Expr
	Sp token.Span
}

func (s *ExprStmt) Span() token.Span { return s.Sp }
func (s *ExprStmt) stmtNode()        {}

// Group is `'{' statement* '}'`: the only recursive container of
// statements, and a new BLOCK scope at evaluation time.
type Group struct {
	Stmts []Stmt
	Sp    token.Span
}

func (s *Group) Span() token.Span { return s.Sp }
func (s *Group) stmtNode()        {}

// Param is a function parameter. Its declared type is parsed (the
// grammar requires `IDENT ':' type`) but discarded once parsing
// finishes: parameters carry only their identifier token at
// evaluation time (spec §3, §9 — an intentional ambiguity the source
// grammar leaves unresolved, not silently normalized here).
type Param struct {
	Name token.Token
}

// Func declares `func name(params) -> ret_type body`. Functions are
// bound as a pointer to this node; each call runs the body in a child
// of the caller's environment (scoping via the caller chain, not a
// true closure — spec §9 design notes).
type Func struct {
	Name    token.Token
	Params  []Param
	Body    Stmt
	RetType value.Kind
	Sp      token.Span
}

func (s *Func) Span() token.Span { return s.Sp }
func (s *Func) stmtNode()        {}

// Return is `return expression? ;`. Expr is nil when no expression is
// given, in which case the returned value is Void.
type Return struct {
	Expr Expr
	Sp   token.Span
}

func (s *Return) Span() token.Span { return s.Sp }
func (s *Return) stmtNode()        {}

// VarDecl is the shared shape of const/let declarations:
// `IDENT ':' type '<-' expression ';'`.
type VarDecl struct {
	Name         token.Token
	DeclaredType value.Kind
	Expr         Expr
	Sp           token.Span
}

// Const is `const IDENT : type <- expr ;` — binds with Mut=false.
type Const struct{ VarDecl }

func (s *Const) Span() token.Span { return s.VarDecl.Sp }
func (s *Const) stmtNode()        {}

// Define is `let IDENT : type <- expr ;` — binds with Mut=true.
type Define struct{ VarDecl }

func (s *Define) Span() token.Span { return s.VarDecl.Sp }
func (s *Define) stmtNode()        {}

// Assign is `IDENT '<-' expr ;`, chosen by the parser when lookahead
// is ARROW_LEFT (spec §4.4).
type Assign struct{ VarDecl }

func (s *Assign) Span() token.Span { return s.VarDecl.Sp }
func (s *Assign) stmtNode()        {}

// If is `if cond body (else elseBranch)?`.
type If struct {
	Cond Expr
	Body Stmt
	Else Stmt // nil when absent
	Sp   token.Span
}

func (s *If) Span() token.Span { return s.Sp }
func (s *If) stmtNode()        {}

// Output is `output expr ;`, the language's single built-in output
// statement.
type Output struct {
	Expr Expr
	Sp   token.Span
}

func (s *Output) Span() token.Span { return s.Sp }
func (s *Output) stmtNode()        {}
