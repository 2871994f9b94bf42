package ast

import (
	"github.com/epsilon-lang/epsilon/internal/token"
	"github.com/epsilon-lang/epsilon/internal/value"
)

// TernaryExpr is `left if cond else right`: evaluates to left when
// cond is true, right otherwise (spec §4.4).
type TernaryExpr struct {
	Cond  Expr
	Left  Expr
	Right Expr
	Sp    token.Span
}

func (e *TernaryExpr) Span() token.Span { return e.Sp }
func (e *TernaryExpr) exprNode()        {}

// BinaryExpr is `left op right` for any of the equality, comparison,
// term, and factor grammar levels (spec §4.4).
type BinaryExpr struct {
	Left  Expr
	Op    token.Kind
	Right Expr
	Sp    token.Span
}

func (e *BinaryExpr) Span() token.Span { return e.Sp }
func (e *BinaryExpr) exprNode()        {}

// UnaryExpr is `-right` or `str right`.
type UnaryExpr struct {
	Op    token.Kind
	Right Expr
	Sp    token.Span
}

func (e *UnaryExpr) Span() token.Span { return e.Sp }
func (e *UnaryExpr) exprNode()        {}

// LiteralExpr wraps a parser-produced Value (NUMBER, STRING, true,
// false, or void). Literal values are always immutable (Mut=false).
type LiteralExpr struct {
	Value value.Value
	Sp    token.Span
}

func (e *LiteralExpr) Span() token.Span { return e.Sp }
func (e *LiteralExpr) exprNode()        {}

// ParenExpr is `( expression )`, kept as its own node (rather than
// collapsed away) so its Span covers the parentheses.
type ParenExpr struct {
	Inner Expr
	Sp    token.Span
}

func (e *ParenExpr) Span() token.Span { return e.Sp }
func (e *ParenExpr) exprNode()        {}

// IdentExpr is a bare identifier reference.
type IdentExpr struct {
	Name token.Token
	Sp   token.Span
}

func (e *IdentExpr) Span() token.Span { return e.Sp }
func (e *IdentExpr) exprNode()        {}

// CallExpr is `identifier '(' args? ')'`.
type CallExpr struct {
	Callee token.Token
	Args   []Expr
	Sp     token.Span
}

func (e *CallExpr) Span() token.Span { return e.Sp }
func (e *CallExpr) exprNode()        {}
