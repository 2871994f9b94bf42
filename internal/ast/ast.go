// Package ast defines Epsilon's expression and statement node types:
// the tree the parser builds and the evaluator walks.
package ast

import "github.com/epsilon-lang/epsilon/internal/token"

// Node is implemented by every Expr and Stmt. Every node owns a Span
// so diagnostics raised while walking the tree can always be located
// (spec §3 invariants).
type Node interface {
	Span() token.Span
}

// Expr is the sum Ternary | Binary | Unary | Primary (Literal |
// Parenthesized | Identifier | Call).
type Expr interface {
	Node
	exprNode()
}

// Stmt is the sum ExprStmt | Group | Func | Return | Const | Define |
// Assign | If | Output.
type Stmt interface {
	Node
	stmtNode()
}
