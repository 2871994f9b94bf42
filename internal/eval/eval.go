// Package eval implements Epsilon's tree-walking evaluator (spec
// §4.6, §4.7): expression evaluation and statement execution over the
// environ scope chain, reporting runtime diagnostics through
// internal/diag rather than Go errors.
package eval

import (
	"fmt"
	"io"
	"time"

	"github.com/epsilon-lang/epsilon/internal/ast"
	"github.com/epsilon-lang/epsilon/internal/config"
	"github.com/epsilon-lang/epsilon/internal/diag"
	"github.com/epsilon-lang/epsilon/internal/environ"
	"github.com/epsilon-lang/epsilon/internal/invariant"
	"github.com/epsilon-lang/epsilon/internal/suggest"
	"github.com/epsilon-lang/epsilon/internal/token"
	"github.com/epsilon-lang/epsilon/internal/value"
)

// flow is the statement-evaluation control signal spec §4.7 describes
// as "None | Return(value, span)". It propagates upward through Group
// frames until a Func invocation (or the driver, for a top-level
// return) catches it.
type flow struct {
	returning bool
	value     value.Value
	origin    token.Span
}

var none = flow{}

// Evaluator walks a parsed tree against a root environ.Env, printing
// `output` statements to Out and reporting runtime diagnostics to
// Sink.
type Evaluator struct {
	Out    io.Writer
	Sink   *diag.Sink
	cfg    config.Config
	root   *environ.Env
	events []config.Event
}

// New creates an Evaluator writing output to out and diagnostics to
// sink.
func New(out io.Writer, sink *diag.Sink, cfg config.Config) *Evaluator {
	invariant.NotNil(out, "out")
	invariant.NotNil(sink, "sink")
	return &Evaluator{Out: out, Sink: sink, cfg: cfg, root: environ.New()}
}

// DebugEvents returns recorded trace events when cfg.Debug > DebugOff.
func (e *Evaluator) DebugEvents() []config.Event { return e.events }

func (e *Evaluator) trace(name, context string) {
	if e.cfg.Debug > config.DebugOff {
		e.events = append(e.events, config.Event{Timestamp: time.Now(), Stage: "evaluator", Name: name, Context: context})
	}
}

// Run evaluates program's top-level statements in order, stopping
// after the current statement if the sink's had-error flag becomes
// set (spec §4.7 "Stopping"). A top-level Return statement is a
// runtime error: there is no enclosing Func to catch it.
func (e *Evaluator) Run(program *ast.Group) {
	for _, stmt := range program.Stmts {
		f := e.execStmt(stmt, e.root)
		if f.returning {
			e.Sink.Raise(f.origin, diag.Runtime, "cannot return outside of the function", "")
		}
		if e.Sink.WasError() {
			return
		}
	}
}

// --- statements ---

func (e *Evaluator) execStmt(stmt ast.Stmt, env *environ.Env) flow {
	e.trace("enter_stmt", fmt.Sprintf("%T", stmt))
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		e.evalExpr(s.X, env)
		return none
	case *ast.Group:
		return e.execGroup(s, env)
	case *ast.If:
		return e.execIf(s, env)
	case *ast.Output:
		e.execOutput(s, env)
		return none
	case *ast.Return:
		return e.execReturn(s, env)
	case *ast.Func:
		e.execFuncDecl(s, env)
		return none
	case *ast.Const:
		e.execVarDecl(&s.VarDecl, env, false)
		return none
	case *ast.Define:
		e.execVarDecl(&s.VarDecl, env, true)
		return none
	case *ast.Assign:
		e.execAssign(s, env)
		return none
	default:
		invariant.Invariant(false, "unhandled statement type %T", stmt)
		return none
	}
}

func (e *Evaluator) execGroup(g *ast.Group, env *environ.Env) flow {
	child := env.Child(environ.Block)
	for _, stmt := range g.Stmts {
		f := e.execStmt(stmt, child)
		if f.returning {
			return f
		}
		if e.Sink.WasError() {
			return none
		}
	}
	return none
}

func (e *Evaluator) execIf(s *ast.If, env *environ.Env) flow {
	cond := e.evalExpr(s.Cond, env)
	if cond.Kind != value.Bool {
		e.Sink.Raise(s.Cond.Span(), diag.Runtime, fmt.Sprintf("invalid condition type '%s'", cond.Kind), "")
		return none
	}
	if cond.Bool {
		return e.execStmt(s.Body, env)
	}
	if s.Else != nil {
		return e.execStmt(s.Else, env)
	}
	return none
}

func (e *Evaluator) execOutput(s *ast.Output, env *environ.Env) {
	v := e.evalExpr(s.Expr, env)
	switch v.Kind {
	case value.StringKind:
		fmt.Fprintln(e.Out, v.Str)
	case value.Real:
		fmt.Fprintf(e.Out, "%f\n", v.Num)
	case value.Bool:
		fmt.Fprintln(e.Out, boolStr(v.Bool))
	case value.Void:
		e.Sink.Raise(s.Expr.Span(), diag.Runtime, "cannot output value type of 'void'", "")
	}
}

func (e *Evaluator) execReturn(s *ast.Return, env *environ.Env) flow {
	if s.Expr == nil {
		return flow{returning: true, value: value.VoidV, origin: s.Sp}
	}
	v := e.evalExpr(s.Expr, env)
	return flow{returning: true, value: v, origin: s.Sp}
}

func (e *Evaluator) execFuncDecl(s *ast.Func, env *environ.Env) {
	if env.AnyBound(s.Name.Lexeme) {
		e.Sink.Raise(s.Name.Span, diag.Runtime, fmt.Sprintf("function '%s' is already defined", s.Name.Lexeme), "")
		return
	}
	// Bind the node itself, not a closure: the body resolves free
	// names through env by pointer at call time (spec §4.7, §9).
	env.DefineFunc(s.Name.Lexeme, s)
}

func (e *Evaluator) execVarDecl(decl *ast.VarDecl, env *environ.Env, mut bool) {
	if _, ok := env.GetLocal(decl.Name.Lexeme); ok {
		kindWord := "const"
		if mut {
			kindWord = "variable"
		}
		e.Sink.Raise(decl.Name.Span, diag.Runtime, fmt.Sprintf("%s '%s' is already defined", kindWord, decl.Name.Lexeme), "")
		return
	}
	v := e.evalExpr(decl.Expr, env)
	if v.Kind != decl.DeclaredType {
		e.Sink.Raise(decl.Expr.Span(), diag.Runtime,
			fmt.Sprintf("cannot assign '%s' to variable type '%s'", v.Kind, decl.DeclaredType), "")
		return
	}
	v.Mut = mut
	env.Define(decl.Name.Lexeme, v)
}

func (e *Evaluator) execAssign(s *ast.Assign, env *environ.Env) {
	old, ok := env.Get(s.Name.Lexeme)
	if !ok {
		e.Sink.Raise(s.Name.Span, diag.Runtime, fmt.Sprintf("variable '%s' is not defined", s.Name.Lexeme),
			suggest.Closest(s.Name.Lexeme, env.Names()))
		return
	}
	newVal := e.evalExpr(s.Expr, env)
	if newVal.Kind != old.Kind {
		e.Sink.Raise(s.Expr.Span(), diag.Runtime,
			fmt.Sprintf("cannot assign '%s' to variable type '%s'", newVal.Kind, old.Kind), "")
		return
	}
	if !old.Mut {
		e.Sink.Raise(s.Name.Span, diag.Runtime, fmt.Sprintf("cannot assign value to const '%s'", s.Name.Lexeme), "")
		return
	}
	newVal.Mut = old.Mut
	env.Set(s.Name.Lexeme, newVal)
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// --- expressions ---

func (e *Evaluator) evalExpr(expr ast.Expr, env *environ.Env) value.Value {
	switch x := expr.(type) {
	case *ast.LiteralExpr:
		return x.Value.Clone()
	case *ast.ParenExpr:
		return e.evalExpr(x.Inner, env)
	case *ast.IdentExpr:
		return e.evalIdent(x, env)
	case *ast.UnaryExpr:
		return e.evalUnary(x, env)
	case *ast.BinaryExpr:
		return e.evalBinary(x, env)
	case *ast.TernaryExpr:
		return e.evalTernary(x, env)
	case *ast.CallExpr:
		return e.evalCall(x, env)
	default:
		invariant.Invariant(false, "unhandled expression type %T", expr)
		return value.VoidV
	}
}

func (e *Evaluator) evalIdent(x *ast.IdentExpr, env *environ.Env) value.Value {
	v, ok := env.Get(x.Name.Lexeme)
	if !ok {
		e.Sink.Raise(x.Sp, diag.Runtime, fmt.Sprintf("variable '%s' is not defined", x.Name.Lexeme),
			suggest.Closest(x.Name.Lexeme, env.Names()))
		return value.VoidV
	}
	return v.Clone()
}

func (e *Evaluator) evalUnary(x *ast.UnaryExpr, env *environ.Env) value.Value {
	right := e.evalExpr(x.Right, env)
	switch x.Op {
	case token.Minus:
		if right.Kind == value.Void {
			return value.VoidV
		}
		if right.Kind != value.Real {
			e.Sink.Raise(x.Sp, diag.Runtime, fmt.Sprintf("cannot apply - to expression type %s", right.Kind), "")
			return value.VoidV
		}
		return value.Real64(-right.Num).ToMutable()
	case token.Str:
		if right.Kind == value.Void {
			e.Sink.Raise(x.Sp, diag.Runtime, "cannot apply str to expression type void", "")
			return value.VoidV
		}
		s, err := right.ToString()
		if err != nil {
			e.Sink.Raise(x.Sp, diag.Runtime, err.Error(), "")
			return value.VoidV
		}
		return value.Strv(s).ToMutable()
	default:
		invariant.Invariant(false, "unhandled unary operator %s", x.Op)
		return value.VoidV
	}
}

func (e *Evaluator) evalTernary(x *ast.TernaryExpr, env *environ.Env) value.Value {
	cond := e.evalExpr(x.Cond, env)
	if cond.Kind != value.Bool {
		// Reserved for `if`; ternary silently yields VOID (spec §4.6, §9).
		return value.VoidV
	}
	if cond.Bool {
		return e.evalExpr(x.Left, env)
	}
	return e.evalExpr(x.Right, env)
}

func (e *Evaluator) evalBinary(x *ast.BinaryExpr, env *environ.Env) value.Value {
	lhs := e.evalExpr(x.Left, env)
	rhs := e.evalExpr(x.Right, env)

	if lhs.Kind == value.Void || rhs.Kind == value.Void {
		return value.VoidV
	}

	if lhs.Kind == value.Real && rhs.Kind == value.Real {
		return evalRealBinary(x.Op, lhs.Num, rhs.Num).ToMutable()
	}
	if lhs.Kind == value.StringKind && rhs.Kind == value.StringKind {
		if x.Op == token.Plus {
			return value.Strv(lhs.Str + rhs.Str).ToMutable()
		}
		e.Sink.Raise(x.Sp, diag.Runtime, fmt.Sprintf("cannot apply '%s' to arguments type 'string'", x.Op), "")
		return value.VoidV
	}
	if lhs.Kind == rhs.Kind {
		// BOOL op BOOL (no operator is actually legal here per the
		// grammar's term/factor/comparison operand set, but a
		// well-typed BOOL == BOOL equality check is still meaningful).
		if x.Op == token.Equal || x.Op == token.BangEqual {
			eq := lhs.Bool == rhs.Bool
			if x.Op == token.BangEqual {
				eq = !eq
			}
			return value.Boolv(eq).ToMutable()
		}
	}
	e.Sink.Raise(x.Sp, diag.Runtime,
		fmt.Sprintf("cannot apply binary operator to operands type '%s' and '%s'", lhs.Kind, rhs.Kind), "")
	return value.VoidV
}

func evalRealBinary(op token.Kind, l, r float64) value.Value {
	switch op {
	case token.Plus:
		return value.Real64(l + r)
	case token.Minus:
		return value.Real64(l - r)
	case token.Star:
		return value.Real64(l * r)
	case token.Slash:
		return value.Real64(l / r)
	case token.Equal:
		return value.Boolv(l == r)
	case token.BangEqual:
		return value.Boolv(l != r)
	case token.Less:
		return value.Boolv(l < r)
	case token.Greater:
		return value.Boolv(l > r)
	case token.LessEqual:
		return value.Boolv(l <= r)
	case token.GreaterEqual:
		return value.Boolv(l >= r)
	default:
		invariant.Invariant(false, "unhandled real binary operator %s", op)
		return value.VoidV
	}
}

func (e *Evaluator) evalCall(x *ast.CallExpr, env *environ.Env) value.Value {
	node, ok := env.GetFunc(x.Callee.Lexeme)
	if !ok {
		e.Sink.Raise(x.Sp, diag.Runtime, fmt.Sprintf("call undefined function '%s'", x.Callee.Lexeme),
			suggest.Closest(x.Callee.Lexeme, env.Names()))
		return value.VoidV
	}
	fn, ok := node.(*ast.Func)
	invariant.Invariant(ok, "function binding must hold an *ast.Func")

	args := make([]value.Value, len(x.Args))
	for i, a := range x.Args {
		args[i] = e.evalExpr(a, env)
	}

	if len(args) < len(fn.Params) {
		e.Sink.Raise(x.Sp, diag.Runtime, "too few arguments", "")
		return value.VoidV
	}
	if len(args) > len(fn.Params) {
		e.Sink.Raise(x.Sp, diag.Runtime, "too many arguments", "")
		return value.VoidV
	}

	callEnv := env.Child(environ.Func)
	for i, param := range fn.Params {
		callEnv.Define(param.Name.Lexeme, args[i])
	}

	f := e.execStmt(fn.Body, callEnv)
	if !f.returning {
		return value.VoidV
	}
	if f.value.Kind != fn.RetType {
		e.Sink.Raise(f.origin, diag.Runtime,
			fmt.Sprintf("cannot return '%s' from a function type '%s'", f.value.Kind, fn.RetType), "")
		return value.VoidV
	}
	return f.value.ToMutable()
}
