package eval_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epsilon-lang/epsilon/internal/config"
	"github.com/epsilon-lang/epsilon/internal/diag"
	"github.com/epsilon-lang/epsilon/internal/eval"
	"github.com/epsilon-lang/epsilon/internal/lexer"
	"github.com/epsilon-lang/epsilon/internal/parser"
	"github.com/epsilon-lang/epsilon/internal/source"
)

func run(t *testing.T, src string) (string, *diag.Sink, string) {
	t.Helper()
	input := source.New("test.eps", []byte(src))
	diagBuf := &bytes.Buffer{}
	sink := diag.NewSink(diagBuf, input, false)
	toks := lexer.New(input, sink, config.Config{}).Tokenize()
	group, _ := parser.Parse(toks, sink, config.Config{})

	outBuf := &bytes.Buffer{}
	ev := eval.New(outBuf, sink, config.Config{})
	ev.Run(group)
	return outBuf.String(), sink, diagBuf.String()
}

func TestArithmeticPrecedence(t *testing.T) {
	t.Parallel()
	out, sink, _ := run(t, "output 1 + 2 * 3;")
	require.False(t, sink.WasError())
	assert.Equal(t, "7.000000\n", out)
}

func TestLetAndReassign(t *testing.T) {
	t.Parallel()
	out, sink, _ := run(t, "let x: real <- 10; x <- x - 4; output x;")
	require.False(t, sink.WasError())
	assert.Equal(t, "6.000000\n", out)
}

func TestFunctionCallSquare(t *testing.T) {
	t.Parallel()
	out, sink, _ := run(t, "func square(n: real) -> real { return n * n; } output square(4);")
	require.False(t, sink.WasError())
	assert.Equal(t, "16.000000\n", out)
}

func TestStringConcatenation(t *testing.T) {
	t.Parallel()
	out, sink, _ := run(t, `output "foo" + "bar";`)
	require.False(t, sink.WasError())
	assert.Equal(t, "foobar\n", out)
}

func TestConstReassignIsRuntimeError(t *testing.T) {
	t.Parallel()
	_, sink, diagOut := run(t, "const pi: real <- 3; pi <- 0;")
	assert.True(t, sink.WasError())
	assert.Contains(t, diagOut, "cannot assign value to const 'pi'")
}

func TestTernaryYieldsVoidOnNonBoolCondition(t *testing.T) {
	t.Parallel()
	_, sink, diagOut := run(t, "output 1 if 2 else 3;")
	assert.True(t, sink.WasError())
	assert.Contains(t, diagOut, "cannot output value type of 'void'")
}

func TestIfRaisesOnNonBoolCondition(t *testing.T) {
	t.Parallel()
	_, sink, diagOut := run(t, "if 1 { output 1; }")
	assert.True(t, sink.WasError())
	assert.Contains(t, diagOut, "invalid condition type 'real'")
}

func TestTernarySelectsBranch(t *testing.T) {
	t.Parallel()
	out, sink, _ := run(t, "output 1 if true else 2;")
	require.False(t, sink.WasError())
	assert.Equal(t, "1.000000\n", out)
}

func TestVoidAbsorbsBinaryError(t *testing.T) {
	t.Parallel()
	out, sink, _ := run(t, "output 1 + undefined_name;")
	assert.True(t, sink.WasError())
	assert.Equal(t, "", out)
}

func TestUndefinedVariableSuggestsClosest(t *testing.T) {
	t.Parallel()
	_, sink, diagOut := run(t, "let count: real <- 1; output coutn;")
	assert.True(t, sink.WasError())
	assert.Contains(t, diagOut, "variable 'coutn' is not defined")
	assert.Contains(t, diagOut, "did you mean 'count'?")
}

func TestCallUndefinedFunction(t *testing.T) {
	t.Parallel()
	_, sink, diagOut := run(t, "output missing();")
	assert.True(t, sink.WasError())
	assert.Contains(t, diagOut, "call undefined function 'missing'")
}

func TestTooFewArguments(t *testing.T) {
	t.Parallel()
	_, sink, diagOut := run(t, "func add(a: real, b: real) -> real { return a + b; } output add(1);")
	assert.True(t, sink.WasError())
	assert.Contains(t, diagOut, "too few arguments")
}

func TestTooManyArguments(t *testing.T) {
	t.Parallel()
	_, sink, diagOut := run(t, "func add(a: real, b: real) -> real { return a + b; } output add(1, 2, 3);")
	assert.True(t, sink.WasError())
	assert.Contains(t, diagOut, "too many arguments")
}

func TestReturnTypeMismatch(t *testing.T) {
	t.Parallel()
	_, sink, diagOut := run(t, `func f() -> real { return true; } output f();`)
	assert.True(t, sink.WasError())
	assert.Contains(t, diagOut, "cannot return 'bool' from a function type 'real'")
}

func TestReturnOutsideFunction(t *testing.T) {
	t.Parallel()
	_, sink, diagOut := run(t, "return 1;")
	assert.True(t, sink.WasError())
	assert.Contains(t, diagOut, "cannot return outside of the function")
}

func TestStopsAfterFirstRuntimeError(t *testing.T) {
	t.Parallel()
	out, sink, _ := run(t, "output undefined_name; output 1;")
	assert.True(t, sink.WasError())
	assert.Equal(t, "", out)
}

func TestStrUnaryConvertsReal(t *testing.T) {
	t.Parallel()
	out, sink, _ := run(t, "output str 3;")
	require.False(t, sink.WasError())
	assert.Equal(t, "3\n", out)
}

func TestNegationOnNonRealRaises(t *testing.T) {
	t.Parallel()
	_, sink, diagOut := run(t, "output -true;")
	assert.True(t, sink.WasError())
	assert.Contains(t, diagOut, "cannot apply - to expression type bool")
}

func TestIdentifierEvaluationClones(t *testing.T) {
	t.Parallel()
	out, sink, _ := run(t, "let x: real <- 1; let y: real <- x; x <- 2; output y;")
	require.False(t, sink.WasError())
	assert.Equal(t, "1.000000\n", out)
}

func TestFunctionRedeclarationIsRuntimeError(t *testing.T) {
	t.Parallel()
	_, sink, diagOut := run(t, "func f() -> void {} func f() -> void {}")
	assert.True(t, sink.WasError())
	assert.Contains(t, diagOut, "function 'f' is already defined")
}
