package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/epsilon-lang/epsilon/internal/source"
)

func TestLineReturnsRequestedLineWithoutNewline(t *testing.T) {
	t.Parallel()
	src := source.New("f.eps", []byte("let x <- 1;\noutput x;\n"))

	assert.Equal(t, "let x <- 1;", src.Line(1))
	assert.Equal(t, "output x;", src.Line(2))
}

func TestLineOnLastLineWithNoTrailingNewline(t *testing.T) {
	t.Parallel()
	src := source.New("f.eps", []byte("output 1;\noutput 2;"))

	assert.Equal(t, "output 2;", src.Line(2))
}

func TestLineOutOfRangeReturnsEmpty(t *testing.T) {
	t.Parallel()
	src := source.New("f.eps", []byte("output 1;\n"))

	assert.Equal(t, "", src.Line(0))
	assert.Equal(t, "", src.Line(99))
}

func TestLenReportsByteLength(t *testing.T) {
	t.Parallel()
	src := source.New("f.eps", []byte("abc"))
	assert.Equal(t, 3, src.Len())
}
