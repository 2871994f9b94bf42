package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/epsilon-lang/epsilon/internal/value"
)

func TestKindString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "real", value.Real.String())
	assert.Equal(t, "string", value.StringKind.String())
	assert.Equal(t, "bool", value.Bool.String())
	assert.Equal(t, "void", value.Void.String())
}

func TestConstructorsAreImmutableByDefault(t *testing.T) {
	t.Parallel()
	assert.False(t, value.Real64(1).Mut)
	assert.False(t, value.Strv("x").Mut)
	assert.False(t, value.Boolv(true).Mut)
	assert.False(t, value.VoidV.Mut)
}

func TestCloneDoesNotAliasEdits(t *testing.T) {
	t.Parallel()
	orig := value.Real64(3)
	clone := orig.Clone().ToMutable()

	assert.True(t, clone.Mut)
	assert.False(t, orig.Mut, "mutating the clone must not affect the original binding")
}

func TestToStringFormatsEachKind(t *testing.T) {
	t.Parallel()

	s, err := value.Strv("hi").ToString()
	assert.NoError(t, err)
	assert.Equal(t, "hi", s)

	s, err = value.Boolv(true).ToString()
	assert.NoError(t, err)
	assert.Equal(t, "true", s)

	s, err = value.Boolv(false).ToString()
	assert.NoError(t, err)
	assert.Equal(t, "false", s)

	s, err = value.Real64(2.5).ToString()
	assert.NoError(t, err)
	assert.Equal(t, "2.5", s)
}

func TestToStringRejectsVoid(t *testing.T) {
	t.Parallel()
	_, err := value.VoidV.ToString()
	assert.Error(t, err)
}
