package dump_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epsilon-lang/epsilon/internal/dump"
	"github.com/epsilon-lang/epsilon/internal/source"
)

func TestFingerprintIsDeterministic(t *testing.T) {
	t.Parallel()
	a := source.New("p.eps", []byte("output 1;"))
	b := source.New("p.eps", []byte("output 1;"))
	assert.Equal(t, dump.Fingerprint(a), dump.Fingerprint(b))
}

func TestFingerprintChangesWithOneByte(t *testing.T) {
	t.Parallel()
	a := source.New("p.eps", []byte("output 1;"))
	b := source.New("p.eps", []byte("output 2;"))
	assert.NotEqual(t, dump.Fingerprint(a), dump.Fingerprint(b))
}

func TestFingerprintChangesWithName(t *testing.T) {
	t.Parallel()
	a := source.New("a.eps", []byte("output 1;"))
	b := source.New("b.eps", []byte("output 1;"))
	assert.NotEqual(t, dump.Fingerprint(a), dump.Fingerprint(b))
}

func TestEncodeProducesDeterministicBytes(t *testing.T) {
	t.Parallel()
	src := source.New("p.eps", []byte("output 1;"))
	trace := dump.Build(src, nil, nil, nil)

	a, err := dump.Encode(trace)
	require.NoError(t, err)
	b, err := dump.Encode(trace)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
