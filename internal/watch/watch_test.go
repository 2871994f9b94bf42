package watch_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epsilon-lang/epsilon/internal/watch"
)

func TestRunInvokesOnChangeImmediatelyThenOnWrite(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.eps")
	require.NoError(t, os.WriteFile(path, []byte("output 1;"), 0o644))

	var calls int
	stop := make(chan struct{})
	out := &bytes.Buffer{}

	done := make(chan error, 1)
	go func() {
		done <- watch.Run(path, out, stop, func(string) { calls++ })
	}()

	// Give the watcher a moment to register before writing.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("output 2;"), 0o644))
	time.Sleep(150 * time.Millisecond)

	close(stop)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch.Run did not return after stop was closed")
	}

	assert.GreaterOrEqual(t, calls, 2)
}
