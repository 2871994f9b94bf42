// Package watch implements the --watch driver loop (spec_full §4.9):
// re-run one file's lex/parse/evaluate pipeline every time fsnotify
// reports it changed, synchronously and one run at a time.
package watch

import (
	"fmt"
	"io"

	"github.com/fsnotify/fsnotify"

	"github.com/epsilon-lang/epsilon/internal/invariant"
)

// Run watches path and invokes onChange once immediately, then again
// after every write event, until ctx-like cancellation arrives via a
// closed stop channel. It never runs two invocations of onChange
// concurrently (spec_full §5).
func Run(path string, out io.Writer, stop <-chan struct{}, onChange func(path string)) error {
	invariant.NotNil(onChange, "onChange")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("watch: add %s: %w", path, err)
	}

	onChange(path)

	for {
		select {
		case <-stop:
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Write) {
				continue
			}
			fmt.Fprintln(out, "--- re-running after change ---")
			onChange(path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(out, "watch error: %v\n", err)
		}
	}
}
