// Package source carries the raw bytes the pipeline reads from.
package source

// Input is a named, read-only buffer of bytes: the Lexer's only input.
// It outlives every token, AST node, and evaluation the pipeline
// produces from it, since Span values index into its Raw slice by
// byte offset rather than copying text around.
type Input struct {
	Raw  []byte
	Name string
}

// New wraps raw bytes under a logical name (typically a file path).
func New(name string, raw []byte) Input {
	return Input{Raw: raw, Name: name}
}

// Len returns the number of bytes in Raw.
func (in Input) Len() int {
	return len(in.Raw)
}

// Line returns source line lineNum (1-indexed), without its trailing
// newline, or "" if there is no such line. Used by diag to render the
// caret-underlined source line under a diagnostic.
func (in Input) Line(lineNum int) string {
	if lineNum < 1 {
		return ""
	}
	line := 1
	start := -1
	for i := 0; i < len(in.Raw); i++ {
		if line == lineNum {
			start = i
			break
		}
		if in.Raw[i] == '\n' {
			line++
		}
		if i == len(in.Raw)-1 && line < lineNum {
			return ""
		}
	}
	if line != lineNum {
		return ""
	}
	if start < 0 {
		// lineNum is the empty line after a final newline (or Raw is empty).
		start = len(in.Raw)
	}
	end := start
	for end < len(in.Raw) && in.Raw[end] != '\n' {
		end++
	}
	return string(in.Raw[start:end])
}
