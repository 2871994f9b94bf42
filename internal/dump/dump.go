// Package dump produces an inspectable debug artifact for one pipeline
// run: a short content-addressed fingerprint of the source (spec_full
// §4.8) plus a CBOR-encoded trace of its tokens, top-level statement
// count, and diagnostics, written under the driver's --dump flag.
package dump

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2s"

	"github.com/epsilon-lang/epsilon/internal/ast"
	"github.com/epsilon-lang/epsilon/internal/diag"
	"github.com/epsilon-lang/epsilon/internal/invariant"
	"github.com/epsilon-lang/epsilon/internal/source"
	"github.com/epsilon-lang/epsilon/internal/token"
)

// fingerprintKey is fixed rather than derived from a run-specific seed:
// a dump's purpose is "did this exact source change between two runs,"
// not secrecy, so there is no analogue to the teacher's per-plan key
// material (core/sdk/secret.IDFactory's ModePlan/ModeRun split).
var fingerprintKey = [32]byte{'e', 'p', 's', 'i', 'l', 'o', 'n', '-', 'd', 'u', 'm', 'p'}

// Fingerprint returns a short, deterministic id for src: identical
// bytes always produce the identical fingerprint, and any single
// changed byte changes it (spec_full §8 property 6).
func Fingerprint(src source.Input) string {
	h, err := blake2s.New128(fingerprintKey[:])
	invariant.ExpectNoError(err, "blake2s.New128 with a valid 32-byte key must not fail")
	h.Write([]byte(src.Name))
	h.Write([]byte{0})
	h.Write(src.Raw)
	digest := h.Sum(nil)
	return fmt.Sprintf("eps:%x", digest[:8])
}

// Trace is the CBOR-encoded record written by --dump: the token
// stream, the top-level statement count (a cheap structural summary —
// the full AST is not CBOR-tagged, so it is not serialized node by
// node), and every diagnostic raised during the run.
type Trace struct {
	Fingerprint string            `cbor:"fingerprint"`
	SourceName  string            `cbor:"source_name"`
	Tokens      []TraceToken      `cbor:"tokens"`
	StmtCount   int               `cbor:"stmt_count"`
	Diagnostics []TraceDiagnostic `cbor:"diagnostics"`
}

// TraceToken is a CBOR-friendly projection of token.Token.
type TraceToken struct {
	Kind   string `cbor:"kind"`
	Lexeme string `cbor:"lexeme"`
	Line   int    `cbor:"line"`
	Col    int    `cbor:"col"`
}

// TraceDiagnostic is a CBOR-friendly projection of diag.Diagnostic.
type TraceDiagnostic struct {
	Category string `cbor:"category"`
	Message  string `cbor:"message"`
	Line     int    `cbor:"line"`
	Col      int    `cbor:"col"`
}

// Build assembles a Trace from one pipeline run's intermediate state.
func Build(src source.Input, toks []token.Token, program *ast.Group, diags []diag.Diagnostic) Trace {
	t := Trace{
		Fingerprint: Fingerprint(src),
		SourceName:  src.Name,
		Tokens:      make([]TraceToken, len(toks)),
		Diagnostics: make([]TraceDiagnostic, len(diags)),
	}
	for i, tok := range toks {
		t.Tokens[i] = TraceToken{Kind: tok.Kind.String(), Lexeme: tok.Lexeme, Line: tok.Span.Line, Col: tok.Span.Col}
	}
	if program != nil {
		t.StmtCount = len(program.Stmts)
	}
	for i, d := range diags {
		t.Diagnostics[i] = TraceDiagnostic{Category: string(d.Category), Message: d.Message, Line: d.Span.Line, Col: d.Span.Col}
	}
	return t
}

// Encode renders t as deterministic CBOR, grounded on the teacher's
// cbor.CanonicalEncOptions() usage (core/planfmt/canonical.go): the
// same Trace always encodes to the same bytes, matching Fingerprint's
// own determinism property.
func Encode(t Trace) ([]byte, error) {
	mode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("cbor encoder: %w", err)
	}
	data, err := mode.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("cbor encode trace: %w", err)
	}
	return data, nil
}
