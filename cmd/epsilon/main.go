package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/epsilon-lang/epsilon/internal/ast"
	"github.com/epsilon-lang/epsilon/internal/config"
	"github.com/epsilon-lang/epsilon/internal/diag"
	"github.com/epsilon-lang/epsilon/internal/dump"
	"github.com/epsilon-lang/epsilon/internal/eval"
	"github.com/epsilon-lang/epsilon/internal/lexer"
	"github.com/epsilon-lang/epsilon/internal/parser"
	"github.com/epsilon-lang/epsilon/internal/source"
	"github.com/epsilon-lang/epsilon/internal/token"
	"github.com/epsilon-lang/epsilon/internal/watch"
)

func main() {
	var (
		debugFlag          bool
		timingFlag         bool
		watchFlag          bool
		noColorFlag        bool
		dumpPath           string
		diagnosticsJSONOut bool
	)

	rootCmd := &cobra.Command{
		Use:           "epsilon <input-file>",
		Short:         "Run an Epsilon program",
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(os.Stderr, "Fatal: no input file provided")
				os.Exit(1)
			}

			cfg := config.Config{}
			if debugFlag {
				cfg.Debug = config.DebugDetailed
			}
			if timingFlag {
				cfg.Telemetry = config.TelemetryTiming
			}

			path := args[0]

			runOnce := func(path string) {
				runFile(path, cfg, !noColorFlag, timingFlag, dumpPath, diagnosticsJSONOut)
			}

			if watchFlag {
				stop := make(chan struct{})
				return watch.Run(path, os.Stdout, stop, runOnce)
			}
			runOnce(path)
			return nil
		},
	}

	rootCmd.Flags().BoolVar(&debugFlag, "debug", false, "enable verbose lexer/parser/evaluator trace output")
	rootCmd.Flags().BoolVar(&timingFlag, "timing", false, "print an elapsed-time line after the run")
	rootCmd.Flags().BoolVar(&watchFlag, "watch", false, "re-run the program every time the input file changes")
	rootCmd.Flags().BoolVar(&noColorFlag, "no-color", false, "disable ANSI color in diagnostic output")
	rootCmd.Flags().StringVar(&dumpPath, "dump", "", "write a CBOR trace of this run's tokens/statement count/diagnostics to path")
	rootCmd.Flags().BoolVar(&diagnosticsJSONOut, "diagnostics-json", false, "also print diagnostics as a JSON document on stdout")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: %s\n", err)
		os.Exit(1)
	}
}

// runFile runs the full lex/parse/evaluate pipeline over one file. Per
// spec §6, normal completion always exits 0 even if recoverable
// diagnostics were raised; only a fatal failure (unreadable file)
// terminates the process early, the same way the "no input file
// provided" path in main does.
func runFile(path string, cfg config.Config, useColor, timing bool, dumpPath string, diagnosticsJSON bool) {
	start := time.Now()

	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: cannot open file: %s\n", path)
		os.Exit(1)
	}

	src := source.New(path, raw)
	sink := diag.NewSink(os.Stderr, src, useColor)

	lx := lexer.New(src, sink, cfg)
	toks := lx.Tokenize()
	program, parseEvents := parser.Parse(toks, sink, cfg)

	ev := eval.New(os.Stdout, sink, cfg)
	ev.Run(program)

	if cfg.Debug > config.DebugOff {
		printDebugEvents(lx.DebugEvents())
		printDebugEvents(parseEvents)
		printDebugEvents(ev.DebugEvents())
	}

	if dumpPath != "" {
		writeDump(dumpPath, src, toks, program, sink)
	}
	if diagnosticsJSON {
		printDiagnosticsJSON(sink)
	}
	if timing {
		fmt.Fprintf(os.Stderr, "elapsed: %s\n", time.Since(start))
	}
}

// printDebugEvents renders the --debug trace collected by one pipeline
// stage, one line per event: "[stage] name: context".
func printDebugEvents(events []config.Event) {
	for _, e := range events {
		fmt.Fprintf(os.Stderr, "[%s] %s: %s\n", e.Stage, e.Name, e.Context)
	}
}

func writeDump(path string, src source.Input, toks []token.Token, program *ast.Group, sink *diag.Sink) {
	trace := dump.Build(src, toks, program, sink.Snapshot())
	data, err := dump.Encode(trace)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: dump encode failed: %v\n", err)
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: cannot write dump file: %s\n", path)
	}
}

func printDiagnosticsJSON(sink *diag.Sink) {
	data, err := sink.ExportJSON()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: diagnostics JSON export failed: %v\n", err)
		return
	}
	fmt.Fprintln(os.Stdout, string(data))
}
