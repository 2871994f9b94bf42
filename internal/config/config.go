// Package config holds the Debug/Telemetry knobs threaded through the
// Lexer, Parser, and Evaluator, grounded on the teacher's
// LexerConfig/ParserConfig/executor.Config pattern
// (runtime/lexer/v2/lexer.go, runtime/executor/executor.go). Neither
// knob changes observable language behavior (spec §6): they only add
// optional trace/timing output for the --debug/--timing driver flags.
package config

import "time"

// Debug controls verbose trace output (development only).
type Debug int

const (
	DebugOff Debug = iota
	DebugPaths
	DebugDetailed
)

// Telemetry controls production-safe counts/timing collection.
type Telemetry int

const (
	TelemetryOff Telemetry = iota
	TelemetryBasic
	TelemetryTiming
)

// Config is shared by the Lexer, Parser, and Evaluator constructors.
type Config struct {
	Debug     Debug
	Telemetry Telemetry
}

// Event is one recorded debug trace event.
type Event struct {
	Timestamp time.Time
	Stage     string // "lexer", "parser", "evaluator"
	Name      string // "enter_number", "enter_stmt", etc.
	Context   string
}
