// Package token defines the lexical token vocabulary shared by the
// lexer, parser, and evaluator.
package token

import "fmt"

// Kind is a closed enumeration of lexical token kinds. The order here
// is fixed (it is the order spec'd for debug strings) — do not
// reorder without updating the name table below in lockstep.
type Kind int

const (
	LParen Kind = iota
	RParen
	LBrace
	RBrace
	Comma
	Dot
	Minus
	Plus
	Output
	Colon
	Semicolon
	Slash
	Star
	Bang
	BangEqual
	Equal
	Greater
	GreaterEqual
	Less
	LessEqual
	Identifier
	String
	Number
	And
	Const
	Func
	Else
	False
	If
	Let
	Void
	Or
	Not
	Return
	Real
	Bool
	True
	ArrowRight // ->
	ArrowLeft  // <-
	Str        // str (unary stringify operator)
	EOF
	Comment
	ErrorToken
)

var kindNames = [...]string{
	LParen:       "L_PAREN",
	RParen:       "R_PAREN",
	LBrace:       "L_BRACE",
	RBrace:       "R_BRACE",
	Comma:        "COMMA",
	Dot:          "DOT",
	Minus:        "MINUS",
	Plus:         "PLUS",
	Output:       "OUTPUT",
	Colon:        "COLON",
	Semicolon:    "SEMICOLON",
	Slash:        "SLASH",
	Star:         "STAR",
	Bang:         "BANG",
	BangEqual:    "BANG_EQUAL",
	Equal:        "EQUAL",
	Greater:      "GREATER",
	GreaterEqual: "GREATER_EQUAL",
	Less:         "LESS",
	LessEqual:    "LESS_EQUAL",
	Identifier:   "IDENTIFIER",
	String:       "STRING",
	Number:       "NUMBER",
	And:          "AND",
	Const:        "CONST",
	Func:         "FUNC",
	Else:         "ELSE",
	False:        "FALSE",
	If:           "IF",
	Let:          "LET",
	Void:         "VOID",
	Or:           "OR",
	Not:          "NOT",
	Return:       "RETURN",
	Real:         "REAL",
	Bool:         "BOOL",
	True:         "TRUE",
	ArrowRight:   "ARROW_RIGHT",
	ArrowLeft:    "ARROW_LEFT",
	Str:          "STR",
	EOF:          "T_EOF",
	Comment:      "COMMENT",
	ErrorToken:   "ERRORTOKEN",
}

// String returns the fixed debug name for k (e.g. "L_PAREN").
func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Keywords maps reserved lexemes to their Kind. "string" is
// deliberately absent: only the declarable types real/bool/void (and
// the str stringify operator) are reserved words (spec §4.2, §9).
var Keywords = map[string]Kind{
	"and":    And,
	"or":     Or,
	"not":    Not,
	"if":     If,
	"else":   Else,
	"const":  Const,
	"let":    Let,
	"func":   Func,
	"return": Return,
	"void":   Void,
	"real":   Real,
	"bool":   Bool,
	"true":   True,
	"false":  False,
	"output": Output,
	"str":    Str,
}

// Span locates a token or AST node in a SourceInput: 1-based line/col,
// 0-based byte offsets, and the logical file name it was read from.
type Span struct {
	Line      int
	Col       int
	ByteStart int
	ByteEnd   int
	File      string
}

// Merge returns the span covering both a and b when they sit on the
// same source line (parser §4.4: "Attached spans"). When they don't,
// it returns a unchanged, so a caret never has to span multiple
// lines.
func Merge(a, b Span) Span {
	if a.Line != b.Line {
		return a
	}
	out := a
	if b.ByteEnd > out.ByteEnd {
		out.ByteEnd = b.ByteEnd
	}
	return out
}

// Token is one lexeme: its Kind, verbatim source text, and Span.
type Token struct {
	Kind   Kind
	Lexeme string
	Span   Span
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q", t.Kind, t.Lexeme)
}
