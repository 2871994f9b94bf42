package parser

import (
	"strconv"

	"github.com/epsilon-lang/epsilon/internal/value"
)

// parseNumberLiteral converts a lexer-verified NUMBER lexeme to a
// REAL value. The lexer guarantees the lexeme is well-formed
// (digit+ ('.' digit+)?), so strconv.ParseFloat cannot fail here.
func parseNumberLiteral(lexeme string) value.Value {
	n, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		return value.Real64(0)
	}
	return value.Real64(n)
}

// unquote strips the surrounding double quotes a STRING lexeme always
// opens with and closes with (or, for a newline-terminated string,
// opens with but never closes — spec §4.2's "accepted by design").
func unquote(lexeme string) string {
	if len(lexeme) == 0 || lexeme[0] != '"' {
		return lexeme
	}
	body := lexeme[1:]
	if len(body) > 0 && body[len(body)-1] == '"' {
		body = body[:len(body)-1]
	}
	return body
}
