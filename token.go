// token.go
package nolang

// TokenKind represents the kind of token.
type TokenKind int

const (
	// Special
	EOF TokenKind = iota

	// Lexical rules, in the order the lexer tries them.
	INTEGER
	PLUS
	MINUS
	LT
	STAR
	DOT
	TRUEDIV // "//"
	EQ      // "=="
	ASSIGN  // "="
	IDENTIFIER
	LCURLY
	LPAREN
	RPAREN
	RCURLY
	COMMA
	SEMICOLON
	STRING

	// Keywords, reclassified from IDENTIFIER after matching.
	FUNCTION // "def"
	CLASS
	RETURN
	VAR
	WHILE
	IF
	OR
	AND
	TRUE
	FALSE
	TRY
	EXCEPT
	FINALLY
	AS
	RAISE
	IMPORT
)

var kindNames = map[TokenKind]string{
	EOF:        "EOF",
	INTEGER:    "INTEGER",
	PLUS:       "PLUS",
	MINUS:      "MINUS",
	LT:         "LT",
	STAR:       "STAR",
	DOT:        "DOT",
	TRUEDIV:    "TRUEDIV",
	EQ:         "EQ",
	ASSIGN:     "ASSIGN",
	IDENTIFIER: "IDENTIFIER",
	LCURLY:     "LCURLY",
	LPAREN:     "LPAREN",
	RPAREN:     "RPAREN",
	RCURLY:     "RCURLY",
	COMMA:      "COMMA",
	SEMICOLON:  "SEMICOLON",
	STRING:     "STRING",
	FUNCTION:   "FUNCTION",
	CLASS:      "CLASS",
	RETURN:     "RETURN",
	VAR:        "VAR",
	WHILE:      "WHILE",
	IF:         "IF",
	OR:         "OR",
	AND:        "AND",
	TRUE:       "TRUE",
	FALSE:      "FALSE",
	TRY:        "TRY",
	EXCEPT:     "EXCEPT",
	FINALLY:    "FINALLY",
	AS:         "AS",
	RAISE:      "RAISE",
	IMPORT:     "IMPORT",
}

func (k TokenKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "TokenKind(?)"
}

// keywords maps reserved words to their token kind. The lexer matches them
// with the generic identifier rule first and reclassifies by lookup.
var keywords = map[string]TokenKind{
	"def":     FUNCTION,
	"class":   CLASS,
	"return":  RETURN,
	"var":     VAR,
	"while":   WHILE,
	"if":      IF,
	"or":      OR,
	"and":     AND,
	"true":    TRUE,
	"false":   FALSE,
	"try":     TRY,
	"except":  EXCEPT,
	"finally": FINALLY,
	"as":      AS,
	"raise":   RAISE,
	"import":  IMPORT,
}

// SourceRange locates a token in the source text. Start and End are byte
// offsets, half-open; Line and Col describe the start of the range, 1-based.
type SourceRange struct {
	Start int
	End   int
	Line  int
	Col   int
}

// Token is a single lexical unit. Text is the matched source text, except for
// STRING tokens (decoded literal value, quotes stripped) and synthetic
// SEMICOLON tokens (the whitespace run that triggered the insertion). The
// original source text of any token is src[Range.Start:Range.End].
type Token struct {
	Kind  TokenKind
	Text  string
	Range SourceRange
}
