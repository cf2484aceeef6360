package compiler

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF TokenType = iota // sentinel: end of input

	// Literals
	INTEGER // decimal or hex integer literal
	FLOAT   // floating-point literal
	STRING  // string literal "..."
	CHAR    // char literal '...', packed into a 64-bit word

	IDENTIFIER // variable / function / class name

	// Primitive type keywords
	U0  // "U0" (void)
	I8  // "I8"
	U8  // "U8"
	I16 // "I16"
	U16 // "U16"
	I32 // "I32"
	U32 // "U32"
	I64 // "I64"
	U64 // "U64"
	F64 // "F64"

	// Control keywords
	IF      // "if"
	ELSE    // "else"
	WHILE   // "while"
	FOR     // "for"
	SWITCH  // "switch"
	CASE    // "case"
	DEFAULT // "default"
	BREAK   // "break"
	GOTO    // "goto"
	RETURN  // "return"
	TRY     // "try"
	CATCH   // "catch"
	THROW   // "throw"

	// Structural keywords
	CLASS      // "class"
	UNION      // "union"
	PUBLIC     // "public"
	EXTERN     // "extern"
	IMPORT     // "import"
	EXTERN_SYM // "_extern"
	IMPORT_SYM // "_import"

	// Meta keywords
	SIZEOF    // "sizeof"
	OFFSET    // "offset"
	STATIC    // "static"
	NOREG     // "noreg"
	REG       // "reg"
	THIS      // "this"
	START     // "start" (subswitch prologue label)
	END       // "end" (subswitch epilogue label)
	LOCK      // "lock"
	LASTCLASS // "lastclass"

	// Single-character operators
	PLUS      // +
	MINUS     // -
	STAR      // * (multiply, or pointer level / dereference)
	SLASH     // /
	PERCENT   // %
	AMPERSAND // & (bitwise AND, or address-of)
	PIPE      // |
	CARET     // ^
	TILDE     // ~
	BANG      // !
	LESS      // <
	GREATER   // >
	EQUAL     // =
	BACKTICK  // ` (power operator)

	// Two-character operators
	PLUS_PLUS     // ++
	MINUS_MINUS   // --
	LEFT_SHIFT    // <<
	RIGHT_SHIFT   // >>
	LESS_EQUAL    // <=
	GREATER_EQUAL // >=
	EQUAL_EQUAL   // ==
	BANG_EQUAL    // !=
	AMP_AMP       // &&
	PIPE_PIPE     // ||
	CARET_CARET   // ^^ (logical xor)
	PLUS_EQUAL    // +=
	MINUS_EQUAL   // -=
	STAR_EQUAL    // *=
	SLASH_EQUAL   // /=
	PERCENT_EQUAL // %=
	AMP_EQUAL     // &=
	PIPE_EQUAL    // |=
	CARET_EQUAL   // ^=
	ARROW         // ->

	// Three-character operators (matched before the two-character table)
	LEFT_SHIFT_EQUAL  // <<=
	RIGHT_SHIFT_EQUAL // >>=
	ELLIPSIS          // ...

	// Punctuation
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	LBRACKET  // [
	RBRACKET  // ]
	SEMICOLON // ;
	COMMA     // ,
	DOT       // .
	COLON     // :
	QUESTION  // ?
)

// tokenNames is indexed by TokenType.
var tokenNames = [...]string{
	EOF:               "EOF",
	INTEGER:           "INTEGER",
	FLOAT:             "FLOAT",
	STRING:            "STRING",
	CHAR:              "CHAR",
	IDENTIFIER:        "IDENTIFIER",
	U0:                "U0",
	I8:                "I8",
	U8:                "U8",
	I16:               "I16",
	U16:               "U16",
	I32:               "I32",
	U32:               "U32",
	I64:               "I64",
	U64:               "U64",
	F64:               "F64",
	IF:                "IF",
	ELSE:              "ELSE",
	WHILE:             "WHILE",
	FOR:               "FOR",
	SWITCH:            "SWITCH",
	CASE:              "CASE",
	DEFAULT:           "DEFAULT",
	BREAK:             "BREAK",
	GOTO:              "GOTO",
	RETURN:            "RETURN",
	TRY:               "TRY",
	CATCH:             "CATCH",
	THROW:             "THROW",
	CLASS:             "CLASS",
	UNION:             "UNION",
	PUBLIC:            "PUBLIC",
	EXTERN:            "EXTERN",
	IMPORT:            "IMPORT",
	EXTERN_SYM:        "EXTERN_SYM",
	IMPORT_SYM:        "IMPORT_SYM",
	SIZEOF:            "SIZEOF",
	OFFSET:            "OFFSET",
	STATIC:            "STATIC",
	NOREG:             "NOREG",
	REG:               "REG",
	THIS:              "THIS",
	START:             "START",
	END:               "END",
	LOCK:              "LOCK",
	LASTCLASS:         "LASTCLASS",
	PLUS:              "PLUS",
	MINUS:             "MINUS",
	STAR:              "STAR",
	SLASH:             "SLASH",
	PERCENT:           "PERCENT",
	AMPERSAND:         "AMPERSAND",
	PIPE:              "PIPE",
	CARET:             "CARET",
	TILDE:             "TILDE",
	BANG:              "BANG",
	LESS:              "LESS",
	GREATER:           "GREATER",
	EQUAL:             "EQUAL",
	BACKTICK:          "BACKTICK",
	PLUS_PLUS:         "PLUS_PLUS",
	MINUS_MINUS:       "MINUS_MINUS",
	LEFT_SHIFT:        "LEFT_SHIFT",
	RIGHT_SHIFT:       "RIGHT_SHIFT",
	LESS_EQUAL:        "LESS_EQUAL",
	GREATER_EQUAL:     "GREATER_EQUAL",
	EQUAL_EQUAL:       "EQUAL_EQUAL",
	BANG_EQUAL:        "BANG_EQUAL",
	AMP_AMP:           "AMP_AMP",
	PIPE_PIPE:         "PIPE_PIPE",
	CARET_CARET:       "CARET_CARET",
	PLUS_EQUAL:        "PLUS_EQUAL",
	MINUS_EQUAL:       "MINUS_EQUAL",
	STAR_EQUAL:        "STAR_EQUAL",
	SLASH_EQUAL:       "SLASH_EQUAL",
	PERCENT_EQUAL:     "PERCENT_EQUAL",
	AMP_EQUAL:         "AMP_EQUAL",
	PIPE_EQUAL:        "PIPE_EQUAL",
	CARET_EQUAL:       "CARET_EQUAL",
	ARROW:             "ARROW",
	LEFT_SHIFT_EQUAL:  "LEFT_SHIFT_EQUAL",
	RIGHT_SHIFT_EQUAL: "RIGHT_SHIFT_EQUAL",
	ELLIPSIS:          "ELLIPSIS",
	LPAREN:            "LPAREN",
	RPAREN:            "RPAREN",
	LBRACE:            "LBRACE",
	RBRACE:            "RBRACE",
	LBRACKET:          "LBRACKET",
	RBRACKET:          "RBRACKET",
	SEMICOLON:         "SEMICOLON",
	COMMA:             "COMMA",
	DOT:               "DOT",
	COLON:             "COLON",
	QUESTION:          "QUESTION",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// opSymbols maps operator token types back to their source spelling,
// derived from the lexer's operator tables.
var opSymbols = func() map[TokenType]string {
	m := make(map[TokenType]string, len(twoCharOps)+len(singleCharOps)+3)
	for s, tt := range twoCharOps {
		m[tt] = s
	}
	for r, tt := range singleCharOps {
		m[tt] = string(r)
	}
	m[LEFT_SHIFT_EQUAL] = "<<="
	m[RIGHT_SHIFT_EQUAL] = ">>="
	m[ELLIPSIS] = "..."
	return m
}()

// Symbol returns the source spelling of an operator token type, falling
// back to the token name for non-operators.
func (tt TokenType) Symbol() string {
	if s, ok := opSymbols[tt]; ok {
		return s
	}
	return tt.String()
}

// keywords maps source text to its keyword TokenType.
var keywords = map[string]TokenType{
	"U0":        U0,
	"I8":        I8,
	"U8":        U8,
	"I16":       I16,
	"U16":       U16,
	"I32":       I32,
	"U32":       U32,
	"I64":       I64,
	"U64":       U64,
	"F64":       F64,
	"if":        IF,
	"else":      ELSE,
	"while":     WHILE,
	"for":       FOR,
	"switch":    SWITCH,
	"case":      CASE,
	"default":   DEFAULT,
	"break":     BREAK,
	"goto":      GOTO,
	"return":    RETURN,
	"try":       TRY,
	"catch":     CATCH,
	"throw":     THROW,
	"class":     CLASS,
	"union":     UNION,
	"public":    PUBLIC,
	"extern":    EXTERN,
	"import":    IMPORT,
	"_extern":   EXTERN_SYM,
	"_import":   IMPORT_SYM,
	"sizeof":    SIZEOF,
	"offset":    OFFSET,
	"static":    STATIC,
	"noreg":     NOREG,
	"reg":       REG,
	"this":      THIS,
	"start":     START,
	"end":       END,
	"lock":      LOCK,
	"lastclass": LASTCLASS,
}

// Token is a single lexical unit produced by the Lexer. Tokens are
// immutable after creation; the value field that is meaningful depends on
// the token type (Int for INTEGER, Float for FLOAT, Str for the decoded
// STRING text, Word for the packed CHAR value). Lexeme always carries the
// raw matched source text.
type Token struct {
	Type   TokenType
	Lexeme string  // the exact source text that was matched
	Int    int64   // INTEGER value
	Float  float64 // FLOAT value
	Str    string  // STRING value with escapes decoded
	Word   uint64  // CHAR value, little-endian packed character codes
	Line   int     // 1-based source line
	Col    int     // 1-based source column
}

func (t Token) String() string {
	return fmt.Sprintf("%-14s %-14q  %d:%d", t.Type, t.Lexeme, t.Line, t.Col)
}
