package compiler

import (
	"reflect"
	"testing"
)

// stripPos clears the position fields so token tables only need to spell
// out types, lexemes and values. Positions are covered separately.
func stripPos(tokens []Token) []Token {
	out := make([]Token, len(tokens))
	for i, tok := range tokens {
		tok.Line = 0
		tok.Col = 0
		out[i] = tok
	}
	return out
}

func TestLex(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:  "Empty",
			input: "",
			expected: []Token{
				{Type: EOF},
			},
		},
		{
			name:  "Single Char Operators",
			input: "+ - * / % & | ^ ~ ! < > = `",
			expected: []Token{
				{Type: PLUS, Lexeme: "+"},
				{Type: MINUS, Lexeme: "-"},
				{Type: STAR, Lexeme: "*"},
				{Type: SLASH, Lexeme: "/"},
				{Type: PERCENT, Lexeme: "%"},
				{Type: AMPERSAND, Lexeme: "&"},
				{Type: PIPE, Lexeme: "|"},
				{Type: CARET, Lexeme: "^"},
				{Type: TILDE, Lexeme: "~"},
				{Type: BANG, Lexeme: "!"},
				{Type: LESS, Lexeme: "<"},
				{Type: GREATER, Lexeme: ">"},
				{Type: EQUAL, Lexeme: "="},
				{Type: BACKTICK, Lexeme: "`"},
				{Type: EOF},
			},
		},
		{
			name:  "Two Char Operators",
			input: "++ -- << >> <= >= == != && || ^^ += -= *= /= %= &= |= ^= ->",
			expected: []Token{
				{Type: PLUS_PLUS, Lexeme: "++"},
				{Type: MINUS_MINUS, Lexeme: "--"},
				{Type: LEFT_SHIFT, Lexeme: "<<"},
				{Type: RIGHT_SHIFT, Lexeme: ">>"},
				{Type: LESS_EQUAL, Lexeme: "<="},
				{Type: GREATER_EQUAL, Lexeme: ">="},
				{Type: EQUAL_EQUAL, Lexeme: "=="},
				{Type: BANG_EQUAL, Lexeme: "!="},
				{Type: AMP_AMP, Lexeme: "&&"},
				{Type: PIPE_PIPE, Lexeme: "||"},
				{Type: CARET_CARET, Lexeme: "^^"},
				{Type: PLUS_EQUAL, Lexeme: "+="},
				{Type: MINUS_EQUAL, Lexeme: "-="},
				{Type: STAR_EQUAL, Lexeme: "*="},
				{Type: SLASH_EQUAL, Lexeme: "/="},
				{Type: PERCENT_EQUAL, Lexeme: "%="},
				{Type: AMP_EQUAL, Lexeme: "&="},
				{Type: PIPE_EQUAL, Lexeme: "|="},
				{Type: CARET_EQUAL, Lexeme: "^="},
				{Type: ARROW, Lexeme: "->"},
				{Type: EOF},
			},
		},
		{
			name:  "Three Char Operators",
			input: "<<= >>= ...",
			expected: []Token{
				{Type: LEFT_SHIFT_EQUAL, Lexeme: "<<="},
				{Type: RIGHT_SHIFT_EQUAL, Lexeme: ">>="},
				{Type: ELLIPSIS, Lexeme: "..."},
				{Type: EOF},
			},
		},
		{
			name:  "Maximal Munch",
			input: "+++ a<<=b",
			expected: []Token{
				{Type: PLUS_PLUS, Lexeme: "++"},
				{Type: PLUS, Lexeme: "+"},
				{Type: IDENTIFIER, Lexeme: "a"},
				{Type: LEFT_SHIFT_EQUAL, Lexeme: "<<="},
				{Type: IDENTIFIER, Lexeme: "b"},
				{Type: EOF},
			},
		},
		{
			name:  "Punctuation",
			input: "( ) { } [ ] ; , . : ?",
			expected: []Token{
				{Type: LPAREN, Lexeme: "("},
				{Type: RPAREN, Lexeme: ")"},
				{Type: LBRACE, Lexeme: "{"},
				{Type: RBRACE, Lexeme: "}"},
				{Type: LBRACKET, Lexeme: "["},
				{Type: RBRACKET, Lexeme: "]"},
				{Type: SEMICOLON, Lexeme: ";"},
				{Type: COMMA, Lexeme: ","},
				{Type: DOT, Lexeme: "."},
				{Type: COLON, Lexeme: ":"},
				{Type: QUESTION, Lexeme: "?"},
				{Type: EOF},
			},
		},
		{
			name:  "Type Keywords",
			input: "U0 I8 U8 I16 U16 I32 U32 I64 U64 F64",
			expected: []Token{
				{Type: U0, Lexeme: "U0"},
				{Type: I8, Lexeme: "I8"},
				{Type: U8, Lexeme: "U8"},
				{Type: I16, Lexeme: "I16"},
				{Type: U16, Lexeme: "U16"},
				{Type: I32, Lexeme: "I32"},
				{Type: U32, Lexeme: "U32"},
				{Type: I64, Lexeme: "I64"},
				{Type: U64, Lexeme: "U64"},
				{Type: F64, Lexeme: "F64"},
				{Type: EOF},
			},
		},
		{
			name:  "Keywords and Identifiers",
			input: "if else while for return class this lastclass myVar _under_score u0",
			expected: []Token{
				{Type: IF, Lexeme: "if"},
				{Type: ELSE, Lexeme: "else"},
				{Type: WHILE, Lexeme: "while"},
				{Type: FOR, Lexeme: "for"},
				{Type: RETURN, Lexeme: "return"},
				{Type: CLASS, Lexeme: "class"},
				{Type: THIS, Lexeme: "this"},
				{Type: LASTCLASS, Lexeme: "lastclass"},
				{Type: IDENTIFIER, Lexeme: "myVar"},
				{Type: IDENTIFIER, Lexeme: "_under_score"},
				{Type: IDENTIFIER, Lexeme: "u0"},
				{Type: EOF},
			},
		},
		{
			name:  "Extern Keywords",
			input: "extern import _extern _import",
			expected: []Token{
				{Type: EXTERN, Lexeme: "extern"},
				{Type: IMPORT, Lexeme: "import"},
				{Type: EXTERN_SYM, Lexeme: "_extern"},
				{Type: IMPORT_SYM, Lexeme: "_import"},
				{Type: EOF},
			},
		},
		{
			name:  "Integers",
			input: "0 123 0x1A 0Xff",
			expected: []Token{
				{Type: INTEGER, Lexeme: "0", Int: 0},
				{Type: INTEGER, Lexeme: "123", Int: 123},
				{Type: INTEGER, Lexeme: "0x1A", Int: 26},
				{Type: INTEGER, Lexeme: "0Xff", Int: 255},
				{Type: EOF},
			},
		},
		{
			name:  "Hex Wraps To Negative",
			input: "0xFFFFFFFFFFFFFFFF",
			expected: []Token{
				{Type: INTEGER, Lexeme: "0xFFFFFFFFFFFFFFFF", Int: -1},
				{Type: EOF},
			},
		},
		{
			name:  "Ellipsis After Integer",
			input: "5...10",
			expected: []Token{
				{Type: INTEGER, Lexeme: "5", Int: 5},
				{Type: ELLIPSIS, Lexeme: "..."},
				{Type: INTEGER, Lexeme: "10", Int: 10},
				{Type: EOF},
			},
		},
		{
			name:  "Trailing Dot Is Still Float",
			input: "5. 5.e2",
			expected: []Token{
				{Type: FLOAT, Lexeme: "5.", Float: 5},
				{Type: FLOAT, Lexeme: "5.e2", Float: 500},
				{Type: EOF},
			},
		},
		{
			name:  "Floats",
			input: "3.14 1e3 2.5e-4 6E+2",
			expected: []Token{
				{Type: FLOAT, Lexeme: "3.14", Float: 3.14},
				{Type: FLOAT, Lexeme: "1e3", Float: 1000},
				{Type: FLOAT, Lexeme: "2.5e-4", Float: 2.5e-4},
				{Type: FLOAT, Lexeme: "6E+2", Float: 600},
				{Type: EOF},
			},
		},
		{
			name:  "Strings",
			input: `"hello" "a\nb" "q\"q" ""`,
			expected: []Token{
				{Type: STRING, Lexeme: `"hello"`, Str: "hello"},
				{Type: STRING, Lexeme: `"a\nb"`, Str: "a\nb"},
				{Type: STRING, Lexeme: `"q\"q"`, Str: `q"q`},
				{Type: STRING, Lexeme: `""`, Str: ""},
				{Type: EOF},
			},
		},
		{
			name:  "Char Single",
			input: "'A'",
			expected: []Token{
				{Type: CHAR, Lexeme: "'A'", Word: 0x41},
				{Type: EOF},
			},
		},
		{
			name:  "Char Packs Little Endian",
			input: "'ABC'",
			expected: []Token{
				{Type: CHAR, Lexeme: "'ABC'", Word: 0x434241},
				{Type: EOF},
			},
		},
		{
			name:  "Char Escape",
			input: `'\n'`,
			expected: []Token{
				{Type: CHAR, Lexeme: `'\n'`, Word: 0x0A},
				{Type: EOF},
			},
		},
		{
			name:  "Char Ignores Past Eight",
			input: "'ABCDEFGHIJ'",
			expected: []Token{
				{Type: CHAR, Lexeme: "'ABCDEFGHIJ'", Word: 0x4847464544434241},
				{Type: EOF},
			},
		},
		{
			name:  "Comments Skipped",
			input: "a // line comment\nb /* block\ncomment */ c",
			expected: []Token{
				{Type: IDENTIFIER, Lexeme: "a"},
				{Type: IDENTIFIER, Lexeme: "b"},
				{Type: IDENTIFIER, Lexeme: "c"},
				{Type: EOF},
			},
		},
		{
			name:  "Switch Shapes",
			input: "switch [x] { case 5...10: start: end: }",
			expected: []Token{
				{Type: SWITCH, Lexeme: "switch"},
				{Type: LBRACKET, Lexeme: "["},
				{Type: IDENTIFIER, Lexeme: "x"},
				{Type: RBRACKET, Lexeme: "]"},
				{Type: LBRACE, Lexeme: "{"},
				{Type: CASE, Lexeme: "case"},
				{Type: INTEGER, Lexeme: "5", Int: 5},
				{Type: ELLIPSIS, Lexeme: "..."},
				{Type: INTEGER, Lexeme: "10", Int: 10},
				{Type: COLON, Lexeme: ":"},
				{Type: START, Lexeme: "start"},
				{Type: COLON, Lexeme: ":"},
				{Type: END, Lexeme: "end"},
				{Type: COLON, Lexeme: ":"},
				{Type: RBRACE, Lexeme: "}"},
				{Type: EOF},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tokens, err := Lex(tc.input)
			if err != nil {
				t.Fatalf("Lex(%q) returned error: %v", tc.input, err)
			}
			got := stripPos(tokens)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Lex(%q)\n got: %v\nwant: %v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestLexPositions(t *testing.T) {
	input := "I64 x;\n  x = 5;"
	tokens, err := Lex(input)
	if err != nil {
		t.Fatalf("Lex returned error: %v", err)
	}

	want := []struct {
		tt   TokenType
		line int
		col  int
	}{
		{I64, 1, 1},
		{IDENTIFIER, 1, 5},
		{SEMICOLON, 1, 6},
		{IDENTIFIER, 2, 3},
		{EQUAL, 2, 5},
		{INTEGER, 2, 7},
		{SEMICOLON, 2, 8},
		{EOF, 2, 9},
	}

	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, w := range want {
		tok := tokens[i]
		if tok.Type != w.tt || tok.Line != w.line || tok.Col != w.col {
			t.Errorf("token %d: got %s at %d:%d, want %s at %d:%d",
				i, tok.Type, tok.Line, tok.Col, w.tt, w.line, w.col)
		}
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{name: "Unterminated String", input: `I64 x = "abc`, line: 1},
		{name: "Unterminated Char", input: "'AB", line: 1},
		{name: "Unterminated Block Comment", input: "a\n/* never closed", line: 2},
		{name: "Unknown Character", input: "x = 1;\n@", line: 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Lex(tc.input)
			if err == nil {
				t.Fatalf("Lex(%q) succeeded, want error", tc.input)
			}
			cerr, ok := err.(*Error)
			if !ok {
				t.Fatalf("error type %T, want *Error", err)
			}
			if cerr.Kind != LexError {
				t.Errorf("error kind %v, want LexError", cerr.Kind)
			}
			if cerr.Line != tc.line {
				t.Errorf("error line %d, want %d", cerr.Line, tc.line)
			}
		})
	}
}
