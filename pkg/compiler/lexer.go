package compiler

import (
	"fmt"
	"strconv"
	"unicode"
)

// Lexer holds all mutable state for a single scanning pass over src.
// A Lexer is single-use and must not be shared between goroutines;
// independent sources get independent Lexers.
type Lexer struct {
	src  []rune
	pos  int    // index of the next rune to consume
	line int    // current 1-based source line
	col  int    // current 1-based source column
	file string // optional file name for diagnostics
}

// NewLexer prepares a scanning pass over src. file may be empty; it is
// used only to enrich error positions.
func NewLexer(src, file string) *Lexer {
	return &Lexer{src: []rune(src), line: 1, col: 1, file: file}
}

// Lex tokenizes src and returns the token stream, always terminated by a
// single EOF token. The first lexical error aborts the pass.
func Lex(src string) ([]Token, error) {
	return NewLexer(src, "").Tokenize()
}

// Tokenize runs the scanner to completion.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}

// errf builds a lexical error at the current cursor position.
func (l *Lexer) errf(format string, args ...any) *Error {
	return &Error{
		Kind: LexError,
		Msg:  fmt.Sprintf(format, args...),
		Line: l.line,
		Col:  l.col,
		File: l.file,
	}
}

// peek returns the rune at the current position without advancing.
func (l *Lexer) peek() rune {
	return l.peekAt(0)
}

// peekAt returns the rune at the given offset from the current position.
func (l *Lexer) peekAt(offset int) rune {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

// advance consumes one rune and returns it.
func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) skipWhitespace() {
	for {
		switch l.peek() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		default:
			return
		}
	}
}

// skipLineComment discards everything from "//" to end-of-line.
func (l *Lexer) skipLineComment() {
	l.advance() // /
	l.advance() // /
	for l.pos < len(l.src) && l.peek() != '\n' {
		l.advance()
	}
}

// skipBlockComment discards everything up to and including the closing
// "*/". Block comments do not nest.
func (l *Lexer) skipBlockComment() error {
	l.advance() // /
	l.advance() // *
	for {
		if l.pos >= len(l.src) {
			return l.errf("unterminated block comment")
		}
		if l.peek() == '*' && l.peekAt(1) == '/' {
			l.advance()
			l.advance()
			return nil
		}
		l.advance()
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isHexDigit(r rune) bool {
	return unicode.IsDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// readNumber scans an integer or float literal. Hex literals ("0x"/"0X")
// are always integral. A decimal literal switches to floating on the
// first '.' or on an exponent marker, which may be followed by one sign.
// A '.' directly followed by another '.' is left in the stream so that
// an ellipsis after an integer, as in 5...10, lexes as three tokens.
func (l *Lexer) readNumber() (Token, error) {
	line, col, start := l.line, l.col, l.pos
	isHex := false
	isFloat := false

	if l.peek() == '0' && (l.peekAt(1) == 'x' || l.peekAt(1) == 'X') {
		isHex = true
		l.advance()
		l.advance()
		for isHexDigit(l.peek()) {
			l.advance()
		}
	} else {
	scan:
		for {
			r := l.peek()
			switch {
			case unicode.IsDigit(r):
				l.advance()
			case r == '.' && !isFloat && l.peekAt(1) != '.':
				// A second dot means an ellipsis follows the integer,
				// as in case ranges: 5...10
				isFloat = true
				l.advance()
			case r == 'e' || r == 'E':
				isFloat = true
				l.advance()
				if l.peek() == '+' || l.peek() == '-' {
					l.advance()
				}
			default:
				break scan
			}
		}
	}

	text := string(l.src[start:l.pos])
	tok := Token{Lexeme: text, Line: line, Col: col}
	switch {
	case isHex:
		v, err := strconv.ParseUint(text[2:], 16, 64)
		if err != nil {
			return Token{}, l.errf("invalid number literal: %q", text)
		}
		tok.Type = INTEGER
		tok.Int = int64(v)
	case isFloat:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Token{}, l.errf("invalid number literal: %q", text)
		}
		tok.Type = FLOAT
		tok.Float = v
	default:
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Token{}, l.errf("invalid number literal: %q", text)
		}
		tok.Type = INTEGER
		tok.Int = v
	}
	return tok, nil
}

// readEscape decodes the character after a backslash. Recognized escapes
// map to their control character; anything else is copied verbatim.
func (l *Lexer) readEscape() (rune, error) {
	if l.pos >= len(l.src) {
		return 0, l.errf("unterminated escape sequence")
	}
	r := l.advance()
	switch r {
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case 'r':
		return '\r', nil
	case '0':
		return 0, nil
	default:
		// \\ \" \' and every unrecognized escape: the character itself
		return r, nil
	}
}

// readString scans a double-quoted string literal and decodes escapes.
func (l *Lexer) readString() (Token, error) {
	line, col, start := l.line, l.col, l.pos
	l.advance() // opening quote

	var out []rune
	for {
		if l.pos >= len(l.src) {
			return Token{}, l.errf("unterminated string literal")
		}
		r := l.advance()
		if r == '"' {
			break
		}
		if r == '\\' {
			dec, err := l.readEscape()
			if err != nil {
				return Token{}, err
			}
			out = append(out, dec)
			continue
		}
		out = append(out, r)
	}

	return Token{
		Type:   STRING,
		Lexeme: string(l.src[start:l.pos]),
		Str:    string(out),
		Line:   line,
		Col:    col,
	}, nil
}

// readChar scans a single-quoted char literal. Up to 8 character codes are
// packed little-endian by position into a 64-bit word:
//
//	value |= (code & 0xFF) << (8 * i)
//
// Characters beyond the 8th are ignored, not an error.
func (l *Lexer) readChar() (Token, error) {
	line, col, start := l.line, l.col, l.pos
	l.advance() // opening quote

	var chars []rune
	for {
		if l.pos >= len(l.src) {
			return Token{}, l.errf("unterminated char literal")
		}
		r := l.advance()
		if r == '\'' {
			break
		}
		if r == '\\' {
			dec, err := l.readEscape()
			if err != nil {
				return Token{}, err
			}
			chars = append(chars, dec)
			continue
		}
		chars = append(chars, r)
	}

	var word uint64
	for i, c := range chars {
		if i >= 8 {
			break
		}
		word |= (uint64(c) & 0xFF) << (8 * i)
	}

	return Token{
		Type:   CHAR,
		Lexeme: string(l.src[start:l.pos]),
		Word:   word,
		Line:   line,
		Col:    col,
	}, nil
}

// readIdentifier scans a maximal letter/digit/underscore run and resolves
// it against the keyword table.
func (l *Lexer) readIdentifier() Token {
	line, col, start := l.line, l.col, l.pos
	for isIdentPart(l.peek()) {
		l.advance()
	}
	text := string(l.src[start:l.pos])
	tt := IDENTIFIER
	if kw, ok := keywords[text]; ok {
		tt = kw
	}
	return Token{Type: tt, Lexeme: text, Line: line, Col: col}
}

// twoCharOps is the general two-character operator table. Three-character
// operators are checked first in next; single characters come last.
var twoCharOps = map[string]TokenType{
	"++": PLUS_PLUS,
	"--": MINUS_MINUS,
	"<<": LEFT_SHIFT,
	">>": RIGHT_SHIFT,
	"<=": LESS_EQUAL,
	">=": GREATER_EQUAL,
	"==": EQUAL_EQUAL,
	"!=": BANG_EQUAL,
	"&&": AMP_AMP,
	"||": PIPE_PIPE,
	"^^": CARET_CARET,
	"+=": PLUS_EQUAL,
	"-=": MINUS_EQUAL,
	"*=": STAR_EQUAL,
	"/=": SLASH_EQUAL,
	"%=": PERCENT_EQUAL,
	"&=": AMP_EQUAL,
	"|=": PIPE_EQUAL,
	"^=": CARET_EQUAL,
	"->": ARROW,
}

var singleCharOps = map[rune]TokenType{
	'+': PLUS,
	'-': MINUS,
	'*': STAR,
	'/': SLASH,
	'%': PERCENT,
	'&': AMPERSAND,
	'|': PIPE,
	'^': CARET,
	'~': TILDE,
	'!': BANG,
	'<': LESS,
	'>': GREATER,
	'=': EQUAL,
	'`': BACKTICK,
	'(': LPAREN,
	')': RPAREN,
	'{': LBRACE,
	'}': RBRACE,
	'[': LBRACKET,
	']': RBRACKET,
	';': SEMICOLON,
	',': COMMA,
	'.': DOT,
	':': COLON,
	'?': QUESTION,
}

// next scans and returns the next token.
func (l *Lexer) next() (Token, error) {
	for {
		l.skipWhitespace()
		if l.peek() == '/' && l.peekAt(1) == '/' {
			l.skipLineComment()
		} else if l.peek() == '/' && l.peekAt(1) == '*' {
			if err := l.skipBlockComment(); err != nil {
				return Token{}, err
			}
		} else {
			break
		}
	}

	if l.pos >= len(l.src) {
		return Token{Type: EOF, Line: l.line, Col: l.col}, nil
	}

	r := l.peek()

	if unicode.IsDigit(r) {
		return l.readNumber()
	}
	if r == '"' {
		return l.readString()
	}
	if r == '\'' {
		return l.readChar()
	}
	if isIdentStart(r) {
		return l.readIdentifier(), nil
	}

	line, col := l.line, l.col
	l.advance()

	// Longest-prefix-first: three-character operators before the general
	// two-character table before single characters.
	if r == '.' && l.peek() == '.' && l.peekAt(1) == '.' {
		l.advance()
		l.advance()
		return Token{Type: ELLIPSIS, Lexeme: "...", Line: line, Col: col}, nil
	}
	if r == '<' && l.peek() == '<' && l.peekAt(1) == '=' {
		l.advance()
		l.advance()
		return Token{Type: LEFT_SHIFT_EQUAL, Lexeme: "<<=", Line: line, Col: col}, nil
	}
	if r == '>' && l.peek() == '>' && l.peekAt(1) == '=' {
		l.advance()
		l.advance()
		return Token{Type: RIGHT_SHIFT_EQUAL, Lexeme: ">>=", Line: line, Col: col}, nil
	}

	if l.pos < len(l.src) {
		two := string(r) + string(l.peek())
		if tt, ok := twoCharOps[two]; ok {
			l.advance()
			return Token{Type: tt, Lexeme: two, Line: line, Col: col}, nil
		}
	}

	if tt, ok := singleCharOps[r]; ok {
		return Token{Type: tt, Lexeme: string(r), Line: line, Col: col}, nil
	}

	l.line, l.col = line, col
	return Token{}, l.errf("unknown character: %q", r)
}
