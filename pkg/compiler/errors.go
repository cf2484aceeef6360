package compiler

import "fmt"

// ErrorKind separates the two failure classes of the front end.
type ErrorKind int

const (
	LexError   ErrorKind = iota // unterminated literal/comment, bad number, stray character
	ParseError                  // unexpected or missing token, unknown type, bad dimension
)

func (k ErrorKind) String() string {
	if k == LexError {
		return "lex error"
	}
	return "parse error"
}

// Error is the single structured failure value returned by the front end.
// It always carries the exact position of the offending character or
// token. The first error aborts the pass; there is no partial result.
type Error struct {
	Kind ErrorKind
	Msg  string
	Line int
	Col  int
	File string // optional originating file name
}

func (e *Error) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.File, e.Line, e.Col, e.Kind, e.Msg)
	}
	return fmt.Sprintf("%d:%d: %s: %s", e.Line, e.Col, e.Kind, e.Msg)
}
