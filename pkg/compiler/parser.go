package compiler

import (
	"fmt"
	"strings"
)

// Parser consumes the flat token slice produced by the Lexer and builds
// the Program tree.
//
// Expression grammar, lowest to highest precedence:
//
//	expression     = assignment
//	assignment     = logical_or (("=" | "+=" | ... | ">>=") assignment)?   right-assoc
//	logical_or     = logical_xor ("||" logical_xor)*
//	logical_xor    = logical_and ("^^" logical_and)*
//	logical_and    = bitwise_or ("&&" bitwise_or)*
//	bitwise_or     = bitwise_xor ("|" bitwise_xor)*
//	bitwise_xor    = bitwise_and ("^" bitwise_and)*
//	bitwise_and    = equality ("&" equality)*
//	equality       = relational (("=="|"!=") relational)*
//	relational     = shift (("<"|">"|"<="|">="|"=="|"!=") shift)*          chained fold
//	shift          = additive (("<<"|">>") additive)*
//	additive       = multiplicative (("+"|"-") multiplicative)*
//	multiplicative = power (("*"|"/"|"%") power)*
//	power          = unary ("`" unary)*
//	unary          = ("!"|"~"|"-"|"++"|"--"|"*"|"&") unary | postfix
//	postfix        = primary ("[" expr "]" | ("."|"->") name args? | "(" args ")" | "++" | "--")*
//	primary        = literal | "(" expression ")" | "this" | "sizeof" "(" type ")"
//	               | "offset" "(" name "," name ")" | name | primitive-type-keyword
//
// A run of relational operators at one tier, e.g. a<b<=c, folds into a
// leftward-nesting logical AND of the adjacent pairwise comparisons:
// (a<b) && (b<=c).
type Parser struct {
	tokens      []Token
	pos         int
	sourceLines []string
	file        string
}

// NewParser prepares a parse over tokens. rawSource is used only for
// error snippets; file enriches diagnostic positions and may be empty.
func NewParser(tokens []Token, rawSource, file string) *Parser {
	return &Parser{tokens: tokens, sourceLines: strings.Split(rawSource, "\n"), file: file}
}

// Parse builds a Program from a token stream produced by Lex. The first
// syntax error aborts the parse and no partial tree is returned.
func Parse(tokens []Token, src string) (*Program, error) {
	return NewParser(tokens, src, "").Parse()
}

// fmtError wraps an error message with the source line where the token
// appears.
func (p *Parser) fmtError(tok Token, format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	lineIdx := tok.Line - 1 // Lines are 1-based

	snippet := "<source unavailable>"
	if lineIdx >= 0 && lineIdx < len(p.sourceLines) {
		snippet = strings.TrimSpace(p.sourceLines[lineIdx])
	}

	return &Error{
		Kind: ParseError,
		Msg:  fmt.Sprintf("%s\n  |> %s", msg, snippet),
		Line: tok.Line,
		Col:  tok.Col,
		File: p.file,
	}
}

// peek returns the current token without consuming it.
func (p *Parser) peek() Token {
	return p.peekAt(0)
}

// peekAt returns the token at the given offset from the current position.
func (p *Parser) peekAt(offset int) Token {
	if p.pos+offset >= len(p.tokens) {
		if len(p.tokens) > 0 {
			return p.tokens[len(p.tokens)-1]
		}
		return Token{Type: EOF}
	}
	return p.tokens[p.pos+offset]
}

// advance consumes and returns the current token. The terminating EOF
// token is never consumed.
func (p *Parser) advance() Token {
	tok := p.peek()
	if tok.Type != EOF && p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it matches tt, otherwise fails.
func (p *Parser) expect(tt TokenType) (Token, error) {
	tok := p.peek()
	if tok.Type != tt {
		return tok, p.fmtError(tok, "expected %s, got %s (%q)", tt, tok.Type, tok.Lexeme)
	}
	return p.advance(), nil
}

// match reports whether the current token is one of tts.
func (p *Parser) match(tts ...TokenType) bool {
	cur := p.peek().Type
	for _, tt := range tts {
		if cur == tt {
			return true
		}
	}
	return false
}

// locOf tags a node with the position of its first token.
func (p *Parser) locOf(tok Token) node {
	return node{Loc: SourceLoc{File: p.file, Line: tok.Line, Col: tok.Col}}
}

// isType reports whether the current token is a primitive type keyword.
func (p *Parser) isType() bool {
	switch p.peek().Type {
	case U0, I8, U8, I16, U16, I32, U32, I64, U64, F64:
		return true
	}
	return false
}

// isDeclStart reports whether the current token can begin a declaration.
// The predicate is total: anything outside the listed sets is false.
func (p *Parser) isDeclStart() bool {
	switch p.peek().Type {
	case STATIC, EXTERN, IMPORT, EXTERN_SYM, IMPORT_SYM,
		PUBLIC, REG, NOREG,
		CLASS, UNION:
		return true
	}
	return p.isType()
}

// isClassVarDeclAhead resolves the `Ident * Ident` ambiguity at statement
// start: only primitive names are lexically known to be types, so an
// identifier followed by any number of stars and another identifier is
// taken as a class-typed variable declaration rather than multiplication.
func (p *Parser) isClassVarDeclAhead() bool {
	if p.peek().Type != IDENTIFIER {
		return false
	}
	i := 1
	for p.peekAt(i).Type == STAR {
		i++
	}
	return p.peekAt(i).Type == IDENTIFIER
}

// Synchronize skips to the next statement boundary: just past a consumed
// semicolon, or to a token that can begin a statement or declaration. It
// exists for the optional multi-error tooling mode only; the default
// contract is fail-fast on the first error.
func (p *Parser) Synchronize() {
	p.advance()
	for !p.match(EOF) {
		if p.peekAt(-1).Type == SEMICOLON {
			return
		}
		switch p.peek().Type {
		case IF, WHILE, FOR, SWITCH, RETURN, BREAK, GOTO, TRY, THROW, LOCK:
			return
		}
		if p.isDeclStart() {
			return
		}
		p.advance()
	}
}

// Parse runs the parser to completion over the whole token stream.
func (p *Parser) Parse() (*Program, error) {
	prog := &Program{node: p.locOf(p.peek()), Decls: []Decl{}}
	for !p.match(EOF) {
		d, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		prog.Decls = append(prog.Decls, d)
	}
	return prog, nil
}

//  Declarations

func (p *Parser) parseDeclaration() (Decl, error) {
	start := p.peek()
	attrs := []string{}
	isStatic := false
	for p.match(PUBLIC, STATIC, REG, NOREG) {
		tok := p.advance()
		if tok.Type == STATIC {
			isStatic = true
		} else {
			attrs = append(attrs, tok.Lexeme)
		}
	}

	switch p.peek().Type {
	case EXTERN, IMPORT, EXTERN_SYM, IMPORT_SYM:
		return p.parseExtern()
	case CLASS:
		return p.parseClass()
	case UNION:
		return p.parseUnion()
	}

	if !p.isType() && p.peek().Type != IDENTIFIER {
		return nil, p.fmtError(p.peek(), "expected declaration, got %s (%q)",
			p.peek().Type, p.peek().Lexeme)
	}

	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}

	if p.match(LPAREN) {
		return p.parseFunctionRest(start, typ, nameTok, attrs)
	}
	return p.parseVarRest(start, typ, nameTok, attrs, isStatic, true)
}

// parseFunctionRest finishes a function declaration after the return type
// and name have been consumed; the parameter list is still ahead.
func (p *Parser) parseFunctionRest(start Token, ret Type, nameTok Token, attrs []string) (*FunctionDecl, error) {
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}

	fd := &FunctionDecl{
		node:       p.locOf(start),
		Return:     ret,
		Name:       nameTok.Lexeme,
		Params:     params,
		Attributes: attrs,
	}

	if p.match(LBRACE) {
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		fd.Body = body
		return fd, nil
	}

	// No body: forward declaration.
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return fd, nil
}

// parseParams parses a parenthesized parameter list, each parameter a
// type, a name and an optional default-value expression.
func (p *Parser) parseParams() ([]*Parameter, error) {
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}

	params := []*Parameter{}
	if !p.match(RPAREN) {
		for {
			typ, err := p.parseType()
			if err != nil {
				return nil, err
			}
			nameTok, err := p.expect(IDENTIFIER)
			if err != nil {
				return nil, err
			}
			param := &Parameter{Type: typ, Name: nameTok.Lexeme}
			if p.match(EQUAL) {
				p.advance()
				def, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				param.Default = def
			}
			params = append(params, param)

			if !p.match(COMMA) {
				break
			}
			p.advance()
		}
	}

	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	return params, nil
}

// parseVarRest finishes a variable declaration after the type and name.
// Array dimensions written after the name merge into the declared type.
func (p *Parser) parseVarRest(start Token, typ Type, nameTok Token, attrs []string, isStatic, isGlobal bool) (*VarDecl, error) {
	dims, err := p.parseArrayDims()
	if err != nil {
		return nil, err
	}
	if len(dims) > 0 {
		typ = NewArray(typ, dims)
	}

	v := &VarDecl{
		node:       p.locOf(start),
		Type:       typ,
		Name:       nameTok.Lexeme,
		IsGlobal:   isGlobal,
		IsStatic:   isStatic,
		Attributes: attrs,
	}

	if p.match(EQUAL) {
		p.advance()
		init, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		v.Init = init
	}

	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return v, nil
}

func (p *Parser) parseExtern() (*ExternDecl, error) {
	kw := p.advance()
	isImport := kw.Type == IMPORT || kw.Type == IMPORT_SYM

	external := ""
	if kw.Type == EXTERN_SYM || kw.Type == IMPORT_SYM {
		tok, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}
		external = tok.Lexeme
	}

	ret, err := p.parseType()
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}

	return &ExternDecl{
		node:         p.locOf(kw),
		Return:       ret,
		Name:         nameTok.Lexeme,
		Params:       params,
		ExternalName: external,
		IsImport:     isImport,
	}, nil
}

// parseClass parses  class Name [: Base] { members methods };
// Members and methods are partitioned by the "(" following the name.
func (p *Parser) parseClass() (*ClassDecl, error) {
	kw := p.advance()
	nameTok, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}

	base := ""
	if p.match(COLON) {
		p.advance()
		baseTok, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}
		base = baseTok.Lexeme
	}

	if _, err := p.expect(LBRACE); err != nil {
		return nil, err
	}

	cd := &ClassDecl{
		node:    p.locOf(kw),
		Name:    nameTok.Lexeme,
		Members: []*VarDecl{},
		Methods: []*MethodDecl{},
		Base:    base,
	}

	for !p.match(RBRACE, EOF) {
		start := p.peek()
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		memberTok, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}

		if p.match(LPAREN) {
			fd, err := p.parseFunctionRest(start, typ, memberTok, []string{})
			if err != nil {
				return nil, err
			}
			cd.Methods = append(cd.Methods, &MethodDecl{
				FunctionDecl:  *fd,
				ClassName:     cd.Name,
				IsConstructor: memberTok.Lexeme == cd.Name,
			})
			continue
		}

		member, err := p.parseVarRest(start, typ, memberTok, []string{}, false, false)
		if err != nil {
			return nil, err
		}
		cd.Members = append(cd.Members, member)
	}

	if _, err := p.expect(RBRACE); err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return cd, nil
}

// parseUnion parses  union Name { members };  Members share storage; no
// offsets are computed here.
func (p *Parser) parseUnion() (*UnionDecl, error) {
	kw := p.advance()
	nameTok, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LBRACE); err != nil {
		return nil, err
	}

	ud := &UnionDecl{
		node:    p.locOf(kw),
		Name:    nameTok.Lexeme,
		Members: []*VarDecl{},
	}

	for !p.match(RBRACE, EOF) {
		start := p.peek()
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		memberTok, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}
		member, err := p.parseVarRest(start, typ, memberTok, []string{}, false, false)
		if err != nil {
			return nil, err
		}
		ud.Members = append(ud.Members, member)
	}

	if _, err := p.expect(RBRACE); err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return ud, nil
}

//  Types

// parseType parses a base type (primitive keyword or nominal class name),
// then any pointer stars collapsed into one level count, then any bracket
// dimensions collapsed into one ordered dimension list.
func (p *Parser) parseType() (Type, error) {
	tok := p.peek()

	var base Type
	switch {
	case p.isType():
		p.advance()
		prim, ok := PrimitiveByName(tok.Lexeme)
		if !ok {
			return nil, p.fmtError(tok, "unknown type: %s", tok.Lexeme)
		}
		base = prim
	case tok.Type == IDENTIFIER:
		p.advance()
		base = &ClassType{Name: tok.Lexeme}
	default:
		return nil, p.fmtError(tok, "expected type, got %s (%q)", tok.Type, tok.Lexeme)
	}

	levels := 0
	for p.match(STAR) {
		p.advance()
		levels++
	}
	if levels > 0 {
		base = NewPointer(base, levels)
	}

	dims, err := p.parseArrayDims()
	if err != nil {
		return nil, err
	}
	if len(dims) > 0 {
		base = NewArray(base, dims)
	}
	return base, nil
}

// parseArrayDims consumes zero or more bracket groups; empty brackets are
// the unsized dimension.
func (p *Parser) parseArrayDims() ([]int64, error) {
	var dims []int64
	for p.match(LBRACKET) {
		p.advance()
		if p.match(RBRACKET) {
			p.advance()
			dims = append(dims, Unsized)
			continue
		}
		sizeTok := p.peek()
		if sizeTok.Type != INTEGER {
			return nil, p.fmtError(sizeTok, "expected array size, got %s (%q)",
				sizeTok.Type, sizeTok.Lexeme)
		}
		p.advance()
		dims = append(dims, sizeTok.Int)
		if _, err := p.expect(RBRACKET); err != nil {
			return nil, err
		}
	}
	return dims, nil
}

//  Statements

func (p *Parser) parseBlock() (*Block, error) {
	lbrace, err := p.expect(LBRACE)
	if err != nil {
		return nil, err
	}
	b := &Block{node: p.locOf(lbrace), Stmts: []Stmt{}}
	for !p.match(RBRACE, EOF) {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		b.Stmts = append(b.Stmts, s)
	}
	if _, err := p.expect(RBRACE); err != nil {
		return nil, err
	}
	return b, nil
}

// parseBody parses a brace block, or a single statement wrapped into a
// one-statement Block so that if/while/for bodies always have block shape.
func (p *Parser) parseBody() (*Block, error) {
	if p.match(LBRACE) {
		return p.parseBlock()
	}
	start := p.peek()
	s, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &Block{node: p.locOf(start), Stmts: []Stmt{s}}, nil
}

func (p *Parser) parseStatement() (Stmt, error) {
	tok := p.peek()
	switch tok.Type {
	case LBRACE:
		return p.parseBlock()
	case IF:
		return p.parseIf()
	case WHILE:
		return p.parseWhile()
	case FOR:
		return p.parseFor()
	case SWITCH:
		return p.parseSwitch()
	case RETURN:
		return p.parseReturn()
	case TRY:
		return p.parseTryCatch()
	case THROW:
		p.advance()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(SEMICOLON); err != nil {
			return nil, err
		}
		return &ThrowStmt{node: p.locOf(tok), Value: value}, nil
	case GOTO:
		p.advance()
		labelTok, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(SEMICOLON); err != nil {
			return nil, err
		}
		return &GotoStmt{node: p.locOf(tok), Label: labelTok.Lexeme}, nil
	case BREAK:
		p.advance()
		if _, err := p.expect(SEMICOLON); err != nil {
			return nil, err
		}
		return &BreakStmt{node: p.locOf(tok)}, nil
	case LOCK:
		p.advance()
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &LockStmt{node: p.locOf(tok), Body: body}, nil
	case STATIC:
		return p.parseLocalVarDecl()
	case IDENTIFIER:
		if p.peekAt(1).Type == COLON {
			p.advance()
			p.advance()
			return &LabelStmt{node: p.locOf(tok), Name: tok.Lexeme}, nil
		}
		if p.isClassVarDeclAhead() {
			return p.parseLocalVarDecl()
		}
	}

	if p.isType() {
		return p.parseLocalVarDecl()
	}

	// Expression statement.
	x, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return &ExpressionStmt{node: p.locOf(tok), X: x}, nil
}

// parseLocalVarDecl parses a block-scope variable declaration, optionally
// prefixed with static.
func (p *Parser) parseLocalVarDecl() (*VarDecl, error) {
	start := p.peek()
	isStatic := false
	if p.match(STATIC) {
		p.advance()
		isStatic = true
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	return p.parseVarRest(start, typ, nameTok, []string{}, isStatic, false)
}

func (p *Parser) parseIf() (*IfStmt, error) {
	kw := p.advance()
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	then, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	stmt := &IfStmt{node: p.locOf(kw), Cond: cond, Then: then}
	if p.match(ELSE) {
		p.advance()
		els, err := p.parseBody()
		if err != nil {
			return nil, err
		}
		stmt.Else = els
	}
	return stmt, nil
}

func (p *Parser) parseWhile() (*WhileStmt, error) {
	kw := p.advance()
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{node: p.locOf(kw), Cond: cond, Body: body}, nil
}

func (p *Parser) parseFor() (*ForStmt, error) {
	kw := p.advance()
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}

	stmt := &ForStmt{node: p.locOf(kw)}

	// init: empty, a local declaration, or an expression statement
	if p.match(SEMICOLON) {
		p.advance()
	} else if p.isType() || p.match(STATIC) || p.isClassVarDeclAhead() {
		init, err := p.parseLocalVarDecl() // consumes the semicolon
		if err != nil {
			return nil, err
		}
		stmt.Init = init
	} else {
		start := p.peek()
		x, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(SEMICOLON); err != nil {
			return nil, err
		}
		stmt.Init = &ExpressionStmt{node: p.locOf(start), X: x}
	}

	if !p.match(SEMICOLON) {
		cond, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Cond = cond
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}

	if !p.match(RPAREN) {
		post, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Post = post
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}

	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	return stmt, nil
}

func (p *Parser) parseReturn() (*ReturnStmt, error) {
	kw := p.advance()
	stmt := &ReturnStmt{node: p.locOf(kw)}
	if !p.match(SEMICOLON) {
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Value = value
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseTryCatch() (*TryCatchStmt, error) {
	kw := p.advance()
	try, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(CATCH); err != nil {
		return nil, err
	}
	catch, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &TryCatchStmt{node: p.locOf(kw), Try: try, Catch: catch}, nil
}

// parseSwitch parses switch (value) {...} or the unchecked switch [value]
// {...} form.
func (p *Parser) parseSwitch() (*SwitchStmt, error) {
	kw := p.advance()
	stmt := &SwitchStmt{node: p.locOf(kw), Cases: []*CaseClause{}}

	if p.match(LBRACKET) {
		p.advance()
		stmt.Unchecked = true
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Value = value
		if _, err := p.expect(RBRACKET); err != nil {
			return nil, err
		}
	} else {
		if _, err := p.expect(LPAREN); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Value = value
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(LBRACE); err != nil {
		return nil, err
	}
	for !p.match(RBRACE, EOF) {
		c, err := p.parseCaseClause()
		if err != nil {
			return nil, err
		}
		stmt.Cases = append(stmt.Cases, c)
	}
	if _, err := p.expect(RBRACE); err != nil {
		return nil, err
	}
	return stmt, nil
}

func newCaseClause(n node) *CaseClause {
	return &CaseClause{
		node:     n,
		Values:   []int64{},
		Body:     []Stmt{},
		SubStart: []Stmt{},
		SubEnd:   []Stmt{},
		Cases:    []*CaseClause{},
	}
}

// parseCaseClause parses one clause: a case value list, a case range, the
// default (auto) clause, or a start:/end: subswitch group around nested
// clauses.
func (p *Parser) parseCaseClause() (*CaseClause, error) {
	tok := p.peek()
	switch tok.Type {
	case CASE:
		p.advance()
		c := newCaseClause(p.locOf(tok))
		first, err := p.parseCaseValue()
		if err != nil {
			return nil, err
		}
		c.Values = append(c.Values, first)

		if p.match(ELLIPSIS) {
			p.advance()
			hi, err := p.parseCaseValue()
			if err != nil {
				return nil, err
			}
			c.Values = append(c.Values, hi)
			c.IsRange = true
		} else {
			for p.match(COMMA) {
				p.advance()
				v, err := p.parseCaseValue()
				if err != nil {
					return nil, err
				}
				c.Values = append(c.Values, v)
			}
		}

		if _, err := p.expect(COLON); err != nil {
			return nil, err
		}
		body, err := p.parseCaseBody()
		if err != nil {
			return nil, err
		}
		c.Body = body
		return c, nil

	case DEFAULT:
		p.advance()
		if _, err := p.expect(COLON); err != nil {
			return nil, err
		}
		c := newCaseClause(p.locOf(tok))
		c.IsAuto = true
		body, err := p.parseCaseBody()
		if err != nil {
			return nil, err
		}
		c.Body = body
		return c, nil

	case START:
		p.advance()
		if _, err := p.expect(COLON); err != nil {
			return nil, err
		}
		c := newCaseClause(p.locOf(tok))
		c.IsSub = true

		prologue, err := p.parseCaseBody()
		if err != nil {
			return nil, err
		}
		c.SubStart = prologue

		for p.match(CASE, DEFAULT) {
			nested, err := p.parseCaseClause()
			if err != nil {
				return nil, err
			}
			c.Cases = append(c.Cases, nested)
		}

		if _, err := p.expect(END); err != nil {
			return nil, err
		}
		if _, err := p.expect(COLON); err != nil {
			return nil, err
		}
		epilogue, err := p.parseCaseBody()
		if err != nil {
			return nil, err
		}
		c.SubEnd = epilogue
		return c, nil

	default:
		return nil, p.fmtError(tok, "expected case clause, got %s (%q)", tok.Type, tok.Lexeme)
	}
}

// parseCaseBody collects statements until the next clause marker or the
// end of the switch body.
func (p *Parser) parseCaseBody() ([]Stmt, error) {
	stmts := []Stmt{}
	for !p.match(CASE, DEFAULT, START, END, RBRACE, EOF) {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}

// parseCaseValue accepts an integer or char literal, optionally negated.
func (p *Parser) parseCaseValue() (int64, error) {
	neg := false
	if p.match(MINUS) {
		p.advance()
		neg = true
	}
	tok := p.peek()
	var v int64
	switch tok.Type {
	case INTEGER:
		v = tok.Int
	case CHAR:
		v = int64(tok.Word)
	default:
		return 0, p.fmtError(tok, "expected case value, got %s (%q)", tok.Type, tok.Lexeme)
	}
	p.advance()
	if neg {
		v = -v
	}
	return v, nil
}

//  Expressions

// parseExpression is the entry point for expression parsing.
func (p *Parser) parseExpression() (Expr, error) {
	return p.parseAssignment()
}

// isAssignOp reports whether the current token is an assignment operator,
// simple or compound.
func (p *Parser) isAssignOp() bool {
	return p.match(EQUAL, PLUS_EQUAL, MINUS_EQUAL, STAR_EQUAL, SLASH_EQUAL,
		PERCENT_EQUAL, AMP_EQUAL, PIPE_EQUAL, CARET_EQUAL,
		LEFT_SHIFT_EQUAL, RIGHT_SHIFT_EQUAL)
}

// isComparisonOp reports whether the current token belongs to the chained
// relational tier.
func (p *Parser) isComparisonOp() bool {
	return p.match(LESS, GREATER, LESS_EQUAL, GREATER_EQUAL, EQUAL_EQUAL, BANG_EQUAL)
}

// parseAssignment handles = and the compound forms, right-associatively.
// When no assignment operator follows, the lower-tier expression is
// returned unchanged.
func (p *Parser) parseAssignment() (Expr, error) {
	expr, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if p.isAssignOp() {
		op := p.advance().Type
		right, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return &BinaryOp{Op: op, Left: expr, Right: right}, nil
	}
	return expr, nil
}

// parseLogicalOr handles ||
func (p *Parser) parseLogicalOr() (Expr, error) {
	expr, err := p.parseLogicalXor()
	if err != nil {
		return nil, err
	}
	for p.match(PIPE_PIPE) {
		op := p.advance().Type
		right, err := p.parseLogicalXor()
		if err != nil {
			return nil, err
		}
		expr = &BinaryOp{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

// parseLogicalXor handles ^^
func (p *Parser) parseLogicalXor() (Expr, error) {
	expr, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.match(CARET_CARET) {
		op := p.advance().Type
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		expr = &BinaryOp{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

// parseLogicalAnd handles &&
func (p *Parser) parseLogicalAnd() (Expr, error) {
	expr, err := p.parseBitwiseOr()
	if err != nil {
		return nil, err
	}
	for p.match(AMP_AMP) {
		op := p.advance().Type
		right, err := p.parseBitwiseOr()
		if err != nil {
			return nil, err
		}
		expr = &BinaryOp{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

// parseBitwiseOr handles |
func (p *Parser) parseBitwiseOr() (Expr, error) {
	expr, err := p.parseBitwiseXor()
	if err != nil {
		return nil, err
	}
	for p.match(PIPE) {
		op := p.advance().Type
		right, err := p.parseBitwiseXor()
		if err != nil {
			return nil, err
		}
		expr = &BinaryOp{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

// parseBitwiseXor handles ^
func (p *Parser) parseBitwiseXor() (Expr, error) {
	expr, err := p.parseBitwiseAnd()
	if err != nil {
		return nil, err
	}
	for p.match(CARET) {
		op := p.advance().Type
		right, err := p.parseBitwiseAnd()
		if err != nil {
			return nil, err
		}
		expr = &BinaryOp{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

// parseBitwiseAnd handles binary &. Unary & (address-of) is handled in
// parseUnary and is never seen here.
func (p *Parser) parseBitwiseAnd() (Expr, error) {
	expr, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.match(AMPERSAND) {
		op := p.advance().Type
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		expr = &BinaryOp{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

// parseEquality handles == and != that survive past the relational tier.
func (p *Parser) parseEquality() (Expr, error) {
	expr, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.match(EQUAL_EQUAL, BANG_EQUAL) {
		op := p.advance().Type
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		expr = &BinaryOp{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

// parseComparison handles the chained relational tier. A run of
// comparisons collects all operands and operators left to right, then
// folds into a leftward-nesting logical AND of adjacent pairs:
// a<b<=c  =>  (a<b) && (b<=c). A single comparison folds to itself.
func (p *Parser) parseComparison() (Expr, error) {
	left, err := p.parseShift()
	if err != nil {
		return nil, err
	}
	if !p.isComparisonOp() {
		return left, nil
	}

	var ops []TokenType
	operands := []Expr{left}
	for p.isComparisonOp() {
		op := p.advance().Type
		right, err := p.parseShift()
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
		operands = append(operands, right)
	}

	result := Expr(&BinaryOp{Op: ops[0], Left: operands[0], Right: operands[1]})
	for i := 1; i < len(ops); i++ {
		next := &BinaryOp{Op: ops[i], Left: operands[i], Right: operands[i+1]}
		result = &BinaryOp{Op: AMP_AMP, Left: result, Right: next}
	}
	return result, nil
}

// parseShift handles << and >>
func (p *Parser) parseShift() (Expr, error) {
	expr, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.match(LEFT_SHIFT, RIGHT_SHIFT) {
		op := p.advance().Type
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		expr = &BinaryOp{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

// parseAdditive handles + and -
func (p *Parser) parseAdditive() (Expr, error) {
	expr, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.match(PLUS, MINUS) {
		op := p.advance().Type
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		expr = &BinaryOp{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

// parseMultiplicative handles *, / and %
func (p *Parser) parseMultiplicative() (Expr, error) {
	expr, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for p.match(STAR, SLASH, PERCENT) {
		op := p.advance().Type
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		expr = &BinaryOp{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

// parsePower handles the backtick exponentiation operator, bound tighter
// than multiplication and looser than unary.
func (p *Parser) parsePower() (Expr, error) {
	expr, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.match(BACKTICK) {
		op := p.advance().Type
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		expr = &BinaryOp{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

// parseUnary handles the prefix operators. * yields the dedicated
// PointerDeref node and & the dedicated AddressOf node.
func (p *Parser) parseUnary() (Expr, error) {
	if p.match(BANG, TILDE, MINUS, PLUS_PLUS, MINUS_MINUS, STAR, AMPERSAND) {
		op := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		switch op.Type {
		case STAR:
			return &PointerDeref{Operand: operand}, nil
		case AMPERSAND:
			return &AddressOf{Operand: operand}, nil
		default:
			return &UnaryOp{Op: op.Type, Operand: operand}, nil
		}
	}
	return p.parsePostfix()
}

// parsePostfix handles the left-associative chain of array indexing,
// member access / method calls, direct calls, and trailing ++/--.
func (p *Parser) parsePostfix() (Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.peek().Type {
		case LBRACKET:
			p.advance()
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(RBRACKET); err != nil {
				return nil, err
			}
			expr = &ArrayAccess{Array: expr, Index: index}

		case ARROW, DOT:
			op := p.advance()
			memberTok, err := p.expect(IDENTIFIER)
			if err != nil {
				return nil, err
			}
			arrow := op.Type == ARROW
			if p.match(LPAREN) {
				p.advance()
				args, err := p.parseArgs()
				if err != nil {
					return nil, err
				}
				expr = &MethodCall{Recv: expr, Method: memberTok.Lexeme, Args: args}
			} else {
				expr = &MemberAccess{Recv: expr, Member: memberTok.Lexeme, Arrow: arrow}
			}

		case LPAREN:
			p.advance()
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			expr = &CallExpr{Callee: expr, Args: args}

		case PLUS_PLUS, MINUS_MINUS:
			op := p.advance()
			expr = &UnaryOp{Op: op.Type, Operand: expr, Postfix: true}

		default:
			return expr, nil
		}
	}
}

// parseArgs parses a call argument list; the opening parenthesis has
// already been consumed.
func (p *Parser) parseArgs() ([]Expr, error) {
	args := []Expr{}
	if !p.match(RPAREN) {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(COMMA) {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}

// parsePrimary handles literals, grouping, this, sizeof, offset, and bare
// names. Literals get the fixed static type of their token kind.
func (p *Parser) parsePrimary() (Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case INTEGER:
		p.advance()
		return &Literal{Value: tok.Int, Type: TypeI64}, nil

	case FLOAT:
		p.advance()
		return &Literal{Value: tok.Float, Type: TypeF64}, nil

	case STRING:
		p.advance()
		return &Literal{Value: tok.Str, Type: NewPointer(TypeU8, 1)}, nil

	case CHAR:
		p.advance()
		return &Literal{Value: tok.Word, Type: TypeU64}, nil

	case LPAREN:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return expr, nil

	case THIS:
		p.advance()
		return &ThisExpr{}, nil

	case SIZEOF:
		p.advance()
		if _, err := p.expect(LPAREN); err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return &SizeofExpr{Type: typ}, nil

	case OFFSET:
		p.advance()
		if _, err := p.expect(LPAREN); err != nil {
			return nil, err
		}
		classTok, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(COMMA); err != nil {
			return nil, err
		}
		memberTok, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return &OffsetExpr{ClassName: classTok.Lexeme, Member: memberTok.Lexeme}, nil

	case IDENTIFIER:
		p.advance()
		return &Identifier{Name: tok.Lexeme}, nil

	case LASTCLASS:
		// lastclass appears as a default-argument value.
		p.advance()
		return &Identifier{Name: tok.Lexeme}, nil
	}

	// A bare primitive-type keyword is allowed as a symbolic value.
	if p.isType() {
		p.advance()
		return &Identifier{Name: tok.Lexeme}, nil
	}

	return nil, p.fmtError(tok, "expected expression, got %s (%q)", tok.Type, tok.Lexeme)
}
