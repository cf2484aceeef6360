package compiler

import (
	"fmt"
	"strings"
)

// SourceLoc is an optional source position tag. The zero value means
// "no location recorded".
type SourceLoc struct {
	File string
	Line int
	Col  int
}

func (s SourceLoc) IsValid() bool { return s.Line > 0 }

func (s SourceLoc) String() string {
	if !s.IsValid() {
		return "-"
	}
	if s.File != "" {
		return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Col)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Col)
}

// node carries the optional location tag shared by every AST node.
type node struct {
	Loc SourceLoc
}

func (n node) Pos() SourceLoc { return n.Loc }

// Node is implemented by every AST node. Nodes exclusively own their
// children, carry no parent or token-stream back-references, and are
// immutable once the parser returns.
type Node interface {
	Pos() SourceLoc
	String() string
	Accept(v Visitor) error
}

// Decl is implemented by declaration nodes.
type Decl interface {
	Node
	declNode()
}

// Stmt is implemented by statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by every node that produces a value.
type Expr interface {
	Node
	exprNode()
}

//  Declaration nodes

// Program is the unique root, owning the ordered top-level declarations.
type Program struct {
	node
	Decls []Decl
}

func (*Program) declNode() {}
func (p *Program) String() string {
	return fmt.Sprintf("Program(%d declarations)", len(p.Decls))
}

// Parameter is one formal parameter of a function, method or extern. It
// is owned by the enclosing declaration and is not itself an AST node.
type Parameter struct {
	Type    Type
	Name    string
	Default Expr // optional default value, nil when absent
}

func (p *Parameter) String() string {
	return fmt.Sprintf("Parameter(%s %s)", p.Type, p.Name)
}

// FunctionDecl represents  retType Name(params) { body }
// A nil Body is a forward declaration.
type FunctionDecl struct {
	node
	Return     Type
	Name       string
	Params     []*Parameter
	Body       *Block
	Attributes []string // e.g. "public", "reg"; always non-nil
}

func (*FunctionDecl) declNode() {}
func (f *FunctionDecl) String() string {
	return fmt.Sprintf("FunctionDecl(%s %s)", f.Return, f.Name)
}

// MethodDecl is a FunctionDecl owned by a class.
type MethodDecl struct {
	FunctionDecl
	ClassName     string
	IsConstructor bool // name equals the owning class name
}

func (m *MethodDecl) String() string {
	return fmt.Sprintf("MethodDecl(%s::%s)", m.ClassName, m.Name)
}

// VarDecl represents  type name = init;  at global, local or member scope.
type VarDecl struct {
	node
	Type       Type
	Name       string
	Init       Expr // optional initializer, nil when absent
	IsGlobal   bool
	IsStatic   bool
	Attributes []string // always non-nil
}

func (*VarDecl) declNode() {}
func (*VarDecl) stmtNode() {}
func (v *VarDecl) String() string {
	return fmt.Sprintf("VarDecl(%s %s)", v.Type, v.Name)
}

// ClassDecl represents  class Name : Base { members methods };
// Base stays an unresolved name; binding it is a semantic-analysis concern.
type ClassDecl struct {
	node
	Name    string
	Members []*VarDecl
	Methods []*MethodDecl
	Base    string // "" when absent
}

func (*ClassDecl) declNode() {}
func (c *ClassDecl) String() string {
	if c.Base != "" {
		return fmt.Sprintf("ClassDecl(%s : %s)", c.Name, c.Base)
	}
	return fmt.Sprintf("ClassDecl(%s)", c.Name)
}

// UnionDecl represents  union Name { members };  Members share storage;
// no offsets are computed at this layer.
type UnionDecl struct {
	node
	Name      string
	Members   []*VarDecl
	TagPrefix string
}

func (*UnionDecl) declNode() {}
func (u *UnionDecl) String() string {
	return fmt.Sprintf("UnionDecl(%s)", u.Name)
}

// ExternDecl represents the four external-linkage forms:
//
//	extern  U0 Foo(I64 x);
//	import  U0 Foo(I64 x);
//	_extern Sym U0 Foo(I64 x);
//	_import Sym U0 Foo(I64 x);
type ExternDecl struct {
	node
	Return       Type
	Name         string
	Params       []*Parameter
	ExternalName string // linkage alias, "" when absent
	IsImport     bool
}

func (*ExternDecl) declNode() {}
func (e *ExternDecl) String() string {
	kind := "extern"
	if e.IsImport {
		kind = "import"
	}
	if e.ExternalName != "" {
		return fmt.Sprintf("ExternDecl(%s %s as %s)", kind, e.Name, e.ExternalName)
	}
	return fmt.Sprintf("ExternDecl(%s %s)", kind, e.Name)
}

//  Statement nodes

// Block represents { statement ... } and owns its scope.
type Block struct {
	node
	Stmts []Stmt
}

func (*Block) stmtNode() {}
func (b *Block) String() string {
	return fmt.Sprintf("Block(%d statements)", len(b.Stmts))
}

// ExpressionStmt is an expression evaluated for its side effects.
type ExpressionStmt struct {
	node
	X Expr
}

func (*ExpressionStmt) stmtNode() {}
func (e *ExpressionStmt) String() string {
	return fmt.Sprintf("ExpressionStmt(%s)", e.X)
}

// IfStmt represents if (cond) { ... } [else { ... }]
type IfStmt struct {
	node
	Cond Expr
	Then *Block
	Else *Block // nil when absent
}

func (*IfStmt) stmtNode() {}
func (i *IfStmt) String() string {
	if i.Else != nil {
		return "IfStmt(if/else)"
	}
	return "IfStmt(if)"
}

// WhileStmt represents while (cond) { ... }
type WhileStmt struct {
	node
	Cond Expr
	Body *Block
}

func (*WhileStmt) stmtNode() {}
func (w *WhileStmt) String() string {
	return fmt.Sprintf("WhileStmt(%s)", w.Cond)
}

// ForStmt represents the C-style for (init; cond; post) { ... }
// All three header slots are optional.
type ForStmt struct {
	node
	Init Stmt // VarDecl or ExpressionStmt, nil when absent
	Cond Expr
	Post Expr
	Body *Block
}

func (*ForStmt) stmtNode() {}
func (f *ForStmt) String() string {
	return "ForStmt()"
}

// CaseClause is one clause of a switch body. Exactly one shape applies:
// a value list, an inclusive two-bound range, the auto (default) clause,
// or a subswitch group with its own prologue and epilogue around nested
// clauses. The statement lists are always non-nil.
type CaseClause struct {
	node
	Values   []int64 // case values; exactly two entries when IsRange
	IsRange  bool
	IsAuto   bool // default: clause
	Body     []Stmt
	IsSub    bool          // start: ... end: subswitch group
	SubStart []Stmt        // prologue before the first nested clause
	SubEnd   []Stmt        // epilogue after end:
	Cases    []*CaseClause // nested clauses of a subswitch
}

func (c *CaseClause) String() string {
	switch {
	case c.IsAuto:
		return "CaseClause(auto)"
	case c.IsSub:
		return fmt.Sprintf("CaseClause(subswitch, %d cases)", len(c.Cases))
	case c.IsRange:
		return fmt.Sprintf("CaseClause(%d...%d)", c.Values[0], c.Values[1])
	default:
		parts := make([]string, len(c.Values))
		for i, v := range c.Values {
			parts[i] = fmt.Sprintf("%d", v)
		}
		return fmt.Sprintf("CaseClause(%s)", strings.Join(parts, ","))
	}
}

// SwitchStmt represents switch (value) { clauses } or the unchecked form
// switch [value] { clauses }.
type SwitchStmt struct {
	node
	Value     Expr
	Cases     []*CaseClause
	Unchecked bool
}

func (*SwitchStmt) stmtNode() {}
func (s *SwitchStmt) String() string {
	kind := "switch"
	if s.Unchecked {
		kind = "switch[]"
	}
	return fmt.Sprintf("SwitchStmt(%s, %d cases)", kind, len(s.Cases))
}

// ReturnStmt represents return [expr];
type ReturnStmt struct {
	node
	Value Expr // nil for a bare return
}

func (*ReturnStmt) stmtNode() {}
func (r *ReturnStmt) String() string {
	if r.Value == nil {
		return "ReturnStmt()"
	}
	return fmt.Sprintf("ReturnStmt(%s)", r.Value)
}

// TryCatchStmt represents try { ... } catch { ... } with exactly one
// catch and no positional type filter.
type TryCatchStmt struct {
	node
	Try   *Block
	Catch *Block
}

func (*TryCatchStmt) stmtNode() {}
func (t *TryCatchStmt) String() string {
	return "TryCatchStmt()"
}

// ThrowStmt represents throw expr;  Only the syntax is recognized here.
type ThrowStmt struct {
	node
	Value Expr
}

func (*ThrowStmt) stmtNode() {}
func (t *ThrowStmt) String() string {
	return fmt.Sprintf("ThrowStmt(%s)", t.Value)
}

// GotoStmt represents goto label;
type GotoStmt struct {
	node
	Label string
}

func (*GotoStmt) stmtNode() {}
func (g *GotoStmt) String() string {
	return fmt.Sprintf("GotoStmt(%s)", g.Label)
}

// LabelStmt represents label:
type LabelStmt struct {
	node
	Name string
}

func (*LabelStmt) stmtNode() {}
func (l *LabelStmt) String() string {
	return fmt.Sprintf("LabelStmt(%s)", l.Name)
}

// LockStmt represents lock { ... }  Only the syntax is recognized here.
type LockStmt struct {
	node
	Body *Block
}

func (*LockStmt) stmtNode() {}
func (l *LockStmt) String() string {
	return "LockStmt()"
}

// BreakStmt represents break;
type BreakStmt struct {
	node
}

func (*BreakStmt) stmtNode() {}
func (b *BreakStmt) String() string {
	return "BreakStmt()"
}

//  Expression nodes

// BinaryOp represents Left Op Right, including assignment and compound
// assignment forms.
type BinaryOp struct {
	node
	Op    TokenType
	Left  Expr
	Right Expr
}

func (*BinaryOp) exprNode() {}
func (b *BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op.Symbol(), b.Right)
}

// UnaryOp represents a prefix or postfix operator other than the dedicated
// pointer forms (see PointerDeref and AddressOf).
type UnaryOp struct {
	node
	Op      TokenType
	Operand Expr
	Postfix bool
}

func (*UnaryOp) exprNode() {}
func (u *UnaryOp) String() string {
	if u.Postfix {
		return fmt.Sprintf("(%s%s)", u.Operand, u.Op.Symbol())
	}
	return fmt.Sprintf("(%s%s)", u.Op.Symbol(), u.Operand)
}

// CallExpr represents callee(args).
type CallExpr struct {
	node
	Callee Expr
	Args   []Expr
}

func (*CallExpr) exprNode() {}
func (c *CallExpr) String() string {
	return fmt.Sprintf("CallExpr(%s, %d args)", c.Callee, len(c.Args))
}

// MethodCall represents recv.name(args) or recv->name(args).
type MethodCall struct {
	node
	Recv   Expr
	Method string
	Args   []Expr
}

func (*MethodCall) exprNode() {}
func (m *MethodCall) String() string {
	return fmt.Sprintf("MethodCall(%s.%s)", m.Recv, m.Method)
}

// MemberAccess represents recv.member or recv->member.
type MemberAccess struct {
	node
	Recv   Expr
	Member string
	Arrow  bool // true for ->
}

func (*MemberAccess) exprNode() {}
func (m *MemberAccess) String() string {
	op := "."
	if m.Arrow {
		op = "->"
	}
	return fmt.Sprintf("MemberAccess(%s%s%s)", m.Recv, op, m.Member)
}

// ArrayAccess represents array[index].
type ArrayAccess struct {
	node
	Array Expr
	Index Expr
}

func (*ArrayAccess) exprNode() {}
func (a *ArrayAccess) String() string {
	return fmt.Sprintf("ArrayAccess(%s[%s])", a.Array, a.Index)
}

// PointerDeref represents *operand.
type PointerDeref struct {
	node
	Operand Expr
}

func (*PointerDeref) exprNode() {}
func (p *PointerDeref) String() string {
	return fmt.Sprintf("PointerDeref(*%s)", p.Operand)
}

// AddressOf represents &operand.
type AddressOf struct {
	node
	Operand Expr
}

func (*AddressOf) exprNode() {}
func (a *AddressOf) String() string {
	return fmt.Sprintf("AddressOf(&%s)", a.Operand)
}

// Literal is a constant with the fixed static type of its token kind:
// integer → I64 (Value int64), float → F64 (Value float64), string →
// U8* (Value string), char → U64 (Value uint64).
type Literal struct {
	node
	Value any
	Type  Type
}

func (*Literal) exprNode() {}
func (l *Literal) String() string {
	return fmt.Sprintf("Literal(%v)", l.Value)
}

// Identifier is a bare name, including a primitive-type keyword used as a
// symbolic value.
type Identifier struct {
	node
	Name string
}

func (*Identifier) exprNode() {}
func (i *Identifier) String() string {
	return fmt.Sprintf("Identifier(%s)", i.Name)
}

// ThisExpr represents the method receiver keyword.
type ThisExpr struct {
	node
}

func (*ThisExpr) exprNode() {}
func (t *ThisExpr) String() string {
	return "ThisExpr()"
}

// SizeofExpr represents sizeof(type).
type SizeofExpr struct {
	node
	Type Type
}

func (*SizeofExpr) exprNode() {}
func (s *SizeofExpr) String() string {
	return fmt.Sprintf("SizeofExpr(%s)", s.Type)
}

// OffsetExpr computes a member's storage offset by name without evaluating
// any instance.
type OffsetExpr struct {
	node
	ClassName string
	Member    string
}

func (*OffsetExpr) exprNode() {}
func (o *OffsetExpr) String() string {
	return fmt.Sprintf("OffsetExpr(%s, %s)", o.ClassName, o.Member)
}
