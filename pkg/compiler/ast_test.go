package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeString(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{
			"Binary",
			&BinaryOp{Op: PLUS, Left: ident("a"), Right: ident("b")},
			"(Identifier(a) + Identifier(b))",
		},
		{
			"Nested Binary",
			&BinaryOp{Op: STAR, Left: lit(2), Right: &BinaryOp{
				Op: BACKTICK, Left: ident("x"), Right: lit(3),
			}},
			"(Literal(2) * (Identifier(x) ` Literal(3)))",
		},
		{
			"Prefix Unary",
			&UnaryOp{Op: MINUS, Operand: ident("x")},
			"(-Identifier(x))",
		},
		{
			"Postfix Unary",
			&UnaryOp{Op: PLUS_PLUS, Operand: ident("x"), Postfix: true},
			"(Identifier(x)++)",
		},
		{"Deref", &PointerDeref{Operand: ident("p")}, "PointerDeref(*Identifier(p))"},
		{"Address Of", &AddressOf{Operand: ident("x")}, "AddressOf(&Identifier(x))"},
		{
			"Dot Member",
			&MemberAccess{Recv: ident("pt"), Member: "x"},
			"MemberAccess(Identifier(pt).x)",
		},
		{
			"Arrow Member",
			&MemberAccess{Recv: &ThisExpr{}, Member: "x", Arrow: true},
			"MemberAccess(ThisExpr()->x)",
		},
		{"Var Decl", &VarDecl{Type: NewPointer(TypeU8, 1), Name: "s"}, "VarDecl(uint8_t* s)"},
		{"Class Decl", &ClassDecl{Name: "Point", Base: "Shape"}, "ClassDecl(Point : Shape)"},
		{"Plain Class Decl", &ClassDecl{Name: "Point"}, "ClassDecl(Point)"},
		{"Range Case", &CaseClause{Values: []int64{5, 10}, IsRange: true}, "CaseClause(5...10)"},
		{"Value List Case", &CaseClause{Values: []int64{1, 2, 3}}, "CaseClause(1,2,3)"},
		{"Auto Case", &CaseClause{IsAuto: true}, "CaseClause(auto)"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.node.String())
		})
	}
}

func TestSourceLoc(t *testing.T) {
	assert.False(t, SourceLoc{}.IsValid())
	assert.Equal(t, "-", SourceLoc{}.String())
	assert.Equal(t, "3:7", SourceLoc{Line: 3, Col: 7}.String())
	assert.Equal(t, "kernel.HC:3:7", SourceLoc{File: "kernel.HC", Line: 3, Col: 7}.String())
}

// countingVisitor implements the full Visitor interface, so this file
// fails to compile if a node variant is added without a Visit method.
type countingVisitor struct {
	visited map[string]int
}

func newCountingVisitor() *countingVisitor {
	return &countingVisitor{visited: map[string]int{}}
}

func (c *countingVisitor) hit(name string) error {
	c.visited[name]++
	return nil
}

func (c *countingVisitor) VisitProgram(n *Program) error {
	c.hit("Program")
	for _, d := range n.Decls {
		if err := d.Accept(c); err != nil {
			return err
		}
	}
	return nil
}

func (c *countingVisitor) VisitFunctionDecl(n *FunctionDecl) error {
	c.hit("FunctionDecl")
	if n.Body != nil {
		return n.Body.Accept(c)
	}
	return nil
}

func (c *countingVisitor) VisitMethodDecl(n *MethodDecl) error {
	c.hit("MethodDecl")
	if n.Body != nil {
		return n.Body.Accept(c)
	}
	return nil
}

func (c *countingVisitor) VisitVarDecl(n *VarDecl) error {
	c.hit("VarDecl")
	if n.Init != nil {
		return n.Init.Accept(c)
	}
	return nil
}

func (c *countingVisitor) VisitClassDecl(n *ClassDecl) error {
	c.hit("ClassDecl")
	for _, m := range n.Members {
		if err := m.Accept(c); err != nil {
			return err
		}
	}
	for _, m := range n.Methods {
		if err := m.Accept(c); err != nil {
			return err
		}
	}
	return nil
}

func (c *countingVisitor) VisitUnionDecl(n *UnionDecl) error {
	c.hit("UnionDecl")
	for _, m := range n.Members {
		if err := m.Accept(c); err != nil {
			return err
		}
	}
	return nil
}

func (c *countingVisitor) VisitExternDecl(n *ExternDecl) error { return c.hit("ExternDecl") }

func (c *countingVisitor) VisitBlock(n *Block) error {
	c.hit("Block")
	for _, s := range n.Stmts {
		if err := s.Accept(c); err != nil {
			return err
		}
	}
	return nil
}

func (c *countingVisitor) VisitExpressionStmt(n *ExpressionStmt) error {
	c.hit("ExpressionStmt")
	return n.X.Accept(c)
}

func (c *countingVisitor) VisitIfStmt(n *IfStmt) error {
	c.hit("IfStmt")
	if err := n.Cond.Accept(c); err != nil {
		return err
	}
	if err := n.Then.Accept(c); err != nil {
		return err
	}
	if n.Else != nil {
		return n.Else.Accept(c)
	}
	return nil
}

func (c *countingVisitor) VisitWhileStmt(n *WhileStmt) error {
	c.hit("WhileStmt")
	if err := n.Cond.Accept(c); err != nil {
		return err
	}
	return n.Body.Accept(c)
}

func (c *countingVisitor) VisitForStmt(n *ForStmt) error {
	c.hit("ForStmt")
	return n.Body.Accept(c)
}

func (c *countingVisitor) VisitSwitchStmt(n *SwitchStmt) error {
	c.hit("SwitchStmt")
	if err := n.Value.Accept(c); err != nil {
		return err
	}
	for _, cc := range n.Cases {
		if err := cc.Accept(c); err != nil {
			return err
		}
	}
	return nil
}

func (c *countingVisitor) VisitCaseClause(n *CaseClause) error {
	c.hit("CaseClause")
	for _, s := range n.Body {
		if err := s.Accept(c); err != nil {
			return err
		}
	}
	for _, cc := range n.Cases {
		if err := cc.Accept(c); err != nil {
			return err
		}
	}
	return nil
}

func (c *countingVisitor) VisitReturnStmt(n *ReturnStmt) error {
	c.hit("ReturnStmt")
	if n.Value != nil {
		return n.Value.Accept(c)
	}
	return nil
}

func (c *countingVisitor) VisitTryCatchStmt(n *TryCatchStmt) error {
	c.hit("TryCatchStmt")
	if err := n.Try.Accept(c); err != nil {
		return err
	}
	return n.Catch.Accept(c)
}

func (c *countingVisitor) VisitThrowStmt(n *ThrowStmt) error {
	c.hit("ThrowStmt")
	return n.Value.Accept(c)
}

func (c *countingVisitor) VisitGotoStmt(n *GotoStmt) error   { return c.hit("GotoStmt") }
func (c *countingVisitor) VisitLabelStmt(n *LabelStmt) error { return c.hit("LabelStmt") }

func (c *countingVisitor) VisitLockStmt(n *LockStmt) error {
	c.hit("LockStmt")
	return n.Body.Accept(c)
}

func (c *countingVisitor) VisitBreakStmt(n *BreakStmt) error { return c.hit("BreakStmt") }

func (c *countingVisitor) VisitBinaryOp(n *BinaryOp) error {
	c.hit("BinaryOp")
	if err := n.Left.Accept(c); err != nil {
		return err
	}
	return n.Right.Accept(c)
}

func (c *countingVisitor) VisitUnaryOp(n *UnaryOp) error {
	c.hit("UnaryOp")
	return n.Operand.Accept(c)
}

func (c *countingVisitor) VisitCallExpr(n *CallExpr) error {
	c.hit("CallExpr")
	if err := n.Callee.Accept(c); err != nil {
		return err
	}
	for _, a := range n.Args {
		if err := a.Accept(c); err != nil {
			return err
		}
	}
	return nil
}

func (c *countingVisitor) VisitMethodCall(n *MethodCall) error {
	c.hit("MethodCall")
	if err := n.Recv.Accept(c); err != nil {
		return err
	}
	for _, a := range n.Args {
		if err := a.Accept(c); err != nil {
			return err
		}
	}
	return nil
}

func (c *countingVisitor) VisitMemberAccess(n *MemberAccess) error {
	c.hit("MemberAccess")
	return n.Recv.Accept(c)
}

func (c *countingVisitor) VisitArrayAccess(n *ArrayAccess) error {
	c.hit("ArrayAccess")
	if err := n.Array.Accept(c); err != nil {
		return err
	}
	return n.Index.Accept(c)
}

func (c *countingVisitor) VisitPointerDeref(n *PointerDeref) error {
	c.hit("PointerDeref")
	return n.Operand.Accept(c)
}

func (c *countingVisitor) VisitAddressOf(n *AddressOf) error {
	c.hit("AddressOf")
	return n.Operand.Accept(c)
}

func (c *countingVisitor) VisitLiteral(n *Literal) error       { return c.hit("Literal") }
func (c *countingVisitor) VisitIdentifier(n *Identifier) error { return c.hit("Identifier") }
func (c *countingVisitor) VisitThisExpr(n *ThisExpr) error     { return c.hit("ThisExpr") }
func (c *countingVisitor) VisitSizeofExpr(n *SizeofExpr) error { return c.hit("SizeofExpr") }
func (c *countingVisitor) VisitOffsetExpr(n *OffsetExpr) error { return c.hit("OffsetExpr") }

var _ Visitor = (*countingVisitor)(nil)

func TestVisitorDispatch(t *testing.T) {
	prog := parseProgram(t, `
class Acc {
  I64 total;
  U0 Add(I64 v) { this->total += v; }
};

I64 gCount = 0;

U0 Main() {
  Acc *a;
  for (I64 i = 0; i < 3; i++) {
    a->Add(i);
  }
  if (gCount > 0) PrintAll("done");
}`)

	v := newCountingVisitor()
	require.NoError(t, prog.Accept(v))

	// MethodDecl must dispatch to VisitMethodDecl, never to the embedded
	// FunctionDecl handler.
	assert.Equal(t, 1, v.visited["MethodDecl"])
	assert.Equal(t, 1, v.visited["FunctionDecl"], "only Main is a plain function")

	assert.Equal(t, 1, v.visited["ClassDecl"])
	assert.Equal(t, 1, v.visited["MethodCall"])
	assert.Equal(t, 1, v.visited["ThisExpr"])
	assert.Equal(t, 1, v.visited["ForStmt"])
	assert.Equal(t, 1, v.visited["IfStmt"])
	assert.Equal(t, 1, v.visited["CallExpr"])
	assert.GreaterOrEqual(t, v.visited["VarDecl"], 3)
}
