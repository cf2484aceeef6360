package compiler

// Visitor dispatches on the concrete variant of every AST node. The
// interface enumerates one method per variant, so a visitor with missing
// coverage is a compile-time error rather than a silent fallthrough.
// Child nodes are not walked implicitly; each handler descends as needed.
type Visitor interface {
	// Declarations
	VisitProgram(n *Program) error
	VisitFunctionDecl(n *FunctionDecl) error
	VisitMethodDecl(n *MethodDecl) error
	VisitVarDecl(n *VarDecl) error
	VisitClassDecl(n *ClassDecl) error
	VisitUnionDecl(n *UnionDecl) error
	VisitExternDecl(n *ExternDecl) error

	// Statements
	VisitBlock(n *Block) error
	VisitExpressionStmt(n *ExpressionStmt) error
	VisitIfStmt(n *IfStmt) error
	VisitWhileStmt(n *WhileStmt) error
	VisitForStmt(n *ForStmt) error
	VisitSwitchStmt(n *SwitchStmt) error
	VisitCaseClause(n *CaseClause) error
	VisitReturnStmt(n *ReturnStmt) error
	VisitTryCatchStmt(n *TryCatchStmt) error
	VisitThrowStmt(n *ThrowStmt) error
	VisitGotoStmt(n *GotoStmt) error
	VisitLabelStmt(n *LabelStmt) error
	VisitLockStmt(n *LockStmt) error
	VisitBreakStmt(n *BreakStmt) error

	// Expressions
	VisitBinaryOp(n *BinaryOp) error
	VisitUnaryOp(n *UnaryOp) error
	VisitCallExpr(n *CallExpr) error
	VisitMethodCall(n *MethodCall) error
	VisitMemberAccess(n *MemberAccess) error
	VisitArrayAccess(n *ArrayAccess) error
	VisitPointerDeref(n *PointerDeref) error
	VisitAddressOf(n *AddressOf) error
	VisitLiteral(n *Literal) error
	VisitIdentifier(n *Identifier) error
	VisitThisExpr(n *ThisExpr) error
	VisitSizeofExpr(n *SizeofExpr) error
	VisitOffsetExpr(n *OffsetExpr) error
}

func (n *Program) Accept(v Visitor) error        { return v.VisitProgram(n) }
func (n *FunctionDecl) Accept(v Visitor) error   { return v.VisitFunctionDecl(n) }
func (n *MethodDecl) Accept(v Visitor) error     { return v.VisitMethodDecl(n) }
func (n *VarDecl) Accept(v Visitor) error        { return v.VisitVarDecl(n) }
func (n *ClassDecl) Accept(v Visitor) error      { return v.VisitClassDecl(n) }
func (n *UnionDecl) Accept(v Visitor) error      { return v.VisitUnionDecl(n) }
func (n *ExternDecl) Accept(v Visitor) error     { return v.VisitExternDecl(n) }
func (n *Block) Accept(v Visitor) error          { return v.VisitBlock(n) }
func (n *ExpressionStmt) Accept(v Visitor) error { return v.VisitExpressionStmt(n) }
func (n *IfStmt) Accept(v Visitor) error         { return v.VisitIfStmt(n) }
func (n *WhileStmt) Accept(v Visitor) error      { return v.VisitWhileStmt(n) }
func (n *ForStmt) Accept(v Visitor) error        { return v.VisitForStmt(n) }
func (n *SwitchStmt) Accept(v Visitor) error     { return v.VisitSwitchStmt(n) }
func (n *CaseClause) Accept(v Visitor) error     { return v.VisitCaseClause(n) }
func (n *ReturnStmt) Accept(v Visitor) error     { return v.VisitReturnStmt(n) }
func (n *TryCatchStmt) Accept(v Visitor) error   { return v.VisitTryCatchStmt(n) }
func (n *ThrowStmt) Accept(v Visitor) error      { return v.VisitThrowStmt(n) }
func (n *GotoStmt) Accept(v Visitor) error       { return v.VisitGotoStmt(n) }
func (n *LabelStmt) Accept(v Visitor) error      { return v.VisitLabelStmt(n) }
func (n *LockStmt) Accept(v Visitor) error       { return v.VisitLockStmt(n) }
func (n *BreakStmt) Accept(v Visitor) error      { return v.VisitBreakStmt(n) }
func (n *BinaryOp) Accept(v Visitor) error       { return v.VisitBinaryOp(n) }
func (n *UnaryOp) Accept(v Visitor) error        { return v.VisitUnaryOp(n) }
func (n *CallExpr) Accept(v Visitor) error       { return v.VisitCallExpr(n) }
func (n *MethodCall) Accept(v Visitor) error     { return v.VisitMethodCall(n) }
func (n *MemberAccess) Accept(v Visitor) error   { return v.VisitMemberAccess(n) }
func (n *ArrayAccess) Accept(v Visitor) error    { return v.VisitArrayAccess(n) }
func (n *PointerDeref) Accept(v Visitor) error   { return v.VisitPointerDeref(n) }
func (n *AddressOf) Accept(v Visitor) error      { return v.VisitAddressOf(n) }
func (n *Literal) Accept(v Visitor) error        { return v.VisitLiteral(n) }
func (n *Identifier) Accept(v Visitor) error     { return v.VisitIdentifier(n) }
func (n *ThisExpr) Accept(v Visitor) error       { return v.VisitThisExpr(n) }
func (n *SizeofExpr) Accept(v Visitor) error     { return v.VisitSizeofExpr(n) }
func (n *OffsetExpr) Accept(v Visitor) error     { return v.VisitOffsetExpr(n) }
