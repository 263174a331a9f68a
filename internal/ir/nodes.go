package ir

import "fmt"

// Position locates a node in its source document.
type Position struct {
	File   string
	Line   int
	Column int
}

// String returns "file:line:col", omitting the file when unknown.
func (p Position) String() string {
	if p.Line == 0 && p.File != "" {
		return p.File
	}
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Program is a complete verification program.
type Program struct {
	Domains    []*Domain
	Fields     []*Field
	Functions  []*Function
	Predicates []*Predicate
	Methods    []*Method
}

// Domain declares a background theory: an uninterpreted type together with
// its functions.
type Domain struct {
	Name      string
	TypeVars  []string
	Functions []*DomainFunc
	Pos       Position
}

// DomainFunc is a function declared inside a domain.
type DomainFunc struct {
	Name    string
	Formals []*LocalVarDecl
	Result  *Type
	Domain  string // owning domain name
	Pos     Position
}

// Field declares a heap field.
type Field struct {
	Name string
	Type *Type
	Pos  Position
}

// Function is a heap-dependent pure function. A nil Body makes it abstract.
type Function struct {
	Name    string
	Formals []*LocalVarDecl
	Result  *Type
	Pres    []Expr
	Posts   []Expr
	Body    Expr
	Pos     Position
}

// Predicate is a named, parameterised permission assertion. A nil Body makes
// it abstract.
type Predicate struct {
	Name    string
	Formals []*LocalVarDecl
	Body    Expr
	Pos     Position
}

// Method is a procedure with a statement body. A nil Body marks it abstract.
type Method struct {
	Name    string
	Formals []*LocalVarDecl
	Returns []*LocalVarDecl
	Pres    []Expr
	Posts   []Expr
	Body    *Seqn
	Pos     Position
}

// LocalVarDecl declares a formal argument, return value or scoped local.
type LocalVarDecl struct {
	Name string
	Type *Type
}

// Var returns a reference to the declared variable.
func (d *LocalVarDecl) Var() *LocalVar {
	return &LocalVar{Name: d.Name, Type: d.Type}
}

// --- Statements ---

// Stmt is the interface for all IR statement nodes.
type Stmt interface {
	stmtNode()
}

// Seqn is a statement block. Scoped variables are visible only inside it.
type Seqn struct {
	Stmts  []Stmt
	Scoped []*LocalVarDecl
	Pos    Position
}

func (*Seqn) stmtNode() {}

// LocalVarAssign assigns to a local variable.
type LocalVarAssign struct {
	Target *LocalVar
	Value  Expr
	Pos    Position
}

func (*LocalVarAssign) stmtNode() {}

// FieldAssign assigns to a heap location.
type FieldAssign struct {
	Target *FieldAccess
	Value  Expr
	Pos    Position
}

func (*FieldAssign) stmtNode() {}

// Unfold exchanges a predicate permission for the permissions of its body.
type Unfold struct {
	Acc *PredicateAccessPredicate
	Pos Position
}

func (*Unfold) stmtNode() {}

// Fold exchanges the permissions of a predicate body for the predicate.
type Fold struct {
	Acc *PredicateAccessPredicate
	Pos Position
}

func (*Fold) stmtNode() {}

// Inhale adds the permissions and facts of an assertion.
type Inhale struct {
	Expr Expr
	Pos  Position
}

func (*Inhale) stmtNode() {}

// Exhale removes the permissions of an assertion, checking its facts.
type Exhale struct {
	Expr Expr
	Pos  Position
}

func (*Exhale) stmtNode() {}

// Assert checks an assertion without consuming permissions.
type Assert struct {
	Expr Expr
	Pos  Position
}

func (*Assert) stmtNode() {}

// Assume adds a pure fact to the verification state.
type Assume struct {
	Expr Expr
	Pos  Position
}

func (*Assume) stmtNode() {}

// If is a conditional. Else may be nil.
type If struct {
	Cond Expr
	Then *Seqn
	Else *Seqn
	Pos  Position
}

func (*If) stmtNode() {}

// While is a loop with invariants.
type While struct {
	Cond       Expr
	Invariants []Expr
	Body       *Seqn
	Pos        Position
}

func (*While) stmtNode() {}

// --- Expressions ---

// Expr is the interface for all IR expression nodes.
type Expr interface {
	ExprType() *Type
	exprNode()
}

// BinaryOp identifies a binary operator.
type BinaryOp int

const (
	OpAnd BinaryOp = iota
	OpOr
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
)

var binaryOpSymbols = [...]string{
	OpAnd: "&&",
	OpOr:  "||",
	OpEq:  "==",
	OpNe:  "!=",
	OpLt:  "<",
	OpLe:  "<=",
	OpGt:  ">",
	OpGe:  ">=",
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "\\",
	OpMod: "%",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpSymbols) {
		return binaryOpSymbols[op]
	}
	return fmt.Sprintf("BinaryOp(%d)", int(op))
}

// IsBoolean reports whether the operator yields a Bool.
func (op BinaryOp) IsBoolean() bool {
	return op <= OpGe
}

// UnaryOp identifies a unary operator.
type UnaryOp int

const (
	OpNot UnaryOp = iota
	OpNeg
)

func (op UnaryOp) String() string {
	switch op {
	case OpNot:
		return "!"
	case OpNeg:
		return "-"
	default:
		return fmt.Sprintf("UnaryOp(%d)", int(op))
	}
}

// IntLit represents an integer literal.
type IntLit struct {
	Value int64
}

func (*IntLit) ExprType() *Type { return TypeInt }
func (*IntLit) exprNode()       {}

// BoolLit represents a boolean literal.
type BoolLit struct {
	Value bool
}

func (*BoolLit) ExprType() *Type { return TypeBool }
func (*BoolLit) exprNode()       {}

// NullLit represents the null reference.
type NullLit struct{}

func (*NullLit) ExprType() *Type { return TypeRef }
func (*NullLit) exprNode()       {}

// LocalVar references a formal, return or local variable.
type LocalVar struct {
	Name string
	Type *Type
}

func (e *LocalVar) ExprType() *Type { return e.Type }
func (*LocalVar) exprNode()         {}

// FieldAccess reads a field of a reference.
type FieldAccess struct {
	Receiver Expr
	Field    string
	Type     *Type
}

func (e *FieldAccess) ExprType() *Type { return e.Type }
func (*FieldAccess) exprNode()         {}

// PredicateAccess names one application of a predicate, without a
// permission amount.
type PredicateAccess struct {
	Name string
	Args []Expr
}

func (*PredicateAccess) ExprType() *Type { return TypeBool }
func (*PredicateAccess) exprNode()       {}

// FieldAccessPredicate is acc(e.f, perm).
type FieldAccessPredicate struct {
	Loc  *FieldAccess
	Perm Expr
}

func (*FieldAccessPredicate) ExprType() *Type { return TypeBool }
func (*FieldAccessPredicate) exprNode()       {}

// PredicateAccessPredicate is acc(P(args), perm).
type PredicateAccessPredicate struct {
	Loc  *PredicateAccess
	Perm Expr
}

func (*PredicateAccessPredicate) ExprType() *Type { return TypeBool }
func (*PredicateAccessPredicate) exprNode()       {}

// MagicWand is the resource implication left --* right.
type MagicWand struct {
	Left  Expr
	Right Expr
}

func (*MagicWand) ExprType() *Type { return TypeBool }
func (*MagicWand) exprNode()       {}

// CondExpr is cond ? then : else.
type CondExpr struct {
	Cond Expr
	Then Expr
	Else Expr
}

func (e *CondExpr) ExprType() *Type { return e.Then.ExprType() }
func (*CondExpr) exprNode()         {}

// Implies is left ==> right.
type Implies struct {
	Left  Expr
	Right Expr
}

func (*Implies) ExprType() *Type { return TypeBool }
func (*Implies) exprNode()       {}

// BinaryExpr represents a binary operation other than implication.
type BinaryExpr struct {
	Left  Expr
	Op    BinaryOp
	Right Expr
	Type  *Type
}

func (e *BinaryExpr) ExprType() *Type { return e.Type }
func (*BinaryExpr) exprNode()         {}

// UnaryExpr represents a unary operation.
type UnaryExpr struct {
	Op      UnaryOp
	Operand Expr
	Type    *Type
}

func (e *UnaryExpr) ExprType() *Type { return e.Type }
func (*UnaryExpr) exprNode()         {}

// FuncApp applies a program function.
type FuncApp struct {
	Name string
	Args []Expr
	Type *Type
}

func (e *FuncApp) ExprType() *Type { return e.Type }
func (*FuncApp) exprNode()         {}

// DomainFuncApp applies a domain function. TypeVarMap instantiates the type
// variables of the owning domain.
type DomainFuncApp struct {
	Name       string
	Args       []Expr
	TypeVarMap map[string]*Type
	Type       *Type
}

func (e *DomainFuncApp) ExprType() *Type { return e.Type }
func (*DomainFuncApp) exprNode()         {}

// FullPerm is the permission amount write.
type FullPerm struct{}

func (*FullPerm) ExprType() *Type { return TypePerm }
func (*FullPerm) exprNode()       {}

// NoPerm is the permission amount none.
type NoPerm struct{}

func (*NoPerm) ExprType() *Type { return TypePerm }
func (*NoPerm) exprNode()       {}

// WildcardPerm is an unspecified positive permission amount.
type WildcardPerm struct{}

func (*WildcardPerm) ExprType() *Type { return TypePerm }
func (*WildcardPerm) exprNode()       {}

// FractionalPerm is the permission amount Num/Den.
type FractionalPerm struct {
	Num Expr
	Den Expr
}

func (*FractionalPerm) ExprType() *Type { return TypePerm }
func (*FractionalPerm) exprNode()       {}
