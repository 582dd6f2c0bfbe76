// ast.go
//
// Typed, immutable syntax tree.
//
// Nodes are plain data carriers: every field is set once by the producing
// parser action and never mutated afterwards. The parser accumulates child
// lists in local slices while a production is open (see parser.go); those
// slices satisfy none of the node interfaces, so a half-built list can never
// be stored inside a finished tree.
package nolang

// Node is implemented by every syntax tree node.
type Node interface {
	node()
}

// Declaration is a top-level item: a function or a class definition. Class
// bodies hold declarations as well.
type Declaration interface {
	Node
	decl()
}

// Statement is a node valid inside a function, while, if or try body.
type Statement interface {
	Node
	stmt()
}

// Expression is a value-producing node.
type Expression interface {
	Node
	expr()
}

// Program is the root of a parsed source file.
type Program struct {
	Elements []Declaration
}

// Function is `def name(args…) { body }`. Args are the declared parameter
// names in order.
type Function struct {
	Name string
	Args []string
	Body []Statement
}

// ClassDefinition is `class name { body }`, optionally with a single
// parenthesized superclass name. Super is "" when absent.
type ClassDefinition struct {
	Name  string
	Body  []Declaration
	Super string
}

// ExprStatement is an expression evaluated for effect: `expr;`.
type ExprStatement struct {
	Expr Expression
}

// VarDeclaration is `var a, b, c;`. Duplicate names are legal at the grammar
// level; rejecting them is the evaluator's business.
type VarDeclaration struct {
	Names []string
}

// Assignment is `name = expr;` with a bare identifier target.
type Assignment struct {
	Name  string
	Value Expression
}

// Setattr is `target.name = expr;`.
type Setattr struct {
	Target Expression
	Name   string
	Value  Expression
}

// Return is `return expr;`, or the desugared trailing expression of a
// function body.
type Return struct {
	Expr Expression
}

// While is `while cond { body }`.
type While struct {
	Cond Expression
	Body []Statement
}

// If is `if cond { body }`; the grammar has no else branch.
type If struct {
	Cond Expression
	Body []Statement
}

// Raise is `raise expr;`.
type Raise struct {
	Expr Expression
}

// TryExcept is `try { body } except name { handler }`. The grammar admits
// exactly one handler clause, and Finally is never populated by any
// production.
type TryExcept struct {
	Body    []Statement
	Excepts []string
	Handler []Statement
	Finally []Statement
}

// Number is an integer literal.
type Number struct {
	Value int64
}

// String is a string literal; Value holds the decoded text.
type String struct {
	Value string
}

// Identifier is a name reference.
type Identifier struct {
	Name string
}

// TrueNode and FalseNode are the boolean literals.
type TrueNode struct{}
type FalseNode struct{}

// BinOp is a binary operator expression; Op is one of + - * // < ==.
type BinOp struct {
	Op    string
	Left  Expression
	Right Expression
}

// Or is `left or right`; evaluation order and short-circuiting are the
// evaluator's concern.
type Or struct {
	Left  Expression
	Right Expression
}

// And is `left and right`.
type And struct {
	Left  Expression
	Right Expression
}

// Call is `callee(args…)` with strictly positional arguments.
type Call struct {
	Callee Expression
	Args   []Expression
}

// Getattr is `obj.name`.
type Getattr struct {
	Obj  Expression
	Name string
}

func (*Program) node()         {}
func (*Function) node()        {}
func (*ClassDefinition) node() {}
func (*ExprStatement) node()   {}
func (*VarDeclaration) node()  {}
func (*Assignment) node()      {}
func (*Setattr) node()         {}
func (*Return) node()          {}
func (*While) node()           {}
func (*If) node()              {}
func (*Raise) node()           {}
func (*TryExcept) node()       {}
func (*Number) node()          {}
func (*String) node()          {}
func (*Identifier) node()      {}
func (*TrueNode) node()        {}
func (*FalseNode) node()       {}
func (*BinOp) node()           {}
func (*Or) node()              {}
func (*And) node()             {}
func (*Call) node()            {}
func (*Getattr) node()         {}

func (*Function) decl()        {}
func (*ClassDefinition) decl() {}

func (*ExprStatement) stmt()  {}
func (*VarDeclaration) stmt() {}
func (*Assignment) stmt()     {}
func (*Setattr) stmt()        {}
func (*Return) stmt()         {}
func (*While) stmt()          {}
func (*If) stmt()             {}
func (*Raise) stmt()          {}
func (*TryExcept) stmt()      {}

func (*Number) expr()     {}
func (*String) expr()     {}
func (*Identifier) expr() {}
func (*TrueNode) expr()   {}
func (*FalseNode) expr()  {}
func (*BinOp) expr()      {}
func (*Or) expr()         {}
func (*And) expr()        {}
func (*Call) expr()       {}
func (*Getattr) expr()    {}
