// Package ast defines the AST node model from spec.md §3: tagged variants
// per grammar rule, each owning its children and carrying a source span
// derived from its first and last spanned tokens. Ownership is strictly
// tree-shaped — no node keeps a pointer back to its parent.
package ast

import "github.com/dekarrin/kushc/token"

// Node is implemented by every AST node. Span returns the smallest range
// covering the node's own tokens and all of its children's tokens.
type Node interface {
	Span() token.Span
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Decl is implemented by every top-level declaration node.
type Decl interface {
	Node
	declNode()
}

// Ident is a leaf node wrapping a single identifier token. Used both as a
// bare reference-by-name (label, parameter name, member name) and embedded
// in larger nodes.
type Ident struct {
	Name string
	Tok  token.Token
}

func (i *Ident) Span() token.Span { return i.Tok.Span }

// ---- Types -----------------------------------------------------------

// TypeNode is the type rule (§4.3): a primitive keyword or a user-type
// identifier, plus a declared array dimensionality from trailing `[]`
// suffixes. IsVoid is true whenever the type token is `void`; the parser
// accepts `void` in every position that parses a type, not only as a
// function's return type.
type TypeNode struct {
	Kind       token.Kind // token.KwBoolean, token.KwI32, ..., or token.Identifier for a user type
	Name       string     // the lexeme; for primitives this mirrors Kind's keyword text
	IsVoid     bool
	ArrayDims  int
	NameTok    token.Token
	EndTok     token.Token // last ']' or the base token if ArrayDims == 0
}

func (t *TypeNode) Span() token.Span { return token.Join(t.NameTok.Span, t.EndTok.Span) }

// ---- Compilation unit & declarations -----------------------------------

// CompilationUnit is the top-level production: any interleaving of imports
// followed by any interleaving of structure and function declarations.
type CompilationUnit struct {
	Path       string
	File       token.FileID
	Imports    []*ImportDecl
	Structures []*StructureDecl
	Functions  []*FunctionDecl
	StartTok   token.Token
	EndTok     token.Token
}

func (c *CompilationUnit) Span() token.Span { return token.Join(c.StartTok.Span, c.EndTok.Span) }

// ImportDecl models `import a.b.C` or `import a.b.C as D`.
type ImportDecl struct {
	Path     []*Ident // dotted path components, e.g. [a, b, C]
	Alias    *Ident   // non-nil when "as D" is present
	StartTok token.Token
	EndTok   token.Token
}

func (i *ImportDecl) Span() token.Span { return token.Join(i.StartTok.Span, i.EndTok.Span) }
func (i *ImportDecl) declNode()        {}

// LastName returns the trailing identifier of the dotted path, the name
// under which the import is installed absent an alias.
func (i *ImportDecl) LastName() *Ident {
	if len(i.Path) == 0 {
		return nil
	}
	return i.Path[len(i.Path)-1]
}

// BoundName returns the identifier the import is installed under: the
// alias if present, else the trailing path component.
func (i *ImportDecl) BoundName() *Ident {
	if i.Alias != nil {
		return i.Alias
	}
	return i.LastName()
}

// QualifiedName returns the dotted name joined with '.'.
func (i *ImportDecl) QualifiedName() string {
	out := ""
	for idx, p := range i.Path {
		if idx > 0 {
			out += "."
		}
		out += p.Name
	}
	return out
}

// FieldDecl is a structure member variable.
type FieldDecl struct {
	Name     *Ident
	Type     *TypeNode
	StartTok token.Token
}

func (f *FieldDecl) Span() token.Span { return token.Join(f.StartTok.Span, f.Type.Span()) }

// StructureDecl is the `struct` declaration rule: a class-like type with
// fields, nested function members (including `new` constructors), and an
// extends list resolved during the resolution pass.
type StructureDecl struct {
	Name      *Ident
	Extends   []*Ident
	Fields    []*FieldDecl
	Functions []*FunctionDecl
	StartTok  token.Token
	EndTok    token.Token
}

func (s *StructureDecl) Span() token.Span { return token.Join(s.StartTok.Span, s.EndTok.Span) }
func (s *StructureDecl) declNode()        {}

// ParamDecl is one formal parameter. Variadic is true only for the single
// trailing `...` parameter a function may declare.
type ParamDecl struct {
	Name     *Ident
	Type     *TypeNode
	Variadic bool
	StartTok token.Token
	EndTok   token.Token
}

func (p *ParamDecl) Span() token.Span { return token.Join(p.StartTok.Span, p.EndTok.Span) }

// FunctionDecl is a function (or method, when nested in a StructureDecl)
// declaration.
type FunctionDecl struct {
	Name       *Ident
	Params     []*ParamDecl
	Variadic   *ParamDecl // nil unless the last parameter uses `...`
	ReturnType *TypeNode
	Body       *BlockStmt
	IsStatic   bool
	StartTok   token.Token
	EndTok     token.Token
}

func (f *FunctionDecl) Span() token.Span { return token.Join(f.StartTok.Span, f.EndTok.Span) }
func (f *FunctionDecl) declNode()        {}

// FixedArity returns the number of non-variadic parameters.
func (f *FunctionDecl) FixedArity() int { return len(f.Params) }

// ---- Statements --------------------------------------------------------

// BlockStmt is `{ stmt* }`, opening a local scope.
type BlockStmt struct {
	Statements []Stmt
	StartTok   token.Token
	EndTok     token.Token
}

func (b *BlockStmt) Span() token.Span { return token.Join(b.StartTok.Span, b.EndTok.Span) }
func (b *BlockStmt) stmtNode()        {}

// EmptyStmt is a bare `;`.
type EmptyStmt struct {
	Tok token.Token
}

func (e *EmptyStmt) Span() token.Span { return e.Tok.Span }
func (e *EmptyStmt) stmtNode()        {}

// ExpressionStmt wraps a bare expression statement (including assignment
// expressions, which are expressions in this grammar).
type ExpressionStmt struct {
	X        Expr
	StartTok token.Token
	EndTok   token.Token
}

func (e *ExpressionStmt) Span() token.Span { return token.Join(e.StartTok.Span, e.EndTok.Span) }
func (e *ExpressionStmt) stmtNode()        {}

// VarDeclStmt covers both `var` and `let` declarations; IsConst is true for
// `let`.
type VarDeclStmt struct {
	IsConst  bool
	Name     *Ident
	Type     *TypeNode // nil when the declared type is inferred from Init
	Init     Expr      // nil when no initializer is present
	StartTok token.Token
	EndTok   token.Token
}

func (v *VarDeclStmt) Span() token.Span { return token.Join(v.StartTok.Span, v.EndTok.Span) }
func (v *VarDeclStmt) stmtNode()        {}

// BreakStmt is `break` or `break #label`.
type BreakStmt struct {
	Label    *Ident
	StartTok token.Token
	EndTok   token.Token
}

func (b *BreakStmt) Span() token.Span { return token.Join(b.StartTok.Span, b.EndTok.Span) }
func (b *BreakStmt) stmtNode()        {}

// ContinueStmt is `continue` or `continue #label`.
type ContinueStmt struct {
	Label    *Ident
	StartTok token.Token
	EndTok   token.Token
}

func (c *ContinueStmt) Span() token.Span { return token.Join(c.StartTok.Span, c.EndTok.Span) }
func (c *ContinueStmt) stmtNode()        {}

// ReturnStmt is `return` or `return expr`.
type ReturnStmt struct {
	Value    Expr
	StartTok token.Token
	EndTok   token.Token
}

func (r *ReturnStmt) Span() token.Span { return token.Join(r.StartTok.Span, r.EndTok.Span) }
func (r *ReturnStmt) stmtNode()        {}

// ThrowStmt is `throw expr`.
type ThrowStmt struct {
	Value    Expr
	StartTok token.Token
	EndTok   token.Token
}

func (t *ThrowStmt) Span() token.Span { return token.Join(t.StartTok.Span, t.EndTok.Span) }
func (t *ThrowStmt) stmtNode()        {}

// ElifClause is one `else if cond { ... }` arm of an IfStmt.
type ElifClause struct {
	Cond Expr
	Body *BlockStmt
}

func (e *ElifClause) Span() token.Span { return token.Join(e.Cond.Span(), e.Body.Span()) }

// IfStmt is `if cond {...} (else if cond {...})* (else {...})?`.
type IfStmt struct {
	Cond     Expr
	Then     *BlockStmt
	Elifs    []*ElifClause
	Else     *BlockStmt // nil if absent
	StartTok token.Token
	EndTok   token.Token
}

func (i *IfStmt) Span() token.Span { return token.Join(i.StartTok.Span, i.EndTok.Span) }
func (i *IfStmt) stmtNode()        {}

// WhileStmt is `(#label)? while cond {...}`.
type WhileStmt struct {
	Label    *Ident
	Cond     Expr
	Body     *BlockStmt
	StartTok token.Token
	EndTok   token.Token
}

func (w *WhileStmt) Span() token.Span { return token.Join(w.StartTok.Span, w.EndTok.Span) }
func (w *WhileStmt) stmtNode()        {}

// ForEachStmt is `(#label)? for let name with collection {...}`.
type ForEachStmt struct {
	Label      *Ident
	Var        *Ident
	Collection Expr
	Body       *BlockStmt
	StartTok   token.Token
	EndTok     token.Token
}

func (f *ForEachStmt) Span() token.Span { return token.Join(f.StartTok.Span, f.EndTok.Span) }
func (f *ForEachStmt) stmtNode()        {}

// CatchClause is one `catch (T1 | T2 name) {...}` arm.
type CatchClause struct {
	Types    []*Ident
	Param    *Ident
	Body     *BlockStmt
	StartTok token.Token
	EndTok   token.Token
}

func (c *CatchClause) Span() token.Span { return token.Join(c.StartTok.Span, c.EndTok.Span) }

// TryStmt is `try {...} catch* finally?`.
type TryStmt struct {
	Body     *BlockStmt
	Catches  []*CatchClause
	Finally  *BlockStmt // nil if absent
	StartTok token.Token
	EndTok   token.Token
}

func (t *TryStmt) Span() token.Span { return token.Join(t.StartTok.Span, t.EndTok.Span) }
func (t *TryStmt) stmtNode()        {}

// ---- Expressions --------------------------------------------------------

// AssignmentExpr is the top precedence level: `lhs op rhs` for `=`, `+=`,
// `-=`, `*=`, `/=`, `%=`, `&=`, `|=`, `^=`, `<<=`, `>>=`, `>>>=`.
type AssignmentExpr struct {
	Op    token.Kind
	Left  Expr
	Right Expr // always set by the parser; Span tolerates nil for hand-built nodes
	OpTok token.Token
}

func (a *AssignmentExpr) Span() token.Span {
	end := a.OpTok.Span
	if a.Right != nil {
		end = a.Right.Span()
	}
	return token.Join(a.Left.Span(), end)
}
func (a *AssignmentExpr) exprNode() {}

// ConditionalExpr is the ternary `cond ? then : else`.
type ConditionalExpr struct {
	Cond, Then, Else Expr
}

func (c *ConditionalExpr) Span() token.Span { return token.Join(c.Cond.Span(), c.Else.Span()) }
func (c *ConditionalExpr) exprNode()        {}

// BinaryExpr covers every left-associative binary precedence level:
// logical-or, logical-and, inclusive-or, exclusive-or, and, equality,
// relational, shift, additive, multiplicative. Per the REDESIGN FLAGS in
// spec.md §9, a chain of same-precedence operators is built as nested
// BinaryExpr nodes (each an explicit (operator, operand) pair) rather than
// collapsed into one node holding a single operator slot.
type BinaryExpr struct {
	Op          token.Kind
	Left, Right Expr
	OpTok       token.Token
}

func (b *BinaryExpr) Span() token.Span { return token.Join(b.Left.Span(), b.Right.Span()) }
func (b *BinaryExpr) exprNode()        {}

// PrefixExpr is a unary prefix operator application: `-x`, `!x`, `~x`,
// `++x`, `--x`, unary `+x`.
type PrefixExpr struct {
	Op       token.Kind
	Operand  Expr
	StartTok token.Token
}

func (p *PrefixExpr) Span() token.Span { return token.Join(p.StartTok.Span, p.Operand.Span()) }
func (p *PrefixExpr) exprNode()        {}

// PostfixIncDecExpr is `x++` / `x--`.
type PostfixIncDecExpr struct {
	Op      token.Kind
	Operand Expr
	OpTok   token.Token
}

func (p *PostfixIncDecExpr) Span() token.Span { return token.Join(p.Operand.Span(), p.OpTok.Span) }
func (p *PostfixIncDecExpr) exprNode()        {}

// IndexExpr is the postfix subscript `target[index]`.
type IndexExpr struct {
	Target, Index Expr
	EndTok        token.Token
}

func (i *IndexExpr) Span() token.Span { return token.Join(i.Target.Span(), i.EndTok.Span) }
func (i *IndexExpr) exprNode()        {}

// CallExpr is the postfix argument list `target(args...)`.
type CallExpr struct {
	Target Expr
	Args   []Expr
	EndTok token.Token
}

func (c *CallExpr) Span() token.Span { return token.Join(c.Target.Span(), c.EndTok.Span) }
func (c *CallExpr) exprNode()        {}

// MemberExpr is the postfix member access `target.name`.
type MemberExpr struct {
	Target Expr
	Name   *Ident
}

func (m *MemberExpr) Span() token.Span { return token.Join(m.Target.Span(), m.Name.Span()) }
func (m *MemberExpr) exprNode()        {}

// IdentExpr is a primary-expression reference to a name, resolved in the
// resolution pass.
type IdentExpr struct {
	Name *Ident
}

func (i *IdentExpr) Span() token.Span { return i.Name.Span() }
func (i *IdentExpr) exprNode()        {}

// IntLiteral, FloatLiteral, StringLiteral, BoolLiteral, NullLiteral are
// primary literal expressions.
type IntLiteral struct {
	Value string
	Tok   token.Token
}

func (l *IntLiteral) Span() token.Span { return l.Tok.Span }
func (l *IntLiteral) exprNode()        {}

type FloatLiteral struct {
	Value string
	Tok   token.Token
}

func (l *FloatLiteral) Span() token.Span { return l.Tok.Span }
func (l *FloatLiteral) exprNode()        {}

type StringLiteral struct {
	Value string
	Tok   token.Token
}

func (l *StringLiteral) Span() token.Span { return l.Tok.Span }
func (l *StringLiteral) exprNode()        {}

type BoolLiteral struct {
	Value bool
	Tok   token.Token
}

func (l *BoolLiteral) Span() token.Span { return l.Tok.Span }
func (l *BoolLiteral) exprNode()        {}

type NullLiteral struct {
	Tok token.Token
}

func (l *NullLiteral) Span() token.Span { return l.Tok.Span }
func (l *NullLiteral) exprNode()        {}

// ThisExpr is the `this` primary expression.
type ThisExpr struct {
	Tok token.Token
}

func (t *ThisExpr) Span() token.Span { return t.Tok.Span }
func (t *ThisExpr) exprNode()        {}

// NewExpr is `new T(args...)`.
type NewExpr struct {
	Type     *Ident
	Args     []Expr
	StartTok token.Token
	EndTok   token.Token
}

func (n *NewExpr) Span() token.Span { return token.Join(n.StartTok.Span, n.EndTok.Span) }
func (n *NewExpr) exprNode()        {}

// ParenExpr is `(expr)`.
type ParenExpr struct {
	Inner    Expr
	StartTok token.Token
	EndTok   token.Token
}

func (p *ParenExpr) Span() token.Span { return token.Join(p.StartTok.Span, p.EndTok.Span) }
func (p *ParenExpr) exprNode()        {}

// FieldInit is one `id: expr` pair inside a BraceInitExpr.
type FieldInit struct {
	Name  *Ident
	Value Expr
}

func (f *FieldInit) Span() token.Span { return token.Join(f.Name.Span(), f.Value.Span()) }

// BraceInitExpr is `{ id: expr, ... }`.
type BraceInitExpr struct {
	Fields   []*FieldInit
	StartTok token.Token
	EndTok   token.Token
}

func (b *BraceInitExpr) Span() token.Span { return token.Join(b.StartTok.Span, b.EndTok.Span) }
func (b *BraceInitExpr) exprNode()        {}

// ArrayLiteralExpr is a bracketed array literal `[e1, e2, ...]`.
type ArrayLiteralExpr struct {
	Elements []Expr
	StartTok token.Token
	EndTok   token.Token
}

func (a *ArrayLiteralExpr) Span() token.Span { return token.Join(a.StartTok.Span, a.EndTok.Span) }
func (a *ArrayLiteralExpr) exprNode()        {}
