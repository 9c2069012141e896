package ast

import "github.com/sus-lang/sus-parser/internal/lexer"

// Number is a numeric literal, kept as written.
type Number struct {
	Text string
	span lexer.Span
}

// Span returns the literal span.
func (n *Number) Span() lexer.Span { return n.span }

// NewNumber constructs a number literal node.
func NewNumber(text string, span lexer.Span) *Number {
	return &Number{Text: text, span: span}
}

func (*Number) exprNode() {}

// ParenExpr is a parenthesized expression.
type ParenExpr struct {
	Inner Expr
	span  lexer.Span
}

// Span returns the expression span.
func (e *ParenExpr) Span() lexer.Span { return e.span }

// NewParenExpr constructs a parenthesized expression node.
func NewParenExpr(inner Expr, span lexer.Span) *ParenExpr {
	return &ParenExpr{Inner: inner, span: span}
}

func (*ParenExpr) exprNode() {}

// UnaryExpr represents a prefix operator application.
type UnaryExpr struct {
	Op      lexer.TokenType
	Operand Expr
	span    lexer.Span
}

// Span returns the expression span.
func (e *UnaryExpr) Span() lexer.Span { return e.span }

// NewUnaryExpr constructs a prefix expression node.
func NewUnaryExpr(op lexer.TokenType, operand Expr, span lexer.Span) *UnaryExpr {
	return &UnaryExpr{Op: op, Operand: operand, span: span}
}

func (*UnaryExpr) exprNode() {}

// BinaryExpr represents a binary operator application.
type BinaryExpr struct {
	Op    lexer.TokenType
	Left  Expr
	Right Expr
	span  lexer.Span
}

// Span returns the expression span.
func (e *BinaryExpr) Span() lexer.Span { return e.span }

// NewBinaryExpr constructs an infix expression node.
func NewBinaryExpr(op lexer.TokenType, left, right Expr, span lexer.Span) *BinaryExpr {
	return &BinaryExpr{Op: op, Left: left, Right: right, span: span}
}

func (*BinaryExpr) exprNode() {}

// CallExpr represents a function call.
type CallExpr struct {
	Callee Expr
	Args   []Expr
	span   lexer.Span
}

// Span returns the expression span.
func (e *CallExpr) Span() lexer.Span { return e.span }

// NewCallExpr constructs a call expression node.
func NewCallExpr(callee Expr, args []Expr, span lexer.Span) *CallExpr {
	return &CallExpr{Callee: callee, Args: args, span: span}
}

func (*CallExpr) exprNode() {}

// FieldAccess represents `base.name`.
type FieldAccess struct {
	Base Expr
	Name *Ident
	span lexer.Span
}

// Span returns the expression span.
func (e *FieldAccess) Span() lexer.Span { return e.span }

// NewFieldAccess constructs a field access node.
func NewFieldAccess(base Expr, name *Ident, span lexer.Span) *FieldAccess {
	return &FieldAccess{Base: base, Name: name, span: span}
}

func (*FieldAccess) exprNode() {}

// TemplateGlobal names a global (type, module, constant or signal), with
// optional template arguments. It is both an Expr and a Type.
type TemplateGlobal struct {
	Global bool // written with a leading ::
	Path   []*Ident
	Args   *TemplateArgList // nil when no #( ) list is written
	span   lexer.Span
}

// Span returns the reference span.
func (g *TemplateGlobal) Span() lexer.Span { return g.span }

// NewTemplateGlobal constructs a global reference node.
func NewTemplateGlobal(global bool, path []*Ident, args *TemplateArgList, span lexer.Span) *TemplateGlobal {
	return &TemplateGlobal{Global: global, Path: path, Args: args, span: span}
}

func (*TemplateGlobal) exprNode() {}
func (*TemplateGlobal) typeNode() {}

// TemplateArgList is the `#( ... )` argument list of a global reference.
type TemplateArgList struct {
	Args []*TemplateArg
	span lexer.Span
}

// Span returns the list span.
func (l *TemplateArgList) Span() lexer.Span { return l.span }

// NewTemplateArgList constructs a template argument list node.
func NewTemplateArgList(args []*TemplateArg, span lexer.Span) *TemplateArgList {
	return &TemplateArgList{Args: args, span: span}
}

// TemplateArg binds one template parameter by name. At most one of TypeArg
// and ValueArg is set; neither means the parameter is bound positionally or
// left at its default.
type TemplateArg struct {
	Name     *Ident
	TypeArg  Type
	ValueArg Expr
	span     lexer.Span
}

// Span returns the argument span.
func (a *TemplateArg) Span() lexer.Span { return a.span }

// NewTemplateArg constructs a template argument node.
func NewTemplateArg(name *Ident, typeArg Type, valueArg Expr, span lexer.Span) *TemplateArg {
	return &TemplateArg{Name: name, TypeArg: typeArg, ValueArg: valueArg, span: span}
}
