package ast

import "github.com/sus-lang/sus-parser/internal/lexer"

// Block is a braced, newline separated statement list.
type Block struct {
	Stmts []Stmt
	span  lexer.Span
}

// Span returns the block span.
func (b *Block) Span() lexer.Span { return b.span }

// NewBlock constructs a block node.
func NewBlock(stmts []Stmt, span lexer.Span) *Block {
	return &Block{Stmts: stmts, span: span}
}

func (*Block) stmtNode() {}
func (*Block) elseNode() {}

// DeclAssignStmt assigns Value to every target on the left side.
type DeclAssignStmt struct {
	Left  *AssignLeftSide
	Value Expr
	span  lexer.Span
}

// Span returns the statement span.
func (s *DeclAssignStmt) Span() lexer.Span { return s.span }

// NewDeclAssignStmt constructs an assignment statement node.
func NewDeclAssignStmt(left *AssignLeftSide, value Expr, span lexer.Span) *DeclAssignStmt {
	return &DeclAssignStmt{Left: left, Value: value, span: span}
}

func (*DeclAssignStmt) stmtNode() {}

// AssignLeftSide is a comma separated list of write targets. Written on its
// own it is a statement too: a plain declaration or an expression statement.
type AssignLeftSide struct {
	Items []*AssignTo
	span  lexer.Span
}

// Span returns the list span.
func (s *AssignLeftSide) Span() lexer.Span { return s.span }

// NewAssignLeftSide constructs an assignment target list.
func NewAssignLeftSide(items []*AssignTo, span lexer.Span) *AssignLeftSide {
	return &AssignLeftSide{Items: items, span: span}
}

func (*AssignLeftSide) stmtNode() {}

// WriteModifierKind is the class of a write modifier.
type WriteModifierKind string

const (
	WriteReg     WriteModifierKind = "reg"
	WriteInitial WriteModifierKind = "initial"
)

// WriteModifiers is either one or more `reg` or a single `initial`.
type WriteModifiers struct {
	Kind  WriteModifierKind
	Count int
	span  lexer.Span
}

// Span returns the modifiers span.
func (m *WriteModifiers) Span() lexer.Span { return m.span }

// NewWriteModifiers constructs a write modifier node.
func NewWriteModifiers(kind WriteModifierKind, count int, span lexer.Span) *WriteModifiers {
	return &WriteModifiers{Kind: kind, Count: count, span: span}
}

// AssignTo is a single write target. Exactly one of Decl and Expr is set.
type AssignTo struct {
	Modifiers *WriteModifiers
	Decl      *Declaration
	Expr      Expr
	span      lexer.Span
}

// Span returns the target span.
func (a *AssignTo) Span() lexer.Span { return a.span }

// NewAssignTo constructs an assignment target node. target must be a
// *Declaration or an Expr.
func NewAssignTo(mods *WriteModifiers, target Node, span lexer.Span) *AssignTo {
	a := &AssignTo{Modifiers: mods, span: span}
	switch t := target.(type) {
	case *Declaration:
		a.Decl = t
	case Expr:
		a.Expr = t
	}
	return a
}

// Target returns whichever of Decl or Expr is set.
func (a *AssignTo) Target() Node {
	if a.Decl != nil {
		return a.Decl
	}
	return a.Expr
}

// IfKind is the keyword that opened a conditional.
type IfKind string

const (
	KindIf   IfKind = "if"
	KindWhen IfKind = "when"
)

// IfStmt represents `if`/`when` with optional bindings and else branch.
type IfStmt struct {
	Keyword  IfKind
	Cond     Expr
	Bindings *InterfacePorts
	Then     *Block
	Else     ElseBranch // *Block, *IfStmt or nil
	span     lexer.Span
}

// Span returns the statement span.
func (s *IfStmt) Span() lexer.Span { return s.span }

// NewIfStmt constructs a conditional statement node.
func NewIfStmt(kw IfKind, cond Expr, bindings *InterfacePorts, then *Block, els ElseBranch, span lexer.Span) *IfStmt {
	return &IfStmt{
		Keyword:  kw,
		Cond:     cond,
		Bindings: bindings,
		Then:     then,
		Else:     els,
		span:     span,
	}
}

func (*IfStmt) stmtNode() {}
func (*IfStmt) elseNode() {}

// ForStmt iterates Var over the range From..To.
type ForStmt struct {
	Var  *Declaration
	From Expr
	To   Expr
	Body *Block
	span lexer.Span
}

// Span returns the statement span.
func (s *ForStmt) Span() lexer.Span { return s.span }

// NewForStmt constructs a loop node.
func NewForStmt(v *Declaration, from, to Expr, body *Block, span lexer.Span) *ForStmt {
	return &ForStmt{Var: v, From: from, To: to, Body: body, span: span}
}

func (*ForStmt) stmtNode() {}

// DomainStmt declares a named clock domain.
type DomainStmt struct {
	Name *Ident
	span lexer.Span
}

// Span returns the statement span.
func (s *DomainStmt) Span() lexer.Span { return s.span }

// NewDomainStmt constructs a domain statement node.
func NewDomainStmt(name *Ident, span lexer.Span) *DomainStmt {
	return &DomainStmt{Name: name, span: span}
}

func (*DomainStmt) stmtNode() {}

// InterfaceKind is the flavor of an interface statement.
type InterfaceKind string

const (
	InterfacePlain   InterfaceKind = "interface"
	InterfaceAction  InterfaceKind = "action"
	InterfaceTrigger InterfaceKind = "trigger"
)

// IsInterfaceKind reports whether word names an interface flavor.
func IsInterfaceKind(word string) bool {
	switch InterfaceKind(word) {
	case InterfacePlain, InterfaceAction, InterfaceTrigger:
		return true
	default:
		return false
	}
}

// InterfaceStmt declares an interface, action or trigger.
type InterfaceStmt struct {
	Local   bool
	Kind    InterfaceKind
	Name    *Ident
	Latency Expr
	Ports   *InterfacePorts
	Then    *Block
	Else    ElseBranch // only set together with Then
	span    lexer.Span
}

// Span returns the statement span.
func (s *InterfaceStmt) Span() lexer.Span { return s.span }

// NewInterfaceStmt constructs an interface statement node.
func NewInterfaceStmt(local bool, kind InterfaceKind, name *Ident, latency Expr, ports *InterfacePorts, then *Block, els ElseBranch, span lexer.Span) *InterfaceStmt {
	return &InterfaceStmt{
		Local:   local,
		Kind:    kind,
		Name:    name,
		Latency: latency,
		Ports:   ports,
		Then:    then,
		Else:    els,
		span:    span,
	}
}

func (*InterfaceStmt) stmtNode() {}

// InterfacePorts lists inputs and outputs after a `:`. At least one side is
// non-nil.
type InterfacePorts struct {
	Inputs  *DeclarationList
	Outputs *DeclarationList
	span    lexer.Span
}

// Span returns the ports span.
func (p *InterfacePorts) Span() lexer.Span { return p.span }

// NewInterfacePorts constructs a ports node.
func NewInterfacePorts(inputs, outputs *DeclarationList, span lexer.Span) *InterfacePorts {
	return &InterfacePorts{Inputs: inputs, Outputs: outputs, span: span}
}
