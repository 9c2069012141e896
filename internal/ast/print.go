package ast

import (
	"strings"
)

// Sexp renders node as a compact S-expression. Global objects of a source
// file are separated by newlines. The format is meant for tests and
// debugging, not for reproducing source text.
func Sexp(node Node) string {
	var p printer
	p.node(node)
	return p.String()
}

type printer struct {
	strings.Builder
}

func (p *printer) list(head string, parts ...func()) {
	p.WriteByte('(')
	p.WriteString(head)
	for _, part := range parts {
		p.WriteByte(' ')
		part()
	}
	p.WriteByte(')')
}

func (p *printer) child(n Node) func() {
	return func() { p.node(n) }
}

func (p *printer) word(s string) func() {
	return func() { p.WriteString(s) }
}

func (p *printer) node(node Node) {
	switch n := node.(type) {
	case nil:
		p.WriteString("_")

	case *SourceFile:
		for i, obj := range n.Objects {
			if i > 0 {
				p.WriteByte('\n')
			}
			p.node(obj)
		}

	case *GlobalObject:
		var parts []func()
		if n.Kind == ObjectConst && n.ConstType != nil {
			parts = append(parts, p.child(n.ConstType))
		}
		parts = append(parts, p.child(n.Name))
		if n.TemplateArgs != nil {
			parts = append(parts, p.child(n.TemplateArgs))
		}
		parts = append(parts, p.child(n.Block))
		head := string(n.Kind)
		if n.Extern != ExternNone {
			head = string(n.Extern) + " " + head
		}
		p.list(head, parts...)

	case *TemplateDeclArgs:
		parts := make([]func(), 0, len(n.Args))
		for _, arg := range n.Args {
			parts = append(parts, p.child(arg))
		}
		p.list("params", parts...)

	case *TemplateDeclType:
		p.node(n.Name)

	case *Block:
		parts := make([]func(), 0, len(n.Stmts))
		for _, stmt := range n.Stmts {
			parts = append(parts, p.child(stmt))
		}
		p.list("block", parts...)

	case *DeclAssignStmt:
		parts := make([]func(), 0, len(n.Left.Items)+1)
		for _, item := range n.Left.Items {
			parts = append(parts, p.child(item))
		}
		parts = append(parts, p.child(n.Value))
		p.list("=", parts...)

	case *AssignLeftSide:
		parts := make([]func(), 0, len(n.Items))
		for _, item := range n.Items {
			parts = append(parts, p.child(item))
		}
		p.list("stmt", parts...)

	case *AssignTo:
		if n.Modifiers == nil {
			p.node(n.Target())
			return
		}
		p.list(p.modifiers(n.Modifiers), p.child(n.Target()))

	case *IfStmt:
		parts := []func(){p.child(n.Cond)}
		if n.Bindings != nil {
			parts = append(parts, p.child(n.Bindings))
		}
		parts = append(parts, p.child(n.Then))
		if n.Else != nil {
			parts = append(parts, p.child(n.Else))
		}
		p.list(string(n.Keyword), parts...)

	case *ForStmt:
		p.list("for", p.child(n.Var), p.child(n.From), p.child(n.To), p.child(n.Body))

	case *DomainStmt:
		p.list("domain", p.child(n.Name))

	case *InterfaceStmt:
		parts := []func(){p.child(n.Name)}
		if n.Latency != nil {
			parts = append(parts, p.latency(n.Latency))
		}
		if n.Ports != nil {
			parts = append(parts, p.child(n.Ports))
		}
		if n.Then != nil {
			parts = append(parts, p.child(n.Then))
		}
		if n.Else != nil {
			parts = append(parts, p.child(n.Else))
		}
		head := string(n.Kind)
		if n.Local {
			head = "local " + head
		}
		p.list(head, parts...)

	case *InterfacePorts:
		var parts []func()
		if n.Inputs != nil {
			parts = append(parts, p.declList("in", n.Inputs))
		}
		if n.Outputs != nil {
			parts = append(parts, p.declList("out", n.Outputs))
		}
		p.list("ports", parts...)

	case *DeclarationList:
		p.declList("decls", n)()

	case *Declaration:
		parts := make([]func(), 0, len(n.Modifiers)+3)
		for _, mod := range n.Modifiers {
			parts = append(parts, p.word(string(mod)))
		}
		if n.Type != nil {
			parts = append(parts, p.child(n.Type))
		}
		parts = append(parts, p.child(n.Name))
		if n.Latency != nil {
			parts = append(parts, p.latency(n.Latency))
		}
		p.list("decl", parts...)

	case *ArrayType:
		p.list("array", p.child(n.Elem), p.child(n.Size))

	case *TemplateGlobal:
		if n.Global {
			p.WriteString("::")
		}
		for i, ident := range n.Path {
			if i > 0 {
				p.WriteString("::")
			}
			p.WriteString(ident.Name)
		}
		if n.Args != nil {
			p.node(n.Args)
		}

	case *TemplateArgList:
		p.WriteString("#(")
		for i, arg := range n.Args {
			if i > 0 {
				p.WriteString(", ")
			}
			p.node(arg)
		}
		p.WriteByte(')')

	case *TemplateArg:
		p.WriteString(n.Name.Name)
		switch {
		case n.TypeArg != nil:
			p.WriteString(": type ")
			p.node(n.TypeArg)
		case n.ValueArg != nil:
			p.WriteString(": ")
			p.node(n.ValueArg)
		}

	case *Ident:
		p.WriteString(n.Name)

	case *Number:
		p.WriteString(n.Text)

	case *ParenExpr:
		p.list("paren", p.child(n.Inner))

	case *UnaryExpr:
		p.list(string(n.Op), p.child(n.Operand))

	case *BinaryExpr:
		p.list(string(n.Op), p.child(n.Left), p.child(n.Right))

	case *CallExpr:
		parts := []func(){p.child(n.Callee)}
		for _, arg := range n.Args {
			parts = append(parts, p.child(arg))
		}
		p.list("call", parts...)

	case *FieldAccess:
		p.list(".", p.child(n.Base), p.child(n.Name))

	case *ArrayOp:
		p.list("index", p.child(n.Base), p.child(n.Index))

	case *SingleIndex:
		p.node(n.Expr)

	case *SliceIndex:
		p.list("slice", p.child(n.Lo), p.word(string(n.Kind)), p.child(n.Hi))

	case *ArrayList:
		parts := make([]func(), 0, len(n.Items))
		for _, item := range n.Items {
			parts = append(parts, p.child(item))
		}
		p.list("list", parts...)

	case *WriteModifiers:
		p.WriteString(p.modifiers(n))

	default:
		p.WriteString("?")
	}
}

func (p *printer) modifiers(m *WriteModifiers) string {
	words := make([]string, max(1, m.Count))
	for i := range words {
		words[i] = string(m.Kind)
	}
	return strings.Join(words, " ")
}

func (p *printer) latency(e Expr) func() {
	return func() {
		p.WriteByte('\'')
		p.node(e)
	}
}

func (p *printer) declList(head string, l *DeclarationList) func() {
	return func() {
		parts := make([]func(), 0, len(l.Decls))
		for _, decl := range l.Decls {
			parts = append(parts, p.child(decl))
		}
		p.list(head, parts...)
	}
}
