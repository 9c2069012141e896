package ast

// Walk traverses the AST starting from node, calling fn for each node.
// If fn returns false, Walk stops traversing that branch.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *SourceFile:
		for _, obj := range n.Objects {
			Walk(obj, fn)
		}

	case *GlobalObject:
		if n.ConstType != nil {
			Walk(n.ConstType, fn)
		}
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		if n.TemplateArgs != nil {
			Walk(n.TemplateArgs, fn)
		}
		if n.Block != nil {
			Walk(n.Block, fn)
		}

	case *TemplateDeclArgs:
		for _, arg := range n.Args {
			Walk(arg, fn)
		}

	case *TemplateDeclType:
		if n.Name != nil {
			Walk(n.Name, fn)
		}

	case *Block:
		for _, stmt := range n.Stmts {
			Walk(stmt, fn)
		}

	case *DeclAssignStmt:
		if n.Left != nil {
			Walk(n.Left, fn)
		}
		if n.Value != nil {
			Walk(n.Value, fn)
		}

	case *AssignLeftSide:
		for _, item := range n.Items {
			Walk(item, fn)
		}

	case *AssignTo:
		if n.Modifiers != nil {
			Walk(n.Modifiers, fn)
		}
		if target := n.Target(); target != nil {
			Walk(target, fn)
		}

	case *IfStmt:
		if n.Cond != nil {
			Walk(n.Cond, fn)
		}
		if n.Bindings != nil {
			Walk(n.Bindings, fn)
		}
		if n.Then != nil {
			Walk(n.Then, fn)
		}
		if n.Else != nil {
			Walk(n.Else, fn)
		}

	case *ForStmt:
		if n.Var != nil {
			Walk(n.Var, fn)
		}
		if n.From != nil {
			Walk(n.From, fn)
		}
		if n.To != nil {
			Walk(n.To, fn)
		}
		if n.Body != nil {
			Walk(n.Body, fn)
		}

	case *DomainStmt:
		if n.Name != nil {
			Walk(n.Name, fn)
		}

	case *InterfaceStmt:
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		if n.Latency != nil {
			Walk(n.Latency, fn)
		}
		if n.Ports != nil {
			Walk(n.Ports, fn)
		}
		if n.Then != nil {
			Walk(n.Then, fn)
		}
		if n.Else != nil {
			Walk(n.Else, fn)
		}

	case *InterfacePorts:
		if n.Inputs != nil {
			Walk(n.Inputs, fn)
		}
		if n.Outputs != nil {
			Walk(n.Outputs, fn)
		}

	case *DeclarationList:
		for _, decl := range n.Decls {
			Walk(decl, fn)
		}

	case *Declaration:
		if n.Type != nil {
			Walk(n.Type, fn)
		}
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		if n.Latency != nil {
			Walk(n.Latency, fn)
		}

	case *ArrayType:
		if n.Elem != nil {
			Walk(n.Elem, fn)
		}
		if n.Size != nil {
			Walk(n.Size, fn)
		}

	case *TemplateGlobal:
		for _, ident := range n.Path {
			Walk(ident, fn)
		}
		if n.Args != nil {
			Walk(n.Args, fn)
		}

	case *TemplateArgList:
		for _, arg := range n.Args {
			Walk(arg, fn)
		}

	case *TemplateArg:
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		if n.TypeArg != nil {
			Walk(n.TypeArg, fn)
		}
		if n.ValueArg != nil {
			Walk(n.ValueArg, fn)
		}

	case *ParenExpr:
		if n.Inner != nil {
			Walk(n.Inner, fn)
		}

	case *UnaryExpr:
		if n.Operand != nil {
			Walk(n.Operand, fn)
		}

	case *BinaryExpr:
		if n.Left != nil {
			Walk(n.Left, fn)
		}
		if n.Right != nil {
			Walk(n.Right, fn)
		}

	case *CallExpr:
		if n.Callee != nil {
			Walk(n.Callee, fn)
		}
		for _, arg := range n.Args {
			Walk(arg, fn)
		}

	case *FieldAccess:
		if n.Base != nil {
			Walk(n.Base, fn)
		}
		if n.Name != nil {
			Walk(n.Name, fn)
		}

	case *ArrayOp:
		if n.Base != nil {
			Walk(n.Base, fn)
		}
		if n.Index != nil {
			Walk(n.Index, fn)
		}

	case *SingleIndex:
		if n.Expr != nil {
			Walk(n.Expr, fn)
		}

	case *SliceIndex:
		if n.Lo != nil {
			Walk(n.Lo, fn)
		}
		if n.Hi != nil {
			Walk(n.Hi, fn)
		}

	case *ArrayList:
		for _, item := range n.Items {
			Walk(item, fn)
		}

	case *Ident, *Number, *WriteModifiers:
		// Leaf nodes
	}
}
