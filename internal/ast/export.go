package ast

// Export converts node into nested maps and slices keyed by the stable node
// kinds and field names downstream tools bind to. Every map carries "kind"
// and "span"; absent optional fields are left out. The result serializes
// directly with encoding/json or yaml.
func Export(node Node) map[string]any {
	if node == nil {
		return nil
	}
	return exportNode(node)
}

func span(n Node) map[string]any {
	s := n.Span()
	return map[string]any{
		"start":  s.Start,
		"end":    s.End,
		"line":   s.Line,
		"column": s.Column,
	}
}

func obj(kind string, n Node, fields map[string]any) map[string]any {
	fields["kind"] = kind
	fields["span"] = span(n)
	return fields
}

// setOpt stores v under key unless the node is absent.
func setOpt(m map[string]any, key string, n Node) {
	if n != nil {
		m[key] = exportNode(n)
	}
}

func items[T Node](nodes []T) []any {
	out := make([]any, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, exportNode(n))
	}
	return out
}

func exportNode(node Node) map[string]any {
	switch n := node.(type) {
	case *SourceFile:
		return obj("source_file", n, map[string]any{"items": items(n.Objects)})

	case *GlobalObject:
		m := map[string]any{
			"name":  exportNode(n.Name),
			"block": exportNode(n.Block),
		}
		if n.Kind == ObjectConst {
			m["object_type"] = map[string]any{
				"kind":       "const_and_type",
				"const_type": exportNode(n.ConstType),
			}
		} else {
			m["object_type"] = string(n.Kind)
		}
		if n.Extern != ExternNone {
			m["extern_marker"] = string(n.Extern)
		}
		if n.TemplateArgs != nil {
			m["template_declaration_arguments"] = exportNode(n.TemplateArgs)
		}
		if len(n.Doc) > 0 {
			m["doc"] = n.Doc
		}
		return obj("global_object", n, m)

	case *TemplateDeclArgs:
		return obj("template_declaration_arguments", n, map[string]any{"items": items(n.Args)})

	case *TemplateDeclType:
		return obj("template_declaration_type", n, map[string]any{"name": exportNode(n.Name)})

	case *Block:
		return obj("block", n, map[string]any{"items": items(n.Stmts)})

	case *DeclAssignStmt:
		return obj("decl_assign_statement", n, map[string]any{
			"assign_left":  exportNode(n.Left),
			"assign_value": exportNode(n.Value),
		})

	case *AssignLeftSide:
		return obj("assign_left_side", n, map[string]any{"items": items(n.Items)})

	case *AssignTo:
		m := map[string]any{"expr_or_decl": exportNode(n.Target())}
		if n.Modifiers != nil {
			m["write_modifiers"] = exportNode(n.Modifiers)
		}
		return obj("assign_to", n, m)

	case *WriteModifiers:
		words := make([]any, 0, n.Count)
		for range n.Count {
			words = append(words, string(n.Kind))
		}
		return obj("write_modifiers", n, map[string]any{"items": words})

	case *IfStmt:
		m := map[string]any{
			"statement_type": string(n.Keyword),
			"condition":      exportNode(n.Cond),
			"then_block":     exportNode(n.Then),
		}
		if n.Bindings != nil {
			m["conditional_bindings"] = exportNode(n.Bindings)
		}
		if n.Else != nil {
			m["else_block"] = exportElse(n.Else)
		}
		return obj("if_statement", n, m)

	case *ForStmt:
		return obj("for_statement", n, map[string]any{
			"for_decl": exportNode(n.Var),
			"from":     exportNode(n.From),
			"to":       exportNode(n.To),
			"block":    exportNode(n.Body),
		})

	case *DomainStmt:
		return obj("domain_statement", n, map[string]any{"name": exportNode(n.Name)})

	case *InterfaceStmt:
		m := map[string]any{
			"interface_kind": string(n.Kind),
			"name":           exportNode(n.Name),
		}
		if n.Local {
			m["local"] = true
		}
		if n.Latency != nil {
			m["latency_specifier"] = exportLatency(n.Latency)
		}
		if n.Ports != nil {
			m["interface_ports"] = exportNode(n.Ports)
		}
		if n.Then != nil {
			m["then_block"] = exportNode(n.Then)
		}
		if n.Else != nil {
			m["else_block"] = exportElse(n.Else)
		}
		return obj("interface_statement", n, m)

	case *InterfacePorts:
		m := map[string]any{}
		if n.Inputs != nil {
			m["inputs"] = exportNode(n.Inputs)
		}
		if n.Outputs != nil {
			m["outputs"] = exportNode(n.Outputs)
		}
		return obj("interface_ports", n, m)

	case *DeclarationList:
		return obj("declaration_list", n, map[string]any{"items": items(n.Decls)})

	case *Declaration:
		m := map[string]any{"name": exportNode(n.Name)}
		setOpt(m, "type", n.Type)
		if len(n.Modifiers) > 0 {
			mods := make([]any, 0, len(n.Modifiers))
			for _, mod := range n.Modifiers {
				mods = append(mods, string(mod))
			}
			m["declaration_modifiers"] = map[string]any{
				"kind":  "declaration_modifiers",
				"items": mods,
			}
		}
		if n.Latency != nil {
			m["latency_specifier"] = exportLatency(n.Latency)
		}
		if len(n.Doc) > 0 {
			m["doc"] = n.Doc
		}
		return obj("declaration", n, m)

	case *ArrayType:
		return obj("array_type", n, map[string]any{
			"arr": exportNode(n.Elem),
			"arr_idx": map[string]any{
				"kind":    "array_type_bracket",
				"content": exportNode(n.Size),
			},
		})

	case *TemplateGlobal:
		m := map[string]any{
			"namespace_list": map[string]any{
				"kind":  "namespace_list",
				"items": items(n.Path),
			},
		}
		if n.Global {
			m["is_global_path"] = true
		}
		if n.Args != nil {
			m["template_args"] = exportNode(n.Args)
		}
		return obj("template_global", n, m)

	case *TemplateArgList:
		return obj("template_args", n, map[string]any{"items": items(n.Args)})

	case *TemplateArg:
		m := map[string]any{"name": exportNode(n.Name)}
		setOpt(m, "type_arg", n.TypeArg)
		setOpt(m, "val_arg", n.ValueArg)
		return obj("template_arg", n, m)

	case *Ident:
		return obj("identifier", n, map[string]any{"text": n.Name})

	case *Number:
		return obj("number", n, map[string]any{"text": n.Text})

	case *ParenExpr:
		return obj("parenthesis_expression", n, map[string]any{"content": exportNode(n.Inner)})

	case *UnaryExpr:
		return obj("unary_op", n, map[string]any{
			"operator": string(n.Op),
			"right":    exportNode(n.Operand),
		})

	case *BinaryExpr:
		return obj("binary_op", n, map[string]any{
			"left":     exportNode(n.Left),
			"operator": string(n.Op),
			"right":    exportNode(n.Right),
		})

	case *CallExpr:
		return obj("func_call", n, map[string]any{
			"name": exportNode(n.Callee),
			"arguments": map[string]any{
				"kind":  "parenthesis_expression_list",
				"items": items(n.Args),
			},
		})

	case *FieldAccess:
		return obj("field_access", n, map[string]any{
			"left": exportNode(n.Base),
			"name": exportNode(n.Name),
		})

	case *ArrayOp:
		bracket := map[string]any{"kind": "array_access_bracket_expression"}
		switch idx := n.Index.(type) {
		case *SliceIndex:
			bracket["slice"] = exportNode(idx)
		case *SingleIndex:
			bracket["index"] = exportNode(idx.Expr)
		}
		return obj("array_op", n, map[string]any{
			"arr":     exportNode(n.Base),
			"arr_idx": bracket,
		})

	case *SliceIndex:
		m := map[string]any{"type": string(n.Kind)}
		setOpt(m, "index_a", n.Lo)
		setOpt(m, "index_b", n.Hi)
		return obj("slice", n, m)

	case *SingleIndex:
		return exportNode(n.Expr)

	case *ArrayList:
		return obj("array_list_expression", n, map[string]any{"items": items(n.Items)})

	default:
		return nil
	}
}

func exportElse(e ElseBranch) map[string]any {
	return obj("else_block", e, map[string]any{"content": exportNode(e)})
}

func exportLatency(e Expr) map[string]any {
	return obj("latency_specifier", e, map[string]any{"content": exportNode(e)})
}
