package parser

import (
	"github.com/sus-lang/sus-parser/internal/ast"
	"github.com/sus-lang/sus-parser/internal/lexer"
)

// parseSourceFile parses global objects separated by newline runs.
func (p *Parser) parseSourceFile() *ast.SourceFile {
	start := p.curTok.Span
	p.skipNewline()

	var objects []*ast.GlobalObject
	for p.curTok.Type != lexer.EOF {
		obj := p.parseGlobalObject()
		if obj == nil {
			return nil
		}
		objects = append(objects, obj)
		p.logger.Debug("parsed global object", "kind", string(obj.Kind), "name", obj.Name.Name)

		switch p.peekTok.Type {
		case lexer.NEWLINE:
			p.nextToken()
			p.nextToken()
		case lexer.EOF:
			p.nextToken()
		default:
			p.fail(p.peekTok, "newline", "end of file")
			return nil
		}
	}

	return ast.NewSourceFile(objects, mergeSpan(start, p.curTok.Span))
}

// parseGlobalObject parses [extern|__builtin__] (module|struct|const Type)
// name [#( params )] { body }.
func (p *Parser) parseGlobalObject() *ast.GlobalObject {
	start := p.curTok.Span
	docStart := p.pos

	extern := ast.ExternNone
	if p.curIsWord(string(ast.ExternExtern)) || p.curIsWord(string(ast.ExternBuiltin)) {
		extern = ast.ExternMarker(p.curTok.Literal)
		p.nextToken()
	}

	var kind ast.ObjectKind
	var constType ast.Type
	switch {
	case p.curIsWord(string(ast.ObjectModule)), p.curIsWord(string(ast.ObjectStruct)):
		kind = ast.ObjectKind(p.curTok.Literal)
	case p.curIsWord(string(ast.ObjectConst)):
		kind = ast.ObjectConst
		p.nextToken()
		if constType = p.parseType(); constType == nil {
			return nil
		}
	default:
		expected := []string{"module", "struct", "const"}
		if extern == ast.ExternNone {
			expected = append(expected, "extern", "__builtin__")
		}
		p.fail(p.curTok, expected...)
		return nil
	}

	if !p.expect(lexer.IDENT) {
		return nil
	}
	name := ident(p.curTok)

	var params *ast.TemplateDeclArgs
	if p.peekTok.Type == lexer.HASH_LPAREN {
		p.nextToken()
		if params = p.parseTemplateDeclArgs(); params == nil {
			return nil
		}
	}

	if p.peekTok.Type != lexer.LBRACE {
		if params == nil {
			p.fail(p.peekTok, "{", "#(")
		} else {
			p.fail(p.peekTok, "{")
		}
		return nil
	}
	p.nextToken()

	block := p.parseBlock()
	if block == nil {
		return nil
	}

	obj := ast.NewGlobalObject(extern, kind, constType, name, params, block, mergeSpan(start, block.Span()))
	obj.Doc = p.docComments(docStart)
	return obj
}
