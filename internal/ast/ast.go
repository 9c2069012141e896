package ast

import "github.com/sus-lang/sus-parser/internal/lexer"

// Node represents any AST node with an associated source span.
type Node interface {
	Span() lexer.Span
}

// Expr represents an expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt represents a statement inside a block.
type Stmt interface {
	Node
	stmtNode()
}

// Type represents a type reference.
type Type interface {
	Node
	typeNode()
}

// ElseBranch is what may follow `else`: a block or a chained if statement.
type ElseBranch interface {
	Node
	elseNode()
}

// TemplateDeclArg is an entry of a `#( ... )` list on a global object.
type TemplateDeclArg interface {
	Node
	templateDeclArgNode()
}

// SourceFile represents a parsed compilation unit.
type SourceFile struct {
	Objects []*GlobalObject

	// Tokens holds every significant token, EOF included, with its leading
	// trivia. Only filled when the parser is asked to keep trivia.
	Tokens []lexer.Token

	span lexer.Span
}

// Span returns the span covering the entire file.
func (f *SourceFile) Span() lexer.Span { return f.span }

// NewSourceFile constructs a file node with the provided span.
func NewSourceFile(objects []*GlobalObject, span lexer.Span) *SourceFile {
	return &SourceFile{Objects: objects, span: span}
}

// ExternMarker distinguishes extern and builtin global objects.
type ExternMarker string

const (
	ExternNone    ExternMarker = ""
	ExternBuiltin ExternMarker = "__builtin__"
	ExternExtern  ExternMarker = "extern"
)

// ObjectKind is the kind keyword of a global object.
type ObjectKind string

const (
	ObjectModule ObjectKind = "module"
	ObjectStruct ObjectKind = "struct"
	ObjectConst  ObjectKind = "const"
)

// GlobalObject represents a module, struct or typed const.
type GlobalObject struct {
	Doc          []string
	Extern       ExternMarker
	Kind         ObjectKind
	ConstType    Type // only set for ObjectConst
	Name         *Ident
	TemplateArgs *TemplateDeclArgs // nil when no #( ) list is written
	Block        *Block
	span         lexer.Span
}

// Span returns the object span.
func (g *GlobalObject) Span() lexer.Span { return g.span }

// NewGlobalObject constructs a global object node.
func NewGlobalObject(extern ExternMarker, kind ObjectKind, constType Type, name *Ident, args *TemplateDeclArgs, block *Block, span lexer.Span) *GlobalObject {
	return &GlobalObject{
		Extern:       extern,
		Kind:         kind,
		ConstType:    constType,
		Name:         name,
		TemplateArgs: args,
		Block:        block,
		span:         span,
	}
}

// TemplateDeclArgs is the `#( ... )` parameter list of a global object.
type TemplateDeclArgs struct {
	Args []TemplateDeclArg
	span lexer.Span
}

// Span returns the list span.
func (a *TemplateDeclArgs) Span() lexer.Span { return a.span }

// NewTemplateDeclArgs constructs a template parameter list node.
func NewTemplateDeclArgs(args []TemplateDeclArg, span lexer.Span) *TemplateDeclArgs {
	return &TemplateDeclArgs{Args: args, span: span}
}

// TemplateDeclType is a bare generic type parameter.
type TemplateDeclType struct {
	Name *Ident
	span lexer.Span
}

// Span returns the parameter span.
func (t *TemplateDeclType) Span() lexer.Span { return t.span }

// NewTemplateDeclType constructs a generic type parameter node.
func NewTemplateDeclType(name *Ident) *TemplateDeclType {
	return &TemplateDeclType{Name: name, span: name.Span()}
}

func (*TemplateDeclType) templateDeclArgNode() {}

// DeclModifier is one of the keywords that may prefix a declaration.
type DeclModifier string

const (
	ModState  DeclModifier = "state"
	ModGen    DeclModifier = "gen"
	ModInput  DeclModifier = "input"
	ModOutput DeclModifier = "output"
)

// IsDeclModifier reports whether word is a declaration modifier keyword.
func IsDeclModifier(word string) bool {
	switch DeclModifier(word) {
	case ModState, ModGen, ModInput, ModOutput:
		return true
	default:
		return false
	}
}

// Declaration introduces a named, typed signal or generative value.
type Declaration struct {
	Doc       []string
	Modifiers []DeclModifier // source order, duplicates kept
	Type      Type
	Name      *Ident
	Latency   Expr // optional 'expr
	span      lexer.Span
}

// Span returns the declaration span.
func (d *Declaration) Span() lexer.Span { return d.span }

// NewDeclaration constructs a declaration node.
func NewDeclaration(mods []DeclModifier, typ Type, name *Ident, latency Expr, span lexer.Span) *Declaration {
	return &Declaration{
		Modifiers: mods,
		Type:      typ,
		Name:      name,
		Latency:   latency,
		span:      span,
	}
}

func (*Declaration) templateDeclArgNode() {}

// DeclarationList is a comma separated list of declarations, as used for
// interface ports.
type DeclarationList struct {
	Decls []*Declaration
	span  lexer.Span
}

// Span returns the list span.
func (l *DeclarationList) Span() lexer.Span { return l.span }

// NewDeclarationList constructs a declaration list node.
func NewDeclarationList(decls []*Declaration, span lexer.Span) *DeclarationList {
	return &DeclarationList{Decls: decls, span: span}
}

// Ident represents an identifier.
type Ident struct {
	Name string
	span lexer.Span
}

// Span returns the identifier span.
func (i *Ident) Span() lexer.Span { return i.span }

// NewIdent constructs an identifier node.
func NewIdent(name string, span lexer.Span) *Ident {
	return &Ident{Name: name, span: span}
}
