package ast

import "github.com/sus-lang/sus-parser/internal/lexer"

// ArrayType represents a sized array type T[N]. Multi-dimensional arrays nest
// through Elem.
type ArrayType struct {
	Elem Type
	Size Expr
	span lexer.Span
}

// Span returns the array type span.
func (t *ArrayType) Span() lexer.Span { return t.span }

// typeNode marks ArrayType as a type.
func (*ArrayType) typeNode() {}

// NewArrayType constructs an array type node.
func NewArrayType(elem Type, size Expr, span lexer.Span) *ArrayType {
	return &ArrayType{
		Elem: elem,
		Size: size,
		span: span,
	}
}

// Index is the bracketed part of an ArrayOp.
type Index interface {
	Node
	indexNode()
}

// SingleIndex selects one element.
type SingleIndex struct {
	Expr Expr
	span lexer.Span
}

// Span returns the index span.
func (i *SingleIndex) Span() lexer.Span { return i.span }

func (*SingleIndex) indexNode() {}

// NewSingleIndex constructs a single element index.
func NewSingleIndex(expr Expr) *SingleIndex {
	return &SingleIndex{Expr: expr, span: expr.Span()}
}

// SliceKind is the separator of a part-select.
type SliceKind string

const (
	SliceExact   SliceKind = ":"
	SliceRelUp   SliceKind = "+:"
	SliceRelDown SliceKind = "-:"
)

// SliceIndex selects a sub-range. Lo and Hi are optional.
type SliceIndex struct {
	Lo   Expr
	Kind SliceKind
	Hi   Expr
	span lexer.Span
}

// Span returns the slice span.
func (s *SliceIndex) Span() lexer.Span { return s.span }

func (*SliceIndex) indexNode() {}

// NewSliceIndex constructs a part-select node.
func NewSliceIndex(lo Expr, kind SliceKind, hi Expr, span lexer.Span) *SliceIndex {
	return &SliceIndex{Lo: lo, Kind: kind, Hi: hi, span: span}
}

// ArrayOp indexes or slices Base.
type ArrayOp struct {
	Base  Expr
	Index Index
	span  lexer.Span
}

// Span returns the expression span.
func (e *ArrayOp) Span() lexer.Span { return e.span }

// exprNode marks ArrayOp as an expression.
func (*ArrayOp) exprNode() {}

// NewArrayOp constructs an indexing expression node.
func NewArrayOp(base Expr, index Index, span lexer.Span) *ArrayOp {
	return &ArrayOp{Base: base, Index: index, span: span}
}

// ArrayList is an array literal [a, b, c].
type ArrayList struct {
	Items []Expr
	span  lexer.Span
}

// Span returns the literal span.
func (e *ArrayList) Span() lexer.Span { return e.span }

// exprNode marks ArrayList as an expression.
func (*ArrayList) exprNode() {}

// NewArrayList constructs an array literal node.
func NewArrayList(items []Expr, span lexer.Span) *ArrayList {
	return &ArrayList{Items: items, span: span}
}
