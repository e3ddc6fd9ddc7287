// Package ast builds the abstract syntax tree for an XDR
// specification.  The builder performs structural validation only
// (duplicate field names, malformed literals); name resolution happens
// later, in package resolve.
package ast

import "xdrgen/diag"

// Program is an ordered sequence of top-level definitions.  Order is
// preserved so generated output is deterministic.
type Program struct {
	Defs []Def
}

type Def interface {
	Name() string
	Pos() diag.Pos
	def()
}

type defbase struct {
	name string
	pos  diag.Pos
}

func (d *defbase) Name() string  { return d.name }
func (d *defbase) Pos() diag.Pos { return d.pos }
func (d *defbase) def()          {}

// ConstExpr is an integer literal or a reference to another constant
// (including enum labels).  Ref is empty for literals.
type ConstExpr struct {
	Pos diag.Pos
	Ref string
	Lit int64
}

type ConstDef struct {
	defbase
	Value ConstExpr
}

type TypedefDef struct {
	defbase
	Type TypeSpec
}

type Field struct {
	Pos  diag.Pos
	Name string
	Type TypeSpec
}

type StructDef struct {
	defbase
	Fields []Field
}

type EnumLabel struct {
	Pos   diag.Pos
	Name  string
	Value ConstExpr
}

type EnumDef struct {
	defbase
	Labels []EnumLabel
}

// UnionArm is one arm of a discriminated union.  Cases is empty when
// IsDefault is set.  A nil Field is a void arm.
type UnionArm struct {
	Pos       diag.Pos
	Cases     []ConstExpr
	IsDefault bool
	Field     *Field
}

type UnionDef struct {
	defbase
	TagName string
	TagType TypeSpec
	Arms    []UnionArm
}

// RPCProgramDef records a "program" block.  Program and version
// numbers are not interpreted; the definition resolves to nothing and
// generates nothing.
type RPCProgramDef struct {
	defbase
}

// TypeSpec is the per-use description of a type, before resolution.
type TypeSpec interface {
	typeSpec()
}

type PrimKind int

const (
	PrimInt PrimKind = iota
	PrimUInt
	PrimHyper
	PrimUHyper
	PrimFloat
	PrimDouble
	PrimBool
)

var primNames = [...]string{
	PrimInt:    "int",
	PrimUInt:   "unsigned int",
	PrimHyper:  "hyper",
	PrimUHyper: "unsigned hyper",
	PrimFloat:  "float",
	PrimDouble: "double",
	PrimBool:   "bool",
}

func (k PrimKind) String() string { return primNames[k] }

type Prim struct {
	Kind PrimKind
}

// Named is a reference to a top-level definition, resolved later.
type Named struct {
	NamePos diag.Pos
	Name    string
}

type FixedArray struct {
	Elem TypeSpec
	Len  ConstExpr
}

// VarArray is a counted array.  A nil Bound means unbounded.
type VarArray struct {
	Elem  TypeSpec
	Bound *ConstExpr
}

type FixedOpaque struct {
	Len ConstExpr
}

type VarOpaque struct {
	Bound *ConstExpr
}

type StringSpec struct {
	Bound *ConstExpr
}

// Option is the XDR pointer: a 4-byte presence flag followed by the
// value when present.
type Option struct {
	Elem TypeSpec
}

func (*Prim) typeSpec()        {}
func (*Named) typeSpec()       {}
func (*FixedArray) typeSpec()  {}
func (*VarArray) typeSpec()    {}
func (*FixedOpaque) typeSpec() {}
func (*VarOpaque) typeSpec()   {}
func (*StringSpec) typeSpec()  {}
func (*Option) typeSpec()      {}
