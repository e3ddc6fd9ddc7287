package resolve

import "xdrgen/ast"

// Type is a resolved type description.  Unlike ast.TypeSpec, every
// named reference has been checked and appears as a *Ref link.
type Type interface {
	resolvedType()
}

type Prim struct {
	Kind ast.PrimKind
}

// Ref links to a named definition by identifier.
type Ref struct {
	Name string
}

type FixedArray struct {
	Elem Type
	Len  uint32
}

type VarArray struct {
	Elem  Type
	Bound uint32 // Unbounded when absent
}

type FixedOpaque struct {
	Len uint32
}

type VarOpaque struct {
	Bound uint32
}

type String struct {
	Bound uint32
}

type Option struct {
	Elem Type
}

type Field struct {
	Name string
	Type Type
}

type Struct struct {
	Fields []Field
}

type Label struct {
	Name  string
	Value int32
}

type Enum struct {
	Labels []Label
}

// Lookup returns the label with the given value, if declared.
func (e *Enum) Lookup(v int64) (Label, bool) {
	for _, l := range e.Labels {
		if int64(l.Value) == v {
			return l, true
		}
	}
	return Label{}, false
}

// Case is one discriminant value selecting a union arm.  Label is the
// source-level name to emit (an enum label or TRUE/FALSE); it is empty
// for plain integer discriminants.
type Case struct {
	Label string
	Value int64
}

// Arm is one body of a discriminated union.  A nil Type is a void
// arm.  Arms map 1:1 onto declared arms: cases sharing a body stay in
// one Arm, distinct bodies stay distinct.
type Arm struct {
	Cases     []Case
	IsDefault bool
	Name      string
	Type      Type
}

// TagKind classifies a union discriminant.
type TagKind int

const (
	TagInt TagKind = iota
	TagUInt
	TagBool
	TagEnum
)

type Union struct {
	TagName    string
	Tag        Type
	TagKind    TagKind
	TagEnum    *Enum // set when TagKind == TagEnum
	Arms       []Arm
	HasDefault bool
}

func (*Prim) resolvedType()        {}
func (*Ref) resolvedType()         {}
func (*FixedArray) resolvedType()  {}
func (*VarArray) resolvedType()    {}
func (*FixedOpaque) resolvedType() {}
func (*VarOpaque) resolvedType()   {}
func (*String) resolvedType()      {}
func (*Option) resolvedType()      {}
func (*Struct) resolvedType()      {}
func (*Enum) resolvedType()        {}
func (*Union) resolvedType()       {}
