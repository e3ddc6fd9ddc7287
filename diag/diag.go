// Package diag defines source positions and the error values reported
// while compiling an XDR specification.  Every error is a distinct
// type so callers can switch on the failure kind; all of them are
// terminal for the compilation attempt that raised them.
package diag

import (
	"fmt"
	"strings"
)

// Pos is a location in an input file.  Col is a byte offset within the
// line, 1-based; a zero Col means the position is line-granular.
type Pos struct {
	File string
	Line int
	Col  int
}

func (p Pos) String() string {
	if p.Col > 0 {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

// SyntaxError reports structurally invalid input: lexical garbage,
// grammar violations, duplicate field names, malformed literals.
type SyntaxError struct {
	Pos Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// UndefinedReference reports a name that resolves to no definition.
type UndefinedReference struct {
	Pos  Pos
	Name string
}

func (e *UndefinedReference) Error() string {
	return fmt.Sprintf("%s: undefined reference to %s", e.Pos, e.Name)
}

// DuplicateDefinition reports a top-level name defined twice.
type DuplicateDefinition struct {
	Pos  Pos
	Name string
}

func (e *DuplicateDefinition) Error() string {
	return fmt.Sprintf("%s: %s redefined", e.Pos, e.Name)
}

// CyclicTypedef reports a reference cycle among named types that does
// not pass through an optional or a variable-length container.  Chain
// lists the names on the cycle, ending with the re-entered name.
type CyclicTypedef struct {
	Chain []string
}

func (e *CyclicTypedef) Error() string {
	return "cyclic type definition: " + strings.Join(e.Chain, " -> ")
}

// DuplicateEnumValue reports two labels of one enum sharing a value.
type DuplicateEnumValue struct {
	Pos   Pos
	Enum  string
	Label string
	Value int64
}

func (e *DuplicateEnumValue) Error() string {
	return fmt.Sprintf("%s: enum %s: label %s duplicates value %d",
		e.Pos, e.Enum, e.Label, e.Value)
}

// NonConstantBound reports an array, opaque, or string bound that does
// not evaluate to a compile-time non-negative integer.
type NonConstantBound struct {
	Pos  Pos
	Name string
}

func (e *NonConstantBound) Error() string {
	return fmt.Sprintf("%s: bound %s is not a non-negative constant",
		e.Pos, e.Name)
}

// InvalidUnionCaseSet reports ill-formed union cases: a duplicate case
// value, a case value outside an enum discriminant's labels, or a
// discriminant type that is not integer-like.
type InvalidUnionCaseSet struct {
	Pos    Pos
	Union  string
	Reason string
}

func (e *InvalidUnionCaseSet) Error() string {
	return fmt.Sprintf("%s: union %s: %s", e.Pos, e.Union, e.Reason)
}
