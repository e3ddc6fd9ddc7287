// Package layout computes encoded-size information for resolved
// types.  Sizes are in bytes and always multiples of four, per the
// RFC 4506 alignment rules.  Generated decoders use the results to
// perform one length check up front instead of one per field.
package layout

import (
	"fmt"
	"math"

	"xdrgen/ast"
	"xdrgen/resolve"
)

// Size is the encoded size of a type: exact when Min == Max and not
// Unbounded, otherwise a [Min, Max] range.  Unbounded means no finite
// maximum exists (an absent bound, or recursion through an optional).
type Size struct {
	Min       uint64
	Max       uint64
	Unbounded bool
}

// Fixed reports the exact encoded size, if the type has one.
func (s Size) Fixed() (uint64, bool) {
	if !s.Unbounded && s.Min == s.Max {
		return s.Min, true
	}
	return 0, false
}

func (s Size) String() string {
	if n, ok := s.Fixed(); ok {
		return fmt.Sprintf("%d bytes", n)
	}
	if s.Unbounded {
		return fmt.Sprintf("%d+ bytes", s.Min)
	}
	return fmt.Sprintf("%d..%d bytes", s.Min, s.Max)
}

func exact(n uint64) Size { return Size{Min: n, Max: n} }

func satAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

func satMul(a, b uint64) uint64 {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxUint64/b {
		return math.MaxUint64
	}
	return a * b
}

func round4(n uint64) uint64 {
	return satAdd(n, 3) &^ 3
}

func add(a, b Size) Size {
	return Size{
		Min:       satAdd(a.Min, b.Min),
		Max:       satAdd(a.Max, b.Max),
		Unbounded: a.Unbounded || b.Unbounded,
	}
}

// Sizes memoizes per-symbol size analysis over one resolved graph.
type Sizes struct {
	g    *resolve.Graph
	memo map[string]Size
	busy map[string]bool
}

func New(g *resolve.Graph) *Sizes {
	return &Sizes{
		g:    g,
		memo: map[string]Size{},
		busy: map[string]bool{},
	}
}

// OfSym returns the size of a named definition.
func (z *Sizes) OfSym(name string) Size {
	if s, ok := z.memo[name]; ok {
		return s
	}
	if z.busy[name] {
		// Recursive reference.  Reachable only through an optional or
		// a variable-length array, whose own minimum excludes the
		// recursive element, so a zero-minimum unbounded contribution
		// is exact here.
		return Size{Min: 0, Max: 0, Unbounded: true}
	}
	z.busy[name] = true
	sym := z.g.Lookup(name)
	s := z.Of(sym.Type)
	delete(z.busy, name)
	z.memo[name] = s
	return s
}

// Of returns the size of any resolved type.
func (z *Sizes) Of(t resolve.Type) Size {
	switch t := t.(type) {
	case *resolve.Prim:
		switch t.Kind {
		case ast.PrimHyper, ast.PrimUHyper, ast.PrimDouble:
			return exact(8)
		default:
			return exact(4)
		}
	case *resolve.Ref:
		return z.OfSym(t.Name)
	case *resolve.Enum:
		return exact(4)
	case *resolve.FixedArray:
		e := z.Of(t.Elem)
		return Size{
			Min:       satMul(e.Min, uint64(t.Len)),
			Max:       satMul(e.Max, uint64(t.Len)),
			Unbounded: e.Unbounded && t.Len > 0,
		}
	case *resolve.VarArray:
		e := z.Of(t.Elem)
		s := Size{Min: 4}
		if t.Bound == resolve.Unbounded || e.Unbounded {
			s.Unbounded = true
			return s
		}
		s.Max = satAdd(4, satMul(e.Max, uint64(t.Bound)))
		return s
	case *resolve.FixedOpaque:
		return exact(round4(uint64(t.Len)))
	case *resolve.VarOpaque:
		if t.Bound == resolve.Unbounded {
			return Size{Min: 4, Unbounded: true}
		}
		return Size{Min: 4, Max: satAdd(4, round4(uint64(t.Bound)))}
	case *resolve.String:
		if t.Bound == resolve.Unbounded {
			return Size{Min: 4, Unbounded: true}
		}
		return Size{Min: 4, Max: satAdd(4, round4(uint64(t.Bound)))}
	case *resolve.Option:
		e := z.Of(t.Elem)
		// Absent contributes nothing beyond the flag.
		return Size{
			Min:       4,
			Max:       satAdd(4, e.Max),
			Unbounded: e.Unbounded,
		}
	case *resolve.Struct:
		s := exact(0)
		for i := range t.Fields {
			s = add(s, z.Of(t.Fields[i].Type))
		}
		return s
	case *resolve.Union:
		s := exact(4) // discriminant
		var arms Size
		for i := range t.Arms {
			a := z.armSize(&t.Arms[i])
			if i == 0 {
				arms = a
				continue
			}
			if a.Min < arms.Min {
				arms.Min = a.Min
			}
			if a.Max > arms.Max {
				arms.Max = a.Max
			}
			arms.Unbounded = arms.Unbounded || a.Unbounded
		}
		return add(s, arms)
	default:
		panic(fmt.Sprintf("layout: unknown type %T", t))
	}
}

func (z *Sizes) armSize(a *resolve.Arm) Size {
	if a.Type == nil {
		return exact(0)
	}
	return z.Of(a.Type)
}
