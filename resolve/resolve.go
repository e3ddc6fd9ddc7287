// Package resolve builds the symbol table for a parsed program and
// resolves every named reference, constant expression, and bound.
//
// Resolution is two-pass: pass 1 collects every top-level name
// (definitions plus enum labels) so declaration order never matters;
// pass 2 walks each definition depth-first.  A three-state marker per
// symbol detects reference cycles: re-entering a symbol that is still
// being resolved is an error unless the path since that symbol passed
// through an optional or a variable-length array, which is exactly the
// indirection that keeps such types finite on the wire.
package resolve

import (
	"fmt"

	"fortio.org/safecast"

	"xdrgen/ast"
	"xdrgen/diag"
)

// Unbounded is the bound recorded for "<>" constructs.  A declared
// bound of 0xffffffff is equivalent.
const Unbounded = 0xffffffff

type state int

const (
	unresolved state = iota
	resolving
	resolved
)

type SymKind int

const (
	SymConst SymKind = iota
	SymTypedef
	SymStruct
	SymUnion
	SymEnum
	SymProgram
)

// Symbol is the resolution record for one top-level name.
type Symbol struct {
	Name string
	Kind SymKind
	Def  ast.Def // nil for enum labels and predeclared constants

	Value int64 // SymConst only
	Type  Type  // resolved shape; nil for SymConst and SymProgram

	// enum labels: the defining enum and the unevaluated value
	owner *Symbol
	expr  ast.ConstExpr

	state     state
	guardmark int
}

// Graph is the fully resolved program.  Named references inside
// resolved types are identifier links (Ref) into Syms, never direct
// structural sharing, so mutually referential types stay finite.
type Graph struct {
	Syms map[string]*Symbol
	Defs []*Symbol // top-level definitions in source order
}

// Lookup returns the symbol for name, or nil.
func (g *Graph) Lookup(name string) *Symbol { return g.Syms[name] }

// Underlying chases typedef and reference links down to a concrete
// shape.  The argument must belong to a fully resolved graph.
func (g *Graph) Underlying(t Type) Type {
	for {
		r, ok := t.(*Ref)
		if !ok {
			return t
		}
		s := g.Syms[r.Name]
		if s == nil || s.Type == nil {
			return t
		}
		t = s.Type
	}
}

type resolver struct {
	g          *Graph
	chain      []string
	guardDepth int
}

// Resolve runs both passes and returns the resolved graph or the
// first error encountered.
func Resolve(prog *ast.Program) (*Graph, error) {
	r := &resolver{g: &Graph{Syms: map[string]*Symbol{}}}

	// RFC 4506 predeclares the boolean domain.
	for name, val := range map[string]int64{"FALSE": 0, "TRUE": 1} {
		r.g.Syms[name] = &Symbol{
			Name:  name,
			Kind:  SymConst,
			Value: val,
			state: resolved,
		}
	}

	// Pass 1: collect names.
	for _, d := range prog.Defs {
		s, err := r.declare(d)
		if err != nil {
			return nil, err
		}
		r.g.Defs = append(r.g.Defs, s)
	}

	// Pass 2: resolve depth-first, failing fast.
	for _, s := range r.g.Defs {
		if err := r.resolveSym(s); err != nil {
			return nil, err
		}
	}
	return r.g, nil
}

func (r *resolver) declare(d ast.Def) (*Symbol, error) {
	var kind SymKind
	switch d.(type) {
	case *ast.ConstDef:
		kind = SymConst
	case *ast.TypedefDef:
		kind = SymTypedef
	case *ast.StructDef:
		kind = SymStruct
	case *ast.UnionDef:
		kind = SymUnion
	case *ast.EnumDef:
		kind = SymEnum
	case *ast.RPCProgramDef:
		kind = SymProgram
	default:
		panic(fmt.Sprintf("resolve: unknown definition %T", d))
	}
	s := &Symbol{Name: d.Name(), Kind: kind, Def: d}
	if err := r.insert(s, d.Pos()); err != nil {
		return nil, err
	}
	if e, ok := d.(*ast.EnumDef); ok {
		for i := range e.Labels {
			l := &e.Labels[i]
			ls := &Symbol{
				Name:  l.Name,
				Kind:  SymConst,
				owner: s,
				expr:  l.Value,
			}
			if err := r.insert(ls, l.Pos); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

func (r *resolver) insert(s *Symbol, pos diag.Pos) error {
	if _, ok := r.g.Syms[s.Name]; ok {
		return &diag.DuplicateDefinition{Pos: pos, Name: s.Name}
	}
	r.g.Syms[s.Name] = s
	return nil
}

// cycle builds the chain for a CyclicTypedef error ending at name.
func (r *resolver) cycle(name string) error {
	chain := []string{name}
	for i := len(r.chain) - 1; i >= 0; i-- {
		chain = append([]string{r.chain[i]}, chain...)
		if r.chain[i] == name {
			break
		}
	}
	return &diag.CyclicTypedef{Chain: chain}
}

func (r *resolver) resolveSym(s *Symbol) error {
	switch s.state {
	case resolved:
		return nil
	case resolving:
		return r.cycle(s.Name)
	}
	s.state = resolving
	s.guardmark = r.guardDepth
	r.chain = append(r.chain, s.Name)

	var err error
	switch s.Kind {
	case SymConst:
		err = r.resolveConst(s)
	case SymTypedef:
		s.Type, err = r.resolveType(s.Def.(*ast.TypedefDef).Type)
	case SymStruct:
		s.Type, err = r.resolveStruct(s.Def.(*ast.StructDef))
	case SymUnion:
		s.Type, err = r.resolveUnion(s.Def.(*ast.UnionDef))
	case SymEnum:
		s.Type, err = r.resolveEnum(s.Def.(*ast.EnumDef))
	case SymProgram:
		// nothing on the wire
	}
	if err != nil {
		return err
	}
	r.chain = r.chain[:len(r.chain)-1]
	s.state = resolved
	return nil
}

func (r *resolver) resolveConst(s *Symbol) error {
	e := s.expr
	if s.Def != nil {
		e = s.Def.(*ast.ConstDef).Value
	}
	v, err := r.eval(e)
	if err != nil {
		return err
	}
	s.Value = v
	return nil
}

// eval evaluates a constant expression to an integer, resolving
// constant references (including enum labels) transitively.
func (r *resolver) eval(e ast.ConstExpr) (int64, error) {
	if e.Ref == "" {
		return e.Lit, nil
	}
	s, ok := r.g.Syms[e.Ref]
	if !ok || s.Kind != SymConst {
		return 0, &diag.UndefinedReference{Pos: e.Pos, Name: e.Ref}
	}
	if s.state == resolving {
		return 0, r.cycle(s.Name)
	}
	if err := r.resolveSym(s); err != nil {
		return 0, err
	}
	return s.Value, nil
}

// bound evaluates an array/opaque/string bound, which must be a
// compile-time non-negative integer fitting 32 bits.
func (r *resolver) bound(e ast.ConstExpr) (uint32, error) {
	name := e.Ref
	if name == "" {
		name = fmt.Sprintf("%d", e.Lit)
	}
	v, err := r.eval(e)
	if err != nil {
		if _, undef := err.(*diag.UndefinedReference); undef {
			return 0, &diag.NonConstantBound{Pos: e.Pos, Name: name}
		}
		return 0, err
	}
	b, err := safecast.Conv[uint32](v)
	if err != nil {
		return 0, &diag.NonConstantBound{Pos: e.Pos, Name: name}
	}
	return b, nil
}

func (r *resolver) optBound(e *ast.ConstExpr) (uint32, error) {
	if e == nil {
		return Unbounded, nil
	}
	return r.bound(*e)
}

func (r *resolver) resolveType(t ast.TypeSpec) (Type, error) {
	switch t := t.(type) {
	case *ast.Prim:
		return &Prim{Kind: t.Kind}, nil
	case *ast.Named:
		s, ok := r.g.Syms[t.Name]
		if !ok {
			return nil, &diag.UndefinedReference{Pos: t.NamePos, Name: t.Name}
		}
		switch s.Kind {
		case SymConst, SymProgram:
			return nil, &diag.UndefinedReference{Pos: t.NamePos, Name: t.Name}
		}
		if s.state == resolving {
			if r.guardDepth > s.guardmark {
				return &Ref{Name: t.Name}, nil
			}
			return nil, r.cycle(s.Name)
		}
		if err := r.resolveSym(s); err != nil {
			return nil, err
		}
		return &Ref{Name: t.Name}, nil
	case *ast.FixedArray:
		n, err := r.bound(t.Len)
		if err != nil {
			return nil, err
		}
		elem, err := r.resolveType(t.Elem)
		if err != nil {
			return nil, err
		}
		return &FixedArray{Elem: elem, Len: n}, nil
	case *ast.VarArray:
		b, err := r.optBound(t.Bound)
		if err != nil {
			return nil, err
		}
		r.guardDepth++
		elem, err := r.resolveType(t.Elem)
		r.guardDepth--
		if err != nil {
			return nil, err
		}
		return &VarArray{Elem: elem, Bound: b}, nil
	case *ast.FixedOpaque:
		n, err := r.bound(t.Len)
		if err != nil {
			return nil, err
		}
		return &FixedOpaque{Len: n}, nil
	case *ast.VarOpaque:
		b, err := r.optBound(t.Bound)
		if err != nil {
			return nil, err
		}
		return &VarOpaque{Bound: b}, nil
	case *ast.StringSpec:
		b, err := r.optBound(t.Bound)
		if err != nil {
			return nil, err
		}
		return &String{Bound: b}, nil
	case *ast.Option:
		r.guardDepth++
		elem, err := r.resolveType(t.Elem)
		r.guardDepth--
		if err != nil {
			return nil, err
		}
		return &Option{Elem: elem}, nil
	default:
		panic(fmt.Sprintf("resolve: unknown type spec %T", t))
	}
}

func (r *resolver) resolveStruct(d *ast.StructDef) (Type, error) {
	st := &Struct{}
	for i := range d.Fields {
		ft, err := r.resolveType(d.Fields[i].Type)
		if err != nil {
			return nil, err
		}
		st.Fields = append(st.Fields, Field{
			Name: d.Fields[i].Name,
			Type: ft,
		})
	}
	return st, nil
}

func (r *resolver) resolveEnum(d *ast.EnumDef) (Type, error) {
	en := &Enum{}
	byValue := map[int32]string{}
	for i := range d.Labels {
		l := &d.Labels[i]
		ls := r.g.Syms[l.Name]
		if err := r.resolveSym(ls); err != nil {
			return nil, err
		}
		v32, err := safecast.Conv[int32](ls.Value)
		if err != nil {
			return nil, &diag.SyntaxError{
				Pos: l.Pos,
				Msg: fmt.Sprintf("enum %s: value of %s does not fit 32 bits",
					d.Name(), l.Name),
			}
		}
		if _, dup := byValue[v32]; dup {
			return nil, &diag.DuplicateEnumValue{
				Pos:   l.Pos,
				Enum:  d.Name(),
				Label: l.Name,
				Value: int64(v32),
			}
		}
		byValue[v32] = l.Name
		en.Labels = append(en.Labels, Label{Name: l.Name, Value: v32})
	}
	return en, nil
}
