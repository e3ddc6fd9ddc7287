// Package gen emits Go source for a resolved XDR program: one nominal
// type per definition plus decode and encode operations.  Decoders
// never panic on malformed input; they return the error values of
// package xdr.  Encoders produce canonical big-endian, zero-padded
// output and re-validate variable-length bounds.
package gen

import (
	"fmt"
	"strings"

	"xdrgen/ast"
	"xdrgen/layout"
	"xdrgen/resolve"
)

type emitter struct {
	g     *resolve.Graph
	sizes *layout.Sizes
	opts  *Options
	out   strings.Builder

	tmpn    int
	needFmt bool
	needXdr bool
}

// Generate renders the whole program.  sources names the input files
// for the generated-file header.
func Generate(g *resolve.Graph, sources []string, opts *Options) string {
	if opts == nil {
		opts = &Options{}
	}
	e := &emitter{g: g, sizes: layout.New(g), opts: opts}
	for _, s := range g.Defs {
		e.emitSym(s)
	}

	var hdr strings.Builder
	from := strings.Join(sources, ", ")
	if from == "" {
		from = "XDR input"
	}
	fmt.Fprintf(&hdr, "// Code generated by xdrgen from %s. DO NOT EDIT.\n\n", from)
	fmt.Fprintf(&hdr, "package %s\n", opts.pkg())
	if e.needFmt {
		fmt.Fprintf(&hdr, "\nimport (\n\t\"fmt\"\n\n\txdr %q\n)\n", opts.runtime())
	} else if e.needXdr {
		fmt.Fprintf(&hdr, "\nimport xdr %q\n", opts.runtime())
	}
	return hdr.String() + e.out.String()
}

func capitalize(s string) string {
	if len(s) > 0 && s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]&^0x20) + s[1:]
	}
	return s
}

func (e *emitter) printf(str string, args ...interface{}) {
	fmt.Fprintf(&e.out, str, args...)
}

func (e *emitter) tmp() string {
	t := fmt.Sprintf("t%d", e.tmpn)
	e.tmpn++
	return t
}

var primGoType = map[ast.PrimKind]string{
	ast.PrimInt:    "int32",
	ast.PrimUInt:   "uint32",
	ast.PrimHyper:  "int64",
	ast.PrimUHyper: "uint64",
	ast.PrimFloat:  "float32",
	ast.PrimDouble: "float64",
	ast.PrimBool:   "bool",
}

var primDecode = map[ast.PrimKind]string{
	ast.PrimInt:    "c.Int32()",
	ast.PrimUInt:   "c.Uint32()",
	ast.PrimHyper:  "c.Int64()",
	ast.PrimUHyper: "c.Uint64()",
	ast.PrimFloat:  "c.Float()",
	ast.PrimDouble: "c.Double()",
	ast.PrimBool:   "c.Bool()",
}

var primEncode = map[ast.PrimKind]string{
	ast.PrimInt:    "b.PutInt32(int32(%s))",
	ast.PrimUInt:   "b.PutUint32(uint32(%s))",
	ast.PrimHyper:  "b.PutInt64(int64(%s))",
	ast.PrimUHyper: "b.PutUint64(uint64(%s))",
	ast.PrimFloat:  "b.PutFloat(float32(%s))",
	ast.PrimDouble: "b.PutDouble(float64(%s))",
	ast.PrimBool:   "b.PutBool(bool(%s))",
}

// primGet reads inside a region already reserved with Need.
var primGet = map[ast.PrimKind]string{
	ast.PrimInt:    "int32(c.Get32())",
	ast.PrimUInt:   "c.Get32()",
	ast.PrimHyper:  "int64(c.Get64())",
	ast.PrimUHyper: "c.Get64()",
	ast.PrimFloat:  "c.GetFloat()",
	ast.PrimDouble: "c.GetDouble()",
}

func (e *emitter) goType(t resolve.Type) string {
	switch t := t.(type) {
	case *resolve.Prim:
		return primGoType[t.Kind]
	case *resolve.Ref:
		return capitalize(t.Name)
	case *resolve.FixedArray:
		return fmt.Sprintf("[%d]%s", t.Len, e.goType(t.Elem))
	case *resolve.VarArray:
		return "[]" + e.goType(t.Elem)
	case *resolve.FixedOpaque:
		return fmt.Sprintf("[%d]byte", t.Len)
	case *resolve.VarOpaque:
		return "[]byte"
	case *resolve.String:
		return "string"
	case *resolve.Option:
		return "*" + e.goType(t.Elem)
	default:
		panic(fmt.Sprintf("gen: no Go type for %T", t))
	}
}

// boundComment annotates declarations of bounded variable-length
// fields with the declared bound, which the Go type cannot express.
func boundComment(t resolve.Type) string {
	var b uint32
	switch t := t.(type) {
	case *resolve.VarArray:
		b = t.Bound
	case *resolve.VarOpaque:
		b = t.Bound
	case *resolve.String:
		b = t.Bound
	default:
		return ""
	}
	if b == resolve.Unbounded {
		return ""
	}
	return fmt.Sprintf(" // bound %d", b)
}

// ptrReceiver reports whether encode methods for this shape take a
// pointer receiver (aggregates and arrays, to avoid copying).
func ptrReceiver(t resolve.Type) bool {
	switch t.(type) {
	case *resolve.Struct, *resolve.Union, *resolve.FixedArray, *resolve.FixedOpaque:
		return true
	}
	return false
}

func (e *emitter) receiver(t resolve.Type, name string) string {
	if ptrReceiver(t) {
		return "*" + name
	}
	return name
}

// typeHeader prints the blank separator, configured annotations, and
// the encoded-size comment preceding a type declaration.
func (e *emitter) typeHeader(s *resolve.Symbol) {
	e.printf("\n")
	for _, a := range e.opts.Annotations.For(s.Name) {
		e.printf("%s\n", a)
	}
	e.printf("// Encoded size: %s.\n", e.sizes.OfSym(s.Name))
}

func (e *emitter) emitSym(s *resolve.Symbol) {
	switch s.Kind {
	case resolve.SymConst:
		e.printf("\nconst %s = %d\n", capitalize(s.Name), s.Value)
	case resolve.SymEnum:
		e.needXdr = true
		e.emitEnum(s)
	case resolve.SymTypedef:
		e.needXdr = true
		e.emitTypedef(s)
	case resolve.SymStruct:
		e.needXdr = true
		e.emitStruct(s)
	case resolve.SymUnion:
		e.needXdr = true
		e.emitUnion(s)
	case resolve.SymProgram:
		// RPC programs define no wire types.
	}
}

func (e *emitter) emitEnum(s *resolve.Symbol) {
	en := s.Type.(*resolve.Enum)
	name := capitalize(s.Name)
	e.needFmt = true

	e.typeHeader(s)
	e.printf("type %s int32\n\n", name)
	e.printf("const (\n")
	for _, l := range en.Labels {
		e.printf("\t%s %s = %d\n", capitalize(l.Name), name, l.Value)
	}
	e.printf(")\n\n")

	e.printf("var _%sNames = map[int32]string{\n", name)
	for _, l := range en.Labels {
		e.printf("\t%d: %q,\n", l.Value, capitalize(l.Name))
	}
	e.printf("}\n\n")

	e.printf(`func (v %[1]s) Valid() bool {
	_, ok := _%[1]sNames[int32(v)]
	return ok
}

func (v %[1]s) String() string {
	if s, ok := _%[1]sNames[int32(v)]; ok {
		return s
	}
	return fmt.Sprintf("%[1]s(%%d)", int32(v))
}

func Decode%[1]s(c *xdr.Cursor) (%[1]s, error) {
	n, err := c.Int32()
	if err != nil {
		return 0, err
	}
	if v := %[1]s(n); v.Valid() {
		return v, nil
	}
	return 0, xdr.InvalidEnumValueError{Enum: %[1]q, Value: n}
}

func (v %[1]s) EncodeTo(b *xdr.Builder) error {
	b.PutInt32(int32(v))
	return nil
}
`, name)
}

func (e *emitter) emitTypedef(s *resolve.Symbol) {
	name := capitalize(s.Name)
	t := s.Type

	e.typeHeader(s)
	e.printf("type %s %s%s\n\n", name, e.goType(t), boundComment(t))

	e.tmpn = 0
	var body strings.Builder
	e.decodeInto(&body, t, "v", name, "\t")
	e.printf("func Decode%[1]s(c *xdr.Cursor) (%[1]s, error) {\n", name)
	e.printf("\tvar v %s\n\tvar err error\n", name)
	e.printf("%s", body.String())
	e.printf("\treturn v, err\n}\n\n")

	var enc strings.Builder
	e.encodeFrom(&enc, t, "v", true, "\t")
	e.printf("func (v %s) EncodeTo(b *xdr.Builder) error {\n", e.receiver(t, name))
	e.printf("%s", enc.String())
	e.printf("\treturn nil\n}\n")
}

func (e *emitter) emitStruct(s *resolve.Symbol) {
	st := s.Type.(*resolve.Struct)
	name := capitalize(s.Name)

	e.typeHeader(s)
	e.printf("type %s struct {\n", name)
	for i := range st.Fields {
		f := &st.Fields[i]
		e.printf("\t%s %s%s\n", capitalize(f.Name), e.goType(f.Type),
			boundComment(f.Type))
	}
	e.printf("}\n\n")

	if n, ok := e.fastStruct(st); ok {
		e.printf("func Decode%[1]s(c *xdr.Cursor) (%[1]s, error) {\n", name)
		e.printf("\tvar v %s\n", name)
		e.printf("\tif err := c.Need(%d); err != nil {\n\t\treturn v, err\n\t}\n", n)
		for i := range st.Fields {
			f := &st.Fields[i]
			e.printf("\tv.%s = %s\n", capitalize(f.Name),
				primGet[f.Type.(*resolve.Prim).Kind])
		}
		e.printf("\treturn v, nil\n}\n\n")
	} else {
		e.tmpn = 0
		var body strings.Builder
		for i := range st.Fields {
			f := &st.Fields[i]
			e.decodeInto(&body, f.Type, "v."+capitalize(f.Name), "", "\t")
		}
		e.printf("func Decode%[1]s(c *xdr.Cursor) (%[1]s, error) {\n", name)
		e.printf("\tvar v %s\n\tvar err error\n", name)
		e.printf("%s", body.String())
		e.printf("\treturn v, err\n}\n\n")
	}

	var enc strings.Builder
	for i := range st.Fields {
		f := &st.Fields[i]
		e.encodeFrom(&enc, f.Type, "v."+capitalize(f.Name), false, "\t")
	}
	e.printf("func (v *%s) EncodeTo(b *xdr.Builder) error {\n", name)
	e.printf("%s", enc.String())
	e.printf("\treturn nil\n}\n")
}

// fastStruct reports whether every field is a plain numeric primitive,
// in which case decode does one Need for the whole fixed size and uses
// unchecked reads.
func (e *emitter) fastStruct(st *resolve.Struct) (uint64, bool) {
	var total uint64
	for i := range st.Fields {
		p, ok := st.Fields[i].Type.(*resolve.Prim)
		if !ok || p.Kind == ast.PrimBool {
			return 0, false
		}
		n, _ := e.sizes.Of(p).Fixed()
		total += n
	}
	return total, len(st.Fields) > 0
}
