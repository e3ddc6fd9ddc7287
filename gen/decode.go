package gen

import (
	"fmt"
	"strings"

	"xdrgen/resolve"
)

// boundExpr renders a variable-length bound for generated code.
func boundExpr(b uint32) string {
	if b == resolve.Unbounded {
		return "xdr.MaxBound"
	}
	return fmt.Sprintf("%d", b)
}

// decodeInto emits statements reading one value of type t from the
// cursor c into lhs.  The surrounding function must declare `var v`
// (the result) and `var err error`; every failure path is
// `return v, err`.  A non-empty named means lhs has the defined type
// of that name, so leaf reads go through a temporary and a conversion.
func (e *emitter) decodeInto(out *strings.Builder, t resolve.Type, lhs, named, ind string) {
	switch t := t.(type) {
	case *resolve.Prim:
		e.decodeCall(out, primDecode[t.Kind], primGoType[t.Kind], lhs, named, ind)

	case *resolve.Ref:
		rn := capitalize(t.Name)
		e.decodeCall(out, "Decode"+rn+"(c)", rn, lhs, named, ind)

	case *resolve.String:
		e.decodeCall(out, fmt.Sprintf("c.String(%s)", boundExpr(t.Bound)),
			"string", lhs, named, ind)

	case *resolve.VarOpaque:
		// []byte results assign to defined byte-slice types directly.
		fmt.Fprintf(out, "%sif %s, err = c.VarBytes(%s); err != nil {\n%s\treturn v, err\n%s}\n",
			ind, lhs, boundExpr(t.Bound), ind, ind)

	case *resolve.FixedOpaque:
		tn := e.tmp()
		fmt.Fprintf(out, "%svar %s []byte\n", ind, tn)
		fmt.Fprintf(out, "%sif %s, err = c.FixedBytes(%d); err != nil {\n%s\treturn v, err\n%s}\n",
			ind, tn, t.Len, ind, ind)
		fmt.Fprintf(out, "%scopy(%s[:], %s)\n", ind, lhs, tn)

	case *resolve.FixedArray:
		iv := e.tmp()
		fmt.Fprintf(out, "%sfor %s := 0; %s < %d; %s++ {\n", ind, iv, iv, t.Len, iv)
		e.decodeInto(out, t.Elem, fmt.Sprintf("%s[%s]", lhs, iv), "", ind+"\t")
		fmt.Fprintf(out, "%s}\n", ind)

	case *resolve.VarArray:
		ln := e.tmp()
		typ := named
		if typ == "" {
			typ = e.goType(t)
		}
		fmt.Fprintf(out, "%svar %s uint32\n", ind, ln)
		fmt.Fprintf(out, "%sif %s, err = c.Length(%s); err != nil {\n%s\treturn v, err\n%s}\n",
			ind, ln, boundExpr(t.Bound), ind, ind)
		fmt.Fprintf(out, "%s%s = make(%s, 0, c.SliceCap(%s, %d))\n",
			ind, lhs, typ, ln, e.sizes.Of(t.Elem).Min)
		iv := e.tmp()
		ev := e.tmp()
		fmt.Fprintf(out, "%sfor %s := uint32(0); %s < %s; %s++ {\n", ind, iv, iv, ln, iv)
		fmt.Fprintf(out, "%s\tvar %s %s\n", ind, ev, e.goType(t.Elem))
		e.decodeInto(out, t.Elem, ev, "", ind+"\t")
		fmt.Fprintf(out, "%s\t%s = append(%s, %s)\n", ind, lhs, lhs, ev)
		fmt.Fprintf(out, "%s}\n", ind)

	case *resolve.Option:
		fn := e.tmp()
		fmt.Fprintf(out, "%svar %s bool\n", ind, fn)
		fmt.Fprintf(out, "%sif %s, err = c.Flag(); err != nil {\n%s\treturn v, err\n%s}\n",
			ind, fn, ind, ind)
		fmt.Fprintf(out, "%sif %s {\n", ind, fn)
		if named == "" {
			fmt.Fprintf(out, "%s\t%s = new(%s)\n", ind, lhs, e.goType(t.Elem))
		} else {
			fmt.Fprintf(out, "%s\t%s = %s(new(%s))\n", ind, lhs, named, e.goType(t.Elem))
		}
		e.decodeInto(out, t.Elem, "(*"+lhs+")", "", ind+"\t")
		fmt.Fprintf(out, "%s}\n", ind)

	default:
		panic(fmt.Sprintf("gen: cannot decode %T here", t))
	}
}

// decodeCall emits one leaf read.  call yields (natural, error).
func (e *emitter) decodeCall(out *strings.Builder, call, natural, lhs, named, ind string) {
	if named == "" {
		fmt.Fprintf(out, "%sif %s, err = %s; err != nil {\n%s\treturn v, err\n%s}\n",
			ind, lhs, call, ind, ind)
		return
	}
	tn := e.tmp()
	fmt.Fprintf(out, "%svar %s %s\n", ind, tn, natural)
	fmt.Fprintf(out, "%sif %s, err = %s; err != nil {\n%s\treturn v, err\n%s}\n",
		ind, tn, call, ind, ind)
	fmt.Fprintf(out, "%s%s = %s(%s)\n", ind, lhs, named, tn)
}
