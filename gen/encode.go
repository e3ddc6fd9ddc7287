package gen

import (
	"fmt"
	"strings"

	"xdrgen/resolve"
)

// encodeFrom emits statements appending one value rv of type t to the
// builder b.  rv must be an addressable expression, parenthesized if a
// selector or index will be applied to a dereference.  fromNamed marks
// a typedef body, where rv has the defined type rather than t's
// natural shape.  Failure paths are `return err`.
func (e *emitter) encodeFrom(out *strings.Builder, t resolve.Type, rv string, fromNamed bool, ind string) {
	switch t := t.(type) {
	case *resolve.Prim:
		fmt.Fprintf(out, "%s%s\n", ind, fmt.Sprintf(primEncode[t.Kind], rv))

	case *resolve.Ref:
		if fromNamed {
			tn := e.tmp()
			fmt.Fprintf(out, "%s%s := %s(%s)\n", ind, tn, capitalize(t.Name), rv)
			rv = tn
		}
		fmt.Fprintf(out, "%sif err := %s.EncodeTo(b); err != nil {\n%s\treturn err\n%s}\n",
			ind, rv, ind, ind)

	case *resolve.String:
		fmt.Fprintf(out, "%sif err := b.PutString(%s, string(%s)); err != nil {\n%s\treturn err\n%s}\n",
			ind, boundExpr(t.Bound), rv, ind, ind)

	case *resolve.VarOpaque:
		fmt.Fprintf(out, "%sif err := b.PutVarBytes(%s, %s); err != nil {\n%s\treturn err\n%s}\n",
			ind, boundExpr(t.Bound), rv, ind, ind)

	case *resolve.FixedOpaque:
		fmt.Fprintf(out, "%sb.PutFixedBytes(%s[:])\n", ind, rv)

	case *resolve.FixedArray:
		iv := e.tmp()
		fmt.Fprintf(out, "%sfor %s := range %s {\n", ind, iv, rv)
		e.encodeFrom(out, t.Elem, fmt.Sprintf("%s[%s]", rv, iv), false, ind+"\t")
		fmt.Fprintf(out, "%s}\n", ind)

	case *resolve.VarArray:
		fmt.Fprintf(out, "%sif err := b.PutLen(%s, uint32(len(%s))); err != nil {\n%s\treturn err\n%s}\n",
			ind, boundExpr(t.Bound), rv, ind, ind)
		iv := e.tmp()
		fmt.Fprintf(out, "%sfor %s := range %s {\n", ind, iv, rv)
		e.encodeFrom(out, t.Elem, fmt.Sprintf("%s[%s]", rv, iv), false, ind+"\t")
		fmt.Fprintf(out, "%s}\n", ind)

	case *resolve.Option:
		fmt.Fprintf(out, "%sif %s != nil {\n", ind, rv)
		fmt.Fprintf(out, "%s\tb.PutBool(true)\n", ind)
		e.encodeFrom(out, t.Elem, "(*"+rv+")", false, ind+"\t")
		fmt.Fprintf(out, "%s} else {\n%s\tb.PutBool(false)\n%s}\n", ind, ind, ind)

	default:
		panic(fmt.Sprintf("gen: cannot encode %T here", t))
	}
}
