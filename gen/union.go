package gen

import (
	"fmt"
	"strings"

	"xdrgen/resolve"
)

// Unions become a struct holding the discriminant plus one private
// slot for the active arm.  Each non-void arm gets an accessor that
// returns a pointer to its value, allocating on first use, and panics
// when the discriminant selects a different arm.  Decoding reads the
// raw discriminant word and checks it against the declared case set,
// so an undeclared value fails as an invalid discriminant even when
// the tag type is an enum.

func (e *emitter) emitUnion(s *resolve.Symbol) {
	un := s.Type.(*resolve.Union)
	name := capitalize(s.Name)
	tagField := capitalize(un.TagName)
	tagGo := e.goType(un.Tag)

	e.typeHeader(s)
	e.printf("type %s struct {\n", name)
	e.printf("\t// %s selects the active arm:\n", tagField)
	for i := range un.Arms {
		a := &un.Arms[i]
		e.printf("\t//   %s:\n", e.armLabel(un, a))
		if a.Type == nil {
			e.printf("\t//      void\n")
		} else {
			e.printf("\t//      %s() *%s\n", capitalize(a.Name), e.goType(a.Type))
		}
	}
	e.printf("\t%s %s\n", tagField, tagGo)
	e.printf("\t_u interface{}\n")
	e.printf("}\n")

	for i := range un.Arms {
		if un.Arms[i].Type != nil {
			e.emitAccessor(s, un, &un.Arms[i])
		}
	}
	e.emitUnionDecode(s, un)
	e.emitUnionEncode(s, un)
}

// tagScrutinee converts a discriminant expression to the type the
// generated switches run on.
func tagScrutinee(un *resolve.Union, expr string) string {
	switch un.TagKind {
	case resolve.TagUInt:
		return fmt.Sprintf("uint32(%s)", expr)
	case resolve.TagBool:
		return fmt.Sprintf("bool(%s)", expr)
	default:
		return fmt.Sprintf("int32(%s)", expr)
	}
}

// caseClause renders "case v1, v2:" for one arm, with the source
// labels as a trailing comment when the discriminant is an enum.
func caseClause(un *resolve.Union, a *resolve.Arm) string {
	vals := make([]string, len(a.Cases))
	var labels []string
	for i, c := range a.Cases {
		if un.TagKind == resolve.TagBool {
			if c.Value == 1 {
				vals[i] = "true"
			} else {
				vals[i] = "false"
			}
			continue
		}
		vals[i] = fmt.Sprintf("%d", c.Value)
		if c.Label != "" {
			labels = append(labels, capitalize(c.Label))
		}
	}
	cl := "case " + strings.Join(vals, ", ") + ":"
	if len(labels) == len(a.Cases) && len(labels) > 0 {
		cl += " // " + strings.Join(labels, ", ")
	}
	return cl
}

// armLabel names an arm in doc comments: its labels, values, or
// "default".
func (e *emitter) armLabel(un *resolve.Union, a *resolve.Arm) string {
	if a.IsDefault {
		return "default"
	}
	names := make([]string, len(a.Cases))
	for i, c := range a.Cases {
		switch {
		case c.Label != "":
			names[i] = capitalize(c.Label)
		case un.TagKind == resolve.TagBool && c.Value == 1:
			names[i] = "true"
		case un.TagKind == resolve.TagBool:
			names[i] = "false"
		default:
			names[i] = fmt.Sprintf("%d", c.Value)
		}
	}
	return strings.Join(names, ", ")
}

func (e *emitter) emitAccessor(s *resolve.Symbol, un *resolve.Union, a *resolve.Arm) {
	e.needFmt = true
	name := capitalize(s.Name)
	tagField := capitalize(un.TagName)
	acc := capitalize(a.Name)
	ptr := "*" + e.goType(a.Type)
	scrut := tagScrutinee(un, "u."+tagField)

	grab := fmt.Sprintf(`	if p, ok := u._u.(%[1]s); ok {
		return p
	}
	p := new(%[2]s)
	u._u = p
	return p
`, ptr, e.goType(a.Type))
	bad := fmt.Sprintf("panic(fmt.Sprintf(%q, u.%s))",
		name+"."+acc+" accessed when "+tagField+" is %v", tagField)

	e.printf("\nfunc (u *%s) %s() %s {\n", name, acc, ptr)
	if a.IsDefault {
		if others := defaultExcluded(un); others != "" {
			e.printf("\tswitch %s {\n\t%s\n\t\t%s\n\t}\n", scrut, others, bad)
		}
		e.printf("%s", grab)
	} else {
		e.printf("\tswitch %s {\n\t%s\n", scrut, caseClause(un, a))
		e.printf("%s", indentBlock(grab))
		e.printf("\t}\n\t%s\n", bad)
	}
	e.printf("}\n")
}

// defaultExcluded builds the case clause listing every explicit case,
// the values the default arm does not cover.
func defaultExcluded(un *resolve.Union) string {
	all := resolve.Arm{}
	for i := range un.Arms {
		if !un.Arms[i].IsDefault {
			all.Cases = append(all.Cases, un.Arms[i].Cases...)
		}
	}
	if len(all.Cases) == 0 {
		return ""
	}
	return caseClause(un, &all)
}

func indentBlock(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i := range lines {
		lines[i] = "\t" + lines[i]
	}
	return strings.Join(lines, "\n") + "\n"
}

func (e *emitter) emitUnionDecode(s *resolve.Symbol, un *resolve.Union) {
	name := capitalize(s.Name)
	tagField := capitalize(un.TagName)
	tagGo := e.goType(un.Tag)
	e.tmpn = 0
	disc := e.tmp()

	e.printf("\nfunc Decode%[1]s(c *xdr.Cursor) (%[1]s, error) {\n", name)
	e.printf("\tvar v %s\n\tvar err error\n", name)
	e.printf("\tvar %s uint32\n", disc)
	e.printf("\tif %s, err = c.Uint32(); err != nil {\n\t\treturn v, err\n\t}\n", disc)

	switch un.TagKind {
	case resolve.TagBool:
		e.printf("\tif %s > 1 {\n", disc)
		e.printf("\t\treturn v, xdr.InvalidUnionDiscriminantError{Union: %q, Value: int64(%s)}\n",
			name, disc)
		e.printf("\t}\n")
		e.printf("\tv.%s = %s == 1\n", tagField, disc)
		e.printf("\tswitch %s == 1 {\n", disc)
	case resolve.TagUInt:
		e.printf("\tv.%s = %s(%s)\n", tagField, tagGo, disc)
		e.printf("\tswitch %s {\n", disc)
	default:
		e.printf("\tv.%s = %s(%s)\n", tagField, tagGo, disc)
		e.printf("\tswitch int32(%s) {\n", disc)
	}

	for i := range un.Arms {
		a := &un.Arms[i]
		if a.IsDefault {
			continue
		}
		e.printf("\t%s\n", caseClause(un, a))
		e.emitArmDecode(a)
	}
	e.printf("\tdefault:\n")
	if un.HasDefault {
		for i := range un.Arms {
			if un.Arms[i].IsDefault {
				e.emitArmDecode(&un.Arms[i])
			}
		}
	} else {
		val := fmt.Sprintf("int64(int32(%s))", disc)
		if un.TagKind == resolve.TagUInt || un.TagKind == resolve.TagBool {
			val = fmt.Sprintf("int64(%s)", disc)
		}
		e.printf("\t\treturn v, xdr.InvalidUnionDiscriminantError{Union: %q, Value: %s}\n",
			name, val)
	}
	e.printf("\t}\n\treturn v, err\n}\n")
}

func (e *emitter) emitArmDecode(a *resolve.Arm) {
	if a.Type == nil {
		return
	}
	var body strings.Builder
	e.decodeInto(&body, a.Type, fmt.Sprintf("(*v.%s())", capitalize(a.Name)), "", "\t\t")
	e.printf("%s", body.String())
}

func (e *emitter) emitUnionEncode(s *resolve.Symbol, un *resolve.Union) {
	name := capitalize(s.Name)
	tagField := capitalize(un.TagName)
	tag := "u." + tagField

	e.printf("\nfunc (u *%s) EncodeTo(b *xdr.Builder) error {\n", name)
	switch un.TagKind {
	case resolve.TagUInt:
		e.printf("\tb.PutUint32(uint32(%s))\n", tag)
	case resolve.TagBool:
		e.printf("\tb.PutBool(bool(%s))\n", tag)
	default:
		e.printf("\tb.PutInt32(int32(%s))\n", tag)
	}
	e.printf("\tswitch %s {\n", tagScrutinee(un, tag))
	for i := range un.Arms {
		a := &un.Arms[i]
		if a.IsDefault {
			continue
		}
		e.printf("\t%s\n", caseClause(un, a))
		e.emitArmEncode(a)
	}
	e.printf("\tdefault:\n")
	if un.HasDefault {
		for i := range un.Arms {
			if un.Arms[i].IsDefault {
				e.emitArmEncode(&un.Arms[i])
			}
		}
	} else if un.TagKind == resolve.TagBool {
		e.printf("\t\td := int64(0)\n\t\tif bool(%s) {\n\t\t\td = 1\n\t\t}\n", tag)
		e.printf("\t\treturn xdr.InvalidUnionDiscriminantError{Union: %q, Value: d}\n", name)
	} else {
		e.printf("\t\treturn xdr.InvalidUnionDiscriminantError{Union: %q, Value: int64(%s)}\n",
			name, tag)
	}
	e.printf("\t}\n\treturn nil\n}\n")
}

func (e *emitter) emitArmEncode(a *resolve.Arm) {
	if a.Type == nil {
		return
	}
	var body strings.Builder
	e.encodeFrom(&body, a.Type, fmt.Sprintf("(*u.%s())", capitalize(a.Name)), false, "\t\t")
	e.printf("%s", body.String())
}
