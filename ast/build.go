package ast

import (
	"strconv"
	"strings"

	"xdrgen/diag"
	"xdrgen/syntax"
)

// AnonPrefix starts the synthesized name of every inline struct,
// union, or enum body lifted to a top-level definition.
const AnonPrefix = "XdrAnon_"

func anonName(context, field string) string {
	if !strings.HasPrefix(context, AnonPrefix) {
		context = AnonPrefix + context
	}
	return context + "_" + field
}

func capitalize(s string) string {
	if len(s) > 0 && s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]&^0x20) + s[1:]
	}
	return s
}

// Parse builds a Program from one XDR source file.  It stops at the
// first structural error.
func Parse(filename, src string) (*Program, error) {
	p := &parser{
		lex:  syntax.NewLexer(filename, src),
		prog: &Program{},
	}
	p.next()
	for p.err == nil && p.tok.Kind != syntax.EOF {
		p.definition()
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.prog, nil
}

// parser carries a sticky error: after the first failure every method
// becomes a no-op, so productions read without error plumbing.
type parser struct {
	lex  *syntax.Lexer
	tok  syntax.Token
	err  error
	prog *Program
}

func (p *parser) next() {
	if p.err != nil {
		return
	}
	t, err := p.lex.Next()
	if err != nil {
		p.err = err
		return
	}
	p.tok = t
}

func (p *parser) fail(pos diag.Pos, msg string) {
	if p.err == nil {
		p.err = &diag.SyntaxError{Pos: pos, Msg: msg}
	}
}

func (p *parser) expect(k syntax.Kind, what string) syntax.Token {
	t := p.tok
	if p.err != nil {
		return t
	}
	if t.Kind != k {
		p.fail(t.Pos, "expected "+what)
		return t
	}
	p.next()
	return t
}

func (p *parser) define(d Def) {
	p.prog.Defs = append(p.prog.Defs, d)
}

// value parses an integer literal or a constant reference.
func (p *parser) value() ConstExpr {
	t := p.tok
	switch t.Kind {
	case syntax.Ident:
		p.next()
		return ConstExpr{Pos: t.Pos, Ref: t.Value}
	case syntax.Number:
		p.next()
		n, err := strconv.ParseInt(t.Value, 0, 64)
		if err != nil {
			// out-of-range or stray sign
			if u, uerr := strconv.ParseUint(t.Value, 0, 64); uerr == nil {
				return ConstExpr{Pos: t.Pos, Lit: int64(u)}
			}
			p.fail(t.Pos, "malformed integer literal "+t.Value)
			return ConstExpr{Pos: t.Pos}
		}
		return ConstExpr{Pos: t.Pos, Lit: n}
	default:
		p.fail(t.Pos, "expected constant value")
		return ConstExpr{Pos: t.Pos}
	}
}

func (p *parser) definition() {
	switch t := p.tok; t.Kind {
	case syntax.Const:
		p.next()
		name := p.expect(syntax.Ident, "constant name")
		p.expect(syntax.Equal, "'='")
		v := p.value()
		p.expect(syntax.Semi, "';'")
		p.define(&ConstDef{
			defbase: defbase{name: name.Value, pos: t.Pos},
			Value:   v,
		})
	case syntax.Typedef:
		p.next()
		f := p.declaration("")
		p.expect(syntax.Semi, "';'")
		if p.err != nil {
			return
		}
		if f == nil {
			p.fail(t.Pos, "typedef of void")
			return
		}
		p.define(&TypedefDef{
			defbase: defbase{name: f.Name, pos: t.Pos},
			Type:    f.Type,
		})
	case syntax.Enum:
		p.next()
		name := p.expect(syntax.Ident, "enum name")
		d := p.enumBody(name.Value, t.Pos)
		p.expect(syntax.Semi, "';'")
		if p.err == nil {
			p.define(d)
		}
	case syntax.Struct:
		p.next()
		name := p.expect(syntax.Ident, "struct name")
		d := p.structBody(name.Value, t.Pos)
		p.expect(syntax.Semi, "';'")
		if p.err == nil {
			p.define(d)
		}
	case syntax.Union:
		p.next()
		name := p.expect(syntax.Ident, "union name")
		d := p.unionBody(name.Value, t.Pos)
		p.expect(syntax.Semi, "';'")
		if p.err == nil {
			p.define(d)
		}
	case syntax.Program:
		p.programDef()
	case syntax.Namespace:
		p.next()
		p.expect(syntax.Ident, "namespace name")
		p.expect(syntax.LBrace, "'{'")
		for p.err == nil && p.tok.Kind != syntax.RBrace {
			p.definition()
		}
		p.expect(syntax.RBrace, "'}'")
		p.expect(syntax.Semi, "';'")
	default:
		p.fail(t.Pos, "expected definition")
	}
}

func (p *parser) enumBody(name string, pos diag.Pos) *EnumDef {
	d := &EnumDef{defbase: defbase{name: name, pos: pos}}
	p.expect(syntax.LBrace, "'{'")
	for p.err == nil {
		lt := p.expect(syntax.Ident, "enum label")
		p.expect(syntax.Equal, "'='")
		v := p.value()
		d.Labels = append(d.Labels, EnumLabel{
			Pos:   lt.Pos,
			Name:  lt.Value,
			Value: v,
		})
		if p.tok.Kind != syntax.Comma {
			break
		}
		p.next()
	}
	p.expect(syntax.RBrace, "'}'")
	return d
}

func (p *parser) structBody(name string, pos diag.Pos) *StructDef {
	d := &StructDef{defbase: defbase{name: name, pos: pos}}
	seen := map[string]bool{}
	p.expect(syntax.LBrace, "'{'")
	for p.err == nil && p.tok.Kind != syntax.RBrace {
		fpos := p.tok.Pos
		f := p.declaration(name)
		p.expect(syntax.Semi, "';'")
		if p.err != nil {
			break
		}
		if f == nil {
			p.fail(fpos, "void field in struct "+name)
			break
		}
		if key := capitalize(f.Name); seen[key] {
			p.fail(f.Pos, "duplicate field "+f.Name+" in struct "+name)
			break
		} else {
			seen[key] = true
		}
		d.Fields = append(d.Fields, *f)
	}
	p.expect(syntax.RBrace, "'}'")
	return d
}

func (p *parser) unionBody(name string, pos diag.Pos) *UnionDef {
	d := &UnionDef{defbase: defbase{name: name, pos: pos}}
	p.expect(syntax.Switch, "'switch'")
	p.expect(syntax.LParen, "'('")
	d.TagType = p.typeSpec(name)
	tag := p.expect(syntax.Ident, "discriminant name")
	d.TagName = tag.Value
	p.expect(syntax.RParen, "')'")
	p.expect(syntax.LBrace, "'{'")

	seen := map[string]bool{capitalize(d.TagName): true}
	hasdefault := false
	for p.err == nil && p.tok.Kind != syntax.RBrace {
		arm := UnionArm{Pos: p.tok.Pos}
		switch p.tok.Kind {
		case syntax.Case:
			for p.err == nil && p.tok.Kind == syntax.Case {
				p.next()
				arm.Cases = append(arm.Cases, p.value())
				p.expect(syntax.Colon, "':'")
			}
		case syntax.Default:
			if hasdefault {
				p.fail(p.tok.Pos, "union "+name+" has two default arms")
				continue
			}
			hasdefault = true
			arm.IsDefault = true
			p.next()
			p.expect(syntax.Colon, "':'")
		default:
			p.fail(p.tok.Pos, "expected case or default")
			continue
		}
		arm.Field = p.declaration(name)
		p.expect(syntax.Semi, "';'")
		if p.err != nil {
			break
		}
		if arm.Field != nil {
			if key := capitalize(arm.Field.Name); seen[key] {
				p.fail(arm.Field.Pos,
					"duplicate field "+arm.Field.Name+" in union "+name)
				break
			} else {
				seen[key] = true
			}
		}
		d.Arms = append(d.Arms, arm)
	}
	p.expect(syntax.RBrace, "'}'")
	return d
}

// declaration parses one XDR declaration and returns nil for void.
// context names the enclosing definition for synthesized inline types.
func (p *parser) declaration(context string) *Field {
	pos := p.tok.Pos
	switch p.tok.Kind {
	case syntax.Void:
		p.next()
		return nil
	case syntax.Opaque:
		p.next()
		name := p.expect(syntax.Ident, "field name")
		f := &Field{Pos: pos, Name: name.Value}
		switch p.tok.Kind {
		case syntax.LBracket:
			p.next()
			v := p.value()
			p.expect(syntax.RBracket, "']'")
			f.Type = &FixedOpaque{Len: v}
		case syntax.LAngle:
			p.next()
			f.Type = &VarOpaque{Bound: p.optBound()}
		default:
			p.fail(p.tok.Pos, "opaque requires [length] or <bound>")
		}
		return f
	case syntax.String:
		p.next()
		name := p.expect(syntax.Ident, "field name")
		f := &Field{Pos: pos, Name: name.Value}
		p.expect(syntax.LAngle, "'<'")
		f.Type = &StringSpec{Bound: p.optBound()}
		return f
	}

	ts := p.typeSpec(context)
	ptr := false
	if p.tok.Kind == syntax.Star {
		ptr = true
		p.next()
	}
	name := p.expect(syntax.Ident, "declarator")
	if p.err != nil {
		return nil
	}
	p.renameAnon(ts, context, name.Value)
	switch p.tok.Kind {
	case syntax.LBracket:
		if ptr {
			p.fail(p.tok.Pos, "array of pointer declarator")
			return nil
		}
		p.next()
		v := p.value()
		p.expect(syntax.RBracket, "']'")
		ts = &FixedArray{Elem: ts, Len: v}
	case syntax.LAngle:
		if ptr {
			p.fail(p.tok.Pos, "array of pointer declarator")
			return nil
		}
		p.next()
		ts = &VarArray{Elem: ts, Bound: p.optBound()}
	default:
		if ptr {
			ts = &Option{Elem: ts}
		}
	}
	return &Field{Pos: pos, Name: name.Value, Type: ts}
}

// optBound parses the inside of <...>, where an absent value means
// unbounded.
func (p *parser) optBound() *ConstExpr {
	var b *ConstExpr
	if p.tok.Kind != syntax.RAngle {
		v := p.value()
		b = &v
	}
	p.expect(syntax.RAngle, "'>'")
	return b
}

// typeSpec parses a type-specifier.  Inline struct/union/enum bodies
// are lifted to placeholder definitions that renameAnon names once the
// declarator is known.
func (p *parser) typeSpec(context string) TypeSpec {
	t := p.tok
	switch t.Kind {
	case syntax.Unsigned:
		p.next()
		switch p.tok.Kind {
		case syntax.Int:
			p.next()
			return &Prim{Kind: PrimUInt}
		case syntax.Hyper:
			p.next()
			return &Prim{Kind: PrimUHyper}
		default:
			return &Prim{Kind: PrimUInt}
		}
	case syntax.Int:
		p.next()
		return &Prim{Kind: PrimInt}
	case syntax.Hyper:
		p.next()
		return &Prim{Kind: PrimHyper}
	case syntax.Float:
		p.next()
		return &Prim{Kind: PrimFloat}
	case syntax.Double:
		p.next()
		return &Prim{Kind: PrimDouble}
	case syntax.Bool:
		p.next()
		return &Prim{Kind: PrimBool}
	case syntax.Quadruple:
		p.fail(t.Pos, "quadruple is not supported")
		return &Prim{Kind: PrimDouble}
	case syntax.Ident:
		p.next()
		return &Named{NamePos: t.Pos, Name: t.Value}
	case syntax.Struct:
		p.next()
		if p.tok.Kind == syntax.Ident {
			n := p.tok
			p.next()
			return &Named{NamePos: n.Pos, Name: n.Value}
		}
		d := p.structBody("", t.Pos)
		p.define(d)
		return &Named{NamePos: t.Pos}
	case syntax.Union:
		p.next()
		if p.tok.Kind == syntax.Ident {
			n := p.tok
			p.next()
			return &Named{NamePos: n.Pos, Name: n.Value}
		}
		d := p.unionBody("", t.Pos)
		p.define(d)
		return &Named{NamePos: t.Pos}
	case syntax.Enum:
		p.next()
		if p.tok.Kind == syntax.Ident {
			n := p.tok
			p.next()
			return &Named{NamePos: n.Pos, Name: n.Value}
		}
		d := p.enumBody("", t.Pos)
		p.define(d)
		return &Named{NamePos: t.Pos}
	default:
		p.fail(t.Pos, "expected type specifier")
		return &Prim{Kind: PrimInt}
	}
}

// renameAnon gives a just-parsed inline definition its synthesized
// name, derived from the enclosing definition and field.
func (p *parser) renameAnon(ts TypeSpec, context, field string) {
	n, ok := ts.(*Named)
	if !ok || n.Name != "" {
		return
	}
	name := anonName(context, field)
	n.Name = name
	// The placeholder is the most recently appended definition.
	for i := len(p.prog.Defs) - 1; i >= 0; i-- {
		if p.prog.Defs[i].Name() == "" {
			switch d := p.prog.Defs[i].(type) {
			case *StructDef:
				d.name = name
			case *UnionDef:
				d.name = name
			case *EnumDef:
				d.name = name
			}
			return
		}
	}
}

// programDef parses an RPC program block.  The structure is checked
// but nothing is recorded beyond the program name.
func (p *parser) programDef() {
	pos := p.tok.Pos
	p.next()
	name := p.expect(syntax.Ident, "program name")
	p.expect(syntax.LBrace, "'{'")
	for p.err == nil && p.tok.Kind == syntax.Version {
		p.next()
		p.expect(syntax.Ident, "version name")
		p.expect(syntax.LBrace, "'{'")
		for p.err == nil && p.tok.Kind != syntax.RBrace {
			p.procDecl()
		}
		p.expect(syntax.RBrace, "'}'")
		p.expect(syntax.Equal, "'='")
		p.value()
		p.expect(syntax.Semi, "';'")
	}
	p.expect(syntax.RBrace, "'}'")
	p.expect(syntax.Equal, "'='")
	p.value()
	p.expect(syntax.Semi, "';'")
	if p.err == nil {
		p.define(&RPCProgramDef{defbase{name: name.Value, pos: pos}})
	}
}

func (p *parser) procDecl() {
	if p.tok.Kind == syntax.Void {
		p.next()
	} else {
		p.typeSpec("")
	}
	p.expect(syntax.Ident, "procedure name")
	p.expect(syntax.LParen, "'('")
	if p.tok.Kind == syntax.Void {
		p.next()
	} else {
		for p.err == nil {
			p.typeSpec("")
			if p.tok.Kind != syntax.Comma {
				break
			}
			p.next()
		}
	}
	p.expect(syntax.RParen, "')'")
	p.expect(syntax.Equal, "'='")
	p.value()
	p.expect(syntax.Semi, "';'")
}
